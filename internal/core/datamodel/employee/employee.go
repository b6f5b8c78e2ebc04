package employee

import "time"

type Employee struct {
	ID                           int64      `gorm:"primaryKey"`
	FullName                     string     `gorm:"column:full_name;size:100;not null;index"`
	DateOfBirth                  *time.Time `gorm:"column:date_of_birth;type:date"`
	ContactInfo                  string     `gorm:"column:contact_info;size:200"`
	Address                      string     `gorm:"column:address;size:200"`
	HireDate                     *time.Time `gorm:"column:hire_date;type:date"`
	RolePosition                 string     `gorm:"column:role_position;size:100"`
	PayrateRT                    float64    `gorm:"column:payrate_rt"`
	PayrateOT                    float64    `gorm:"column:payrate_ot"`
	STCWCertification            string     `gorm:"column:stcw_certification;size:100"`
	TWICCard                     string     `gorm:"column:twic_card;size:20"`
	MerchantMarinerCredentialMMC string     `gorm:"column:merchant_mariner_credential_mmc;size:20"`
	YearsOfExperience            string     `gorm:"column:years_of_experience;size:10"`
	CreatedAt                    time.Time  `gorm:"column:created_at"`
	UpdatedAt                    time.Time  `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
