package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/employee"
)

const DateLayout = "2006-01-02"

type Employee struct {
	ID                int64      `json:"id"`
	FullName          string     `json:"full_name"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	ContactInfo       string     `json:"contact_info,omitempty"`
	Address           string     `json:"address,omitempty"`
	HireDate          *time.Time `json:"hire_date,omitempty"`
	RolePosition      string     `json:"role_position,omitempty"`
	PayrateRT         float64    `json:"payrate_rt"`
	PayrateOT         float64    `json:"payrate_ot"`
	STCWCertification string     `json:"stcw_certification,omitempty"`
	TWICCard          string     `json:"twic_card,omitempty"`
	MMC               string     `json:"merchant_mariner_credential_mmc,omitempty"`
	YearsOfExperience string     `json:"years_of_experience,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:                           e.ID,
		FullName:                     e.FullName,
		DateOfBirth:                  e.DateOfBirth,
		ContactInfo:                  e.ContactInfo,
		Address:                      e.Address,
		HireDate:                     e.HireDate,
		RolePosition:                 e.RolePosition,
		PayrateRT:                    e.PayrateRT,
		PayrateOT:                    e.PayrateOT,
		STCWCertification:            e.STCWCertification,
		TWICCard:                     e.TWICCard,
		MerchantMarinerCredentialMMC: e.MMC,
		YearsOfExperience:            e.YearsOfExperience,
		CreatedAt:                    e.CreatedAt,
		UpdatedAt:                    e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:                e.ID,
		FullName:          e.FullName,
		DateOfBirth:       e.DateOfBirth,
		ContactInfo:       e.ContactInfo,
		Address:           e.Address,
		HireDate:          e.HireDate,
		RolePosition:      e.RolePosition,
		PayrateRT:         e.PayrateRT,
		PayrateOT:         e.PayrateOT,
		STCWCertification: e.STCWCertification,
		TWICCard:          e.TWICCard,
		MMC:               e.MerchantMarinerCredentialMMC,
		YearsOfExperience: e.YearsOfExperience,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
