package timebook

import "time"

// Timebook is one time entry. Start and stop are stored as canonical "HH:MM";
// NULL means the time was not recorded.
type Timebook struct {
	ID          int64     `gorm:"primaryKey"`
	Employee    string    `gorm:"column:employee;size:100;index"`
	Description string    `gorm:"column:description;size:200"`
	TimeDate    time.Time `gorm:"column:time_date;type:date;index"`
	StartTime   *string   `gorm:"column:start_time;size:5"`
	StopTime    *string   `gorm:"column:stop_time;size:5"`
	JobNumber   string    `gorm:"column:job_number;size:10;index"`
	Mileage     int       `gorm:"column:mileage"`
	Location    string    `gorm:"column:location;size:100"`
	Billable    bool      `gorm:"column:billable;not null"`
	PayRateRT   float64   `gorm:"column:pay_rate_rt"`
	PayRateOT   float64   `gorm:"column:pay_rate_ot"`
	Paid        bool      `gorm:"column:paid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Timebook) TableName() string {
	return "timebooks"
}
