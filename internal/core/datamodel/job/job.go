package job

import (
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal/docnumber"
	"gorm.io/gorm"
)

type Job struct {
	ID               int64     `gorm:"primaryKey"`
	JobNumber        string    `gorm:"column:job_number;size:8;uniqueIndex;not null"`
	DateCreated      time.Time `gorm:"column:date_created"`
	ScheduledDate    time.Time `gorm:"column:scheduled_date;type:date;not null"`
	RequestedService string    `gorm:"column:requested_service;type:text"`
	VesselID         *int64    `gorm:"column:vessel_id"`
	Location         string    `gorm:"column:location;size:200"`
	CustomerID       *int64    `gorm:"column:customer_id"`
}

func (Job) TableName() string {
	return "jobs"
}

// BeforeCreate assigns the next MMYYNNNN number unless one was given.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if j.DateCreated.IsZero() {
		j.DateCreated = now
	}
	if j.JobNumber != "" {
		return nil
	}
	n, err := docnumber.Assign(tx, "jobs", "job_number", now)
	if err != nil {
		return err
	}
	j.JobNumber = n
	return nil
}
