package job

import (
	"time"

	jobDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/job"
)

const DateLayout = "2006-01-02"

type Job struct {
	ID               int64     `json:"id"`
	JobNumber        string    `json:"job_number"`
	DateCreated      time.Time `json:"date_created"`
	ScheduledDate    time.Time `json:"scheduled_date"`
	RequestedService string    `json:"requested_service,omitempty"`
	VesselID         *int64    `json:"vessel_id,omitempty"`
	Location         string    `json:"location,omitempty"`
	CustomerID       *int64    `json:"customer_id,omitempty"`
}

func ToDataModel(j *Job) *jobDatamodel.Job {
	return &jobDatamodel.Job{
		ID:               j.ID,
		JobNumber:        j.JobNumber,
		DateCreated:      j.DateCreated,
		ScheduledDate:    j.ScheduledDate,
		RequestedService: j.RequestedService,
		VesselID:         j.VesselID,
		Location:         j.Location,
		CustomerID:       j.CustomerID,
	}
}

func FromDataModel(j *jobDatamodel.Job) *Job {
	return &Job{
		ID:               j.ID,
		JobNumber:        j.JobNumber,
		DateCreated:      j.DateCreated,
		ScheduledDate:    j.ScheduledDate,
		RequestedService: j.RequestedService,
		VesselID:         j.VesselID,
		Location:         j.Location,
		CustomerID:       j.CustomerID,
	}
}
