package job

import (
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal/core/common/sanitize"
	"github.com/frahmantamala/maritime-backoffice/internal/core/common/validation"
)

type JobRequest struct {
	ScheduledDate    string `json:"scheduled_date"`
	RequestedService string `json:"requested_service,omitempty"`
	VesselID         *int64 `json:"vessel_id,omitempty"`
	Location         string `json:"location,omitempty"`
	CustomerID       *int64 `json:"customer_id,omitempty"`
}

func (r *JobRequest) Validate() error {
	r.RequestedService = sanitize.Text(r.RequestedService)
	r.Location = sanitize.Text(r.Location)

	v := validation.NewValidator()
	v.Field("scheduled_date", r.ScheduledDate).Required().Date(DateLayout)
	v.Field("location", r.Location).MaxLength(200)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (r *JobRequest) apply(j *Job) {
	j.ScheduledDate, _ = time.Parse(DateLayout, r.ScheduledDate)
	j.RequestedService = r.RequestedService
	j.VesselID = r.VesselID
	j.Location = r.Location
	j.CustomerID = r.CustomerID
}
