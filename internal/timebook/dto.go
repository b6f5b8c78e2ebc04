package timebook

import (
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/core/common/validation"
)

const (
	billableYes = "Yes"
	billableNo  = "No"
)

// EntryRequest is the create and update payload. Paid is not part of it.
type EntryRequest struct {
	Employee    string  `json:"employee"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	StopTime    string  `json:"stop_time"`
	JobNumber   string  `json:"job_number"`
	Mileage     int     `json:"mileage"`
	Location    string  `json:"location"`
	Billable    string  `json:"billable"`
	PayRateRT   float64 `json:"pay_rate_rt"`
	PayRateOT   float64 `json:"pay_rate_ot"`
}

func (r *EntryRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("employee", r.Employee).Required().MaxLength(100)
	v.Field("date", r.Date).Required().Date(DateLayout)
	v.Field("description", r.Description).MaxLength(200)
	v.Field("location", r.Location).MaxLength(100)
	v.Field("job_number", r.JobNumber).MaxLength(10)
	v.Field("billable", r.Billable).Required().OneOf(billableYes, billableNo)
	v.Field("mileage", r.Mileage).MinInt(0, internal.ErrCodeValidationFailed)
	v.Field("pay_rate_rt", r.PayRateRT).MinFloat(0)
	v.Field("pay_rate_ot", r.PayRateOT).MinFloat(0)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type MarkPaidRequest struct {
	IDs []int64 `json:"ids"`
}

type EntryView struct {
	ID          int64   `json:"id"`
	Employee    string  `json:"employee"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	StopTime    string  `json:"stop_time"`
	Hours       float64 `json:"hours"`
	JobNumber   string  `json:"job_number"`
	Mileage     int     `json:"mileage"`
	Location    string  `json:"location"`
	Billable    string  `json:"billable"`
	PayRateRT   float64 `json:"pay_rate_rt"`
	PayRateOT   float64 `json:"pay_rate_ot"`
	Paid        bool    `json:"paid"`
}

func ViewOf(e Entry) EntryView {
	return EntryView{
		ID:          e.ID,
		Employee:    e.Employee,
		Description: e.Description,
		Date:        e.DateKey(),
		StartTime:   e.StartTime,
		StopTime:    e.StopTime,
		Hours:       e.Hours(),
		JobNumber:   e.JobNumber,
		Mileage:     e.Mileage,
		Location:    e.Location,
		Billable:    billableLabel(e.Billable),
		PayRateRT:   e.PayRateRT,
		PayRateOT:   e.PayRateOT,
		Paid:        e.Paid,
	}
}

func billableLabel(b bool) string {
	if b {
		return billableYes
	}
	return billableNo
}

// ListFilter narrows a listing. Zero values mean no restriction; To is inclusive.
type ListFilter struct {
	Employee  string
	JobNumber string
	From      time.Time
	To        time.Time
}

type WeekView struct {
	Week             []string               `json:"week"`
	Entries          map[string][]EntryView `json:"entries"`
	DayTotals        map[string]float64     `json:"day_totals"`
	WeekTotal        float64                `json:"week_total"`
	SelectedEmployee string                 `json:"selected_employee,omitempty"`
	Employees        []string               `json:"employees,omitempty"`
	WeekOptions      []WeekOption           `json:"week_options"`
}
