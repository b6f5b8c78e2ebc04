package timebook

import (
	"time"

	datamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/timebook"
)

const DateLayout = "2006-01-02"

// Entry is a single time entry. StartTime and StopTime are "HH:MM" or NoTime.
type Entry struct {
	ID          int64
	Employee    string
	Description string
	Date        time.Time
	StartTime   string
	StopTime    string
	JobNumber   string
	Mileage     int
	Location    string
	Billable    bool
	PayRateRT   float64
	PayRateOT   float64
	Paid        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Hours is defined for every entry; unrecorded times count as zero.
func (e Entry) Hours() float64 {
	return ComputeHours(e.StartTime, e.StopTime)
}

func (e Entry) DateKey() string {
	return e.Date.Format(DateLayout)
}

func FromDataModel(m *datamodel.Timebook) Entry {
	return Entry{
		ID:          m.ID,
		Employee:    m.Employee,
		Description: m.Description,
		Date:        DateOnly(m.TimeDate),
		StartTime:   clockOrUnset(m.StartTime),
		StopTime:    clockOrUnset(m.StopTime),
		JobNumber:   m.JobNumber,
		Mileage:     m.Mileage,
		Location:    m.Location,
		Billable:    m.Billable,
		PayRateRT:   m.PayRateRT,
		PayRateOT:   m.PayRateOT,
		Paid:        m.Paid,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToDataModel maps back to storage. Times that do not parse are stored unset.
func (e Entry) ToDataModel() *datamodel.Timebook {
	start, _ := ParseClock(e.StartTime)
	stop, _ := ParseClock(e.StopTime)
	return &datamodel.Timebook{
		ID:          e.ID,
		Employee:    e.Employee,
		Description: e.Description,
		TimeDate:    DateOnly(e.Date),
		StartTime:   start.Ptr(),
		StopTime:    stop.Ptr(),
		JobNumber:   e.JobNumber,
		Mileage:     e.Mileage,
		Location:    e.Location,
		Billable:    e.Billable,
		PayRateRT:   e.PayRateRT,
		PayRateOT:   e.PayRateOT,
		Paid:        e.Paid,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func clockOrUnset(s *string) string {
	if s == nil || *s == "" {
		return NoTime
	}
	c, err := ParseClock(*s)
	if err != nil {
		return *s
	}
	return c.String()
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
