package invoice

import (
	"fmt"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal/timebook"
)

const (
	DisplayDateLayout = "January 02, 2006"
	stampLayout       = "20060102"
)

// DurationHours is the billed length of a shift. Unlike timebook.ComputeHours
// a stop before the start means the shift ran past midnight.
func DurationHours(start, stop string) float64 {
	a, err := timebook.ParseClock(start)
	if err != nil || !a.IsSet() {
		return 0
	}
	b, err := timebook.ParseClock(stop)
	if err != nil || !b.IsSet() {
		return 0
	}
	minutes := b.Minutes() - a.Minutes()
	if minutes < 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60
}

// ComputeLaborTotal sums hours times the regular rate over billable entries.
func ComputeLaborTotal(entries []timebook.Entry) float64 {
	var total float64
	for _, e := range entries {
		if !e.Billable {
			continue
		}
		total += DurationHours(e.StartTime, e.StopTime) * e.PayRateRT
	}
	return total
}

// Number is INV-{YYYYMMDD}-{job} for the day the invoice is issued.
func Number(issued time.Time, jobNumber string) string {
	return fmt.Sprintf("INV-%s-%s", issued.Format(stampLayout), jobNumber)
}

func Filename(issued time.Time, jobNumber, ext string) string {
	return fmt.Sprintf("Invoice_%s_%s.%s", jobNumber, issued.Format(stampLayout), ext)
}

type JobInfo struct {
	ID               int64
	JobNumber        string
	RequestedService string
	Location         string
	ScheduledDate    time.Time
	CustomerID       *int64
}

type CustomerInfo struct {
	ID          int64
	Name        string
	ContactInfo string
	Address     string
	Phone       string
}

type Line struct {
	Entry  timebook.Entry
	Hours  float64
	Amount float64
}

// Document is everything a renderer needs. Amounts are raw numbers; the
// renderer owns their formatting.
type Document struct {
	Number         string
	IssuedAt       time.Time
	InvoiceDate    time.Time
	Job            JobInfo
	Customer       *CustomerInfo
	Lines          []Line
	LaborTotal     float64
	MaterialsTotal float64
	Total          float64
}

// Build computes totals for a job's entries. Materials are not tracked and
// always count as zero.
func Build(job JobInfo, customer *CustomerInfo, entries []timebook.Entry, invoiceDate, issued time.Time) Document {
	lines := make([]Line, 0, len(entries))
	for _, e := range entries {
		hours := DurationHours(e.StartTime, e.StopTime)
		var amount float64
		if e.Billable {
			amount = hours * e.PayRateRT
		}
		lines = append(lines, Line{Entry: e, Hours: hours, Amount: amount})
	}

	labor := ComputeLaborTotal(entries)
	materials := 0.0
	return Document{
		Number:         Number(issued, job.JobNumber),
		IssuedAt:       issued,
		InvoiceDate:    invoiceDate,
		Job:            job,
		Customer:       customer,
		Lines:          lines,
		LaborTotal:     labor,
		MaterialsTotal: materials,
		Total:          labor + materials,
	}
}
