package timebook

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const weekSheet = "Timebook"

var exportHeader = []interface{}{
	"Date", "Employee", "Job Number", "Description", "Start", "Stop",
	"Hours", "Mileage", "Location", "Billable", "Rate RT", "Rate OT", "Paid",
}

// WriteWeekWorkbook writes one sheet with a header row, one row per entry in
// week order and a closing totals row.
func WriteWeekWorkbook(week []time.Time, buckets map[string][]Entry, employee string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(weekSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(weekSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeader))
	if err := f.SetCellStyle(weekSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	row := 2
	var total float64
	for _, day := range week {
		for _, e := range buckets[day.Format(DateLayout)] {
			hours := e.Hours()
			total += hours
			values := []interface{}{
				e.DateKey(), e.Employee, e.JobNumber, e.Description, e.StartTime, e.StopTime,
				hours, e.Mileage, e.Location, billableLabel(e.Billable), e.PayRateRT, e.PayRateOT, e.Paid,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(weekSheet, cell, &values); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	label := "Week total"
	if employee != "" {
		label = fmt.Sprintf("Week total (%s)", employee)
	}
	totals := []interface{}{label, nil, nil, nil, nil, nil, total}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(weekSheet, cell, &totals); err != nil {
		return nil, fmt.Errorf("write totals: %w", err)
	}
	end, _ := excelize.CoordinatesToCellName(len(totals), row)
	if err := f.SetCellStyle(weekSheet, cell, end, bold); err != nil {
		return nil, fmt.Errorf("style totals: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename is Timebook_{start}[_{employee}].xlsx.
func ExportFilename(start time.Time, employee string) string {
	var b strings.Builder
	b.WriteString("Timebook_")
	b.WriteString(start.Format("20060102"))
	if employee != "" {
		b.WriteString("_")
		b.WriteString(strings.ReplaceAll(strings.TrimSpace(employee), " ", "_"))
	}
	b.WriteString(".xlsx")
	return b.String()
}
