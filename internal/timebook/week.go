package timebook

import (
	"fmt"
	"time"
)

const (
	WeekDays        = 7
	weekOptionCount = 4
	optionLabel     = "January 02, 2006"
)

// ComputeWeekWindow returns seven consecutive dates. A requested
// "YYYY-MM-DD" is day one; otherwise the week starts on the Monday of today.
func ComputeWeekWindow(requested string, today time.Time) []time.Time {
	start, err := time.Parse(DateLayout, requested)
	if err != nil {
		today = DateOnly(today)
		offset := (int(today.Weekday()) + 6) % 7
		start = today.AddDate(0, 0, -offset)
	}

	week := make([]time.Time, WeekDays)
	for i := range week {
		week[i] = start.AddDate(0, 0, i)
	}
	return week
}

// BucketEntries groups entries by date key. Every day of the week has a key,
// and entries keep their input order. Entries outside the week are dropped.
func BucketEntries(entries []Entry, week []time.Time) map[string][]Entry {
	buckets := make(map[string][]Entry, len(week))
	for _, d := range week {
		buckets[d.Format(DateLayout)] = []Entry{}
	}
	for _, e := range entries {
		key := e.DateKey()
		if _, ok := buckets[key]; ok {
			buckets[key] = append(buckets[key], e)
		}
	}
	return buckets
}

type WeekOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// WeekOptions lists the Monday of the current week and the three before it.
func WeekOptions(now time.Time) []WeekOption {
	monday := ComputeWeekWindow("", now)[0]
	opts := make([]WeekOption, 0, weekOptionCount)
	for i := 0; i < weekOptionCount; i++ {
		start := monday.AddDate(0, 0, -7*i)
		label := fmt.Sprintf("Current Week (%s)", start.Format(optionLabel))
		if i > 0 {
			label = fmt.Sprintf("Week -%d (%s)", i, start.Format(optionLabel))
		}
		opts = append(opts, WeekOption{Value: start.Format(DateLayout), Label: label})
	}
	return opts
}

// DayTotals sums hours per date key.
func DayTotals(buckets map[string][]Entry) (map[string]float64, float64) {
	totals := make(map[string]float64, len(buckets))
	var week float64
	for key, entries := range buckets {
		var day float64
		for _, e := range entries {
			day += e.Hours()
		}
		totals[key] = day
		week += day
	}
	return totals, week
}
