package timebook

import (
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/pkg/logger"
)

// NoTime marks a start or stop that was not recorded.
const NoTime = "-"

const clockLayout = "15:04"

// Clock is a time of day at minute precision. The zero value is unset.
type Clock struct {
	minutes int
	set     bool
}

// ParseClock accepts "HH:MM" (and "HH:MM:SS" from older rows). Empty or "-"
// is an unset clock. Anything else fails with ErrInvalidTimeFormat.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == NoTime {
		return Clock{}, nil
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
	}
	if err != nil {
		return Clock{}, internal.ErrInvalidTimeFormat.WithCause(fmt.Errorf("parse %q: %w", s, err))
	}
	return Clock{minutes: t.Hour()*60 + t.Minute(), set: true}, nil
}

func (c Clock) IsSet() bool { return c.set }

func (c Clock) Minutes() int { return c.minutes }

func (c Clock) String() string {
	if !c.set {
		return NoTime
	}
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

// Ptr is the storage form: nil when unset.
func (c Clock) Ptr() *string {
	if !c.set {
		return nil
	}
	s := c.String()
	return &s
}

// ComputeHours is stop minus start in hours, with no overnight wrap. An
// unrecorded time yields 0; so does an unparsable one, after a warning.
func ComputeHours(start, stop string) float64 {
	if isUnset(start) || isUnset(stop) {
		return 0
	}
	a, err := ParseClock(start)
	if err != nil {
		logger.LoggerWrapper().Warn("timebook: unparsable start time", "start", start, "error", err)
		return 0
	}
	b, err := ParseClock(stop)
	if err != nil {
		logger.LoggerWrapper().Warn("timebook: unparsable stop time", "stop", stop, "error", err)
		return 0
	}
	return float64((b.minutes-a.minutes)*60) / 3600
}

func isUnset(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == NoTime
}
