// Package docnumber builds sequential job and purchase-order numbers of the
// form MMYYNNNN, restarting the sequence each month.
package docnumber

import (
	"fmt"
	"strconv"
	"time"
)

const (
	seqWidth = 4
	Length   = 4 + seqWidth
)

// Prefix is the month-year part, e.g. "1125" for November 2025.
func Prefix(t time.Time) string {
	return t.Format("0106")
}

// Next returns the number following last within prefix. An empty or
// unparsable last starts the sequence at 1.
func Next(prefix, last string) (string, error) {
	seq := 1
	if len(last) >= seqWidth {
		n, err := strconv.Atoi(last[len(last)-seqWidth:])
		if err == nil {
			seq = n + 1
		}
	}
	if seq > 9999 {
		return "", fmt.Errorf("sequence exhausted for prefix %s", prefix)
	}
	return fmt.Sprintf("%s%0*d", prefix, seqWidth, seq), nil
}
