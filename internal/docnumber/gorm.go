package docnumber

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Assign reads the highest number in table.column carrying the current
// prefix and returns its successor. Call it inside the creating transaction.
func Assign(tx *gorm.DB, table, column string, now time.Time) (string, error) {
	prefix := Prefix(now)

	var last []string
	err := tx.Table(table).
		Where(fmt.Sprintf("%s LIKE ?", column), prefix+"%").
		Order(fmt.Sprintf("%s DESC", column)).
		Limit(1).
		Pluck(column, &last).Error
	if err != nil {
		return "", fmt.Errorf("read last %s: %w", column, err)
	}

	prev := ""
	if len(last) > 0 {
		prev = last[0]
	}
	return Next(prefix, prev)
}
