package role

import (
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal/permission"
)

type Role struct {
	ID          int64           `gorm:"primaryKey"`
	Name        string          `gorm:"column:name;size:50;uniqueIndex;not null"`
	Permissions permission.Grid `gorm:"column:permissions;type:text"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (Role) TableName() string {
	return "roles"
}
