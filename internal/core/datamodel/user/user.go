package user

import (
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal/permission"
)

type User struct {
	ID               int64              `gorm:"primaryKey"`
	Username         string             `gorm:"column:username;size:50;uniqueIndex;not null"`
	PasswordHash     string             `gorm:"column:password_hash;size:128;not null"`
	Role             string             `gorm:"column:role;size:20;not null"`
	EmployeeFullName *string            `gorm:"column:employee_full_name;size:100"`
	NonPersonnel     bool               `gorm:"column:non_personnel;not null"`
	Permissions      permission.FlatMap `gorm:"column:permissions;type:text"`
	RoleID           *int64             `gorm:"column:role_id;index"`
	CreatedAt        time.Time          `gorm:"column:created_at"`
	UpdatedAt        time.Time          `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
