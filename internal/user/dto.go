package user

import (
	"strings"

	"github.com/frahmantamala/maritime-backoffice/internal/core/common/validation"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
)

const minPasswordLength = 6

type CreateUserRequest struct {
	Username         string  `json:"username"`
	Password         string  `json:"password"`
	RoleID           *int64  `json:"role_id,omitempty"`
	EmployeeFullName *string `json:"employee_full_name,omitempty"`
	NonPersonnel     bool    `json:"is_np"`
}

func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.EmployeeFullName = trimOptional(r.EmployeeFullName)

	v := validation.NewValidator()
	v.Field("username", r.Username).Required().MaxLength(50)
	v.Field("password", r.Password).Required().MinLength(minPasswordLength)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type EditUserRequest struct {
	Username         string  `json:"username"`
	RoleID           *int64  `json:"role_id,omitempty"`
	EmployeeFullName *string `json:"employee_full_name,omitempty"`
}

func (r *EditUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.EmployeeFullName = trimOptional(r.EmployeeFullName)

	v := validation.NewValidator()
	v.Field("username", r.Username).Required().MaxLength(50)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

func (r *ChangePasswordRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("password", r.Password).Required().MinLength(minPasswordLength)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// MeView is what a logged-in user learns about themselves.
type MeView struct {
	ID           int64              `json:"id"`
	Username     string             `json:"username"`
	RoleClass    string             `json:"role_class"`
	EmployeeName string             `json:"employee_name,omitempty"`
	Permissions  permission.FlatMap `json:"permissions"`
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
