package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/user"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/role"
)

type User struct {
	ID               int64              `json:"id"`
	Username         string             `json:"username"`
	PasswordHash     string             `json:"-"`
	RoleClass        identity.RoleClass `json:"role_class"`
	EmployeeFullName *string            `json:"employee_full_name,omitempty"`
	NonPersonnel     bool               `json:"non_personnel"`
	Permissions      permission.FlatMap `json:"permissions"`
	RoleID           *int64             `json:"role_id,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func (u *User) IsBootstrapAdmin() bool {
	return u.Username == identity.BootstrapUsername
}

// SessionClass is the class a login of this user runs as.
func (u *User) SessionClass() identity.RoleClass {
	return identity.ClassFor(string(u.RoleClass), u.EmployeeFullName, u.NonPersonnel)
}

func (u *User) EmployeeName() string {
	if u.EmployeeFullName == nil {
		return ""
	}
	return *u.EmployeeFullName
}

// CanAccess reports page access from the cached flat map. Admins see every page.
func (u *User) CanAccess(page permission.Page) bool {
	if u.RoleClass == identity.ClassAdmin {
		return true
	}
	return u.Permissions.Allows(page)
}

func (u *User) membership() role.Membership {
	return role.Membership{
		UserID:   u.ID,
		Username: u.Username,
		Class:    u.RoleClass,
		Flat:     u.Permissions,
		RoleID:   u.RoleID,
	}
}

func (u *User) adopt(m role.Membership) {
	u.RoleClass = m.Class
	u.Permissions = m.Flat
	u.RoleID = m.RoleID
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:               u.ID,
		Username:         u.Username,
		PasswordHash:     u.PasswordHash,
		Role:             string(u.RoleClass),
		EmployeeFullName: u.EmployeeFullName,
		NonPersonnel:     u.NonPersonnel,
		Permissions:      u.Permissions,
		RoleID:           u.RoleID,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	flat := u.Permissions
	if flat == nil {
		flat = permission.FlatMap{}
	}
	return &User{
		ID:               u.ID,
		Username:         u.Username,
		PasswordHash:     u.PasswordHash,
		RoleClass:        identity.RoleClass(u.Role),
		EmployeeFullName: u.EmployeeFullName,
		NonPersonnel:     u.NonPersonnel,
		Permissions:      flat,
		RoleID:           u.RoleID,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
