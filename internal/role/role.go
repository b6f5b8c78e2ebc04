package role

import (
	"time"

	roleDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/role"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
)

type Role struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Permissions permission.Grid    `json:"permissions"`
	Pages       permission.FlatMap `json:"pages"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func FromDataModel(r *roleDatamodel.Role) *Role {
	grid := r.Permissions.Normalize()
	return &Role{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: grid,
		Pages:       permission.DeriveFlat(grid),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ToDataModel(r *Role) *roleDatamodel.Role {
	return &roleDatamodel.Role{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: r.Permissions,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Membership is the part of a user row that follows its role.
type Membership struct {
	UserID   int64
	Username string
	Class    identity.RoleClass
	Flat     permission.FlatMap
	RoleID   *int64
}

// ClassForRole is admin only for the role named Admin.
func ClassForRole(r *Role) identity.RoleClass {
	if r != nil && r.Name == permission.AdminRoleName {
		return identity.ClassAdmin
	}
	return identity.ClassUser
}

// Apply points m at r and recomputes its cached pages and class. A nil role
// or one with an empty grid leaves every page off.
func Apply(m *Membership, r *Role) {
	if r == nil {
		m.RoleID = nil
		m.Flat = permission.EmptyFlat()
		m.Class = identity.ClassUser
	} else {
		id := r.ID
		m.RoleID = &id
		m.Flat = permission.EmptyFlat()
		if !r.Permissions.IsEmpty() {
			m.Flat = permission.DeriveFlat(r.Permissions)
		}
		m.Class = ClassForRole(r)
	}
	protectBootstrap(m)
}

// Detach drops m from its deleted role: no role, no pages, plain user class.
func Detach(m *Membership) {
	m.RoleID = nil
	m.Flat = permission.FlatMap{}
	m.Class = identity.ClassUser
	protectBootstrap(m)
}

func protectBootstrap(m *Membership) {
	if m.Username != identity.BootstrapUsername {
		return
	}
	m.Flat = m.Flat.Union(permission.FullFlat())
	m.Class = identity.ClassAdmin
}
