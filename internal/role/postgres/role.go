package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	roleDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/role"
	userDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/user"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dberr"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dbtx"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/role"
	"gorm.io/gorm"
)

// RoleRepository implements role.Repository using GORM. Every method joins
// a transaction carried by the context.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) List(ctx context.Context) ([]*role.Role, error) {
	var rows []roleDatamodel.Role
	if err := dbtx.DB(ctx, r.db).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*role.Role, 0, len(rows))
	for i := range rows {
		out = append(out, role.FromDataModel(&rows[i]))
	}
	return out, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*role.Role, error) {
	row, err := findRole(dbtx.DB(ctx, r.db), id)
	if err != nil {
		return nil, err
	}
	return role.FromDataModel(row), nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*role.Role, error) {
	var row roleDatamodel.Role
	if err := dbtx.DB(ctx, r.db).Where("name = ?", name).First(&row).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, internal.ErrRoleNotFound
		}
		return nil, err
	}
	return role.FromDataModel(&row), nil
}

func (r *RoleRepository) Create(ctx context.Context, rl *role.Role) error {
	row := role.ToDataModel(rl)
	if err := dbtx.DB(ctx, r.db).Create(row).Error; err != nil {
		return translate(err)
	}
	*rl = *role.FromDataModel(row)
	return nil
}

func (r *RoleRepository) UpdateAndSync(ctx context.Context, rl *role.Role, assign func(*role.Membership)) (int64, error) {
	var synced int64
	err := dbtx.DB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		existing, err := findRole(tx, rl.ID)
		if err != nil {
			return err
		}

		existing.Name = rl.Name
		existing.Permissions = rl.Permissions
		existing.UpdatedAt = time.Now()
		if err := tx.Save(existing).Error; err != nil {
			return translate(err)
		}
		*rl = *role.FromDataModel(existing)

		synced, err = rewriteMembers(tx, rl.ID, assign)
		return err
	})
	if err != nil {
		return 0, err
	}
	return synced, nil
}

func (r *RoleRepository) DeleteAndDetach(ctx context.Context, id int64, detach func(*role.Membership)) (*role.Role, int64, error) {
	var (
		deleted  *role.Role
		detached int64
	)
	err := dbtx.DB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		existing, err := findRole(tx, id)
		if err != nil {
			return err
		}
		deleted = role.FromDataModel(existing)

		detached, err = rewriteMembers(tx, id, detach)
		if err != nil {
			return err
		}
		return tx.Delete(&roleDatamodel.Role{}, id).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return deleted, detached, nil
}

// rewriteMembers applies fn to every user holding roleID and writes back the
// role-derived columns.
func rewriteMembers(tx *gorm.DB, roleID int64, fn func(*role.Membership)) (int64, error) {
	var users []userDatamodel.User
	if err := tx.Where("role_id = ?", roleID).Order("id").Find(&users).Error; err != nil {
		return 0, fmt.Errorf("load role members: %w", err)
	}

	now := time.Now()
	for _, u := range users {
		m := role.Membership{
			UserID:   u.ID,
			Username: u.Username,
			Class:    identity.RoleClass(u.Role),
			Flat:     u.Permissions,
			RoleID:   u.RoleID,
		}
		fn(&m)

		err := tx.Model(&userDatamodel.User{}).
			Where("id = ?", u.ID).
			Updates(map[string]interface{}{
				"permissions": m.Flat,
				"role":        string(m.Class),
				"role_id":     m.RoleID,
				"updated_at":  now,
			}).Error
		if err != nil {
			return 0, fmt.Errorf("sync user %d: %w", u.ID, err)
		}
	}
	return int64(len(users)), nil
}

func findRole(db *gorm.DB, id int64) (*roleDatamodel.Role, error) {
	var row roleDatamodel.Role
	if err := db.First(&row, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, internal.ErrRoleNotFound
		}
		return nil, err
	}
	return &row, nil
}

func translate(err error) error {
	if dberr.IsUniqueViolation(err) {
		return internal.ErrDuplicateRoleName.WithCause(err)
	}
	return err
}
