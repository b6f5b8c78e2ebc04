package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	userDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/user"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dberr"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dbtx"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM. It joins a
// transaction carried by the context.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var rows []userDatamodel.User
	if err := dbtx.DB(ctx, r.db).Order("username").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*user.User, 0, len(rows))
	for i := range rows {
		out = append(out, user.FromDataModel(&rows[i]))
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var row userDatamodel.User
	if err := dbtx.DB(ctx, r.db).First(&row, id).Error; err != nil {
		return nil, notFound(err)
	}
	return user.FromDataModel(&row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var row userDatamodel.User
	if err := dbtx.DB(ctx, r.db).Where("username = ?", username).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return user.FromDataModel(&row), nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	row := user.ToDataModel(u)
	if err := dbtx.DB(ctx, r.db).Create(row).Error; err != nil {
		return translate(err)
	}
	*u = *user.FromDataModel(row)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()
	row := user.ToDataModel(u)
	res := dbtx.DB(ctx, r.db).Model(&userDatamodel.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"username":           row.Username,
			"employee_full_name": row.EmployeeFullName,
			"role":               row.Role,
			"permissions":        row.Permissions,
			"role_id":            row.RoleID,
			"updated_at":         row.UpdatedAt,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res := dbtx.DB(ctx, r.db).Delete(&userDatamodel.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"password_hash": hash})
}

func (r *UserRepository) UpdatePermissions(ctx context.Context, id int64, flat permission.FlatMap) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"permissions": flat})
}

func (r *UserRepository) updateColumns(ctx context.Context, id int64, cols map[string]interface{}) error {
	cols["updated_at"] = time.Now()
	res := dbtx.DB(ctx, r.db).Model(&userDatamodel.User{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func notFound(err error) error {
	if dberr.IsNotFound(err) {
		return internal.ErrUserNotFound
	}
	return err
}

func translate(err error) error {
	if dberr.IsUniqueViolation(err) {
		return internal.ErrDuplicateUsername.WithCause(err)
	}
	return err
}
