package role

import (
	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/core/common/sanitize"
	"github.com/frahmantamala/maritime-backoffice/internal/core/common/validation"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
)

// RoleRequest creates or replaces a role. Permissions accepts both JSON
// booleans and "true"/"on" style strings from form posts.
type RoleRequest struct {
	Name        string          `json:"name"`
	Permissions permission.Grid `json:"permissions"`
}

func (r *RoleRequest) Validate() error {
	r.Name = sanitize.Text(r.Name)

	v := validation.NewValidator()
	v.Field("name", r.Name).Required().MaxLength(50)
	v.Field("permissions", r.Permissions).Custom(func(value interface{}) *internal.AppError {
		grid, _ := value.(permission.Grid)
		if err := grid.Validate(); err != nil {
			return internal.NewValidationFieldError("permissions", err.Error(), internal.ErrCodeInvalidPermission)
		}
		return nil
	})
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
