package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	employeeDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/employee"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dberr"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dbtx"
	"github.com/frahmantamala/maritime-backoffice/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	var rows []employeeDatamodel.Employee
	if err := dbtx.DB(ctx, r.db).Order("full_name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*employee.Employee, 0, len(rows))
	for i := range rows {
		out = append(out, employee.FromDataModel(&rows[i]))
	}
	return out, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	if err := dbtx.DB(ctx, r.db).First(&row, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	row := employee.ToDataModel(e)
	if err := dbtx.DB(ctx, r.db).Create(row).Error; err != nil {
		return err
	}
	*e = *employee.FromDataModel(row)
	return nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	e.UpdatedAt = time.Now()
	res := dbtx.DB(ctx, r.db).Model(&employeeDatamodel.Employee{}).
		Where("id = ?", e.ID).
		Select("*").Omit("id", "created_at").
		Updates(employee.ToDataModel(e))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	res := dbtx.DB(ctx, r.db).Delete(&employeeDatamodel.Employee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

// Names returns every full name in insertion order. Timebook scoping takes
// the first one as the fallback for non-personnel logins.
func (r *EmployeeRepository) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := dbtx.DB(ctx, r.db).Model(&employeeDatamodel.Employee{}).
		Order("id").
		Pluck("full_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
