package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	datamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/timebook"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dberr"
	"github.com/frahmantamala/maritime-backoffice/internal/timebook"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TimebookRepository implements timebook.Repository using GORM
type TimebookRepository struct {
	db *gorm.DB
}

func NewTimebookRepository(db *gorm.DB) *TimebookRepository {
	return &TimebookRepository{db: db}
}

func (r *TimebookRepository) List(ctx context.Context, filter timebook.ListFilter) ([]timebook.Entry, error) {
	q := r.db.WithContext(ctx).Model(&datamodel.Timebook{})
	if filter.Employee != "" {
		q = q.Where("employee = ?", filter.Employee)
	}
	if filter.JobNumber != "" {
		q = q.Where("job_number = ?", filter.JobNumber)
	}
	if !filter.From.IsZero() {
		q = q.Where("time_date >= ?", timebook.DateOnly(filter.From))
	}
	if !filter.To.IsZero() {
		q = q.Where("time_date < ?", timebook.DateOnly(filter.To).AddDate(0, 0, 1))
	}

	var rows []datamodel.Timebook
	if err := q.Order("time_date DESC").Order("start_time").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]timebook.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, timebook.FromDataModel(&rows[i]))
	}
	return entries, nil
}

func (r *TimebookRepository) GetByID(ctx context.Context, id int64) (*timebook.Entry, error) {
	var row datamodel.Timebook
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, internal.ErrEntryNotFound
		}
		return nil, err
	}
	e := timebook.FromDataModel(&row)
	return &e, nil
}

func (r *TimebookRepository) Create(ctx context.Context, e *timebook.Entry) error {
	row := e.ToDataModel()
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*e = timebook.FromDataModel(row)
	return nil
}

func (r *TimebookRepository) UpdateGuarded(ctx context.Context, id int64, check func(timebook.Entry) error, apply func(*timebook.Entry) error) (*timebook.Entry, error) {
	var out timebook.Entry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockEntry(tx, id)
		if err != nil {
			return err
		}
		if err := check(current); err != nil {
			return err
		}
		if err := apply(&current); err != nil {
			return err
		}
		current.ID = id
		current.UpdatedAt = time.Now()

		row := current.ToDataModel()
		if err := tx.Save(row).Error; err != nil {
			return err
		}
		out = timebook.FromDataModel(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *TimebookRepository) DeleteGuarded(ctx context.Context, id int64, check func(timebook.Entry) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockEntry(tx, id)
		if err != nil {
			return err
		}
		if err := check(current); err != nil {
			return err
		}
		return tx.Delete(&datamodel.Timebook{}, id).Error
	})
}

// MarkPaid flags unpaid entries among ids as paid and reports how many changed.
func (r *TimebookRepository) MarkPaid(ctx context.Context, ids []int64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&datamodel.Timebook{}).
			Where("id IN ? AND paid = ?", ids, false).
			Updates(map[string]interface{}{
				"paid":       true,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

func lockEntry(tx *gorm.DB, id int64) (timebook.Entry, error) {
	var row datamodel.Timebook
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&row, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return timebook.Entry{}, internal.ErrEntryNotFound
		}
		return timebook.Entry{}, err
	}
	return timebook.FromDataModel(&row), nil
}
