package postgres

import (
	"context"

	"github.com/frahmantamala/maritime-backoffice/internal"
	jobDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/job"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dberr"
	"github.com/frahmantamala/maritime-backoffice/internal/job"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) List(ctx context.Context) ([]*job.Job, error) {
	var rows []jobDatamodel.Job
	if err := r.db.WithContext(ctx).Order("date_created DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*job.Job, 0, len(rows))
	for i := range rows {
		out = append(out, job.FromDataModel(&rows[i]))
	}
	return out, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*job.Job, error) {
	var row jobDatamodel.Job
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, internal.ErrJobNotFound
		}
		return nil, err
	}
	return job.FromDataModel(&row), nil
}

// Create inserts the job. The datamodel hook numbers it inside the same
// transaction gorm opens for the insert.
func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	row := job.ToDataModel(j)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return internal.ErrDuplicateRecord.WithCause(err)
		}
		return err
	}
	*j = *job.FromDataModel(row)
	return nil
}

func (r *JobRepository) Update(ctx context.Context, j *job.Job) error {
	res := r.db.WithContext(ctx).Model(&jobDatamodel.Job{}).
		Where("id = ?", j.ID).
		Updates(map[string]interface{}{
			"scheduled_date":    j.ScheduledDate,
			"requested_service": j.RequestedService,
			"vessel_id":         j.VesselID,
			"location":          j.Location,
			"customer_id":       j.CustomerID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&jobDatamodel.Job{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) JobNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&jobDatamodel.Job{}).
		Order("job_number").
		Pluck("job_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}
