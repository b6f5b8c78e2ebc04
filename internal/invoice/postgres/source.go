package postgres

import (
	"context"

	"github.com/frahmantamala/maritime-backoffice/internal"
	jobDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/job"
	recordsDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/records"
	timebookDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/timebook"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dberr"
	"github.com/frahmantamala/maritime-backoffice/internal/invoice"
	"github.com/frahmantamala/maritime-backoffice/internal/timebook"
	"gorm.io/gorm"
)

// Source implements invoice.Source with plain reads.
type Source struct {
	db *gorm.DB
}

func NewSource(db *gorm.DB) *Source {
	return &Source{db: db}
}

func (s *Source) Job(ctx context.Context, id int64) (*invoice.JobInfo, error) {
	var row jobDatamodel.Job
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, internal.ErrJobNotFound
		}
		return nil, err
	}
	return &invoice.JobInfo{
		ID:               row.ID,
		JobNumber:        row.JobNumber,
		RequestedService: row.RequestedService,
		Location:         row.Location,
		ScheduledDate:    row.ScheduledDate,
		CustomerID:       row.CustomerID,
	}, nil
}

func (s *Source) EntriesForJob(ctx context.Context, jobNumber string) ([]timebook.Entry, error) {
	var rows []timebookDatamodel.Timebook
	err := s.db.WithContext(ctx).
		Where("job_number = ?", jobNumber).
		Order("time_date").Order("start_time").Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]timebook.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, timebook.FromDataModel(&rows[i]))
	}
	return entries, nil
}

func (s *Source) Customer(ctx context.Context, id int64) (*invoice.CustomerInfo, error) {
	var row recordsDatamodel.Customer
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &invoice.CustomerInfo{
		ID:          row.ID,
		Name:        row.Name,
		ContactInfo: row.ContactInfo,
		Address:     row.Address,
		Phone:       row.Phone,
	}, nil
}
