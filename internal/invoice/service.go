package invoice

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/core/common/validation"
	"github.com/frahmantamala/maritime-backoffice/internal/timebook"
)

// Source reads what an invoice is built from. None of it needs a transaction.
type Source interface {
	Job(ctx context.Context, id int64) (*JobInfo, error)
	EntriesForJob(ctx context.Context, jobNumber string) ([]timebook.Entry, error)
	Customer(ctx context.Context, id int64) (*CustomerInfo, error)
}

type GenerateRequest struct {
	JobID       int64  `json:"job_id"`
	CustomerID  *int64 `json:"customer_id,omitempty"`
	InvoiceDate string `json:"invoice_date,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("job_id", r.JobID).Required()
	v.Field("invoice_date", r.InvoiceDate).Date(timebook.DateLayout)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// File is a rendered invoice ready to be sent.
type File struct {
	Name        string
	ContentType string
	Content     []byte
	Document    Document
}

type Service struct {
	source   Source
	renderer Renderer
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(source Source, renderer Renderer, logger *slog.Logger) *Service {
	return &Service{
		source:   source,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Generate loads the job, its entries and the optional customer, then renders.
// The customer defaults to the job's own when the request names none.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*File, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job, err := s.source.Job(ctx, req.JobID)
	if err != nil {
		s.logger.Error("invoice: job lookup failed", "error", err, "job_id", req.JobID)
		return nil, err
	}

	entries, err := s.source.EntriesForJob(ctx, job.JobNumber)
	if err != nil {
		s.logger.Error("invoice: entries lookup failed", "error", err, "job_number", job.JobNumber)
		return nil, err
	}

	customerID := req.CustomerID
	if customerID == nil {
		customerID = job.CustomerID
	}
	var customer *CustomerInfo
	if customerID != nil {
		customer, err = s.source.Customer(ctx, *customerID)
		if err != nil {
			s.logger.Error("invoice: customer lookup failed", "error", err, "customer_id", *customerID)
			return nil, err
		}
	}

	issued := s.now()
	invoiceDate := issued
	if req.InvoiceDate != "" {
		invoiceDate, _ = time.Parse(timebook.DateLayout, req.InvoiceDate)
	}

	doc := Build(*job, customer, entries, invoiceDate, issued)
	content, err := s.renderer.Render(ctx, doc)
	if err != nil {
		s.logger.Error("invoice: render failed", "error", err, "job_number", job.JobNumber)
		return nil, internal.NewInternalError("failed to render invoice", err)
	}

	s.logger.Info("invoice generated",
		"invoice_number", doc.Number,
		"job_number", job.JobNumber,
		"entries", len(entries),
		"total", doc.Total)

	return &File{
		Name:        Filename(issued, job.JobNumber, s.renderer.Extension()),
		ContentType: s.renderer.ContentType(),
		Content:     content,
		Document:    doc,
	}, nil
}
