package timebook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/core/common/sanitize"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
	GetByID(ctx context.Context, id int64) (*Entry, error)
	Create(ctx context.Context, e *Entry) error
	// UpdateGuarded loads the entry, runs check against it and persists the
	// result of apply, all inside one transaction.
	UpdateGuarded(ctx context.Context, id int64, check func(Entry) error, apply func(*Entry) error) (*Entry, error)
	DeleteGuarded(ctx context.Context, id int64, check func(Entry) error) error
	MarkPaid(ctx context.Context, ids []int64) (int64, error)
}

// EmployeeDirectory lists employee full names in a stable order.
type EmployeeDirectory interface {
	Names(ctx context.Context) ([]string, error)
}

type JobLookup interface {
	JobNumbers(ctx context.Context) ([]string, error)
}

type Service struct {
	repo      Repository
	employees EmployeeDirectory
	jobs      JobLookup
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, employees EmployeeDirectory, jobs JobLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		jobs:      jobs,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for the default week.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) actingEmployee(ctx context.Context, sess identity.SessionContext) (string, []string, error) {
	names, err := s.employees.Names(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("load employee directory: %w", err)
	}
	acting, _ := identity.ResolveActingEmployee(sess, names)
	return acting, names, nil
}

// List returns entries visible to the session. Admins may filter by employee;
// everyone else only sees the employee they act as.
func (s *Service) List(ctx context.Context, sess identity.SessionContext, filter ListFilter) ([]EntryView, error) {
	if !sess.IsAdmin() {
		acting, _, err := s.actingEmployee(ctx, sess)
		if err != nil {
			return nil, err
		}
		if acting == "" {
			s.logger.Info("timebook list: no acting employee", "username", sess.Username)
			return []EntryView{}, nil
		}
		filter.Employee = acting
	}

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list timebook entries", "error", err)
		return nil, err
	}

	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, ViewOf(e))
	}
	return views, nil
}

type weekData struct {
	week     []time.Time
	buckets  map[string][]Entry
	employee string
	names    []string
}

func (s *Service) loadWeek(ctx context.Context, sess identity.SessionContext, requested, employee string) (*weekData, error) {
	acting, names, err := s.actingEmployee(ctx, sess)
	if err != nil {
		return nil, err
	}

	selected := strings.TrimSpace(employee)
	if !sess.IsAdmin() {
		if acting == "" {
			return nil, internal.ErrNoActingEmployee
		}
		selected = acting
	} else if selected != "" {
		if canonical, ok := matchName(names, selected); ok {
			selected = canonical
		}
	}

	week := ComputeWeekWindow(requested, s.now())
	entries, err := s.repo.List(ctx, ListFilter{
		Employee: selected,
		From:     week[0],
		To:       week[len(week)-1],
	})
	if err != nil {
		s.logger.Error("failed to load week entries", "error", err, "week_start", week[0])
		return nil, err
	}

	return &weekData{
		week:     week,
		buckets:  BucketEntries(entries, week),
		employee: selected,
		names:    names,
	}, nil
}

// Week builds the seven-day grid for the session.
func (s *Service) Week(ctx context.Context, sess identity.SessionContext, requested, employee string) (*WeekView, error) {
	data, err := s.loadWeek(ctx, sess, requested, employee)
	if err != nil {
		return nil, err
	}

	dayTotals, weekTotal := DayTotals(data.buckets)
	view := &WeekView{
		Week:             make([]string, 0, len(data.week)),
		Entries:          make(map[string][]EntryView, len(data.buckets)),
		DayTotals:        dayTotals,
		WeekTotal:        weekTotal,
		SelectedEmployee: data.employee,
		WeekOptions:      WeekOptions(s.now()),
	}
	if sess.IsAdmin() {
		view.Employees = data.names
	}
	for _, d := range data.week {
		key := d.Format(DateLayout)
		view.Week = append(view.Week, key)
		views := make([]EntryView, 0, len(data.buckets[key]))
		for _, e := range data.buckets[key] {
			views = append(views, ViewOf(e))
		}
		view.Entries[key] = views
	}
	return view, nil
}

// ExportWeek renders the same week as an XLSX workbook.
func (s *Service) ExportWeek(ctx context.Context, sess identity.SessionContext, requested, employee string) ([]byte, string, error) {
	data, err := s.loadWeek(ctx, sess, requested, employee)
	if err != nil {
		return nil, "", err
	}

	content, err := WriteWeekWorkbook(data.week, data.buckets, data.employee)
	if err != nil {
		s.logger.Error("failed to export week", "error", err)
		return nil, "", err
	}
	return content, ExportFilename(data.week[0], data.employee), nil
}

func (s *Service) Create(ctx context.Context, sess identity.SessionContext, req EntryRequest) (*EntryView, error) {
	acting, names, err := s.actingEmployee(ctx, sess)
	if err != nil {
		return nil, err
	}

	entry, err := s.buildEntry(ctx, req, names)
	if err != nil {
		return nil, err
	}
	if !sess.IsAdmin() && entry.Employee != identity.OwnerName(sess, acting) {
		s.logger.Warn("timebook create for another employee denied",
			"username", sess.Username,
			"employee", entry.Employee)
		return nil, internal.ErrNotOwner
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("failed to create timebook entry", "error", err, "employee", entry.Employee)
		return nil, err
	}

	s.logger.Info("timebook entry created", "entry_id", entry.ID, "employee", entry.Employee, "date", entry.DateKey())
	view := ViewOf(*entry)
	return &view, nil
}

func (s *Service) Update(ctx context.Context, sess identity.SessionContext, id int64, req EntryRequest) (*EntryView, error) {
	acting, names, err := s.actingEmployee(ctx, sess)
	if err != nil {
		return nil, err
	}

	next, err := s.buildEntry(ctx, req, names)
	if err != nil {
		return nil, err
	}
	if !sess.IsAdmin() && next.Employee != identity.OwnerName(sess, acting) {
		return nil, internal.ErrNotOwner
	}

	check := func(current Entry) error {
		return AuthorizeMutation(current, sess, acting)
	}
	apply := func(current *Entry) error {
		next.ID = current.ID
		next.CreatedAt = current.CreatedAt
		*current = *next
		return nil
	}

	updated, err := s.repo.UpdateGuarded(ctx, id, check, apply)
	if err != nil {
		s.logger.Warn("timebook update rejected", "error", err, "entry_id", id, "username", sess.Username)
		return nil, err
	}

	s.logger.Info("timebook entry updated", "entry_id", id, "username", sess.Username)
	view := ViewOf(*updated)
	return &view, nil
}

func (s *Service) Delete(ctx context.Context, sess identity.SessionContext, id int64) error {
	acting, _, err := s.actingEmployee(ctx, sess)
	if err != nil {
		return err
	}

	err = s.repo.DeleteGuarded(ctx, id, func(current Entry) error {
		return AuthorizeMutation(current, sess, acting)
	})
	if err != nil {
		s.logger.Warn("timebook delete rejected", "error", err, "entry_id", id, "username", sess.Username)
		return err
	}

	s.logger.Info("timebook entry deleted", "entry_id", id, "username", sess.Username)
	return nil
}

// MarkPaid closes entries for payroll. Only admins may do this.
func (s *Service) MarkPaid(ctx context.Context, sess identity.SessionContext, ids []int64) (int64, error) {
	if !sess.IsAdmin() {
		return 0, internal.ErrAdminRequired
	}
	if len(ids) == 0 {
		return 0, internal.NewValidationFieldError("ids", "ids is required", internal.ErrCodeValidationFailed)
	}

	n, err := s.repo.MarkPaid(ctx, ids)
	if err != nil {
		s.logger.Error("failed to mark entries paid", "error", err)
		return 0, err
	}
	s.logger.Info("timebook entries marked paid", "count", n, "username", sess.Username)
	return n, nil
}

// buildEntry validates a request and resolves its references. Paid is
// always false here.
func (s *Service) buildEntry(ctx context.Context, req EntryRequest, names []string) (*Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	stop, err := ParseClock(req.StopTime)
	if err != nil {
		return nil, err
	}

	employee, ok := matchName(names, req.Employee)
	if !ok {
		return nil, internal.NewValidationFieldError("employee", "unknown employee", internal.ErrCodeEmployeeNotFound)
	}

	jobNumber := strings.TrimSpace(req.JobNumber)
	if jobNumber != "" {
		numbers, err := s.jobs.JobNumbers(ctx)
		if err != nil {
			return nil, fmt.Errorf("load job numbers: %w", err)
		}
		canonical, ok := matchName(numbers, jobNumber)
		if !ok {
			return nil, internal.NewValidationFieldError("job_number", "unknown job number", internal.ErrCodeJobNotFound)
		}
		jobNumber = canonical
	}

	date, _ := time.Parse(DateLayout, req.Date)

	return &Entry{
		Employee:    employee,
		Description: sanitize.Text(req.Description),
		Date:        date,
		StartTime:   start.String(),
		StopTime:    stop.String(),
		JobNumber:   jobNumber,
		Mileage:     req.Mileage,
		Location:    sanitize.Text(req.Location),
		Billable:    req.Billable == billableYes,
		PayRateRT:   req.PayRateRT,
		PayRateOT:   req.PayRateOT,
		Paid:        false,
	}, nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchName finds the stored spelling of name.
func matchName(names []string, name string) (string, bool) {
	key := normalizeKey(name)
	for _, n := range names {
		if normalizeKey(n) == key {
			return n, true
		}
	}
	return "", false
}
