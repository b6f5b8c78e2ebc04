package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	employeeDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/employee"
	jobDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/job"
	recordsDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/records"
	timebookDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/timebook"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/role"
	"github.com/frahmantamala/maritime-backoffice/internal/user"
	"gorm.io/gorm"
)

// DefaultAdminPassword is used by the seeder when no bootstrap password is
// configured.
const DefaultAdminPassword = "admin123"

var sampleStart = time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC)

type SeedReport struct {
	RolesCreated int
	SampleLoaded bool
	AdminCreated bool
	TimebookRows int
}

// Seed loads the Admin and User roles, a small fleet with two weeks of
// time, and the bootstrap admin. With clear set the sample tables are wiped
// first; otherwise the sample set is skipped when jobs already exist.
func (a *App) Seed(ctx context.Context, db *gorm.DB, adminPassword string, clear bool) (*SeedReport, error) {
	report := &SeedReport{}

	if clear {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, model := range []interface{}{
				&timebookDatamodel.Timebook{},
				&jobDatamodel.Job{},
				&employeeDatamodel.Employee{},
				&recordsDatamodel.Vessel{},
			} {
				if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("clear sample data: %w", err)
		}
	}

	adminRole, created, err := a.ensureRoles(ctx)
	if err != nil {
		return nil, err
	}
	report.RolesCreated = created

	var jobs int64
	if err := db.WithContext(ctx).Model(&jobDatamodel.Job{}).Count(&jobs).Error; err != nil {
		return nil, err
	}
	if jobs == 0 {
		n, err := loadSample(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("load sample data: %w", err)
		}
		report.SampleLoaded = true
		report.TimebookRows = n
	}

	report.AdminCreated, err = a.ensureAdmin(ctx, adminRole, adminPassword)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (a *App) ensureRoles(ctx context.Context) (*role.Role, int, error) {
	existing, err := a.Roles.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	byName := make(map[string]*role.Role, len(existing))
	for _, r := range existing {
		byName[r.Name] = r
	}

	created := 0
	for _, want := range []role.RoleRequest{
		{Name: permission.AdminRoleName, Permissions: permission.AdminGrid()},
		{Name: permission.UserRoleName, Permissions: permission.UserGrid()},
	} {
		if _, ok := byName[want.Name]; ok {
			continue
		}
		r, err := a.Roles.Create(ctx, want)
		if err != nil {
			return nil, created, fmt.Errorf("seed role %s: %w", want.Name, err)
		}
		byName[r.Name] = r
		created++
	}
	return byName[permission.AdminRoleName], created, nil
}

func (a *App) ensureAdmin(ctx context.Context, adminRole *role.Role, password string) (bool, error) {
	if password == "" {
		password = DefaultAdminPassword
	}

	created := false
	_, err := a.Users.CreateUser(ctx, user.CreateUserRequest{
		Username: identity.BootstrapUsername,
		Password: password,
		RoleID:   &adminRole.ID,
	})
	switch {
	case err == nil:
		created = true
	case !errors.Is(err, internal.ErrDuplicateUsername):
		return false, fmt.Errorf("seed admin: %w", err)
	}

	if err := a.Users.ReconcileBootstrapAdmin(ctx); err != nil {
		return created, err
	}
	return created, nil
}

func loadSample(ctx context.Context, db *gorm.DB) (int, error) {
	rows := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		imo1, imo2 := "1234567", "9876543"
		vessels := []recordsDatamodel.Vessel{
			{VesselName: "M/V Sea Hawk", IMONumber: &imo1},
			{VesselName: "M/V Ocean Star", IMONumber: &imo2},
		}
		if err := tx.Create(&vessels).Error; err != nil {
			return err
		}

		employees := []employeeDatamodel.Employee{
			{FullName: "John Davis", RolePosition: "Captain", PayrateRT: 85},
			{FullName: "Mike Torres", RolePosition: "Engineer", PayrateRT: 75},
		}
		if err := tx.Create(&employees).Error; err != nil {
			return err
		}

		jobs := []jobDatamodel.Job{
			{
				JobNumber:        "11250001",
				ScheduledDate:    time.Date(2025, time.November, 18, 0, 0, 0, 0, time.UTC),
				RequestedService: "Annual engine overhaul and dry dock prep",
				VesselID:         &vessels[0].ID,
				Location:         "Port of Galveston",
			},
			{
				JobNumber:        "11250002",
				ScheduledDate:    time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC),
				RequestedService: "Electrical system upgrade and generator service",
				VesselID:         &vessels[1].ID,
				Location:         "Port of Houston",
			},
		}
		if err := tx.Create(&jobs).Error; err != nil {
			return err
		}

		pairs := []struct {
			emp employeeDatamodel.Employee
			job jobDatamodel.Job
		}{
			{employees[0], jobs[0]},
			{employees[1], jobs[1]},
			{employees[0], jobs[1]},
			{employees[1], jobs[0]},
		}

		var entries []timebookDatamodel.Timebook
		for offset := 0; offset < 14; offset++ {
			day := sampleStart.AddDate(0, 0, offset)
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				continue
			}
			for i, p := range pairs {
				start := "07:00"
				// 8 to 12 hours, varied per day and pair
				minutes := 8*60 + ((offset*3+i)%9)*30
				stop := fmt.Sprintf("%02d:%02d", 7+minutes/60, minutes%60)
				entries = append(entries, timebookDatamodel.Timebook{
					Employee:    p.emp.FullName,
					Description: "Work on " + truncate(p.job.RequestedService, 50) + "...",
					TimeDate:    day,
					StartTime:   &start,
					StopTime:    &stop,
					JobNumber:   p.job.JobNumber,
					Location:    p.job.Location,
					Billable:    true,
					PayRateRT:   p.emp.PayrateRT,
					PayRateOT:   p.emp.PayrateRT * 1.5,
				})
			}
		}
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}
		rows = len(entries)
		return nil
	})
	return rows, err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
