// Package app wires repositories, services and handlers into one graph.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/auth"
	employeeDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/employee"
	jobDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/job"
	timebookDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/timebook"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dbtx"
	"github.com/frahmantamala/maritime-backoffice/internal/core/events"
	"github.com/frahmantamala/maritime-backoffice/internal/dashboard"
	"github.com/frahmantamala/maritime-backoffice/internal/employee"
	employeePostgres "github.com/frahmantamala/maritime-backoffice/internal/employee/postgres"
	"github.com/frahmantamala/maritime-backoffice/internal/invoice"
	invoicePostgres "github.com/frahmantamala/maritime-backoffice/internal/invoice/postgres"
	"github.com/frahmantamala/maritime-backoffice/internal/job"
	jobPostgres "github.com/frahmantamala/maritime-backoffice/internal/job/postgres"
	"github.com/frahmantamala/maritime-backoffice/internal/metrics"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/preference"
	preferencePostgres "github.com/frahmantamala/maritime-backoffice/internal/preference/postgres"
	"github.com/frahmantamala/maritime-backoffice/internal/records"
	"github.com/frahmantamala/maritime-backoffice/internal/role"
	rolePostgres "github.com/frahmantamala/maritime-backoffice/internal/role/postgres"
	"github.com/frahmantamala/maritime-backoffice/internal/session"
	"github.com/frahmantamala/maritime-backoffice/internal/timebook"
	timebookPostgres "github.com/frahmantamala/maritime-backoffice/internal/timebook/postgres"
	"github.com/frahmantamala/maritime-backoffice/internal/transport/rest"
	"github.com/frahmantamala/maritime-backoffice/internal/user"
	userPostgres "github.com/frahmantamala/maritime-backoffice/internal/user/postgres"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	SQL      *sqlx.DB
	Sessions session.Store
	// Metrics may be nil.
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

type App struct {
	Bus       *events.EventBus
	Roles     *role.Service
	Users     *user.Service
	Employees *employee.Service
	Jobs      *job.Service
	Timebooks *timebook.Service
	Auth      *auth.Service
	Handlers  rest.Handlers
}

func New(deps Dependencies) (*App, error) {
	cfg, db, lg := deps.Config, deps.DB, deps.Logger

	bus := events.NewEventBus(lg)
	session.RevokeOnUserDeleted(bus, deps.Sessions, lg)
	if deps.Metrics != nil {
		deps.Metrics.Subscribe(bus)
	}

	hasher := auth.NewBcryptHasher(cfg.Security.BCryptCost)
	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.JWTAccessSecret,
		cfg.Security.JWTRefreshSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	roleRepo := rolePostgres.NewRoleRepository(db)
	userRepo := userPostgres.NewUserRepository(db)
	employeeRepo := employeePostgres.NewEmployeeRepository(db)
	jobRepo := jobPostgres.NewJobRepository(db)

	roles := role.NewService(roleRepo, bus, lg)
	users := user.NewService(userRepo, roleRepo, hasher, bus, lg)
	inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return dbtx.Run(ctx, db, fn)
	}
	employees := employee.NewService(employeeRepo, users, inTx, lg)
	jobs := job.NewService(jobRepo, lg)
	timebooks := timebook.NewService(timebookPostgres.NewTimebookRepository(db), employeeRepo, jobRepo, lg)
	authService := auth.NewService(userRepo, hasher, tokens, deps.Sessions, cfg.Session.TTL, cfg.Security.AccessTokenDuration, lg)

	renderer, err := invoice.NewHTMLRenderer(cfg.Invoice.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("invoice renderer: %w", err)
	}
	invoices := invoice.NewService(invoicePostgres.NewSource(db), renderer, lg)

	stores := records.NewStores(db)
	counts := dashboard.NewService(map[permission.Page]dashboard.Counter{
		permission.PageEmployees:      records.NewStore[employeeDatamodel.Employee](db, "id"),
		permission.PageTimebooks:      records.NewStore[timebookDatamodel.Timebook](db, "id"),
		permission.PageJobs:           records.NewStore[jobDatamodel.Job](db, "id"),
		permission.PageVessels:        stores.Vessels,
		permission.PageCustomers:      stores.Customers,
		permission.PageVendors:        stores.Vendors,
		permission.PageItems:          stores.Items,
		permission.PageContacts:       stores.Contacts,
		permission.PagePurchaseOrders: stores.PurchaseOrders,
	})

	return &App{
		Bus:       bus,
		Roles:     roles,
		Users:     users,
		Employees: employees,
		Jobs:      jobs,
		Timebooks: timebooks,
		Auth:      authService,
		Handlers: rest.Handlers{
			Health:      rest.NewHealthHandler(deps.SQL),
			Auth:        auth.NewHandler(authService),
			Users:       user.NewHandler(users),
			Roles:       role.NewHandler(roles),
			Employees:   employee.NewHandler(employees),
			Timebooks:   timebook.NewHandler(timebooks),
			Jobs:        job.NewHandler(jobs),
			Invoices:    invoice.NewHandler(invoices),
			Records:     records.NewHandlers(stores),
			Preferences: preference.NewHandler(preference.NewService(preferencePostgres.NewPreferenceRepository(db), lg)),
			Dashboard:   dashboard.NewHandler(counts),
		},
	}, nil
}
