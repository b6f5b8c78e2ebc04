package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/maritime-backoffice/internal/auth"
	"github.com/frahmantamala/maritime-backoffice/internal/dashboard"
	"github.com/frahmantamala/maritime-backoffice/internal/employee"
	"github.com/frahmantamala/maritime-backoffice/internal/invoice"
	"github.com/frahmantamala/maritime-backoffice/internal/job"
	"github.com/frahmantamala/maritime-backoffice/internal/metrics"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/preference"
	"github.com/frahmantamala/maritime-backoffice/internal/records"
	"github.com/frahmantamala/maritime-backoffice/internal/role"
	"github.com/frahmantamala/maritime-backoffice/internal/timebook"
	"github.com/frahmantamala/maritime-backoffice/internal/transport/middleware"
	"github.com/frahmantamala/maritime-backoffice/internal/transport/swagger"
	"github.com/frahmantamala/maritime-backoffice/internal/user"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Health      *HealthHandler
	Auth        *auth.Handler
	Users       *user.Handler
	Roles       *role.Handler
	Employees   *employee.Handler
	Timebooks   *timebook.Handler
	Jobs        *job.Handler
	Invoices    *invoice.Handler
	Records     *records.Handlers
	Preferences *preference.Handler
	Dashboard   *dashboard.Handler
}

type Options struct {
	AllowedOrigins []string
	OpenAPIPath    string
	// Metrics is optional; nil turns off both the middleware and the endpoint.
	Metrics     *metrics.Metrics
	MetricsPath string
}

// crud is the handler shape shared by the plain record resources.
type crud interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

func NewRouter(h Handlers, opts Options, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()
	guard := middleware.NewGuard(logger)

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		router.Handle(opts.MetricsPath, opts.Metrics.Handler())
	}

	if opts.OpenAPIPath != "" {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, opts.OpenAPIPath)
		})
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.LoggingMiddleware)

		r.Get("/health", h.Health.Check)
		r.Get("/ping", h.Health.Ping)

		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.RefreshToken)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.SessionLogger)

			pr.Post("/auth/logout", h.Auth.Logout)
			pr.Get("/users/me", h.Users.GetCurrentUser)
			pr.Get("/preferences", h.Preferences.Get)
			pr.Put("/preferences", h.Preferences.Save)
			pr.Get("/dashboard", h.Dashboard.Get)

			pr.Route("/control-panel", func(cp chi.Router) {
				cp.Use(guard.RequireAdmin())

				cp.Get("/roles", h.Roles.List)
				cp.Post("/roles", h.Roles.Create)
				cp.Get("/roles/{id}", h.Roles.Get)
				cp.Put("/roles/{id}", h.Roles.Update)
				cp.Delete("/roles/{id}", h.Roles.Delete)

				cp.Get("/users", h.Users.List)
				cp.Post("/users", h.Users.Create)
				cp.Get("/users/{id}", h.Users.Get)
				cp.Put("/users/{id}", h.Users.Update)
				cp.Delete("/users/{id}", h.Users.Delete)
				cp.Put("/users/{id}/password", h.Users.ChangePassword)
			})

			pr.Route("/timebooks", func(tr chi.Router) {
				tr.Use(guard.RequirePage(permission.PageTimebooks))
				tr.Get("/", h.Timebooks.List)
				tr.Post("/", h.Timebooks.Create)
				tr.Get("/week", h.Timebooks.Week)
				tr.Get("/week/export", h.Timebooks.ExportWeek)
				tr.Put("/{id}", h.Timebooks.Update)
				tr.Delete("/{id}", h.Timebooks.Delete)
				tr.Post("/paid", adminOnly(guard, h.Timebooks.MarkPaid))
			})

			pr.With(guard.RequirePage(permission.PageJobs)).Post("/invoices", h.Invoices.Generate)

			mount(pr, guard, "/employees", permission.PageEmployees, h.Employees, true)
			mount(pr, guard, "/jobs", permission.PageJobs, h.Jobs, true)
			mount(pr, guard, "/vessels", permission.PageVessels, h.Records.Vessels, true)
			mount(pr, guard, "/customers", permission.PageCustomers, h.Records.Customers, true)
			mount(pr, guard, "/vendors", permission.PageVendors, h.Records.Vendors, true)
			mount(pr, guard, "/items", permission.PageItems, h.Records.Items, true)
			mount(pr, guard, "/contacts", permission.PageContacts, h.Records.Contacts, true)
			mount(pr, guard, "/purchase-orders", permission.PagePurchaseOrders, h.Records.PurchaseOrders, false)
		})
	})

	return router
}

// mount registers a page-guarded resource. With adminWrites, create, update
// and delete also need an admin; otherwise only update and delete do.
func mount(r chi.Router, guard *middleware.Guard, path string, page permission.Page, h crud, adminWrites bool) {
	r.Route(path, func(rr chi.Router) {
		rr.Use(guard.RequirePage(page))
		rr.Get("/", h.List)
		rr.Get("/{id}", h.Get)
		if adminWrites {
			rr.Post("/", adminOnly(guard, h.Create))
		} else {
			rr.Post("/", h.Create)
		}
		rr.Put("/{id}", adminOnly(guard, h.Update))
		rr.Delete("/{id}", adminOnly(guard, h.Delete))
	})
}

func adminOnly(guard *middleware.Guard, fn http.HandlerFunc) http.HandlerFunc {
	return guard.RequireAdmin()(fn).ServeHTTP
}
