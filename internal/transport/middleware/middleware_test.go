package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/maritime-backoffice/internal/auth"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/user"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func withUser(r *http.Request, u *user.User) *http.Request {
	ctx := identity.WithSession(r.Context(), identity.SessionContext{
		SessionID: "sid",
		UserID:    u.ID,
		Username:  u.Username,
		RoleClass: u.SessionClass(),
	})
	return r.WithContext(auth.WithUser(ctx, u))
}

var _ = Describe("Guard", func() {
	var (
		guard *Guard
		clerk *user.User
		admin *user.User
	)

	BeforeEach(func() {
		guard = NewGuard(slog.New(slog.NewTextHandler(io.Discard, nil)))
		flat := permission.EmptyFlat()
		flat[permission.PageVessels] = true
		clerk = &user.User{ID: 2, Username: "clerk", RoleClass: identity.ClassUser, Permissions: flat}
		admin = &user.User{ID: 1, Username: "admin", RoleClass: identity.ClassAdmin, Permissions: permission.EmptyFlat()}
	})

	serve := func(h http.Handler, r *http.Request) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	It("lets a granted page through", func() {
		r := withUser(httptest.NewRequest(http.MethodGet, "/vessels", nil), clerk)
		Expect(serve(guard.RequirePage(permission.PageVessels)(ok), r)).To(Equal(http.StatusNoContent))
	})

	It("refuses a page that is not granted", func() {
		r := withUser(httptest.NewRequest(http.MethodGet, "/vendors", nil), clerk)
		Expect(serve(guard.RequirePage(permission.PageVendors)(ok), r)).To(Equal(http.StatusForbidden))
	})

	It("lets admins through every page", func() {
		r := withUser(httptest.NewRequest(http.MethodGet, "/vendors", nil), admin)
		Expect(serve(guard.RequirePage(permission.PageVendors)(ok), r)).To(Equal(http.StatusNoContent))
	})

	It("needs an authenticated request", func() {
		r := httptest.NewRequest(http.MethodGet, "/vendors", nil)
		Expect(serve(guard.RequirePage(permission.PageVendors)(ok), r)).To(Equal(http.StatusUnauthorized))
		Expect(serve(guard.RequireAdmin()(ok), r)).To(Equal(http.StatusUnauthorized))
	})

	It("keeps admin routes to admins", func() {
		Expect(serve(guard.RequireAdmin()(ok), withUser(httptest.NewRequest(http.MethodGet, "/roles", nil), clerk))).
			To(Equal(http.StatusForbidden))
		Expect(serve(guard.RequireAdmin()(ok), withUser(httptest.NewRequest(http.MethodGet, "/roles", nil), admin))).
			To(Equal(http.StatusNoContent))
	})
})

var _ = Describe("RequestID", func() {
	It("echoes a caller's trace id", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TraceHeader, "trace-123")
		rec := httptest.NewRecorder()
		RequestID(ok).ServeHTTP(rec, req)
		Expect(rec.Header().Get(TraceHeader)).To(Equal("trace-123"))
	})

	It("mints one when missing", func() {
		rec := httptest.NewRecorder()
		RequestID(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(rec.Header().Get(TraceHeader)).NotTo(BeEmpty())
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("turns a panic into a 500", func() {
		boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background())
		RecoveryMiddleware(boom).ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).To(ContainSubstring("internal server error"))
	})
})

var _ = Describe("body filtering", func() {
	It("masks credentials at any depth", func() {
		out := filterSensitiveBody([]byte(`{"username":"jdavis","password":"pw","user":{"refresh_token":"x"}}`))
		Expect(out).To(ContainSubstring(`"username":"jdavis"`))
		Expect(out).NotTo(ContainSubstring(`"pw"`))
		Expect(out).To(ContainSubstring(`"refresh_token":"[FILTERED]"`))
	})

	It("masks sensitive headers", func() {
		h := http.Header{}
		h.Set("Authorization", "Bearer abc")
		h.Set("Accept", "application/json")
		out := filterSensitiveHeaders(h)
		Expect(out["Authorization"]).To(Equal("[FILTERED]"))
		Expect(out["Accept"]).To(Equal("application/json"))
	})

	It("passes the request body on untouched", func() {
		var seen string
		echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			seen = string(b)
			w.WriteHeader(http.StatusOK)
		})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")
		LoggingMiddleware(echo).ServeHTTP(httptest.NewRecorder(), req)
		Expect(seen).To(Equal(`{"password":"pw"}`))
	})
})
