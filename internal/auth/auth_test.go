package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/auth"
	"github.com/frahmantamala/maritime-backoffice/internal/core/testutil"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/session"
	"github.com/frahmantamala/maritime-backoffice/internal/user"
)

const (
	accessSecret  = "access-secret-access-secret-0123"
	refreshSecret = "refresh-secret-refresh-secret-01"
)

type mockUsers struct {
	byID map[int64]*user.User
}

func (m *mockUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUsers) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

var _ = Describe("BcryptHasher", func() {
	It("hashes and verifies", func() {
		h := auth.NewBcryptHasher(bcrypt.MinCost)
		hash, err := h.Hash("secret1")
		Expect(err).NotTo(HaveOccurred())
		Expect(hash).NotTo(Equal("secret1"))
		Expect(h.Verify(hash, "secret1")).To(BeTrue())
		Expect(h.Verify(hash, "wrong")).To(BeFalse())
	})
})

var _ = Describe("JWTTokenGenerator", func() {
	var tokens *auth.JWTTokenGenerator

	BeforeEach(func() {
		tokens = auth.NewJWTTokenGenerator(accessSecret, refreshSecret, time.Minute, time.Hour)
	})

	It("round-trips the user and session", func() {
		raw, err := tokens.Generate(auth.AccessToken, 7, "sid-1")
		Expect(err).NotTo(HaveOccurred())

		claims, err := tokens.Validate(auth.AccessToken, raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.UserID).To(Equal(int64(7)))
		Expect(claims.SessionID).To(Equal("sid-1"))
	})

	It("does not accept a refresh token as an access token", func() {
		raw, err := tokens.Generate(auth.RefreshToken, 7, "sid-1")
		Expect(err).NotTo(HaveOccurred())

		_, err = tokens.Validate(auth.AccessToken, raw)
		Expect(errors.Is(err, internal.ErrInvalidToken)).To(BeTrue())
	})

	It("reports expiry", func() {
		expired := auth.NewJWTTokenGenerator(accessSecret, refreshSecret, -time.Minute, time.Hour)
		raw, err := expired.Generate(auth.AccessToken, 7, "sid-1")
		Expect(err).NotTo(HaveOccurred())

		_, err = tokens.Validate(auth.AccessToken, raw)
		Expect(errors.Is(err, internal.ErrTokenExpired)).To(BeTrue())
	})

	It("rejects garbage", func() {
		_, err := tokens.Validate(auth.AccessToken, "not-a-token")
		Expect(errors.Is(err, internal.ErrInvalidToken)).To(BeTrue())
	})
})

var _ = Describe("Service", func() {
	var (
		ctx      context.Context
		users    *mockUsers
		sessions *session.MemoryStore
		service  *auth.Service
		hasher   *auth.BcryptHasher
	)

	BeforeEach(func() {
		ctx = context.Background()
		hasher = auth.NewBcryptHasher(bcrypt.MinCost)
		hash, err := hasher.Hash("correct_password")
		Expect(err).NotTo(HaveOccurred())

		name := "John Davis"
		users = &mockUsers{byID: map[int64]*user.User{
			1: {ID: 1, Username: "jdavis", PasswordHash: hash, RoleClass: identity.ClassUser, EmployeeFullName: &name, Permissions: permission.EmptyFlat()},
			2: {ID: 2, Username: "dock", PasswordHash: hash, RoleClass: identity.ClassUser, NonPersonnel: true, Permissions: permission.EmptyFlat()},
		}}
		sessions = session.NewMemoryStore()
		tokens := auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, time.Hour)
		service = auth.NewService(users, hasher, tokens, sessions, time.Hour, 15*time.Minute, testutil.Logger())
	})

	Describe("Login", func() {
		It("issues tokens that resolve to the user's identity", func() {
			tokens, err := service.Login(ctx, auth.LoginRequest{Username: "jdavis", Password: "correct_password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.TokenType).To(Equal("Bearer"))
			Expect(tokens.ExpiresIn).To(Equal(int64(900)))

			sess, u, err := service.Authenticate(ctx, tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal(int64(1)))
			Expect(sess.RoleClass).To(Equal(identity.ClassUser))
			Expect(sess.EmployeeName).To(Equal("John Davis"))
			Expect(sess.SessionID).NotTo(BeEmpty())
		})

		It("resolves unlinked non-personnel to the NP class", func() {
			tokens, err := service.Login(ctx, auth.LoginRequest{Username: "dock", Password: "correct_password"})
			Expect(err).NotTo(HaveOccurred())

			sess, _, err := service.Authenticate(ctx, tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.RoleClass).To(Equal(identity.ClassNP))
		})

		It("rejects a wrong password and an unknown user alike", func() {
			_, err := service.Login(ctx, auth.LoginRequest{Username: "jdavis", Password: "nope"})
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())

			_, err = service.Login(ctx, auth.LoginRequest{Username: "ghost", Password: "correct_password"})
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})

		It("requires both fields", func() {
			_, err := service.Login(ctx, auth.LoginRequest{Username: "jdavis"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	It("refreshes while the session lives", func() {
		tokens, err := service.Login(ctx, auth.LoginRequest{Username: "jdavis", Password: "correct_password"})
		Expect(err).NotTo(HaveOccurred())

		fresh, err := service.Refresh(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		Expect(err).NotTo(HaveOccurred())
		_, _, err = service.Authenticate(ctx, fresh.AccessToken)
		Expect(err).NotTo(HaveOccurred())
	})

	It("stops honouring tokens after logout", func() {
		tokens, err := service.Login(ctx, auth.LoginRequest{Username: "jdavis", Password: "correct_password"})
		Expect(err).NotTo(HaveOccurred())
		sess, _, err := service.Authenticate(ctx, tokens.AccessToken)
		Expect(err).NotTo(HaveOccurred())

		Expect(service.Logout(ctx, sess.SessionID)).To(Succeed())

		_, _, err = service.Authenticate(ctx, tokens.AccessToken)
		Expect(errors.Is(err, internal.ErrSessionExpired)).To(BeTrue())
		_, err = service.Refresh(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		Expect(errors.Is(err, internal.ErrSessionExpired)).To(BeTrue())
	})

	It("stops honouring tokens of a deleted user", func() {
		tokens, err := service.Login(ctx, auth.LoginRequest{Username: "jdavis", Password: "correct_password"})
		Expect(err).NotTo(HaveOccurred())
		delete(users.byID, 1)

		_, _, err = service.Authenticate(ctx, tokens.AccessToken)
		Expect(errors.Is(err, internal.ErrSessionExpired)).To(BeTrue())
	})

	Describe("AuthMiddleware", func() {
		var handler http.Handler

		BeforeEach(func() {
			handler = auth.NewHandler(service).AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				sess, ok := identity.FromContext(r.Context())
				Expect(ok).To(BeTrue())
				u, ok := auth.UserFromContext(r.Context())
				Expect(ok).To(BeTrue())
				Expect(u.ID).To(Equal(sess.UserID))
				w.WriteHeader(http.StatusNoContent)
			}))
		})

		It("attaches the identity for a valid bearer token", func() {
			tokens, err := service.Login(ctx, auth.LoginRequest{Username: "jdavis", Password: "correct_password"})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusNoContent))
		})

		It("rejects a missing token", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	It("logs in over HTTP", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"jdavis","password":"correct_password"}`))
		auth.NewHandler(service).Login(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("access_token"))

		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"jdavis","password":"bad"}`))
		auth.NewHandler(service).Login(rec, req)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})
})
