package user_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/core/events"
	"github.com/frahmantamala/maritime-backoffice/internal/core/testutil"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/role"
	rolePostgres "github.com/frahmantamala/maritime-backoffice/internal/role/postgres"
	"github.com/frahmantamala/maritime-backoffice/internal/user"
	userPostgres "github.com/frahmantamala/maritime-backoffice/internal/user/postgres"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Verify(hash, password string) bool    { return hash == "hashed:"+password }

func strPtr(s string) *string { return &s }

var _ = Describe("User", func() {
	It("resolves the session class from the stored class and link", func() {
		np := &user.User{RoleClass: identity.ClassUser, NonPersonnel: true}
		Expect(np.SessionClass()).To(Equal(identity.ClassNP))

		linked := &user.User{RoleClass: identity.ClassUser, NonPersonnel: true, EmployeeFullName: strPtr("John Davis")}
		Expect(linked.SessionClass()).To(Equal(identity.ClassUser))

		admin := &user.User{RoleClass: identity.ClassAdmin, NonPersonnel: true}
		Expect(admin.SessionClass()).To(Equal(identity.ClassAdmin))
	})

	It("lets admins reach every page", func() {
		u := &user.User{RoleClass: identity.ClassAdmin, Permissions: permission.EmptyFlat()}
		Expect(u.CanAccess(permission.PageTimebooks)).To(BeTrue())

		u.RoleClass = identity.ClassUser
		Expect(u.CanAccess(permission.PageTimebooks)).To(BeFalse())
	})
})

var _ = Describe("Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		roles   *rolePostgres.RoleRepository
		repo    *userPostgres.UserRepository
		bus     *events.EventBus
		service *user.Service
		staff   *role.Role
		admins  *role.Role

		mu      sync.Mutex
		revoked []int64
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = testutil.OpenDB()
		Expect(err).NotTo(HaveOccurred())

		roles = rolePostgres.NewRoleRepository(db)
		repo = userPostgres.NewUserRepository(db)

		staff = &role.Role{Name: "User", Permissions: permission.UserGrid()}
		Expect(roles.Create(ctx, staff)).To(Succeed())
		admins = &role.Role{Name: permission.AdminRoleName, Permissions: permission.AdminGrid()}
		Expect(roles.Create(ctx, admins)).To(Succeed())

		revoked = nil
		bus = events.NewEventBus(testutil.Logger())
		events.OnUserDeleted(bus, func(ctx context.Context, e *events.UserDeletedEvent) error {
			mu.Lock()
			defer mu.Unlock()
			revoked = append(revoked, e.UserID)
			return nil
		})

		service = user.NewService(repo, roles, plainHasher{}, bus, testutil.Logger())
	})

	Describe("CreateUser", func() {
		It("derives pages and class from the role and hashes the password", func() {
			u, err := service.CreateUser(ctx, user.CreateUserRequest{
				Username: "  jdavis ", Password: "secret1", RoleID: &staff.ID,
				EmployeeFullName: strPtr("John Davis"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Username).To(Equal("jdavis"))
			Expect(u.RoleClass).To(Equal(identity.ClassUser))
			Expect(u.Permissions).To(Equal(permission.DeriveFlat(permission.UserGrid())))

			stored, err := repo.GetByUsername(ctx, "jdavis")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.PasswordHash).To(Equal("hashed:secret1"))
			Expect(stored.EmployeeName()).To(Equal("John Davis"))
		})

		It("makes holders of the Admin role admins", func() {
			u, err := service.CreateUser(ctx, user.CreateUserRequest{Username: "ops", Password: "secret1", RoleID: &admins.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.RoleClass).To(Equal(identity.ClassAdmin))
			Expect(u.Permissions.IsFull()).To(BeTrue())
		})

		It("leaves every page off without a role", func() {
			u, err := service.CreateUser(ctx, user.CreateUserRequest{Username: "temp", Password: "secret1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Permissions).To(Equal(permission.EmptyFlat()))
			Expect(u.RoleID).To(BeNil())
		})

		It("drops the employee link for non-personnel", func() {
			u, err := service.CreateUser(ctx, user.CreateUserRequest{
				Username: "dock", Password: "secret1", NonPersonnel: true,
				EmployeeFullName: strPtr("John Davis"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.EmployeeFullName).To(BeNil())
			Expect(u.SessionClass()).To(Equal(identity.ClassNP))
		})

		It("rejects a taken username", func() {
			_, err := service.CreateUser(ctx, user.CreateUserRequest{Username: "jdavis", Password: "secret1"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateUser(ctx, user.CreateUserRequest{Username: "jdavis", Password: "secret2"})
			Expect(errors.Is(err, internal.ErrDuplicateUsername)).To(BeTrue())
		})

		It("rejects an unknown role", func() {
			missing := int64(999)
			_, err := service.CreateUser(ctx, user.CreateUserRequest{Username: "jdavis", Password: "secret1", RoleID: &missing})
			Expect(errors.Is(err, internal.ErrRoleNotFound)).To(BeTrue())
		})

		It("rejects a short password", func() {
			_, err := service.CreateUser(ctx, user.CreateUserRequest{Username: "jdavis", Password: "abc"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("EditUser", func() {
		var target *user.User

		BeforeEach(func() {
			var err error
			target, err = service.CreateUser(ctx, user.CreateUserRequest{Username: "jdavis", Password: "secret1", RoleID: &staff.ID})
			Expect(err).NotTo(HaveOccurred())
		})

		It("recomputes access from the new role", func() {
			u, err := service.EditUser(ctx, target.ID, user.EditUserRequest{Username: "jdavis", RoleID: &admins.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.RoleClass).To(Equal(identity.ClassAdmin))

			stored, err := repo.GetByID(ctx, target.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Permissions.IsFull()).To(BeTrue())
			Expect(*stored.RoleID).To(Equal(admins.ID))
		})

		It("rejects a role that does not exist and keeps the current one", func() {
			missing := int64(999)
			_, err := service.EditUser(ctx, target.ID, user.EditUserRequest{Username: "jdavis", RoleID: &missing})
			Expect(errors.Is(err, internal.ErrRoleNotFound)).To(BeTrue())

			stored, err := repo.GetByID(ctx, target.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored.RoleID).To(Equal(staff.ID))
			Expect(stored.Permissions).To(Equal(permission.DeriveFlat(permission.UserGrid())))
		})

		It("turns everything off when the role is cleared", func() {
			u, err := service.EditUser(ctx, target.ID, user.EditUserRequest{Username: "jdavis"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Permissions).To(Equal(permission.EmptyFlat()))
			Expect(u.RoleID).To(BeNil())
		})

		It("maps a rename collision to a duplicate username", func() {
			_, err := service.CreateUser(ctx, user.CreateUserRequest{Username: "other", Password: "secret1"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.EditUser(ctx, target.ID, user.EditUserRequest{Username: "other"})
			Expect(errors.Is(err, internal.ErrDuplicateUsername)).To(BeTrue())
		})

		It("reports a missing user", func() {
			_, err := service.EditUser(ctx, 999, user.EditUserRequest{Username: "ghost"})
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		})
	})

	Describe("bootstrap admin", func() {
		var admin *user.User

		BeforeEach(func() {
			var err error
			admin, err = service.CreateUser(ctx, user.CreateUserRequest{
				Username: identity.BootstrapUsername, Password: "secret1", RoleID: &staff.ID,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("is created with full access whatever the role", func() {
			Expect(admin.Permissions.IsFull()).To(BeTrue())
			Expect(admin.RoleClass).To(Equal(identity.ClassAdmin))
		})

		It("cannot be renamed", func() {
			_, err := service.EditUser(ctx, admin.ID, user.EditUserRequest{Username: "root"})
			Expect(errors.Is(err, internal.ErrProtectedAccount)).To(BeTrue())
		})

		It("keeps full access when edited", func() {
			u, err := service.EditUser(ctx, admin.ID, user.EditUserRequest{Username: identity.BootstrapUsername})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Permissions.IsFull()).To(BeTrue())
		})

		It("cannot be deleted", func() {
			err := service.DeleteUser(ctx, admin.ID)
			Expect(errors.Is(err, internal.ErrProtectedAccount)).To(BeTrue())
		})

		It("is widened back to full access on reconcile", func() {
			Expect(repo.UpdatePermissions(ctx, admin.ID, permission.EmptyFlat())).To(Succeed())

			Expect(service.ReconcileBootstrapAdmin(ctx)).To(Succeed())

			stored, err := repo.GetByID(ctx, admin.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Permissions.IsFull()).To(BeTrue())
		})
	})

	It("does nothing on reconcile without a bootstrap admin", func() {
		Expect(service.ReconcileBootstrapAdmin(ctx)).To(Succeed())
	})

	Describe("DeleteUser", func() {
		It("removes the user and revokes its sessions before returning", func() {
			u, err := service.CreateUser(ctx, user.CreateUserRequest{Username: "jdavis", Password: "secret1"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteUser(ctx, u.ID)).To(Succeed())

			_, err = repo.GetByID(ctx, u.ID)
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
			mu.Lock()
			defer mu.Unlock()
			Expect(revoked).To(ConsistOf(u.ID))
		})

		It("reports a missing user", func() {
			err := service.DeleteUser(ctx, 999)
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		})
	})

	It("changes a password", func() {
		u, err := service.CreateUser(ctx, user.CreateUserRequest{Username: "jdavis", Password: "secret1"})
		Expect(err).NotTo(HaveOccurred())

		Expect(service.ChangePassword(ctx, u.ID, user.ChangePasswordRequest{Password: "better1"})).To(Succeed())

		stored, err := repo.GetByID(ctx, u.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(plainHasher{}.Verify(stored.PasswordHash, "better1")).To(BeTrue())
	})

	It("describes the current session", func() {
		u, err := service.CreateUser(ctx, user.CreateUserRequest{Username: "jdavis", Password: "secret1", RoleID: &staff.ID})
		Expect(err).NotTo(HaveOccurred())

		me, err := service.Me(ctx, identity.SessionContext{UserID: u.ID, Username: "jdavis", RoleClass: identity.ClassUser, EmployeeName: "John Davis"})
		Expect(err).NotTo(HaveOccurred())
		Expect(me.EmployeeName).To(Equal("John Davis"))
		Expect(me.RoleClass).To(Equal("user"))
	})
})
