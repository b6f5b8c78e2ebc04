package role_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/maritime-backoffice/internal"
	roleDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/role"
	userDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/user"
	"github.com/frahmantamala/maritime-backoffice/internal/core/events"
	"github.com/frahmantamala/maritime-backoffice/internal/core/testutil"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/role"
	"github.com/frahmantamala/maritime-backoffice/internal/role/postgres"
)

var _ = Describe("Membership rules", func() {
	It("derives pages and class from the role", func() {
		m := role.Membership{Username: "jdavis"}

		role.Apply(&m, &role.Role{ID: 3, Name: "Dispatcher", Permissions: permission.UserGrid()})

		Expect(*m.RoleID).To(Equal(int64(3)))
		Expect(m.Class).To(Equal(identity.ClassUser))
		Expect(m.Flat).To(Equal(permission.DeriveFlat(permission.UserGrid())))
	})

	It("makes holders of the Admin role admins", func() {
		m := role.Membership{Username: "ops"}
		role.Apply(&m, &role.Role{ID: 1, Name: permission.AdminRoleName, Permissions: permission.AdminGrid()})

		Expect(m.Class).To(Equal(identity.ClassAdmin))
		Expect(m.Flat.IsFull()).To(BeTrue())
	})

	It("turns everything off for a missing or empty role", func() {
		m := role.Membership{Username: "ops", Flat: permission.FullFlat()}
		role.Apply(&m, nil)
		Expect(m.Flat).To(Equal(permission.EmptyFlat()))
		Expect(m.RoleID).To(BeNil())

		role.Apply(&m, &role.Role{ID: 2, Name: "Empty"})
		Expect(m.Flat).To(Equal(permission.EmptyFlat()))
	})

	It("keeps the bootstrap admin at full access", func() {
		m := role.Membership{Username: identity.BootstrapUsername}
		role.Apply(&m, &role.Role{ID: 2, Name: "User", Permissions: permission.UserGrid()})
		Expect(m.Flat.IsFull()).To(BeTrue())
		Expect(m.Class).To(Equal(identity.ClassAdmin))

		role.Detach(&m)
		Expect(m.Flat.IsFull()).To(BeTrue())
		Expect(m.Class).To(Equal(identity.ClassAdmin))
	})

	It("clears pages on detach", func() {
		m := role.Membership{Username: "jdavis", Class: identity.ClassAdmin, Flat: permission.FullFlat()}
		role.Detach(&m)

		Expect(m.Flat).To(BeEmpty())
		Expect(m.Class).To(Equal(identity.ClassUser))
	})
})

var _ = Describe("Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		service *role.Service
		staff   *role.Role
	)

	addUser := func(username string, roleID *int64, class string, flat permission.FlatMap) int64 {
		u := &userDatamodel.User{Username: username, PasswordHash: "x", Role: class, RoleID: roleID, Permissions: flat}
		Expect(db.Create(u).Error).To(Succeed())
		return u.ID
	}

	loadUser := func(id int64) userDatamodel.User {
		var u userDatamodel.User
		Expect(db.First(&u, id).Error).To(Succeed())
		return u
	}

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		db, err = testutil.OpenDB()
		Expect(err).NotTo(HaveOccurred())

		service = role.NewService(postgres.NewRoleRepository(db), events.NewEventBus(testutil.Logger()), testutil.Logger())
		staff, err = service.Create(ctx, role.RoleRequest{Name: "Staff", Permissions: permission.UserGrid()})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects duplicate names", func() {
		_, err := service.Create(ctx, role.RoleRequest{Name: "Staff"})
		Expect(err).To(MatchError(internal.ErrDuplicateRoleName))
	})

	It("rejects unknown pages", func() {
		_, err := service.Create(ctx, role.RoleRequest{
			Name:        "Broken",
			Permissions: permission.Grid{"bridge": {permission.ActionList: true}},
		})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
	})

	Describe("Update", func() {
		It("re-derives every member's pages and class", func() {
			a := addUser("jdavis", &staff.ID, "user", permission.DeriveFlat(staff.Permissions))
			b := addUser("mtorres", &staff.ID, "user", permission.DeriveFlat(staff.Permissions))
			other := addUser("clerk", nil, "user", permission.EmptyFlat())

			grid := permission.Grid{permission.PageVessels: {permission.ActionList: true}}
			updated, err := service.Update(ctx, staff.ID, role.RoleRequest{Name: permission.AdminRoleName, Permissions: grid})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal(permission.AdminRoleName))

			for _, id := range []int64{a, b} {
				u := loadUser(id)
				Expect(u.Role).To(Equal("admin"))
				Expect(u.Permissions[permission.PageVessels]).To(BeTrue())
				Expect(u.Permissions[permission.PageTimebooks]).To(BeFalse())
			}
			Expect(loadUser(other).Permissions).To(Equal(permission.EmptyFlat()))
		})

		It("keeps the bootstrap admin at full access", func() {
			id := addUser(identity.BootstrapUsername, &staff.ID, "admin", permission.FullFlat())

			_, err := service.Update(ctx, staff.ID, role.RoleRequest{Name: "Staff", Permissions: permission.Grid{}})
			Expect(err).NotTo(HaveOccurred())

			u := loadUser(id)
			Expect(u.Permissions.IsFull()).To(BeTrue())
			Expect(u.Role).To(Equal("admin"))
		})

		It("reports a missing role", func() {
			_, err := service.Update(ctx, 999, role.RoleRequest{Name: "Ghost"})
			Expect(err).To(MatchError(internal.ErrRoleNotFound))
		})

		It("rolls back the role when a member cannot be written", func() {
			addUser("jdavis", &staff.ID, "user", permission.DeriveFlat(staff.Permissions))
			Expect(db.Callback().Update().Before("gorm:update").Register("test:fail_users", func(tx *gorm.DB) {
				if tx.Statement.Table == "users" {
					_ = tx.AddError(errors.New("forced failure"))
				}
			})).To(Succeed())

			_, err := service.Update(ctx, staff.ID, role.RoleRequest{Name: "Renamed", Permissions: permission.AdminGrid()})
			Expect(err).To(HaveOccurred())

			var stored roleDatamodel.Role
			Expect(db.First(&stored, staff.ID).Error).To(Succeed())
			Expect(stored.Name).To(Equal("Staff"))
		})
	})

	Describe("Delete", func() {
		It("detaches members and removes the role", func() {
			a := addUser("jdavis", &staff.ID, "admin", permission.FullFlat())
			admin := addUser(identity.BootstrapUsername, &staff.ID, "admin", permission.FullFlat())

			Expect(service.Delete(ctx, staff.ID)).To(Succeed())

			u := loadUser(a)
			Expect(u.RoleID).To(BeNil())
			Expect(u.Role).To(Equal("user"))
			Expect(u.Permissions.IsFull()).To(BeFalse())
			Expect(u.Permissions[permission.PageTimebooks]).To(BeFalse())

			bootstrap := loadUser(admin)
			Expect(bootstrap.RoleID).To(BeNil())
			Expect(bootstrap.Role).To(Equal("admin"))
			Expect(bootstrap.Permissions.IsFull()).To(BeTrue())

			_, err := service.Get(ctx, staff.ID)
			Expect(err).To(MatchError(internal.ErrRoleNotFound))
		})

		It("leaves members untouched when the delete fails", func() {
			a := addUser("jdavis", &staff.ID, "user", permission.DeriveFlat(staff.Permissions))
			Expect(db.Callback().Delete().Before("gorm:delete").Register("test:fail_roles", func(tx *gorm.DB) {
				if tx.Statement.Table == "roles" {
					_ = tx.AddError(errors.New("forced failure"))
				}
			})).To(Succeed())

			Expect(service.Delete(ctx, staff.ID)).NotTo(Succeed())

			u := loadUser(a)
			Expect(u.RoleID).NotTo(BeNil())
			Expect(*u.RoleID).To(Equal(staff.ID))
			Expect(u.Permissions[permission.PageTimebooks]).To(BeTrue())

			_, err := service.Get(ctx, staff.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports a missing role", func() {
			Expect(service.Delete(ctx, 999)).To(MatchError(internal.ErrRoleNotFound))
		})
	})
})
