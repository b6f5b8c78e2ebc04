package employee_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/maritime-backoffice/internal"
	employeeDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/employee"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dbtx"
	"github.com/frahmantamala/maritime-backoffice/internal/core/testutil"
	"github.com/frahmantamala/maritime-backoffice/internal/employee"
	"github.com/frahmantamala/maritime-backoffice/internal/employee/postgres"
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

var _ = Describe("Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		users   *userPostgres.UserRepository
		roles   *rolePostgres.RoleRepository
		service *employee.Service
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = testutil.OpenDB()
		Expect(err).NotTo(HaveOccurred())

		users = userPostgres.NewUserRepository(db)
		roles = rolePostgres.NewRoleRepository(db)
		accounts := user.NewService(users, roles, plainHasher{}, nil, testutil.Logger())
		inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
			return dbtx.Run(ctx, db, fn)
		}
		service = employee.NewService(postgres.NewEmployeeRepository(db), accounts, inTx, testutil.Logger())
	})

	It("creates an employee and parses its dates", func() {
		e, account, err := service.Create(ctx, employee.EmployeeRequest{
			FullName: " <b>John Davis</b> ", HireDate: "2020-03-01", PayrateRT: 40, PayrateOT: 60,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(account).To(BeNil())
		Expect(e.FullName).To(Equal("John Davis"))
		Expect(e.HireDate.Format(employee.DateLayout)).To(Equal("2020-03-01"))
	})

	It("rejects a bad date", func() {
		_, _, err := service.Create(ctx, employee.EmployeeRequest{FullName: "John Davis", HireDate: "03/01/2020"})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
	})

	It("creates a linked login in the same transaction", func() {
		e, account, err := service.Create(ctx, employee.EmployeeRequest{
			FullName: "Maria Lopez",
			User:     &employee.AccountRequest{Username: "mlopez", Password: "secret1"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(account.EmployeeName()).To(Equal(e.FullName))
		Expect(account.SessionClass()).To(Equal(identity.ClassUser))
	})

	It("gives a linked login the pages of its role", func() {
		staff := &role.Role{Name: permission.UserRoleName, Permissions: permission.UserGrid()}
		Expect(roles.Create(ctx, staff)).To(Succeed())

		// the role lookup shares the one pooled connection with the open transaction
		deadline, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		e, account, err := service.Create(deadline, employee.EmployeeRequest{
			FullName: "Maria Lopez",
			User:     &employee.AccountRequest{Username: "mlopez", Password: "secret1", RoleID: &staff.ID},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(account.EmployeeName()).To(Equal(e.FullName))
		Expect(*account.RoleID).To(Equal(staff.ID))
		Expect(account.Permissions).To(Equal(permission.DeriveFlat(permission.UserGrid())))
		Expect(account.CanAccess(permission.PageTimebooks)).To(BeTrue())
		Expect(account.CanAccess(permission.PageVendors)).To(BeFalse())
	})

	It("rolls the employee back when the linked role is missing", func() {
		missing := int64(404)
		_, _, err := service.Create(ctx, employee.EmployeeRequest{
			FullName: "Ghost",
			User:     &employee.AccountRequest{Username: "ghost", Password: "secret1", RoleID: &missing},
		})
		Expect(errors.Is(err, internal.ErrRoleNotFound)).To(BeTrue())

		var count int64
		Expect(db.Model(&employeeDatamodel.Employee{}).Where("full_name = ?", "Ghost").Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})

	It("rolls the employee back when the login cannot be created", func() {
		_, _, err := service.Create(ctx, employee.EmployeeRequest{
			FullName: "First", User: &employee.AccountRequest{Username: "crew", Password: "secret1"},
		})
		Expect(err).NotTo(HaveOccurred())

		_, _, err = service.Create(ctx, employee.EmployeeRequest{
			FullName: "Second", User: &employee.AccountRequest{Username: "crew", Password: "secret1"},
		})
		Expect(errors.Is(err, internal.ErrDuplicateUsername)).To(BeTrue())

		var count int64
		Expect(db.Model(&employeeDatamodel.Employee{}).Where("full_name = ?", "Second").Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})

	It("lists names in id order", func() {
		for _, name := range []string{"Zed Young", "Amy Ash"} {
			_, _, err := service.Create(ctx, employee.EmployeeRequest{FullName: name})
			Expect(err).NotTo(HaveOccurred())
		}

		names, err := service.Names(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"Zed Young", "Amy Ash"}))
	})

	It("updates and deletes", func() {
		e, _, err := service.Create(ctx, employee.EmployeeRequest{FullName: "John Davis", PayrateRT: 40})
		Expect(err).NotTo(HaveOccurred())

		updated, err := service.Update(ctx, e.ID, employee.EmployeeRequest{FullName: "John Davis", PayrateRT: 45})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.PayrateRT).To(Equal(45.0))

		Expect(service.Delete(ctx, e.ID)).To(Succeed())
		_, err = service.Get(ctx, e.ID)
		Expect(errors.Is(err, internal.ErrEmployeeNotFound)).To(BeTrue())
		Expect(errors.Is(service.Delete(ctx, e.ID), internal.ErrEmployeeNotFound)).To(BeTrue())
	})
})
