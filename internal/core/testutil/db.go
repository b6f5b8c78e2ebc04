// Package testutil opens throwaway databases for repository and handler specs.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	employeeDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/employee"
	jobDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/job"
	preferenceDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/preference"
	recordsDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/records"
	roleDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/role"
	timebookDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/timebook"
	userDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// OpenDB returns a fresh in-memory sqlite database with every table migrated.
// Each call gets its own named shared-cache database pinned to one connection
// so transactions see their own writes.
func OpenDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:maritime_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&roleDatamodel.Role{},
		&userDatamodel.User{},
		&employeeDatamodel.Employee{},
		&timebookDatamodel.Timebook{},
		&jobDatamodel.Job{},
		&recordsDatamodel.Vessel{},
		&recordsDatamodel.Customer{},
		&recordsDatamodel.Vendor{},
		&recordsDatamodel.Item{},
		&recordsDatamodel.Contact{},
		&recordsDatamodel.PurchaseOrder{},
		&preferenceDatamodel.Preference{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Logger discards everything below error.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
