package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/app"
	"github.com/frahmantamala/maritime-backoffice/internal/metrics"
	"github.com/frahmantamala/maritime-backoffice/internal/session"
	"github.com/frahmantamala/maritime-backoffice/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Dependencies struct {
	Config  *internal.Config
	DB      *sqlx.DB
	Gorm    *gorm.DB
	Redis   *redis.Client
	Metrics *metrics.Metrics
	App     *app.App
	Logger  *slog.Logger
}

func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("redis close error", "error", err)
		}
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("database close error", "error", err)
	}
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	deps := &Dependencies{Config: cfg, DB: db, Gorm: gdb, Logger: lg}

	sessions, err := deps.initSessions(ctx)
	if err != nil {
		deps.Close()
		return nil, err
	}

	if cfg.Observability.Metrics.Enabled {
		deps.Metrics = metrics.New(db.DB)
	}

	deps.App, err = app.New(app.Dependencies{
		Config:   cfg,
		DB:       gdb,
		SQL:      db,
		Sessions: sessions,
		Metrics:  deps.Metrics,
		Logger:   lg,
	})
	if err != nil {
		deps.Close()
		return nil, err
	}
	return deps, nil
}

// initDB opens the pgx pool through sqlx and applies the pool limits.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return dbConn, nil
}

// initGorm runs gorm over the pool sqlx already owns.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return gdb, nil
}

func (d *Dependencies) initSessions(ctx context.Context) (session.Store, error) {
	cfg := d.Config.Session
	if cfg.Driver == "memory" {
		d.Logger.Warn("using in-memory sessions; logins do not survive a restart")
		return session.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
	}
	d.Redis = client
	return session.NewRedisStore(client, cfg.KeyPrefix), nil
}
