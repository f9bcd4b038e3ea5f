// Package store opens the local database that keeps the session token and
// the order status journal, and applies its migrations.
package store

import (
	"context"
	"fmt"

	"github.com/frahmantamala/crm-console/db/migrations"
	"github.com/frahmantamala/crm-console/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store shares one connection pool between sqlx and gorm.
type Store struct {
	DB      *sqlx.DB
	Gorm    *gorm.DB
	dialect string
}

func Open(cfg internal.StoreConfig) (*Store, error) {
	driver, dialect, err := drivers(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Driver, err)
	}

	if dialect == "sqlite3" {
		// every connection to ":memory:" is a separate database
		db.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	var dialector gorm.Dialector
	if dialect == "sqlite3" {
		dialector = sqlite.Dialector{DriverName: driver, DSN: cfg.Source, Conn: db.DB}
	} else {
		dialector = postgres.New(postgres.Config{Conn: db.DB})
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open gorm on %s store: %w", cfg.Driver, err)
	}

	return &Store{DB: db, Gorm: gdb, dialect: dialect}, nil
}

func drivers(name string) (driver, dialect string, err error) {
	switch name {
	case DriverSQLite, "":
		return "sqlite3", "sqlite3", nil
	case DriverPostgres:
		return "pgx", "postgres", nil
	}
	return "", "", fmt.Errorf("unsupported store driver %q", name)
}

// Migrate applies every pending migration.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.prepare(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, s.DB.DB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Rollback reverts the latest migration.
func (s *Store) Rollback(ctx context.Context) error {
	if err := s.prepare(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, s.DB.DB, "."); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

// Version returns the current schema version.
func (s *Store) Version(ctx context.Context) (int64, error) {
	if err := s.prepare(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, s.DB.DB)
}

func (s *Store) prepare() error {
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName("schema_migrations")
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.DB.Close()
}
