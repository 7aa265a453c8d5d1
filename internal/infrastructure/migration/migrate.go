package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Runner applies SQL migrations from a file source
type Runner struct {
	dsn       string
	sourceURL string
	logger    *zap.Logger
}

// NewRunner creates a migration runner for the given database and
// migrations directory (e.g. "file://migrations").
func NewRunner(dsn, sourceURL string, logger *zap.Logger) *Runner {
	return &Runner{dsn: dsn, sourceURL: sourceURL, logger: logger}
}

// Up applies all pending migrations
func (r *Runner) Up() error {
	m, cleanup, err := r.open()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info("migrations already up to date")
			return nil
		}
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	r.logger.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Down rolls back the most recent migration
func (r *Runner) Down() error {
	m, cleanup, err := r.open()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}
	r.logger.Info("rolled back one migration")
	return nil
}

// Version reports the current migration version
func (r *Runner) Version() (uint, bool, error) {
	m, cleanup, err := r.open()
	if err != nil {
		return 0, false, err
	}
	defer cleanup()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (r *Runner) open() (*migrate.Migrate, func(), error) {
	db, err := sql.Open("postgres", r.dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to init migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(r.sourceURL, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to init migrations: %w", err)
	}

	cleanup := func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			r.logger.Warn("migration source close failed", zap.Error(srcErr))
		}
		if dbErr != nil {
			r.logger.Warn("migration database close failed", zap.Error(dbErr))
		}
	}
	return m, cleanup, nil
}
