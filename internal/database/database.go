package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrUnavailable means the backing storage could not serve the request right
// now. Callers report it to clients as a retryable failure.
var ErrUnavailable = errors.New("record store unavailable")

type DB struct {
	*sql.DB
	logger *zap.Logger
}

func New(storagePath string, logger *zap.Logger) (*DB, error) {
	dsn := storagePath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &DB{
		DB:     db,
		logger: logger,
	}

	if err := database.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established", zap.String("path", storagePath))
	return database, nil
}

// migrations are applied in order; the index plus one is the version stored
// in schema_migrations. Append only.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		employee_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'staff',
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	// One row per employee and date; times and leave_type are exclusive.
	`CREATE TABLE IF NOT EXISTS attendances (
		employee_id INTEGER NOT NULL REFERENCES employees(employee_id),
		work_date TEXT NOT NULL,
		start_time TEXT,
		end_time TEXT,
		leave_type INTEGER,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (employee_id, work_date)
	)`,
	`CREATE TABLE IF NOT EXISTS leaves (
		employee_id INTEGER NOT NULL REFERENCES employees(employee_id),
		leave_date TEXT NOT NULL,
		leave_type INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (employee_id, leave_date)
	)`,
	`CREATE TABLE IF NOT EXISTS salaries (
		employee_id INTEGER NOT NULL REFERENCES employees(employee_id),
		pay_month TEXT NOT NULL,
		basic_salary INTEGER NOT NULL DEFAULT 0,
		overtime_allowance INTEGER NOT NULL DEFAULT 0,
		health_insurance INTEGER NOT NULL DEFAULT 0,
		nursing_care_insurance INTEGER NOT NULL DEFAULT 0,
		pension INTEGER NOT NULL DEFAULT 0,
		employment_insurance INTEGER NOT NULL DEFAULT 0,
		income_tax INTEGER NOT NULL DEFAULT 0,
		resident_tax INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (employee_id, pay_month)
	)`,
	`CREATE TABLE IF NOT EXISTS performance_reviews (
		employee_id INTEGER NOT NULL REFERENCES employees(employee_id),
		review_month TEXT NOT NULL,
		subordinate_input TEXT NOT NULL DEFAULT '',
		supervisor_ability INTEGER NOT NULL DEFAULT 0,
		supervisor_behavior INTEGER NOT NULL DEFAULT 0,
		supervisor_attitude INTEGER NOT NULL DEFAULT 0,
		supervisor_input TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (employee_id, review_month)
	)`,
}

func (db *DB) migrate() error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", version, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: failed to record version: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", version, err)
		}
	}

	db.logger.Info("Database migrations completed",
		zap.Int("from_version", current),
		zap.Int("version", len(migrations)),
	)
	return nil
}

func (db *DB) Close() error {
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	db.logger.Info("Database connection closed")
	return nil
}

// IsUnavailable reports whether err means the storage is busy, locked or
// gone rather than the query being wrong.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN:
			return true
		}
	}
	return strings.Contains(err.Error(), "database is closed")
}
