package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"jinji/attendance-sync/internal/database"
)

// ErrNotFound is returned when no row matches.
var ErrNotFound = errors.New("not found")

// wrapErr tags storage outages with database.ErrUnavailable so handlers can
// answer with a retryable status.
func wrapErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if database.IsUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, database.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
