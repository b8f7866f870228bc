// Package storage persists build results. Each stored run is keyed by a
// UUID and carries the built profiles, cross sections, and diagnostics.
// Storage is optional: the engine never depends on it.
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fluvgeo/streamsurvey/internal/survey"
)

// Result is one completed reconstruction run.
type Result struct {
	RunID         uuid.UUID
	CreatedAt     time.Time
	Units         string
	Profiles      []survey.Profile
	CrossSections []survey.CrossSection
	Diagnostics   []survey.Diagnostic
}

// NewResult stamps a run with a fresh ID and timestamp.
func NewResult(units string) *Result {
	return &Result{
		RunID:     uuid.New(),
		CreatedAt: time.Now().UTC(),
		Units:     units,
	}
}

// Backend stores completed runs.
type Backend interface {
	SaveRun(ctx context.Context, r *Result) error
	Close() error
}

// Open selects a backend from the DSN: postgres:// DSNs open a GORM
// Postgres client, anything else is treated as a SQLite file path.
func Open(dsn string) (Backend, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgresBackend(dsn)
	}
	return NewSQLiteBackend(dsn)
}
