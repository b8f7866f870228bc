package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores runs in a local SQLite file.
type SQLiteBackend struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	units TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS profile_points (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	profile_name TEXT NOT NULL,
	seq INTEGER NOT NULL,
	station REAL NOT NULL,
	northing REAL NOT NULL,
	easting REAL NOT NULL,
	elevation REAL NOT NULL,
	feature TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS xs_points (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	section_name TEXT NOT NULL,
	morphology TEXT NOT NULL,
	unresolved_overhang INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	station REAL NOT NULL,
	elevation REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS diagnostics (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	kind TEXT NOT NULL,
	group_key TEXT NOT NULL,
	shot_number INTEGER,
	message TEXT NOT NULL
);
`

// NewSQLiteBackend opens (and if needed initializes) a results database.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping results database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to initialize results schema: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// SaveRun writes the complete run atomically.
func (b *SQLiteBackend) SaveRun(ctx context.Context, r *Result) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, units) VALUES (?, ?, ?)`,
		r.RunID.String(), r.CreatedAt, r.Units,
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	profStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO profile_points (run_id, profile_name, seq, station, northing, easting, elevation, feature)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare profile insert: %w", err)
	}
	defer profStmt.Close()
	for _, p := range r.Profiles {
		for i, rec := range p.Records {
			if _, err := profStmt.ExecContext(ctx,
				r.RunID.String(), p.Name, i,
				rec.Station, rec.Northing, rec.Easting, rec.Elevation, string(rec.Feature),
			); err != nil {
				return fmt.Errorf("failed to insert profile point: %w", err)
			}
		}
	}

	xsStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO xs_points (run_id, section_name, morphology, unresolved_overhang, seq, station, elevation)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cross-section insert: %w", err)
	}
	defer xsStmt.Close()
	for _, xs := range r.CrossSections {
		unresolved := 0
		if xs.HasUnresolvedOverhang {
			unresolved = 1
		}
		for i, pt := range xs.Points {
			if _, err := xsStmt.ExecContext(ctx,
				r.RunID.String(), xs.Name, string(xs.Morphology), unresolved, i,
				pt.Station, pt.Elevation,
			); err != nil {
				return fmt.Errorf("failed to insert cross-section point: %w", err)
			}
		}
	}

	diagStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO diagnostics (run_id, kind, group_key, shot_number, message)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare diagnostic insert: %w", err)
	}
	defer diagStmt.Close()
	for _, d := range r.Diagnostics {
		if _, err := diagStmt.ExecContext(ctx,
			r.RunID.String(), string(d.Kind), d.GroupKey, d.ShotNumber, d.Message,
		); err != nil {
			return fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
