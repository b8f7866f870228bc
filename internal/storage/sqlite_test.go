package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fluvgeo/streamsurvey/internal/survey"
)

func TestSQLiteBackendSaveRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	backend, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("NewSQLiteBackend: %v", err)
	}
	defer backend.Close()

	result := NewResult("m")
	result.Profiles = []survey.Profile{
		{
			Name: "proR1",
			Records: []survey.ProfileRecord{
				{Station: 0, Northing: 1, Easting: 2, Elevation: 100, Feature: survey.FeatureThalweg},
				{Station: 5, Northing: 4, Easting: 6, Elevation: 99, Feature: survey.FeatureRiffle},
			},
		},
	}
	result.CrossSections = []survey.CrossSection{
		{
			Name:       "xsR1",
			Morphology: survey.FeatureRiffle,
			Points: []survey.XSPoint{
				{Station: 0, Elevation: 10},
				{Station: 3, Elevation: 9},
			},
		},
	}
	result.Diagnostics = []survey.Diagnostic{
		{Kind: survey.DiagEmptyGroup, GroupKey: "R9", Message: "no substrate shots"},
	}

	if err := backend.SaveRun(context.Background(), result); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	var runs int
	if err := backend.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if runs != 1 {
		t.Errorf("expected 1 run, got %d", runs)
	}

	var points int
	if err := backend.db.QueryRow(`SELECT COUNT(*) FROM profile_points WHERE run_id = ?`, result.RunID.String()).Scan(&points); err != nil {
		t.Fatalf("count profile points: %v", err)
	}
	if points != 2 {
		t.Errorf("expected 2 profile points, got %d", points)
	}

	var diags int
	if err := backend.db.QueryRow(`SELECT COUNT(*) FROM diagnostics WHERE run_id = ?`, result.RunID.String()).Scan(&diags); err != nil {
		t.Fatalf("count diagnostics: %v", err)
	}
	if diags != 1 {
		t.Errorf("expected 1 diagnostic, got %d", diags)
	}

	// A second run with the same ID must fail the primary key.
	if err := backend.SaveRun(context.Background(), result); err == nil {
		t.Error("expected duplicate run insert to fail")
	}
}
