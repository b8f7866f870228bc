package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default configuration must validate: %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SurveyData)
	}{
		{"missing keyword table", func(c *SurveyData) { c.Keywords = nil }},
		{"missing profile keyword", func(c *SurveyData) { delete(c.Keywords, KeyProfile) }},
		{"missing cross section keyword", func(c *SurveyData) { delete(c.Keywords, KeyCrossSection) }},
		{"missing thalweg keyword", func(c *SurveyData) { delete(c.Keywords, KeyThalweg) }},
		{"empty profile token", func(c *SurveyData) { c.Keywords[KeyProfile] = "" }},
		{"missing break char", func(c *SurveyData) { c.BreakChar = "" }},
		{"multi-rune break char", func(c *SurveyData) { c.BreakChar = "--" }},
		{"missing comment char", func(c *SurveyData) { c.CommentChar = "" }},
		{"missing elevation column", func(c *SurveyData) { c.Columns.Elevation = "" }},
		{"missing description column", func(c *SurveyData) { c.Columns.Description = "" }},
		{"unknown match mode", func(c *SurveyData) { c.MatchMode = "regex" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error, got nil")
			}
		})
	}
}

func TestValidateOptionalKeywordsMayBeAbsent(t *testing.T) {
	cfg := Default()
	delete(cfg.Keywords, KeyRiffle)
	delete(cfg.Keywords, KeyStructure)
	if err := cfg.Validate(); err != nil {
		t.Errorf("recommended keywords are optional: %v", err)
	}
}

func TestExtraKeys(t *testing.T) {
	cfg := Default()
	cfg.Keywords["habitat"] = "hab"
	cfg.Keywords["cover"] = "cov"

	got := cfg.ExtraKeys()
	expected := []string{"cover", "habitat"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	if extras := Default().ExtraKeys(); len(extras) != 0 {
		t.Errorf("default table has no extra keys, got %v", extras)
	}
}

func TestYAMLProvider(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial file overrides defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		content := []byte(`
columns:
  shot_number: PointID
  description: Notes
units: ft
`)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := NewYAMLProvider(path).LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.Columns.ShotNumber != "PointID" {
			t.Errorf("expected shot number column PointID, got %q", cfg.Columns.ShotNumber)
		}
		if cfg.Columns.Northing != "Northing" {
			t.Errorf("unset columns keep defaults, got %q", cfg.Columns.Northing)
		}
		if cfg.Units != "ft" {
			t.Errorf("expected units ft, got %q", cfg.Units)
		}
		if cfg.Keywords[KeyProfile] != "pro" {
			t.Errorf("expected default profile token, got %q", cfg.Keywords[KeyProfile])
		}
	})

	t.Run("keyword table missing required entry fails", func(t *testing.T) {
		path := filepath.Join(dir, "badkeywords.yaml")
		content := []byte(`
keywords:
  cross_section: xs
  thalweg: thw
`)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := NewYAMLProvider(path).LoadConfig(); err == nil {
			t.Error("expected an error for a keyword table without the profile entry")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := NewYAMLProvider(filepath.Join(dir, "nope.yaml")).LoadConfig(); err == nil {
			t.Error("expected an error for a missing file")
		}
	})
}
