// Package config defines the survey configuration surface: the keyword
// table that drives description classification, the control characters of
// the description grammar, and the column-name mapping for the input table.
// Configuration is validated once at construction and treated as read-only
// afterwards.
package config

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Keyword table keys recognized by the classifier. Any key outside this set
// is legal and is carried through as a Profile extra-attribute column name.
const (
	KeyProfile      = "profile"
	KeyCrossSection = "cross_section"
	KeyThalweg      = "thalweg"
	KeyRiffle       = "riffle"
	KeyRun          = "run"
	KeyPool         = "pool"
	KeyGlide        = "glide"
	KeyWaterSurface = "water_surface"
	KeyBankfull     = "bankfull"
	KeyTopOfBank    = "top_of_bank"
	KeyStructure    = "structure"
)

// Matching modes for indicator classification. Contains is the documented
// default; Word restricts matches to whitespace-delimited tokens.
const (
	MatchContains = "contains"
	MatchWord     = "word"
)

// requiredKeywords must be present in every keyword table.
var requiredKeywords = []string{KeyProfile, KeyCrossSection, KeyThalweg}

// recommendedKeywords are optional; classification silently skips any that
// are absent.
var recommendedKeywords = []string{
	KeyRiffle, KeyRun, KeyPool, KeyGlide,
	KeyWaterSurface, KeyBankfull, KeyTopOfBank, KeyStructure,
}

// ColumnMap names the five required logical fields in the input table.
type ColumnMap struct {
	ShotNumber  string `yaml:"shot_number" json:"shot_number"`
	Northing    string `yaml:"northing" json:"northing"`
	Easting     string `yaml:"easting" json:"easting"`
	Elevation   string `yaml:"elevation" json:"elevation"`
	Description string `yaml:"description" json:"description"`
}

// SurveyData represents the complete survey configuration.
type SurveyData struct {
	// Keywords maps feature names to the token strings matched against
	// shot descriptions.
	Keywords map[string]string `yaml:"keywords" json:"keywords"`

	// BreakChar separates the header segment from indicator segments
	// within a description. CommentChar truncates the description;
	// everything from its first occurrence on is discarded.
	BreakChar   string `yaml:"break_char" json:"break_char"`
	CommentChar string `yaml:"comment_char" json:"comment_char"`

	Columns ColumnMap `yaml:"columns" json:"columns"`

	// Units is an opaque passthrough flag ("m" or "ft"); the engine never
	// interprets or converts it.
	Units string `yaml:"units" json:"units"`

	// MatchMode selects indicator matching: "contains" (default) or "word".
	MatchMode string `yaml:"match_mode" json:"match_mode"`
}

// Default returns the conventional field configuration: the token grammar
// most survey crews use (pro/xs/thw/...) with dash breaks and underscore
// comments.
func Default() *SurveyData {
	return &SurveyData{
		Keywords: map[string]string{
			KeyProfile:      "pro",
			KeyCrossSection: "xs",
			KeyThalweg:      "thw",
			KeyRiffle:       "ri",
			KeyRun:          "ru",
			KeyPool:         "po",
			KeyGlide:        "gl",
			KeyWaterSurface: "ws",
			KeyBankfull:     "bkf",
			KeyTopOfBank:    "tob",
			KeyStructure:    "str",
		},
		BreakChar:   "-",
		CommentChar: "_",
		Columns: ColumnMap{
			ShotNumber:  "Name",
			Northing:    "Northing",
			Easting:     "Easting",
			Elevation:   "Elevation",
			Description: "Description",
		},
		Units:     "m",
		MatchMode: MatchContains,
	}
}

// Validate checks the closed required-key set. It is the only fatal error
// surface in the pipeline: a missing required keyword, control character,
// or column mapping fails construction.
func (c *SurveyData) Validate() error {
	if c.Keywords == nil {
		return fmt.Errorf("config: keyword table is missing")
	}
	for _, key := range requiredKeywords {
		if c.Keywords[key] == "" {
			return fmt.Errorf("config: required keyword %q is missing from keyword table", key)
		}
	}
	if err := validateControlChar("break_char", c.BreakChar); err != nil {
		return err
	}
	if err := validateControlChar("comment_char", c.CommentChar); err != nil {
		return err
	}
	cols := map[string]string{
		"shot_number": c.Columns.ShotNumber,
		"northing":    c.Columns.Northing,
		"easting":     c.Columns.Easting,
		"elevation":   c.Columns.Elevation,
		"description": c.Columns.Description,
	}
	for field, name := range cols {
		if name == "" {
			return fmt.Errorf("config: column mapping for %q is missing", field)
		}
	}
	switch c.MatchMode {
	case "", MatchContains, MatchWord:
	default:
		return fmt.Errorf("config: unknown match mode %q (use %q or %q)", c.MatchMode, MatchContains, MatchWord)
	}
	return nil
}

func validateControlChar(name, val string) error {
	if val == "" {
		return fmt.Errorf("config: required control character %q is missing", name)
	}
	if utf8.RuneCountInString(val) != 1 {
		return fmt.Errorf("config: control character %q must be a single character, got %q", name, val)
	}
	return nil
}

// ExtraKeys returns keyword-table keys beyond the mandatory and recommended
// sets, sorted lexically. These never affect classification; they name the
// input columns carried through as Profile extra attributes.
func (c *SurveyData) ExtraKeys() []string {
	known := make(map[string]bool, len(requiredKeywords)+len(recommendedKeywords))
	for _, k := range requiredKeywords {
		known[k] = true
	}
	for _, k := range recommendedKeywords {
		known[k] = true
	}
	var extras []string
	for k := range c.Keywords {
		if !known[k] {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	return extras
}
