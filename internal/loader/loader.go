// Package loader reads delimited survey files into records through the
// configured column-name mapping. Row loading is an external collaborator
// of the reconstruction engine: it resolves column names and parses
// numerics, and nothing more. Units are never interpreted here.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fluvgeo/streamsurvey/internal/survey"
	"github.com/fluvgeo/streamsurvey/pkg/config"
)

// ReadFile reads a CSV survey file from disk.
func ReadFile(path string, cfg *config.SurveyData) ([]survey.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open survey file: %w", err)
	}
	defer f.Close()
	return Read(f, cfg)
}

// Read reads CSV survey rows from r. The first row is a header mapped
// through cfg.Columns; every required logical field must resolve to a
// column. Columns outside the mapping are carried through on each record
// for Profile extra attributes.
func Read(r io.Reader, cfg *config.SurveyData) ([]survey.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("survey file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	required := map[string]string{
		"shot_number": cfg.Columns.ShotNumber,
		"northing":    cfg.Columns.Northing,
		"easting":     cfg.Columns.Easting,
		"elevation":   cfg.Columns.Elevation,
		"description": cfg.Columns.Description,
	}
	cols := make(map[string]int, len(required))
	for field, name := range required {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("required column %q (%s) not found in header", name, field)
		}
		cols[field] = idx
	}
	mapped := make(map[int]bool, len(cols))
	for _, idx := range cols {
		mapped[idx] = true
	}

	var records []survey.Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		number, err := parseShotNumber(row[cols["shot_number"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad shot number %q: %w", line, row[cols["shot_number"]], err)
		}

		rec := survey.Record{
			Number:      number,
			Description: row[cols["description"]],
		}
		for field, dst := range map[string]*float64{
			"northing":  &rec.Northing,
			"easting":   &rec.Easting,
			"elevation": &rec.Elevation,
		} {
			v, err := strconv.ParseFloat(row[cols[field]], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad %s %q: %w", line, field, row[cols[field]], err)
			}
			*dst = v
		}

		for i, cell := range row {
			if mapped[i] || i >= len(header) {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[header[i]] = cell
		}

		records = append(records, rec)
	}

	return records, nil
}

// parseShotNumber accepts plain integers and the "12.0" style some
// instrument exports produce.
func parseShotNumber(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
