package loader

import (
	"strings"
	"testing"

	"github.com/fluvgeo/streamsurvey/pkg/config"
)

func TestRead(t *testing.T) {
	cfg := config.Default()
	csvData := `Name,Northing,Easting,Elevation,Description,habitat
1,1000.5,2000.25,90.1,proR1-thw,boulder
2,1001,2001,91.2,proR1-ws,
3,1002,2002,89.9,xsR1,`

	records, err := Read(strings.NewReader(csvData), cfg)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	r := records[0]
	if r.Number != 1 {
		t.Errorf("expected shot number 1, got %d", r.Number)
	}
	if r.Northing != 1000.5 || r.Easting != 2000.25 || r.Elevation != 90.1 {
		t.Errorf("bad coordinates: %+v", r)
	}
	if r.Description != "proR1-thw" {
		t.Errorf("expected description proR1-thw, got %q", r.Description)
	}
	if r.Extra["habitat"] != "boulder" {
		t.Errorf("expected unmapped column carried through, got %v", r.Extra)
	}
}

func TestReadColumnRemapping(t *testing.T) {
	cfg := config.Default()
	cfg.Columns.ShotNumber = "PointID"
	cfg.Columns.Description = "Notes"

	csvData := `PointID,Northing,Easting,Elevation,Notes
7,1,2,3,xsR2-bkf`

	records, err := Read(strings.NewReader(csvData), cfg)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if records[0].Number != 7 || records[0].Description != "xsR2-bkf" {
		t.Errorf("remapped columns not honored: %+v", records[0])
	}
}

func TestReadFloatStyleShotNumbers(t *testing.T) {
	cfg := config.Default()
	csvData := `Name,Northing,Easting,Elevation,Description
12.0,1,2,3,proR1-thw`

	records, err := Read(strings.NewReader(csvData), cfg)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if records[0].Number != 12 {
		t.Errorf("expected shot number 12, got %d", records[0].Number)
	}
}

func TestReadErrors(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "missing required column",
			csv:  "Name,Northing,Easting,Description\n1,2,3,proR1",
		},
		{
			name: "bad northing",
			csv:  "Name,Northing,Easting,Elevation,Description\n1,abc,3,4,proR1",
		},
		{
			name: "bad shot number",
			csv:  "Name,Northing,Easting,Elevation,Description\nx,2,3,4,proR1",
		},
		{
			name: "empty input",
			csv:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.csv), cfg); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}
