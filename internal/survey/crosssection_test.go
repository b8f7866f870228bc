package survey

import "testing"

func TestHasOverhang(t *testing.T) {
	tests := []struct {
		name     string
		stations []float64
		expected bool
	}{
		{"strictly increasing", []float64{0, 1, 2.5, 7}, false},
		{"equal neighbors", []float64{0, 1, 1, 2}, true},
		{"fold back", []float64{0, 3, 2, 4}, true},
		{"below an earlier non-adjacent station", []float64{0, 5, 6, 4}, true},
		{"single point", []float64{0}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]XSPoint, len(tt.stations))
			for i, s := range tt.stations {
				points[i] = XSPoint{Station: s}
			}
			if got := hasOverhang(points); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRepairOverhang(t *testing.T) {
	tests := []struct {
		name     string
		stations []float64
		repaired []float64
		ok       bool
	}{
		{
			name:     "single drop within budget",
			stations: []float64{0, 2, 1, 3, 4},
			repaired: []float64{0, 2, 3, 4},
			ok:       true,
		},
		{
			name:     "two drops exceed the budget for four points",
			stations: []float64{0, 5, 1, 2},
			ok:       false,
		},
		{
			name:     "two equal points cannot be repaired",
			stations: []float64{1, 1},
			ok:       false,
		},
		{
			name:     "larger section with scattered folds",
			stations: []float64{0, 1, 0.5, 2, 1.5, 3, 4, 5},
			repaired: []float64{0, 1, 2, 3, 4, 5},
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]XSPoint, len(tt.stations))
			for i, s := range tt.stations {
				points[i] = XSPoint{Station: s}
			}
			repaired, ok := repairOverhang(points)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			if len(repaired) != len(tt.repaired) {
				t.Fatalf("expected %d points, got %d", len(tt.repaired), len(repaired))
			}
			for i, p := range repaired {
				if p.Station != tt.repaired[i] {
					t.Errorf("point %d: expected station %v, got %v", i, tt.repaired[i], p.Station)
				}
			}
		})
	}
}

func TestStationCrossSectionDegenerateChord(t *testing.T) {
	// First and last member share a plan position; projection would put
	// every station at zero, so stationing falls back to along-path.
	members := []*Shot{
		{Record: Record{Northing: 0, Easting: 0}},
		{Record: Record{Northing: 0, Easting: 2}},
		{Record: Record{Northing: 0, Easting: 0}},
	}
	stations := stationCrossSection(members, true)
	expected := []float64{0, 2, 4}
	for i, s := range stations {
		if s != expected[i] {
			t.Errorf("station %d: expected %v, got %v", i, expected[i], s)
		}
	}
}
