package survey

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// XSPoint is one stationed point across a cross section.
type XSPoint struct {
	Station   float64 `json:"station" msgpack:"station"`
	Elevation float64 `json:"elevation" msgpack:"elevation"`
}

// CrossSection is a built cross section: an ordered station/elevation
// sequence, a declared or guessed channel-unit label, and an overhang flag.
// When HasUnresolvedOverhang is set, Points is the original (possibly
// non-monotonic) sequence, preserved unchanged. Cross sections are
// read-only once built.
type CrossSection struct {
	Name       string      `json:"name" msgpack:"name"`
	Points     []XSPoint   `json:"points" msgpack:"points"`
	Morphology FeatureType `json:"morphology" msgpack:"morphology"`

	HasUnresolvedOverhang bool `json:"has_unresolved_overhang" msgpack:"has_unresolved_overhang"`
}

// CrossSectionOptions controls cross-section construction. The zero value
// is not the default; use DefaultCrossSectionOptions.
type CrossSectionOptions struct {
	// GuessType infers the channel-unit label from the group key when no
	// per-shot substrate indicator declared one.
	GuessType bool
	// Project stations each point by scalar projection onto the chord from
	// the first to the last member. When false, stations are cumulative
	// along-path distance, as for profiles.
	Project bool
	// StripName removes the matched cross-section token from the produced
	// name.
	StripName bool
}

// DefaultCrossSectionOptions returns the documented defaults: guessing and
// projection on, name stripping off.
func DefaultCrossSectionOptions() CrossSectionOptions {
	return CrossSectionOptions{GuessType: true, Project: true}
}

// buildCrossSection converts an ordered, associated cross-section group
// into a stationed sequence with overhang diagnosis and best-effort repair.
func buildCrossSection(g *Group, opts CrossSectionOptions, cls *Classifier) (CrossSection, []Diagnostic) {
	var diags []Diagnostic

	stations := stationCrossSection(g.Members, opts.Project)
	points := make([]XSPoint, len(g.Members))
	for i, s := range g.Members {
		points[i] = XSPoint{Station: stations[i], Elevation: s.Elevation}
	}

	name := g.Header
	if opts.StripName {
		name = g.Key
	}

	xs := CrossSection{
		Name:       name,
		Points:     points,
		Morphology: declaredChannelUnit(g),
	}
	if xs.Morphology == FeatureUnknown && opts.GuessType {
		xs.Morphology = cls.GuessChannelUnit(g.Key)
	}

	if hasOverhang(points) {
		diags = append(diags, Diagnostic{
			Kind:     DiagOverhangDetected,
			GroupKey: g.Key,
			Message:  fmt.Sprintf("cross section %q folds back on itself (non-monotonic stations)", name),
		})
		repaired, ok := repairOverhang(points)
		if ok {
			xs.Points = repaired
		} else {
			xs.HasUnresolvedOverhang = true
			diags = append(diags, Diagnostic{
				Kind:     DiagOverhangUnresolved,
				GroupKey: g.Key,
				Message:  fmt.Sprintf("cross section %q overhang not repairable within budget; original points retained", name),
			})
		}
	}

	return xs, diags
}

// stationCrossSection computes a station for each member: scalar projection
// onto the first-to-last chord when project is set, cumulative along-path
// distance otherwise. A degenerate chord (first and last member share a
// plan position) falls back to along-path stationing.
func stationCrossSection(members []*Shot, project bool) []float64 {
	n := len(members)
	stations := make([]float64, n)
	if n == 0 {
		return stations
	}

	if project {
		first, last := members[0], members[n-1]
		chordN := last.Northing - first.Northing
		chordE := last.Easting - first.Easting
		length := math.Hypot(chordN, chordE)
		if length > 0 {
			for i, s := range members {
				dn := s.Northing - first.Northing
				de := s.Easting - first.Easting
				stations[i] = (dn*chordN + de*chordE) / length
			}
			return stations
		}
	}

	deltas := make([]float64, n)
	for i := 1; i < n; i++ {
		prev, cur := members[i-1], members[i]
		deltas[i] = math.Hypot(cur.Northing-prev.Northing, cur.Easting-prev.Easting)
	}
	floats.CumSum(stations, deltas)
	return stations
}

// declaredChannelUnit returns the first member's declared riffle, run,
// pool, or glide label, in member order, or FeatureUnknown.
func declaredChannelUnit(g *Group) FeatureType {
	for _, s := range g.Members {
		if channelUnitFeature(s.Feature) {
			return s.Feature
		}
	}
	return FeatureUnknown
}

// hasOverhang reports whether any station is less than or equal to a
// strictly earlier station, i.e. the section geometry folds back on itself.
func hasOverhang(points []XSPoint) bool {
	if len(points) < 2 {
		return false
	}
	max := points[0].Station
	for _, p := range points[1:] {
		if p.Station <= max {
			return true
		}
		max = p.Station
	}
	return false
}

// repairOverhang attempts to restore a strictly increasing station
// sequence by dropping the offending points. The attempt is bounded: at
// most half of the interior points may be dropped, and the result must
// keep at least two points. Reordering is deliberately not attempted; the
// recorded shot sequence is trusted, so a point that cannot stand where
// the surveyor placed it is removed rather than moved.
func repairOverhang(points []XSPoint) ([]XSPoint, bool) {
	if len(points) < 2 {
		return nil, false
	}

	budget := (len(points) - 2) / 2
	kept := make([]XSPoint, 0, len(points))
	kept = append(kept, points[0])
	dropped := 0
	for _, p := range points[1:] {
		if p.Station > kept[len(kept)-1].Station {
			kept = append(kept, p)
			continue
		}
		dropped++
		if dropped > budget {
			return nil, false
		}
	}
	if len(kept) < 2 {
		return nil, false
	}
	return kept, true
}
