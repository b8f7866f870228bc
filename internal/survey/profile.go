package survey

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ProfileRecord is one stationed point along a longitudinal profile.
type ProfileRecord struct {
	Station   float64     `json:"station" msgpack:"station"`
	Northing  float64     `json:"northing" msgpack:"northing"`
	Easting   float64     `json:"easting" msgpack:"easting"`
	Elevation float64     `json:"elevation" msgpack:"elevation"`
	Feature   FeatureType `json:"feature" msgpack:"feature"`
	// Extra carries per-record attributes for keyword-table entries beyond
	// the recognized set, sourced from like-named input columns.
	Extra map[string]string `json:"extra,omitempty" msgpack:"extra,omitempty"`
}

// Profile is a built longitudinal profile: an ordered sequence of stationed
// records. Station is cumulative planar distance from the first record, so
// Station of the first record is always 0 and the sequence is
// non-decreasing. Profiles are read-only once built.
type Profile struct {
	Name    string          `json:"name" msgpack:"name"`
	Records []ProfileRecord `json:"records" msgpack:"records"`
}

// ProfileOptions controls profile construction.
type ProfileOptions struct {
	// StripName removes the matched profile token from the produced name.
	// Grouping itself is unaffected.
	StripName bool
}

// buildProfile converts an ordered, associated profile group into a
// stationed sequence. The recorded shot order is trusted as the intended
// upstream-to-downstream sequence; no resequencing by geometry.
func buildProfile(g *Group, opts ProfileOptions, extraKeys []string) Profile {
	n := len(g.Members)

	// Station by cumulative planar distance between successive members.
	deltas := make([]float64, n)
	for i := 1; i < n; i++ {
		prev, cur := g.Members[i-1], g.Members[i]
		deltas[i] = math.Hypot(cur.Northing-prev.Northing, cur.Easting-prev.Easting)
	}
	stations := make([]float64, n)
	floats.CumSum(stations, deltas)

	records := make([]ProfileRecord, n)
	for i, s := range g.Members {
		records[i] = ProfileRecord{
			Station:   stations[i],
			Northing:  s.Northing,
			Easting:   s.Easting,
			Elevation: s.Elevation,
			Feature:   s.Feature,
			Extra:     extraAttributes(s, extraKeys),
		}
	}

	name := g.Header
	if opts.StripName {
		name = g.Key
	}
	return Profile{Name: name, Records: records}
}

// extraAttributes copies values for the configured extra keyword keys from
// the shot's unmapped input columns, when present.
func extraAttributes(s *Shot, extraKeys []string) map[string]string {
	if len(extraKeys) == 0 || len(s.Extra) == 0 {
		return nil
	}
	var attrs map[string]string
	for _, key := range extraKeys {
		if v, ok := s.Extra[key]; ok {
			if attrs == nil {
				attrs = make(map[string]string, len(extraKeys))
			}
			attrs[key] = v
		}
	}
	return attrs
}
