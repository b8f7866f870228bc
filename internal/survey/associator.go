package survey

import "fmt"

// associate walks one group's ordered members, propagating the planimetric
// position of the most recent substrate shot onto subsequent non-substrate
// shots. The non-substrate shot keeps its own elevation: a water-surface or
// bankfull reading measures a different height at the same plan position as
// the nearest substrate reading. A non-substrate shot seen before any
// anchor keeps its coordinates unmodified and is reported.
//
// Groups are associated independently; no state crosses group boundaries.
// Association runs exactly once, at engine construction: it is the only
// writer of shot state, which keeps later builds read-only.
func associate(g *Group) []Diagnostic {
	var diags []Diagnostic

	if g.SubstrateCount() == 0 {
		diags = append(diags, Diagnostic{
			Kind:     DiagEmptyGroup,
			GroupKey: g.Key,
			Message:  fmt.Sprintf("%s group has no substrate shots; no anchor will ever be available", g.Kind),
		})
	}

	var anchor *Shot
	for _, s := range g.Members {
		if s.IsSubstrate {
			anchor = s
			continue
		}
		if anchor == nil {
			number := s.Number
			diags = append(diags, Diagnostic{
				Kind:       DiagUnanchoredAssociation,
				GroupKey:   g.Key,
				ShotNumber: &number,
				Message:    "leading non-substrate shot has no anchor; coordinates left unmodified",
			})
			continue
		}
		s.Northing = anchor.Northing
		s.Easting = anchor.Easting
	}
	return diags
}
