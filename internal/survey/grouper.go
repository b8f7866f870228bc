package survey

import "sort"

// Group is an ordered view over the classified shots belonging to one
// named profile or cross section. Members are sorted ascending by shot
// number with a stable tie-break on original input order. Groups need not
// be contiguous in the source file, and a group with zero substrate shots
// is legal but degraded.
type Group struct {
	Kind MorphKind
	// Key is the group name with the morphology token removed.
	Key string
	// Header is the full header segment shared by the members.
	Header  string
	Members []*Shot
}

// SubstrateCount returns the number of substrate members.
func (g *Group) SubstrateCount() int {
	n := 0
	for _, s := range g.Members {
		if s.IsSubstrate {
			n++
		}
	}
	return n
}

// groupShots partitions classified shots into groups in one pass.
// Unclassified shots belong to no group. The returned slice is sorted by
// (kind, key) so downstream processing is deterministic.
func groupShots(shots []*Shot) []*Group {
	type groupID struct {
		kind MorphKind
		key  string
	}

	byID := make(map[groupID]*Group)
	var order []*Group
	for _, s := range shots {
		if s.Kind == MorphUnclassified {
			continue
		}
		id := groupID{s.Kind, s.GroupName}
		g, ok := byID[id]
		if !ok {
			g = &Group{Kind: s.Kind, Key: s.GroupName, Header: s.Header}
			byID[id] = g
			order = append(order, g)
		}
		g.Members = append(g.Members, s)
	}

	for _, g := range order {
		members := g.Members
		// Ascending shot number; duplicates keep original input order.
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].Number != members[j].Number {
				return members[i].Number < members[j].Number
			}
			return members[i].order < members[j].order
		})
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].Kind != order[j].Kind {
			return order[i].Kind < order[j].Kind
		}
		return order[i].Key < order[j].Key
	})
	return order
}

// GroupInspection reports member counts per group key for each morphology
// kind. It involves no geometric work and cannot fail; callers use it for
// pre-flight validation before building.
type GroupInspection struct {
	Profiles      map[string]int `json:"profiles" msgpack:"profiles"`
	CrossSections map[string]int `json:"cross_sections" msgpack:"cross_sections"`
}

// TotalShots returns the summed member count across both kinds, which
// equals the number of classified shots.
func (gi GroupInspection) TotalShots() int {
	n := 0
	for _, c := range gi.Profiles {
		n += c
	}
	for _, c := range gi.CrossSections {
		n += c
	}
	return n
}

func inspectGroups(groups []*Group) GroupInspection {
	gi := GroupInspection{
		Profiles:      make(map[string]int),
		CrossSections: make(map[string]int),
	}
	for _, g := range groups {
		switch g.Kind {
		case MorphProfile:
			gi.Profiles[g.Key] = len(g.Members)
		case MorphCrossSection:
			gi.CrossSections[g.Key] = len(g.Members)
		}
	}
	return gi
}
