package survey

import (
	"sync"

	"go.uber.org/zap"

	"github.com/fluvgeo/streamsurvey/pkg/config"
)

// Engine holds the classified shots and their group views for one survey.
// Shots are classified and anchor-associated once at construction; after
// that the shot set is never written again, so builds are read-only and
// safe to invoke concurrently. Builds fan out one goroutine per group: the
// per-group scans are stateful and sequential within a group but share no
// mutable state across groups, so no locking is needed. A degraded or
// unrepaired group never aborts the others; its conditions come back as
// diagnostics on the build result.
type Engine struct {
	cfg        *config.SurveyData
	classifier *Classifier
	shots      []*Shot
	groups     []*Group
	extraKeys  []string

	// Diagnostics gathered at construction. classifyDiags hold profile
	// ambiguities; the association diagnostics are split by kind so each
	// build surfaces only its own groups' conditions.
	classifyDiags []Diagnostic
	assocDiags    map[MorphKind][]Diagnostic

	logger *zap.SugaredLogger
}

// NewEngine validates the configuration, classifies every record, and
// partitions the classified shots into groups. A missing required keyword
// or column mapping is the only fatal failure in the pipeline.
func NewEngine(cfg *config.SurveyData, records []Record, logger *zap.SugaredLogger) (*Engine, error) {
	classifier, err := NewClassifier(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        cfg,
		classifier: classifier,
		extraKeys:  cfg.ExtraKeys(),
		logger:     logger,
	}

	e.shots = make([]*Shot, len(records))
	for i, r := range records {
		s := &Shot{Record: r, order: i}
		if d := classifier.Classify(s); d != nil {
			e.classifyDiags = append(e.classifyDiags, *d)
		}
		e.shots[i] = s
	}
	e.groups = groupShots(e.shots)

	e.assocDiags = make(map[MorphKind][]Diagnostic)
	for _, g := range e.groups {
		if d := associate(g); len(d) > 0 {
			e.assocDiags[g.Kind] = append(e.assocDiags[g.Kind], d...)
		}
	}

	if logger != nil {
		classified := 0
		for _, s := range e.shots {
			if s.Kind != MorphUnclassified {
				classified++
			}
		}
		logger.Debugf("classified %d of %d shots into %d groups",
			classified, len(e.shots), len(e.groups))
	}

	return e, nil
}

// Shots returns the classified shots in input order.
func (e *Engine) Shots() []*Shot {
	return e.shots
}

// Units returns the configured units flag, an opaque passthrough.
func (e *Engine) Units() string {
	return e.cfg.Units
}

// InspectGroups reports member counts per group key for both morphology
// kinds. It performs no geometric work and cannot fail.
func (e *Engine) InspectGroups() GroupInspection {
	return inspectGroups(e.groups)
}

// BuildProfiles builds every profile group into a stationed longitudinal
// profile. Diagnostics cover classification ambiguities, unanchored
// associations, and empty groups, merged deterministically.
func (e *Engine) BuildProfiles(opts ProfileOptions) ([]Profile, []Diagnostic) {
	groups := e.groupsOf(MorphProfile)

	profiles := make([]Profile, len(groups))

	var wg sync.WaitGroup
	for i, g := range groups {
		wg.Add(1)
		go func(i int, g *Group) {
			defer wg.Done()
			profiles[i] = buildProfile(g, opts, e.extraKeys)
		}(i, g)
	}
	wg.Wait()

	diags := append([]Diagnostic(nil), e.classifyDiags...)
	diags = append(diags, e.assocDiags[MorphProfile]...)
	return profiles, diags
}

// BuildCrossSections builds every cross-section group into a stationed
// station/elevation sequence with overhang diagnosis and repair.
func (e *Engine) BuildCrossSections(opts CrossSectionOptions) ([]CrossSection, []Diagnostic) {
	groups := e.groupsOf(MorphCrossSection)

	sections := make([]CrossSection, len(groups))
	groupDiags := make([][]Diagnostic, len(groups))

	var wg sync.WaitGroup
	for i, g := range groups {
		wg.Add(1)
		go func(i int, g *Group) {
			defer wg.Done()
			xs, buildDiags := buildCrossSection(g, opts, e.classifier)
			sections[i] = xs
			groupDiags[i] = buildDiags
		}(i, g)
	}
	wg.Wait()

	diags := append([]Diagnostic(nil), e.assocDiags[MorphCrossSection]...)
	for _, d := range groupDiags {
		diags = append(diags, d...)
	}
	return sections, diags
}

// groupsOf returns the groups of one kind. groupShots sorts by (kind, key),
// so the result is already ordered by key.
func (e *Engine) groupsOf(kind MorphKind) []*Group {
	var out []*Group
	for _, g := range e.groups {
		if g.Kind == kind {
			out = append(out, g)
		}
	}
	return out
}
