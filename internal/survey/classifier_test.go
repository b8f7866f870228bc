package survey

import (
	"testing"

	"github.com/fluvgeo/streamsurvey/pkg/config"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(config.Default())
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func TestClassifyHeader(t *testing.T) {
	tests := []struct {
		name      string
		desc      string
		kind      MorphKind
		groupName string
	}{
		{
			name:      "profile header",
			desc:      "proTrib2SUP-bri",
			kind:      MorphProfile,
			groupName: "Trib2SUP",
		},
		{
			name:      "cross section header",
			desc:      "xsR4",
			kind:      MorphCrossSection,
			groupName: "R4",
		},
		{
			name:      "unrecognized header is unclassified",
			desc:      "benchmark1",
			kind:      MorphUnclassified,
			groupName: "",
		},
		{
			name:      "commentary-only description is unclassified",
			desc:      "_resetting tripod",
			kind:      MorphUnclassified,
			groupName: "",
		},
	}

	c := newTestClassifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Shot{Record: Record{Description: tt.desc}}
			c.Classify(s)
			if s.Kind != tt.kind {
				t.Errorf("kind: expected %s, got %s", tt.kind, s.Kind)
			}
			if s.GroupName != tt.groupName {
				t.Errorf("group name: expected %q, got %q", tt.groupName, s.GroupName)
			}
		})
	}
}

func TestClassifyIndicators(t *testing.T) {
	tests := []struct {
		name        string
		desc        string
		feature     FeatureType
		isSubstrate bool
		wantDiag    bool
	}{
		{
			name:        "explicit thalweg",
			desc:        "proR1-thw",
			feature:     FeatureThalweg,
			isSubstrate: true,
		},
		{
			// "strinvert" contains both the structure token and the riffle
			// token, but the thalweg segment wins on token priority.
			name:        "thalweg wins by priority over later segments",
			desc:        "proR1-thw-strinvert",
			feature:     FeatureThalweg,
			isSubstrate: true,
		},
		{
			// Documented containment false positive: "bri" contains the
			// riffle token "ri".
			name:        "spurious riffle containment match",
			desc:        "proTrib2SUP-bri",
			feature:     FeatureRiffle,
			isSubstrate: true,
		},
		{
			name:        "water surface is non-substrate",
			desc:        "proTrib2SUP-ws",
			feature:     FeatureWaterSurface,
			isSubstrate: false,
		},
		{
			name:        "substrate set checked before non-substrate set",
			desc:        "proR1-ws-po",
			feature:     FeaturePool,
			isSubstrate: true,
		},
		{
			name:        "profile with no indicator is ambiguous",
			desc:        "proR1",
			feature:     FeatureUnknown,
			isSubstrate: false,
			wantDiag:    true,
		},
		{
			name:        "cross section with no indicator is a bare substrate reading",
			desc:        "xsR1",
			feature:     FeatureUnknown,
			isSubstrate: true,
		},
		{
			name:        "cross section top of bank",
			desc:        "xsR1-tob",
			feature:     FeatureTopOfBank,
			isSubstrate: false,
		},
	}

	c := newTestClassifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Shot{Record: Record{Description: tt.desc}}
			diag := c.Classify(s)
			if s.Feature != tt.feature {
				t.Errorf("feature: expected %s, got %s", tt.feature, s.Feature)
			}
			if s.IsSubstrate != tt.isSubstrate {
				t.Errorf("isSubstrate: expected %v, got %v", tt.isSubstrate, s.IsSubstrate)
			}
			if tt.wantDiag && diag == nil {
				t.Error("expected an ambiguity diagnostic, got none")
			}
			if !tt.wantDiag && diag != nil {
				t.Errorf("unexpected diagnostic: %s", diag)
			}
			if diag != nil && diag.Kind != DiagClassificationAmbiguity {
				t.Errorf("diagnostic kind: expected %s, got %s", DiagClassificationAmbiguity, diag.Kind)
			}
		})
	}
}

func TestClassifyWordMatchMode(t *testing.T) {
	cfg := config.Default()
	cfg.MatchMode = config.MatchWord
	c, err := NewClassifier(cfg)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	// "bri" no longer matches the riffle token as a whole word, so this
	// profile shot becomes ambiguous under word matching.
	s := &Shot{Record: Record{Description: "proTrib2SUP-bri"}}
	diag := c.Classify(s)
	if s.Feature != FeatureUnknown {
		t.Errorf("expected unknown feature under word matching, got %s", s.Feature)
	}
	if diag == nil {
		t.Error("expected an ambiguity diagnostic under word matching")
	}

	// An exact token still matches.
	s = &Shot{Record: Record{Description: "proTrib2SUP-ri"}}
	if c.Classify(s); s.Feature != FeatureRiffle {
		t.Errorf("expected riffle for exact token, got %s", s.Feature)
	}
}

func TestGuessChannelUnit(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected FeatureType
	}{
		{
			// Documented containment false positive, locked in: the group
			// key contains "Ri" which lowercases onto the riffle token.
			name:     "PineyRiver guesses riffle",
			key:      "PineyRiver",
			expected: FeatureRiffle,
		},
		{
			name:     "pool key",
			key:      "LowerPool3",
			expected: FeaturePool,
		},
		{
			name:     "no substrate token",
			key:      "Bend2",
			expected: FeatureUnknown,
		},
	}

	c := newTestClassifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.GuessChannelUnit(tt.key); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNewClassifierRequiresKeywords(t *testing.T) {
	cfg := config.Default()
	delete(cfg.Keywords, config.KeyProfile)
	if _, err := NewClassifier(cfg); err == nil {
		t.Error("expected an error for a keyword table missing the profile entry")
	}

	cfg = config.Default()
	cfg.BreakChar = ""
	if _, err := NewClassifier(cfg); err == nil {
		t.Error("expected an error for a missing break character")
	}
}
