package survey

import (
	"fmt"
	"strings"

	"github.com/fluvgeo/streamsurvey/pkg/config"
)

// tokenEntry pairs a feature type with its keyword token. Priority is the
// slice order it appears in.
type tokenEntry struct {
	feature FeatureType
	token   string
}

// Classifier assigns each shot a morphology kind, group name, and feature
// type from the configured keyword table. It is a pure function of one
// shot and the shared read-only configuration, so shots may be classified
// in any order or concurrently.
type Classifier struct {
	profileToken string
	xsToken      string
	breakChar    string
	commentChar  string

	// Fixed priority orders. The first token, by priority across all
	// indicator segments left to right, wins; later segments are not
	// re-examined.
	substrate    []tokenEntry
	nonSubstrate []tokenEntry

	match func(segment, token string) bool
}

// NewClassifier builds a classifier from a validated configuration.
func NewClassifier(cfg *config.SurveyData) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Classifier{
		profileToken: cfg.Keywords[config.KeyProfile],
		xsToken:      cfg.Keywords[config.KeyCrossSection],
		breakChar:    cfg.BreakChar,
		commentChar:  cfg.CommentChar,
	}

	// Substrate tokens, checked before the non-substrate set. Recommended
	// keywords absent from the table are simply skipped.
	for _, e := range []tokenEntry{
		{FeatureThalweg, cfg.Keywords[config.KeyThalweg]},
		{FeatureRiffle, cfg.Keywords[config.KeyRiffle]},
		{FeatureRun, cfg.Keywords[config.KeyRun]},
		{FeaturePool, cfg.Keywords[config.KeyPool]},
		{FeatureGlide, cfg.Keywords[config.KeyGlide]},
	} {
		if e.token != "" {
			c.substrate = append(c.substrate, e)
		}
	}
	for _, e := range []tokenEntry{
		{FeatureWaterSurface, cfg.Keywords[config.KeyWaterSurface]},
		{FeatureBankfull, cfg.Keywords[config.KeyBankfull]},
		{FeatureTopOfBank, cfg.Keywords[config.KeyTopOfBank]},
		{FeatureStructure, cfg.Keywords[config.KeyStructure]},
	} {
		if e.token != "" {
			c.nonSubstrate = append(c.nonSubstrate, e)
		}
	}

	switch cfg.MatchMode {
	case "", config.MatchContains:
		// Plain substring containment is the documented contract. It can
		// match an unintended token (a segment containing "river" matches
		// the riffle token "ri"); callers opt into word matching via the
		// configuration if they want stricter behavior.
		c.match = strings.Contains
	case config.MatchWord:
		c.match = wordMatch
	default:
		return nil, fmt.Errorf("classifier: unknown match mode %q", cfg.MatchMode)
	}

	return c, nil
}

// wordMatch matches only whitespace-delimited tokens within a segment.
func wordMatch(segment, token string) bool {
	for _, field := range strings.Fields(segment) {
		if field == token {
			return true
		}
	}
	return false
}

// Classify assigns the derived fields on s and returns a diagnostic for an
// ambiguous profile shot (no indicator matched), or nil.
func (c *Classifier) Classify(s *Shot) *Diagnostic {
	segments := Tokenize(s.Description, c.breakChar, c.commentChar)
	header := segments[0]

	// Header classification: profile token takes priority over the cross
	// section token.
	switch {
	case strings.HasPrefix(header, c.profileToken):
		s.Kind = MorphProfile
		s.Header = header
		s.GroupName = header[len(c.profileToken):]
	case strings.HasPrefix(header, c.xsToken):
		s.Kind = MorphCrossSection
		s.Header = header
		s.GroupName = header[len(c.xsToken):]
	default:
		s.Kind = MorphUnclassified
		s.Feature = FeatureUnknown
		return nil
	}

	if feature, isSubstrate, ok := c.matchIndicators(segments[1:]); ok {
		s.Feature = feature
		s.IsSubstrate = isSubstrate
		return nil
	}

	// No indicator matched anything. A cross-section shot without an
	// indicator is the expected default: a bare substrate reading. A
	// profile shot without one is ambiguous and reported, but retained.
	s.Feature = FeatureUnknown
	if s.Kind == MorphCrossSection {
		s.IsSubstrate = true
		return nil
	}
	s.IsSubstrate = false
	number := s.Number
	return &Diagnostic{
		Kind:       DiagClassificationAmbiguity,
		GroupKey:   s.GroupName,
		ShotNumber: &number,
		Message:    fmt.Sprintf("profile shot description %q matched no indicator; feature type unknown", s.Description),
	}
}

// matchIndicators tests the indicator segments against the substrate set
// and then the non-substrate set, token priority first, segments left to
// right.
func (c *Classifier) matchIndicators(indicators []string) (FeatureType, bool, bool) {
	for _, e := range c.substrate {
		for _, seg := range indicators {
			if c.match(seg, e.token) {
				return e.feature, true, true
			}
		}
	}
	for _, e := range c.nonSubstrate {
		for _, seg := range indicators {
			if c.match(seg, e.token) {
				return e.feature, false, true
			}
		}
	}
	return FeatureUnknown, false, false
}

// GuessChannelUnit substring-matches name against the substrate token set
// in classification priority order, returning the first feature whose
// token is contained in it. The comparison lowercases the name so a
// group key like "PineyRiver" guesses riffle, inheriting the containment
// false-positive contract. Returns FeatureUnknown when nothing matches.
func (c *Classifier) GuessChannelUnit(name string) FeatureType {
	lowered := strings.ToLower(name)
	for _, e := range c.substrate {
		if strings.Contains(lowered, e.token) {
			return e.feature
		}
	}
	return FeatureUnknown
}
