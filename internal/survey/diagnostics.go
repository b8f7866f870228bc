package survey

import "fmt"

// DiagnosticKind classifies a non-fatal condition observed during a build.
type DiagnosticKind string

const (
	// DiagClassificationAmbiguity: a profile shot matched no substrate or
	// non-substrate indicator and was retained as FeatureUnknown.
	DiagClassificationAmbiguity DiagnosticKind = "classification_ambiguity"

	// DiagUnanchoredAssociation: a non-substrate shot preceded any
	// substrate shot in its group; its coordinates were left unmodified.
	DiagUnanchoredAssociation DiagnosticKind = "unanchored_association"

	// DiagOverhangDetected: a cross section's station sequence folds back
	// on itself (non-simple geometry).
	DiagOverhangDetected DiagnosticKind = "overhang_detected"

	// DiagOverhangUnresolved: the bounded repair attempt could not restore
	// a strictly increasing station sequence; the original points were
	// retained.
	DiagOverhangUnresolved DiagnosticKind = "overhang_unresolved"

	// DiagEmptyGroup: a group contains zero substrate shots; its entity is
	// still produced, degraded.
	DiagEmptyGroup DiagnosticKind = "empty_group"
)

// Diagnostic is a structured record of a non-fatal condition, attached to
// the build result that produced it. Diagnostics are returned values, never
// a process-wide side channel; only configuration errors abort a run.
// ShotNumber is a pointer because shot numbering is unconstrained: a survey
// may legitimately number a shot 0, so absence cannot be a sentinel value.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind" msgpack:"kind"`
	GroupKey   string         `json:"group_key,omitempty" msgpack:"group_key"`
	ShotNumber *int           `json:"shot_number,omitempty" msgpack:"shot_number,omitempty"`
	Message    string         `json:"message" msgpack:"message"`
}

func (d Diagnostic) String() string {
	if d.ShotNumber != nil {
		return fmt.Sprintf("%s [%s shot %d]: %s", d.Kind, d.GroupKey, *d.ShotNumber, d.Message)
	}
	if d.GroupKey != "" {
		return fmt.Sprintf("%s [%s]: %s", d.Kind, d.GroupKey, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
