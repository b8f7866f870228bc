// Package survey reconstructs geomorphic features (longitudinal profiles
// and cross sections) from tabular field-survey shots. Each shot carries a
// free-text description written in a compact token grammar; the engine
// tokenizes and classifies descriptions, associates non-substrate shots
// with their nearest preceding substrate anchor, and builds ordered,
// stationed feature geometry per named group.
package survey

// MorphKind identifies which feature family a classified shot belongs to.
type MorphKind string

const (
	MorphProfile      MorphKind = "profile"
	MorphCrossSection MorphKind = "cross_section"
	MorphUnclassified MorphKind = "unclassified"
)

// FeatureType is the morphological type of a single shot.
type FeatureType string

const (
	FeatureThalweg      FeatureType = "thalweg"
	FeatureRiffle       FeatureType = "riffle"
	FeatureRun          FeatureType = "run"
	FeaturePool         FeatureType = "pool"
	FeatureGlide        FeatureType = "glide"
	FeatureWaterSurface FeatureType = "water_surface"
	FeatureBankfull     FeatureType = "bankfull"
	FeatureTopOfBank    FeatureType = "top_of_bank"
	FeatureStructure    FeatureType = "structure"
	FeatureUnknown      FeatureType = "unknown"
)

// Record is one loaded survey row: the five required logical fields plus
// any unmapped columns, which are carried for Profile extra attributes.
type Record struct {
	Number      int
	Northing    float64
	Easting     float64
	Elevation   float64
	Description string
	Extra       map[string]string
}

// Shot is a Record plus the derived fields produced by classification.
// Shots are mutated in exactly two places: the classifier assigns the
// derived fields, and the associator may overwrite Northing/Easting with
// an anchor's position. Elevation is never altered after loading.
type Shot struct {
	Record

	// order is the original input position, used as the stable tie-break
	// when sorting group members by shot number.
	order int

	Kind MorphKind
	// Header is the full header segment ("proTrib2SUP"); GroupName is the
	// header with the matched morphology token removed ("Trib2SUP").
	Header      string
	GroupName   string
	Feature     FeatureType
	IsSubstrate bool
}

// channelUnitFeature reports whether f is one of the four channel-unit
// types a cross section can be labeled with.
func channelUnitFeature(f FeatureType) bool {
	switch f {
	case FeatureRiffle, FeatureRun, FeaturePool, FeatureGlide:
		return true
	}
	return false
}
