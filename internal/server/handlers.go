package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/fluvgeo/streamsurvey/internal/survey"
)

// GetGroups returns the group inspection: member counts per group key for
// both morphology kinds. No geometry is built.
func (c *Controller) GetGroups(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, c.engine.InspectGroups())
}

// profilesResponse pairs built entities with their diagnostics; builds
// never fail outright, so diagnostics ride along with a 200.
type profilesResponse struct {
	Units       string              `json:"units"`
	Profiles    []survey.Profile    `json:"profiles"`
	Diagnostics []survey.Diagnostic `json:"diagnostics"`
}

type crossSectionsResponse struct {
	Units         string                `json:"units"`
	CrossSections []survey.CrossSection `json:"cross_sections"`
	Diagnostics   []survey.Diagnostic   `json:"diagnostics"`
}

// GetProfiles builds and returns all longitudinal profiles. Query params:
// strip_names=true removes the profile token from entity names.
func (c *Controller) GetProfiles(w http.ResponseWriter, r *http.Request) {
	opts := survey.ProfileOptions{
		StripName: boolParam(r, "strip_names", false),
	}
	profiles, diags := c.engine.BuildProfiles(opts)
	respondJSON(w, http.StatusOK, profilesResponse{
		Units:       c.engine.Units(),
		Profiles:    profiles,
		Diagnostics: diags,
	})
}

// GetCrossSections builds and returns all cross sections. Query params:
// guess=false disables morphology guessing, project=false switches from
// centerline projection to along-path stationing, strip_names=true strips
// the cross-section token from entity names.
func (c *Controller) GetCrossSections(w http.ResponseWriter, r *http.Request) {
	opts := survey.DefaultCrossSectionOptions()
	opts.GuessType = boolParam(r, "guess", opts.GuessType)
	opts.Project = boolParam(r, "project", opts.Project)
	opts.StripName = boolParam(r, "strip_names", opts.StripName)

	sections, diags := c.engine.BuildCrossSections(opts)
	respondJSON(w, http.StatusOK, crossSectionsResponse{
		Units:         c.engine.Units(),
		CrossSections: sections,
		Diagnostics:   diags,
	})
}

// profileSummary is a compact elevation summary for one profile.
type profileSummary struct {
	Name          string  `json:"name"`
	Points        int     `json:"points"`
	Length        float64 `json:"length"`
	MinElevation  float64 `json:"min_elevation"`
	MaxElevation  float64 `json:"max_elevation"`
	MeanElevation float64 `json:"mean_elevation"`
	StdDev        float64 `json:"std_dev"`
	Relief        float64 `json:"relief"`
}

// GetProfileSummary returns elevation statistics for one named profile.
// The name matches either the raw or the token-stripped profile name.
func (c *Controller) GetProfileSummary(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	profiles, _ := c.engine.BuildProfiles(survey.ProfileOptions{})
	stripped, _ := c.engine.BuildProfiles(survey.ProfileOptions{StripName: true})

	for i, p := range profiles {
		if p.Name != name && stripped[i].Name != name {
			continue
		}
		if len(p.Records) == 0 {
			respondJSON(w, http.StatusOK, profileSummary{Name: p.Name})
			return
		}

		elevations := make([]float64, len(p.Records))
		for j, rec := range p.Records {
			elevations[j] = rec.Elevation
		}
		min := floats.Min(elevations)
		max := floats.Max(elevations)
		// StdDev of a single sample is NaN, which JSON cannot encode.
		stddev := 0.0
		if len(elevations) > 1 {
			stddev = stat.StdDev(elevations, nil)
		}
		respondJSON(w, http.StatusOK, profileSummary{
			Name:          p.Name,
			Points:        len(p.Records),
			Length:        p.Records[len(p.Records)-1].Station,
			MinElevation:  min,
			MaxElevation:  max,
			MeanElevation: stat.Mean(elevations, nil),
			StdDev:        stddev,
			Relief:        max - min,
		})
		return
	}

	respondJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func boolParam(r *http.Request, name string, def bool) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}
