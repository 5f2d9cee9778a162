// Copyright 2026 The SBOM Tools Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package quality scores a NormalizedSBOM's documentation quality
// across eight weighted categories, combines them per a named profile
// into an overall score and letter grade, and emits prioritized
// recommendations (spec.md §4.14).
package quality

import (
	"errors"
	"fmt"

	"github.com/sbom-tool/sbom-tools/model"
)

// ErrWeightsOutOfRange is returned by WeightsFor, and so by Score,
// when a profile's weights don't sum to (approximately) 1.0.
var ErrWeightsOutOfRange = errors.New("quality: profile weights out of range")

// Category is one of the eight weighted scoring families.
type Category string

// Category values.
const (
	CategoryCompleteness  Category = "completeness"
	CategoryIdentifiers   Category = "identifiers"
	CategoryLicenses      Category = "licenses"
	CategoryVulnerability Category = "vulnerability_documentation"
	CategoryDependency    Category = "dependency"
	CategoryHash          Category = "hash"
	CategoryProvenance    Category = "provenance_auditability"
	CategoryLifecycle     Category = "lifecycle"
)

var allCategories = []Category{
	CategoryCompleteness, CategoryIdentifiers, CategoryLicenses,
	CategoryVulnerability, CategoryDependency, CategoryHash,
	CategoryProvenance, CategoryLifecycle,
}

// Grade is the letter grade derived from a final 0-100 score.
type Grade string

// Grade values.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeFromScore maps a final score to a letter grade: 90-100=A,
// 80-89=B, 70-79=C, 60-69=D, else F.
func GradeFromScore(score float64) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// CategoryScore is one category's raw 0-100 score, or Unavailable when
// the SBOM carries no data that family can meaningfully score (no
// vulnerability data, no enrichment data).
type CategoryScore struct {
	Score       float64
	Available   bool
	SubMetrics  map[string]float64 // fine-grained sub-metric proportions backing Score
}

// Profile names one of the six weighting presets spec.md §4.14 names.
type Profile string

// Profile values.
const (
	ProfileMinimal           Profile = "minimal"
	ProfileStandard          Profile = "standard"
	ProfileSecurity          Profile = "security"
	ProfileLicenseCompliance Profile = "license_compliance"
	ProfileCra               Profile = "cra"
	ProfileComprehensive     Profile = "comprehensive"
)

// Weights maps each Category to its contribution to the final score.
// Weights for a named Profile sum to 1.0 before redistribution.
type Weights map[Category]float64

// profileWeights holds the base (pre-redistribution) weights for each
// named profile.
var profileWeights = map[Profile]Weights{
	ProfileMinimal: {
		CategoryCompleteness:  0.40,
		CategoryIdentifiers:   0.30,
		CategoryLicenses:      0.10,
		CategoryVulnerability: 0.05,
		CategoryDependency:    0.05,
		CategoryHash:          0.05,
		CategoryProvenance:    0.03,
		CategoryLifecycle:     0.02,
	},
	ProfileStandard: {
		CategoryCompleteness:  0.20,
		CategoryIdentifiers:   0.20,
		CategoryLicenses:      0.15,
		CategoryVulnerability: 0.15,
		CategoryDependency:    0.10,
		CategoryHash:          0.10,
		CategoryProvenance:    0.06,
		CategoryLifecycle:     0.04,
	},
	ProfileSecurity: {
		CategoryCompleteness:  0.10,
		CategoryIdentifiers:   0.10,
		CategoryLicenses:      0.05,
		CategoryVulnerability: 0.35,
		CategoryDependency:    0.10,
		CategoryHash:          0.20,
		CategoryProvenance:    0.05,
		CategoryLifecycle:     0.05,
	},
	ProfileLicenseCompliance: {
		CategoryCompleteness:  0.10,
		CategoryIdentifiers:   0.10,
		CategoryLicenses:      0.45,
		CategoryVulnerability: 0.05,
		CategoryDependency:    0.05,
		CategoryHash:          0.05,
		CategoryProvenance:    0.15,
		CategoryLifecycle:     0.05,
	},
	ProfileCra: {
		CategoryCompleteness:  0.15,
		CategoryIdentifiers:   0.15,
		CategoryLicenses:      0.10,
		CategoryVulnerability: 0.25,
		CategoryDependency:    0.10,
		CategoryHash:          0.10,
		CategoryProvenance:    0.10,
		CategoryLifecycle:     0.05,
	},
	ProfileComprehensive: {
		CategoryCompleteness:  0.1625,
		CategoryIdentifiers:   0.1375,
		CategoryLicenses:      0.125,
		CategoryVulnerability: 0.1625,
		CategoryDependency:    0.125,
		CategoryHash:          0.125,
		CategoryProvenance:    0.0875,
		CategoryLifecycle:     0.075,
	},
}

// WeightsFor returns a copy of the named profile's base weights, or an
// error wrapping ErrWeightsOutOfRange if they fall outside [0.99,1.01].
func WeightsFor(p Profile) (Weights, error) {
	base, ok := profileWeights[p]
	if !ok {
		base = profileWeights[ProfileStandard]
	}
	var sum float64
	for _, w := range base {
		sum += w
	}
	if sum < 0.99 || sum > 1.01 {
		return nil, fmt.Errorf("%w: profile %q sums to %.4f", ErrWeightsOutOfRange, p, sum)
	}
	out := make(Weights, len(base))
	for k, v := range base {
		out[k] = v
	}
	return out, nil
}

// Result is the complete output of Score.
type Result struct {
	Profile         Profile
	Categories      map[Category]CategoryScore
	EffectiveWeights Weights // post-redistribution weights actually used
	OverallScore    float64
	Grade           Grade
	Recommendations []Recommendation
}

// Score computes every category, redistributes weight away from
// unavailable categories, applies hard caps, and derives the overall
// score, grade, and recommendation list for sbom under profile.
func Score(sbom *model.NormalizedSBOM, profile Profile) (Result, error) {
	weights, err := WeightsFor(profile)
	if err != nil {
		return Result{}, err
	}

	categories := map[Category]CategoryScore{
		CategoryCompleteness:  completeness(sbom),
		CategoryIdentifiers:   identifierQuality(sbom),
		CategoryLicenses:      licenseQuality(sbom),
		CategoryVulnerability: vulnerabilityDocQuality(sbom),
		CategoryDependency:    dependencyQuality(sbom),
		CategoryHash:          hashQuality(sbom),
		CategoryProvenance:    provenanceAuditability(sbom),
		CategoryLifecycle:     lifecycleQuality(sbom),
	}

	effective := redistribute(weights, categories)

	var weighted float64
	for _, cat := range allCategories {
		if cs, ok := categories[cat]; ok && cs.Available {
			weighted += cs.Score * effective[cat]
		}
	}

	capped := applyCaps(weighted, sbom, profile, categories)
	grade := GradeFromScore(capped)

	return Result{
		Profile:          profile,
		Categories:       categories,
		EffectiveWeights: effective,
		OverallScore:     capped,
		Grade:            grade,
		Recommendations:  recommendations(sbom, categories, capped),
	}, nil
}

// redistribute proportionally spreads an unavailable category's weight
// across the remaining available categories, per spec.md §4.14.
func redistribute(weights Weights, categories map[Category]CategoryScore) Weights {
	var unavailableWeight, availableWeight float64
	for cat, w := range weights {
		if categories[cat].Available {
			availableWeight += w
		} else {
			unavailableWeight += w
		}
	}
	if unavailableWeight == 0 || availableWeight == 0 {
		return weights
	}
	out := make(Weights, len(weights))
	for cat, w := range weights {
		if !categories[cat].Available {
			out[cat] = 0
			continue
		}
		out[cat] = w + w/availableWeight*unavailableWeight
	}
	return out
}

// applyCaps enforces the hard score ceilings spec.md §4.14 lists,
// applied after the weighted sum regardless of how high it scored.
func applyCaps(score float64, sbom *model.NormalizedSBOM, profile Profile, categories map[Category]CategoryScore) float64 {
	// "Security-focused"/"strong" profile membership here is an
	// interpretation of spec.md's named cap conditions, not a literal
	// enum: security and cra weight vulnerability/hash data heavily
	// enough to count as security-focused; comprehensive joins them for
	// the weaker cycle cap but not the hash caps, which spec.md ties
	// specifically to "the Security profile".
	securityFocused := profile == ProfileSecurity || profile == ProfileCra
	strongProfile := profile == ProfileSecurity || profile == ProfileCra || profile == ProfileComprehensive

	if securityFocused && hasEOLComponent(sbom) && score > 69 {
		score = 69
	}
	if strongProfile && hasDependencyCycle(sbom) && score > 89 {
		score = 89
	}
	if profile == ProfileSecurity {
		hashState := hashState(sbom)
		if hashState == hashStateNone && score > 79 {
			score = 79
		}
		if hashState == hashStateWeakOnly && score > 89 {
			score = 89
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func hasEOLComponent(sbom *model.NormalizedSBOM) bool {
	for _, c := range sbom.Components.All() {
		if c.Staleness != nil && c.Staleness.EOL {
			return true
		}
	}
	return false
}

type hashCoverage int

const (
	hashStateNone hashCoverage = iota
	hashStateWeakOnly
	hashStateStrongPresent
)

func hashState(sbom *model.NormalizedSBOM) hashCoverage {
	any, strong := false, false
	for _, c := range sbom.Components.All() {
		for _, h := range c.Hashes {
			any = true
			if h.IsStrong() {
				strong = true
			}
		}
	}
	switch {
	case strong:
		return hashStateStrongPresent
	case any:
		return hashStateWeakOnly
	default:
		return hashStateNone
	}
}

// hasDependencyCycle reports whether sbom's edges contain a cycle,
// via a straightforward three-color DFS.
func hasDependencyCycle(sbom *model.NormalizedSBOM) bool {
	adj := make(map[string][]string)
	for _, e := range sbom.Edges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, next := range adj[id] {
			switch color[next] {
			case gray:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}
	for _, id := range sbom.Components.Order() {
		if color[id] == white {
			if visit(id) {
				return true
			}
		}
	}
	return false
}
