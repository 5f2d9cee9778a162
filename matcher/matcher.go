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

// Package matcher scores how likely two components from different
// SBOMs are the same real-world component (spec.md §4.5). The
// Matching Engine talks only to the Matcher interface; a caller may
// supply a custom implementation in place of the defaults here.
package matcher

import (
	"strings"

	"github.com/sbom-tool/sbom-tools/model"
)

// Tier labels which signal produced a match's score, for Explanation
// and for ranking candidates of equal score.
type Tier int

// Tier values, ordered most to least confident.
const (
	TierExact Tier = iota
	TierAlias
	TierFuzzyName
	TierNone
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierAlias:
		return "alias"
	case TierFuzzyName:
		return "fuzzy_name"
	default:
		return "none"
	}
}

// Explanation is the structured breakdown of why two components
// received the score they did, consumed by the Change Computers to
// annotate Modified components with match info (spec.md §4.7).
type Explanation struct {
	Tier           Tier
	Score          float64
	Reason         string
	Breakdown      map[string]float64
	Normalizations []string
}

// Matcher scores pairs of components. Implementations must be safe
// for concurrent use: the Matching Engine may call MatchScore from a
// bounded worker pool (spec.md §4.6's fork-join candidate phase).
type Matcher interface {
	Name() string
	MatchScore(old, new *model.Component) float64
	ExplainMatch(old, new *model.Component) Explanation
}

// Exact is a Matcher that only recognizes identical canonical ids;
// everything else scores 0. It exists mainly as a building block other
// matchers compose with, and as the trivial matcher a caller can swap
// in to disable fuzzy matching entirely.
type Exact struct{}

// Name implements Matcher.
func (Exact) Name() string { return "exact" }

// MatchScore implements Matcher.
func (Exact) MatchScore(old, new *model.Component) float64 {
	if old.CID.Value != "" && old.CID.Value == new.CID.Value {
		return 1.0
	}
	return 0
}

// ExplainMatch implements Matcher.
func (e Exact) ExplainMatch(old, new *model.Component) Explanation {
	score := e.MatchScore(old, new)
	if score == 1.0 {
		return Explanation{Tier: TierExact, Score: score, Reason: "identical canonical id"}
	}
	return Explanation{Tier: TierNone, Score: 0, Reason: "canonical ids differ"}
}

// FuzzyMatchConfig parameterizes Fuzzy.
type FuzzyMatchConfig struct {
	// MinScore is the minimum score a pair must reach to be considered
	// a candidate match at all.
	MinScore float64
	// NameWeight, VersionWeight, GroupWeight, EcosystemWeight sum the
	// contribution of each signal to the final score. They need not sum
	// to 1; the combined score is clamped to [0,1].
	NameWeight      float64
	VersionWeight   float64
	GroupWeight     float64
	EcosystemWeight float64
}

// DefaultFuzzyMatchConfig returns the weighting scheme this engine
// ships with: name similarity dominates, with smaller bonuses for
// agreement on version, group and ecosystem.
func DefaultFuzzyMatchConfig() FuzzyMatchConfig {
	return FuzzyMatchConfig{
		MinScore:        0.55,
		NameWeight:      0.7,
		VersionWeight:   0.15,
		GroupWeight:     0.1,
		EcosystemWeight: 0.05,
	}
}

// Fuzzy scores components by name similarity (a trigram Jaccard score
// over the case- and whitespace-folded names) plus bonuses for
// agreeing version/group/ecosystem.
type Fuzzy struct {
	Config FuzzyMatchConfig
}

// NewFuzzy returns a Fuzzy matcher with cfg.
func NewFuzzy(cfg FuzzyMatchConfig) *Fuzzy {
	return &Fuzzy{Config: cfg}
}

// Name implements Matcher.
func (f *Fuzzy) Name() string { return "fuzzy" }

// MatchScore implements Matcher.
func (f *Fuzzy) MatchScore(old, new *model.Component) float64 {
	return f.score(old, new).total
}

type scoreBreakdown struct {
	name, version, group, ecosystem float64
	total                           float64
	normalizations                  []string
}

func (f *Fuzzy) score(old, new *model.Component) scoreBreakdown {
	cfg := f.Config
	var sb scoreBreakdown

	oldName := strings.ToLower(strings.TrimSpace(old.Name))
	newName := strings.ToLower(strings.TrimSpace(new.Name))
	if oldName != old.Name || newName != new.Name {
		sb.normalizations = append(sb.normalizations, "case/whitespace-folded name")
	}
	sb.name = trigramJaccard(oldName, newName)

	if old.Version != "" && old.Version == new.Version {
		sb.version = 1.0
	}
	if old.Group != "" && strings.EqualFold(old.Group, new.Group) {
		sb.group = 1.0
	}
	if old.Ecosystem != "" && old.Ecosystem == new.Ecosystem {
		sb.ecosystem = 1.0
	}

	total := sb.name*cfg.NameWeight + sb.version*cfg.VersionWeight +
		sb.group*cfg.GroupWeight + sb.ecosystem*cfg.EcosystemWeight
	weightSum := cfg.NameWeight + cfg.VersionWeight + cfg.GroupWeight + cfg.EcosystemWeight
	if weightSum > 0 {
		total /= weightSum
	}
	if total > 1 {
		total = 1
	}
	if total < 0 {
		total = 0
	}
	sb.total = total
	return sb
}

// ExplainMatch implements Matcher.
func (f *Fuzzy) ExplainMatch(old, new *model.Component) Explanation {
	sb := f.score(old, new)
	tier := TierFuzzyName
	reason := "fuzzy name/version/group/ecosystem similarity"
	if sb.total < f.Config.MinScore {
		tier = TierNone
		reason = "below minimum fuzzy match score"
	}
	return Explanation{
		Tier:   tier,
		Score:  sb.total,
		Reason: reason,
		Breakdown: map[string]float64{
			"name":      sb.name,
			"version":   sb.version,
			"group":     sb.group,
			"ecosystem": sb.ecosystem,
		},
		Normalizations: sb.normalizations,
	}
}

// trigramJaccard computes the Jaccard similarity of two strings'
// three-character shingle sets, falling back to exact/substring
// comparison for strings shorter than 3 characters.
func trigramJaccard(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0
	}
	ar, br := []rune(a), []rune(b)
	if len(ar) < 3 || len(br) < 3 {
		if strings.Contains(a, b) || strings.Contains(b, a) {
			return 0.5
		}
		return 0
	}
	as := shingleSet(ar)
	bs := shingleSet(br)
	inter := 0
	for s := range as {
		if bs[s] {
			inter++
		}
	}
	union := len(as) + len(bs) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func shingleSet(r []rune) map[string]bool {
	out := make(map[string]bool)
	for i := 0; i+3 <= len(r); i++ {
		out[string(r[i:i+3])] = true
	}
	return out
}
