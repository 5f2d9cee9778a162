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

// Package crosseco maps a package identity in one ecosystem to its
// known equivalents in other ecosystems (e.g. the same library
// published to both PyPI and Conda), for use as an opt-in extra
// candidate source in the Matching Engine (spec.md §4.4).
package crosseco

import "github.com/sbom-tool/sbom-tools/model"

// Equivalent is one cross-ecosystem alias target.
type Equivalent struct {
	Ecosystem model.Ecosystem
	Name      string
	Verified  bool
}

type key struct {
	eco  model.Ecosystem
	name string
}

// DB is a mapping from (source ecosystem, source name) to a list of
// equivalent identities in other ecosystems.
type DB struct {
	aliases map[key][]Equivalent
}

// New returns an empty DB ready for Add calls.
func New() *DB {
	return &DB{aliases: make(map[key][]Equivalent)}
}

// Add records that (eco, name) is known to be equivalent to target.
func (db *DB) Add(eco model.Ecosystem, name string, target Equivalent) {
	k := key{eco, name}
	db.aliases[k] = append(db.aliases[k], target)
}

// FindEquivalents returns the known equivalents of (eco, name),
// nil if none are recorded.
func (db *DB) FindEquivalents(eco model.Ecosystem, name string) []Equivalent {
	return db.aliases[key{eco, name}]
}

// Config controls how FindEquivalents results are used as matching
// candidates.
type Config struct {
	// Enabled gates whether the cross-ecosystem DB participates in
	// candidate generation at all.
	Enabled bool
	// MaxCandidates caps how many equivalents are considered per source.
	MaxCandidates int
	// ScorePenalty is subtracted from a match score earned via a
	// cross-ecosystem candidate, reflecting the extra uncertainty of an
	// alias-based match over an in-ecosystem one.
	ScorePenalty float64
	// MinAdjustedScore is the minimum score (after ScorePenalty is
	// applied) a cross-ecosystem match must clear to be accepted.
	MinAdjustedScore float64
	// VerifiedOnly restricts candidates to Equivalent entries with
	// Verified set.
	VerifiedOnly bool
}

// DefaultConfig returns a conservative, disabled-by-default Config;
// cross-ecosystem matching is an opt-in feature (spec.md §4.4).
func DefaultConfig() Config {
	return Config{
		Enabled:          false,
		MaxCandidates:    5,
		ScorePenalty:     0.15,
		MinAdjustedScore: 0.6,
		VerifiedOnly:     false,
	}
}

// Candidates applies cfg to db's raw FindEquivalents result, filtering
// by VerifiedOnly and truncating to MaxCandidates.
func (db *DB) Candidates(cfg Config, eco model.Ecosystem, name string) []Equivalent {
	if !cfg.Enabled {
		return nil
	}
	all := db.FindEquivalents(eco, name)
	out := make([]Equivalent, 0, len(all))
	for _, e := range all {
		if cfg.VerifiedOnly && !e.Verified {
			continue
		}
		out = append(out, e)
		if len(out) >= cfg.MaxCandidates {
			break
		}
	}
	return out
}

// AdjustScore applies cfg's cross-ecosystem penalty to a raw match
// score, returning the adjusted score and whether it still clears
// MinAdjustedScore.
func AdjustScore(cfg Config, rawScore float64) (adjusted float64, accepted bool) {
	adjusted = rawScore - cfg.ScorePenalty
	if adjusted < 0 {
		adjusted = 0
	}
	return adjusted, adjusted >= cfg.MinAdjustedScore
}
