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

// Package diffengine orchestrates match → change compute → graph diff
// → score into the single top-level Diff operation (spec.md §4.10).
package diffengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbom-tool/sbom-tools/change"
	"github.com/sbom-tool/sbom-tools/cost"
	"github.com/sbom-tool/sbom-tools/graphdiff"
	"github.com/sbom-tool/sbom-tools/log"
	"github.com/sbom-tool/sbom-tools/matcher"
	"github.com/sbom-tool/sbom-tools/matching"
	"github.com/sbom-tool/sbom-tools/model"
)

// ErrInvalidRule is wrapped by a RuleEngine that refuses to apply a
// malformed rule set; Diff surfaces it unchanged rather than
// producing a partial result (spec.md §4.10's only initialization
// failure mode).
var ErrInvalidRule = errors.New("diffengine: invalid rule")

// RuleEngine optionally filters components out of comparison and/or
// remaps CIDs to canonical equivalents before matching runs. A nil
// RuleEngine is a pass-through: old and new are compared by reference,
// unmodified.
type RuleEngine interface {
	// Apply returns filtered copies of old and new plus the
	// old-CID-to-canonical and new-CID-to-canonical remap tables used
	// to project the eventual pairing back onto canonical ids.
	Apply(old, new *model.NormalizedSBOM) (filteredOld, filteredNew *model.NormalizedSBOM, oldCanon, newCanon map[string]string, err error)
}

// Config parameterizes a Diff call.
type Config struct {
	// Matcher is used instead of the default Fuzzy matcher when set.
	Matcher matcher.Matcher
	// FuzzyConfig tunes the default matcher; ignored when Matcher is set.
	FuzzyConfig matcher.FuzzyMatchConfig
	// Matching tunes the Matching Engine's strategy selection.
	Matching matching.LargeSBOMConfig
	// Cost selects the weighting preset used for the semantic score.
	Cost cost.Config
	// Rules, when non-nil, runs before matching (spec.md §4.10 step 2).
	Rules RuleEngine
	// GraphDiff, when non-nil, enables graph change detection
	// (spec.md §4.10 step 7). A nil value skips that step entirely.
	GraphDiff *graphdiff.Config
}

// DefaultConfig returns the engine's stock configuration: default
// Fuzzy matcher, default matching/cost tuning, no rule engine, graph
// diffing enabled.
func DefaultConfig() Config {
	gd := graphdiff.DefaultConfig()
	return Config{
		FuzzyConfig: matcher.DefaultFuzzyMatchConfig(),
		Matching:    matching.DefaultLargeSBOMConfig(),
		Cost:        cost.Default(),
		GraphDiff:   &gd,
	}
}

// Result is the complete output of a Diff call.
type Result struct {
	Components      change.ComponentChanges
	Dependencies    change.DependencyChanges
	Licenses        change.LicenseChanges
	Vulnerabilities change.VulnerabilityChanges
	GraphEvents     []graphdiff.Event
	GraphSummary    graphdiff.Summary
	SemanticScore   float64
	// FastPathEqual is true when old and new shared a non-zero,
	// identical content hash and every other field is a zero value.
	FastPathEqual bool
}

// Diff runs the full orchestration described in spec.md §4.10. It
// never panics: a malformed RuleEngine is the only way to get an
// error back, and every other anomaly (pairing misses, unreadable
// hashes) degrades to an empty or partial Result, logged once at Warn
// via the log package rather than surfaced as an error.
func Diff(ctx context.Context, old, new *model.NormalizedSBOM, cfg Config) (Result, error) {
	if eq, err := contentEqual(old, new); err != nil {
		log.Warnf("diffengine: content hash unavailable, skipping fast path: %v", err)
	} else if eq {
		return Result{FastPathEqual: true}, nil
	}

	workingOld, workingNew := old, new
	var oldCanon, newCanon map[string]string
	if cfg.Rules != nil {
		filteredOld, filteredNew, oc, nc, err := cfg.Rules.Apply(old, new)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		workingOld, workingNew = filteredOld, filteredNew
		oldCanon, newCanon = oc, nc
	}

	m := resolveMatcher(cfg)
	pairing := matchPairing(ctx, workingOld, workingNew, m, cfg, oldCanon, newCanon)
	explain := explainer(workingOld, workingNew, m)

	result := Result{
		Components:      change.Components(workingOld, workingNew, pairing, cfg.Cost, explain),
		Dependencies:    change.Dependencies(workingOld, workingNew, pairing),
		Licenses:        change.Licenses(workingOld, workingNew),
		Vulnerabilities: change.Vulnerabilities(workingOld, workingNew),
	}

	if cfg.GraphDiff != nil {
		result.GraphEvents, result.GraphSummary = graphdiff.Diff(workingOld, workingNew, pairing, *cfg.GraphDiff)
	}

	result.SemanticScore = cfg.Cost.CalculateSemanticScore(Counts(result))
	return result, nil
}

// resolveMatcher returns cfg.Matcher, or a default Fuzzy matcher built
// from cfg.FuzzyConfig when none is set.
func resolveMatcher(cfg Config) matcher.Matcher {
	if cfg.Matcher != nil {
		return cfg.Matcher
	}
	return matcher.NewFuzzy(cfg.FuzzyConfig)
}

// matchPairing runs the Matching Engine and remaps the result through
// the rule engine's canonical maps, when present. Exported as Pairing
// so diffcache can recompute just the pairing — deterministically
// identical to the one Diff would produce on the same inputs — without
// re-running the rest of the orchestration.
func matchPairing(ctx context.Context, old, new *model.NormalizedSBOM, m matcher.Matcher, cfg Config, oldCanon, newCanon map[string]string) map[string]string {
	matchResult := matching.MatchComponents(ctx, old, new, m, cfg.FuzzyConfig, cfg.Matching)
	return remapPairing(matchResult.Map, oldCanon, newCanon)
}

// Pairing computes the old-CID-to-new-CID mapping Diff would use for
// (old, new) under cfg, including cfg.Rules filtering and canonical
// remapping, without running the change computers or scoring. When
// cfg.Rules returns an error, the pairing is computed on the unfiltered
// inputs. diffcache uses it to recompute a partial-hit's graph diff
// when only the vulnerability section changed: since the components
// and dependency sections are unchanged, re-running the Matching
// Engine is guaranteed (by its determinism invariant) to reproduce the
// pairing already on file, so this is a cheap correctness-preserving
// recompute rather than a guess.
func Pairing(ctx context.Context, old, new *model.NormalizedSBOM, cfg Config) map[string]string {
	m := resolveMatcher(cfg)
	if cfg.Rules != nil {
		if filteredOld, filteredNew, oc, nc, err := cfg.Rules.Apply(old, new); err == nil {
			return matchPairing(ctx, filteredOld, filteredNew, m, cfg, oc, nc)
		}
	}
	return matchPairing(ctx, old, new, m, cfg, nil, nil)
}

// explainer builds the Components change computer's match-explanation
// callback for a resolved matcher over a given (old, new) pair.
func explainer(old, new *model.NormalizedSBOM, m matcher.Matcher) func(oldID, newID string) *matcher.Explanation {
	return func(oldID, newID string) *matcher.Explanation {
		oc, ok := old.Components.Get(oldID)
		if !ok {
			return nil
		}
		nc, ok := new.Components.Get(newID)
		if !ok {
			return nil
		}
		e := m.ExplainMatch(oc, nc)
		return &e
	}
}

// contentEqual implements spec.md §4.10 step 1: both sides must carry
// a readable, non-zero content hash and they must be equal.
func contentEqual(old, new *model.NormalizedSBOM) (bool, error) {
	oldHash, err := old.ContentHash()
	if err != nil {
		return false, err
	}
	newHash, err := new.ContentHash()
	if err != nil {
		return false, err
	}
	return oldHash != 0 && oldHash == newHash, nil
}

// remapPairing projects a raw old-CID->new-CID pairing through the
// rule engine's canonical maps, when present. A missing canonical
// entry passes its id through unchanged.
func remapPairing(raw map[string]string, oldCanon, newCanon map[string]string) map[string]string {
	if oldCanon == nil && newCanon == nil {
		return raw
	}
	out := make(map[string]string, len(raw))
	for oldID, newID := range raw {
		canonOld := oldID
		if c, ok := oldCanon[oldID]; ok {
			canonOld = c
		}
		canonNew := newID
		if newID != "" {
			if c, ok := newCanon[newID]; ok {
				canonNew = c
			}
		}
		out[canonOld] = canonNew
	}
	return out
}

// Counts projects a Result into the cost.Counts tally
// cost.Config.CalculateSemanticScore expects. Exported so diffcache
// can re-score a Result it partially recomputed without re-deriving
// this projection itself.
func Counts(r Result) cost.Counts {
	var versionCosts float64
	for _, mc := range r.Components.Modified {
		versionCosts += mc.Cost
	}
	licensesChanged := len(r.Licenses.Added) + len(r.Licenses.Removed)
	var suppliersChanged int
	for _, mc := range r.Components.Modified {
		for _, f := range mc.Fields {
			if f == change.FieldSupplier {
				suppliersChanged++
			}
		}
	}
	var hashMismatches int
	for _, mc := range r.Components.Modified {
		for _, f := range mc.Fields {
			if f == change.FieldHashes {
				hashMismatches++
			}
		}
	}
	return cost.Counts{
		ComponentsAdded:           len(r.Components.Added),
		ComponentsRemoved:         len(r.Components.Removed),
		VersionCosts:              versionCosts,
		LicensesChanged:           licensesChanged,
		SuppliersChanged:          suppliersChanged,
		VulnerabilitiesIntroduced: len(r.Vulnerabilities.Introduced),
		VulnerabilitiesResolved:   len(r.Vulnerabilities.Resolved),
		DependenciesAdded:         len(r.Dependencies.Added),
		DependenciesRemoved:       len(r.Dependencies.Removed),
		HashMismatches:            hashMismatches,
	}
}
