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

// Package matching implements the four-phase 1:1 pairing algorithm
// that turns two NormalizedSBOMs into a CID-to-CID mapping with scores
// (spec.md §4.6). It is the only package that talks to a
// matcher.Matcher on the engine's behalf.
package matching

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sbom-tool/sbom-tools/componentindex"
	"github.com/sbom-tool/sbom-tools/crosseco"
	"github.com/sbom-tool/sbom-tools/lshindex"
	"github.com/sbom-tool/sbom-tools/matcher"
	"github.com/sbom-tool/sbom-tools/model"
)

// LargeSBOMConfig controls strategy selection and the bounded
// fork-join candidate-scoring phase for large SBOMs (spec.md §4.6
// step 2/3).
type LargeSBOMConfig struct {
	// LSHThreshold is the total-component count above which the Batch
	// Candidate Generator (index + LSH + cross-ecosystem) replaces the
	// plain Component Index strategy.
	LSHThreshold int
	// MaxCandidates bounds how many candidates are generated per
	// unmatched old component.
	MaxCandidates int
	// MaxLengthDiff bounds the Component Index's length filter.
	MaxLengthDiff int
	// HungarianThreshold is the maximum candidate-triple count the
	// Hungarian assignment is attempted on; above it, the engine falls
	// back to greedy (+2-opt).
	HungarianThreshold int
	// Use2Opt enables the 2-opt improvement pass on the greedy fallback.
	Use2Opt bool
	// MaxSwapIterations bounds the 2-opt pass.
	MaxSwapIterations int
	// ParallelThreshold is the remaining-old-component count above
	// which candidate scoring is parallelized.
	ParallelThreshold int
	// MaxWorkers bounds fork-join concurrency for candidate scoring.
	MaxWorkers int
	// CrossEco, when non-nil and Enabled in its Config, supplies
	// cross-ecosystem candidates.
	CrossEco    *crosseco.DB
	CrossEcoCfg crosseco.Config
}

// DefaultLargeSBOMConfig returns the engine's stock tuning.
func DefaultLargeSBOMConfig() LargeSBOMConfig {
	return LargeSBOMConfig{
		LSHThreshold:       500,
		MaxCandidates:      20,
		MaxLengthDiff:      5,
		HungarianThreshold: 5000,
		Use2Opt:            true,
		MaxSwapIterations:  1000,
		ParallelThreshold:  200,
		MaxWorkers:         8,
		CrossEcoCfg:        crosseco.DefaultConfig(),
	}
}

// pairKey identifies one (old, new) candidate pair.
type pairKey struct{ old, new string }

// Result is the output of MatchComponents: a total map from every old
// CID to either a matched new CID or "" (None, i.e. removed), plus the
// score recorded for every pair actually chosen.
type Result struct {
	Map   map[string]string
	Pairs map[pairKey]float64
}

// Score returns the recorded score for (old, new), or 0 if they were
// never paired.
func (r Result) Score(old, new string) float64 {
	return r.Pairs[pairKey{old, new}]
}

// MatchComponents runs the full four-phase pipeline. It never fails:
// an inability to match a component simply yields None for it
// (spec.md §4.6's failure semantics).
func MatchComponents(ctx context.Context, old, new *model.NormalizedSBOM, m matcher.Matcher, fuzzyCfg matcher.FuzzyMatchConfig, cfg LargeSBOMConfig) Result {
	result := Result{
		Map:   make(map[string]string, old.Components.Len()),
		Pairs: make(map[pairKey]float64),
	}

	newUsed := make(map[string]bool)
	var unmatchedOld []string

	// Phase 1: exact phase.
	for _, oldID := range old.Components.Order() {
		if _, ok := new.Components.Get(oldID); ok {
			result.Map[oldID] = oldID
			result.Pairs[pairKey{oldID, oldID}] = 1.0
			newUsed[oldID] = true
			continue
		}
		unmatchedOld = append(unmatchedOld, oldID)
	}

	if len(unmatchedOld) == 0 {
		return result
	}

	// Phase 2: candidate generation.
	triples := generateCandidates(ctx, old, new, unmatchedOld, newUsed, m, fuzzyCfg, cfg)

	// Phase 3: assignment.
	assigned := assign(unmatchedOld, triples, cfg)

	// Phase 4: completion.
	for _, oldID := range unmatchedOld {
		if newID, ok := assigned[oldID]; ok {
			result.Map[oldID] = newID
			result.Pairs[pairKey{oldID, newID}] = triples.score(oldID, newID)
		} else {
			result.Map[oldID] = ""
		}
	}
	return result
}

// triple is one scored (old, new) candidate pair.
type triple struct {
	oldID, newID string
	score        float64
}

type candidateSet struct {
	byOld map[string][]triple
	index map[pairKey]float64
}

func (c *candidateSet) score(old, new string) float64 {
	return c.index[pairKey{old, new}]
}

func (c *candidateSet) add(t triple) {
	if c.index == nil {
		c.index = make(map[pairKey]float64)
	}
	key := pairKey{t.oldID, t.newID}
	if _, exists := c.index[key]; exists {
		return
	}
	c.index[key] = t.score
	c.byOld[t.oldID] = append(c.byOld[t.oldID], t)
}

func generateCandidates(ctx context.Context, old, new *model.NormalizedSBOM, unmatchedOld []string, newUsed map[string]bool, m matcher.Matcher, fuzzyCfg matcher.FuzzyMatchConfig, cfg LargeSBOMConfig) *candidateSet {
	cs := &candidateSet{byOld: make(map[string][]triple)}

	totalComponents := old.Components.Len() + new.Components.Len()
	if totalComponents > cfg.LSHThreshold {
		scoreCandidatesLarge(ctx, old, new, unmatchedOld, newUsed, m, fuzzyCfg, cfg, cs)
		return cs
	}

	idx := componentindex.Build(new)
	oldIdx := componentindex.Build(old)
	for _, oldID := range unmatchedOld {
		oldComp, ok := old.Components.Get(oldID)
		if !ok {
			continue
		}
		entry := componentindex.Entry{CID: oldID}
		if e, ok2 := oldIdx.Entry(oldID); ok2 {
			entry = e
		}
		candidates := idx.FindCandidates(entry, cfg.MaxCandidates, cfg.MaxLengthDiff)
		for _, newID := range candidates {
			if newUsed[newID] {
				continue
			}
			newComp, ok := new.Components.Get(newID)
			if !ok {
				continue
			}
			score := safeScore(m, oldComp, newComp)
			if score >= fuzzyCfg.MinScore {
				cs.add(triple{oldID, newID, score})
			}
		}
		addCrossEcoCandidates(oldComp, new, m, cfg, cs)
	}
	return cs
}

func scoreCandidatesLarge(ctx context.Context, old, new *model.NormalizedSBOM, unmatchedOld []string, newUsed map[string]bool, m matcher.Matcher, fuzzyCfg matcher.FuzzyMatchConfig, cfg LargeSBOMConfig, cs *candidateSet) {
	newIdx := componentindex.Build(new)
	newLSH := lshindex.Build(new, lshindex.DefaultThreshold)
	oldIdx := componentindex.Build(old)

	type job struct {
		oldID string
	}
	jobs := make([]job, len(unmatchedOld))
	for i, id := range unmatchedOld {
		jobs[i] = job{id}
	}

	var results []triple
	var crossEcoResults []triple
	process := func(j job) []triple {
		oldComp, ok := old.Components.Get(j.oldID)
		if !ok {
			return nil
		}
		seen := make(map[string]bool)
		var out []triple
		var ids []string
		if entry, ok := oldIdx.Entry(j.oldID); ok {
			ids = append(ids, newIdx.FindCandidates(entry, cfg.MaxCandidates, cfg.MaxLengthDiff)...)
		}
		ids = append(ids, newLSH.FindCandidates(oldComp)...)
		for _, newID := range ids {
			if newUsed[newID] || seen[newID] {
				continue
			}
			seen[newID] = true
			newComp, ok := new.Components.Get(newID)
			if !ok {
				continue
			}
			score := safeScore(m, oldComp, newComp)
			if score >= fuzzyCfg.MinScore {
				out = append(out, triple{j.oldID, newID, score})
			}
		}
		return out
	}

	if len(jobs) > cfg.ParallelThreshold && cfg.MaxWorkers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.MaxWorkers)
		resultsByJob := make([][]triple, len(jobs))
		for i, j := range jobs {
			i, j := i, j
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				resultsByJob[i] = process(j)
				return nil
			})
		}
		_ = g.Wait() // matching never fails; a cancelled worker just yields fewer candidates
		for _, r := range resultsByJob {
			results = append(results, r...)
		}
	} else {
		for _, j := range jobs {
			results = append(results, process(j)...)
		}
	}

	for _, t := range results {
		cs.add(t)
	}

	for _, oldID := range unmatchedOld {
		oldComp, _ := old.Components.Get(oldID)
		addCrossEcoCandidates(oldComp, new, m, cfg, cs)
	}
	_ = crossEcoResults
}

func addCrossEcoCandidates(oldComp *model.Component, new *model.NormalizedSBOM, m matcher.Matcher, cfg LargeSBOMConfig, cs *candidateSet) {
	if oldComp == nil || cfg.CrossEco == nil || !cfg.CrossEcoCfg.Enabled {
		return
	}
	equivalents := cfg.CrossEco.Candidates(cfg.CrossEcoCfg, oldComp.Ecosystem, oldComp.Name)
	for _, eq := range equivalents {
		for _, newID := range new.Components.Order() {
			newComp, ok := new.Components.Get(newID)
			if !ok || newComp.Ecosystem != eq.Ecosystem {
				continue
			}
			raw := safeScore(m, oldComp, newComp)
			adjusted, accepted := crosseco.AdjustScore(cfg.CrossEcoCfg, raw)
			if accepted {
				cs.add(triple{oldComp.CID.Value, newID, adjusted})
			}
		}
	}
}

func safeScore(m matcher.Matcher, old, new *model.Component) (score float64) {
	defer func() {
		if recover() != nil {
			score = 0
		}
	}()
	return m.MatchScore(old, new)
}

// assign chooses a globally good 1:1 subset of the candidate triples,
// dispatching to the Hungarian algorithm, greedy+2-opt, or pure greedy
// strategy per spec.md §4.6 step 3.
func assign(unmatchedOld []string, cs *candidateSet, cfg LargeSBOMConfig) map[string]string {
	total := len(cs.index)
	if total == 0 {
		return nil
	}
	if total <= cfg.HungarianThreshold {
		return hungarianAssign(unmatchedOld, cs)
	}
	greedy := greedyAssign(unmatchedOld, cs)
	if cfg.Use2Opt {
		twoOptImprove(greedy, cs, cfg.MaxSwapIterations)
	}
	return greedy
}

// greedyAssign assigns by score-descending, first-come-first-served.
// Ties are broken by input iteration order (the order candidate
// triples were generated in), satisfying spec.md §4.6's determinism
// requirement.
func greedyAssign(unmatchedOld []string, cs *candidateSet) map[string]string {
	var all []triple
	for _, oldID := range unmatchedOld {
		all = append(all, cs.byOld[oldID]...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	usedNew := make(map[string]bool)
	usedOld := make(map[string]bool)
	out := make(map[string]string)
	for _, t := range all {
		if usedOld[t.oldID] || usedNew[t.newID] {
			continue
		}
		out[t.oldID] = t.newID
		usedOld[t.oldID] = true
		usedNew[t.newID] = true
	}
	return out
}

// twoOptImprove iterates over pairs of current assignments, swapping
// targets whenever doing so strictly increases total score, bounded by
// maxIterations.
func twoOptImprove(assignment map[string]string, cs *candidateSet, maxIterations int) {
	oldIDs := make([]string, 0, len(assignment))
	for o := range assignment {
		oldIDs = append(oldIDs, o)
	}
	sort.Strings(oldIDs)

	iterations := 0
	improved := true
	for improved && iterations < maxIterations {
		improved = false
		for i := 0; i < len(oldIDs) && iterations < maxIterations; i++ {
			for j := i + 1; j < len(oldIDs) && iterations < maxIterations; j++ {
				oi, oj := oldIDs[i], oldIDs[j]
				ni, nj := assignment[oi], assignment[oj]
				current := cs.score(oi, ni) + cs.score(oj, nj)
				swapped := cs.score(oi, nj) + cs.score(oj, ni)
				iterations++
				if swapped > current {
					assignment[oi], assignment[oj] = nj, ni
					improved = true
				}
			}
		}
	}
}
