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

// Package lshindex is a MinHash-banded index of component name
// shingles, used as the Matching Engine's approximate-nearest-neighbor
// candidate source on SBOMs too large for the Component Index's
// bucket scan alone to stay fast (spec.md §4.3).
package lshindex

import (
	"hash/fnv"
	"strconv"

	"github.com/sbom-tool/sbom-tools/model"
)

// DefaultThreshold is the Jaccard similarity threshold the index is
// tuned for when the caller doesn't need a different S-curve crossing
// point.
const DefaultThreshold = 0.7

// DefaultLargeSBOMThreshold is the component count above which the
// Matching Engine builds an LSH index at all (spec.md §4.3).
const DefaultLargeSBOMThreshold = 500

// bandConfig is the explicit (bands, rows-per-band) table spec.md §4.3
// gives for the handful of Jaccard thresholds callers actually use.
// Thresholds in between snap to the nearest tabulated entry.
var bandConfig = []struct {
	threshold float64
	bands     int
	rows      int
}{
	{0.5, 10, 10},
	{0.7, 20, 5},
	{0.8, 25, 4},
	{0.9, 50, 2},
}

// BandsAndRows returns (bands, rows) for the given Jaccard threshold,
// snapping to the closest tabulated configuration.
func BandsAndRows(threshold float64) (bands, rows int) {
	best := bandConfig[0]
	bestDiff := abs(threshold - best.threshold)
	for _, c := range bandConfig[1:] {
		if d := abs(threshold - c.threshold); d < bestDiff {
			best, bestDiff = c, d
		}
	}
	return best.bands, best.rows
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

const minhashPrime = 4294967311 // smallest prime above 2^32, per spec.md §4.3

// coefficient is one (a, b) pair of a MinHash permutation function
// hash(x) = (a*x + b) mod prime. a is always odd so the function is
// invertible mod the prime.
type coefficient struct {
	a, b uint64
}

// Index is a band/row MinHash table over a NormalizedSBOM's component
// name shingles.
type Index struct {
	bands        int
	rows         int
	coefficients []coefficient
	buckets      []map[uint64][]string // one bucket map per band
	signatures   map[string][]uint64
}

// Build constructs an Index for the given Jaccard threshold. The hash
// coefficients are derived deterministically from band/row indices
// (not from a random source) so that two Build calls over the same
// threshold always produce the same bucket assignment — required for
// the Matching Engine's determinism guarantee.
func Build(sbom *model.NormalizedSBOM, threshold float64) *Index {
	bands, rows := BandsAndRows(threshold)
	n := bands * rows
	coeffs := make([]coefficient, n)
	for i := range coeffs {
		// 2*i+1 keeps 'a' odd; a small additive offset on 'b' keeps
		// coefficients distinct and reproducible without a PRNG.
		coeffs[i] = coefficient{a: uint64(2*i+1) * 104729, b: uint64(i)*2654435761 + 1}
	}

	idx := &Index{
		bands:        bands,
		rows:         rows,
		coefficients: coeffs,
		buckets:      make([]map[uint64][]string, bands),
		signatures:   make(map[string][]uint64),
	}
	for b := range idx.buckets {
		idx.buckets[b] = make(map[uint64][]string)
	}

	for _, c := range sbom.Components.All() {
		sig := idx.signature(shingles(c))
		idx.signatures[c.CID.Value] = sig
		for b := 0; b < bands; b++ {
			key := idx.bandKey(sig, b)
			idx.buckets[b][key] = append(idx.buckets[b][key], c.CID.Value)
		}
	}
	return idx
}

// shingles computes the shingle set for a component: every length-3
// character window of its name, plus an ecosystem token and a group
// token so cross-group/cross-ecosystem collisions are rarer.
func shingles(c *model.Component) []string {
	name := c.Name
	var out []string
	runes := []rune(name)
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, string(runes[i:i+3]))
	}
	if len(runes) > 0 && len(runes) < 3 {
		out = append(out, string(runes))
	}
	if c.Ecosystem != "" {
		out = append(out, "eco:"+string(c.Ecosystem))
	}
	if c.Group != "" {
		out = append(out, "group:"+c.Group)
	}
	return out
}

func shingleHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// signature computes the MinHash signature of the given shingle set:
// for each coefficient, the minimum over all shingles of
// (a*hash(shingle) + b) mod prime.
func (idx *Index) signature(shinglesList []string) []uint64 {
	n := len(idx.coefficients)
	sig := make([]uint64, n)
	if len(shinglesList) == 0 {
		return sig
	}
	hashes := make([]uint64, len(shinglesList))
	for i, s := range shinglesList {
		hashes[i] = shingleHash(s)
	}
	for i, co := range idx.coefficients {
		min := ^uint64(0)
		for _, x := range hashes {
			v := (co.a*x + co.b) % minhashPrime
			if v < min {
				min = v
			}
		}
		sig[i] = min
	}
	return sig
}

// bandKey hashes the signature slice belonging to band b to a single
// 64-bit bucket key.
func (idx *Index) bandKey(sig []uint64, b int) uint64 {
	start := b * idx.rows
	end := start + idx.rows
	h := fnv.New64a()
	for _, v := range sig[start:end] {
		_, _ = h.Write([]byte(strconv.FormatUint(v, 16)))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// FindCandidates computes c's MinHash signature and returns the union
// of every band bucket it falls into. The result is probabilistic:
// callers must re-score every returned CID with a Matcher before
// trusting it (spec.md §4.3's "fail mode" note).
func (idx *Index) FindCandidates(c *model.Component) []string {
	sig, ok := idx.signatures[c.CID.Value]
	if !ok {
		sig = idx.signature(shingles(c))
	}
	seen := make(map[string]bool)
	var out []string
	for b := 0; b < idx.bands; b++ {
		key := idx.bandKey(sig, b)
		for _, cid := range idx.buckets[b][key] {
			if cid == c.CID.Value || seen[cid] {
				continue
			}
			seen[cid] = true
			out = append(out, cid)
		}
	}
	return out
}
