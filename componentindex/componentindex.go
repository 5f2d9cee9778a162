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

// Package componentindex is a wrapper around a NormalizedSBOM's
// components that provides fast approximate-name lookup: bucket maps
// keyed by ecosystem, name prefix, and name trigram, in the same
// two-level-map style the teacher's packageindex uses for exact
// type+name lookup (spec.md §4.2).
package componentindex

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sbom-tool/sbom-tools/model"
)

// Entry is the normalized, pre-computed form of one component used
// for candidate search. Rebuilding this per lookup would make
// find_candidates O(n) per call; computing it once at Build time is
// the whole point of the index.
type Entry struct {
	CID       string
	Name      string // ecosystem-normalized
	Length    int
	Prefix    string // first three bytes of Name, or all of Name if shorter
	Trigrams  []string
	Ecosystem model.Ecosystem
}

// Index is a wrapper around a NormalizedSBOM's components, providing
// fast candidate lookup by ecosystem, prefix and trigram bucket maps.
type Index struct {
	entries   map[string]Entry // CID -> Entry
	byEco     map[model.Ecosystem][]string
	byPrefix  map[string][]string
	byTrigram map[string][]string
}

// Build computes an Index over every component in sbom.
func Build(sbom *model.NormalizedSBOM) *Index {
	idx := &Index{
		entries:   make(map[string]Entry),
		byEco:     make(map[model.Ecosystem][]string),
		byPrefix:  make(map[string][]string),
		byTrigram: make(map[string][]string),
	}
	for _, c := range sbom.Components.All() {
		e := buildEntry(c)
		idx.entries[e.CID] = e
		idx.byEco[e.Ecosystem] = append(idx.byEco[e.Ecosystem], e.CID)
		idx.byPrefix[e.Prefix] = append(idx.byPrefix[e.Prefix], e.CID)
		for _, tri := range e.Trigrams {
			idx.byTrigram[tri] = append(idx.byTrigram[tri], e.CID)
		}
	}
	return idx
}

func buildEntry(c *model.Component) Entry {
	eco := c.Ecosystem
	if c.Identifiers.PURL != nil {
		eco = model.FromPURLType(c.Identifiers.PURL.Type)
	}
	name := normalizeName(c.Name, eco)
	prefix := name
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return Entry{
		CID:       c.CID.Value,
		Name:      name,
		Length:    len(name),
		Prefix:    prefix,
		Trigrams:  trigrams(name),
		Ecosystem: eco,
	}
}

// normalizeName applies the ecosystem-aware normalization rule of
// spec.md §4.2: npm names are returned unchanged (scoped names are
// left alone, not even lowercased); every other name is lowercased,
// then PyPI collapses `._-` runs to a single `-`, Cargo maps `-` to
// `_`, every other ecosystem maps `_` to `-`, and doubled `-` are
// collapsed.
func normalizeName(name string, eco model.Ecosystem) string {
	lower := strings.ToLower(name)
	var out string
	switch eco {
	case model.EcosystemPyPI:
		out = collapseRuns(lower, "._-")
	case model.EcosystemCratesIO:
		out = strings.ReplaceAll(lower, "-", "_")
	case model.EcosystemNPM:
		return name // scoped names (@scope/pkg) are left untouched
	default:
		out = strings.ReplaceAll(lower, "_", "-")
	}
	return collapseDashes(out)
}

// collapseRuns replaces any run of characters in chars with a single
// "-".
func collapseRuns(s, chars string) string {
	var b strings.Builder
	inRun := false
	for _, r := range s {
		if strings.ContainsRune(chars, r) {
			if !inRun {
				b.WriteByte('-')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return strings.Trim(b.String(), "-")
}

func collapseDashes(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// trigrams returns every contiguous three-character window of name.
// ASCII strings take a direct three-byte-window fast path; anything
// containing non-ASCII runes falls back to rune-by-rune windows so a
// multi-byte character isn't split across two trigrams.
func trigrams(name string) []string {
	if len(name) < 3 {
		return nil
	}
	if isASCII(name) {
		out := make([]string, 0, len(name)-2)
		for i := 0; i+3 <= len(name); i++ {
			out = append(out, name[i:i+3])
		}
		return out
	}
	runes := []rune(name)
	if len(runes) < 3 {
		return nil
	}
	out := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, string(runes[i:i+3]))
	}
	return out
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// FindCandidates returns up to maxCandidates CIDs likely to match the
// given entry, in priority order: same ecosystem within maxLengthDiff,
// then same prefix within the length filter, then prefixes sharing
// their first two characters, then trigram overlap (ranked by overlap
// count, requiring at least 2 shared trigrams, or 1 when the source
// has 2 or fewer trigrams). Results are deduplicated across tiers and
// truncated to maxCandidates.
func (idx *Index) FindCandidates(entry Entry, maxCandidates, maxLengthDiff int) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(cids []string) {
		for _, cid := range cids {
			if len(out) >= maxCandidates {
				return
			}
			if cid == entry.CID || seen[cid] {
				continue
			}
			if other, ok := idx.entries[cid]; ok {
				if abs(other.Length-entry.Length) > maxLengthDiff {
					continue
				}
			}
			seen[cid] = true
			out = append(out, cid)
		}
	}

	add(idx.byEco[entry.Ecosystem])
	if len(out) >= maxCandidates {
		return out
	}

	add(idx.byPrefix[entry.Prefix])
	if len(out) >= maxCandidates {
		return out
	}

	if len(entry.Prefix) >= 2 {
		twoChar := entry.Prefix[:2]
		for prefix, cids := range idx.byPrefix {
			if len(out) >= maxCandidates {
				break
			}
			if len(prefix) >= 2 && prefix[:2] == twoChar && prefix != entry.Prefix {
				add(cids)
			}
		}
		if len(out) >= maxCandidates {
			return out
		}
	}

	minOverlap := 2
	if len(entry.Trigrams) <= 2 {
		minOverlap = 1
	}
	overlap := make(map[string]int)
	for _, tri := range entry.Trigrams {
		for _, cid := range idx.byTrigram[tri] {
			if cid == entry.CID || seen[cid] {
				continue
			}
			overlap[cid]++
		}
	}
	type scored struct {
		cid   string
		count int
	}
	var ranked []scored
	for cid, count := range overlap {
		if count >= minOverlap {
			ranked = append(ranked, scored{cid, count})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].cid < ranked[j].cid
	})
	for _, r := range ranked {
		if len(out) >= maxCandidates {
			break
		}
		add([]string{r.cid})
	}

	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}

// Entry returns the pre-computed Entry for a CID, if indexed.
func (idx *Index) Entry(id string) (Entry, bool) {
	e, ok := idx.entries[id]
	return e, ok
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
