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

package change

import (
	"sort"

	"github.com/sbom-tool/sbom-tools/model"
)

// VulnerabilityDetail is one (vulnerability, component) occurrence
// carried into a VulnerabilityChanges list.
type VulnerabilityDetail struct {
	VulnerabilityID string
	ComponentID     string
	Severity        model.Severity
	CVSS            []model.CVSS
	SourceFeed      string
	CWEs            []string
	Depth           int // BFS depth from a root; 1 = direct, >1 = transitive
	KEV             *model.KEVMetadata
	VEX             *model.VEXStatus
}

// VulnerabilityChanges holds the three-way classification of
// vulnerabilities between two SBOMs.
type VulnerabilityChanges struct {
	Introduced []VulnerabilityDetail
	Resolved   []VulnerabilityDetail
	Persistent []VulnerabilityDetail
}

// Vulnerabilities computes the Introduced/Resolved/Persistent
// classification for every vulnerability id appearing in either SBOM.
// A vulnerability moving from one component to another while remaining
// present in both SBOMs is Persistent, never Resolved+Introduced — this
// is the intentional behavior preserved from spec.md's Open Question
// (recognized by id across components, not by (id, component) pair).
func Vulnerabilities(old, new *model.NormalizedSBOM) VulnerabilityChanges {
	oldDepths := bfsDepths(old)
	newDepths := bfsDepths(new)

	oldByVuln := detailsByVuln(old, oldDepths)
	newByVuln := detailsByVuln(new, newDepths)

	var out VulnerabilityChanges
	for id, details := range newByVuln {
		if _, ok := oldByVuln[id]; !ok {
			out.Introduced = append(out.Introduced, details...)
		} else {
			out.Persistent = append(out.Persistent, details...)
		}
	}
	for id, details := range oldByVuln {
		if _, ok := newByVuln[id]; !ok {
			out.Resolved = append(out.Resolved, details...)
		}
	}

	sortBySeverity(out.Introduced)
	sortBySeverity(out.Resolved)
	sortBySeverity(out.Persistent)
	return out
}

func detailsByVuln(sbom *model.NormalizedSBOM, depths map[string]int) map[string][]VulnerabilityDetail {
	out := make(map[string][]VulnerabilityDetail)
	for _, c := range sbom.Components.All() {
		depth := depths[c.CID.Value]
		for _, v := range c.Vulnerabilities {
			out[v.ID] = append(out[v.ID], VulnerabilityDetail{
				VulnerabilityID: v.ID,
				ComponentID:     c.CID.Value,
				Severity:        v.Severity,
				CVSS:            v.CVSSScores,
				SourceFeed:      v.SourceFeed,
				CWEs:            v.CWEs,
				Depth:           depth,
				KEV:             v.KEV,
				VEX:             v.VEX,
			})
		}
	}
	return out
}

func sortBySeverity(details []VulnerabilityDetail) {
	sort.SliceStable(details, func(i, j int) bool {
		if details[i].Severity != details[j].Severity {
			return details[i].Severity < details[j].Severity
		}
		return details[i].VulnerabilityID < details[j].VulnerabilityID
	})
}

// bfsDepths computes each component's depth from the roots (components
// with no incoming edge are depth 0) via BFS, taking the minimum path
// length when multiple paths reach the same component (diamonds).
func bfsDepths(sbom *model.NormalizedSBOM) map[string]int {
	hasIncoming := make(map[string]bool)
	children := make(map[string][]string)
	for _, e := range sbom.Edges {
		children[e.From] = append(children[e.From], e.To)
		hasIncoming[e.To] = true
	}

	depths := make(map[string]int)
	var queue []string
	for _, id := range sbom.Components.Order() {
		if !hasIncoming[id] {
			depths[id] = 0
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			newDepth := depths[cur] + 1
			if existing, seen := depths[child]; !seen || newDepth < existing {
				depths[child] = newDepth
				queue = append(queue, child)
			}
		}
	}

	// Components unreachable from any root (e.g. isolated in a cycle
	// with no root at all) default to depth 0: the spec only defines
	// depth relative to roots, and there's no meaningful distance
	// without one.
	for _, id := range sbom.Components.Order() {
		if _, ok := depths[id]; !ok {
			depths[id] = 0
		}
	}
	return depths
}
