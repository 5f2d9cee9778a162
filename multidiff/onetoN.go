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

// Package multidiff drives the three multi-SBOM workflows described
// in spec.md §4.12 — 1:N baseline comparison, ordered timeline
// analysis, and NxN similarity clustering — on top of diffcache so
// repeated pairs cost O(1).
package multidiff

import (
	"context"
	"sort"
	"strings"

	"github.com/sbom-tool/sbom-tools/diffcache"
	"github.com/sbom-tool/sbom-tools/model"
)

// knownCriticalNames is a small, hand-curated set of package names
// with a well-known history of high-impact vulnerabilities, used as
// the "known-critical name list" spec.md's 1:N mode calls for. It is
// necessarily incomplete — there is no vulnerability feed in scope
// here — and exists only to give SecurityImpact a non-trivial signal
// rather than being a reward-free constant.
var knownCriticalNames = map[string]bool{
	"openssl":      true,
	"log4j":        true,
	"log4j-core":   true,
	"struts2":      true,
	"struts":       true,
	"xz":           true,
	"xz-utils":     true,
	"lodash":       true,
	"minimist":     true,
	"busybox":      true,
	"openssh":      true,
	"curl":         true,
	"glibc":        true,
	"libxml2":      true,
	"bash":         true,
	"spring-core":  true,
	"commons-text": true,
}

// logicalKey identifies the same real-world package across SBOMs that
// may assign it different CIDs because of version differences:
// ecosystem/group/name, independent of version.
func logicalKey(c *model.Component) string {
	return strings.ToLower(string(c.Ecosystem)) + "/" + strings.ToLower(c.Group) + "/" + strings.ToLower(c.Name)
}

// DeviationEntry records one target's overall drift from the baseline.
type DeviationEntry struct {
	TargetIndex    int
	SemanticScore  float64
	DeviationScore float64 // 100 - SemanticScore
}

// VariableComponent is a logical component present in more than one
// SBOM with two or more distinct versions across them.
type VariableComponent struct {
	Key             string
	BaselineVersion string
	MinVersion      string
	MaxVersion      string
	UniqueVersions  []string
	TargetIndices   []int // indices into the targets slice that contain this component
	MajorSpread     int
	SecurityImpact  string // "critical", "elevated", or "low"
}

// VulnerabilityMatrix is the per-vulnerability presence count across
// baseline (index 0) and every target (index i+1).
type VulnerabilityMatrix struct {
	Counts      map[string][]int
	UniqueToOne map[string]int // vulnerability id -> the single SBOM index containing it
	CommonToAll []string
}

// OneToNResult is the complete output of OneToN.
type OneToNResult struct {
	Deviations          []DeviationEntry
	Universal           []string // logical keys present in baseline ∩ every target
	Variable            []VariableComponent
	Inconsistent        []string // logical keys present in some SBOMs but missing from others
	VulnerabilityMatrix VulnerabilityMatrix
}

// OneToN compares baseline against every target, using cache so
// repeated (baseline, target) pairs are O(1).
func OneToN(ctx context.Context, baseline *model.NormalizedSBOM, targets []*model.NormalizedSBOM, cache *diffcache.Cache) (OneToNResult, error) {
	var out OneToNResult
	out.VulnerabilityMatrix.Counts = make(map[string][]int)
	out.VulnerabilityMatrix.UniqueToOne = make(map[string]int)

	all := append([]*model.NormalizedSBOM{baseline}, targets...)

	for i, target := range targets {
		result, _, err := cache.Diff(ctx, baseline, target)
		if err != nil {
			return OneToNResult{}, err
		}
		out.Deviations = append(out.Deviations, DeviationEntry{
			TargetIndex:    i,
			SemanticScore:  result.SemanticScore,
			DeviationScore: 100 - result.SemanticScore,
		})
	}

	// byKey maps logical key -> sbom index -> versions present.
	byKey := make(map[string]map[int][]string)
	// ecosystems maps logical key -> ecosystem of its first-seen component.
	ecosystems := make(map[string]model.Ecosystem)
	for idx, sbom := range all {
		for _, c := range sbom.Components.All() {
			key := logicalKey(c)
			if byKey[key] == nil {
				byKey[key] = make(map[int][]string)
				ecosystems[key] = c.Ecosystem
			}
			byKey[key][idx] = append(byKey[key][idx], c.Version)
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		presence := byKey[key]
		presentIn := len(presence)
		if presentIn == len(all) {
			out.Universal = append(out.Universal, key)
		} else {
			out.Inconsistent = append(out.Inconsistent, key)
		}

		uniqueVersions := make(map[string]bool)
		var targetIndices []int
		for idx, versions := range presence {
			for _, v := range versions {
				uniqueVersions[v] = true
			}
			if idx > 0 {
				targetIndices = append(targetIndices, idx-1)
			}
		}
		if len(uniqueVersions) < 2 {
			continue
		}

		versions := make([]string, 0, len(uniqueVersions))
		for v := range uniqueVersions {
			versions = append(versions, v)
		}
		ecosystem := ecosystems[key]
		sort.Slice(versions, func(i, j int) bool { return compareVersions(versions[i], versions[j], ecosystem) < 0 })
		sort.Ints(targetIndices)

		baselineVersion := ""
		if bv, ok := presence[0]; ok && len(bv) > 0 {
			baselineVersion = bv[0]
		}

		name := key
		if slash := strings.LastIndex(key, "/"); slash >= 0 {
			name = key[slash+1:]
		}

		out.Variable = append(out.Variable, VariableComponent{
			Key:             key,
			BaselineVersion: baselineVersion,
			MinVersion:      versions[0],
			MaxVersion:      versions[len(versions)-1],
			UniqueVersions:  versions,
			TargetIndices:   targetIndices,
			MajorSpread:     majorVersionSpread(versions),
			SecurityImpact:  securityImpact(name, majorVersionSpread(versions)),
		})
	}

	vulnPresence := make(map[string]map[int]bool)
	for idx, sbom := range all {
		for _, c := range sbom.Components.All() {
			for _, v := range c.Vulnerabilities {
				if vulnPresence[v.ID] == nil {
					vulnPresence[v.ID] = make(map[int]bool)
				}
				vulnPresence[v.ID][idx] = true
			}
		}
	}
	vulnIDs := make([]string, 0, len(vulnPresence))
	for id := range vulnPresence {
		vulnIDs = append(vulnIDs, id)
	}
	sort.Strings(vulnIDs)
	for _, id := range vulnIDs {
		counts := make([]int, len(all))
		for idx := range counts {
			if vulnPresence[id][idx] {
				counts[idx] = 1
			}
		}
		out.VulnerabilityMatrix.Counts[id] = counts

		present := 0
		onlyIdx := -1
		for idx, c := range counts {
			if c > 0 {
				present++
				onlyIdx = idx
			}
		}
		if present == 1 {
			out.VulnerabilityMatrix.UniqueToOne[id] = onlyIdx
		}
		if present == len(all) {
			out.VulnerabilityMatrix.CommonToAll = append(out.VulnerabilityMatrix.CommonToAll, id)
		}
	}

	return out, nil
}

// securityImpact classifies a logical component's drift risk from its
// name (against the known-critical list) and how many distinct major
// versions it spans across the compared SBOMs.
func securityImpact(name string, majorSpread int) string {
	critical := knownCriticalNames[strings.ToLower(name)]
	switch {
	case critical && majorSpread >= 1:
		return "critical"
	case critical:
		return "elevated"
	case majorSpread >= 2:
		return "elevated"
	default:
		return "low"
	}
}
