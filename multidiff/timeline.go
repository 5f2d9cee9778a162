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

package multidiff

import (
	"context"
	"sort"

	"github.com/sbom-tool/sbom-tools/diffcache"
	"github.com/sbom-tool/sbom-tools/diffengine"
	"github.com/sbom-tool/sbom-tools/model"
)

// VersionPoint is one point of a component's version history.
type VersionPoint struct {
	Index          int
	Version        string
	Classification VersionChange
}

// ComponentHistory tracks a logical component's version across a
// timeline sequence.
type ComponentHistory struct {
	Key              string
	Points           []VersionPoint
	FirstSeenIndex   int
	FirstSeenVersion string
	LastSeenIndex    int
}

// TrendSnapshot is the per-point vulnerability/dependency trend the
// Timeline mode reports alongside version history.
type TrendSnapshot struct {
	Index              int
	VulnerabilityCount int
	DependencyCount    int
}

// TimelineResult is the complete output of Timeline.
type TimelineResult struct {
	Adjacent   []diffengine.Result // diffs between point i and i+1
	Cumulative []diffengine.Result // diffs between point 0 and i (i >= 1)
	Histories  []ComponentHistory
	Trends     []TrendSnapshot
}

// Timeline computes adjacent and cumulative diffs across an ordered
// sequence of SBOMs, plus per-component version history and
// per-point vulnerability/dependency trend snapshots.
func Timeline(ctx context.Context, sequence []*model.NormalizedSBOM, cache *diffcache.Cache) (TimelineResult, error) {
	var out TimelineResult
	if len(sequence) == 0 {
		return out, nil
	}

	for i := 0; i+1 < len(sequence); i++ {
		result, _, err := cache.Diff(ctx, sequence[i], sequence[i+1])
		if err != nil {
			return TimelineResult{}, err
		}
		out.Adjacent = append(out.Adjacent, result)
	}
	for i := 1; i < len(sequence); i++ {
		result, _, err := cache.Diff(ctx, sequence[0], sequence[i])
		if err != nil {
			return TimelineResult{}, err
		}
		out.Cumulative = append(out.Cumulative, result)
	}

	out.Histories = buildHistories(sequence)

	for i, sbom := range sequence {
		vulnCount := 0
		for _, c := range sbom.Components.All() {
			vulnCount += len(c.Vulnerabilities)
		}
		out.Trends = append(out.Trends, TrendSnapshot{
			Index:              i,
			VulnerabilityCount: vulnCount,
			DependencyCount:    len(sbom.Edges),
		})
	}

	return out, nil
}

func buildHistories(sequence []*model.NormalizedSBOM) []ComponentHistory {
	versionsAt := make(map[string]map[int]string)
	ecosystems := make(map[string]model.Ecosystem)
	for idx, sbom := range sequence {
		for _, c := range sbom.Components.All() {
			key := logicalKey(c)
			if versionsAt[key] == nil {
				versionsAt[key] = make(map[int]string)
				ecosystems[key] = c.Ecosystem
			}
			versionsAt[key][idx] = c.Version
		}
	}

	keys := make([]string, 0, len(versionsAt))
	for k := range versionsAt {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	histories := make([]ComponentHistory, 0, len(keys))
	for _, key := range keys {
		byIdx := versionsAt[key]
		ecosystem := ecosystems[key]
		h := ComponentHistory{Key: key, FirstSeenIndex: -1, LastSeenIndex: -1}

		seenBefore := false
		prevVersion := ""
		for i := range sequence {
			version, present := byIdx[i]
			var classification VersionChange
			switch {
			case present && !seenBefore:
				classification = ChangeInitial
				h.FirstSeenIndex = i
				h.FirstSeenVersion = version
				seenBefore = true
			case present && seenBefore:
				classification = classifyVersionChange(prevVersion, version, ecosystem)
			case !present && !seenBefore:
				classification = ChangeAbsent
			default: // !present && seenBefore
				classification = ChangeRemoved
				seenBefore = false
			}
			if present {
				h.LastSeenIndex = i
				prevVersion = version
			}
			h.Points = append(h.Points, VersionPoint{Index: i, Version: version, Classification: classification})
		}
		histories = append(histories, h)
	}
	return histories
}
