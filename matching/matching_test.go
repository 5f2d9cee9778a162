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

package matching_test

import (
	"context"
	"testing"

	"github.com/sbom-tool/sbom-tools/matcher"
	"github.com/sbom-tool/sbom-tools/matching"
	"github.com/sbom-tool/sbom-tools/model"
)

func sbomWith(components ...*model.Component) *model.NormalizedSBOM {
	set := model.NewComponentSet()
	for _, c := range components {
		set.Put(c)
	}
	return &model.NormalizedSBOM{Components: set}
}

func TestMatchComponentsExactPhase(t *testing.T) {
	old := sbomWith(&model.Component{CID: model.CID{Value: "pkg:pypi/requests@2.31.0"}, Name: "requests"})
	new := sbomWith(&model.Component{CID: model.CID{Value: "pkg:pypi/requests@2.31.0"}, Name: "requests"})

	result := matching.MatchComponents(context.Background(), old, new, matcher.NewFuzzy(matcher.DefaultFuzzyMatchConfig()), matcher.DefaultFuzzyMatchConfig(), matching.DefaultLargeSBOMConfig())

	got, ok := result.Map["pkg:pypi/requests@2.31.0"]
	if !ok || got != "pkg:pypi/requests@2.31.0" {
		t.Errorf("Map[requests] = %q, ok=%v, want exact self-match", got, ok)
	}
	if result.Score("pkg:pypi/requests@2.31.0", "pkg:pypi/requests@2.31.0") != 1.0 {
		t.Errorf("exact phase should record score 1.0")
	}
}

func TestMatchComponentsEveryOldCIDAppearsExactlyOnce(t *testing.T) {
	old := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Ecosystem: model.EcosystemPyPI},
		&model.Component{CID: model.CID{Value: "b"}, Name: "beta", Ecosystem: model.EcosystemPyPI},
	)
	new := sbomWith(
		&model.Component{CID: model.CID{Value: "a2"}, Name: "alpha", Ecosystem: model.EcosystemPyPI},
	)

	result := matching.MatchComponents(context.Background(), old, new, matcher.NewFuzzy(matcher.DefaultFuzzyMatchConfig()), matcher.DefaultFuzzyMatchConfig(), matching.DefaultLargeSBOMConfig())

	if len(result.Map) != 2 {
		t.Fatalf("Map has %d entries, want 2 (one per old CID)", len(result.Map))
	}
	if _, ok := result.Map["a"]; !ok {
		t.Error("old CID a missing from result map")
	}
	if _, ok := result.Map["b"]; !ok {
		t.Error("old CID b missing from result map")
	}
}

func TestMatchComponentsNewCIDUsedAtMostOnce(t *testing.T) {
	old := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Name: "widget", Ecosystem: model.EcosystemPyPI},
		&model.Component{CID: model.CID{Value: "b"}, Name: "widget", Ecosystem: model.EcosystemPyPI},
	)
	new := sbomWith(
		&model.Component{CID: model.CID{Value: "c"}, Name: "widget", Ecosystem: model.EcosystemPyPI},
	)

	result := matching.MatchComponents(context.Background(), old, new, matcher.NewFuzzy(matcher.DefaultFuzzyMatchConfig()), matcher.DefaultFuzzyMatchConfig(), matching.DefaultLargeSBOMConfig())

	used := make(map[string]int)
	for _, newID := range result.Map {
		if newID != "" {
			used[newID]++
		}
	}
	for id, count := range used {
		if count > 1 {
			t.Errorf("new CID %q used %d times, want at most 1", id, count)
		}
	}
}

func TestMatchComponentsIsDeterministic(t *testing.T) {
	old := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Name: "widget", Ecosystem: model.EcosystemPyPI},
		&model.Component{CID: model.CID{Value: "b"}, Name: "widgets", Ecosystem: model.EcosystemPyPI},
	)
	new := sbomWith(
		&model.Component{CID: model.CID{Value: "c"}, Name: "widget", Ecosystem: model.EcosystemPyPI},
		&model.Component{CID: model.CID{Value: "d"}, Name: "widgets", Ecosystem: model.EcosystemPyPI},
	)

	m := matcher.NewFuzzy(matcher.DefaultFuzzyMatchConfig())
	r1 := matching.MatchComponents(context.Background(), old, new, m, matcher.DefaultFuzzyMatchConfig(), matching.DefaultLargeSBOMConfig())
	r2 := matching.MatchComponents(context.Background(), old, new, m, matcher.DefaultFuzzyMatchConfig(), matching.DefaultLargeSBOMConfig())

	for oldID, newID := range r1.Map {
		if r2.Map[oldID] != newID {
			t.Errorf("non-deterministic result for %q: %q vs %q", oldID, newID, r2.Map[oldID])
		}
	}
}
