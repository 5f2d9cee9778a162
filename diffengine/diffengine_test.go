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

package diffengine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sbom-tool/sbom-tools/diffengine"
	"github.com/sbom-tool/sbom-tools/model"
)

func sbomWith(components ...*model.Component) *model.NormalizedSBOM {
	set := model.NewComponentSet()
	for _, c := range components {
		set.Put(c)
	}
	return &model.NormalizedSBOM{Components: set}
}

func TestDiffFastPathOnEqualContentHash(t *testing.T) {
	old := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Version: "1.0.0"})
	new := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Version: "1.0.0"})

	got, err := diffengine.Diff(context.Background(), old, new, diffengine.DefaultConfig())
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if !got.FastPathEqual {
		t.Error("Diff() with identical content should take the fast path")
	}
}

func TestDiffDetectsAddedAndRemoved(t *testing.T) {
	old := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Version: "1.0.0"})
	new := sbomWith(&model.Component{CID: model.CID{Value: "b"}, Name: "beta", Version: "1.0.0"})

	got, err := diffengine.Diff(context.Background(), old, new, diffengine.DefaultConfig())
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if got.FastPathEqual {
		t.Fatal("Diff() should not take the fast path for different components")
	}
	if len(got.Components.Removed) != 1 || got.Components.Removed[0].OldID != "a" {
		t.Errorf("Components.Removed = %v, want [a]", got.Components.Removed)
	}
	if len(got.Components.Added) != 1 || got.Components.Added[0].NewID != "b" {
		t.Errorf("Components.Added = %v, want [b]", got.Components.Added)
	}
	if got.SemanticScore >= 100 {
		t.Errorf("SemanticScore = %v, want less than 100 for an add+remove", got.SemanticScore)
	}
}

func TestDiffModifiedComponentCarriesMatchExplanation(t *testing.T) {
	old := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Version: "1.0.0"})
	new := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Version: "2.0.0"})

	got, err := diffengine.Diff(context.Background(), old, new, diffengine.DefaultConfig())
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if len(got.Components.Modified) != 1 {
		t.Fatalf("Components.Modified = %v, want 1 entry", got.Components.Modified)
	}
	if got.Components.Modified[0].Match == nil {
		t.Error("Modified[0].Match should be populated by the exact-phase pairing")
	}
}

func TestDiffFilterRuleEngineExcludesComponent(t *testing.T) {
	old := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Version: "1.0.0"},
		&model.Component{CID: model.CID{Value: "noisy"}, Name: "noisy", Version: "1.0.0"},
	)
	new := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Version: "1.0.0"},
	)

	cfg := diffengine.DefaultConfig()
	cfg.Rules = &diffengine.FilterRuleEngine{Rules: []diffengine.FilterRule{{ComponentID: "noisy", Exclude: true}}}

	got, err := diffengine.Diff(context.Background(), old, new, cfg)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if len(got.Components.Removed) != 0 {
		t.Errorf("Components.Removed = %v, want none once the noisy component is excluded", got.Components.Removed)
	}

	if old.Components.Len() != 2 {
		t.Error("original old SBOM must not be mutated by the rule engine")
	}
}

func TestDiffInvalidRuleReturnsError(t *testing.T) {
	old := sbomWith(&model.Component{CID: model.CID{Value: "a"}})
	new := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Version: "2.0.0"})

	cfg := diffengine.DefaultConfig()
	cfg.Rules = &diffengine.FilterRuleEngine{Rules: []diffengine.FilterRule{{ComponentID: "a", Exclude: true, CanonicalID: "b"}}}

	_, err := diffengine.Diff(context.Background(), old, new, cfg)
	if !errors.Is(err, diffengine.ErrInvalidRule) {
		t.Errorf("Diff() error = %v, want ErrInvalidRule", err)
	}
}
