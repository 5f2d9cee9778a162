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

package change_test

import (
	"testing"

	"github.com/sbom-tool/sbom-tools/change"
	"github.com/sbom-tool/sbom-tools/cost"
	"github.com/sbom-tool/sbom-tools/model"
)

func sbomWith(components ...*model.Component) *model.NormalizedSBOM {
	set := model.NewComponentSet()
	for _, c := range components {
		set.Put(c)
	}
	return &model.NormalizedSBOM{Components: set}
}

func TestComponentsAddedAndRemoved(t *testing.T) {
	old := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha"})
	new := sbomWith(&model.Component{CID: model.CID{Value: "b"}, Name: "beta"})
	pairing := map[string]string{"a": ""}

	got := change.Components(old, new, pairing, cost.Default(), nil)
	if len(got.Removed) != 1 || got.Removed[0].OldID != "a" {
		t.Errorf("Removed = %v, want [a]", got.Removed)
	}
	if len(got.Added) != 1 || got.Added[0].NewID != "b" {
		t.Errorf("Added = %v, want [b]", got.Added)
	}
}

func TestComponentsModifiedVersionField(t *testing.T) {
	old := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Version: "1.0.0"})
	new := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Version: "2.0.0"})
	pairing := map[string]string{"a": "a"}

	got := change.Components(old, new, pairing, cost.Default(), nil)
	if len(got.Modified) != 1 {
		t.Fatalf("Modified = %v, want 1 entry", got.Modified)
	}
	if got.Modified[0].Fields[0] != change.FieldVersion {
		t.Errorf("Modified[0].Fields = %v, want to include version", got.Modified[0].Fields)
	}
	if got.Modified[0].Cost <= 0 {
		t.Error("a major version bump should carry a positive cost")
	}
}

func TestComponentsHashMismatchOnlyWhenVersionUnchanged(t *testing.T) {
	old := sbomWith(&model.Component{
		CID: model.CID{Value: "a"}, Name: "alpha", Version: "1.0.0",
		Hashes: []model.Hash{{Algorithm: "SHA-256", Value: "aaa"}},
	})
	new := sbomWith(&model.Component{
		CID: model.CID{Value: "a"}, Name: "alpha", Version: "1.0.0",
		Hashes: []model.Hash{{Algorithm: "SHA-256", Value: "bbb"}},
	})
	pairing := map[string]string{"a": "a"}

	got := change.Components(old, new, pairing, cost.Default(), nil)
	if len(got.Modified) != 1 {
		t.Fatalf("Modified = %v, want 1 entry for disjoint hashes at same version", got.Modified)
	}
	found := false
	for _, f := range got.Modified[0].Fields {
		if f == change.FieldHashes {
			found = true
		}
	}
	if !found {
		t.Errorf("Modified[0].Fields = %v, want to include hashes", got.Modified[0].Fields)
	}
}

func TestDependenciesRemapsPairedEndpoints(t *testing.T) {
	old := &model.NormalizedSBOM{
		Components: model.NewComponentSet(),
		Edges:      []model.DependencyEdge{{From: "a", To: "b", Relationship: model.RelationshipDependsOn}},
	}
	new := &model.NormalizedSBOM{
		Components: model.NewComponentSet(),
		Edges:      []model.DependencyEdge{{From: "a2", To: "b2", Relationship: model.RelationshipDependsOn}},
	}
	pairing := map[string]string{"a": "a2", "b": "b2"}

	got := change.Dependencies(old, new, pairing)
	if len(got.Added) != 0 || len(got.Removed) != 0 {
		t.Errorf("Dependencies() = %+v, want no changes once endpoints are remapped through the pairing", got)
	}
}

func TestDependenciesDetectsRealChanges(t *testing.T) {
	old := &model.NormalizedSBOM{
		Components: model.NewComponentSet(),
		Edges:      []model.DependencyEdge{{From: "a", To: "b", Relationship: model.RelationshipDependsOn}},
	}
	new := &model.NormalizedSBOM{
		Components: model.NewComponentSet(),
		Edges:      []model.DependencyEdge{{From: "a", To: "c", Relationship: model.RelationshipDependsOn}},
	}
	pairing := map[string]string{"a": "a", "b": "b"}

	got := change.Dependencies(old, new, pairing)
	if len(got.Added) != 1 || got.Added[0].To != "c" {
		t.Errorf("Added = %v, want edge to c", got.Added)
	}
	if len(got.Removed) != 1 || got.Removed[0].To != "b" {
		t.Errorf("Removed = %v, want edge to b", got.Removed)
	}
}

func TestLicensesAddedAndRemoved(t *testing.T) {
	old := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", DeclaredLicenses: []model.License{"MIT"}})
	new := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", DeclaredLicenses: []model.License{"Apache-2.0"}})

	got := change.Licenses(old, new)
	if _, ok := got.Added["Apache-2.0"]; !ok {
		t.Errorf("Added = %v, want Apache-2.0", got.Added)
	}
	if _, ok := got.Removed["MIT"]; !ok {
		t.Errorf("Removed = %v, want MIT", got.Removed)
	}
}
