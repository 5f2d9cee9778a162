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

package lshindex_test

import (
	"testing"

	"github.com/sbom-tool/sbom-tools/lshindex"
	"github.com/sbom-tool/sbom-tools/model"
)

func TestBandsAndRowsTable(t *testing.T) {
	tests := []struct {
		threshold  float64
		bands, rows int
	}{
		{0.5, 10, 10},
		{0.7, 20, 5},
		{0.8, 25, 4},
		{0.9, 50, 2},
	}
	for _, tc := range tests {
		b, r := lshindex.BandsAndRows(tc.threshold)
		if b != tc.bands || r != tc.rows {
			t.Errorf("BandsAndRows(%v) = (%d, %d), want (%d, %d)", tc.threshold, b, r, tc.bands, tc.rows)
		}
	}
}

func sbomWith(components ...*model.Component) *model.NormalizedSBOM {
	set := model.NewComponentSet()
	for _, c := range components {
		set.Put(c)
	}
	return &model.NormalizedSBOM{Components: set}
}

func TestFindCandidatesFindsSimilarNames(t *testing.T) {
	sbom := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Name: "tensorflow", Ecosystem: model.EcosystemPyPI},
		&model.Component{CID: model.CID{Value: "b"}, Name: "tensorflow-gpu", Ecosystem: model.EcosystemPyPI},
		&model.Component{CID: model.CID{Value: "c"}, Name: "zzzzzzzzzz", Ecosystem: model.EcosystemNPM},
	)
	idx := lshindex.Build(sbom, 0.5)
	a, _ := sbom.Components.Get("a")
	got := idx.FindCandidates(a)

	found := false
	for _, cid := range got {
		if cid == "b" {
			found = true
		}
		if cid == "c" {
			t.Errorf("FindCandidates(a) unexpectedly returned unrelated component c")
		}
	}
	if !found {
		t.Errorf("FindCandidates(a) = %v, want to include b (similar name)", got)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	sbom := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Name: "requests", Ecosystem: model.EcosystemPyPI},
		&model.Component{CID: model.CID{Value: "b"}, Name: "requests-toolbelt", Ecosystem: model.EcosystemPyPI},
	)
	idx1 := lshindex.Build(sbom, 0.7)
	idx2 := lshindex.Build(sbom, 0.7)
	a, _ := sbom.Components.Get("a")

	got1 := idx1.FindCandidates(a)
	got2 := idx2.FindCandidates(a)
	if len(got1) != len(got2) {
		t.Fatalf("two Build() calls over the same SBOM produced different candidate counts: %v vs %v", got1, got2)
	}
	for i := range got1 {
		if got1[i] != got2[i] {
			t.Errorf("Build() is not deterministic: %v vs %v", got1, got2)
		}
	}
}
