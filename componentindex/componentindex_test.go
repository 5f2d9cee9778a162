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

package componentindex_test

import (
	"testing"

	"github.com/sbom-tool/sbom-tools/componentindex"
	"github.com/sbom-tool/sbom-tools/model"
)

func sbomWith(components ...*model.Component) *model.NormalizedSBOM {
	set := model.NewComponentSet()
	for _, c := range components {
		set.Put(c)
	}
	return &model.NormalizedSBOM{Components: set}
}

func comp(id, name string, eco model.Ecosystem) *model.Component {
	return &model.Component{
		CID:       model.CID{Value: id},
		Name:      name,
		Ecosystem: eco,
	}
}

func TestFindCandidatesEcosystemPriority(t *testing.T) {
	sbom := sbomWith(
		comp("a", "requests", model.EcosystemPyPI),
		comp("b", "requests", model.EcosystemNPM),
		comp("c", "request", model.EcosystemPyPI),
	)
	idx := componentindex.Build(sbom)
	entry, ok := idx.Entry("a")
	if !ok {
		t.Fatal("expected entry for component a")
	}

	got := idx.FindCandidates(entry, 10, 2)
	if len(got) != 2 {
		t.Fatalf("FindCandidates() = %v, want 2 candidates (b and c)", got)
	}
}

func TestFindCandidatesRespectsMaxCandidates(t *testing.T) {
	sbom := sbomWith(
		comp("a", "lib", model.EcosystemPyPI),
		comp("b", "lib", model.EcosystemPyPI),
		comp("c", "lib", model.EcosystemPyPI),
	)
	idx := componentindex.Build(sbom)
	entry, _ := idx.Entry("a")
	got := idx.FindCandidates(entry, 1, 5)
	if len(got) != 1 {
		t.Fatalf("FindCandidates() = %v, want exactly 1 candidate", got)
	}
}

func TestNormalizeNamePyPICollapsesRuns(t *testing.T) {
	sbom := sbomWith(comp("a", "Flask_Cors.Extra", model.EcosystemPyPI))
	idx := componentindex.Build(sbom)
	entry, _ := idx.Entry("a")
	if entry.Name != "flask-cors-extra" {
		t.Errorf("normalized name = %q, want %q", entry.Name, "flask-cors-extra")
	}
}

func TestTrigramFallbackForShortNames(t *testing.T) {
	sbom := sbomWith(
		comp("a", "jq", model.EcosystemPyPI),
		comp("b", "zz", model.EcosystemNPM),
	)
	idx := componentindex.Build(sbom)
	entry, _ := idx.Entry("a")
	if len(entry.Trigrams) != 0 {
		t.Errorf("expected no trigrams for a 2-character name, got %v", entry.Trigrams)
	}
}
