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
	"github.com/sbom-tool/sbom-tools/model"
)

func TestVulnerabilitiesIntroducedResolvedPersistent(t *testing.T) {
	old := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Vulnerabilities: []model.VulnerabilityReference{{ID: "CVE-OLD"}, {ID: "CVE-SHARED"}}},
	)
	new := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Vulnerabilities: []model.VulnerabilityReference{{ID: "CVE-SHARED"}, {ID: "CVE-NEW"}}},
	)

	got := change.Vulnerabilities(old, new)
	if len(got.Introduced) != 1 || got.Introduced[0].VulnerabilityID != "CVE-NEW" {
		t.Errorf("Introduced = %v, want [CVE-NEW]", got.Introduced)
	}
	if len(got.Resolved) != 1 || got.Resolved[0].VulnerabilityID != "CVE-OLD" {
		t.Errorf("Resolved = %v, want [CVE-OLD]", got.Resolved)
	}
	if len(got.Persistent) != 1 || got.Persistent[0].VulnerabilityID != "CVE-SHARED" {
		t.Errorf("Persistent = %v, want [CVE-SHARED]", got.Persistent)
	}
}

func TestVulnerabilitiesMovingComponentIsPersistentNotResolvedAndIntroduced(t *testing.T) {
	old := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Vulnerabilities: []model.VulnerabilityReference{{ID: "CVE-MOVED"}}},
	)
	new := sbomWith(
		&model.Component{CID: model.CID{Value: "b"}, Vulnerabilities: []model.VulnerabilityReference{{ID: "CVE-MOVED"}}},
	)

	got := change.Vulnerabilities(old, new)
	if len(got.Introduced) != 0 || len(got.Resolved) != 0 {
		t.Errorf("a vuln present in both SBOMs under different components should not be Introduced/Resolved, got Introduced=%v Resolved=%v", got.Introduced, got.Resolved)
	}
	if len(got.Persistent) != 1 {
		t.Errorf("Persistent = %v, want 1 entry", got.Persistent)
	}
}

func TestVulnerabilitiesSortedBySeverity(t *testing.T) {
	new := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Vulnerabilities: []model.VulnerabilityReference{
		{ID: "CVE-LOW", Severity: model.SeverityLow},
		{ID: "CVE-CRIT", Severity: model.SeverityCritical},
		{ID: "CVE-MED", Severity: model.SeverityMedium},
	}})
	old := sbomWith(&model.Component{CID: model.CID{Value: "a"}})

	got := change.Vulnerabilities(old, new)
	if len(got.Introduced) != 3 {
		t.Fatalf("Introduced = %v, want 3 entries", got.Introduced)
	}
	if got.Introduced[0].VulnerabilityID != "CVE-CRIT" {
		t.Errorf("Introduced[0] = %v, want CVE-CRIT first (Critical > High > Medium > Low)", got.Introduced[0])
	}
	if got.Introduced[len(got.Introduced)-1].VulnerabilityID != "CVE-LOW" {
		t.Errorf("Introduced last = %v, want CVE-LOW last", got.Introduced[len(got.Introduced)-1])
	}
}

func TestVulnerabilitiesDepthFromBFS(t *testing.T) {
	new := &model.NormalizedSBOM{
		Components: model.NewComponentSet(),
		Edges: []model.DependencyEdge{
			{From: "root", To: "direct", Relationship: model.RelationshipDependsOn},
			{From: "direct", To: "transitive", Relationship: model.RelationshipDependsOn},
		},
	}
	new.Components.Put(&model.Component{CID: model.CID{Value: "root"}})
	new.Components.Put(&model.Component{CID: model.CID{Value: "direct"}, Vulnerabilities: []model.VulnerabilityReference{{ID: "CVE-DIRECT"}}})
	new.Components.Put(&model.Component{CID: model.CID{Value: "transitive"}, Vulnerabilities: []model.VulnerabilityReference{{ID: "CVE-TRANSITIVE"}}})
	old := &model.NormalizedSBOM{Components: model.NewComponentSet()}

	got := change.Vulnerabilities(old, new)
	byID := make(map[string]int)
	for _, d := range got.Introduced {
		byID[d.VulnerabilityID] = d.Depth
	}
	if byID["CVE-DIRECT"] != 1 {
		t.Errorf("CVE-DIRECT depth = %d, want 1", byID["CVE-DIRECT"])
	}
	if byID["CVE-TRANSITIVE"] != 2 {
		t.Errorf("CVE-TRANSITIVE depth = %d, want 2", byID["CVE-TRANSITIVE"])
	}
}
