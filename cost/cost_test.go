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

package cost_test

import (
	"testing"

	"github.com/sbom-tool/sbom-tools/cost"
	"github.com/sbom-tool/sbom-tools/model"
)

func TestVersionChangeCostTiers(t *testing.T) {
	c := cost.Default()

	tests := []struct {
		name        string
		old, new    string
		wantNonZero bool
	}{
		{"equal versions", "1.2.3", "1.2.3", false},
		{"patch bump", "1.2.3", "1.2.4", true},
		{"minor bump", "1.2.3", "1.3.0", true},
		{"major bump", "1.2.3", "2.0.0", true},
		{"one side unparseable", "1.2.3", "not-a-version", true},
		{"neither side parseable", "abc", "xyz", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.VersionChangeCost(tc.old, tc.new, model.EcosystemUnknown)
			if (got != 0) != tc.wantNonZero {
				t.Errorf("VersionChangeCost(%q, %q) = %v, want nonzero=%v", tc.old, tc.new, got, tc.wantNonZero)
			}
		})
	}
}

func TestVersionChangeCostPatchBumpChargesPatchTierOnly(t *testing.T) {
	c := cost.Default()
	// A pure patch bump costs the patch tier alone: the highest-order
	// differing field selects exactly one tier.
	got := c.VersionChangeCost("1.2.3", "1.2.4", model.EcosystemUnknown)
	want := c.VersionPatch
	if got != want {
		t.Errorf("VersionChangeCost(patch bump) = %v, want %v (patch tier only)", got, want)
	}
}

func TestVersionChangeCostUsesEcosystemNativeOrderingWhenNotSemver(t *testing.T) {
	c := cost.Default()
	// Neither side parses as semver (the "1:" epoch rules it out), but
	// both are valid Debian versions; an unknown ecosystem would score
	// this 0 (see "neither side parseable" above), while Debian's own
	// ordering confirms a real difference.
	got := c.VersionChangeCost("1:1.2.3-1", "1:1.2.3-2ubuntu1", model.EcosystemDebian)
	if got == 0 {
		t.Error("VersionChangeCost(debian revisions, EcosystemDebian) = 0, want nonzero")
	}
}

func TestCalculateSemanticScoreNoChangeIsMax(t *testing.T) {
	c := cost.Default()
	got := c.CalculateSemanticScore(cost.Counts{})
	if got != 100 {
		t.Errorf("CalculateSemanticScore(no changes) = %v, want 100", got)
	}
}

func TestCalculateSemanticScoreFloorsAtZero(t *testing.T) {
	c := cost.Default()
	got := c.CalculateSemanticScore(cost.Counts{ComponentsRemoved: 1000})
	if got != 0 {
		t.Errorf("CalculateSemanticScore(huge change) = %v, want floored at 0", got)
	}
}

func TestSecurityFocusedAmplifiesVulnerabilityCost(t *testing.T) {
	def := cost.Default()
	sec := cost.SecurityFocused()
	if sec.VulnerabilityIntroduced <= def.VulnerabilityIntroduced {
		t.Error("SecurityFocused should amplify VulnerabilityIntroduced over Default")
	}
}

func TestComplianceFocusedAmplifiesLicenseCost(t *testing.T) {
	def := cost.Default()
	comp := cost.ComplianceFocused()
	if comp.LicenseChanged <= def.LicenseChanged {
		t.Error("ComplianceFocused should amplify LicenseChanged over Default")
	}
}
