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

package compliance_test

import (
	"testing"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/sbom-tool/sbom-tools/compliance"
	"github.com/sbom-tool/sbom-tools/internal/settest"
	"github.com/sbom-tool/sbom-tools/model"
)

var sbomWith = settest.SBOMWith

func TestCheckMinimumFlagsMissingVersionAndIdentifier(t *testing.T) {
	sbom := sbomWith(&model.Component{CID: model.CID{Value: "a"}, Name: "alpha"})

	result := compliance.Check(sbom, compliance.LevelMinimum)

	if result.IsCompliant {
		t.Fatalf("IsCompliant = true, want false")
	}
	if result.Counts.Errors == 0 {
		t.Errorf("Counts.Errors = 0, want > 0")
	}

	foundVersion := false
	foundIdentifier := false
	for _, v := range result.Violations {
		if v.Requirement == "component.version" {
			foundVersion = true
		}
		if v.Requirement == "component.identifier" {
			foundIdentifier = true
		}
	}
	if !foundVersion {
		t.Errorf("Violations = %+v, want a component.version violation", result.Violations)
	}
	if !foundIdentifier {
		t.Errorf("Violations = %+v, want a component.identifier violation", result.Violations)
	}
}

func TestCheckNTIAMinimumRequiresDocumentMetadata(t *testing.T) {
	sbom := sbomWith(&model.Component{
		CID:         model.CID{Value: "a"},
		Name:        "alpha",
		Version:     "1.0.0",
		Identifiers: model.Identifiers{SWID: "swid:alpha"},
	})

	result := compliance.Check(sbom, compliance.LevelNTIAMinimum)

	requirements := make(map[string]bool)
	for _, v := range result.Violations {
		requirements[v.Requirement] = true
	}
	for _, want := range []string{"doc.creator", "doc.supplier", "doc.primary_product"} {
		if !requirements[want] {
			t.Errorf("Violations missing requirement %q", want)
		}
	}
}

func TestCheckCRAPhase2RequiresStrongHash(t *testing.T) {
	now := time.Now()
	sbom := sbomWith(&model.Component{
		CID:              model.CID{Value: "a"},
		Name:             "alpha",
		Version:          "1.0.0",
		Identifiers:      model.Identifiers{SWID: "swid:alpha"},
		DeclaredLicenses: []model.License{"MIT"},
		Supplier:         "Example Corp",
		Hashes:           []model.Hash{{Algorithm: cdx.HashAlgoMD5, Value: "deadbeef"}},
	})
	sbom.Metadata = model.DocumentMetadata{
		Creators:        []string{"tool:sbomdiff"},
		Supplier:        "Example Corp",
		PrimaryProduct:  "a",
		SecurityContact: "security@example.com",
		SupportEndDate:  &now,
	}

	result := compliance.Check(sbom, compliance.LevelCRAPhase2)

	foundWeakHash := false
	for _, v := range result.Violations {
		if v.Requirement == "component.hash.strong" {
			foundWeakHash = true
		}
	}
	if !foundWeakHash {
		t.Errorf("Violations = %+v, want a component.hash.strong violation for an MD5-only component", result.Violations)
	}
}

func TestViolationRemediationFallsBackForUnknownRequirement(t *testing.T) {
	v := compliance.Violation{Requirement: "nonexistent.requirement"}
	if v.Remediation() == "" {
		t.Error("Remediation() = \"\", want a non-empty fallback")
	}
}

func TestCheckDependencyGraphRequiredForMultipleComponents(t *testing.T) {
	sbom := sbomWith(
		&model.Component{CID: model.CID{Value: "a"}, Name: "alpha", Version: "1.0.0"},
		&model.Component{CID: model.CID{Value: "b"}, Name: "beta", Version: "1.0.0"},
	)

	result := compliance.Check(sbom, compliance.LevelStandard)

	found := false
	for _, v := range result.Violations {
		if v.Requirement == "dependency.graph" {
			found = true
		}
	}
	if !found {
		t.Errorf("Violations = %+v, want a dependency.graph violation", result.Violations)
	}
}
