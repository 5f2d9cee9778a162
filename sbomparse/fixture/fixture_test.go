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

package fixture_test

import (
	"context"
	"testing"

	"github.com/sbom-tool/sbom-tools/sbomparse"
	"github.com/sbom-tool/sbom-tools/sbomparse/fixture"
)

const doc = `{
	"format": "cyclonedx",
	"serial_number": "urn:uuid:1",
	"creators": ["tool:sbomdiff"],
	"components": [
		{"name": "alpha", "version": "1.0.0", "purl": "pkg:npm/alpha@1.0.0", "licenses": ["MIT"], "hashes": [{"algorithm": "SHA-256", "value": "abc"}]},
		{"name": "beta", "version": "2.0.0", "purl": "pkg:npm/beta@2.0.0", "vulnerabilities": [{"id": "CVE-2024-1", "severity": "HIGH"}]}
	],
	"edges": [{"from": 0, "to": 1, "relationship": "depends_on"}]
}`

func TestParseSatisfiesParser(t *testing.T) {
	var _ sbomparse.Parser = fixture.Loader{}

	sbom, err := fixture.Loader{}.Parse(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := sbom.Components.Len(); got != 2 {
		t.Fatalf("Components.Len() = %d, want 2", got)
	}
	if len(sbom.Edges) != 1 {
		t.Fatalf("len(Edges) = %d, want 1", len(sbom.Edges))
	}
	if sbom.Metadata.SerialNumber != "urn:uuid:1" {
		t.Errorf("Metadata.SerialNumber = %q, want urn:uuid:1", sbom.Metadata.SerialNumber)
	}

	comps := sbom.Components.All()
	if comps[0].Name != "alpha" || comps[0].Ecosystem != "npm" {
		t.Errorf("comps[0] = %+v, want name alpha, ecosystem npm", comps[0])
	}
	if sbom.Edges[0].From != comps[0].CID.Value || sbom.Edges[0].To != comps[1].CID.Value {
		t.Errorf("edge endpoints = (%s, %s), want component CIDs", sbom.Edges[0].From, sbom.Edges[0].To)
	}
	if len(comps[1].Vulnerabilities) != 1 || comps[1].Vulnerabilities[0].Severity.String() != "HIGH" {
		t.Errorf("comps[1].Vulnerabilities = %+v, want one HIGH severity entry", comps[1].Vulnerabilities)
	}
}

func TestParseRejectsOutOfRangeEdge(t *testing.T) {
	_, err := fixture.Loader{}.Parse(context.Background(), []byte(`{"components":[{"name":"a"}],"edges":[{"from":0,"to":5}]}`))
	if err == nil {
		t.Fatal("Parse() error = nil, want error for out-of-range edge index")
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	_, err := fixture.Loader{}.Parse(context.Background(), []byte(`not json`))
	if err == nil {
		t.Fatal("Parse() error = nil, want decode error")
	}
}
