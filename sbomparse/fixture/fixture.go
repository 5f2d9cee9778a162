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

// Package fixture is a minimal sbomparse.Parser implementation for
// tests: it reads a small hand-written JSON shape (not real CycloneDX
// or SPDX) so package tests across the engine can build a
// model.NormalizedSBOM without hand-constructing every field. Living
// under sbomparse/ rather than a top-level testing/ package avoids an
// import cycle, since tests in several other packages need it.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/sbom-tool/sbom-tools/cid"
	"github.com/sbom-tool/sbom-tools/model"
	"github.com/sbom-tool/sbom-tools/purl"
)

// Document is the fixture's JSON shape: just enough fields to exercise
// every downstream package without modeling a real SBOM format.
type Document struct {
	Format        string           `json:"format"`
	FormatVersion string           `json:"format_version"`
	SerialNumber  string           `json:"serial_number"`
	Creators      []string         `json:"creators"`
	Supplier      string           `json:"supplier"`
	Components    []ComponentSpec  `json:"components"`
	Edges         []EdgeSpec       `json:"edges"`
}

// ComponentSpec is one fixture component entry.
type ComponentSpec struct {
	Name      string       `json:"name"`
	Version   string       `json:"version"`
	Group     string       `json:"group"`
	Ecosystem string       `json:"ecosystem"`
	PURL      string       `json:"purl"`
	CPEs      []string     `json:"cpes"`
	SWID      string       `json:"swid"`
	FormatID  string       `json:"format_id"`
	Licenses  []string     `json:"licenses"`
	Supplier  string       `json:"supplier"`
	Hashes    []HashSpec   `json:"hashes"`
	Vulns     []VulnSpec   `json:"vulnerabilities"`
}

// HashSpec is one fixture hash entry; Algorithm is a raw CycloneDX
// algorithm string (e.g. "SHA-256", "MD5").
type HashSpec struct {
	Algorithm string `json:"algorithm"`
	Value     string `json:"value"`
}

// VulnSpec is one fixture vulnerability entry.
type VulnSpec struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
}

// EdgeSpec is one fixture dependency edge, referencing components by
// their fixture index (0-based) rather than by CID, since the fixture
// author doesn't know the derived CID ahead of time.
type EdgeSpec struct {
	From         int    `json:"from"`
	To           int    `json:"to"`
	Relationship string `json:"relationship"`
}

// Loader is a sbomparse.Parser that decodes Document JSON into a
// model.NormalizedSBOM.
type Loader struct{}

// Parse implements sbomparse.Parser.
func (Loader) Parse(_ context.Context, data []byte) (*model.NormalizedSBOM, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixture: decoding document: %w", err)
	}

	set := model.NewComponentSet()
	cids := make([]string, len(doc.Components))
	for i, cs := range doc.Components {
		comp, err := toComponent(cs)
		if err != nil {
			return nil, fmt.Errorf("fixture: component %d: %w", i, err)
		}
		set.Put(comp)
		cids[i] = comp.CID.Value
	}

	edges := make([]model.DependencyEdge, 0, len(doc.Edges))
	for _, es := range doc.Edges {
		if es.From < 0 || es.From >= len(cids) || es.To < 0 || es.To >= len(cids) {
			return nil, fmt.Errorf("fixture: edge references out-of-range component index")
		}
		edges = append(edges, model.DependencyEdge{
			From:         cids[es.From],
			To:           cids[es.To],
			Relationship: relationshipFromString(es.Relationship),
		})
	}

	return &model.NormalizedSBOM{
		Metadata: model.DocumentMetadata{
			Format:        doc.Format,
			FormatVersion: doc.FormatVersion,
			SerialNumber:  doc.SerialNumber,
			Creators:      doc.Creators,
			Supplier:      doc.Supplier,
		},
		Components: set,
		Edges:      edges,
	}, nil
}

func toComponent(cs ComponentSpec) (*model.Component, error) {
	ids := model.Identifiers{CPEs: cs.CPEs, SWID: cs.SWID, FormatID: cs.FormatID}
	if cs.PURL != "" {
		p, err := purl.FromString(cs.PURL)
		if err != nil {
			return nil, fmt.Errorf("parsing purl %q: %w", cs.PURL, err)
		}
		ids.PURL = &p
	}

	id, _ := cid.Canonicalize(ids, cs.Name, cs.Version, cs.Group)

	licenses := make([]model.License, 0, len(cs.Licenses))
	for _, l := range cs.Licenses {
		licenses = append(licenses, model.License(l))
	}

	hashes := make([]model.Hash, 0, len(cs.Hashes))
	for _, h := range cs.Hashes {
		hashes = append(hashes, model.Hash{Algorithm: hashAlgoFromString(h.Algorithm), Value: h.Value})
	}

	vulns := make([]model.VulnerabilityReference, 0, len(cs.Vulns))
	for _, v := range cs.Vulns {
		vulns = append(vulns, model.VulnerabilityReference{ID: v.ID, Severity: severityFromString(v.Severity)})
	}

	ecosystem := model.FromPURLType(cs.Ecosystem)
	if ids.PURL != nil && cs.Ecosystem == "" {
		ecosystem = model.FromPURLType(ids.PURL.Type)
	}

	return &model.Component{
		CID:              id,
		Name:             cs.Name,
		Version:          cs.Version,
		Group:            cs.Group,
		Ecosystem:        ecosystem,
		DeclaredLicenses: licenses,
		Supplier:         cs.Supplier,
		Hashes:           hashes,
		Vulnerabilities:  vulns,
		Identifiers:      ids,
	}, nil
}

// hashAlgoFromString passes the fixture's algorithm string straight
// through: cdx.HashAlgorithm is itself a string type, and the fixture
// format uses the same spellings CycloneDX does ("SHA-256", "MD5", ...).
func hashAlgoFromString(s string) cdx.HashAlgorithm {
	return cdx.HashAlgorithm(s)
}

func relationshipFromString(s string) model.RelationshipType {
	switch s {
	case "depends_on", "":
		return model.RelationshipDependsOn
	case "contains":
		return model.RelationshipContains
	case "describes":
		return model.RelationshipDescribes
	case "optional_dependency_of":
		return model.RelationshipOptionalDependencyOf
	case "dev_dependency_of":
		return model.RelationshipDevDependencyOf
	case "provided_by":
		return model.RelationshipProvidedBy
	default:
		return model.RelationshipOther
	}
}

func severityFromString(s string) model.Severity {
	switch s {
	case "CRITICAL":
		return model.SeverityCritical
	case "HIGH":
		return model.SeverityHigh
	case "MEDIUM":
		return model.SeverityMedium
	case "LOW":
		return model.SeverityLow
	default:
		return model.SeverityUnknown
	}
}
