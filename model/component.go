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

package model

import (
	"time"

	"github.com/mitchellh/hashstructure/v2"
)

// Staleness carries the package-freshness signals an enrichment
// collaborator (spec.md §6) may attach to a Component: how far behind
// the latest release the declared version is, and whether the
// component's upstream has reached end of life.
type Staleness struct {
	LatestVersion  string
	VersionsBehind int
	EOL            bool
	EOLDate        *time.Time
}

// Component is one inventory entry of a NormalizedSBOM: a single
// package/library/application/file the document asserts is present,
// regardless of which source format (CycloneDX or SPDX) it was parsed
// from (spec.md §3).
type Component struct {
	CID CID `hash:"ignore"`

	Name        string
	Version     string
	Group       string
	Type        ComponentType
	Ecosystem   Ecosystem
	Description string

	DeclaredLicenses  []License
	ConcludedLicenses []License

	Supplier string

	Hashes             []Hash
	ExternalReferences []ExternalReference

	Vulnerabilities []VulnerabilityReference
	VEX             *VEXStatus

	Staleness *Staleness

	Identifiers Identifiers `hash:"ignore"`

	// Extra carries format-specific fields neither CycloneDX nor SPDX
	// share with the other, preserved opaquely so a diff computed on
	// the normalized model never silently drops source data (spec.md
	// §3's "format extension" note). Not hashed: two otherwise-identical
	// components parsed from different formats must still compare equal.
	Extra map[string]any `hash:"ignore"`
}

// ContentHash returns a stable 64-bit hash over the component's
// semantically significant fields, used by the Incremental Cache and
// by the fast equal-hash short circuit in the Diff Engine (spec.md
// §4.10). Identity fields (CID, Identifiers) and format-extension data
// are excluded: two components are "the same content" when every
// field a change computer actually looks at agrees, independent of
// how that content was identified or which format produced it.
func (c *Component) ContentHash() (uint64, error) {
	return hashstructure.Hash(c, hashstructure.FormatV2, nil)
}

// HasVulnerabilities reports whether the component carries any
// vulnerability reference, actionable or not.
func (c *Component) HasVulnerabilities() bool {
	return len(c.Vulnerabilities) > 0
}

// ActionableVulnerabilities returns the subset of c's vulnerabilities
// not suppressed by VEX (component-level VEX, when set, overrides a
// vulnerability's own VEX statement).
func (c *Component) ActionableVulnerabilities() []VulnerabilityReference {
	if c.VEX != nil {
		if !c.VEX.Actionable() {
			return nil
		}
		return c.Vulnerabilities
	}
	var out []VulnerabilityReference
	for _, v := range c.Vulnerabilities {
		if v.Actionable() {
			out = append(out, v)
		}
	}
	return out
}
