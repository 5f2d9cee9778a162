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

// DocumentMetadata is the document-level envelope of a NormalizedSBOM:
// the facts a Compliance Checker and Quality Scorer inspect before
// ever looking at a single component (spec.md §4.13, §4.14).
type DocumentMetadata struct {
	Format          string // "cyclonedx" or "spdx"
	FormatVersion   string
	SerialNumber    string
	Creators        []string
	Supplier        string
	Timestamp       *time.Time
	PrimaryProduct  string // CID.Value of the document's described/root component, if any
	SecurityContact string
	SupportEndDate  *time.Time
	VulnerabilityDisclosureURL string
}

// ComponentSet is an insertion-ordered map from CID string value to
// Component. Go map iteration order is randomized, and this engine
// needs deterministic output (matching order, diff ordering); rather
// than sort defensively at every call site, the set carries its own
// insertion order once, the way the teacher's own package index keeps
// a parallel key slice beside its bucket maps.
type ComponentSet struct {
	byID  map[string]*Component
	order []string
}

// NewComponentSet returns an empty ComponentSet.
func NewComponentSet() *ComponentSet {
	return &ComponentSet{byID: make(map[string]*Component)}
}

// Put inserts or replaces the component at c.CID.Value. Replacing an
// existing id keeps its original position in Order.
func (s *ComponentSet) Put(c *Component) {
	id := c.CID.Value
	if _, ok := s.byID[id]; !ok {
		s.order = append(s.order, id)
	}
	s.byID[id] = c
}

// Get looks up a component by CID string value.
func (s *ComponentSet) Get(id string) (*Component, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Len returns the number of components in the set.
func (s *ComponentSet) Len() int { return len(s.order) }

// Order returns CID string values in insertion order. The returned
// slice is owned by the caller to range over, not to mutate.
func (s *ComponentSet) Order() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// All returns components in insertion order.
func (s *ComponentSet) All() []*Component {
	out := make([]*Component, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// NormalizedSBOM is the format-agnostic in-memory model every
// downstream package (cid, componentindex, matching, change, graphdiff,
// cost, diffengine, ...) operates on. A parser collaborator (spec.md
// §6's sbomparse.Parser) is responsible for producing one of these;
// everything past that boundary is format-blind.
type NormalizedSBOM struct {
	Metadata   DocumentMetadata
	Components *ComponentSet
	Edges      []DependencyEdge

	// CollisionCount tracks how many distinct source-document entries
	// were folded onto the same CID during canonicalization (spec.md
	// §4.1's "instability" note) — a quality signal, not an error.
	CollisionCount int
}

// SectionHashes are the four independently-hashed sections of a
// NormalizedSBOM the Incremental Cache compares to decide whether a
// partial-hit recompute can skip a given change computer (spec.md's
// "partial hit" tier).
type SectionHashes struct {
	Components      uint64
	Dependencies    uint64
	Licenses        uint64
	Vulnerabilities uint64
}

// ContentHash returns a stable 64-bit hash over the whole document,
// used by the Diff Engine's fast equal-hash short circuit: when both
// documents hash identically, the diff is empty by construction and
// every downstream stage is skipped.
func (s *NormalizedSBOM) ContentHash() (uint64, error) {
	// hashstructure skips unexported fields, so the ComponentSet is
	// hashed through its exported component list.
	type document struct {
		Metadata       DocumentMetadata
		Components     []*Component
		Edges          []DependencyEdge
		CollisionCount int
	}
	var comps []*Component
	if s.Components != nil {
		comps = s.Components.All()
	}
	return hashstructure.Hash(document{s.Metadata, comps, s.Edges, s.CollisionCount}, hashstructure.FormatV2, nil)
}

// Sections computes the four section hashes the Incremental Cache
// keys partial hits on. Each hash covers only the components' relevant
// slice/field so that, e.g., a license-only edit doesn't invalidate a
// cached vulnerability diff.
func (s *NormalizedSBOM) Sections() (SectionHashes, error) {
	var (
		sh  SectionHashes
		err error
	)
	comps := s.Components.All()

	type compIdentity struct {
		ID      string
		Name    string
		Version string
		Group   string
		Type    ComponentType
	}
	idents := make([]compIdentity, 0, len(comps))
	for _, c := range comps {
		idents = append(idents, compIdentity{c.CID.Value, c.Name, c.Version, c.Group, c.Type})
	}
	if sh.Components, err = hashstructure.Hash(idents, hashstructure.FormatV2, nil); err != nil {
		return sh, err
	}

	if sh.Dependencies, err = hashstructure.Hash(s.Edges, hashstructure.FormatV2, nil); err != nil {
		return sh, err
	}

	type licenseRow struct {
		ID        string
		Declared  []License
		Concluded []License
	}
	lics := make([]licenseRow, 0, len(comps))
	for _, c := range comps {
		lics = append(lics, licenseRow{c.CID.Value, c.DeclaredLicenses, c.ConcludedLicenses})
	}
	if sh.Licenses, err = hashstructure.Hash(lics, hashstructure.FormatV2, nil); err != nil {
		return sh, err
	}

	type vulnRow struct {
		ID    string
		Vulns []VulnerabilityReference
	}
	vulns := make([]vulnRow, 0, len(comps))
	for _, c := range comps {
		vulns = append(vulns, vulnRow{c.CID.Value, c.Vulnerabilities})
	}
	sh.Vulnerabilities, err = hashstructure.Hash(vulns, hashstructure.FormatV2, nil)
	return sh, err
}
