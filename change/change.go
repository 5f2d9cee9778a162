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

// Package change implements the four independent, pure change
// computers that turn a component pairing into concrete diffs:
// components, dependencies, licenses, and vulnerabilities (spec.md
// §4.7). Each is a pure function of (old, new, pairing); none mutate
// their inputs or depend on each other's output.
package change

import (
	"sort"

	"github.com/sbom-tool/sbom-tools/cost"
	"github.com/sbom-tool/sbom-tools/matcher"
	"github.com/sbom-tool/sbom-tools/model"
)

// FieldChange names one field a Modified component's value differs on.
type FieldChange string

// FieldChange values.
const (
	FieldVersion  FieldChange = "version"
	FieldLicense  FieldChange = "license"
	FieldSupplier FieldChange = "supplier"
	FieldHashes   FieldChange = "hashes"
)

// ComponentChange is one entry of the Components change set.
type ComponentChange struct {
	OldID, NewID string
	Kind         string // "added", "removed", "modified"
	Fields       []FieldChange
	Cost         float64
	Match        *matcher.Explanation
}

// ComponentChanges holds every component-level change between two SBOMs.
type ComponentChanges struct {
	Added    []ComponentChange
	Removed  []ComponentChange
	Modified []ComponentChange
}

// Components computes component-level changes from a pairing. pairing
// maps every old CID to a new CID or "" (None, i.e. removed). explain,
// if non-nil, supplies match info for Modified entries.
func Components(old, new *model.NormalizedSBOM, pairing map[string]string, c cost.Config, explain func(oldID, newID string) *matcher.Explanation) ComponentChanges {
	var out ComponentChanges
	pairedNew := make(map[string]bool, len(pairing))

	for _, oldID := range old.Components.Order() {
		newID, mapped := pairing[oldID]
		if !mapped || newID == "" {
			out.Removed = append(out.Removed, ComponentChange{
				OldID: oldID,
				Kind:  "removed",
				Cost:  c.ComponentRemoved,
			})
			continue
		}
		pairedNew[newID] = true

		oldComp, _ := old.Components.Get(oldID)
		newComp, _ := new.Components.Get(newID)
		if oldComp == nil || newComp == nil {
			continue
		}
		oldHash, _ := oldComp.ContentHash()
		newHash, _ := newComp.ContentHash()
		if oldHash == newHash {
			continue
		}

		fields, fieldCost := diffFields(oldComp, newComp, c)
		if len(fields) == 0 {
			continue
		}
		mc := ComponentChange{
			OldID:  oldID,
			NewID:  newID,
			Kind:   "modified",
			Fields: fields,
			Cost:   fieldCost,
		}
		if explain != nil {
			mc.Match = explain(oldID, newID)
		}
		out.Modified = append(out.Modified, mc)
	}

	for _, newID := range new.Components.Order() {
		if !pairedNew[newID] {
			out.Added = append(out.Added, ComponentChange{
				NewID: newID,
				Kind:  "added",
				Cost:  c.ComponentAdded,
			})
		}
	}
	return out
}

func diffFields(old, new *model.Component, c cost.Config) ([]FieldChange, float64) {
	var fields []FieldChange
	var total float64

	if old.Version != new.Version {
		fields = append(fields, FieldVersion)
		ecosystem := old.Ecosystem
		if !ecosystem.IsKnown() {
			ecosystem = new.Ecosystem
		}
		total += c.VersionChangeCost(old.Version, new.Version, ecosystem)
	}

	oldLic := model.LicenseSet(old.DeclaredLicenses)
	newLic := model.LicenseSet(new.DeclaredLicenses)
	if !oldLic.Equals(newLic) {
		fields = append(fields, FieldLicense)
		total += c.LicenseChanged
	}

	if old.Supplier != new.Supplier {
		fields = append(fields, FieldSupplier)
		total += c.SupplierChanged
	}

	// Hash mismatch is only meaningful when the version is unchanged:
	// a version bump is expected to change hashes, so that alone is
	// never an integrity signal.
	if old.Version == new.Version && model.HashesDisjoint(old.Hashes, new.Hashes) {
		fields = append(fields, FieldHashes)
		total += c.HashMismatch
	}

	return fields, total
}

// DependencyChanges holds edges present only on one side, keyed on
// endpoints remapped through the pairing so a renamed component isn't
// reported as a removed+added edge.
type DependencyChanges struct {
	Added   []model.DependencyEdge
	Removed []model.DependencyEdge
}

// Dependencies computes edge-level changes. Old edges' endpoints are
// remapped through pairing before comparison; an edge whose endpoint
// has no pairing entry (i.e. was removed) is dropped rather than
// remapped.
func Dependencies(old, new *model.NormalizedSBOM, pairing map[string]string) DependencyChanges {
	remap := func(id string) (string, bool) {
		if mapped, ok := pairing[id]; ok && mapped != "" {
			return mapped, true
		}
		return "", false
	}

	type edgeKey struct {
		from, to string
		rel      model.RelationshipType
	}

	remappedOld := make(map[edgeKey]model.DependencyEdge)
	for _, e := range old.Edges {
		from, ok1 := remap(e.From)
		to, ok2 := remap(e.To)
		if !ok1 || !ok2 {
			continue
		}
		remappedOld[edgeKey{from, to, e.Relationship}] = model.DependencyEdge{
			From: from, To: to, Relationship: e.Relationship, Scope: e.Scope,
		}
	}

	newSet := make(map[edgeKey]model.DependencyEdge, len(new.Edges))
	for _, e := range new.Edges {
		newSet[edgeKey{e.From, e.To, e.Relationship}] = e
	}

	var changes DependencyChanges
	for k, e := range newSet {
		if _, ok := remappedOld[k]; !ok {
			changes.Added = append(changes.Added, e)
		}
	}
	for k, e := range remappedOld {
		if _, ok := newSet[k]; !ok {
			changes.Removed = append(changes.Removed, e)
		}
	}
	sortEdges(changes.Added)
	sortEdges(changes.Removed)
	return changes
}

func sortEdges(edges []model.DependencyEdge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
}

// LicenseChanges holds license expressions present only on one side,
// each with the component names that carry it.
type LicenseChanges struct {
	Added   map[string][]string
	Removed map[string][]string
}

// Licenses computes license-set changes between two SBOMs, independent
// of any pairing: it compares the set of asserted license expressions
// document-wide.
func Licenses(old, new *model.NormalizedSBOM) LicenseChanges {
	oldMap := licenseToComponents(old)
	newMap := licenseToComponents(new)

	changes := LicenseChanges{Added: make(map[string][]string), Removed: make(map[string][]string)}
	for lic, names := range newMap {
		if _, ok := oldMap[lic]; !ok {
			changes.Added[lic] = names
		}
	}
	for lic, names := range oldMap {
		if _, ok := newMap[lic]; !ok {
			changes.Removed[lic] = names
		}
	}
	return changes
}

func licenseToComponents(sbom *model.NormalizedSBOM) map[string][]string {
	out := make(map[string][]string)
	for _, c := range sbom.Components.All() {
		for _, lic := range c.DeclaredLicenses {
			if lic.IsAssertion() {
				out[string(lic)] = append(out[string(lic)], c.Name)
			}
		}
	}
	return out
}
