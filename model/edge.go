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

// RelationshipType enumerates how one component depends on another.
// The vocabulary is a superset of CycloneDX's dependsOn edges and
// SPDX's relationship types, collapsed onto the handful of kinds the
// Graph Diff and Change Computers actually branch on (spec.md §3, §4.6).
type RelationshipType int

// RelationshipType values.
const (
	RelationshipDependsOn RelationshipType = iota
	RelationshipContains
	RelationshipDescribes
	RelationshipOptionalDependencyOf
	RelationshipDevDependencyOf
	RelationshipProvidedBy
	RelationshipOther
)

func (r RelationshipType) String() string {
	switch r {
	case RelationshipDependsOn:
		return "depends_on"
	case RelationshipContains:
		return "contains"
	case RelationshipDescribes:
		return "describes"
	case RelationshipOptionalDependencyOf:
		return "optional_dependency_of"
	case RelationshipDevDependencyOf:
		return "dev_dependency_of"
	case RelationshipProvidedBy:
		return "provided_by"
	default:
		return "other"
	}
}

// DependencyEdge is one directed edge of a NormalizedSBOM's dependency
// graph. From and To are CID string values (see model.CID's equality
// note): the graph is keyed and compared on those strings throughout
// the engine, never on the CID struct itself. The graph may be cyclic
// and may hold multiple edges between the same pair with different
// relationships (spec.md §3).
type DependencyEdge struct {
	From         string
	To           string
	Relationship RelationshipType
	Scope        string // e.g. "runtime", "test", "build"; empty when unspecified
}
