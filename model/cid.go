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

// IDSource records which tier of the canonical-id derivation produced
// a CID (spec.md §4.1). It is metadata only: equality and hashing of a
// CID are on its string value, never on the source tag.
type IDSource int

// IDSource values, ordered by stability (most to least stable).
const (
	IDSourcePURL IDSource = iota
	IDSourceCPE
	IDSourceSWID
	IDSourceNameVersion
	IDSourceSynthetic
	IDSourceFormatSpecific
)

// String returns a human-readable label for the source tier.
func (s IDSource) String() string {
	switch s {
	case IDSourcePURL:
		return "purl"
	case IDSourceCPE:
		return "cpe"
	case IDSourceSWID:
		return "swid"
	case IDSourceNameVersion, IDSourceSynthetic:
		return "synthetic"
	case IDSourceFormatSpecific:
		return "format-specific"
	default:
		return "unknown"
	}
}

// CID is a canonical component identity, carried by Value alone: the
// engine keys maps and compares components by Value, and Source and
// Stable are metadata. Comparing two CID structs with == also compares
// Source and Stable, so identity checks compare Value.
type CID struct {
	Value  string
	Source IDSource
	Stable bool
}

// String returns the CID's canonical string value, satisfying
// fmt.Stringer and making a CID usable directly as a map key's
// logical identity in log output.
func (c CID) String() string { return c.Value }

// Empty reports whether c is the zero CID.
func (c CID) Empty() bool { return c.Value == "" }
