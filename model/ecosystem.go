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

import "github.com/ossf/osv-schema/bindings/go/osvschema"

// Ecosystem identifies the package ecosystem a Component belongs to
// (npm, PyPI, crates.io, ...). It reuses osvschema's string-based
// ecosystem type: any value outside the recognized set is still a
// valid Ecosystem, which is how a Go string type naturally expresses
// a closed enum with an Unknown(string) escape, without a sum type.
type Ecosystem osvschema.Ecosystem

// Recognized ecosystems. Not exhaustive of every osvschema ecosystem;
// these are the ones the matching and indexing layers special-case.
const (
	EcosystemNPM       Ecosystem = Ecosystem(osvschema.EcosystemNPM)
	EcosystemPyPI      Ecosystem = Ecosystem(osvschema.EcosystemPyPI)
	EcosystemCratesIO  Ecosystem = Ecosystem(osvschema.EcosystemCratesIO)
	EcosystemMaven     Ecosystem = Ecosystem(osvschema.EcosystemMaven)
	EcosystemGo        Ecosystem = Ecosystem(osvschema.EcosystemGo)
	EcosystemNuGet     Ecosystem = Ecosystem(osvschema.EcosystemNuGet)
	EcosystemRubyGems  Ecosystem = Ecosystem(osvschema.EcosystemRubyGems)
	EcosystemPackagist Ecosystem = Ecosystem(osvschema.EcosystemPackagist)
	EcosystemDebian    Ecosystem = Ecosystem(osvschema.EcosystemDebian)
	EcosystemAlpine    Ecosystem = Ecosystem(osvschema.EcosystemAlpine)
	EcosystemUnknown   Ecosystem = ""
)

var known = map[Ecosystem]bool{
	EcosystemNPM: true, EcosystemPyPI: true, EcosystemCratesIO: true,
	EcosystemMaven: true, EcosystemGo: true, EcosystemNuGet: true,
	EcosystemRubyGems: true, EcosystemPackagist: true, EcosystemDebian: true,
	EcosystemAlpine: true,
}

// IsKnown reports whether e is one of the ecosystems this engine
// special-cases for normalization. Unrecognized ecosystems are still
// valid Ecosystem values (the Unknown(string) escape) and fall back to
// default normalization rules everywhere one is consulted.
func (e Ecosystem) IsKnown() bool { return known[e] }

// String returns the underlying ecosystem string, or "unknown" if empty.
func (e Ecosystem) String() string {
	if e == EcosystemUnknown {
		return "unknown"
	}
	return string(e)
}

// FromPURLType maps a PURL type string (e.g. "npm", "pypi", "cargo")
// to the corresponding Ecosystem. PURL types and OSV ecosystem names
// disagree on spelling for a handful of ecosystems, so this is an
// explicit table rather than a case-folded guess.
func FromPURLType(purlType string) Ecosystem {
	switch purlType {
	case "npm":
		return EcosystemNPM
	case "pypi":
		return EcosystemPyPI
	case "cargo":
		return EcosystemCratesIO
	case "maven":
		return EcosystemMaven
	case "golang":
		return EcosystemGo
	case "nuget":
		return EcosystemNuGet
	case "gem":
		return EcosystemRubyGems
	case "composer":
		return EcosystemPackagist
	case "deb":
		return EcosystemDebian
	case "apk":
		return EcosystemAlpine
	case "":
		return EcosystemUnknown
	default:
		return Ecosystem(purlType)
	}
}
