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

import "github.com/sbom-tool/sbom-tools/purl"

// Identifiers bundles every identity signal a parser may have attached
// to a Component. cid.Canonicalize consumes this bundle tier by tier
// (spec.md §4.1); nothing here is itself a canonical id.
type Identifiers struct {
	// PURL is the package's Package URL, if the source document carried one.
	PURL *purl.PackageURL
	// CPEs lists CPE 2.3 strings (formatted or URI form); CPE parsing
	// itself is the concern of an external collaborator, these are
	// carried opaquely.
	CPEs []string
	// SWID is an ISO SWID tag id, if present.
	SWID string
	// FormatID is the identifier the source format itself uses for this
	// component (e.g. an SPDX SPDXID, or a CycloneDX bom-ref), used only
	// as the last-resort tier.
	FormatID string
	// Aliases lists other identifiers this component is believed to be
	// known by elsewhere (vendor-specific catalog ids, etc.) — not used
	// for CID derivation, but available to matchers and cross-ecosystem
	// lookups as extra signal.
	Aliases []string
}
