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

import cdx "github.com/CycloneDX/cyclonedx-go"

// ExternalReference is a typed URL attached to a Component or to the
// document itself (e.g. VCS location, advisories feed, security
// contact). The type enum is CycloneDX's, reused rather than
// reinvented since both source formats' external-link vocabularies
// map onto it.
type ExternalReference struct {
	URL     string
	Type    cdx.ExternalReferenceType
	Comment string
}

// ComponentType mirrors CycloneDX's component type enum (application,
// library, container, operating-system, ...).
type ComponentType = cdx.ComponentType

// Component type constants re-exported for callers that don't want to
// import cyclonedx-go directly.
const (
	ComponentTypeApplication = cdx.ComponentTypeApplication
	ComponentTypeFramework   = cdx.ComponentTypeFramework
	ComponentTypeLibrary     = cdx.ComponentTypeLibrary
	ComponentTypeContainer   = cdx.ComponentTypeContainer
	ComponentTypeOS          = cdx.ComponentTypeOS
	ComponentTypeDevice      = cdx.ComponentTypeDevice
	ComponentTypeFirmware    = cdx.ComponentTypeFirmware
	ComponentTypeFile        = cdx.ComponentTypeFile
)
