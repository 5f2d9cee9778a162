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

package quality

import (
	"fmt"
	"sort"

	"github.com/sbom-tool/sbom-tools/model"
)

// Recommendation is one actionable suggestion for improving the
// document's quality score, ranked by Priority (1 = most urgent) and,
// within a priority tier, by estimated score Impact descending.
type Recommendation struct {
	Priority int
	Impact   float64
	Message  string
}

// recommendations walks the scored categories and the raw SBOM to
// produce a prioritized suggestion list: EOL components and missing
// versions at priority 1; weak hashes, missing identifiers, a missing
// tool creator and dependency cycles at priority 2; high fan-out
// complexity, missing licenses, NOASSERTION, and missing VCS URLs at
// 3; non-standard licenses, outdated components and missing hashes at
// 4; missing supplier and signature suggestions at 5. Compliance
// errors are not an input and yield no recommendation, and
// identifiers are checked for presence only, not for validity.
func recommendations(sbom *model.NormalizedSBOM, categories map[Category]CategoryScore, overall float64) []Recommendation {
	var out []Recommendation

	comps := sbom.Components.All()
	n := len(comps)

	if hasEOLComponent(sbom) {
		out = append(out, Recommendation{Priority: 1, Impact: 30, Message: "one or more components have reached end of life; plan migration off them"})
	}
	if n > 0 {
		missingVersion := 0
		for _, c := range comps {
			if c.Version == "" {
				missingVersion++
			}
		}
		if missingVersion > 0 {
			out = append(out, Recommendation{
				Priority: 1,
				Impact:   float64(missingVersion) / float64(n) * 20,
				Message:  fmt.Sprintf("%d component(s) have no declared version", missingVersion),
			})
		}
	}

	if hs := hashState(sbom); hs == hashStateWeakOnly {
		out = append(out, Recommendation{Priority: 2, Impact: 12, Message: "replace weak hash algorithms (MD5/SHA-1) with SHA-256 or stronger"})
	} else if hs == hashStateNone {
		out = append(out, Recommendation{Priority: 4, Impact: 10, Message: "attach cryptographic hashes to components for integrity verification"})
	}

	if n > 0 {
		missingID := 0
		for _, c := range comps {
			if c.Identifiers.PURL == nil && len(c.Identifiers.CPEs) == 0 && c.Identifiers.SWID == "" {
				missingID++
			}
		}
		if missingID > 0 {
			out = append(out, Recommendation{
				Priority: 2,
				Impact:   float64(missingID) / float64(n) * 15,
				Message:  fmt.Sprintf("%d component(s) have no PURL, CPE, or SWID identifier", missingID),
			})
		}
	}

	if len(sbom.Metadata.Creators) == 0 {
		out = append(out, Recommendation{Priority: 2, Impact: 8, Message: "add at least one tool or organization creator to the document"})
	}

	if hasDependencyCycle(sbom) {
		out = append(out, Recommendation{Priority: 2, Impact: 10, Message: "break cyclic dependency relationships in the component graph"})
	}
	if dq, ok := categories[CategoryDependency]; ok && dq.Available && dq.SubMetrics["bounded_fan_out"] < 0.5 {
		out = append(out, Recommendation{Priority: 3, Impact: 6, Message: "reduce high average dependency fan-out where practical"})
	}

	if n > 0 {
		missingLicense := 0
		noassertion := 0
		missingVCS := 0
		for _, c := range comps {
			if len(model.LicenseSet(c.DeclaredLicenses)) == 0 && len(model.LicenseSet(c.ConcludedLicenses)) == 0 {
				missingLicense++
			}
			for _, l := range c.DeclaredLicenses {
				if string(l) == model.NoAssertion {
					noassertion++
				}
			}
			hasVCS := false
			for _, ref := range c.ExternalReferences {
				if ref.Type == "vcs" {
					hasVCS = true
				}
			}
			if !hasVCS {
				missingVCS++
			}
		}
		if missingLicense > 0 {
			out = append(out, Recommendation{
				Priority: 3,
				Impact:   float64(missingLicense) / float64(n) * 15,
				Message:  fmt.Sprintf("%d component(s) have no license information", missingLicense),
			})
		}
		if noassertion > 0 {
			out = append(out, Recommendation{
				Priority: 3,
				Impact:   float64(noassertion) / float64(n) * 10,
				Message:  fmt.Sprintf("%d component(s) declare NOASSERTION instead of a real license", noassertion),
			})
		}
		if missingVCS == n {
			out = append(out, Recommendation{Priority: 3, Impact: 5, Message: "attach VCS source locations to components for traceability"})
		}
	}

	if lq, ok := categories[CategoryLicenses]; ok && lq.Available && lq.SubMetrics["standard_expression"] < 0.8 {
		out = append(out, Recommendation{Priority: 4, Impact: 5, Message: "prefer standard SPDX license expressions over free-text license fields"})
	}
	if lc, ok := categories[CategoryLifecycle]; ok && lc.Available && lc.SubMetrics["healthy"] < 0.7 {
		out = append(out, Recommendation{Priority: 4, Impact: 7, Message: "upgrade components that are significantly behind their latest release"})
	}

	if n > 0 {
		missingSupplier := 0
		for _, c := range comps {
			if c.Supplier == "" {
				missingSupplier++
			}
		}
		if missingSupplier > 0 {
			out = append(out, Recommendation{
				Priority: 5,
				Impact:   float64(missingSupplier) / float64(n) * 5,
				Message:  fmt.Sprintf("%d component(s) have no declared supplier", missingSupplier),
			})
		}
	}
	if !strongAttestation(sbom) {
		out = append(out, Recommendation{Priority: 5, Impact: 3, Message: "consider attaching signed provenance attestations to the document"})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Impact > out[j].Impact
	})
	return out
}

// strongAttestation is a placeholder signal: this engine has no
// signature-verification collaborator in scope, so it always reports
// false, surfacing the priority-5 suggestion unconditionally. Kept as
// a named function rather than an inline constant so a future
// signature-aware enrichment client has an obvious place to plug in.
func strongAttestation(sbom *model.NormalizedSBOM) bool {
	_ = sbom
	return false
}
