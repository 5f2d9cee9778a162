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

import "github.com/sbom-tool/sbom-tools/model"

// completeness scores the proportion of components carrying each of
// the seven field-level signals spec.md §4.14 names, plus the
// document-level creator/timestamp/serial trio, averaged into one
// 0-100 score.
func completeness(sbom *model.NormalizedSBOM) CategoryScore {
	comps := sbom.Components.All()
	n := len(comps)
	sub := map[string]float64{}
	if n > 0 {
		sub["version"] = proportion(comps, func(c *model.Component) bool { return c.Version != "" })
		sub["purl"] = proportion(comps, func(c *model.Component) bool { return c.Identifiers.PURL != nil })
		sub["cpe"] = proportion(comps, func(c *model.Component) bool { return len(c.Identifiers.CPEs) > 0 })
		sub["supplier"] = proportion(comps, func(c *model.Component) bool { return c.Supplier != "" })
		sub["hashes"] = proportion(comps, func(c *model.Component) bool { return len(c.Hashes) > 0 })
		sub["licenses"] = proportion(comps, func(c *model.Component) bool {
			return len(model.LicenseSet(c.DeclaredLicenses)) > 0 || len(model.LicenseSet(c.ConcludedLicenses)) > 0
		})
		sub["description"] = proportion(comps, func(c *model.Component) bool { return c.Description != "" })
	}
	sub["doc_creator"] = boolScore(len(sbom.Metadata.Creators) > 0)
	sub["doc_timestamp"] = boolScore(sbom.Metadata.Timestamp != nil)
	sub["doc_serial"] = boolScore(sbom.Metadata.SerialNumber != "")

	return CategoryScore{Score: average(sub) * 100, Available: true, SubMetrics: sub}
}

// identifierQuality scores how consistently components carry a strong
// (PURL/CPE/SWID) identifier versus none at all, plus the proportion
// whose identifier passed basic validity (non-empty, well-formed PURL).
func identifierQuality(sbom *model.NormalizedSBOM) CategoryScore {
	comps := sbom.Components.All()
	if len(comps) == 0 {
		return CategoryScore{Available: true, Score: 100, SubMetrics: map[string]float64{}}
	}
	sub := map[string]float64{
		"has_identifier": proportion(comps, func(c *model.Component) bool {
			return c.Identifiers.PURL != nil || len(c.Identifiers.CPEs) > 0 || c.Identifiers.SWID != ""
		}),
		"purl_valid": proportion(comps, func(c *model.Component) bool {
			return c.Identifiers.PURL == nil || c.Identifiers.PURL.Type != ""
		}),
	}
	return CategoryScore{Score: average(sub) * 100, Available: true, SubMetrics: sub}
}

// licenseQuality scores the proportion of components with an
// assertive (non-NOASSERTION/NONE) license and the proportion whose
// declared license is a recognized SPDX-style expression rather than a
// free-text blob — approximated here by checking it carries no
// whitespace-heavy prose (a short token/expression shape).
func licenseQuality(sbom *model.NormalizedSBOM) CategoryScore {
	comps := sbom.Components.All()
	if len(comps) == 0 {
		return CategoryScore{Available: true, Score: 100, SubMetrics: map[string]float64{}}
	}
	sub := map[string]float64{
		"has_license": proportion(comps, func(c *model.Component) bool {
			return len(model.LicenseSet(c.DeclaredLicenses)) > 0 || len(model.LicenseSet(c.ConcludedLicenses)) > 0
		}),
		"standard_expression": proportion(comps, func(c *model.Component) bool {
			for _, l := range c.DeclaredLicenses {
				if l.IsAssertion() && looksStandard(string(l)) {
					return true
				}
			}
			return len(c.DeclaredLicenses) == 0
		}),
	}
	return CategoryScore{Score: average(sub) * 100, Available: true, SubMetrics: sub}
}

func looksStandard(expr string) bool {
	if len(expr) == 0 || len(expr) > 64 {
		return false
	}
	for _, r := range expr {
		if r == ' ' {
			continue
		}
		if !(r == '-' || r == '.' || r == '+' || r == '(' || r == ')' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// vulnerabilityDocQuality is None when sbom carries no vulnerability
// data at all (spec.md §4.14); otherwise it scores the proportion of
// reported vulnerabilities carrying a severity, a CVSS score, and
// either a remediation or VEX statement.
func vulnerabilityDocQuality(sbom *model.NormalizedSBOM) CategoryScore {
	var vulns []model.VulnerabilityReference
	for _, c := range sbom.Components.All() {
		vulns = append(vulns, c.Vulnerabilities...)
	}
	if len(vulns) == 0 {
		return CategoryScore{Available: false}
	}
	hasSeverity, hasCVSS, hasRemediation := 0, 0, 0
	for _, v := range vulns {
		if v.Severity != model.SeverityUnknown {
			hasSeverity++
		}
		if len(v.CVSSScores) > 0 {
			hasCVSS++
		}
		if v.Remediation != nil || v.VEX != nil {
			hasRemediation++
		}
	}
	n := float64(len(vulns))
	sub := map[string]float64{
		"has_severity":    float64(hasSeverity) / n,
		"has_cvss":        float64(hasCVSS) / n,
		"has_remediation": float64(hasRemediation) / n,
	}
	return CategoryScore{Score: average(sub) * 100, Available: true, SubMetrics: sub}
}

// dependencyQuality penalizes cycles and high fan-out complexity as two
// equally weighted sub-metrics: no_cycles is 0.5 for a cyclic graph
// (else 1), and bounded_fan_out is 1 up to an average out-degree of 15
// and 15/average above it.
func dependencyQuality(sbom *model.NormalizedSBOM) CategoryScore {
	n := sbom.Components.Len()
	if n == 0 {
		return CategoryScore{Available: true, Score: 100, SubMetrics: map[string]float64{}}
	}
	outDegree := make(map[string]int)
	for _, e := range sbom.Edges {
		outDegree[e.From]++
	}
	var totalOut int
	for _, d := range outDegree {
		totalOut += d
	}
	avgOut := float64(totalOut) / float64(n)

	const complexityThreshold = 15.0
	complexityScore := 1.0
	if avgOut > complexityThreshold {
		complexityScore = complexityThreshold / avgOut
		if complexityScore < 0 {
			complexityScore = 0
		}
	}

	cycleScore := 1.0
	if hasDependencyCycle(sbom) {
		cycleScore = 0.5
	}

	sub := map[string]float64{
		"no_cycles":        cycleScore,
		"bounded_fan_out":  complexityScore,
	}
	return CategoryScore{Score: average(sub) * 100, Available: true, SubMetrics: sub}
}

// hashQuality scores the proportion of components with any hash and,
// among those with a hash, the proportion using a strong algorithm.
func hashQuality(sbom *model.NormalizedSBOM) CategoryScore {
	comps := sbom.Components.All()
	if len(comps) == 0 {
		return CategoryScore{Available: true, Score: 100, SubMetrics: map[string]float64{}}
	}
	withHash := 0
	strong := 0
	for _, c := range comps {
		if len(c.Hashes) == 0 {
			continue
		}
		withHash++
		for _, h := range c.Hashes {
			if h.IsStrong() {
				strong++
				break
			}
		}
	}
	sub := map[string]float64{
		"has_hash": float64(withHash) / float64(len(comps)),
	}
	if withHash > 0 {
		sub["strong_hash"] = float64(strong) / float64(withHash)
	} else {
		sub["strong_hash"] = 0
	}
	return CategoryScore{Score: average(sub) * 100, Available: true, SubMetrics: sub}
}

// provenanceAuditability scores document-level supplier/security
// contact presence and the proportion of components with a supplier
// and at least one external reference (a proxy for "auditable" —
// traceable back to a source location or advisory).
func provenanceAuditability(sbom *model.NormalizedSBOM) CategoryScore {
	comps := sbom.Components.All()
	sub := map[string]float64{
		"doc_supplier":         boolScore(sbom.Metadata.Supplier != ""),
		"doc_security_contact": boolScore(sbom.Metadata.SecurityContact != "" || sbom.Metadata.VulnerabilityDisclosureURL != ""),
	}
	if len(comps) > 0 {
		sub["component_supplier"] = proportion(comps, func(c *model.Component) bool { return c.Supplier != "" })
		sub["component_external_refs"] = proportion(comps, func(c *model.Component) bool { return len(c.ExternalReferences) > 0 })
	}
	return CategoryScore{Score: average(sub) * 100, Available: true, SubMetrics: sub}
}

// lifecycleQuality is None when no component carries enrichment
// (staleness/EOL) data; otherwise it scores the proportion of
// enriched components that are neither far behind latest nor EOL.
func lifecycleQuality(sbom *model.NormalizedSBOM) CategoryScore {
	var enriched []*model.Component
	for _, c := range sbom.Components.All() {
		if c.Staleness != nil {
			enriched = append(enriched, c)
		}
	}
	if len(enriched) == 0 {
		return CategoryScore{Available: false}
	}
	healthy := 0
	const maxHealthyVersionsBehind = 3
	for _, c := range enriched {
		if !c.Staleness.EOL && c.Staleness.VersionsBehind <= maxHealthyVersionsBehind {
			healthy++
		}
	}
	sub := map[string]float64{"healthy": float64(healthy) / float64(len(enriched))}
	return CategoryScore{Score: average(sub) * 100, Available: true, SubMetrics: sub}
}

func proportion(comps []*model.Component, pred func(*model.Component) bool) float64 {
	if len(comps) == 0 {
		return 1
	}
	n := 0
	for _, c := range comps {
		if pred(c) {
			n++
		}
	}
	return float64(n) / float64(len(comps))
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func average(sub map[string]float64) float64 {
	if len(sub) == 0 {
		return 1
	}
	var total float64
	for _, v := range sub {
		total += v
	}
	return total / float64(len(sub))
}
