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

// Package compliance audits a NormalizedSBOM against a named
// ComplianceLevel, producing a violation list and a pass/fail verdict
// (spec.md §4.13). Each rule is a small function over the document and
// its components; a profile is simply the set of rules it runs.
package compliance

import (
	"fmt"
	"strings"

	"github.com/sbom-tool/sbom-tools/model"
)

// Severity classifies how serious a Violation is.
type Severity int

// Severity values.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Category groups violations by the part of the document they concern.
type Category string

// Category values.
const (
	CategoryDocumentMetadata        Category = "document_metadata"
	CategoryComponentIdentification Category = "component_identification"
	CategoryDependencyInfo          Category = "dependency_info"
	CategoryLicenseInfo             Category = "license_info"
	CategorySupplierInfo            Category = "supplier_info"
	CategoryIntegrityInfo           Category = "integrity_info"
	CategorySecurityInfo            Category = "security_info"
	CategoryFormatSpecific          Category = "format_specific"
)

// Violation is one rule failure found against the document or one of
// its components.
type Violation struct {
	Severity    Severity
	Category    Category
	Message     string
	Element     string // CID string value of the offending component, empty for document-level violations
	Requirement string // requirement reference, e.g. "ntia.min.supplier"
}

// Remediation returns guidance text for the violation's requirement
// reference, or a generic fallback when the reference isn't in the
// known guidance table.
func (v Violation) Remediation() string {
	if g, ok := remediationGuidance[v.Requirement]; ok {
		return g
	}
	return "review the flagged element against the referenced requirement"
}

// remediationGuidance maps a requirement reference to actionable text,
// keyed the way rule functions below tag their violations.
var remediationGuidance = map[string]string{
	"doc.creator":            "add at least one creator (tool or organization) to the document metadata",
	"doc.supplier":           "set the document's supplier/manufacturer field",
	"doc.primary_product":    "identify the document's primary product (the component it describes)",
	"doc.security_contact":   "add a security contact or vulnerability-advisories reference to the document",
	"doc.support_end_date":   "set a support end date for the described product",
	"doc.format_version":     "upgrade to a current format version; older schema versions are flagged for review",
	"component.version":      "set an explicit version on the component",
	"component.identifier":   "attach a PURL, CPE, or other unique identifier to the component",
	"component.license":      "attach a declared or concluded license to the component",
	"component.supplier":     "set the component's supplier field",
	"component.hash":         "attach at least one cryptographic hash to the component",
	"component.hash.strong":  "replace weak hash algorithms (MD5, SHA-1) with SHA-256 or stronger",
	"dependency.graph":       "declare dependency relationships between components when more than one is present",
	"vulnerability.metadata": "ensure reported vulnerabilities carry a severity and a remediation or VEX statement",
}

// Counts tallies violations by severity.
type Counts struct {
	Errors   int
	Warnings int
	Infos    int
}

// Result is the complete output of Check.
type Result struct {
	IsCompliant bool
	Counts      Counts
	Violations  []Violation
}

// Level selects which rule set Check runs, per spec.md §4.13.
type Level int

// Level values.
const (
	LevelMinimum Level = iota
	LevelStandard
	LevelNTIAMinimum
	LevelCRAPhase1
	LevelCRAPhase2
	LevelFDAMedicalDevice
	LevelComprehensive
)

func (l Level) String() string {
	switch l {
	case LevelMinimum:
		return "minimum"
	case LevelStandard:
		return "standard"
	case LevelNTIAMinimum:
		return "ntia_minimum"
	case LevelCRAPhase1:
		return "cra_phase_1"
	case LevelCRAPhase2:
		return "cra_phase_2"
	case LevelFDAMedicalDevice:
		return "fda_medical_device"
	case LevelComprehensive:
		return "comprehensive"
	default:
		return "unknown"
	}
}

// rule is one compliance check run against a document.
type rule func(sbom *model.NormalizedSBOM) []Violation

// profiles maps each Level to the ordered set of rules it runs.
// Each Level runs its own rule list; the NTIA and CRA levels are not
// strict supersets of Standard (NTIAMinimum, for one, has no license
// rule). Comprehensive runs every rule this package knows.
var profiles = map[Level][]rule{
	LevelMinimum: {
		ruleComponentVersion,
		ruleComponentIdentifier,
	},
	LevelStandard: {
		ruleDocCreator,
		ruleComponentVersion,
		ruleComponentIdentifier,
		ruleComponentLicense,
		ruleDependencyGraph,
	},
	LevelNTIAMinimum: {
		ruleDocCreator,
		ruleDocSupplier,
		ruleDocPrimaryProduct,
		ruleComponentVersion,
		ruleComponentIdentifier,
		ruleDependencyGraph,
	},
	LevelCRAPhase1: {
		ruleDocCreator,
		ruleDocSupplier,
		ruleDocPrimaryProduct,
		ruleDocSecurityContact,
		ruleComponentVersion,
		ruleComponentIdentifier,
		ruleComponentLicense,
		ruleComponentSupplier,
		ruleDependencyGraph,
	},
	LevelCRAPhase2: {
		ruleDocCreator,
		ruleDocSupplier,
		ruleDocPrimaryProduct,
		ruleDocSecurityContact,
		ruleDocSupportEndDate,
		ruleComponentVersion,
		ruleComponentIdentifier,
		ruleComponentLicense,
		ruleComponentSupplier,
		ruleComponentHashCritical,
		ruleDependencyGraph,
		ruleVulnerabilityMetadata,
	},
	LevelFDAMedicalDevice: {
		ruleDocCreator,
		ruleDocSupplier,
		ruleDocPrimaryProduct,
		ruleDocSecurityContact,
		ruleDocSupportEndDate,
		ruleComponentVersion,
		ruleComponentIdentifier,
		ruleComponentLicense,
		ruleComponentSupplier,
		ruleComponentHashCritical,
		ruleDependencyGraph,
		ruleVulnerabilityMetadata,
		ruleFormatVersionCurrency,
	},
	LevelComprehensive: {
		ruleDocCreator,
		ruleDocSupplier,
		ruleDocPrimaryProduct,
		ruleDocSecurityContact,
		ruleDocSupportEndDate,
		ruleComponentVersion,
		ruleComponentIdentifier,
		ruleComponentLicense,
		ruleComponentSupplier,
		ruleComponentHashCritical,
		ruleDependencyGraph,
		ruleVulnerabilityMetadata,
		ruleFormatVersionCurrency,
	},
}

// Check audits sbom against level's rule set.
func Check(sbom *model.NormalizedSBOM, level Level) Result {
	rules, ok := profiles[level]
	if !ok {
		rules = profiles[LevelStandard]
	}

	var violations []Violation
	for _, r := range rules {
		violations = append(violations, r(sbom)...)
	}

	var counts Counts
	for _, v := range violations {
		switch v.Severity {
		case SeverityError:
			counts.Errors++
		case SeverityWarning:
			counts.Warnings++
		case SeverityInfo:
			counts.Infos++
		}
	}

	return Result{
		IsCompliant: counts.Errors == 0,
		Counts:      counts,
		Violations:  violations,
	}
}

func ruleDocCreator(sbom *model.NormalizedSBOM) []Violation {
	if len(sbom.Metadata.Creators) == 0 {
		return []Violation{{
			Severity:    SeverityError,
			Category:    CategoryDocumentMetadata,
			Message:     "document has no creator (tool or organization)",
			Requirement: "doc.creator",
		}}
	}
	return nil
}

func ruleDocSupplier(sbom *model.NormalizedSBOM) []Violation {
	if strings.TrimSpace(sbom.Metadata.Supplier) == "" {
		return []Violation{{
			Severity:    SeverityError,
			Category:    CategoryDocumentMetadata,
			Message:     "document has no supplier/manufacturer",
			Requirement: "doc.supplier",
		}}
	}
	return nil
}

func ruleDocPrimaryProduct(sbom *model.NormalizedSBOM) []Violation {
	if strings.TrimSpace(sbom.Metadata.PrimaryProduct) == "" {
		return []Violation{{
			Severity:    SeverityError,
			Category:    CategoryDocumentMetadata,
			Message:     "document does not identify a primary product",
			Requirement: "doc.primary_product",
		}}
	}
	return nil
}

func ruleDocSecurityContact(sbom *model.NormalizedSBOM) []Violation {
	hasContact := strings.TrimSpace(sbom.Metadata.SecurityContact) != ""
	hasAdvisories := false
	for _, c := range sbom.Components.All() {
		for _, ref := range c.ExternalReferences {
			if ref.Type == "advisories" {
				hasAdvisories = true
			}
		}
	}
	if !hasContact && !hasAdvisories {
		return []Violation{{
			Severity:    SeverityWarning,
			Category:    CategorySecurityInfo,
			Message:     "document has no security contact or advisories reference",
			Requirement: "doc.security_contact",
		}}
	}
	return nil
}

func ruleDocSupportEndDate(sbom *model.NormalizedSBOM) []Violation {
	if sbom.Metadata.SupportEndDate == nil {
		return []Violation{{
			Severity:    SeverityWarning,
			Category:    CategoryDocumentMetadata,
			Message:     "document does not declare a support end date",
			Requirement: "doc.support_end_date",
		}}
	}
	return nil
}

func ruleComponentVersion(sbom *model.NormalizedSBOM) []Violation {
	var violations []Violation
	for _, c := range sbom.Components.All() {
		if strings.TrimSpace(c.Version) == "" {
			violations = append(violations, Violation{
				Severity:    SeverityError,
				Category:    CategoryComponentIdentification,
				Message:     fmt.Sprintf("component %q has no version", c.Name),
				Element:     c.CID.Value,
				Requirement: "component.version",
			})
		}
	}
	return violations
}

func ruleComponentIdentifier(sbom *model.NormalizedSBOM) []Violation {
	var violations []Violation
	for _, c := range sbom.Components.All() {
		if c.Identifiers.PURL == nil && len(c.Identifiers.CPEs) == 0 && c.Identifiers.SWID == "" {
			violations = append(violations, Violation{
				Severity:    SeverityWarning,
				Category:    CategoryComponentIdentification,
				Message:     fmt.Sprintf("component %q has no PURL, CPE, or SWID", c.Name),
				Element:     c.CID.Value,
				Requirement: "component.identifier",
			})
		}
	}
	return violations
}

func ruleComponentLicense(sbom *model.NormalizedSBOM) []Violation {
	var violations []Violation
	for _, c := range sbom.Components.All() {
		if len(model.LicenseSet(c.DeclaredLicenses)) == 0 && len(model.LicenseSet(c.ConcludedLicenses)) == 0 {
			violations = append(violations, Violation{
				Severity:    SeverityWarning,
				Category:    CategoryLicenseInfo,
				Message:     fmt.Sprintf("component %q has no license information", c.Name),
				Element:     c.CID.Value,
				Requirement: "component.license",
			})
		}
	}
	return violations
}

func ruleComponentSupplier(sbom *model.NormalizedSBOM) []Violation {
	var violations []Violation
	for _, c := range sbom.Components.All() {
		if strings.TrimSpace(c.Supplier) == "" {
			violations = append(violations, Violation{
				Severity:    SeverityInfo,
				Category:    CategorySupplierInfo,
				Message:     fmt.Sprintf("component %q has no supplier", c.Name),
				Element:     c.CID.Value,
				Requirement: "component.supplier",
			})
		}
	}
	return violations
}

// ruleComponentHashCritical is the critical-level profiles' hash rule:
// every component needs at least one hash, and any hash present must
// be SHA-256 class or stronger — a weak-only hash set (MD5/SHA-1) is
// flagged even though it technically satisfies "has a hash".
func ruleComponentHashCritical(sbom *model.NormalizedSBOM) []Violation {
	var violations []Violation
	for _, c := range sbom.Components.All() {
		if len(c.Hashes) == 0 {
			violations = append(violations, Violation{
				Severity:    SeverityError,
				Category:    CategoryIntegrityInfo,
				Message:     fmt.Sprintf("component %q has no integrity hash", c.Name),
				Element:     c.CID.Value,
				Requirement: "component.hash",
			})
			continue
		}
		hasStrong := false
		for _, h := range c.Hashes {
			if h.IsStrong() {
				hasStrong = true
			}
		}
		if !hasStrong {
			violations = append(violations, Violation{
				Severity:    SeverityWarning,
				Category:    CategoryIntegrityInfo,
				Message:     fmt.Sprintf("component %q has only weak hash algorithms (need SHA-256 or stronger)", c.Name),
				Element:     c.CID.Value,
				Requirement: "component.hash.strong",
			})
		}
	}
	return violations
}

// ruleDependencyGraph requires declared dependency relationships once
// the document describes more than one component; a single-component
// document has nothing to relate.
func ruleDependencyGraph(sbom *model.NormalizedSBOM) []Violation {
	if sbom.Components.Len() > 1 && len(sbom.Edges) == 0 {
		return []Violation{{
			Severity:    SeverityError,
			Category:    CategoryDependencyInfo,
			Message:     "document describes multiple components but declares no dependency relationships",
			Requirement: "dependency.graph",
		}}
	}
	return nil
}

func ruleVulnerabilityMetadata(sbom *model.NormalizedSBOM) []Violation {
	var violations []Violation
	for _, c := range sbom.Components.All() {
		for _, v := range c.Vulnerabilities {
			if v.Severity == model.SeverityUnknown && v.Remediation == nil && v.VEX == nil {
				violations = append(violations, Violation{
					Severity:    SeverityWarning,
					Category:    CategorySecurityInfo,
					Message:     fmt.Sprintf("vulnerability %s on component %q has no severity, remediation, or VEX statement", v.ID, c.Name),
					Element:     c.CID.Value,
					Requirement: "vulnerability.metadata",
				})
			}
		}
	}
	return violations
}

// currentFormatVersions is the set of format-version strings this
// package treats as current; anything else is flagged as stale for
// profiles that care about format-version currency.
var currentFormatVersions = map[string]bool{
	"1.5": true,
	"1.6": true,
	"2.3": true,
}

func ruleFormatVersionCurrency(sbom *model.NormalizedSBOM) []Violation {
	if sbom.Metadata.FormatVersion == "" {
		return nil
	}
	if !currentFormatVersions[sbom.Metadata.FormatVersion] {
		return []Violation{{
			Severity:    SeverityInfo,
			Category:    CategoryFormatSpecific,
			Message:     fmt.Sprintf("document uses format version %q, which is not the current schema version", sbom.Metadata.FormatVersion),
			Requirement: "doc.format_version",
		}}
	}
	return nil
}
