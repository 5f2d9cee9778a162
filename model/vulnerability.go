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
	"fmt"
	"strings"
	"time"

	gocvss20 "github.com/pandatix/go-cvss/20"
	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"
	gocvss40 "github.com/pandatix/go-cvss/40"
)

// Severity is the normalized severity level attached to a vulnerability,
// independent of the numeric CVSS score that backs it.
type Severity int

// Severity levels, ordered Critical > High > Medium > Low > Unknown so
// that sorting by Severity directly satisfies spec.md §4.1's "Critical
// > High > Medium > Low > other" ordering.
const (
	SeverityCritical Severity = iota
	SeverityHigh
	SeverityMedium
	SeverityLow
	SeverityUnknown
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// SeverityFromScore buckets a 0.0-10.0 CVSS base score into a Severity
// level, following the scoring ranges CVSS 3.x/4.0 publish.
func SeverityFromScore(score float64) Severity {
	switch {
	case score < 0:
		return SeverityUnknown
	case score >= 9.0:
		return SeverityCritical
	case score >= 7.0:
		return SeverityHigh
	case score >= 4.0:
		return SeverityMedium
	case score > 0:
		return SeverityLow
	default:
		return SeverityUnknown
	}
}

// CVSS is a single CVSS vector string together with its parsed base
// score. The vector's own prefix selects which versioned parser
// applies, mirroring the teacher's severity.CalculateScore dispatch.
type CVSS struct {
	Vector string
	Score  float64
}

// ParseCVSS parses a CVSS vector string of any supported version (2.0,
// 3.0, 3.1 or 4.0) and returns its base score. An unrecognized or
// malformed vector is an error, not a zero score, so callers can tell
// "no CVSS data" (score computation skipped entirely) apart from
// "CVSS data present but invalid" (a quality signal).
func ParseCVSS(vector string) (CVSS, error) {
	switch {
	case strings.HasPrefix(vector, "CVSS:4.0/"):
		vec, err := gocvss40.ParseVector(vector)
		if err != nil {
			return CVSS{}, fmt.Errorf("parsing CVSS 4.0 vector: %w", err)
		}
		return CVSS{Vector: vector, Score: vec.Score()}, nil
	case strings.HasPrefix(vector, "CVSS:3.1/"):
		vec, err := gocvss31.ParseVector(vector)
		if err != nil {
			return CVSS{}, fmt.Errorf("parsing CVSS 3.1 vector: %w", err)
		}
		return CVSS{Vector: vector, Score: vec.BaseScore()}, nil
	case strings.HasPrefix(vector, "CVSS:3.0/"):
		vec, err := gocvss30.ParseVector(vector)
		if err != nil {
			return CVSS{}, fmt.Errorf("parsing CVSS 3.0 vector: %w", err)
		}
		return CVSS{Vector: vector, Score: vec.BaseScore()}, nil
	default:
		vec, err := gocvss20.ParseVector(vector)
		if err != nil {
			return CVSS{}, fmt.Errorf("parsing CVSS 2.0 vector: %w", err)
		}
		return CVSS{Vector: vector, Score: vec.BaseScore()}, nil
	}
}

// RemediationType enumerates the shape a Remediation takes.
type RemediationType int

// RemediationType values.
const (
	RemediationUnknown RemediationType = iota
	RemediationUpgrade
	RemediationWorkaround
	RemediationNoFixAvailable
)

func (t RemediationType) String() string {
	switch t {
	case RemediationUpgrade:
		return "upgrade"
	case RemediationWorkaround:
		return "workaround"
	case RemediationNoFixAvailable:
		return "no_fix_available"
	default:
		return "unknown"
	}
}

// Remediation describes how a vulnerability can be addressed.
type Remediation struct {
	Type         RemediationType
	Description  string
	FixedVersion string // empty when Type != RemediationUpgrade
}

// KEVMetadata is the CISA Known Exploited Vulnerabilities catalog entry
// for a vulnerability, when it appears in that catalog. No library in
// the retrieval pack models the KEV feed; this is a small enough shape
// that hand-writing it is preferable to adopting a dependency for a
// three-field struct (see DESIGN.md).
type KEVMetadata struct {
	DueDate         time.Time
	KnownRansomware bool
}

// VulnerabilityReference attaches vulnerability data to a Component.
// Components are paired, not vulnerabilities, so a VulnerabilityReference
// has no CID of its own (spec.md §3); it is carried inside whichever
// Component it was reported against.
type VulnerabilityReference struct {
	ID          string
	SourceFeed  string
	Severity    Severity
	CVSSScores  []CVSS
	CWEs        []string
	Published   *time.Time
	KEV         *KEVMetadata
	Description string
	Remediation *Remediation
	Aliases     []string
	VEX         *VEXStatus
}

// Actionable reports whether this vulnerability should count against
// the component under the attached VEX status, defaulting to true
// when no VEX statement is present.
func (v *VulnerabilityReference) Actionable() bool {
	if v == nil {
		return false
	}
	return v.VEX.Actionable()
}
