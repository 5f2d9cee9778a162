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

// VEXState is the exploitability state a VEX statement asserts for a
// given component/vulnerability pair.
type VEXState int

// VEXState values.
const (
	VEXNotAffected VEXState = iota
	VEXAffected
	VEXFixed
	VEXUnderInvestigation
)

func (s VEXState) String() string {
	switch s {
	case VEXNotAffected:
		return "not_affected"
	case VEXAffected:
		return "affected"
	case VEXFixed:
		return "fixed"
	case VEXUnderInvestigation:
		return "under_investigation"
	default:
		return "unknown"
	}
}

// VEXJustification mirrors the CISA VEX justification vocabulary for
// a not_affected statement.
type VEXJustification int

// VEXJustification values.
const (
	VEXJustificationUnspecified VEXJustification = iota
	VEXComponentNotPresent
	VEXVulnerableCodeNotPresent
	VEXVulnerableCodeNotInExecutePath
	VEXVulnerableCodeCannotBeControlledByAdversary
	VEXInlineMitigationAlreadyExists
)

// VEXStatus is a VEX statement attached to a Component. When absent
// from a Component, the component's vulnerabilities are "actionable"
// by default (spec.md §3).
type VEXStatus struct {
	State         VEXState
	Justification VEXJustification
	Impact        string
}

// Actionable reports whether the component's vulnerabilities should be
// treated as requiring attention given this VEX status. A nil
// *VEXStatus is actionable by default, matching spec.md's "absent"
// rule.
func (v *VEXStatus) Actionable() bool {
	if v == nil {
		return true
	}
	return v.State == VEXAffected || v.State == VEXUnderInvestigation
}
