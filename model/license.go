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
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// NoAssertion is the SPDX placeholder meaning "we make no claim about
// this field's value".
const NoAssertion = "NOASSERTION"

// NoneLicense is the SPDX placeholder meaning "this field does not apply".
const NoneLicense = "NONE"

// License is a license expression as declared by the source document
// (typically, but not necessarily, a valid SPDX expression — format
// validation is left to the Quality Scorer and Compliance Checker,
// which treat an invalid expression as a quality signal rather than a
// hard error).
type License string

// IsAssertion reports whether l is a real license expression, i.e.
// neither empty nor one of the SPDX NOASSERTION/NONE placeholders.
func (l License) IsAssertion() bool {
	up := strings.ToUpper(strings.TrimSpace(string(l)))
	return up != "" && up != NoAssertion && up != NoneLicense
}

// LicenseSet returns the set of distinct, assertive license expressions
// across components, keyed for set algebra via stringset — the same
// library the teacher's own SPDX license-expression builder
// (converter/spdx/license.go) uses to combine license atoms.
func LicenseSet(licenses []License) stringset.Set {
	s := stringset.New()
	for _, l := range licenses {
		if l.IsAssertion() {
			s.Add(string(l))
		}
	}
	return s
}
