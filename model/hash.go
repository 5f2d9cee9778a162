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

// Hash is a cryptographic digest declared on a Component. Algorithm
// reuses CycloneDX's hash-algorithm enum since it is the more
// expressive of the two source formats' hash vocabularies and both
// formats' algorithm names map onto it losslessly.
type Hash struct {
	Algorithm cdx.HashAlgorithm
	Value     string
}

// strongAlgorithms are considered cryptographically strong enough for
// integrity verification by the Compliance Checker's critical-level
// profiles (spec.md §4.13) and the Quality Scorer's hash-quality
// family (spec.md §4.14).
var strongAlgorithms = map[cdx.HashAlgorithm]bool{
	cdx.HashAlgoSHA256:     true,
	cdx.HashAlgoSHA384:     true,
	cdx.HashAlgoSHA512:     true,
	cdx.HashAlgoSHA3_256:   true,
	cdx.HashAlgoSHA3_384:   true,
	cdx.HashAlgoSHA3_512:   true,
	cdx.HashAlgoBLAKE2b_256: true,
	cdx.HashAlgoBLAKE2b_384: true,
	cdx.HashAlgoBLAKE2b_512: true,
	cdx.HashAlgoBLAKE3:      true,
}

// IsStrong reports whether h uses a hash algorithm considered strong
// enough for integrity verification (SHA-256 class or better).
func (h Hash) IsStrong() bool { return strongAlgorithms[h.Algorithm] }

// IsWeak reports whether h is a recognized but weak algorithm
// (MD5, SHA-1) as opposed to simply unrecognized.
func (h Hash) IsWeak() bool {
	switch h.Algorithm {
	case cdx.HashAlgoMD5, cdx.HashAlgoSHA1:
		return true
	default:
		return false
	}
}

// HashesDisjoint reports whether two hash lists share no (algorithm,
// value) pair in common. Used by the component change computer to
// flag a potential integrity issue when versions match but no hash
// agrees (spec.md §4.7).
func HashesDisjoint(a, b []Hash) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	seen := make(map[Hash]bool, len(a))
	for _, h := range a {
		seen[h] = true
	}
	for _, h := range b {
		if seen[h] {
			return false
		}
	}
	return true
}
