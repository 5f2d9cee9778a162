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

package multidiff

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/sbom-tool/sbom-tools/model"
	"github.com/sbom-tool/sbom-tools/semantic"
)

// VersionChange classifies how a component's version moved between
// two points of a timeline (spec.md §4.12's Timeline mode).
type VersionChange string

// VersionChange values.
const (
	ChangeInitial      VersionChange = "initial"
	ChangePatchUpgrade VersionChange = "patch_upgrade"
	ChangeMinorUpgrade VersionChange = "minor_upgrade"
	ChangeMajorUpgrade VersionChange = "major_upgrade"
	ChangeDowngrade    VersionChange = "downgrade"
	ChangeUnchanged    VersionChange = "unchanged"
	ChangeRemoved      VersionChange = "removed"
	ChangeAbsent       VersionChange = "absent"
)

// leadingInt extracts the run of ASCII digits at the start of v, for
// versions that don't parse as semver (e.g. "2021a", "r45").
func leadingInt(v string) (int, bool) {
	i := 0
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(v[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// classifyVersionChange compares oldVersion to newVersion, preferring
// semver parsing on both sides, then falling back to the component's
// own ecosystem's native version ordering (semantic.Parse) when one or
// both sides don't parse as semver, then to leading-integer
// extraction, and finally to a string-equality/ordering guess when
// nothing parses meaningfully.
func classifyVersionChange(oldVersion, newVersion string, ecosystem model.Ecosystem) VersionChange {
	if oldVersion == newVersion {
		return ChangeUnchanged
	}

	oldV, oldErr := semver.NewVersion(oldVersion)
	newV, newErr := semver.NewVersion(newVersion)
	if oldErr == nil && newErr == nil {
		switch {
		case newV.GreaterThan(oldV):
			switch {
			case newV.Major() != oldV.Major():
				return ChangeMajorUpgrade
			case newV.Minor() != oldV.Minor():
				return ChangeMinorUpgrade
			default:
				return ChangePatchUpgrade
			}
		case newV.LessThan(oldV):
			return ChangeDowngrade
		default:
			return ChangeUnchanged
		}
	}

	// At least one side did not parse as semver: PyPI, Debian, RedHat and Alpine
	// versions routinely don't (epochs, tildes, distro revisions).
	// semantic.Parse knows each ecosystem's native ordering, which
	// correctly ranks these where a semver or lexical guess would not,
	// though it can only report direction, not upgrade tier.
	if ecosystem.IsKnown() {
		if ov, err := semantic.Parse(oldVersion, ecosystem.String()); err == nil {
			if cmp, err := ov.CompareStr(newVersion); err == nil {
				switch {
				case cmp < 0:
					return ChangeMinorUpgrade
				case cmp > 0:
					return ChangeDowngrade
				default:
					return ChangeUnchanged
				}
			}
		}
	}

	if oldN, ok1 := leadingInt(oldVersion); ok1 {
		if newN, ok2 := leadingInt(newVersion); ok2 {
			switch {
			case newN > oldN:
				return ChangeMajorUpgrade
			case newN < oldN:
				return ChangeDowngrade
			default:
				return ChangeUnchanged
			}
		}
	}

	// Neither side parses meaningfully: fall back to a lexical guess.
	// This can't distinguish upgrade tiers, so it reports the coarsest
	// possible classification consistent with "something changed".
	if strings.Compare(newVersion, oldVersion) > 0 {
		return ChangeMinorUpgrade
	}
	return ChangeDowngrade
}

// majorVersionSpread computes how many distinct major versions a set
// of version strings spans, preferring semver, falling back to
// leading-integer extraction. Versions that parse neither way are
// ignored for spread purposes. semantic.Version only exposes ordering
// (CompareStr), not a major-component accessor, so unlike
// classifyVersionChange/compareVersions this has no ecosystem-aware
// tier to fall back to.
func majorVersionSpread(versions []string) int {
	majors := make(map[int]bool)
	for _, v := range versions {
		if sv, err := semver.NewVersion(v); err == nil {
			majors[int(sv.Major())] = true
			continue
		}
		if n, ok := leadingInt(v); ok {
			majors[n] = true
		}
	}
	if len(majors) == 0 {
		return 0
	}
	return len(majors)
}

// compareVersions returns -1, 0, or 1, preferring semver, falling back
// to the ecosystem's native version ordering, then to leading-integer
// extraction, and finally to plain string comparison.
func compareVersions(a, b string, ecosystem model.Ecosystem) int {
	if a == b {
		return 0
	}
	if av, err := semver.NewVersion(a); err == nil {
		if bv, err := semver.NewVersion(b); err == nil {
			return av.Compare(bv)
		}
	}
	if ecosystem.IsKnown() {
		if av, err := semantic.Parse(a, ecosystem.String()); err == nil {
			if cmp, err := av.CompareStr(b); err == nil {
				return cmp
			}
		}
	}
	if an, ok1 := leadingInt(a); ok1 {
		if bn, ok2 := leadingInt(b); ok2 {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(a, b)
}
