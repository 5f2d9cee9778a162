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

// Package cost assigns configurable weights to the change counts the
// Change Computers and Graph Diff produce, combining them into the
// scalar semantic score the Diff Engine reports (spec.md §4.9).
package cost

import (
	"github.com/Masterminds/semver/v3"

	"github.com/sbom-tool/sbom-tools/model"
	"github.com/sbom-tool/sbom-tools/semantic"
)

// Config holds every weight the Cost Model uses. Weights are in score
// points: CalculateSemanticScore subtracts the weighted sum directly
// from 100, so their absolute magnitude matters, not only their ratio.
type Config struct {
	ComponentAdded   float64
	ComponentRemoved float64

	VersionPatch float64
	VersionMinor float64
	VersionMajor float64

	LicenseChanged  float64
	SupplierChanged float64

	VulnerabilityIntroduced float64
	VulnerabilityResolved   float64 // negative: resolving a vulnerability is a reward, not a cost

	DependencyAdded   float64
	DependencyRemoved float64

	HashMismatch float64
}

// Default returns the engine's baseline weighting.
func Default() Config {
	return Config{
		ComponentAdded:   1.0,
		ComponentRemoved: 1.5,

		VersionPatch: 0.5,
		VersionMinor: 1.0,
		VersionMajor: 2.0,

		LicenseChanged:  2.0,
		SupplierChanged: 1.0,

		VulnerabilityIntroduced: 5.0,
		VulnerabilityResolved:   -3.0,

		DependencyAdded:   0.5,
		DependencyRemoved: 0.75,

		HashMismatch: 3.0,
	}
}

// SecurityFocused amplifies vulnerability and integrity costs relative
// to Default, for callers who weight security regressions above all
// other change types.
func SecurityFocused() Config {
	c := Default()
	c.VulnerabilityIntroduced = 15.0
	c.VulnerabilityResolved = -8.0
	c.HashMismatch = 8.0
	return c
}

// ComplianceFocused amplifies license and supplier costs relative to
// Default, for callers auditing provenance and licensing above other
// change types.
func ComplianceFocused() Config {
	c := Default()
	c.LicenseChanged = 6.0
	c.SupplierChanged = 4.0
	return c
}

// VersionChangeCost returns the semver-tier cost of a version change
// when both sides parse as semver: exactly one of VersionMajor,
// VersionMinor or VersionPatch, whichever is the highest-order
// differing field (a change confined to pre-release or build metadata
// costs 0). When one or both sides don't parse as semver, it tries
// ecosystem's own native version ordering next (PyPI, Debian, RedHat,
// and Alpine versions routinely aren't valid semver), charging the flat
// VersionMinor tier for a confirmed, ecosystem-correct difference.
// Failing that, it charges the same flat tier when exactly one side
// parses as semver, and zero when neither side does.
func (c Config) VersionChangeCost(oldVersion, newVersion string, ecosystem model.Ecosystem) float64 {
	if oldVersion == newVersion {
		return 0
	}
	oldV, oldErr := semver.NewVersion(oldVersion)
	newV, newErr := semver.NewVersion(newVersion)

	if oldErr == nil && newErr == nil {
		switch {
		case oldV.Major() != newV.Major():
			return c.VersionMajor
		case oldV.Minor() != newV.Minor():
			return c.VersionMinor
		case oldV.Patch() != newV.Patch():
			return c.VersionPatch
		}
		return 0
	}

	if ecosystem.IsKnown() {
		if ov, err := semantic.Parse(oldVersion, ecosystem.String()); err == nil {
			if cmp, err := ov.CompareStr(newVersion); err == nil && cmp != 0 {
				return c.VersionMinor
			}
		}
	}

	if oldErr != nil && newErr != nil {
		return 0
	}
	return c.VersionMinor
}

// Counts tallies how many of each change kind a diff produced; it is
// the single input to CalculateSemanticScore.
type Counts struct {
	ComponentsAdded   int
	ComponentsRemoved int
	VersionCosts      float64 // pre-summed VersionChangeCost across all modified components
	LicensesChanged   int
	SuppliersChanged  int

	VulnerabilitiesIntroduced int
	VulnerabilitiesResolved   int

	DependenciesAdded   int
	DependenciesRemoved int

	HashMismatches int
}

// CalculateSemanticScore combines weighted change counts into a 0-100
// scalar: 100 means no meaningful change, decreasing as weighted cost
// accumulates. The score is floored at 0; there is no ceiling on
// weighted cost beyond it.
func (c Config) CalculateSemanticScore(counts Counts) float64 {
	weighted := float64(counts.ComponentsAdded)*c.ComponentAdded +
		float64(counts.ComponentsRemoved)*c.ComponentRemoved +
		counts.VersionCosts +
		float64(counts.LicensesChanged)*c.LicenseChanged +
		float64(counts.SuppliersChanged)*c.SupplierChanged +
		float64(counts.VulnerabilitiesIntroduced)*c.VulnerabilityIntroduced +
		float64(counts.VulnerabilitiesResolved)*c.VulnerabilityResolved +
		float64(counts.DependenciesAdded)*c.DependencyAdded +
		float64(counts.DependenciesRemoved)*c.DependencyRemoved +
		float64(counts.HashMismatches)*c.HashMismatch

	score := 100 - weighted
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
