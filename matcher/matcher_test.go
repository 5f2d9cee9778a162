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

package matcher_test

import (
	"testing"

	"github.com/sbom-tool/sbom-tools/matcher"
	"github.com/sbom-tool/sbom-tools/model"
)

func TestExactMatchScore(t *testing.T) {
	old := &model.Component{CID: model.CID{Value: "pkg:pypi/requests@2.31.0"}}
	new1 := &model.Component{CID: model.CID{Value: "pkg:pypi/requests@2.31.0"}}
	new2 := &model.Component{CID: model.CID{Value: "pkg:pypi/requests@2.31.1"}}

	var e matcher.Exact
	if got := e.MatchScore(old, new1); got != 1.0 {
		t.Errorf("MatchScore(identical CIDs) = %v, want 1.0", got)
	}
	if got := e.MatchScore(old, new2); got != 0 {
		t.Errorf("MatchScore(differing CIDs) = %v, want 0", got)
	}
}

func TestFuzzyMatchScoreIdenticalName(t *testing.T) {
	f := matcher.NewFuzzy(matcher.DefaultFuzzyMatchConfig())
	old := &model.Component{Name: "requests", Version: "2.30.0", Ecosystem: model.EcosystemPyPI}
	new := &model.Component{Name: "requests", Version: "2.31.0", Ecosystem: model.EcosystemPyPI}

	got := f.MatchScore(old, new)
	if got < 0.8 {
		t.Errorf("MatchScore(same name, different version) = %v, want >= 0.8", got)
	}
}

func TestFuzzyExplainMatchBelowThreshold(t *testing.T) {
	f := matcher.NewFuzzy(matcher.DefaultFuzzyMatchConfig())
	old := &model.Component{Name: "requests"}
	new := &model.Component{Name: "flask"}

	exp := f.ExplainMatch(old, new)
	if exp.Tier != matcher.TierNone {
		t.Errorf("ExplainMatch(unrelated names).Tier = %v, want TierNone", exp.Tier)
	}
}

func TestFuzzyMatchScoreBounded(t *testing.T) {
	f := matcher.NewFuzzy(matcher.DefaultFuzzyMatchConfig())
	old := &model.Component{Name: "requests", Version: "2.30.0", Group: "psf", Ecosystem: model.EcosystemPyPI}
	new := &model.Component{Name: "requests", Version: "2.30.0", Group: "psf", Ecosystem: model.EcosystemPyPI}

	got := f.MatchScore(old, new)
	if got > 1.0 || got < 0 {
		t.Errorf("MatchScore() = %v, want within [0,1]", got)
	}
}
