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

package crosseco_test

import (
	"testing"

	"github.com/sbom-tool/sbom-tools/crosseco"
	"github.com/sbom-tool/sbom-tools/model"
)

func TestFindEquivalents(t *testing.T) {
	db := crosseco.New()
	db.Add(model.EcosystemPyPI, "pillow", crosseco.Equivalent{Ecosystem: model.EcosystemDebian, Name: "python3-pil", Verified: true})
	db.Add(model.EcosystemPyPI, "pillow", crosseco.Equivalent{Ecosystem: model.EcosystemAlpine, Name: "py3-pillow", Verified: false})

	got := db.FindEquivalents(model.EcosystemPyPI, "pillow")
	if len(got) != 2 {
		t.Fatalf("FindEquivalents() = %v, want 2 entries", got)
	}
	if len(db.FindEquivalents(model.EcosystemPyPI, "unknown")) != 0 {
		t.Error("FindEquivalents() for unknown name should return nil/empty")
	}
}

func TestCandidatesDisabledByDefault(t *testing.T) {
	db := crosseco.New()
	db.Add(model.EcosystemPyPI, "pillow", crosseco.Equivalent{Ecosystem: model.EcosystemDebian, Name: "python3-pil", Verified: true})
	cfg := crosseco.DefaultConfig()
	if got := db.Candidates(cfg, model.EcosystemPyPI, "pillow"); got != nil {
		t.Errorf("Candidates() with disabled config = %v, want nil", got)
	}
}

func TestCandidatesVerifiedOnly(t *testing.T) {
	db := crosseco.New()
	db.Add(model.EcosystemPyPI, "pillow", crosseco.Equivalent{Ecosystem: model.EcosystemDebian, Name: "python3-pil", Verified: true})
	db.Add(model.EcosystemPyPI, "pillow", crosseco.Equivalent{Ecosystem: model.EcosystemAlpine, Name: "py3-pillow", Verified: false})

	cfg := crosseco.DefaultConfig()
	cfg.Enabled = true
	cfg.VerifiedOnly = true
	got := db.Candidates(cfg, model.EcosystemPyPI, "pillow")
	if len(got) != 1 || !got[0].Verified {
		t.Errorf("Candidates() with VerifiedOnly = %v, want exactly 1 verified entry", got)
	}
}

func TestAdjustScore(t *testing.T) {
	cfg := crosseco.DefaultConfig()
	adjusted, accepted := crosseco.AdjustScore(cfg, 0.9)
	if adjusted != 0.75 {
		t.Errorf("AdjustScore() adjusted = %v, want 0.75", adjusted)
	}
	if !accepted {
		t.Error("AdjustScore() should accept 0.75 against default MinAdjustedScore 0.6")
	}

	adjusted, accepted = crosseco.AdjustScore(cfg, 0.5)
	if accepted {
		t.Errorf("AdjustScore() should reject adjusted score %v below MinAdjustedScore", adjusted)
	}
}
