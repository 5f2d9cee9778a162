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

package diffengine

import (
	"fmt"

	"github.com/google/go-cpy/cpy"

	"github.com/sbom-tool/sbom-tools/model"
)

// FilterRule is one exclusion or remap instruction a FilterRuleEngine
// applies. A rule with both Exclude and CanonicalID set is invalid:
// a component cannot be both dropped and renamed.
type FilterRule struct {
	// ComponentID is the CID.Value the rule matches, in either SBOM.
	ComponentID string
	// Exclude removes the matched component from comparison entirely.
	Exclude bool
	// CanonicalID, when non-empty, remaps ComponentID to CanonicalID
	// before matching runs, so equivalent components under different
	// ids are treated as identical.
	CanonicalID string
}

// FilterRuleEngine is the one concrete RuleEngine this package ships:
// component exclusion plus a canonical-id remap table. It clones both
// input SBOMs with cpy before mutating, so the caller's original
// values are never touched (spec.md requires SBOMs to remain
// immutable and shared-by-reference across a diff).
type FilterRuleEngine struct {
	Rules []FilterRule
}

var copier = cpy.New(cpy.IgnoreAllUnexported())

// Apply implements RuleEngine.
func (e *FilterRuleEngine) Apply(old, new *model.NormalizedSBOM) (*model.NormalizedSBOM, *model.NormalizedSBOM, map[string]string, map[string]string, error) {
	exclude := make(map[string]bool)
	canon := make(map[string]string)
	for _, r := range e.Rules {
		if r.ComponentID == "" {
			return nil, nil, nil, nil, fmt.Errorf("%w: empty component id", ErrInvalidRule)
		}
		if r.Exclude && r.CanonicalID != "" {
			return nil, nil, nil, nil, fmt.Errorf("%w: rule for %q sets both Exclude and CanonicalID", ErrInvalidRule, r.ComponentID)
		}
		if r.Exclude {
			exclude[r.ComponentID] = true
		}
		if r.CanonicalID != "" {
			canon[r.ComponentID] = r.CanonicalID
		}
	}

	filteredOld := filterSBOM(old, exclude)
	filteredNew := filterSBOM(new, exclude)
	return filteredOld, filteredNew, canon, canon, nil
}

func filterSBOM(sbom *model.NormalizedSBOM, exclude map[string]bool) *model.NormalizedSBOM {
	cloned := copier.Copy(sbom).(*model.NormalizedSBOM)
	if len(exclude) == 0 {
		return cloned
	}

	filtered := model.NewComponentSet()
	for _, id := range cloned.Components.Order() {
		if exclude[id] {
			continue
		}
		c, _ := cloned.Components.Get(id)
		filtered.Put(c)
	}
	cloned.Components = filtered

	var edges []model.DependencyEdge
	for _, e := range cloned.Edges {
		if exclude[e.From] || exclude[e.To] {
			continue
		}
		edges = append(edges, e)
	}
	cloned.Edges = edges
	return cloned
}
