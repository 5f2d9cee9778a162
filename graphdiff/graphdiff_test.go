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

package graphdiff_test

import (
	"testing"

	"github.com/sbom-tool/sbom-tools/graphdiff"
	"github.com/sbom-tool/sbom-tools/model"
)

func sbom(components []*model.Component, edges []model.DependencyEdge) *model.NormalizedSBOM {
	set := model.NewComponentSet()
	for _, c := range components {
		set.Put(c)
	}
	return &model.NormalizedSBOM{Components: set, Edges: edges}
}

func TestDiffDetectsAddedDependency(t *testing.T) {
	old := sbom([]*model.Component{
		{CID: model.CID{Value: "root"}},
		{CID: model.CID{Value: "a"}},
	}, []model.DependencyEdge{{From: "root", To: "a", Relationship: model.RelationshipDependsOn}})

	new := sbom([]*model.Component{
		{CID: model.CID{Value: "root"}},
		{CID: model.CID{Value: "a"}},
		{CID: model.CID{Value: "b"}},
	}, []model.DependencyEdge{
		{From: "root", To: "a", Relationship: model.RelationshipDependsOn},
		{From: "root", To: "b", Relationship: model.RelationshipDependsOn},
	})
	pairing := map[string]string{"root": "root", "a": "a"}

	events, summary := graphdiff.Diff(old, new, pairing, graphdiff.DefaultConfig())
	found := false
	for _, e := range events {
		if e.Kind == graphdiff.EventDependencyAdded && e.RelatedID == "b" {
			found = true
		}
	}
	if !found {
		t.Errorf("Diff() events = %v, want a DependencyAdded event for b", events)
	}
	if summary.Critical+summary.High+summary.Medium+summary.Low != len(events) {
		t.Error("Summary counts should add up to len(events)")
	}
}

func TestDiffDetectsDepthChange(t *testing.T) {
	old := sbom([]*model.Component{
		{CID: model.CID{Value: "root"}},
		{CID: model.CID{Value: "mid"}},
		{CID: model.CID{Value: "leaf"}},
	}, []model.DependencyEdge{
		{From: "root", To: "mid", Relationship: model.RelationshipDependsOn},
		{From: "mid", To: "leaf", Relationship: model.RelationshipDependsOn},
	})
	new := sbom([]*model.Component{
		{CID: model.CID{Value: "root"}},
		{CID: model.CID{Value: "mid"}},
		{CID: model.CID{Value: "leaf"}},
	}, []model.DependencyEdge{
		{From: "root", To: "mid", Relationship: model.RelationshipDependsOn},
		{From: "root", To: "leaf", Relationship: model.RelationshipDependsOn},
		{From: "mid", To: "leaf", Relationship: model.RelationshipDependsOn},
	})
	pairing := map[string]string{"root": "root", "mid": "mid", "leaf": "leaf"}

	events, _ := graphdiff.Diff(old, new, pairing, graphdiff.DefaultConfig())
	found := false
	for _, e := range events {
		if e.Kind == graphdiff.EventDepthChanged && e.ComponentID == "leaf" {
			found = true
			if e.OldDepth != 2 || e.NewDepth != 1 {
				t.Errorf("DepthChanged event = %+v, want OldDepth=2 NewDepth=1", e)
			}
		}
	}
	if !found {
		t.Errorf("Diff() events = %v, want a DepthChanged event for leaf", events)
	}
}

func TestDiffEventsSortedByImpact(t *testing.T) {
	old := sbom([]*model.Component{{CID: model.CID{Value: "root"}}}, nil)
	new := sbom([]*model.Component{
		{CID: model.CID{Value: "root"}},
		{CID: model.CID{Value: "vuln"}, Vulnerabilities: []model.VulnerabilityReference{{ID: "CVE-X"}}},
		{CID: model.CID{Value: "safe"}},
	}, []model.DependencyEdge{
		{From: "root", To: "vuln", Relationship: model.RelationshipDependsOn},
		{From: "root", To: "safe", Relationship: model.RelationshipDependsOn},
	})
	pairing := map[string]string{"root": "root"}

	events, _ := graphdiff.Diff(old, new, pairing, graphdiff.DefaultConfig())
	for i := 1; i < len(events); i++ {
		if events[i-1].Impact > events[i].Impact {
			t.Errorf("events not sorted by impact: %v before %v", events[i-1], events[i])
		}
	}
	if len(events) == 0 || events[0].Impact != graphdiff.ImpactCritical {
		t.Errorf("events[0].Impact = %v, want Critical (vulnerable+direct first)", events)
	}
}
