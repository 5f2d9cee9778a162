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

// Package graphdiff detects structural changes in the dependency graph
// between two SBOMs: added/removed/reparented edges and depth changes,
// each classified by impact (spec.md §4.8).
package graphdiff

import (
	"sort"

	"github.com/sbom-tool/sbom-tools/model"
)

// Impact ranks how consequential a graph event is, most to least.
type Impact int

// Impact values.
const (
	ImpactCritical Impact = iota
	ImpactHigh
	ImpactMedium
	ImpactLow
)

func (i Impact) String() string {
	switch i {
	case ImpactCritical:
		return "critical"
	case ImpactHigh:
		return "high"
	case ImpactMedium:
		return "medium"
	default:
		return "low"
	}
}

// EventKind names the kind of graph event.
type EventKind int

// EventKind values.
const (
	EventDependencyAdded EventKind = iota
	EventDependencyRemoved
	EventDepthChanged
	EventReparented
)

func (k EventKind) String() string {
	switch k {
	case EventDependencyAdded:
		return "dependency_added"
	case EventDependencyRemoved:
		return "dependency_removed"
	case EventDepthChanged:
		return "depth_changed"
	default:
		return "reparented"
	}
}

// Event is one graph-level change attached to a (possibly paired) component.
type Event struct {
	Kind        EventKind
	ComponentID string // new-side CID the event is reported against
	RelatedID   string // the dependency/parent CID involved, when applicable
	OldDepth    int
	NewDepth    int
	Impact      Impact
}

// Summary counts events by impact.
type Summary struct {
	Critical, High, Medium, Low int
}

// Config toggles the optional detection passes.
type Config struct {
	DetectDepthChanges bool
	DetectReparenting  bool
	MaxDepth           int // 0 = unlimited
}

// DefaultConfig enables both optional passes with unlimited depth.
func DefaultConfig() Config {
	return Config{DetectDepthChanges: true, DetectReparenting: true, MaxDepth: 0}
}

// graph is the per-SBOM working state graphdiff needs: forward/reverse
// edge maps, BFS depth map, and the set of components carrying an
// actionable vulnerability.
type graph struct {
	forward    map[string][]string
	reverse    map[string][]string
	depth      map[string]int
	vulnerable map[string]bool
}

func buildGraph(sbom *model.NormalizedSBOM, maxDepth int) graph {
	g := graph{
		forward:    make(map[string][]string),
		reverse:    make(map[string][]string),
		depth:      make(map[string]int),
		vulnerable: make(map[string]bool),
	}
	for _, e := range sbom.Edges {
		g.forward[e.From] = append(g.forward[e.From], e.To)
		g.reverse[e.To] = append(g.reverse[e.To], e.From)
	}
	for _, c := range sbom.Components.All() {
		if len(c.ActionableVulnerabilities()) > 0 {
			g.vulnerable[c.CID.Value] = true
		}
	}

	hasParent := make(map[string]bool)
	for to := range g.reverse {
		hasParent[to] = true
	}
	var queue []string
	for _, id := range sbom.Components.Order() {
		if !hasParent[id] {
			g.depth[id] = 0
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range g.forward[cur] {
			nd := g.depth[cur] + 1
			if maxDepth > 0 && nd > maxDepth {
				continue
			}
			if existing, seen := g.depth[child]; !seen || nd < existing {
				g.depth[child] = nd
				queue = append(queue, child)
			}
		}
	}
	return g
}

// Diff computes graph events between old and new given a component
// pairing (old CID -> new CID or "").
func Diff(old, new *model.NormalizedSBOM, pairing map[string]string, cfg Config) ([]Event, Summary) {
	oldG := buildGraph(old, cfg.MaxDepth)
	newG := buildGraph(new, cfg.MaxDepth)

	reversePairing := make(map[string]string, len(pairing))
	for o, n := range pairing {
		if n != "" {
			reversePairing[n] = o
		}
	}

	var events []Event
	for _, newID := range new.Components.Order() {
		oldID, hadOld := reversePairing[newID]

		newChildren := uniqueSorted(newG.forward[newID])
		var oldChildrenRemapped []string
		if hadOld {
			for _, oc := range oldG.forward[oldID] {
				if mapped, ok := pairing[oc]; ok && mapped != "" {
					oldChildrenRemapped = append(oldChildrenRemapped, mapped)
				}
			}
		}
		oldChildSet := toSet(oldChildrenRemapped)
		newChildSet := toSet(newChildren)

		reparentedChildren := make(map[string]bool)
		if cfg.DetectReparenting && hadOld {
			oldParents := oldG.reverse[oldID]
			newParents := newG.reverse[newID]
			if len(oldParents) == 1 && len(newParents) == 1 {
				oldParentMapped, ok := pairing[oldParents[0]]
				if ok && oldParentMapped != "" && oldParentMapped != newParents[0] {
					events = append(events, Event{
						Kind:        EventReparented,
						ComponentID: newID,
						RelatedID:   newParents[0],
						Impact:      ImpactMedium,
					})
					reparentedChildren[newID] = true
				}
			}
		}

		for _, child := range newChildren {
			if reparentedChildren[newID] {
				continue
			}
			if !oldChildSet[child] {
				events = append(events, Event{
					Kind:        EventDependencyAdded,
					ComponentID: newID,
					RelatedID:   child,
					Impact:      addedImpact(newG, child),
				})
			}
		}
		for _, child := range oldChildrenRemapped {
			if reparentedChildren[newID] {
				continue
			}
			if !newChildSet[child] {
				events = append(events, Event{
					Kind:        EventDependencyRemoved,
					ComponentID: newID,
					RelatedID:   child,
					Impact:      removedImpact(oldG, child),
				})
			}
		}

		if cfg.DetectDepthChanges && hadOld {
			oldDepth, oldOK := oldG.depth[oldID]
			newDepth, newOK := newG.depth[newID]
			if oldOK && newOK && oldDepth != newDepth {
				events = append(events, Event{
					Kind:        EventDepthChanged,
					ComponentID: newID,
					OldDepth:    oldDepth,
					NewDepth:    newDepth,
					Impact:      depthChangeImpact(newG, newID, oldDepth, newDepth),
				})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Impact < events[j].Impact })
	return events, summarize(events)
}

func addedImpact(newG graph, childID string) Impact {
	vulnerable := newG.vulnerable[childID]
	direct := newG.depth[childID] == 1
	switch {
	case vulnerable && direct:
		return ImpactCritical
	case vulnerable:
		return ImpactHigh
	case direct:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func removedImpact(oldG graph, childID string) Impact {
	vulnerable := oldG.vulnerable[childID]
	direct := oldG.depth[childID] == 1
	switch {
	case vulnerable && direct:
		return ImpactCritical
	case vulnerable:
		return ImpactHigh
	case direct:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func depthChangeImpact(newG graph, newID string, oldDepth, newDepth int) Impact {
	movedCloser := newDepth < oldDepth
	becameDirect := newDepth == 1 && oldDepth > 1
	switch {
	case movedCloser && newG.vulnerable[newID]:
		return ImpactHigh
	case becameDirect:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func summarize(events []Event) Summary {
	var s Summary
	for _, e := range events {
		switch e.Impact {
		case ImpactCritical:
			s.Critical++
		case ImpactHigh:
			s.High++
		case ImpactMedium:
			s.Medium++
		default:
			s.Low++
		}
	}
	return s
}

func uniqueSorted(ids []string) []string {
	set := toSet(ids)
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}
