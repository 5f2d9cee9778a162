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

// Package diffcache wraps diffengine.Diff with a two-level cache keyed
// on each SBOM's section hashes, so repeated (old, new) pairs — and
// pairs that only differ in one section — are cheap (spec.md §4.11).
package diffcache

import (
	"context"
	"sync"

	"github.com/sbom-tool/sbom-tools/change"
	"github.com/sbom-tool/sbom-tools/diffengine"
	"github.com/sbom-tool/sbom-tools/graphdiff"
	"github.com/sbom-tool/sbom-tools/log"
	"github.com/sbom-tool/sbom-tools/model"
)

// Key identifies a cached diff by the section hashes of both sides.
// Section hashes, rather than a single content hash, are what let a
// partial hit tell which change computers are safe to reuse.
type Key struct {
	Old model.SectionHashes
	New model.SectionHashes
}

// HitKind reports which tier of the cache satisfied a lookup.
type HitKind int

// HitKind values.
const (
	Miss HitKind = iota
	FullHit
	PartialHit
)

func (h HitKind) String() string {
	switch h {
	case FullHit:
		return "full_hit"
	case PartialHit:
		return "partial_hit"
	default:
		return "miss"
	}
}

// Stats tallies lookups by HitKind.
type Stats struct {
	FullHits    int
	PartialHits int
	Misses      int
}

type entry struct {
	key    Key
	result diffengine.Result
}

// Cache wraps diffengine with the incremental cache described in
// spec.md §4.11. Zero value is not usable; construct with New.
type Cache struct {
	cfg diffengine.Config
	lru *lruCache[Key, entry]

	// byOldHash/byNewHash remember the most recent entry seen for a
	// given side's hash, so a partial-hit lookup for a new (old, new)
	// pair can find a cached entry sharing one side without scanning
	// the whole cache. A stale pointer here (its entry since evicted
	// from lru) is simply treated as no match.
	mu        sync.Mutex
	byOldHash map[model.SectionHashes]Key
	byNewHash map[model.SectionHashes]Key
	statsMu   sync.Mutex
	stats     Stats
}

// New returns a Cache with the given bounded capacity, wrapping Diff
// calls made under cfg.
func New(capacity int, cfg diffengine.Config) *Cache {
	return &Cache{
		cfg:       cfg,
		lru:       newLRUCache[Key, entry](capacity),
		byOldHash: make(map[model.SectionHashes]Key),
		byNewHash: make(map[model.SectionHashes]Key),
	}
}

// Stats returns a snapshot of the cache's hit-rate counters.
func (c *Cache) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// Diff returns the diff between old and new, computing it fully only
// on a miss. It reports which tier of the cache satisfied the call.
func (c *Cache) Diff(ctx context.Context, old, new *model.NormalizedSBOM) (diffengine.Result, HitKind, error) {
	oldSections, err := old.Sections()
	if err != nil {
		log.Warnf("diffcache: old SBOM section hashes unavailable, bypassing cache: %v", err)
		return c.computeMiss(ctx, old, new, Key{})
	}
	newSections, err := new.Sections()
	if err != nil {
		log.Warnf("diffcache: new SBOM section hashes unavailable, bypassing cache: %v", err)
		return c.computeMiss(ctx, old, new, Key{})
	}
	key := Key{Old: oldSections, New: newSections}

	if e, ok := c.lru.Get(key); ok {
		c.record(FullHit)
		return e.result, FullHit, nil
	}

	if result, ok, err := c.tryPartialHit(ctx, old, new, key); err != nil {
		return diffengine.Result{}, Miss, err
	} else if ok {
		c.record(PartialHit)
		c.store(key, result)
		return result, PartialHit, nil
	}

	return c.computeMiss(ctx, old, new, key)
}

func (c *Cache) computeMiss(ctx context.Context, old, new *model.NormalizedSBOM, key Key) (diffengine.Result, HitKind, error) {
	result, err := diffengine.Diff(ctx, old, new, c.cfg)
	if err != nil {
		return diffengine.Result{}, Miss, err
	}
	c.record(Miss)
	if key != (Key{}) {
		c.store(key, result)
	}
	return result, Miss, nil
}

func (c *Cache) store(key Key, result diffengine.Result) {
	evicted, didEvict := c.lru.Put(key, entry{key: key, result: result})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byOldHash[key.Old] = key
	c.byNewHash[key.New] = key
	if didEvict {
		if c.byOldHash[evicted.Old] == evicted {
			delete(c.byOldHash, evicted.Old)
		}
		if c.byNewHash[evicted.New] == evicted {
			delete(c.byNewHash, evicted.New)
		}
	}
}

func (c *Cache) record(kind HitKind) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	switch kind {
	case FullHit:
		c.stats.FullHits++
	case PartialHit:
		c.stats.PartialHits++
	case Miss:
		c.stats.Misses++
	}
}

// tryPartialHit looks for a cached entry sharing exactly one side's
// section hashes with key, and if found, recomputes only the change
// sections whose hash differs on the other side, reusing the rest
// from the cached entry (spec.md §4.11's partial-hit tier).
func (c *Cache) tryPartialHit(ctx context.Context, old, new *model.NormalizedSBOM, key Key) (diffengine.Result, bool, error) {
	c.mu.Lock()
	oldMatch, haveOldMatch := c.byOldHash[key.Old]
	newMatch, haveNewMatch := c.byNewHash[key.New]
	c.mu.Unlock()

	var candidateKey Key
	switch {
	case haveOldMatch && oldMatch != key:
		candidateKey = oldMatch
	case haveNewMatch && newMatch != key:
		candidateKey = newMatch
	default:
		return diffengine.Result{}, false, nil
	}

	cached, ok := c.lru.Get(candidateKey)
	if !ok {
		return diffengine.Result{}, false, nil
	}

	componentsChanged := key.New.Components != cached.key.New.Components || key.Old.Components != cached.key.Old.Components
	depsChanged := key.New.Dependencies != cached.key.New.Dependencies || key.Old.Dependencies != cached.key.Old.Dependencies
	licensesChanged := key.New.Licenses != cached.key.New.Licenses || key.Old.Licenses != cached.key.Old.Licenses
	vulnsChanged := key.New.Vulnerabilities != cached.key.New.Vulnerabilities || key.Old.Vulnerabilities != cached.key.Old.Vulnerabilities

	if !componentsChanged && !depsChanged && !licensesChanged && !vulnsChanged {
		// Identical sections under a different Key shouldn't happen
		// (that would already be a full hit), but if it does there's
		// nothing to recompute.
		return cached.result, true, nil
	}

	if componentsChanged || depsChanged {
		// Pairing-affecting sections changed: the Matching Engine must
		// re-run, which makes every downstream stage cheaper to just
		// recompute in full than to thread the change through piecemeal.
		result, err := diffengine.Diff(ctx, old, new, c.cfg)
		return result, err == nil, err
	}

	result := cached.result
	result.FastPathEqual = false
	if licensesChanged {
		result.Licenses = change.Licenses(old, new)
	}
	if vulnsChanged {
		result.Vulnerabilities = change.Vulnerabilities(old, new)
		if c.cfg.GraphDiff != nil {
			pairing := diffengine.Pairing(ctx, old, new, c.cfg)
			result.GraphEvents, result.GraphSummary = graphdiff.Diff(old, new, pairing, *c.cfg.GraphDiff)
		}
	}
	result.SemanticScore = c.cfg.Cost.CalculateSemanticScore(diffengine.Counts(result))
	return result, true, nil
}
