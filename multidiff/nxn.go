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
	"context"

	"github.com/sbom-tool/sbom-tools/diffcache"
	"github.com/sbom-tool/sbom-tools/model"
)

// Pair is one upper-triangle (i, j) comparison.
type Pair struct {
	I, J       int
	Similarity float64 // semantic_score / 100
}

// Cluster is a group of SBOM indices linked by greedy single-link
// clustering above the similarity threshold.
type Cluster struct {
	Members                []int
	MeanInternalSimilarity float64
}

// NxNResult is the complete output of NxN.
type NxNResult struct {
	Pairs    []Pair
	Clusters []Cluster
	Outliers []int // indices attached to no cluster
}

// NxN computes only the upper triangle of the n x n similarity
// matrix (pair count n(n-1)/2), then optionally clusters indices
// whose pairwise similarity meets clusterThreshold via greedy
// single-link clustering. A clusterThreshold <= 0 disables clustering
// entirely; every index is reported as an outlier.
func NxN(ctx context.Context, sboms []*model.NormalizedSBOM, cache *diffcache.Cache, clusterThreshold float64) (NxNResult, error) {
	var out NxNResult
	n := len(sboms)

	similarity := make(map[[2]int]float64, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			result, _, err := cache.Diff(ctx, sboms[i], sboms[j])
			if err != nil {
				return NxNResult{}, err
			}
			sim := result.SemanticScore / 100
			similarity[[2]int{i, j}] = sim
			out.Pairs = append(out.Pairs, Pair{I: i, J: j, Similarity: sim})
		}
	}

	if clusterThreshold <= 0 {
		for i := 0; i < n; i++ {
			out.Outliers = append(out.Outliers, i)
		}
		return out, nil
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for _, p := range out.Pairs {
		if p.Similarity >= clusterThreshold {
			union(p.I, p.J)
		}
	}

	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := find(i)
		groups[root] = append(groups[root], i)
	}

	for _, members := range groups {
		if len(members) < 2 {
			out.Outliers = append(out.Outliers, members[0])
			continue
		}
		var sum float64
		var count int
		for a := 0; a < len(members); a++ {
			for b := a + 1; b < len(members); b++ {
				i, j := members[a], members[b]
				if i > j {
					i, j = j, i
				}
				sum += similarity[[2]int{i, j}]
				count++
			}
		}
		mean := 0.0
		if count > 0 {
			mean = sum / float64(count)
		}
		out.Clusters = append(out.Clusters, Cluster{Members: members, MeanInternalSimilarity: mean})
	}

	return out, nil
}
