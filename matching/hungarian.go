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

package matching

const hungarianScale = 1_000_000
const hungarianSentinel = int64(1) << 40

// hungarianAssign builds a square cost matrix from the candidate set
// (scores negated and scaled to integers, missing edges a large
// sentinel cost, padded square with zero-cost rows/columns), solves it
// with the Hungarian (Kuhn-Munkres) algorithm, and returns only the
// pairs whose recovered score is positive (spec.md §4.6 step 3).
func hungarianAssign(unmatchedOld []string, cs *candidateSet) map[string]string {
	newIDs := newIDUniverse(unmatchedOld, cs)
	n := len(unmatchedOld)
	mcols := len(newIDs)
	size := n
	if mcols > size {
		size = mcols
	}
	if size == 0 {
		return nil
	}

	cost := make([][]int64, size)
	for i := range cost {
		cost[i] = make([]int64, size)
	}
	for i, oldID := range unmatchedOld {
		for j, newID := range newIDs {
			score, ok := cs.index[pairKey{oldID, newID}]
			if !ok {
				cost[i][j] = hungarianSentinel
				continue
			}
			cost[i][j] = int64(-score * hungarianScale)
		}
	}
	// Padding rows/columns (beyond n or mcols) default to zero cost,
	// satisfying the "padded square with zero-cost padding" rule.

	assignment := solveHungarian(cost)

	out := make(map[string]string)
	for i, oldID := range unmatchedOld {
		j := assignment[i]
		if j < 0 || j >= mcols {
			continue
		}
		newID := newIDs[j]
		score := cs.index[pairKey{oldID, newID}]
		if score > 0 {
			out[oldID] = newID
		}
	}
	return out
}

func newIDUniverse(unmatchedOld []string, cs *candidateSet) []string {
	seen := make(map[string]bool)
	var out []string
	for _, oldID := range unmatchedOld {
		for _, t := range cs.byOld[oldID] {
			if !seen[t.newID] {
				seen[t.newID] = true
				out = append(out, t.newID)
			}
		}
	}
	return out
}

// solveHungarian runs the classic O(n^3) Hungarian algorithm (shortest
// augmenting path with vertex potentials) on a square cost matrix and
// returns, for each row, the assigned column index.
func solveHungarian(cost [][]int64) []int {
	n := len(cost)
	const inf = int64(1) << 62

	u := make([]int64, n+1)
	v := make([]int64, n+1)
	p := make([]int, n+1) // p[j] = row assigned to column j (1-indexed), 0 = none
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]int64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = inf
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	for i := range assignment {
		assignment[i] = -1
	}
	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			assignment[p[j]-1] = j - 1
		}
	}
	return assignment
}
