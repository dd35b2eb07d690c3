// Package assign solves the linear assignment problem: given an n×n cost
// matrix, pick one column per row, all columns distinct, minimizing the
// total cost (Kuhn–Munkres / Hungarian method, O(n³)).
package assign

import (
	"fmt"
	"math"
)

// Solve returns perm with perm[i] the column assigned to row i. cost must be
// square; an empty matrix yields an empty assignment. Ties are broken
// deterministically for a given matrix.
func Solve(cost [][]int) []int {
	n := len(cost)
	for i, row := range cost {
		if len(row) != n {
			panic(fmt.Sprintf("assign: row %d has %d columns, want %d", i, len(row), n))
		}
	}
	if n == 0 {
		return []int{}
	}

	const inf = math.MaxInt / 2
	// 1-based potentials; column 0 is the virtual start column.
	u := make([]int, n+1)
	v := make([]int, n+1)
	match := make([]int, n+1) // match[j]: row assigned to column j, 0 if none
	way := make([]int, n+1)
	minv := make([]int, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		match[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}
		for {
			used[j0] = true
			i0, delta, j1 := match[j0], inf, 0
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
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if match[j0] == 0 {
				break
			}
		}
		// Augment along the alternating path.
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	perm := make([]int, n)
	for j := 1; j <= n; j++ {
		perm[match[j]-1] = j - 1
	}
	return perm
}

// Total sums cost[i][perm[i]].
func Total(cost [][]int, perm []int) int {
	sum := 0
	for i, j := range perm {
		sum += cost[i][j]
	}
	return sum
}
