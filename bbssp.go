package btsp

import (
	"time"
)

// SolveBBSSP computes the bottleneck biconnected spanning subgraph bound.
// Every tour is a biconnected spanning subgraph, so the smallest threshold
// at which the edges within it form a biconnected graph is a lower bound
// on the bottleneck objective. The threshold is found by binary search
// over the ranks of the distinct cost values.
func SolveBBSSP(problem Problem, info *ProblemInfo) (BoundResult, error) {
	start := time.Now()
	result := BoundResult{}
	if !problem.Symmetric() {
		return result, ErrAsymmetric
	}

	list := info.CostList
	low := 0
	high := len(list) - 1
	for low < high {
		median := low + (high-low)/2
		if Biconnected(problem, list[median]) {
			high = median
		} else {
			low = median + 1
		}
	}
	result.ObjValue = list[low]
	result.TotalTime = time.Since(start)
	return result, nil
}

// Biconnected reports whether the graph containing exactly the edges with
// cost at most maxCost spans all nodes and has no articulation point. The
// check is a single depth first search over the implicit adjacency
// structure, kept iterative so large instances do not exhaust the stack.
func Biconnected(problem Problem, maxCost int) bool {
	n := problem.Size()
	if n < 3 {
		return n > 0
	}

	visited := make([]bool, n)
	depth := make([]int, n)
	lowPoint := make([]int, n)
	parent := make([]int, n)

	type frame struct {
		node int
		next int
	}
	stack := make([]frame, 1, n)
	stack[0] = frame{node: 0}
	visited[0] = true
	parent[0] = -1
	rootChildren := 0
	seen := 1

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		u := top.node
		if top.next < n {
			v := top.next
			top.next++
			if v == u || problem.Cost(u, v) > maxCost {
				continue
			}
			if !visited[v] {
				visited[v] = true
				seen++
				depth[v] = depth[u] + 1
				lowPoint[v] = depth[v]
				parent[v] = u
				if u == 0 {
					rootChildren++
				}
				stack = append(stack, frame{node: v})
			} else if v != parent[u] && depth[v] < lowPoint[u] {
				lowPoint[u] = depth[v]
			}
			continue
		}
		stack = stack[:len(stack)-1]
		p := parent[u]
		if p < 0 {
			continue
		}
		if lowPoint[u] < lowPoint[p] {
			lowPoint[p] = lowPoint[u]
		}
		// A non-root node p is an articulation point when some child
		// subtree cannot reach above it.
		if p != 0 && lowPoint[u] >= depth[p] {
			return false
		}
	}

	if seen < n {
		return false
	}
	return rootChildren <= 1
}
