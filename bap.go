package btsp

import (
	"math"
	"time"
)

// SolveBAP computes the bottleneck assignment bound. Every tour assigns
// each node a distinct successor, so the smallest threshold at which the
// edges within it carry a perfect bipartite matching is a lower bound on
// the bottleneck objective. Unlike BBSSP this bound also applies to
// asymmetric matrices. The threshold is found by binary search over the
// ranks of the distinct cost values.
func SolveBAP(problem Problem, info *ProblemInfo) (BoundResult, error) {
	start := time.Now()
	result := BoundResult{}

	list := info.CostList
	low := 0
	high := len(list) - 1
	for low < high {
		median := low + (high-low)/2
		if perfectMatchingExists(problem, list[median]) {
			high = median
		} else {
			low = median + 1
		}
	}
	result.ObjValue = list[low]
	result.TotalTime = time.Since(start)
	return result, nil
}

// perfectMatchingExists checks for a perfect matching between nodes and
// successors using only edges with cost at most delta. The matching is
// solved as a unit capacity max flow: source s feeds the left copies, the
// right copies drain into sink t. The bulk of the flow is pushed with
// shortest augmenting paths under the usual distance label stop bound;
// a plain labeling pass finishes off the last units if any are missing.
func perfectMatchingExists(problem Problem, delta int) bool {
	n := problem.Size()
	n2 := 2*n + 2
	s := n2 - 2
	t := n2 - 1

	res := make([][]int, n2)
	for i := range res {
		res[i] = make([]int, n2)
	}
	arcs := 2 * n
	for i := 0; i < n; i++ {
		res[s][i] = 1
		res[i+n][t] = 1
		for j := 0; j < n; j++ {
			if i != j && problem.Cost(i, j) <= delta {
				res[i][j+n] = 1
				arcs++
			}
		}
	}

	dist := make([]int, n2)
	for i := 0; i < n; i++ {
		dist[i] = 2
		dist[i+n] = 1
	}
	dist[s] = 3
	dist[t] = 0

	stop := min2(
		int(2*math.Pow(float64(n2), 2.0/3.0)+0.5),
		int(math.Sqrt(float64(arcs))+0.5),
	)

	flow := shortestAugmentingPaths(res, dist, s, t, stop)
	if flow < n {
		flow += augmentByLabeling(res, s, t, n-flow)
	}
	return flow == n
}

// shortestAugmentingPaths pushes unit flows along admissible arcs, where
// an arc (u,v) is admissible when it has residual capacity and
// dist[u] == dist[v]+1. Dead ends relabel the node and retreat. The
// search stops once dist[s] reaches the stop bound; remaining flow is
// cheaper to find by labeling at that point.
func shortestAugmentingPaths(res [][]int, dist []int, s, t, stop int) int {
	n2 := len(res)
	path := make([]int, 1, n2)
	path[0] = s
	flow := 0

	for dist[s] < stop {
		u := path[len(path)-1]
		if u == t {
			for k := len(path) - 1; k > 0; k-- {
				res[path[k-1]][path[k]]--
				res[path[k]][path[k-1]]++
			}
			flow++
			path = path[:1]
			continue
		}
		advanced := false
		for v := 0; v < n2; v++ {
			if res[u][v] > 0 && dist[u] == dist[v]+1 {
				path = append(path, v)
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}
		minDist := n2
		for v := 0; v < n2; v++ {
			if res[u][v] > 0 && dist[v] < minDist {
				minDist = dist[v]
			}
		}
		dist[u] = minDist + 1
		if len(path) > 1 {
			path = path[:len(path)-1]
		}
	}
	return flow
}

// augmentByLabeling finds up to need more augmenting paths by breadth
// first search over the residual graph.
func augmentByLabeling(res [][]int, s, t, need int) int {
	n2 := len(res)
	prev := make([]int, n2)
	queue := make([]int, 0, n2)
	added := 0

	for added < need {
		for i := range prev {
			prev[i] = -1
		}
		prev[s] = s
		queue = append(queue[:0], s)
		for len(queue) > 0 && prev[t] < 0 {
			u := queue[0]
			queue = queue[1:]
			for v := 0; v < n2; v++ {
				if res[u][v] > 0 && prev[v] < 0 {
					prev[v] = u
					queue = append(queue, v)
				}
			}
		}
		if prev[t] < 0 {
			break
		}
		for v := t; v != s; v = prev[v] {
			res[prev[v]][v]--
			res[v][prev[v]]++
		}
		added++
	}
	return added
}
