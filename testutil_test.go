package btsp

import (
	"math"
)

// scenarioProblem is a 4 node instance whose optimal bottleneck tour is
// 0-1-3-2-0 with objective 6. Costs: C(0,1)=1, C(0,2)=5, C(0,3)=9,
// C(1,2)=2, C(1,3)=6, C(2,3)=3.
func scenarioProblem() *MatrixProblem {
	weights := [][]int{
		{0, 1, 5, 9},
		{1, 0, 2, 6},
		{5, 2, 0, 3},
		{9, 6, 3, 0},
	}
	return NewMatrixProblem("scenario", weights, true)
}

// asymScenarioProblem is a 3 node directed instance whose only tour with
// bottleneck 4 is 0-1-2-0 (costs 2, 3, 4); the reverse direction costs
// 9, 8, 7.
func asymScenarioProblem() *MatrixProblem {
	weights := [][]int{
		{0, 2, 9},
		{7, 0, 3},
		{4, 8, 0},
	}
	return NewMatrixProblem("asym-scenario", weights, false)
}

// bruteForceOracle enumerates all tours and returns the one with the
// smallest total length. It stands in for the MIP solver in tests, which
// must not depend on an installed license.
type bruteForceOracle struct{}

func (o *bruteForceOracle) Kind() int {
	return SOLVER_EXACT
}

func (o *bruteForceOracle) Solve(problem Problem, result *TSPResult) error {
	n := problem.Size()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := math.MaxFloat64
	found := false
	var permute func(k int)
	permute = func(k int) {
		if k == n {
			_, length := tourCosts(problem, perm)
			if length < best {
				best = length
				found = true
				copy(result.Tour, perm)
			}
			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			permute(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	// Tours are rotation invariant, node 0 can stay in front.
	permute(1)
	result.FoundTour = found
	result.ObjValue = best
	return nil
}

// failingOracle never finds a tour, for exercising the attempt counters.
type failingOracle struct {
	kind  int
	calls int
}

func (o *failingOracle) Kind() int {
	return o.kind
}

func (o *failingOracle) Solve(problem Problem, result *TSPResult) error {
	o.calls++
	result.FoundTour = false
	return nil
}
