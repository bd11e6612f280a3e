package btsp

import (
	"math"
	"time"
)

// Solve runs the threshold search for the bottleneck objective: a binary
// search over the ranks of the distinct cost values, asking SolveFeasible
// at each probed threshold. Heuristic oracles can miss existing tours, so
// a "no" answer only advances the search; optimality is either implied by
// reaching the lower bound or established by the confirm step, which must
// use an exact oracle.
//
// result holds the best tour found and the accumulated search statistics.
func Solve(problem Problem, info *ProblemInfo, params *Params, result *Result) error {
	start := time.Now()
	defer func() {
		result.TotalTime = time.Since(start)
	}()

	list := info.CostList
	cur := NewResult(problem)

	low := 0
	high := len(list) - 1

	// Probe the lower bound first. A tour there cannot be beaten.
	if params.LowerBound >= info.MinCost {
		feasible, err := probe(problem, params.Steps, info, params.LowerBound, cur, result)
		if err != nil {
			return err
		}
		if feasible {
			result.Optimal = true
			Log(2, "found tour at the lower bound %d, search done", result.Obj)
			return nil
		}
		pos, found := binarySearchInt(list, params.LowerBound)
		if found {
			pos++
		}
		low = pos
	}

	// The upper end starts at the given bound or the best tour the first
	// probe happened to produce, whichever rank is smaller.
	if params.UpperBound != math.MaxInt32 && params.UpperBound < info.MaxCost {
		if h := info.rankFloor(params.UpperBound); h < high {
			high = h
		}
	}
	if result.FoundTour {
		rank, ok := info.CostIndex(result.Obj)
		if !ok {
			return ErrCostNotFound
		}
		if rank < high {
			high = rank
		}
	}

	if params.SuppressBinarySearch {
		if low <= high {
			if _, err := probe(problem, params.Steps, info, list[high], cur, result); err != nil {
				return err
			}
		}
	} else {
		for low < high {
			median := low + (high-low)/2
			delta := list[median]
			Log(3, "probing threshold %d (rank %d in [%d,%d])", delta, median, low, high)
			feasible, err := probe(problem, params.Steps, info, delta, cur, result)
			if err != nil {
				return err
			}
			if feasible {
				// The tour may undershoot the probed threshold, so resume
				// at its true objective instead of at delta.
				rank, ok := info.CostIndex(result.Obj)
				if !ok {
					return ErrCostNotFound
				}
				if rank < median {
					high = rank
				} else {
					high = median
				}
			} else {
				low = median + 1
				// A failed probe can still return a valid tour; its
				// largest cost tightens the upper end.
				if result.FoundTour {
					rank, ok := info.CostIndex(result.Obj)
					if !ok {
						return ErrCostNotFound
					}
					if rank < high {
						high = rank
						if low > high {
							low = high
						}
					}
				}
			}
		}
	}

	if params.ConfirmSolution && params.ConfirmStep != nil && result.FoundTour && result.Obj > params.LowerBound {
		Log(2, "confirming objective %d", result.Obj)
		feasible, err := probe(problem, []SolveStep{*params.ConfirmStep}, info, result.Obj-1, cur, result)
		if err != nil {
			return err
		}
		if !feasible {
			result.Optimal = true
		}
	}
	if result.FoundTour && result.Obj <= params.LowerBound {
		result.Optimal = true
	}
	return nil
}

// probe runs one feasibility question at delta and folds the outcome into
// result: counters always, the solution whenever it improves the incumbent.
func probe(problem Problem, steps []SolveStep, info *ProblemInfo, delta int, cur, result *Result) (bool, error) {
	feasible, err := SolveFeasible(problem, steps, info.MinCost, delta, cur)
	result.BinSearchSteps++
	result.addCounters(cur)
	if err != nil {
		return false, err
	}
	if cur.FoundTour && (!result.FoundTour || cur.Obj < result.Obj) {
		result.copySolution(cur)
	}
	return feasible, nil
}
