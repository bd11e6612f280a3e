package btsp

import (
	"time"
)

// SolveFeasible answers the question whether problem admits a tour whose
// largest cost is at most maxCost. The given steps are tried in order;
// each step rewrites the cost matrix through its function and asks its
// tour oracle for a tour, up to Attempts times with freshly initialized
// function state. The first certified tour stops the search.
//
// result always reflects the best tour seen, feasible or not, measured by
// its true largest cost in problem. Counters for oracle attempts and
// times accumulate over all steps.
func SolveFeasible(problem Problem, steps []SolveStep, minCost, maxCost int, result *Result) (bool, error) {
	result.FoundTour = false
	result.Optimal = false

	for s := range steps {
		step := &steps[s]
		for attempt := 0; attempt < step.Attempts; attempt++ {
			if err := step.Fun.Initialize(); err != nil {
				return false, err
			}
			derived, err := Apply(step.Fun, problem, maxCost)
			if err != nil {
				return false, err
			}

			tspResult := NewTSPResult(derived)
			start := time.Now()
			err = step.Oracle.Solve(derived, tspResult)
			elapsed := time.Since(start)
			result.SolverAttempts[step.Oracle.Kind()]++
			result.SolverTime[step.Oracle.Kind()] += elapsed
			if err != nil {
				return false, err
			}
			if !tspResult.FoundTour {
				Log(3, "%s found no tour at threshold %d (attempt %d)",
					SolverNames[step.Oracle.Kind()], maxCost, attempt+1)
				continue
			}

			feasible, err := step.Fun.Feasible(problem, maxCost, tspResult.ObjValue, tspResult.Tour)
			if err != nil {
				return false, err
			}
			if feasible {
				actualObj, actualLength := tourCosts(problem, tspResult.Tour)
				result.FoundTour = true
				result.Obj = actualObj
				result.TourLength = actualLength
				copy(result.Tour, tspResult.Tour)
				Log(3, "%s certified threshold %d with objective %d",
					SolverNames[step.Oracle.Kind()], maxCost, actualObj)
				return true, nil
			}
			// A failed attempt can still hand back a valid tour; its true
			// largest cost is an upper bound the threshold search can use.
			if obj, length, ok := step.Fun.Incumbent(problem, tspResult.Tour); ok {
				if !result.FoundTour || obj < result.Obj {
					result.FoundTour = true
					result.Obj = obj
					result.TourLength = length
					copy(result.Tour, tspResult.Tour)
				}
			}
		}
	}
	return false, nil
}
