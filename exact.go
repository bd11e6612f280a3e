/* Copyright 2021, Arkadiusz Zarychta */
/* Copyright 2021, Gurobi Optimization, LLC */

package btsp

import (
	"fmt"
	"time"

	"git.solver4all.com/azaryc2s/gorobi/gurobi"
)

// ExactSolver answers TSP questions with a MIP over directed edge
// variables: degree-2 constraints up front, subtours cut off lazily in a
// callback. Symmetric problems are simply solved as directed instances
// with mirrored costs. The environment is shared across calls so the
// license is checked out once.
type ExactSolver struct {
	Env *gurobi.Env
}

func (s *ExactSolver) Kind() int {
	return SOLVER_EXACT
}

type subtourData struct {
	N int32
}

// findSubtour extracts the smallest cycle from an integer feasible edge
// assignment.
func findSubtour(sol [][]float64) []int32 {
	n := int32(len(sol))
	seen := make([]bool, n)
	tour := make([]int32, n)

	start := int32(0)
	bestlen := n + 1
	bestind := int32(-1)
	i := int32(0)
	node := int32(0)
	for start < n {
		for node = 0; node < n; node++ {
			if !seen[node] {
				break
			}
		}
		if node == n {
			break
		}
		for leng := int32(0); leng < n; leng++ {
			tour[start+leng] = node
			seen[node] = true
			for i = 0; i < n; i++ {
				if sol[node][i] > 0.5 && !seen[i] {
					node = i
					break
				}
			}
			if i == n {
				leng++
				if leng < bestlen {
					bestlen = leng
					bestind = start
				}
				start += leng
				break
			}
		}
	}

	return tour[bestind : bestind+bestlen]
}

// subtourElim adds a lazy subtour elimination constraint whenever an
// integer solution contains a cycle shorter than the full tour.
func subtourElim(model *gurobi.Model, cbdata gurobi.CPVoid, where int32, usrdata interface{}) int32 {
	n := usrdata.(subtourData).N

	if where == gurobi.CB_MIPSOL {
		sol, err := gurobi.CbGetDblMatrix(cbdata, where, gurobi.CB_MIPSOL_SOL, int(n))
		if err != nil {
			Log(1, "reading callback solution: %s", err)
			return 0
		}
		tour := findSubtour(sol)
		if int32(len(tour)) < n {
			var (
				ind []int32
				val []float64
			)
			for i := 0; i < len(tour); i++ {
				for j := 0; j < len(tour); j++ {
					ind = append(ind, tour[i]*n+tour[j])
				}
			}
			for i := 0; i < len(ind); i++ {
				val = append(val, 1.0)
			}
			err = gurobi.CbLazy(cbdata, len(ind), ind, val, gurobi.LESS_EQUAL, float64(len(tour)-1))
			if err != nil {
				Log(1, "adding lazy subtour constraint: %s", err)
			}
		}
	}

	return 0
}

func (s *ExactSolver) Solve(problem Problem, result *TSPResult) error {
	start := time.Now()
	n := problem.Size()

	model, err := s.Env.NewModel("tsp", 0, nil, nil, nil, nil, nil)
	if err != nil {
		return err
	}
	defer model.Free()

	if err := model.SetIntAttr(gurobi.INT_ATTR_MODELSENSE, gurobi.MINIMIZE); err != nil {
		return err
	}

	/* One binary variable per directed edge */
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			name := fmt.Sprintf("x_%d_%d", i, j)
			cost := 0
			if i != j {
				cost = problem.Cost(i, j)
			}
			if err := model.AddVar(nil, nil, float64(cost), 0.0, 1.0, gurobi.BINARY, name); err != nil {
				return err
			}
		}
	}

	/* Degree-2 constraints, one outgoing and one incoming per node */
	var (
		ind []int
		val []float64
	)
	for i := 0; i < n; i++ {
		ind = nil
		val = nil
		for j := 0; j < n; j++ {
			ind = append(ind, i*n+j)
			val = append(val, 1.0)
		}
		if err := model.AddConstr(gurobi.Int32Slice(ind), val, gurobi.EQUAL, 1, fmt.Sprintf("deg2o_%d", i)); err != nil {
			return err
		}

		ind = nil
		val = nil
		for j := 0; j < n; j++ {
			ind = append(ind, j*n+i)
			val = append(val, 1.0)
		}
		if err := model.AddConstr(gurobi.Int32Slice(ind), val, gurobi.EQUAL, 1, fmt.Sprintf("deg2i_%d", i)); err != nil {
			return err
		}
	}

	/* Forbid edges from a node back to itself */
	for i := 0; i < n; i++ {
		if err := model.SetDblAttrElem(gurobi.DBL_ATTR_UB, int32(i*n+i), 0); err != nil {
			return err
		}
	}

	if err := model.SetCallbackFuncGo(subtourElim, subtourData{N: int32(n)}); err != nil {
		return err
	}
	if err := model.SetIntParam(gurobi.INT_PAR_LAZYCONSTRAINTS, 1); err != nil {
		return err
	}

	if err := model.Optimize(); err != nil {
		return err
	}

	solcount, err := model.GetIntAttr(gurobi.INT_ATTR_SOLCOUNT)
	if err != nil {
		return err
	}
	if solcount == 0 {
		result.FoundTour = false
		result.TotalTime = time.Since(start)
		return nil
	}

	sol, err := model.GetDblAttrMatrix(gurobi.DBL_ATTR_X, 0, int32(n))
	if err != nil {
		return err
	}
	tour := findSubtour(sol)
	if len(tour) < n {
		// Lazy cuts should have eliminated all subtours in the incumbent.
		return fmt.Errorf("btsp: exact solver returned a subtour of length %d on %d nodes", len(tour), n)
	}
	for i, node := range tour {
		result.Tour[i] = int(node)
	}
	_, length := tourCosts(problem, result.Tour)
	result.FoundTour = true
	result.ObjValue = length
	result.TotalTime = time.Since(start)
	return nil
}
