package btsp

import (
	"math/rand"
)

// ConstrainedFun serves the length constrained variant: costs above the
// threshold are pushed to infinity while costs within it keep their value,
// so the oracle minimizes true length over the edges the threshold allows.
// A tour is feasible when its length stays within the instance budget.
type ConstrainedFun struct {
	funBase

	infinity       int
	feasibleLength float64
}

func NewConstrainedFun(shallow bool, infinity int, feasibleLength float64) *ConstrainedFun {
	return &ConstrainedFun{
		funBase:        funBase{shallow: shallow},
		infinity:       infinity,
		feasibleLength: feasibleLength,
	}
}

func (f *ConstrainedFun) Cost(base Problem, delta, i, j int) int {
	cost := base.Cost(i, j)
	if cost < 0 {
		return cost
	}
	if cost <= delta {
		return cost
	}
	return f.infinity
}

func (f *ConstrainedFun) Feasible(base Problem, delta int, tourLength float64, tour []int) (bool, error) {
	return tourLength <= f.feasibleLength, nil
}

// Incumbent rejects tours over the length budget; they are not valid
// solutions of a constrained instance at any threshold.
func (f *ConstrainedFun) Incumbent(base Problem, tour []int) (int, float64, bool) {
	obj, length := tourCosts(base, tour)
	return obj, length, length <= f.feasibleLength
}

// ConstrainedShakeFun adds rank based random offsets on top of the
// infinity penalty of ConstrainedFun, mirroring what ShakeIFun does for
// the plain bottleneck rewrite.
type ConstrainedShakeFun struct {
	funBase

	infinity       int
	feasibleLength float64
	randomMin      int
	randomMax      int
	info           *ProblemInfo
	rng            *rand.Rand
	randomList     []int
}

func NewConstrainedShakeFun(shallow bool, infinity int, feasibleLength float64, randomMin, randomMax int, info *ProblemInfo, rng *rand.Rand) *ConstrainedShakeFun {
	return &ConstrainedShakeFun{
		funBase:        funBase{shallow: shallow},
		infinity:       infinity,
		feasibleLength: feasibleLength,
		randomMin:      randomMin,
		randomMax:      randomMax,
		info:           info,
		rng:            rng,
		randomList:     make([]int, len(info.CostList)),
	}
}

func (f *ConstrainedShakeFun) Initialize() error {
	f.err = nil
	return randomDistinctSorted(f.rng, f.randomMin, f.randomMax, len(f.info.CostList), f.randomList)
}

func (f *ConstrainedShakeFun) Cost(base Problem, delta, i, j int) int {
	cost := base.Cost(i, j)
	if cost < 0 {
		return cost
	}
	if cost <= delta {
		return cost
	}
	rank, ok := f.info.CostIndex(cost)
	if !ok {
		if f.err == nil {
			f.err = ErrCostNotFound
		}
		return f.infinity
	}
	return f.infinity + f.randomList[rank]
}

func (f *ConstrainedShakeFun) Feasible(base Problem, delta int, tourLength float64, tour []int) (bool, error) {
	if err := f.err; err != nil {
		return false, err
	}
	return tourLength <= f.feasibleLength, nil
}

func (f *ConstrainedShakeFun) Incumbent(base Problem, tour []int) (int, float64, bool) {
	obj, length := tourCosts(base, tour)
	return obj, length, length <= f.feasibleLength
}
