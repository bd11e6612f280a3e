package btsp

import (
	"math/rand"
)

// BasicFun is the classic bottleneck rewrite: costs at or below the
// threshold become 0, everything above keeps its value. A tour of length 0
// in the rewritten problem then uses only edges within the threshold.
type BasicFun struct {
	funBase
}

func NewBasicFun(shallow bool) *BasicFun {
	return &BasicFun{funBase{shallow: shallow}}
}

func (f *BasicFun) Cost(base Problem, delta, i, j int) int {
	cost := base.Cost(i, j)
	if cost < 0 {
		return cost
	}
	if cost <= delta {
		return 0
	}
	return cost
}

func (f *BasicFun) Feasible(base Problem, delta int, tourLength float64, tour []int) (bool, error) {
	if !f.tourRespectsThreshold(base, delta, tour) {
		return false, nil
	}
	return tourLength <= 0, nil
}

// ShakeIFun rewrites like BasicFun below the threshold but adds a random
// value tied to the cost's rank onto every cost above it. The random
// offsets break the cost plateaus that make the basic rewrite hard for
// local search; since the offsets are sorted by rank, the order of the
// rewritten costs stays the order of the originals. infinity is only the
// fallback for costs missing from the rank index.
type ShakeIFun struct {
	funBase

	infinity   int
	randomMin  int
	randomMax  int
	info       *ProblemInfo
	rng        *rand.Rand
	randomList []int
}

// NewShakeIFun builds a shake function drawing offsets from
// [randomMin, randomMax]. The interval must hold at least one distinct
// value per entry of the cost list.
func NewShakeIFun(shallow bool, infinity, randomMin, randomMax int, info *ProblemInfo, rng *rand.Rand) *ShakeIFun {
	return &ShakeIFun{
		funBase:    funBase{shallow: shallow},
		infinity:   infinity,
		randomMin:  randomMin,
		randomMax:  randomMax,
		info:       info,
		rng:        rng,
		randomList: make([]int, len(info.CostList)),
	}
}

// Initialize draws a fresh sorted list of distinct random offsets, one per
// distinct cost value, so that the rank order of costs is preserved.
func (f *ShakeIFun) Initialize() error {
	f.err = nil
	return randomDistinctSorted(f.rng, f.randomMin, f.randomMax, len(f.info.CostList), f.randomList)
}

func (f *ShakeIFun) Cost(base Problem, delta, i, j int) int {
	cost := base.Cost(i, j)
	if cost < 0 {
		return cost
	}
	if cost <= delta {
		return 0
	}
	rank, ok := f.info.CostIndex(cost)
	if !ok {
		if f.err == nil {
			f.err = ErrCostNotFound
		}
		return f.infinity
	}
	return cost + f.randomList[rank]
}

func (f *ShakeIFun) Feasible(base Problem, delta int, tourLength float64, tour []int) (bool, error) {
	if err := f.err; err != nil {
		return false, err
	}
	if !f.tourRespectsThreshold(base, delta, tour) {
		return false, nil
	}
	return tourLength <= 0, nil
}
