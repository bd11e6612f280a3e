package btsp

// checkDoubleCoverTour walks the tour against the double cover base
// problem: every forced edge (negative cost) must be used, which is the
// case exactly when half the tour edges are forced, and every remaining
// edge must stay within the threshold.
func checkDoubleCoverTour(base Problem, delta int, tour []int) bool {
	n := base.Size()
	forced := 0
	for k := 0; k < n; k++ {
		cost := base.Cost(tour[k], tour[(k+1)%n])
		if cost < 0 {
			forced++
		} else if cost > delta {
			return false
		}
	}
	return forced == n/2
}

// AsymmetricFun is the bottleneck rewrite for the symmetric double cover
// of an asymmetric problem. Costs in [0, delta] become 0 and everything
// else keeps its value, so forced edges stay strongly negative and attract
// the oracle. The rewrite is only sound on a fully materialized matrix.
type AsymmetricFun struct {
	funBase
}

func NewAsymmetricFun() *AsymmetricFun {
	return &AsymmetricFun{funBase{shallow: false}}
}

func (f *AsymmetricFun) Cost(base Problem, delta, i, j int) int {
	cost := base.Cost(i, j)
	if cost >= 0 && cost <= delta {
		return 0
	}
	return cost
}

func (f *AsymmetricFun) Feasible(base Problem, delta int, tourLength float64, tour []int) (bool, error) {
	return checkDoubleCoverTour(base, delta, tour), nil
}

// Incumbent rejects tours that skip a forced edge; those do not map back
// to a tour of the original asymmetric instance.
func (f *AsymmetricFun) Incumbent(base Problem, tour []int) (int, float64, bool) {
	return doubleCoverIncumbent(base, tour)
}

// AsymmetricShiftFun lifts all non-forced costs by a constant shift and
// zeroes the forced edges, which keeps the whole rewritten matrix
// non-negative for oracles that cannot handle negative costs. Costs in
// [0, delta] map to shift, larger ones to cost + shift.
type AsymmetricShiftFun struct {
	funBase

	shift int
}

func NewAsymmetricShiftFun(shift int) *AsymmetricShiftFun {
	return &AsymmetricShiftFun{funBase: funBase{shallow: false}, shift: shift}
}

func (f *AsymmetricShiftFun) Cost(base Problem, delta, i, j int) int {
	cost := base.Cost(i, j)
	if cost < 0 {
		return 0
	}
	if cost <= delta {
		return f.shift
	}
	return cost + f.shift
}

func (f *AsymmetricShiftFun) Feasible(base Problem, delta int, tourLength float64, tour []int) (bool, error) {
	// Every tour pays the shift once per real edge. A larger length means
	// some edge exceeded the threshold; the tour walk settles the rest.
	if tourLength-float64(f.shift*(base.Size()/2)) > 0 {
		return false, nil
	}
	return checkDoubleCoverTour(base, delta, tour), nil
}

func (f *AsymmetricShiftFun) Incumbent(base Problem, tour []int) (int, float64, bool) {
	return doubleCoverIncumbent(base, tour)
}

func doubleCoverIncumbent(base Problem, tour []int) (int, float64, bool) {
	n := base.Size()
	forced := 0
	for k := 0; k < n; k++ {
		if base.Cost(tour[k], tour[(k+1)%n]) < 0 {
			forced++
		}
	}
	if forced != n/2 {
		return 0, 0, false
	}
	obj, length := tourCosts(base, tour)
	return obj, length, true
}
