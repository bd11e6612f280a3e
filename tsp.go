package btsp

// TourOracle answers plain TSP questions on (possibly rewritten) cost
// matrices. Kind indexes the attempt and time counters of Result.
type TourOracle interface {
	Kind() int
	Solve(problem Problem, result *TSPResult) error
}

// LKParams mirrors the knobs of a Lin-Kernighan style solver. The zero
// values leave the choice to the solver; DefaultLKParams scales the
// effort with the instance size.
type LKParams struct {
	Restarts    int
	StallCount  int
	Kicks       int
	LengthBound float64
	InitialTour []int
}

func DefaultLKParams(problem Problem) LKParams {
	return LKParams{
		StallCount: problem.Size(),
		Kicks:      max2(problem.Size()/2, 500),
	}
}

// FuncOracle adapts a plain function to the TourOracle interface, used to
// plug external solvers (e.g. a Lin-Kernighan binding) into a solve plan
// without a dedicated type.
type FuncOracle struct {
	K int
	F func(problem Problem, result *TSPResult) error
}

func (o *FuncOracle) Kind() int {
	return o.K
}

func (o *FuncOracle) Solve(problem Problem, result *TSPResult) error {
	return o.F(problem, result)
}
