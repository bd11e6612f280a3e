package btsp

// Fun rewrites the costs of a base problem relative to a threshold delta.
// The rewritten matrix turns the bottleneck question "is there a tour whose
// largest cost is at most delta" into a plain TSP question that a tour
// oracle can answer: Feasible decides whether an oracle tour in the
// rewritten problem certifies a yes.
//
// A shallow function is evaluated lazily on every Cost call; a deep one is
// materialized into an explicit matrix by Apply. Cost has no error return,
// so functions that can fail during evaluation latch the error internally
// and expose it through Err.
type Fun interface {
	// Cost maps a single base cost to its rewritten value.
	Cost(base Problem, delta, i, j int) int

	// Feasible reports whether the tour with the given length in the
	// rewritten problem proves feasibility at delta in the base problem.
	Feasible(base Problem, delta int, tourLength float64, tour []int) (bool, error)

	// Incumbent judges the tour of a failed attempt: ok reports whether
	// it is still a valid tour of the underlying instance, in which case
	// its true largest cost and length are returned so the threshold
	// search can use it as an upper bound.
	Incumbent(base Problem, tour []int) (obj int, length float64, ok bool)

	// Initialize resets any per-attempt state (e.g. fresh random values).
	Initialize() error

	// Err returns the first error latched during Cost evaluation.
	Err() error

	// Shallow reports whether Apply should wrap instead of materialize.
	Shallow() bool
}

// funBase carries the state shared by all cost matrix functions.
type funBase struct {
	shallow bool
	err     error

	forcedEdges int
	forcedKnown bool
}

func (f *funBase) Initialize() error {
	f.err = nil
	return nil
}

func (f *funBase) Err() error {
	return f.err
}

func (f *funBase) Shallow() bool {
	return f.shallow
}

// Incumbent accepts any tour of an unconstrained instance. On instances
// with forced (negative cost) edges a tour only counts when it uses all
// of them, otherwise it is no valid solution and must not become an
// upper bound.
func (f *funBase) Incumbent(base Problem, tour []int) (int, float64, bool) {
	if forced := f.countForcedEdges(base); forced > 0 && forcedEdgesOnTour(base, tour) < forced {
		return 0, 0, false
	}
	obj, length := tourCosts(base, tour)
	return obj, length, true
}

// countForcedEdges scans base once for negative cost edges and caches the
// result; symmetric problems count each pair once, matching a tour walk.
func (f *funBase) countForcedEdges(base Problem) int {
	if f.forcedKnown {
		return f.forcedEdges
	}
	n := base.Size()
	count := 0
	for i := 0; i < n; i++ {
		limit := n
		if base.Symmetric() {
			limit = i
		}
		for j := 0; j < limit; j++ {
			if i != j && base.Cost(i, j) < 0 {
				count++
			}
		}
	}
	f.forcedEdges = count
	f.forcedKnown = true
	return count
}

// tourRespectsThreshold guards instances with forced edges. Their negative
// costs can pull a rewritten tour length below zero even when the tour
// crosses an over-threshold edge, so the length criterion alone is not
// enough: the tour itself is walked, every edge has to stay within the
// threshold and every forced edge has to be used.
func (f *funBase) tourRespectsThreshold(base Problem, delta int, tour []int) bool {
	forced := f.countForcedEdges(base)
	if forced == 0 {
		return true
	}
	used := 0
	for i, u := range tour {
		cost := base.Cost(u, tour[(i+1)%len(tour)])
		if cost > delta {
			return false
		}
		if cost < 0 {
			used++
		}
	}
	return used >= forced
}

func forcedEdgesOnTour(base Problem, tour []int) int {
	used := 0
	for i, u := range tour {
		if base.Cost(u, tour[(i+1)%len(tour)]) < 0 {
			used++
		}
	}
	return used
}

// funProblem is the lazy view produced by Apply for shallow functions.
type funProblem struct {
	base  Problem
	fun   Fun
	delta int
}

func (p *funProblem) Size() int {
	return p.base.Size()
}

func (p *funProblem) Symmetric() bool {
	return p.base.Symmetric()
}

func (p *funProblem) Cost(i, j int) int {
	return p.fun.Cost(p.base, p.delta, i, j)
}

// Apply builds the problem that fun induces on base at threshold delta.
// Shallow functions yield a wrapper that evaluates costs on demand; deep
// ones are materialized into a full matrix so that errors surface here
// instead of in the middle of an oracle run.
func Apply(fun Fun, base Problem, delta int) (Problem, error) {
	if fun.Shallow() {
		return &funProblem{base: base, fun: fun, delta: delta}, nil
	}
	n := base.Size()
	weights := make([][]int, n)
	for i := 0; i < n; i++ {
		weights[i] = make([]int, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			weights[i][j] = fun.Cost(base, delta, i, j)
		}
	}
	if err := fun.Err(); err != nil {
		return nil, err
	}
	return NewMatrixProblem("", weights, base.Symmetric()), nil
}
