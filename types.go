package btsp

import (
	"fmt"
	"math"
	"time"
)

const (
	// TSP solver kinds, used to index the attempt/time counters.
	SOLVER_RAI = iota
	SOLVER_LK
	SOLVER_EXACT
	SOLVER_COUNT
)

const (
	TYPE_BTSP  = "BTSP"
	TYPE_ABTSP = "ABTSP"
	TYPE_CBTSP = "CBTSP"
)

// SolverNames maps the solver kind constants to printable names.
var SolverNames = [SOLVER_COUNT]string{"RAI", "LK", "EXACT"}

type Instance struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`

	Dimension       int         `json:"dimension"`
	Symmetric       bool        `json:"symmetric"`
	DisplayDataType string      `json:"display_data_type,omitempty"`
	EdgeWeightType  string      `json:"edge_weight_type"`
	NodeCoordinates [][]float64 `json:"node_coordinates,omitempty"`
	EdgeWeights     [][]int     `json:"edge_weights,omitempty"`

	// FeasibleLength > 0 marks a constrained instance (CBTSP): a tour is
	// only acceptable when its total length stays at or below this value.
	FeasibleLength float64 `json:"feasible_length,omitempty"`

	Solution *Solution `json:"solution,omitempty"`
}

type Solution struct {
	Obj        int     `json:"obj"`
	TourLength float64 `json:"tour_length"`
	Found      bool    `json:"found"`
	Optimal    bool    `json:"optimal"`
	Tour       []int   `json:"tour,omitempty"`

	BBSSPBound int `json:"bbssp_bound,omitempty"`
	BAPBound   int `json:"bap_bound,omitempty"`
	LBound     int `json:"lbound"`
	UBound     int `json:"ubound"`

	BinSearchSteps int      `json:"bin_search_steps"`
	SolverAttempts []int    `json:"solver_attempts"`
	SolverTimes    []string `json:"solver_times"`
	LowerBoundTime string   `json:"lower_bound_time,omitempty"`
	Time           string   `json:"time"`

	System  SysInfo `json:"system"`
	Comment string  `json:"comment"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}

// Problem is a read-only view of a cost matrix. Costs may be negative:
// negative costs encode forced ("virtual") edges introduced by
// transformations and must be treated as always active.
type Problem interface {
	Size() int
	Symmetric() bool
	Cost(i, j int) int
}

// Result holds the outcome of a bottleneck TSP solve.
type Result struct {
	FoundTour  bool
	Obj        int     // largest cost in the tour found
	TourLength float64 // total length of the tour found
	Tour       []int
	Optimal    bool

	BinSearchSteps int
	SolverAttempts [SOLVER_COUNT]int
	SolverTime     [SOLVER_COUNT]time.Duration
	TotalTime      time.Duration
}

// NewResult returns a result structure with the tour array sized for problem.
func NewResult(problem Problem) *Result {
	return &Result{
		Obj:        math.MaxInt32,
		TourLength: math.MaxFloat64,
		Tour:       make([]int, problem.Size()),
	}
}

func (r *Result) copySolution(from *Result) {
	r.FoundTour = from.FoundTour
	r.Obj = from.Obj
	r.TourLength = from.TourLength
	copy(r.Tour, from.Tour)
}

func (r *Result) addCounters(from *Result) {
	for i := 0; i < SOLVER_COUNT; i++ {
		r.SolverAttempts[i] += from.SolverAttempts[i]
		r.SolverTime[i] += from.SolverTime[i]
	}
}

// TSPResult holds the outcome of a single tour oracle call.
type TSPResult struct {
	FoundTour bool
	ObjValue  float64 // objective value in the (possibly derived) problem
	Tour      []int
	TotalTime time.Duration
}

// NewTSPResult returns a TSP result with the tour array sized for problem.
func NewTSPResult(problem Problem) *TSPResult {
	return &TSPResult{Tour: make([]int, problem.Size())}
}

// BoundResult holds the outcome of a lower bound computation.
type BoundResult struct {
	ObjValue  int
	TotalTime time.Duration
}

// SolveStep pairs a tour oracle with a cost matrix function. The engine
// performs up to Attempts oracle calls with freshly initialized function
// state before moving on to the next step.
type SolveStep struct {
	Oracle   TourOracle
	Fun      Fun
	Attempts int
}

// Params controls the threshold search in Solve.
type Params struct {
	ConfirmSolution      bool
	SuppressBinarySearch bool
	LowerBound           int
	UpperBound           int
	Steps                []SolveStep
	ConfirmStep          *SolveStep
}

// NewParams returns parameters with the bounds wide open.
func NewParams() *Params {
	return &Params{
		LowerBound: math.MinInt32,
		UpperBound: math.MaxInt32,
	}
}

// ArrayStringFlags collects repeated string flags.
type ArrayStringFlags []string

func (i *ArrayStringFlags) String() string {
	return fmt.Sprintf("%v", *i)
}

func (i *ArrayStringFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// ArrayIntFlags collects repeated integer flags.
type ArrayIntFlags []int

func (i *ArrayIntFlags) String() string {
	return fmt.Sprintf("%v", *i)
}

func (i *ArrayIntFlags) Set(value string) error {
	var v int
	if _, err := fmt.Sscanf(value, "%d", &v); err != nil {
		return err
	}
	*i = append(*i, v)
	return nil
}
