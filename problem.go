package btsp

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrAsymmetric is returned when an algorithm that requires a
	// symmetric cost matrix is handed an asymmetric one.
	ErrAsymmetric = errors.New("btsp: solver only works on symmetric cost matrices")

	// ErrCostNotFound is returned when a cost value that must be present
	// in the ordered cost list cannot be resolved to a rank. This points
	// at an inconsistent ProblemInfo and is fatal.
	ErrCostNotFound = errors.New("btsp: could not find cost in ordered cost list")

	// ErrNoCosts is returned when a problem has no off-diagonal entries.
	ErrNoCosts = errors.New("btsp: problem has no edge costs")
)

// MatrixProblem is a fully materialized cost matrix.
type MatrixProblem struct {
	Name    string
	Weights [][]int
	Sym     bool
}

// NewMatrixProblem wraps an explicit weight matrix.
func NewMatrixProblem(name string, weights [][]int, symmetric bool) *MatrixProblem {
	return &MatrixProblem{Name: name, Weights: weights, Sym: symmetric}
}

// NewProblemFromInstance builds a problem from a JSON instance, deriving
// edge weights from node coordinates if no explicit matrix is present.
func NewProblemFromInstance(inst *Instance) (*MatrixProblem, error) {
	weights := inst.EdgeWeights
	if weights == nil {
		if inst.NodeCoordinates == nil {
			return nil, fmt.Errorf("btsp: instance %s has neither edge weights nor coordinates", inst.Name)
		}
		weights = CalcEdgeDist(inst.NodeCoordinates, inst.EdgeWeightType)
	}
	if len(weights) != inst.Dimension {
		return nil, fmt.Errorf("btsp: instance %s dimension is %d but weight matrix has %d rows",
			inst.Name, inst.Dimension, len(weights))
	}
	return NewMatrixProblem(inst.Name, weights, inst.Symmetric), nil
}

func (p *MatrixProblem) Size() int {
	return len(p.Weights)
}

func (p *MatrixProblem) Symmetric() bool {
	return p.Sym
}

func (p *MatrixProblem) Cost(i, j int) int {
	return p.Weights[i][j]
}

// abtspProblem is a symmetric double cover view of an asymmetric problem:
// every node i is split into node i and its copy i+n. The copy pair is
// joined by a forced edge of cost -infinity, nodes on the same side are
// separated by +infinity, and the edge between original j and copy i+n
// carries the original directed cost C(j,i).
type abtspProblem struct {
	base     Problem
	infinity int
}

// ABTSPToSBTSP builds the symmetric transformation of an asymmetric
// problem. A Hamiltonian cycle in the transformation that uses all n
// forced edges corresponds to a directed Hamiltonian cycle in the base
// problem with length shifted by n*infinity.
func ABTSPToSBTSP(base Problem, infinity int) (Problem, error) {
	if base.Symmetric() {
		return nil, fmt.Errorf("btsp: problem is already symmetric")
	}
	if infinity <= 0 {
		return nil, fmt.Errorf("btsp: infinity value %d is not positive", infinity)
	}
	return &abtspProblem{base: base, infinity: infinity}, nil
}

func (p *abtspProblem) Size() int {
	return p.base.Size() * 2
}

func (p *abtspProblem) Symmetric() bool {
	return true
}

func (p *abtspProblem) Cost(i, j int) int {
	if j > i {
		i, j = j, i
	}
	n := p.base.Size()
	if i < n || j >= n {
		return p.infinity
	}
	if i == j+n {
		return -p.infinity
	}
	return p.base.Cost(j, i-n)
}

// ProblemInfo carries the ordered list of distinct cost values of a
// problem together with an O(1) cost to rank lookup.
type ProblemInfo struct {
	CostList []int
	MinCost  int
	MaxCost  int

	index map[int]int
}

// NewProblemInfo scans all off-diagonal costs of problem and builds the
// strictly increasing list of distinct values.
func NewProblemInfo(problem Problem) (*ProblemInfo, error) {
	n := problem.Size()
	index := make(map[int]int)
	list := make([]int, 0, n)
	for i := 0; i < n; i++ {
		jMax := n
		if problem.Symmetric() {
			jMax = i
		}
		for j := 0; j < jMax; j++ {
			if i == j {
				continue
			}
			cost := problem.Cost(i, j)
			if _, ok := index[cost]; !ok {
				index[cost] = 0
				list = append(list, cost)
			}
		}
	}
	if len(list) == 0 {
		return nil, ErrNoCosts
	}

	info := &ProblemInfo{CostList: list, index: index}
	sort.Ints(info.CostList)
	for rank, cost := range info.CostList {
		info.index[cost] = rank
	}
	info.MinCost = info.CostList[0]
	info.MaxCost = info.CostList[len(info.CostList)-1]
	return info, nil
}

// CostIndex returns the rank of cost within CostList.
func (info *ProblemInfo) CostIndex(cost int) (int, bool) {
	rank, ok := info.index[cost]
	return rank, ok
}

// rankFloor returns the largest rank whose cost is <= value, clamped to 0.
func (info *ProblemInfo) rankFloor(value int) int {
	pos, found := binarySearchInt(info.CostList, value)
	if !found {
		pos--
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(info.CostList)-1 {
		pos = len(info.CostList) - 1
	}
	return pos
}

// Infinity returns a sentinel cost guaranteed to dominate every
// legitimate tour edge, following the (max_cost + slack) * 2 rule.
func (info *ProblemInfo) Infinity(slack int) int {
	inf := (info.MaxCost + slack) * 2
	if inf <= info.MaxCost {
		inf = math.MaxInt32 / 2
	}
	return inf
}
