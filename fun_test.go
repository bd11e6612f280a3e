package btsp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicFun(t *testing.T) {
	base := scenarioProblem()
	fun := NewBasicFun(true)

	derived, err := Apply(fun, base, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, derived.Cost(0, 1))
	assert.Equal(t, 0, derived.Cost(1, 2))
	assert.Equal(t, 0, derived.Cost(2, 3))
	assert.Equal(t, 5, derived.Cost(0, 2))
	assert.Equal(t, 9, derived.Cost(0, 3))

	feasible, err := fun.Feasible(base, 3, 0, nil)
	require.NoError(t, err)
	assert.True(t, feasible)

	feasible, err = fun.Feasible(base, 3, 5, nil)
	require.NoError(t, err)
	assert.False(t, feasible)
}

func TestBasicFunNegativePassthrough(t *testing.T) {
	weights := [][]int{
		{0, -7, 3},
		{-7, 0, 4},
		{3, 4, 0},
	}
	base := NewMatrixProblem("forced", weights, true)
	fun := NewBasicFun(false)

	derived, err := Apply(fun, base, 5)
	require.NoError(t, err)
	assert.Equal(t, -7, derived.Cost(0, 1))
	assert.Equal(t, 0, derived.Cost(0, 2))
}

func TestBasicFunForcedEdges(t *testing.T) {
	weights := [][]int{
		{0, -7, 1, 5},
		{-7, 0, 1, 1},
		{1, 1, 0, 1},
		{5, 1, 1, 0},
	}
	base := NewMatrixProblem("forced", weights, true)
	fun := NewBasicFun(true)

	// The rewritten length of 0-1-2-3 is -7+0+0+5 = -2, but edge (3,0)=5
	// breaks the threshold; the sum alone must not certify the tour.
	feasible, err := fun.Feasible(base, 1, -2, []int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.False(t, feasible)

	// A tour skipping the forced edge is no incumbent either.
	_, _, ok := fun.Incumbent(base, []int{0, 2, 1, 3})
	assert.False(t, ok)
	obj, _, ok := fun.Incumbent(base, []int{0, 1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, 5, obj)
}

func TestBasicFunForcedEdgesMustBeUsed(t *testing.T) {
	weights := [][]int{
		{0, -7, 1, 1},
		{-7, 0, 1, 1},
		{1, 1, 0, 1},
		{1, 1, 1, 0},
	}
	base := NewMatrixProblem("forced", weights, true)
	fun := NewBasicFun(true)

	// 0-2-1-3 stays within the threshold but leaves out the forced edge.
	feasible, err := fun.Feasible(base, 1, 0, []int{0, 2, 1, 3})
	require.NoError(t, err)
	assert.False(t, feasible)

	feasible, err = fun.Feasible(base, 1, -7, []int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.True(t, feasible)
}

func TestShakeIFunForcedEdges(t *testing.T) {
	weights := [][]int{
		{0, -7, 1, 5},
		{-7, 0, 1, 1},
		{1, 1, 0, 1},
		{5, 1, 1, 0},
	}
	base := NewMatrixProblem("forced", weights, true)
	info, err := NewProblemInfo(base)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(19))
	fun := NewShakeIFun(true, 1000, 0, 100, info, rng)
	require.NoError(t, fun.Initialize())

	feasible, err := fun.Feasible(base, 1, -2, []int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.False(t, feasible)
}

func TestApplyShallowAndDeepAgree(t *testing.T) {
	base := scenarioProblem()
	shallow, err := Apply(NewBasicFun(true), base, 5)
	require.NoError(t, err)
	deep, err := Apply(NewBasicFun(false), base, 5)
	require.NoError(t, err)

	for i := 0; i < base.Size(); i++ {
		for j := 0; j < base.Size(); j++ {
			if i == j {
				continue
			}
			assert.Equal(t, deep.Cost(i, j), shallow.Cost(i, j))
		}
	}
}

func TestShakeIFun(t *testing.T) {
	base := scenarioProblem()
	info, err := NewProblemInfo(base)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))
	infinity := info.Infinity(100)
	fun := NewShakeIFun(true, infinity, 0, 100, info, rng)
	require.NoError(t, fun.Initialize())

	derived, err := Apply(fun, base, 3)
	require.NoError(t, err)

	// Free edges stay free, everything else keeps its cost plus an offset
	// from the configured interval.
	assert.Equal(t, 0, derived.Cost(0, 1))
	assert.Equal(t, 0, derived.Cost(2, 3))
	assert.GreaterOrEqual(t, derived.Cost(0, 2), 5)
	assert.LessOrEqual(t, derived.Cost(0, 2), 5+100)
	assert.GreaterOrEqual(t, derived.Cost(1, 3), 6)
	assert.GreaterOrEqual(t, derived.Cost(0, 3), 9)

	// The offsets are sorted by rank, so the cost order is preserved.
	assert.Less(t, derived.Cost(0, 2), derived.Cost(1, 3))
	assert.Less(t, derived.Cost(1, 3), derived.Cost(0, 3))
	require.NoError(t, fun.Err())

	// Reinitializing draws a fresh offset table.
	before := derived.Cost(0, 2)
	changed := false
	for i := 0; i < 10 && !changed; i++ {
		require.NoError(t, fun.Initialize())
		changed = derived.Cost(0, 2) != before
	}
	assert.True(t, changed)
}

func TestShakeIFunRankMissIsFatal(t *testing.T) {
	base := scenarioProblem()
	// Info from a different problem misses the scenario's cost values.
	wrongInfo, err := NewProblemInfo(asymScenarioProblem())
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))
	fun := NewShakeIFun(false, 1000, 0, 100, wrongInfo, rng)
	require.NoError(t, fun.Initialize())

	_, err = Apply(fun, base, 3)
	require.Error(t, err)
	assert.Equal(t, ErrCostNotFound, err)
}

func TestShakeIFunIntervalTooSmall(t *testing.T) {
	base := scenarioProblem()
	info, err := NewProblemInfo(base)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))
	fun := NewShakeIFun(true, 1000, 0, 3, info, rng)
	assert.Error(t, fun.Initialize())
}

func TestConstrainedFun(t *testing.T) {
	base := scenarioProblem()
	fun := NewConstrainedFun(true, 1000, 15)

	derived, err := Apply(fun, base, 5)
	require.NoError(t, err)

	// Costs within the threshold keep their value for length minimization.
	assert.Equal(t, 1, derived.Cost(0, 1))
	assert.Equal(t, 5, derived.Cost(0, 2))
	assert.Equal(t, 1000, derived.Cost(1, 3))
	assert.Equal(t, 1000, derived.Cost(0, 3))

	feasible, err := fun.Feasible(base, 5, 15, nil)
	require.NoError(t, err)
	assert.True(t, feasible)

	feasible, err = fun.Feasible(base, 5, 15.5, nil)
	require.NoError(t, err)
	assert.False(t, feasible)

	// A tour over the budget is no incumbent either.
	_, _, ok := fun.Incumbent(base, []int{0, 2, 1, 3})
	assert.False(t, ok)
	obj, length, ok := fun.Incumbent(base, []int{0, 1, 3, 2})
	assert.True(t, ok)
	assert.Equal(t, 6, obj)
	assert.Equal(t, 15.0, length)
}

func TestConstrainedShakeFun(t *testing.T) {
	base := scenarioProblem()
	info, err := NewProblemInfo(base)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(3))
	fun := NewConstrainedShakeFun(true, 1000, 15, 0, 100, info, rng)
	require.NoError(t, fun.Initialize())

	derived, err := Apply(fun, base, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, derived.Cost(1, 2))
	assert.GreaterOrEqual(t, derived.Cost(1, 3), 1000)
	assert.GreaterOrEqual(t, derived.Cost(0, 3), derived.Cost(1, 3))
}

func TestAsymmetricFun(t *testing.T) {
	base := asymScenarioProblem()
	n := base.Size()
	work, err := ABTSPToSBTSP(base, 100)
	require.NoError(t, err)

	fun := NewAsymmetricFun()
	assert.False(t, fun.Shallow())

	derived, err := Apply(fun, work, 4)
	require.NoError(t, err)
	// In range costs collapse to zero, forced and infinite edges remain.
	assert.Equal(t, 0, derived.Cost(0, 1+n))
	assert.Equal(t, -100, derived.Cost(0, 0+n))
	assert.Equal(t, 100, derived.Cost(0, 1))
	assert.Equal(t, base.Cost(0, 2), derived.Cost(0, 2+n))

	// Uses all forced edges and stays within the threshold.
	good := []int{0, 1 + n, 1, 2 + n, 2, 0 + n}
	feasible, err := fun.Feasible(work, 4, 0, good)
	require.NoError(t, err)
	assert.True(t, feasible)

	// Same tour fails once the threshold drops below its largest edge.
	feasible, err = fun.Feasible(work, 3, 0, good)
	require.NoError(t, err)
	assert.False(t, feasible)

	// A tour skipping forced edges never maps back to a directed tour.
	bad := []int{0, 1, 2, 0 + n, 1 + n, 2 + n}
	feasible, err = fun.Feasible(work, 4, 0, bad)
	require.NoError(t, err)
	assert.False(t, feasible)
	_, _, ok := fun.Incumbent(work, bad)
	assert.False(t, ok)

	obj, _, ok := fun.Incumbent(work, good)
	assert.True(t, ok)
	assert.Equal(t, 4, obj)
}

func TestAsymmetricShiftFun(t *testing.T) {
	base := asymScenarioProblem()
	n := base.Size()
	work, err := ABTSPToSBTSP(base, 100)
	require.NoError(t, err)

	fun := NewAsymmetricShiftFun(10)
	derived, err := Apply(fun, work, 4)
	require.NoError(t, err)

	// Forced edges drop to zero, everything else is lifted by the shift.
	assert.Equal(t, 0, derived.Cost(0, 0+n))
	assert.Equal(t, 10, derived.Cost(0, 1+n))
	assert.Equal(t, 100+10, derived.Cost(0, 1))
	assert.Equal(t, base.Cost(0, 2)+10, derived.Cost(0, 2+n))

	good := []int{0, 1 + n, 1, 2 + n, 2, 0 + n}
	// Each of the n real edges pays exactly the shift.
	feasible, err := fun.Feasible(work, 4, float64(10*n), good)
	require.NoError(t, err)
	assert.True(t, feasible)

	feasible, err = fun.Feasible(work, 4, float64(10*n)+1, good)
	require.NoError(t, err)
	assert.False(t, feasible)
}
