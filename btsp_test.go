package btsp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bruteForcePlan(fun Fun, attempts int) []SolveStep {
	return []SolveStep{{Oracle: &bruteForceOracle{}, Fun: fun, Attempts: attempts}}
}

func TestSolveScenarioWithLowerBound(t *testing.T) {
	base := scenarioProblem()
	info, err := NewProblemInfo(base)
	require.NoError(t, err)

	bound, err := SolveBBSSP(base, info)
	require.NoError(t, err)

	params := NewParams()
	params.LowerBound = bound.ObjValue
	params.Steps = bruteForcePlan(NewBasicFun(true), 1)

	result := NewResult(base)
	require.NoError(t, Solve(base, info, params, result))

	assert.True(t, result.FoundTour)
	assert.Equal(t, 6, result.Obj)
	assert.True(t, result.Optimal)
	// The bound is tight, a single probe settles it.
	assert.Equal(t, 1, result.BinSearchSteps)

	valid, comment := CheckSolutionValidity(result.Tour, base, result.Obj)
	assert.True(t, valid, comment)
}

func TestSolveScenarioWithConfirm(t *testing.T) {
	base := scenarioProblem()
	info, err := NewProblemInfo(base)
	require.NoError(t, err)

	params := NewParams()
	params.Steps = bruteForcePlan(NewBasicFun(true), 1)
	params.ConfirmSolution = true
	params.ConfirmStep = &SolveStep{Oracle: &bruteForceOracle{}, Fun: NewBasicFun(true), Attempts: 1}

	result := NewResult(base)
	require.NoError(t, Solve(base, info, params, result))

	assert.True(t, result.FoundTour)
	assert.Equal(t, 6, result.Obj)
	assert.True(t, result.Optimal)
	assert.Equal(t, 15.0, result.TourLength)
}

func TestSolveTourEdgesMatchObjective(t *testing.T) {
	base := scenarioProblem()
	info, err := NewProblemInfo(base)
	require.NoError(t, err)

	params := NewParams()
	params.Steps = bruteForcePlan(NewBasicFun(true), 1)

	result := NewResult(base)
	require.NoError(t, Solve(base, info, params, result))
	require.True(t, result.FoundTour)

	n := base.Size()
	hit := false
	for k := 0; k < n; k++ {
		cost := base.Cost(result.Tour[k], result.Tour[(k+1)%n])
		assert.LessOrEqual(t, cost, result.Obj)
		if cost == result.Obj {
			hit = true
		}
	}
	assert.True(t, hit)
}

func TestSolveIdempotentWithSeed(t *testing.T) {
	base := scenarioProblem()
	info, err := NewProblemInfo(base)
	require.NoError(t, err)

	run := func() *Result {
		rng := rand.New(rand.NewSource(42))
		rai := &RAISolver{Params: RAIParams{Iterations: 50, SolveBTSP: true}, Rng: rng}
		infinity := info.Infinity(100)
		params := NewParams()
		params.Steps = []SolveStep{
			{Oracle: rai, Fun: NewBasicFun(true), Attempts: 2},
			{Oracle: rai, Fun: NewShakeIFun(true, infinity, 0, 100, info, rng), Attempts: 2},
		}
		result := NewResult(base)
		require.NoError(t, Solve(base, info, params, result))
		return result
	}

	first := run()
	second := run()
	assert.Equal(t, first.FoundTour, second.FoundTour)
	assert.Equal(t, first.Obj, second.Obj)
	assert.Equal(t, first.Optimal, second.Optimal)
	assert.Equal(t, first.BinSearchSteps, second.BinSearchSteps)
}

func TestSolveConstrainedScenario(t *testing.T) {
	base := scenarioProblem()
	info, err := NewProblemInfo(base)
	require.NoError(t, err)
	infinity := info.Infinity(0)

	params := NewParams()
	params.Steps = bruteForcePlan(NewConstrainedFun(true, infinity, 15), 1)
	params.ConfirmSolution = true
	params.ConfirmStep = &SolveStep{Oracle: &bruteForceOracle{}, Fun: NewConstrainedFun(true, infinity, 15), Attempts: 1}

	result := NewResult(base)
	require.NoError(t, Solve(base, info, params, result))

	assert.True(t, result.FoundTour)
	assert.Equal(t, 6, result.Obj)
	assert.Equal(t, 15.0, result.TourLength)
	assert.True(t, result.Optimal)
}

func TestSolveConstrainedInfeasibleBudget(t *testing.T) {
	base := scenarioProblem()
	info, err := NewProblemInfo(base)
	require.NoError(t, err)
	infinity := info.Infinity(0)

	params := NewParams()
	params.Steps = bruteForcePlan(NewConstrainedFun(true, infinity, 14), 1)

	result := NewResult(base)
	require.NoError(t, Solve(base, info, params, result))
	assert.False(t, result.FoundTour)
}

func TestSolveAsymmetricScenario(t *testing.T) {
	base := asymScenarioProblem()
	baseInfo, err := NewProblemInfo(base)
	require.NoError(t, err)

	infinity := 100
	work, err := ABTSPToSBTSP(base, infinity)
	require.NoError(t, err)
	workInfo, err := NewProblemInfo(work)
	require.NoError(t, err)

	// The assignment bound on the original matrix is tight here.
	bound, err := SolveBAP(base, baseInfo)
	require.NoError(t, err)
	require.Equal(t, 4, bound.ObjValue)

	params := NewParams()
	params.LowerBound = bound.ObjValue
	params.Steps = bruteForcePlan(NewAsymmetricFun(), 1)

	result := NewResult(work)
	require.NoError(t, Solve(work, workInfo, params, result))

	assert.True(t, result.FoundTour)
	assert.Equal(t, 4, result.Obj)
	assert.True(t, result.Optimal)

	directed := SBTSPToABTSPTour(result.Tour, work.Size())
	require.Len(t, directed, base.Size())
	dirMax, dirLength := tourCosts(base, directed)
	assert.Equal(t, 4, dirMax)
	assert.Equal(t, dirLength, result.TourLength+float64(base.Size()*infinity))
}

func TestSolveUpperBoundCapsSearch(t *testing.T) {
	base := scenarioProblem()
	info, err := NewProblemInfo(base)
	require.NoError(t, err)

	// An upper bound below the optimum caps the probed thresholds; the
	// probes still hand back valid tours, but none within the cap, so no
	// optimality claim can be made.
	params := NewParams()
	params.UpperBound = 5
	params.Steps = bruteForcePlan(NewBasicFun(true), 1)

	result := NewResult(base)
	require.NoError(t, Solve(base, info, params, result))
	assert.False(t, result.Optimal)
	if result.FoundTour {
		assert.Greater(t, result.Obj, params.UpperBound)
		valid, comment := CheckSolutionValidity(result.Tour, base, result.Obj)
		assert.True(t, valid, comment)
	}
}
