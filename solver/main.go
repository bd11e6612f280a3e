/* Copyright 2021, Arkadiusz Zarychta, arkadiusz.zarychta@h-brs.de */

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"math/rand"
	"strings"
	"time"

	"git.solver4all.com/azaryc2s/btsp"
	"git.solver4all.com/azaryc2s/gorobi/gurobi"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

var (
	sol   btsp.Solution
	pInst btsp.Instance

	lbounds btsp.ArrayStringFlags

	inputF     *string
	outputF    *string
	logLvl     *int
	confirm    *bool
	deep       *bool
	attempts   *int
	iterations *int
	randMin    *int
	randMax    *int
	infinity   *int
	seed       *int64
	suppress   *bool
)

func main() {
	var err error

	flag.Var(&lbounds, "lb", "Lower bound to compute before the search. Repeatable. Possible: {BBSSP, BAP}. Defaults to BBSSP on symmetric and BAP on asymmetric instances")
	inputF = flag.String("input", "input.json", "Path to the input instance")
	outputF = flag.String("output", "", "Path to the output file. By default the input file will be overwritten adding the solution")
	logLvl = flag.Int("log", 2, "Level of the logging output. Higher value is more verbose. Range 1-4")
	confirm = flag.Bool("confirm", true, "Confirm the solution with the exact solver (proves optimality)")
	deep = flag.Bool("deep", false, "Materialize the rewritten cost matrices instead of evaluating them lazily")
	attempts = flag.Int("attempts", 3, "Heuristic attempts per solve step before giving up on a threshold")
	iterations = flag.Int("iterations", 0, "Improvement iterations of the insertion heuristic. Default dimension^2")
	randMin = flag.Int("randMin", 0, "Smallest random offset for the shake rewrite")
	randMax = flag.Int("randMax", 0, "Largest random offset for the shake rewrite. Default dimension^2 + randMin")
	infinity = flag.Int("inf", 0, "Cost value treated as infinite. Default (maxCost + randMax) * 2")
	seed = flag.Int64("seed", 0, "Seed for the random number generator. Default current time")
	suppress = flag.Bool("noBinSearch", false, "Skip the binary search and only probe the upper bound")

	flag.Parse()

	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()
	sol = btsp.Solution{Comment: "", System: btsp.SysInfo{hostStat.Platform, cpuStat[0].ModelName, fmt.Sprintf("%d GB", (vmStat.Total / 1024 / 1024 / 1024))}}

	instStr, err := ioutil.ReadFile(*inputF)

	btsp.InitLoggers(*logLvl)
	if err != nil {
		btsp.Log(1, "At %s: %s\n", *inputF, err.Error())
		return
	}

	err = json.Unmarshal(instStr, &pInst)
	if err != nil {
		btsp.Log(1, "At %s: %s\n", *inputF, err.Error())
		return
	}
	pInst.Solution = &sol

	base, err := btsp.NewProblemFromInstance(&pInst)
	if err != nil {
		btsp.Log(1, "At %s: %s\n", *inputF, err.Error())
		return
	}
	if !pInst.Symmetric && pInst.FeasibleLength > 0 {
		btsp.Log(1, "At %s: length constrained asymmetric instances are not supported\n", *inputF)
		return
	}
	baseInfo, err := btsp.NewProblemInfo(base)
	if err != nil {
		btsp.Log(1, "At %s: %s\n", *inputF, err.Error())
		return
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	sol.Comment = fmt.Sprintf("Solver-Settings: SolverDev: Zarychta, Seed=%d, Attempts=%d, Confirm=%t", *seed, *attempts, *confirm)

	// The double cover of an asymmetric instance doubles the dimension;
	// the shake offsets and the infinity value have to cover that.
	workDim := pInst.Dimension
	if !pInst.Symmetric {
		workDim *= 2
	}
	if *randMax == 0 {
		*randMax = workDim*workDim + *randMin
	}
	if *infinity == 0 {
		*infinity = (baseInfo.MaxCost + *randMax) * 2
	}
	// The sentinel has to dominate the length budget, or an over-threshold
	// edge could hide inside a feasible looking tour.
	if float64(*infinity) <= pInst.FeasibleLength {
		*infinity = int(pInst.FeasibleLength) * 2
	}

	work := btsp.Problem(base)
	workInfo := baseInfo
	if !pInst.Symmetric {
		work, err = btsp.ABTSPToSBTSP(base, *infinity)
		if err != nil {
			btsp.Log(1, "At %s: %s\n", *inputF, err.Error())
			return
		}
		workInfo, err = btsp.NewProblemInfo(work)
		if err != nil {
			btsp.Log(1, "At %s: %s\n", *inputF, err.Error())
			return
		}
	}
	if *randMax-*randMin < len(workInfo.CostList) {
		btsp.Log(1, "Random interval [%d,%d] cannot cover %d distinct costs\n", *randMin, *randMax, len(workInfo.CostList))
		return
	}

	params := btsp.NewParams()
	params.ConfirmSolution = *confirm
	params.SuppressBinarySearch = *suppress
	computeLowerBounds(base, baseInfo, work, workInfo, params)

	if *iterations == 0 {
		*iterations = workDim * workDim
	}
	raiBTSP := &btsp.RAISolver{Params: btsp.RAIParams{Iterations: *iterations, SolveBTSP: true}, Rng: rng}
	raiLength := &btsp.RAISolver{Params: btsp.RAIParams{Iterations: *iterations, SolveBTSP: false}, Rng: rng}

	var confirmFun btsp.Fun
	switch {
	case pInst.FeasibleLength > 0:
		params.Steps = []btsp.SolveStep{
			{Oracle: raiLength, Fun: btsp.NewConstrainedFun(!*deep, *infinity, pInst.FeasibleLength), Attempts: *attempts},
			{Oracle: raiLength, Fun: btsp.NewConstrainedShakeFun(!*deep, *infinity, pInst.FeasibleLength, *randMin, *randMax, workInfo, rng), Attempts: *attempts},
		}
		confirmFun = btsp.NewConstrainedFun(!*deep, *infinity, pInst.FeasibleLength)
	case !pInst.Symmetric:
		params.Steps = []btsp.SolveStep{
			{Oracle: raiBTSP, Fun: btsp.NewAsymmetricFun(), Attempts: *attempts},
			{Oracle: raiBTSP, Fun: btsp.NewAsymmetricShiftFun(baseInfo.MaxCost + 1), Attempts: *attempts},
		}
		confirmFun = btsp.NewAsymmetricFun()
	default:
		params.Steps = []btsp.SolveStep{
			{Oracle: raiBTSP, Fun: btsp.NewBasicFun(!*deep), Attempts: *attempts},
			{Oracle: raiBTSP, Fun: btsp.NewShakeIFun(!*deep, *infinity, *randMin, *randMax, workInfo, rng), Attempts: *attempts},
		}
		confirmFun = btsp.NewBasicFun(!*deep)
	}

	if *confirm {
		env, err := gurobi.LoadEnv("btsp_gurobi.log")
		if err != nil {
			btsp.Log(1, "At %s: %s\n", *inputF, err.Error())
			return
		}
		defer env.Free()
		env.SetIntParam("LogToConsole", int32(0))
		params.ConfirmStep = &btsp.SolveStep{Oracle: &btsp.ExactSolver{Env: env}, Fun: confirmFun, Attempts: 1}
	}

	result := btsp.NewResult(work)
	startTime := time.Now()
	err = btsp.Solve(work, workInfo, params, result)
	if err != nil {
		btsp.Log(1, "At %s: %s\n", *inputF, err.Error())
		sol.Comment += fmt.Sprintf(". Solve failed: %s", err.Error())
		writeSolution()
		return
	}

	captureSolution(work, result, params)
	if sol.Found {
		solValid, validComment := btsp.CheckSolutionValidity(sol.Tour, base, sol.Obj)
		if !solValid {
			btsp.Log(1, validComment)
			sol.Comment += " " + validComment
		} else {
			btsp.Log(1, "The computed solution is valid! ")
		}
	}
	sol.Time = time.Since(startTime).String()
	btsp.Log(2, "Found a BTSP-Solution with obj-Value of %d (optimal: %t)\n", sol.Obj, sol.Optimal)
	writeSolution()
}

// computeLowerBounds fills the bound fields of the solution and raises
// params.LowerBound to the best bound found. BBSSP runs on the (possibly
// transformed) symmetric problem; BAP runs on the original matrix, where
// the matching is not trivialized by the forced edges of the double cover.
func computeLowerBounds(base btsp.Problem, baseInfo *btsp.ProblemInfo, work btsp.Problem, workInfo *btsp.ProblemInfo, params *btsp.Params) {
	if len(lbounds) == 0 {
		if pInst.Symmetric {
			lbounds = append(lbounds, "BBSSP")
		} else {
			lbounds = append(lbounds, "BAP")
		}
	}
	startTime := time.Now()
	for _, lb := range lbounds {
		switch strings.ToUpper(lb) {
		case "BBSSP":
			bound, err := btsp.SolveBBSSP(work, workInfo)
			if err != nil {
				btsp.Log(1, "BBSSP: %s\n", err.Error())
				continue
			}
			btsp.Log(2, "BBSSP bound is %d (took %s)", bound.ObjValue, bound.TotalTime)
			sol.BBSSPBound = bound.ObjValue
			if bound.ObjValue > params.LowerBound {
				params.LowerBound = bound.ObjValue
			}
		case "BAP":
			bound, err := btsp.SolveBAP(base, baseInfo)
			if err != nil {
				btsp.Log(1, "BAP: %s\n", err.Error())
				continue
			}
			btsp.Log(2, "BAP bound is %d (took %s)", bound.ObjValue, bound.TotalTime)
			sol.BAPBound = bound.ObjValue
			if bound.ObjValue > params.LowerBound {
				params.LowerBound = bound.ObjValue
			}
		case "NONE":
		default:
			btsp.Log(1, "Unsupported lower bound strategy: %s\n", lb)
		}
	}
	sol.LowerBoundTime = time.Since(startTime).String()
	sol.LBound = params.LowerBound
}

func captureSolution(work btsp.Problem, result *btsp.Result, params *btsp.Params) {
	sol.Found = result.FoundTour
	sol.Optimal = result.Optimal
	sol.BinSearchSteps = result.BinSearchSteps
	for i := 0; i < btsp.SOLVER_COUNT; i++ {
		sol.SolverAttempts = append(sol.SolverAttempts, result.SolverAttempts[i])
		sol.SolverTimes = append(sol.SolverTimes, result.SolverTime[i].String())
	}
	if !result.FoundTour {
		return
	}
	sol.Obj = result.Obj
	sol.UBound = result.Obj
	if pInst.Symmetric {
		sol.Tour = result.Tour
		sol.TourLength = result.TourLength
	} else {
		// Undo the double cover: keep the original nodes and add the cost
		// of the forced edges back onto the length.
		sol.Tour = btsp.SBTSPToABTSPTour(result.Tour, work.Size())
		sol.TourLength = result.TourLength + float64(pInst.Dimension)*float64(*infinity)
	}
}

func writeSolution() {
	jsonInst, err := json.MarshalIndent(pInst, "", "\t")
	if err != nil {
		btsp.Log(1, "At %s: %s\n", *inputF, err.Error())
		return
	}
	jsonInst = []byte(btsp.SanitizeJsonArrayLineBreaks(string(jsonInst)))
	var fileName string
	if *outputF == "" {
		fileName = *inputF //overwrite the input file
	} else {
		fileName = *outputF
	}
	err = ioutil.WriteFile(fileName, jsonInst, 0644)
	if err != nil {
		btsp.Log(1, "At %s: %s\n", *inputF, err.Error())
		return
	}
}
