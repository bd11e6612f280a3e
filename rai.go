package btsp

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// RAIParams controls the randomized arbitrary insertion heuristic.
type RAIParams struct {
	// Iterations is the number of destroy and reinsert rounds after the
	// initial construction.
	Iterations int

	// SolveBTSP switches the insertion criterion from tour length to the
	// largest inserted edge.
	SolveBTSP bool
}

// SolveRAI runs randomized arbitrary insertion: build a tour by inserting
// the nodes in random order at their cheapest position (ties broken
// uniformly at random), then repeatedly tear a random cyclic segment out
// of the tour and reinsert its nodes in shuffled order, keeping the result
// only when it strictly improves the active objective. Stops early once
// the bottleneck of the tour drops to zero, which no rewritten cost matrix
// can beat. ObjValue reports the largest tour cost when solving for the
// bottleneck, the tour length otherwise.
func SolveRAI(problem Problem, params RAIParams, rng *rand.Rand, result *TSPResult) error {
	start := time.Now()
	n := problem.Size()
	if n < 3 {
		return fmt.Errorf("btsp: insertion heuristic needs at least 3 nodes, got %d", n)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	permuteArray(rng, order, n)

	cur := &llist{}
	cur.insertTail(order[n-1])
	cur.insertTail(order[n-2])
	constructTour(problem, params.SolveBTSP, rng, cur, order[:n-2])

	tmp := make([]int, n)
	segment := make([]int, 0, n)
	cur.toArray(tmp)
	curMax, curLength := tourCosts(problem, tmp)

	cand := &llist{}
	for iter := 0; iter < params.Iterations && curMax > 0; iter++ {
		u := rng.Intn(n)
		v := rng.Intn(n)

		cur.toArray(tmp)
		pos := 0
		for tmp[pos] != u {
			pos++
		}

		// Extract the cyclic segment from node u up to and including node
		// v, wrapping over the tail; the rest of the tour seeds the
		// rebuilt cycle. u == v tears out a single node, v right before u
		// tears out the whole tour.
		segment = segment[:0]
		k := pos
		for {
			segment = append(segment, tmp[k])
			if tmp[k] == v {
				break
			}
			k = (k + 1) % n
		}
		cand.reset()
		for m := (k + 1) % n; m != pos; m = (m + 1) % n {
			cand.insertTail(tmp[m])
		}

		permuteArray(rng, segment, len(segment))
		constructTour(problem, params.SolveBTSP, rng, cand, segment)

		cand.toArray(tmp)
		candMax, candLength := tourCosts(problem, tmp)
		if better(params.SolveBTSP, candMax, candLength, curMax, curLength) {
			cur.swap(cand)
			curMax, curLength = candMax, candLength
		}
	}

	cur.toArray(result.Tour)
	result.FoundTour = true
	if params.SolveBTSP {
		result.ObjValue = float64(curMax)
	} else {
		result.ObjValue = curLength
	}
	result.TotalTime = time.Since(start)
	return nil
}

// better compares two tours under the active objective. Only a strict
// improvement replaces the incumbent.
func better(solveBTSP bool, aMax int, aLength float64, bMax int, bLength float64) bool {
	if solveBTSP {
		return aMax < bMax
	}
	return aLength < bLength
}

// constructTour inserts the given nodes one by one into the tour at the
// cheapest position. For the bottleneck objective the quality of a
// position is the bottleneck of the would-be cycle: the two new edges
// against the largest surviving edge, where splitting the unique largest
// edge leaves only the second largest behind. All positions of equal
// quality are collected and one is drawn uniformly, which is where the
// randomization beyond the node order comes from.
func constructTour(problem Problem, solveBTSP bool, rng *rand.Rand, tour *llist, nodes []int) {
	// A partial tour below two nodes cannot be inserted into; reseed it
	// from the tail of the shuffled node list.
	for tour.size < 2 {
		tour.insertTail(nodes[len(nodes)-1])
		nodes = nodes[:len(nodes)-1]
	}
	insList := make([]*llistItem, 0, tour.size+len(nodes))
	for _, z := range nodes {
		var alpha, beta, alphaCount int
		if solveBTSP {
			alpha, beta, alphaCount = twoLargestEdges(problem, tour)
		}
		best := math.MaxInt64
		insList = insList[:0]
		for item := tour.head; item != nil; item = item.next {
			x := item.value
			y := tour.head.value
			if item.next != nil {
				y = item.next.value
			}
			var quality int
			if solveBTSP {
				rest := alpha
				if problem.Cost(x, y) == alpha && alphaCount == 1 {
					rest = beta
				}
				quality = max3(rest, problem.Cost(x, z), problem.Cost(z, y))
			} else {
				quality = problem.Cost(x, z) + problem.Cost(z, y) - problem.Cost(x, y)
			}
			if quality < best {
				best = quality
				insList = insList[:0]
			}
			if quality == best {
				insList = append(insList, item)
			}
		}
		tour.insertAfter(insList[rng.Intn(len(insList))], z)
	}
}

// twoLargestEdges walks the cycle and returns its largest and second
// largest edge cost, plus how often the largest occurs.
func twoLargestEdges(problem Problem, tour *llist) (alpha, beta, alphaCount int) {
	alpha = math.MinInt64
	beta = math.MinInt64
	for item := tour.head; item != nil; item = item.next {
		y := tour.head.value
		if item.next != nil {
			y = item.next.value
		}
		cost := problem.Cost(item.value, y)
		if cost > alpha {
			beta = alpha
			alpha = cost
			alphaCount = 1
		} else if cost == alpha {
			alphaCount++
		} else if cost > beta {
			beta = cost
		}
	}
	return alpha, beta, alphaCount
}

// RAISolver adapts the insertion heuristic to the tour oracle interface.
type RAISolver struct {
	Params RAIParams
	Rng    *rand.Rand
}

func (s *RAISolver) Kind() int {
	return SOLVER_RAI
}

func (s *RAISolver) Solve(problem Problem, result *TSPResult) error {
	return SolveRAI(problem, s.Params, s.Rng, result)
}
