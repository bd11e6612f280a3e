package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"math/rand"
	"time"

	"git.solver4all.com/azaryc2s/btsp"
)

var nodes btsp.ArrayIntFlags
var types btsp.ArrayStringFlags
var name *string
var output *string
var count *int
var costMin *int
var costMax *int
var xTo *int
var yTo *int
var w *string
var lengthFactor *float64
var seed *int64

func main() {
	flag.Var(&nodes, "n", "List of number of nodes")
	flag.Var(&types, "t", "List of instance types to generate. (BTSP|ABTSP|CBTSP)")
	name = flag.String("name", "zarychta", "Name for the instance")
	output = flag.String("outputDir", ".", "Output directory")
	count = flag.Int("count", 1, "Number of instances per combination")
	costMin = flag.Int("costMin", 1, "The lowest edge cost for matrix based instances")
	costMax = flag.Int("costMax", 1000, "The highest edge cost for matrix based instances")
	xTo = flag.Int("x", 10000, "Max value on the x-axis")
	yTo = flag.Int("y", 10000, "Max value on the y-axis")
	w = flag.String("w", "EUC_2D", "EDGE_WEIGHT_TYPE - how the distance between nodes is calculated. MATRIX draws random costs instead of coordinates")
	lengthFactor = flag.Float64("lengthFactor", 1.1, "For CBTSP: feasible length as a factor of a greedy tour length")
	seed = flag.Int64("seed", 0, "Seed for the random number generator. Default current time")

	flag.Parse()
	if len(types) == 0 {
		types = append(types, btsp.TYPE_BTSP)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	for l := 0; l < *count; l++ {
		for i := 0; i < len(nodes); i++ {
			n := nodes[i]
			for k := 0; k < len(types); k++ {
				t := types[k]
				symmetric := t != btsp.TYPE_ABTSP

				var coordinatesArray [][]float64
				var edgeWeights [][]int
				if *w == "MATRIX" || !symmetric {
					edgeWeights = make([][]int, n)
					for node := 0; node < n; node++ {
						edgeWeights[node] = make([]int, n)
					}
					for node := 0; node < n; node++ {
						for node2 := 0; node2 < n; node2++ {
							if node == node2 {
								continue
							}
							if symmetric && node2 > node {
								continue
							}
							cost := *costMin + rng.Intn(*costMax-*costMin+1)
							edgeWeights[node][node2] = cost
							if symmetric {
								edgeWeights[node2][node] = cost
							}
						}
					}
				} else {
					coordinatesArray = make([][]float64, n)
					for node := 0; node < n; node++ {
						x := rng.Intn(*xTo)
						y := rng.Intn(*yTo)
						coordinatesArray[node] = []float64{float64(x), float64(y)}
					}
					edgeWeights = btsp.CalcEdgeDist(coordinatesArray, *w)
				}

				feasibleLength := 0.0
				if t == btsp.TYPE_CBTSP {
					feasibleLength = float64(greedyTourLength(edgeWeights)) * *lengthFactor
				}

				comment := fmt.Sprintf("%s instance Nr. %d of type %s with %d nodes", *name, l, t, n)
				instName := fmt.Sprintf("%s_%s_%d_%d", *name, t, n, l)
				inst := btsp.Instance{Name: instName, Comment: comment, Type: t, Dimension: n, Symmetric: symmetric, NodeCoordinates: coordinatesArray, EdgeWeights: edgeWeights, DisplayDataType: "COORD_DISPLAY", EdgeWeightType: *w, FeasibleLength: feasibleLength}

				jsonInst, err := json.MarshalIndent(inst, "", "\t")
				if err != nil {
					log.Fatal(err)
				}

				jsonInst = []byte(btsp.SanitizeJsonArrayLineBreaks(string(jsonInst)))
				err = ioutil.WriteFile(fmt.Sprintf("%s/%s.json", *output, instName), jsonInst, 0644)
				if err != nil {
					log.Fatal(err)
				}
			}
		}
	}
}

// greedyTourLength runs nearest neighbor from node 0, giving the length
// budget of constrained instances a realistic anchor.
func greedyTourLength(edgeWeights [][]int) int {
	n := len(edgeWeights)
	visited := make([]bool, n)
	visited[0] = true
	length := 0
	node := 0
	for step := 1; step < n; step++ {
		best := -1
		for next := 0; next < n; next++ {
			if visited[next] || next == node {
				continue
			}
			if best < 0 || edgeWeights[node][next] < edgeWeights[node][best] {
				best = next
			}
		}
		length += edgeWeights[node][best]
		visited[best] = true
		node = best
	}
	length += edgeWeights[node][0]
	return length
}
