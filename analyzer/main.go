package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"math"
	"os"
	"strings"

	"git.solver4all.com/azaryc2s/btsp"
)

func main() {
	if len(os.Args) < 2 {
		log.Printf("No arguments passed!")
		return
	}
	dirName := os.Args[1]
	dir, err := ioutil.ReadDir(dirName)
	if err != nil {
		log.Printf("Couldn't open directory %s: %s\n", os.Args[1], err.Error())
		return
	}
	fmt.Printf("Name,Type,Optimal,Time,Obj,BBSSP,BAP,LBound,Gap,BinSearchSteps,Dimension,Comment\n")
	for _, f := range dir {
		fileName := dirName + "/" + f.Name()
		if strings.Contains(fileName, ".json") {
			inst := btsp.Instance{}
			instStr, err := ioutil.ReadFile(fileName)
			if err != nil {
				log.Printf("Couldn't read %s: %s\n", f.Name(), err.Error())
				return
			}
			err = json.Unmarshal(instStr, &inst)
			if err != nil {
				log.Printf("Couldn't parse %s: %s\n", f.Name(), err.Error())
				return
			}
			if inst.Solution == nil {
				fmt.Printf("No solution for %s\n", inst.Name)
				continue
			}
			sol := *inst.Solution
			if sol.Found {
				problem, err := btsp.NewProblemFromInstance(&inst)
				if err != nil {
					log.Printf("Couldn't rebuild %s: %s\n", inst.Name, err.Error())
					return
				}
				solValid, validComment := btsp.CheckSolutionValidity(sol.Tour, problem, sol.Obj)
				if !solValid {
					sol.Comment = fmt.Sprintf("%s %s", sol.Comment, validComment)
				}
			}
			gap := math.Round((float64(sol.Obj-sol.LBound)/float64(sol.LBound))*1000) / 1000.0
			fmt.Printf("%s,%s,%t,%s,%d,%d,%d,%d,%.4f,%d,%d,%s\n", inst.Name, inst.Type, sol.Optimal, sol.Time, sol.Obj, sol.BBSSPBound, sol.BAPBound, sol.LBound, gap, sol.BinSearchSteps, inst.Dimension, sol.Comment)
		}
	}
}
