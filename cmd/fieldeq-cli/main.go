// SPDX-License-Identifier: Apache-2.0

// Command fieldeq-cli drives the equality-saturation pipeline over one
// S-expression per line of a test file, reporting tree- and DAG-optimal
// costs before and after rewriting (§6).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/segmentio/ksuid"
	"github.com/tliron/commonlog"

	"fieldeq/internal/ast"
	"fieldeq/internal/bridge"
	"fieldeq/internal/config"
	"fieldeq/internal/cost"
	"fieldeq/internal/egraph"
	ferrors "fieldeq/internal/errors"
	"fieldeq/internal/extract"
	"fieldeq/internal/fieldtype"
	"fieldeq/internal/ilpsolver"
	"fieldeq/internal/loader"
	"fieldeq/internal/parser"
	"fieldeq/internal/rewrite"
)

const version = "fieldeq 0.1.0"

const usage = `usage: fieldeq-cli [symbol_types.json cost_model.json tests.txt]

With no arguments, reads symbol_types.json, cost_model.json and tests.txt
from the current directory.

  -fast-dag      skip the ILP solver; use only the greedy DAG extractor
  -v             verbose saturation trace on stderr (same as FIELDEQ_LOG=1)
  --version      print the version and exit
  --help         print this message and exit`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var positional []string
	fastDAG := false
	verbose := os.Getenv("FIELDEQ_LOG") != ""

	for _, a := range args {
		switch a {
		case "--version":
			fmt.Println(version)
			return 0
		case "--help", "-h":
			fmt.Println(usage)
			return 0
		case "-fast-dag":
			fastDAG = true
		case "-v":
			verbose = true
		default:
			positional = append(positional, a)
		}
	}

	if len(positional) != 0 && len(positional) != 3 {
		fmt.Fprintln(os.Stderr, usage)
		return 1
	}

	symbolTypesPath, costModelPath, testsPath := "symbol_types.json", "cost_model.json", "tests.txt"
	if len(positional) == 3 {
		symbolTypesPath, costModelPath, testsPath = positional[0], positional[1], positional[2]
	}

	if verbose {
		commonlog.Configure(1, nil)
	} else {
		commonlog.Configure(0, nil)
	}
	logger := commonlog.GetLogger("fieldeq.cli")

	cfg := config.Default()

	symbolTypes, err := loader.SymbolTypes(symbolTypesPath)
	if err != nil {
		color.Red("error: %s", err)
		return 1
	}
	costModel, err := loader.CostModel(costModelPath)
	if err != nil {
		color.Red("error: %s", err)
		return 1
	}
	testCases, err := loader.TestCases(testsPath)
	if err != nil {
		color.Red("error: %s", err)
		return 1
	}

	analysis := &fieldtype.Analysis{SymbolTypes: symbolTypes, MaxDegree: cfg.MaxDegree}

	for i, src := range testCases {
		if err := runTestCase(i+1, src, analysis, costModel, cfg, fastDAG, logger); err != nil {
			reportErr(src, err)
			// Per §7, a failing test case does not halt iteration
			// through subsequent ones.
		}
	}
	return 0
}

func runTestCase(
	n int,
	src string,
	analysis *fieldtype.Analysis,
	costModel cost.Model,
	cfg config.Config,
	fastDAG bool,
	logger commonlog.Logger,
) error {
	traceID := ksuid.New().String()
	logger.Infof("test_case[%s] %d: %s", traceID, n, src)

	expr, err := parser.ParseSource(fmt.Sprintf("tests.txt:%d", n), src)
	if err != nil {
		return err
	}

	g := egraph.New[fieldtype.FieldType](analysis)
	rec := ast.FromExpr(expr)
	root, _ := egraph.InsertRecExpr(g, rec)
	g.Rebuild()

	pairSat := rewrite.NewSaturator[fieldtype.FieldType](rewrite.PairRules[fieldtype.FieldType](), cfg.SaturationLimits(), logger)
	pairStop := pairSat.Run(g)
	logger.Debugf("test_case[%s] pair-rules stop_reason=%s", traceID, pairStop)

	baseline := bridge.FromEGraph(g, costModel, root)
	baselineTreeSel, baselineGreedySel := extract.Both(baseline)
	simplifiedExpr := extract.Render(baseline, baselineTreeSel, baseline.RootEClasses[0])
	treeInitial := extract.TreeCost(baseline, baselineTreeSel, baseline.RootEClasses)
	dagInitial := extract.DagCost(baseline, baselineGreedySel, baseline.RootEClasses)

	mainSat := rewrite.NewSaturator[fieldtype.FieldType](rewrite.MainRules[fieldtype.FieldType](), cfg.SaturationLimits(), logger)
	mainStop := mainSat.Run(g)
	logger.Infof("test_case[%s] main-rules stop_reason=%s classes=%d nodes=%d", traceID, mainStop, g.NumClasses(), g.NumNodes())

	optimized := bridge.FromEGraph(g, costModel, root)
	rootKey := optimized.RootEClasses[0]

	treeSel, optimizedGreedySel := extract.Both(optimized)
	treeOptimizedCost := extract.TreeCost(optimized, treeSel, optimized.RootEClasses)
	treeOptimizedExpr := extract.Render(optimized, treeSel, rootKey)

	dagSel, dagOptimizedCost := solveDAG(optimized, optimizedGreedySel, cfg, fastDAG, traceID, n, logger)
	dagOptimizedExpr := extract.Render(optimized, dagSel, rootKey)

	fmt.Printf("Optimizing_Test_Case %d:\n", n)
	fmt.Println(">>>")
	fmt.Printf("Input expr           : %s\n", src)
	fmt.Printf("Simplified expr      : %s\n", simplifiedExpr)
	fmt.Printf("Tree: Initial cost   : %d\n", uint64(treeInitial))
	fmt.Printf("Tree: Optimized expr : %s\n", treeOptimizedExpr)
	fmt.Printf("Tree: Optimized cost : %d\n", uint64(treeOptimizedCost))
	fmt.Printf("DAG:  Initial cost   : %d\n", uint64(dagInitial))
	fmt.Printf("DAG:  Optimized expr : %s\n", dagOptimizedExpr)
	fmt.Printf("DAG:  Optimized cost : %d\n", uint64(dagOptimizedCost))
	fmt.Println("<<<")
	return nil
}

// solveDAG runs the ILP solver (unless fastDAG skips it) alongside the
// greedy extractor and keeps whichever admissible selection is cheaper
// (§4.7's "faster greedy-DAG extractor ... alternative"; the ILP result
// wins ties since it is optimal whenever it completes).
func solveDAG(g *bridge.Graph, greedySel extract.Selection, cfg config.Config, fastDAG bool, traceID string, testCase int, logger commonlog.Logger) (extract.Selection, float64) {
	greedyCost := extract.DagCost(g, greedySel, g.RootEClasses)

	if fastDAG {
		return greedySel, greedyCost
	}

	start := time.Now()
	res, err := ilpsolver.Solve(g, cfg.SolverLimits())
	if err != nil {
		reportErr("", ferrors.SolverInfeasibleError(testCase))
		logger.Infof("dag_solver[%s] infeasible after %s, falling back to greedy: %s", traceID, time.Since(start), err)
		return greedySel, greedyCost
	}
	logger.Infof("dag_solver[%s] stop_reason=%s cost=%.0f elapsed=%s", traceID, res.StopReason, res.Cost, time.Since(start))

	if res.Cost <= greedyCost {
		return res.Selection, res.Cost
	}
	return greedySel, greedyCost
}

func reportErr(src string, err error) {
	if ce, ok := err.(ferrors.CompilerError); ok {
		reporter := ferrors.NewErrorReporter("tests.txt", src)
		fmt.Fprint(os.Stderr, reporter.FormatError(ce))
		return
	}
	color.Red("error: %s", err)
}
