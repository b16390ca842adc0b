// Trace the agent-logit QRE correspondence of a batch of bimatrix games.
package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/timpalpant/go-cfr"
	"github.com/timpalpant/go-cfr/tree"
	"golang.org/x/sync/errgroup"

	"github.com/quantal/logitrace"
	"github.com/quantal/logitrace/gametree"
	"github.com/quantal/logitrace/logit"
)

func main() {
	configFile := flag.String("config", "logitrace.hcl", "Batch configuration file")
	output := flag.String("output", "", "Directory to write traced branches to")
	flag.Parse()
	go http.ListenAndServe("localhost:4123", nil)

	config, err := LoadConfig(*configFile)
	if err != nil {
		glog.Fatal(err)
	}
	if err := config.Validate(); err != nil {
		glog.Fatal(err)
	}

	if *output != "" {
		if err := os.MkdirAll(*output, 0777); err != nil {
			glog.Fatal(err)
		}
	}

	var g errgroup.Group
	for _, gc := range config.Games {
		gc := gc
		g.Go(func() error {
			return traceGame(gc, config.Solver, *output)
		})
	}
	if err := g.Wait(); err != nil {
		glog.Fatal(err)
	}
}

func traceGame(gc GameConfig, settings SolverSettings, output string) error {
	root := gametree.TwoPlayerMatrix(gc.Row, gc.Col)
	nNodes := 0
	tree.Visit(root, func(node cfr.GameTreeNode) {
		nNodes++
	})
	glog.Infof("%s: %d nodes in game tree", gc.Name, nNodes)

	game, err := logitrace.CompileGame(gametree.TwoPlayerMatrix(gc.Row, gc.Col), 2)
	if err != nil {
		return err
	}

	solver := logit.NewSolver()
	solver.MaxLambda = settings.MaxLambda
	solver.FullGraph = settings.FullGraph

	branch := solver.Solve(logitrace.FullSupport(game), logit.NullStatus{})
	if len(branch) == 0 {
		glog.Warningf("%s: trace produced no points", gc.Name)
		return nil
	}

	final := branch[len(branch)-1]
	probs := make([]float64, final.Len())
	for i := range probs {
		probs[i] = final.At(i)
	}
	glog.Infof("%s: %d points, terminal profile %v", gc.Name, len(branch), probs)

	if output == "" {
		return nil
	}

	filename := filepath.Join(output, fmt.Sprintf("%s.tsv.gz", gc.Name))
	glog.Infof("%s: writing branch to %v", gc.Name, filename)
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return logit.WriteCorrespondence(f, branch)
}
