// Command pso runs a particle swarm against one of the built-in
// benchmark functions and reports progress and the final best point.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/abougouffa/pyswarms"
	"github.com/abougouffa/pyswarms/bench"
	"github.com/abougouffa/pyswarms/bounds"
	"github.com/abougouffa/pyswarms/swarm"
	"github.com/abougouffa/pyswarms/topology"
)

var (
	fnname  = flag.String("fn", "Ackley", "benchmark function name")
	npar    = flag.Int("n", 30, "number of particles")
	maxiter = flag.Int("iters", 1000, "maximum number of iterations")
	topo    = flag.String("topo", "star", "topology: star or ring")
	k       = flag.Int("k", 3, "ring neighborhood size")
	p       = flag.Float64("p", 2, "ring Minkowski distance order")
	seed    = flag.Int64("seed", 1, "random seed")
	window  = flag.Int("noimprove", 100, "early-stop window (0 disables)")
	tol     = flag.Float64("tol", 1e-8, "minimum improvement that resets the early-stop window")
	dbpath  = flag.String("db", "", "sqlite file for per-iteration particle state")
	every   = flag.Int("progress", 50, "log progress every n iterations")
	list    = flag.Bool("list", false, "list benchmark functions and exit")
)

func main() {
	flag.Parse()
	log, _ := zap.NewDevelopment()
	defer log.Sync()

	if *list {
		names := []string{}
		for _, fn := range bench.AllFuncs {
			names = append(names, fn.Name())
		}
		fmt.Println(strings.Join(names, "\n"))
		return
	}

	fn := bench.ByName(*fnname)
	if fn == nil {
		log.Fatal("unknown benchmark function", zap.String("fn", *fnname))
	}
	low, up := fn.Bounds()

	box, err := bounds.New(low, up)
	if err != nil {
		log.Fatal("bad bounds", zap.Error(err))
	}

	opts := []swarm.Option{
		swarm.InBox(box),
		swarm.VmaxBounds(low, up),
		swarm.Seed(*seed),
	}
	if *topo == "ring" {
		opts = append(opts, swarm.Topo(topology.NewRing(*k, *p)))
	}

	var db *sql.DB
	if *dbpath != "" {
		db, err = sql.Open("sqlite3", *dbpath)
		if err != nil {
			log.Fatal("cannot open database", zap.String("path", *dbpath), zap.Error(err))
		}
		defer db.Close()
		opts = append(opts, swarm.DB(db))
	}

	it, err := swarm.New(*npar, len(low), opts...)
	if err != nil {
		log.Fatal("cannot build swarm", zap.Error(err))
	}

	solv := &pyswarms.Solver{
		Iter:         it,
		Obj:          pyswarms.Func(fn.Eval),
		MaxIter:      *maxiter,
		MaxNoImprove: *window,
		Tol:          *tol,
		Callback: func(iter int, best pyswarms.Point) {
			if *every > 0 && iter%*every == 0 {
				log.Info("progress",
					zap.Int("iter", iter),
					zap.Float64("best", best.Val),
				)
			}
		},
	}

	best, err := solv.Run()
	if err != nil {
		log.Error("run aborted", zap.Error(err))
		os.Exit(1)
	}

	log.Info("done",
		zap.String("fn", fn.Name()),
		zap.Stringer("status", solv.Status()),
		zap.Int("iters", solv.Niter()),
		zap.Int("evals", solv.Neval()),
		zap.Float64("best", best.Val),
		zap.Float64("optimum", fn.Optima()[0].Val),
	)
	fmt.Printf("best value: %v\n", best.Val)
	fmt.Printf("best position: %v\n", best.Pos())
}
