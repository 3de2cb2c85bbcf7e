// Package main tunes spawn and drag parameters with Nelder-Mead so that an
// auto-play session reaches a target mass in a goal time.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/accretion/config"
)

// EvalRecord is one row of balance_log.csv.
type EvalRecord struct {
	Eval            int     `csv:"eval"`
	Fitness         float64 `csv:"fitness"`
	MeanSec         float64 `csv:"mean_sec"`
	Reached         int     `csv:"reached"`
	OrbitFraction   float64 `csv:"orbit_fraction"`
	Drag            float64 `csv:"drag"`
	GravityConstant float64 `csv:"gravity_constant"`
}

type balanceFlags struct {
	configPath string
	outputDir  string
	targetMass float64
	goalSec    float64
	maxSec     float64
	seeds      int
	maxEvals   int
	buy        bool
}

func main() {
	var f balanceFlags
	flag.StringVar(&f.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.StringVar(&f.outputDir, "output", "", "Output directory for balance_log.csv and best_config.yaml")
	flag.Float64Var(&f.targetMass, "target-mass", 1000, "Central mass a session must reach")
	flag.Float64Var(&f.goalSec, "goal-sec", 180, "Desired sim seconds to reach the target mass")
	flag.Float64Var(&f.maxSec, "max-sec", 900, "Longest session in sim seconds")
	flag.IntVar(&f.seeds, "seeds", 3, "Sessions per evaluation")
	flag.IntVar(&f.maxEvals, "max-evals", 60, "Maximum number of evaluations")
	flag.BoolVar(&f.buy, "buy", true, "Spend mass greedily on the cheapest upgrade")
	flag.Parse()

	if err := run(f); err != nil {
		log.Fatal(err)
	}
}

func run(f balanceFlags) error {
	switch {
	case f.outputDir == "":
		return errors.New("-output is required")
	case f.goalSec <= 0 || f.maxSec <= 0 || f.seeds < 1:
		return errors.New("-goal-sec, -max-sec and -seeds must be positive")
	}
	if err := os.MkdirAll(f.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := config.Init(f.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	params := NewParamVector(config.Cfg())
	seeds := make([]int64, f.seeds)
	for i := range seeds {
		seeds[i] = 42 + 1000*int64(i)
	}
	eval := NewEvaluator(params, config.Cfg(), seeds, f.targetMass, f.goalSec, f.maxSec, f.buy)

	csvFile, err := os.Create(filepath.Join(f.outputDir, "balance_log.csv"))
	if err != nil {
		return fmt.Errorf("creating balance log: %w", err)
	}
	defer csvFile.Close()

	tr := &tracker{maxEvals: f.maxEvals, seeds: len(seeds), out: csvFile, start: time.Now()}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := eval.Evaluate(raw)
			meanSec, reached := eval.Last()
			tr.record(raw, fitness, meanSec, reached)
			return fitness
		},
	}

	fmt.Printf("Nelder-Mead over %d parameters, %d evaluations max\n", params.Dim(), f.maxEvals)
	fmt.Printf("Goal: mass %.0f in %.0fs, %d seeds per evaluation\n", f.targetMass, f.goalSec, f.seeds)

	result, err := optimize.Minimize(problem,
		params.Normalize(params.DefaultVector()),
		&optimize.Settings{FuncEvaluations: f.maxEvals},
		&optimize.NelderMead{SimplexSize: 0.2},
	)
	if err != nil {
		log.Printf("optimization stopped: %v", err)
	}
	if tr.best == nil && result != nil {
		tr.best = params.Clamp(params.Denormalize(result.X))
	}
	if tr.best == nil {
		return errors.New("no evaluation completed")
	}

	fmt.Printf("\nDone: %d evaluations in %s, best pacing error %.4f\n",
		tr.evals, formatDuration(time.Since(tr.start)), tr.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %-16s %-24s %.6f\n", spec.Name, spec.Path, tr.best[i])
	}

	// Reload so the written file carries only the tuned changes over the user's base
	bestCfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	params.ApplyToConfig(bestCfg, tr.best)
	out := filepath.Join(f.outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	fmt.Printf("Best config: %s\n", out)
	return nil
}

// tracker keeps the best evaluation, appends every evaluation to the CSV log,
// and prints progress with an ETA.
type tracker struct {
	maxEvals int
	seeds    int
	out      *os.File
	start    time.Time

	evals       int
	best        []float64
	bestFitness float64
}

func (t *tracker) record(raw []float64, fitness, meanSec float64, reached int) {
	t.evals++
	if t.best == nil || fitness < t.bestFitness {
		t.best, t.bestFitness = raw, fitness
	}

	rows := []EvalRecord{{
		Eval:            t.evals,
		Fitness:         fitness,
		MeanSec:         meanSec,
		Reached:         reached,
		OrbitFraction:   raw[0],
		Drag:            raw[1],
		GravityConstant: raw[2],
	}}
	write := gocsv.MarshalWithoutHeaders
	if t.evals == 1 {
		write = gocsv.Marshal
	}
	if err := write(rows, t.out); err != nil {
		log.Printf("balance log row %d: %v", t.evals, err)
	}

	elapsed := time.Since(t.start)
	eta := time.Duration(max(t.maxEvals-t.evals, 0)) * (elapsed / time.Duration(t.evals))
	fmt.Printf("[%d/%d] mean %.0fs, reached %d/%d, error %.4f, best %.4f (%s, eta %s)\n",
		t.evals, t.maxEvals, meanSec, reached, t.seeds, fitness, t.bestFitness,
		formatDuration(elapsed), formatDuration(eta))
}

// formatDuration renders d as 1h02m03s, or 2m03s under an hour.
func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
