// Command termview plays the game in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/accretion/config"
	"github.com/pthm-cable/accretion/game"
	"github.com/pthm-cable/accretion/termview"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	fps := flag.Int("fps", 30, "Frames per second")
	cellWidth := flag.Float64("cell-width", 10, "World units per terminal column")
	autoPlay := flag.Bool("autoplay", false, "Start with auto-play enabled")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logFile := flag.String("log-file", "", "Write JSON logs to this file (empty = discard)")

	flag.Parse()

	if err := run(*configPath, *seed, *fps, *cellWidth, *autoPlay, *outputDir, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, fps int, cellWidth float64, autoPlay bool, outputDir, logFile string) error {
	// The terminal owns stdout; logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return fmt.Errorf("creating log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	screen.HideCursor()

	view := termview.New(screen, termview.Options{FPS: fps, CellWidth: cellWidth})
	defer view.Close()

	w, h := view.PlayArea()
	g, err := game.NewGameWithOptions(game.Options{
		Config:    config.Cfg(),
		Seed:      seed,
		OutputDir: outputDir,
		AutoPlay:  autoPlay,
		Width:     w,
		Height:    h,
	})
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting terminal session", "seed", seed, "width", w, "height", h)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := game.NewDriver(g)
	view.Start(d)
	if err := d.Run(ctx, view); err != nil && ctx.Err() == nil {
		return err
	}

	slog.Info("terminal session ended", "tick", g.Tick(), "mass", g.Economy().Mass())
	return nil
}
