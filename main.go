package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/accretion/config"
	"github.com/pthm-cable/accretion/game"
	"github.com/pthm-cable/accretion/inspector"
	"github.com/pthm-cable/accretion/renderer"
	"github.com/pthm-cable/accretion/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	autoPlay := flag.Bool("autoplay", false, "Start with auto-play enabled")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		AutoPlay:       *autoPlay,
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}
	runWindow(cfg, opts, *maxTicks)
}

// runHeadless steps the simulation without graphics. Without auto-play nothing spawns.
func runHeadless(opts game.Options, maxTicks int) {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"stats_window", opts.StatsWindowSec,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
		"autoplay", opts.AutoPlay,
	)

	for ctx.Err() == nil {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick(), "mass", g.Economy().Mass())
			return
		}
	}
	slog.Info("interrupted", "tick", g.Tick(), "mass", g.Economy().Mass())
}

// runWindow plays the game in a raylib window.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Accretion")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	w, h := float32(cfg.Screen.Width), float32(cfg.Screen.Height)
	panel := ui.NewPanel(w, h)
	playW := playWidth(panel, w)
	opts.Width, opts.Height = float64(playW), float64(h)

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	d := game.NewDriver(g)
	s := &windowSurface{
		driver:   d,
		scene:    renderer.NewScene(float64(playW), float64(h), cfg.Physics.MaxGravityLevel),
		panel:    panel,
		inspect:  inspector.NewInspector(int32(h)),
		keys:     ui.DefaultKeyBindings(),
		maxTicks: maxTicks,
	}
	if err := d.Run(context.Background(), s); err != nil {
		slog.Error("frame loop stopped", "error", err)
	}
}

// playWidth is the screen width left of the control panel.
func playWidth(p *ui.Panel, screenW float32) float32 {
	if x := p.Layout().Panel.X; x > 0 {
		return x
	}
	return screenW
}

// windowSurface presents frames in the raylib window and feeds input back
// to the driver. Everything runs on the main thread.
type windowSurface struct {
	driver   *game.Driver
	scene    *renderer.Scene
	panel    *ui.Panel
	inspect  *inspector.Inspector
	keys     []ui.KeyBinding
	cmds     []game.Command
	maxTicks int
}

func (s *windowSurface) NextFrame() (time.Duration, bool) {
	if rl.WindowShouldClose() {
		return 0, false
	}
	if s.maxTicks > 0 && int(s.driver.Game().Tick()) >= s.maxTicks {
		slog.Info("max ticks reached", "tick", s.driver.Game().Tick())
		return 0, false
	}

	if rl.IsWindowResized() {
		w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
		s.panel.Resize(w, h)
		playW := playWidth(s.panel, w)
		s.scene.Resize(float64(playW), float64(h))
		s.inspect.Resize(int32(h))
		s.driver.Submit(game.CmdResize{W: float64(playW), H: float64(h)})
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.scene.Camera().ZoomBy(1 + 0.1*float64(wheel))
	}

	s.cmds = ui.PollKeys(s.cmds[:0], s.keys)
	s.submit(s.cmds)

	return time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)), true
}

func (s *windowSurface) Present(snap game.Snapshot) {
	rl.BeginDrawing()
	s.scene.Draw(&snap)
	s.inspect.Draw(&snap, s.scene.Camera())
	clicks := s.panel.Draw(&snap, &s.scene.Flash)
	rl.EndDrawing()
	s.submit(clicks)

	if m := rl.GetMousePosition(); !s.panel.Layout().Contains(m.X, m.Y) {
		s.inspect.HandleInput(&snap, s.scene.Camera(), m.X, m.Y)
	}
}

func (s *windowSurface) submit(cmds []game.Command) {
	for _, cmd := range cmds {
		if !s.driver.Submit(cmd) {
			slog.Warn("command queue full, dropping input")
		}
	}
}
