// Command entity-demo is a windowed sandbox for spawning, picking, dragging
// and colliding entities, with Dear ImGui debug panels and a console.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/audio"
	"github.com/plus3/thingbox/config"
	"github.com/plus3/thingbox/console"
	"github.com/plus3/thingbox/debugui"
	debugui_ebiten "github.com/plus3/thingbox/debugui/ebiten"
	"github.com/plus3/thingbox/game"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file.")
	debug := flag.Bool("debug", false, "Log at debug level.")
	script := flag.String("script", "", "Console script to run at startup; overrides startup_script.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
	}
	if *script != "" {
		cfg.StartupScript = *script
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	store := assets.NewStore(logger)
	if err := store.LoadDefs(cfg.Models); err != nil {
		logger.Warn("some models failed to load", "err", err)
	}

	backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)

	world := game.New(store, cfg.GameOptions(logger))
	con := console.New(logger)
	world.RegisterCommands(con)

	if cfg.Audio.Enabled {
		cues := audio.New(cfg.Audio.Volume, logger)
		if err := cues.Init(); err == nil {
			world.AddNotifier(cues)
			defer cues.Close()
		}
	}

	prompt := debugui.NewConsolePanel(con)
	perf := debugui.NewPerformancePanel(world.Scheduler(), world.Count, 120)
	ui := debugui.New(debugui.NewScenePanel(world, store), prompt, perf)
	world.Scheduler().RegisterNamed("debugui", ui)

	if cfg.StartupScript != "" {
		con.Execute("run " + cfg.StartupScript)
	}

	cam := NewCamera(cfg.Camera.Eye(), cfg.Camera.Center(), cfg.Camera.Fovy)
	cam.Resize(cfg.Window.Width, cfg.Window.Height)

	demo := &Demo{
		world:    world,
		console:  con,
		ui:       ui,
		prompt:   prompt,
		perf:     perf,
		backend:  backend,
		cam:      cam,
		renderer: NewRenderer(cam, store),
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(demo); err != nil {
		logger.Error("run game", "err", err)
		os.Exit(1)
	}
}
