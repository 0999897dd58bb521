// Command entity-tui runs the entity sandbox in a terminal, drawn top-down
// with mouse picking and dragging.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/config"
	"github.com/plus3/thingbox/console"
	"github.com/plus3/thingbox/game"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file.")
	script := flag.String("script", "", "Console script to run at startup; overrides startup_script.")
	logPath := flag.String("log", "entity-tui.log", "Log file; the terminal is owned by the UI.")
	debug := flag.Bool("debug", false, "Log at debug level.")
	flag.Parse()

	if err := run(*configPath, *script, *logPath, *debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, script, logPath string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Debug = cfg.Debug || debug
	if script != "" {
		cfg.StartupScript = script
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := cfg.Logger(logFile)

	store := assets.NewStore(logger)
	if err := store.LoadDefs(cfg.Models); err != nil {
		logger.Warn("some models failed to load", "err", err)
	}
	world := game.New(store, cfg.GameOptions(logger))
	con := console.New(logger)
	world.RegisterCommands(con)
	if cfg.StartupScript != "" {
		con.Execute("run " + cfg.StartupScript)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	app := NewApp(screen, world, con, store)

	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	last := time.Now()

	for !app.Done() {
		select {
		case ev, ok := <-eventCh:
			if !ok {
				return nil
			}
			app.HandleEvent(ev)
		case now := <-ticker.C:
			app.Tick(now.Sub(last).Seconds())
			last = now
			app.Draw()
		}
	}
	logger.Info("quit", "entities", world.Count())
	return nil
}
