package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/game"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 500, "The initial number of entities to create.")
	capacity := flag.Int("capacity", 1000, "Entity store capacity.")
	churn := flag.Int("churn", 5, "Entities removed and spawned every frame.")
	arena := flag.Float64("arena", 20, "Half-width of the square spawn area.")
	seed := flag.Uint64("seed", 1, "Random seed.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	debug := flag.Bool("debug", false, "Log at debug level.")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		logger.Error("unknown profile mode", "mode", *profileMode)
		os.Exit(2)
	}

	logger.Info("starting stress test", "entities", *entityCount, "churn", *churn, "duration", *duration)

	store := assets.NewStore(logger)
	if err := store.LoadDefs([]assets.ModelDef{
		{Name: "cube"},
		{Name: "coin", Shape: assets.ShapeCylinder, Size: [3]float32{0.6, 0.1, 0.6}},
	}); err != nil {
		logger.Error("load models", "err", err)
		os.Exit(1)
	}

	opts := game.DefaultOptions()
	opts.Capacity = *capacity
	opts.Logger = logger
	world := game.New(store, opts)

	sim := NewSimulation(world, *seed, *churn, float32(*arena))
	sim.Populate(*entityCount)
	logger.Info("population complete", "live", world.Count(), "failed", sim.Failed)

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Capacity:       *capacity,
		Churn:          *churn,
		Seed:           *seed,
		Profile:        *profileMode,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			sim.Step(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Collect(sim, world)

	logger.Info("simulation finished", "updates", report.TotalUpdates)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("generate report", "err", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}
