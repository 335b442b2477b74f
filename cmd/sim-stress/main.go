package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/plus3/sim2d/config"
	"github.com/plus3/sim2d/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults are used when empty.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	bodies := flag.Int("bodies", -1, "Override the number of bouncing bodies.")
	watch := flag.Bool("watch", false, "Reload the config file when it changes.")
	logLevel := flag.String("log-level", "", "Override the config's log level.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if err := run(*configPath, *duration, *bodies, *watch, *logLevel, *gcPauseMetrics); err != nil {
		fmt.Fprintln(os.Stderr, "sim-stress:", err)
		os.Exit(1)
	}
}

func run(configPath string, duration time.Duration, bodies int, watch bool, logLevel string, gcPauseMetrics bool) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if bodies >= 0 {
		cfg.Bodies = bodies
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, level, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sim, err := NewSimulation(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sim.Scheduler.Close(); err != nil {
			logger.Warn("closing systems", zap.Error(err))
		}
	}()

	report := &Report{
		Duration:       duration,
		Tick:           cfg.Tick,
		Seed:           cfg.Seed,
		Cols:           cfg.World.Cols(),
		Rows:           cfg.World.Rows(),
		Walls:          sim.Walls,
		Bodies:         sim.Bodies,
		Agents:         cfg.Agents,
		GCPauseMetrics: gcPauseMetrics,
	}

	// tick and log level follow config reloads; world size and counts do not
	var tick atomic.Int64
	tick.Store(int64(cfg.Tick))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if watch && configPath != "" {
		watcher, err := config.NewWatcher(configPath, logger)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return watcher.Run(ctx, func(next *config.Config) {
				tick.Store(int64(next.Tick))
				if err := logging.SetLevel(level, next.LogLevel); err != nil {
					logger.Warn("ignoring log level", zap.Error(err))
				}
				atomic.AddInt64(&report.Reloads, 1)
			})
		})
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	logger.Info("running simulation", zap.Duration("duration", duration))

	g.Go(func() error {
		defer cancel()
		startTime := time.Now()

		for ctx.Err() == nil {
			dt := time.Duration(tick.Load()).Seconds()

			updateStart := time.Now()
			sim.Scheduler.Once(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}

		report.TotalTime = time.Since(startTime)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	report.UpdateTime.Finalize()
	report.Collision = sim.Collision.Stats()
	report.Scene = sim.Scene.CollectStats()
	report.Systems = sim.Scheduler.GetStats().Systems
	report.Arrivals = sim.Agents.Arrivals
	report.Unreachable = sim.Agents.Unreachable
	report.Stops = sim.Stops
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}
