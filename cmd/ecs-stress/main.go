package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/sparsecs/internal/scenario"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configPath := flag.String("config", "", "Scenario file (.toml, .yaml or .yml). Built-in defaults are used when empty.")
	duration := flag.Duration("duration", 0, "The total duration the test should run for. Overrides the scenario.")
	entityCount := flag.Int("entities", 0, "The initial number of entities to create. Overrides the scenario.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu or mem.")
	flag.Parse()

	s := scenario.Default()
	if *configPath != "" {
		loaded, err := scenario.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ecs-stress: %v\n", err)
			os.Exit(1)
		}
		s = loaded
	}
	if *duration > 0 {
		s.Duration = *duration
	}
	if *entityCount > 0 {
		s.Entities = *entityCount
	}

	log, err := newLogger(s.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ecs-stress: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		log.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	log.Info("starting ECS stress test",
		zap.String("config", *configPath),
		zap.Int64("seed", s.Seed),
	)

	// 1. Build the world, scheduler and systems
	rng := rand.New(rand.NewSource(s.Seed))
	rt := s.Build(rng, log)

	// 2. Populate the world with initial entities
	log.Info("populating world", zap.Int("entities", s.Entities))
	s.Populate(rng, rt.World)
	log.Info("population complete")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       s.Duration,
		Entities:       s.Entities,
		Components:     len(s.Components),
		Systems:        len(s.Systems),
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", s.Duration), zap.Duration("tick", s.Tick))
	ctx, cancel := context.WithTimeout(context.Background(), s.Duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
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
			rt.Scheduler.Once(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++

			if s.Tick > updateDuration {
				time.Sleep(s.Tick - updateDuration)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.World = rt.World.CollectStats()
	report.Scheduler = rt.Scheduler.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("updates", totalUpdates))

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")

	log.Info("stress test complete")
}

func newLogger(cfg scenario.LoggingConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, eris.Wrapf(err, "invalid log level %q", cfg.Level)
		}
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
