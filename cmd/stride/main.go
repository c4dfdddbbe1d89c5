package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/debug"
	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/logger"
	"github.com/Versifine/stride/internal/sim"
	"github.com/Versifine/stride/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the yaml config")
	scenarioPath := flag.String("scenario", "", "replay a scenario file instead of reading the keyboard")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	closer, err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		slog.Error("Failed to init logger", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *scenarioPath != "" {
		err = replay(cfg, *scenarioPath)
	} else {
		err = interactive(ctx, cfg)
	}
	if err != nil {
		slog.Error("Simulation failed", "error", err)
		stop()
		closer.Close()
		os.Exit(1)
	}
}

type session struct {
	character *sim.Character
	recorder  *telemetry.Recorder
	bus       *event.Bus
}

func newSession(cfg *config.Config, sync bool) (*session, error) {
	w, err := cfg.NewWorld()
	if err != nil {
		return nil, err
	}
	recorder := telemetry.NewRecorder(cfg.Simulation.RecorderCapacity)
	bus := event.NewBus()
	sink := telemetry.Multi{
		recorder,
		telemetry.NewLogSink(logger.L(), cfg.Simulation.LogEvery),
		telemetry.NewPublisher(bus, sync),
	}
	ch, err := sim.NewCharacter(
		cfg.Character.Settings(),
		w,
		sim.NewOrbitCamera(cfg.Simulation.CameraYaw),
		sink,
		locomotion.WithInitialHeading(cfg.Character.InitialHeading),
	)
	if err != nil {
		return nil, err
	}
	slog.Info("Character spawned",
		"run_id", recorder.RunID(),
		"spawn", ch.World.Position(),
		"boxes", len(ch.World.Boxes()),
	)
	return &session{character: ch, recorder: recorder, bus: bus}, nil
}

func replay(cfg *config.Config, path string) error {
	scenario, err := sim.LoadScenario(path)
	if err != nil {
		return err
	}
	s, err := newSession(cfg, true)
	if err != nil {
		return err
	}
	var jumps atomic.Int64
	s.bus.Subscribe(event.EventJumped, func(any) { jumps.Add(1) })

	ch := s.character
	steps, err := sim.Replay(scenario, ch.Controller, ch, ch.Camera, cfg.Simulation.FixedStepDuration())
	if err != nil {
		return err
	}
	pos := ch.World.Position()
	fmt.Printf("scenario=%s steps=%d jumps=%d max_rise=%.3f\n", scenario.Name, steps, jumps.Load(), s.recorder.MaxRise())
	fmt.Printf("final position=(%.3f, %.3f, %.3f) heading=%.2f grounded=%t\n",
		pos.X, pos.Y, pos.Z, ch.Controller.Heading(), ch.Controller.IsGrounded())
	if last, ok := s.recorder.Last(); ok {
		fmt.Printf("last tick=%d vy=%.3f grounded=%t\n", last.Tick, last.VerticalVelocity, last.Grounded)
	}
	fmt.Printf("run_id=%s digest=%016x\n", s.recorder.RunID(), s.recorder.Digest())
	return nil
}

func interactive(ctx context.Context, cfg *config.Config) error {
	s, err := newSession(cfg, false)
	if err != nil {
		return err
	}
	var jumps atomic.Int64
	s.bus.Subscribe(event.EventJumped, func(any) { jumps.Add(1) })

	console := debug.NewConsole()
	runner, err := sim.NewRunner(s.character, func(time.Duration) {
		console.Update(s.character)
	},
		sim.WithFixedStep(cfg.Simulation.FixedStepDuration()),
		sim.WithMaxStepsPerFrame(cfg.Simulation.MaxStepsPerFrame),
	)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	// Ctrl-C in raw mode surfaces as context.Canceled from the console.
	g.Go(func() error { return console.Start(ctx) })
	g.Go(func() error {
		return runner.Run(ctx, cfg.Simulation.FrameInterval())
	})
	err = g.Wait()

	slog.Info("Session finished",
		"run_id", s.recorder.RunID(),
		"steps", runner.Steps(),
		"jumps", jumps.Load(),
		"dropped", runner.Dropped(),
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
