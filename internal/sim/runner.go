package sim

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	DefaultFixedStep        = 20 * time.Millisecond
	DefaultMaxStepsPerFrame = 5
)

var ErrNilStepper = errors.New("runner has no stepper")

// Stepper advances a simulation by a fixed number of seconds.
type Stepper interface {
	Step(dt float64)
}

// UpdateFunc is the variable-rate update. It runs once per frame, before
// the frame's fixed steps, and is where input adapters write intent.
type UpdateFunc func(elapsed time.Duration)

// Runner drives a Stepper at a fixed rate from variable-length frames.
// All calls happen on the goroutine that calls Frame or Run.
type Runner struct {
	stepper     Stepper
	update      UpdateFunc
	fixedStep   time.Duration
	maxSteps    int
	accumulator time.Duration
	frames      uint64
	steps       uint64
	dropped     time.Duration
}

type RunnerOption func(*Runner)

func WithFixedStep(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.fixedStep = d
		}
	}
}

func WithMaxStepsPerFrame(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.maxSteps = n
		}
	}
}

func NewRunner(stepper Stepper, update UpdateFunc, opts ...RunnerOption) (*Runner, error) {
	if stepper == nil {
		return nil, ErrNilStepper
	}
	r := &Runner{
		stepper:   stepper,
		update:    update,
		fixedStep: DefaultFixedStep,
		maxSteps:  DefaultMaxStepsPerFrame,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Runner) FixedStep() time.Duration { return r.fixedStep }
func (r *Runner) Frames() uint64           { return r.frames }
func (r *Runner) Steps() uint64            { return r.steps }
func (r *Runner) Dropped() time.Duration   { return r.dropped }

// Frame runs the variable update once and then every fixed step the
// accumulated time allows, up to the per-frame cap. Time beyond the cap is
// dropped so a stalled host does not spiral. It returns the steps run.
func (r *Runner) Frame(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	r.frames++
	if r.update != nil {
		r.update(elapsed)
	}

	r.accumulator += elapsed
	dt := r.fixedStep.Seconds()
	n := 0
	for r.accumulator >= r.fixedStep && n < r.maxSteps {
		r.stepper.Step(dt)
		r.accumulator -= r.fixedStep
		n++
	}
	if r.accumulator >= r.fixedStep {
		excess := r.accumulator - r.accumulator%r.fixedStep
		r.dropped += excess
		r.accumulator -= excess
		slog.Debug("Dropped simulation time", "excess", excess, "frame", r.frames)
	}
	r.steps += uint64(n)
	return n
}

// Run calls Frame on every tick of frameInterval until ctx is done.
func (r *Runner) Run(ctx context.Context, frameInterval time.Duration) error {
	if frameInterval <= 0 {
		frameInterval = r.fixedStep
	}
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.Frame(now.Sub(last))
			last = now
		}
	}
}
