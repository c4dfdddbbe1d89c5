package telemetry

import (
	"log/slog"

	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/locomotion"
)

// Multi fans a step report out to several sinks.
type Multi []locomotion.Telemetry

func (m Multi) ObserveStep(r locomotion.StepReport) {
	for _, sink := range m {
		if sink != nil {
			sink.ObserveStep(r)
		}
	}
}

// LogSink writes ground transitions at info level and a step summary at
// debug level every Every steps.
type LogSink struct {
	logger  *slog.Logger
	every   uint64
	tracker tracker
}

func NewLogSink(logger *slog.Logger, every uint64) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "locomotion"), every: every}
}

func (s *LogSink) ObserveStep(r locomotion.StepReport) {
	if r.Jumped {
		s.logger.Info("Character jumped", "tick", r.Tick, "velocity", r.State.VerticalVelocity)
	}
	switch tr, airtime := s.tracker.observe(r); tr {
	case TransitionLanded:
		s.logger.Info("Character landed", "tick", r.Tick, "airtime_steps", airtime)
	case TransitionAirborne:
		s.logger.Info("Character left ground", "tick", r.Tick)
	}

	if s.every == 0 || r.Tick%s.every != 0 {
		return
	}
	s.logger.Debug("Locomotion step",
		"tick", r.Tick,
		"grounded", r.State.Grounded,
		"heading", r.State.Heading,
		"target_yaw", r.TargetYaw,
		"vertical_velocity", r.State.VerticalVelocity,
		"probe_start", r.Probe.Start,
		"probe_end", r.Probe.End,
		"probe_radius", r.Probe.Radius,
	)
}

// Publisher raises jump and ground transition events on a bus.
type Publisher struct {
	bus     *event.Bus
	sync    bool
	tracker tracker
}

// NewPublisher delivers asynchronously unless sync is set.
func NewPublisher(bus *event.Bus, sync bool) *Publisher {
	return &Publisher{bus: bus, sync: sync}
}

func (p *Publisher) ObserveStep(r locomotion.StepReport) {
	if p.bus == nil {
		return
	}
	if r.Jumped {
		p.publish(event.EventJumped, event.JumpEvent{
			Tick:     r.Tick,
			Velocity: r.State.VerticalVelocity,
			Heading:  r.State.Heading,
		})
	}
	switch tr, airtime := p.tracker.observe(r); tr {
	case TransitionLanded:
		n := r.State.GroundNormal
		p.publish(event.EventLanded, event.LandEvent{
			Tick:    r.Tick,
			Normal:  [3]float64{n.X, n.Y, n.Z},
			Airtime: airtime,
		})
	case TransitionAirborne:
		p.publish(event.EventAirborne, event.AirborneEvent{
			Tick:     r.Tick,
			Velocity: r.State.VerticalVelocity,
		})
	}
}

func (p *Publisher) publish(name string, evt any) {
	if p.sync {
		p.bus.PublishSync(name, evt)
		return
	}
	p.bus.Publish(name, evt)
}
