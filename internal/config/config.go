package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/world"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Character  CharacterConfig  `yaml:"character"`
	Simulation SimulationConfig `yaml:"simulation"`
	World      WorldConfig      `yaml:"world"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type CharacterConfig struct {
	MoveSpeed           float64   `yaml:"move_speed"`
	TurnSpeed           float64   `yaml:"turn_speed"`
	Gravity             float64   `yaml:"gravity"`
	JumpHeight          float64   `yaml:"jump_height"`
	GroundCheckOffset   float64   `yaml:"ground_check_offset"`
	GroundCheckDistance float64   `yaml:"ground_check_distance"`
	GroundCheckRadius   float64   `yaml:"ground_check_radius"`
	GroundMask          uint32    `yaml:"ground_mask"`
	CapsuleRadius       float64   `yaml:"capsule_radius"`
	CapsuleHeight       float64   `yaml:"capsule_height"`
	Spawn               []float64 `yaml:"spawn"`
	InitialHeading      float64   `yaml:"initial_heading"`
}

type SimulationConfig struct {
	// FixedStep is in seconds.
	FixedStep        float64 `yaml:"fixed_step"`
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"`
	FrameRate        int     `yaml:"frame_rate"`
	CameraYaw        float64 `yaml:"camera_yaw"`
	LogEvery         uint64  `yaml:"log_every"`
	RecorderCapacity int     `yaml:"recorder_capacity"`
}

type WorldConfig struct {
	Boxes []BoxConfig `yaml:"boxes"`
}

type BoxConfig struct {
	Name  string    `yaml:"name"`
	Min   []float64 `yaml:"min"`
	Max   []float64 `yaml:"max"`
	Layer uint32    `yaml:"layer"`
}

// Default mirrors the controller's built-in tunables on a flat floor.
func Default() Config {
	s := locomotion.DefaultSettings()
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Character: CharacterConfig{
			MoveSpeed:           s.MoveSpeed,
			TurnSpeed:           s.TurnSpeed,
			Gravity:             s.Gravity,
			JumpHeight:          s.JumpHeight,
			GroundCheckOffset:   s.GroundCheckOffset,
			GroundCheckDistance: s.GroundCheckDistance,
			GroundCheckRadius:   s.GroundCheckRadius,
			GroundMask:          uint32(s.GroundMask),
			CapsuleRadius:       world.DefaultCapsuleRadius,
			CapsuleHeight:       world.DefaultCapsuleHeight,
			Spawn:               []float64{0, 0, 0},
		},
		Simulation: SimulationConfig{
			FixedStep:        0.02,
			MaxStepsPerFrame: 5,
			FrameRate:        60,
			LogEvery:         50,
			RecorderCapacity: 3000,
		},
		World: WorldConfig{
			Boxes: []BoxConfig{
				{Name: "floor", Min: []float64{-50, -1, -50}, Max: []float64{50, 0, 50}, Layer: 1},
			},
		},
	}
}

// Load reads a yaml file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Character.Settings().Validate(); err != nil {
		return fmt.Errorf("%w: character: %w", ErrInvalidConfig, err)
	}
	if len(c.Character.Spawn) != 3 {
		return fmt.Errorf("%w: character.spawn must be [x, y, z]", ErrInvalidConfig)
	}
	if c.Simulation.FixedStep <= 0 {
		return fmt.Errorf("%w: simulation.fixed_step must be positive", ErrInvalidConfig)
	}
	if c.Simulation.FrameRate <= 0 {
		return fmt.Errorf("%w: simulation.frame_rate must be positive", ErrInvalidConfig)
	}
	if _, err := c.NewWorld(); err != nil {
		return fmt.Errorf("%w: world: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c CharacterConfig) Settings() locomotion.Settings {
	return locomotion.Settings{
		MoveSpeed:           c.MoveSpeed,
		TurnSpeed:           c.TurnSpeed,
		Gravity:             c.Gravity,
		JumpHeight:          c.JumpHeight,
		GroundCheckOffset:   c.GroundCheckOffset,
		GroundCheckDistance: c.GroundCheckDistance,
		GroundCheckRadius:   c.GroundCheckRadius,
		GroundMask:          locomotion.LayerMask(c.GroundMask),
	}
}

func (c CharacterConfig) SpawnPoint() locomotion.Vec3 {
	if len(c.Spawn) != 3 {
		return locomotion.Vec3{}
	}
	return locomotion.Vec3{X: c.Spawn[0], Y: c.Spawn[1], Z: c.Spawn[2]}
}

func (s SimulationConfig) FixedStepDuration() time.Duration {
	return time.Duration(s.FixedStep * float64(time.Second))
}

func (s SimulationConfig) FrameInterval() time.Duration {
	if s.FrameRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(s.FrameRate)
}

// Build converts the configured boxes into world colliders.
func (w WorldConfig) Build() ([]world.Box, error) {
	boxes := make([]world.Box, 0, len(w.Boxes))
	for i, b := range w.Boxes {
		if len(b.Min) != 3 || len(b.Max) != 3 {
			return nil, fmt.Errorf("box %d (%s): min and max must be [x, y, z]", i, b.Name)
		}
		boxes = append(boxes, world.Box{
			AABB: world.AABB{
				Min: locomotion.Vec3{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]},
				Max: locomotion.Vec3{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]},
			},
			Layer: locomotion.LayerMask(b.Layer),
		})
	}
	return boxes, nil
}

// NewWorld builds the collision world with the character at its spawn.
func (c *Config) NewWorld() (*world.World, error) {
	boxes, err := c.World.Build()
	if err != nil {
		return nil, err
	}
	w := world.New(c.Character.CapsuleRadius, c.Character.CapsuleHeight, c.Character.SpawnPoint())
	for i, b := range boxes {
		if err := w.AddBox(b); err != nil {
			return nil, fmt.Errorf("box %d (%s): %w", i, c.World.Boxes[i].Name, err)
		}
	}
	return w, nil
}
