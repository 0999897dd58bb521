// Package config loads the demo configuration from YAML. Keys missing from
// the file keep their Default values.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/thingbox/assets"
	"github.com/plus3/thingbox/ecs"
	"github.com/plus3/thingbox/game"
	"gopkg.in/yaml.v3"
)

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Camera struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Fovy     float32    `yaml:"fovy"`
}

// Eye returns Position as a vector.
func (c Camera) Eye() mgl32.Vec3 { return mgl32.Vec3(c.Position) }

// Center returns Target as a vector.
func (c Camera) Center() mgl32.Vec3 { return mgl32.Vec3(c.Target) }

type World struct {
	Capacity        int     `yaml:"capacity"`
	MaxTraits       int     `yaml:"max_traits"`
	Friction        float32 `yaml:"friction"`
	VelocityEpsilon float32 `yaml:"velocity_epsilon"`
	MoveSpeed       float32 `yaml:"move_speed"`
	LabelFadeSec    float32 `yaml:"label_fade_sec"`
	LabelHeight     float32 `yaml:"label_height"`
	PushDistance    float32 `yaml:"push_distance"`
	HitboxLifeSec   float32 `yaml:"hitbox_life_sec"`
}

type Colors struct {
	Highlight [4]uint8 `yaml:"highlight"`
	Selection [4]uint8 `yaml:"selection"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Config is the full demo configuration.
type Config struct {
	Window        Window            `yaml:"window"`
	Camera        Camera            `yaml:"camera"`
	World         World             `yaml:"world"`
	Colors        Colors            `yaml:"colors"`
	Models        []assets.ModelDef `yaml:"models"`
	StartupScript string            `yaml:"startup_script"`
	Audio         Audio             `yaml:"audio"`
	Debug         bool              `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := game.DefaultOptions()
	return &Config{
		Window: Window{Width: 1280, Height: 720, Title: "Entity Spawner"},
		Camera: Camera{
			Position: [3]float32{5, 5, 5},
			Target:   [3]float32{0, 0, 0},
			Fovy:     45,
		},
		World: World{
			Capacity:        opts.Capacity,
			MaxTraits:       opts.MaxTraits,
			Friction:        opts.Friction,
			VelocityEpsilon: opts.VelocityEpsilon,
			MoveSpeed:       opts.MoveSpeed,
			LabelFadeSec:    opts.LabelFade,
			LabelHeight:     opts.LabelHeight,
			PushDistance:    opts.PushDistance,
			HitboxLifeSec:   opts.HitboxLife,
		},
		Colors: Colors{
			Highlight: rgbaArray(opts.HighlightColor),
			Selection: rgbaArray(opts.SelectionColor),
		},
		Models: []assets.ModelDef{
			{Name: "cube", Shape: assets.ShapeCube, Size: [3]float32{1, 1, 1}, Color: [4]uint8{200, 200, 200, 255}},
			{Name: "ball", Shape: assets.ShapeSphere, Size: [3]float32{1, 1, 1}, Color: [4]uint8{80, 160, 255, 255}},
			{Name: "coin", Shape: assets.ShapeCylinder, Size: [3]float32{0.6, 0.1, 0.6}, Color: [4]uint8{255, 203, 0, 255}},
			{Name: "spike", Shape: assets.ShapePyramid, Size: [3]float32{1, 1, 1}, Color: [4]uint8{230, 41, 55, 255}},
		},
		Audio: Audio{Enabled: true, Volume: 0.3},
	}
}

// Load reads path over Default. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
		errs = append(errs, fmt.Errorf("camera.fovy must be in (0, 180), got %v", c.Camera.Fovy))
	}
	if c.Camera.Position == c.Camera.Target {
		errs = append(errs, errors.New("camera.position and camera.target must differ"))
	}
	if c.World.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("world.capacity must be positive, got %d", c.World.Capacity))
	}
	if minTraits := len(game.BuiltinTraits); c.World.MaxTraits < minTraits || c.World.MaxTraits > ecs.MaxTraitSlots {
		errs = append(errs, fmt.Errorf("world.max_traits must be in %d..%d, got %d", minTraits, ecs.MaxTraitSlots, c.World.MaxTraits))
	}
	if c.World.Friction <= 0 {
		errs = append(errs, fmt.Errorf("world.friction must be positive, got %v", c.World.Friction))
	}
	if c.World.LabelFadeSec <= 0 {
		errs = append(errs, fmt.Errorf("world.label_fade_sec must be positive, got %v", c.World.LabelFadeSec))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be in [0, 1], got %v", c.Audio.Volume))
	}
	seen := make(map[string]bool, len(c.Models))
	for i, m := range c.Models {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("models[%d]: missing name", i))
			continue
		}
		if seen[m.Name] {
			errs = append(errs, fmt.Errorf("models[%d]: duplicate name %q", i, m.Name))
		}
		seen[m.Name] = true
	}
	return errors.Join(errs...)
}

// GameOptions maps the world and color sections onto game options.
func (c *Config) GameOptions(logger *slog.Logger) game.Options {
	return game.Options{
		Capacity:        c.World.Capacity,
		MaxTraits:       c.World.MaxTraits,
		Friction:        c.World.Friction,
		VelocityEpsilon: c.World.VelocityEpsilon,
		MoveSpeed:       c.World.MoveSpeed,
		LabelFade:       c.World.LabelFadeSec,
		LabelHeight:     c.World.LabelHeight,
		PushDistance:    c.World.PushDistance,
		HitboxLife:      c.World.HitboxLifeSec,
		HighlightColor:  rgba(c.Colors.Highlight),
		SelectionColor:  rgba(c.Colors.Selection),
		Logger:          logger,
	}
}

// Logger builds the text logger the hosts use: Debug level when debug is
// set, Info otherwise.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func rgba(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func rgbaArray(c color.RGBA) [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, c.A}
}
