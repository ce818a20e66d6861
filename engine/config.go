package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/objscene/engine/assets/loaders"
	"github.com/spaghettifunk/objscene/engine/core"
	"github.com/spaghettifunk/objscene/engine/math"
)

type Config struct {
	Engine EngineConfig `toml:"engine"`
	Assets AssetsConfig `toml:"assets"`
	Loader LoaderConfig `toml:"loader"`
}

type EngineConfig struct {
	// The application name, handed to the renderer backend.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`

	// Number of job workers loading meshes.
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`

	// Number of frames to run. 0 runs until the context is cancelled.
	Frames    int     `toml:"frames"`
	// Target frame time in seconds. 0 disables frame limiting.
	FrameTime float64 `toml:"frame_time"`
}

type AssetsConfig struct {
	BaseDir string `toml:"base_dir"`
	Watch   bool   `toml:"watch"`
}

type LoaderConfig struct {
	Lenient         bool    `toml:"lenient"`
	Normalize       bool    `toml:"normalize"`
	ReferenceSize   float32 `toml:"reference_size"`
	GenerateNormals bool    `toml:"generate_normals"`
}

const (
	maxFrameTime     = 1.0
	maxRecordedDraws = 4096
)

func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Name:      "objscene",
			LogLevel:  "info",
			Workers:   4,
			QueueSize: 64,
			Frames:    120,
			FrameTime: 1.0 / 60.0,
		},
		Assets: AssetsConfig{
			BaseDir: "assets",
			Watch:   false,
		},
		Loader: LoaderConfig{
			Lenient:         false,
			Normalize:       true,
			ReferenceSize:   math.DefaultReferenceSize,
			GenerateNormals: true,
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Keys missing from
// the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Engine.Workers <= 0 {
		return fmt.Errorf("engine.workers must be positive; got %d", c.Engine.Workers)
	}
	if c.Engine.QueueSize < 0 {
		return fmt.Errorf("engine.queue_size must not be negative; got %d", c.Engine.QueueSize)
	}
	if c.Engine.Frames < 0 {
		return fmt.Errorf("engine.frames must not be negative; got %d", c.Engine.Frames)
	}
	if c.Engine.FrameTime < 0 {
		return fmt.Errorf("engine.frame_time must not be negative; got %f", c.Engine.FrameTime)
	}
	if c.Loader.ReferenceSize <= 0 {
		return fmt.Errorf("loader.reference_size must be positive; got %f", c.Loader.ReferenceSize)
	}
	switch c.Engine.LogLevel {
	case "", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("engine.log_level '%s' is not one of debug, info, warn, error, fatal", c.Engine.LogLevel)
	}
	return nil
}

// ObjOptions translates the loader section into parser options.
func (lc LoaderConfig) ObjOptions() []loaders.ObjOption {
	opts := []loaders.ObjOption{loaders.WithReferenceSize(lc.ReferenceSize)}
	if lc.Lenient {
		opts = append(opts, loaders.WithLenientParsing())
	}
	if !lc.Normalize {
		opts = append(opts, loaders.WithoutNormalization())
	}
	if !lc.GenerateNormals {
		opts = append(opts, loaders.WithoutNormalGeneration())
	}
	return opts
}

// frameTime returns the configured frame time capped to maxFrameTime.
func (ec EngineConfig) frameTime() float64 {
	return math.Clamp(ec.FrameTime, 0, maxFrameTime)
}

func (ec EngineConfig) logLevel() core.LogLevel {
	return core.ParseLogLevel(ec.LogLevel)
}
