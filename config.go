package sapling

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// LocalConfigPath is read by LoadConfig when no explicit path is given.
const LocalConfigPath = "sapling.yaml"

// Config is the engine configuration.
type Config struct {
	Title         string              `yaml:"title"`
	WindowSize    []int               `yaml:"window_size"` // [width, height]
	StartScene    string              `yaml:"start_scene"`
	ExitKey       string              `yaml:"exit_key"` // empty disables the exit key
	Zoom          float64             `yaml:"zoom"`
	Debug         DebugConfig         `yaml:"debug"`
	ScreenshotDir string              `yaml:"screenshot_dir"`
	Inputs        map[string][]string `yaml:"inputs"` // action -> key names
	Scenes        []SceneSpec         `yaml:"scenes"`
}

// DebugConfig controls debug mode.
type DebugConfig struct {
	Enabled    bool `yaml:"enabled"`
	WorldSpace bool `yaml:"world_space"` // overlay rects are world coordinates
}

// SceneSpec declares a scene in configuration.
type SceneSpec struct {
	Name    string       `yaml:"name"`
	Music   *string      `yaml:"music"` // absent keeps, "" stops, a path plays
	Objects []ObjectSpec `yaml:"objects"`
}

// ObjectSpec declares one object to spawn through the kind registry.
type ObjectSpec struct {
	Kind  string         `yaml:"kind"`
	Props map[string]any `yaml:"props"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Title:         "Untitled",
		WindowSize:    []int{800, 600},
		ExitKey:       "escape",
		Zoom:          DefaultZoom,
		ScreenshotDir: "screenshots",
		Inputs: map[string][]string{
			"up":    {"up"},
			"down":  {"down"},
			"left":  {"left"},
			"right": {"right"},
			"space": {"space"},
		},
	}
}

// LoadConfig reads the configuration.
// Search order: path -> ./sapling.yaml -> embedded default.
// Values are decoded over DefaultConfig, so omitted keys keep their
// defaults. An explicit path that cannot be read or parsed is an error.
func LoadConfig(path string) (Config, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		return ParseConfig(data)
	}

	if data, err := os.ReadFile(LocalConfigPath); err == nil {
		cfg, err := ParseConfig(data)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", LocalConfigPath, err)
		}
		return cfg, nil
	}

	return ParseConfig(defaultYAML)
}

// ParseConfig decodes YAML over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// WindowWidth returns the configured window width.
func (c Config) WindowWidth() int {
	if len(c.WindowSize) < 1 {
		return 0
	}
	return c.WindowSize[0]
}

// WindowHeight returns the configured window height.
func (c Config) WindowHeight() int {
	if len(c.WindowSize) < 2 {
		return 0
	}
	return c.WindowSize[1]
}

// Validate checks everything the engine would otherwise discover mid-frame.
// All problems are reported, joined.
func (c Config) Validate() error {
	var errs []error
	if len(c.WindowSize) != 2 || c.WindowSize[0] <= 0 || c.WindowSize[1] <= 0 {
		errs = append(errs, &ConfigError{
			Source: "window",
			Value:  fmt.Sprint(c.WindowSize),
			Err:    errors.New("window_size must be two positive integers"),
		})
	}
	if c.ExitKey != "" {
		if _, err := KeyCode(c.ExitKey); err != nil {
			errs = append(errs, err)
		}
	}
	in := NewInput()
	for action, keys := range c.Inputs {
		in.Define(action, keys...)
	}
	if err := in.Validate(); err != nil {
		errs = append(errs, err)
	}
	seen := make(map[string]bool, len(c.Scenes))
	for _, s := range c.Scenes {
		switch {
		case s.Name == "":
			errs = append(errs, &ConfigError{Source: "scenes", Err: errSceneNameRequired})
		case seen[s.Name]:
			errs = append(errs, &ConfigError{Source: "scenes", Value: s.Name, Err: errDuplicateScene})
		}
		seen[s.Name] = true
		for _, o := range s.Objects {
			if !KindRegistered(o.Kind) {
				errs = append(errs, &ConfigError{Source: "scenes", Value: o.Kind, Err: ErrUnknownKind})
			}
		}
	}
	if c.StartScene != "" && !seen[c.StartScene] {
		errs = append(errs, &ConfigError{Source: "start_scene", Value: c.StartScene, Err: ErrUnknownScene})
	}
	return errors.Join(errs...)
}

// Def turns the spec into a scene definition whose setup spawns every
// declared object, in order.
func (s SceneSpec) Def() SceneDef {
	objects := s.Objects
	return SceneDef{
		Name:  s.Name,
		Music: s.Music,
		Setup: func(scene *Scene, ctx *Context) error {
			for _, spec := range objects {
				obj, err := Spawn(ctx, spec)
				if err != nil {
					return fmt.Errorf("scene %q: %w", scene.Name(), err)
				}
				if err := scene.Add(obj); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// normalizeProps converts YAML sequences into the types RenderProps
// expects: four numbers for frame, two for origin.
func normalizeProps(props map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(props))
	for k, v := range props {
		seq, ok := v.([]any)
		if !ok {
			out[k] = v
			continue
		}
		nums := make([]float64, len(seq))
		for i, e := range seq {
			f, ok := toFloat(e)
			if !ok {
				return nil, &TypeError{Op: "set", Field: k, Want: "number", Got: kindOf(e)}
			}
			nums[i] = f
		}
		switch {
		case k == PropFrame && len(nums) == 4:
			out[k] = Rect{nums[0], nums[1], nums[2], nums[3]}
		case k == PropOrigin && len(nums) == 2:
			out[k] = Vec2{nums[0], nums[1]}
		default:
			out[k] = v
		}
	}
	return out, nil
}
