package imguidesktop

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/PazerOP/imgui-desktop/glcontext"
	"github.com/PazerOP/imgui-desktop/gldriver"
)

// Duration is a time.Duration written as a string like "100ms" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config controls an Application and the windows it creates.
type Config struct {
	// SleepDuration bounds how long Update blocks waiting for events when
	// every window allows sleeping.
	SleepDuration Duration `toml:"sleep_duration"`
	VSync         bool     `toml:"vsync"`
	// DebugOutput installs a GL debug message callback when supported.
	DebugOutput bool `toml:"debug_output"`

	GL             GLConfig                 `toml:"gl"`
	BlockedDrivers []gldriver.BlockedDriver `toml:"blocked_drivers"`
	Window         WindowConfig             `toml:"window"`
}

// GLConfig configures shared context creation.
type GLConfig struct {
	// Attempts is tried in order until a context is created.
	Attempts []glcontext.Attempt `toml:"attempts"`
}

// WindowConfig holds defaults for new windows.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		SleepDuration:  Duration{100 * time.Millisecond},
		VSync:          true,
		DebugOutput:    true,
		GL:             GLConfig{Attempts: glcontext.DefaultAttempts()},
		BlockedDrivers: gldriver.DefaultBlockedDrivers(),
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "ImGuiDesktopWindow",
		},
	}
}

// ParseConfig decodes TOML on top of DefaultConfig. List settings that are
// left out or empty keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	cfg.GL.Attempts = nil
	cfg.BlockedDrivers = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	def := DefaultConfig()
	if len(cfg.GL.Attempts) == 0 {
		cfg.GL.Attempts = def.GL.Attempts
	}
	if len(cfg.BlockedDrivers) == 0 {
		cfg.BlockedDrivers = def.BlockedDrivers
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cfg for values the application cannot run with.
func (c Config) Validate() error {
	if c.SleepDuration.Duration <= 0 {
		return fmt.Errorf("sleep_duration must be positive, got %v", c.SleepDuration)
	}
	for i, a := range c.GL.Attempts {
		if !a.Version.IsValid() {
			return fmt.Errorf("gl.attempts[%d]: invalid version %v", i, a.Version)
		}
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must not be negative, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// Encode writes cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
