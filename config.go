package tuiocanvas

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("tuiocanvas: invalid config")

// Config is the file-level configuration of the viewer programs.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Canvas CanvasConfig `yaml:"canvas"`
	Log    LogConfig    `yaml:"log"`
}

// WindowConfig sizes the host window.
type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Resizable     bool   `yaml:"resizable"`
	ShowFPS       bool   `yaml:"show_fps"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// CanvasConfig mirrors Options in YAML-friendly types.
type CanvasConfig struct {
	DrawingScale float64  `yaml:"drawing_scale"`
	FlipBounds   bool     `yaml:"flip_bounds"`
	Website      string   `yaml:"website"`
	Palette      []string `yaml:"palette"`
	Background   string   `yaml:"background"`
	Backdrop     string   `yaml:"backdrop"`
	LabelSize    float64  `yaml:"label_size"`
	QRSize       float64  `yaml:"qr_size"`
	Debug        bool     `yaml:"debug"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "TUIO 2.0 Canvas",
			Width:         1280,
			Height:        720,
			Resizable:     true,
			ScreenshotDir: "screenshots",
		},
		Canvas: CanvasConfig{
			DrawingScale: DefaultDrawingScale,
			Background:   "#1d1d1d",
			Backdrop:     "#000000",
			LabelSize:    DefaultLabelSize,
			QRSize:       DefaultQRSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tuiocanvas: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Keys absent from data keep their defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("tuiocanvas: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Canvas.DrawingScale <= 0 || c.Canvas.DrawingScale > 1 {
		return fmt.Errorf("%w: drawing_scale %g not in (0, 1]", ErrInvalidConfig, c.Canvas.DrawingScale)
	}
	if _, err := c.Canvas.colors(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

type canvasColors struct {
	palette    []Color
	background *Color
	backdrop   *Color
}

func (c CanvasConfig) colors() (canvasColors, error) {
	var out canvasColors
	for _, hex := range c.Palette {
		col, err := ParseColor(hex)
		if err != nil {
			return out, err
		}
		out.palette = append(out.palette, col)
	}
	if c.Background != "" {
		col, err := ParseColor(c.Background)
		if err != nil {
			return out, err
		}
		out.background = &col
	}
	if c.Backdrop != "" {
		col, err := ParseColor(c.Backdrop)
		if err != nil {
			return out, err
		}
		out.backdrop = &col
	}
	return out, nil
}

// CanvasOptions converts the canvas section into Options. Call Validate
// first; unparsable colors fall back to the Options defaults.
func (c *Config) CanvasOptions() Options {
	cols, _ := c.Canvas.colors()
	return Options{
		DrawingScale: c.Canvas.DrawingScale,
		FlipBounds:   c.Canvas.FlipBounds,
		Website:      c.Canvas.Website,
		Palette:      cols.palette,
		Background:   cols.background,
		Backdrop:     cols.backdrop,
		LabelSize:    c.Canvas.LabelSize,
		QRSize:       c.Canvas.QRSize,
		Debug:        c.Canvas.Debug,
	}
}

// RunConfig converts the window section into a RunConfig.
func (c *Config) RunConfig() RunConfig {
	return RunConfig{
		Title:         c.Window.Title,
		Width:         c.Window.Width,
		Height:        c.Window.Height,
		Resizable:     c.Window.Resizable,
		ShowFPS:       c.Window.ShowFPS,
		ScreenshotDir: c.Window.ScreenshotDir,
	}
}

// NewLogger builds an slog.Logger writing to w per the log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
