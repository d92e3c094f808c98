package vtcore

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EngineConfig bundles the construction-time settings that callers often
// want to load from a file rather than wire one Option at a time.
type EngineConfig struct {
	Rows              int    `yaml:"rows"`
	Cols              int    `yaml:"cols"`
	ScrollbackLines    int    `yaml:"scrollback_lines"`
	TermName          string `yaml:"term_name"`
	CursorStyle       string `yaml:"cursor_style"` // "block", "underline", "bar"
	TabStopWidth      int    `yaml:"tab_stop_width"`
	ConvertEOL        bool   `yaml:"convert_eol"`
	ScreenReaderMode  bool   `yaml:"screen_reader_mode"`
	EnableSixel       bool   `yaml:"enable_sixel"`
	EnableKitty       bool   `yaml:"enable_kitty"`
	ImageCacheLimitMB int    `yaml:"image_cache_limit_mb"`
}

// DefaultEngineConfig returns the config equivalent of New()'s zero-option defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Rows:              DEFAULT_ROWS,
		Cols:              DEFAULT_COLS,
		ScrollbackLines:   0,
		TermName:          "xterm-256color",
		CursorStyle:       "block",
		TabStopWidth:      8,
		EnableSixel:       true,
		EnableKitty:       true,
		ImageCacheLimitMB: 320,
	}
}

// LoadEngineConfig decodes an EngineConfig from YAML, starting from
// DefaultEngineConfig so a partial document only overrides what it sets.
func LoadEngineConfig(r io.Reader) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return EngineConfig{}, fmt.Errorf("vtcore: decode engine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the config describes a constructible terminal.
func (c EngineConfig) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("vtcore: rows and cols must be positive, got %dx%d", c.Rows, c.Cols)
	}
	if c.ScrollbackLines < 0 {
		return fmt.Errorf("vtcore: scrollback_lines must be >= 0, got %d", c.ScrollbackLines)
	}
	switch c.CursorStyle {
	case "", "block", "underline", "bar":
	default:
		return fmt.Errorf("vtcore: unknown cursor_style %q", c.CursorStyle)
	}
	return nil
}

func (c EngineConfig) cursorStyle() CursorStyle {
	switch c.CursorStyle {
	case "underline":
		return CursorStyleSteadyUnderline
	case "bar":
		return CursorStyleSteadyBar
	default:
		return CursorStyleSteadyBlock
	}
}

// WithConfig applies cfg as a single Option, so a host can build the struct
// once (e.g. from a YAML file via LoadEngineConfig) and pass it to New
// alongside provider Options. It applies Rows, Cols (each only when positive),
// ScrollbackLines (as a MemoryScrollback, only when positive), EnableSixel and
// EnableKitty. TermName, CursorStyle, TabStopWidth, ConvertEOL,
// ScreenReaderMode and ImageCacheLimitMB are not applied.
func WithConfig(cfg EngineConfig) Option {
	return func(t *Terminal) {
		if cfg.Rows > 0 {
			t.rows = cfg.Rows
		}
		if cfg.Cols > 0 {
			t.cols = cfg.Cols
		}
		if cfg.ScrollbackLines > 0 {
			t.scrollbackStorage = NewMemoryScrollback(cfg.ScrollbackLines)
		}
		t.sixelEnabled = cfg.EnableSixel
		t.kittyEnabled = cfg.EnableKitty
	}
}
