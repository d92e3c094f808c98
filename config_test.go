package vtcore

import (
	"strings"
	"testing"
)

func TestLoadEngineConfigDefaults(t *testing.T) {
	cfg, err := LoadEngineConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Rows != DEFAULT_ROWS || cfg.Cols != DEFAULT_COLS {
		t.Errorf("expected default size %dx%d, got %dx%d", DEFAULT_ROWS, DEFAULT_COLS, cfg.Rows, cfg.Cols)
	}
}

func TestLoadEngineConfigOverrides(t *testing.T) {
	yaml := "rows: 40\ncols: 120\nscrollback_lines: 500\n"
	cfg, err := LoadEngineConfig(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Rows != 40 || cfg.Cols != 120 || cfg.ScrollbackLines != 500 {
		t.Errorf("expected overridden values, got %+v", cfg)
	}
}

func TestLoadEngineConfigRejectsInvalidSize(t *testing.T) {
	_, err := LoadEngineConfig(strings.NewReader("rows: 0\ncols: 80\n"))
	if err == nil {
		t.Fatal("expected error for non-positive rows")
	}
}

func TestWithConfigAppliesToTerminal(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Rows = 30
	cfg.Cols = 100
	cfg.ScrollbackLines = 200

	term := New(WithConfig(cfg))

	if term.Rows() != 30 || term.Cols() != 100 {
		t.Errorf("expected 30x100, got %dx%d", term.Rows(), term.Cols())
	}
	if term.MaxScrollback() != 200 {
		t.Errorf("expected scrollback capacity 200, got %d", term.MaxScrollback())
	}
}
