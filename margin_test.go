package vtcore

import "testing"

func TestLeftRightMarginIgnoredWhenModeOff(t *testing.T) {
	term := New(WithSize(24, 80))

	term.SetLeftRightMargin(10, 40)

	if term.MarginLeft() != 0 || term.MarginRight() != 80 {
		t.Errorf("expected margins unchanged when mode is off, got %d-%d", term.MarginLeft(), term.MarginRight())
	}
}

func TestLeftRightMarginAppliesWhenModeOn(t *testing.T) {
	term := New(WithSize(24, 80))

	term.SetLeftRightMarginMode(true)
	term.SetLeftRightMargin(10, 40)

	if term.MarginLeft() != 9 || term.MarginRight() != 40 {
		t.Errorf("expected margins 9-40, got %d-%d", term.MarginLeft(), term.MarginRight())
	}
}

func TestLeftRightMarginModeOffResetsMargins(t *testing.T) {
	term := New(WithSize(24, 80))

	term.SetLeftRightMarginMode(true)
	term.SetLeftRightMargin(10, 40)
	term.SetLeftRightMarginMode(false)

	if term.MarginLeft() != 0 || term.MarginRight() != 80 {
		t.Errorf("expected margins reset to full width, got %d-%d", term.MarginLeft(), term.MarginRight())
	}
}

func TestReverseWraparoundBackspace(t *testing.T) {
	term := New(WithSize(24, 80))
	term.SetReverseWraparoundMode(true)

	term.WriteString("A")
	term.WriteString("\r\n")
	row, col := term.CursorPos()
	if row != 1 || col != 0 {
		t.Fatalf("expected cursor at (1,0) before backspace, got (%d,%d)", row, col)
	}

	term.WriteString("\b") // BS at column 0 with reverse-wraparound enabled

	row, col = term.CursorPos()
	if row != 0 || col != 79 {
		t.Errorf("expected reverse-wrap to (0,79), got (%d,%d)", row, col)
	}
}

func TestBackspaceWithoutReverseWraparoundStaysPut(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("A")
	term.WriteString("\r\n")
	term.WriteString("\b")

	row, col := term.CursorPos()
	if row != 1 || col != 0 {
		t.Errorf("expected cursor to stay at (1,0) without reverse-wraparound, got (%d,%d)", row, col)
	}
}

func TestWriteDispatchesDECSLRMModeAndMargins(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b[?69h")
	if !term.HasMode(ModeLeftRightMargin) {
		t.Fatal("expected CSI ?69h fed through Write to enable left-right margin mode")
	}

	term.WriteString("\x1b[10;40s")
	if term.MarginLeft() != 9 || term.MarginRight() != 40 {
		t.Errorf("expected margins 9-40 from raw CSI s, got %d-%d", term.MarginLeft(), term.MarginRight())
	}

	term.WriteString("\x1b[?69l")
	if term.HasMode(ModeLeftRightMargin) {
		t.Error("expected CSI ?69l fed through Write to disable left-right margin mode")
	}
	if term.MarginLeft() != 0 || term.MarginRight() != 80 {
		t.Errorf("expected margins reset after disabling mode, got %d-%d", term.MarginLeft(), term.MarginRight())
	}
}

func TestWriteDispatchesReverseWraparoundMode(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b[?45h")
	if !term.HasMode(ModeReverseWraparound) {
		t.Fatal("expected CSI ?45h fed through Write to enable reverse-wraparound mode")
	}

	term.WriteString("\x1b[?45l")
	if term.HasMode(ModeReverseWraparound) {
		t.Error("expected CSI ?45l fed through Write to disable reverse-wraparound mode")
	}
}

func TestWriteBareCSISIsNotTreatedAsDECSLRMWhenMarginModeOff(t *testing.T) {
	term := New(WithSize(24, 80))

	// With left-right margin mode off, "CSI 10;40 s" is not DECSLRM (xterm
	// leaves it for the ANSI.SYS save-cursor convention instead), so our
	// interceptor must leave it for the decoder rather than setting margins.
	term.WriteString("\x1b[10;40s")

	if term.MarginLeft() != 0 || term.MarginRight() != 80 {
		t.Errorf("expected margins untouched when margin mode is off, got %d-%d", term.MarginLeft(), term.MarginRight())
	}
}

func TestIdentifyTerminalDA2(t *testing.T) {
	var buf []byte
	term := New(WithSize(24, 80), WithResponse(&collectingWriter{buf: &buf}))

	term.IdentifyTerminal('>')

	if got := string(buf); got != "\x1b[>1;10;0c" {
		t.Errorf("expected DA2 response, got %q", got)
	}
}

func TestIdentifyTerminalDA1(t *testing.T) {
	var buf []byte
	term := New(WithSize(24, 80), WithResponse(&collectingWriter{buf: &buf}))

	term.IdentifyTerminal(0)

	if got := string(buf); got != "\x1b[?62;4;6;c" {
		t.Errorf("expected DA1 response, got %q", got)
	}
}

type collectingWriter struct {
	buf *[]byte
}

func (w *collectingWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
