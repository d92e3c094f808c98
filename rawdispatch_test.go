package vtcore

import "testing"

func TestDECRQMReportsSetPrivateMode(t *testing.T) {
	var buf []byte
	term := New(WithSize(24, 80), WithResponse(&collectingWriter{buf: &buf}))

	term.WriteString("\x1b[?25h")  // show cursor (already on by default, but make it explicit)
	term.WriteString("\x1b[?25$p") // DECRQM: is mode 25 set?

	if got := string(buf); got != "\x1b[?25;1$y" {
		t.Errorf("expected DECRPM reporting mode 25 set, got %q", got)
	}
}

func TestDECRQMReportsResetPrivateMode(t *testing.T) {
	var buf []byte
	term := New(WithSize(24, 80), WithResponse(&collectingWriter{buf: &buf}))

	term.WriteString("\x1b[?1$p") // DECCKM never enabled

	if got := string(buf); got != "\x1b[?1;2$y" {
		t.Errorf("expected DECRPM reporting mode 1 reset, got %q", got)
	}
}

func TestDECRQMReportsUnrecognizedMode(t *testing.T) {
	var buf []byte
	term := New(WithSize(24, 80), WithResponse(&collectingWriter{buf: &buf}))

	term.WriteString("\x1b[?9999$p")

	if got := string(buf); got != "\x1b[?9999;0$y" {
		t.Errorf("expected DECRPM reporting mode 9999 unrecognized, got %q", got)
	}
}

func TestDECRQSSReportsScrollRegion(t *testing.T) {
	var buf []byte
	term := New(WithSize(24, 80), WithResponse(&collectingWriter{buf: &buf}))

	term.WriteString("\x1b[5;20r")   // DECSTBM
	term.WriteString("\x1bP$qr\x1b\\") // DECRQSS for "r"

	if got := string(buf); got != "\x1bP1$r5;20r\x1b\\" {
		t.Errorf("expected DECRQSS scroll-region response, got %q", got)
	}
}

func TestDECRQSSReportsInvalidRequest(t *testing.T) {
	var buf []byte
	term := New(WithSize(24, 80), WithResponse(&collectingWriter{buf: &buf}))

	term.WriteString("\x1bP$qZ\x1b\\")

	if got := string(buf); got != "\x1bP0$r\x1b\\" {
		t.Errorf("expected invalid DECRQSS response, got %q", got)
	}
}

func TestDECSCAProtectsAgainstSelectiveErase(t *testing.T) {
	term := New(WithSize(5, 10))

	term.WriteString("\x1b[1\"q") // DECSCA: protect subsequent characters
	term.WriteString("AB")
	term.WriteString("\x1b[0\"q") // stop protecting
	term.WriteString("CD")

	term.Goto(0, 0)
	term.WriteString("\x1b[?2J") // DECSED: selective erase entire screen

	if got := term.LineContent(0); got != "AB" {
		t.Errorf("expected protected cells AB to survive selective erase, got %q", got)
	}
}

func TestDECSEDUnprotectedErasesNormally(t *testing.T) {
	term := New(WithSize(5, 10))

	term.WriteString("ABCD")
	term.Goto(0, 0)
	term.WriteString("\x1b[?2J")

	if got := term.LineContent(0); got != "" {
		t.Errorf("expected unprotected cells to be erased, got %q", got)
	}
}
