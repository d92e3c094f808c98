package vtcore

import (
	"bytes"
	"testing"
)

func TestEncodeMouseNoneWhenReportingDisabled(t *testing.T) {
	term := New(WithSize(24, 80))

	ev := MouseEvent{Button: MouseButtonLeft, Kind: MousePress, Row: 5, Col: 10}
	if got := term.EncodeMouse(ev, MouseProtocolSGR); got != nil {
		t.Errorf("expected nil when no mouse mode is active, got %q", got)
	}
}

func TestEncodeMouseSGRPressAndRelease(t *testing.T) {
	term := New(WithSize(24, 80))
	term.mu.Lock()
	term.modes |= ModeReportMouseClicks
	term.mu.Unlock()

	press := term.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Kind: MousePress, Row: 5, Col: 10}, MouseProtocolSGR)
	if !bytes.Equal(press, []byte("\x1b[<0;10;5M")) {
		t.Errorf("expected SGR press sequence, got %q", press)
	}

	release := term.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Kind: MouseRelease, Row: 5, Col: 10}, MouseProtocolSGR)
	if !bytes.Equal(release, []byte("\x1b[<0;10;5m")) {
		t.Errorf("expected SGR release sequence, got %q", release)
	}
}

func TestEncodeMouseX10Encoding(t *testing.T) {
	term := New(WithSize(24, 80))
	term.mu.Lock()
	term.modes |= ModeReportMouseClicks
	term.mu.Unlock()

	got := term.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Kind: MousePress, Row: 1, Col: 1}, MouseProtocolX10)
	want := []byte{0x1b, '[', 'M', byte(0 + 32), byte(1 + 32), byte(1 + 32)}
	if !bytes.Equal(got, want) {
		t.Errorf("expected X10 sequence %v, got %v", want, got)
	}
}

func TestEncodeMouseMotionRequiresMotionMode(t *testing.T) {
	term := New(WithSize(24, 80))
	term.mu.Lock()
	term.modes |= ModeReportMouseClicks // clicks only, not motion
	term.mu.Unlock()

	ev := MouseEvent{Button: MouseButtonNone, Kind: MouseMotion, Row: 2, Col: 2}
	if got := term.EncodeMouse(ev, MouseProtocolSGR); got != nil {
		t.Errorf("expected nil motion report without a motion mode enabled, got %q", got)
	}
}
