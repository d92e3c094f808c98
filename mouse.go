package vtcore

import "fmt"

// MouseButton identifies which button (or motion-only) triggered a mouse event.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonRelease
	MouseButtonNone // motion with no button held
	MouseWheelUp
	MouseWheelDown
)

// MouseEventKind distinguishes press, release, and motion reports.
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
)

// MouseEvent describes a single pointer event to be encoded for the host
// application, in 1-based row/col terminal coordinates.
type MouseEvent struct {
	Button MouseButton
	Kind   MouseEventKind
	Row    int
	Col    int
	Shift  bool
	Alt    bool
	Ctrl   bool
}

// MouseProtocol selects the wire encoding used for outbound mouse reports.
type MouseProtocol int

const (
	MouseProtocolX10 MouseProtocol = iota
	MouseProtocolVT200
	MouseProtocolUTF8
	MouseProtocolSGR
	MouseProtocolURXVT
)

// EncodeMouse renders ev as the CSI byte sequence the active mouse-reporting
// modes would send to the application, or nil if the event should not be
// reported under the terminal's current mode bits. Hosts that capture raw
// pointer input call this to turn it into the bytes an application expects
// to read from the PTY, mirroring how Write turns bytes into screen
// state in the opposite direction.
func (t *Terminal) EncodeMouse(ev MouseEvent, proto MouseProtocol) []byte {
	t.mu.RLock()
	reportable := t.modes&(ModeReportMouseClicks|ModeReportCellMouseMotion|ModeReportAllMouseMotion) != 0
	t.mu.RUnlock()
	if !reportable {
		return nil
	}

	if ev.Kind == MouseMotion {
		t.mu.RLock()
		motionOK := t.modes&(ModeReportCellMouseMotion|ModeReportAllMouseMotion) != 0
		t.mu.RUnlock()
		if !motionOK {
			return nil
		}
	}

	cb := mouseButtonCode(ev)

	switch proto {
	case MouseProtocolSGR:
		final := byte('M')
		if ev.Kind == MouseRelease {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, ev.Col, ev.Row, final))

	case MouseProtocolURXVT:
		if ev.Kind == MouseRelease {
			cb = 3
		}
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", cb+32, ev.Col, ev.Row))

	case MouseProtocolUTF8:
		if ev.Kind == MouseRelease {
			cb = 3
		}
		buf := []byte{0x1b, '[', 'M'}
		buf = appendMouseUTF8Coord(buf, cb+32)
		buf = appendMouseUTF8Coord(buf, ev.Col+32)
		buf = appendMouseUTF8Coord(buf, ev.Row+32)
		return buf

	default: // X10, VT200: single-byte coordinates, capped at 223 (255-32)
		if ev.Kind == MouseRelease {
			cb = 3
		}
		col, row := ev.Col, ev.Row
		if col > 223 {
			col = 223
		}
		if row > 223 {
			row = 223
		}
		return []byte{0x1b, '[', 'M', byte(cb + 32), byte(col + 32), byte(row + 32)}
	}
}

func mouseButtonCode(ev MouseEvent) int {
	var cb int
	switch ev.Button {
	case MouseButtonLeft:
		cb = 0
	case MouseButtonMiddle:
		cb = 1
	case MouseButtonRight:
		cb = 2
	case MouseWheelUp:
		cb = 64
	case MouseWheelDown:
		cb = 65
	default:
		cb = 3
	}
	if ev.Kind == MouseMotion {
		cb |= 32
	}
	if ev.Shift {
		cb |= 4
	}
	if ev.Alt {
		cb |= 8
	}
	if ev.Ctrl {
		cb |= 16
	}
	return cb
}

// appendMouseUTF8Coord appends a coordinate using xterm's 1005 encoding:
// values up to 127 are a single byte, larger values are encoded as the
// two-byte UTF-8 sequence for that code point, extending X10's 223-cell
// ceiling to 2015.
func appendMouseUTF8Coord(buf []byte, v int) []byte {
	if v <= 127 {
		return append(buf, byte(v))
	}
	return append(buf, byte(0xc0|(v>>6)), byte(0x80|(v&0x3f)))
}
