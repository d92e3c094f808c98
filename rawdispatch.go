package vtcore

import "strconv"

// interceptRawSequences scans data for the CSI/DCS sequences go-ansicode's
// Handler interface cannot carry (it dispatches through a closed
// ansicode.TerminalMode enum with no member for DECSLRM mode 69 or
// reverse-wraparound mode 45, and has no rectangular-area or DECRQM/DECRQSS
// methods at all). Recognized sequences are executed directly against
// Terminal state and removed from the returned slice; everything else is
// passed through unchanged for decoder.Write to handle.
//
// A sequence that straddles two Write calls is not reassembled: the split
// half is passed through untouched. Callers feeding a PTY stream byte-by-byte
// across many small Writes may see such a sequence reach the ansicode decoder
// unrecognized instead of being intercepted; this matches how the decoder
// itself only reassembles within a single Write.
func (t *Terminal) interceptRawSequences(data []byte) []byte {
	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		if data[i] != 0x1b || i+1 >= len(data) {
			out = append(out, data[i])
			i++
			continue
		}

		switch data[i+1] {
		case '[':
			seq, consumed, ok := parseCSI(data[i:])
			if !ok {
				out = append(out, data[i:]...)
				i = len(data)
				continue
			}
			if !t.dispatchRawCSI(seq) {
				out = append(out, data[i:i+consumed]...)
			}
			i += consumed
		case 'P':
			consumed, stripped, found := t.tryDispatchDCS(data[i:])
			if !found {
				// No ST within this Write call; can't safely tell DECRQSS
				// apart from e.g. a Sixel DCS without it, so leave the rest
				// of this call for the decoder untouched.
				out = append(out, data[i:]...)
				i = len(data)
				continue
			}
			if !stripped {
				out = append(out, data[i:i+consumed]...)
			}
			i += consumed
		default:
			out = append(out, data[i])
			i++
		}
	}
	return out
}

// csiSequence is a parsed CSI escape: ESC [ private params intermediate final.
type csiSequence struct {
	private      byte // '?', '>', etc, or 0
	params       []int
	intermediate byte // single intermediate byte, or 0
	final        byte
}

// parseCSI parses a CSI sequence at the start of data (data[0]==ESC,
// data[1]=='['). Returns the sequence, the number of bytes consumed, and
// false if data ends before a final byte is found (incomplete sequence).
func parseCSI(data []byte) (csiSequence, int, bool) {
	var seq csiSequence
	j := 2
	if j < len(data) && (data[j] == '?' || data[j] == '>' || data[j] == '<' || data[j] == '=') {
		seq.private = data[j]
		j++
	}

	paramStart := j
	for j < len(data) && ((data[j] >= '0' && data[j] <= '9') || data[j] == ';' || data[j] == ':') {
		j++
	}
	seq.params = parseParams(data[paramStart:j])

	intermStart := j
	for j < len(data) && data[j] >= 0x20 && data[j] <= 0x2f {
		j++
	}
	if j > intermStart {
		seq.intermediate = data[intermStart]
	}

	if j >= len(data) || data[j] < 0x40 || data[j] > 0x7e {
		return seq, 0, false
	}
	seq.final = data[j]
	return seq, j + 1, true
}

// parseParams splits a CSI parameter substring on ';', using -1 for empty
// (default) fields. ':' subparameters are treated as part of the same field.
func parseParams(b []byte) []int {
	if len(b) == 0 {
		return nil
	}
	var params []int
	start := 0
	for k := 0; k <= len(b); k++ {
		if k == len(b) || b[k] == ';' {
			field := b[start:k]
			if len(field) == 0 {
				params = append(params, -1)
			} else if n, err := strconv.Atoi(string(field)); err == nil {
				params = append(params, n)
			} else {
				params = append(params, -1)
			}
			start = k + 1
		}
	}
	return params
}

func paramOr(params []int, idx, def int) int {
	if idx < 0 || idx >= len(params) || params[idx] < 0 {
		return def
	}
	return params[idx]
}

// dispatchRawCSI executes seq if it matches a recognized pattern, returning
// true if it was handled (and should be stripped from the stream).
func (t *Terminal) dispatchRawCSI(seq csiSequence) bool {
	switch {
	case seq.private == '?' && seq.intermediate == 0 && (seq.final == 'h' || seq.final == 'l'):
		return t.dispatchDECSETMargin(seq)
	case seq.private == 0 && seq.intermediate == 0 && seq.final == 's':
		return t.dispatchDECSLRM(seq)
	case seq.intermediate == '$' && seq.final == 'p':
		return t.dispatchDECRQM(seq)
	case seq.private == 0 && seq.intermediate == '\'' && seq.final == '}':
		t.InsertColumns(paramOr(seq.params, 0, 1))
		return true
	case seq.private == 0 && seq.intermediate == '\'' && seq.final == '~':
		t.DeleteColumns(paramOr(seq.params, 0, 1))
		return true
	case seq.private == 0 && seq.intermediate == '"' && seq.final == 'q':
		return t.dispatchDECSCA(seq)
	case seq.private == '?' && seq.intermediate == 0 && seq.final == 'J':
		t.SelectiveEraseScreen(SelectiveEraseMode(paramOr(seq.params, 0, 0)))
		return true
	case seq.private == '?' && seq.intermediate == 0 && seq.final == 'K':
		t.SelectiveEraseLine(SelectiveEraseMode(paramOr(seq.params, 0, 0)))
		return true
	case seq.private == 0 && seq.intermediate == '$' && seq.final == 'z':
		t.EraseRectangle(paramOr(seq.params, 0, 1), paramOr(seq.params, 1, 1), paramOr(seq.params, 2, t.Rows()), paramOr(seq.params, 3, t.Cols()))
		return true
	case seq.private == 0 && seq.intermediate == '$' && seq.final == 'x':
		return t.dispatchDECFRA(seq)
	case seq.private == 0 && seq.intermediate == '$' && seq.final == 'v':
		t.CopyRectangle(
			paramOr(seq.params, 0, 1), paramOr(seq.params, 1, 1),
			paramOr(seq.params, 2, t.Rows()), paramOr(seq.params, 3, t.Cols()),
			paramOr(seq.params, 5, 1), paramOr(seq.params, 6, 1),
		)
		return true
	}
	return false
}

// dispatchDECSETMargin handles CSI ? Pd h/l when every listed mode is 69
// (DECSLRM mode) or 45 (reverse-wraparound); mixed lists are left for the
// ansicode decoder, which does not recognize 69/45 but may still recognize
// co-listed standard modes (e.g. "?1049;69h" is unusual and not produced by
// real terminals, so this conservative choice never drops a mode in practice).
func (t *Terminal) dispatchDECSETMargin(seq csiSequence) bool {
	if len(seq.params) == 0 {
		return false
	}
	for _, p := range seq.params {
		if p != 69 && p != 45 {
			return false
		}
	}
	set := seq.final == 'h'
	for _, p := range seq.params {
		switch p {
		case 69:
			t.SetLeftRightMarginMode(set)
		case 45:
			t.SetReverseWraparoundMode(set)
		}
	}
	return true
}

// dispatchDECSLRM handles CSI Pl;Pr s. xterm only treats this as DECSLRM when
// left-right margin mode is active; otherwise "CSI s" is the ANSI.SYS/SCOSC
// save-cursor shorthand, which is left for the ansicode decoder to handle as
// SaveCursorPosition.
func (t *Terminal) dispatchDECSLRM(seq csiSequence) bool {
	if !t.HasMode(ModeLeftRightMargin) {
		return false
	}
	left := paramOr(seq.params, 0, 1)
	right := paramOr(seq.params, 1, t.Cols())
	t.SetLeftRightMargin(left, right)
	return true
}

// dispatchDECSCA handles CSI Ps " q (DECSCA character protection attribute).
func (t *Terminal) dispatchDECSCA(seq csiSequence) bool {
	ps := paramOr(seq.params, 0, 0)
	switch ps {
	case 1:
		t.SetProtectionAttribute(true)
	case 0, 2:
		t.SetProtectionAttribute(false)
	default:
		return false
	}
	return true
}

// dispatchDECFRA handles CSI Pc;Pt;Pl;Pb;Pr $ x (fill rectangular area).
func (t *Terminal) dispatchDECFRA(seq csiSequence) bool {
	ch := rune(paramOr(seq.params, 0, ' '))
	if ch == 0 {
		ch = ' '
	}
	top := paramOr(seq.params, 1, 1)
	left := paramOr(seq.params, 2, 1)
	bottom := paramOr(seq.params, 3, t.Rows())
	right := paramOr(seq.params, 4, t.Cols())
	t.FillRectangle(ch, top, left, bottom, right)
	return true
}

// dispatchDECRQM handles DECRQM: CSI ? Pd $ p (DEC private mode) or
// CSI Pd $ p (ANSI mode). Modes outside those this engine tracks are
// reported with status 0 (not recognized); a request with no mode number
// (or mode 0) is not handled here and gets no reply.
func (t *Terminal) dispatchDECRQM(seq csiSequence) bool {
	mode := paramOr(seq.params, 0, 0)
	if mode == 0 {
		return false
	}

	status := 0 // not recognized
	if seq.private == '?' {
		status = t.decPrivateModeStatus(mode)
	} else {
		status = t.ansiModeStatus(mode)
	}

	var resp string
	if seq.private == '?' {
		resp = "\x1b[?" + strconv.Itoa(mode) + ";" + strconv.Itoa(status) + "$y"
	} else {
		resp = "\x1b[" + strconv.Itoa(mode) + ";" + strconv.Itoa(status) + "$y"
	}
	t.writeResponseString(resp)
	return true
}

// decPrivateModeStatus reports a DECRPM status code (0 unrecognized, 1 set,
// 2 reset, 3 permanently set, 4 permanently reset) for a DEC private mode.
func (t *Terminal) decPrivateModeStatus(mode int) int {
	var bit TerminalMode
	switch mode {
	case 1:
		bit = ModeCursorKeys
	case 3:
		bit = ModeColumnMode
	case 6:
		bit = ModeOrigin
	case 7:
		bit = ModeLineWrap
	case 12:
		bit = ModeBlinkingCursor
	case 25:
		bit = ModeShowCursor
	case 45:
		bit = ModeReverseWraparound
	case 69:
		bit = ModeLeftRightMargin
	case 1000:
		bit = ModeReportMouseClicks
	case 1002:
		bit = ModeReportCellMouseMotion
	case 1003:
		bit = ModeReportAllMouseMotion
	case 1004:
		bit = ModeReportFocusInOut
	case 1005:
		bit = ModeUTF8Mouse
	case 1006:
		bit = ModeSGRMouse
	case 1007:
		bit = ModeAlternateScroll
	case 1049:
		bit = ModeSwapScreenAndSetRestoreCursor
	case 2004:
		bit = ModeBracketedPaste
	default:
		return 0
	}
	if t.HasMode(bit) {
		return 1
	}
	return 2
}

// ansiModeStatus reports a DECRPM status code for a standard (non-DEC-private) mode.
func (t *Terminal) ansiModeStatus(mode int) int {
	switch mode {
	case 4:
		if t.HasMode(ModeInsert) {
			return 1
		}
		return 2
	case 20:
		if t.HasMode(ModeLineFeedNewLine) {
			return 1
		}
		return 2
	default:
		return 0
	}
}

// tryDispatchDCS looks for the end (ST, i.e. ESC \) of a DCS sequence
// starting at data[0] (ESC, 'P'). Only a DECRQSS request ("DCS $ q ... ST")
// is handled and stripped; any other DCS (e.g. a Sixel image) is left
// byte-for-byte in the stream for the decoder, since this engine does not
// reimplement DCS parsing in general.
//
// Returns the number of bytes making up the full DCS sequence, whether it
// was a recognized-and-handled DECRQSS request, and whether a terminator was
// found at all (false if the sequence is still incomplete in this data).
func (t *Terminal) tryDispatchDCS(data []byte) (consumed int, stripped bool, found bool) {
	end := -1
	for k := 2; k+1 < len(data); k++ {
		if data[k] == 0x1b && data[k+1] == '\\' {
			end = k
			break
		}
	}
	if end == -1 {
		return 0, false, false
	}

	body := data[2:end]
	consumed = end + 2

	if len(body) >= 2 && body[0] == '$' && body[1] == 'q' {
		t.handleDECRQSS(string(body[2:]))
		return consumed, true, true
	}
	return consumed, false, true
}

// handleDECRQSS answers a DECRQSS request for the current value of the named
// control function, or an invalid-request response if unrecognized.
func (t *Terminal) handleDECRQSS(request string) {
	var value string
	ok := true

	switch request {
	case "m":
		value = sgrParamsForTemplate(t.CurrentTemplate())
	case "r":
		top, bottom := t.ScrollRegion()
		value = strconv.Itoa(top+1) + ";" + strconv.Itoa(bottom) + "r"
	case "s":
		value = strconv.Itoa(t.MarginLeft()+1) + ";" + strconv.Itoa(t.MarginRight()) + "s"
	case " q":
		value = strconv.Itoa(int(t.CursorStyle())) + " q"
	default:
		ok = false
	}

	if !ok {
		t.writeResponseString("\x1bP0$r\x1b\\")
		return
	}
	if request == "m" {
		value += "m"
	}
	t.writeResponseString("\x1bP1$r" + value + "\x1b\\")
}
