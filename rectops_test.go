package vtcore

import "testing"

func TestDECICInsertsColumnsAtCursor(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("ABCDE")
	term.Goto(0, 2)

	term.WriteString("\x1b[2'}") // DECIC: insert 2 columns at cursor

	if got := term.LineContent(0); got != "AB  CDE" {
		t.Errorf("expected columns inserted at cursor, got %q", got)
	}
}

func TestDECDCDeletesColumnsAtCursor(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("ABCDE")
	term.Goto(0, 1)

	term.WriteString("\x1b[2'~") // DECDC: delete 2 columns at cursor

	if got := term.LineContent(0); got != "ADE" {
		t.Errorf("expected columns deleted at cursor, got %q", got)
	}
}

func TestDECERAErasesRectangleIgnoringProtection(t *testing.T) {
	term := New(WithSize(5, 10))
	term.WriteString("\x1b[1\"q") // protect
	term.WriteString("AAAA")
	term.WriteString("\x1b[0\"q")

	term.WriteString("\x1b[1;1;1;4$z") // DECERA: erase rows 1-1, cols 1-4

	if got := term.LineContent(0); got != "" {
		t.Errorf("expected DECERA to erase protected cells too, got %q", got)
	}
}

func TestDECFRAFillsRectangle(t *testing.T) {
	term := New(WithSize(5, 10))

	term.WriteString("\x1b[88;1;1;3;5$x") // DECFRA: fill rows 1-3, cols 1-5 with 'X' (88 = ascii 'X')

	if got := term.LineContent(1); got != "XXXXX" {
		t.Errorf("expected row 1 filled with X, got %q", got)
	}
	if got := term.LineContent(2); got != "XXXXX" {
		t.Errorf("expected row 2 filled with X, got %q", got)
	}
}

func TestDECCRACopiesRectangle(t *testing.T) {
	term := New(WithSize(5, 10))
	term.WriteString("ABC")

	term.WriteString("\x1b[1;1;1;3;1;3;1$v") // DECCRA: copy rows/cols 1-3 of row 1 to row 3 col 1

	if got := term.LineContent(2); got != "ABC" {
		t.Errorf("expected rectangle copied to row 3, got %q", got)
	}
}
