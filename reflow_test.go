package vtcore

import "testing"

func TestResizeReflowWiderJoinsWrappedRun(t *testing.T) {
	b := NewBuffer(5, 10)

	for i, r := range []rune("HelloWorld") {
		b.Cell(0, i).Char = r
	}
	b.SetWrapped(0, true)
	for i, r := range []rune("!!!!!!!!!!") {
		b.Cell(1, i).Char = r
	}

	b.ResizeReflow(5, 20)

	if b.Cols() != 20 {
		t.Fatalf("expected 20 cols, got %d", b.Cols())
	}
	if got := b.LineContent(0); got != "HelloWorld!!!!!!!!!!" {
		t.Errorf("expected joined wrapped line, got %q", got)
	}
	if b.IsWrapped(0) {
		t.Error("rejoined line should no longer be wrapped once it fits in one row")
	}
}

func TestResizeReflowNarrowerSplitsLine(t *testing.T) {
	b := NewBuffer(5, 20)
	for i, r := range []rune("HelloWorld!!!!!!!!!!") {
		b.Cell(0, i).Char = r
	}

	b.ResizeReflow(5, 10)

	if got := b.LineContent(0); got != "HelloWorld" {
		t.Errorf("expected first 10 cols on row 0, got %q", got)
	}
	if !b.IsWrapped(0) {
		t.Error("expected row 0 to be marked wrapped after narrowing split the line")
	}
	if got := b.LineContent(1); got != "!!!!!!!!!!" {
		t.Errorf("expected overflow on row 1, got %q", got)
	}
}

func TestResizeReflowSameWidthIsPlainResize(t *testing.T) {
	b := NewBuffer(5, 10)
	b.Cell(0, 0).Char = 'A'

	b.ResizeReflow(8, 10)

	if b.Rows() != 8 || b.Cols() != 10 {
		t.Fatalf("expected 8x10, got %dx%d", b.Rows(), b.Cols())
	}
	if b.Cell(0, 0).Char != 'A' {
		t.Error("expected content preserved when only row count changes")
	}
}

func TestGraphemeTableInternAndRelease(t *testing.T) {
	g := NewGraphemeTable()

	idx := g.Intern("é")
	if idx == 0 {
		t.Fatal("expected non-zero index for interned cluster")
	}
	if got := g.Text(idx); got != "é" {
		t.Errorf("expected round-tripped text, got %q", got)
	}

	idx2 := g.Intern("é")
	if idx2 != idx {
		t.Error("expected identical text to reuse the same index")
	}

	g.Release(idx)
	if g.Len() != 1 {
		t.Errorf("expected 1 live entry after one of two refs released, got %d", g.Len())
	}
	g.Release(idx2)
	if g.Len() != 0 {
		t.Errorf("expected 0 live entries after releasing both refs, got %d", g.Len())
	}
}

func TestInputAttachesCombiningMarkToPreviousCell(t *testing.T) {
	term := New(WithSize(5, 10))
	term.WriteString("e")
	term.WriteString("́") // combining acute accent

	cell := term.Cell(0, 0)
	if cell == nil {
		t.Fatal("expected cell at (0,0)")
	}
	if !cell.HasGrapheme() {
		t.Fatal("expected combining mark to be attached as a grapheme cluster")
	}
	if got := term.graphemes.Text(cell.Grapheme); got != "é" {
		t.Errorf("expected combined cluster text, got %q", got)
	}

	row, col := term.CursorPos()
	if row != 0 || col != 1 {
		t.Errorf("expected cursor to stay after the base rune (0,1), got (%d,%d)", row, col)
	}
}
