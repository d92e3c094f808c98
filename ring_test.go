package vtcore

import "testing"

func TestMemoryScrollbackPushAndLine(t *testing.T) {
	m := NewMemoryScrollback(3)

	m.Push([]Cell{{Char: 'A'}})
	m.Push([]Cell{{Char: 'B'}})
	m.Push([]Cell{{Char: 'C'}})

	if m.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", m.Len())
	}
	if m.Line(0)[0].Char != 'A' {
		t.Errorf("expected oldest line to be A, got %c", m.Line(0)[0].Char)
	}
	if m.Line(2)[0].Char != 'C' {
		t.Errorf("expected newest line to be C, got %c", m.Line(2)[0].Char)
	}
}

func TestMemoryScrollbackOverwritesOldestAtCapacity(t *testing.T) {
	m := NewMemoryScrollback(2)

	m.Push([]Cell{{Char: 'A'}})
	m.Push([]Cell{{Char: 'B'}})
	m.Push([]Cell{{Char: 'C'}})

	if m.Len() != 2 {
		t.Fatalf("expected capacity to cap at 2, got %d", m.Len())
	}
	if m.Line(0)[0].Char != 'B' {
		t.Errorf("expected oldest retained line to be B, got %c", m.Line(0)[0].Char)
	}
	if m.Line(1)[0].Char != 'C' {
		t.Errorf("expected newest line to be C, got %c", m.Line(1)[0].Char)
	}
}

func TestMemoryScrollbackClear(t *testing.T) {
	m := NewMemoryScrollback(5)
	m.Push([]Cell{{Char: 'A'}})
	m.Clear()

	if m.Len() != 0 {
		t.Errorf("expected 0 lines after Clear, got %d", m.Len())
	}
	if m.Line(0) != nil {
		t.Error("expected nil line after Clear")
	}
}

func TestMemoryScrollbackSetMaxLinesShrinksKeepingNewest(t *testing.T) {
	m := NewMemoryScrollback(5)
	m.Push([]Cell{{Char: 'A'}})
	m.Push([]Cell{{Char: 'B'}})
	m.Push([]Cell{{Char: 'C'}})

	m.SetMaxLines(2)

	if m.Len() != 2 {
		t.Fatalf("expected 2 lines retained, got %d", m.Len())
	}
	if m.Line(0)[0].Char != 'B' || m.Line(1)[0].Char != 'C' {
		t.Errorf("expected newest 2 lines retained (B,C), got %c,%c", m.Line(0)[0].Char, m.Line(1)[0].Char)
	}
}

func TestMemoryScrollbackMaxLinesZeroDisablesPush(t *testing.T) {
	m := NewMemoryScrollback(0)
	m.Push([]Cell{{Char: 'A'}})

	if m.Len() != 0 {
		t.Errorf("expected push to be a no-op at zero capacity, got %d lines", m.Len())
	}
}
