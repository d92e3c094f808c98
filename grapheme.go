package vtcore

import (
	"sync"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// GraphemeTable interns multi-scalar grapheme clusters (base rune plus one or
// more combining marks) so a Cell can reference one with a single uint32
// instead of growing into a []rune. Entries are reference counted: a cell
// overwritten by a printed character releases its cluster, and a slot whose
// count drops to zero is freed for reuse. Cell.Reset and the erase paths only
// zero the cell's index and do not release the entry.
type GraphemeTable struct {
	mu      sync.Mutex
	byText  map[string]uint32
	entries []graphemeEntry
	free    []uint32
}

type graphemeEntry struct {
	text string
	refs int32
}

// NewGraphemeTable creates an empty grapheme cluster table.
func NewGraphemeTable() *GraphemeTable {
	return &GraphemeTable{
		byText:  make(map[string]uint32),
		entries: make([]graphemeEntry, 1), // index 0 is reserved for "no grapheme"
	}
}

// Intern records the cluster text (base rune + combining marks) and returns
// its table index, bumping its reference count. Existing entries matching
// text are reused rather than duplicated.
func (g *GraphemeTable) Intern(text string) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if idx, ok := g.byText[text]; ok {
		g.entries[idx].refs++
		return idx
	}

	var idx uint32
	if n := len(g.free); n > 0 {
		idx = g.free[n-1]
		g.free = g.free[:n-1]
		g.entries[idx] = graphemeEntry{text: text, refs: 1}
	} else {
		idx = uint32(len(g.entries))
		g.entries = append(g.entries, graphemeEntry{text: text, refs: 1})
	}
	g.byText[text] = idx
	return idx
}

// Release drops one reference to idx, freeing the slot for reuse once the
// count reaches zero. idx == 0 is a no-op.
func (g *GraphemeTable) Release(idx uint32) {
	if idx == 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if int(idx) >= len(g.entries) {
		return
	}
	e := &g.entries[idx]
	if e.refs <= 0 {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(g.byText, e.text)
		e.text = ""
		g.free = append(g.free, idx)
	}
}

// Text returns the cluster text for idx, or "" if idx is 0 or unknown.
func (g *GraphemeTable) Text(idx uint32) string {
	if idx == 0 {
		return ""
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if int(idx) >= len(g.entries) {
		return ""
	}
	return g.entries[idx].text
}

// Len reports the number of live (referenced) entries, for diagnostics.
func (g *GraphemeTable) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.byText)
}

// SplitGraphemes segments s into grapheme clusters using the UAX #29 rules,
// the same boundary algorithm xterm-class terminals use to decide whether an
// incoming rune starts a new cell or combines into the previous one.
func SplitGraphemes(s string) []string {
	var out []string
	segs := graphemes.FromString(s)
	for segs.Next() {
		out = append(out, segs.Value())
	}
	return out
}

// attachCombining appends a combining-mark rune to the previous cell's
// grapheme cluster, interning the combined text in table. If prev already
// carries a cluster its old entry is released. Used by the Interpreter's
// print-character path when a zero-width combining mark follows a base
// character already written to the grid, per spec.md's grapheme invariant.
func attachCombining(table *GraphemeTable, prev *Cell, mark rune) {
	base := string(prev.Char)
	if prev.Grapheme != 0 {
		base = table.Text(prev.Grapheme)
		table.Release(prev.Grapheme)
	}
	combined := base + string(mark)
	prev.Grapheme = table.Intern(combined)
}
