package vtcore

// SelectiveEraseMode mirrors the Ps parameter of DECSED/DECSEL: which part of
// the screen or line to erase, skipping cells protected by DECSCA.
type SelectiveEraseMode int

const (
	SelectiveEraseToEnd SelectiveEraseMode = iota
	SelectiveEraseToStart
	SelectiveEraseAll
)

// SetProtectionAttribute enables or disables the DECSCA character protection
// attribute. While enabled, characters subsequently written carry
// CellFlagProtected and survive DECSED/DECSEL selective erase.
func (t *Terminal) SetProtectionAttribute(protected bool) {
	if t.middleware != nil && t.middleware.SetProtectionAttribute != nil {
		t.middleware.SetProtectionAttribute(protected, t.setProtectionAttributeInternal)
		return
	}
	t.setProtectionAttributeInternal(protected)
}

func (t *Terminal) setProtectionAttributeInternal(protected bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.protectedAttr = protected
}

// SelectiveEraseScreen erases unprotected cells in the given screen region
// (DECSED), leaving cells marked protected by DECSCA untouched.
func (t *Terminal) SelectiveEraseScreen(mode SelectiveEraseMode) {
	if t.middleware != nil && t.middleware.SelectiveEraseScreen != nil {
		t.middleware.SelectiveEraseScreen(mode, t.selectiveEraseScreenInternal)
		return
	}
	t.selectiveEraseScreenInternal(mode)
}

func (t *Terminal) selectiveEraseScreenInternal(mode SelectiveEraseMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case SelectiveEraseToEnd:
		t.activeBuffer.SelectiveClearRowRange(t.cursor.Row, t.cursor.Col, t.cols)
		for row := t.cursor.Row + 1; row < t.rows; row++ {
			t.activeBuffer.SelectiveClearRowRange(row, 0, t.cols)
		}
	case SelectiveEraseToStart:
		for row := 0; row < t.cursor.Row; row++ {
			t.activeBuffer.SelectiveClearRowRange(row, 0, t.cols)
		}
		t.activeBuffer.SelectiveClearRowRange(t.cursor.Row, 0, t.cursor.Col+1)
	case SelectiveEraseAll:
		for row := 0; row < t.rows; row++ {
			t.activeBuffer.SelectiveClearRowRange(row, 0, t.cols)
		}
	}
}

// SelectiveEraseLine erases unprotected cells on the cursor's row (DECSEL).
func (t *Terminal) SelectiveEraseLine(mode SelectiveEraseMode) {
	if t.middleware != nil && t.middleware.SelectiveEraseLine != nil {
		t.middleware.SelectiveEraseLine(mode, t.selectiveEraseLineInternal)
		return
	}
	t.selectiveEraseLineInternal(mode)
}

func (t *Terminal) selectiveEraseLineInternal(mode SelectiveEraseMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case SelectiveEraseToEnd:
		t.activeBuffer.SelectiveClearRowRange(t.cursor.Row, t.cursor.Col, t.cols)
	case SelectiveEraseToStart:
		t.activeBuffer.SelectiveClearRowRange(t.cursor.Row, 0, t.cursor.Col+1)
	case SelectiveEraseAll:
		t.activeBuffer.SelectiveClearRowRange(t.cursor.Row, 0, t.cols)
	}
}

// InsertColumns inserts n blank columns at the cursor column (DECIC),
// shifting columns to its right within the scrolling region rightward.
func (t *Terminal) InsertColumns(n int) {
	if t.middleware != nil && t.middleware.InsertColumns != nil {
		t.middleware.InsertColumns(n, t.insertColumnsInternal)
		return
	}
	t.insertColumnsInternal(n)
}

func (t *Terminal) insertColumnsInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n <= 0 {
		n = 1
	}
	t.activeBuffer.InsertColumns(t.scrollTop, t.scrollBottom, t.cursor.Col, n)
	t.images.DeletePlacementsInRect(t.scrollTop, t.cursor.Col, t.scrollBottom-1, t.cols-1)
}

// DeleteColumns removes n columns at the cursor column (DECDC), shifting
// columns to its right within the scrolling region leftward.
func (t *Terminal) DeleteColumns(n int) {
	if t.middleware != nil && t.middleware.DeleteColumns != nil {
		t.middleware.DeleteColumns(n, t.deleteColumnsInternal)
		return
	}
	t.deleteColumnsInternal(n)
}

func (t *Terminal) deleteColumnsInternal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n <= 0 {
		n = 1
	}
	t.activeBuffer.DeleteColumns(t.scrollTop, t.scrollBottom, t.cursor.Col, n)
	t.images.DeletePlacementsInRect(t.scrollTop, t.cursor.Col, t.scrollBottom-1, t.cols-1)
}

// EraseRectangle erases the 1-based inclusive rectangle (DECERA), ignoring
// character protection.
func (t *Terminal) EraseRectangle(top, left, bottom, right int) {
	if t.middleware != nil && t.middleware.EraseRectangle != nil {
		t.middleware.EraseRectangle(top, left, bottom, right, t.eraseRectangleInternal)
		return
	}
	t.eraseRectangleInternal(top, left, bottom, right)
}

func (t *Terminal) eraseRectangleInternal(top, left, bottom, right int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.EraseRectangle(top-1, left-1, bottom-1, right-1)
	t.images.DeletePlacementsInRect(top-1, left-1, bottom-1, right-1)
}

// FillRectangle fills the 1-based inclusive rectangle with ch, using the
// current SGR template (DECFRA).
func (t *Terminal) FillRectangle(ch rune, top, left, bottom, right int) {
	if t.middleware != nil && t.middleware.FillRectangle != nil {
		t.middleware.FillRectangle(ch, top, left, bottom, right, t.fillRectangleInternal)
		return
	}
	t.fillRectangleInternal(ch, top, left, bottom, right)
}

func (t *Terminal) fillRectangleInternal(ch rune, top, left, bottom, right int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.FillRectangle(top-1, left-1, bottom-1, right-1, ch, t.template)
	t.images.DeletePlacementsInRect(top-1, left-1, bottom-1, right-1)
}

// CopyRectangle copies the 1-based inclusive source rectangle to the 1-based
// destination top-left (DECCRA). Source and destination pages are always the
// current page; this engine does not model multiple pages.
func (t *Terminal) CopyRectangle(srcTop, srcLeft, srcBottom, srcRight, dstTop, dstLeft int) {
	if t.middleware != nil && t.middleware.CopyRectangle != nil {
		t.middleware.CopyRectangle(srcTop, srcLeft, srcBottom, srcRight, dstTop, dstLeft, t.copyRectangleInternal)
		return
	}
	t.copyRectangleInternal(srcTop, srcLeft, srcBottom, srcRight, dstTop, dstLeft)
}

func (t *Terminal) copyRectangleInternal(srcTop, srcLeft, srcBottom, srcRight, dstTop, dstLeft int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	height := srcBottom - srcTop
	width := srcRight - srcLeft
	t.activeBuffer.CopyRectangle(srcTop-1, srcLeft-1, srcBottom-1, srcRight-1, dstTop-1, dstLeft-1)
	// Any CellImage carried into the destination cells would reference
	// ImagePlacements whose own Row/Col metadata still points at the source
	// rectangle, so drop placements covering the destination rather than
	// leave them mismatched.
	t.images.DeletePlacementsInRect(dstTop-1, dstLeft-1, dstTop-1+height, dstLeft-1+width)
}
