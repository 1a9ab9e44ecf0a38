package engine

import (
	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/errors"
)

type widthSession struct {
	rowID       board.RowID
	index       int
	start       Pointer
	left, right board.Card
}

type heightSession struct {
	rowID  board.RowID
	startY float64
	height float64
}

// ResizeStart begins resizing the border between the card at cardIndex and
// the card after it. Starting on the last card of a row, on an unknown row
// or while DisableResizeCardWidth is set does nothing. Starting while a
// width session is active fails with SESSION_ACTIVE.
func (e *Engine) ResizeStart(rowID board.RowID, cardIndex int, p Pointer) error {
	_, err := e.startWidth(rowID, cardIndex, p)
	return err
}

func (e *Engine) startWidth(rowID board.RowID, cardIndex int, p Pointer) (bool, error) {
	if e.cfg.DisableResizeCardWidth {
		return false, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.width != nil {
		return false, errors.New(errors.ErrCodeSessionActive, "width resize already active on %s", e.width.rowID)
	}
	ri := rowIndex(e.rows, rowID)
	if ri < 0 {
		return false, nil
	}
	cards := e.rows[ri].Cards
	if cardIndex < 0 || cardIndex >= len(cards)-1 {
		return false, nil
	}

	e.width = &widthSession{
		rowID: rowID,
		index: cardIndex,
		start: p,
		left:  cards[cardIndex],
		right: cards[cardIndex+1],
	}
	return true, nil
}

// ResizeMove applies the pointer's horizontal travel to the two cards of the
// active width session. The travel is converted to percentage points of the
// row's pixel width; each card stays within [board.MinCardWidth,
// board.MaxCardWidth] and the pair keeps its combined width, so the row
// still sums to 100. Without an active session or row geometry it does
// nothing. Changes are live but not reported until [Engine.ResizeEnd].
func (e *Engine) ResizeMove(p Pointer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.width
	if s == nil {
		return
	}
	rect, ok := e.widths.RowRect(s.rowID)
	if !ok || rect.Width <= 0 {
		return
	}
	ri := rowIndex(e.rows, s.rowID)
	if ri < 0 || s.index+1 >= len(e.rows[ri].Cards) {
		return
	}

	delta := (p.X - s.start.X) / rect.Width * 100
	left, right := pairWidths(s.left.Layout.WidthPercentage, s.right.Layout.WidthPercentage, delta)

	row := e.rows[ri].Clone()
	row.Cards[s.index].Layout.WidthPercentage = left
	row.Cards[s.index+1].Layout.WidthPercentage = right
	e.setRowLocked(ri, row)
}

// pairWidths shifts delta points from right to left. Both results lie in
// [MinCardWidth, MaxCardWidth] and sum to left+right (capped at 100).
// Unlike clamping each card first and splitting any excess over 100, this
// never changes the other cards of the row, so the row keeps summing to 100.
func pairWidths(left, right, delta float64) (float64, float64) {
	total := min(100, left+right)
	if total < 2*board.MinCardWidth {
		return left, right
	}
	hi := min(board.MaxCardWidth, total-board.MinCardWidth)
	l := min(hi, max(board.MinCardWidth, left+delta))
	return l, total - l
}

// ResizeEnd finishes the width session and reports the two resized cards
// and their row if either width changed.
func (e *Engine) ResizeEnd() board.ChangeSet {
	e.mu.Lock()
	s := e.width
	e.width = nil
	if s == nil {
		e.mu.Unlock()
		return board.ChangeSet{}
	}

	var changes board.ChangeSet
	if ri := rowIndex(e.rows, s.rowID); ri >= 0 {
		for _, before := range []board.Card{s.left, s.right} {
			if now, ok := e.cards[before.ID]; ok && board.LayoutChanged(before.Layout, now.Layout) {
				changes.UpdatedCards = append(changes.UpdatedCards, now)
			}
		}
		if len(changes.UpdatedCards) > 0 {
			changes.UpdatedRows = []board.Row{e.rows[ri].Clone()}
		}
	}
	e.mu.Unlock()

	e.hooks.OnResize("width", string(s.rowID), !changes.Empty())
	e.notify("resizeCardWidth", changes)
	return changes
}

// RowResizeStart begins resizing the height of a row. Starting on an unknown
// row or while DisableResizeRowHeight is set does nothing. Starting while a
// height session is active fails with SESSION_ACTIVE.
func (e *Engine) RowResizeStart(rowID board.RowID, p Pointer) error {
	_, err := e.startHeight(rowID, p)
	return err
}

func (e *Engine) startHeight(rowID board.RowID, p Pointer) (bool, error) {
	if e.cfg.DisableResizeRowHeight {
		return false, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.height != nil {
		return false, errors.New(errors.ErrCodeSessionActive, "row resize already active on %s", e.height.rowID)
	}
	ri := rowIndex(e.rows, rowID)
	if ri < 0 {
		return false, nil
	}
	e.height = &heightSession{rowID: rowID, startY: p.Y, height: e.rows[ri].Height()}
	return true, nil
}

// RowResizeMove sets every card of the row to the starting height plus the
// pointer's vertical travel, clamped to [MinHeight, MaxHeight].
func (e *Engine) RowResizeMove(p Pointer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.height
	if s == nil {
		return
	}
	ri := rowIndex(e.rows, s.rowID)
	if ri < 0 {
		return
	}
	h := e.cfg.ClampHeight(s.height + p.Y - s.startY)
	row := board.Row{ID: e.rows[ri].ID, Cards: board.WithHeight(e.rows[ri].Cards, h)}
	e.setRowLocked(ri, row)
}

// RowResizeEnd finishes the height session. The row and all its cards are
// reported only when the height differs from where the session started.
func (e *Engine) RowResizeEnd() board.ChangeSet {
	e.mu.Lock()
	s := e.height
	e.height = nil
	if s == nil {
		e.mu.Unlock()
		return board.ChangeSet{}
	}

	var changes board.ChangeSet
	if ri := rowIndex(e.rows, s.rowID); ri >= 0 && e.rows[ri].Height() != s.height {
		row := e.rows[ri].Clone()
		changes = board.ChangeSet{UpdatedRows: []board.Row{row}, UpdatedCards: row.Clone().Cards}
	}
	e.mu.Unlock()

	e.hooks.OnResize("height", string(s.rowID), !changes.Empty())
	e.notify("resizeRowHeight", changes)
	return changes
}

// setRowLocked swaps in a new version of one row without diffing.
func (e *Engine) setRowLocked(ri int, row board.Row) {
	rows := make([]board.Row, len(e.rows))
	copy(rows, e.rows)
	rows[ri] = row
	e.rows = rows
	for _, c := range row.Cards {
		e.cards[c.ID] = c
	}
}
