package engine

import (
	"math"

	"github.com/matzehuels/cardboard/pkg/board"
)

// Edge is the side of a target card a dragged card was dropped on.
type Edge string

const (
	EdgeNone  Edge = ""
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

// DropEvent describes a released card drag.
type DropEvent struct {
	// CardID and SourceRowID identify the dragged card.
	CardID      board.CardID `json:"cardId"`
	SourceRowID board.RowID  `json:"sourceRowId"`

	// TargetRowID is the row surface under the pointer; empty when the card
	// was not released over any row.
	TargetRowID board.RowID `json:"targetRowId,omitempty"`

	// TargetCardID and Edge are set when the card was released over another
	// card.
	TargetCardID board.CardID `json:"targetCardId,omitempty"`
	Edge         Edge         `json:"edge,omitempty"`

	Pointer Pointer `json:"pointer"`
}

// DropOutcome classifies how a drop was resolved.
type DropOutcome string

const (
	// DropIgnored: dragging disabled, no target or unknown ids.
	DropIgnored DropOutcome = "ignored"
	// DropRejected: the nearest slot is the row's trailing edge.
	DropRejected DropOutcome = "rejected"
	// DropNoOp: the card was dropped where it already is.
	DropNoOp DropOutcome = "noop"
	// DropBetweenRows: the pointer was outside the nearest row. Creating a
	// row from such a drop is not supported; nothing changes.
	DropBetweenRows DropOutcome = "between_rows"
	DropReordered   DropOutcome = "reordered"
	DropMoved       DropOutcome = "moved"
)

// DropResult is the outcome of [Engine.Drop].
type DropResult struct {
	Outcome DropOutcome     `json:"outcome"`
	RowID   board.RowID     `json:"rowId,omitempty"`
	Index   int             `json:"index"`
	Changes board.ChangeSet `json:"changes"`
}

// RowIndicator is the advisory between-rows marker shown while dragging.
type RowIndicator struct {
	RowID board.RowID `json:"rowId"`
	Top   float64     `json:"top"`
	Left  float64     `json:"left"`
	Width float64     `json:"width"`
}

// ClosestPosition converts a row-relative x percentage into an insertion
// index by picking the nearest card boundary (0, then the running width
// totals). Ties go to the earlier boundary. The trailing boundary is not a
// valid slot and reports false.
func ClosestPosition(row board.Row, x float64) (int, bool) {
	best, bestDist := 0, math.Abs(x)
	var at float64
	for i, c := range row.Cards {
		at += c.Layout.WidthPercentage
		if d := math.Abs(at - x); d < bestDist {
			best, bestDist = i+1, d
		}
	}
	if best == len(row.Cards) {
		return 0, false
	}
	return best, true
}

// nearestRowLocked returns the row whose box centre is vertically closest to
// y, considering only rows with geometry.
func (e *Engine) nearestRowLocked(y float64) (board.Row, Rect, bool) {
	var (
		best     board.Row
		bestRect Rect
		bestDist = math.Inf(1)
	)
	for _, r := range e.rows {
		rect, ok := e.geometry.RowRect(r.ID)
		if !ok {
			continue
		}
		if d := math.Abs(y - rect.CenterY()); d < bestDist {
			best, bestRect, bestDist = r, rect, d
		}
	}
	return best, bestRect, !math.IsInf(bestDist, 1)
}

// DragOver returns the between-rows indicator for a pointer position: when
// the pointer lies outside the nearest row, the indicator sits on that row's
// top or bottom edge, whichever the pointer is beyond. It reports false
// while the pointer is inside a row, without geometry, or when dragging or
// between-row drops are disabled.
func (e *Engine) DragOver(p Pointer) (RowIndicator, bool) {
	if e.cfg.DisableDrag || e.cfg.DisableCardDropInBetweenRows {
		return RowIndicator{}, false
	}
	e.mu.Lock()
	row, rect, ok := e.nearestRowLocked(p.Y)
	e.mu.Unlock()
	if !ok || rect.Contains(p.Y) {
		return RowIndicator{}, false
	}

	top := rect.Bottom()
	if p.Y < rect.Top {
		top = rect.Top
	}
	return RowIndicator{RowID: row.ID, Top: top, Left: rect.Left, Width: rect.Width}, true
}

// Drop resolves a released drag into a reorder or a move.
//
// A drop over a bare row surface picks the insertion index with
// [ClosestPosition] from the pointer's position within the target row's
// box. A drop over a card inserts before it (EdgeLeft) or after it
// (EdgeRight). Within one row the card is reordered unless the index equals
// its current one; across rows it is moved with [Engine.MoveCard].
//
// When row geometry is known and the pointer lies outside the nearest row
// the drop is reported as [DropBetweenRows] and nothing changes.
func (e *Engine) Drop(ev DropEvent) DropResult {
	res := e.resolveDrop(ev)
	e.hooks.OnDrop(string(res.Outcome))
	if res.Outcome == DropBetweenRows {
		e.logger.Info("drop between rows is not supported", "card", ev.CardID, "row", res.RowID)
	} else {
		e.logger.Debug("drop", "card", ev.CardID, "outcome", res.Outcome, "row", res.RowID, "index", res.Index)
	}
	return res
}

func (e *Engine) resolveDrop(ev DropEvent) DropResult {
	ignored := DropResult{Outcome: DropIgnored}
	if e.cfg.DisableDrag || ev.TargetRowID == "" {
		return ignored
	}

	e.mu.Lock()
	_, known := e.cards[ev.CardID]
	nearest, nearestRect, hasGeometry := e.nearestRowLocked(ev.Pointer.Y)
	ti := rowIndex(e.rows, ev.TargetRowID)
	si := rowIndex(e.rows, ev.SourceRowID)
	var target board.Row
	if ti >= 0 {
		target = e.rows[ti].Clone()
	}
	sourceIndex := -1
	if si >= 0 {
		sourceIndex = e.rows[si].IndexOf(ev.CardID)
	}
	e.mu.Unlock()

	if !known || ti < 0 || sourceIndex < 0 {
		return ignored
	}
	if hasGeometry && !nearestRect.Contains(ev.Pointer.Y) {
		return DropResult{Outcome: DropBetweenRows, RowID: nearest.ID}
	}

	var position int
	if ev.TargetCardID == "" {
		rect, ok := e.geometry.RowRect(target.ID)
		if !ok || rect.Width <= 0 {
			return ignored
		}
		x := (ev.Pointer.X - rect.Left) / rect.Width * 100
		if position, ok = ClosestPosition(target, x); !ok {
			return DropResult{Outcome: DropRejected, RowID: target.ID}
		}
	} else {
		idx := target.IndexOf(ev.TargetCardID)
		if idx < 0 {
			return ignored
		}
		position = idx
		if ev.Edge == EdgeRight {
			position = idx + 1
		}
	}

	res := DropResult{RowID: target.ID, Index: position}
	if ev.SourceRowID == ev.TargetRowID {
		if position == sourceIndex {
			res.Outcome = DropNoOp
			return res
		}
		res.Changes = e.ReorderCard(target.ID, sourceIndex, position)
		res.Outcome = DropReordered
	} else {
		res.Changes = e.MoveCard(ev.CardID, ev.SourceRowID, ev.TargetRowID, position)
		res.Outcome = DropMoved
	}
	if res.Changes.Empty() {
		res.Outcome = DropNoOp
	}
	return res
}
