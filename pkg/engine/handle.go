package engine

import (
	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/errors"
)

// HandleState is the state of a drag handle.
type HandleState int

const (
	Idle HandleState = iota
	Dragging
)

func (s HandleState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// WidthHandle is the drag handle on the right border of one card. Pointer
// tracking is only meaningful while the handle is Dragging.
type WidthHandle struct {
	e         *Engine
	rowID     board.RowID
	cardIndex int
	state     HandleState
}

// WidthHandle returns the handle between the card at cardIndex of row rowID
// and its right neighbour.
func (e *Engine) WidthHandle(rowID board.RowID, cardIndex int) *WidthHandle {
	return &WidthHandle{e: e, rowID: rowID, cardIndex: cardIndex}
}

func (h *WidthHandle) State() HandleState { return h.state }

// DragStart starts a width session. The handle stays Idle when the engine
// ignores the start (last card, unknown row, resizing disabled).
func (h *WidthHandle) DragStart(p Pointer) error {
	if h.state == Dragging {
		return errors.New(errors.ErrCodeSessionActive, "handle already dragging")
	}
	started, err := h.e.startWidth(h.rowID, h.cardIndex, p)
	if err != nil {
		return err
	}
	if started {
		h.state = Dragging
	}
	return nil
}

// Drag forwards a pointer move while dragging.
func (h *WidthHandle) Drag(p Pointer) {
	if h.state == Dragging {
		h.e.ResizeMove(p)
	}
}

// Drop applies the last pointer position, ends the session and returns the
// handle to Idle wherever the pointer was released.
func (h *WidthHandle) Drop(p Pointer) board.ChangeSet {
	if h.state != Dragging {
		return board.ChangeSet{}
	}
	h.state = Idle
	h.e.ResizeMove(p)
	return h.e.ResizeEnd()
}

// HeightHandle is the drag handle on the bottom border of a row.
type HeightHandle struct {
	e     *Engine
	rowID board.RowID
	state HandleState
}

// HeightHandle returns the height handle of row rowID.
func (e *Engine) HeightHandle(rowID board.RowID) *HeightHandle {
	return &HeightHandle{e: e, rowID: rowID}
}

func (h *HeightHandle) State() HandleState { return h.state }

func (h *HeightHandle) DragStart(p Pointer) error {
	if h.state == Dragging {
		return errors.New(errors.ErrCodeSessionActive, "handle already dragging")
	}
	started, err := h.e.startHeight(h.rowID, p)
	if err != nil {
		return err
	}
	if started {
		h.state = Dragging
	}
	return nil
}

func (h *HeightHandle) Drag(p Pointer) {
	if h.state == Dragging {
		h.e.RowResizeMove(p)
	}
}

func (h *HeightHandle) Drop(p Pointer) board.ChangeSet {
	if h.state != Dragging {
		return board.ChangeSet{}
	}
	h.state = Idle
	h.e.RowResizeMove(p)
	return h.e.RowResizeEnd()
}
