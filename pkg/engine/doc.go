// Package engine owns the live state of one board and applies every layout
// operation to it.
//
// An [Engine] holds the current rows and an id index. Every mutation builds a
// new row snapshot, diffs it against the previous one with
// [board.DiffGrids], swaps it in and, when the diff is non-empty, calls the
// layout change callback registered with [WithLayoutChange]. Mutations return
// the same change set so synchronous hosts need no callback at all.
//
// # Mutations
//
// [Engine.ReorderCard], [Engine.MoveCard], [Engine.AddCard],
// [Engine.DeleteCard] and [Engine.UpdateCard] operate on settled events.
// Unknown row or card ids are silent no-ops: drag gestures race with
// removals and must not fail the interaction.
//
// Moving a card into a full row performs a displacement swap: the card at the
// insertion index takes the moving card's old slot in the source row and the
// two exchange widths and heights. A row left empty is removed and the rows
// after it are renumbered, so row ids are positional and not durable.
//
// # Resizing
//
// Width and height resizing are interactive sessions: Start captures the
// starting state, Move applies clamped values to the live rows without
// notifying, and End reports the settled change once. [WidthHandle] and
// [HeightHandle] wrap the sessions in the idle/dragging state machine of a
// single drag handle.
//
// # Drops
//
// [Engine.Drop] resolves a drag-and-drop gesture into a reorder or a move
// using row geometry supplied by the host through a [Geometry]. Dropping
// between rows is reported ([DropBetweenRows]) but not committed.
//
// # Concurrency
//
// An Engine is safe for use by multiple goroutines. One mutex guards the rows
// and the resize sessions; the change callback runs after the mutex is
// released and may query the engine.
package engine
