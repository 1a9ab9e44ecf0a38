package engine

import (
	"slices"

	"github.com/matzehuels/cardboard/pkg/board"
)

// ReorderCard moves the card at index from to index to within one row and
// rescales the row's widths to 100 in the new order. A to outside the row
// (including [board.Append]) moves the card to the end.
func (e *Engine) ReorderCard(rowID board.RowID, from, to int) board.ChangeSet {
	return e.update("reorderCard", func(rows []board.Row) ([]board.Row, bool) {
		return reorder(rows, rowID, from, to)
	})
}

func reorder(rows []board.Row, rowID board.RowID, from, to int) ([]board.Row, bool) {
	ri := rowIndex(rows, rowID)
	if ri < 0 {
		return nil, false
	}
	cards := rows[ri].Cards
	n := len(cards)
	if from < 0 || from >= n {
		return nil, false
	}
	if to < 0 || to >= n {
		to = n - 1
	}
	if from == to {
		return nil, false
	}

	moved := cards[from]
	cards = slices.Delete(cards, from, from+1)
	cards = slices.Insert(cards, to, moved)
	rows[ri].Cards = board.ScaleWidths(cards, 100)
	return board.Renumber(rows), true
}

// MoveCard moves a card from one row to another at position
// ([board.Append] appends).
//
// When the target row already holds MaxCardsPerRow cards the card at
// position is displaced into the source row at the moving card's old index,
// and the two cards exchange widths and heights. A full target with
// position out of range is a no-op. Otherwise the moving card keeps its
// declared width (see [board.JoinShare]) and the target's cards share the
// remainder. An emptied source row is removed and the rows renumbered.
//
// Moving within one row is a [Engine.ReorderCard].
func (e *Engine) MoveCard(cardID board.CardID, sourceRowID, targetRowID board.RowID, position int) board.ChangeSet {
	return e.update("moveCard", func(rows []board.Row) ([]board.Row, bool) {
		si := rowIndex(rows, sourceRowID)
		if si < 0 {
			return nil, false
		}
		ci := rows[si].IndexOf(cardID)
		if ci < 0 {
			return nil, false
		}
		if sourceRowID == targetRowID {
			return reorder(rows, sourceRowID, ci, position)
		}
		ti := rowIndex(rows, targetRowID)
		if ti < 0 {
			return nil, false
		}

		card := rows[si].Cards[ci]
		source := slices.Delete(rows[si].Cards, ci, ci+1)
		target := rows[ti].Cards

		if len(target) >= e.cfg.MaxCardsPerRow {
			if position < 0 || position >= len(target) {
				return nil, false
			}
			swapped := target[position]

			moving := card
			moving.Layout.WidthPercentage = swapped.Layout.WidthPercentage
			moving.Layout.Height = board.MaxHeight(target)
			target[position] = moving

			swapped.Layout.WidthPercentage = card.Layout.WidthPercentage
			swapped.Layout.Height = card.Layout.Height
			rows[si].Cards = board.ScaleWidths(slices.Insert(source, ci, swapped), 100)
			return board.Renumber(rows), true
		}

		rows[ti].Cards = board.WithHeight(board.InsertWithShare(target, position, card), board.MaxHeight(target))
		if len(source) == 0 {
			rows = slices.Delete(rows, si, si+1)
		} else {
			rows[si].Cards = board.ScaleWidths(source, 100)
		}
		return board.Renumber(rows), true
	})
}

// AddCard adds card to the end of the row rowID. An empty rowID creates a
// new trailing row holding only the card at full width.
//
// In an existing row the card keeps its declared width, the other cards
// share the remainder and the card takes the row's height. Adding to a full
// row, reusing an existing id or adding while DisableAddCard is set is a
// no-op.
func (e *Engine) AddCard(rowID board.RowID, card board.Card) board.ChangeSet {
	if e.cfg.DisableAddCard {
		e.logger.Debug("add card disabled", "card", card.ID)
		return board.ChangeSet{}
	}
	return e.update("addCard", func(rows []board.Row) ([]board.Row, bool) {
		if card.ID == "" {
			return nil, false
		}
		if _, dup := e.cards[card.ID]; dup {
			return nil, false
		}

		if rowID == "" {
			card.Layout.WidthPercentage = 100
			if card.Layout.Height <= 0 {
				card.Layout.Height = board.DefaultCardHeight
			}
			rows = append(rows, board.Row{Cards: []board.Card{card}})
			return board.Renumber(rows), true
		}

		ri := rowIndex(rows, rowID)
		if ri < 0 || len(rows[ri].Cards) >= e.cfg.MaxCardsPerRow {
			return nil, false
		}
		target := rows[ri].Cards
		rows[ri].Cards = board.WithHeight(board.InsertWithShare(target, board.Append, card), board.MaxHeight(target))
		return board.Renumber(rows), true
	})
}

// DeleteCard removes a card. The row's remaining cards are rescaled to 100
// and take their own maximum height; an emptied row is removed and the rows
// after it renumbered.
func (e *Engine) DeleteCard(cardID board.CardID, rowID board.RowID) board.ChangeSet {
	return e.update("deleteCard", func(rows []board.Row) ([]board.Row, bool) {
		ri := rowIndex(rows, rowID)
		if ri < 0 {
			return nil, false
		}
		ci := rows[ri].IndexOf(cardID)
		if ci < 0 {
			return nil, false
		}

		rest := slices.Delete(rows[ri].Cards, ci, ci+1)
		if len(rest) == 0 {
			rows = slices.Delete(rows, ri, ri+1)
		} else {
			rows[ri].Cards = board.WithHeight(board.ScaleWidths(rest, 100), board.MaxHeight(rest))
		}
		return board.Renumber(rows), true
	})
}

// UpdateCard replaces the content and layout of a card in place. Row and
// column are re-stamped from the card's current position and the id is kept;
// sibling cards are untouched. The card and its row are always reported,
// since content changes are invisible to the layout diff.
func (e *Engine) UpdateCard(cardID board.CardID, card board.Card) board.ChangeSet {
	e.mu.Lock()
	ri, ci := -1, -1
	for i, r := range e.rows {
		if j := r.IndexOf(cardID); j >= 0 {
			ri, ci = i, j
			break
		}
	}
	if ri < 0 {
		e.mu.Unlock()
		e.logger.Debug("ignored", "op", "updateCard", "card", cardID)
		return board.ChangeSet{}
	}

	next := board.CloneRows(e.rows)
	card.ID = cardID
	card.Layout.Row, card.Layout.Col = ri, ci
	next[ri].Cards[ci] = card

	changes := e.commitLocked(next)
	if !slices.ContainsFunc(changes.UpdatedCards, func(c board.Card) bool { return c.ID == cardID }) {
		changes.UpdatedCards = append(changes.UpdatedCards, card)
	}
	if !slices.ContainsFunc(changes.UpdatedRows, func(r board.Row) bool { return r.ID == next[ri].ID }) {
		changes.UpdatedRows = append(changes.UpdatedRows, next[ri].Clone())
	}
	e.mu.Unlock()

	e.notify("updateCard", changes)
	return changes
}
