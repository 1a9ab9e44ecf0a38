package board

import "math"

const eps = 1e-9

// SumWidths returns the total width percentage of cards.
func SumWidths(cards []Card) float64 {
	var sum float64
	for _, c := range cards {
		sum += c.Layout.WidthPercentage
	}
	return sum
}

// ScaleWidths returns a copy of cards whose widths keep their relative
// proportions and sum to total. When the current total is zero the space
// is shared equally.
func ScaleWidths(cards []Card, total float64) []Card {
	if len(cards) == 0 {
		return nil
	}
	out := append([]Card(nil), cards...)

	sum := SumWidths(out)
	if sum <= eps {
		unit := total / float64(len(out))
		for i := range out {
			out[i].Layout.WidthPercentage = unit
		}
		return out
	}
	if math.Abs(sum-total) <= eps {
		return out
	}

	scale := total / sum
	for i := range out {
		out[i].Layout.WidthPercentage *= scale
	}
	return out
}

// EqualWidths returns a copy of cards sharing 100% equally.
func EqualWidths(cards []Card) []Card {
	if len(cards) == 0 {
		return nil
	}
	out := append([]Card(nil), cards...)
	unit := 100 / float64(len(out))
	for i := range out {
		out[i].Layout.WidthPercentage = unit
	}
	return out
}

// MaxHeight returns the largest card height, or 0 when cards is empty.
func MaxHeight(cards []Card) float64 {
	var h float64
	for _, c := range cards {
		h = max(h, c.Layout.Height)
	}
	return h
}

// WithHeight returns a copy of cards all set to height h.
func WithHeight(cards []Card, h float64) []Card {
	out := append([]Card(nil), cards...)
	for i := range out {
		out[i].Layout.Height = h
	}
	return out
}

// Restamp returns a copy of cards with row set to rowIndex and columns
// numbered 0..n-1 in slice order.
func Restamp(cards []Card, rowIndex int) []Card {
	out := append([]Card(nil), cards...)
	for i := range out {
		out[i].Layout.Row = rowIndex
		out[i].Layout.Col = i
	}
	return out
}

// Renumber assigns positional ids and row indices to rows so they are
// contiguous from 0. It is applied whenever a row is removed.
func Renumber(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{ID: RowIDFor(i), Cards: Restamp(r.Cards, i)}
	}
	return out
}

// JoinShare returns the width a card joining a row of n existing cards
// keeps for itself. The declared width is clamped so every existing card
// can still hold MinCardWidth; ok is false when no such width exists and the
// row should be shared equally instead.
func JoinShare(declared float64, n int) (width float64, ok bool) {
	if n == 0 {
		return 100, true
	}
	upper := min(MaxCardWidth, 100-MinCardWidth*float64(n))
	if upper < MinCardWidth {
		return 0, false
	}
	if declared <= 0 {
		declared = 100 / float64(n+1)
	}
	return min(upper, max(MinCardWidth, declared)), true
}

// InsertWithShare inserts card into cards at index (Append or an index past
// the end appends). The inserted card keeps its declared width (see
// [JoinShare]) and the existing cards are rescaled proportionally to share
// the remainder. The result is not re-stamped.
func InsertWithShare(cards []Card, index int, card Card) []Card {
	n := len(cards)
	if index < 0 || index > n {
		index = n
	}

	share, ok := JoinShare(card.Layout.WidthPercentage, n)
	out := make([]Card, 0, n+1)
	if !ok {
		out = append(out, cards[:index]...)
		out = append(out, card)
		out = append(out, cards[index:]...)
		return EqualWidths(out)
	}

	rest := ScaleWidths(cards, 100-share)
	card.Layout.WidthPercentage = share
	out = append(out, rest[:index]...)
	out = append(out, card)
	out = append(out, rest[index:]...)
	return out
}
