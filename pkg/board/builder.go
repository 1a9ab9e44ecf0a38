package board

import (
	"math"
	"slices"
	"sort"
)

// BuildRows converts a flat card list into normalised rows.
//
// Cards are grouped by declared row and sorted by declared column (stable,
// so equal columns keep input order). Each row then has its widths
// redistributed equally if their total is off by more than [WidthTolerance],
// every card's height set to the row maximum (a card without a positive
// height counts as [DefaultCardHeight]), and row/column indices
// re-stamped to be contiguous from 0. Rows are returned in ascending declared
// row order with ids "row-1", "row-2", ...
func BuildRows(cards []Card) []Row {
	groups := make(map[int][]Card)
	for _, c := range cards {
		groups[c.Layout.Row] = append(groups[c.Layout.Row], c)
	}

	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	rows := make([]Row, 0, len(keys))
	for i, k := range keys {
		group := slices.Clone(groups[k])
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].Layout.Col < group[b].Layout.Col
		})

		if math.Abs(SumWidths(group)-100) > WidthTolerance {
			group = EqualWidths(group)
		}

		var height float64
		for _, c := range group {
			h := c.Layout.Height
			if h <= 0 {
				h = DefaultCardHeight
			}
			height = max(height, h)
		}

		rows = append(rows, Row{
			ID:    RowIDFor(i),
			Cards: Restamp(WithHeight(group, height), i),
		})
	}
	return rows
}

// CardsMap indexes every card of rows by id.
func CardsMap(rows []Row) map[CardID]Card {
	n := 0
	for _, r := range rows {
		n += len(r.Cards)
	}
	m := make(map[CardID]Card, n)
	for _, r := range rows {
		for _, c := range r.Cards {
			m[c.ID] = c
		}
	}
	return m
}

// Cards flattens rows back into the external card list, in row then column
// order.
func Cards(rows []Row) []Card {
	var out []Card
	for _, r := range rows {
		out = append(out, r.Cards...)
	}
	return out
}
