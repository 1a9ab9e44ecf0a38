package board

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultCardHeight is the height, in pixels, assumed for cards that declare none.
	DefaultCardHeight = 360.0

	// WidthTolerance is how far a row's width total may drift from 100
	// before layout correction redistributes it.
	WidthTolerance = 2.0

	// MinCardWidth and MaxCardWidth bound a card's width percentage during
	// interactive resizing and when a card joins an existing row.
	MinCardWidth = 10.0
	MaxCardWidth = 90.0

	// Append as an insertion position means "after the last card".
	Append = -1
)

// CardID identifies a card. Ids are opaque and unique across a board.
type CardID string

// RowID identifies a row by position ("row-1" is the first row).
type RowID string

// RowIDFor returns the positional id of the row at index.
func RowIDFor(index int) RowID {
	return RowID(fmt.Sprintf("row-%d", index+1))
}

// RowIndex parses a positional row id back into its index.
func RowIndex(id RowID) (int, bool) {
	s, ok := strings.CutPrefix(string(id), "row-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// Layout is the position and size record of a card.
type Layout struct {
	Row             int     `json:"row" toml:"row"`
	Col             int     `json:"col" toml:"col"`
	WidthPercentage float64 `json:"widthPercentage" toml:"width_percentage"`
	Height          float64 `json:"height" toml:"height"`
}

// Content is the card payload. The engine never inspects it.
type Content map[string]any

// Card is a positioned, sized unit holding opaque content.
type Card struct {
	ID      CardID  `json:"id" toml:"id"`
	Layout  Layout  `json:"layout" toml:"layout"`
	Content Content `json:"content,omitempty" toml:"content,omitempty"`
}

// Title returns the "title" entry of the card content, or the card id.
// It is a presentation convenience for hosts; the engine does not use it.
func (c Card) Title() string {
	if t, ok := c.Content["title"].(string); ok && t != "" {
		return t
	}
	return string(c.ID)
}

// Row is an ordered horizontal group of cards sharing one height.
type Row struct {
	ID    RowID  `json:"id"`
	Cards []Card `json:"cards"`
}

// Height returns the largest card height in the row, or 0 for an empty row.
func (r Row) Height() float64 {
	return MaxHeight(r.Cards)
}

// IndexOf returns the position of the card with the given id, or -1.
func (r Row) IndexOf(id CardID) int {
	for i, c := range r.Cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the row whose card slice can be modified freely.
// Card content maps are shared.
func (r Row) Clone() Row {
	return Row{ID: r.ID, Cards: append([]Card(nil), r.Cards...)}
}

// CloneRows copies a row snapshot.
func CloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// ChangeSet is the layout-change notification payload: the rows and cards
// that differ from the previous snapshot.
type ChangeSet struct {
	UpdatedRows  []Row  `json:"updatedRows"`
	UpdatedCards []Card `json:"updatedCards"`
}

// Empty reports whether the change set carries no rows and no cards.
func (c ChangeSet) Empty() bool {
	return len(c.UpdatedRows) == 0 && len(c.UpdatedCards) == 0
}
