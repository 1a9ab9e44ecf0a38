package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cardboard/pkg/board"
)

// DefaultTextWidth is the terminal width used when none is set.
const DefaultTextWidth = 80

var (
	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("36")).
			Padding(0, 1)
	styleSelected = styleCard.BorderForeground(lipgloss.Color("220")).Bold(true)
	styleRowLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleMeta     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TextOption configures [Text].
type TextOption func(*textConfig)

type textConfig struct {
	width    int
	detailed bool
	selected board.CardID
}

// WithWidth sets the total width in terminal cells.
func WithWidth(w int) TextOption {
	return func(c *textConfig) {
		if w > 0 {
			c.width = w
		}
	}
}

// WithDetails adds each card's width percentage and height to its box.
func WithDetails() TextOption {
	return func(c *textConfig) { c.detailed = true }
}

// WithSelected highlights one card.
func WithSelected(id board.CardID) TextOption {
	return func(c *textConfig) { c.selected = id }
}

// Text renders rows as boxes, one horizontal band per row, labelled with the
// row id and height.
func Text(rows []board.Row, opts ...TextOption) string {
	cfg := textConfig{width: DefaultTextWidth}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(rows) == 0 {
		return styleMeta.Render("(empty board)")
	}

	var out []string
	for _, row := range rows {
		label := styleRowLabel.Render(fmt.Sprintf("%s  %.0fpx", row.ID, row.Height()))
		out = append(out, label, textRow(row, cfg))
	}
	return strings.Join(out, "\n")
}

func textRow(row board.Row, cfg textConfig) string {
	widths := cellWidths(row.Cards, cfg.width)
	boxes := make([]string, len(row.Cards))
	for i, c := range row.Cards {
		style := styleCard
		if c.ID == cfg.selected {
			style = styleSelected
		}
		lines := []string{c.Title()}
		if cfg.detailed {
			lines = append(lines, styleMeta.Render(fmt.Sprintf("%.0f%% · %.0fpx", c.Layout.WidthPercentage, c.Layout.Height)))
		}
		inner := max(widths[i]-2, 1)
		boxes[i] = style.Width(inner).MaxWidth(widths[i]).Render(strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// cellWidths converts width percentages into whole cells of a total width,
// giving every card at least the room for its border.
func cellWidths(cards []board.Card, total int) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = max(int(math.Floor(c.Layout.WidthPercentage/100*float64(total))), 4)
	}
	return out
}
