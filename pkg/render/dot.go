package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/cardboard/pkg/board"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Width is the board width in inches. Defaults to 10.
	Width float64

	// PixelsPerInch converts row heights to node heights. Defaults to 96.
	PixelsPerInch float64

	// Detailed adds width, height and content entries to node labels.
	// When false, only the card title is shown.
	Detailed bool
}

func (o DOTOptions) withDefaults() DOTOptions {
	if o.Width <= 0 {
		o.Width = 10
	}
	if o.PixelsPerInch <= 0 {
		o.PixelsPerInch = 96
	}
	return o
}

// ToDOT converts rows to Graphviz DOT. Each row becomes a cluster whose
// cards are fixed-size boxes laid out left to right; invisible edges keep
// cards in column order and rows in top to bottom order.
func ToDOT(rows []board.Row, opts DOTOptions) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph board {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true, fontsize=12];\n")
	buf.WriteString("  ranksep=0.3;\n")
	buf.WriteString("  nodesep=0;\n")

	for _, row := range rows {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+string(row.ID))
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("%s (%.0fpx)", row.ID, row.Height()))
		buf.WriteString("    style=dashed;\n")
		height := row.Height() / opts.PixelsPerInch
		ids := make([]string, len(row.Cards))
		for i, c := range row.Cards {
			ids[i] = fmt.Sprintf("%q", c.ID)
			width := c.Layout.WidthPercentage / 100 * opts.Width
			fmt.Fprintf(&buf, "    %q [label=%q, width=%.2f, height=%.2f];\n", c.ID, dotLabel(c, opts.Detailed), width, height)
		}
		if len(ids) > 0 {
			fmt.Fprintf(&buf, "    { rank=same; %s; }\n", strings.Join(ids, "; "))
		}
		if len(ids) > 1 {
			fmt.Fprintf(&buf, "    %s [style=invis];\n", strings.Join(ids, " -> "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for i := 1; i < len(rows); i++ {
		prev, next := rows[i-1].Cards, rows[i].Cards
		if len(prev) == 0 || len(next) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [style=invis];\n", prev[0].ID, next[0].ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(c board.Card, detailed bool) string {
	if !detailed {
		return c.Title()
	}

	parts := []string{fmt.Sprintf("%.0f%% x %.0fpx", c.Layout.WidthPercentage, c.Layout.Height)}
	for _, k := range slices.Sorted(maps.Keys(c.Content)) {
		if k == "title" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, c.Content[k]))
	}
	return c.Title() + "\n" + strings.Join(parts, "\n")
}
