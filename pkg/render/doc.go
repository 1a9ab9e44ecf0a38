// Package render draws boards for terminals and documents.
//
// # Overview
//
// Three outputs are provided, all computed from a row snapshot as returned
// by [engine.Engine.Rows]:
//
//   - [Text]: a lipgloss box drawing sized to a terminal width, one line of
//     boxes per row, each box as wide as its card's width percentage
//   - [ToDOT]: a Graphviz DOT document with one cluster per row and one
//     fixed-size node per card
//   - [RenderSVG]: the DOT document rendered to SVG with go-graphviz
//
// All three take the rows of an engine:
//
//	rows := e.Rows()
//	fmt.Println(render.Text(rows, render.WithWidth(100)))
//	svg, err := render.RenderSVG(ctx, render.ToDOT(rows, render.DOTOptions{}))
//
// Rendering never changes the board; widths are drawn as stored, so a row
// whose widths do not sum to 100 shows a gap or overflow.
//
// [engine.Engine.Rows]: github.com/matzehuels/cardboard/pkg/engine.Engine.Rows
package render
