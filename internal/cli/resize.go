package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/engine"
	"github.com/matzehuels/cardboard/pkg/errors"
)

// resizeCommand creates the resize command group.
func (c *CLI) resizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize",
		Short: "Resize card widths or row heights",
	}

	cmd.AddCommand(c.resizeWidthCommand())
	cmd.AddCommand(c.resizeHeightCommand())

	return cmd
}

// resizeWidthCommand creates the "resize width" subcommand. The CLI has no
// pixels, so the board is laid out on a grid where one pixel is one
// percentage point.
func (c *CLI) resizeWidthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "width <row-id> <card-index> <delta>",
		Short: "Drag the right border of a card",
		Long: `Drag the border between a card and its right neighbour by delta percentage
points. Both cards stay between 10% and 90% and the row keeps its total.

Example:
  cardboard resize width row-1 0 15     # widen the first card by 15 points
  cardboard resize width row-1 0 -- -15 # narrow it`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex("card-index", args[1])
			if err != nil {
				return err
			}
			delta, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "delta must be a number, got %q", args[2])
			}

			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				if e.Config().DisableResizeCardWidth {
					return errors.New(errors.ErrCodeFeatureDisabled, "card width resizing is disabled for this board")
				}
				rowID := board.RowID(args[0])
				row, ok := e.FindRow(rowID)
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "row %q not found", rowID)
				}
				if index >= len(row.Cards)-1 {
					return errors.New(errors.ErrCodeInvalidInput, "card %d of %s has no right neighbour", index, rowID)
				}

				h := e.WidthHandle(rowID, index)
				if err := h.DragStart(engine.Pointer{}); err != nil {
					return err
				}
				printChanges(fmt.Sprintf("Resized %s", row.Cards[index].ID), h.Drop(engine.Pointer{X: delta}))
				return nil
			}, engine.WithGeometry(engine.GridGeometry()))
		},
	}
}

// resizeHeightCommand creates the "resize height" subcommand.
func (c *CLI) resizeHeightCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "height <row-id> <height>",
		Short: "Set the height of a row",
		Long: `Set the height of every card in a row, clamped to the board's min and max
height.

Example:
  cardboard resize height row-2 420`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			height, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "height must be a number, got %q", args[1])
			}

			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				if e.Config().DisableResizeRowHeight {
					return errors.New(errors.ErrCodeFeatureDisabled, "row height resizing is disabled for this board")
				}
				rowID := board.RowID(args[0])
				row, ok := e.FindRow(rowID)
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "row %q not found", rowID)
				}

				h := e.HeightHandle(rowID)
				if err := h.DragStart(engine.Pointer{}); err != nil {
					return err
				}
				printChanges(fmt.Sprintf("Resized %s", rowID), h.Drop(engine.Pointer{Y: height - row.Height()}))
				return nil
			})
		},
	}
}

// dropCommand creates the drop command.
func (c *CLI) dropCommand() *cobra.Command {
	var (
		targetRow  string
		targetCard string
		edge       string
		x          float64
	)

	cmd := &cobra.Command{
		Use:   "drop <card-id>",
		Short: "Drop a dragged card on a row or a card",
		Long: `Resolve a card drop the way a pointer release would.

Dropped on a card (--on), the card lands before it (--edge left) or after it
(--edge right). Dropped on a row surface, it lands at the card boundary
nearest to --x, a percentage of the row width.

Example:
  cardboard drop users --row row-1 --on sales --edge right
  cardboard drop users --row row-1 --x 48`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch engine.Edge(edge) {
			case engine.EdgeNone, engine.EdgeLeft, engine.EdgeRight:
			default:
				return errors.New(errors.ErrCodeInvalidInput, "edge must be left or right, got %q", edge)
			}

			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				if e.Config().DisableDrag {
					return errors.New(errors.ErrCodeFeatureDisabled, "dragging is disabled for this board")
				}
				card, err := findCard(e, args[0])
				if err != nil {
					return err
				}
				target := board.RowID(targetRow)
				if target == "" {
					target = board.RowIDFor(card.Layout.Row)
				}
				y := 0.5
				if i, ok := board.RowIndex(target); ok {
					y += float64(i)
				}

				res := e.Drop(engine.DropEvent{
					CardID:       card.ID,
					SourceRowID:  board.RowIDFor(card.Layout.Row),
					TargetRowID:  target,
					TargetCardID: board.CardID(targetCard),
					Edge:         engine.Edge(edge),
					Pointer:      engine.Pointer{X: x, Y: y},
				})
				switch res.Outcome {
				case engine.DropMoved, engine.DropReordered:
					printChanges(fmt.Sprintf("Dropped %s on %s at %d (%s)", card.ID, res.RowID, res.Index, res.Outcome), res.Changes)
				case engine.DropRejected:
					printWarning("Drop rejected: the trailing edge of %s is not a slot", res.RowID)
				default:
					printInfo("Drop %s", res.Outcome)
				}
				return nil
			}, engine.WithGeometry(engine.GridGeometry()))
		},
	}

	cmd.Flags().StringVarP(&targetRow, "row", "r", "", "target row (default: the card's own row)")
	cmd.Flags().StringVar(&targetCard, "on", "", "target card to drop on")
	cmd.Flags().StringVarP(&edge, "edge", "e", "", "side of the target card: left or right")
	cmd.Flags().Float64Var(&x, "x", 0, "pointer position in percent of the row width")

	return cmd
}
