package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/engine"
	"github.com/matzehuels/cardboard/pkg/errors"
	"github.com/matzehuels/cardboard/pkg/render"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		format  string
		details bool
		width   int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board",
		Long: `Print the board as terminal boxes (text), as rows in JSON, or as Graphviz DOT.

Example:
  cardboard show --details
  cardboard show -f json | jq '.[0].cards'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				rows := e.Rows()
				switch format {
				case "text":
					opts := []render.TextOption{render.WithWidth(width)}
					if details {
						opts = append(opts, render.WithDetails())
					}
					fmt.Println(render.Text(rows, opts...))
				case "json":
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(rows)
				case "dot":
					fmt.Print(render.ToDOT(rows, render.DOTOptions{Detailed: details}))
				default:
					return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want text, json or dot)", format)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, dot")
	cmd.Flags().BoolVarP(&details, "details", "d", false, "include widths, heights and content")
	cmd.Flags().IntVarP(&width, "width", "w", render.DefaultTextWidth, "text width in columns")

	return cmd
}

// cardFlags are the flags shared by add and update.
type cardFlags struct {
	title   string
	width   float64
	height  float64
	content []string
}

func (f *cardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "card title")
	cmd.Flags().Float64Var(&f.width, "width", 0, "width percentage")
	cmd.Flags().Float64Var(&f.height, "height", 0, "height in pixels")
	cmd.Flags().StringArrayVarP(&f.content, "set", "s", nil, "content entry key=value (repeatable)")
}

// apply writes the flags the user set onto card.
func (f *cardFlags) apply(cmd *cobra.Command, card *board.Card) error {
	content := board.Content{}
	for k, v := range card.Content {
		content[k] = v
	}
	if cmd.Flags().Changed("title") {
		content["title"] = f.title
	}
	for _, kv := range f.content {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return errors.New(errors.ErrCodeInvalidInput, "content entry %q is not key=value", kv)
		}
		content[k] = v
	}
	if len(content) > 0 {
		card.Content = content
	}
	if cmd.Flags().Changed("width") {
		card.Layout.WidthPercentage = f.width
	}
	if cmd.Flags().Changed("height") {
		card.Layout.Height = f.height
	}
	return nil
}

// addCommand creates the add command.
func (c *CLI) addCommand() *cobra.Command {
	var (
		flags cardFlags
		id    string
		row   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a card",
		Long: `Add a card to the end of a row, or as a new row when --row is omitted.

The card keeps its --width and the other cards of the row share the rest.
Without --id a random id is generated.

Example:
  cardboard add --title Revenue
  cardboard add --row row-1 --width 30 --set metric=mrr`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = uuid.NewString()
			}
			if err := errors.ValidateCardID(id); err != nil {
				return err
			}
			card := board.Card{ID: board.CardID(id)}
			if err := flags.apply(cmd, &card); err != nil {
				return err
			}

			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				if e.Config().DisableAddCard {
					return errors.New(errors.ErrCodeFeatureDisabled, "adding cards is disabled for this board")
				}
				if _, dup := e.FindCard(card.ID); dup {
					return errors.New(errors.ErrCodeInvalidInput, "card %q already exists", card.ID)
				}
				if row != "" {
					r, ok := e.FindRow(board.RowID(row))
					if !ok {
						return errors.New(errors.ErrCodeNotFound, "row %q not found", row)
					}
					if len(r.Cards) >= e.Config().MaxCardsPerRow {
						return errors.New(errors.ErrCodeInvalidInput, "row %s is full (%d cards)", row, len(r.Cards))
					}
				}
				printChanges("Added "+id, e.AddCard(board.RowID(row), card))
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "card id (default: random)")
	cmd.Flags().StringVarP(&row, "row", "r", "", "row to add to, e.g. row-1 (default: new row)")

	return cmd
}

// deleteCommand creates the delete command.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				card, err := findCard(e, args[0])
				if err != nil {
					return err
				}
				printChanges("Deleted "+args[0], e.DeleteCard(card.ID, board.RowIDFor(card.Layout.Row)))
				return nil
			})
		},
	}
}

// updateCommand creates the update command.
func (c *CLI) updateCommand() *cobra.Command {
	var flags cardFlags

	cmd := &cobra.Command{
		Use:   "update <card-id>",
		Short: "Change a card's content, width or height",
		Long: `Change a card in place. Only the flags given are changed; the card keeps its
row and column.

Example:
  cardboard update sales --title "Sales (EU)" --set region=eu`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				card, err := findCard(e, args[0])
				if err != nil {
					return err
				}
				if err := flags.apply(cmd, &card); err != nil {
					return err
				}
				printChanges("Updated "+args[0], e.UpdateCard(card.ID, card))
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// moveCommand creates the move command.
func (c *CLI) moveCommand() *cobra.Command {
	var position int

	cmd := &cobra.Command{
		Use:   "move <card-id> <target-row>",
		Short: "Move a card to another row",
		Long: `Move a card to a position in another row (or its own row).

A full target row swaps the card with the one at --position.

Example:
  cardboard move users row-1 --position 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				if e.Config().DisableDrag {
					return errors.New(errors.ErrCodeFeatureDisabled, "dragging is disabled for this board")
				}
				card, err := findCard(e, args[0])
				if err != nil {
					return err
				}
				target := board.RowID(args[1])
				if _, ok := e.FindRow(target); !ok {
					return errors.New(errors.ErrCodeNotFound, "row %q not found", target)
				}
				cs := e.MoveCard(card.ID, board.RowIDFor(card.Layout.Row), target, position)
				printChanges(fmt.Sprintf("Moved %s to %s", card.ID, target), cs)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&position, "position", "p", board.Append, "insertion index in the target row (-1 appends)")
	return cmd
}

// reorderCommand creates the reorder command.
func (c *CLI) reorderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <row-id> <from> <to>",
		Short: "Move a card within its row",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex("from", args[1])
			if err != nil {
				return err
			}
			to, err := parseIndex("to", args[2])
			if err != nil {
				return err
			}
			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				if e.Config().DisableDrag {
					return errors.New(errors.ErrCodeFeatureDisabled, "dragging is disabled for this board")
				}
				row, ok := e.FindRow(board.RowID(args[0]))
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "row %q not found", args[0])
				}
				if from >= len(row.Cards) {
					return errors.New(errors.ErrCodeInvalidInput, "%s has %d cards, no index %d", row.ID, len(row.Cards), from)
				}
				printChanges(fmt.Sprintf("Reordered %s", row.ID), e.ReorderCard(row.ID, from, to))
				return nil
			})
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

func findCard(e *engine.Engine, id string) (board.Card, error) {
	card, ok := e.FindCard(board.CardID(id))
	if !ok {
		return board.Card{}, errors.New(errors.ErrCodeNotFound, "card %q not found", id)
	}
	return card, nil
}

func parseIndex(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative integer, got %q", name, s)
	}
	return n, nil
}
