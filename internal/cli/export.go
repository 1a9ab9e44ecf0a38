package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardboard/pkg/boardfile"
	"github.com/matzehuels/cardboard/pkg/engine"
	"github.com/matzehuels/cardboard/pkg/errors"
	"github.com/matzehuels/cardboard/pkg/render"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "export <output>",
		Short: "Write the board to a file",
		Long: `Write the board to a file. The format follows the extension:

  .toml, .json   board file (config and cards), loadable with --board
  .dot           Graphviz DOT, one cluster per row
  .svg           DOT rendered with Graphviz
  .txt           the boxes printed by "show"

Example:
  cardboard --store redis --board-id team export team.toml
  cardboard export board.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := args[0]
			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				prog := newProgress(c.Logger)
				if err := c.export(cmd, e, out, detailed); err != nil {
					return err
				}
				prog.done("Exported board")
				printFile(out)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&detailed, "details", "d", false, "include widths, heights and content in DOT/SVG/text")
	return cmd
}

func (c *CLI) export(cmd *cobra.Command, e *engine.Engine, out string, detailed bool) error {
	ext := strings.ToLower(filepath.Ext(out))
	rows := e.Rows()

	var data []byte
	switch ext {
	case ".toml", ".json":
		return boardfile.Save(out, &boardfile.File{Config: e.Config(), Cards: e.Cards()})
	case ".dot":
		data = []byte(render.ToDOT(rows, render.DOTOptions{Detailed: detailed}))
	case ".svg":
		spinner := newSpinnerWithContext(cmd.Context(), "Rendering SVG...")
		spinner.Start()
		svg, err := render.RenderSVG(cmd.Context(), render.ToDOT(rows, render.DOTOptions{Detailed: detailed}))
		spinner.Stop()
		if err != nil {
			return err
		}
		data = svg
	case ".txt":
		opts := []render.TextOption{}
		if detailed {
			opts = append(opts, render.WithDetails())
		}
		data = []byte(render.Text(rows, opts...) + "\n")
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported export extension %q (want .toml, .json, .dot, .svg or .txt)", ext)
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", out)
	}
	return nil
}
