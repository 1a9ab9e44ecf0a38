package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardboard/pkg/engine"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect settings and the effective board configuration",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print resolved settings and board configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.settings
			fmt.Println(StyleTitle.Render("Settings"))
			printKeyValue("store", s.Store)
			switch s.Store {
			case storeFile:
				printKeyValue("board", s.Board)
			case storeDisk:
				printKeyValue("board id", s.BoardID)
				printKeyValue("store dir", s.StoreDir)
			case storeRedis:
				printKeyValue("board id", s.BoardID)
				printKeyValue("redis", s.RedisURL)
			}
			printKeyValue("addr", s.Addr)
			fmt.Println()

			return c.withBoard(cmd.Context(), func(e *engine.Engine) error {
				cfg := e.Config()
				fmt.Println(StyleTitle.Render("Board"))
				printKeyValue("max cards", strconv.Itoa(cfg.MaxCardsPerRow))
				printKeyValue("height", fmt.Sprintf("%.0f-%.0fpx", cfg.MinHeight, cfg.MaxHeight))
				printKeyValue("drag", onOff(!cfg.DisableDrag))
				printKeyValue("card width", onOff(!cfg.DisableResizeCardWidth))
				printKeyValue("row height", onOff(!cfg.DisableResizeRowHeight))
				printKeyValue("add card", onOff(!cfg.DisableAddCard))
				printKeyValue("between rows", onOff(!cfg.DisableCardDropInBetweenRows))
				printKeyValue("correction", onOff(cfg.EnableLayoutCorrection))
				return nil
			})
		},
	}
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if used := c.v.ConfigFileUsed(); used != "" {
				fmt.Println(used)
				return nil
			}
			printInfo("No config file found")
			printNextStep("Create one", "echo 'store: disk' > .cardboard.yaml")
			return nil
		},
	}
}

func onOff(b bool) string {
	if b {
		return StyleSuccess.Render("enabled")
	}
	return StyleDim.Render("disabled")
}
