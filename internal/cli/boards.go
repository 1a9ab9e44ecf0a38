package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// boardsCommand creates the command managing boards in a store.
func (c *CLI) boardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage boards in the disk or Redis store",
	}

	cmd.AddCommand(c.boardsListCommand())
	cmd.AddCommand(c.boardsDeleteCommand())
	cmd.AddCommand(c.boardsPathCommand())

	return cmd
}

// boardsListCommand creates the "boards list" subcommand.
func (c *CLI) boardsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored board ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			ids, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				printInfo("No boards stored")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

// boardsDeleteCommand creates the "boards delete" subcommand.
func (c *CLI) boardsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a stored board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted board %s", args[0])
			return nil
		},
	}
}

// boardsPathCommand creates the "boards path" subcommand.
func (c *CLI) boardsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where boards are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.settings.Store {
			case storeDisk:
				fmt.Println(c.settings.StoreDir)
			case storeRedis:
				fmt.Println(c.settings.RedisURL)
			default:
				fmt.Println(c.settings.Board)
			}
			return nil
		},
	}
}
