// Package cli implements the cardboard command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/cardboard/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "cardboard"

	// defaultBoardFile is the board file used when none is configured.
	defaultBoardFile = "board.toml"

	// defaultAddr is the listen address of "cardboard serve".
	defaultAddr = ":8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	v        *viper.Viper
	settings settings
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		v:      viper.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Cardboard arranges dashboard cards in rows",
		Long:         `Cardboard is a layout engine for dashboards built from rows of cards. The CLI edits board files or stored boards, renders them, and serves them over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadSettings()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.bindFlags(root)

	// Register all subcommands
	root.AddCommand(c.showCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.reorderCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.dropCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.boardsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the data directory using XDG standard (~/.local/share/cardboard/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
