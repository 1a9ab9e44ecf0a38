// Package cli implements the cardboard command-line interface.
//
// Commands edit one board at a time. The board lives either in a board file
// (TOML or JSON, the default) or in a store (a directory of JSON documents
// or Redis), selected with --store. Every committed layout change is written
// back immediately.
//
// # Commands
//
// The main commands are:
//   - show: Print the board as boxes, JSON or DOT
//   - add, delete, update: Edit cards
//   - move, reorder, drop: Rearrange cards
//   - resize width, resize height: Settle a resize gesture
//   - export: Write the board as TOML, JSON, DOT, SVG or text
//   - serve: Expose the board over HTTP
//   - tui: Edit the board interactively
//   - config, boards: Inspect settings and stored boards
//
// # Configuration
//
// Settings come from flags, CARDBOARD_* environment variables and a
// .cardboard.yaml (or .toml, .json) file, in that order of precedence.
// Board configuration keys live under "config", e.g.
// CARDBOARD_CONFIG_MAX_CARDS_PER_ROW=4.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created,
// e.g. "Rendered board.svg (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
