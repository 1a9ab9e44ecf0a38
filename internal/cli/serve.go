package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardboard/pkg/engine"
	"github.com/matzehuels/cardboard/pkg/server"
)

// shutdownTimeout bounds graceful shutdown of "cardboard serve".
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Long: `Serve the board's layout engine as a JSON API. Every committed change is
persisted to the board file or store, like the other commands.

Example:
  cardboard serve --addr :9000
  cardboard --store redis --board-id team serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if !cmd.Flags().Changed("addr") {
				addr = c.settings.Addr
			}
			ctx := cmd.Context()

			widths := engine.NewLiveGeometry()
			sess, err := c.openBoard(ctx, engine.WithGeometry(engine.GridGeometry()), engine.WithWidthGeometry(widths))
			if err != nil {
				return err
			}
			defer sess.closeInto(&err)

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(sess.Engine, server.WithLogger(c.Logger), server.WithRowWidths(widths)).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			printSuccess("Serving %s", StyleLink.Render("http://"+displayAddr(addr)))
			printDetail("GET /board · POST /cards · POST /drop · Ctrl+C to stop")

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			c.Logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if serveErr := <-errc; serveErr != nil && !stderrors.Is(serveErr, http.ErrServerClosed) {
				return serveErr
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
