package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/mithrel/finreply/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP render service",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			addr := app.Cfg.GetString("http_addr")
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			srv := server.New(app.Cfg, app.Renderer, app.Metrics, app.Log)
			fmt.Fprintf(cmd.OutOrStdout(), "finreply listening on %s\n", ln.Addr())
			return srv.Serve(cmd.Context(), ln)
		},
	}
	cmd.Flags().String("listen", "", "listen address (override config http_addr)")
	return cmd
}
