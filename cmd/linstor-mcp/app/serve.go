package app

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command, which connects to a controller
// and serves the tools over stdio until stdin closes.
func NewServeCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the controller tools over stdio",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries the protocol, so curl lines go to stderr.
			s, err := openSession(cmd.Context(), globalOpts, os.Stderr, true)
			if err != nil {
				return err
			}
			defer s.Close()

			s.log.Info("serving tools on stdio")
			return server.ServeStdio(s.server.MCPServer())
		},
	}
}
