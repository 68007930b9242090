package app

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

// NewToolsCommand creates the tools command, which lists the tools without
// contacting a controller.
func NewToolsCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), globalOpts, nil, false)
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := inProcessClient(cmd.Context(), s)
			if err != nil {
				return err
			}
			defer c.Close()

			listed, err := c.ListTools(cmd.Context(), mcp.ListToolsRequest{})
			if err != nil {
				return err
			}
			for _, tool := range listed.Tools {
				fmt.Fprintf(cmd.OutOrStdout(), "%-26s %s\n", tool.Name, tool.Description)
			}
			return nil
		},
	}
}
