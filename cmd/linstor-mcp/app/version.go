package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beornf/linstor-api-go/pkg/linstor"
)

// VersionOptions holds options for the version command
type VersionOptions struct {
	*GlobalOptions

	// Controller also queries the controller version
	Controller bool
}

// NewVersionCommand creates the version command.
func NewVersionCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &VersionOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Client:     %s\n", linstor.Version)
			fmt.Fprintf(out, "Min API:    %s\n", linstor.APIVersionMin)
			if !opts.Controller {
				return nil
			}

			s, err := openSession(cmd.Context(), opts.GlobalOptions, nil, true)
			if err != nil {
				return err
			}
			defer s.Close()

			ver := s.client.ControllerVersion()
			if ver == nil {
				return fmt.Errorf("controller version unknown")
			}
			fmt.Fprintf(out, "Controller: %s (%s)\n", ver.Version, s.client.ControllerHost())
			fmt.Fprintf(out, "REST API:   %s\n", ver.RESTAPIVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Controller, "controller", false,
		"also show the controller version")

	return cmd
}
