// Package app implements the linstor-mcp command line.
//
// The root command loads the client config, builds a failover client over
// the configured controllers and hands it to the MCP tool server. Subcommands
// either serve the tools over stdio or invoke one of them in process.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/beornf/linstor-api-go/internal/config"
	"github.com/beornf/linstor-api-go/internal/mcpserve"
	"github.com/beornf/linstor-api-go/internal/paths"
	"github.com/beornf/linstor-api-go/internal/response"
	"github.com/beornf/linstor-api-go/pkg/linstor"
)

const (
	cliName        = "linstor-mcp"
	cliDescription = "linstor-mcp - LINSTOR controller queries as MCP tools"
)

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	// ConfigPath is the client config file
	ConfigPath string

	// Controllers overrides the configured controller list (comma separated)
	Controllers string

	// LogLevel overrides the configured log level
	LogLevel string
}

// ExitError carries a process exit code out of a command. A nil Err means
// the command has already reported the failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: response.ExitUsageErr, Err: err}
}

// usageArgs reports argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// NewRootCommand creates the root command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `linstor-mcp exposes read-only LINSTOR controller queries as MCP tools.

Controllers are taken from the client config, the LS_CONTROLLERS environment
variable or --controllers, and are tried in order until one answers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", paths.ConfigFile(),
		"client config file")
	cmd.PersistentFlags().StringVar(&opts.Controllers, "controllers", "",
		"comma separated controller uris (overrides config and LS_CONTROLLERS)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "",
		"log level (default: warn)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.AddCommand(
		NewServeCommand(opts),
		NewCallCommand(opts),
		NewToolsCommand(opts),
		NewVersionCommand(opts),
	)

	return cmd
}

// settings is the validated config plus the logger built from it.
type settings struct {
	cfg *config.Config
	log *logrus.Logger
}

// loadSettings reads the config file and applies the command line overrides.
func loadSettings(opts *GlobalOptions) (*settings, error) {
	cfgPath, err := paths.Expand(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("config path: %w", err)
	}
	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		return nil, err
	}
	if opts.Controllers != "" {
		cfg.Controllers = linstor.ControllerURIList(opts.Controllers)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	return &settings{cfg: cfg, log: log}, nil
}

// session is a configured client and the tool server built on it.
type session struct {
	log    *logrus.Logger
	client *linstor.Multi
	server *mcpserve.Server
}

// open builds the client. Dry-run curl lines go to dryRun. With connect set
// the client is connected before returning.
func (st *settings) open(ctx context.Context, dryRun io.Writer, connect bool) (*session, error) {
	clientOpts, err := st.cfg.ClientOptions(st.log, dryRun)
	if err != nil {
		return nil, err
	}
	client, err := linstor.NewMulti(st.cfg.ControllerURIs(), clientOpts...)
	if err != nil {
		return nil, err
	}
	if connect {
		if err := client.Connect(ctx); err != nil {
			return nil, err
		}
		st.log.WithField("controller", client.ControllerHost()).Info("connected")
	}

	return &session{
		log:    st.log,
		client: client,
		server: mcpserve.New(client, cliName, linstor.Version, st.log),
	}, nil
}

// openSession loads the settings and opens a session in one step.
func openSession(ctx context.Context, opts *GlobalOptions, dryRun io.Writer, connect bool) (*session, error) {
	st, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}
	return st.open(ctx, dryRun, connect)
}

func (s *session) Close() {
	if err := s.client.Close(); err != nil {
		s.log.WithError(err).Debug("closing controller connection")
	}
}
