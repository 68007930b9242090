package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/beornf/linstor-api-go/internal/cache"
	"github.com/beornf/linstor-api-go/internal/response"
	"github.com/beornf/linstor-api-go/pkg/linstor"
)

// CallOptions holds options for the call command
type CallOptions struct {
	*GlobalOptions

	// CacheTTL reuses output of an identical call younger than this
	CacheTTL time.Duration
}

// NewCallCommand creates the call command.
//
// Usage:
//
//	linstor-mcp call <tool> [json-arguments] [--cache-ttl 30s]
func NewCallCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &CallOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Invoke one tool and print its result",
		Example: `  linstor-mcp call node_list
  linstor-mcp call storage_pool_list '{"nodes":["alpha"]}'
  linstor-mcp call resource_list --cache-ttl 30s`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, opts, args)
		},
	}

	cmd.Flags().DurationVar(&opts.CacheTTL, "cache-ttl", 0,
		"reuse the output of an identical call made within this duration")

	return cmd
}

func runCall(cmd *cobra.Command, opts *CallOptions, args []string) error {
	tool := args[0]
	toolArgs := map[string]any{}
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return usageError(fmt.Errorf("invalid tool arguments: %w", err))
		}
	}

	st, err := loadSettings(opts.GlobalOptions)
	if err != nil {
		return internalError(err)
	}

	useCache := opts.CacheTTL > 0 && !st.cfg.Curl
	var key cache.Key
	if useCache {
		// Marshalling a map sorts its keys, so equal arguments share a key.
		raw, err := json.Marshal(toolArgs)
		if err != nil {
			return internalError(err)
		}
		key = cache.Key{Controllers: st.cfg.ControllerURIs(), Tool: tool, Args: raw}
		if hit, ok := cache.Get(key); ok {
			st.log.WithFields(logrus.Fields{
				"tool":    tool,
				"created": humanize.Time(hit.Created),
			}).Debug("using cached output")
			return emit(cmd, hit.Content, hit.ExitCode)
		}
	}

	s, err := st.open(cmd.Context(), cmd.OutOrStdout(), true)
	if err != nil {
		return internalError(err)
	}
	defer s.Close()

	c, err := inProcessClient(cmd.Context(), s)
	if err != nil {
		return internalError(err)
	}
	defer c.Close()

	result, err := c.CallTool(cmd.Context(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: tool, Arguments: toolArgs},
	})
	if err != nil {
		return &ExitError{Code: response.CallErrorCode(err), Err: fmt.Errorf("%s: %w", tool, err)}
	}

	out, code := response.Unwrap(result)
	if useCache {
		if err := cache.Put(key, out, code, opts.CacheTTL); err != nil {
			s.log.WithError(err).Warn("caching tool output")
		}
	}
	return emit(cmd, out, code)
}

func internalError(err error) error {
	return &ExitError{Code: response.ExitInternal, Err: err}
}

func emit(cmd *cobra.Command, out []byte, code int) error {
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return internalError(err)
	}
	if code != response.ExitOK {
		return &ExitError{Code: code}
	}
	return nil
}

// inProcessClient starts an initialized MCP client bound to the session's
// tool server.
func inProcessClient(ctx context.Context, s *session) (*mcpclient.Client, error) {
	c, err := mcpclient.NewInProcessClient(s.server.MCPServer())
	if err != nil {
		return nil, fmt.Errorf("creating in-process client: %w", err)
	}
	if err := c.Start(ctx); err != nil {
		c.Close() //nolint:errcheck
		return nil, fmt.Errorf("starting in-process client: %w", err)
	}
	if _, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      mcp.Implementation{Name: cliName, Version: linstor.Version},
		},
	}); err != nil {
		c.Close() //nolint:errcheck
		return nil, fmt.Errorf("initializing in-process client: %w", err)
	}
	return c, nil
}
