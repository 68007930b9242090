// Package mcpserve exposes read-only controller queries as MCP tools.
package mcpserve

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/beornf/linstor-api-go/pkg/linstor"
)

// Controller is the part of the client the tools query. *linstor.Client and
// *linstor.Multi implement it.
type Controller interface {
	NodeList(ctx context.Context) ([]linstor.Result, error)
	StoragePoolList(ctx context.Context, nodes, pools []string) ([]linstor.Result, error)
	ResourceList(ctx context.Context, nodes, resources []string) ([]linstor.Result, error)
	ResourceDefinitionList(ctx context.Context, withVolumeDefinitions bool) ([]linstor.Result, error)
	ResourceGroupList(ctx context.Context) ([]linstor.Result, error)
	SnapshotDefinitionList(ctx context.Context) ([]linstor.Result, error)
	ErrorReportList(ctx context.Context, filter linstor.ErrorReportFilter) ([]linstor.Result, error)
	FetchControllerVersion(ctx context.Context) (*linstor.ControllerVersion, error)
	KeyValueStores(ctx context.Context) (*linstor.KeyValueStoresResponse, error)
}

// Server serves the controller tools. Calls into the controller are
// serialized because the client holds a single connection.
type Server struct {
	ctl Controller
	log logrus.FieldLogger

	mu  sync.Mutex
	mcp *server.MCPServer
}

// New builds the MCP server with every tool registered.
func New(ctl Controller, name, version string, log logrus.FieldLogger) *Server {
	s := &Server{
		ctl: ctl,
		log: log,
		mcp: server.NewMCPServer(name, version, server.WithToolCapabilities(false)),
	}
	for _, t := range s.tools() {
		s.mcp.AddTool(t.tool, s.wrap(t.tool.Name, t.handler))
	}
	return s
}

// MCPServer returns the underlying server for a transport to serve.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

type queryFunc func(ctx context.Context, req mcp.CallToolRequest) ([]linstor.Result, error)

// wrap serializes the query and renders its outcome.
func (s *Server) wrap(name string, query queryFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		results, err := query(ctx, req)
		s.mu.Unlock()

		log := s.log.WithField("tool", name)
		if err != nil {
			log.WithError(err).Warn("tool call failed")
			return errorResult(err.Error()), nil
		}
		log.WithField("results", len(results)).Debug("tool call")
		return renderResults(results), nil
	}
}
