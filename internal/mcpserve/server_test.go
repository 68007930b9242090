package mcpserve

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/beornf/linstor-api-go/pkg/linstor"
)

type stubController struct {
	mu        sync.Mutex
	nodes     []linstor.Result
	poolArgs  [][]string
	reportArg linstor.ErrorReportFilter
	err       error
}

func (s *stubController) NodeList(context.Context) ([]linstor.Result, error) {
	return s.nodes, s.err
}

func (s *stubController) StoragePoolList(_ context.Context, nodes, pools []string) ([]linstor.Result, error) {
	s.mu.Lock()
	s.poolArgs = [][]string{nodes, pools}
	s.mu.Unlock()
	return []linstor.Result{&linstor.StoragePoolListResponse{}}, s.err
}

func (s *stubController) ResourceList(context.Context, []string, []string) ([]linstor.Result, error) {
	return []linstor.Result{&linstor.ResourceResponse{}}, s.err
}

func (s *stubController) ResourceDefinitionList(context.Context, bool) ([]linstor.Result, error) {
	return []linstor.Result{&linstor.ResourceDefinitionResponse{}}, s.err
}

func (s *stubController) ResourceGroupList(context.Context) ([]linstor.Result, error) {
	return []linstor.Result{&linstor.ResourceGroupResponse{}}, s.err
}

func (s *stubController) SnapshotDefinitionList(context.Context) ([]linstor.Result, error) {
	return []linstor.Result{&linstor.SnapshotResponse{}}, s.err
}

func (s *stubController) ErrorReportList(_ context.Context, filter linstor.ErrorReportFilter) ([]linstor.Result, error) {
	s.mu.Lock()
	s.reportArg = filter
	s.mu.Unlock()
	return nil, s.err
}

func (s *stubController) FetchControllerVersion(context.Context) (*linstor.ControllerVersion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &linstor.ControllerVersion{Version: "1.4.2", RESTAPIVersion: "1.0.4"}, nil
}

func (s *stubController) KeyValueStores(context.Context) (*linstor.KeyValueStoresResponse, error) {
	return &linstor.KeyValueStoresResponse{Stores: []linstor.KeyValueStore{
		{Name: "cinder", Props: map[string]string{"a": "b"}},
		{Name: "other", Props: map[string]string{}},
	}}, s.err
}

func startClient(t *testing.T, ctl Controller) *mcpclient.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv := New(ctl, "linstor-mcp-test", "0.0.0", logrus.New())
	httpServer := server.NewTestStreamableHTTPServer(srv.MCPServer())
	t.Cleanup(httpServer.Close)

	c, err := mcpclient.NewStreamableHttpClient(httpServer.URL)
	if err != nil {
		t.Fatalf("NewStreamableHttpClient() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: "2025-11-25",
			ClientInfo:      mcp.Implementation{Name: "linstor-mcp-test", Version: "0.0.0"},
		},
	}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return c
}

func callTool(t *testing.T, c *mcpclient.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	if err != nil {
		t.Fatalf("CallTool(%s) error = %v", name, err)
	}
	return result
}

func structuredResults(t *testing.T, result *mcp.CallToolResult) []any {
	t.Helper()
	typed, ok := result.StructuredContent.(map[string]any)
	if !ok {
		t.Fatalf("StructuredContent type = %T, want map[string]any", result.StructuredContent)
	}
	results, ok := typed["results"].([]any)
	if !ok {
		t.Fatalf("results type = %T, want []any", typed["results"])
	}
	return results
}

func TestListToolsRegistersEveryQuery(t *testing.T) {
	c := startClient(t, &stubController{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	listed, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}

	var names []string
	for _, tool := range listed.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{
		"controller_version", "error_report_list", "key_value_store_list", "node_list",
		"resource_definition_list", "resource_group_list", "resource_list", "snapshot_list",
		"storage_pool_list",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("tools = %v, want %v", names, want)
	}
}

func TestNodeListRendersResults(t *testing.T) {
	ctl := &stubController{nodes: []linstor.Result{&linstor.NodeListResponse{
		Nodes: []linstor.Node{{Name: "alpha", Type: linstor.NodeTypeSatellite}},
	}}}
	c := startClient(t, ctl)

	result := callTool(t, c, "node_list", nil)
	if result.IsError {
		t.Fatal("IsError = true, want false")
	}
	results := structuredResults(t, result)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	nodes := results[0].(map[string]any)["nodes"].([]any)
	if got := nodes[0].(map[string]any)["name"]; got != "alpha" {
		t.Fatalf("node name = %v, want alpha", got)
	}
}

func TestStoragePoolListPassesFilters(t *testing.T) {
	ctl := &stubController{}
	c := startClient(t, ctl)

	callTool(t, c, "storage_pool_list", map[string]any{
		"nodes":         []any{"a", "b"},
		"storage_pools": []any{"p1"},
	})

	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if got := strings.Join(ctl.poolArgs[0], ","); got != "a,b" {
		t.Fatalf("nodes = %q, want %q", got, "a,b")
	}
	if got := strings.Join(ctl.poolArgs[1], ","); got != "p1" {
		t.Fatalf("storage_pools = %q, want %q", got, "p1")
	}
}

func TestErrorReportListPassesFilter(t *testing.T) {
	ctl := &stubController{}
	c := startClient(t, ctl)

	result := callTool(t, c, "error_report_list", map[string]any{
		"ids":          []any{"5F1A-000001"},
		"with_content": true,
	})
	if got := structuredResults(t, result); len(got) != 0 {
		t.Fatalf("results = %v, want empty", got)
	}

	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if len(ctl.reportArg.IDs) != 1 || !ctl.reportArg.WithContent {
		t.Fatalf("filter = %+v, want one id with content", ctl.reportArg)
	}
}

func TestErrorReplyMarksResultAsError(t *testing.T) {
	ctl := &stubController{nodes: []linstor.Result{
		&linstor.APICallResponse{RetCode: linstor.MaskError | 1, Message: "access denied"},
	}}
	c := startClient(t, ctl)

	result := callTool(t, c, "node_list", nil)
	if !result.IsError {
		t.Fatal("IsError = false, want true")
	}
	reply := structuredResults(t, result)[0].(map[string]any)
	if reply["message"] != "access denied" {
		t.Fatalf("message = %v, want %q", reply["message"], "access denied")
	}
}

func TestClientFailureBecomesToolError(t *testing.T) {
	ctl := &stubController{err: errors.New("unable to connect to linstor://ctrl")}
	c := startClient(t, ctl)

	result := callTool(t, c, "controller_version", nil)
	if !result.IsError {
		t.Fatal("IsError = false, want true")
	}
	if len(result.Content) != 1 {
		t.Fatalf("len(Content) = %d, want 1", len(result.Content))
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok || !strings.Contains(text.Text, "unable to connect") {
		t.Fatalf("content = %#v, want connect error text", result.Content[0])
	}
}

func TestKeyValueStoreListSelectsInstance(t *testing.T) {
	c := startClient(t, &stubController{})

	result := callTool(t, c, "key_value_store_list", map[string]any{"instance": "cinder"})
	stores := structuredResults(t, result)[0].(map[string]any)["key_value_stores"].([]any)
	if len(stores) != 1 {
		t.Fatalf("len(stores) = %d, want 1", len(stores))
	}
	if got := stores[0].(map[string]any)["name"]; got != "cinder" {
		t.Fatalf("store = %v, want cinder", got)
	}
}
