package mcpserve

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/beornf/linstor-api-go/pkg/linstor"
)

type toolSpec struct {
	tool    mcp.Tool
	handler queryFunc
}

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var resultsSchema = mcp.ToolOutputSchema{
	Type: "object",
	Properties: map[string]any{
		"results": map[string]any{"type": "array"},
	},
	Required: []string{"results"},
}

func newTool(name, description string, props map[string]any) mcp.Tool {
	if props == nil {
		props = map[string]any{}
	}
	return mcp.Tool{
		Name:         name,
		Description:  description,
		InputSchema:  mcp.ToolInputSchema{Type: "object", Properties: props},
		OutputSchema: resultsSchema,
	}
}

func (s *Server) tools() []toolSpec {
	return []toolSpec{
		{
			tool: newTool("node_list", "Lists the nodes of the cluster with their net interfaces", nil),
			handler: func(ctx context.Context, _ mcp.CallToolRequest) ([]linstor.Result, error) {
				return s.ctl.NodeList(ctx)
			},
		},
		{
			tool: newTool("storage_pool_list", "Lists storage pools, optionally filtered by node and pool name",
				map[string]any{"nodes": stringList, "storage_pools": stringList}),
			handler: func(ctx context.Context, req mcp.CallToolRequest) ([]linstor.Result, error) {
				return s.ctl.StoragePoolList(ctx, req.GetStringSlice("nodes", nil), req.GetStringSlice("storage_pools", nil))
			},
		},
		{
			tool: newTool("resource_list", "Lists resources with their volumes, optionally filtered by node and resource name",
				map[string]any{"nodes": stringList, "resources": stringList}),
			handler: func(ctx context.Context, req mcp.CallToolRequest) ([]linstor.Result, error) {
				return s.ctl.ResourceList(ctx, req.GetStringSlice("nodes", nil), req.GetStringSlice("resources", nil))
			},
		},
		{
			tool: newTool("resource_definition_list", "Lists resource definitions",
				map[string]any{"with_volume_definitions": map[string]any{"type": "boolean"}}),
			handler: func(ctx context.Context, req mcp.CallToolRequest) ([]linstor.Result, error) {
				return s.ctl.ResourceDefinitionList(ctx, req.GetBool("with_volume_definitions", false))
			},
		},
		{
			tool: newTool("resource_group_list", "Lists resource groups", nil),
			handler: func(ctx context.Context, _ mcp.CallToolRequest) ([]linstor.Result, error) {
				return s.ctl.ResourceGroupList(ctx)
			},
		},
		{
			tool: newTool("snapshot_list", "Lists the snapshots of every resource definition", nil),
			handler: func(ctx context.Context, _ mcp.CallToolRequest) ([]linstor.Result, error) {
				return s.ctl.SnapshotDefinitionList(ctx)
			},
		},
		{
			tool: newTool("error_report_list", "Lists error reports, by node or by report id",
				map[string]any{
					"nodes":        stringList,
					"ids":          stringList,
					"with_content": map[string]any{"type": "boolean"},
				}),
			handler: func(ctx context.Context, req mcp.CallToolRequest) ([]linstor.Result, error) {
				return s.ctl.ErrorReportList(ctx, linstor.ErrorReportFilter{
					Nodes:       req.GetStringSlice("nodes", nil),
					IDs:         req.GetStringSlice("ids", nil),
					WithContent: req.GetBool("with_content", false),
				})
			},
		},
		{
			tool: newTool("controller_version", "Returns the controller version and REST API version", nil),
			handler: func(ctx context.Context, _ mcp.CallToolRequest) ([]linstor.Result, error) {
				v, err := s.ctl.FetchControllerVersion(ctx)
				if err != nil {
					return nil, err
				}
				return []linstor.Result{v}, nil
			},
		},
		{
			tool: newTool("key_value_store_list", "Lists key value stores, or a single instance",
				map[string]any{"instance": map[string]any{"type": "string"}}),
			handler: func(ctx context.Context, req mcp.CallToolRequest) ([]linstor.Result, error) {
				kvs, err := s.ctl.KeyValueStores(ctx)
				if err != nil {
					return nil, err
				}
				if name := req.GetString("instance", ""); name != "" {
					return []linstor.Result{&linstor.KeyValueStoresResponse{
						Stores: []linstor.KeyValueStore{*kvs.Instance(name)},
					}}, nil
				}
				return []linstor.Result{kvs}, nil
			},
		},
	}
}
