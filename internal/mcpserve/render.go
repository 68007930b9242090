package mcpserve

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/beornf/linstor-api-go/pkg/linstor"
)

// renderResults returns {"results": [...]} as structured content. A status
// reply that signals an error marks the whole result as an error.
func renderResults(results []linstor.Result) *mcp.CallToolResult {
	if results == nil {
		results = []linstor.Result{}
	}
	out := mcp.NewToolResultStructuredOnly(map[string]any{"results": results})
	out.IsError = !linstor.AllNoError(results)
	return out
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: msg}},
	}
}
