// ABOUTME: Registers every callable function as an MCP tool
// ABOUTME: One generic handler forwards argument bags to the registry
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/BigLebowskii/ai-voice-assistant/internal/functions"
)

// RegisterTools adds one tool per registry operation. Schemas come
// straight from the catalog, so the tool surface and the registry can
// never drift apart.
func RegisterTools(server *mcpserver.MCPServer, registry *functions.Registry) {
	for _, spec := range registry.Catalog() {
		server.AddTool(mcp.Tool{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: spec.Parameters.Properties,
				Required:   spec.Parameters.Required,
			},
		}, makeHandler(registry, spec.Name))
	}
}

// makeHandler bridges one named operation. Registry errors become tool
// error results, never transport errors, so the driver always gets a
// well-formed response it can reason about.
func makeHandler(registry *functions.Registry, name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := json.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		result, err := registry.Call(ctx, name, raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		payload, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
