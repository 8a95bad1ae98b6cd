// ABOUTME: MCP server wiring for the assistant's callable functions
// ABOUTME: Exposes the registry catalog to external drivers over stdio
package mcp

import (
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/BigLebowskii/ai-voice-assistant/internal/functions"
)

// NewServer builds an MCP server exposing every registry operation as a
// tool.
func NewServer(registry *functions.Registry, version string) *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer("Voice Assistant Backend", version)
	RegisterTools(server, registry)
	return server
}

// ServeStdio runs the server over stdin/stdout until the driver hangs up.
func ServeStdio(server *mcpserver.MCPServer) error {
	return mcpserver.ServeStdio(server)
}
