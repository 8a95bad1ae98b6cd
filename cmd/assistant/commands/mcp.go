// ABOUTME: MCP command starts the Model Context Protocol tool server
// ABOUTME: Exposes the callable function catalog to external drivers over stdio
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BigLebowskii/ai-voice-assistant/internal/config"
	"github.com/BigLebowskii/ai-voice-assistant/internal/functions"
	"github.com/BigLebowskii/ai-voice-assistant/internal/mcp"
)

// NewMCPCmd creates the MCP command.
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for conversational drivers",
		Long: `Start MCP server for conversational drivers.

Exposes the assistant's callable functions (profiles, conversations,
tasks, contacts, settings) as MCP tools over stdio, so any MCP-capable
model runtime can drive them.`,
		RunE: runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("opening storage backend: %w", err)
	}
	defer func() { _ = store.Close() }()

	registry := functions.New(store)
	server := mcp.NewServer(registry, versionInfo.Version)

	if !quiet {
		log.Println("assistant MCP server starting on stdio...")
	}
	return mcp.ServeStdio(server)
}
