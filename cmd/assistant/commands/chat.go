// ABOUTME: Chat command runs an interactive console session with the assistant
// ABOUTME: Wires the LLM client, function registry, and storage backend together
package commands

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BigLebowskii/ai-voice-assistant/internal/agent"
	"github.com/BigLebowskii/ai-voice-assistant/internal/config"
	"github.com/BigLebowskii/ai-voice-assistant/internal/functions"
	"github.com/BigLebowskii/ai-voice-assistant/internal/llm"
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive assistant session",
		Long: `Start an interactive assistant session on the console.

The model answers each turn and may call assistant functions to read or
update the user's profile, conversations, tasks, contacts, and settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, userID)
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "default_user", "User ID for the session")

	return cmd
}

func runChat(cmd *cobra.Command, userID string) error {
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set")
	}

	store, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("opening storage backend: %w", err)
	}
	defer func() { _ = store.Close() }()

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		return fmt.Errorf("creating LLM client: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := functions.New(store)
	return agent.New(client, registry, userID).Run(ctx)
}
