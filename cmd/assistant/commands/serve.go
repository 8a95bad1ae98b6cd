// ABOUTME: Serve command runs the room token HTTP server
// ABOUTME: Issues access tokens for the realtime audio transport
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BigLebowskii/ai-voice-assistant/internal/api"
	"github.com/BigLebowskii/ai-voice-assistant/internal/config"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the token HTTP server",
		Long: `Start the HTTP server that issues room access tokens.

Frontend clients call GET /getToken?name=<identity>&room=<room> to join
the realtime audio room; a fresh room name is generated when none is
supplied.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return fmt.Errorf("LIVEKIT_API_KEY and LIVEKIT_API_SECRET must be set")
	}

	server := api.NewServer(api.Config{
		Addr:      cfg.ServerAddr,
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
		TokenTTL:  cfg.TokenTTL,
	})
	return server.ListenAndServe()
}
