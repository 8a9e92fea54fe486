package main

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/talentscout-ai/talentscout/internal/ai"
	"github.com/talentscout-ai/talentscout/internal/model"
	"github.com/talentscout-ai/talentscout/internal/session"
	"github.com/talentscout-ai/talentscout/internal/store"
	"github.com/talentscout-ai/talentscout/internal/ui"
)

var offline bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run an interactive screening session",
	Long:  "Starts the chat TUI: greeting, candidate intake form, AI-generated technical questions, and assessment. The session is stored on completion.",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&offline, "offline", false, "use the built-in question bank instead of the LLM; nothing is persisted")
	rootCmd.Flags().BoolVar(&offline, "offline", false, "use the built-in question bank instead of the LLM; nothing is persisted")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The missing-credential check happens before any UI comes up: a chat
	// that cannot reach the LLM is a startup error, not a mid-session one.
	if !offline {
		if err := cfg.RequireAPIKey(); err != nil {
			logger.Error("configuration error", "error", err)
			os.Exit(1)
		}
	}

	// The chat runs a TUI; any log output before the alt-screen starts
	// corrupts the display, so the generator gets a discard logger.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var generator model.QuestionGenerator
	var sessionStore model.SessionStore
	if offline {
		generator = ai.NewFallbackGenerator()
		sessionStore = store.NewNopStore()
	} else {
		httpClient := &http.Client{Timeout: cfg.AI.Timeout}
		provider := ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, httpClient)
		generator = ai.NewLLMQuestionGenerator(provider, ai.TechQuestionsTemplate, silentLogger)

		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		sessionStore = sqlStore
	}

	phase, err := ui.RunChat(ui.ChatOptions{
		Title:        cfg.Assistant.Title,
		Greeting:     cfg.Assistant.Greeting,
		ThankYou:     cfg.Assistant.ThankYou,
		ExitKeywords: cfg.ExitKeywords,
		Generator:    generator,
		Store:        sessionStore,
	})
	if err != nil {
		logger.Error("chat session failed", "error", err)
		os.Exit(1)
	}

	switch phase {
	case session.PhaseClosing:
		logger.Info("screening complete")
	case session.PhaseExited:
		logger.Info("candidate left early")
	default:
		logger.Info("session ended", "phase", phase.String())
	}
	return nil
}
