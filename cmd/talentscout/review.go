package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/talentscout-ai/talentscout/internal/store"
	"github.com/talentscout-ai/talentscout/internal/ui"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse recorded screening sessions (TUI)",
	Long:  "Opens the session browser: a list of completed screenings with a detail view showing the candidate's profile, questions, and answers.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	if err := ui.RunReview(sqlStore); err != nil {
		logger.Error("review TUI failed", "error", err)
		os.Exit(1)
	}
	return nil
}
