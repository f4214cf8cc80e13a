package cmd

import (
	"github.com/abhisek/placeprep/internal/config"
	"github.com/abhisek/placeprep/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "placeprep",
	Short: "AI placement exam coach",
	Long:  "PlacePrep — AI-native terminal app that prepares students for placement exams with timed assessments, coding contests, and tier progression.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PLACEPREP_DB env var)")

	rootCmd.AddCommand(coachCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(contestCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
