package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mathmystery/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathmystery",
	Short: "Math quiz adventure for students",
	Long:  "Math Mystery is a terminal quiz game for students in grades 6-11, with AI-generated questions and a math oracle.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; env vars win either way.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHMYSTERY_DB env var)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then MATHMYSTERY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the path and opens the database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
