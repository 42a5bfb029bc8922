package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mathmystery/internal/app"
	"mathmystery/internal/auth"
	"mathmystery/internal/llm"
	"mathmystery/internal/logging"
	"mathmystery/internal/question"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	log := logging.Discard()
	if logPath, err := logging.DefaultLogPath(); err == nil {
		log = logging.New(logPath)
	}

	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Questions will come from the built-in bank.")
		// An empty mock always errors, which routes every request to
		// the fallback content.
		provider = llm.NewMockProvider()
	}

	return app.Run(app.Options{
		Store:     st,
		Auth:      auth.New(st, log),
		Questions: question.NewService(provider, log),
		Log:       log,
	})
}
