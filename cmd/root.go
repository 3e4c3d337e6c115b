// Package cmd contains the CLI commands.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/guruchat/guru/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "guru",
	Short: "Guru - persona chat API server",
	Long: `Guru serves AI chat personas over an HTTP API.

Each persona answers in its own voice through a structured reasoning
protocol, streaming intermediate steps to the client as Server-Sent
Events. Run "guru serve" to start the API server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger.
// DEBUG (any value) enables debug level; logs go to stderr.
func newLogger() log.Logger {
	return log.NewWithWriter(os.Stderr, log.Config{
		Level: logLevel(),
		JSON:  os.Getenv("GURU_LOG_JSON") != "",
	})
}

func logLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
