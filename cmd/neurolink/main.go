package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/neurolink/internal/config"
	"github.com/PabloGalante/neurolink/internal/observability"
)

var (
	// Global flags
	logLevel string
	useMock  bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "neurolink",
	Short: "Neurolink - a supportive chat companion for students",
	Long: `Neurolink answers students in a warm, peer-like voice, flags crisis and
coping-tip replies, and keeps a simple mood journal.

Configuration comes from NEUROLINK_* environment variables; the backend
credential is read from GOOGLE_API_KEY.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if cmd.Flags().Changed("mock") {
			loaded.UseMockLLM = useMock
		}
		cfg = loaded

		// chat owns stdout, logs go to stderr there
		observability.Init(os.Stderr, cfg.LogLevel)
		observability.Logger().Debug("config loaded", "config", cfg.String())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "answer with the offline mock client")

	rootCmd.AddCommand(serveCmd, chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
