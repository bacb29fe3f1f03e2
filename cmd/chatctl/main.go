// Package main provides the chatctl administration CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/junglore/chat-engine/internal/config"
	"github.com/junglore/chat-engine/internal/observability"
)

var (
	// Global flags
	cfgFile    string
	outputJSON bool

	// Configuration, logger, and UI shared by subcommands
	cfg    *config.Config
	logger *observability.Logger
	ui     *UI
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "chatctl",
	Short: "Administration CLI for the conversation engine",
	Long: `chatctl provides commands for operating the conversation engine.

Use this tool to:
- Verify database, document store, and cache connectivity
- Inspect expedition packages and published content
- Dry-run intent classification on sample messages

All commands support --json for automation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFormat := "console"
		if outputJSON {
			logFormat = "json"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       cfg.Observability.LogLevel,
			Format:      logFormat,
			ServiceName: "chatctl",
		})
		ui = NewUI(outputJSON)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(newCheckDBCmd())
	rootCmd.AddCommand(newPackagesCmd())
	rootCmd.AddCommand(newContentCmd())
	rootCmd.AddCommand(newClassifyCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
