// Package main provides the wellbeing engine CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xinkuaihuo/wellbeing-engine/internal/config"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
)

var (
	cfgFile    string
	outputJSON bool

	cfg    *config.Config
	logger *observability.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wellbeing-cli",
	Short: "Wellbeing engine CLI for chatting, indexing and lookups",
	Long: `Wellbeing engine CLI provides commands for working with the
conversational recommendation engine without running the API server.

Use this tool to:
- Chat with the engine in an interactive REPL
- Build and save the vector index for the content catalog
- Look up support-service points near an address
- Validate the keyword taxonomy file`,
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
			ServiceName: "wellbeing-cli",
		})

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newNearbyCmd())
	rootCmd.AddCommand(newKeywordsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
