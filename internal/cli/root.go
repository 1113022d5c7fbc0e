package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rangelab/rangebridge/internal/mcpserver/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const version = "0.2.0"

type rootFlags struct {
	ConfigPath string
}

var rf rootFlags

// Execute runs the rangebridge CLI
func Execute() error {
	rootCmd := &cobra.Command{
		Use:           "rangebridge",
		Short:         "MCP bridge for the cyber-range management API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&rf.ConfigPath, "config", "", "path to configuration file (JSON)")

	rootCmd.AddCommand(startCmd())
	rootCmd.AddCommand(toolsCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd.Execute()
}

// loadConfig loads configuration from the --config path, the default
// location, or environment only. Validation is left to the caller so CLI
// flag overrides apply first.
func loadConfig() (*config.Config, error) {
	path := rf.ConfigPath
	if path == "" {
		if def := config.DefaultPath(); def != "" {
			if _, err := os.Stat(def); err == nil {
				path = def
			}
		}
	}

	if path == "" {
		return config.LoadFromEnvironment()
	}
	return config.Load(path)
}

// setupLogging configures the global logger. All output goes to stderr:
// stdout belongs to the stdio transport.
func setupLogging(cfg *config.Config) {
	zerolog.SetGlobalLevel(parseLogLevel(cfg.LogLevel))

	if cfg.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	} else {
		log.Logger = zerolog.New(os.Stderr).
			With().
			Timestamp().
			Logger()
	}
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rangebridge version %s\n", version)
		},
	}
}
