package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rangelab/rangebridge/internal/mcpserver/client"
	"github.com/rangelab/rangebridge/internal/mcpserver/config"
	"github.com/rangelab/rangebridge/internal/mcpserver/creds"
	"github.com/rangelab/rangebridge/internal/mcpserver/jobs"
	"github.com/rangelab/rangebridge/internal/mcpserver/server"
	"github.com/rangelab/rangebridge/internal/mcpserver/tools"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func startCmd() *cobra.Command {
	var transport string
	var port int
	var debug bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the bridge server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// CLI flags override file/env config before validation
			if cmd.Flags().Changed("transport") {
				cfg.Transport = transport
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if debug {
				cfg.Debug = true
				cfg.LogLevel = "debug"
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			setupLogging(cfg)
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "transport mode: stdio or sse")
	cmd.Flags().IntVar(&port, "port", 8080, "listen port for the sse transport")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd
}

// credentialsPath resolves where the credential store lives
func credentialsPath(cfg *config.Config) string {
	if cfg.CredentialsPath != "" {
		return cfg.CredentialsPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rangebridge-credentials.json"
	}
	return home + "/.rangebridge/credentials.json"
}

// newDispatcher wires the registry, credential store, and adapter factory
func newDispatcher(cfg *config.Config) (*server.Dispatcher, error) {
	registry := tools.NewRegistry()
	tools.RegisterAll(registry)

	store := creds.NewStore(credentialsPath(cfg))
	factory := func(c creds.Credentials) client.RangeAPI {
		return client.NewHTTPClient(cfg.APIBaseURL, c)
	}

	return server.NewDispatcher(registry, store, factory, jobs.DefaultPollInterval)
}

// runServer runs the selected transport until it finishes or a termination
// signal cancels the context. The transport serves on its own goroutine; the
// single-slot error channel and the context are the only exit paths, first
// signal wins.
func runServer(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher, err := newDispatcher(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dispatcher: %w", err)
	}

	srv := server.NewServer(dispatcher)

	var transport server.Transport
	switch cfg.Transport {
	case config.TransportStdio:
		transport = server.NewStdioTransport(srv, os.Stdin, os.Stdout)
	case config.TransportSSE:
		transport = server.NewSSETransport(srv, cfg.Port, config.ShutdownGrace())
	default:
		return config.ErrInvalidTransport
	}

	log.Info().
		Str("version", version).
		Str("transport", cfg.Transport).
		Str("apiBaseUrl", cfg.APIBaseURL).
		Str("identity", dispatcher.Identity().Role()).
		Msg("starting range bridge")

	errCh := make(chan error, 1)
	go func() {
		errCh <- transport.Run(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("transport failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		// Let the transport unwind within its grace period
		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("transport failed during shutdown: %w", err)
			}
		case <-time.After(config.ShutdownGrace() + time.Second):
			log.Warn().Msg("transport did not stop within grace period")
		}
		log.Info().Msg("range bridge stopped")
		return nil
	}
}
