package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/yassu-studio/internal/server"
	"github.com/jonathan/yassu-studio/internal/server/ratelimit"
)

var (
	servePort      int
	serveWhitelist string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for idea refinement, business plans and team matching.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVar(&serveWhitelist, "rate-limit-whitelist", "", "Comma-separated client IPs exempt from rate limiting")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	archiver, err := newArchiver(cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Server.Port,
		RateLimit: ratelimit.NewConfig(cfg.Server.RequestsPerMinute, cfg.Server.Burst, serveWhitelist),
	}, server.Deps{
		Store:   store,
		Refiner: newRefiner(client),
		Planner: newOrchestrator(client, store, archiver, cfg),
		Matcher: newMatcher(client, cfg),
		Logger:  slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
