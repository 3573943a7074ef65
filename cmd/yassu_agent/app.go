package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/yassu-studio/internal/archive"
	"github.com/jonathan/yassu-studio/internal/config"
	"github.com/jonathan/yassu-studio/internal/db"
	"github.com/jonathan/yassu-studio/internal/llm"
	"github.com/jonathan/yassu-studio/internal/matching"
	"github.com/jonathan/yassu-studio/internal/refinement"
	"github.com/jonathan/yassu-studio/internal/workflows"
)

// loadConfig loads the config file named by --config merged with the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// newLLMClient creates the configured provider client, paced when a request rate is set.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is required (set GEMINI_API_KEY or OPENAI_API_KEY)")
	}
	client, err := llm.NewClient(ctx, cfg.LLM.ClientConfig(), cfg.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return llm.RateLimited(client, cfg.LLM.RequestsPerMinute, 1), nil
}

// openStore connects to PostgreSQL.
func openStore(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	store, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return store, nil
}

// newArchiver returns the S3 archive, or nil when no endpoint is configured.
func newArchiver(cfg *config.Config) (workflows.Archiver, error) {
	if !cfg.Archive.Enabled() {
		return nil, nil
	}
	s3, err := archive.NewS3Store(archive.S3Config{
		Endpoint:  cfg.Archive.Endpoint,
		Region:    cfg.Archive.Region,
		AccessKey: cfg.Archive.AccessKey,
		SecretKey: cfg.Archive.SecretKey,
		Bucket:    cfg.Archive.Bucket,
		UseSSL:    cfg.Archive.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	return s3, nil
}

func newRefiner(client llm.Client) *refinement.Engine {
	return refinement.NewEngine(client, refinement.Options{Logger: slog.Default()})
}

func newOrchestrator(client llm.Client, store workflows.Store, archiver workflows.Archiver, cfg *config.Config) *workflows.Orchestrator {
	return workflows.NewOrchestrator(client, store, workflows.Options{
		Concurrency: cfg.Workflow.Concurrency,
		BatchDelay:  cfg.Workflow.BatchDelay(),
		Archiver:    archiver,
		Logger:      slog.Default(),
	})
}

func newMatcher(client llm.Client, cfg *config.Config) *matching.Engine {
	return matching.NewEngine(client, matching.Options{
		MaxMatches:    cfg.Matching.MaxMatches,
		SearchBaseURL: cfg.Matching.SearchBaseURL,
		Logger:        slog.Default(),
	})
}
