package main

import (
	"fmt"

	"bandup/internal/config"
	"bandup/internal/inference/openai"
	"bandup/internal/statistics"
	"bandup/internal/store"
	"bandup/internal/vocab"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return store.NewSQLiteStore(cfg.Storage.SQLitePath)
	default:
		return store.NewFileStore(cfg.Storage.Directory)
	}
}

func newRepositories(cfg *config.Config) (store.Store, *vocab.Repository, *statistics.Repository, error) {
	blobStore, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open the %s store: %w", cfg.Storage.Backend, err)
	}
	return blobStore, vocab.NewRepository(blobStore), statistics.NewRepository(blobStore), nil
}

func newInferenceClient(cfg *config.Config) (*openai.Client, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return openai.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		openai.WithBaseURL(cfg.OpenAI.BaseURL),
		openai.WithMaxRetries(cfg.Practice.MaxRetries),
	), nil
}
