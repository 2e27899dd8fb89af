package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandup/internal/config"
	"bandup/internal/store"
)

func TestOpenStore(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		checker func(t *testing.T, s store.Store)
	}{
		{
			name: "file backend",
			cfg: config.StorageConfig{
				Backend:   "file",
				Directory: filepath.Join(tempDir, "files"),
			},
			checker: func(t *testing.T, s store.Store) {
				assert.IsType(t, &store.FileStore{}, s)
			},
		},
		{
			name: "sqlite backend",
			cfg: config.StorageConfig{
				Backend:    "sqlite",
				SQLitePath: filepath.Join(tempDir, "bandup.db"),
			},
			checker: func(t *testing.T, s store.Store) {
				assert.IsType(t, &store.SQLiteStore{}, s)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := openStore(&config.Config{Storage: tt.cfg})
			require.NoError(t, err)
			defer func() {
				assert.NoError(t, s.Close())
			}()
			tt.checker(t, s)
		})
	}
}

func TestNewInferenceClient_RequiresAPIKey(t *testing.T) {
	_, err := newInferenceClient(&config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewInferenceClient(t *testing.T) {
	client, err := newInferenceClient(&config.Config{
		OpenAI: config.OpenAIConfig{
			APIKey:  "test-key",
			Model:   "gpt-4o-mini",
			BaseURL: "https://api.openai.com/v1",
		},
	})
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, client.Close())
	}()
	assert.Equal(t, "gpt-4o-mini", client.GetModel())
}
