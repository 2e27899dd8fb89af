package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		wantErr           bool
		wantErrorContains []string
		want              *Config
	}{
		{
			name: "valid config file with custom values",
			configContent: `openai:
  model: gpt-4o
storage:
  backend: sqlite
  sqlite_path: custom/bandup.db
practice:
  default_topic: travel
  default_band: "7.0"
`,
			want: &Config{
				OpenAI: OpenAIConfig{
					Model:   "gpt-4o",
					BaseURL: "https://api.openai.com/v1",
				},
				Storage: StorageConfig{
					Backend:    "sqlite",
					Directory:  filepath.Join("data", "bandup"),
					SQLitePath: "custom/bandup.db",
				},
				Practice: PracticeConfig{
					DefaultTopic: "travel",
					DefaultBand:  "7.0",
					MaxRetries:   2,
				},
			},
		},
		{
			name:          "empty config uses defaults",
			configContent: "",
			want: &Config{
				OpenAI: OpenAIConfig{
					Model:   "gpt-4o-mini",
					BaseURL: "https://api.openai.com/v1",
				},
				Storage: StorageConfig{
					Backend:    "file",
					Directory:  filepath.Join("data", "bandup"),
					SQLitePath: filepath.Join("data", "bandup.db"),
				},
				Practice: PracticeConfig{
					DefaultTopic: "daily life",
					DefaultBand:  "6.5",
					MaxRetries:   2,
				},
			},
		},
		{
			name: "environment variables override file values",
			configContent: `openai:
  model: gpt-4o
`,
			env: map[string]string{
				"OPENAI_API_KEY":  "env-key",
				"OPENAI_MODEL":    "gpt-4o-mini",
				"OPENAI_BASE_URL": "http://localhost:8080/v1",
			},
			want: &Config{
				OpenAI: OpenAIConfig{
					APIKey:  "env-key",
					Model:   "gpt-4o-mini",
					BaseURL: "http://localhost:8080/v1",
				},
				Storage: StorageConfig{
					Backend:    "file",
					Directory:  filepath.Join("data", "bandup"),
					SQLitePath: filepath.Join("data", "bandup.db"),
				},
				Practice: PracticeConfig{
					DefaultTopic: "daily life",
					DefaultBand:  "6.5",
					MaxRetries:   2,
				},
			},
		},
		{
			name: "invalid YAML format",
			configContent: `openai:
  model: gpt-4o
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
			},
		},
		{
			name: "unknown storage backend",
			configContent: `storage:
  backend: redis
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"backend",
			},
		},
		{
			name: "max retries out of range",
			configContent: `practice:
  max_retries: 9
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"max_retries",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Shield the test from ambient credentials. Viper ignores
			// empty environment values unless AllowEmptyEnv is set.
			for _, key := range []string{"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL"} {
				t.Setenv(key, "")
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			configFile := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.configContent), 0o644))

			loader, err := NewConfigLoader(configFile)
			require.NoError(t, err)

			got, err := loader.Load()
			if tt.wantErr {
				require.Error(t, err)
				for _, fragment := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), fragment)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
