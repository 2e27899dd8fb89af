package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	tests := []struct {
		name    string
		newFunc func(t *testing.T) Store
	}{
		{
			name: "file store",
			newFunc: func(t *testing.T) Store {
				fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
				require.NoError(t, err)
				return fileStore
			},
		},
		{
			name: "sqlite store",
			newFunc: func(t *testing.T) Store {
				sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bandup.db"))
				require.NoError(t, err)
				return sqliteStore
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.newFunc(t)
			defer func() {
				assert.NoError(t, s.Close())
			}()

			_, found, err := s.Get("vocabulary")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, s.Set("vocabulary", []byte(`{"version":1}`)))
			value, found, err := s.Get("vocabulary")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []byte(`{"version":1}`), value)

			require.NoError(t, s.Set("vocabulary", []byte(`{"version":2}`)))
			value, found, err = s.Get("vocabulary")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []byte(`{"version":2}`), value, "a second write replaces the value")

			_, found, err = s.Get("statistics")
			require.NoError(t, err)
			assert.False(t, found, "keys are independent")
		})
	}
}

func TestFileStore_NoLeftoverTempFile(t *testing.T) {
	rootDir := filepath.Join(t.TempDir(), "data")
	fileStore, err := NewFileStore(rootDir)
	require.NoError(t, err)
	defer fileStore.Close()

	require.NoError(t, fileStore.Set("vocabulary", []byte("{}")))

	entries, err := os.ReadDir(rootDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "vocabulary.json", entries[0].Name())
}
