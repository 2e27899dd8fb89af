package statistics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandup/internal/store"
)

func TestSnapshot_Record(t *testing.T) {
	june := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	july := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	var snapshot Snapshot
	snapshot.RecordGeneration(june)
	snapshot.RecordEvaluation(6.5, june)
	snapshot.RecordGeneration(july)
	snapshot.RecordEvaluation(7.5, july)
	snapshot.RecordReview(true, july)
	snapshot.RecordReview(true, july)
	snapshot.RecordReview(false, july)

	assert.Equal(t, 2, snapshot.SentencesPracticed)
	assert.Equal(t, 2, snapshot.EvaluationsScored)
	assert.Equal(t, 7.0, snapshot.AverageBand())
	assert.InDelta(t, 2.0/3.0, snapshot.ReviewAccuracy(), 0.001)
	assert.Equal(t, july, snapshot.UpdatedAt)

	months := snapshot.SortedMonths()
	require.Len(t, months, 2)
	assert.Equal(t, "2025-07", months[0].Period, "newest month first")
	assert.Equal(t, 1, months[0].SentencesPracticed)
	assert.Equal(t, 2, months[0].ReviewsCorrect)
	assert.Equal(t, 1, months[0].ReviewsWrong)
	assert.Equal(t, "2025-06", months[1].Period)
	assert.Equal(t, 0, months[1].ReviewsCorrect)
}

func TestSnapshot_EmptyAverages(t *testing.T) {
	var snapshot Snapshot
	assert.Equal(t, 0.0, snapshot.AverageBand())
	assert.Equal(t, 0.0, snapshot.ReviewAccuracy())
	assert.Empty(t, snapshot.SortedMonths())
}

func TestRepository(t *testing.T) {
	fileStore, err := store.NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	defer fileStore.Close()

	repository := NewRepository(fileStore)

	snapshot, err := repository.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.EvaluationsScored)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot.RecordEvaluation(6.0, now)
	require.NoError(t, repository.Save(snapshot))

	loaded, err := repository.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.EvaluationsScored)
	assert.Equal(t, 6.0, loaded.AverageBand())
	require.Contains(t, loaded.Months, "2025-06")
}

func TestRepository_ToleratesOlderBlob(t *testing.T) {
	fileStore, err := store.NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	defer fileStore.Close()

	require.NoError(t, fileStore.Set("statistics", []byte(`{"sentencesPracticed":5}`)))

	loaded, err := NewRepository(fileStore).Load()
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.SentencesPracticed)
	assert.Equal(t, schemaVersion, loaded.Version)

	loaded.RecordReview(true, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, loaded.ReviewsCorrect, "missing months map is created on first use")
}
