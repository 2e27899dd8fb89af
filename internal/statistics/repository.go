package statistics

import (
	"encoding/json"
	"fmt"

	"bandup/internal/store"
)

const snapshotKey = "statistics"

// Repository persists the statistics snapshot in the blob store.
type Repository struct {
	store store.Store
}

func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Load reads the saved snapshot. A store without one yet yields an
// empty snapshot.
func (repository *Repository) Load() (Snapshot, error) {
	data, found, err := repository.store.Get(snapshotKey)
	if err != nil {
		return Snapshot{}, fmt.Errorf("store.Get > %w", err)
	}
	if !found {
		return Snapshot{Version: schemaVersion}, nil
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("json.Unmarshal > %w", err)
	}
	snapshot.Version = schemaVersion
	return snapshot, nil
}

func (repository *Repository) Save(snapshot Snapshot) error {
	snapshot.Version = schemaVersion
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent > %w", err)
	}
	if err := repository.store.Set(snapshotKey, data); err != nil {
		return fmt.Errorf("store.Set > %w", err)
	}
	return nil
}
