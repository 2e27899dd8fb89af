package vocab

import (
	"fmt"
	"time"

	"bandup/internal/store"
)

const collectionKey = "vocabulary"

// Repository persists the vocabulary collection in the blob store.
type Repository struct {
	store store.Store
	now   func() time.Time
}

func NewRepository(s store.Store) *Repository {
	return &Repository{store: s, now: time.Now}
}

// Load reads the saved collection. A store without one yet yields an
// empty collection.
func (repository *Repository) Load() (Collection, error) {
	data, found, err := repository.store.Get(collectionKey)
	if err != nil {
		return Collection{}, fmt.Errorf("store.Get > %w", err)
	}
	if !found {
		return Collection{Version: schemaVersion}, nil
	}
	collection, err := DecodeCollection(data, repository.now())
	if err != nil {
		return Collection{}, fmt.Errorf("DecodeCollection > %w", err)
	}
	return collection, nil
}

func (repository *Repository) Save(collection Collection) error {
	data, err := EncodeCollection(collection)
	if err != nil {
		return fmt.Errorf("EncodeCollection > %w", err)
	}
	if err := repository.store.Set(collectionKey, data); err != nil {
		return fmt.Errorf("store.Set > %w", err)
	}
	return nil
}
