package vocab

import (
	"encoding/json"
	"fmt"
	"time"
)

// schemaVersion is stamped into every encoded collection. Older blobs
// without some fields still decode; the defaults below fill them in.
const schemaVersion = 1

// EncodeCollection serializes the collection for the blob store.
func EncodeCollection(collection Collection) ([]byte, error) {
	collection.Version = schemaVersion
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent > %w", err)
	}
	return data, nil
}

// DecodeCollection parses a stored collection, filling defaults for
// fields absent in blobs written by older versions. Items missing an ID
// or a word are rejected rather than silently coerced.
func DecodeCollection(data []byte, now time.Time) (Collection, error) {
	var collection Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		return Collection{}, fmt.Errorf("json.Unmarshal > %w", err)
	}
	for i, item := range collection.Items {
		normalized, err := normalizeItem(item, now)
		if err != nil {
			return Collection{}, fmt.Errorf("item %d: %w", i, err)
		}
		collection.Items[i] = normalized
	}
	collection.Version = schemaVersion
	return collection, nil
}

func normalizeItem(item Item, now time.Time) (Item, error) {
	if item.ID == "" {
		return Item{}, fmt.Errorf("missing id for word %q", item.Word)
	}
	if item.Word == "" {
		return Item{}, fmt.Errorf("missing word for id %q", item.ID)
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = now
	}
	if item.ReviewIntervalSeconds <= 0 {
		item.ReviewIntervalSeconds = InitialInterval.Seconds()
	}
	if item.NextReviewAt.IsZero() {
		item.NextReviewAt = item.AddedAt.Add(InitialInterval)
	}
	return item, nil
}
