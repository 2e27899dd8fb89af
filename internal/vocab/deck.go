package vocab

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// deck is the YAML document used for exporting and importing
// vocabulary between installations.
type deck struct {
	Version int    `yaml:"version"`
	Items   []Item `yaml:"items"`
}

// EncodeDeck serializes items as a shareable YAML deck.
func EncodeDeck(items []Item) ([]byte, error) {
	data, err := yaml.Marshal(deck{Version: schemaVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("yaml.Marshal > %w", err)
	}
	return data, nil
}

// DecodeDeck parses a YAML deck, applying the same defaults as the
// blob store decoder.
func DecodeDeck(data []byte, now time.Time) ([]Item, error) {
	var d deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal > %w", err)
	}
	for i, item := range d.Items {
		normalized, err := normalizeItem(item, now)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		d.Items[i] = normalized
	}
	return d.Items, nil
}

// Merge adds the imported items to the collection, skipping words that
// are already saved. It returns how many items were added.
func (collection *Collection) Merge(items []Item) int {
	added := 0
	for _, item := range items {
		if item.Word == "" || collection.Contains(item.Word) {
			continue
		}
		collection.Items = append(collection.Items, item)
		added++
	}
	return added
}
