package vocab

import (
	"strings"
	"time"

	"bandup/internal/inference"
)

// Collection is the full set of a user's saved vocabulary items.
type Collection struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

// Contains reports whether a word is already saved, compared
// case-insensitively.
func (collection *Collection) Contains(word string) bool {
	for _, item := range collection.Items {
		if strings.EqualFold(item.Word, word) {
			return true
		}
	}
	return false
}

// AddFromFeedback saves every suggested alternative from the feedback's
// upgrades, skipping words already in the collection. It returns the
// items that were added.
func (collection *Collection) AddFromFeedback(feedback inference.Feedback, now time.Time) []Item {
	var added []Item
	for _, upgrade := range feedback.Upgrades {
		for _, alternative := range upgrade.Alternatives {
			if alternative.Word == "" || collection.Contains(alternative.Word) {
				continue
			}
			item := NewItem(upgrade, alternative, now)
			collection.Items = append(collection.Items, item)
			added = append(added, item)
		}
	}
	return added
}

// Update replaces the stored item with the same ID. It returns false
// when no item matches.
func (collection *Collection) Update(updated Item) bool {
	for i, item := range collection.Items {
		if item.ID == updated.ID {
			collection.Items[i] = updated
			return true
		}
	}
	return false
}
