package vocab

import (
	"math/rand"
	"time"
)

const (
	// DefaultSessionFallbackSize is how many items a session contains when
	// nothing is due yet.
	DefaultSessionFallbackSize = 10
	// DefaultSessionDueCap bounds how many due items one session covers.
	DefaultSessionDueCap = 20
)

// SelectDue returns the items whose next review time has passed.
func SelectDue(items []Item, now time.Time) []Item {
	var due []Item
	for _, item := range items {
		if !item.NextReviewAt.After(now) {
			due = append(due, item)
		}
	}
	return due
}

// SelectSession picks the items for one review session: due items,
// shuffled and capped. When nothing is due, a slice of arbitrary items
// from the collection is returned instead so a session always has
// content when any vocabulary is saved.
func SelectSession(items []Item, now time.Time) []Item {
	session := SelectDue(items, now)
	limit := DefaultSessionDueCap
	if len(session) == 0 {
		session = append([]Item(nil), items...)
		limit = DefaultSessionFallbackSize
	}
	rand.Shuffle(len(session), func(i, j int) {
		session[i], session[j] = session[j], session[i]
	})
	if len(session) > limit {
		session = session[:limit]
	}
	return session
}

// MasteredCount returns how many items have reached the terminal
// review interval.
func MasteredCount(items []Item) int {
	count := 0
	for _, item := range items {
		if item.Mastered {
			count++
		}
	}
	return count
}
