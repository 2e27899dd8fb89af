package vocab

import "time"

const day = 24 * time.Hour

// InitialInterval is the first review interval for a new or reset item.
const InitialInterval = day

// masteredInterval is the terminal ladder rung. Reaching it marks the
// item as mastered.
const masteredInterval = 60 * day

// nextInterval advances the review interval along the fixed ladder
// 1d, 3d, 7d, 14d, 30d, 60d. The jump is determined by banding the
// current interval, so an item sitting between rungs still lands on a
// ladder value: 4 days advances to 7 days, not 14.
func nextInterval(current time.Duration) time.Duration {
	switch {
	case current < 2*day:
		return 3 * day
	case current < 5*day:
		return 7 * day
	case current < 10*day:
		return 14 * day
	case current < 20*day:
		return 30 * day
	default:
		return masteredInterval
	}
}

// RecordOutcome returns the item's review state after one correct or
// incorrect answer. A correct answer advances the interval ladder and
// marks the item mastered at the terminal rung; an incorrect answer
// resets the item to the initial interval and clears mastery.
func RecordOutcome(item Item, correct bool, now time.Time) Item {
	if correct {
		interval := nextInterval(item.interval())
		item.ReviewIntervalSeconds = interval.Seconds()
		item.Mastered = interval == masteredInterval
		item.NextReviewAt = now.Add(interval)
	} else {
		item.ReviewIntervalSeconds = InitialInterval.Seconds()
		item.Mastered = false
		item.NextReviewAt = now.Add(InitialInterval)
	}
	reviewedAt := now
	item.LastReviewedAt = &reviewedAt
	return item
}
