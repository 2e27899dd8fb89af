// Package statistics aggregates practice and review activity over time.
package statistics

import (
	"fmt"
	"sort"
	"time"
)

const schemaVersion = 1

// MonthlyStatistics holds activity counts for one month.
type MonthlyStatistics struct {
	Period             string  `json:"period"` // "2025-06"
	SentencesPracticed int     `json:"sentencesPracticed"`
	EvaluationsScored  int     `json:"evaluationsScored"`
	BandSum            float64 `json:"bandSum"`
	ReviewsCorrect     int     `json:"reviewsCorrect"`
	ReviewsWrong       int     `json:"reviewsWrong"`
}

// Snapshot is the persisted statistics blob.
type Snapshot struct {
	Version            int                           `json:"version"`
	SentencesPracticed int                           `json:"sentencesPracticed"`
	EvaluationsScored  int                           `json:"evaluationsScored"`
	BandSum            float64                       `json:"bandSum"`
	ReviewsCorrect     int                           `json:"reviewsCorrect"`
	ReviewsWrong       int                           `json:"reviewsWrong"`
	Months             map[string]*MonthlyStatistics `json:"months,omitempty"`
	UpdatedAt          time.Time                     `json:"updatedAt"`
}

func period(now time.Time) string {
	return fmt.Sprintf("%d-%02d", now.Year(), int(now.Month()))
}

func (snapshot *Snapshot) month(now time.Time) *MonthlyStatistics {
	if snapshot.Months == nil {
		snapshot.Months = make(map[string]*MonthlyStatistics)
	}
	key := period(now)
	if snapshot.Months[key] == nil {
		snapshot.Months[key] = &MonthlyStatistics{Period: key}
	}
	return snapshot.Months[key]
}

// RecordGeneration counts one practice sentence shown to the user.
func (snapshot *Snapshot) RecordGeneration(now time.Time) {
	snapshot.SentencesPracticed++
	snapshot.month(now).SentencesPracticed++
	snapshot.UpdatedAt = now
}

// RecordEvaluation counts one scored translation and its overall band.
func (snapshot *Snapshot) RecordEvaluation(overallBand float64, now time.Time) {
	snapshot.EvaluationsScored++
	snapshot.BandSum += overallBand
	month := snapshot.month(now)
	month.EvaluationsScored++
	month.BandSum += overallBand
	snapshot.UpdatedAt = now
}

// RecordReview counts one review outcome.
func (snapshot *Snapshot) RecordReview(correct bool, now time.Time) {
	month := snapshot.month(now)
	if correct {
		snapshot.ReviewsCorrect++
		month.ReviewsCorrect++
	} else {
		snapshot.ReviewsWrong++
		month.ReviewsWrong++
	}
	snapshot.UpdatedAt = now
}

// AverageBand returns the mean overall band across all scored
// evaluations, or 0 when nothing has been scored yet.
func (snapshot *Snapshot) AverageBand() float64 {
	if snapshot.EvaluationsScored == 0 {
		return 0
	}
	return snapshot.BandSum / float64(snapshot.EvaluationsScored)
}

// ReviewAccuracy returns the fraction of review outcomes that were
// correct, or 0 when no reviews have happened.
func (snapshot *Snapshot) ReviewAccuracy() float64 {
	total := snapshot.ReviewsCorrect + snapshot.ReviewsWrong
	if total == 0 {
		return 0
	}
	return float64(snapshot.ReviewsCorrect) / float64(total)
}

// SortedMonths returns the monthly statistics newest first.
func (snapshot *Snapshot) SortedMonths() []MonthlyStatistics {
	months := make([]MonthlyStatistics, 0, len(snapshot.Months))
	for _, month := range snapshot.Months {
		months = append(months, *month)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Period > months[j].Period
	})
	return months
}
