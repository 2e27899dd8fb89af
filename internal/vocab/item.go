// Package vocab provides vocabulary item domain models and the spaced
// repetition scheduler.
package vocab

import (
	"time"

	"github.com/google/uuid"

	"bandup/internal/inference"
)

// Item represents a saved vocabulary entry and its review state.
type Item struct {
	ID           string `json:"id" yaml:"id"`
	Word         string `json:"word" yaml:"word"`
	PartOfSpeech string `json:"partOfSpeech" yaml:"partOfSpeech"`
	Meaning      string `json:"meaning" yaml:"meaning"`
	MeaningVi    string `json:"meaningVi" yaml:"meaningVi"`
	Example      string `json:"example" yaml:"example"`
	// OriginalWord is the word from the user's translation this entry
	// was suggested to replace.
	OriginalWord string `json:"originalWord" yaml:"originalWord"`
	Context      string `json:"context" yaml:"context"`
	Level        string `json:"level" yaml:"level"`

	AddedAt               time.Time  `json:"addedAt" yaml:"addedAt"`
	NextReviewAt          time.Time  `json:"nextReviewAt" yaml:"nextReviewAt"`
	LastReviewedAt        *time.Time `json:"lastReviewedAt,omitempty" yaml:"lastReviewedAt,omitempty"`
	ReviewIntervalSeconds float64    `json:"reviewIntervalSeconds" yaml:"reviewIntervalSeconds"`
	Mastered              bool       `json:"mastered" yaml:"mastered"`
}

// NewItem creates a vocabulary item from one suggested alternative,
// scheduled for its first review after the initial interval.
func NewItem(upgrade inference.Upgrade, alternative inference.Alternative, now time.Time) Item {
	return Item{
		ID:                    uuid.NewString(),
		Word:                  alternative.Word,
		PartOfSpeech:          alternative.PartOfSpeech,
		Meaning:               alternative.Meaning,
		MeaningVi:             alternative.MeaningVi,
		Example:               alternative.Example,
		OriginalWord:          upgrade.Original,
		Context:               upgrade.Context,
		Level:                 alternative.Level,
		AddedAt:               now,
		NextReviewAt:          now.Add(InitialInterval),
		ReviewIntervalSeconds: InitialInterval.Seconds(),
	}
}

func (item Item) interval() time.Duration {
	return time.Duration(item.ReviewIntervalSeconds * float64(time.Second))
}
