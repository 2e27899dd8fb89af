package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI practice content operations
type Client interface {
	// Generate produces a new practice sentence for the topic at the target band.
	Generate(ctx context.Context, topic, targetBand string) (Sentence, error)
	// Prefetch starts a speculative generation for the topic and band. The
	// result is consumed by a later Generate call with the same arguments,
	// or discarded when a Prefetch for different arguments supersedes it.
	Prefetch(ctx context.Context, topic, targetBand string)
	// Evaluate scores the user's translation of sourceText against the target band.
	Evaluate(ctx context.Context, sourceText, translation, targetBand string) (Feedback, error)
	// Stream sends a free-form prompt and invokes onChunk for each text delta
	// in arrival order, returning the full accumulated text.
	Stream(ctx context.Context, prompt string, config RequestConfig, onChunk func(string)) (string, error)
}

// Sentence is a generated practice item: a Vietnamese source sentence the
// user translates into English.
type Sentence struct {
	Vietnamese    string   `json:"vietnamese" validate:"required"`
	Topic         string   `json:"topic"`
	TargetBand    string   `json:"targetBand"`
	Hint          string   `json:"hint"`
	KeyStructures []string `json:"keyStructures,omitempty"`
}

// Feedback is the evaluation result for one submitted translation.
type Feedback struct {
	OverallBand     float64       `json:"overallBand" validate:"band"`
	Criteria        CriteriaScore `json:"criteria"`
	Strengths       []string      `json:"strengths,omitempty"`
	Issues          []string      `json:"issues,omitempty"`
	Upgrades        []Upgrade     `json:"upgrades,omitempty" validate:"dive"`
	ImprovedVersion string        `json:"improvedVersion"`
	Rationale       string        `json:"rationale"`
}

// CriteriaScore holds the four IELTS writing criterion sub-scores.
type CriteriaScore struct {
	TaskResponse        CriterionScore `json:"taskResponse"`
	CoherenceCohesion   CriterionScore `json:"coherenceCohesion"`
	LexicalResource     CriterionScore `json:"lexicalResource"`
	GrammaticalAccuracy CriterionScore `json:"grammaticalAccuracy"`
}

// CriterionScore is a single criterion band with commentary.
type CriterionScore struct {
	Band    float64 `json:"band" validate:"band"`
	Comment string  `json:"comment"`
}

// Upgrade suggests replacing a weak word or phrase from the user's
// translation with stronger alternatives.
type Upgrade struct {
	Original     string        `json:"original" validate:"required"`
	Context      string        `json:"context"`
	Alternatives []Alternative `json:"alternatives" validate:"min=1,dive"`
}

// Alternative is one replacement candidate within an Upgrade.
type Alternative struct {
	Word         string `json:"word" validate:"required"`
	PartOfSpeech string `json:"partOfSpeech"`
	Meaning      string `json:"meaning"`
	MeaningVi    string `json:"meaningVi"`
	Example      string `json:"example"`
	Level        string `json:"level"`
}

const (
	DefaultMaxRetries = 2
)
