package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandup/internal/inference"
)

func sampleFeedback() inference.Feedback {
	return inference.Feedback{
		OverallBand: 6.5,
		Criteria: inference.CriteriaScore{
			TaskResponse:        inference.CriterionScore{Band: 7, Comment: "meaning preserved"},
			CoherenceCohesion:   inference.CriterionScore{Band: 6.5, Comment: "natural flow"},
			LexicalResource:     inference.CriterionScore{Band: 6, Comment: "basic vocabulary"},
			GrammaticalAccuracy: inference.CriterionScore{Band: 6.5, Comment: "one tense slip"},
		},
		Strengths: []string{"clear structure"},
		Issues:    []string{"minor tense slip"},
		Upgrades: []inference.Upgrade{
			{
				Original: "go to work",
				Alternatives: []inference.Alternative{
					{Word: "commute", PartOfSpeech: "verb", Level: "B2", Meaning: "travel regularly to work"},
				},
			},
		},
		ImprovedVersion: "I commute to work every day.",
		Rationale:       "Commute is more precise.",
	}
}

func TestRenderMarkdown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sentence := inference.Sentence{
		Vietnamese: "Tôi đi làm mỗi ngày.",
		Topic:      "work",
		TargetBand: "6.5",
	}

	content := RenderMarkdown(sentence, "I go to work every day.", sampleFeedback(), now)

	assert.Contains(t, content, "# Practice Report (2025-06-01)")
	assert.Contains(t, content, "Tôi đi làm mỗi ngày.")
	assert.Contains(t, content, "I go to work every day.")
	assert.Contains(t, content, "Overall band: 6.5")
	assert.Contains(t, content, "**commute**")
	assert.Contains(t, content, "I commute to work every day.")
}

func TestRenderMarkdown_OmitsEmptySections(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	feedback := inference.Feedback{OverallBand: 5}

	content := RenderMarkdown(inference.Sentence{Vietnamese: "Câu."}, "Sentence.", feedback, now)

	assert.NotContains(t, content, "## Strengths")
	assert.NotContains(t, content, "## Issues")
	assert.NotContains(t, content, "## Vocabulary upgrades")
	assert.NotContains(t, content, "## Improved version")
}

func TestWritePDF(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "report.pdf")

	absPath, err := WritePDF("# Title\n\nBody text.\n", pdfPath)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(absPath))

	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePDF_RejectsNonPDFPath(t *testing.T) {
	_, err := WritePDF("# Title\n", filepath.Join(t.TempDir(), "report.txt"))
	assert.Error(t, err)
}
