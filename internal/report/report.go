// Package report renders practice feedback as Markdown and PDF.
package report

import (
	"fmt"
	"strings"
	"time"

	"bandup/internal/inference"
)

// RenderMarkdown formats one practice round as a Markdown document.
func RenderMarkdown(sentence inference.Sentence, translation string, feedback inference.Feedback, now time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "# Practice Report (%s)\n\n", now.Format("2006-01-02"))
	fmt.Fprintf(&builder, "- Topic: %s\n", sentence.Topic)
	fmt.Fprintf(&builder, "- Target band: %s\n\n", sentence.TargetBand)

	fmt.Fprintf(&builder, "## Sentence\n\n%s\n\n", sentence.Vietnamese)
	fmt.Fprintf(&builder, "## Your translation\n\n%s\n\n", translation)

	fmt.Fprintf(&builder, "## Scores\n\n")
	fmt.Fprintf(&builder, "- Overall band: %.1f\n", feedback.OverallBand)
	fmt.Fprintf(&builder, "- Task response: %.1f %s\n", feedback.Criteria.TaskResponse.Band, feedback.Criteria.TaskResponse.Comment)
	fmt.Fprintf(&builder, "- Coherence and cohesion: %.1f %s\n", feedback.Criteria.CoherenceCohesion.Band, feedback.Criteria.CoherenceCohesion.Comment)
	fmt.Fprintf(&builder, "- Lexical resource: %.1f %s\n", feedback.Criteria.LexicalResource.Band, feedback.Criteria.LexicalResource.Comment)
	fmt.Fprintf(&builder, "- Grammatical accuracy: %.1f %s\n\n", feedback.Criteria.GrammaticalAccuracy.Band, feedback.Criteria.GrammaticalAccuracy.Comment)

	if len(feedback.Strengths) > 0 {
		fmt.Fprintf(&builder, "## Strengths\n\n")
		for _, strength := range feedback.Strengths {
			fmt.Fprintf(&builder, "- %s\n", strength)
		}
		builder.WriteString("\n")
	}
	if len(feedback.Issues) > 0 {
		fmt.Fprintf(&builder, "## Issues\n\n")
		for _, issue := range feedback.Issues {
			fmt.Fprintf(&builder, "- %s\n", issue)
		}
		builder.WriteString("\n")
	}

	if len(feedback.Upgrades) > 0 {
		fmt.Fprintf(&builder, "## Vocabulary upgrades\n\n")
		for _, upgrade := range feedback.Upgrades {
			fmt.Fprintf(&builder, "- %s\n", upgrade.Original)
			for _, alternative := range upgrade.Alternatives {
				fmt.Fprintf(&builder, "  - **%s** (%s, %s): %s\n",
					alternative.Word, alternative.PartOfSpeech, alternative.Level, alternative.Meaning)
			}
		}
		builder.WriteString("\n")
	}

	if feedback.ImprovedVersion != "" {
		fmt.Fprintf(&builder, "## Improved version\n\n%s\n\n", feedback.ImprovedVersion)
	}
	if feedback.Rationale != "" {
		fmt.Fprintf(&builder, "## Rationale\n\n%s\n", feedback.Rationale)
	}

	return builder.String()
}
