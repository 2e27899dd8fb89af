package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"bandup/internal/inference"
	"bandup/internal/report"
	"bandup/internal/statistics"
	"bandup/internal/vocab"
)

// PracticeSession runs the interactive translate-and-score loop: show a
// generated sentence, read the user's translation, render the scored
// feedback, and bank the suggested vocabulary.
type PracticeSession struct {
	client          inference.Client
	vocabRepository *vocab.Repository
	statsRepository *statistics.Repository
	topic           string
	targetBand      string
	reportDir       string

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	now          func() time.Time
}

func NewPracticeSession(
	client inference.Client,
	vocabRepository *vocab.Repository,
	statsRepository *statistics.Repository,
	topic, targetBand, reportDir string,
) *PracticeSession {
	return &PracticeSession{
		client:          client,
		vocabRepository: vocabRepository,
		statsRepository: statsRepository,
		topic:           topic,
		targetBand:      targetBand,
		reportDir:       reportDir,
		stdinReader:     bufio.NewReader(os.Stdin),
		stdoutWriter:    os.Stdout,
		bold:            color.New(color.Bold),
		italic:          color.New(color.Italic),
		now:             time.Now,
	}
}

func (session *PracticeSession) Session(ctx context.Context) error {
	sentence, err := session.client.Generate(ctx, session.topic, session.targetBand)
	if err != nil {
		return fmt.Errorf("client.Generate() > %w", err)
	}

	// The next sentence is fetched while the user is still translating
	// this one.
	session.client.Prefetch(ctx, session.topic, session.targetBand)

	fmt.Fprintln(session.stdoutWriter)
	_, _ = session.bold.Fprintln(session.stdoutWriter, sentence.Vietnamese)
	if sentence.Hint != "" {
		_, _ = session.italic.Fprintf(session.stdoutWriter, "Hint: %s\n", sentence.Hint)
	}
	if len(sentence.KeyStructures) > 0 {
		_, _ = session.italic.Fprintf(session.stdoutWriter, "Key structures: %s\n", strings.Join(sentence.KeyStructures, ", "))
	}

	fmt.Fprint(session.stdoutWriter, "Your translation: ")
	input, err := session.stdinReader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return errEnd
		}
		return fmt.Errorf("error reading translation input: %w", err)
	}
	translation := strings.TrimSpace(input)
	if translation == "quit" || translation == "exit" || translation == "" {
		fmt.Fprintln(session.stdoutWriter, "Practice session ended.")
		return errEnd
	}

	feedback, err := session.client.Evaluate(ctx, sentence.Vietnamese, translation, session.targetBand)
	if err != nil {
		return fmt.Errorf("client.Evaluate() > %w", err)
	}

	session.displayFeedback(feedback)

	added, err := session.saveVocabulary(feedback)
	if err != nil {
		return err
	}
	if added > 0 {
		fmt.Fprintf(session.stdoutWriter, "Saved %d new vocabulary items for review.\n", added)
	}

	if err := session.recordStatistics(feedback); err != nil {
		return err
	}

	if session.reportDir != "" {
		if err := session.writeReport(sentence, translation, feedback); err != nil {
			return err
		}
	}

	fmt.Fprintln(session.stdoutWriter)
	return nil
}

func (session *PracticeSession) displayFeedback(feedback inference.Feedback) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintln(session.stdoutWriter)
	scoreColor := red
	if feedback.OverallBand >= 6.0 {
		scoreColor = green
	}
	_, _ = scoreColor.Fprintf(session.stdoutWriter, "Overall band: %.1f\n", feedback.OverallBand)

	criteria := []struct {
		name  string
		score inference.CriterionScore
	}{
		{"Task response", feedback.Criteria.TaskResponse},
		{"Coherence and cohesion", feedback.Criteria.CoherenceCohesion},
		{"Lexical resource", feedback.Criteria.LexicalResource},
		{"Grammatical accuracy", feedback.Criteria.GrammaticalAccuracy},
	}
	for _, criterion := range criteria {
		fmt.Fprintf(session.stdoutWriter, "  %s: %.1f", criterion.name, criterion.score.Band)
		if criterion.score.Comment != "" {
			fmt.Fprintf(session.stdoutWriter, " (%s)", criterion.score.Comment)
		}
		fmt.Fprintln(session.stdoutWriter)
	}

	for _, strength := range feedback.Strengths {
		_, _ = green.Fprintf(session.stdoutWriter, "✅ %s\n", strength)
	}
	for _, issue := range feedback.Issues {
		_, _ = red.Fprintf(session.stdoutWriter, "❌ %s\n", issue)
	}

	for _, upgrade := range feedback.Upgrades {
		fmt.Fprintf(session.stdoutWriter, "Instead of %s, try:\n", session.italic.Sprintf("%s", upgrade.Original))
		for _, alternative := range upgrade.Alternatives {
			fmt.Fprintf(session.stdoutWriter, "  - %s (%s, %s): %s\n",
				session.bold.Sprintf("%s", alternative.Word),
				alternative.PartOfSpeech,
				alternative.Level,
				alternative.Meaning,
			)
		}
	}

	if feedback.ImprovedVersion != "" {
		fmt.Fprintf(session.stdoutWriter, "Improved version: %s\n", session.italic.Sprintf("%s", feedback.ImprovedVersion))
	}
	if feedback.Rationale != "" {
		fmt.Fprintf(session.stdoutWriter, "Why: %s\n", feedback.Rationale)
	}
}

func (session *PracticeSession) saveVocabulary(feedback inference.Feedback) (int, error) {
	if len(feedback.Upgrades) == 0 {
		return 0, nil
	}

	collection, err := session.vocabRepository.Load()
	if err != nil {
		return 0, fmt.Errorf("vocabRepository.Load() > %w", err)
	}
	added := collection.AddFromFeedback(feedback, session.now())
	if len(added) == 0 {
		return 0, nil
	}
	if err := session.vocabRepository.Save(collection); err != nil {
		return 0, fmt.Errorf("vocabRepository.Save() > %w", err)
	}
	return len(added), nil
}

func (session *PracticeSession) recordStatistics(feedback inference.Feedback) error {
	snapshot, err := session.statsRepository.Load()
	if err != nil {
		return fmt.Errorf("statsRepository.Load() > %w", err)
	}
	now := session.now()
	snapshot.RecordGeneration(now)
	snapshot.RecordEvaluation(feedback.OverallBand, now)
	if err := session.statsRepository.Save(snapshot); err != nil {
		return fmt.Errorf("statsRepository.Save() > %w", err)
	}
	return nil
}

func (session *PracticeSession) writeReport(sentence inference.Sentence, translation string, feedback inference.Feedback) error {
	now := session.now()
	content := report.RenderMarkdown(sentence, translation, feedback, now)
	pdfPath := filepath.Join(session.reportDir, fmt.Sprintf("practice-%s.pdf", now.Format("20060102-150405")))
	absPath, err := report.WritePDF(content, pdfPath)
	if err != nil {
		return fmt.Errorf("report.WritePDF() > %w", err)
	}
	fmt.Fprintf(session.stdoutWriter, "Report written to %s\n", absPath)
	return nil
}
