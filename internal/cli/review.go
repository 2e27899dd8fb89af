package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"bandup/internal/statistics"
	"bandup/internal/vocab"
)

// ReviewSession runs a flashcard round over the items due for review.
type ReviewSession struct {
	vocabRepository *vocab.Repository
	statsRepository *statistics.Repository

	collection vocab.Collection
	queue      []vocab.Item
	correct    int
	wrong      int

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	now          func() time.Time
}

func NewReviewSession(
	vocabRepository *vocab.Repository,
	statsRepository *statistics.Repository,
) (*ReviewSession, error) {
	collection, err := vocabRepository.Load()
	if err != nil {
		return nil, fmt.Errorf("vocabRepository.Load() > %w", err)
	}

	now := time.Now
	return &ReviewSession{
		vocabRepository: vocabRepository,
		statsRepository: statsRepository,
		collection:      collection,
		queue:           vocab.SelectSession(collection.Items, now()),
		stdinReader:     bufio.NewReader(os.Stdin),
		stdoutWriter:    os.Stdout,
		bold:            color.New(color.Bold),
		italic:          color.New(color.Italic),
		now:             now,
	}, nil
}

func (session *ReviewSession) Session(ctx context.Context) error {
	if len(session.queue) == 0 {
		session.displaySummary()
		return errEnd
	}
	item := session.queue[0]
	session.queue = session.queue[1:]

	fmt.Fprintln(session.stdoutWriter)
	_, _ = session.bold.Fprintln(session.stdoutWriter, item.Word)
	if item.Context != "" {
		_, _ = session.italic.Fprintf(session.stdoutWriter, "Context: %s\n", item.Context)
	}
	fmt.Fprint(session.stdoutWriter, "Press Enter to reveal the meaning: ")
	if _, err := session.stdinReader.ReadString('\n'); err != nil {
		if err == io.EOF {
			return errEnd
		}
		return fmt.Errorf("error reading input: %w", err)
	}

	fmt.Fprintf(session.stdoutWriter, "Meaning: %s\n", item.Meaning)
	if item.MeaningVi != "" {
		fmt.Fprintf(session.stdoutWriter, "Meaning (vi): %s\n", item.MeaningVi)
	}
	if item.Example != "" {
		_, _ = session.italic.Fprintf(session.stdoutWriter, "Example: %s\n", item.Example)
	}

	handler := NewOutcomeHandler(func(correct bool) error {
		return session.recordOutcome(item, correct)
	})

	for {
		fmt.Fprint(session.stdoutWriter, "Did you remember it? [y/n/q]: ")
		input, err := session.stdinReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return errEnd
			}
			return fmt.Errorf("error reading answer input: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "yes":
			return handler.OnCorrect()
		case "n", "no":
			return handler.OnWrong()
		case "q", "quit", "exit":
			session.displaySummary()
			return errEnd
		default:
			fmt.Fprintln(session.stdoutWriter, "Please answer y, n, or q.")
		}
	}
}

func (session *ReviewSession) recordOutcome(item vocab.Item, correct bool) error {
	now := session.now()
	updated := vocab.RecordOutcome(item, correct, now)
	if !session.collection.Update(updated) {
		return fmt.Errorf("item %s disappeared from the collection", item.ID)
	}
	if err := session.vocabRepository.Save(session.collection); err != nil {
		return fmt.Errorf("vocabRepository.Save() > %w", err)
	}

	snapshot, err := session.statsRepository.Load()
	if err != nil {
		return fmt.Errorf("statsRepository.Load() > %w", err)
	}
	snapshot.RecordReview(correct, now)
	if err := session.statsRepository.Save(snapshot); err != nil {
		return fmt.Errorf("statsRepository.Save() > %w", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	if correct {
		session.correct++
		nextReview := updated.NextReviewAt.Format("2006-01-02")
		if updated.Mastered {
			_, _ = green.Fprintf(session.stdoutWriter, "✅ Mastered! Next review %s\n", nextReview)
		} else {
			_, _ = green.Fprintf(session.stdoutWriter, "✅ Next review %s\n", nextReview)
		}
	} else {
		session.wrong++
		_, _ = red.Fprintln(session.stdoutWriter, "❌ Back to daily review.")
	}
	return nil
}

func (session *ReviewSession) displaySummary() {
	total := session.correct + session.wrong
	if total == 0 {
		fmt.Fprintln(session.stdoutWriter, "Nothing to review. Practice some sentences first!")
		return
	}
	fmt.Fprintf(session.stdoutWriter, "\nSession finished: %d/%d correct. %d words mastered in total.\n",
		session.correct, total, vocab.MasteredCount(session.collection.Items))
}
