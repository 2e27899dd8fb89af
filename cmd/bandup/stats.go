package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bandup/internal/vocab"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show practice and review statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			blobStore, vocabRepository, statsRepository, err := newRepositories(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = blobStore.Close()
			}()

			snapshot, err := statsRepository.Load()
			if err != nil {
				return err
			}
			collection, err := vocabRepository.Load()
			if err != nil {
				return err
			}

			fmt.Printf("Sentences practiced: %d\n", snapshot.SentencesPracticed)
			fmt.Printf("Evaluations scored:  %d\n", snapshot.EvaluationsScored)
			if snapshot.EvaluationsScored > 0 {
				fmt.Printf("Average band:        %.1f\n", snapshot.AverageBand())
			}
			reviews := snapshot.ReviewsCorrect + snapshot.ReviewsWrong
			fmt.Printf("Reviews:             %d", reviews)
			if reviews > 0 {
				fmt.Printf(" (%.0f%% correct)", snapshot.ReviewAccuracy()*100)
			}
			fmt.Println()
			fmt.Printf("Vocabulary:          %d items, %d mastered\n",
				len(collection.Items), vocab.MasteredCount(collection.Items))

			months := snapshot.SortedMonths()
			if len(months) > 0 {
				fmt.Println("\nBy month:")
				for _, month := range months {
					fmt.Printf("  %s: %d practiced, %d reviews\n",
						month.Period,
						month.SentencesPracticed,
						month.ReviewsCorrect+month.ReviewsWrong,
					)
				}
			}
			return nil
		},
	}
}
