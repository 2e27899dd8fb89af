package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bandup/internal/cli"
)

func newReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review saved vocabulary with spaced repetition",
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

			session, err := cli.NewReviewSession(vocabRepository, statsRepository)
			if err != nil {
				return err
			}
			return cli.Run(context.Background(), session)
		},
	}
}
