package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bandup/internal/cli"
)

func newPracticeCommand() *cobra.Command {
	var targetBand string
	var reportDir string

	command := &cobra.Command{
		Use:   "practice [topic]",
		Short: "Translate generated Vietnamese sentences and get band-scored feedback",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			topic := cfg.Practice.DefaultTopic
			if len(args) > 0 {
				topic = args[0]
			}
			if targetBand == "" {
				targetBand = cfg.Practice.DefaultBand
			}

			client, err := newInferenceClient(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			blobStore, vocabRepository, statsRepository, err := newRepositories(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = blobStore.Close()
			}()

			fmt.Printf("Practice session started (topic: %s, target band: %s, model: %s)\n", topic, targetBand, client.GetModel())
			fmt.Println("Translate each sentence into English. Type 'quit' to exit.")

			session := cli.NewPracticeSession(client, vocabRepository, statsRepository, topic, targetBand, reportDir)
			return cli.Run(context.Background(), session)
		},
	}
	command.Flags().StringVar(&targetBand, "band", "", "target IELTS band, e.g. 6.5")
	command.Flags().StringVar(&reportDir, "report", "", "directory to write a PDF report per round")
	return command
}
