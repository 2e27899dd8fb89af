package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bandup/internal/vocab"
)

func newVocabCommand() *cobra.Command {
	vocabCommand := &cobra.Command{
		Use:   "vocab",
		Short: "Manage saved vocabulary",
	}

	vocabCommand.AddCommand(
		newVocabListCommand(),
		newVocabExportCommand(),
		newVocabImportCommand(),
	)
	return vocabCommand
}

func newVocabListCommand() *cobra.Command {
	var dueOnly bool

	command := &cobra.Command{
		Use:   "list",
		Short: "List saved vocabulary items",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			blobStore, vocabRepository, _, err := newRepositories(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = blobStore.Close()
			}()

			collection, err := vocabRepository.Load()
			if err != nil {
				return err
			}

			items := collection.Items
			if dueOnly {
				items = vocab.SelectDue(items, time.Now())
			}
			if len(items) == 0 {
				fmt.Println("No vocabulary saved yet. Run 'bandup practice' to collect some.")
				return nil
			}

			bold := color.New(color.Bold)
			for _, item := range items {
				marker := " "
				if item.Mastered {
					marker = "★"
				}
				fmt.Printf("%s %s — %s (next review %s)\n",
					marker,
					bold.Sprintf("%s", item.Word),
					item.Meaning,
					item.NextReviewAt.Format("2006-01-02"),
				)
			}
			fmt.Printf("\n%d items, %d mastered\n", len(items), vocab.MasteredCount(items))
			return nil
		},
	}
	command.Flags().BoolVar(&dueOnly, "due", false, "only show items due for review")
	return command
}

func newVocabExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export vocabulary as a YAML deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			blobStore, vocabRepository, _, err := newRepositories(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = blobStore.Close()
			}()

			collection, err := vocabRepository.Load()
			if err != nil {
				return err
			}
			data, err := vocab.EncodeDeck(collection.Items)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("os.WriteFile > %w", err)
			}
			fmt.Printf("Exported %d items to %s\n", len(collection.Items), args[0])
			return nil
		},
	}
}

func newVocabImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import a YAML deck, skipping words already saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			blobStore, vocabRepository, _, err := newRepositories(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = blobStore.Close()
			}()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("os.ReadFile > %w", err)
			}
			items, err := vocab.DecodeDeck(data, time.Now())
			if err != nil {
				return err
			}

			collection, err := vocabRepository.Load()
			if err != nil {
				return err
			}
			added := collection.Merge(items)
			if err := vocabRepository.Save(collection); err != nil {
				return err
			}
			fmt.Printf("Imported %d new items (%d skipped as duplicates)\n", added, len(items)-added)
			return nil
		},
	}
}
