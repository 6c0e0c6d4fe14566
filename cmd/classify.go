package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/0ui-labs/folder-extractor-sub000/pkg/aiclassify"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/logging"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/usecase"
)

func buildClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [source]... [destination]",
		Short: "File documents into AI-chosen category folders",
		Long: `Asks the configured AI model for a category label per file and moves
each file into destination/<LABEL>/. When AI classification is disabled
or fails for a file, the extension-based label is used instead.

Requires ai.enabled in the configuration and an API key (ai.api_key or
the OPENAI_API_KEY environment variable).

Examples:
  folder-extractor classify --config settings.yaml ./inbox ./archive`,
		Args: cobra.MinimumNArgs(2),
		RunE: runClassify,
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	sources := args[:len(args)-1]
	destination := args[len(args)-1]

	printDryRunBanner()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var ai aiclassify.Classifier
	if cfg.AI.Enabled {
		client, clientErr := aiclassify.New(cfg.AI, logging.New(cfg.LogLevel))
		if clientErr != nil {
			return fmt.Errorf("AI classification unavailable: %w", clientErr)
		}
		ai = client
	}

	execution, err := newServiceWithClassifier(cfg, ai).RunClassify(cmd.Context(), usecase.ClassifyRequest{
		Sources:     sources,
		Destination: destination,
		DryRun:      dryRun,
		OnProgress:  stageProgress,
	})
	if err != nil {
		return err
	}

	printCommandHeader("CLASSIFY", execution.Destination)
	fmt.Printf("Files found: %d\n", execution.FileCount)
	fmt.Println()

	if execution.FileCount == 0 {
		fmt.Println("No files to process.")
		return nil
	}

	labels := make([]string, 0, len(execution.Labels))
	for label := range execution.Labels {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		result := execution.Results[label]
		fmt.Printf("%s: %d moved, %d duplicates, %d errors\n",
			label, result.Moved,
			result.ContentDuplicates+result.GlobalDuplicates, result.Errors)
	}

	fmt.Println()
	printSummary(
		fmt.Sprintf("Moved:      %d", execution.Stats.Moved),
		fmt.Sprintf("Duplicates: %d", execution.Stats.Skipped),
		fmt.Sprintf("Errors:     %d", execution.Stats.Errors),
	)
	printDryRunHint()

	return nil
}
