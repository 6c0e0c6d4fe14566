package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0ui-labs/folder-extractor-sub000/pkg/undo"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/usecase"
)

func buildUndoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undo [destination]",
		Short: "Reverse the most recent move batch in a destination",
		Long: `Reverses the move batch recorded in the destination's history ledger:
  - Moved files are moved back to their original locations
  - Deduplicated files are restored by copying from the surviving file;
    the survivor stays in place

The ledger is deleted after a completed undo. If the run is interrupted
or nothing could be restored, the ledger is kept so the undo can be
retried.

Examples:
  folder-extractor undo ./archive`,
		Args: cobra.ExactArgs(1),
		RunE: runUndo,
	}
}

func runUndo(_ *cobra.Command, args []string) error {
	destination, err := validateAndResolvePath(args[0])
	if err != nil {
		return err
	}

	cfg, cfgErr := loadConfig()
	if cfgErr != nil {
		return cfgErr
	}

	execution, err := newService(cfg).RunUndo(usecase.UndoRequest{
		Destination: destination,
		OnProgress:  stageProgress,
	})
	if err != nil {
		return err
	}

	printCommandHeader("UNDO", execution.Destination)
	fmt.Println()

	result := execution.Result

	if result.Status == undo.StatusNoHistory {
		fmt.Println("No history ledger found - nothing to undo.")
		return nil
	}

	printSummary(
		fmt.Sprintf("Status:    %s", result.Status),
		fmt.Sprintf("Restored:  %d", result.Restored),
		fmt.Sprintf("Errors:    %d", result.Errors),
		fmt.Sprintf("Aborted:   %t", result.Aborted),
	)

	switch result.Status {
	case undo.StatusSuccess:
		successColor.Println("All entries restored.")
	case undo.StatusPartial:
		errorColor.Println("Some entries could not be restored.")
	case undo.StatusAborted:
		dryRunColor.Println("Undo was aborted; ledger kept for retry.")
	}

	return nil
}
