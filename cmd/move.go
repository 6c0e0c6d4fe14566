package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0ui-labs/folder-extractor-sub000/pkg/usecase"
)

var (
	moveDedup       bool
	moveGlobalDedup bool
)

func buildMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move [source]... [destination]",
		Short: "Move files into a destination folder with deduplication",
		Long: `Moves files from one or more source folders into a destination:
  - Byte-identical same-named files are deleted instead of moved
  - With --global-dedup, content matching any file in the destination
    tree is deduplicated regardless of name
  - Name collisions get a _1, _2, ... suffix
  - A history ledger is written for undo

Examples:
  folder-extractor move --dry-run ./inbox ./archive   # Preview
  folder-extractor move ./inbox ./archive             # Apply
  folder-extractor move --global-dedup ./inbox ./archive`,
		Args: cobra.MinimumNArgs(2),
		RunE: runMove,
	}

	cmd.Flags().BoolVar(&moveDedup, "dedup", true, "Delete sources identical to same-named destination files")
	cmd.Flags().BoolVar(&moveGlobalDedup, "global-dedup", false, "Delete sources identical to any file under the destination")

	return cmd
}

func runMove(_ *cobra.Command, args []string) error {
	return runMoveLike("MOVE", args, false)
}

// runMoveLike drives the move workflow for both the flat and sorted
// commands.
func runMoveLike(command string, args []string, sorted bool) error {
	sources := args[:len(args)-1]
	destination := args[len(args)-1]

	printDryRunBanner()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Dedup.SameName = moveDedup
	cfg.Dedup.Global = moveGlobalDedup

	execution, err := newService(cfg).RunMove(usecase.MoveRequest{
		Sources:     sources,
		Destination: destination,
		Sorted:      sorted,
		DryRun:      dryRun,
		OnProgress:  stageProgress,
	})
	if err != nil {
		return err
	}

	printCommandHeader(command, execution.Destination)
	fmt.Printf("Files found: %d\n", execution.FileCount)
	fmt.Println()

	if execution.FileCount == 0 {
		fmt.Println("No files to process.")
		return nil
	}

	printMoveResult(execution.Result)

	if sorted && len(execution.Result.CreatedFolders) > 0 {
		fmt.Printf("Folders created:    %d\n", len(execution.Result.CreatedFolders))
	}

	printDryRunHint()

	return nil
}
