package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	dryRun     bool
	verbose    bool
	configPath string
)

func main() {
	rootCmd := buildRootCommand()
	rootCmd.AddCommand(buildMoveCommand())
	rootCmd.AddCommand(buildSortCommand())
	rootCmd.AddCommand(buildClassifyCommand())
	rootCmd.AddCommand(buildUndoCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder-extractor",
		Short: "Organize files from watched folders with deduplication and undo",
		Long: `folder-extractor files documents dropped into watched folders.

Commands:
  move      Move files into a destination folder with deduplication
  sort      Move files into per-type subfolders of a destination
  classify  File documents into AI-chosen category folders
  undo      Reverse the most recent move batch in a destination

Every non-dry-run batch writes a history ledger into the destination, so
moves and deduplications can be reversed with the undo command.

Examples:
  # Preview what a move would do (recommended first step)
  folder-extractor move --dry-run ./inbox ./archive

  # Move files, deleting byte-identical duplicates
  folder-extractor move ./inbox ./archive

  # Sort files into PDF/, JPEG/, ... subfolders
  folder-extractor sort ./inbox ./archive

  # Reverse the last batch
  folder-extractor undo ./archive

Safety:
  Duplicate detection compares full SHA256 content hashes; files are only
  deleted when their content is byte-for-byte identical to a kept file,
  and every deletion is recorded in the ledger for undo.`,
	}

	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making changes")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML configuration file")

	return cmd
}
