package main

import (
	"github.com/spf13/cobra"
)

func buildSortCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [source]... [destination]",
		Short: "Move files into per-type subfolders of a destination",
		Long: `Moves files into subfolders of the destination chosen by file type:
  - .pdf files go into PDF/
  - .jpg and .jpeg files go into JPEG/
  - Unknown extensions get their own uppercase folder (.xyz -> XYZ/)
  - Files without an extension go into NO_EXTENSION/

Deduplication and the history ledger work exactly as with move.

Examples:
  folder-extractor sort --dry-run ./inbox ./archive   # Preview
  folder-extractor sort ./inbox ./archive             # Apply

Before:
  inbox/
    report.pdf
    photo.jpg
    Makefile

After:
  archive/
    PDF/report.pdf
    JPEG/photo.jpg
    NO_EXTENSION/Makefile`,
		Args: cobra.MinimumNArgs(2),
		RunE: runSort,
	}

	cmd.Flags().BoolVar(&moveDedup, "dedup", true, "Delete sources identical to same-named destination files")
	cmd.Flags().BoolVar(&moveGlobalDedup, "global-dedup", false, "Delete sources identical to any file under the destination")

	return cmd
}

func runSort(_ *cobra.Command, args []string) error {
	return runMoveLike("SORT", args, true)
}
