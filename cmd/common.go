package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/0ui-labs/folder-extractor-sub000/pkg/abort"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/aiclassify"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/config"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/logging"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/mover"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/usecase"
)

var (
	headerColor  = color.New(color.Bold)
	errorColor   = color.New(color.FgRed)
	dryRunColor  = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// newService builds the use-case service and wires Ctrl-C to the abort
// signal, so an interrupt stops the batch after the current file.
func newService(cfg *config.Config) *usecase.Service {
	return newServiceWithClassifier(cfg, nil)
}

func newServiceWithClassifier(cfg *config.Config, ai aiclassify.Classifier) *usecase.Service {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	sig := &abort.Signal{}

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupts
		fmt.Fprintln(os.Stderr, "interrupt received, finishing current file...")
		sig.Set()
	}()

	return usecase.New(usecase.Options{
		Config:     cfg,
		Logger:     logging.New(level),
		Signal:     sig,
		Classifier: ai,
	})
}

func validateAndResolvePath(targetDir string) (string, error) {
	info, err := os.Stat(targetDir)
	if err != nil {
		return "", fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", targetDir)
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	return absPath, nil
}

func printDryRunBanner() {
	if !dryRun {
		return
	}

	dryRunColor.Println("=== DRY RUN - no changes will be made ===")
	fmt.Println()
}

func printCommandHeader(command, destination string) {
	headerColor.Printf("Command: %s\n", command)
	fmt.Printf("Destination: %s\n", destination)
}

func printSummary(lines ...string) {
	headerColor.Println("=== Summary ===")
	for _, line := range lines {
		fmt.Println(line)
	}
}

func printDryRunHint() {
	if !dryRun {
		return
	}

	fmt.Println()
	fmt.Println("Run without --dry-run to apply changes.")
}

func printMoveResult(result mover.Result) {
	printSummary(
		fmt.Sprintf("Moved:              %d", result.Moved),
		fmt.Sprintf("Name duplicates:    %d", result.NameDuplicates),
		fmt.Sprintf("Content duplicates: %d", result.ContentDuplicates),
		fmt.Sprintf("Global duplicates:  %d", result.GlobalDuplicates),
		fmt.Sprintf("Errors:             %d", result.Errors),
	)

	if result.LedgerPath != "" {
		fmt.Printf("Ledger: %s\n", result.LedgerPath)
	}
}

func stageProgress(stage string, processed, total int) {
	if !verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "%s... %d/%d\n", stage, processed, total)
}
