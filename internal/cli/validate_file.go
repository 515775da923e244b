// Package cli implements the command line subcommands that run outside
// the HTTP server.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/deckoracle/backend/internal/formats"
	"github.com/deckoracle/backend/internal/importers"
)

type ValidateFileCommand struct {
	Path    string
	Format  string
	Verbose bool
}

func NewValidateFileCommand() *ValidateFileCommand {
	return &ValidateFileCommand{}
}

func (cmd *ValidateFileCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("validate-file", flag.ExitOnError)

	fs.StringVar(&cmd.Path, "file", "", "Path to the deck file to validate (required)")
	fs.StringVar(&cmd.Format, "format", "", "Payload format: json, csv, anki, or markdown (required)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print warnings in addition to errors")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s validate-file [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Validate a deck file without importing it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s validate-file -file ./deck.json -format json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s validate-file -file ./cards.csv -format csv -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Path == "" {
		fs.Usage()
		return fmt.Errorf("file is required")
	}
	if cmd.Format == "" {
		fs.Usage()
		return fmt.Errorf("format is required")
	}

	return nil
}

func (cmd *ValidateFileCommand) Run() error {
	format, err := formats.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var validator importers.Validator
	result := validator.Validate(data, format)

	if !result.IsValid {
		fmt.Printf("%s is NOT a valid %s deck:\n", cmd.Path, format)
		for _, e := range result.Errors {
			fmt.Printf("  error: %s\n", e)
		}
		return fmt.Errorf("validation failed")
	}

	fmt.Printf("%s is a valid %s deck: %d deck(s), %d card(s)\n",
		cmd.Path, format, result.DeckCount, result.CardCount)
	if cmd.Verbose {
		for _, w := range result.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}
	return nil
}
