package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/nibzard/practice-routines/internal/config"
	"github.com/nibzard/practice-routines/internal/routine"
)

// ValidateCommand checks a routine file against the routine schema.
type ValidateCommand struct {
	config  *config.Config
	out     io.Writer
	verbose bool
}

// NewValidateCommand creates a new validate command.
func NewValidateCommand(cfg *config.Config, out io.Writer) *ValidateCommand {
	return &ValidateCommand{
		config: cfg,
		out:    out,
	}
}

// Run executes the validate command. An optional argument names the file
// to check instead of the configured store.
func (c *ValidateCommand) Run(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("routines validate", flag.ContinueOnError)
	flags.SetOutput(c.out)
	flags.BoolVar(&c.verbose, "v", false, "Show warnings")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args()[1:])
	}

	path := c.config.JSONFile
	if flags.NArg() == 1 {
		path = flags.Arg(0)
	}
	return c.validate(path)
}

// validate reads path and prints the result.
func (c *ValidateCommand) validate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(c.out, "%s does not exist yet; it will be created on the first save\n", path)
			return nil
		}
		return fmt.Errorf("reading routine file: %w", err)
	}

	result := routine.Validate(data)
	if !result.Valid {
		fmt.Fprintf(c.out, "%s is invalid:\n", path)
		for _, e := range result.Errors {
			fmt.Fprintf(c.out, "  - %s\n", e)
		}
		return fmt.Errorf("routine file validation failed")
	}

	fmt.Fprintf(c.out, "%s is valid (%d routines)\n", path, result.Count)
	if c.verbose && len(result.Warnings) > 0 {
		fmt.Fprintf(c.out, "\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(c.out, "  - %s\n", w)
		}
	}
	return nil
}
