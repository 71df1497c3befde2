// Package cmd implements the CLI command structure for routines.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/practice-routines/internal/classify"
	"github.com/nibzard/practice-routines/internal/config"
	"github.com/nibzard/practice-routines/internal/entry"
	"github.com/nibzard/practice-routines/internal/ingest"
	"github.com/nibzard/practice-routines/internal/logging"
	"github.com/nibzard/practice-routines/internal/ocr"
	"github.com/nibzard/practice-routines/internal/routine"
	"github.com/nibzard/practice-routines/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// StageStore marks image failures that happened while saving routines.
const StageStore = "store"

// Option configures a Run call.
type Option func(*runner)

// WithIO replaces the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(r *runner) {
		r.in = in
		r.out = out
		r.errOut = errOut
	}
}

// WithRecognizer sets the constructor for the OCR engine used by the image
// command. It receives the configured language code.
func WithRecognizer(newRecognizer func(language string) ocr.Recognizer) Option {
	return func(r *runner) {
		r.newRecognizer = newRecognizer
	}
}

// runner carries what every command needs.
type runner struct {
	in            io.Reader
	out           io.Writer
	errOut        io.Writer
	newRecognizer func(language string) ocr.Recognizer

	cfg    *config.Config
	logger *log.Logger
	store  *routine.Store
}

// Run executes the routines CLI.
func Run(ctx context.Context, args []string, opts ...Option) error {
	r := &runner{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}

	// Create a flag set for global options
	fs := flag.NewFlagSet("routines", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	fs.Usage = func() {
		printUsage(fs, r.errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, r.out)
		return nil
	}
	if *showVersion {
		return r.versionCommand()
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: r.errOut,
	})
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	r.cfg = cfg
	r.logger = logger
	r.store = routine.NewStore(cfg.JSONFile, logger)
	logger.Debug("configuration loaded", "json_file", cfg.JSONFile, "config_file", cfg.ConfigFile)

	// Without a subcommand there is nothing to do.
	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, r.out)
		return nil
	}
	subcommand := remainingArgs[0]
	remainingArgs = remainingArgs[1:]

	// Execute the subcommand
	switch subcommand {
	case "manual":
		return r.manualCommand(ctx, remainingArgs)
	case "image":
		return r.imageCommand(ctx, remainingArgs)
	case "ls":
		return r.lsCommand(remainingArgs)
	case "tui":
		return r.tuiCommand(ctx, remainingArgs)
	case "validate":
		return NewValidateCommand(r.cfg, r.out).Run(ctx, remainingArgs)
	case "config":
		return r.configCommand(remainingArgs)
	case "version":
		return r.versionCommand()
	case "help":
		printUsage(fs, r.out)
		return nil
	default:
		fmt.Fprintf(r.errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, r.errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// manualCommand runs the interactive entry session.
func (r *runner) manualCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("routines manual", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	session := &entry.Session{
		In:    r.in,
		Out:   r.out,
		Store: r.store,
	}
	return session.Run(ctx)
}

// imageCommand extracts routines from an image.
//
// A missing, undecodable or unreadable image is reported and the command
// still succeeds. Failing to save the routines is returned.
func (r *runner) imageCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("routines image", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(r.errOut, "Usage: routines image <path>")
		return fmt.Errorf("image requires exactly one path, got %d arguments", fs.NArg())
	}
	path := fs.Arg(0)

	var recognizer ocr.Recognizer
	if r.newRecognizer != nil {
		recognizer = r.newRecognizer(r.cfg.OCR.Language)
	}
	processor := &ingest.Processor{
		Store:         r.store,
		Recognizer:    recognizer,
		Out:           r.out,
		Logger:        r.logger,
		MinLineLength: r.cfg.OCR.MinLineLength,
	}

	result, err := processor.Process(ctx, path)
	if err == nil {
		r.logger.Debug("image processed", "path", path, "lines", len(result.Lines), "added", len(result.Added))
		return nil
	}

	stage := ocr.Stage(err)
	switch stage {
	case ocr.StageNotFound:
		fmt.Fprintf(r.out, "Error: Image file '%s' not found.\n", path)
	case ocr.StageDecode, ocr.StageRecognize:
		fmt.Fprintf(r.out, "Error processing image: %v\n", err)
	default:
		stage = StageStore
	}
	r.logger.Error("image processing failed", "stage", stage, "path", path, "err", errorChain(err))
	if stage == StageStore {
		return err
	}
	return nil
}

// errorChain renders every wrapped error from outermost to innermost.
func errorChain(err error) string {
	var parts []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, " <- ")
}

// lsCommand lists stored routines grouped by category.
func (r *runner) lsCommand(args []string) error {
	fs := flag.NewFlagSet("routines ls", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	categoryFilter := fs.String("category", "", "Filter by category ("+strings.Join(categoryNames(), "|")+")")
	stateFilter := fs.String("state", "", "Filter by state ("+strings.Join(stateNames(), "|")+")")
	tagFilter := fs.String("tag", "", "Filter by tag")
	verbose := fs.Bool("v", false, "Show tags and state")
	vocabulary := fs.Bool("vocab", false, "Print the tag keywords used for images")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *vocabulary {
		printVocabulary(r.out)
		return nil
	}

	var category routine.Category
	if *categoryFilter != "" {
		c, err := routine.ParseCategory(*categoryFilter)
		if err != nil {
			return err
		}
		category = c
	}
	var state routine.State
	if *stateFilter != "" {
		s, err := routine.ParseState(*stateFilter)
		if err != nil {
			return err
		}
		state = s
	}

	routines, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("loading routine file: %w", err)
	}

	var filtered []routine.Routine
	for _, rt := range routines {
		if category != "" && rt.Category != category {
			continue
		}
		if state != "" && rt.State != state {
			continue
		}
		if *tagFilter != "" && !rt.HasTag(*tagFilter) {
			continue
		}
		filtered = append(filtered, rt)
	}

	if len(filtered) == 0 {
		fmt.Fprintln(r.out, "No routines found.")
		return nil
	}
	for _, c := range routine.Categories() {
		printRoutinesByCategory(r.out, c, filtered, *verbose)
	}
	return nil
}

// tuiCommand launches the TUI.
func (r *runner) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("routines tui", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	interval := fs.Duration("refresh", ui.DefaultRefreshInterval, "How often to reload the routine file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Warnings would draw over the alternate screen.
	store := routine.NewStore(r.cfg.JSONFile, logging.Discard())
	return ui.RunTUI(ctx, store, ui.WithRefreshInterval(*interval), ui.WithOutput(r.out))
}

// configCommand prints the effective configuration.
func (r *runner) configCommand(args []string) error {
	fs := flag.NewFlagSet("routines config", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Fprint(r.out, config.ExampleConfig())
		return nil
	}

	if r.cfg.ConfigFile != "" {
		fmt.Fprintf(r.out, "Config file: %s\n\n", r.cfg.ConfigFile)
	}
	for _, field := range config.Fields() {
		fmt.Fprintf(r.out, "%-20s %-24v (%s)\n", field, r.cfg.Value(field), r.cfg.Sources[field])
	}
	return nil
}

func (r *runner) versionCommand() error {
	fmt.Fprintf(r.out, "routines version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Routines - Guitar practice routine processor")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  routines [options] <command> [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  manual        Enter practice routines interactively")
	fmt.Fprintln(w, "  image <path>  Extract practice routines from an image")
	fmt.Fprintln(w, "  ls            List routines by category")
	fmt.Fprintln(w, "  tui           Launch terminal UI")
	fmt.Fprintln(w, "  validate      Check the routine file against its schema")
	fmt.Fprintln(w, "  config        Show the effective configuration")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -category string")
	fmt.Fprintln(w, "        Filter by category ("+strings.Join(categoryNames(), "|")+")")
	fmt.Fprintln(w, "  -state string")
	fmt.Fprintln(w, "        Filter by state ("+strings.Join(stateNames(), "|")+")")
	fmt.Fprintln(w, "  -tag string")
	fmt.Fprintln(w, "        Filter by tag")
	fmt.Fprintln(w, "  -v    Show tags and state")
	fmt.Fprintln(w, "  -vocab")
	fmt.Fprintln(w, "        Print the tag keywords used for images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
}

func printRoutinesByCategory(w io.Writer, category routine.Category, routines []routine.Routine, verbose bool) {
	var matching []routine.Routine
	for _, rt := range routines {
		if rt.Category == category {
			matching = append(matching, rt)
		}
	}
	if len(matching) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", category, len(matching))
	for _, rt := range matching {
		printRoutine(w, rt, verbose)
	}
	fmt.Fprintln(w)
}

func printRoutine(w io.Writer, rt routine.Routine, verbose bool) {
	if !verbose {
		fmt.Fprintf(w, "  - %s\n", rt.Text)
		return
	}
	tags := "-"
	if len(rt.Tags) > 0 {
		tags = strings.Join(rt.Tags, ", ")
	}
	fmt.Fprintf(w, "  - %s\n", rt.Text)
	fmt.Fprintf(w, "      state: %s  tags: %s\n", rt.State, tags)
}

func printVocabulary(w io.Writer) {
	fmt.Fprintln(w, "Tags assigned to image routines:")
	for _, group := range classify.TagGroups() {
		fmt.Fprintf(w, "  %-14s %s\n", group.Tag, strings.Join(group.Keywords, ", "))
	}
	fmt.Fprintf(w, "  %-14s %s\n", routine.GeneralTag, "(when nothing else matches)")
}

func categoryNames() []string {
	return splitAndTrim(routine.CategoryList(), ",")
}

func stateNames() []string {
	return splitAndTrim(routine.StateList(), ",")
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
