// Package entry runs the interactive prompt loop for typing routines in by hand.
package entry

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/practice-routines/internal/routine"
)

// errQuit ends the session at any prompt.
var errQuit = errors.New("quit")

// Session reads routines from In, writes prompts to Out, and appends each
// completed routine to Store.
type Session struct {
	In    io.Reader
	Out   io.Writer
	Store *routine.Store
}

// IsQuit reports whether input is a quit sentinel (q or quit, any case).
func IsQuit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "q", "quit":
		return true
	}
	return false
}

// ParseTags splits comma-separated input, trims each entry, and drops
// empty ones. Tags are free-form here.
func ParseTags(input string) []string {
	tags := []string{}
	for _, part := range strings.Split(input, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Run prompts for routines until the user quits, input ends, or ctx is
// canceled. Each routine is saved as soon as it is complete. Only a store
// failure is returned as an error.
func (s *Session) Run(ctx context.Context) error {
	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines := readLines(readCtx, s.In)
	p := &prompter{ctx: ctx, out: s.Out, lines: lines}

	fmt.Fprintln(s.Out, "\n=== Manual Routine Entry ===")
	fmt.Fprintln(s.Out, "Enter routines one by one. Type 'q' or 'quit' to exit, or press Ctrl+C to quit.")
	fmt.Fprintln(s.Out, strings.Repeat("-", 50))

	var err error
	for err == nil {
		err = s.addOne(p)
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(s.Out, "\n\nExiting manual entry mode...")
	case errors.Is(err, errQuit), errors.Is(err, io.EOF):
	default:
		return err
	}
	fmt.Fprintln(s.Out, "Manual entry session completed.")
	return nil
}

// addOne walks through the four prompts and stores the result.
func (s *Session) addOne(p *prompter) error {
	text, err := p.ask("\nEnter practice routine text (or 'q' to quit): ")
	if err != nil {
		return err
	}
	if text == "" {
		fmt.Fprintln(s.Out, "Error: Text cannot be empty. Try again or type 'q' to quit.")
		return nil
	}

	var category routine.Category
	for {
		fmt.Fprintf(s.Out, "Available categories: %s\n", routine.CategoryList())
		input, err := p.ask("Select category: ")
		if err != nil {
			return err
		}
		if category, err = routine.ParseCategory(input); err == nil {
			break
		}
		fmt.Fprintf(s.Out, "Error: Invalid category. Must be one of: %s\n", routine.CategoryList())
	}

	tagsInput, err := p.ask("Enter tags (comma-separated): ")
	if err != nil {
		return err
	}
	tags := ParseTags(tagsInput)

	var state routine.State
	for {
		fmt.Fprintf(s.Out, "Available states: %s\n", routine.StateList())
		input, err := p.ask(fmt.Sprintf("Select state (default: %s): ", routine.DefaultState))
		if err != nil {
			return err
		}
		if state, err = routine.ParseState(input); err == nil {
			break
		}
		fmt.Fprintf(s.Out, "Error: Invalid state. Must be one of: %s\n", routine.StateList())
	}

	r := routine.Routine{Text: text, Category: category, Tags: tags, State: state}
	if err := s.Store.Append(r); err != nil {
		return fmt.Errorf("saving routine: %w", err)
	}
	fmt.Fprintf(s.Out, "Added routine: %s\n", text)
	fmt.Fprintln(s.Out, "✓ Routine added successfully!")
	return nil
}

// prompter writes a prompt and waits for the next input line or ctx.
type prompter struct {
	ctx   context.Context
	out   io.Writer
	lines <-chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// ask returns the trimmed answer to prompt. It returns errQuit for a quit
// sentinel, io.EOF when input ends, and the context error on cancel.
func (p *prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	select {
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		text := strings.TrimSpace(res.text)
		if IsQuit(text) {
			return "", errQuit
		}
		return text, nil
	}
}

// readLines feeds lines from r into a channel so a blocked read does not
// keep the loop from noticing cancellation. The channel closes at EOF or
// once ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan lineResult {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- lineResult{text: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case ch <- lineResult{err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return ch
}
