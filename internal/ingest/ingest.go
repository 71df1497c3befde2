// Package ingest turns photographed practice notes into stored routines.
package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/nibzard/practice-routines/internal/classify"
	"github.com/nibzard/practice-routines/internal/ocr"
	"github.com/nibzard/practice-routines/internal/routine"
)

// DefaultMinLineLength is the length a line must exceed to become a routine.
const DefaultMinLineLength = 10

const separator = "--------------------------------------------------"

// Processor extracts text from an image and appends one routine per
// meaningful line to Store.
type Processor struct {
	Store      *routine.Store
	Recognizer ocr.Recognizer
	Out        io.Writer
	Logger     *log.Logger

	// MinLineLength drops lines whose length in characters is not greater
	// than it. Zero means DefaultMinLineLength.
	MinLineLength int
}

// Result describes what one Process call did.
type Result struct {
	Path  string
	Text  string            // raw recognizer output
	Lines []string          // trimmed, non-blank lines
	Added []routine.Routine // routines appended to the store
}

// Process runs OCR on the image at path and stores the routines it finds.
// Extraction failures are returned as the typed errors of package ocr.
// Routines are saved once, after all lines are classified, and only if at
// least one line qualified.
func (p *Processor) Process(ctx context.Context, path string) (*Result, error) {
	out := p.Out
	if out == nil {
		out = io.Discard
	}

	p.logger().Debug("processing image", "path", path)
	fmt.Fprintf(out, "Processing image: %s\n", path)

	text, err := ocr.Extract(ctx, p.Recognizer, path)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Extracted text from %s:\n", path)
	fmt.Fprintln(out, separator)
	fmt.Fprintln(out, text)
	fmt.Fprintln(out, separator)

	result := &Result{
		Path:  path,
		Text:  text,
		Lines: MeaningfulLines(text),
	}

	routines, err := p.Store.Load()
	if err != nil {
		return result, err
	}

	for _, line := range FilterShort(result.Lines, p.minLineLength()) {
		r := classify.Classify(line)
		routines = append(routines, r)
		result.Added = append(result.Added, r)
		fmt.Fprintf(out, "Added routine: %s\n", line)
	}

	if len(result.Added) == 0 {
		fmt.Fprintln(out, "No meaningful text found in image.")
		return result, nil
	}

	if err := p.Store.Save(routines); err != nil {
		return result, err
	}
	fmt.Fprintf(out, "Successfully added %d routines from image.\n", len(result.Added))
	return result, nil
}

func (p *Processor) minLineLength() int {
	if p.MinLineLength <= 0 {
		return DefaultMinLineLength
	}
	return p.MinLineLength
}

func (p *Processor) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

// MeaningfulLines splits text into lines, trims each, and drops blanks.
func MeaningfulLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// FilterShort keeps lines longer than minLen characters.
func FilterShort(lines []string, minLen int) []string {
	var kept []string
	for _, line := range lines {
		if utf8.RuneCountInString(line) > minLen {
			kept = append(kept, line)
		}
	}
	return kept
}
