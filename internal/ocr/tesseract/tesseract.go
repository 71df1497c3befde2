// Package tesseract implements ocr.Recognizer with the Tesseract engine
// through gosseract. Building it requires libtesseract and its headers.
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/nibzard/practice-routines/internal/ocr"
)

// DefaultLanguage is the Tesseract language code used when none is set.
const DefaultLanguage = "eng"

// Recognizer runs Tesseract on an image file.
type Recognizer struct {
	Language string
}

var _ ocr.Recognizer = (*Recognizer)(nil)

// New returns a recognizer for language. Empty means DefaultLanguage.
func New(language string) ocr.Recognizer {
	if language == "" {
		language = DefaultLanguage
	}
	return &Recognizer{Language: language}
}

// Recognize returns all text Tesseract finds in the image at imagePath.
// Tesseract itself cannot be interrupted; ctx is checked before it starts.
func (r *Recognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	lang := r.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	if err := client.SetLanguage(lang); err != nil {
		return "", fmt.Errorf("set language %q: %w", lang, err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return text, nil
}
