// Package ocr turns an image file into text.
//
// Extraction happens in three steps. The image is decoded with any
// registered format (png, jpeg, gif, bmp, tiff, webp). It is normalized to
// opaque RGB and written to a temporary PNG, which the recognizer reads;
// this lets formats the recognizer cannot open directly (multi-picture
// JPEG, palette images with transparency) go through the same path. The
// temporary file is removed as soon as recognition returns, whether or not
// it succeeded.
//
// Failures are typed: ErrImageNotFound, *DecodeError and *RecognitionError.
// Use Stage to name the failing step.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Recognizer extracts text from an image file the recognizer can read
// directly (a PNG written by Extract).
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// RecognizerFunc adapts a function to a Recognizer.
type RecognizerFunc func(ctx context.Context, imagePath string) (string, error)

// Recognize calls f.
func (f RecognizerFunc) Recognize(ctx context.Context, imagePath string) (string, error) {
	return f(ctx, imagePath)
}

// Extract returns the text recognized in the image at path.
func Extract(ctx context.Context, rec Recognizer, path string) (string, error) {
	if rec == nil {
		return "", &RecognitionError{Path: path, Err: errors.New("no recognizer configured")}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrImageNotFound)
		}
		return "", &DecodeError{Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &DecodeError{Path: path, Err: errors.New("path is a directory")}
	}

	img, _, err := DecodeFile(path)
	if err != nil {
		return "", &DecodeError{Path: path, Err: err}
	}

	tmp, err := writeTempPNG(ToRGB(img))
	if err != nil {
		return "", &DecodeError{Path: path, Err: err}
	}
	defer os.Remove(tmp)

	if err := ctx.Err(); err != nil {
		return "", &RecognitionError{Path: path, Err: err}
	}

	text, err := rec.Recognize(ctx, tmp)
	if err != nil {
		return "", &RecognitionError{Path: path, Err: err}
	}
	return text, nil
}
