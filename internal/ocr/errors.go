package ocr

import (
	"errors"
	"fmt"
)

// ErrImageNotFound is returned when the image path does not exist.
var ErrImageNotFound = errors.New("image file not found")

// DecodeError is returned when the image cannot be opened, decoded, or
// re-encoded for the recognizer.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RecognitionError is returned when the recognizer fails on a decoded image.
type RecognitionError struct {
	Path string
	Err  error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognize text in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// Stage names.
const (
	StageNotFound  = "not_found"
	StageDecode    = "decode"
	StageRecognize = "recognize"
)

// Stage reports which step of extraction err came from, or "" if err is
// not an extraction failure.
func Stage(err error) string {
	var decodeErr *DecodeError
	var recognizeErr *RecognitionError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrImageNotFound):
		return StageNotFound
	case errors.As(err, &decodeErr):
		return StageDecode
	case errors.As(err, &recognizeErr):
		return StageRecognize
	}
	return ""
}
