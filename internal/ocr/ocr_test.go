package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// recordingRecognizer checks the temp image it is handed and remembers it.
type recordingRecognizer struct {
	t       *testing.T
	text    string
	err     error
	path    string
	wasRGB  bool
	checked bool
}

func (r *recordingRecognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	r.path = imagePath
	img, format, err := DecodeFile(imagePath)
	if err != nil {
		r.t.Errorf("recognizer could not decode temp image: %v", err)
	} else {
		r.checked = true
		r.wasRGB = format == "png" && img.(interface{ Opaque() bool }).Opaque()
	}
	return r.text, r.err
}

func writeImage(t *testing.T, name string, encode func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := encode(f); err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func testNRGBA(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: alpha})
		}
	}
	return img
}

func TestExtractFormats(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(f *os.File) error
	}{
		{"png with alpha", "notes.png", func(f *os.File) error { return png.Encode(f, testNRGBA(128)) }},
		{"jpeg", "notes.jpg", func(f *os.File) error { return jpeg.Encode(f, testNRGBA(255), nil) }},
		{"gif", "notes.gif", func(f *os.File) error { return gif.Encode(f, testNRGBA(255), nil) }},
		{"bmp", "notes.bmp", func(f *os.File) error { return bmp.Encode(f, testNRGBA(255)) }},
		{"gray png", "gray.png", func(f *os.File) error { return png.Encode(f, image.NewGray(image.Rect(0, 0, 3, 3))) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, tt.file, tt.encode)
			rec := &recordingRecognizer{t: t, text: "Practice scales daily"}

			text, err := Extract(context.Background(), rec, path)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if text != "Practice scales daily" {
				t.Errorf("text = %q", text)
			}
			if !rec.checked || !rec.wasRGB {
				t.Errorf("recognizer did not get an opaque PNG (checked=%v rgb=%v)", rec.checked, rec.wasRGB)
			}
			if rec.path == path {
				t.Error("recognizer must read a temp copy, not the source")
			}
			if _, err := os.Stat(rec.path); !os.IsNotExist(err) {
				t.Errorf("temp image not removed: %v", err)
			}
		})
	}
}

func TestExtractNotFound(t *testing.T) {
	rec := &recordingRecognizer{t: t}
	_, err := Extract(context.Background(), rec, filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("err = %v, want ErrImageNotFound", err)
	}
	if Stage(err) != StageNotFound {
		t.Errorf("Stage = %q", Stage(err))
	}
	if rec.path != "" {
		t.Error("recognizer must not run")
	}
}

func TestExtractDecodeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("definitely not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Extract(context.Background(), &recordingRecognizer{t: t}, path)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err = %v, want *DecodeError", err)
	}
	if !errors.Is(err, image.ErrFormat) {
		t.Errorf("expected image.ErrFormat in chain, got %v", err)
	}
	if Stage(err) != StageDecode {
		t.Errorf("Stage = %q", Stage(err))
	}
}

func TestExtractDirectory(t *testing.T) {
	_, err := Extract(context.Background(), &recordingRecognizer{t: t}, t.TempDir())
	if Stage(err) != StageDecode {
		t.Errorf("Stage(%v) = %q, want decode", err, Stage(err))
	}
}

func TestExtractRecognitionFailureRemovesTemp(t *testing.T) {
	path := writeImage(t, "notes.png", func(f *os.File) error { return png.Encode(f, testNRGBA(255)) })
	boom := errors.New("engine crashed")
	rec := &recordingRecognizer{t: t, err: boom}

	_, err := Extract(context.Background(), rec, path)
	var recErr *RecognitionError
	if !errors.As(err, &recErr) {
		t.Fatalf("err = %v, want *RecognitionError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("cause lost: %v", err)
	}
	if Stage(err) != StageRecognize {
		t.Errorf("Stage = %q", Stage(err))
	}
	if _, statErr := os.Stat(rec.path); !os.IsNotExist(statErr) {
		t.Errorf("temp image not removed after failure: %v", statErr)
	}
}

func TestExtractCanceled(t *testing.T) {
	path := writeImage(t, "notes.png", func(f *os.File) error { return png.Encode(f, testNRGBA(255)) })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recordingRecognizer{t: t}
	_, err := Extract(ctx, rec, path)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if rec.path != "" {
		t.Error("recognizer must not run after cancel")
	}
}

func TestExtractNilRecognizer(t *testing.T) {
	if Stage(mustErr(Extract(context.Background(), nil, "x.png"))) != StageRecognize {
		t.Error("nil recognizer should be a recognition failure")
	}
}

func mustErr(_ string, err error) error { return err }

func TestToRGB(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range opaque.Pix {
		opaque.Pix[i] = 0xff
	}
	if got := ToRGB(opaque); got != image.Image(opaque) {
		t.Error("opaque RGBA should be returned unchanged")
	}

	ycc := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
	if got := ToRGB(ycc); got != image.Image(ycc) {
		t.Error("YCbCr should be returned unchanged")
	}

	transparent := testNRGBA(0)
	got := ToRGB(transparent)
	if !IsRGB(got) {
		t.Fatal("converted image is not RGB")
	}
	r, g, b, _ := got.At(0, 0).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("fully transparent pixel should flatten to white, got %v %v %v", r, g, b)
	}

	paletted := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	if IsRGB(paletted) {
		t.Error("paletted image is not RGB")
	}
	if !IsRGB(ToRGB(paletted)) {
		t.Error("paletted image should convert to RGB")
	}
}

func TestStage(t *testing.T) {
	if Stage(nil) != "" {
		t.Error("nil error has no stage")
	}
	if Stage(errors.New("other")) != "" {
		t.Error("unrelated error has no stage")
	}
}

func TestRecognizerFunc(t *testing.T) {
	var rec Recognizer = RecognizerFunc(func(ctx context.Context, p string) (string, error) {
		return "from " + p, nil
	})
	got, err := rec.Recognize(context.Background(), "a.png")
	if err != nil || got != "from a.png" {
		t.Errorf("got %q, %v", got, err)
	}
}
