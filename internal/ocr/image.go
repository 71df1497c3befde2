package ocr

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeFile opens and decodes the image at path using every registered
// format. It returns the decoded image and the format name.
func DecodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

// IsRGB reports whether img is already an opaque three-channel image.
func IsRGB(img image.Image) bool {
	switch m := img.(type) {
	case *image.YCbCr:
		return true
	case *image.RGBA:
		return m.Opaque()
	case *image.NRGBA:
		return m.Opaque()
	case *image.RGBA64:
		return m.Opaque()
	case *image.NRGBA64:
		return m.Opaque()
	}
	return false
}

// ToRGB returns img unchanged when it is already RGB. Otherwise it draws img
// over a white background so the result is opaque and encodes as RGB.
func ToRGB(img image.Image) image.Image {
	if IsRGB(img) {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// writeTempPNG encodes img to a new temporary PNG file and returns its path.
// The caller removes the file.
func writeTempPNG(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "routines-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	path := f.Name()

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close temp image: %w", err)
	}
	return path, nil
}
