package embedding

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// createTestImage creates a solid-colored test image.
func createTestImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, c)
		}
	}
	return img
}

// encodeJPEG encodes an image as JPEG bytes.
func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestPrepareImageInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not an image")},
		{"truncated jpeg", []byte{0xFF, 0xD8, 0xFF}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PrepareImage(tc.data, 512)
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("expected ErrInvalidImage, got %v", err)
			}
		})
	}
}

func TestPrepareImagePassthrough(t *testing.T) {
	data := encodeJPEG(t, createTestImage(100, 80, color.White))

	prepared, err := PrepareImage(data, 512)
	if err != nil {
		t.Fatalf("PrepareImage failed: %v", err)
	}
	if !bytes.Equal(prepared, data) {
		t.Error("small image should pass through byte-identical")
	}
}

func TestPrepareImageKeepsFormatWhenSmall(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(100, 80, color.White)); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	prepared, err := PrepareImage(buf.Bytes(), 512)
	if err != nil {
		t.Fatalf("PrepareImage failed: %v", err)
	}

	// Callers labeling the prepared bytes must detect the type rather than
	// assume JPEG: a small PNG passes through unconverted.
	if got := DetectMIMEType(prepared); got != "image/png" {
		t.Errorf("expected image/png after passthrough, got %s", got)
	}
}

func TestPrepareImageDownscale(t *testing.T) {
	data := encodeJPEG(t, createTestImage(1024, 768, color.RGBA{100, 150, 200, 255}))

	prepared, err := PrepareImage(data, 512)
	if err != nil {
		t.Fatalf("PrepareImage failed: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(prepared))
	if err != nil {
		t.Fatalf("failed to decode prepared image: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 512 {
		t.Errorf("expected width 512, got %d", bounds.Dx())
	}
	if bounds.Dy() != 384 {
		t.Errorf("expected height 384 (aspect preserved), got %d", bounds.Dy())
	}
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}, "image/jpeg"},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "image/png"},
		{"gif", []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0, 0}, "image/gif"},
		{"webp", []byte{0x52, 0x49, 0x46, 0x46, 0, 0, 0, 0, 0x57, 0x45, 0x42, 0x50}, "image/webp"},
		{"unknown", []byte{0, 1, 2, 3, 4, 5, 6, 7}, "application/octet-stream"},
		{"too short", []byte{0xFF}, "application/octet-stream"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectMIMEType(tc.data); got != tc.expected {
				t.Errorf("DetectMIMEType = %s; want %s", got, tc.expected)
			}
		})
	}
}
