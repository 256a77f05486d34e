// Package embedding turns item images into fixed-length feature vectors.
package embedding

import (
	"context"
	"errors"
)

var (
	// ErrInvalidImage means the uploaded file could not be decoded as an image.
	// The enclosing submission must be rejected, never given a zero vector.
	ErrInvalidImage = errors.New("invalid image")

	// ErrModelUnavailable means the extractor backend is not reachable or
	// failed to initialize.
	ErrModelUnavailable = errors.New("feature extractor unavailable")
)

// Extractor computes a pooled feature vector for an image. Implementations
// must be safe for concurrent use; the backend model is loaded once and
// shared across all calls.
type Extractor interface {
	// Extract converts a decodable raster image into a fixed-length vector.
	Extract(ctx context.Context, imageData []byte) ([]float32, error)
	// Version identifies the extractor model; embeddings from different
	// versions are not comparable.
	Version() string
	// Dim returns the output dimensionality.
	Dim() int
}
