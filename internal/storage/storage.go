// Package storage provides image storage backends for uploaded item photos.
package storage

import (
	"context"
	"fmt"

	"github.com/kozaktomas/lost-found/internal/config"
)

// ImageStore stores and retrieves uploaded item images by key.
type ImageStore interface {
	// Save stores image data under a fresh unique key and returns the key.
	// The original filename is only used to preserve the extension.
	Save(ctx context.Context, data []byte, originalName string) (string, error)
	// Read returns the raw bytes of a stored image.
	Read(ctx context.Context, key string) ([]byte, error)
	// Remove deletes a single stored image.
	Remove(ctx context.Context, key string) error
	// Clear removes every stored image. Destructive, used by bulk reset only.
	Clear(ctx context.Context) error
}

// New creates the image store selected by the config.
func New(cfg *config.StorageConfig) (ImageStore, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStore(cfg.LocalDir)
	case "minio":
		return NewMinIOStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
