package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var ErrNotFound = errors.New("storage: object not found")

// Object describes a stored file.
type Object struct {
	Key         string    `json:"filename"`
	Size        int64     `json:"size"`
	ContentType string    `json:"mimetype,omitempty"`
	ModTime     time.Time `json:"modified_at"`
	URL         string    `json:"url"`
}

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores content under key, replacing any existing object
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Delete removes the object; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Stat returns object metadata or ErrNotFound
	Stat(ctx context.Context, key string) (Object, error)

	// URL returns the public URL for key
	URL(key string) string
}

// Config holds storage configuration
type Config struct {
	Driver  string // local or s3
	BaseDir string // local root directory
	BaseURL string // public URL prefix for stored objects

	Bucket          string
	Region          string
	Endpoint        string // custom S3-compatible endpoint
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string // key prefix inside the bucket
}

// New creates a storage backend based on configuration
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.BaseDir, cfg.BaseURL)
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
