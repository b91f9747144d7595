package domain

import (
	"context"
	"time"
)

// ImageUpload is a raw image received from a client.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// StoredImage describes an image after validation, processing and storage.
type StoredImage struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName,omitempty"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimetype"`
	URL          string    `json:"url"`
	Path         string    `json:"path,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	ModifiedAt   time.Time `json:"modified_at,omitempty"`
}

type UploadUsecase interface {
	// StoreProfileImage validates, downsizes and stores an image under a new unique name.
	StoreProfileImage(ctx context.Context, img ImageUpload) (*StoredImage, error)
	GetProfileImage(ctx context.Context, filename string) (*StoredImage, error)
	DeleteProfileImage(ctx context.Context, filename string) error
}
