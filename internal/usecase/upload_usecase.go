package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
	"portfolio-cms-backend/pkg/imageproc"
	"portfolio-cms-backend/pkg/logger"
	"portfolio-cms-backend/pkg/security"
	"portfolio-cms-backend/pkg/security/antivirus"
	"portfolio-cms-backend/pkg/storage"
)

const imageNotFoundMsg = "Image not found"

type UploadConfig struct {
	MaxBytes     int64
	MaxDimension int
	JPEGQuality  int
	// Scanner, when set, must pass every image before it is stored.
	Scanner antivirus.Scanner
}

type uploadUsecase struct {
	store storage.Storage
	cfg   UploadConfig
	audit *security.SecurityLogger
}

func NewUploadUsecase(store storage.Storage, cfg UploadConfig, audit *security.SecurityLogger) domain.UploadUsecase {
	if audit == nil {
		audit = security.DefaultLogger()
	}
	return &uploadUsecase{store: store, cfg: cfg, audit: audit}
}

func (u *uploadUsecase) reject(ctx context.Context, filename, reason string) {
	u.audit.Log(ctx, security.SecurityEvent{
		Event:        security.EventUploadRejected,
		SubjectType:  "filename",
		SubjectValue: filename,
		Details:      map[string]interface{}{"reason": reason},
	})
}

func (u *uploadUsecase) StoreProfileImage(ctx context.Context, img domain.ImageUpload) (*domain.StoredImage, error) {
	if len(img.Data) == 0 {
		return nil, apperror.BadRequest("No image file provided. Please upload an image.")
	}
	if u.cfg.MaxBytes > 0 && int64(len(img.Data)) > u.cfg.MaxBytes {
		u.reject(ctx, img.Filename, "too_large")
		return nil, apperror.BadRequest(fmt.Sprintf("File too large. Maximum size is %d MB", u.cfg.MaxBytes>>20))
	}

	check := security.ValidateImage(img.Filename, img.Data)
	if !check.Valid {
		u.reject(ctx, img.Filename, check.Error)
		return nil, apperror.BadRequest(check.Error)
	}

	if u.cfg.Scanner != nil {
		verdict := u.cfg.Scanner.Scan(ctx, img.Filename, img.Data)
		if verdict.Error != nil {
			logger.Log.Error("malware scan failed", "scanner", u.cfg.Scanner.Name(), "error", verdict.Error)
			u.reject(ctx, img.Filename, "scan_failed")
			return nil, apperror.Unavailable("File scanning is temporarily unavailable", verdict.Error)
		}
		if verdict.Infected {
			u.audit.Log(ctx, security.SecurityEvent{
				Event:        security.EventMalwareDetected,
				SubjectType:  "filename",
				SubjectValue: img.Filename,
				Details:      map[string]interface{}{"threat": verdict.ThreatName, "scanner": u.cfg.Scanner.Name()},
			})
			return nil, apperror.BadRequest("File rejected by malware scan")
		}
	}

	processed, err := imageproc.Process(img.Data, check.Extension, imageproc.Options{
		MaxDimension: u.cfg.MaxDimension,
		JPEGQuality:  u.cfg.JPEGQuality,
	})
	if err != nil {
		u.reject(ctx, img.Filename, "undecodable")
		return nil, apperror.BadRequest("Invalid image file")
	}

	key := "profile-" + uuid.NewString() + processed.Ext
	size := int64(len(processed.Data))
	if err := u.store.Save(ctx, key, bytes.NewReader(processed.Data), size, processed.ContentType); err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.StoredImage{
		Filename:     key,
		OriginalName: img.Filename,
		Size:         size,
		MimeType:     processed.ContentType,
		URL:          u.store.URL(key),
		Width:        processed.Width,
		Height:       processed.Height,
	}, nil
}

func (u *uploadUsecase) GetProfileImage(ctx context.Context, filename string) (*domain.StoredImage, error) {
	if filename == "" {
		return nil, apperror.BadRequest("Filename is required")
	}
	if !security.SafeFilename(filename) {
		return nil, apperror.BadRequest("Invalid filename")
	}
	obj, err := u.store.Stat(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NotFound(imageNotFoundMsg)
		}
		return nil, apperror.Internal(err)
	}
	return &domain.StoredImage{
		Filename:   obj.Key,
		Size:       obj.Size,
		MimeType:   obj.ContentType,
		URL:        obj.URL,
		ModifiedAt: obj.ModTime,
	}, nil
}

func (u *uploadUsecase) DeleteProfileImage(ctx context.Context, filename string) error {
	if _, err := u.GetProfileImage(ctx, filename); err != nil {
		return err
	}
	if err := u.store.Delete(ctx, filename); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
