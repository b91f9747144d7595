package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/internal/usecase"
	"portfolio-cms-backend/pkg/security/antivirus"
	"portfolio-cms-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScanner struct {
	result antivirus.ScanResult
	calls  int
}

func (f *fakeScanner) Scan(_ context.Context, _ string, _ []byte) antivirus.ScanResult {
	f.calls++
	return f.result
}

func (f *fakeScanner) Name() string { return "fake" }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newLocalUploads(t *testing.T, cfg usecase.UploadConfig) (domain.UploadUsecase, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8000/uploads/profile-images")
	require.NoError(t, err)
	return usecase.NewUploadUsecase(store, cfg, nil), store
}

func TestUploadUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store, stat and delete a processed image", func(t *testing.T) {
		uc, _ := newLocalUploads(t, usecase.UploadConfig{MaxBytes: 1 << 20, MaxDimension: 32, JPEGQuality: 80})

		stored, err := uc.StoreProfileImage(ctx, domain.ImageUpload{Filename: "me.png", Data: pngBytes(t, 64, 48)})
		require.NoError(t, err)
		assert.Regexp(t, `^profile-[0-9a-f-]+\.png$`, stored.Filename)
		assert.Equal(t, "me.png", stored.OriginalName)
		assert.Equal(t, 32, stored.Width)
		assert.Equal(t, 24, stored.Height)
		assert.Contains(t, stored.URL, stored.Filename)

		got, err := uc.GetProfileImage(ctx, stored.Filename)
		require.NoError(t, err)
		assert.Equal(t, stored.Size, got.Size)

		require.NoError(t, uc.DeleteProfileImage(ctx, stored.Filename))
		_, err = uc.GetProfileImage(ctx, stored.Filename)
		assertAppError(t, err, http.StatusNotFound, "Image not found")
	})

	t.Run("Should reject an empty upload", func(t *testing.T) {
		uc, _ := newLocalUploads(t, usecase.UploadConfig{})
		_, err := uc.StoreProfileImage(ctx, domain.ImageUpload{Filename: "me.png"})
		assertAppError(t, err, http.StatusBadRequest, "No image file provided. Please upload an image.")
	})

	t.Run("Should reject an oversized upload", func(t *testing.T) {
		uc, _ := newLocalUploads(t, usecase.UploadConfig{MaxBytes: 1 << 20})
		_, err := uc.StoreProfileImage(ctx, domain.ImageUpload{Filename: "big.png", Data: make([]byte, 2<<20)})
		assertAppError(t, err, http.StatusBadRequest, "File too large. Maximum size is 1 MB")
	})

	t.Run("Should reject path traversal in filenames", func(t *testing.T) {
		uc, _ := newLocalUploads(t, usecase.UploadConfig{})
		_, err := uc.GetProfileImage(ctx, "../../etc/passwd")
		assertAppError(t, err, http.StatusBadRequest, "Invalid filename")
	})

	t.Run("Should refuse infected files", func(t *testing.T) {
		scanner := &fakeScanner{result: antivirus.ScanResult{Infected: true, ThreatName: "Eicar-Test-Signature"}}
		uc, _ := newLocalUploads(t, usecase.UploadConfig{Scanner: scanner})

		_, err := uc.StoreProfileImage(ctx, domain.ImageUpload{Filename: "me.png", Data: pngBytes(t, 8, 8)})
		assertAppError(t, err, http.StatusBadRequest, "File rejected by malware scan")
		assert.Equal(t, 1, scanner.calls)
	})

	t.Run("Should fail closed when the scanner is down", func(t *testing.T) {
		scanner := &fakeScanner{result: antivirus.ScanResult{Infected: true, Error: errors.New("connection refused")}}
		uc, _ := newLocalUploads(t, usecase.UploadConfig{Scanner: scanner})

		_, err := uc.StoreProfileImage(ctx, domain.ImageUpload{Filename: "me.png", Data: pngBytes(t, 8, 8)})
		assertAppError(t, err, http.StatusServiceUnavailable, "File scanning is temporarily unavailable")
	})
}
