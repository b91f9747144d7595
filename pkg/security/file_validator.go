package security

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Normalized file extension
	DetectedMIME string // MIME type sniffed from content
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed image types
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
	".webp": {{0x52, 0x49, 0x46, 0x46}},                                                   // RIFF header, WEBP checked separately
}

// Allowed MIME type per extension
var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var ErrNoExtension = errors.New("file has no extension")

// ValidateImage performs 3-layer validation of an uploaded image:
// 1. Extension whitelist
// 2. Magic byte verification (content matches extension)
// 3. Sniffed MIME type must match the extension's image type
func ValidateImage(filename string, data []byte) FileValidationResult {
	result := FileValidationResult{
		DetectedMIME: http.DetectContentType(data),
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = ErrNoExtension.Error()
		return result
	}
	result.Extension = ext

	expectedMIME, ok := imageMIMETypes[ext]
	if !ok {
		result.Error = "Only image files are allowed (" + strings.Join(AllowedImageExtensions(), ", ") + ")"
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	if result.DetectedMIME != expectedMIME {
		result.Error = "MIME type not allowed: " + result.DetectedMIME
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}

	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			if ext == ".webp" {
				return len(data) >= 12 && bytes.Equal(data[8:12], []byte("WEBP"))
			}
			return true
		}
	}

	return false
}

// AllowedImageExtensions returns the sorted extension whitelist for error messages
func AllowedImageExtensions() []string {
	extensions := make([]string, 0, len(imageMIMETypes))
	for ext := range imageMIMETypes {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

// SafeFilename rejects path traversal in client-supplied stored filenames.
func SafeFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}
