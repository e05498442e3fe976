package storage

import (
	"path/filepath"
	"strings"
	"time"

	"pinmap/internal/pkg/errs"
)

const (
	// MaxImageSizeMB is the maximum allowed pin image size in megabytes.
	MaxImageSizeMB = 5

	// MaxImageSize is the maximum allowed pin image size in bytes.
	MaxImageSize = MaxImageSizeMB * 1024 * 1024

	// PresignedURLDuration is how long presigned upload and download URLs stay valid.
	PresignedURLDuration = 5 * time.Minute
)

// ExtToMIME maps accepted image extensions to their MIME types.
var ExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// ValidateImageSize checks that fileSize is positive and within MaxImageSize.
func ValidateImageSize(fileSize int64) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	if fileSize > MaxImageSize {
		return errs.NewError(errs.ErrImageSizeTooLarge)
	}

	return nil
}

// ValidateImageType checks that the extension of fileName is an accepted image type
// whose MIME type matches mimeType.
func ValidateImageType(fileName string, mimeType string) *errs.CustomError {
	ext := strings.ToLower(filepath.Ext(fileName))

	expectedMIME, ok := ExtToMIME[ext]
	if !ok {
		return errs.NewError(errs.ErrImageTypeInvalid)
	}

	if expectedMIME != strings.ToLower(mimeType) {
		return errs.NewError(errs.ErrImageTypeInvalid)
	}

	return nil
}
