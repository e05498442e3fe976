package handler

import (
	"context"
	"net/http"
	"strings"

	"pinmap/internal/app/gate"
	"pinmap/internal/app/storage"
	"pinmap/internal/app/user"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/randx"
	"pinmap/internal/pkg/req"
)

// PresignUploadInput describes an image the client wants to upload directly to storage.
type PresignUploadInput struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
}

// PresignUploadResult carries the presigned PUT URL and the key to reference in createPin.
type PresignUploadResult struct {
	PresignedURL string `json:"presignedUrl"`
	ImageKey     string `json:"imageKey"`
}

// ImageUploadInput is a multipart image streamed through the API.
// The body is parsed only after the gate admitted the caller.
type ImageUploadInput struct {
	w http.ResponseWriter
	r *http.Request
}

// ImageRef is the stored image reference returned after an upload.
type ImageRef struct {
	ImageKey string `json:"imageKey"`
}

// DownloadInput names a stored image.
type DownloadInput struct {
	Key string
}

// DownloadResult carries a time-limited read URL.
type DownloadResult struct {
	URL string `json:"url"`
}

func storageOrErr(deps *AppDeps) (storage.StorageService, error) {
	if deps.Storage == nil {
		return nil, errs.NewError(errs.ErrStorageFailed)
	}
	return deps.Storage, nil
}

// HandlePresignImageUpload returns a presigned URL for uploading a pin image.
func HandlePresignImageUpload(deps *AppDeps) http.HandlerFunc {
	op := gate.Authenticated("presignImageUpload", func(ctx context.Context, input PresignUploadInput) (PresignUploadResult, error) {
		store, err := storageOrErr(deps)
		if err != nil {
			return PresignUploadResult{}, err
		}

		if err := storage.ValidateImageSize(input.FileSize); err != nil {
			return PresignUploadResult{}, err
		}
		if err := storage.ValidateImageType(input.FileName, input.MimeType); err != nil {
			return PresignUploadResult{}, err
		}

		key, err := randx.ImageKey(user.CurrentUser(ctx).ID, input.FileName)
		if err != nil {
			return PresignUploadResult{}, errs.NewError(errs.ErrUnknown, err)
		}

		url, err := store.PresignUpload(ctx, key, input.MimeType, input.FileSize, storage.PresignedURLDuration)
		if err != nil {
			return PresignUploadResult{}, errs.NewError(errs.ErrStorageFailed)
		}

		return PresignUploadResult{PresignedURL: url, ImageKey: key}, nil
	})

	return serve(op, func(w http.ResponseWriter, r *http.Request) (PresignUploadInput, *errs.CustomError) {
		var input PresignUploadInput
		if err := req.BindJSON(w, r, &input); err != nil {
			return PresignUploadInput{}, err
		}
		return input, nil
	})
}

// HandleUploadImage accepts a multipart "file" field and streams it to storage.
func HandleUploadImage(deps *AppDeps) http.HandlerFunc {
	op := gate.Authenticated("uploadImage", func(ctx context.Context, input ImageUploadInput) (ImageRef, error) {
		store, err := storageOrErr(deps)
		if err != nil {
			return ImageRef{}, err
		}

		if err := req.SetupMultipart(input.w, input.r); err != nil {
			return ImageRef{}, err
		}

		file, header, err := input.r.FormFile("file")
		if err != nil {
			return ImageRef{}, errs.NewError(errs.ErrFormParseFailed)
		}
		defer file.Close()

		mimeType := header.Header.Get("Content-Type")
		if err := storage.ValidateImageSize(header.Size); err != nil {
			return ImageRef{}, err
		}
		if err := storage.ValidateImageType(header.Filename, mimeType); err != nil {
			return ImageRef{}, err
		}

		key, err := randx.ImageKey(user.CurrentUser(ctx).ID, header.Filename)
		if err != nil {
			return ImageRef{}, errs.NewError(errs.ErrUnknown, err)
		}

		if err := store.Upload(ctx, key, mimeType, file); err != nil {
			return ImageRef{}, errs.NewError(errs.ErrStorageFailed)
		}

		return ImageRef{ImageKey: key}, nil
	})

	return serve(op, func(w http.ResponseWriter, r *http.Request) (ImageUploadInput, *errs.CustomError) {
		return ImageUploadInput{w: w, r: r}, nil
	})
}

// HandlePresignImageDownload returns a presigned read URL for a stored pin image.
func HandlePresignImageDownload(deps *AppDeps) http.HandlerFunc {
	op := gate.Authenticated("presignImageDownload", func(ctx context.Context, input DownloadInput) (DownloadResult, error) {
		if !strings.HasPrefix(input.Key, randx.ImageKeyPrefix) || strings.Contains(input.Key, "..") {
			return DownloadResult{}, errs.NewError(errs.ErrInvalidParams)
		}

		store, err := storageOrErr(deps)
		if err != nil {
			return DownloadResult{}, err
		}

		url, err := store.PresignDownload(ctx, input.Key, storage.PresignedURLDuration)
		if err != nil {
			return DownloadResult{}, errs.NewError(errs.ErrStorageFailed)
		}

		return DownloadResult{URL: url}, nil
	})

	return serve(op, func(w http.ResponseWriter, r *http.Request) (DownloadInput, *errs.CustomError) {
		return DownloadInput{Key: r.URL.Query().Get("key")}, nil
	})
}
