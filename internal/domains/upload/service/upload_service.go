package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"rentora-backend/internal/infrastructure/storage"
	"rentora-backend/internal/shared/apperror"
	"rentora-backend/pkg/logger"
)

// ObjectStorage is the subset of the MinIO client the upload flow needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// UploadedImage is one stored image with its resized variants.
type UploadedImage struct {
	ID          uuid.UUID         `json:"id"`
	OriginalURL string            `json:"originalUrl"`
	Variants    map[string]string `json:"variants"`
}

type UploadService struct {
	storage   ObjectStorage
	processor *storage.ImageProcessor
}

func NewUploadService(store ObjectStorage, processor *storage.ImageProcessor) *UploadService {
	return &UploadService{
		storage:   store,
		processor: processor,
	}
}

// UploadImage validates one image, stores the original plus resized
// variants under properties/<id>/ and returns the public URLs.
func (s *UploadService) UploadImage(ctx context.Context, data []byte) (*UploadedImage, error) {
	if err := s.processor.ValidateImage(data); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	id := uuid.New()
	contentType, ext := detectImageType(data)

	originalURL, err := s.storage.Upload(ctx, fmt.Sprintf("properties/%s/original.%s", id, ext), data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store original: %w", err)
	}

	urls := make(map[string]string, len(variants))
	for name, variantData := range variants {
		key := fmt.Sprintf("properties/%s/%s.jpg", id, name)
		url, uploadErr := s.storage.Upload(ctx, key, variantData, "image/jpeg")
		if uploadErr != nil {
			logger.Info("Failed to upload image variant", map[string]interface{}{
				"key":   key,
				"error": uploadErr.Error(),
			})
			continue
		}
		urls[name] = url
	}

	return &UploadedImage{
		ID:          id,
		OriginalURL: originalURL,
		Variants:    urls,
	}, nil
}

// UploadImages stores each image in turn. Any invalid file fails the
// whole request so callers never receive a partial set silently.
func (s *UploadService) UploadImages(ctx context.Context, files [][]byte) ([]*UploadedImage, error) {
	images := make([]*UploadedImage, 0, len(files))
	for i, data := range files {
		img, err := s.UploadImage(ctx, data)
		if err != nil {
			if appErr, ok := err.(*apperror.AppError); ok {
				return nil, apperror.BadRequest(fmt.Sprintf("file %d: %s", i+1, appErr.Message))
			}
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// DeleteImage removes the original and all variants of a stored image.
func (s *UploadService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	keys := []string{
		fmt.Sprintf("properties/%s/original.jpg", imageID),
		fmt.Sprintf("properties/%s/original.png", imageID),
		fmt.Sprintf("properties/%s/large.jpg", imageID),
		fmt.Sprintf("properties/%s/medium.jpg", imageID),
		fmt.Sprintf("properties/%s/thumbnail.jpg", imageID),
	}
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.Info("Failed to delete image object", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return nil
}

func detectImageType(data []byte) (contentType, ext string) {
	contentType = http.DetectContentType(data)
	if strings.Contains(contentType, "png") {
		return "image/png", "png"
	}
	return "image/jpeg", "jpg"
}
