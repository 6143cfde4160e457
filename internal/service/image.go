package service

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var imageNamePattern = regexp.MustCompile(`^[0-9a-f-]{36}\.(jpg|png|gif|webp)$`)

// Image stores uploaded pictures under "<owner id>/<uuid><ext>".
type Image struct {
	storage   model.Storage
	publicURL string
	maxSize   int64
	logger    *logger.Logger
}

func NewImage(storage model.Storage, publicURL string, maxSize int64, logger *logger.Logger) *Image {
	return &Image{
		storage:   storage,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxSize:   maxSize,
		logger:    logger,
	}
}

// Upload stores the image and returns the URL clients put in image_url.
func (s *Image) Upload(ctx context.Context, callerID uuid.UUID, contentType string, r io.Reader, size int64) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", model.NewValidationError("file", "File must be a JPEG, PNG, GIF or WEBP image")
	}
	if size <= 0 {
		return "", model.NewValidationError("file", "File is empty")
	}
	if size > s.maxSize {
		return "", model.NewValidationError("file", fmt.Sprintf("File must not exceed %d bytes", s.maxSize))
	}

	key := callerID.String() + "/" + uuid.NewString() + ext
	if err := s.storage.Upload(ctx, key, contentType, r, size); err != nil {
		s.logger.Error("Image service: failed to upload image", "key", key, "error", err.Error())
		return "", model.ErrOperationFailed
	}

	s.logger.Info("Image service: image uploaded", "key", key, "size", size)
	return s.publicURL + "/api/images/" + key, nil
}

// Open streams a stored image. The caller closes the body.
func (s *Image) Open(ctx context.Context, ownerID uuid.UUID, name string) (model.Object, error) {
	key, err := imageKey(ownerID, name)
	if err != nil {
		return model.Object{}, err
	}
	obj, err := s.storage.Open(ctx, key)
	if err != nil {
		if model.IsClientError(err) {
			return model.Object{}, err
		}
		s.logger.Error("Image service: failed to open image", "key", key, "error", err.Error())
		return model.Object{}, model.ErrOperationFailed
	}
	return obj, nil
}

// Delete removes an image. Only its uploader may delete it.
func (s *Image) Delete(ctx context.Context, callerID, ownerID uuid.UUID, name string) error {
	key, err := imageKey(ownerID, name)
	if err != nil {
		return err
	}

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		s.logger.Error("Image service: failed to stat image", "key", key, "error", err.Error())
		return model.ErrOperationFailed
	}
	if !exists {
		return model.ErrNotFound
	}
	if ownerID != callerID {
		return model.ErrNotAuthorized
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Error("Image service: failed to delete image", "key", key, "error", err.Error())
		return model.ErrOperationFailed
	}
	s.logger.Info("Image service: image deleted", "key", key)
	return nil
}

func imageKey(ownerID uuid.UUID, name string) (string, error) {
	if !imageNamePattern.MatchString(name) {
		return "", model.ErrNotFound
	}
	return ownerID.String() + "/" + name, nil
}
