package service

import (
	"io"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
	"github.com/campus-events-hub/portal-api/pkg/storage"
)

type bucketStorage interface {
	Save(bucket, objectPath string, r io.Reader) (*storage.UploadResult, error)
	Delete(bucket, objectPath string) error
}

// UploadService validates and stores image uploads.
type UploadService struct {
	storage bucketStorage
	maxSize int64
	logger  *zap.Logger
}

// NewUploadService constructs the service.
func NewUploadService(store bucketStorage, maxSize int64, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{storage: store, maxSize: maxSize, logger: logger}
}

// Upload stores an image in the named bucket and returns its public URL.
func (s *UploadService) Upload(bucket, filename, contentType string, size int64, r io.Reader) (*storage.UploadResult, error) {
	if !storage.ValidBucket(bucket) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown upload bucket")
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is too large")
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only image uploads are accepted")
	}

	prefix := "banners"
	if bucket == storage.BucketWinner {
		prefix = "photos"
	}
	result, err := s.storage.Save(bucket, storage.ObjectPath(prefix, filename), r)
	if err != nil {
		s.logger.Error("store upload", zap.String("bucket", bucket), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store upload")
	}
	s.logger.Info("image uploaded", zap.String("bucket", bucket), zap.String("path", result.Path))
	return result, nil
}

// Remove deletes a stored object. Missing files are treated as success.
func (s *UploadService) Remove(bucket, objectPath string) error {
	if !storage.ValidBucket(bucket) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown upload bucket")
	}
	if err := s.storage.Delete(bucket, objectPath); err != nil {
		s.logger.Error("delete upload", zap.String("bucket", bucket), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete upload")
	}
	return nil
}
