package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bucket names accepted for image uploads.
const (
	BucketEventImages = "event-images"
	BucketWinner      = "winner"
)

// UploadResult reports where an uploaded object landed.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// LocalBucketStorage persists uploaded images on disk under per-bucket
// directories and resolves public URLs against a configured base.
type LocalBucketStorage struct {
	baseDir       string
	publicBaseURL string
}

// NewLocalBucketStorage ensures the base directory exists and returns a handle.
func NewLocalBucketStorage(baseDir, publicBaseURL string) (*LocalBucketStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalBucketStorage{baseDir: baseDir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// ValidBucket reports whether the bucket name is one the portal serves.
func ValidBucket(bucket string) bool {
	return bucket == BucketEventImages || bucket == BucketWinner
}

// ObjectPath builds a collision-free relative path for a new upload,
// mirroring the banners/<stamp>-<rand>.<ext> layout the portal links to.
func ObjectPath(prefix, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/%d-%s%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

// Save streams the upload into <base>/<bucket>/<objectPath> and returns the
// public URL plus the stored path.
func (s *LocalBucketStorage) Save(bucket, objectPath string, r io.Reader) (*UploadResult, error) {
	if !ValidBucket(bucket) {
		return nil, fmt.Errorf("unknown bucket %q", bucket)
	}
	rel := filepath.Join(bucket, filepath.FromSlash(objectPath))
	full := filepath.Join(s.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("prepare upload directory: %w", err)
	}
	file, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}
	return &UploadResult{URL: s.PublicURL(bucket, objectPath), Path: objectPath}, nil
}

// Delete removes a stored object if present. Missing files are not an error;
// an admin may already have replaced the image.
func (s *LocalBucketStorage) Delete(bucket, objectPath string) error {
	if !ValidBucket(bucket) {
		return fmt.Errorf("unknown bucket %q", bucket)
	}
	full := filepath.Join(s.baseDir, bucket, filepath.FromSlash(objectPath))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

// PublicURL resolves the browser-facing URL for a stored object.
func (s *LocalBucketStorage) PublicURL(bucket, objectPath string) string {
	return s.publicBaseURL + "/" + path.Join(bucket, objectPath)
}

// Root exposes the directory served by the static file route.
func (s *LocalBucketStorage) Root() string {
	return s.baseDir
}
