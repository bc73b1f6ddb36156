package uploader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/craftfolio/craftfolio-server/internal/config"
)

// MaxImageSize is the largest accepted profile image (5 MiB).
const MaxImageSize = 5 << 20

var (
	ErrUpload   = errors.New("image upload failed")
	ErrTooLarge = errors.New("image exceeds 5 MB limit")
	ErrNotImage = errors.New("only image files are allowed")
)

// Result is what every provider returns for a stored image.
type Result struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
}

// Uploader forwards an image buffer to a storage provider and returns
// its durable public URL. A single failed attempt surfaces to the
// caller; there is no retry policy.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, contentType, folder string) (*Result, error)
}

// CheckImage runs the shared guards applied before any provider call.
func CheckImage(size int64, contentType string) error {
	if size > MaxImageSize {
		return ErrTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}
	return nil
}

// New selects the storage provider configured at startup.
func New(cfg config.Config) (Uploader, error) {
	switch cfg.StorageProvider {
	case "cloudinary":
		return NewCloudinary(cfg.Cloudinary), nil
	case "imagekit":
		return NewImageKit(cfg.ImageKit), nil
	case "s3":
		return NewS3(cfg.S3)
	case "disk":
		return NewDisk(cfg.UploadDir, cfg.UploadBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.StorageProvider)
	}
}
