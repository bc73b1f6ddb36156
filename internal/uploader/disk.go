package uploader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Disk stores images on the local filesystem. The monolith serves the
// upload directory itself under /uploads/.
type Disk struct {
	dir     string
	baseURL string
}

func NewDisk(dir, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return &Disk{dir: dir, baseURL: baseURL}, nil
}

func (d *Disk) Upload(_ context.Context, data []byte, filename, _, _ string) (*Result, error) {
	name := uuid.New().String() + "_" + filepath.Base(filename)
	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return &Result{
		URL:    d.baseURL + "/uploads/" + name,
		FileID: name,
	}, nil
}
