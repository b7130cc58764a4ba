package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalUploader writes objects under a directory on disk.
type LocalUploader struct {
	dir string
}

func NewLocalUploader(dir string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalUploader{dir: dir}, nil
}

func (u *LocalUploader) Upload(ctx context.Context, objectName string, _ string, r io.Reader) (string, error) {
	name, err := cleanObjectName(objectName)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(u.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := os.Rename(f.Name(), dst); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

// Open reads a stored object back.
func (u *LocalUploader) Open(objectName string) (io.ReadCloser, error) {
	name, err := cleanObjectName(objectName)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(u.dir, filepath.FromSlash(name)))
}
