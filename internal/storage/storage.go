package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}

// CVObjectName builds cvs/<owner>/<uuid>.<ext>.
func CVObjectName(ownerID, ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	name := uuid.NewString()
	if ext != "" {
		name += "." + ext
	}
	return path.Join("cvs", ownerID, name)
}

func cleanObjectName(objectName string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(objectName))[1:]
	if clean == "" || clean != strings.TrimPrefix(objectName, "/") {
		return "", fmt.Errorf("invalid object name %q", objectName)
	}
	return clean, nil
}
