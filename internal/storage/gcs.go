package storage

import (
	"context"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSUploader stores private objects. Readers get time-limited signed URLs.
type GCSUploader struct {
	client *gcs.Client
	bucket string
}

func NewGCSUploader(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSUploader, error) {
	c, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCSUploader{client: c, bucket: bucket}, nil
}

// GCSOptions turns optional settings into client options.
func GCSOptions(credentialsFile, endpoint string) []option.ClientOption {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}
	return opts
}

func (u *GCSUploader) Close() error { return u.client.Close() }

func (u *GCSUploader) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	name, err := cleanObjectName(objectName)
	if err != nil {
		return "", err
	}
	obj := u.client.Bucket(u.bucket).Object(name)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return name, nil
}

func (u *GCSUploader) SignedGetURL(_ context.Context, objectName string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return u.client.Bucket(u.bucket).SignedURL(objectName, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(ttl),
	})
}
