package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores exported artifacts (standings CSVs) in an object
// store and hands back a public URL.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
