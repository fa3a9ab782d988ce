package service

import (
	"context"
	"io"
)

// Uploader stores a file under folder/name and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, name string) (string, error)
	Delete(ctx context.Context, path string) error
}
