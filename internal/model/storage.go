package model

import (
	"context"
	"io"
)

// Object is a stored blob opened for reading.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Storage is an object store for uploaded images.
type Storage interface {
	Upload(ctx context.Context, key, contentType string, reader io.Reader, size int64) error
	Open(ctx context.Context, key string) (Object, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
