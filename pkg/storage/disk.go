// Package storage stores uploaded files on a local directory or an
// S3-compatible bucket behind one Disk interface.
//
//	mgr, _ := storage.NewManager(ctx)
//	url, err := storage.UploadImage(ctx, mgr.Default(), "products", fileHeader)
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a path does not exist on a disk.
var ErrNotFound = errors.New("storage: file not found")

// Disk is a flat key/value file store addressed by slash-separated paths.
type Disk interface {
	// Name is the disk's configured name ("local", "s3").
	Name() string

	// Put writes r to path. size may be -1 when unknown.
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error

	// Open returns the file content. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes path. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// URL is the public address of path.
	URL(path string) string
}
