package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"regexp"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/shopfront/config"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
)

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var dirPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// MaxImageBytes caps a single image upload (MAX_IMAGE_BYTES, default 5 MB).
func MaxImageBytes() int64 { return config.Int64("MAX_IMAGE_BYTES", 5<<20) }

// UploadImage sniffs the file's content type, stores it as
// uploads/<dir>/<uuid><ext> and returns its public URL. Empty parts yield
// ("", nil) so optional file inputs can be passed through.
func UploadImage(ctx context.Context, d Disk, dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Size == 0 {
		return "", nil
	}
	if !dirPattern.MatchString(dir) {
		return "", fmt.Errorf("storage: invalid upload directory %q", dir)
	}
	if fh.Size > MaxImageBytes() {
		return "", apperrors.Validation(fmt.Sprintf("Image %s exceeds %d bytes", fh.Filename, MaxImageBytes()))
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("storage: open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("storage: read upload: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	ext, ok := imageTypes[contentType]
	if !ok {
		return "", apperrors.Validation(fmt.Sprintf("Unsupported image type for %s", fh.Filename))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("storage: rewind upload: %w", err)
	}

	p := path.Join("uploads", dir, uuid.NewString()+ext)
	if err := d.Put(ctx, p, f, fh.Size, contentType); err != nil {
		return "", err
	}
	return d.URL(p), nil
}

// UploadImages stores every non-empty file and returns their URLs in order.
func UploadImages(ctx context.Context, d Disk, dir string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		u, err := UploadImage(ctx, d, dir, fh)
		if err != nil {
			return urls, err
		}
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
