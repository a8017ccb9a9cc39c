// Package storage implements the object storage bucket uploaded images are kept in.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/pzillo/landing/internal/config"
)

var (
	// ErrInvalidKey is returned for empty keys or keys escaping the bucket.
	ErrInvalidKey = errors.New("invalid object key")
	// ErrObjectExists is returned when a key is already taken.
	ErrObjectExists = errors.New("object already exists")
)

// Bucket is a flat namespace of objects on an afero filesystem.
// Objects are written once and read through PublicURL.
type Bucket struct {
	fs        afero.Fs
	name      string
	publicURL string
}

// New creates a bucket named name on fs. publicURL is the base the bucket is
// served at, without the bucket name.
func New(fs afero.Fs, name, publicURL string) (*Bucket, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: bucket name %q", ErrInvalidKey, name)
	}

	if err := fs.MkdirAll(name, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", name, err)
	}

	return &Bucket{
		fs:        fs,
		name:      name,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// NewFromConfig creates the bucket below cfg.Path on the local disk.
func NewFromConfig(cfg *config.Storage) (*Bucket, error) {
	if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage path: %w", err)
	}

	return New(afero.NewBasePathFs(afero.NewOsFs(), cfg.Path), cfg.Bucket, cfg.PublicURL)
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Put stores data under key. Existing objects are never overwritten.
func (b *Bucket) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	p, err := b.objectPath(key)
	if err != nil {
		return err
	}

	exists, err := afero.Exists(b.fs, p)
	if err != nil {
		return fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrObjectExists, key)
	}

	if err = b.fs.MkdirAll(path.Dir(p), 0o750); err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", key, err)
	}

	if err = afero.WriteFile(b.fs, p, data, 0o640); err != nil {
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}

	return nil
}

// PublicURL returns the deterministic address of key.
func (b *Bucket) PublicURL(key string) string {
	return b.publicURL + "/" + b.name + "/" + strings.TrimLeft(key, "/")
}

// HTTPFileSystem exposes the bucket read-only for static file serving.
func (b *Bucket) HTTPFileSystem() http.FileSystem {
	return afero.NewHttpFs(afero.NewReadOnlyFs(afero.NewBasePathFs(b.fs, b.name)))
}

func (b *Bucket) objectPath(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}

	return path.Join(b.name, key), nil
}
