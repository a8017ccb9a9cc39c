// Package upload validates images and stores them in the object storage bucket.
package upload

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/metrics"
	"github.com/pzillo/landing/internal/uniuri"
)

const (
	// DefaultFolder is used when the caller names no folder.
	DefaultFolder = "general"
	// DefaultMaxSize is the upload limit when none is configured.
	DefaultMaxSize int64 = 5 * 1024 * 1024

	imagePrefix = "image/"
	svgType     = "image/svg+xml"
)

var folderPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// rasterTypes are the formats accepted after sniffing. Vector images can
// carry scripts and are refused.
var rasterTypes = []string{ //nolint:gochecknoglobals
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/avif",
	"image/bmp",
}

// Bucket is the object storage the helper writes to.
type Bucket interface {
	Put(ctx context.Context, key string, data []byte) error
	PublicURL(key string) string
}

// Result describes a stored upload.
type Result struct {
	// URL is the public address of the stored object.
	URL string `json:"url"`
	// Preview is a data url of the uploaded bytes, usable before URL is reachable.
	Preview string `json:"preview"`
	// Key is the object name inside the bucket.
	Key string `json:"key"`
}

// Helper validates and stores uploaded images.
type Helper struct {
	bucket  Bucket
	maxSize int64
	now     func() time.Time
}

// New creates a helper. A maxSize <= 0 selects DefaultMaxSize.
func New(bucket Bucket, maxSize int64) *Helper {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &Helper{
		bucket:  bucket,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// MaxSize returns the upload limit in bytes.
func (h *Helper) MaxSize() int64 {
	return h.maxSize
}

// Validate checks the declared type and size of a file without touching the bucket.
func (h *Helper) Validate(filename, contentType string, size int64) error {
	if !isImage(contentType) {
		return fmt.Errorf("%w: %s has type %q", ErrNotImage, filename, contentType)
	}

	if size <= 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, filename)
	}

	if size > h.maxSize {
		return fmt.Errorf("%w: %s is %s, the limit is %s",
			ErrTooLarge, filename, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(h.maxSize)))
	}

	return nil
}

// Folder normalizes a folder name, falling back to DefaultFolder.
func Folder(folder string) (string, error) {
	folder = strings.ToLower(strings.TrimSpace(folder))
	if folder == "" {
		return DefaultFolder, nil
	}

	if !folderPattern.MatchString(folder) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFolder, folder)
	}

	return folder, nil
}

// Upload validates fh, stores it below folder and returns its public url and preview.
func (h *Helper) Upload(ctx context.Context, folder string, fh *multipart.FileHeader) (*Result, error) {
	if fh == nil {
		return nil, ErrNoFile
	}

	folder, err := Folder(folder)
	if err != nil {
		h.count(DefaultFolder, err)
		return nil, err
	}

	if err = h.Validate(fh.Filename, fh.Header.Get("Content-Type"), fh.Size); err != nil {
		h.count(folder, err)
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}

	defer func() { _ = f.Close() }()

	return h.Store(ctx, folder, fh.Filename, f)
}

// Store validates the content read from r and writes it to the bucket.
// The declared type is not known here, the sniffed type must be an image.
func (h *Helper) Store(ctx context.Context, folder, filename string, r io.Reader) (*Result, error) {
	folder, err := Folder(folder)
	if err != nil {
		h.count(DefaultFolder, err)
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, h.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	mtype := mimetype.Detect(data)

	err = h.Validate(filename, mtype.String(), int64(len(data)))
	if err == nil && !isRaster(mtype) {
		err = fmt.Errorf("%w: %s is %s", ErrNotImage, filename, mtype)
	}

	if err != nil {
		h.count(folder, err)
		return nil, err
	}

	key := h.key(folder, mtype)

	if err = h.bucket.Put(ctx, key, data); err != nil {
		h.count(folder, err)
		log.Error().Err(err).Str("key", key).Msg("failed to store upload")

		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	h.count(folder, nil)
	metrics.UploadBytes.Add(float64(len(data)))

	res := &Result{
		URL:     h.bucket.PublicURL(key),
		Preview: "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(data),
		Key:     key,
	}

	log.Info().
		Str("key", key).
		Str("type", mtype.String()).
		Str("size", humanize.IBytes(uint64(len(data)))).
		Msg("image uploaded")

	return res, nil
}

// key builds <folder>/<unix-millis>-<random>.<ext>. The extension follows
// the sniffed type, the storage serves objects by extension.
func (h *Helper) key(folder string, mtype *mimetype.MIME) string {
	return fmt.Sprintf("%s/%d-%s%s", folder, h.now().UnixMilli(), uniuri.NewKey(), mtype.Extension())
}

func (h *Helper) count(folder string, err error) {
	result := metrics.Result(err)
	if IsValidation(err) {
		result = metrics.ResultRejected
	}

	metrics.Uploads.WithLabelValues(folder, result).Inc()
}

func isImage(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return strings.HasPrefix(mediaType, imagePrefix) && mediaType != svgType
}

func isRaster(mtype *mimetype.MIME) bool {
	for _, t := range rasterTypes {
		if mtype.Is(t) {
			return true
		}
	}

	return false
}
