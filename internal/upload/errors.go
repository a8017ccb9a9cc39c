package upload

import "errors"

var (
	// ErrNotImage is returned for files that are not images.
	ErrNotImage = errors.New("only image files are allowed")
	// ErrTooLarge is returned for files over the size limit.
	ErrTooLarge = errors.New("image is too large")
	// ErrEmptyFile is returned for zero byte uploads.
	ErrEmptyFile = errors.New("file is empty")
	// ErrInvalidFolder is returned for folder names outside [a-z0-9-].
	ErrInvalidFolder = errors.New("invalid folder name")
	// ErrNoFile is returned when no file was passed.
	ErrNoFile = errors.New("no file uploaded")
)

// IsValidation reports whether err was raised by the local checks, before
// anything was sent to the bucket.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNotImage) ||
		errors.Is(err, ErrTooLarge) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrInvalidFolder) ||
		errors.Is(err, ErrNoFile)
}
