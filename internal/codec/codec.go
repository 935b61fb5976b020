// Package codec wraps the pixel-level decode, resize, and encode primitives
// used by the batch processor.
package codec

import (
	"errors"
	"image"

	"resize/internal/config"
)

// Codec decodes, resamples, and encodes images. Implementations must be safe
// for concurrent use by workers operating on distinct paths.
type Codec interface {
	Decode(path string) (image.Image, error)
	Resize(img image.Image, width, height int, interp config.Interpolation) (image.Image, error)
	Encode(img image.Image, dest, format string, quality int) error
}

// ErrUnsupported reports content that is not a recognised image container.
var ErrUnsupported = errors.New("unsupported image format")

// DecodeError reports an unreadable, unsupported, or corrupt source.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return "decode " + e.Path + ": " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// TransformError reports a failed resample.
type TransformError struct {
	Err error
}

func (e *TransformError) Error() string { return "resize: " + e.Err.Error() }
func (e *TransformError) Unwrap() error { return e.Err }

// WriteError reports a failed encode or write of the destination.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return "write " + e.Path + ": " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }
