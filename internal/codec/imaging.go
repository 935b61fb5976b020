package codec

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
	_ "golang.org/x/image/webp"

	"resize/internal/config"
	"resize/pkg/imgutil"
)

var filters = map[config.Interpolation]imaging.ResampleFilter{
	config.InterpNearest: imaging.NearestNeighbor,
	config.InterpLinear:  imaging.Linear,
	config.InterpArea:    imaging.Box,
	config.InterpCubic:   imaging.CatmullRom,
	config.InterpLanczos: imaging.Lanczos,
}

// Imaging is the Codec backed by disintegration/imaging. All file access goes
// through fs.
type Imaging struct {
	fs         afero.Fs
	autoOrient bool
}

// New returns an Imaging codec. When autoOrient is set, JPEG and TIFF pixels
// are rotated according to their EXIF orientation on decode, so sizes are
// resolved against the image as displayed.
func New(fs afero.Fs, autoOrient bool) *Imaging {
	return &Imaging{fs: fs, autoOrient: autoOrient}
}

// Decode rejects files whose header is not a known image before reading
// the whole file.
func (c *Imaging) Decode(path string) (image.Image, error) {
	kind, err := imgutil.SniffFile(c.fs, path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if kind == imgutil.KindUnknown {
		return nil, &DecodeError{Path: path, Err: ErrUnsupported}
	}

	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	if c.autoOrient && kind.HasExif() {
		// Broken EXIF leaves the pixels as stored.
		if orientation, err := imgutil.Orientation(bytes.NewReader(data)); err == nil {
			img = orient(img, orientation)
		}
	}
	return img, nil
}

func (c *Imaging) Resize(img image.Image, width, height int, interp config.Interpolation) (out image.Image, err error) {
	if width <= 0 || height <= 0 {
		return nil, &TransformError{Err: fmt.Errorf("invalid target size %dx%d", width, height)}
	}
	filter, ok := filters[interp]
	if !ok {
		return nil, &TransformError{Err: fmt.Errorf("unknown interpolation %q", interp)}
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &TransformError{Err: fmt.Errorf("%v", r)}
		}
	}()
	return imaging.Resize(img, width, height, filter), nil
}

// Encode writes img to a temporary file next to dest and renames it into
// place, so a failed write never leaves a truncated destination. format is
// an extension such as "jpg" or "png".
func (c *Imaging) Encode(img image.Image, dest, format string, quality int) error {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return &WriteError{Path: dest, Err: err}
	}

	mode := os.FileMode(0o644)
	if info, err := c.fs.Stat(dest); err == nil {
		mode = info.Mode().Perm()
	}

	tmpFile, err := afero.TempFile(c.fs, filepath.Dir(dest), "resize-*.tmp")
	if err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	defer c.fs.Remove(tmpFile.Name())

	if err := imaging.Encode(tmpFile, img, f, imaging.JPEGQuality(quality)); err != nil {
		_ = tmpFile.Close()
		return &WriteError{Path: dest, Err: err}
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return &WriteError{Path: dest, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	if err := c.fs.Chmod(tmpFile.Name(), mode); err != nil {
		return &WriteError{Path: dest, Err: err}
	}

	if err := replaceFile(c.fs, tmpFile.Name(), dest); err != nil {
		return &WriteError{Path: dest, Err: err}
	}
	return nil
}

func replaceFile(fs afero.Fs, tmpPath, destPath string) error {
	if err := fs.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := fs.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return fs.Rename(tmpPath, destPath)
}

func orient(img image.Image, orientation int) image.Image {
	switch orientation {
	case imgutil.OrientationFlipH:
		return imaging.FlipH(img)
	case imgutil.OrientationRotate180:
		return imaging.Rotate180(img)
	case imgutil.OrientationFlipV:
		return imaging.FlipV(img)
	case imgutil.OrientationTranspose:
		return imaging.Transpose(img)
	case imgutil.OrientationRotate90CW:
		return imaging.Rotate270(img)
	case imgutil.OrientationTransverse:
		return imaging.Transverse(img)
	case imgutil.OrientationRotate270:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
