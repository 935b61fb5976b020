package imgutil

import (
	"errors"
	"io"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"
)

// Kind identifies an image container detected from file content.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindTIFF
	KindGIF
	KindBMP
	KindWebP
	KindAVIF
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindTIFF:
		return "tiff"
	case KindGIF:
		return "gif"
	case KindBMP:
		return "bmp"
	case KindWebP:
		return "webp"
	case KindAVIF:
		return "avif"
	default:
		return "unknown"
	}
}

// HasExif reports whether the container can carry an EXIF orientation tag
// that decoders ignore.
func (k Kind) HasExif() bool {
	return k == KindJPEG || k == KindTIFF
}

// HeaderSize is the number of leading bytes needed to recognise every
// supported container.
const HeaderSize = 261

var kindsByExtension = map[string]Kind{
	"jpg":  KindJPEG,
	"png":  KindPNG,
	"tif":  KindTIFF,
	"gif":  KindGIF,
	"bmp":  KindBMP,
	"webp": KindWebP,
	"avif": KindAVIF,
}

// DetectHeader inspects leading file bytes for a known image signature.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) == 0 {
		return KindUnknown, errors.New("empty header")
	}

	match, err := filetype.Match(header)
	if err != nil {
		return KindUnknown, err
	}
	if match == filetype.Unknown {
		return KindUnknown, nil
	}
	if kind, ok := kindsByExtension[match.Extension]; ok {
		return kind, nil
	}
	return KindUnknown, nil
}

// SniffFile reads the header of a file on fs to determine its type.
func SniffFile(fs afero.Fs, path string) (Kind, error) {
	f, err := fs.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads up to HeaderSize bytes from r and determines its type.
// Files shorter than the header are still inspected.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return KindUnknown, err
	}

	return DetectHeader(header[:n])
}
