package imgutil

import (
	"errors"
	"io"

	exif "github.com/dsoprea/go-exif/v3"
)

// Orientation values defined by the EXIF specification.
const (
	OrientationNormal     = 1
	OrientationFlipH      = 2
	OrientationRotate180  = 3
	OrientationFlipV      = 4
	OrientationTranspose  = 5
	OrientationRotate90CW = 6
	OrientationTransverse = 7
	OrientationRotate270  = 8
)

// Orientation returns the EXIF orientation of the primary image in rs.
// Missing EXIF data or an out-of-range value yields OrientationNormal.
func Orientation(rs io.ReadSeeker) (int, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return OrientationNormal, err
	}

	raw, err := exif.SearchAndExtractExifWithReader(rs)
	if errors.Is(err, exif.ErrNoExif) {
		return OrientationNormal, nil
	}
	if err != nil {
		return OrientationNormal, err
	}

	tags, _, err := exif.GetFlatExifData(raw, nil)
	if err != nil {
		return OrientationNormal, err
	}

	value := 0
	for _, tag := range tags {
		if tag.TagName != "Orientation" {
			continue
		}
		v := firstShort(tag.Value)
		// IFD0 describes the main image; IFD1 is the thumbnail.
		if tag.IfdPath == "IFD" {
			value = v
			break
		}
		if value == 0 {
			value = v
		}
	}

	if value < OrientationNormal || value > OrientationRotate270 {
		return OrientationNormal, nil
	}
	return value, nil
}

func firstShort(value interface{}) int {
	switch v := value.(type) {
	case []uint16:
		if len(v) > 0 {
			return int(v[0])
		}
	case []uint32:
		if len(v) > 0 {
			return int(v[0])
		}
	case uint16:
		return int(v)
	}
	return 0
}
