package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/spf13/afero"

	"resize/internal/config"
)

func TestDecodeResizeEncode(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/pics/wide.png", encodePNG(t, 8, 4))
	c := New(fs, true)

	img, err := c.Decode("/pics/wide.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("decoded %dx%d, want 8x4", b.Dx(), b.Dy())
	}

	resized, err := c.Resize(img, 4, 2, config.InterpArea)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}

	if err := c.Encode(resized, "/pics/wide.jpg", "jpg", 80); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	back, err := c.Decode("/pics/wide.jpg")
	if err != nil {
		t.Fatalf("Decode output: %v", err)
	}
	if b := back.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("output %dx%d, want 4x2", b.Dx(), b.Dy())
	}
	assertNoTempFiles(t, fs, "/pics")
}

func TestEncode_OverwritesSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/pics/a.png", encodePNG(t, 10, 10))
	c := New(fs, false)

	img, err := c.Decode("/pics/a.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	small, err := c.Resize(img, 5, 5, config.InterpLanczos)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if err := c.Encode(small, "/pics/a.png", "png", 95); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	again, err := c.Decode("/pics/a.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if again.Bounds().Dx() != 5 {
		t.Errorf("width = %d, want 5", again.Bounds().Dx())
	}
	assertNoTempFiles(t, fs, "/pics")
}

func TestDecode_AppliesOrientation(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/pics/rotated.jpg", withOrientation(encodeJPEG(t, 4, 2), 6))

	img, err := New(fs, true).Decode("/pics/rotated.jpg")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 4 {
		t.Errorf("oriented %dx%d, want 2x4", b.Dx(), b.Dy())
	}

	raw, err := New(fs, false).Decode("/pics/rotated.jpg")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := raw.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("raw %dx%d, want 4x2", b.Dx(), b.Dy())
	}
}

func TestDecode_EveryOrientation(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := New(fs, true)
	for o := uint16(1); o <= 8; o++ {
		path := fmt.Sprintf("/pics/o%d.jpg", o)
		writeFile(t, fs, path, withOrientation(encodeJPEG(t, 4, 2), o))

		img, err := c.Decode(path)
		if err != nil {
			t.Fatalf("Decode(%s): %v", path, err)
		}
		wantW, wantH := 4, 2
		if o >= 5 {
			wantW, wantH = 2, 4
		}
		if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
			t.Errorf("orientation %d: decoded %dx%d, want %dx%d", o, b.Dx(), b.Dy(), wantW, wantH)
		}
	}
}

func TestDecode_Failures(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/pics/notes.jpg", []byte("plain text pretending to be a photo"))
	truncated := encodePNG(t, 16, 16)
	writeFile(t, fs, "/pics/broken.png", truncated[:len(truncated)/2])
	c := New(fs, true)

	var decodeErr *DecodeError
	_, err := c.Decode("/pics/notes.jpg")
	if !errors.As(err, &decodeErr) || !errors.Is(err, ErrUnsupported) {
		t.Errorf("text file: got %v, want DecodeError wrapping ErrUnsupported", err)
	}

	if _, err := c.Decode("/pics/broken.png"); !errors.As(err, &decodeErr) {
		t.Errorf("truncated file: got %v, want DecodeError", err)
	}

	if _, err := c.Decode("/pics/missing.png"); !errors.As(err, &decodeErr) {
		t.Errorf("missing file: got %v, want DecodeError", err)
	}
}

func TestResize_Failures(t *testing.T) {
	c := New(afero.NewMemMapFs(), false)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	var transformErr *TransformError
	if _, err := c.Resize(img, 0, 4, config.InterpLinear); !errors.As(err, &transformErr) {
		t.Errorf("zero width: got %v, want TransformError", err)
	}
	if _, err := c.Resize(img, 2, 2, "bogus"); !errors.As(err, &transformErr) {
		t.Errorf("unknown filter: got %v, want TransformError", err)
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	c := New(afero.NewMemMapFs(), false)
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	var writeErr *WriteError
	if err := c.Encode(img, "/out/a.xyz", "xyz", 90); !errors.As(err, &writeErr) {
		t.Errorf("got %v, want WriteError", err)
	}
}

func TestEncode_ReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/pics/a.png", encodePNG(t, 2, 2))
	c := New(afero.NewReadOnlyFs(base), false)

	img, err := c.Decode("/pics/a.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var writeErr *WriteError
	if err := c.Encode(img, "/pics/a.png", "png", 90); !errors.As(err, &writeErr) {
		t.Errorf("got %v, want WriteError", err)
	}
}

func writeFile(t *testing.T, fs afero.Fs, path string, data []byte) {
	t.Helper()
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func assertNoTempFiles(t *testing.T, fs afero.Fs, dir string) {
	t.Helper()
	matches, err := afero.Glob(fs, dir+"/resize-*.tmp")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradient(w, h)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gradient(w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func gradient(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 0x80, A: 0xff})
		}
	}
	return img
}

func withOrientation(jpegData []byte, orientation uint16) []byte {
	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(1))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0112))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(3))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(1))
	_ = binary.Write(&tiff, binary.LittleEndian, orientation)
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write(jpegData[:2])
	out.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(jpegData[2:])
	return out.Bytes()
}
