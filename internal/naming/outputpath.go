// Package naming derives destination paths for resized images.
package naming

import (
	"path/filepath"
	"strings"

	"resize/internal/config"
)

// OutputPath builds the destination for src. The last extension is stripped,
// the suffix is appended to the stem when originals are kept, and the output
// format (or the original extension, case preserved) is appended. The
// filesystem is never consulted.
//
//	photo.JPG                    -> photo.JPG
//	photo.JPG  keep, "_resized"  -> photo_resized.JPG
//	photo.JPG  format "png"      -> photo.png
func OutputPath(src string, cfg config.Config) string {
	stem, ext := splitExt(src)
	if cfg.KeepOriginals {
		stem += cfg.Suffix
	}
	if cfg.OutputFormat != "" {
		ext = cfg.OutputFormat
	}
	return stem + "." + ext
}

// splitExt splits at the last dot of the base name. A path whose base name
// has no dot yields an empty extension.
func splitExt(path string) (stem, ext string) {
	base := filepath.Base(path)
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return path, ""
	}
	cut := len(path) - len(base) + i
	return path[:cut], path[cut+1:]
}
