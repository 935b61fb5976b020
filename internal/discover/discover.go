// Package discover expands command-line inputs into the set of image files
// to process.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Files collects every regular file under roots whose extension is in
// extensions (lowercase, no dot). Regular files are taken as given;
// directories contribute their direct children, or their whole tree when
// recursive is set. Missing roots are skipped. The result is cleaned,
// deduplicated, and sorted.
func Files(fs afero.Fs, roots []string, extensions []string, recursive bool, log zerolog.Logger) ([]string, error) {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[ext] = true
	}

	seen := make(map[string]bool)
	add := func(path string) {
		if !allowed[extension(path)] {
			return
		}
		path = filepath.Clean(path)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		seen[path] = true
	}

	for _, root := range roots {
		log.Debug().Str("path", root).Msg("processing input")

		info, err := fs.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				log.Debug().Str("path", root).Msg("input does not exist, skipping")
				continue
			}
			return nil, err
		}

		if info.Mode().IsRegular() {
			add(root)
			continue
		}
		if !info.IsDir() {
			continue
		}

		if !recursive {
			entries, err := afero.ReadDir(fs, root)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				if entry.Mode().IsRegular() {
					add(filepath.Join(root, entry.Name()))
				}
			}
			continue
		}

		err = afero.Walk(fs, root, func(path string, fi os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if fi.Mode().IsRegular() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(seen))
	for path := range seen {
		files = append(files, path)
	}
	sort.Strings(files)

	log.Debug().Int("count", len(files)).Msg("found files to process")
	return files, nil
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
