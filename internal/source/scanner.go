package source

import (
	"os"
	"path/filepath"
)

// ScanDir walks a directory and discovers all JSONL export files.
// A missing or non-directory path yields no files rather than an error,
// so callers can point at a default location that may not exist yet.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".jsonl" {
			return nil
		}

		files = append(files, DiscoveredFile{
			Path: path,
			Name: d.Name(),
		})
		return nil
	})

	return files, err
}
