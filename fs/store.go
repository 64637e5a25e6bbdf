// Package fs provides JSON file storage for OxxFile records on an afero
// filesystem, matching the upstream one-record-per-file layout.
package fs

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/streamplay/vikinglink"
)

// Store reads and writes OxxFile records as JSON files.
type Store struct {
	fs afero.Fs
}

// NewStore creates a Store over the given filesystem. Pass
// afero.NewOsFs() for real disk access or afero.NewMemMapFs() in tests.
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// ReadOxxFile parses a single record file.
func (s *Store) ReadOxxFile(path string) (*vikinglink.OxxFile, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, vikinglink.Errorf(vikinglink.ENOTFOUND, "read %s: %v", path, err)
	}

	var file vikinglink.OxxFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, vikinglink.Errorf(vikinglink.EINVALID, "parse %s: %v", path, err)
	}

	return &file, nil
}

// WriteOxxFile writes a record as indented JSON, creating parent
// directories as needed.
func (s *Store) WriteOxxFile(file *vikinglink.OxxFile, path string) error {
	if err := file.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return afero.WriteFile(s.fs, path, append(data, '\n'), 0o644)
}

// ReadAllOxxFiles parses every .json file directly under dir, sorted by
// file name for stable ordering. Files that fail to parse abort the
// read; partial directory loads would silently skew statistics.
func (s *Store) ReadAllOxxFiles(dir string) ([]*vikinglink.OxxFile, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, vikinglink.Errorf(vikinglink.ENOTFOUND, "read dir %s: %v", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	files := make([]*vikinglink.OxxFile, 0, len(paths))
	for _, path := range paths {
		file, err := s.ReadOxxFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}
