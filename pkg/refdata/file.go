package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Sternrassler/dota2-api-client/pkg/metrics"
)

// FileStore keeps each set as an indented JSON file in Dir.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir. The directory is created
// on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file path of key.
func (s *FileStore) Path(key Key) string {
	return filepath.Join(s.dir, key.FileName())
}

// Get reads the entry for key. Returns ErrNotFound if the file doesn't exist.
func (s *FileStore) Get(ctx context.Context, key Key) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.RefDataMisses.WithLabelValues("file").Inc()
			return nil, ErrNotFound
		}
		metrics.RefDataErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("read %s: %w", key.FileName(), err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		metrics.RefDataErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEntry, key.FileName(), err)
	}

	metrics.RefDataHits.WithLabelValues("file").Inc()
	return &entry, nil
}

// Set writes the entry for key, indented with four spaces. The file is
// written to a temporary name first and renamed into place.
func (s *FileStore) Set(ctx context.Context, key Key, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("reference data entry cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry, "", "    ")
	if err != nil {
		metrics.RefDataErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		metrics.RefDataErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("create %s: %w", s.dir, err)
	}

	path := s.Path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		metrics.RefDataErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		metrics.RefDataErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Delete removes the file for key. A missing file is not an error.
func (s *FileStore) Delete(ctx context.Context, key Key) error {
	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		metrics.RefDataErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("remove %s: %w", key.FileName(), err)
	}
	return nil
}
