package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	ioutils "github.com/handiism/podcast-archiver/internal/io"
)

// ErrLocked is returned by Open when another process holds the catalog.
var ErrLocked = errors.New("catalog is locked by another run")

// Store reads and writes the catalog file.
type Store struct {
	path string
	lock *flock.Flock
}

// Open locks the catalog at path for writing.
func Open(path string) (*Store, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock catalog %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return &Store{path: path, lock: lock}, nil
}

// Path returns the catalog file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the catalog. A missing file yields an empty catalog.
func (s *Store) Load() (*Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	cat := New()
	if err := json.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", s.path, err)
	}
	if cat.Podcasts == nil {
		cat.Podcasts = []*Podcast{}
	}
	return cat, nil
}

// Save replaces the catalog file with c.
func (s *Store) Save(c *Catalog) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := ioutils.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Close releases the lock.
func (s *Store) Close() error {
	return s.lock.Unlock()
}

// Marshal encodes c the way Save writes it.
func Marshal(c *Catalog) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return append(data, '\n'), nil
}
