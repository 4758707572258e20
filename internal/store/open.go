package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFile is the database file name used by the sqlite backend.
const SQLiteFile = "tada.db"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds a Store on the named backend rooted at dir.
// The returned Closer releases the backend and is never nil on success.
func Open(backend, dir string) (*Store, io.Closer, error) {
	switch backend {
	case BackendFile, "":
		slot, err := jsonstore.New(dir)
		if err != nil {
			return nil, nil, err
		}
		return New(slot), nopCloser{}, nil
	case BackendSQLite:
		if dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("mkdir: %w", err)
			}
		}
		slot, err := sqlitestore.Open(filepath.Join(dir, SQLiteFile))
		if err != nil {
			return nil, nil, err
		}
		return New(slot), slot, nil
	case BackendMemory:
		return New(memstore.New()), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", backend)
}
