package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"

	"bookshelf/internal/catalog"
	"bookshelf/internal/logger"
)

// FileStore keeps the library as one JSON array in a flat file.
type FileStore struct {
	Path string
	// Pretty indents the file for hand editing.
	Pretty bool
}

func NewFileStore(path string, pretty bool) *FileStore {
	return &FileStore{Path: path, Pretty: pretty}
}

// Load returns an empty library when the file does not exist. Content is not
// validated; a decode failure is returned as is.
func (s *FileStore) Load(ctx context.Context) ([]catalog.Book, error) {
	defer logger.Track(ctx, "load "+s.Path)()
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []catalog.Book{}, nil
	}
	if err != nil {
		return nil, err
	}
	var books []catalog.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	if books == nil {
		books = []catalog.Book{}
	}
	return books, nil
}

// Save overwrites the file with the full library.
func (s *FileStore) Save(ctx context.Context, books []catalog.Book) error {
	defer logger.Track(ctx, "save "+s.Path)()
	if books == nil {
		books = []catalog.Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	if s.Pretty {
		data = pretty.Pretty(data)
	}
	return writeFileReplace(s.Path, data)
}

func (s *FileStore) Close() error { return nil }

// writeFileReplace writes into a temp file next to path and renames it over
// path. A failed write leaves the previous file in place. The new file keeps
// the old one's permissions, or 0644 when there was none.
func writeFileReplace(path string, data []byte) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	mode := fs.FileMode(0644)
	if fi, statErr := os.Stat(path); statErr == nil {
		mode = fi.Mode().Perm()
	}
	err = tmp.Chmod(mode)
	if err == nil {
		_, err = tmp.Write(data)
	}
	if err == nil {
		err = tmp.Sync()
	}
	if errClose := tmp.Close(); err == nil {
		err = errClose
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
