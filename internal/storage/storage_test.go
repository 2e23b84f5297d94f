package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/logger"
)

func sampleBooks() []catalog.Book {
	return []catalog.Book{
		{Title: "Dune", Author: "Herbert", Year: 1965, Genre: catalog.ScienceFiction, Read: true},
		{Title: "Emma", Author: "Jane Austen", Year: 1815, Genre: catalog.Romance},
		{Title: "Dune", Author: "Herbert", Year: 1965, Genre: catalog.ScienceFiction},
		{Title: "Ünïcödé & <tags>", Author: "", Year: 999, Genre: "Cookbook"},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, prettyOut := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "library.txt")
		s := NewFileStore(path, prettyOut)
		require.NoError(t, s.Save(ctx, sampleBooks()))
		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleBooks(), got)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.txt"), false)
	books, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestFileStoreMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "Dune",`), 0644))
	_, err := NewFileStore(path, false).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestFileStoreEmptySavedAsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	s := NewFileStore(path, false)
	require.NoError(t, s.Save(context.Background(), nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestFileStoreFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	s := NewFileStore(path, false)
	require.NoError(t, s.Save(context.Background(), sampleBooks()[:1]))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"Dune","author":"Herbert","year":1965,"genre":"Science Fiction","read":true}]`, string(data))
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.db")
	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)

	books, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	require.NoError(t, s.Save(ctx, sampleBooks()))
	require.NoError(t, s.Save(ctx, sampleBooks()[:2]))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleBooks()[:2], got)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := Open(ctx, config.LibraryConfig{Driver: DriverJSON, Path: filepath.Join(dir, "l.txt")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, b)

	b, err = Open(ctx, config.LibraryConfig{Driver: DriverSQLite, Path: filepath.Join(dir, "l.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, b)
	require.NoError(t, b.Close())

	_, err = Open(ctx, config.LibraryConfig{Driver: "csv"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	problems, err := Validate([]byte(`[{"title":"Dune","author":"Herbert","year":1965,"genre":"Science Fiction","read":true}]`))
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = Validate([]byte(`[{"title":"Dune","year":"1965","genre":"Cookbook","read":true}]`))
	require.NoError(t, err)
	assert.Len(t, problems, 3)

	problems, err = Validate([]byte(`{"title":"Dune"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, problems)

	_, err = Validate([]byte(`not json`))
	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, NewFileStore(path, true).Save(context.Background(), sampleBooks()[:2]))
	problems, err := ValidateFile(path)
	require.NoError(t, err)
	assert.Empty(t, problems)

	_, err = ValidateFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestFileStoreKeepsPermissions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.txt")
	require.NoError(t, NewFileStore(fresh, false).Save(ctx, sampleBooks()))
	fi, err := os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), fi.Mode().Perm())

	shared := filepath.Join(dir, "shared.txt")
	require.NoError(t, os.WriteFile(shared, []byte("[]"), 0644))
	require.NoError(t, os.Chmod(shared, 0664))
	require.NoError(t, NewFileStore(shared, false).Save(ctx, sampleBooks()))
	fi, err = os.Stat(shared)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0664), fi.Mode().Perm())
}

func TestFileStoreTracksSlowSave(t *testing.T) {
	var buf bytes.Buffer
	std := logrus.StandardLogger()
	oldOut, oldSlow := std.Out, logger.SlowThreshold
	defer func() {
		std.SetOutput(oldOut)
		logger.SlowThreshold = oldSlow
	}()
	std.SetOutput(&buf)
	logger.SlowThreshold = -1

	path := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, NewFileStore(path, false).Save(context.Background(), sampleBooks()))
	assert.Contains(t, buf.String(), "save "+path+" completed (SLOW)")
}
