package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookshelf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
library:
  path: /tmp/books.db
  driver: sqlite
log:
  level: debug
  json: true
metrics:
  textfile: /tmp/bookshelf.prom
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/books.db", cfg.Library.Path)
	assert.Equal(t, "sqlite", cfg.Library.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "/tmp/bookshelf.prom", cfg.Metrics.Textfile)
	// untouched sections keep defaults
	assert.Equal(t, ".bookshelf_history", cfg.CLI.HistoryFile)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "library:\n  path: from-file.txt\n")
	t.Setenv("BOOKSHELF_LIBRARY_PATH", "from-env.txt")
	t.Setenv("BOOKSHELF_LOG_LEVEL", "info")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.txt", cfg.Library.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Library.Driver)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"driver":  "library:\n  driver: csv\n",
		"level":   "log:\n  level: loud\n",
		"path":    "library:\n  path: \"\"\n",
		"garbage": "library: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("BOOKSHELF_CONFIG", "")
	assert.Equal(t, "bookshelf.yaml", Path(""))
	t.Setenv("BOOKSHELF_CONFIG", "/etc/bookshelf.yaml")
	assert.Equal(t, "/etc/bookshelf.yaml", Path(""))
	assert.Equal(t, "x.yaml", Path("x.yaml"))
}
