package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
)

func TestObserveLibrary(t *testing.T) {
	ObserveLibrary(catalog.Stats{Total: 5, Read: 2})
	assert.Equal(t, 2.0, testutil.ToFloat64(Books.WithLabelValues("read")))
	assert.Equal(t, 3.0, testutil.ToFloat64(Books.WithLabelValues("unread")))
}

func TestFlushTextfile(t *testing.T) {
	OperationsTotal.WithLabelValues("add", "ok").Inc()
	path := filepath.Join(t.TempDir(), "bookshelf.prom")
	require.NoError(t, Flush(config.MetricsConfig{Textfile: path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `bookshelf_operations_total{op="add",status="ok"}`)
}

func TestFlushPush(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, Flush(config.MetricsConfig{PushgatewayURL: srv.URL, Job: "shelf"}))
	assert.Equal(t, "/metrics/job/shelf", gotPath)
}

func TestFlushNothingConfigured(t *testing.T) {
	assert.NoError(t, Flush(config.MetricsConfig{}))
}

func TestFlushErrors(t *testing.T) {
	err := Flush(config.MetricsConfig{Textfile: filepath.Join(t.TempDir(), "missing", "dir", "x.prom")})
	assert.Error(t, err)
}
