package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/config"
)

func TestSetupFileAndLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookshelf.log")
	log, closeLog, err := Setup(config.LogConfig{Level: "info", JSON: true, Path: path})
	require.NoError(t, err)
	defer func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
	}()

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	log.Debug("hidden")
	log.WithField("op", "add").Info("book.added")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "book.added", entry["msg"])
	assert.Equal(t, "add", entry["op"])
}

func TestSetupBadLevel(t *testing.T) {
	_, _, err := Setup(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestForCarriesRequestID(t *testing.T) {
	ctx := context.Background()
	assert.NotContains(t, For(ctx).Data, "request_id")

	ctx = WithNewID(ctx)
	id := IDFrom(ctx)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, For(ctx).Data["request_id"])
}

func TestTrackSlow(t *testing.T) {
	var buf bytes.Buffer
	std := logrus.StandardLogger()
	oldOut, oldLevel, oldSlow := std.Out, std.GetLevel(), SlowThreshold
	defer func() {
		std.SetOutput(oldOut)
		std.SetLevel(oldLevel)
		SlowThreshold = oldSlow
	}()
	std.SetOutput(&buf)
	std.SetLevel(logrus.DebugLevel)
	std.SetFormatter(&logrus.TextFormatter{DisableColors: true})

	SlowThreshold = time.Hour
	Track(context.Background(), "fast op")()
	assert.Contains(t, buf.String(), "fast op completed")
	assert.NotContains(t, buf.String(), "SLOW")

	buf.Reset()
	SlowThreshold = -1
	Track(ContextWithID(context.Background(), "abc"), "slow op")()
	assert.Contains(t, buf.String(), "slow op completed (SLOW)")
	assert.Contains(t, buf.String(), "request_id=abc")
}
