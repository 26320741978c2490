package log

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		require.NoError(t, SetLevel(LevelInfo))
	})
	return &buf
}

func TestHandler(t *testing.T) {
	t.Run("Should prefix levels and inline attributes", func(t *testing.T) {
		buf := captureOutput(t)
		require.NoError(t, SetLevel(LevelDebug))

		Info("users loaded", slog.Int("count", 3))
		Warn("slow source")
		Error("fetch failed", slog.String("error", "boom"))
		Debug("page", slog.Int("n", 2))

		assert.Equal(t, "users loaded count=3\n"+
			"[WARN] slow source\n"+
			"[ERROR] fetch failed error=boom\n"+
			"[DEBUG] page n=2\n", buf.String())
	})

	t.Run("Should drop records below the level", func(t *testing.T) {
		buf := captureOutput(t)
		require.NoError(t, SetLevel(LevelWarn))

		Info("hidden")
		Warn("shown")

		assert.Equal(t, "[WARN] shown\n", buf.String())
		assert.False(t, IsDebugEnabled())
		assert.Equal(t, slog.LevelWarn, GetCurrentLevel())
	})

	t.Run("Should render the component as a prefix", func(t *testing.T) {
		buf := captureOutput(t)
		Slog().With(slog.String(ComponentKey, "source"), slog.String("url", "x")).Info("fetching")
		assert.Equal(t, "[source] fetching url=x\n", buf.String())
	})
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
	assert.Error(t, SetLevel("verbose"))
}

func TestRedirect(t *testing.T) {
	buf := captureOutput(t)

	var got []string
	restore := Redirect(func(r slog.Record) {
		got = append(got, FormatRecord(r))
	})
	Default().Info("to callback", slog.Int("n", 1))
	restore()
	Default().Info("to output")

	assert.Equal(t, []string{"to callback n=1"}, got)
	assert.Equal(t, "to output\n", buf.String())
}

func TestCallbackLogger(t *testing.T) {
	var records []slog.Record
	logger := NewCallbackLogger(func(r slog.Record) {
		records = append(records, r)
	}, slog.LevelInfo, slog.String("mode", "tui"))

	logger.Debug("ignored")
	logger.Info("kept")

	require.Len(t, records, 1)
	assert.Equal(t, "kept mode=tui", FormatRecord(records[0]))
}
