package lock

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLock(t *testing.T) *FileLock {
	t.Helper()
	return NewFileLock(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFileLock(t *testing.T) {
	ctx := context.Background()

	t.Run("acquire and release", func(t *testing.T) {
		fl := newTestLock(t)
		key := KeyFor("stats.db")

		ok, err := fl.TryLock(ctx, key, time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.FileExists(t, fl.path(key))

		require.NoError(t, fl.Unlock(key))
		assert.NoFileExists(t, fl.path(key))
	})

	t.Run("held lock times out", func(t *testing.T) {
		fl := newTestLock(t)
		key := KeyFor("stats.db")

		ok, err := fl.TryLock(ctx, key, time.Second)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = fl.TryLock(ctx, key, 250*time.Millisecond)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("cancelled context", func(t *testing.T) {
		fl := newTestLock(t)
		key := KeyFor("stats.db")

		ok, err := fl.TryLock(ctx, key, time.Second)
		require.NoError(t, err)
		require.True(t, ok)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		ok, err = fl.TryLock(cctx, key, time.Second)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, ok)
	})

	t.Run("stale lock is taken over", func(t *testing.T) {
		fl := newTestLock(t)
		key := KeyFor("stats.db")

		require.NoError(t, os.WriteFile(fl.path(key), []byte("0\n0\n"), 0600))
		old := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(fl.path(key), old, old))

		ok, err := fl.TryLock(ctx, key, time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unlock without lock", func(t *testing.T) {
		fl := newTestLock(t)
		assert.NoError(t, fl.Unlock(KeyFor("nothing")))
	})
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, KeyFor("a.db"), KeyFor("a.db"))
	assert.NotEqual(t, KeyFor("a.db"), KeyFor("b.db"))
	assert.Len(t, KeyFor("../../etc/passwd"), 16)
	assert.Equal(t, filepath.Base(KeyFor("x/y")), KeyFor("x/y"))
}
