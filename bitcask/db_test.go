package bitcask_test

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/logcask/bitcask"
)

func openDB(t *testing.T, path string, opts ...bitcask.Option) *bitcask.DB {
	t.Helper()

	db, err := bitcask.Open(path, opts...)
	require.NoError(t, err, "Open failed")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenSetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db := openDB(t, path)

	_, ok, err := db.Get("unknown_key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set("hello", "world"))
	val, ok, err := db.Get("hello")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "world", val)

	require.NoError(t, db.Set("hello", "mars"))
	val, _, err = db.Get("hello")
	require.NoError(t, err)
	assert.Equal(t, "mars", val)

	assert.Equal(t, path, db.Path())
	assert.Equal(t, 1, db.Len())
	assert.True(t, db.Has("hello"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db := openDB(t, path, bitcask.WithSyncWrites(false))
	require.NoError(t, db.Set("hello", "world"))
	require.NoError(t, db.Set("foo", "bar"))
	require.NoError(t, db.Set("bar", "foo"))
	require.NoError(t, db.Set("hello", "mars"))
	require.NoError(t, db.Sync())
	require.NoError(t, db.Close())

	db = openDB(t, path, bitcask.WithIndex(bitcask.IndexBTree), bitcask.WithBTreeDegree(8))
	for k, want := range map[string]string{"foo": "bar", "bar": "foo", "hello": "mars"} {
		got, ok, err := db.Get(k)
		require.NoError(t, err)
		assert.True(t, ok, k)
		assert.Equal(t, want, got, k)
	}
}

func TestOptions(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	path := filepath.Join(t.TempDir(), "test.db")
	db := openDB(t, path,
		bitcask.WithLogger(logger),
		bitcask.WithClock(func() time.Time { return time.Unix(42, 0) }),
		bitcask.WithStrictRecovery(true),
	)
	require.NoError(t, db.Set("k", "v"))

	assert.Contains(t, logs.String(), "opened log")
	assert.Contains(t, logs.String(), "msg=set")
}

func TestSecondOpenIsLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	openDB(t, path)

	_, err := bitcask.Open(path)
	assert.ErrorIs(t, err, bitcask.ErrLocked)
}

func TestParseIndexType(t *testing.T) {
	typ, ok := bitcask.ParseIndexType("btree")
	assert.True(t, ok)
	assert.Equal(t, bitcask.IndexBTree, typ)

	typ, ok = bitcask.ParseIndexType("hash")
	assert.True(t, ok)
	assert.Equal(t, bitcask.IndexHash, typ)

	_, ok = bitcask.ParseIndexType("lsm")
	assert.False(t, ok)
}
