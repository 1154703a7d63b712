package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0xRadioAc7iv/logcask/internal"
)

func TestKeyDir(t *testing.T) {
	backends := map[string]KeyDir{
		"hash":  NewKeyDir(internal.IndexHash, 0),
		"btree": NewKeyDir(internal.IndexBTree, 4),
	}

	for name, kd := range backends {
		t.Run(name, func(t *testing.T) {
			_, ok := kd.Lookup("missing")
			assert.False(t, ok)
			assert.Equal(t, 0, kd.Len())

			kd.Insert("a", KeyDirEntry{Offset: 0, RecordSize: 14})
			kd.Insert("b", KeyDirEntry{Offset: 14, RecordSize: 20})
			kd.Insert("a", KeyDirEntry{Offset: 34, RecordSize: 15})

			entry, ok := kd.Lookup("a")
			assert.True(t, ok)
			assert.Equal(t, KeyDirEntry{Offset: 34, RecordSize: 15}, entry, "last insert wins")

			entry, ok = kd.Lookup("b")
			assert.True(t, ok)
			assert.Equal(t, KeyDirEntry{Offset: 14, RecordSize: 20}, entry)

			assert.Equal(t, 2, kd.Len())
		})
	}
}

func TestKeyDirBackendsAgree(t *testing.T) {
	hash := NewKeyDir(internal.IndexHash, 0)
	tree := NewKeyDir(internal.IndexBTree, 0)

	var offset int64
	for i := 0; i < 2000; i++ {
		key := fmt.Sprintf("key-%d", i%300)
		entry := KeyDirEntry{Offset: offset, RecordSize: int64(12 + len(key))}
		hash.Insert(key, entry)
		tree.Insert(key, entry)
		offset += entry.RecordSize
	}

	assert.Equal(t, hash.Len(), tree.Len())
	for i := 0; i < 300; i++ {
		key := fmt.Sprintf("key-%d", i)
		want, ok := hash.Lookup(key)
		assert.True(t, ok)
		got, ok := tree.Lookup(key)
		assert.True(t, ok)
		assert.Equal(t, want, got, key)
	}
}

func TestNewKeyDirDefaultsToHash(t *testing.T) {
	_, ok := NewKeyDir(internal.IndexType(0), 0).(hashKeyDir)
	assert.True(t, ok)

	_, ok = NewKeyDir(internal.IndexBTree, 0).(*btreeKeyDir)
	assert.True(t, ok)
}
