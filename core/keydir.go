package core

import (
	"github.com/google/btree"

	"github.com/0xRadioAc7iv/logcask/internal"
)

// KeyDirEntry represents the in-memory index entry for a single key.
//
// Each entry points to the latest record written for the key. Older records
// stay in the log but are never referenced again.
type KeyDirEntry struct {
	Offset     int64 // Byte offset in the log where the record starts
	RecordSize int64 // Total size of the record on disk (header + key + value)
}

// KeyDir is the in-memory index mapping keys to their latest on-disk entries.
//
// It is rebuilt on every open by replaying the log and is never persisted.
// Insert always overwrites: the last write wins.
type KeyDir interface {
	Insert(key string, entry KeyDirEntry)
	Lookup(key string) (KeyDirEntry, bool)
	Len() int
}

// NewKeyDir returns an empty keydir of the given type.
func NewKeyDir(typ internal.IndexType, btreeDegree int) KeyDir {
	switch typ {
	case internal.IndexBTree:
		return newBTreeKeyDir(btreeDegree)
	default:
		return newHashKeyDir()
	}
}

type hashKeyDir map[string]KeyDirEntry

func newHashKeyDir() hashKeyDir {
	return make(hashKeyDir, DefaultKeyDirCapacity)
}

func (kd hashKeyDir) Insert(key string, entry KeyDirEntry) {
	kd[key] = entry
}

func (kd hashKeyDir) Lookup(key string) (KeyDirEntry, bool) {
	entry, ok := kd[key]
	return entry, ok
}

func (kd hashKeyDir) Len() int {
	return len(kd)
}

type keyDirItem struct {
	key   string
	entry KeyDirEntry
}

func keyDirItemLess(a, b keyDirItem) bool {
	return a.key < b.key
}

type btreeKeyDir struct {
	tree *btree.BTreeG[keyDirItem]
}

func newBTreeKeyDir(degree int) *btreeKeyDir {
	if degree < 2 {
		degree = internal.DEFAULT_BTREE_DEGREE
	}
	return &btreeKeyDir{tree: btree.NewG(degree, keyDirItemLess)}
}

func (kd *btreeKeyDir) Insert(key string, entry KeyDirEntry) {
	kd.tree.ReplaceOrInsert(keyDirItem{key: key, entry: entry})
}

func (kd *btreeKeyDir) Lookup(key string) (KeyDirEntry, bool) {
	item, ok := kd.tree.Get(keyDirItem{key: key})
	return item.entry, ok
}

func (kd *btreeKeyDir) Len() int {
	return kd.tree.Len()
}
