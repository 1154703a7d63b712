package internal

import (
	"log/slog"
	"time"
)

// IndexType selects the in-memory index backend.
type IndexType int8

const (
	// IndexHash keeps the keydir in a Go map.
	IndexHash IndexType = iota + 1
	// IndexBTree keeps the keydir in an ordered B-tree.
	IndexBTree
)

func (t IndexType) String() string {
	switch t {
	case IndexHash:
		return "hash"
	case IndexBTree:
		return "btree"
	default:
		return "unknown"
	}
}

type Config struct {
	Index IndexType

	// fsync after every append. Disabling trades durability of the most
	// recent writes for throughput.
	SyncWrites bool

	// fail Open on a torn trailing record instead of ignoring it
	StrictRecovery bool

	// BTreeDegree is the node degree of the B-tree index.
	BTreeDegree int

	Logger *slog.Logger
	Clock  func() time.Time
}

const DEFAULT_BTREE_DEGREE = 32

func DefaultConfig() *Config {
	return &Config{
		Index:       IndexHash,
		SyncWrites:  true,
		BTreeDegree: DEFAULT_BTREE_DEGREE,
		Logger:      DiscardLogger(),
		Clock:       time.Now,
	}
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
