package bitcask

import (
	"log/slog"
	"time"

	"github.com/0xRadioAc7iv/logcask/internal"
)

type Option func(*internal.Config)

// IndexType selects the in-memory index backend.
type IndexType = internal.IndexType

const (
	IndexHash  = internal.IndexHash
	IndexBTree = internal.IndexBTree
)

// ParseIndexType maps "hash" or "btree" to an IndexType.
func ParseIndexType(s string) (IndexType, bool) {
	switch s {
	case "hash", "":
		return IndexHash, true
	case "btree":
		return IndexBTree, true
	default:
		return 0, false
	}
}

func WithIndex(typ IndexType) Option {
	return func(c *internal.Config) {
		c.Index = typ
	}
}

// WithBTreeDegree sets the node degree used by IndexBTree.
func WithBTreeDegree(degree int) Option {
	return func(c *internal.Config) {
		c.BTreeDegree = degree
	}
}

// WithSyncWrites controls whether every Set is fsynced before it returns.
// It is on by default.
func WithSyncWrites(sync bool) Option {
	return func(c *internal.Config) {
		c.SyncWrites = sync
	}
}

// WithStrictRecovery makes Open fail on a torn record at the end of the log
// instead of dropping it.
func WithStrictRecovery(strict bool) Option {
	return func(c *internal.Config) {
		c.StrictRecovery = strict
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = logger
	}
}

// WithClock overrides the time source used to stamp records.
func WithClock(clock func() time.Time) Option {
	return func(c *internal.Config) {
		c.Clock = clock
	}
}
