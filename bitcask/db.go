package bitcask

import (
	"github.com/0xRadioAc7iv/logcask/core"
	"github.com/0xRadioAc7iv/logcask/internal"
)

var (
	ErrIO            = core.ErrIO
	ErrCorruptRecord = core.ErrCorruptRecord
	ErrClosed        = core.ErrClosed
	ErrLocked        = core.ErrLocked
	ErrEmptyKey      = core.ErrEmptyKey
	ErrKeyTooLarge   = core.ErrKeyTooLarge
	ErrValueTooLarge = core.ErrValueTooLarge
	ErrInvalidUTF8   = core.ErrInvalidUTF8
)

// Error is the error type returned for failures of the log itself.
type Error = core.Error

type DB struct {
	engine *core.Engine
}

// Open opens the database stored at path, creating the file if it does not
// exist.
func Open(path string, opts ...Option) (*DB, error) {
	cfg := internal.DefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	engine, err := core.Open(path, cfg)
	if err != nil {
		return nil, err
	}

	return &DB{engine: engine}, nil
}

func (db *DB) Set(key, value string) error {
	return db.engine.Set(key, value)
}

// Get returns the value stored for key; ok is false when key was never set.
func (db *DB) Get(key string) (value string, ok bool, err error) {
	return db.engine.Get(key)
}

func (db *DB) Has(key string) bool {
	return db.engine.Has(key)
}

// Len returns the number of distinct keys.
func (db *DB) Len() int {
	return db.engine.Len()
}

func (db *DB) Path() string {
	return db.engine.Path()
}

func (db *DB) Sync() error {
	return db.engine.Sync()
}

func (db *DB) Close() error {
	return db.engine.Close()
}
