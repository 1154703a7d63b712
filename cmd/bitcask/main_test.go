package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	assert.Equal(t, 0, run([]string{"-db", path, "set", "hello", "world"}))
	assert.Equal(t, 0, run([]string{"-db", path, "get", "hello"}))
	assert.Equal(t, 1, run([]string{"-db", path, "get", "missing"}))
	assert.Equal(t, 0, run([]string{"-db", path, "set", "literal", "nil"}))
	assert.Equal(t, 0, run([]string{"-db", path, "GET", "literal"}), "stored nil is a hit")
	assert.Equal(t, 0, run([]string{"-db", path, "-index", "btree", "count"}))

	assert.Equal(t, 2, run([]string{"-db", path}), "missing command")
	assert.Equal(t, 2, run([]string{"-db", path, "set", "hello"}), "set without value")
	assert.Equal(t, 0, run([]string{"-db", path, "get", "hello"}), "rejected set left value intact")
	assert.Equal(t, 0, run([]string{"-db", path, "set", "empty", ""}), "explicit empty value")
	assert.Equal(t, 2, run([]string{"-db", path, "-index", "lsm", "count"}), "bad index")
	assert.Equal(t, 1, run([]string{"-db", path, "frobnicate"}), "unknown command")
}
