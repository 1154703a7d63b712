package bitcask_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/logcask/bitcask"
)

func TestExecute(t *testing.T) {
	db := openDB(t, filepath.Join(t.TempDir(), "test.db"))

	steps := []struct {
		cmd, key, value string
		want            string
		wantErr         error
	}{
		{cmd: "PING", want: "PONG!"},
		{cmd: "get", key: "foo", want: "nil"},
		{cmd: "exists", key: "foo", want: "false"},
		{cmd: "SET", key: "foo", value: "hello world", want: "ok"},
		{cmd: "get", key: "foo", want: "hello world"},
		{cmd: "set", key: "empty", value: "", want: "ok"},
		{cmd: "get", key: "empty", want: ""},
		{cmd: "exists", key: "foo", want: "true"},
		{cmd: "count", want: "2"},
		{cmd: "set", wantErr: bitcask.ErrInvalidCommand},
		{cmd: "get", wantErr: bitcask.ErrInvalidCommand},
		{cmd: "delete", key: "foo", wantErr: bitcask.ErrInvalidCommand},
		{cmd: "set", key: "bad", value: "\xff", wantErr: bitcask.ErrInvalidUTF8},
	}

	for _, s := range steps {
		got, err := db.Execute(s.cmd, s.key, s.value)
		if s.wantErr != nil {
			assert.ErrorIs(t, err, s.wantErr, "%s %s", s.cmd, s.key)
			continue
		}
		require.NoError(t, err, "%s %s", s.cmd, s.key)
		assert.Equal(t, s.want, got, "%s %s", s.cmd, s.key)
	}
}

func TestExecuteHelp(t *testing.T) {
	db := openDB(t, filepath.Join(t.TempDir(), "test.db"))

	help, err := db.Execute("help", "", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(help, "Available Commands:"))
	assert.Contains(t, help, "SET <key> <value>")
}
