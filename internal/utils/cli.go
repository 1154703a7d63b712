package utils

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

const DefaultDatabasePath = "./logcask.db"

var ErrEmptyCommand = errors.New("empty command")

type CLIInputs struct {
	DatabasePath string
	IndexType    string
	NoSync       bool
	Verbose      bool
}

// HandleCLIInputs registers the flags shared by the logcask binaries on fs and
// parses args. The remaining positional arguments are available from fs.Args().
func HandleCLIInputs(fs *flag.FlagSet, args []string) (*CLIInputs, error) {
	in := &CLIInputs{}
	fs.StringVar(&in.DatabasePath, "db", DefaultDatabasePath, "Path of the database log file")
	fs.StringVar(&in.IndexType, "index", "hash", "In-memory index to use: hash or btree")
	fs.BoolVar(&in.NoSync, "nosync", false, "Skip fsync after every write")
	fs.BoolVar(&in.Verbose, "v", false, "Log engine activity to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if in.DatabasePath == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	return in, nil
}

// SplitStringIntoCommandAndArguments tokenizes a command line using shell
// quoting rules, so values may contain spaces when quoted:
//
//	set greeting "hello world"
//
// Arguments after the value are rejected.
func SplitStringIntoCommandAndArguments(line string) (cmd, key, value string, err error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return "", "", "", err
	}
	if len(words) == 0 {
		return "", "", "", ErrEmptyCommand
	}
	if len(words) > 3 {
		return "", "", "", fmt.Errorf("too many arguments: expected at most 2, got %d", len(words)-1)
	}

	cmd = strings.ToLower(words[0])
	if len(words) > 1 {
		key = words[1]
	}
	if len(words) > 2 {
		value = words[2]
	}
	return cmd, key, value, nil
}
