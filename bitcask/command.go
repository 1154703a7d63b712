package bitcask

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidCommand is returned by Execute for unknown commands or commands
// with missing arguments.
var ErrInvalidCommand = errors.New("invalid command")

const helpString = `
Available Commands:

PING
  Check that the database is open.
  Response: PONG!

SET <key> <value>
  Store a value for the given key.
  Overwrites the value if the key already exists.
  Quote values that contain spaces: SET greeting "hello world"
  Response: ok

GET <key>
  Retrieve the value associated with the key.
  Response: value | nil

EXISTS <key>
  Check if a key exists.
  Response: true | false

COUNT
  Return the total number of keys stored.
  Response: integer

HELP
  Show this help message.

EXIT
  Close the database and quit.
`

// Execute runs a single text command against db and returns the reply the
// command line tools print. Command names are case insensitive.
func (db *DB) Execute(cmd, key, value string) (string, error) {
	switch strings.ToLower(cmd) {
	case "ping":
		return "PONG!", nil
	case "set":
		if key == "" {
			return "", ErrInvalidCommand
		}
		if err := db.Set(key, value); err != nil {
			return "", err
		}
		return "ok", nil
	case "get":
		if key == "" {
			return "", ErrInvalidCommand
		}
		val, ok, err := db.Get(key)
		if err != nil {
			return "", err
		}
		if !ok {
			return "nil", nil
		}
		return val, nil
	case "exists":
		if key == "" {
			return "", ErrInvalidCommand
		}
		return strconv.FormatBool(db.Has(key)), nil
	case "count":
		return strconv.Itoa(db.Len()), nil
	case "help":
		return strings.TrimSpace(helpString), nil
	default:
		return "", ErrInvalidCommand
	}
}
