package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/0xRadioAc7iv/logcask/bitcask"
	"github.com/0xRadioAc7iv/logcask/internal/utils"
)

const usage = `usage: bitcask [flags] <command> [key] [value]

Commands:
  set <key> <value>   store value under key
  get <key>           print the value of key, or nil (exit status 1)
  exists <key>        print true or false
  count               print the number of keys

Flags:
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("bitcask", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	in, err := utils.HandleCLIInputs(fs, args)
	if err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) == 0 || len(rest) > 3 {
		fs.Usage()
		return 2
	}
	if strings.EqualFold(rest[0], "set") && len(rest) != 3 {
		fmt.Fprintln(os.Stderr, "set needs a key and a value")
		return 2
	}

	indexType, ok := bitcask.ParseIndexType(in.IndexType)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown index type %q\n", in.IndexType)
		return 2
	}

	db, err := bitcask.Open(in.DatabasePath,
		bitcask.WithIndex(indexType),
		bitcask.WithSyncWrites(!in.NoSync),
		bitcask.WithLogger(utils.NewCLILogger(os.Stderr, in.Verbose)),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error while opening database:", err)
		return 1
	}
	defer db.Close()

	var key, value string
	if len(rest) > 1 {
		key = rest[1]
	}
	if len(rest) > 2 {
		value = rest[2]
	}

	resp, err := db.Execute(rest[0], key, value)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	fmt.Println(resp)
	if strings.EqualFold(rest[0], "get") && !db.Has(key) {
		return 1
	}
	return 0
}
