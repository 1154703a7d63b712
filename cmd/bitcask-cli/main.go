package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/0xRadioAc7iv/logcask/bitcask"
	"github.com/0xRadioAc7iv/logcask/internal/utils"
)

func main() {
	fs := flag.NewFlagSet("bitcask-cli", flag.ExitOnError)
	in, err := utils.HandleCLIInputs(fs, os.Args[1:])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	indexType, ok := bitcask.ParseIndexType(in.IndexType)
	if !ok {
		fmt.Printf("unknown index type %q\n", in.IndexType)
		os.Exit(2)
	}

	db, err := bitcask.Open(in.DatabasePath,
		bitcask.WithIndex(indexType),
		bitcask.WithSyncWrites(!in.NoSync),
		bitcask.WithLogger(utils.NewCLILogger(os.Stderr, in.Verbose)),
	)
	if err != nil {
		fmt.Println("Error while opening database:", err)
		os.Exit(1)
	}

	utils.OnProcessInterruptOrKill(func(os.Signal) {
		fmt.Println()
		if err := db.Close(); err != nil {
			fmt.Println("Error while closing database:", err)
			os.Exit(1)
		}
		os.Exit(0)
	})

	fmt.Printf("Opened %v (%d keys)\n", db.Path(), db.Len())
	fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

	repl(db, os.Stdin, os.Stdout)

	if err := db.Close(); err != nil {
		fmt.Println("Error while closing database:", err)
		os.Exit(1)
	}
}

func repl(db *bitcask.DB, r io.Reader, w io.Writer) {
	reader := bufio.NewReader(r)

	for {
		fmt.Fprint(w, "> ")

		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(w, "input error:", err)
			}
			return
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		if strings.EqualFold(line, "exit") {
			return
		}

		cmd, key, value, parseErr := utils.SplitStringIntoCommandAndArguments(line)
		if parseErr != nil {
			fmt.Fprintln(w, "parse error:", parseErr)
			continue
		}

		resp, execErr := db.Execute(cmd, key, value)
		if execErr != nil {
			fmt.Fprintln(w, "error:", execErr)
		} else {
			fmt.Fprintln(w, resp)
		}

		if err != nil {
			return
		}
	}
}
