/*
	Basic Script that fills a database with overwrite-heavy random data, then
	reopens it and checks that every key replays.
*/

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/0xRadioAc7iv/logcask/bitcask"
)

const (
	concurrency = 6

	// Fixed universe
	totalKeys   = 100
	totalValues = 100

	// Per-cycle behavior
	keysPerCycleWrite = 20
	cyclesPerWorker   = 500

	progressEvery = 100
)

func main() {
	path := flag.String("db", "data-gen.db", "Path of the database log file")
	syncWrites := flag.Bool("sync", false, "fsync after every write")
	flag.Parse()

	start := time.Now()
	fmt.Println("Starting overwrite-heavy load generator")

	db, err := bitcask.Open(*path, bitcask.WithSyncWrites(*syncWrites))
	if err != nil {
		fmt.Println("open error:", err)
		os.Exit(1)
	}

	keys := makeKeys(totalKeys)
	values := makeValues(totalValues)

	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(id, db, keys, values)
		}(i)
	}

	wg.Wait()
	if err := db.Close(); err != nil {
		fmt.Println("close error:", err)
		os.Exit(1)
	}
	fmt.Printf("Load finished in %v\n", time.Since(start))

	if err := verify(*path, keys); err != nil {
		fmt.Println("verify error:", err)
		os.Exit(1)
	}
}

func runWorker(id int, db *bitcask.DB, keys []string, values []string) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

	for cycle := 1; cycle <= cyclesPerWorker; cycle++ {

		// ---- WRITE / OVERWRITE PHASE ----
		for i := 0; i < keysPerCycleWrite; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := db.Set(key, val); err != nil {
				fmt.Printf("[worker %d] SET error: %v\n", id, err)
				return
			}
		}

		// ---- READ PHASE ----
		for i := 0; i < keysPerCycleWrite/2; i++ {
			key := keys[rng.Intn(len(keys))]

			if _, _, err := db.Get(key); err != nil {
				fmt.Printf("[worker %d] GET error: %v\n", id, err)
				return
			}
		}

		if cycle%progressEvery == 0 {
			fmt.Printf("[worker %d] completed %d cycles\n", id, cycle)
		}
	}
}

// verify reopens the log so every key goes through a full replay.
func verify(path string, keys []string) error {
	start := time.Now()
	db, err := bitcask.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	found := 0
	for _, key := range keys {
		_, ok, err := db.Get(key)
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		if ok {
			found++
		}
	}

	fmt.Printf("Replayed %d keys (%d of %d probed) in %v\n", db.Len(), found, len(keys), time.Since(start))
	return nil
}

func makeKeys(n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("key-%03d", i)
	}
	return keys
}

func makeValues(n int) []string {
	values := make([]string, n)
	for i := 0; i < n; i++ {
		values[i] = fmt.Sprintf("value-%03d-xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", i)
	}
	return values
}
