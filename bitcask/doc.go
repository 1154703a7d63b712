// Package bitcask provides an embedded key-value store backed by a single
// append-only log file.
//
// Every Set appends a record to the log and every Get reads the latest record
// for the key back from disk. The in-memory index is rebuilt on Open by
// replaying the log, so the file is the only state that survives a restart.
//
// Example:
//
//	db, err := bitcask.Open("app.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	err = db.Set("foo", "bar")
//	val, ok, err := db.Get("foo")
//
// Only one DB may have a given file open at a time; a second Open on the same
// path fails with ErrLocked.
package bitcask
