package utils

import (
	"os"
	"os/signal"
	"syscall"
)

// OnProcessInterruptOrKill calls fn once the process receives an interrupt
// (Ctrl+C) or termination signal (SIGTERM). It returns immediately; fn runs on
// its own goroutine.
func OnProcessInterruptOrKill(fn func(os.Signal)) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		signal.Stop(sigChan)
		fn(sig)
	}()
}
