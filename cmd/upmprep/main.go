package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/boristhebrave/upmprep/internal/cli"
	"github.com/boristhebrave/upmprep/pkg/upmprep"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(upmprep.ExitPanic)
		}
	}()

	if os.Getenv("UPMPREP_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(upmprep.ExitCodeForError(err))
	}
}
