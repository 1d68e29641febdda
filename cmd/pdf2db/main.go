package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/pdf2db/pdf2db/internal/cli"
	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

func main() {
	// Recover from panics so the process still exits with a semantic code
	// and a stack trace on stderr.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(pdf2db.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(pdf2db.ExitCodeForError(err))
	}
}
