package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// Restorer puts the terminal back into a usable state, tcell.Screen satisfies it
type Restorer interface {
	Fini()
}

var (
	crashScreen atomic.Pointer[Restorer]

	// exit and crashOut are replaced in tests
	exit               = os.Exit
	crashOut io.Writer = os.Stderr
)

// RegisterScreen sets the screen finalized before a crash report is printed
func RegisterScreen(s tcell.Screen) {
	if s == nil {
		crashScreen.Store(nil)
		return
	}
	var r Restorer = s
	crashScreen.Store(&r)
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	// Restore terminal first so the report is readable
	if s := crashScreen.Swap(nil); s != nil {
		(*s).Fini()
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
