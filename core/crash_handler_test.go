package core

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type finiCounter struct {
	tcell.Screen
	calls int
}

func (f *finiCounter) Fini() { f.calls++ }

func captureCrash(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var buf bytes.Buffer
	code := -1
	oldExit, oldOut := exit, crashOut
	exit = func(c int) { code = c }
	crashOut = &buf
	t.Cleanup(func() {
		exit, crashOut = oldExit, oldOut
		RegisterScreen(nil)
	})
	return &buf, &code
}

func TestHandleCrashRestoresScreen(t *testing.T) {
	buf, code := captureCrash(t)
	screen := &finiCounter{}
	RegisterScreen(screen)

	HandleCrash("boom")

	if screen.calls != 1 {
		t.Errorf("Fini calls = %d, want 1", screen.calls)
	}
	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
	if out := buf.String(); !strings.Contains(out, "CRASH DETECTED: boom") || !strings.Contains(out, "Stack Trace:") {
		t.Errorf("report = %q", out)
	}

	// Screen is finalized once even if a second goroutine crashes
	HandleCrash("again")
	if screen.calls != 1 {
		t.Errorf("Fini calls after second crash = %d, want 1", screen.calls)
	}
}

func TestHandleCrashNil(t *testing.T) {
	buf, code := captureCrash(t)
	HandleCrash(nil)
	if *code != -1 || buf.Len() != 0 {
		t.Error("nil recover value should be ignored")
	}
}

func TestGoRecovers(t *testing.T) {
	var mu sync.Mutex
	var wg sync.WaitGroup
	var got int

	oldExit, oldOut := exit, crashOut
	crashOut = &bytes.Buffer{}
	exit = func(c int) {
		mu.Lock()
		got = c
		mu.Unlock()
		wg.Done()
	}
	defer func() { exit, crashOut = oldExit, oldOut }()

	wg.Add(1)
	Go(func() { panic("worker") })
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
}
