package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTerminal struct{ finis int }

func (f *fakeTerminal) Fini() { f.finis++ }

func captureCrash(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var out bytes.Buffer
	code := -1
	prevOut, prevExit := crashOutput, crashExit
	crashOutput = &out
	crashExit = func(c int) { code = c }
	t.Cleanup(func() {
		crashOutput, crashExit = prevOut, prevExit
		SetCrashTerminal(nil)
	})
	return &out, &code
}

func TestHandleCrashRestoresTerminal(t *testing.T) {
	out, code := captureCrash(t)
	term := &fakeTerminal{}
	SetCrashTerminal(term)

	HandleCrash("boom")
	assert.Equal(t, 1, term.finis)
	assert.Equal(t, 1, *code)
	assert.Contains(t, out.String(), "CRASH DETECTED: boom")
	assert.Contains(t, out.String(), "Stack Trace:")

	// Terminal is restored once
	HandleCrash("again")
	assert.Equal(t, 1, term.finis)
}

func TestHandleCrashNil(t *testing.T) {
	out, code := captureCrash(t)
	HandleCrash(nil)
	assert.Equal(t, -1, *code)
	assert.Empty(t, out.String())
}

func TestGuardRecovers(t *testing.T) {
	out, code := captureCrash(t)

	err := Guard(func() error { panic("task failed") })()
	assert.NoError(t, err)
	assert.Equal(t, 1, *code)
	assert.Contains(t, out.String(), "task failed")

	assert.Equal(t, assert.AnError, Guard(func() error { return assert.AnError })())
}

func TestGoRecovers(t *testing.T) {
	out, code := captureCrash(t)
	done := make(chan struct{})
	crashExit = func(c int) {
		*code = c
		close(done)
	}

	Go(func() { panic("in goroutine") })
	<-done
	assert.Equal(t, 1, *code)
	assert.Contains(t, out.String(), "in goroutine")
}
