// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package testcontext implements convenience context for testing.
package testcontext

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 3 * time.Minute

// Context is a context that has utility methods for testing and
// waiting for asynchronous errors.
type Context struct {
	context.Context

	timedctx context.Context
	cancel   context.CancelFunc

	group *errgroup.Group
	test  testing.TB

	once      sync.Once
	directory string

	cleanupOnce sync.Once

	mu      sync.Mutex
	running []caller
}

type caller struct {
	fn   func() error
	done bool
	err  error
}

// New creates a new test context with a default timeout.
func New(test testing.TB) *Context {
	return NewWithTimeout(test, defaultTimeout)
}

// NewWithTimeout creates a new test context with a given timeout.
func NewWithTimeout(test testing.TB, timeout time.Duration) *Context {
	timedctx, cancel := context.WithTimeout(context.Background(), timeout)
	group, errctx := errgroup.WithContext(timedctx)

	ctx := &Context{
		Context:  errctx,
		timedctx: timedctx,
		cancel:   cancel,
		group:    group,
		test:     test,
	}
	test.Cleanup(ctx.Cleanup)

	return ctx
}

// Go runs fn in a goroutine. Call Wait to check the result.
func (ctx *Context) Go(fn func() error) {
	ctx.test.Helper()

	ctx.mu.Lock()
	index := len(ctx.running)
	ctx.running = append(ctx.running, caller{fn: fn})
	ctx.mu.Unlock()

	ctx.group.Go(func() error {
		err := fn()

		ctx.mu.Lock()
		ctx.running[index].done = true
		ctx.running[index].err = err
		ctx.mu.Unlock()

		return err
	})
}

// Check calls fn and checks the result.
func (ctx *Context) Check(fn func() error) {
	ctx.test.Helper()
	if err := fn(); err != nil {
		ctx.test.Fatal(err)
	}
}

// Dir creates a test directory from the given subdirectory elements
// and returns its absolute path.
func (ctx *Context) Dir(elem ...string) string {
	ctx.test.Helper()

	ctx.once.Do(func() {
		var err error
		ctx.directory, err = os.MkdirTemp("", sanitizeName(ctx.test.Name()))
		if err != nil {
			ctx.test.Fatal(err)
		}
	})

	dir := filepath.Join(append([]string{ctx.directory}, elem...)...)
	if err := os.MkdirAll(dir, 0744); err != nil {
		ctx.test.Fatal(err)
	}
	return dir
}

// File returns a path inside a test directory, creating the parent
// directories as needed.
func (ctx *Context) File(elem ...string) string {
	ctx.test.Helper()

	if len(elem) == 0 {
		ctx.test.Fatal("expected at least one path element")
	}

	dir := ctx.Dir(elem[:len(elem)-1]...)
	return filepath.Join(dir, elem[len(elem)-1])
}

// WriteFile writes data to a path inside a test directory and returns
// the path.
func (ctx *Context) WriteFile(name string, data []byte) string {
	ctx.test.Helper()

	path := ctx.File(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		ctx.test.Fatal(err)
	}
	return path
}

// Wait blocks until all goroutines started with Go have completed and
// fails the test on error.
func (ctx *Context) Wait() {
	ctx.test.Helper()
	if err := ctx.group.Wait(); err != nil {
		ctx.test.Fatal(err)
	}
}

// Cleanup waits for everything to complete and deletes the test
// directory. It is registered automatically via test.Cleanup, so
// calling it directly is only needed when the order matters.
func (ctx *Context) Cleanup() {
	ctx.test.Helper()
	ctx.cleanupOnce.Do(ctx.cleanup)
}

func (ctx *Context) cleanup() {
	ctx.test.Helper()

	defer ctx.deleteTemporary()
	defer ctx.cancel()

	alldone := make(chan error, 1)
	go func() {
		alldone <- ctx.group.Wait()
	}()

	select {
	case <-ctx.timedctx.Done():
		ctx.reportRunning()
	case err := <-alldone:
		if err != nil {
			ctx.test.Fatal(err)
		}
	}
}

func (ctx *Context) reportRunning() {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	for _, caller := range ctx.running {
		if !caller.done {
			ctx.test.Error("test goroutine did not finish")
		}
	}
	ctx.test.Fatal(ctx.timedctx.Err())
}

func (ctx *Context) deleteTemporary() {
	if ctx.directory == "" {
		return
	}
	if err := os.RemoveAll(ctx.directory); err != nil {
		ctx.test.Fatal(err)
	}
	ctx.directory = ""
}

func sanitizeName(name string) string {
	sanitized := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		b := name[i]
		switch {
		case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
			sanitized = append(sanitized, b)
		default:
			sanitized = append(sanitized, '-')
		}
	}
	return string(sanitized)
}
