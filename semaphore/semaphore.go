/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package semaphore provides a context-aware counting semaphore used to
// bound the number of concurrently running goroutines spawned by a worker
// pool or an async callback loop.
package semaphore

import (
	"context"
	"math"
	"sync"
)

// Sem bounds concurrent workers and lets a caller wait for them to drain.
type Sem interface {
	// NewWorker blocks until a slot is available or the context is done.
	NewWorker() error
	// NewWorkerTry acquires a slot without blocking, returning false if full.
	NewWorkerTry() bool
	// DeferWorker releases a slot acquired by NewWorker/NewWorkerTry.
	DeferWorker()
	// DeferMain releases the slot reserved for the caller that created the
	// semaphore, if any was reserved.
	DeferMain()
	// WaitAll blocks until every outstanding worker has called DeferWorker,
	// or the context is done.
	WaitAll() error
}

// Semaphore is an alias of Sem, kept for call sites that predate the
// Sem rename.
type Semaphore = Sem

type sem struct {
	ctx  context.Context
	ch   chan struct{}
	wg   sync.WaitGroup
	main bool
}

func newSem(ctx context.Context, max int, reserveMain bool) *sem {
	if ctx == nil {
		ctx = context.Background()
	}
	if max <= 0 {
		max = math.MaxInt32
	}

	s := &sem{
		ctx: ctx,
		ch:  make(chan struct{}, max),
	}

	if reserveMain {
		s.ch <- struct{}{}
		s.main = true
	}

	return s
}

// New returns a Semaphore bound to ctx with the given max concurrency.
// If reserveMain is true, one slot is reserved immediately for the caller,
// to be released later with DeferMain.
func New(ctx context.Context, max int, reserveMain bool) Semaphore {
	return newSem(ctx, max, reserveMain)
}

// NewSemaphoreWithContext returns a Sem bound to ctx with the given max
// concurrency and no slot reserved for the caller.
func NewSemaphoreWithContext(ctx context.Context, max int) Sem {
	return newSem(ctx, max, false)
}

func (s *sem) NewWorker() error {
	select {
	case s.ch <- struct{}{}:
		s.wg.Add(1)
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

func (s *sem) NewWorkerTry() bool {
	select {
	case s.ch <- struct{}{}:
		s.wg.Add(1)
		return true
	default:
		return false
	}
}

func (s *sem) DeferWorker() {
	select {
	case <-s.ch:
	default:
	}
	s.wg.Done()
}

func (s *sem) DeferMain() {
	if s.main {
		<-s.ch
		s.main = false
	}
}

func (s *sem) WaitAll() error {
	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}
