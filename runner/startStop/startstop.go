/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package startStop wraps a pair of start/stop functions into a concurrency-safe
// lifecycle object: Start, Stop, Restart and IsRunning, guarding against
// double-start and double-stop races.
package startStop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// StartStop manages the lifecycle of a single start/stop function pair.
type StartStop interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	IsRunning() bool
	Uptime() time.Duration
}

type FuncStart func(ctx context.Context) error
type FuncStop func(ctx context.Context) error

type runner struct {
	mu      sync.Mutex
	running atomic.Bool
	started atomic.Value
	start   FuncStart
	stop    FuncStop
}

// New returns a StartStop wrapping the given start and stop functions. Either
// may be nil, in which case the corresponding call is a no-op.
func New(start FuncStart, stop FuncStop) StartStop {
	return &runner{
		start: start,
		stop:  stop,
	}
}

func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running.Load() {
		return nil
	}

	if r.start != nil {
		if err := r.start(ctx); err != nil {
			return err
		}
	}

	r.started.Store(time.Now())
	r.running.Store(true)
	return nil
}

func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running.Load() {
		return nil
	}

	if r.stop != nil {
		if err := r.stop(ctx); err != nil {
			return err
		}
	}

	r.running.Store(false)
	return nil
}

func (r *runner) Restart(ctx context.Context) error {
	if err := r.Stop(ctx); err != nil {
		return err
	}
	return r.Start(ctx)
}

func (r *runner) IsRunning() bool {
	return r.running.Load()
}

// Uptime returns the time elapsed since the last successful Start, or 0 if
// the runner is not currently running.
func (r *runner) Uptime() time.Duration {
	if !r.running.Load() {
		return 0
	}

	t, ok := r.started.Load().(time.Time)
	if !ok || t.IsZero() {
		return 0
	}

	return time.Since(t)
}
