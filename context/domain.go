/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package context

import "sync"

// Domain runs a hierarchical state machine's events without a re-entrant
// lock. A handler raising a new event from inside its own dispatch (a state
// object reacting to its own transition) would deadlock a plain mutex;
// Domain instead queues the event and lets the single active Leave() call
// drain it after the current handler returns. Enter/Leave nest: only the
// outermost Leave does any draining.
type Domain[E any] struct {
	mu      sync.Mutex
	handle  func(E)
	depth   int
	queue   []E
	onLeave []func()
}

// NewDomain returns a Domain dispatching every drained event to handle.
func NewDomain[E any](handle func(E)) *Domain[E] {
	return &Domain[E]{handle: handle}
}

// Enter marks the start of a call into the domain. Calls may nest: a
// handler invoked from Leave's drain loop that itself calls Enter/Leave
// only adds another level, it never blocks.
func (d *Domain[E]) Enter() {
	d.mu.Lock()
	d.depth++
	d.mu.Unlock()
}

// Raise queues an event for dispatch. It never blocks and never calls the
// handler itself; the active (or next) Leave() does that.
func (d *Domain[E]) Raise(e E) {
	d.mu.Lock()
	d.queue = append(d.queue, e)
	d.mu.Unlock()
}

// OnLeave registers a callback to run once, after the outermost Leave has
// finished draining. Sockets use this to reconcile pipe in/out bookkeeping:
// the callback treats a pending wakeup as a hint to re-check state, not as
// an authoritative signal, so a stale or duplicate wakeup is harmless.
func (d *Domain[E]) OnLeave(cb func()) {
	d.mu.Lock()
	d.onLeave = append(d.onLeave, cb)
	d.mu.Unlock()
}

// Leave ends a call into the domain. The outermost Leave (depth reaching
// zero) drains the queue one event at a time, releasing the lock while the
// handler runs so a handler is free to Enter/Leave/Raise again.
func (d *Domain[E]) Leave() {
	d.mu.Lock()
	d.depth--
	if d.depth > 0 {
		d.mu.Unlock()
		return
	}

	for len(d.queue) > 0 {
		e := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()
		d.handle(e)
		d.mu.Lock()
	}

	cbs := d.onLeave
	d.onLeave = nil
	d.mu.Unlock()

	for _, cb := range cbs {
		cb()
	}
}

// Pending reports whether events are queued waiting for a drain.
func (d *Domain[E]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue) > 0
}
