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

package fsm

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"
)

// Pool is a fixed-size set of workers, each owning its own timer heap.
// New machines (and the timers they arm) are handed to workers
// round-robin at creation time, mirroring choose_worker.
type Pool struct {
	workers []*worker
	next    uint32
}

// NewPool starts n worker goroutines. The pool must be Close()d once no
// longer needed.
func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{workers: make([]*worker, n)}
	for i := range p.workers {
		p.workers[i] = newWorker()
		go p.workers[i].run()
	}
	return p
}

// Choose returns the next worker in round-robin order.
func (p *Pool) Choose() *Worker {
	i := atomic.AddUint32(&p.next, 1) - 1
	return &Worker{w: p.workers[i%uint32(len(p.workers))]}
}

// Close stops every worker, dropping any timers still pending.
func (p *Pool) Close() {
	for _, w := range p.workers {
		close(w.quit)
	}
}

// Worker is the handle application code holds; it forwards to the
// underlying worker goroutine.
type Worker struct {
	w *worker
}

// Submit posts a one-shot task to run on the worker's goroutine
// (worker_task): used to offload socket I/O arming off the context's
// calling goroutine.
func (wk *Worker) Submit(task func()) {
	wk.w.tasks <- task
}

// Schedule arms a cooperative, at-most-once timer (worker_timer). The
// returned handle's Cancel is safe to call even after the timer already
// fired.
func (wk *Worker) Schedule(d time.Duration, fire func()) *Timer {
	t := &Timer{deadline: time.Now().Add(d), fire: fire}
	wk.w.addTimer(t)
	return t
}

// Timer is a single armed deadline inside a worker's min-heap.
type Timer struct {
	deadline time.Time
	fire     func()
	index    int
	canceled bool
	mu       sync.Mutex
}

// Cancel prevents fire from running if it hasn't already.
func (t *Timer) Cancel() {
	t.mu.Lock()
	t.canceled = true
	t.mu.Unlock()
}

func (t *Timer) isCanceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

// timerHeap is a container/heap ordering Timers by deadline.
type timerHeap []*Timer

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *timerHeap) Push(x interface{}) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}

type worker struct {
	mu     sync.Mutex
	timers timerHeap
	wake   chan struct{}
	tasks  chan func()
	quit   chan struct{}
}

func newWorker() *worker {
	return &worker{
		wake:  make(chan struct{}, 1),
		tasks: make(chan func(), 64),
		quit:  make(chan struct{}),
	}
}

func (w *worker) addTimer(t *Timer) {
	w.mu.Lock()
	heap.Push(&w.timers, t)
	w.mu.Unlock()
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// nextDeadline returns the duration until the earliest pending timer, or
// a long idle sleep if there is none.
func (w *worker) nextDeadline() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.timers) == 0 {
		return time.Hour
	}
	d := time.Until(w.timers[0].deadline)
	if d < 0 {
		return 0
	}
	return d
}

// popExpired removes and returns every timer whose deadline has passed,
// skipping canceled ones.
func (w *worker) popExpired() []*Timer {
	w.mu.Lock()
	defer w.mu.Unlock()
	var due []*Timer
	now := time.Now()
	for len(w.timers) > 0 && !w.timers[0].deadline.After(now) {
		t := heap.Pop(&w.timers).(*Timer)
		if !t.isCanceled() {
			due = append(due, t)
		}
	}
	return due
}

func (w *worker) run() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		select {
		case <-w.quit:
			return
		case task := <-w.tasks:
			task()
		case <-w.wake:
		case <-timer.C:
		}

		for _, t := range w.popExpired() {
			t.fire()
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.nextDeadline())
	}
}
