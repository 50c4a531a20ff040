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

// Package fsm implements the hierarchical state-machine runtime every
// pipe, endpoint and socket object is built on: a per-socket Context that
// serializes event delivery to its tree of Machine objects, and a Pool of
// worker goroutines that own cooperative timers and offloaded tasks.
package fsm

import (
	libctx "github.com/bizzaro-jhunt/gridmq/context"
)

// routedEvent carries enough information for the Context's single Domain
// consumer to redeliver an event to the Machine it targets.
type routedEvent struct {
	target *Machine
	src    int
	typ    int
	ptr    interface{}
}

// Context is the per-socket re-entrant dispatch point described for the
// context domain: Enter/Leave/Raise/OnLeave, built directly on
// context.Domain so every event lands on the single active drain loop
// instead of a recursive lock.
type Context struct {
	domain *libctx.Domain[routedEvent]
}

// NewContext returns a Context ready to own a tree of Machine objects.
func NewContext() *Context {
	c := &Context{}
	c.domain = libctx.NewDomain(func(e routedEvent) {
		e.target.dispatch(e.src, e.typ, e.ptr)
	})
	return c
}

func (c *Context) Enter() { c.domain.Enter() }
func (c *Context) Leave() { c.domain.Leave() }

// Raise enqueues an event for machine m; safe to call from inside a
// handler (re-entrant) or from any other goroutine.
func (c *Context) Raise(m *Machine, src, typ int, ptr interface{}) {
	c.domain.Raise(routedEvent{target: m, src: src, typ: typ, ptr: ptr})
}

// OnLeave registers a callback run once the outermost Leave finishes
// draining; sockets use this to recompute sndfd/rcvfd readiness.
func (c *Context) OnLeave(cb func()) {
	c.domain.OnLeave(cb)
}
