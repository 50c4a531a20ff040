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

package endpoint

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	libpipe "github.com/bizzaro-jhunt/gridmq/pipe"
)

// Session is one established transport connection, already upgraded to a
// usable Pipe by the transport package that produced it.
type Session interface {
	Pipe() *libpipe.Pipe
	Close() error
}

// Listener is the transport-side half of an Acceptor: bind once, then
// Accept blocks until a peer connects or ctx is canceled.
type Listener interface {
	Accept(ctx context.Context) (Session, error)
	Close() error
}

// Dialer is the transport-side half of a Connector: resolve+connect one
// attempt, returning either a Session or an error.
type Dialer interface {
	Dial(ctx context.Context) (Session, error)
}

// Counters tracks the error surface every endpoint exposes to its owning
// socket, independent of transport.
type Counters struct {
	ConnectErrors     atomic.Int64
	BindErrors        atomic.Int64
	AcceptErrors      atomic.Int64
	BrokenConnections atomic.Int64
}

// Acceptor re-arms Listener.Accept forever: listen → accept → hand the
// session to onSession → accept again. A session that dies (reported via
// Session.Close from the owner) does not stop the acceptor; only Stop or
// a listener-level error does.
type Acceptor struct {
	listener  Listener
	onSession func(Session)
	counters  Counters

	cancel context.CancelFunc
	done   chan struct{}
}

// NewAcceptor starts the accept loop immediately in a background
// goroutine.
func NewAcceptor(listener Listener, onSession func(Session)) *Acceptor {
	ctx, cancel := context.WithCancel(context.Background())
	a := &Acceptor{listener: listener, onSession: onSession, cancel: cancel, done: make(chan struct{})}
	go a.run(ctx)
	return a
}

func (a *Acceptor) run(ctx context.Context) {
	defer close(a.done)
	for {
		sess, e := a.listener.Accept(ctx)
		if e != nil {
			if ctx.Err() != nil {
				return
			}
			a.counters.AcceptErrors.Add(1)
			continue
		}
		a.onSession(sess)
	}
}

// Stop closes the listener and waits for the accept loop to exit.
func (a *Acceptor) Stop() {
	a.cancel()
	_ = a.listener.Close()
	<-a.done
}

func (a *Acceptor) Counters() *Counters { return &a.counters }

// Connector redials forever: resolve+connect → hand the session to
// onSession → wait for the session to report it died (via SessionDown) →
// back off → redial. The backoff resets to the minimum after any
// successful connection.
type Connector struct {
	dialer    Dialer
	ivl       time.Duration
	ivlMax    time.Duration
	onSession func(Session)
	counters  Counters

	mu      sync.Mutex
	attempt int

	cancel context.CancelFunc
	done   chan struct{}
	down   chan struct{}
}

// NewConnector starts the connect loop immediately in a background
// goroutine. ivl is the minimum (and, with ivlMax==0, constant) reconnect
// interval; ivlMax caps the exponential backoff.
func NewConnector(dialer Dialer, ivl, ivlMax time.Duration, onSession func(Session)) *Connector {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Connector{
		dialer:    dialer,
		ivl:       ivl,
		ivlMax:    ivlMax,
		onSession: onSession,
		cancel:    cancel,
		done:      make(chan struct{}),
		down:      make(chan struct{}, 1),
	}
	go c.run(ctx)
	return c
}

// SessionDown tells the connector its current session died, so it should
// back off and redial. Safe to call more than once.
func (c *Connector) SessionDown() {
	select {
	case c.down <- struct{}{}:
	default:
	}
}

func (c *Connector) run(ctx context.Context) {
	defer close(c.done)
	for {
		sess, e := c.dialer.Dial(ctx)
		if e != nil {
			if ctx.Err() != nil {
				return
			}
			c.counters.ConnectErrors.Add(1)
			if !c.sleep(ctx, c.nextBackoff()) {
				return
			}
			continue
		}

		c.resetBackoff()
		c.onSession(sess)

		select {
		case <-ctx.Done():
			return
		case <-c.down:
			c.counters.BrokenConnections.Add(1)
			if !c.sleep(ctx, c.nextBackoff()) {
				return
			}
		}
	}
}

func (c *Connector) nextBackoff() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := Backoff(c.ivl, c.ivlMax, c.attempt)
	c.attempt++
	return d
}

func (c *Connector) resetBackoff() {
	c.mu.Lock()
	c.attempt = 0
	c.mu.Unlock()
}

func (c *Connector) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Stop cancels the connect loop and waits for it to exit.
func (c *Connector) Stop() {
	c.cancel()
	<-c.done
}

func (c *Connector) Counters() *Counters { return &c.counters }
