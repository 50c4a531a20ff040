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

// Package inproc implements the in-process transport: two sockets in the
// same address space exchange messages directly through a pair of bridged
// pipes, with no wire framing and no copy beyond the message's own
// copy-on-write semantics. Binding registers a name in a process-wide
// table; connecting looks the name up and pairs with whichever listener
// is bound there, mirroring the global name registry a bound inproc
// endpoint publishes itself into.
package inproc

import (
	"context"
	"sync"

	liberrors "github.com/bizzaro-jhunt/gridmq/errors"

	libendpoint "github.com/bizzaro-jhunt/gridmq/endpoint"
	libpipe "github.com/bizzaro-jhunt/gridmq/pipe"
)

var registryMu sync.Mutex
var registry = map[string]*Listener{}

func errNoSuchName() error {
	return liberrors.New(uint16(ErrorNoSuchName), getMessage(ErrorNoSuchName))
}

func errNameInUse() error {
	return liberrors.New(uint16(ErrorNameInUse), getMessage(ErrorNameInUse))
}

// Listener is the bound (bind-side) half of a name. Connect calls against
// the same name each produce a fresh Session paired with a new pipe.Pipe
// handed to onSession.
type Listener struct {
	name string

	mu        sync.Mutex
	closed    bool
	accept    chan *Session
	closeOnce sync.Once
	done      chan struct{}
}

// Bind registers name in the process-wide registry. Binding a name twice
// without an intervening Close fails with ErrorNameInUse, mirroring the
// original bind-time registration into the global inproc repository.
func Bind(name string) (*Listener, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[name]; ok {
		return nil, errNameInUse()
	}

	l := &Listener{
		name:   name,
		accept: make(chan *Session, 16),
		done:   make(chan struct{}),
	}
	registry[name] = l
	return l, nil
}

// Accept blocks until a peer calls Connect against this listener's name,
// or ctx is canceled, or the listener is closed.
func (l *Listener) Accept(ctx context.Context) (libendpoint.Session, error) {
	select {
	case s := <-l.accept:
		return s, nil
	case <-l.done:
		return nil, errNoSuchName()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close unregisters the name so future Connect calls fail, and unblocks
// any pending Accept.
func (l *Listener) Close() error {
	registryMu.Lock()
	if registry[l.name] == l {
		delete(registry, l.name)
	}
	registryMu.Unlock()

	l.closeOnce.Do(func() { close(l.done) })
	return nil
}

// Dialer is the connect-side handle produced for a given name; each Dial
// call looks the name up fresh, so a Connector's reconnect loop observes
// a Bind that appears after the first failed attempt.
type Dialer struct {
	name string
}

// Connect returns a Dialer bound to name. Resolution happens per Dial
// call, not here.
func Connect(name string) (*Dialer, error) {
	return &Dialer{name: name}, nil
}

// Dial looks up name in the registry and, if a Listener is bound there,
// pairs two directly-bridged pipes and hands one half to the listener's
// Accept queue while returning the other half as this call's Session.
func (d *Dialer) Dial(ctx context.Context) (libendpoint.Session, error) {
	registryMu.Lock()
	l, ok := registry[d.name]
	registryMu.Unlock()
	if !ok {
		return nil, errNoSuchName()
	}

	serverPipe := libpipe.New(0, nil, nil)
	clientPipe := libpipe.New(0, nil, nil)
	if e := serverPipe.Start(0); e != nil {
		return nil, e
	}
	if e := clientPipe.Start(0); e != nil {
		return nil, e
	}

	bridgeCtx, cancel := context.WithCancel(context.Background())
	bridge(bridgeCtx, serverPipe, clientPipe)

	server := &Session{pipe: serverPipe, cancel: cancel}
	client := &Session{pipe: clientPipe, cancel: cancel}

	select {
	case l.accept <- server:
	case <-l.done:
		cancel()
		return nil, errNoSuchName()
	case <-ctx.Done():
		cancel()
		return nil, ctx.Err()
	}

	return client, nil
}

// Session is one end of a paired inproc connection.
type Session struct {
	pipe   *libpipe.Pipe
	cancel context.CancelFunc
}

func (s *Session) Pipe() *libpipe.Pipe { return s.pipe }

func (s *Session) Close() error {
	s.cancel()
	s.pipe.Stop()
	return nil
}

// bridge shuttles every message written to a's outbox into b's inbox and
// vice versa, marking each delivery Parsed since inproc carries no wire
// framing to strip.
func bridge(ctx context.Context, a, b *libpipe.Pipe) {
	go pump(ctx, a, b)
	go pump(ctx, b, a)
}

func pump(ctx context.Context, from, to *libpipe.Pipe) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-from.Outbox():
			if !ok {
				return
			}
			if e := to.Received(msg, true); e != nil {
				_ = msg.Term()
				return
			}
			from.Sent()
		}
	}
}
