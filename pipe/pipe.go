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

// Package pipe implements the bidirectional message stream between a
// socket and one transport connection: the upward contract a pattern
// object drives (send/recv/options/per-pipe data) and the downward
// contract a transport drives (start/stop/received/sent).
package pipe

import (
	"sync"

	"github.com/bizzaro-jhunt/gridmq/errors"
	libmsg "github.com/bizzaro-jhunt/gridmq/message"
)

// Result is the non-blocking outcome of Send/Recv.
type Result int

const (
	// OK means the call fully completed.
	OK Result = iota
	// Release means the pipe isn't ready; the caller waits for the
	// matching Event before retrying.
	Release
	// Parsed means the transport already split header from body, so the
	// owning pattern must not re-parse (set on Recv results only).
	Parsed
)

// Event is raised upward to the owning socket when a previously
// Released direction becomes ready again.
type Event int

const (
	EventIn Event = iota
	EventOut
)

// State is the pipe's top-level lifecycle, driven by the transport.
type State int

const (
	Idle State = iota
	Active
	Stopping
)

// IOState is a per-direction sub-state.
type IOState int

const (
	IOIdle IOState = iota
	IOPending
	IODone
	IODeactivated
)

// Pipe is a polymorphic stream between a socket and a transport
// connection. It owns nothing but its own state; the transport owns the
// underlying file descriptor or in-process channel.
type Pipe struct {
	mu       sync.Mutex
	state    State
	inState  IOState
	outState IOState

	sockType  int
	peerTypes map[int]bool
	data      interface{}

	onEvent func(Event)

	in  chan inboxItem
	out chan libmsg.Message
}

type inboxItem struct {
	msg    libmsg.Message
	parsed bool
}

// New constructs a pipe owned by a socket of type sockType, accepting
// peers of any type in peerTypes. onEvent is called (off the transport's
// goroutine is not guaranteed; callers must not block in it) whenever a
// previously-released direction becomes ready again.
func New(sockType int, peerTypes []int, onEvent func(Event)) *Pipe {
	peers := make(map[int]bool, len(peerTypes))
	for _, t := range peerTypes {
		peers[t] = true
	}
	return &Pipe{
		sockType:  sockType,
		peerTypes: peers,
		onEvent:   onEvent,
		in:        make(chan inboxItem, 1),
		out:       make(chan libmsg.Message, 1),
	}
}

// --- upward contract (driven by the owning pattern) ---

// Send queues msg for the transport to write. Non-blocking: Release means
// a previous message is still queued and the caller must wait for
// EventOut.
func (p *Pipe) Send(msg libmsg.Message) (Result, error) {
	p.mu.Lock()
	if p.state != Active {
		p.mu.Unlock()
		return 0, errors.New(uint16(ErrorNotActive), getMessage(ErrorNotActive))
	}
	p.mu.Unlock()

	select {
	case p.out <- msg:
		p.mu.Lock()
		p.outState = IOPending
		p.mu.Unlock()
		return OK, nil
	default:
		return Release, nil
	}
}

// Recv pulls one message queued by the transport. Non-blocking: Release
// means nothing is ready yet.
func (p *Pipe) Recv() (libmsg.Message, Result, error) {
	p.mu.Lock()
	if p.state != Active {
		p.mu.Unlock()
		return libmsg.Message{}, 0, errors.New(uint16(ErrorNotActive), getMessage(ErrorNotActive))
	}
	p.mu.Unlock()

	select {
	case item := <-p.in:
		p.mu.Lock()
		p.inState = IOIdle
		p.mu.Unlock()
		if item.parsed {
			return item.msg, Parsed, nil
		}
		return item.msg, OK, nil
	default:
		return libmsg.Message{}, Release, nil
	}
}

// SetData/GetData let the owning pattern attach per-pipe bookkeeping
// (priolist ring membership, REQ/REP pipe id, SUB subscription cursor).
func (p *Pipe) SetData(v interface{}) {
	p.mu.Lock()
	p.data = v
	p.mu.Unlock()
}

func (p *Pipe) GetData() interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data
}

// IsPeer reports whether sockType is a valid peer for this pipe's owner.
// An empty peer set means any socket type is accepted (PAIR with a
// matching transport, or a socket type that hasn't restricted peers).
func (p *Pipe) IsPeer(sockType int) bool {
	if len(p.peerTypes) == 0 {
		return true
	}
	return p.peerTypes[sockType]
}

// --- downward contract (driven by the owning transport) ---

// Start is called once the underlying connection is ready. It returns an
// error if the remote end announced a socket type this pipe doesn't
// accept.
func (p *Pipe) Start(remoteSockType int) error {
	if !p.IsPeer(remoteSockType) {
		return errors.New(uint16(ErrorNotPeer), getMessage(ErrorNotPeer))
	}
	p.mu.Lock()
	p.state = Active
	p.inState = IOIdle
	p.outState = IOIdle
	p.mu.Unlock()
	return nil
}

// Stop marks the pipe as no longer usable; in-flight Send/Recv calls
// already past their state check still complete, but new ones fail.
func (p *Pipe) Stop() {
	p.mu.Lock()
	p.state = Stopping
	p.mu.Unlock()
}

// Received is called by the transport when a full message has arrived.
// parsed mirrors the Parsed result: true when the transport already split
// header from body (in-process transport).
func (p *Pipe) Received(msg libmsg.Message, parsed bool) error {
	select {
	case p.in <- inboxItem{msg: msg, parsed: parsed}:
	default:
		return errors.New(uint16(ErrorInboxFull), getMessage(ErrorInboxFull))
	}
	p.mu.Lock()
	p.inState = IODone
	cb := p.onEvent
	p.mu.Unlock()
	if cb != nil {
		cb(EventIn)
	}
	return nil
}

// Sent is called by the transport once a queued Send has been written to
// the wire.
func (p *Pipe) Sent() {
	p.mu.Lock()
	p.outState = IODone
	cb := p.onEvent
	p.mu.Unlock()
	if cb != nil {
		cb(EventOut)
	}
}

// Outbox exposes the channel a transport reads from to learn what to
// write next.
func (p *Pipe) Outbox() <-chan libmsg.Message {
	return p.out
}

func (p *Pipe) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
