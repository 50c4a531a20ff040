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

// Package stream is the shared plumbing behind every byte-stream
// transport (TCP, IPC, TCPMUX): given an established net.Conn, it runs
// the handshake, then bridges a pipe.Pipe's Outbox/Received contract onto
// length-prefixed frames over the connection. TCP, IPC and TCPMUX differ
// only in how the net.Conn is obtained (net.Listen/net.Dial network and
// address), not in what happens to it afterward.
package stream

import (
	"context"
	"net"

	"github.com/bizzaro-jhunt/gridmq/errors"

	libendpoint "github.com/bizzaro-jhunt/gridmq/endpoint"
	libmsg "github.com/bizzaro-jhunt/gridmq/message"
	libpipe "github.com/bizzaro-jhunt/gridmq/pipe"
	"github.com/bizzaro-jhunt/gridmq/wire"
)

// Session is one net.Conn upgraded to a pipe.Pipe, with a reader and a
// writer goroutine bridging the two.
type Session struct {
	conn net.Conn
	pipe *libpipe.Pipe

	cancel context.CancelFunc
	done   chan struct{}
}

// Upgrade performs the handshake on conn and wires a new pipe.Pipe to it.
// maxFrameSize bounds ReadFrame (0 means unbounded).
func Upgrade(conn net.Conn, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) (*Session, error) {
	if _, e := wire.Handshake(conn, protocol); e != nil {
		_ = conn.Close()
		return nil, errors.New(uint16(ErrorHandshakeFailed), getMessage(ErrorHandshakeFailed), e)
	}

	p := libpipe.New(sockType, peerTypes, nil)
	if e := p.Start(sockType); e != nil {
		_ = conn.Close()
		return nil, e
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{conn: conn, pipe: p, cancel: cancel, done: make(chan struct{})}

	go s.writeLoop(ctx)
	go s.readLoop(ctx, maxFrameSize)

	return s, nil
}

func (s *Session) Pipe() *libpipe.Pipe { return s.pipe }

func (s *Session) Close() error {
	s.cancel()
	s.pipe.Stop()
	return s.conn.Close()
}

func (s *Session) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.pipe.Outbox():
			if !ok {
				return
			}
			e := wire.WriteFrame(s.conn, msg.Body())
			_ = msg.Term()
			if e != nil {
				s.pipe.Stop()
				return
			}
			s.pipe.Sent()
		}
	}
}

func (s *Session) readLoop(ctx context.Context, maxFrameSize uint64) {
	for {
		payload, e := wire.ReadFrame(s.conn, maxFrameSize)
		if e != nil {
			s.pipe.Stop()
			return
		}
		msg := libmsg.FromBytes(payload)
		if e := s.pipe.Received(msg, false); e != nil {
			_ = msg.Term()
			s.pipe.Stop()
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// Listener wraps a net.Listener, upgrading every accepted net.Conn.
type Listener struct {
	ln           net.Listener
	protocol     uint16
	sockType     int
	peerTypes    []int
	maxFrameSize uint64
}

func NewListener(ln net.Listener, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) *Listener {
	return &Listener{ln: ln, protocol: protocol, sockType: sockType, peerTypes: peerTypes, maxFrameSize: maxFrameSize}
}

func (l *Listener) Accept(ctx context.Context) (libendpoint.Session, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		c, e := l.ln.Accept()
		ch <- result{conn: c, err: e}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		return Upgrade(r.conn, l.protocol, l.sockType, l.peerTypes, l.maxFrameSize)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Listener) Close() error { return l.ln.Close() }

// Addr exposes the underlying listener's bound address, useful when Bind
// was given an ephemeral port (":0") and callers need to Connect back to
// whatever port the kernel assigned.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Dialer dials network/address once per Dial call and upgrades the
// resulting net.Conn.
type Dialer struct {
	network      string
	address      string
	protocol     uint16
	sockType     int
	peerTypes    []int
	maxFrameSize uint64
}

func NewDialer(network, address string, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) *Dialer {
	return &Dialer{network: network, address: address, protocol: protocol, sockType: sockType, peerTypes: peerTypes, maxFrameSize: maxFrameSize}
}

func (d *Dialer) Dial(ctx context.Context) (libendpoint.Session, error) {
	var dialer net.Dialer
	conn, e := dialer.DialContext(ctx, d.network, d.address)
	if e != nil {
		return nil, e
	}
	return Upgrade(conn, d.protocol, d.sockType, d.peerTypes, d.maxFrameSize)
}
