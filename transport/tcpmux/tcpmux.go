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

// Package tcpmux multiplexes several bound endpoints behind one shared
// TCP listener per address: every inbound connection sends a one-byte
// length plus a service name before the SP handshake begins, and this
// package dispatches the raw net.Conn to whichever Bind registered that
// name. Connect does the mirror: dial, write the service name frame,
// then hand off to the stream package exactly like plain tcp.
package tcpmux

import (
	"context"
	"net"
	"sync"

	"github.com/bizzaro-jhunt/gridmq/errors"

	libendpoint "github.com/bizzaro-jhunt/gridmq/endpoint"
	libnetproto "github.com/bizzaro-jhunt/gridmq/network/protocol"
	"github.com/bizzaro-jhunt/gridmq/transport/stream"
)

const maxServiceNameLen = 255

var registryMu sync.Mutex
var registry = map[string]*muxListener{}

// muxListener owns one real net.Listener shared by every service bound
// on the same address.
type muxListener struct {
	ln      net.Listener
	address string

	mu       sync.Mutex
	services map[string]chan net.Conn
	refs     int
}

func sharedListener(address string) (*muxListener, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if m, ok := registry[address]; ok {
		m.refs++
		return m, nil
	}

	ln, e := net.Listen(libnetproto.NetworkTCP.Code(), address)
	if e != nil {
		return nil, e
	}
	m := &muxListener{ln: ln, address: address, services: map[string]chan net.Conn{}}
	registry[address] = m
	go m.acceptLoop()
	return m, nil
}

func (m *muxListener) acceptLoop() {
	for {
		conn, e := m.ln.Accept()
		if e != nil {
			return
		}
		go m.dispatch(conn)
	}
}

func (m *muxListener) dispatch(conn net.Conn) {
	var nameLen [1]byte
	if _, e := conn.Read(nameLen[:]); e != nil {
		_ = conn.Close()
		return
	}
	name := make([]byte, nameLen[0])
	if nameLen[0] > 0 {
		if _, e := conn.Read(name); e != nil {
			_ = conn.Close()
			return
		}
	}

	m.mu.Lock()
	ch, ok := m.services[string(name)]
	m.mu.Unlock()
	if !ok {
		_ = conn.Close()
		return
	}

	select {
	case ch <- conn:
	default:
		_ = conn.Close()
	}
}

func (m *muxListener) register(service string) (chan net.Conn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[service]; ok {
		return nil, errors.New(uint16(ErrorServiceInUse), getMessage(ErrorServiceInUse))
	}
	ch := make(chan net.Conn, 16)
	m.services[service] = ch
	return ch, nil
}

func (m *muxListener) unregister(service string) {
	m.mu.Lock()
	delete(m.services, service)
	m.mu.Unlock()
}

func (m *muxListener) release() {
	registryMu.Lock()
	defer registryMu.Unlock()
	m.refs--
	if m.refs <= 0 {
		delete(registry, m.address)
		_ = m.ln.Close()
	}
}

// Listener is the Bind-side handle for one service on a shared address.
type Listener struct {
	shared       *muxListener
	service      string
	conns        chan net.Conn
	protocol     uint16
	sockType     int
	peerTypes    []int
	maxFrameSize uint64
}

// Bind registers service on the shared TCP listener for address, opening
// that listener if this is the first service bound there.
func Bind(address, service string, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) (*Listener, error) {
	if len(service) > maxServiceNameLen {
		return nil, errors.New(uint16(ErrorServiceNameTooLong), getMessage(ErrorServiceNameTooLong))
	}

	shared, e := sharedListener(address)
	if e != nil {
		return nil, e
	}
	conns, e := shared.register(service)
	if e != nil {
		shared.release()
		return nil, e
	}
	return &Listener{
		shared: shared, service: service, conns: conns,
		protocol: protocol, sockType: sockType, peerTypes: peerTypes, maxFrameSize: maxFrameSize,
	}, nil
}

func (l *Listener) Accept(ctx context.Context) (libendpoint.Session, error) {
	select {
	case conn := <-l.conns:
		return stream.Upgrade(conn, l.protocol, l.sockType, l.peerTypes, l.maxFrameSize)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Listener) Close() error {
	l.shared.unregister(l.service)
	l.shared.release()
	return nil
}

// Addr exposes the shared listener's bound address.
func (l *Listener) Addr() net.Addr { return l.shared.ln.Addr() }

// Dialer connects to a named service on a shared tcpmux address.
type Dialer struct {
	address      string
	service      string
	protocol     uint16
	sockType     int
	peerTypes    []int
	maxFrameSize uint64
}

// Connect returns a dialer targeting service at address.
func Connect(address, service string, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) (*Dialer, error) {
	if len(service) > maxServiceNameLen {
		return nil, errors.New(uint16(ErrorServiceNameTooLong), getMessage(ErrorServiceNameTooLong))
	}
	return &Dialer{address: address, service: service, protocol: protocol, sockType: sockType, peerTypes: peerTypes, maxFrameSize: maxFrameSize}, nil
}

func (d *Dialer) Dial(ctx context.Context) (libendpoint.Session, error) {
	var dialer net.Dialer
	conn, e := dialer.DialContext(ctx, libnetproto.NetworkTCP.Code(), d.address)
	if e != nil {
		return nil, e
	}

	frame := append([]byte{byte(len(d.service))}, []byte(d.service)...)
	if _, e := conn.Write(frame); e != nil {
		_ = conn.Close()
		return nil, e
	}

	return stream.Upgrade(conn, d.protocol, d.sockType, d.peerTypes, d.maxFrameSize)
}
