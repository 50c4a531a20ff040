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

// Package ws is the WebSocket transport: bind runs an http.Server whose
// handler upgrades every request to a websocket.Conn restricted to the
// pattern's subprotocol token, connect dials the same way. Once
// upgraded, a websocket.Conn satisfies net.Conn and is handed to the
// stream package exactly like tcp/ipc.
package ws

import (
	"context"
	"net"
	"net/http"

	"golang.org/x/net/websocket"

	liberrors "github.com/bizzaro-jhunt/gridmq/errors"

	libendpoint "github.com/bizzaro-jhunt/gridmq/endpoint"
	"github.com/bizzaro-jhunt/gridmq/transport/stream"
	"github.com/bizzaro-jhunt/gridmq/wire"
)

// Listener serves one HTTP path, upgrading every inbound request whose
// Sec-WebSocket-Protocol matches this pattern's namespaced token.
type Listener struct {
	ln     net.Listener
	srv    *http.Server
	accept chan net.Conn

	protocol     uint16
	sockType     int
	peerTypes    []int
	maxFrameSize uint64
}

// Bind listens at address and upgrades every request to path whose
// subprotocol matches wire.WSSubprotocol(pattern).
func Bind(address, path, pattern string, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) (*Listener, error) {
	ln, e := net.Listen("tcp", address)
	if e != nil {
		return nil, e
	}

	l := &Listener{
		ln: ln, accept: make(chan net.Conn, 16),
		protocol: protocol, sockType: sockType, peerTypes: peerTypes, maxFrameSize: maxFrameSize,
	}

	token := wire.WSSubprotocol(pattern)
	mux := http.NewServeMux()
	mux.Handle(path, websocket.Server{
		Handshake: func(cfg *websocket.Config, r *http.Request) error {
			for _, p := range cfg.Protocol {
				if p == token {
					return nil
				}
			}
			return liberrors.New(uint16(ErrorBadOrigin), getMessage(ErrorBadOrigin))
		},
		Handler: func(conn *websocket.Conn) {
			select {
			case l.accept <- conn:
			default:
				_ = conn.Close()
				return
			}
			// net/websocket closes conn as soon as this handler returns, so
			// block for the HTTP connection's lifetime and let
			// stream.Upgrade's goroutines (and Session.Close) own conn from
			// here on.
			<-conn.Request().Context().Done()
		},
	})

	l.srv = &http.Server{Handler: mux}
	go func() { _ = l.srv.Serve(ln) }()
	return l, nil
}

func (l *Listener) Accept(ctx context.Context) (libendpoint.Session, error) {
	select {
	case conn := <-l.accept:
		return stream.Upgrade(conn, l.protocol, l.sockType, l.peerTypes, l.maxFrameSize)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Listener) Close() error {
	return l.srv.Close()
}

// Addr exposes the bound address, useful when Bind was given an
// ephemeral port.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Dialer connects to a websocket URL with the pattern's namespaced
// subprotocol.
type Dialer struct {
	url, origin, pattern string
	protocol             uint16
	sockType             int
	peerTypes            []int
	maxFrameSize         uint64
}

// Connect returns a dialer targeting url (e.g. "ws://host:port/path").
func Connect(url, origin, pattern string, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) (*Dialer, error) {
	return &Dialer{url: url, origin: origin, pattern: pattern, protocol: protocol, sockType: sockType, peerTypes: peerTypes, maxFrameSize: maxFrameSize}, nil
}

func (d *Dialer) Dial(ctx context.Context) (libendpoint.Session, error) {
	cfg, e := websocket.NewConfig(d.url, d.origin)
	if e != nil {
		return nil, e
	}
	cfg.Protocol = []string{wire.WSSubprotocol(d.pattern)}

	conn, e := websocket.DialConfig(cfg)
	if e != nil {
		return nil, e
	}

	return stream.Upgrade(conn, d.protocol, d.sockType, d.peerTypes, d.maxFrameSize)
}
