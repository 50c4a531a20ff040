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

// Package tcp is the TCP transport: bind opens a net.Listener on the
// given address, connect dials it, and every accepted or dialed
// net.Conn is handed to the stream package for handshake and framing.
package tcp

import (
	"net"

	"github.com/bizzaro-jhunt/gridmq/errors"

	libnetproto "github.com/bizzaro-jhunt/gridmq/network/protocol"
	"github.com/bizzaro-jhunt/gridmq/transport/stream"
)

// Bind opens a TCP listener at address and wraps it for the given
// protocol id, socket type and accepted peer types.
func Bind(address string, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) (*stream.Listener, error) {
	ln, e := net.Listen(libnetproto.NetworkTCP.Code(), address)
	if e != nil {
		return nil, errors.New(uint16(ErrorBadAddress), getMessage(ErrorBadAddress), e)
	}
	return stream.NewListener(ln, protocol, sockType, peerTypes, maxFrameSize), nil
}

// Connect returns a dialer that resolves and connects to address on each
// Dial call.
func Connect(address string, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) (*stream.Dialer, error) {
	return stream.NewDialer(libnetproto.NetworkTCP.Code(), address, protocol, sockType, peerTypes, maxFrameSize), nil
}
