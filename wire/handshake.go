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

// Package wire implements the on-the-wire framing shared by every stream
// transport (TCP, IPC, TCPMUX, WebSocket): the 8-byte protocol handshake
// exchanged once per connection, and the length-prefixed framing used for
// every message afterward.
package wire

import (
	"encoding/binary"
	"io"
	"time"
)

// HeaderLen is the fixed size of the stream-protocol handshake.
const HeaderLen = 8

// HandshakeTimeout is how long a side waits for the peer's header before
// giving up, mirroring the one-second timer every C transport arms around
// the handshake.
const HandshakeTimeout = time.Second

// deadliner is satisfied by net.Conn; kept narrow so callers can pass a
// pipe or anything else with the same two methods.
type deadliner interface {
	SetDeadline(t time.Time) error
}

// Header builds the 8-byte handshake for the given protocol id:
// 0x00 'S' 'P' 0x00 <proto hi> <proto lo> 0x00 0x00.
func Header(protocol uint16) [HeaderLen]byte {
	var h [HeaderLen]byte
	h[0] = 0x00
	h[1] = 'S'
	h[2] = 'P'
	h[3] = 0x00
	binary.BigEndian.PutUint16(h[4:6], protocol)
	h[6] = 0x00
	h[7] = 0x00
	return h
}

// ParseHeader validates a received handshake and returns the peer's
// protocol id.
func ParseHeader(b []byte) (protocol uint16, err error) {
	if len(b) != HeaderLen || b[0] != 0x00 || b[1] != 'S' || b[2] != 'P' || b[3] != 0x00 {
		return 0, errBadMagic()
	}
	return binary.BigEndian.Uint16(b[4:6]), nil
}

// Handshake writes this side's header and reads the peer's, applying
// HandshakeTimeout to the round trip when rw also implements a deadline.
func Handshake(rw io.ReadWriter, protocol uint16) (peerProtocol uint16, err error) {
	if d, ok := rw.(deadliner); ok {
		_ = d.SetDeadline(time.Now().Add(HandshakeTimeout))
		defer func() { _ = d.SetDeadline(time.Time{}) }()
	}

	h := Header(protocol)
	if _, e := rw.Write(h[:]); e != nil {
		return 0, e
	}

	var peer [HeaderLen]byte
	if _, e := io.ReadFull(rw, peer[:]); e != nil {
		return 0, e
	}

	return ParseHeader(peer[:])
}

func errBadMagic() error {
	return errorsNew(ErrorBadMagic)
}
