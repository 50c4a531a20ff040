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

// Package ipc is the unix-domain-socket transport: bind removes any stale
// socket file left behind by a previous crashed process, listens, and
// hands every connection to the stream package the same way tcp does.
package ipc

import (
	"net"
	"os"

	"github.com/bizzaro-jhunt/gridmq/errors"

	libnetproto "github.com/bizzaro-jhunt/gridmq/network/protocol"
	"github.com/bizzaro-jhunt/gridmq/transport/stream"
)

// Bind listens on the unix domain socket at path, unlinking a stale file
// left over from a previous process first.
func Bind(path string, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) (*stream.Listener, error) {
	if path == "" {
		return nil, errors.New(uint16(ErrorBadSocketPath), getMessage(ErrorBadSocketPath))
	}
	_ = os.Remove(path)

	ln, e := net.Listen(libnetproto.NetworkUnix.Code(), path)
	if e != nil {
		return nil, errors.New(uint16(ErrorBadSocketPath), getMessage(ErrorBadSocketPath), e)
	}
	return stream.NewListener(ln, protocol, sockType, peerTypes, maxFrameSize), nil
}

// Connect returns a dialer targeting the unix domain socket at path.
func Connect(path string, protocol uint16, sockType int, peerTypes []int, maxFrameSize uint64) (*stream.Dialer, error) {
	if path == "" {
		return nil, errors.New(uint16(ErrorBadSocketPath), getMessage(ErrorBadSocketPath))
	}
	return stream.NewDialer(libnetproto.NetworkUnix.Code(), path, protocol, sockType, peerTypes, maxFrameSize), nil
}
