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

// Package transport declares the static descriptor every concrete
// transport (inproc, tcp, ipc, ws, tcpmux) registers with: a name, a
// numeric id, and bind/connect factories producing endpoint.Listener and
// endpoint.Dialer respectively.
package transport

import (
	libendpoint "github.com/bizzaro-jhunt/gridmq/endpoint"
)

// Id values, one negative range reserved per spec for transports and a
// positive range for protocols sharing the same registry.
const (
	InProc  = -1
	TCP     = -2
	IPC     = -3
	WS      = -4
	TCPMux  = -5
)

// Transport is the static descriptor registered once per process.
type Transport struct {
	Name    string
	ID      int
	Bind    func(url string) (libendpoint.Listener, error)
	Connect func(url string) (libendpoint.Dialer, error)
}
