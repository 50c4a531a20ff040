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

package message

import "github.com/bizzaro-jhunt/gridmq/errors"

// Message is the value that flows through every pipe: a stream-protocol
// header (the first byte addressed by the wire handshake/framing layer), a
// stack of transport-added headers (the REQ/REP and SURVEYOR backtrace
// lives here), and a body. Each part is its own refcounted chunk so pattern
// code can hand the same body to several pipes (PUB/dist) without copying.
type Message struct {
	header  chunkRef
	headers chunkRef
	body    chunkRef
}

// New allocates a message with an empty header/headers stack and a body of
// the given size.
func New(bodySize int) Message {
	return Message{
		header:  chunkRef{},
		headers: chunkRef{},
		body:    allocChunk(bodySize),
	}
}

// FromBytes wraps an existing byte slice as the message body without
// copying it; the slice must not be mutated by the caller afterward.
func FromBytes(b []byte) Message {
	m := New(0)
	m.body = allocChunk(len(b))
	copy(m.body.bytes(), b)
	return m
}

// Term releases all three chunks. Calling Term twice on messages that came
// from the same Copy/Move lineage is a bug the same way double-freeing a
// grid_chunk is: the second release reports ErrorChunkFreed instead of
// corrupting a sibling's view of the data.
func (m *Message) Term() error {
	var first error
	for _, r := range []chunkRef{m.header, m.headers, m.body} {
		if e := r.release(); e != nil && first == nil {
			first = e
		}
	}
	*m = Message{}
	return first
}

// Move transfers ownership of m's chunks to the returned Message and zeroes
// m out, so the caller can no longer use or Term the original by mistake.
func (m *Message) Move() Message {
	out := *m
	*m = Message{}
	return out
}

// Copy returns a new Message sharing the same backing chunks. Because
// chunk mutation is copy-on-write, edits made through either copy are
// invisible to the other: the two stay logically independent even though
// no bytes were duplicated yet.
func (m Message) Copy() Message {
	return Message{
		header:  m.header.addRef(),
		headers: m.headers.addRef(),
		body:    m.body.addRef(),
	}
}

// BulkCopy returns n independent copies of m for fan-out sends (PUB, BUS,
// SURVEYOR). Each copy shares m's chunks until one of them is mutated.
func BulkCopy(m Message, n int) ([]Message, error) {
	if n < 1 {
		return nil, errors.New(uint16(ErrorBulkCopyCount), getMessage(ErrorBulkCopyCount))
	}
	out := make([]Message, n)
	for i := range out {
		out[i] = m.Copy()
	}
	return out, nil
}

// ReplaceBody releases the current body and substitutes a freshly
// allocated one, leaving the header and transport-header stack untouched.
// REP and RESPONDENT use this to keep the inbound backtrace when sending
// the reply body.
func (m *Message) ReplaceBody(b []byte) error {
	if e := m.body.release(); e != nil {
		return e
	}
	m.body = allocChunk(len(b))
	copy(m.body.bytes(), b)
	return nil
}

func (m Message) Body() []byte    { return m.body.bytes() }
func (m Message) Header() []byte  { return m.header.bytes() }
func (m Message) Headers() []byte { return m.headers.bytes() }

func (m Message) BodyLen() int  { return m.body.len() }
func (m Message) HeaderLen() int { return m.header.len() }

// PushHeader prepends b onto the transport-headers stack. REQ/REP and
// SURVEYOR backtraces grow this way: each hop that forwards the message
// pushes its own pipe id before passing it on.
func (m *Message) PushHeader(b []byte) {
	nh := allocChunk(m.headers.len() + len(b))
	copy(nh.bytes(), b)
	copy(nh.bytes()[len(b):], m.headers.bytes())
	_ = m.headers.release()
	m.headers = nh
}

// PopHeader removes and returns the first n bytes of the transport-headers
// stack, the inverse of PushHeader. ok is false if fewer than n bytes
// remain.
func (m *Message) PopHeader(n int) (out []byte, ok bool) {
	if m.headers.len() < n {
		return nil, false
	}
	out = append(out, m.headers.bytes()[:n]...)
	rest, e := m.headers.trim(n)
	if e != nil {
		return nil, false
	}
	m.headers = rest
	return out, true
}

// SetHeader overwrites the stream-protocol header byte(s).
func (m *Message) SetHeader(b []byte) {
	nh := allocChunk(len(b))
	copy(nh.bytes(), b)
	_ = m.header.release()
	m.header = nh
}
