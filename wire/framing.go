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

package wire

import (
	"encoding/binary"
	"io"
)

// LengthPrefixSize is the width of the frame length field: an 8-byte
// network-order integer ahead of every message on a stream transport.
const LengthPrefixSize = 8

// WriteFrame writes payload as one length-prefixed frame.
func WriteFrame(w io.Writer, payload []byte) error {
	var hdr [LengthPrefixSize]byte
	binary.BigEndian.PutUint64(hdr[:], uint64(len(payload)))
	if _, e := w.Write(hdr[:]); e != nil {
		return e
	}
	_, e := w.Write(payload)
	return e
}

// ReadFrame reads one length-prefixed frame, rejecting any declared length
// above maxSize (0 means unbounded).
func ReadFrame(r io.Reader, maxSize uint64) ([]byte, error) {
	var hdr [LengthPrefixSize]byte
	if _, e := io.ReadFull(r, hdr[:]); e != nil {
		return nil, e
	}

	n := binary.BigEndian.Uint64(hdr[:])
	if maxSize > 0 && n > maxSize {
		return nil, errorsNew(ErrorFrameTooLarge)
	}

	payload := make([]byte, n)
	if _, e := io.ReadFull(r, payload); e != nil {
		return nil, e
	}
	return payload, nil
}
