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

// Package message implements the refcounted, copy-on-write byte buffer that
// backs every value moving through a socket: the three-part message of
// stream-protocol header, transport headers and body.
package message

import (
	"sync/atomic"

	"github.com/bizzaro-jhunt/gridmq/errors"
)

// chunk is the shared backing allocation. Several chunkRef values can point
// at the same chunk; the chunk is only actually dropped once the last one
// releases it.
type chunk struct {
	ref atomic.Int32
	buf []byte
}

func newChunk(n int) *chunk {
	c := &chunk{buf: make([]byte, n)}
	c.ref.Store(1)
	return c
}

// chunkRef is a view into a chunk: an offset and a length. Trim advances the
// offset without touching the backing array, the same way the C allocator
// shrinks a chunk by moving its header forward instead of copying bytes.
type chunkRef struct {
	c    *chunk
	off  int
	size int
}

func allocChunk(n int) chunkRef {
	return chunkRef{c: newChunk(n), off: 0, size: n}
}

func (r chunkRef) bytes() []byte {
	if r.c == nil {
		return nil
	}
	return r.c.buf[r.off : r.off+r.size]
}

func (r chunkRef) len() int {
	return r.size
}

// addRef shares the backing chunk between two references; both must be
// released independently.
func (r chunkRef) addRef() chunkRef {
	if r.c != nil {
		r.c.ref.Add(1)
	}
	return r
}

// release drops one reference. Releasing past zero is a caller bug (the
// original allocator tags freed memory to catch exactly this); we surface
// it as ErrorChunkFreed instead of corrupting shared memory.
func (r chunkRef) release() error {
	if r.c == nil {
		return nil
	}
	if n := r.c.ref.Add(-1); n < 0 {
		return errors.New(uint16(ErrorChunkFreed), getMessage(ErrorChunkFreed))
	}
	return nil
}

func (r chunkRef) isShared() bool {
	return r.c != nil && r.c.ref.Load() > 1
}

// realloc grows or shrinks the reference to exactly n bytes. When the chunk
// is not shared, it reuses or extends the existing backing array in place.
// When shared, it copies onto a fresh chunk first (copy-on-write) so
// siblings keep seeing their own, unmodified content.
func (r chunkRef) realloc(n int) chunkRef {
	if r.c == nil {
		return allocChunk(n)
	}

	if !r.isShared() && r.off+n <= cap(r.c.buf) {
		if r.off+n > len(r.c.buf) {
			r.c.buf = append(r.c.buf[:r.off], make([]byte, n)...)
		}
		return chunkRef{c: r.c, off: r.off, size: n}
	}

	out := allocChunk(n)
	copy(out.bytes(), r.bytes())
	_ = r.release()
	return out
}

// trim shrinks the reference by n bytes from the front, advancing the
// offset rather than moving any memory.
func (r chunkRef) trim(n int) (chunkRef, error) {
	if n > r.size {
		return r, errors.New(uint16(ErrorChunkTrimTooLarge), getMessage(ErrorChunkTrimTooLarge))
	}
	return chunkRef{c: r.c, off: r.off + n, size: r.size - n}, nil
}
