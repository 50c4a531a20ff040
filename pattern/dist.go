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

package pattern

import (
	"sync"

	libmsg "github.com/bizzaro-jhunt/gridmq/message"
	libpipe "github.com/bizzaro-jhunt/gridmq/pipe"
)

// Distributor is an unordered list of outbound pipes used for broadcast
// (PUB, BUS). Send bulk-copies the message to every member pipe except an
// excluded one; a pipe that reports Release is dropped from the ready set
// until the owning socket type re-adds it on the next Out event.
type Distributor struct {
	mu    sync.Mutex
	pipes []*libpipe.Pipe
}

func NewDistributor() *Distributor {
	return &Distributor{}
}

// Out adds pipe to the broadcast set.
func (d *Distributor) Out(pipe *libpipe.Pipe) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if indexOf(d.pipes, pipe) < 0 {
		d.pipes = append(d.pipes, pipe)
	}
}

// Remove drops pipe from the broadcast set.
func (d *Distributor) Remove(pipe *libpipe.Pipe) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if idx := indexOf(d.pipes, pipe); idx >= 0 {
		d.pipes = append(d.pipes[:idx], d.pipes[idx+1:]...)
	}
}

func (d *Distributor) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pipes)
}

// Send bulk-copies msg to every member pipe other than exclude. With no
// members it is a no-op: there is nowhere to send the message.
func (d *Distributor) Send(msg libmsg.Message, exclude *libpipe.Pipe) error {
	d.mu.Lock()
	targets := make([]*libpipe.Pipe, 0, len(d.pipes))
	for _, p := range d.pipes {
		if p != exclude {
			targets = append(targets, p)
		}
	}
	d.mu.Unlock()

	if len(targets) == 0 {
		return nil
	}

	copies, e := libmsg.BulkCopy(msg, len(targets))
	if e != nil {
		return e
	}

	var dropped []*libpipe.Pipe
	for i, p := range targets {
		rc, e := p.Send(copies[i])
		if e != nil {
			continue
		}
		if rc == libpipe.Release {
			dropped = append(dropped, p)
		}
	}

	if len(dropped) > 0 {
		d.mu.Lock()
		for _, p := range dropped {
			if idx := indexOf(d.pipes, p); idx >= 0 {
				d.pipes = append(d.pipes[:idx], d.pipes[idx+1:]...)
			}
		}
		d.mu.Unlock()
	}

	return nil
}
