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
	libmsg "github.com/bizzaro-jhunt/gridmq/message"
	libpipe "github.com/bizzaro-jhunt/gridmq/pipe"
)

// FairQueue is a PrioList over inbound pipes: Recv always pulls from the
// current highest-priority pipe with data, then rotates.
type FairQueue struct {
	list *PrioList
}

func NewFairQueue() *FairQueue {
	return &FairQueue{list: NewPrioList()}
}

func (f *FairQueue) Add(pipe *libpipe.Pipe, priority int) { f.list.Add(pipe, priority) }
func (f *FairQueue) Remove(pipe *libpipe.Pipe)             { f.list.Remove(pipe) }

// In marks pipe as having data ready to receive.
func (f *FairQueue) In(pipe *libpipe.Pipe) { f.list.Activate(pipe) }

func (f *FairQueue) CanRecv() bool { return f.list.IsActive() }

// Recv pulls one message from the current pipe, then advances. A Release
// result from the pipe detaches it from rotation until the next In.
func (f *FairQueue) Recv() (libmsg.Message, *libpipe.Pipe, error) {
	p := f.list.CurrentPipe()
	if p == nil {
		return libmsg.Message{}, nil, errNoActivePipe()
	}

	msg, rc, e := p.Recv()
	if e != nil {
		return libmsg.Message{}, nil, e
	}

	f.list.Advance(rc == libpipe.Release)
	return msg, p, nil
}
