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

// LoadBalancer is a PrioList over outbound pipes: Send always writes to
// the current highest-priority writable pipe, then rotates.
type LoadBalancer struct {
	list *PrioList
}

func NewLoadBalancer() *LoadBalancer {
	return &LoadBalancer{list: NewPrioList()}
}

func (l *LoadBalancer) Add(pipe *libpipe.Pipe, priority int) { l.list.Add(pipe, priority) }
func (l *LoadBalancer) Remove(pipe *libpipe.Pipe)             { l.list.Remove(pipe) }

// Out marks pipe as writable again.
func (l *LoadBalancer) Out(pipe *libpipe.Pipe) { l.list.Activate(pipe) }

func (l *LoadBalancer) CanSend() bool       { return l.list.IsActive() }
func (l *LoadBalancer) CurrentPriority() int { return l.list.CurrentPriority() }

// Send writes to the current pipe, then advances rotation. delivered is
// false when the current pipe was already saturated; the caller may call
// Send again immediately since rotation has already moved on.
func (l *LoadBalancer) Send(msg libmsg.Message) (target *libpipe.Pipe, delivered bool, err error) {
	p := l.list.CurrentPipe()
	if p == nil {
		return nil, false, errNoActivePipe()
	}

	rc, e := p.Send(msg)
	if e != nil {
		return nil, false, e
	}

	released := rc == libpipe.Release
	l.list.Advance(released)
	return p, !released, nil
}
