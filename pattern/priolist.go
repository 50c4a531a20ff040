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

// Package pattern implements the queueing disciplines shared by the
// socket-type policies: a 16-level priority round-robin used by both fair
// queueing (inbound) and load balancing (outbound), an unordered
// broadcast list for PUB/BUS, and a subscription trie for SUB filtering.
package pattern

import (
	"sync"

	libpipe "github.com/bizzaro-jhunt/gridmq/pipe"
)

// Slots is the number of priority levels a PrioList supports, numbered
// 1 (highest) through Slots (lowest).
const Slots = 16

type ring struct {
	pipes []*libpipe.Pipe
	cur   int
}

// PrioList is a round-robin ring per priority slot, with sends/receives
// always drawn from the lowest-numbered (highest-priority) non-empty
// slot. It backs both fq (fair queueing) and lb (load balancing).
type PrioList struct {
	mu       sync.Mutex
	slots    [Slots]*ring
	current  int // slot number 1..Slots, or -1 when nothing is active
	priority map[*libpipe.Pipe]int
}

// NewPrioList returns an empty PrioList.
func NewPrioList() *PrioList {
	p := &PrioList{current: -1, priority: make(map[*libpipe.Pipe]int)}
	for i := range p.slots {
		p.slots[i] = &ring{}
	}
	return p
}

// Add registers pipe at the given priority (1..Slots) without making it
// eligible for traffic; Activate does that once the pipe reports it can
// send or receive.
func (p *PrioList) Add(pipe *libpipe.Pipe, priority int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.priority[pipe] = priority
}

// Remove detaches pipe entirely, adjusting the current pointers the same
// way the pipe's own slot and the overall active slot would shift if it
// had just been exhausted.
func (p *PrioList) Remove(pipe *libpipe.Pipe) {
	p.mu.Lock()
	defer p.mu.Unlock()

	priority, ok := p.priority[pipe]
	if !ok {
		return
	}
	delete(p.priority, pipe)

	slot := p.slots[priority-1]
	idx := indexOf(slot.pipes, pipe)
	if idx < 0 {
		return
	}
	slot.pipes = append(slot.pipes[:idx], slot.pipes[idx+1:]...)
	if len(slot.pipes) == 0 {
		slot.cur = 0
	} else if slot.cur >= len(slot.pipes) {
		slot.cur = 0
	}

	if p.current != priority {
		return
	}
	p.skipEmptySlots()
}

// Activate makes pipe eligible for traffic by inserting it into its
// slot's ring, promoting that slot to current if it is now the
// highest-priority one with anything in it.
func (p *PrioList) Activate(pipe *libpipe.Pipe) {
	p.mu.Lock()
	defer p.mu.Unlock()

	priority, ok := p.priority[pipe]
	if !ok {
		return
	}
	slot := p.slots[priority-1]
	slot.pipes = append(slot.pipes, pipe)

	if p.current == -1 {
		p.current = priority
		return
	}
	if p.current > priority {
		p.current = priority
	}
}

func (p *PrioList) IsActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != -1
}

func (p *PrioList) CurrentPriority() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// CurrentPipe returns the pipe whose turn it is, or nil if no slot is
// active.
func (p *PrioList) CurrentPipe() *libpipe.Pipe {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == -1 {
		return nil
	}
	slot := p.slots[p.current-1]
	if len(slot.pipes) == 0 {
		return nil
	}
	return slot.pipes[slot.cur]
}

// Advance moves the current slot's ring to the next pipe. release==true
// means the current pipe just drained its direction and should be
// dropped from rotation until reactivated.
func (p *PrioList) Advance(release bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == -1 {
		return
	}

	slot := p.slots[p.current-1]
	if len(slot.pipes) == 0 {
		p.skipEmptySlots()
		return
	}

	if release {
		slot.pipes = append(slot.pipes[:slot.cur], slot.pipes[slot.cur+1:]...)
		if len(slot.pipes) == 0 {
			slot.cur = 0
		} else if slot.cur >= len(slot.pipes) {
			slot.cur = 0
		}
	} else {
		slot.cur = (slot.cur + 1) % len(slot.pipes)
	}

	p.skipEmptySlots()
}

// skipEmptySlots walks forward from the current priority until it finds a
// non-empty slot, or exhausts the table and deactivates.
func (p *PrioList) skipEmptySlots() {
	for len(p.slots[p.current-1].pipes) == 0 {
		p.current++
		if p.current > Slots {
			p.current = -1
			return
		}
	}
}

func indexOf(pipes []*libpipe.Pipe, pipe *libpipe.Pipe) int {
	for i, x := range pipes {
		if x == pipe {
			return i
		}
	}
	return -1
}
