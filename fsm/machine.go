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

package fsm

// Reserved event sources and types every Machine understands regardless
// of what it represents.
const (
	// SrcAction marks an event raised by the machine's own owner rather
	// than by one of its named children (Start/Stop calls).
	SrcAction = -1

	TypeStart   = -1
	TypeStop    = -2
	TypeStopped = -3
)

// Handler processes one event. src identifies which child (or SrcAction
// for the owner) raised it, typ is the event code, ptr is whatever the
// emitter chose to attach.
type Handler func(m *Machine, src, typ int, ptr interface{})

// Machine is one node in the hierarchical state machine tree: a handler
// for normal operation, a second handler that takes over once Stop has
// been requested, and an optional owner that receives the Stopped event
// once shutdown finishes.
type Machine struct {
	ctx      *Context
	handler  Handler
	shutdown Handler
	owner    *Machine
	ownerSrc int

	state     int
	stopping  bool
	stoppedCh chan struct{}

	// Data is free for the embedding type (pipe, endpoint, socket) to
	// stash its own state value, mirroring the C state_value pointer.
	Data interface{}
}

// New creates a Machine. owner may be nil for a root machine (a socket's
// top-level FSM); ownerSrc is the src value the owner will see on the
// Stopped event.
func New(ctx *Context, handler, shutdown Handler, owner *Machine, ownerSrc int) *Machine {
	return &Machine{
		ctx:       ctx,
		handler:   handler,
		shutdown:  shutdown,
		owner:     owner,
		ownerSrc:  ownerSrc,
		stoppedCh: make(chan struct{}),
	}
}

func (m *Machine) State() int     { return m.state }
func (m *Machine) SetState(s int) { m.state = s }
func (m *Machine) IsStopping() bool { return m.stopping }

// Start raises TypeStart on this machine from its own owner slot.
func (m *Machine) Start() {
	m.ctx.Enter()
	m.ctx.Raise(m, SrcAction, TypeStart, nil)
	m.ctx.Leave()
}

// Stop switches the machine into shutdown mode and raises TypeStop. From
// this point every event — including ones already queued — is routed to
// the shutdown handler until the machine calls Stopped.
func (m *Machine) Stop() {
	m.ctx.Enter()
	m.stopping = true
	m.ctx.Raise(m, SrcAction, TypeStop, nil)
	m.ctx.Leave()
}

// Raise enqueues an event from child src with the given type and pointer.
// Safe to call re-entrantly from inside a handler.
func (m *Machine) Raise(src, typ int, ptr interface{}) {
	m.ctx.Raise(m, src, typ, ptr)
}

// Stopped is called by the shutdown handler once it has finished
// draining its own children. It notifies Wait and, if an owner was
// given, raises TypeStopped on the owner with ownerSrc so the owner's
// handler knows which child just finished.
func (m *Machine) Stopped() {
	select {
	case <-m.stoppedCh:
		// already stopped; idempotent
	default:
		close(m.stoppedCh)
	}
	if m.owner != nil {
		m.owner.Raise(m.ownerSrc, TypeStopped, m)
	}
}

// Wait blocks until Stopped has been called.
func (m *Machine) Wait() {
	<-m.stoppedCh
}

func (m *Machine) dispatch(src, typ int, ptr interface{}) {
	if m.stopping {
		if m.shutdown != nil {
			m.shutdown(m, src, typ, ptr)
		}
		return
	}
	if m.handler != nil {
		m.handler(m, src, typ, ptr)
	}
}
