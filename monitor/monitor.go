/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package monitor implements a periodic health check runner around an
// arbitrary health-check function, reporting status through the
// monitor/types Monitor contract so components (database pools, SMTP
// clients, HTTP servers, S3 clients...) can be polled uniformly.
package monitor

import (
	"context"
	"sync"
	"time"

	libctx "github.com/bizzaro-jhunt/gridmq/context"
	liblog "github.com/bizzaro-jhunt/gridmq/logger"
	montps "github.com/bizzaro-jhunt/gridmq/monitor/types"
	"github.com/bizzaro-jhunt/gridmq/runner/startStop"
)

// Monitor is an alias of the monitor/types contract.
type Monitor = montps.Monitor

// Config is an alias of the monitor/types health-check configuration.
type Config = montps.Config

type monitor struct {
	mu  sync.RWMutex
	inf montps.Info
	hc  montps.FuncHealthCheck
	log func() liblog.Logger
	cfg montps.Config

	r      startStop.StartStop
	cancel context.CancelFunc
}

// New returns a Monitor wrapping inf, using fctCtx as the parent context
// factory for its background health-check loop.
func New(fctCtx libctx.FuncContext, inf montps.Info) (Monitor, error) {
	if inf == nil {
		return nil, ErrNilInfo
	}

	return &monitor{inf: inf}, nil
}

func (m *monitor) Name() string {
	m.mu.RLock()
	inf := m.inf
	m.mu.RUnlock()

	if inf == nil {
		return ""
	}
	if n, e := inf.Name(); e == nil {
		return n
	}
	return ""
}

func (m *monitor) InfoUpd(inf montps.Info) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inf = inf
}

func (m *monitor) SetHealthCheck(fct montps.FuncHealthCheck) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hc = fct
}

func (m *monitor) RegisterLoggerDefault(fct func() liblog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = fct
}

func (m *monitor) SetConfig(fct libctx.FuncContext, cfg montps.Config) error {
	if e := cfg.Validate(); e != nil {
		return e
	}

	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()

	return nil
}

func (m *monitor) Validate() error {
	m.mu.RLock()
	cfg := m.cfg
	m.mu.RUnlock()

	return cfg.Validate()
}

func (m *monitor) loop(ctx context.Context) {
	m.mu.RLock()
	interval := m.cfg.Interval
	m.mu.RUnlock()

	if interval <= 0 {
		interval = 30 * time.Second
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.check(ctx)
		}
	}
}

func (m *monitor) check(ctx context.Context) {
	m.mu.RLock()
	hc := m.hc
	cfg := m.cfg
	m.mu.RUnlock()

	if hc == nil {
		return
	}

	x, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	_ = hc(x)
}

func (m *monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.r == nil {
		m.r = startStop.New(
			func(ctx context.Context) error {
				var loopCtx context.Context
				loopCtx, m.cancel = context.WithCancel(ctx)
				go m.loop(loopCtx)
				return nil
			},
			func(ctx context.Context) error {
				if m.cancel != nil {
					m.cancel()
				}
				return nil
			},
		)
	}
	r := m.r
	m.mu.Unlock()

	return r.Start(ctx)
}

func (m *monitor) Stop(ctx context.Context) error {
	m.mu.RLock()
	r := m.r
	m.mu.RUnlock()

	if r == nil {
		return nil
	}
	return r.Stop(ctx)
}

func (m *monitor) Restart(ctx context.Context) error {
	if e := m.Stop(ctx); e != nil {
		return e
	}
	return m.Start(ctx)
}

func (m *monitor) IsRunning() bool {
	m.mu.RLock()
	r := m.r
	m.mu.RUnlock()

	return r != nil && r.IsRunning()
}
