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

// Package status registers component health under a shared route, letting a
// config component (database, nutsdb, smtp, nats) or an http server expose
// its own health alongside every other component behind one endpoint.
package status

import (
	"sync"

	spfcbr "github.com/spf13/cobra"
	spfvbr "github.com/spf13/viper"
)

// FctMessage builds the payload reported for a component's health.
type FctMessage func() (interface{}, error)

// Component is a single named health source registered on a RouteStatus.
type Component interface {
	Name() string
	IsOk() bool
	Message() (interface{}, error)
}

// RouteStatus collects components under a shared health route.
type RouteStatus interface {
	ComponentNew(name string, fct FctMessage) Component
	ComponentGet(name string) Component
	ComponentDel(name string)
	ComponentList() []string
	IsOk() bool
}

type component struct {
	name string
	fct  FctMessage
}

func (c *component) Name() string {
	return c.name
}

func (c *component) Message() (interface{}, error) {
	if c.fct == nil {
		return nil, nil
	}
	return c.fct()
}

func (c *component) IsOk() bool {
	_, e := c.Message()
	return e == nil
}

type route struct {
	mu  sync.RWMutex
	cpt map[string]Component
}

// New returns an empty RouteStatus ready to register components.
func New() RouteStatus {
	return &route{cpt: make(map[string]Component)}
}

func (r *route) ComponentNew(name string, fct FctMessage) Component {
	c := &component{name: name, fct: fct}

	r.mu.Lock()
	r.cpt[name] = c
	r.mu.Unlock()

	return c
}

func (r *route) ComponentGet(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cpt[name]
}

func (r *route) ComponentDel(name string) {
	r.mu.Lock()
	delete(r.cpt, name)
	r.mu.Unlock()
}

func (r *route) ComponentList() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.cpt))
	for k := range r.cpt {
		out = append(out, k)
	}
	return out
}

func (r *route) IsOk() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.cpt {
		if !c.IsOk() {
			return false
		}
	}
	return true
}

// DefaultConfig renders a sample status configuration block, indented with
// prefix, for embedding into a component's documentation default.
func DefaultConfig(prefix string) []byte {
	return []byte(prefix + `{
` + prefix + `  "enable": true
` + prefix + `}`)
}

// RegisterFlag binds the standard status flags for key onto cmd, and their
// viper lookup onto vpr.
func RegisterFlag(key string, cmd *spfcbr.Command, vpr *spfvbr.Viper) error {
	if cmd == nil || vpr == nil {
		return ErrInvalidInstance
	}

	cmd.PersistentFlags().Bool(key+".enable", true, "enable health status reporting for this component")
	return vpr.BindPFlag(key+".enable", cmd.PersistentFlags().Lookup(key+".enable"))
}
