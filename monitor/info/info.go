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

// Package info provides the default Info implementation used to describe a
// monitored component's name and status payload to the monitor package.
package info

import (
	"errors"
	"sync"

	montps "github.com/bizzaro-jhunt/gridmq/monitor/types"
)

// Info is an alias of the monitor/types contract, kept as its own package so
// that monitor consumers can build one without importing monitor itself.
type Info = montps.Info

var ErrEmptyName = errors.New("monitor info: name must not be empty")

type info struct {
	mu   sync.RWMutex
	name string
	fn   montps.FuncName
	fi   montps.FuncInfo
}

// New returns an Info seeded with a default name, used as a fallback until
// RegisterName is called.
func New(name string) (Info, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	return &info{name: name}, nil
}

func (i *info) RegisterName(fct montps.FuncName) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.fn = fct
}

func (i *info) RegisterInfo(fct montps.FuncInfo) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.fi = fct
}

func (i *info) Name() (string, error) {
	i.mu.RLock()
	fn := i.fn
	name := i.name
	i.mu.RUnlock()

	if fn != nil {
		return fn()
	}
	return name, nil
}

func (i *info) GetInfo() (map[string]interface{}, error) {
	i.mu.RLock()
	fi := i.fi
	i.mu.RUnlock()

	if fi != nil {
		return fi()
	}
	return map[string]interface{}{}, nil
}
