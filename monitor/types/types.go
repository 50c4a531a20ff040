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

// Package types holds the shared contracts of the monitor package: the
// Monitor and Info interfaces, the pool that components register monitors
// into, and the JSON-configurable health-check settings.
package types

import (
	"context"
	"encoding/json"
	"time"

	libctx "github.com/bizzaro-jhunt/gridmq/context"
	liblog "github.com/bizzaro-jhunt/gridmq/logger"
)

// FuncName returns a human-readable name for the monitored component.
type FuncName func() (string, error)

// FuncInfo returns the arbitrary info payload of the monitored component.
type FuncInfo func() (map[string]interface{}, error)

// FuncHealthCheck reports whether the monitored component is healthy.
type FuncHealthCheck func(ctx context.Context) error

// Info carries the name and arbitrary info payload of a monitored component.
type Info interface {
	RegisterName(fct FuncName)
	RegisterInfo(fct FuncInfo)
	Name() (string, error)
	GetInfo() (map[string]interface{}, error)
}

// Config configures a single monitor's health-check schedule.
type Config struct {
	Enable          bool          `json:"enable,omitempty" yaml:"enable,omitempty" toml:"enable,omitempty" mapstructure:"enable,omitempty"`
	Interval        time.Duration `json:"interval,omitempty" yaml:"interval,omitempty" toml:"interval,omitempty" mapstructure:"interval,omitempty"`
	Timeout         time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" toml:"timeout,omitempty" mapstructure:"timeout,omitempty"`
	FallCount       int           `json:"fall-count,omitempty" yaml:"fall-count,omitempty" toml:"fall-count,omitempty" mapstructure:"fall-count,omitempty"`
	RiseCount       int           `json:"rise-count,omitempty" yaml:"rise-count,omitempty" toml:"rise-count,omitempty" mapstructure:"rise-count,omitempty"`
	IntervalFailure time.Duration `json:"interval-failure,omitempty" yaml:"interval-failure,omitempty" toml:"interval-failure,omitempty" mapstructure:"interval-failure,omitempty"`
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	if c.Enable && c.Interval <= 0 {
		return ErrInvalidInterval
	}
	return nil
}

// DefaultConfig returns a sample JSON configuration, indented with prefix.
func DefaultConfig(prefix string) []byte {
	c := Config{
		Enable:          true,
		Interval:        30 * time.Second,
		Timeout:         5 * time.Second,
		FallCount:       3,
		RiseCount:       1,
		IntervalFailure: 5 * time.Second,
	}

	b, _ := json.MarshalIndent(c, prefix, "  ")
	return b
}

// Monitor is a health-checked, nameable component registered into a Pool.
type Monitor interface {
	Name() string
	InfoUpd(inf Info)
	SetHealthCheck(fct FuncHealthCheck)
	RegisterLoggerDefault(fct func() liblog.Logger)
	SetConfig(fct libctx.FuncContext, cfg Config) error
	Start(ctx context.Context) error
	Restart(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
	Validate() error
}

// Pool stores Monitor instances by name.
type Pool interface {
	MonitorGet(key string) Monitor
	MonitorSet(mon Monitor) error
	Len() int
}

// FuncPool returns the Pool a component should register its monitors into.
type FuncPool func() Pool
