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

// Package viper wraps a spf13/viper instance with a context and a logger,
// exposed to config components through the FuncViper indirection so the
// configuration backend can be swapped without touching component code.
package viper

import (
	"context"
	"time"

	liblog "github.com/bizzaro-jhunt/gridmq/logger"
	spfpfl "github.com/spf13/pflag"
	spfvpr "github.com/spf13/viper"
)

// Viper exposes the subset of spf13/viper used by config components, plus
// access to the underlying instance for anything that isn't wrapped here.
type Viper interface {
	Viper() *spfvpr.Viper

	BindPFlag(key string, flag *spfpfl.Flag) error
	Set(key string, value interface{})
	UnmarshalKey(key string, rawVal interface{}) error

	Get(key string) interface{}
	GetString(key string) string
	GetBool(key string) bool
	GetInt(key string) int
	GetDuration(key string) time.Duration
	AllSettings() map[string]interface{}
}

// FuncViper returns the shared Viper instance, or nil if none is registered.
type FuncViper func() Viper

type viper struct {
	x context.Context
	l liblog.FuncLog
	v *spfvpr.Viper
}

// New wraps a fresh spf13/viper instance, using log for any diagnostic
// messages raised while reading configuration.
func New(ctx context.Context, log liblog.FuncLog) Viper {
	return &viper{
		x: ctx,
		l: log,
		v: spfvpr.New(),
	}
}

func (o *viper) Viper() *spfvpr.Viper {
	return o.v
}

func (o *viper) BindPFlag(key string, flag *spfpfl.Flag) error {
	return o.v.BindPFlag(key, flag)
}

func (o *viper) Set(key string, value interface{}) {
	o.v.Set(key, value)
}

func (o *viper) UnmarshalKey(key string, rawVal interface{}) error {
	return o.v.UnmarshalKey(key, rawVal)
}

func (o *viper) Get(key string) interface{} {
	return o.v.Get(key)
}

func (o *viper) GetString(key string) string {
	return o.v.GetString(key)
}

func (o *viper) GetBool(key string) bool {
	return o.v.GetBool(key)
}

func (o *viper) GetInt(key string) int {
	return o.v.GetInt(key)
}

func (o *viper) GetDuration(key string) time.Duration {
	return o.v.GetDuration(key)
}

func (o *viper) AllSettings() map[string]interface{} {
	return o.v.AllSettings()
}
