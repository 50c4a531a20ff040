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

// Package endpoint implements the two canonical endpoint shapes: an
// Acceptor (listen/accept/session per connection) and a Connector
// (resolve/connect/session with a capped exponential reconnect backoff).
package endpoint

import "time"

// Backoff computes the delay before reconnect attempt n (0-based):
// min(ivlMax, ivl*2^n). A non-positive ivlMax means no cap is configured,
// so the interval stays constant at ivl.
func Backoff(ivl, ivlMax time.Duration, attempt int) time.Duration {
	if ivlMax <= 0 {
		return ivl
	}
	if attempt > 32 {
		attempt = 32 // guard against overflowing the shift
	}
	d := ivl << uint(attempt)
	if d <= 0 || d > ivlMax {
		return ivlMax
	}
	return d
}
