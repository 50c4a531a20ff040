/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

// Package size provides a byte-count type with binary and decimal unit
// constants, used across the module wherever a buffer size or throughput
// limit needs to be both human-writable and machine-comparable.
package size

import (
	"fmt"
	"strconv"
)

// Size is a number of bytes.
type Size int64

const (
	SizeByte Size = 1

	SizeKiB = SizeByte * 1024
	SizeMiB = SizeKiB * 1024
	SizeGiB = SizeMiB * 1024
	SizeTiB = SizeGiB * 1024

	SizeKilo = SizeByte * 1000
	SizeMega = SizeKilo * 1000
	SizeGiga = SizeMega * 1000
	SizeTera = SizeGiga * 1000

	// Aliases kept for the shorter, commonly used spelling.
	KiB = SizeKiB
	MiB = SizeMiB
	GiB = SizeGiB
	TiB = SizeTiB
)

// SizeFromInt64 wraps a raw byte count.
func SizeFromInt64(n int64) Size {
	return Size(n)
}

// SizeFromString parses a plain integer byte count.
func SizeFromString(s string) (Size, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Size(n), nil
}

func (s Size) Int64() int64 {
	return int64(s)
}

func (s Size) Int() int {
	return int(s)
}

func (s Size) Uint64() uint64 {
	if s < 0 {
		return 0
	}
	return uint64(s)
}

func (s Size) Float64() float64 {
	return float64(s)
}

// String renders the size using the largest binary unit that divides it
// evenly, falling back to plain bytes.
func (s Size) String() string {
	switch {
	case s >= SizeTiB && s%SizeTiB == 0:
		return fmt.Sprintf("%dTiB", s/SizeTiB)
	case s >= SizeGiB && s%SizeGiB == 0:
		return fmt.Sprintf("%dGiB", s/SizeGiB)
	case s >= SizeMiB && s%SizeMiB == 0:
		return fmt.Sprintf("%dMiB", s/SizeMiB)
	case s >= SizeKiB && s%SizeKiB == 0:
		return fmt.Sprintf("%dKiB", s/SizeKiB)
	default:
		return fmt.Sprintf("%dB", int64(s))
	}
}
