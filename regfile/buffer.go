// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regfile

import (
	"regexp"
	"strconv"
)

// respRE is the read-response grammar of the soft-core console. The
// value may be negative; surrounding echo and banner text is ignored.
var respRE = regexp.MustCompile(`Read reg\[(\d+)\]\s*=\s*(-?\d+)`)

// respBuffer accumulates raw chunks between matches. Chunk boundaries
// fall anywhere in the stream, so a response may split across two
// deliveries or share one delivery with its neighbor.
type respBuffer struct {
	buf []byte
}

func (b *respBuffer) append(p []byte) {
	b.buf = append(b.buf, p...)
}

// reset discards the accumulator. Called when a new command is issued
// so that a late response to a previous request cannot satisfy the new
// one (register addresses repeat every sweep).
func (b *respBuffer) reset() {
	b.buf = b.buf[:0]
}

// next extracts the first well-formed response from the accumulator,
// consuming the matched span and the prefix before it. The remainder
// is kept, so two concatenated responses are handled by two calls.
func (b *respBuffer) next() (addr int, value int16, ok bool) {
	for {
		m := respRE.FindSubmatchIndex(b.buf)
		if m == nil {
			return 0, 0, false
		}
		if m[5] == len(b.buf) {
			// The value runs to the end of the accumulator: a chunk
			// boundary may have split the number, and accepting the
			// digits seen so far would record a truncated value. The
			// console newline-terminates every response, so wait for
			// the byte after the last digit before accepting.
			return 0, 0, false
		}
		a, errA := strconv.Atoi(string(b.buf[m[2]:m[3]]))
		v, errV := strconv.Atoi(string(b.buf[m[4]:m[5]]))
		b.buf = b.buf[m[1]:]
		if errA != nil || errV != nil || v < -32768 || v > 32767 {
			// malformed or out-of-range value: drop the span and
			// keep scanning.
			continue
		}
		return a, int16(v), true
	}
}
