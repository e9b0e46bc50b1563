// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regfile implements the register access protocol of the FIR
// soft-core console.
//
// The device exposes a 64-entry register file over a line-oriented
// serial console. Commands are ASCII, newline-terminated:
//
//	S<addr>$<value>	set register <addr> to <value>
//	R<addr>		read register <addr>
//	T<interval>	set the on-board timer interval (ms)
//
// Writes are unacknowledged. Reads are answered with a human-readable
// log line containing the substring
//
//	Read reg[<addr>] = <value>
//
// with no framing guarantee: the console echoes input and a delivered
// chunk may hold a partial response, one response or several.
//
// Protocol issues one outstanding read at a time, matches asynchronous
// responses to it, recovers from lost responses with a fixed-interval
// bounded retry, and sequences full 64-address sweeps. All protocol
// state is owned by a single event-loop goroutine; a dedicated pump
// goroutine only moves bytes from the port into the loop.
package regfile // import "github.com/go-dsp/firctl/regfile"

// NumRegisters is the number of addressable registers of the FIR
// coefficient register file.
const NumRegisters = 64
