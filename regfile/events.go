// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regfile

// Event is the union of notifications delivered on the Events channel.
// Consumers type-switch on the concrete types below.
type Event interface {
	event()
}

// ValueRead reports the value of one register, either from a standalone
// read or from a sweep in progress.
type ValueRead struct {
	Addr  int
	Value int16
}

// SweepDone reports the completion of a full 64-address sweep.
// Addresses whose reads exhausted their retries hold the placeholder
// value 0; each such address was reported with a ReadFailed event.
type SweepDone struct {
	Values [NumRegisters]int16
}

// ReadFailed reports a register whose read timed out on every retry.
type ReadFailed struct {
	Addr int
}

// WriteSweepDone reports the end of a coefficient load. Written counts
// the registers written before the first failure; Err is nil when all
// 64 were written.
type WriteSweepDone struct {
	Written int
	Err     error
}

// Warning reports a recoverable protocol anomaly, such as a response
// carrying an unexpected register address.
type Warning struct {
	Text string
}

// Error reports a failure fatal to the current session, such as the
// port closing underneath the protocol.
type Error struct {
	Err error
}

func (ValueRead) event()      {}
func (SweepDone) event()      {}
func (ReadFailed) event()     {}
func (WriteSweepDone) event() {}
func (Warning) event()        {}
func (Error) event()          {}
