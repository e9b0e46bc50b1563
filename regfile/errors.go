// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regfile

import "errors"

var (
	// ErrClosed is returned when an operation is issued on a closed
	// or disconnected protocol.
	ErrClosed = errors.New("regfile: protocol closed")

	// ErrBusy is returned when an operation is issued while a read,
	// a sweep or a coefficient load is still in flight.
	ErrBusy = errors.New("regfile: request already outstanding")

	// ErrInvalidAddr is returned for register addresses outside [0, 63].
	ErrInvalidAddr = errors.New("regfile: register address out of range")

	// ErrInvalidInterval is returned for timer intervals outside the
	// [100, 5000] ms range accepted by the firmware.
	ErrInvalidInterval = errors.New("regfile: timer interval out of range")
)
