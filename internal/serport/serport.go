// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package serport opens the serial link to the FIR board console.
package serport

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// Open opens the named serial port at the given baud rate, 8N1 without
// flow control, matching the firmware UART configuration.
func Open(name string, baud int) (io.ReadWriteCloser, error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("serport: could not open %q: %w", name, err)
	}
	return port, nil
}
