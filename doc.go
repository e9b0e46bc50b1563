// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package firctl holds code to control an FPGA-hosted FIR filter
// over the serial console of its Nios II soft core.
//
// The soft core exposes a 64-entry coefficient register file through
// a line-oriented command console:
//
//	S<addr>$<value> - set register (addr: 0-63, value: signed 16-bit)
//	R<addr>         - read register (addr: 0-63)
//	T<interval>     - set the on-board timer interval in ms (100-5000)
//
// Package regfile implements the register access protocol engine and
// package fir the coefficient design and quantization pipeline.
package firctl // import "github.com/go-dsp/firctl"

import (
	"fmt"
	"runtime/debug"
)

// Version returns the version of firctl and its checksum.
// The returned values are only valid in binaries built with module support.
func Version() (version, sum string) {
	b, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	return versionOf(b)
}

func versionOf(b *debug.BuildInfo) (version, sum string) {
	if b == nil {
		return "", ""
	}

	const root = "github.com/go-dsp/firctl"
	for _, m := range b.Deps {
		if m.Path != root {
			continue
		}
		if m.Replace != nil {
			switch {
			case m.Replace.Version != "" && m.Replace.Path != "":
				return fmt.Sprintf("%s %s", m.Replace.Path, m.Replace.Version), m.Replace.Sum
			case m.Replace.Version != "":
				return m.Replace.Version, m.Replace.Sum
			case m.Replace.Path != "":
				return m.Replace.Path, m.Replace.Sum
			default:
				return m.Version + "*", ""
			}
		}
		return m.Version, m.Sum
	}
	return "", ""
}
