// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fir designs finite-impulse-response filters for the 64-tap
// FPGA filter and quantizes them to the Q1.15 fixed-point format of
// its coefficient register file.
//
// Filters are windowed-sinc designs at the fixed 48 kHz sample rate of
// the hardware. High-pass and band-stop filters need an odd tap count
// for a valid linear-phase design, so they are designed with 65 taps
// and the center tap is dropped to return to exactly 64. This keeps
// the remaining taps symmetric at the cost of a small deviation from
// the ideal response.
package fir // import "github.com/go-dsp/firctl/fir"

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

const (
	// SampleRate is the sample rate of the FIR datapath, fixed by the
	// hardware clocking.
	SampleRate = 48000 // Hz

	// NumTaps is the tap count of the hardware filter, one tap per
	// register address.
	NumTaps = 64

	// Nyquist is the upper bound for valid cutoff frequencies.
	Nyquist = SampleRate / 2 // Hz
)

// ErrInvalidSpec is returned for specifications with a bad cutoff
// count or out-of-range cutoff frequencies.
var ErrInvalidSpec = errors.New("fir: invalid filter specification")

// Class selects the filter response shape.
type Class int

const (
	LowPass Class = iota
	HighPass
	BandPass
	BandStop
)

func (c Class) String() string {
	switch c {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	case BandStop:
		return "bandstop"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Window applies a window function to a sequence in place and returns
// it. The gonum dsp/window functions satisfy this signature.
type Window func([]float64) []float64

// Spec describes a filter to design. LowPass and HighPass take exactly
// one cutoff, BandPass and BandStop exactly two (low, high), all in Hz
// and strictly inside (0, Nyquist). A nil Window selects Blackman.
type Spec struct {
	Class   Class
	Cutoffs []float64
	Window  Window
}

func (spec Spec) validate() error {
	var want int
	switch spec.Class {
	case LowPass, HighPass:
		want = 1
	case BandPass, BandStop:
		want = 2
	default:
		return fmt.Errorf("fir: unknown filter class %d: %w", int(spec.Class), ErrInvalidSpec)
	}
	if got := len(spec.Cutoffs); got != want {
		return fmt.Errorf("fir: %v needs %d cutoff(s), got %d: %w",
			spec.Class, want, got, ErrInvalidSpec,
		)
	}
	for _, f := range spec.Cutoffs {
		if f <= 0 || f >= Nyquist {
			return fmt.Errorf("fir: cutoff %v Hz outside (0, %d): %w",
				f, Nyquist, ErrInvalidSpec,
			)
		}
	}
	if want == 2 && spec.Cutoffs[0] >= spec.Cutoffs[1] {
		return fmt.Errorf("fir: band cutoffs %v Hz not increasing: %w",
			spec.Cutoffs, ErrInvalidSpec,
		)
	}
	return nil
}

// normalize converts cutoffs to fractions of Nyquist, clamped away
// from the degenerate 0 and 1 endpoints.
func normalize(cutoffs []float64) []float64 {
	out := make([]float64, len(cutoffs))
	for i, f := range cutoffs {
		fc := f / Nyquist
		if fc < 1e-6 {
			fc = 1e-6
		}
		if fc > 0.999999 {
			fc = 0.999999
		}
		out[i] = fc
	}
	return out
}

// Design computes the real-valued taps for spec. The result has
// exactly NumTaps elements, address-ordered.
func Design(spec Spec) ([]float64, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	win := spec.Window
	if win == nil {
		win = window.Blackman
	}
	fcs := normalize(spec.Cutoffs)

	n := NumTaps
	odd := spec.Class == HighPass || spec.Class == BandStop
	if odd && n%2 == 0 {
		n++
	}

	var h []float64
	switch spec.Class {
	case LowPass:
		h = lowpass(n, fcs[0], win)

	case HighPass:
		// spectral inversion of the low-pass prototype.
		h = lowpass(n, fcs[0], win)
		for i := range h {
			h[i] = -h[i]
		}
		h[(n-1)/2]++

	case BandPass:
		lo := lowpass(n, fcs[0], win)
		hi := lowpass(n, fcs[1], win)
		h = make([]float64, n)
		for i := range h {
			h[i] = hi[i] - lo[i]
		}

	case BandStop:
		lo := lowpass(n, fcs[0], win)
		hi := lowpass(n, fcs[1], win)
		h = make([]float64, n)
		for i := range h {
			h[i] = lo[i] - hi[i]
		}
		h[(n-1)/2]++
	}

	if n != NumTaps {
		c := (n - 1) / 2
		h = append(h[:c], h[c+1:]...)
	}
	return h, nil
}

// lowpass returns an n-tap windowed-sinc low-pass prototype with unity
// DC gain. fc is the cutoff as a fraction of Nyquist.
func lowpass(n int, fc float64, win Window) []float64 {
	h := make([]float64, n)
	c := float64(n-1) / 2
	for i := range h {
		h[i] = fc * sinc(math.Pi*fc*(float64(i)-c))
	}
	win(h)
	var sum float64
	for _, v := range h {
		sum += v
	}
	for i := range h {
		h[i] /= sum
	}
	return h
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}
