// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fir

import "math"

// Quantize converts real-valued taps to Q1.15 fixed point: each tap is
// scaled by 2^15, rounded to nearest and saturated to the signed
// 16-bit range. Saturation, not wraparound: a wrapped coefficient
// would produce a wildly wrong response.
func Quantize(taps []float64) []int16 {
	out := make([]int16, len(taps))
	for i, t := range taps {
		v := math.Round(t * 32768)
		switch {
		case v > 32767:
			v = 32767
		case v < -32768:
			v = -32768
		}
		out[i] = int16(v)
	}
	return out
}

// Coefficients designs spec and quantizes the result, yielding one
// register value per address 0..63, ready for a sequential write sweep.
func Coefficients(spec Spec) ([NumTaps]int16, error) {
	var out [NumTaps]int16
	taps, err := Design(spec)
	if err != nil {
		return out, err
	}
	copy(out[:], Quantize(taps))
	return out, nil
}

// Default returns the power-on coefficient set of the firmware, a
// 500 Hz Blackman low-pass.
func Default() [NumTaps]int16 {
	coefs, err := Coefficients(Spec{Class: LowPass, Cutoffs: []float64{500}})
	if err != nil {
		panic(err) // constant spec, cannot fail
	}
	return coefs
}
