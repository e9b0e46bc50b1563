// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fir

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/dsp/window"
)

func TestSpecValidation(t *testing.T) {
	for _, tc := range []struct {
		name string
		spec Spec
	}{
		{
			name: "lowpass-no-cutoff",
			spec: Spec{Class: LowPass},
		},
		{
			name: "lowpass-two-cutoffs",
			spec: Spec{Class: LowPass, Cutoffs: []float64{100, 200}},
		},
		{
			name: "highpass-zero-cutoff",
			spec: Spec{Class: HighPass, Cutoffs: []float64{0}},
		},
		{
			name: "highpass-negative-cutoff",
			spec: Spec{Class: HighPass, Cutoffs: []float64{-10}},
		},
		{
			name: "lowpass-at-nyquist",
			spec: Spec{Class: LowPass, Cutoffs: []float64{Nyquist}},
		},
		{
			name: "bandpass-one-cutoff",
			spec: Spec{Class: BandPass, Cutoffs: []float64{1000}},
		},
		{
			name: "bandpass-reversed-band",
			spec: Spec{Class: BandPass, Cutoffs: []float64{2000, 1000}},
		},
		{
			name: "bandstop-equal-cutoffs",
			spec: Spec{Class: BandStop, Cutoffs: []float64{1000, 1000}},
		},
		{
			name: "unknown-class",
			spec: Spec{Class: Class(42), Cutoffs: []float64{1000}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Design(tc.spec)
			if !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("got=%+v, want=%+v", err, ErrInvalidSpec)
			}
			_, err = Coefficients(tc.spec)
			if !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("got=%+v, want=%+v", err, ErrInvalidSpec)
			}
		})
	}
}

func TestDesignLowPass(t *testing.T) {
	h, err := Design(Spec{Class: LowPass, Cutoffs: []float64{500}})
	if err != nil {
		t.Fatalf("could not design filter: %+v", err)
	}
	if got, want := len(h), NumTaps; got != want {
		t.Fatalf("invalid tap count: got=%d, want=%d", got, want)
	}

	// linear phase: taps symmetric about the center.
	for i := 0; i < NumTaps/2; i++ {
		if got, want := h[i], h[NumTaps-1-i]; math.Abs(got-want) > 1e-12 {
			t.Fatalf("tap %d not symmetric: got=%v, want=%v", i, got, want)
		}
	}

	// unity DC gain.
	var sum float64
	for _, v := range h {
		sum += v
	}
	if got, want := sum, 1.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("invalid DC gain: got=%v, want=%v", got, want)
	}

	// peak at the center, decaying outward.
	if h[31] <= h[0] || h[32] <= h[63] {
		t.Fatalf("taps not peaked at center: h[0]=%v h[31]=%v h[32]=%v h[63]=%v",
			h[0], h[31], h[32], h[63],
		)
	}
}

func TestDesignOddClasses(t *testing.T) {
	// HighPass and BandStop design with 65 taps and drop the center
	// tap; the result must still be 64 symmetric taps.
	for _, tc := range []struct {
		name string
		spec Spec
	}{
		{
			name: "highpass",
			spec: Spec{Class: HighPass, Cutoffs: []float64{8000}},
		},
		{
			name: "bandstop",
			spec: Spec{Class: BandStop, Cutoffs: []float64{1000, 4000}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h, err := Design(tc.spec)
			if err != nil {
				t.Fatalf("could not design filter: %+v", err)
			}
			if got, want := len(h), NumTaps; got != want {
				t.Fatalf("invalid tap count: got=%d, want=%d", got, want)
			}
			for i := 0; i < NumTaps/2; i++ {
				if got, want := h[i], h[NumTaps-1-i]; math.Abs(got-want) > 1e-12 {
					t.Fatalf("tap %d not symmetric: got=%v, want=%v", i, got, want)
				}
			}
			for i, v := range h {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("tap %d not finite: %v", i, v)
				}
			}
		})
	}
}

func TestDesignBandPass(t *testing.T) {
	h, err := Design(Spec{Class: BandPass, Cutoffs: []float64{1000, 4000}})
	if err != nil {
		t.Fatalf("could not design filter: %+v", err)
	}
	if got, want := len(h), NumTaps; got != want {
		t.Fatalf("invalid tap count: got=%d, want=%d", got, want)
	}

	// a band-pass blocks DC.
	var sum float64
	for _, v := range h {
		sum += v
	}
	if got := math.Abs(sum); got > 1e-9 {
		t.Fatalf("invalid DC gain: got=%v, want=0", got)
	}
}

func TestDesignWindows(t *testing.T) {
	for _, win := range []Window{nil, window.Blackman, window.Hamming, window.Hann} {
		h, err := Design(Spec{Class: LowPass, Cutoffs: []float64{2000}, Window: win})
		if err != nil {
			t.Fatalf("could not design filter: %+v", err)
		}
		if got, want := len(h), NumTaps; got != want {
			t.Fatalf("invalid tap count: got=%d, want=%d", got, want)
		}
	}
}

func TestDesignClampsCutoffs(t *testing.T) {
	// cutoffs arbitrarily close to the endpoints must still produce a
	// finite design.
	for _, fc := range []float64{1e-9, Nyquist - 1e-9} {
		t.Run(fmt.Sprintf("fc=%v", fc), func(t *testing.T) {
			h, err := Design(Spec{Class: LowPass, Cutoffs: []float64{fc}})
			if err != nil {
				t.Fatalf("could not design filter: %+v", err)
			}
			for i, v := range h {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("tap %d not finite: %v", i, v)
				}
			}
		})
	}
}
