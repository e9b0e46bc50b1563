// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/go-dsp/firctl/config"
	"github.com/go-dsp/firctl/regfile"
)

// nopPort accepts every write and blocks reads until closed.
type nopPort struct {
	closed chan struct{}
}

func newNopPort() *nopPort {
	return &nopPort{closed: make(chan struct{})}
}

func (p *nopPort) Read(buf []byte) (int, error) {
	<-p.closed
	return 0, io.EOF
}

func (p *nopPort) Write(buf []byte) (int, error) { return len(buf), nil }

func (p *nopPort) Close() error {
	close(p.closed)
	return nil
}

func TestDispatchLoadKeepsConfig(t *testing.T) {
	port := newNopPort()
	p := regfile.New(port,
		regfile.WithLogger(log.New(io.Discard, "", 0)),
		regfile.WithPacing(time.Millisecond),
	)
	defer p.Close()

	cfg := config.Default()
	cfg.Filter.Cutoffs = []float64{500}

	err := dispatch(p, cfg, []string{"load", "highpass", "2000"})
	if err != nil {
		t.Fatalf("could not dispatch load: %+v", err)
	}

	// the load command parses its own cutoffs and must not write
	// through the configured slice's backing array.
	if got, want := cfg.Filter.Cutoffs[0], 500.0; got != want {
		t.Fatalf("configured cutoff clobbered: got=%v, want=%v", got, want)
	}
}

func TestDispatchUsage(t *testing.T) {
	port := newNopPort()
	p := regfile.New(port,
		regfile.WithLogger(log.New(io.Discard, "", 0)),
	)
	defer p.Close()

	cfg := config.Default()
	for _, args := range [][]string{
		{"read"},
		{"read", "x"},
		{"write", "3"},
		{"load", "lowpass"},
		{"interval", "x"},
		{"bogus"},
	} {
		if err := dispatch(p, cfg, args); err == nil {
			t.Fatalf("args=%q: expected an error", args)
		}
	}
}
