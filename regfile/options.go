// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regfile

import (
	"log"
	"time"
)

type config struct {
	timeout time.Duration // response timeout for one read attempt
	pacing  time.Duration // device turnaround delay between commands
	retries int           // max retries after the initial attempt
	evbuf   int           // event channel depth
	msg     *log.Logger
}

func newConfig() config {
	return config{
		timeout: 1 * time.Second,
		pacing:  50 * time.Millisecond,
		retries: 3,
		evbuf:   128,
	}
}

// Option configures a Protocol.
type Option func(*config)

// WithTimeout sets the per-attempt response timeout for reads.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = d
	}
}

// WithPacing sets the delay between consecutive commands, respecting
// the device turnaround time. The same delay paces retries.
func WithPacing(d time.Duration) Option {
	return func(cfg *config) {
		cfg.pacing = d
	}
}

// WithMaxRetries sets how many times a timed-out read is re-issued
// before its address is given up with a placeholder value.
func WithMaxRetries(n int) Option {
	return func(cfg *config) {
		cfg.retries = n
	}
}

// WithLogger sets the logger used for command echo and diagnostics.
func WithLogger(msg *log.Logger) Option {
	return func(cfg *config) {
		cfg.msg = msg
	}
}
