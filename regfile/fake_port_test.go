// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regfile

import (
	"bytes"
	"io"
	"sync"
)

// fakePort is a scripted in-memory console standing in for the serial
// link. Commands written by the protocol are recorded and optionally
// answered by a respond hook; chunks queued with deliver show up on
// the protocol's reader pump with arbitrary framing.
var _ io.ReadWriteCloser = (*fakePort)(nil)

type fakePort struct {
	respond func(f *fakePort, cmd string) // called once per written command

	mu        sync.Mutex
	wr        bytes.Buffer
	nwrites   int
	failAfter int // fail writes once this many succeeded (0: never)

	rd     chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakePort() *fakePort {
	return &fakePort{
		rd:     make(chan []byte, 4*NumRegisters),
		closed: make(chan struct{}),
	}
}

func (f *fakePort) Read(p []byte) (int, error) {
	select {
	case chunk := <-f.rd:
		return copy(p, chunk), nil
	case <-f.closed:
		return 0, io.EOF
	}
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.mu.Lock()
	if f.failAfter > 0 && f.nwrites >= f.failAfter {
		f.mu.Unlock()
		return 0, io.ErrClosedPipe
	}
	f.nwrites++
	f.wr.Write(p)
	f.mu.Unlock()

	if f.respond != nil {
		f.respond(f, string(bytes.TrimSuffix(p, []byte("\n"))))
	}
	return len(p), nil
}

func (f *fakePort) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

// deliver queues one chunk for the reader pump.
func (f *fakePort) deliver(s string) {
	select {
	case f.rd <- []byte(s):
	case <-f.closed:
	}
}

// written returns everything the protocol wrote so far.
func (f *fakePort) written() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wr.String()
}
