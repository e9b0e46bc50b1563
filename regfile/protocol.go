// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regfile

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/xerrors"
)

// Protocol drives the register console of the FIR soft core over a
// duplex byte stream. One Protocol owns its port exclusively; all
// session state lives on the event-loop goroutine.
type Protocol struct {
	msg  *log.Logger
	port io.ReadWriteCloser
	cfg  config

	cmds chan command
	data chan []byte
	evts chan Event

	quit chan struct{}
	done chan struct{}

	once sync.Once
}

type cmdKind uint8

const (
	cmdRead cmdKind = iota + 1
	cmdWrite
	cmdSweep
	cmdWriteSweep
	cmdInterval
)

type command struct {
	kind  cmdKind
	addr  int
	value int16
	coefs [NumRegisters]int16
	ms    int
	err   chan error
}

// pending is the single outstanding read request. Writes are
// fire-and-forget and never pend.
type pending struct {
	addr    int
	retries int
	issued  time.Time
}

// sweepState tracks a full-register read sweep. next only increases.
type sweepState struct {
	next   int
	values [NumRegisters]int16
}

// loadState tracks a paced coefficient load.
type loadState struct {
	next  int
	coefs [NumRegisters]int16
}

// New creates a protocol engine on port and starts its event loop and
// reader pump. The caller must drain Events and call Close when done.
func New(port io.ReadWriteCloser, opts ...Option) *Protocol {
	cfg := newConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.msg == nil {
		cfg.msg = log.New(os.Stdout, "regfile: ", 0)
	}

	p := &Protocol{
		msg:  cfg.msg,
		port: port,
		cfg:  cfg,
		cmds: make(chan command),
		data: make(chan []byte),
		evts: make(chan Event, cfg.evbuf),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go p.pump()
	go p.loop()
	return p
}

// Events returns the channel on which protocol events are delivered.
// The channel is closed when the protocol shuts down.
func (p *Protocol) Events() <-chan Event { return p.evts }

// ReadRegister issues a read of one register. It is accepted only when
// no request, sweep or load is in flight; the value arrives as a
// ValueRead event (or ReadFailed after exhausted retries).
func (p *Protocol) ReadRegister(addr int) error {
	if addr < 0 || addr >= NumRegisters {
		return xerrors.Errorf("register address %d: %w", addr, ErrInvalidAddr)
	}
	return p.post(command{kind: cmdRead, addr: addr})
}

// WriteRegister writes one register. The device does not acknowledge
// writes, so a nil return only means the command left the port.
func (p *Protocol) WriteRegister(addr int, value int16) error {
	if addr < 0 || addr >= NumRegisters {
		return xerrors.Errorf("register address %d: %w", addr, ErrInvalidAddr)
	}
	return p.post(command{kind: cmdWrite, addr: addr, value: value})
}

// StartSweep reads all 64 registers in address order. Progress arrives
// as ValueRead/ReadFailed events, completion as a SweepDone event.
// Addresses that exhaust their retries contribute a placeholder 0 and
// never block completion.
func (p *Protocol) StartSweep() error {
	return p.post(command{kind: cmdSweep})
}

// WriteSweep writes all 64 coefficients in address order, paced by the
// device turnaround delay. Completion (or first write failure) arrives
// as a WriteSweepDone event.
func (p *Protocol) WriteSweep(coefs [NumRegisters]int16) error {
	return p.post(command{kind: cmdWriteSweep, coefs: coefs})
}

// SetTimerInterval sets the on-board timer interval, in milliseconds.
// The firmware accepts 100 to 5000 ms.
func (p *Protocol) SetTimerInterval(ms int) error {
	if ms < 100 || ms > 5000 {
		return xerrors.Errorf("timer interval %d ms: %w", ms, ErrInvalidInterval)
	}
	return p.post(command{kind: cmdInterval, ms: ms})
}

// Close shuts the protocol down: it cancels any running timer, discards
// session state, closes the port and joins the reader pump before
// returning. Close is idempotent.
func (p *Protocol) Close() error {
	p.once.Do(func() {
		close(p.quit)
		<-p.done
	})
	return nil
}

func (p *Protocol) post(cmd command) error {
	cmd.err = make(chan error, 1)
	select {
	case p.cmds <- cmd:
	case <-p.done:
		return ErrClosed
	}
	select {
	case err := <-cmd.err:
		return err
	case <-p.done:
		return ErrClosed
	}
}

// emit delivers ev without ever blocking the loop on a slow consumer.
func (p *Protocol) emit(ev Event) {
	select {
	case p.evts <- ev:
	default:
		p.msg.Printf("event channel full, dropping %T", ev)
	}
}

// pump moves bytes from the port into the event loop. It holds no
// protocol state and performs no parsing. It exits, closing the data
// channel, when the port read fails (normally because Close closed
// the port).
func (p *Protocol) pump() {
	defer close(p.data)
	buf := make([]byte, 512)
	for {
		n, err := p.port.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case p.data <- chunk:
			case <-p.quit:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (p *Protocol) loop() {
	defer close(p.done)
	defer close(p.evts)

	var (
		req  *pending
		swp  *sweepState
		load *loadState
		buf  respBuffer

		timeout  *time.Timer
		timeoutC <-chan time.Time
		pace     *time.Timer
		paceC    <-chan time.Time
		paced    func()

		data = p.data
		lost bool
	)

	disarmTimeout := func() {
		if timeout != nil {
			timeout.Stop()
			timeout, timeoutC = nil, nil
		}
	}
	disarmPace := func() {
		if pace != nil {
			pace.Stop()
			pace, paceC, paced = nil, nil, nil
		}
	}
	schedule := func(fn func()) {
		paced = fn
		pace = time.NewTimer(p.cfg.pacing)
		paceC = pace.C
	}

	fail := func(err error) {
		disarmTimeout()
		disarmPace()
		req, swp, load = nil, nil, nil
		lost = true
		p.emit(Error{Err: err})
	}

	sendRead := func(addr, retries int) {
		buf.reset()
		p.msg.Printf("> R%d", addr)
		_, err := io.WriteString(p.port, "R"+strconv.Itoa(addr)+"\n")
		if err != nil {
			fail(xerrors.Errorf("could not send read of register %d: %w", addr, err))
			return
		}
		req = &pending{addr: addr, retries: retries, issued: time.Now()}
		timeout = time.NewTimer(p.cfg.timeout)
		timeoutC = timeout.C
	}

	sendWrite := func(addr int, v int16) error {
		p.msg.Printf("> S%d$%d", addr, v)
		_, err := io.WriteString(p.port, "S"+strconv.Itoa(addr)+"$"+strconv.Itoa(int(v))+"\n")
		if err != nil {
			return xerrors.Errorf("could not write register %d: %w", addr, err)
		}
		return nil
	}

	advanceSweep := func() {
		if swp.next >= NumRegisters {
			vals := swp.values
			swp = nil
			p.msg.Printf("sweep complete")
			p.emit(SweepDone{Values: vals})
			return
		}
		next := swp.next
		schedule(func() { sendRead(next, 0) })
	}

	var stepLoad func()
	stepLoad = func() {
		addr := load.next
		if err := sendWrite(addr, load.coefs[addr]); err != nil {
			load = nil
			p.emit(WriteSweepDone{Written: addr, Err: err})
			return
		}
		load.next++
		if load.next >= NumRegisters {
			load = nil
			p.msg.Printf("loaded %d coefficients", NumRegisters)
			p.emit(WriteSweepDone{Written: NumRegisters})
			return
		}
		schedule(stepLoad)
	}

	handleData := func(chunk []byte) {
		buf.append(chunk)
		for req != nil {
			addr, v, ok := buf.next()
			if !ok {
				return
			}
			if addr != req.addr {
				// Noise, not failure: warn and keep waiting for the
				// expected address until the timeout fires.
				p.emit(Warning{Text: fmt.Sprintf(
					"received register %d, expected %d", addr, req.addr,
				)})
				continue
			}
			disarmTimeout()
			req = nil
			p.emit(ValueRead{Addr: addr, Value: v})
			if swp != nil {
				swp.values[addr] = v
				swp.next = addr + 1
				advanceSweep()
			}
		}
	}

	handleTimeout := func() {
		if req == nil {
			// Response already matched; stale fire is a no-op.
			return
		}
		cur := req
		req = nil
		cur.retries++
		if cur.retries <= p.cfg.retries {
			p.msg.Printf("no response for register %d, retry %d/%d",
				cur.addr, cur.retries, p.cfg.retries,
			)
			schedule(func() { sendRead(cur.addr, cur.retries) })
			return
		}
		p.msg.Printf("register %d unresolved after %d retries", cur.addr, p.cfg.retries)
		p.emit(ReadFailed{Addr: cur.addr})
		if swp != nil {
			swp.values[cur.addr] = 0
			swp.next = cur.addr + 1
			advanceSweep()
		}
	}

	handleCmd := func(cmd command) {
		if lost {
			cmd.err <- ErrClosed
			return
		}
		if req != nil || swp != nil || load != nil || paced != nil {
			cmd.err <- ErrBusy
			return
		}
		switch cmd.kind {
		case cmdRead:
			cmd.err <- nil
			sendRead(cmd.addr, 0)
		case cmdWrite:
			cmd.err <- sendWrite(cmd.addr, cmd.value)
		case cmdSweep:
			cmd.err <- nil
			p.msg.Printf("sweeping %d registers", NumRegisters)
			swp = &sweepState{}
			sendRead(0, 0)
		case cmdWriteSweep:
			cmd.err <- nil
			load = &loadState{coefs: cmd.coefs}
			stepLoad()
		case cmdInterval:
			p.msg.Printf("> T%d", cmd.ms)
			_, err := io.WriteString(p.port, "T"+strconv.Itoa(cmd.ms)+"\n")
			if err != nil {
				err = xerrors.Errorf("could not set timer interval: %w", err)
			}
			cmd.err <- err
		}
	}

	for {
		select {
		case cmd := <-p.cmds:
			handleCmd(cmd)

		case chunk, ok := <-data:
			if !ok {
				data = nil
				fail(xerrors.New("regfile: port closed unexpectedly"))
				continue
			}
			handleData(chunk)

		case <-timeoutC:
			timeout, timeoutC = nil, nil
			handleTimeout()

		case <-paceC:
			fn := paced
			pace, paceC, paced = nil, nil, nil
			fn()

		case <-p.quit:
			disarmTimeout()
			disarmPace()
			req, swp, load = nil, nil, nil
			_ = p.port.Close()
			if data != nil {
				// unblock and join the pump.
				for range data {
				}
			}
			return
		}
	}
}
