// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fir-console is an interactive console for the FIR board.
//
// Commands:
//
//	read <addr>                     read one register
//	write <addr> <value>            write one register
//	sweep                           read all 64 registers
//	load <class> <cutoff> [cutoff]  design a filter and load it
//	preload                         load the firmware power-on filter
//	interval <ms>                   set the on-board timer interval
//	quit                            exit
package main // import "github.com/go-dsp/firctl/cmd/fir-console"

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/sync/errgroup"

	"github.com/go-dsp/firctl/config"
	"github.com/go-dsp/firctl/fir"
	"github.com/go-dsp/firctl/internal/serport"
	"github.com/go-dsp/firctl/regfile"
)

func main() {
	var (
		port    = flag.String("port", "", "serial port of the FIR board console")
		baud    = flag.Int("baud", 0, "baud rate (default from configuration)")
		cfgname = flag.String("cfg", "", "path to an optional YAML configuration file")
	)

	log.SetPrefix("fir-console: ")
	log.SetFlags(0)

	flag.Parse()

	cfg := config.Default()
	if *cfgname != "" {
		var err error
		cfg, err = config.Load(*cfgname)
		if err != nil {
			log.Fatalf("%+v", err)
		}
	}
	if *port != "" {
		cfg.Port.Name = *port
	}
	if *baud > 0 {
		cfg.Port.Baud = *baud
	}
	if cfg.Port.Name == "" {
		log.Fatalf("missing -port flag (or port.name configuration)")
	}

	err := run(cfg)
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(cfg config.Config) error {
	conn, err := serport.Open(cfg.Port.Name, cfg.Port.Baud)
	if err != nil {
		return err
	}

	p := regfile.New(conn, cfg.Options()...)

	var grp errgroup.Group
	grp.Go(func() error {
		for ev := range p.Events() {
			switch ev := ev.(type) {
			case regfile.ValueRead:
				fmt.Printf("reg[%d] = %d\n", ev.Addr, ev.Value)
			case regfile.SweepDone:
				fmt.Printf("sweep complete, %d registers\n", len(ev.Values))
			case regfile.ReadFailed:
				fmt.Printf("register %d unresolved, placeholder 0\n", ev.Addr)
			case regfile.WriteSweepDone:
				if ev.Err != nil {
					fmt.Printf("load aborted after %d coefficients: %v\n", ev.Written, ev.Err)
					continue
				}
				fmt.Printf("loaded %d coefficients\n", ev.Written)
			case regfile.Warning:
				fmt.Printf("warning: %s\n", ev.Text)
			case regfile.Error:
				fmt.Printf("error: %v\n", ev.Err)
			}
		}
		return nil
	})

	repl(p, cfg)

	err = p.Close()
	if werr := grp.Wait(); werr != nil && err == nil {
		err = werr
	}
	return err
}

func repl(p *regfile.Protocol, cfg config.Config) {
	term := liner.NewLiner()
	defer term.Close()
	term.SetCtrlCAborts(true)

	for {
		raw, err := term.Prompt("fir> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			log.Printf("could not read command: %+v", err)
			return
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		term.AppendHistory(raw)

		if raw == "quit" || raw == "exit" {
			return
		}
		err = dispatch(p, cfg, strings.Fields(raw))
		if err != nil {
			log.Printf("%+v", err)
		}
	}
}

func dispatch(p *regfile.Protocol, cfg config.Config, args []string) error {
	switch cmd := args[0]; cmd {
	case "read":
		if len(args) != 2 {
			return fmt.Errorf("usage: read <addr>")
		}
		addr, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("could not parse address %q: %w", args[1], err)
		}
		return p.ReadRegister(addr)

	case "write":
		if len(args) != 3 {
			return fmt.Errorf("usage: write <addr> <value>")
		}
		addr, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("could not parse address %q: %w", args[1], err)
		}
		v, err := strconv.ParseInt(args[2], 10, 16)
		if err != nil {
			return fmt.Errorf("could not parse value %q: %w", args[2], err)
		}
		return p.WriteRegister(addr, int16(v))

	case "sweep":
		return p.StartSweep()

	case "load":
		if len(args) < 3 || len(args) > 4 {
			return fmt.Errorf("usage: load <class> <cutoff> [cutoff]")
		}
		cfg.Filter.Class = args[1]
		// fresh slice: re-slicing the configured cutoffs would write
		// through their shared backing array.
		cfg.Filter.Cutoffs = make([]float64, 0, len(args)-2)
		for _, tok := range args[2:] {
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return fmt.Errorf("could not parse cutoff %q: %w", tok, err)
			}
			cfg.Filter.Cutoffs = append(cfg.Filter.Cutoffs, f)
		}
		spec, err := cfg.FilterSpec()
		if err != nil {
			return err
		}
		coefs, err := fir.Coefficients(spec)
		if err != nil {
			return err
		}
		return p.WriteSweep(coefs)

	case "preload":
		return p.WriteSweep(fir.Default())

	case "interval":
		if len(args) != 2 {
			return fmt.Errorf("usage: interval <ms>")
		}
		ms, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("could not parse interval %q: %w", args[1], err)
		}
		return p.SetTimerInterval(ms)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
