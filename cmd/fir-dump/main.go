// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fir-dump reads the 64 coefficient registers of the FIR board
// and prints them, one per line, in address order.
package main // import "github.com/go-dsp/firctl/cmd/fir-dump"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-dsp/firctl/config"
	"github.com/go-dsp/firctl/internal/serport"
	"github.com/go-dsp/firctl/regfile"
)

func main() {
	var (
		port    = flag.String("port", "", "serial port of the FIR board console")
		baud    = flag.Int("baud", 0, "baud rate (default from configuration)")
		cfgname = flag.String("cfg", "", "path to an optional YAML configuration file")
	)

	log.SetPrefix("fir-dump: ")
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

	err := run(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("could not dump registers: %+v", err)
	}
}

func run(cfg config.Config, w io.Writer) error {
	conn, err := serport.Open(cfg.Port.Name, cfg.Port.Baud)
	if err != nil {
		return err
	}

	p := regfile.New(conn, cfg.Options()...)
	defer p.Close()

	err = p.StartSweep()
	if err != nil {
		return fmt.Errorf("could not start sweep: %w", err)
	}

	for ev := range p.Events() {
		switch ev := ev.(type) {
		case regfile.ValueRead:
			// value printed with the completed sweep below.
		case regfile.ReadFailed:
			log.Printf("register %d unresolved, recording placeholder 0", ev.Addr)
		case regfile.Warning:
			log.Printf("warning: %s", ev.Text)
		case regfile.Error:
			return ev.Err
		case regfile.SweepDone:
			for i, v := range ev.Values {
				fmt.Fprintf(w, "reg[%2d] = %6d\n", i, v)
			}
			return nil
		}
	}
	return fmt.Errorf("connection closed before sweep completed")
}
