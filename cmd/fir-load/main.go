// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fir-load designs a FIR filter and writes its 64 Q1.15
// coefficients into the register file of the FIR board.
//
// Example:
//
//	fir-load -port /dev/ttyUSB0 -class bandpass -cutoffs 300,3000
package main // import "github.com/go-dsp/firctl/cmd/fir-load"

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

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
		class   = flag.String("class", "", "filter class (lowpass, highpass, bandpass, bandstop)")
		cutoffs = flag.String("cutoffs", "", "comma-separated cutoff frequencies in Hz")
		win     = flag.String("window", "", "window function (blackman, hamming, hann)")
		dry     = flag.Bool("n", false, "design and print coefficients without writing them")
	)

	log.SetPrefix("fir-load: ")
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
	if *class != "" {
		cfg.Filter.Class = *class
	}
	if *win != "" {
		cfg.Filter.Window = *win
	}
	if *cutoffs != "" {
		fcs, err := parseCutoffs(*cutoffs)
		if err != nil {
			log.Fatalf("%+v", err)
		}
		cfg.Filter.Cutoffs = fcs
	}

	spec, err := cfg.FilterSpec()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	coefs, err := fir.Coefficients(spec)
	if err != nil {
		log.Fatalf("could not design filter: %+v", err)
	}
	log.Printf("designed %v filter, cutoffs=%v Hz", spec.Class, spec.Cutoffs)

	if *dry {
		for i, v := range coefs {
			fmt.Printf("reg[%2d] = %6d\n", i, v)
		}
		return
	}

	if cfg.Port.Name == "" {
		log.Fatalf("missing -port flag (or port.name configuration)")
	}

	err = run(cfg, coefs)
	if err != nil {
		log.Fatalf("could not load coefficients: %+v", err)
	}
}

func parseCutoffs(s string) ([]float64, error) {
	var fcs []float64
	for _, tok := range strings.Split(s, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse cutoff %q: %w", tok, err)
		}
		fcs = append(fcs, f)
	}
	return fcs, nil
}

func run(cfg config.Config, coefs [regfile.NumRegisters]int16) error {
	conn, err := serport.Open(cfg.Port.Name, cfg.Port.Baud)
	if err != nil {
		return err
	}

	p := regfile.New(conn, cfg.Options()...)
	defer p.Close()

	err = p.WriteSweep(coefs)
	if err != nil {
		return fmt.Errorf("could not start coefficient load: %w", err)
	}

	for ev := range p.Events() {
		switch ev := ev.(type) {
		case regfile.Warning:
			log.Printf("warning: %s", ev.Text)
		case regfile.Error:
			return ev.Err
		case regfile.WriteSweepDone:
			if ev.Err != nil {
				return fmt.Errorf("wrote %d/%d coefficients: %w",
					ev.Written, regfile.NumRegisters, ev.Err,
				)
			}
			log.Printf("wrote %d coefficients", ev.Written)
			return nil
		}
	}
	return fmt.Errorf("connection closed before load completed")
}
