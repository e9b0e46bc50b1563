// Copyright 2026 The go-dsp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config describes the session settings of the firctl
// commands: serial link parameters, protocol tuning and the filter to
// load. Settings come from a YAML file; absent fields keep their
// defaults.
package config // import "github.com/go-dsp/firctl/config"

import (
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/dsp/window"
	"gopkg.in/yaml.v3"

	"github.com/go-dsp/firctl/fir"
	"github.com/go-dsp/firctl/regfile"
)

type Config struct {
	Port     PortConfig     `yaml:"port"`
	Protocol ProtocolConfig `yaml:"protocol"`
	Filter   FilterConfig   `yaml:"filter"`
}

type PortConfig struct {
	Name string `yaml:"name"`
	Baud int    `yaml:"baud"`
}

type ProtocolConfig struct {
	TimeoutMs  int `yaml:"timeout_ms"`
	PacingMs   int `yaml:"pacing_ms"`
	MaxRetries int `yaml:"max_retries"`
}

type FilterConfig struct {
	Class   string    `yaml:"class"`   // lowpass, highpass, bandpass, bandstop
	Cutoffs []float64 `yaml:"cutoffs"` // Hz
	Window  string    `yaml:"window"`  // blackman, hamming, hann
}

// Default returns the configuration matching the firmware defaults:
// 115200 8N1, 1 s response timeout, 50 ms turnaround pacing, 3 retries
// and the power-on 500 Hz Blackman low-pass.
func Default() Config {
	return Config{
		Port: PortConfig{
			Baud: 115200,
		},
		Protocol: ProtocolConfig{
			TimeoutMs:  1000,
			PacingMs:   50,
			MaxRetries: 3,
		},
		Filter: FilterConfig{
			Class:   "lowpass",
			Cutoffs: []float64{500},
			Window:  "blackman",
		},
	}
}

// Load reads the configuration from fname, merged over Default.
func Load(fname string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(fname)
	if err != nil {
		return cfg, fmt.Errorf("config: could not read %q: %w", fname, err)
	}
	err = yaml.Unmarshal(raw, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: could not parse %q: %w", fname, err)
	}
	err = cfg.Validate()
	if err != nil {
		return cfg, fmt.Errorf("config: invalid configuration %q: %w", fname, err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency. The port name is
// not required here: commands may take it from a flag instead.
func (cfg Config) Validate() error {
	if cfg.Port.Baud <= 0 {
		return fmt.Errorf("config: invalid baud rate %d", cfg.Port.Baud)
	}
	if cfg.Protocol.TimeoutMs <= 0 {
		return fmt.Errorf("config: invalid timeout %d ms", cfg.Protocol.TimeoutMs)
	}
	if cfg.Protocol.PacingMs < 0 {
		return fmt.Errorf("config: invalid pacing %d ms", cfg.Protocol.PacingMs)
	}
	if cfg.Protocol.MaxRetries < 0 {
		return fmt.Errorf("config: invalid retry count %d", cfg.Protocol.MaxRetries)
	}
	if _, err := cfg.FilterSpec(); err != nil {
		return err
	}
	return nil
}

// Options returns the protocol options for this configuration.
func (cfg Config) Options() []regfile.Option {
	return []regfile.Option{
		regfile.WithTimeout(time.Duration(cfg.Protocol.TimeoutMs) * time.Millisecond),
		regfile.WithPacing(time.Duration(cfg.Protocol.PacingMs) * time.Millisecond),
		regfile.WithMaxRetries(cfg.Protocol.MaxRetries),
	}
}

// FilterSpec maps the filter section to a fir.Spec.
func (cfg Config) FilterSpec() (fir.Spec, error) {
	var spec fir.Spec
	switch cfg.Filter.Class {
	case "lowpass":
		spec.Class = fir.LowPass
	case "highpass":
		spec.Class = fir.HighPass
	case "bandpass":
		spec.Class = fir.BandPass
	case "bandstop":
		spec.Class = fir.BandStop
	default:
		return spec, fmt.Errorf("config: unknown filter class %q", cfg.Filter.Class)
	}
	switch cfg.Filter.Window {
	case "", "blackman":
		spec.Window = window.Blackman
	case "hamming":
		spec.Window = window.Hamming
	case "hann":
		spec.Window = window.Hann
	default:
		return spec, fmt.Errorf("config: unknown window %q", cfg.Filter.Window)
	}
	spec.Cutoffs = cfg.Filter.Cutoffs
	return spec, nil
}
