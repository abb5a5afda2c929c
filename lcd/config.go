// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lcd

import (
	"fmt"
	"time"

	"github.com/aamcrae/cluster/io"
	"github.com/aamcrae/config"
)

// Bus types.
const (
	Parallel = "parallel"
	Serial   = "serial"
)

// DisplayConfig is the display configuration, read from a configuration file.
type DisplayConfig struct {
	Bus     string
	Data    [8]int // GPIOs for D0-D7
	Control [5]int // GPIOs for CS, DC, WR, RD, RST
	Serial  string // Serial device for a bridged bus
	Baud    int
	Width   int
	Height  int
	Refresh time.Duration // Display refresh period
}

// DefaultConfig returns the display config used when no section is present.
func DefaultConfig() *DisplayConfig {
	return &DisplayConfig{
		Bus:     Parallel,
		Data:    [8]int{4, 5, 6, 7, 8, 9, 10, 11},
		Control: [5]int{12, 13, 16, 19, 26},
		Serial:  "/dev/ttyUSB0",
		Baud:    921600,
		Width:   800,
		Height:  480,
		Refresh: 50 * time.Millisecond,
	}
}

// Config reads and validates the display config from the config file section.
// Sample config:
//  [display]
//  bus=parallel                  # parallel or serial
//  data=4,5,6,7,8,9,10,11        # GPIOs for D0 to D7
//  control=12,13,16,19,26        # GPIOs for CS, DC, WR, RD, RST
//  serial=/dev/ttyUSB0           # Serial bridge device
//  baud=921600                   # Serial bridge baud rate
//  size=800,480                  # Panel resolution
//  refresh=50ms                  # Display refresh period
func Config(conf *config.Config) (*DisplayConfig, error) {
	d := DefaultConfig()
	s := conf.GetSection("display")
	if s == nil {
		return d, nil
	}
	if b, err := s.GetArg("bus"); err == nil {
		if b != Parallel && b != Serial {
			return nil, fmt.Errorf("bus: unknown bus type %q", b)
		}
		d.Bus = b
	}
	if _, err := s.GetArg("data"); err == nil {
		p := d.Data[:]
		n, err := s.Parse("data", "%d,%d,%d,%d,%d,%d,%d,%d", &p[0], &p[1], &p[2], &p[3], &p[4], &p[5], &p[6], &p[7])
		if err != nil {
			return nil, fmt.Errorf("data: %v", err)
		}
		if n != 8 {
			return nil, fmt.Errorf("data: argument count")
		}
	}
	if _, err := s.GetArg("control"); err == nil {
		p := d.Control[:]
		n, err := s.Parse("control", "%d,%d,%d,%d,%d", &p[0], &p[1], &p[2], &p[3], &p[4])
		if err != nil {
			return nil, fmt.Errorf("control: %v", err)
		}
		if n != 5 {
			return nil, fmt.Errorf("control: argument count")
		}
	}
	if v, err := s.GetArg("serial"); err == nil {
		d.Serial = v
	}
	if _, err := s.GetArg("baud"); err == nil {
		n, err := s.Parse("baud", "%d", &d.Baud)
		if err != nil {
			return nil, fmt.Errorf("baud: %v", err)
		}
		if n != 1 || d.Baud <= 0 {
			return nil, fmt.Errorf("baud: invalid value")
		}
	}
	if _, err := s.GetArg("size"); err == nil {
		n, err := s.Parse("size", "%d,%d", &d.Width, &d.Height)
		if err != nil {
			return nil, fmt.Errorf("size: %v", err)
		}
		if n != 2 || d.Width <= 0 || d.Height <= 0 || d.Width > 0xFFFF || d.Height > 0xFFFF {
			return nil, fmt.Errorf("size: invalid value")
		}
	}
	if r, err := s.GetArg("refresh"); err == nil {
		d.Refresh, err = time.ParseDuration(r)
		if err != nil {
			return nil, fmt.Errorf("refresh: %v", err)
		}
		if d.Refresh <= 0 {
			return nil, fmt.Errorf("refresh: must be positive")
		}
	}
	return d, nil
}

// Open opens the bus selected by the config and returns a controller
// for it, along with a function to release the bus.
func Open(d *DisplayConfig) (*Controller, func(), error) {
	switch d.Bus {
	case Serial:
		sb, err := io.OpenSerialBus(d.Serial, d.Baud)
		if err != nil {
			return nil, nil, err
		}
		return NewController(sb, d.Width, d.Height), sb.Close, nil
	case Parallel:
		data, err := io.OutputPins(d.Data[:])
		if err != nil {
			return nil, nil, fmt.Errorf("data: %v", err)
		}
		control, err := io.OutputPins(d.Control[:])
		if err != nil {
			io.ClosePins(data)
			return nil, nil, fmt.Errorf("control: %v", err)
		}
		pb, err := io.NewParallelBus(io.Setters(data), io.Setters(control))
		if err != nil {
			io.ClosePins(data)
			io.ClosePins(control)
			return nil, nil, err
		}
		release := func() {
			io.ClosePins(data)
			io.ClosePins(control)
		}
		return NewController(pb, d.Width, d.Height), release, nil
	}
	return nil, nil, fmt.Errorf("%s: unknown bus", d.Bus)
}
