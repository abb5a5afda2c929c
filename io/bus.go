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

package io

import (
	"fmt"
	"time"
)

// Control line indices for a ParallelBus.
const (
	CS  = iota // Chip select, active low
	DC         // Data (1) or command (0)
	WR         // Write strobe, active low
	RD         // Read strobe, active low
	RST        // Reset, active low
	controlLines
)

// ParallelBus is an 8 bit 8080 style bus to a display controller.
// A byte is placed on the data lines, and latched by the controller
// when the write strobe is released. The data/command line is sampled
// in the same bus cycle to distinguish a command from a parameter.
// There is no acknowledgement from the controller, so write errors on
// the pins are ignored.
type ParallelBus struct {
	data    [8]Setter
	control [controlLines]Setter
	last    int // Last byte on data lines, -1 if unknown
}

// NewParallelBus creates a bus from 8 data pins (D0 first) and the
// control pins in the order CS, DC, WR, RD, RST.
// All control lines are set to their idle (high) state.
func NewParallelBus(data []Setter, control []Setter) (*ParallelBus, error) {
	if len(data) != 8 {
		return nil, fmt.Errorf("bus: %d data lines, need 8", len(data))
	}
	if len(control) != controlLines {
		return nil, fmt.Errorf("bus: %d control lines, need %d", len(control), controlLines)
	}
	b := new(ParallelBus)
	copy(b.data[:], data)
	copy(b.control[:], control)
	b.last = -1
	b.idle()
	return b, nil
}

// Command writes a command byte.
func (b *ParallelBus) Command(c byte) {
	b.write(c, 0)
}

// Data writes a data byte.
func (b *ParallelBus) Data(d byte) {
	b.write(d, 1)
}

// Reset pulses the reset line low for the duration, and then waits
// the same period for the controller to come out of reset.
func (b *ParallelBus) Reset(d time.Duration) {
	b.control[RST].Set(0)
	time.Sleep(d)
	b.control[RST].Set(1)
	time.Sleep(d)
}

func (b *ParallelBus) write(v byte, dc int) {
	// Only change the data lines that differ from the last byte.
	for i := 0; i < 8; i++ {
		bit := int(v>>i) & 1
		if b.last < 0 || (b.last>>i)&1 != bit {
			b.data[i].Set(bit)
		}
	}
	b.last = int(v)
	b.control[DC].Set(dc)
	b.control[CS].Set(0)
	b.control[WR].Set(0)
	// Rising edge of WR latches the byte.
	b.control[WR].Set(1)
	b.control[CS].Set(1)
}

func (b *ParallelBus) idle() {
	for _, c := range b.control {
		c.Set(1)
	}
}
