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
	"bufio"
	"fmt"
	"log"
	"time"

	"go.bug.st/serial"
)

// Tags preceding each byte sent over a serial bridge.
const (
	TagCommand = 0x00
	TagData    = 0x01
	TagReset   = 0x02
)

const serialBufSize = 4096

type port interface {
	Write([]byte) (int, error)
	Close() error
}

// SerialBus forwards display bus words to a bridge microcontroller
// over a UART. Each word is sent as a tag byte followed by the value;
// the bridge replays the words onto the controller's parallel bus.
// Writes are buffered until Flush is called or the buffer fills.
type SerialBus struct {
	name   string
	port   port
	w      *bufio.Writer
	failed bool
}

// OpenSerialBus opens the serial device at the baud rate selected.
func OpenSerialBus(name string, baud int) (*SerialBus, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return newSerialBus(name, p), nil
}

func newSerialBus(name string, p port) *SerialBus {
	return &SerialBus{name: name, port: p, w: bufio.NewWriterSize(p, serialBufSize)}
}

// Command queues a command byte.
func (s *SerialBus) Command(c byte) {
	s.word(TagCommand, c)
}

// Data queues a data byte.
func (s *SerialBus) Data(d byte) {
	s.word(TagData, d)
}

// Reset asks the bridge to pulse the controller reset line for
// the duration (in milliseconds, max 255).
func (s *SerialBus) Reset(d time.Duration) {
	ms := d.Milliseconds()
	if ms > 255 {
		ms = 255
	}
	s.word(TagReset, byte(ms))
	s.Flush()
	time.Sleep(2 * d)
}

// Flush sends any buffered words.
func (s *SerialBus) Flush() {
	if err := s.w.Flush(); err != nil {
		s.fail(err)
	}
}

// Close flushes and closes the serial device.
func (s *SerialBus) Close() {
	s.Flush()
	s.port.Close()
}

func (s *SerialBus) word(tag, v byte) {
	if err := s.w.WriteByte(tag); err != nil {
		s.fail(err)
		return
	}
	if err := s.w.WriteByte(v); err != nil {
		s.fail(err)
	}
}

// The bus has no error path, so only the first failure is logged.
func (s *SerialBus) fail(err error) {
	if !s.failed {
		log.Printf("%s: write failed: %v", s.name, err)
		s.failed = true
	}
	s.w.Reset(s.port)
}
