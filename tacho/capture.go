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

// Encoder edge capture.

package tacho

import (
	"errors"
	"log"

	"golang.org/x/sys/unix"
)

// maxRetries limits consecutive interrupted reads before the input
// is considered failed.
const maxRetries = 10

// IO provides a method to return when an input changes.
type IO interface {
	Get() (int, error)
}

// EdgeHandler receives the levels read from an encoder channel.
type EdgeHandler interface {
	Prime(Channel, bool)
	OnEdge(Channel, bool)
}

// Capture services one encoder channel.
// A goroutine waits on the edge triggered input, and passes each
// new level to the handler. The first value read is the level of the
// input when capture starts, and is not an edge.
type Capture struct {
	Name    string
	Channel Channel
	handler EdgeHandler
	enc     IO   // I/O from encoder hardware
	invert  bool // Invert input signal
	done    chan struct{}
}

// NewCapture creates a Capture and starts servicing the input.
func NewCapture(name string, ch Channel, h EdgeHandler, io IO, invert bool) *Capture {
	c := new(Capture)
	c.Name = name
	c.Channel = ch
	c.handler = h
	c.enc = io
	c.invert = invert
	c.done = make(chan struct{})
	go c.driver()
	return c
}

// Done returns a channel that is closed when the input fails.
func (c *Capture) Done() <-chan struct{} {
	return c.done
}

func (c *Capture) driver() {
	defer close(c.done)
	first := true
	retries := 0
	for {
		s, err := c.enc.Get()
		if err != nil {
			if transient(err) && retries < maxRetries {
				retries++
				continue
			}
			log.Printf("%s: channel %s input: %v", c.Name, c.Channel, err)
			return
		}
		retries = 0
		if c.invert {
			s = s ^ 1
		}
		if first {
			c.handler.Prime(c.Channel, s != 0)
			first = false
			continue
		}
		c.handler.OnEdge(c.Channel, s != 0)
	}
}

// transient reports whether a failed poll may be retried.
func transient(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN)
}
