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
	"log"
	"time"
)

// Controller is a stateless wrapper around the controller protocol.
// Every drawing operation sets its own window before streaming pixels,
// so no addressing state is kept between calls.
// Only a single goroutine may use a Controller.
type Controller struct {
	bus    Bus
	width  int
	height int
	sleep  func(time.Duration)
}

// NewController creates a controller for a panel of the given size.
func NewController(bus Bus, width, height int) *Controller {
	return &Controller{bus: bus, width: width, height: height, sleep: time.Sleep}
}

// Size returns the panel size in pixels.
func (c *Controller) Size() (int, int) {
	return c.width, c.height
}

// Init resets the controller and sends the start up sequence.
// If the bus cannot drive the reset line, only the software resets are used.
func (c *Controller) Init() {
	if r, ok := c.bus.(Resetter); ok {
		r.Reset(resetPulse)
	}
	for _, op := range InitSequence(c.width, c.height) {
		c.Send(op)
		if op.Delay > 0 {
			c.Flush()
			c.sleep(op.Delay)
		}
	}
	c.Flush()
	log.Printf("lcd: %dx%d display on", c.width, c.height)
}

// Send writes an operation to the bus.
func (c *Controller) Send(op Op) {
	c.bus.Command(byte(op.Code))
	for _, b := range op.Payload {
		c.bus.Data(b)
	}
}

// SetWindow addresses the frame memory window, inclusive of the max values.
func (c *Controller) SetWindow(minX, minY, maxX, maxY int) {
	c.Send(RowAddress(minX, maxX))
	c.Send(ColumnAddress(minY, maxY))
}

// BeginPixelStream starts a memory write into the current window.
func (c *Controller) BeginPixelStream() {
	c.bus.Command(byte(MemoryWrite))
}

// PushPixel writes one pixel to the memory stream.
func (c *Controller) PushPixel(col Color) {
	c.bus.Data(col.R())
	c.bus.Data(col.G())
	c.bus.Data(col.B())
}

// Fill writes n pixels of the same colour to the memory stream.
func (c *Controller) Fill(n int, col Color) {
	r, g, b := col.R(), col.G(), col.B()
	for i := 0; i < n; i++ {
		c.bus.Data(r)
		c.bus.Data(g)
		c.bus.Data(b)
	}
}

// Flush sends any writes buffered by the bus.
func (c *Controller) Flush() {
	if f, ok := c.bus.(Flusher); ok {
		f.Flush()
	}
}
