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

// Package draw rasterises lines, arcs, tick marks and bitmap glyphs
// onto a windowed pixel stream surface.
package draw

import (
	"image/color"

	"github.com/aamcrae/cluster/lcd"
)

// Surface is a frame memory addressed by window, such as lcd.Controller.
type Surface interface {
	SetWindow(minX, minY, maxX, maxY int)
	BeginPixelStream()
	PushPixel(lcd.Color)
	Size() (int, int)
}

// filler is implemented by surfaces that can stream a run of one colour.
type filler interface {
	Fill(n int, col lcd.Color)
}

// Canvas draws on a Surface. Each primitive sets its own window.
// Pixels outside the surface are clipped.
// Canvas also implements drivers.Displayer so that tinygo renderers
// can draw on the surface.
type Canvas struct {
	s      Surface
	width  int
	height int
}

// NewCanvas creates a Canvas covering the whole surface.
func NewCanvas(s Surface) *Canvas {
	c := new(Canvas)
	c.s = s
	c.width, c.height = s.Size()
	return c
}

// Pixel draws a single pixel using a 1x1 window.
func (c *Canvas) Pixel(x, y int, col lcd.Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.s.SetWindow(x, y, x, y)
	c.s.BeginPixelStream()
	c.s.PushPixel(col)
}

// FillRect fills a w x h rectangle with a single window.
func (c *Canvas) FillRect(x, y, w, h int, col lcd.Color) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > c.width {
		w = c.width - x
	}
	if y+h > c.height {
		h = c.height - y
	}
	if w <= 0 || h <= 0 {
		return
	}
	c.s.SetWindow(x, y, x+w-1, y+h-1)
	c.s.BeginPixelStream()
	if f, ok := c.s.(filler); ok {
		f.Fill(w*h, col)
		return
	}
	for i := w * h; i > 0; i-- {
		c.s.PushPixel(col)
	}
}

// Clear fills the whole surface.
func (c *Canvas) Clear(col lcd.Color) {
	c.FillRect(0, 0, c.width, c.height, col)
}

// Size returns the canvas size in the form required by drivers.Displayer.
func (c *Canvas) Size() (x, y int16) {
	return int16(c.width), int16(c.height)
}

// SetPixel draws a pixel, as required by drivers.Displayer.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.Pixel(int(x), int(y), lcd.FromRGBA(col))
}

// Display flushes any buffered bus writes.
func (c *Canvas) Display() error {
	if f, ok := c.s.(lcd.Flusher); ok {
		f.Flush()
	}
	return nil
}
