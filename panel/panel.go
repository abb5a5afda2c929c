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

// Package panel is a virtual display controller.
// It decodes the controller bus protocol and renders the pixel stream
// into an image, so the instrument can run without hardware.
package panel

import (
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/fogleman/gg"

	"github.com/aamcrae/cluster/lcd"
)

// Panel implements lcd.Bus, lcd.Resetter and lcd.Flusher.
// Bus writes may come from one goroutine while others read the image.
type Panel struct {
	mu     sync.Mutex
	ctx    *gg.Context
	width  int
	height int
	cmd    lcd.OpCode
	params []byte
	win    image.Rectangle // Inclusive of Max
	x, y   int
	pixel  []byte
	on     bool
	frames int
}

// New creates a blank panel.
func New(width, height int) *Panel {
	p := &Panel{ctx: gg.NewContext(width, height), width: width, height: height}
	p.win = image.Rect(0, 0, width-1, height-1)
	return p
}

// Command starts a new controller command.
func (p *Panel) Command(c byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cmd = lcd.OpCode(c)
	p.params = p.params[:0]
	p.pixel = p.pixel[:0]
	switch p.cmd {
	case lcd.MemoryWrite:
		p.x, p.y = p.win.Min.X, p.win.Min.Y
	case lcd.DisplayOn:
		p.on = true
	case lcd.SoftwareReset:
		p.on = false
	}
}

// Data writes a parameter or pixel byte for the current command.
func (p *Panel) Data(d byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.cmd {
	case lcd.SetRowAddress, lcd.SetColumnAddress:
		p.params = append(p.params, d)
		if len(p.params) == 4 {
			lo := int(p.params[0])<<8 | int(p.params[1])
			hi := int(p.params[2])<<8 | int(p.params[3])
			if p.cmd == lcd.SetRowAddress {
				p.win.Min.X, p.win.Max.X = lo, hi
			} else {
				p.win.Min.Y, p.win.Max.Y = lo, hi
			}
		}
	case lcd.MemoryWrite:
		p.pixel = append(p.pixel, d)
		if len(p.pixel) == 3 {
			p.plot()
			p.pixel = p.pixel[:0]
		}
	}
}

// plot writes the completed pixel and advances through the window.
func (p *Panel) plot() {
	if p.x >= 0 && p.y >= 0 && p.x < p.width && p.y < p.height {
		p.ctx.SetRGB255(int(p.pixel[0]), int(p.pixel[1]), int(p.pixel[2]))
		p.ctx.SetPixel(p.x, p.y)
	}
	p.x++
	if p.x > p.win.Max.X {
		p.x = p.win.Min.X
		p.y++
		if p.y > p.win.Max.Y {
			p.y = p.win.Min.Y
		}
	}
}

// Reset emulates the hardware reset line.
func (p *Panel) Reset(time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.on = false
	p.cmd = 0
	p.win = image.Rect(0, 0, p.width-1, p.height-1)
}

// Flush marks the end of a batch of writes.
func (p *Panel) Flush() {
	p.mu.Lock()
	p.frames++
	p.mu.Unlock()
}

// On returns true once the display has been turned on.
func (p *Panel) On() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.on
}

// Frames returns the number of flushes seen.
func (p *Panel) Frames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// Size returns the panel size.
func (p *Panel) Size() (int, int) {
	return p.width, p.height
}

// At returns the colour of a pixel.
func (p *Panel) At(x, y int) lcd.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := color.RGBAModel.Convert(p.ctx.Image().At(x, y)).(color.RGBA)
	return lcd.FromRGBA(c)
}

// Image returns a copy of the current panel contents.
func (p *Panel) Image() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	src := p.ctx.Image()
	img := image.NewRGBA(src.Bounds())
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			img.Set(x, y, src.At(x, y))
		}
	}
	return img
}
