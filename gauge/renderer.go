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

package gauge

import (
	"image"
	"math"

	"tinygo.org/x/tinyfont"

	"github.com/aamcrae/cluster/draw"
	"github.com/aamcrae/cluster/tacho"
)

// Readout geometry.
const (
	tickInset   = 10     // Gap between the arc and the outer end of the ticks
	readoutGap  = 12     // Gap below the arc centre line
	pointWidth  = 4      // Decimal point or comma cell
	speedDigits = 4      // Widest integer part of the speed readout
	speedMax    = 999999 // "9999.99", the most the speed field holds
	odoMax      = 99999
	unitLabel   = "KM/H"
)

var (
	speedField = speedDigits*draw.Pitch + pointWidth + 2*draw.Pitch
	odoField   = 3*draw.Pitch + pointWidth + 2*draw.Pitch + draw.Pitch + 2*draw.Pitch
)

// NeedlePose is the needle position. Last is the tip as last drawn,
// kept so the old needle can be erased before the new one is drawn.
type NeedlePose struct {
	Origin image.Point
	Tip    image.Point
	Last   image.Point
	drawn  bool
}

// Renderer holds the drawing state of the gauge.
// Each widget remembers what it last drew so that it only repaints
// what has changed. A Renderer must only be used from one goroutine.
type Renderer struct {
	layout Layout
	c      *draw.Canvas
	ticks  []draw.Tick
	needle NeedlePose

	speed      int
	speedDrawn bool
	forward    bool
	dirDrawn   bool

	speedAt image.Point
	unitAt  image.Point
	odoAt   image.Point
	dirAt   image.Point
}

// NewRenderer creates a renderer drawing on s.
// The readouts are placed in the strip below the arc centre, which the
// needle never crosses.
func NewRenderer(s draw.Surface, l *Layout) *Renderer {
	r := &Renderer{layout: *l, c: draw.NewCanvas(s)}
	r.needle.Origin = image.Pt(l.CX, l.CY)
	r.ticks = draw.Ticks(draw.TickSpec{
		CX:    l.CX,
		CY:    l.CY,
		Count: l.Ticks,
		Start: l.Start,
		End:   l.Start - l.Sweep,
		Outer: l.Radius - tickInset,
		Short: l.ShortTick,
		Long:  l.LongTick,
		Max:   l.MaxSpeed,
	})
	y := l.CY + readoutGap
	r.speedAt = image.Pt(l.CX-speedField/2, y)
	r.unitAt = image.Pt(r.speedAt.X+speedField+draw.Pitch, y)
	r.odoAt = image.Pt(l.CX-l.Radius, y)
	r.dirAt = image.Pt(l.CX+l.Radius-draw.GlyphWidth, y)
	return r
}

// Canvas returns the canvas the gauge is drawn on.
func (r *Renderer) Canvas() *draw.Canvas {
	return r.c
}

// Clear paints the background and the fixed labels, and forgets
// all previously drawn state.
func (r *Renderer) Clear() {
	r.c.Clear(r.layout.Background)
	r.needle.drawn = false
	r.speedDrawn = false
	r.dirDrawn = false
	// Text is positioned by its baseline.
	tinyfont.WriteLine(r.c, draw.Gauge, int16(r.unitAt.X), int16(r.unitAt.Y+draw.GlyphHeight-1), unitLabel, r.layout.Foreground.ToRGBA())
	r.c.Display()
}

// Frame renders one display refresh from the latest snapshot.
// The arc and ticks are redrawn every frame, since erasing the
// old needle may cut through them.
func (r *Renderer) Frame(s tacho.Snapshot) {
	tip := NeedleTip(&r.layout, s.Kmh())
	r.eraseNeedle(tip)
	r.Arc()
	r.Ticks()
	r.drawNeedle(tip)
	r.Speed(s.SpeedCentiKmh)
	r.Direction(s.Forward)
	r.c.Display()
}

// Arc draws the outer arc.
func (r *Renderer) Arc() {
	r.c.ArcOutline(r.layout.CX, r.layout.CY, r.layout.Radius, r.layout.ScaleColor)
}

// Ticks draws the tick ladder and its labels.
func (r *Renderer) Ticks() {
	for _, t := range r.ticks {
		r.c.Line(t.Outer.X, t.Outer.Y, t.Inner.X, t.Inner.Y, r.layout.ScaleColor)
		if t.Long {
			r.c.Number(t.Value, t.Label.X, t.Label.Y, r.layout.Foreground)
		}
	}
}

// Needle moves the needle to show kmh.
func (r *Renderer) Needle(kmh float64) {
	tip := NeedleTip(&r.layout, kmh)
	r.eraseNeedle(tip)
	r.drawNeedle(tip)
}

// Pose returns the current needle pose.
func (r *Renderer) Pose() NeedlePose {
	return r.needle
}

// eraseNeedle removes the old needle if it is about to move.
func (r *Renderer) eraseNeedle(tip image.Point) {
	n := &r.needle
	if n.drawn && tip != n.Last {
		r.c.Line(n.Origin.X, n.Origin.Y, n.Last.X, n.Last.Y, r.layout.Background)
	}
}

// drawNeedle always draws, even when the needle has not moved.
func (r *Renderer) drawNeedle(tip image.Point) {
	n := &r.needle
	n.Tip = tip
	r.c.Line(n.Origin.X, n.Origin.Y, tip.X, tip.Y, r.layout.NeedleColor)
	n.Last = tip
	n.drawn = true
}

// Speed shows the speed as km/h with 2 decimals, repainting only on change.
// Speeds too wide for the field show as 9999.99.
func (r *Renderer) Speed(centi int) {
	if centi < 0 {
		centi = 0
	}
	if centi > speedMax {
		centi = speedMax
	}
	if r.speedDrawn && centi == r.speed {
		return
	}
	p := r.speedAt
	fg := r.layout.Foreground
	r.c.FillRect(p.X, p.Y, speedField, draw.GlyphHeight, r.layout.Background)
	x := r.c.Number(centi/100, p.X, p.Y, fg)
	r.c.FillRect(x, p.Y+draw.GlyphHeight-3, 2, 2, fg)
	r.c.FixedNumber(centi%100, 2, x+pointWidth, p.Y, fg)
	r.speed = centi
	r.speedDrawn = true
}

// Direction shows F or R, repainting only when the direction changes.
func (r *Renderer) Direction(forward bool) {
	if r.dirDrawn && forward == r.forward {
		return
	}
	p := r.dirAt
	r.c.FillRect(p.X, p.Y, draw.GlyphWidth, draw.GlyphHeight, r.layout.Background)
	ch := 'R'
	if forward {
		ch = 'F'
	}
	g, _ := draw.Lookup(ch)
	r.c.Glyph(&g, p.X, p.Y, r.layout.Foreground)
	r.forward = forward
	r.dirDrawn = true
}

// Odometer shows the distance as ddd,dd KM. It is called once per
// measurement window rather than on every refresh.
func (r *Renderer) Odometer(km float64) {
	whole, frac, _ := OdometerDigits(km)
	p := r.odoAt
	fg := r.layout.Foreground
	r.c.FillRect(p.X, p.Y, odoField, draw.GlyphHeight, r.layout.Background)
	x := r.c.FixedNumber(whole, 3, p.X, p.Y, fg)
	// Two pixel comma.
	r.c.Pixel(x+1, p.Y+draw.GlyphHeight-3, fg)
	r.c.Pixel(x, p.Y+draw.GlyphHeight-2, fg)
	x = r.c.FixedNumber(frac, 2, x+pointWidth, p.Y, fg)
	r.c.Text("KM", x+draw.Pitch, p.Y, fg)
	r.c.Display()
}

// NeedleTip returns the needle tip for a speed, clamped to the scale.
func NeedleTip(l *Layout, kmh float64) image.Point {
	full := float64(l.MaxSpeed)
	kmh = math.Max(0, math.Min(kmh, full))
	angle := l.Start - kmh/full*l.Sweep
	return draw.Polar(l.CX, l.CY, float64(l.NeedleLength), angle)
}

// OdometerDigits splits a distance into the 3 integer and 2 fraction
// digits shown. Distances beyond 999.99 are clamped and reported as capped.
func OdometerDigits(km float64) (whole, frac int, capped bool) {
	if km < 0 || math.IsNaN(km) {
		km = 0
	}
	v := int(math.Min(math.Floor(km*100+1e-6), odoMax))
	capped = v >= odoMax
	return v / 100, v % 100, capped
}
