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

package draw

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font exposes the glyph table as a tinyfont.Fonter.
// Text is drawn with the bottom row of each glyph on the baseline.
type Font struct{}

// Gauge is the font used for the instrument labels.
var Gauge tinyfont.Fonter = Font{}

type fontGlyph struct {
	r rune
	g Glyph
}

// GetGlyph returns the glyph for r, blank if r is not in the table.
func (Font) GetGlyph(r rune) tinyfont.Glypher {
	g, _ := Lookup(r)
	return &fontGlyph{r: r, g: g}
}

// GetYAdvance returns the line height.
func (Font) GetYAdvance() uint8 {
	return GlyphHeight
}

// Draw blits the glyph with its baseline at y.
func (f *fontGlyph) Draw(d drivers.Displayer, x, y int16, c color.RGBA) {
	f.g.Each(int(x), int(y)-(GlyphHeight-1), func(x, y int) {
		d.SetPixel(int16(x), int16(y), c)
	})
}

// Info returns the glyph metrics.
func (f *fontGlyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     f.r,
		Width:    GlyphWidth,
		Height:   GlyphHeight,
		XAdvance: Pitch,
		YOffset:  -(GlyphHeight - 1),
	}
}
