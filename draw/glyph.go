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
	"strconv"

	"github.com/aamcrae/cluster/lcd"
)

// Glyph geometry.
const (
	GlyphWidth  = 8
	GlyphHeight = 12
	Pitch       = GlyphWidth + 1
)

// Glyph is a 8x12 bitmap, one byte per row, bit 7 the leftmost column.
type Glyph [GlyphHeight]uint8

var glyphs = map[rune]Glyph{
	'0': {0x00, 0x3C, 0x66, 0x66, 0x6E, 0x7C, 0x76, 0x66, 0x66, 0x3C, 0x00, 0x00},
	'1': {0x00, 0x18, 0x38, 0x78, 0x18, 0x18, 0x18, 0x18, 0x18, 0x7E, 0x00, 0x00},
	'2': {0x00, 0x3C, 0x66, 0x06, 0x0C, 0x18, 0x30, 0x60, 0x66, 0x7E, 0x00, 0x00},
	'3': {0x00, 0x3C, 0x66, 0x06, 0x06, 0x1C, 0x06, 0x06, 0x66, 0x3C, 0x00, 0x00},
	'4': {0x00, 0x0C, 0x1C, 0x3C, 0x6C, 0xCC, 0xFE, 0x0C, 0x0C, 0x1E, 0x00, 0x00},
	'5': {0x00, 0x7E, 0x60, 0x60, 0x7C, 0x06, 0x06, 0x06, 0x66, 0x3C, 0x00, 0x00},
	'6': {0x00, 0x1C, 0x30, 0x60, 0x7C, 0x66, 0x66, 0x66, 0x66, 0x3C, 0x00, 0x00},
	'7': {0x00, 0x7E, 0x66, 0x06, 0x0C, 0x18, 0x18, 0x18, 0x18, 0x18, 0x00, 0x00},
	'8': {0x00, 0x3C, 0x66, 0x66, 0x76, 0x3C, 0x6E, 0x66, 0x66, 0x3C, 0x00, 0x00},
	'9': {0x00, 0x3C, 0x66, 0x66, 0x66, 0x3E, 0x06, 0x06, 0x0C, 0x38, 0x00, 0x00},
	'F': {0x00, 0x7E, 0x60, 0x60, 0x60, 0x7C, 0x60, 0x60, 0x60, 0x60, 0x00, 0x00},
	'R': {0x00, 0x7C, 0x66, 0x66, 0x66, 0x7C, 0x78, 0x6C, 0x66, 0x66, 0x00, 0x00},
	'K': {0x00, 0x66, 0x66, 0x6C, 0x78, 0x70, 0x78, 0x6C, 0x66, 0x66, 0x00, 0x00},
	'M': {0x00, 0xC6, 0xEE, 0xFE, 0xFE, 0xD6, 0xC6, 0xC6, 0xC6, 0xC6, 0x00, 0x00},
	'H': {0x00, 0x66, 0x66, 0x66, 0x66, 0x7E, 0x66, 0x66, 0x66, 0x66, 0x00, 0x00},
	'/': {0x00, 0x02, 0x06, 0x04, 0x0C, 0x18, 0x30, 0x20, 0x60, 0x40, 0x00, 0x00},
	' ': {},
}

// Lookup returns the glyph for r. Unknown characters are blank.
func Lookup(r rune) (Glyph, bool) {
	g, ok := glyphs[r]
	return g, ok
}

// TextWidth is the width in pixels of n glyphs, excluding the trailing gutter.
func TextWidth(n int) int {
	if n <= 0 {
		return 0
	}
	return n*Pitch - 1
}

// Digits formats a non-negative value zero padded to width digits.
// Values too wide for the field keep their low order digits.
func Digits(value, width int) string {
	if value < 0 {
		value = -value
	}
	b := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = byte('0' + value%10)
		value /= 10
	}
	return string(b)
}

// Each calls set for every set bit of g, offset by x, y.
func (g *Glyph) Each(x, y int, set func(x, y int)) {
	for row := 0; row < GlyphHeight; row++ {
		bits := g[row]
		for i := 0; i < GlyphWidth; i++ {
			if bits&(1<<(7-i)) != 0 {
				set(x+i, y+row)
			}
		}
	}
}

// Glyph draws the set bits of g with the top left corner at x, y.
// Clear bits are left untouched.
func (c *Canvas) Glyph(g *Glyph, x, y int, col lcd.Color) {
	g.Each(x, y, func(x, y int) {
		c.Pixel(x, y, col)
	})
}

// Text draws a string at 9 pixel pitch, returning the x position after it.
func (c *Canvas) Text(s string, x, y int, col lcd.Color) int {
	for _, r := range s {
		g, _ := Lookup(r)
		c.Glyph(&g, x, y, col)
		x += Pitch
	}
	return x
}

// Number draws a value using as many digits as it needs.
func (c *Canvas) Number(value, x, y int, col lcd.Color) int {
	return c.Text(strconv.Itoa(value), x, y, col)
}

// FixedNumber draws a value zero padded to width digits.
func (c *Canvas) FixedNumber(value, width, x, y int, col lcd.Color) int {
	return c.Text(Digits(value, width), x, y, col)
}
