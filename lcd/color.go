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
	"image/color"
)

// Color is a 24 bit RGB colour, 0x00RRGGBB.
type Color uint32

// Some predefined colours.
const (
	Black  Color = 0x000000
	White  Color = 0xFFFFFF
	Grey   Color = 0xAAAAAA
	Red    Color = 0xFF0000
	Green  Color = 0x00FF00
	Blue   Color = 0x0000FF
	Yellow Color = 0xFFFF00
)

// RGB creates a colour from its components.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// R returns the red component.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c) }

// ToRGBA converts the colour to an opaque color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xFF}
}

// FromRGBA converts a color.RGBA, ignoring alpha.
func FromRGBA(c color.RGBA) Color {
	return RGB(c.R, c.G, c.B)
}
