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
	"image"
	"math"
	"strconv"
)

// Label placement.
const (
	labelGap    = 4 // Pixels between tick end and label.
	lowBand     = 30.0
	highBand    = 150.0
	labelOffset = GlyphHeight / 2
)

// TickSpec describes a ladder of tick marks around an arc.
// Angles are in degrees, 0 along +X and increasing counter-clockwise,
// with screen Y pointing down.
type TickSpec struct {
	CX, CY int
	Count  int     // Number of intervals; Count+1 ticks are produced.
	Start  float64 // Angle of tick 0
	End    float64 // Angle of tick Count
	Outer  int     // Radius of the outer end of every tick
	Short  int     // Length of a short tick
	Long   int     // Length of a long (labelled) tick
	Max    int     // Label value of the last tick
}

// Tick is one generated tick mark.
type Tick struct {
	Angle float64
	Long  bool
	Outer image.Point
	Inner image.Point
	Value int         // Label value, long ticks only
	Label image.Point // Top left of the label, long ticks only
}

// Polar projects a radius at an angle from the centre onto the screen.
func Polar(cx, cy int, r, deg float64) image.Point {
	rad := deg * math.Pi / 180
	return image.Pt(cx+int(math.Round(r*math.Cos(rad))), cy-int(math.Round(r*math.Sin(rad))))
}

// Ticks generates the tick ladder. Every 5th tick, starting with tick 0,
// is long and labelled. The label is placed inside the tick end,
// to the left of it for angles under 30 degrees, to the right for angles over
// 150 degrees, and centred below it otherwise.
func Ticks(s TickSpec) []Tick {
	if s.Count <= 0 {
		return nil
	}
	ticks := make([]Tick, 0, s.Count+1)
	for i := 0; i <= s.Count; i++ {
		var t Tick
		t.Angle = s.Start + (s.End-s.Start)*float64(i)/float64(s.Count)
		t.Long = i%5 == 0
		length := s.Short
		if t.Long {
			length = s.Long
		}
		t.Outer = Polar(s.CX, s.CY, float64(s.Outer), t.Angle)
		t.Inner = Polar(s.CX, s.CY, float64(s.Outer-length), t.Angle)
		if t.Long {
			t.Value = i * s.Max / s.Count
			w := TextWidth(len(strconv.Itoa(t.Value)))
			switch {
			case t.Angle < lowBand:
				t.Label = image.Pt(t.Inner.X-labelGap-w, t.Inner.Y-labelOffset)
			case t.Angle > highBand:
				t.Label = image.Pt(t.Inner.X+labelGap, t.Inner.Y-labelOffset)
			default:
				t.Label = image.Pt(t.Inner.X-w/2, t.Inner.Y+labelGap)
			}
		}
		ticks = append(ticks, t)
	}
	return ticks
}
