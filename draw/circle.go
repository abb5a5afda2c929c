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
	"github.com/aamcrae/cluster/lcd"
)

// Arc calls plot for the points of the upper half of a circle, using
// the midpoint circle algorithm.
// Of the eight symmetric reflections of each octant point only the two
// top and the two upper side reflections are used; the lower half is
// never generated.
func Arc(cx, cy, r int, plot func(x, y int)) {
	x, y := 0, r
	d := 1 - r
	for x <= y {
		plot(cx+x, cy-y)
		plot(cx-x, cy-y)
		plot(cx+y, cy-x)
		plot(cx-y, cy-x)
		x++
		if d < 0 {
			d += 2*x + 1
		} else {
			y--
			d += 2*(x-y) + 1
		}
	}
}

// ArcOutline draws the upper arc of a circle.
func (c *Canvas) ArcOutline(cx, cy, r int, col lcd.Color) {
	Arc(cx, cy, r, func(x, y int) {
		c.Pixel(x, y, col)
	})
}
