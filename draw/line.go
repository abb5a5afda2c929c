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

// Line calls plot for every pixel of the line between the end points,
// inclusive, using Bresenham's algorithm.
// The line is always traced from the left (or for vertical lines, the top)
// end point, so the pixels are the same whichever order the ends are given.
func Line(x0, y0, x1, y1 int, plot func(x, y int)) {
	if x1 < x0 || (x1 == x0 && y1 < y0) {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	dx := x1 - x0
	dy := -abs(y1 - y0)
	sy := 1
	if y1 < y0 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0++
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Line draws a line.
func (c *Canvas) Line(x0, y0, x1, y1 int, col lcd.Color) {
	Line(x0, y0, x1, y1, func(x, y int) {
		c.Pixel(x, y, col)
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
