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
	"os"
	"path/filepath"
	"testing"

	"github.com/aamcrae/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamcrae/cluster/draw"
	"github.com/aamcrae/cluster/lcd"
	"github.com/aamcrae/cluster/panel"
	"github.com/aamcrae/cluster/tacho"
)

// counter counts the windows opened on a surface.
type counter struct {
	draw.Surface
	windows int
}

func (c *counter) SetWindow(minX, minY, maxX, maxY int) {
	c.windows++
	c.Surface.SetWindow(minX, minY, maxX, maxY)
}

func newGauge(t *testing.T) (*Renderer, *panel.Panel, *counter) {
	p := panel.New(800, 480)
	c := &counter{Surface: lcd.NewController(p, 800, 480)}
	r := NewRenderer(c, DefaultLayout())
	r.Clear()
	return r, p, c
}

func linePoints(a, b image.Point) []image.Point {
	var pts []image.Point
	draw.Line(a.X, a.Y, b.X, b.Y, func(x, y int) {
		pts = append(pts, image.Pt(x, y))
	})
	return pts
}

func TestNeedleTip(t *testing.T) {
	l := DefaultLayout()
	tests := []struct {
		kmh  float64
		want image.Point
	}{
		{0, image.Pt(70, 440)},
		{-5, image.Pt(70, 440)},
		{200, image.Pt(400, 110)},
		{400, image.Pt(730, 440)},
		{1000, image.Pt(730, 440)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NeedleTip(l, tt.kmh), "kmh %v", tt.kmh)
	}
}

func TestOdometerDigits(t *testing.T) {
	tests := []struct {
		km     float64
		whole  int
		frac   int
		capped bool
	}{
		{0, 0, 0, false},
		{12.5, 12, 50, false},
		{0.29, 0, 29, false},
		{1.234, 1, 23, false},
		{999.98, 999, 98, false},
		{999.99, 999, 99, true},
		{999.999, 999, 99, true},
		{5000, 999, 99, true},
		{-1, 0, 0, false},
	}
	for _, tt := range tests {
		w, f, c := OdometerDigits(tt.km)
		assert.Equal(t, tt.whole, w, "km %v", tt.km)
		assert.Equal(t, tt.frac, f, "km %v", tt.km)
		assert.Equal(t, tt.capped, c, "km %v", tt.km)
	}
}

func TestFrame(t *testing.T) {
	r, p, _ := newGauge(t)
	l := DefaultLayout()
	// Unit label.
	assert.Equal(t, l.Foreground, p.At(r.unitAt.X+1, r.unitAt.Y+1))

	r.Frame(tacho.Snapshot{SpeedCentiKmh: 18000, Forward: true})
	pose := r.Pose()
	assert.Equal(t, image.Pt(400, 440), pose.Origin)
	assert.Equal(t, NeedleTip(l, 180), pose.Tip)
	assert.Equal(t, pose.Tip, pose.Last)
	old := linePoints(pose.Origin, pose.Tip)
	for _, pt := range old {
		require.Equal(t, l.NeedleColor, p.At(pt.X, pt.Y), "needle at %v", pt)
	}
	// Arc top and the first tick.
	assert.Equal(t, l.ScaleColor, p.At(400, 440-l.Radius))
	assert.Equal(t, l.ScaleColor, p.At(r.ticks[0].Outer.X, r.ticks[0].Outer.Y))
	// "180.00": second row of the '1' and the decimal point.
	assert.Equal(t, l.Foreground, p.At(r.speedAt.X+3, r.speedAt.Y+2))
	assert.Equal(t, l.Foreground, p.At(r.speedAt.X+3*draw.Pitch, r.speedAt.Y+draw.GlyphHeight-3))
	// 'F' has no pixel in column 5 of row 9, 'R' does.
	assert.Equal(t, l.Background, p.At(r.dirAt.X+5, r.dirAt.Y+9))
	assert.Equal(t, l.Foreground, p.At(r.dirAt.X+1, r.dirAt.Y+9))

	r.Frame(tacho.Snapshot{SpeedCentiKmh: 0, Forward: false})
	for _, pt := range old {
		if pt.Y < l.CY {
			require.Equal(t, l.Background, p.At(pt.X, pt.Y), "old needle at %v", pt)
		}
	}
	for _, pt := range linePoints(image.Pt(400, 440), image.Pt(70, 440)) {
		require.Equal(t, l.NeedleColor, p.At(pt.X, pt.Y), "needle at %v", pt)
	}
	// "0.00": the second row of '0' is clear in column 3.
	assert.Equal(t, l.Background, p.At(r.speedAt.X+3, r.speedAt.Y+2))
	assert.Equal(t, l.Foreground, p.At(r.speedAt.X+draw.Pitch, r.speedAt.Y+draw.GlyphHeight-3))
	assert.Equal(t, l.Foreground, p.At(r.dirAt.X+5, r.dirAt.Y+9))
}

func TestSpeedClamped(t *testing.T) {
	r, p, _ := newGauge(t)
	l := DefaultLayout()
	r.Speed(5000000)
	assert.Equal(t, speedMax, r.speed)
	// The gap between the readout and the unit label stays clear.
	for y := r.speedAt.Y; y < r.speedAt.Y+draw.GlyphHeight; y++ {
		for x := r.speedAt.X + speedField; x < r.unitAt.X; x++ {
			require.Equal(t, l.Background, p.At(x, y), "pixel at %d,%d", x, y)
		}
	}
	// Top row of the leading '9'.
	assert.Equal(t, l.Foreground, p.At(r.speedAt.X+2, r.speedAt.Y+1))
}

func TestNeedleRedraw(t *testing.T) {
	r, _, c := newGauge(t)
	l := DefaultLayout()
	r.Needle(100)
	first := len(linePoints(r.Pose().Origin, NeedleTip(l, 100)))

	// Unchanged: drawn again but not erased.
	c.windows = 0
	r.Needle(100)
	assert.Equal(t, first, c.windows)

	// Moved: old needle erased, new one drawn.
	c.windows = 0
	r.Needle(300)
	second := len(linePoints(r.Pose().Origin, NeedleTip(l, 300)))
	assert.Equal(t, first+second, c.windows)
}

func TestRepaintOnChange(t *testing.T) {
	r, _, c := newGauge(t)
	r.Speed(1234)
	r.Direction(true)
	assert.Greater(t, c.windows, 0)

	c.windows = 0
	r.Speed(1234)
	r.Direction(true)
	assert.Equal(t, 0, c.windows)

	r.Direction(false)
	assert.Greater(t, c.windows, 0)
	c.windows = 0
	r.Speed(1235)
	assert.Greater(t, c.windows, 0)

	// Clear forgets what was drawn.
	r.Clear()
	c.windows = 0
	r.Direction(false)
	assert.Greater(t, c.windows, 0)
}

func TestOdometer(t *testing.T) {
	r, p, _ := newGauge(t)
	fg := DefaultLayout().Foreground
	r.Odometer(12.5)
	o := r.odoAt
	// "012,50 KM"
	assert.Equal(t, fg, p.At(o.X+2, o.Y+1))            // 0
	assert.Equal(t, fg, p.At(o.X+draw.Pitch+3, o.Y+2)) // 1
	comma := o.X + 3*draw.Pitch
	assert.Equal(t, fg, p.At(comma+1, o.Y+draw.GlyphHeight-3))
	assert.Equal(t, fg, p.At(comma, o.Y+draw.GlyphHeight-2))
	frac := comma + pointWidth
	assert.Equal(t, fg, p.At(frac+1, o.Y+1)) // 5
	assert.Equal(t, fg, p.At(frac+3*draw.Pitch+1, o.Y+1))

	// Repainting clears the old digits: '1' becomes '9'.
	r.Odometer(999.999)
	assert.Equal(t, DefaultLayout().Background, p.At(o.X+draw.Pitch+3, o.Y+2))
}

func parse(t *testing.T, text string) *config.Config {
	f := filepath.Join(t.TempDir(), "test.conf")
	require.NoError(t, os.WriteFile(f, []byte(text), 0600))
	conf, err := config.ParseFile(f)
	require.NoError(t, err)
	return conf
}

func TestConfig(t *testing.T) {
	l, err := Config(parse(t, "[gauge]\ncenter=240,260\nradius=230\nneedle=200\nmaxspeed=240\nticks=24\nsweep=170,160\n"))
	require.NoError(t, err)
	assert.Equal(t, 240, l.CX)
	assert.Equal(t, 260, l.CY)
	assert.Equal(t, 230, l.Radius)
	assert.Equal(t, 200, l.NeedleLength)
	assert.Equal(t, 240, l.MaxSpeed)
	assert.Equal(t, 24, l.Ticks)
	assert.Equal(t, 170.0, l.Start)
	assert.Equal(t, 160.0, l.Sweep)

	l, err = Config(parse(t, "[encoder]\npulses=4\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout(), l)
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"short center", "[gauge]\ncenter=1\n"},
		{"needle too long", "[gauge]\nneedle=400\n"},
		{"zero speed", "[gauge]\nmaxspeed=0\n"},
		{"bad ticks", "[gauge]\nticks=x\n"},
		{"lower sweep", "[gauge]\nsweep=90,180\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Config(parse(t, tt.text))
			assert.Error(t, err)
		})
	}
}
