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

// Package gauge draws the speedometer: an arc with a tick ladder,
// a needle, the live speed, the direction of travel and the odometer.
package gauge

import (
	"fmt"

	"github.com/aamcrae/cluster/lcd"
	"github.com/aamcrae/config"
)

// Layout is the gauge geometry and colours.
// Angles are in degrees, 0 along +X, increasing counter-clockwise.
type Layout struct {
	CX, CY       int     // Centre of the arc
	Radius       int     // Outer arc radius
	NeedleLength int     // Needle length
	MaxSpeed     int     // Speed at full sweep, km/h
	Ticks        int     // Tick intervals
	Start        float64 // Angle of zero speed
	Sweep        float64 // Clockwise angle from zero to MaxSpeed
	ShortTick    int
	LongTick     int
	Background   lcd.Color
	Foreground   lcd.Color
	NeedleColor  lcd.Color
	ScaleColor   lcd.Color
}

// DefaultLayout returns the layout for an 800x480 panel.
func DefaultLayout() *Layout {
	return &Layout{
		CX:           400,
		CY:           440,
		Radius:       380,
		NeedleLength: 330,
		MaxSpeed:     400,
		Ticks:        40,
		Start:        180,
		Sweep:        180,
		ShortTick:    10,
		LongTick:     20,
		Background:   lcd.Black,
		Foreground:   lcd.White,
		NeedleColor:  lcd.Red,
		ScaleColor:   lcd.Grey,
	}
}

// Config reads the gauge layout from the config file section.
// Sample config:
//  [gauge]
//  center=400,440           # Arc centre
//  radius=380               # Arc radius
//  needle=330               # Needle length
//  maxspeed=400             # km/h at full scale
//  ticks=40                 # Number of tick intervals
//  sweep=180,180            # Start angle and sweep in degrees
func Config(conf *config.Config) (*Layout, error) {
	l := DefaultLayout()
	s := conf.GetSection("gauge")
	if s == nil {
		return l, nil
	}
	if _, err := s.GetArg("center"); err == nil {
		n, err := s.Parse("center", "%d,%d", &l.CX, &l.CY)
		if err != nil {
			return nil, fmt.Errorf("center: %v", err)
		}
		if n != 2 {
			return nil, fmt.Errorf("center: argument count")
		}
	}
	if _, err := s.GetArg("radius"); err == nil {
		n, err := s.Parse("radius", "%d", &l.Radius)
		if err != nil {
			return nil, fmt.Errorf("radius: %v", err)
		}
		if n != 1 || l.Radius <= l.LongTick {
			return nil, fmt.Errorf("radius: invalid value")
		}
	}
	if _, err := s.GetArg("needle"); err == nil {
		n, err := s.Parse("needle", "%d", &l.NeedleLength)
		if err != nil {
			return nil, fmt.Errorf("needle: %v", err)
		}
		if n != 1 || l.NeedleLength <= 0 {
			return nil, fmt.Errorf("needle: invalid value")
		}
	}
	if l.NeedleLength >= l.Radius {
		return nil, fmt.Errorf("needle: must be shorter than the radius")
	}
	if _, err := s.GetArg("maxspeed"); err == nil {
		n, err := s.Parse("maxspeed", "%d", &l.MaxSpeed)
		if err != nil {
			return nil, fmt.Errorf("maxspeed: %v", err)
		}
		if n != 1 || l.MaxSpeed <= 0 {
			return nil, fmt.Errorf("maxspeed: invalid value")
		}
	}
	if _, err := s.GetArg("ticks"); err == nil {
		n, err := s.Parse("ticks", "%d", &l.Ticks)
		if err != nil {
			return nil, fmt.Errorf("ticks: %v", err)
		}
		if n != 1 || l.Ticks <= 0 {
			return nil, fmt.Errorf("ticks: invalid value")
		}
	}
	if _, err := s.GetArg("sweep"); err == nil {
		n, err := s.Parse("sweep", "%f,%f", &l.Start, &l.Sweep)
		if err != nil {
			return nil, fmt.Errorf("sweep: %v", err)
		}
		if n != 2 || l.Sweep <= 0 || l.Sweep > 180 || l.Start-l.Sweep < 0 || l.Start > 180 {
			return nil, fmt.Errorf("sweep: must lie within the upper half circle")
		}
	}
	return l, nil
}
