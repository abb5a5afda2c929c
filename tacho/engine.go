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

package tacho

import (
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// DistanceCeiling is the largest distance the odometer can show, in km.
const DistanceCeiling = 999.99

// Metres per minute to km/h.
const unitScale = 0.06

// Bits of the latched window word.
const (
	latchForward = 1 << 32
	latchValid   = 1 << 33
)

// Params holds the fixed measurement parameters.
type Params struct {
	Window        time.Duration // Measurement window
	Pulses        int           // Reference channel pulses per revolution
	Circumference float64       // Wheel circumference in metres
}

// Snapshot is the result of one measurement window.
// All fields are derived from the same window count.
type Snapshot struct {
	Edges          uint32  // Reference edges counted in the window
	RPM            float64 // Revolutions per minute
	SpeedCentiKmh  int     // Speed in km/h * 100
	Forward        bool    // Direction of travel
	DistanceKm     float64 // Total distance travelled
	DistanceCapped bool    // Distance has reached DistanceCeiling
}

// Kmh returns the speed in km/h.
func (s Snapshot) Kmh() float64 {
	return float64(s.SpeedCentiKmh) / 100
}

// String formats the snapshot as a single status line.
func (s Snapshot) String() string {
	dir := "R"
	if s.Forward {
		dir = "F"
	}
	centi := int64(math.Floor(s.DistanceKm*100 + 1e-6))
	return fmt.Sprintf("RPM: %d, Speed: %d.%02d km/h, Direction: %s, Distance: %03d,%02d km",
		int(s.RPM), s.SpeedCentiKmh/100, s.SpeedCentiKmh%100, dir, centi/100, centi%100)
}

// Engine is the kinematics engine.
// OnEdge is called from the edge capture context for each channel,
// and OnWindowElapsed from the periodic window context. These never block
// for long, and only touch the quadrature state, the window counter
// and the latched window word.
// Update, ComputeSnapshot and Latest must only be called from the
// single main context; the running distance is owned by that context.
type Engine struct {
	Name    string
	params  Params
	seconds float64

	critical   sync.Mutex // Held across the read-modify-write of the quadrature state
	curA, curB bool

	count   atomic.Uint32 // Reference edges in the current window
	forward atomic.Bool   // Most recent decoder output
	latched atomic.Uint64 // Count and direction of the last closed window

	last     Snapshot
	distance float64
	capped   bool
}

// NewEngine creates a kinematics engine.
func NewEngine(name string, p Params) (*Engine, error) {
	if p.Window <= 0 {
		return nil, fmt.Errorf("%s: invalid window %s", name, p.Window)
	}
	if p.Pulses <= 0 {
		return nil, fmt.Errorf("%s: invalid pulses per revolution %d", name, p.Pulses)
	}
	if p.Circumference <= 0 {
		return nil, fmt.Errorf("%s: invalid circumference %f", name, p.Circumference)
	}
	e := new(Engine)
	e.Name = name
	e.params = p
	e.seconds = p.Window.Seconds()
	e.forward.Store(true)
	e.last.Forward = true
	return e, nil
}

// Params returns the measurement parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Prime sets the initial level of a channel without treating it as an edge.
func (e *Engine) Prime(ch Channel, level bool) {
	e.critical.Lock()
	defer e.critical.Unlock()
	if ch == A {
		e.curA = level
	} else {
		e.curB = level
	}
}

// OnEdge records a new level on a channel.
// Rising edges of the reference channel are counted, and the
// direction is decoded on every edge of either channel.
func (e *Engine) OnEdge(ch Channel, level bool) {
	e.critical.Lock()
	prevA, prevB := e.curA, e.curB
	if ch == A {
		e.curA = level
	} else {
		e.curB = level
	}
	if ch == Reference && level {
		e.count.Add(1)
	}
	e.forward.Store(Decode(prevA, prevB, e.curA, e.curB))
	e.critical.Unlock()
}

// OnWindowElapsed closes the current measurement window.
// The counter is fetched and zeroed in one exchange, and latched
// together with the current direction for the main context to consume.
// If the previous window was never consumed, it is replaced.
func (e *Engine) OnWindowElapsed() {
	w := uint64(e.count.Swap(0)) | latchValid
	if e.forward.Load() {
		w |= latchForward
	}
	e.latched.Store(w)
}

// Ready returns true if a closed window is waiting to be consumed.
func (e *Engine) Ready() bool {
	return e.latched.Load()&latchValid != 0
}

// Forward returns the most recent decoder output.
func (e *Engine) Forward() bool {
	return e.forward.Load()
}

// Update consumes the latched window, if any, and returns the new
// snapshot. If no window has closed since the last call, the previous
// snapshot is returned with false.
func (e *Engine) Update() (Snapshot, bool) {
	w := e.latched.Swap(0)
	if w&latchValid == 0 {
		return e.last, false
	}
	return e.compute(uint32(w), e.seconds, w&latchForward != 0), true
}

// Latest returns the most recently computed snapshot.
func (e *Engine) Latest() Snapshot {
	return e.last
}

// ComputeSnapshot converts a window count into a snapshot, adding the
// distance covered in the window to the running total.
// The direction is the current decoder output.
func (e *Engine) ComputeSnapshot(edges uint32, windowSeconds float64) Snapshot {
	return e.compute(edges, windowSeconds, e.forward.Load())
}

func (e *Engine) compute(edges uint32, seconds float64, forward bool) Snapshot {
	rpm, kmh := Rate(edges, seconds, e.params.Pulses, e.params.Circumference)
	s := Snapshot{
		Edges:         edges,
		RPM:           rpm,
		SpeedCentiKmh: int(math.Round(kmh * 100)),
		Forward:       forward,
	}
	if edges == 0 {
		// No movement, so keep the last known direction.
		s.Forward = e.last.Forward
	}
	e.accumulate(kmh * seconds / 3600)
	s.DistanceKm = e.distance
	s.DistanceCapped = e.capped
	e.last = s
	return s
}

// accumulate adds to the distance, saturating at the ceiling.
// Once capped the distance is frozen.
func (e *Engine) accumulate(km float64) {
	if e.capped || !(km > 0) {
		return
	}
	e.distance += km
	if e.distance >= DistanceCeiling {
		e.distance = DistanceCeiling
		e.capped = true
		log.Printf("%s: Distance capped at %.2f km", e.Name, DistanceCeiling)
	}
}

// Rate converts a count of reference edges over a period into
// revolutions per minute and speed in km/h.
// A period that is not positive yields no rate.
func Rate(edges uint32, seconds float64, pulses int, circumference float64) (rpm, kmh float64) {
	if edges == 0 || !(seconds > 0) {
		return 0, 0
	}
	rpm = (float64(edges) / seconds) * (60 / float64(pulses))
	kmh = rpm * circumference * unitScale
	return rpm, kmh
}
