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
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edge struct {
	ch    Channel
	level bool
}

// One forward cycle from 00: A rises, B rises, A falls, B falls.
var forwardCycle = []edge{{A, true}, {B, true}, {A, false}, {B, false}}

// One reverse cycle from 00: B rises, A rises, B falls, A falls.
var reverseCycle = []edge{{B, true}, {A, true}, {B, false}, {A, false}}

func newEngine(t *testing.T, window time.Duration, pulses int, circ float64) *Engine {
	e, err := NewEngine("test", Params{Window: window, Pulses: pulses, Circumference: circ})
	require.NoError(t, err)
	return e
}

func feed(e *Engine, edges []edge, cycles int) {
	for i := 0; i < cycles; i++ {
		for _, ed := range edges {
			e.OnEdge(ed.ch, ed.level)
		}
	}
}

func TestNewEngineValidation(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"zero window", Params{0, 2, 0.5}},
		{"zero pulses", Params{time.Second, 0, 0.5}},
		{"negative circumference", Params{time.Second, 2, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine("test", tt.p)
			assert.Error(t, err)
		})
	}
}

func TestOnEdgeDirection(t *testing.T) {
	e := newEngine(t, 100*time.Millisecond, 2, 0.5)
	for i, ed := range forwardCycle {
		e.OnEdge(ed.ch, ed.level)
		assert.True(t, e.Forward(), "forward edge %d", i)
	}
	for i, ed := range reverseCycle {
		e.OnEdge(ed.ch, ed.level)
		assert.False(t, e.Forward(), "reverse edge %d", i)
	}
	// Back to forward after a single forward step.
	e.OnEdge(A, true)
	assert.True(t, e.Forward())
}

func TestCountsReferenceRisingEdges(t *testing.T) {
	e := newEngine(t, 100*time.Millisecond, 2, 0.5)
	feed(e, forwardCycle, 5)
	feed(e, reverseCycle, 3)
	e.OnWindowElapsed()
	s, ok := e.Update()
	require.True(t, ok)
	assert.Equal(t, uint32(8), s.Edges)
}

func TestWindowSpeed(t *testing.T) {
	// 20 reference edges in 100ms at 2 pulses per revolution is 6000 RPM,
	// on a 0.5m wheel that is 180 km/h.
	e := newEngine(t, 100*time.Millisecond, 2, 0.5)
	feed(e, forwardCycle, 20)
	assert.True(t, !e.Ready())
	e.OnWindowElapsed()
	assert.True(t, e.Ready())
	s, ok := e.Update()
	require.True(t, ok)
	assert.False(t, e.Ready())
	assert.Equal(t, uint32(20), s.Edges)
	assert.InDelta(t, 6000.0, s.RPM, 1e-6)
	assert.Equal(t, 18000, s.SpeedCentiKmh)
	assert.InDelta(t, 180.0, s.Kmh(), 1e-9)
	assert.True(t, s.Forward)
	assert.InDelta(t, 180.0*0.1/3600, s.DistanceKm, 1e-12)
	assert.Equal(t, s, e.Latest())
}

func TestComputeSnapshotRates(t *testing.T) {
	tests := []struct {
		name    string
		edges   uint32
		seconds float64
		rpm     float64
		centi   int
	}{
		{"200 edges in 1s", 200, 1.0, 6000, 18000},
		{"200 edges in 100ms", 200, 0.1, 60000, 180000},
		{"1 edge in 100ms", 1, 0.1, 300, 900},
		{"no edges", 0, 0.1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, 100*time.Millisecond, 2, 0.5)
			s := e.ComputeSnapshot(tt.edges, tt.seconds)
			assert.InDelta(t, tt.rpm, s.RPM, 1e-6)
			assert.Equal(t, tt.centi, s.SpeedCentiKmh)
		})
	}
}

func TestNonPositivePeriod(t *testing.T) {
	e := newEngine(t, 100*time.Millisecond, 2, 0.5)
	s := e.ComputeSnapshot(200, 0.1)
	dist := s.DistanceKm
	require.Greater(t, dist, 0.0)
	for _, sec := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		s = e.ComputeSnapshot(5, sec)
		assert.Zero(t, s.RPM, "seconds %v", sec)
		assert.Zero(t, s.SpeedCentiKmh, "seconds %v", sec)
		assert.Equal(t, dist, s.DistanceKm, "seconds %v", sec)
		assert.False(t, math.IsNaN(s.DistanceKm))
	}
	// Later windows still accumulate.
	s = e.ComputeSnapshot(200, 0.1)
	assert.InDelta(t, 2*dist, s.DistanceKm, 1e-12)
	rpm, kmh := Rate(5, 0, 2, 0.5)
	assert.Zero(t, rpm)
	assert.Zero(t, kmh)
}

func TestZeroWindowKeepsDirection(t *testing.T) {
	e := newEngine(t, 100*time.Millisecond, 2, 0.5)
	feed(e, forwardCycle, 3)
	e.OnWindowElapsed()
	s, _ := e.Update()
	require.True(t, s.Forward)
	// A lone edge on B decodes as reverse, but is not counted.
	e.OnEdge(B, true)
	require.False(t, e.Forward())
	e.OnWindowElapsed()
	s, ok := e.Update()
	require.True(t, ok)
	assert.Zero(t, s.Edges)
	assert.Zero(t, s.RPM)
	assert.Zero(t, s.SpeedCentiKmh)
	assert.True(t, s.Forward, "direction unchanged in an empty window")
}

func TestUpdateWithoutWindow(t *testing.T) {
	e := newEngine(t, 100*time.Millisecond, 2, 0.5)
	s, ok := e.Update()
	assert.False(t, ok)
	assert.True(t, s.Forward)
	assert.Zero(t, s.DistanceKm)
}

func TestDirectionLatchedAtWindowClose(t *testing.T) {
	e := newEngine(t, 100*time.Millisecond, 2, 0.5)
	feed(e, reverseCycle, 4)
	e.OnWindowElapsed()
	// Edges after the window closes belong to the next window.
	feed(e, forwardCycle, 2)
	s, ok := e.Update()
	require.True(t, ok)
	assert.False(t, s.Forward)
	assert.Equal(t, uint32(4), s.Edges)
	e.OnWindowElapsed()
	s, ok = e.Update()
	require.True(t, ok)
	assert.True(t, s.Forward)
	assert.Equal(t, uint32(2), s.Edges)
}

func TestDistanceSaturates(t *testing.T) {
	e := newEngine(t, 100*time.Millisecond, 2, 0.5)
	last := 0.0
	var s Snapshot
	for i := 0; i < 1000 && !s.DistanceCapped; i++ {
		// 180000 km/h, 5 km per window.
		s = e.ComputeSnapshot(20000, 0.1)
		require.GreaterOrEqual(t, s.DistanceKm, last)
		last = s.DistanceKm
	}
	require.True(t, s.DistanceCapped)
	assert.Equal(t, DistanceCeiling, s.DistanceKm)
	bits := math.Float64bits(s.DistanceKm)
	for i := 0; i < 10; i++ {
		s = e.ComputeSnapshot(20000, 0.1)
		assert.True(t, s.DistanceCapped)
		assert.Equal(t, bits, math.Float64bits(s.DistanceKm))
	}
	s = e.ComputeSnapshot(0, 0.1)
	assert.Equal(t, bits, math.Float64bits(s.DistanceKm))
}

func TestDistanceAccumulates(t *testing.T) {
	e := newEngine(t, time.Second, 1, 1.0)
	// 1 edge/s at 1 pulse per revolution on a 1m wheel is 3.6 km/h.
	var s Snapshot
	for i := 0; i < 3600; i++ {
		s = e.ComputeSnapshot(1, 1.0)
	}
	assert.Equal(t, 360, s.SpeedCentiKmh)
	assert.InDelta(t, 3.6, s.DistanceKm, 1e-9)
	assert.False(t, s.DistanceCapped)
}

func TestConcurrentWindows(t *testing.T) {
	e := newEngine(t, 100*time.Millisecond, 2, 0.5)
	const cycles = 20000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		feed(e, forwardCycle, cycles)
	}()
	total := uint32(0)
	stop := make(chan struct{})
	go func() {
		wg.Wait()
		close(stop)
	}()
	for done := false; !done; {
		select {
		case <-stop:
			done = true
		default:
		}
		e.OnWindowElapsed()
		s, ok := e.Update()
		require.True(t, ok)
		total += s.Edges
	}
	e.OnWindowElapsed()
	s, _ := e.Update()
	total += s.Edges
	assert.Equal(t, uint32(cycles), total, "no edges lost or counted twice")
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{RPM: 6000.4, SpeedCentiKmh: 18005, Forward: false, DistanceKm: 12.5}
	assert.Equal(t, "RPM: 6000, Speed: 180.05 km/h, Direction: R, Distance: 012,50 km", s.String())
}
