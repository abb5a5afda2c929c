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

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamcrae/cluster/io"
	"github.com/aamcrae/cluster/tacho"
)

var testParams = tacho.Params{Window: 100 * time.Millisecond, Pulses: 2, Circumference: 0.5}

func TestLoadProfile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "drive.yaml")
	text := "legs:\n  - {kmh: 30, hold: 2s}\n  - {kmh: 5, reverse: true, hold: 500ms}\n"
	require.NoError(t, os.WriteFile(f, []byte(text), 0600))
	p, err := LoadProfile(f)
	require.NoError(t, err)
	want := &Profile{Legs: []Leg{
		{Kmh: 30, Hold: 2 * time.Second},
		{Kmh: 5, Reverse: true, Hold: 500 * time.Millisecond},
	}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadProfileErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", "legs: []\n"},
		{"unknown field", "legs:\n  - {kmh: 30, hold: 2s, gear: 3}\n"},
		{"no hold", "legs:\n  - {kmh: 30}\n"},
		{"negative", "legs:\n  - {kmh: -1, hold: 1s}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := filepath.Join(t.TempDir(), "drive.yaml")
			require.NoError(t, os.WriteFile(f, []byte(tt.text), 0600))
			_, err := LoadProfile(f)
			assert.Error(t, err)
		})
	}
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile(120, time.Second)
	require.Len(t, p.Legs, 9)
	assert.Equal(t, 30.0, p.Legs[0].Kmh)
	assert.Equal(t, 120.0, p.Legs[3].Kmh)
	assert.True(t, p.Legs[7].Reverse)
	assert.Equal(t, 0.0, p.Legs[8].Kmh)
}

func TestLegSteps(t *testing.T) {
	// 36 km/h on a 0.5 m wheel is 1200 rpm, 20 revolutions a second.
	rpm, steps := Leg{Kmh: 36, Hold: time.Second}.Steps(testParams)
	assert.InDelta(t, 1200.0, rpm, 1e-9)
	assert.Equal(t, 160, steps)
	_, steps = Leg{Kmh: 36, Reverse: true, Hold: time.Second}.Steps(testParams)
	assert.Equal(t, -160, steps)
	rpm, steps = Leg{Hold: time.Second}.Steps(testParams)
	assert.Equal(t, 0.0, rpm)
	assert.Equal(t, 0, steps)
}

// The generator drives the captures through the virtual pins,
// and the engine counts the reference edges and decodes the direction.
func TestPipeline(t *testing.T) {
	engine, err := tacho.NewEngine("test", testParams)
	require.NoError(t, err)
	pinA, pinB := newSimPin(), newSimPin()
	tacho.NewCapture("test", tacho.A, engine, pinA, false)
	tacho.NewCapture("test", tacho.B, engine, pinB, false)
	gen := io.NewGenerator(testParams.Pulses, pinA, pinB)
	defer gen.Close()

	run := func(l Leg) tacho.Snapshot {
		engine.OnWindowElapsed()
		engine.Update()
		rpm, steps := l.Steps(testParams)
		gen.Step(rpm, steps)
		gen.Wait()
		require.Eventually(t, func() bool {
			return len(pinA.c) == 0 && len(pinB.c) == 0
		}, time.Second, time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		engine.OnWindowElapsed()
		s, ok := engine.Update()
		require.True(t, ok)
		return s
	}
	// 32 steps is 4 revolutions, 8 rising edges on channel A.
	s := run(Leg{Kmh: 36, Hold: 200 * time.Millisecond})
	assert.Equal(t, uint32(8), s.Edges)
	assert.True(t, s.Forward)
	s = run(Leg{Kmh: 36, Reverse: true, Hold: 200 * time.Millisecond})
	assert.Equal(t, uint32(8), s.Edges)
	assert.False(t, s.Forward)
	assert.Equal(t, int64(0), gen.GetStep())
}
