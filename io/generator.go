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

package io

import (
	"sync/atomic"
	"time"
)

const generatorQueueSize = 20 // Size of queue for requests

type msg struct {
	rpm   float64
	steps int
	sync  chan bool
}

// Generator produces a two channel quadrature signal, as if from
// an encoder on a rotating wheel.
// All output is done in a background goroutine, so requests can be queued.
// A step is one state change of the Gray sequence, so there are
// 4 steps for every pulse on a channel.
// The current step number is maintained as an absolute number, referenced from
// 0 when the generator is first initialised. This can be a negative or positive number,
// depending on the direction.
type Generator struct {
	pinA, pinB Setter    // Channel outputs
	factor     float64   // Nanoseconds per revolution at 1 RPM, per step
	mChan      chan msg  // channel for message requests
	stopChan   chan bool // channel for signalling resets.
	index      int       // Index to step sequence
	current    int64     // Current step number as an absolute number
	lastA      int       // Last value written to channel A, -1 if none
	lastB      int       // Last value written to channel B, -1 if none
}

// Forward quadrature sequence of outputs (A, B).
// Channel A leads channel B by a quarter cycle.
var sequence = [][2]int{
	{0, 0},
	{1, 0},
	{1, 1},
	{0, 1},
}

// NewGenerator creates and initialises a Generator, driving
// the two channel outputs.
// pulses is the number of pulses per revolution on each channel.
func NewGenerator(pulses int, pinA, pinB Setter) *Generator {
	g := new(Generator)
	// Precalculate a timing factor so that a RPM value can be used
	// to calculate the per-step delay.
	g.factor = float64(time.Second.Nanoseconds()*60) / float64(pulses*len(sequence))
	g.pinA = pinA
	g.pinB = pinB
	g.mChan = make(chan msg, generatorQueueSize)
	g.stopChan = make(chan bool)
	g.lastA = -1
	g.lastB = -1
	g.output()
	go g.handler()
	return g
}

// Close stops the generator and frees any resources.
func (g *Generator) Close() {
	g.Stop()
	close(g.mChan)
	close(g.stopChan)
}

// GetStep returns the current step number, which is an accumulative
// signed value representing the steps moved, with 0 as the starting location.
func (g *Generator) GetStep() int64 {
	return atomic.LoadInt64(&g.current)
}

// Stop aborts any current output, and flushes all queued requests.
func (g *Generator) Stop() {
	g.stopChan <- true
	g.Wait()
}

// Step queues a request to run the signal at the RPM selected for the
// number of steps.
// If steps is positive, then the sequence runs forward, otherwise in reverse.
// A number of requests can be queued.
func (g *Generator) Step(rpm float64, steps int) {
	if steps != 0 && rpm > 0.0 {
		g.mChan <- msg{rpm: rpm, steps: steps}
	}
}

// Wait waits for all requests to complete
func (g *Generator) Wait() {
	c := make(chan bool)
	g.mChan <- msg{rpm: 0, steps: 0, sync: c}
	<-c
}

// goroutine handler
// Listens on message channel, and runs the outputs.
func (g *Generator) handler() {
	for {
		select {
		case m := <-g.mChan:
			if m.steps != 0 {
				if g.step(m.rpm, m.steps) {
					return
				}
			}
			if m.sync != nil {
				// If sync channel is present, signal it.
				m.sync <- true
				close(m.sync)
			}
		case stop := <-g.stopChan:
			// Request to stop and flush all requests
			g.flush()
			if !stop {
				return
			}
		}
	}
}

// step drives the outputs through the requested number of steps.
// Once started, a stop channel is used to abort the sequence.
func (g *Generator) step(rpm float64, steps int) bool {
	inc := 1
	if steps < 0 {
		inc = -1
		steps = -steps
	}
	delay := time.Duration(g.factor / rpm)
	if delay <= 0 {
		delay = time.Microsecond
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()
	for i := 0; i < steps; i++ {
		g.index = (g.index + inc) & 3
		g.output()
		atomic.AddInt64(&g.current, int64(inc))
		select {
		case stop := <-g.stopChan:
			g.flush()
			if stop {
				// Abort current loop
				return false
			} else {
				// channel is closed, so kill handler.
				return true
			}
		case <-ticker.C:
		}
	}
	return false
}

// Flush all remaining actions from message channel.
func (g *Generator) flush() {
	for {
		select {
		case m := <-g.mChan:
			if m.sync != nil {
				m.sync <- true
				close(m.sync)
			} else if m.steps == 0 && m.rpm == 0.0 {
				// nil msg, channel has been closed.
				return
			}
		default:
			return
		}
	}
}

// Set the outputs according to the current sequence index.
// Only the channel that changes is written, so each step
// produces exactly one edge.
func (g *Generator) output() {
	seq := sequence[g.index]
	if seq[0] != g.lastA {
		g.pinA.Set(seq[0])
		g.lastA = seq[0]
	}
	if seq[1] != g.lastB {
		g.pinB.Set(seq[1])
		g.lastB = seq[1]
	}
}
