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

// Program to drive a quadrature test signal, for exercising an
// encoder input without turning a wheel.

package main

import (
	"flag"
	"log"
	"time"

	"github.com/aamcrae/cluster/io"
)

var gpioA = flag.Int("a", 5, "GPIO pin for channel A output")
var gpioB = flag.Int("b", 6, "GPIO pin for channel B output")
var pulses = flag.Int("pulses", 2, "Pulses per revolution")
var rpm = flag.Float64("rpm", 600.0, "RPM")
var steps = flag.Int("steps", 400, "Steps in each direction")
var cycles = flag.Int("cycles", 5, "Number of forward and reverse runs")

func main() {
	flag.Parse()
	pins, err := io.OutputPins([]int{*gpioA, *gpioB})
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer io.ClosePins(pins)
	gen := io.NewGenerator(*pulses, pins[0], pins[1])
	defer gen.Close()
	now := time.Now()
	st := *steps
	for i := 0; i < *cycles*2; i++ {
		gen.Step(*rpm, st)
		st = -st
	}
	log.Printf("Waiting for completion")
	gen.Wait()
	log.Printf("Elapsed = %s, step = %d", time.Since(now), gen.GetStep())
}
