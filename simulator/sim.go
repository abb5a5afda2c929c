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

// Simulator cluster program.
// A simulated wheel drives the encoder inputs, and the gauge is
// rendered onto a virtual panel served over HTTP.

package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/aamcrae/cluster/gauge"
	"github.com/aamcrae/cluster/io"
	"github.com/aamcrae/cluster/lcd"
	"github.com/aamcrae/cluster/panel"
	"github.com/aamcrae/cluster/tacho"
)

var port = flag.Int("port", 8080, "Web server port number")
var verbose = flag.Bool("verbose", false, "Log each measurement window")
var pulses = flag.Int("pulses", tacho.DefaultPulses, "Encoder pulses per revolution")
var circumference = flag.Float64("circumference", tacho.DefaultCircumference, "Wheel circumference in metres")
var window = flag.Duration("window", tacho.DefaultWindow, "Measurement window")
var refresh = flag.Duration("refresh", 50*time.Millisecond, "Display refresh period")
var top = flag.Float64("speed", 120, "Top speed of the drive, km/h")
var segment = flag.Duration("segment", 2*time.Second, "Duration of each speed step")
var profileFile = flag.String("profile", "", "YAML drive profile, replacing the default drive")

// simPin is a virtual GPIO connecting a generator output to a capture input.
type simPin struct {
	c chan int
}

func newSimPin() *simPin {
	return &simPin{c: make(chan int, 100)}
}

// Set is called by the generator.
func (p *simPin) Set(v int) error {
	p.c <- v
	return nil
}

// Get is called by the capture goroutine, and waits for the next level.
func (p *simPin) Get() (int, error) {
	return <-p.c, nil
}

func main() {
	flag.Parse()
	params := tacho.Params{Window: *window, Pulses: *pulses, Circumference: *circumference}
	profile := DefaultProfile(*top, *segment)
	if *profileFile != "" {
		var err error
		profile, err = LoadProfile(*profileFile)
		if err != nil {
			log.Fatalf("profile: %v", err)
		}
	}
	engine, err := tacho.NewEngine("sim", params)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	pinA, pinB := newSimPin(), newSimPin()
	tacho.NewCapture("sim", tacho.A, engine, pinA, false)
	tacho.NewCapture("sim", tacho.B, engine, pinB, false)
	gen := io.NewGenerator(*pulses, pinA, pinB)
	defer gen.Close()

	dc := lcd.DefaultConfig()
	p := panel.New(dc.Width, dc.Height)
	ctl := lcd.NewController(p, dc.Width, dc.Height)
	ctl.Init()
	r := gauge.NewRenderer(ctl, gauge.DefaultLayout())
	r.Clear()
	r.Odometer(0)
	go func() {
		log.Fatal(p.Serve(fmt.Sprintf(":%d", *port)))
	}()

	go drive(gen, params, profile)
	wt := tacho.NewTicker(params.Window, engine.OnWindowElapsed)
	defer wt.Stop()
	var ready tacho.Flag
	dt := tacho.NewTicker(*refresh, ready.Raise)
	defer dt.Stop()
	latest := engine.Latest()
	for {
		if s, ok := engine.Update(); ok {
			latest = s
			r.Odometer(s.DistanceKm)
			if *verbose {
				log.Print(s)
			}
		}
		if ready.Take() {
			r.Frame(latest)
		}
		time.Sleep(time.Millisecond)
	}
}

// drive runs the wheel through the profile, repeating it forever.
func drive(gen *io.Generator, params tacho.Params, p *Profile) {
	for {
		for _, l := range p.Legs {
			rpm, steps := l.Steps(params)
			if steps == 0 {
				time.Sleep(l.Hold)
				continue
			}
			gen.Step(rpm, steps)
			gen.Wait()
		}
	}
}
