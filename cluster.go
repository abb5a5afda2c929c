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

// Instrument cluster program.
// Reads a quadrature wheel encoder and shows speed, direction and
// distance on a speedometer gauge.

package main

import (
	"flag"
	"log"
	"time"

	"github.com/aamcrae/cluster/gauge"
	"github.com/aamcrae/cluster/lcd"
	"github.com/aamcrae/cluster/tacho"
	"github.com/aamcrae/config"
)

var configFile = flag.String("config", "cluster.conf", "Configuration file")
var verbose = flag.Bool("verbose", false, "Log each measurement window")
var poll = flag.Duration("poll", time.Millisecond, "Main loop poll interval")

func main() {
	flag.Parse()
	conf, err := config.ParseFile(*configFile)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	ec, err := tacho.Config(conf)
	if err != nil {
		log.Fatalf("encoder: %v", err)
	}
	dc, err := lcd.Config(conf)
	if err != nil {
		log.Fatalf("display: %v", err)
	}
	gl, err := gauge.Config(conf)
	if err != nil {
		log.Fatalf("gauge: %v", err)
	}
	sensor, err := tacho.NewSensor("encoder", ec)
	if err != nil {
		log.Fatalf("encoder: %v", err)
	}
	defer sensor.Close()
	ctl, closeBus, err := lcd.Open(dc)
	if err != nil {
		log.Fatalf("display: %v", err)
	}
	defer closeBus()
	ctl.Init()
	r := gauge.NewRenderer(ctl, gl)
	r.Clear()
	r.Odometer(0)

	var refresh tacho.Flag
	display := tacho.NewTicker(dc.Refresh, refresh.Raise)
	defer display.Stop()
	sensor.Start()
	latest := sensor.Engine.Latest()
	for {
		select {
		case <-sensor.Done():
			sensor.Close()
			closeBus()
			log.Fatalf("encoder: input failed")
		default:
		}
		if s, ok := sensor.Engine.Update(); ok {
			latest = s
			r.Odometer(s.DistanceKm)
			if *verbose {
				log.Print(s)
			}
		}
		if refresh.Take() {
			r.Frame(latest)
		}
		time.Sleep(*poll)
	}
}
