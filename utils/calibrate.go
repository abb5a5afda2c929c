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

// Calibration utility.
// Counts the reference channel pulses while the wheel is turned
// by hand, to find the pulses per revolution and the direction sense.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aamcrae/cluster/tacho"
	"github.com/aamcrae/config"
)

var configFile = flag.String("config", "cluster.conf", "Configuration file")
var turns = flag.Int("turns", 10, "Number of wheel revolutions to count")

func main() {
	flag.Parse()
	conf, err := config.ParseFile(*configFile)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	ec, err := tacho.Config(conf)
	if err != nil {
		log.Fatalf("%s: %v", *configFile, err)
	}
	if *turns <= 0 {
		log.Fatalf("turns: must be positive")
	}
	sensor, err := tacho.NewSensor("calibrate", ec)
	if err != nil {
		log.Fatalf("encoder: %v", err)
	}
	defer sensor.Close()
	// The window is closed by hand rather than by the ticker.
	e := sensor.Engine
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("Line up the wheel with a mark and press Enter ('q' to quit) ")
		text, _ := reader.ReadString('\n')
		if text == "q\n" {
			return
		}
		e.OnWindowElapsed()
		e.Update()
		fmt.Printf("Turn the wheel forward %d times back to the mark, then press Enter ", *turns)
		reader.ReadString('\n')
		e.OnWindowElapsed()
		s, ok := e.Update()
		if !ok {
			fmt.Println("No measurement")
			continue
		}
		p := float64(s.Edges) / float64(*turns)
		fmt.Printf("Counted %d pulses, %.2f per revolution (configured %d)\n", s.Edges, p, ec.Pulses)
		if s.Edges > 0 && !s.Forward {
			fmt.Println("Rotation was decoded as reverse: swap the channel GPIOs")
		}
		fmt.Printf("Suggested config: pulses=%.0f\n", p)
	}
}
