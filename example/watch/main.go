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

// Program to watch the encoder inputs and show the decoded direction.

package main

import (
	"flag"
	"log"
	"sync"

	"github.com/aamcrae/cluster/io"
	"github.com/aamcrae/cluster/tacho"
	gpio "github.com/aamcrae/gpio"
)

var gpioA = flag.Int("a", 20, "GPIO pin for encoder channel A")
var gpioB = flag.Int("b", 21, "GPIO pin for encoder channel B")

// watcher logs each level change along with the decoded direction.
// Both capture goroutines call it.
type watcher struct {
	mu    sync.Mutex
	level [2]bool
}

func (w *watcher) Prime(ch tacho.Channel, v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.level[ch] = v
	log.Printf("%s initial level %t", ch, v)
}

func (w *watcher) OnEdge(ch tacho.Channel, v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cur := w.level
	cur[ch] = v
	dir := "reverse"
	if tacho.Decode(w.level[tacho.A], w.level[tacho.B], cur[tacho.A], cur[tacho.B]) {
		dir = "forward"
	}
	log.Printf("%s = %t, A/B %t/%t -> %t/%t, %s", ch, v, w.level[tacho.A], w.level[tacho.B], cur[tacho.A], cur[tacho.B], dir)
	w.level = cur
}

func main() {
	flag.Parse()
	w := new(watcher)
	var pins []*gpio.Gpio
	var caps []*tacho.Capture
	for i, g := range []int{*gpioA, *gpioB} {
		p, err := io.InputPin(g, gpio.BOTH)
		if err != nil {
			io.ClosePins(pins)
			log.Fatalf("Pin %d: %v", g, err)
		}
		pins = append(pins, p)
		caps = append(caps, tacho.NewCapture("watch", tacho.Channel(i), w, p, false))
	}
	var failed tacho.Channel
	select {
	case <-caps[0].Done():
		failed = tacho.A
	case <-caps[1].Done():
		failed = tacho.B
	}
	io.ClosePins(pins)
	log.Fatalf("Channel %s input failed", failed)
}
