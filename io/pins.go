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
	"fmt"

	gpio "github.com/aamcrae/gpio"
)

// InputPin opens a GPIO as an input with edge detection set,
// so that Get waits for the selected edges.
func InputPin(n, edge int) (*gpio.Gpio, error) {
	p, err := gpio.Pin(n)
	if err != nil {
		return nil, fmt.Errorf("gpio%d: %v", n, err)
	}
	if err := p.Edge(edge); err != nil {
		p.Close()
		return nil, fmt.Errorf("gpio%d: edge: %v", n, err)
	}
	return p, nil
}

// OutputPins opens a list of GPIOs as outputs. If any pin fails,
// the pins already opened are closed.
func OutputPins(gpios []int) ([]*gpio.Gpio, error) {
	var pins []*gpio.Gpio
	for _, n := range gpios {
		p, err := gpio.OutputPin(n)
		if err != nil {
			ClosePins(pins)
			return nil, fmt.Errorf("gpio%d: %v", n, err)
		}
		pins = append(pins, p)
	}
	return pins, nil
}

// Setters returns the pins as Setters, in the same order.
func Setters(pins []*gpio.Gpio) []Setter {
	s := make([]Setter, len(pins))
	for i, p := range pins {
		s[i] = p
	}
	return s
}

// ClosePins closes and unexports each pin.
func ClosePins(pins []*gpio.Gpio) {
	for _, p := range pins {
		p.Close()
	}
}
