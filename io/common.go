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

// Package io provides the hardware leaves of the instrument cluster:
// GPIO pin helpers for the encoder inputs, the buses that carry
// command and data bytes to the display controller, and a quadrature
// signal generator for driving test rigs and the simulator.
// The pins themselves are github.com/aamcrae/gpio pins.
package io

// Setter is an interface for setting an output value on a GPIO
type Setter interface {
	Set(int) error
}

// Getter returns an input value. If the input is edge triggered,
// Get blocks until the input changes.
type Getter interface {
	Get() (int, error)
}
