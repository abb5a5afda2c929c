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
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aamcrae/cluster/tacho"
)

// Leg is one part of a simulated drive.
type Leg struct {
	Kmh     float64       `yaml:"kmh"`
	Reverse bool          `yaml:"reverse,omitempty"`
	Hold    time.Duration `yaml:"hold"`
}

// Profile is a drive that is repeated for as long as the simulator runs.
// Sample profile:
//  legs:
//    - {kmh: 30, hold: 2s}
//    - {kmh: 60, hold: 5s}
//    - {kmh: 0, hold: 1s}
//    - {kmh: 5, reverse: true, hold: 2s}
type Profile struct {
	Legs []Leg `yaml:"legs"`
}

// DefaultProfile accelerates to the top speed in four steps,
// slows to a stop, then backs up slowly.
func DefaultProfile(top float64, hold time.Duration) *Profile {
	p := new(Profile)
	for i := 1; i <= 4; i++ {
		p.Legs = append(p.Legs, Leg{Kmh: top * float64(i) / 4, Hold: hold})
	}
	for i := 3; i >= 1; i-- {
		p.Legs = append(p.Legs, Leg{Kmh: top * float64(i) / 4, Hold: hold})
	}
	p.Legs = append(p.Legs, Leg{Kmh: 5, Reverse: true, Hold: hold}, Leg{Hold: hold})
	return p
}

// LoadProfile reads a drive profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	p := new(Profile)
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	if len(p.Legs) == 0 {
		return nil, fmt.Errorf("%s: no legs in profile", path)
	}
	for i, l := range p.Legs {
		if l.Kmh < 0 || l.Hold <= 0 {
			return nil, fmt.Errorf("%s: leg %d: speed must not be negative and hold must be positive", path, i)
		}
	}
	return p, nil
}

// Steps returns the generator RPM and signed step count that drives the
// wheel at the leg's speed for the hold time.
func (l Leg) Steps(params tacho.Params) (rpm float64, steps int) {
	if l.Kmh <= 0 {
		return 0, 0
	}
	// km/h = rpm * circumference * 0.06
	rpm = l.Kmh / (params.Circumference * 0.06)
	steps = int(rpm / 60 * l.Hold.Seconds() * float64(params.Pulses*4))
	if l.Reverse {
		steps = -steps
	}
	return rpm, steps
}
