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

package tacho

import (
	"fmt"
	"sync"
	"time"

	"github.com/aamcrae/cluster/io"
	"github.com/aamcrae/config"
	gpio "github.com/aamcrae/gpio"
)

// Default encoder parameters.
const (
	DefaultWindow        = 100 * time.Millisecond
	DefaultPulses        = 2
	DefaultCircumference = 0.5
)

// EncoderConfig is the configuration of the encoder, read from a configuration file.
type EncoderConfig struct {
	Gpio   [2]int // GPIO for channel A and B
	Invert bool
	Params
}

// DefaultConfig returns the encoder config used when no section is present.
func DefaultConfig() *EncoderConfig {
	return &EncoderConfig{
		Gpio: [2]int{20, 21},
		Params: Params{
			Window:        DefaultWindow,
			Pulses:        DefaultPulses,
			Circumference: DefaultCircumference,
		},
	}
}

// Config reads and validates the encoder config from the config file section.
// Any keys not present take the default values.
// Sample config:
//  [encoder]
//  gpio=20,21               # GPIOs for channel A and channel B
//  window=100ms             # Measurement window
//  pulses=2                 # Pulses per revolution on the reference channel
//  circumference=0.5        # Wheel circumference in metres
//  invert=0                 # 1 to invert the inputs
func Config(conf *config.Config) (*EncoderConfig, error) {
	e := DefaultConfig()
	s := conf.GetSection("encoder")
	if s == nil {
		return e, nil
	}
	if _, err := s.GetArg("gpio"); err == nil {
		n, err := s.Parse("gpio", "%d,%d", &e.Gpio[0], &e.Gpio[1])
		if err != nil {
			return nil, fmt.Errorf("gpio: %v", err)
		}
		if n != 2 {
			return nil, fmt.Errorf("gpio: argument count")
		}
	}
	if w, err := s.GetArg("window"); err == nil {
		e.Window, err = time.ParseDuration(w)
		if err != nil {
			return nil, fmt.Errorf("window: %v", err)
		}
		if e.Window <= 0 {
			return nil, fmt.Errorf("window: must be positive")
		}
	}
	if _, err := s.GetArg("pulses"); err == nil {
		n, err := s.Parse("pulses", "%d", &e.Pulses)
		if err != nil {
			return nil, fmt.Errorf("pulses: %v", err)
		}
		if n != 1 || e.Pulses <= 0 {
			return nil, fmt.Errorf("pulses: invalid value")
		}
	}
	if _, err := s.GetArg("circumference"); err == nil {
		n, err := s.Parse("circumference", "%f", &e.Circumference)
		if err != nil {
			return nil, fmt.Errorf("circumference: %v", err)
		}
		if n != 1 || e.Circumference <= 0 {
			return nil, fmt.Errorf("circumference: invalid value")
		}
	}
	if _, err := s.GetArg("invert"); err == nil {
		var inv int
		n, err := s.Parse("invert", "%d", &inv)
		if err != nil {
			return nil, fmt.Errorf("invert: %v", err)
		}
		if n != 1 {
			return nil, fmt.Errorf("invert: argument count")
		}
		e.Invert = inv != 0
	}
	return e, nil
}

// Sensor combines the encoder inputs, edge capture and the
// kinematics engine.
type Sensor struct {
	Engine  *Engine
	Inputs  [2]*gpio.Gpio
	Capture [2]*Capture
	Config  *EncoderConfig
	ticker  *Ticker
	done    <-chan struct{}
}

// NewSensor opens the encoder inputs and starts edge capture.
// The measurement window is started by Start.
func NewSensor(name string, ec *EncoderConfig) (*Sensor, error) {
	s := new(Sensor)
	s.Config = ec
	var err error
	s.Engine, err = NewEngine(name, ec.Params)
	if err != nil {
		return nil, err
	}
	for i, g := range ec.Gpio {
		s.Inputs[i], err = io.InputPin(g, gpio.BOTH)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("Encoder %d: %v", g, err)
		}
	}
	for i := range s.Inputs {
		s.Capture[i] = NewCapture(name, Channel(i), s.Engine, s.Inputs[i], ec.Invert)
	}
	s.done = anyDone(s.Capture[0].Done(), s.Capture[1].Done())
	return s, nil
}

// Done returns a channel that is closed when either input fails.
// The engine can no longer count or decode once this happens.
func (s *Sensor) Done() <-chan struct{} {
	return s.done
}

// anyDone returns a channel that is closed once any of chans is closed.
func anyDone(chans ...<-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	var once sync.Once
	for _, c := range chans {
		go func(c <-chan struct{}) {
			<-c
			once.Do(func() { close(done) })
		}(c)
	}
	return done
}

// Start starts the measurement window.
func (s *Sensor) Start() {
	s.ticker = NewTicker(s.Config.Window, s.Engine.OnWindowElapsed)
}

// Close stops the window and releases the inputs.
func (s *Sensor) Close() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	for _, in := range s.Inputs {
		if in != nil {
			in.Close()
		}
	}
}
