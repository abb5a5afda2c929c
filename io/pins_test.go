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
	"testing"

	gpio "github.com/aamcrae/gpio"
	"github.com/stretchr/testify/assert"
)

// The library pins drive the buses and feed the encoder capture.
var (
	_ Setter = (*gpio.Gpio)(nil)
	_ Getter = (*gpio.Gpio)(nil)
)

func TestSetters(t *testing.T) {
	pins := []*gpio.Gpio{new(gpio.Gpio), new(gpio.Gpio)}
	s := Setters(pins)
	assert.Len(t, s, 2)
	for i := range pins {
		assert.Same(t, pins[i], s[i])
	}
	assert.Empty(t, Setters(nil))
	ClosePins(nil)
}
