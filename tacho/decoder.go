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

// Package tacho measures wheel rotation from a two channel quadrature
// encoder. Edges are counted over a fixed measurement window and
// converted into speed, direction and travelled distance.
package tacho

// Channel identifies one of the two encoder outputs.
type Channel int

const (
	A Channel = iota
	B
)

// Reference is the channel whose rising edges are counted.
const Reference = A

func (c Channel) String() string {
	if c == A {
		return "A"
	}
	return "B"
}

// Decode returns true if the transition from (prevA, prevB) to
// (curA, curB) is one step of forward rotation.
// Forward rotation walks the Gray sequence 00 -> 10 -> 11 -> 01 -> 00,
// i.e channel A leads channel B.
// Any other transition, including no change or a double change
// caused by a missed edge, is reported as reverse.
func Decode(prevA, prevB, curA, curB bool) bool {
	switch {
	case prevA && prevB && !curA && curB:
		return true
	case !prevA && prevB && !curA && !curB:
		return true
	case !prevA && !prevB && curA && !curB:
		return true
	case prevA && !prevB && curA && curB:
		return true
	}
	return false
}
