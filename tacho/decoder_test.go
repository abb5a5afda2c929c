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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name                     string
		prevA, prevB, curA, curB bool
		forward                  bool
	}{
		{"11 to 01", true, true, false, true, true},
		{"01 to 00", false, true, false, false, true},
		{"00 to 10", false, false, true, false, true},
		{"10 to 11", true, false, true, true, true},
		{"00 to 01", false, false, false, true, false},
		{"01 to 11", false, true, true, true, false},
		{"11 to 10", true, true, true, false, false},
		{"10 to 00", true, false, false, false, false},
		{"no change", true, true, true, true, false},
		{"double change", false, false, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.forward, Decode(tt.prevA, tt.prevB, tt.curA, tt.curB))
		})
	}
}

func TestChannelString(t *testing.T) {
	assert.Equal(t, "A", A.String())
	assert.Equal(t, "B", B.String())
}
