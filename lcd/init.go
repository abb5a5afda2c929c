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

package lcd

import (
	"time"
)

// Hardware reset pulse width.
const resetPulse = 2 * time.Millisecond

// InitSequence returns the fixed controller start up sequence for a
// 24 bit TFT panel of the given resolution, clocked from a 120 MHz PLL.
func InitSequence(width, height int) []Op {
	w := width - 1
	h := height - 1
	return []Op{
		{Code: SoftwareReset, Delay: 10 * time.Millisecond},
		{Code: SetPLLMN, Payload: []byte{0x24, 0x02, 0x04}},
		{Code: StartPLL, Payload: []byte{0x01}, Delay: time.Millisecond}, // Start
		{Code: StartPLL, Payload: []byte{0x03}, Delay: time.Millisecond}, // Lock
		{Code: SoftwareReset, Delay: 10 * time.Millisecond},
		// 9 MHz pixel clock.
		{Code: SetPixelClock, Payload: []byte{0x01, 0x70, 0xA3}},
		// 24 bit TFT, TFT mode, size, RGB order on even and odd lines.
		{Code: SetLCDMode, Payload: []byte{0x20, 0x00, byte(w >> 8), byte(w), byte(h >> 8), byte(h), 0x00}},
		// Total 862, non-display 70, sync width 9, sync start 8.
		{Code: SetHorizontalPeriod, Payload: []byte{0x03, 0x5E, 0x00, 0x46, 0x09, 0x00, 0x08, 0x00}},
		// Total 510 lines, non-display 12, sync width 10, sync start 4.
		{Code: SetVerticalPeriod, Payload: []byte{0x01, 0xFE, 0x00, 0x0C, 0x0A, 0x00, 0x04}},
		// Flipped addressing, matching the touch panel axes.
		{Code: SetAddressMode, Payload: []byte{0x03}},
		// 8 bit pixel data interface.
		{Code: SetPixelDataFormat, Payload: []byte{0x00}},
		{Code: DisplayOn},
	}
}
