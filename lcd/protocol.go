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

// Package lcd drives a parallel bus graphics controller.
// Drawing is done by addressing a window of the frame memory and then
// streaming 3 bytes (R, G, B) per pixel into it, row major.
package lcd

import (
	"time"
)

// OpCode is a controller command byte.
type OpCode byte

// Controller commands.
const (
	SoftwareReset       OpCode = 0x01
	DisplayOn           OpCode = 0x29
	SetRowAddress       OpCode = 0x2A // X range
	SetColumnAddress    OpCode = 0x2B // Y range
	MemoryWrite         OpCode = 0x2C
	SetAddressMode      OpCode = 0x36
	SetLCDMode          OpCode = 0xB0
	SetHorizontalPeriod OpCode = 0xB4
	SetVerticalPeriod   OpCode = 0xB6
	StartPLL            OpCode = 0xE0
	SetPLLMN            OpCode = 0xE2
	SetPixelClock       OpCode = 0xE6
	SetPixelDataFormat  OpCode = 0xF0
)

// Op is one controller operation: a command and its parameter bytes.
// Delay is the time the controller needs after the operation.
type Op struct {
	Code    OpCode
	Payload []byte
	Delay   time.Duration
}

// Word is a single bus write.
type Word struct {
	Command bool
	Value   byte
}

// Bus writes command and data bytes to the controller.
// There is no acknowledgement, so nothing can be reported back.
type Bus interface {
	Command(byte)
	Data(byte)
}

// Resetter is implemented by buses that can pulse the controller reset line.
type Resetter interface {
	Reset(time.Duration)
}

// Flusher is implemented by buses that buffer writes.
type Flusher interface {
	Flush()
}

// Encode returns the bus words for an operation.
func Encode(op Op) []Word {
	w := make([]Word, 0, len(op.Payload)+1)
	w = append(w, Word{Command: true, Value: byte(op.Code)})
	for _, b := range op.Payload {
		w = append(w, Word{Value: b})
	}
	return w
}

// RowAddress returns the operation addressing the X range.
func RowAddress(minX, maxX int) Op {
	return Op{Code: SetRowAddress, Payload: addressRange(minX, maxX)}
}

// ColumnAddress returns the operation addressing the Y range.
func ColumnAddress(minY, maxY int) Op {
	return Op{Code: SetColumnAddress, Payload: addressRange(minY, maxY)}
}

// Window returns the operations that address a window and start a
// memory write into it.
func Window(minX, minY, maxX, maxY int) []Op {
	return []Op{
		RowAddress(minX, maxX),
		ColumnAddress(minY, maxY),
		{Code: MemoryWrite},
	}
}

func addressRange(min, max int) []byte {
	return []byte{byte(min >> 8), byte(min), byte(max >> 8), byte(max)}
}

// Pixel returns the data bytes for one pixel.
func Pixel(c Color) []byte {
	return []byte{c.R(), c.G(), c.B()}
}
