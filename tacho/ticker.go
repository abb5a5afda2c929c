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
	"sync/atomic"
	"time"
)

// Ticker is a periodic tick source. The handler is called from the
// ticker goroutine, so it must not block.
type Ticker struct {
	ticker *time.Ticker
	stop   chan struct{}
	done   chan struct{}
}

// NewTicker starts calling f every period.
func NewTicker(period time.Duration, f func()) *Ticker {
	t := new(Ticker)
	t.ticker = time.NewTicker(period)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.run(f)
	return t
}

// Stop stops the ticker. No calls to the handler are made once Stop returns.
func (t *Ticker) Stop() {
	t.ticker.Stop()
	close(t.stop)
	<-t.done
}

func (t *Ticker) run(f func()) {
	defer close(t.done)
	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.C:
			f()
		}
	}
}

// Flag is a boolean raised by a tick source and taken by the main loop.
type Flag struct {
	v atomic.Bool
}

// Raise sets the flag.
func (f *Flag) Raise() {
	f.v.Store(true)
}

// Take clears the flag, returning true if it was set.
func (f *Flag) Take() bool {
	return f.v.Swap(false)
}
