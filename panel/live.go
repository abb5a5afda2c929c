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

package panel

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	liveInterval = 100 * time.Millisecond // Frame poll period for live viewers
	writeWait    = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// live streams the panel to a websocket client as binary PNG messages,
// sending a new image whenever the frame count changes.
func (p *Panel) live(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("panel: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	// Reads are discarded; they only detect the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	ticker := time.NewTicker(liveInterval)
	defer ticker.Stop()
	last := -1
	for {
		select {
		case <-gone:
			return
		case <-ticker.C:
		}
		f := p.Frames()
		if f == last {
			continue
		}
		last = f
		var b bytes.Buffer
		p.mu.Lock()
		err := p.ctx.EncodePNG(&b)
		p.mu.Unlock()
		if err != nil {
			log.Printf("panel: encode: %v", err)
			return
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, b.Bytes()); err != nil {
			if !errors.Is(err, websocket.ErrCloseSent) {
				log.Printf("panel: live viewer %s: %v", r.RemoteAddr, err)
			}
			return
		}
	}
}
