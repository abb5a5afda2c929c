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
	"log"
	"net/http"
	"strconv"
)

// Handler returns a handler serving the panel as /gauge.png,
// and as a stream of PNG frames on the /live websocket.
func (p *Panel) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/gauge.png", p.servePNG)
	mux.HandleFunc("/live", p.live)
	return mux
}

// Serve runs a web server showing the panel.
func (p *Panel) Serve(addr string) error {
	log.Printf("panel: starting server on %s", addr)
	server := &http.Server{Addr: addr, Handler: p.Handler()}
	return server.ListenAndServe()
}

// servePNG encodes the whole image before writing, so that an
// encoding error can still be reported in the status.
func (p *Panel) servePNG(w http.ResponseWriter, r *http.Request) {
	var b bytes.Buffer
	p.mu.Lock()
	err := p.ctx.EncodePNG(&b)
	p.mu.Unlock()
	if err != nil {
		log.Printf("panel: error encoding image: %v", err)
		http.Error(w, "image encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Length", strconv.Itoa(b.Len()))
	if _, err := w.Write(b.Bytes()); err != nil {
		log.Printf("panel: error writing image: %v", err)
	}
}
