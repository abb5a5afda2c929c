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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aamcrae/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) *config.Config {
	f := filepath.Join(t.TempDir(), "test.conf")
	require.NoError(t, os.WriteFile(f, []byte(text), 0600))
	conf, err := config.ParseFile(f)
	require.NoError(t, err)
	return conf
}

func TestConfig(t *testing.T) {
	conf := parse(t, "[display]\nbus=serial\nserial=/dev/ttyACM0\nbaud=115200\nsize=480,272\nrefresh=20ms\ncontrol=1,2,3,4,5\n")
	d, err := Config(conf)
	require.NoError(t, err)
	assert.Equal(t, Serial, d.Bus)
	assert.Equal(t, "/dev/ttyACM0", d.Serial)
	assert.Equal(t, 115200, d.Baud)
	assert.Equal(t, 480, d.Width)
	assert.Equal(t, 272, d.Height)
	assert.Equal(t, 20*time.Millisecond, d.Refresh)
	assert.Equal(t, [5]int{1, 2, 3, 4, 5}, d.Control)
	assert.Equal(t, DefaultConfig().Data, d.Data)
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown bus", "[display]\nbus=spi\n"},
		{"short data", "[display]\ndata=1,2,3\n"},
		{"zero size", "[display]\nsize=0,480\n"},
		{"bad refresh", "[display]\nrefresh=soon\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Config(parse(t, tt.text))
			assert.Error(t, err)
		})
	}
}
