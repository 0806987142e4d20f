// Copyright 2026 The Ted Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"stacey.dev/ted/internal/config"
)

func growthFactor(n int) config.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.GrowthFactor = n
		return config.GrowthFactor
	}
}

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "growth-factor",
			opts: []config.Option{growthFactor(8)},
			want: config.Config{GrowthFactor: 8},
		},
		{
			name: "growth-factor-override",
			opts: []config.Option{growthFactor(8), growthFactor(3)},
			want: config.Config{GrowthFactor: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, config.GrowthFactor)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsDisallowed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FromOptions did not panic for a disallowed option")
		}
	}()
	config.FromOptions([]config.Option{growthFactor(8)}, 0)
}

func TestFromOptionsRejectsTooSmallGrowthFactor(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FromOptions did not panic for GrowthFactor < 2")
		}
	}()
	config.FromOptions([]config.Option{growthFactor(1)}, config.GrowthFactor)
}
