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

//go:build experimental

package ted

import "stacey.dev/ted/internal/config"

// KGrowthFactor sets the multiplier applied to the distance threshold k each time a search fails
// to find a path within it. The default is 4, matching the original algorithm's escalation.
//
// It's experimental because smaller factors trade more retries for less wasted work above the
// true distance, and we don't yet have enough evidence about which workloads prefer which.
func KGrowthFactor(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.GrowthFactor = max(2, n)
		return config.GrowthFactor
	}
}
