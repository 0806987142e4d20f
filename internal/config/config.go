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

// Package config provides the shared configuration mechanism for this module.
//
// This package is an implementation detail; the configuration surface for users is provided via
// ted.Option.
package config

// Config collects all configurable parameters for a [stacey.dev/ted.Driver].
type Config struct {
	// GrowthFactor is the multiplier applied to the distance threshold k each time a Touzet
	// search fails to find a path within it. The default matches the original algorithm's
	// doubling-by-four escalation.
	GrowthFactor int
}

// Default is the default configuration.
var Default = Config{
	GrowthFactor: 4,
}

// Flag describes a single config entry, used to detect options being set where they aren't
// allowed.
type Flag int

const (
	GrowthFactor Flag = 1 << iota
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("option " + printFlag(flag) + " not allowed here")
		}
	}
	if cfg.GrowthFactor < 2 {
		panic("GrowthFactor must be at least 2")
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case GrowthFactor:
		return "ted.KGrowthFactor"
	default:
		panic("never reached")
	}
}
