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

package ted

//go:generate go tool golang.org/x/tools/cmd/stringer -type=UpdateKind

// UpdateKind identifies which [Driver] method produced a [Stats] value.
type UpdateKind int

const (
	// KindBaseline is produced by [Driver.Baseline].
	KindBaseline UpdateKind = iota
	// KindUpdate is produced by [Driver.Update].
	KindUpdate
	// KindUpdateT1 is produced by [Driver.UpdateT1].
	KindUpdateT1
	// KindUpdateT2 is produced by [Driver.UpdateT2].
	KindUpdateT2
)
