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

import "errors"

// ErrNoBaseline is returned by [Driver.Update], [Driver.UpdateT1] and [Driver.UpdateT2] when
// called before [Driver.Baseline] has computed a first distance to build on.
var ErrNoBaseline = errors.New("ted: no baseline computed; call Driver.Baseline first")
