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

package bracket

import "errors"

// These sentinel errors classify why Parse or ParseIncremental failed. Use errors.Is to check
// for a specific kind; the wrapping error adds the byte offset and other context.
var (
	// ErrUnmatchedBracket is returned for a '{' with no matching '}', input that does not start
	// with '{', an unterminated '(...)' or '[...]', or input that ends before the root's closing
	// brace. A stray '}' after the root's closing brace is reported as ErrTrailingInput.
	ErrUnmatchedBracket = errors.New("ted/bracket: unmatched bracket")

	// ErrMissingLabel is returned for a node with no '(...)' label whose annotation (if any)
	// could not be resolved through the label lookup either.
	ErrMissingLabel = errors.New("ted/bracket: missing label")

	// ErrInvalidAnnotation is returned when the content of a '[...]' annotation is not a
	// non-negative integer.
	ErrInvalidAnnotation = errors.New("ted/bracket: invalid annotation")

	// ErrTrailingInput is returned when non-whitespace input follows the root's closing brace.
	ErrTrailingInput = errors.New("ted/bracket: trailing input")
)
