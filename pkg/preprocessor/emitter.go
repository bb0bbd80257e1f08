// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package preprocessor

import "strings"

// Emit renders an expanded token sequence back into script text.  Token text
// is reproduced verbatim from the originating source, with a single space
// inserted wherever splicing has left two word-like tokens adjacent (e.g. a
// constant value spliced directly against an identifier), since joining them
// would fuse two tokens into one.
func Emit(tokens []Token) string {
	var builder strings.Builder
	//
	for i, tok := range tokens {
		if i > 0 && wordy(tokens[i-1].Kind) && fuses(tok.Kind) {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(tok.Text())
	}
	//
	return builder.String()
}

// Word-like tokens end on an identifier character, so a following identifier
// or number would be absorbed into them.
func wordy(kind uint) bool {
	return kind == IDENTIFIER || kind == NUMBER || kind == VARIABLE
}

// Tokens which fuse with a preceding word-like token.  A variable never does,
// since "$" cannot continue an identifier.
func fuses(kind uint) bool {
	return kind == IDENTIFIER || kind == NUMBER
}
