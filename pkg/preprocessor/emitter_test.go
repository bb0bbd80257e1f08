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

import (
	"testing"

	"github.com/ca-jiezhang/btcc/pkg/util/source"
	"github.com/stretchr/testify/assert"
)

func Test_Emit_Verbatim(t *testing.T) {
	input := "BEGIN\n{\n\tprintf(\"up %d\\n\", nsecs);\n}\n"
	srcfile := source.NewSourceFile("test.bt", []byte(input))
	//
	tokens, err := Lex(srcfile)
	assert.Nil(t, err)
	assert.Equal(t, input, Emit(tokens))
}

func Test_Emit_AdjacentWords(t *testing.T) {
	srcfile := source.NewSourceFile("test.bt", []byte("pid 10"))
	//
	tokens, err := Lex(srcfile)
	assert.Nil(t, err)
	// Splicing out the whitespace must not fuse the two tokens
	spliced := []Token{tokens[0], tokens[2]}
	assert.Equal(t, "pid 10", Emit(spliced))
}

func Test_Emit_AdjacentPunctuation(t *testing.T) {
	srcfile := source.NewSourceFile("test.bt", []byte("f (x)"))
	//
	tokens, err := Lex(srcfile)
	assert.Nil(t, err)
	// Punctuation never needs separating
	spliced := []Token{tokens[0], tokens[2], tokens[3], tokens[4]}
	assert.Equal(t, "f(x)", Emit(spliced))
}
