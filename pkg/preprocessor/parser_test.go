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
	"github.com/stretchr/testify/require"
)

func Test_Parse_Define(t *testing.T) {
	nodes := parseString(t, "%define ID 0x12345\n")
	//
	require.Len(t, nodes, 1)
	//
	def := nodes[0].(*Define)
	assert.Equal(t, "ID", def.Name.Text())
	assert.Equal(t, "0x12345", textsOf(def.Value))
}

func Test_Parse_DefineMultiToken(t *testing.T) {
	nodes := parseString(t, "%define GREETING \"hi\" // salutation\n")
	//
	require.Len(t, nodes, 1)
	// Trailing comment and padding are not part of the value
	def := nodes[0].(*Define)
	assert.Equal(t, "\"hi\"", textsOf(def.Value))
}

func Test_Parse_Macro(t *testing.T) {
	nodes := parseString(t, "%macro swap($a, $b)\n\t$t = $a; $a = $b; $b = $t;\n%end\n")
	//
	require.Len(t, nodes, 1)
	//
	macro := nodes[0].(*Macro)
	assert.Equal(t, "swap", macro.Name.Text())
	require.Len(t, macro.Params, 2)
	assert.Equal(t, "$a", macro.Params[0].Text())
	assert.Equal(t, "$b", macro.Params[1].Text())
	assert.Equal(t, "$t = $a; $a = $b; $b = $t;\n", textsOf(macro.Body))
}

func Test_Parse_MacroNoParams(t *testing.T) {
	nodes := parseString(t, "%macro tick()\n\t@ticks = @ticks + 1;\n%end\n")
	//
	require.Len(t, nodes, 1)
	assert.Len(t, nodes[0].(*Macro).Params, 0)
}

func Test_Parse_Call(t *testing.T) {
	nodes := parseString(t, "\t%call hello($s, 42);\n")
	//
	require.Len(t, nodes, 2)
	// Call indentation is ordinary script text
	assert.Equal(t, "\t", textsOf(nodes[0].(*TextRun).Tokens))
	//
	call := nodes[1].(*Call)
	assert.Equal(t, "hello", call.Name.Text())
	require.Len(t, call.Args, 2)
	assert.Equal(t, "$s", textsOf(call.Args[0]))
	assert.Equal(t, "42", textsOf(call.Args[1]))
}

func Test_Parse_CallNestedParens(t *testing.T) {
	nodes := parseString(t, "%call log(str(1, 2));\n")
	//
	require.Len(t, nodes, 1)
	// Comma within balanced parentheses does not split the argument
	call := nodes[0].(*Call)
	require.Len(t, call.Args, 1)
	assert.Equal(t, "str(1, 2)", textsOf(call.Args[0]))
}

func Test_Parse_CallMidLine(t *testing.T) {
	nodes := parseString(t, "a %call f() b\n")
	// Trailing text on the call line is preserved
	require.Len(t, nodes, 3)
	assert.Equal(t, " b\n", textsOf(nodes[2].(*TextRun).Tokens))
}

func Test_Parse_TextRun(t *testing.T) {
	input := "BEGIN\n{\n\tprintf(\"up\\n\");\n}\n"
	nodes := parseString(t, input)
	//
	require.Len(t, nodes, 1)
	assert.Equal(t, input, textsOf(nodes[0].(*TextRun).Tokens))
}

func Test_Parse_StrayEnd(t *testing.T) {
	checkParseFails(t, "%end\n", "%end without matching %macro")
}

func Test_Parse_UnterminatedMacro(t *testing.T) {
	checkParseFails(t, "%macro f()\n$x = 1;\n", "unterminated %macro block")
}

func Test_Parse_NestedMacro(t *testing.T) {
	checkParseFails(t, "%macro f()\n%macro g()\n%end\n%end\n", "nested %macro definition")
}

func Test_Parse_DuplicateParameter(t *testing.T) {
	checkParseFails(t, "%macro f($a, $a)\n%end\n", "duplicate parameter name")
}

func Test_Parse_MissingDefineValue(t *testing.T) {
	checkParseFails(t, "%define ID\n", "missing value in %define")
}

func Test_Parse_MalformedDirectives(t *testing.T) {
	checkParseFails(t, "%define 1 2\n", "expected constant name after %define")
	checkParseFails(t, "%macro ()\n%end\n", "expected macro name after %macro")
	checkParseFails(t, "%macro f($a\n%end\n", "expected ')' after macro parameters")
	checkParseFails(t, "%call f(\n", "unterminated %call argument list")
	checkParseFails(t, "%call f(1,,2);\n", "empty macro argument")
	checkParseFails(t, "%call f(1,);\n", "empty macro argument")
}

// ============================================================================
// Helpers
// ============================================================================

func parseString(t *testing.T, input string) []Node {
	srcfile := source.NewSourceFile("test.bt", []byte(input))
	//
	nodes, err := ParseFile(srcfile)
	if err != nil {
		t.Fatalf("parsing %q: %s", input, err)
	}
	//
	return nodes
}

func checkParseFails(t *testing.T, input string, msg string) {
	srcfile := source.NewSourceFile("test.bt", []byte(input))
	//
	_, err := ParseFile(srcfile)
	//
	require.NotNilf(t, err, "parsing %q", input)
	assert.Equal(t, ParseError, err.Kind())
	assert.Equal(t, msg, err.Message())
}

// Concatenate the text of a token sequence.
func textsOf(tokens []Token) string {
	var text string
	for _, tok := range tokens {
		text += tok.Text()
	}
	//
	return text
}
