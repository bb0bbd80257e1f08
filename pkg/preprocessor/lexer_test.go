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
	"github.com/google/go-cmp/cmp"
)

func Test_Lex_Define(t *testing.T) {
	checkLex(t, "%define FOO 1\n",
		KEYWORD_DEFINE, WHITESPACE, IDENTIFIER, WHITESPACE, NUMBER, NEWLINE, END_OF)
}

func Test_Lex_Macro(t *testing.T) {
	checkLex(t, "%macro f($x)\n%end\n",
		KEYWORD_MACRO, WHITESPACE, IDENTIFIER, LBRACE, VARIABLE, RBRACE, NEWLINE,
		KEYWORD_END, NEWLINE, END_OF)
}

func Test_Lex_Call(t *testing.T) {
	checkLex(t, "\t%call f($x, 2);\n",
		WHITESPACE, KEYWORD_CALL, WHITESPACE, IDENTIFIER, LBRACE, VARIABLE, COMMA,
		WHITESPACE, NUMBER, RBRACE, SEMICOLON, NEWLINE, END_OF)
}

func Test_Lex_KeywordBoundary(t *testing.T) {
	checkLex(t, "%end", KEYWORD_END, END_OF)
	// Keywords never match inside longer words
	checkLex(t, "%endless", OTHER, IDENTIFIER, END_OF)
	checkLex(t, "%caller %defined %macros",
		OTHER, IDENTIFIER, WHITESPACE, OTHER, IDENTIFIER, WHITESPACE, OTHER, IDENTIFIER, END_OF)
}

func Test_Lex_Numbers(t *testing.T) {
	checkLex(t, "0x12345 42 0xAb", NUMBER, WHITESPACE, NUMBER, WHITESPACE, NUMBER, END_OF)
}

func Test_Lex_Strings(t *testing.T) {
	checkLex(t, "\"hello, %s\\n\"", STRING, END_OF)
	// Escaped quotes do not terminate the literal
	checkLex(t, "\"a\\\"b\"", STRING, END_OF)
}

func Test_Lex_StringVerbatim(t *testing.T) {
	srcfile := source.NewSourceFile("test.bt", []byte("\"a\\tb\""))
	//
	tokens, err := Lex(srcfile)
	if err != nil {
		t.Fatal(err)
	}
	// Escape sequences are preserved, not interpreted
	if text := tokens[0].Text(); text != "\"a\\tb\"" {
		t.Errorf("unexpected string text %q", text)
	}
}

func Test_Lex_UnterminatedString(t *testing.T) {
	for _, input := range []string{"\"abc", "\"abc\nd\""} {
		srcfile := source.NewSourceFile("test.bt", []byte(input))
		//
		_, err := Lex(srcfile)
		if err == nil {
			t.Fatalf("lexing %q: expected failure", input)
		} else if err.Kind() != LexError {
			t.Errorf("lexing %q: unexpected error kind %s", input, err.Kind())
		}
	}
}

func Test_Lex_Comments(t *testing.T) {
	checkLex(t, "// note\nx", COMMENT, NEWLINE, IDENTIFIER, END_OF)
	checkLex(t, "/* a\nb */x", COMMENT, IDENTIFIER, END_OF)
}

func Test_Lex_Passthrough(t *testing.T) {
	// Probe attachment syntax must survive as opaque tokens
	checkLex(t, "tracepoint:syscalls:sys_enter_clone",
		IDENTIFIER, OTHER, IDENTIFIER, OTHER, IDENTIFIER, END_OF)
	//
	checkLex(t, "@[comm] = count();",
		OTHER, OTHER, IDENTIFIER, OTHER, WHITESPACE, EQUALS, WHITESPACE,
		IDENTIFIER, LBRACE, RBRACE, SEMICOLON, END_OF)
}

// ============================================================================
// Helpers
// ============================================================================

func checkLex(t *testing.T, input string, expected ...uint) {
	srcfile := source.NewSourceFile("test.bt", []byte(input))
	//
	tokens, err := Lex(srcfile)
	if err != nil {
		t.Fatalf("lexing %q: %s", input, err)
	}
	//
	kinds := make([]uint, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	//
	if diff := cmp.Diff(expected, kinds); diff != "" {
		t.Errorf("lexing %q: unexpected tokens (-want +got):\n%s", input, diff)
	}
}
