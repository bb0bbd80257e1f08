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
	"github.com/ca-jiezhang/btcc/pkg/util/source"
	"github.com/ca-jiezhang/btcc/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals spaces and tabs within a line
const WHITESPACE uint = 1

// NEWLINE signals a single "\n"
const NEWLINE uint = 2

// COMMENT signals "// ... \n" or "/* ... */"
const COMMENT uint = 3

// KEYWORD_DEFINE signals the "%define" directive keyword
const KEYWORD_DEFINE uint = 10

// KEYWORD_MACRO signals the "%macro" directive keyword
const KEYWORD_MACRO uint = 11

// KEYWORD_END signals the "%end" directive keyword
const KEYWORD_END uint = 12

// KEYWORD_CALL signals the "%call" directive keyword
const KEYWORD_CALL uint = 13

// VARIABLE signals a "$"-prefixed script variable
const VARIABLE uint = 20

// IDENTIFIER signals an identifier
const IDENTIFIER uint = 21

// NUMBER signals a decimal or hexadecimal number
const NUMBER uint = 22

// STRING signals a double-quoted string literal
const STRING uint = 23

// UNTERMINATED_STRING signals a string literal with no closing quote
const UNTERMINATED_STRING uint = 24

// LBRACE signals "("
const LBRACE uint = 30

// RBRACE signals ")"
const RBRACE uint = 31

// LCURLY signals "{"
const LCURLY uint = 32

// RCURLY signals "}"
const RCURLY uint = 33

// COMMA signals ","
const COMMA uint = 34

// SEMICOLON signals ";"
const SEMICOLON uint = 35

// EQUALS signals "="
const EQUALS uint = 36

// OTHER signals any single character not otherwise recognised.  Such
// characters are part of the surrounding script syntax (e.g. probe
// attachment points) and simply pass through the preprocessor untouched.
const OTHER uint = 40

// Token is a lexical unit of a bt script, bound to the source file it was
// lexed from.  The token text is not stored directly; rather, it is recovered
// from the file through the span.
type Token struct {
	Kind uint
	Span source.Span
	File *source.File
}

// Text returns the literal text of this token.
func (t Token) Text() string {
	return t.File.Text(t.Span)
}

// Rule for describing whitespace within a line.  Newlines are lexed
// separately, since directives are line-oriented.
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r')))

// Rule for describing numbers.  A number is either a hexadecimal or a decimal
// one.
var (
	hexDigit = lex.Or(
		lex.Within('0', '9'),
		lex.Within('A', 'F'),
		lex.Within('a', 'f'),
	)
	hexStart = lex.Sequence(lex.String("0x"), hexDigit)

	number = lex.Or(
		lex.SequenceNullableLast(hexStart, lex.Many(hexDigit)),
		lex.SequenceNullableLast(lex.Within('0', '9'), lex.Many(lex.Within('0', '9'))),
	)
)

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// Rule for describing script variables (e.g. "$pid")
var variable lex.Scanner[rune] = lex.Sequence(lex.Unit('$'), identifier)

// Rule for describing a directive keyword.  The keyword must end at a word
// boundary, so that e.g. "%endless" remains ordinary script text rather than
// an %end directive.
func keyword(word string) lex.Scanner[rune] {
	scanner := lex.String(word)
	//
	return func(items []rune) uint {
		n := scanner(items)
		// Reject keywords continuing as a larger word
		if n > 0 && identifierRest(items[n:]) > 0 {
			return 0
		}
		//
		return n
	}
}

// Rule for describing string literals.  Escape sequences are preserved
// verbatim, never interpreted.  Strings may not span lines; a quote with no
// closing quote before the end of the line is matched by the unterminated
// variant instead.
func stringLiteral(terminated bool) lex.Scanner[rune] {
	return func(items []rune) uint {
		if len(items) == 0 || items[0] != '"' {
			return 0
		}
		//
		i := 1
		//
		for i < len(items) {
			switch items[i] {
			case '\\':
				// Skip escaped character
				i += 2
				continue
			case '"':
				if terminated {
					return uint(i + 1)
				}
				//
				return 0
			case '\n':
				if terminated {
					return 0
				}
				//
				return uint(i)
			}
			//
			i++
		}
		// Ran off the end of the file
		if terminated {
			return 0
		}
		//
		return uint(min(i, len(items)))
	}
}

// Line comments run until a newline or EOF.
var lineComment lex.Scanner[rune] = lex.SequenceNullableLast(lex.String("//"), lex.Until('\n'))

// Block comments run until "*/", or are swallowed whole at EOF.
var blockComment lex.Scanner[rune] = func(items []rune) uint {
	if len(items) < 2 || items[0] != '/' || items[1] != '*' {
		return 0
	}
	//
	for i := 2; i+1 < len(items); i++ {
		if items[i] == '*' && items[i+1] == '/' {
			return uint(i + 2)
		}
	}
	//
	return uint(len(items))
}

// Matches any single character, so that unrecognised script syntax passes
// through rather than failing the lexer.
var anyChar lex.Scanner[rune] = lex.Any[rune]()

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(lineComment, COMMENT),
	lex.Rule(blockComment, COMMENT),
	lex.Rule(lex.Unit('\n'), NEWLINE),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(keyword("%define"), KEYWORD_DEFINE),
	lex.Rule(keyword("%macro"), KEYWORD_MACRO),
	lex.Rule(keyword("%end"), KEYWORD_END),
	lex.Rule(keyword("%call"), KEYWORD_CALL),
	lex.Rule(variable, VARIABLE),
	lex.Rule(number, NUMBER),
	lex.Rule(stringLiteral(true), STRING),
	lex.Rule(stringLiteral(false), UNTERMINATED_STRING),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(anyChar, OTHER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of one or more tokens (always
// terminated by END_OF), or fail with a LexError for an unterminated string
// literal.
func Lex(srcfile *source.File) ([]Token, *Error) {
	var (
		lexer  = lex.NewLexer(srcfile.Contents(), rules...)
		tokens []Token
	)
	//
	for _, t := range lexer.Collect() {
		if t.Kind == UNTERMINATED_STRING {
			tok := Token{t.Kind, t.Span, srcfile}
			return nil, errorAt(LexError, tok, "", "unterminated string literal")
		}
		//
		tokens = append(tokens, Token{t.Kind, t.Span, srcfile})
	}
	//
	return tokens, nil
}
