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
)

// ParseFile lexes and parses a given source file into a directive stream, or
// fails with the first error encountered.
func ParseFile(srcfile *source.File) ([]Node, *Error) {
	tokens, err := Lex(srcfile)
	if err != nil {
		return nil, err
	}
	//
	return NewParser(tokens).Parse()
}

// Parser is a single-pass parser for the directive layer of a bt script.
// Anything which is not a directive is accumulated into opaque text runs.
type Parser struct {
	tokens []Token
	// Position within the tokens
	index int
}

// NewParser constructs a new parser over a given (non-empty) token sequence.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens, 0}
}

// Parse the token sequence into an ordered directive stream.
func (p *Parser) Parse() ([]Node, *Error) {
	var (
		nodes []Node
		run   []Token
	)
	// Flush any pending text run
	flush := func() {
		if len(run) > 0 {
			nodes = append(nodes, &TextRun{run})
			run = nil
		}
	}
	//
	for p.lookahead().Kind != END_OF {
		tok := p.lookahead()
		//
		switch tok.Kind {
		case KEYWORD_DEFINE:
			flush()
			//
			def, err := p.parseDefine()
			if err != nil {
				return nil, err
			}
			//
			nodes = append(nodes, def)
		case KEYWORD_MACRO:
			flush()
			//
			macro, err := p.parseMacro()
			if err != nil {
				return nil, err
			}
			//
			nodes = append(nodes, macro)
		case KEYWORD_END:
			return nil, errorAt(ParseError, tok, "", "%end without matching %macro")
		case KEYWORD_CALL:
			flush()
			//
			call, err := p.parseCall()
			if err != nil {
				return nil, err
			}
			//
			nodes = append(nodes, call)
		default:
			run = append(run, tok)
			p.index++
		}
	}
	//
	flush()
	//
	return nodes, nil
}

// Parse a "%define NAME VALUE" directive, consuming the entire directive
// line.
func (p *Parser) parseDefine() (*Define, *Error) {
	// Consume %define keyword
	p.index++
	p.skipInline()
	//
	name, err := p.expect(IDENTIFIER, "expected constant name after %define")
	if err != nil {
		return nil, err
	}
	//
	p.skipInline()
	// Collect replacement tokens up to the end of the line
	var value []Token
	//
	for !p.follows(NEWLINE, END_OF) {
		value = append(value, p.lookahead())
		p.index++
	}
	//
	value = trimWhitespace(value)
	if len(value) == 0 {
		return nil, errorAt(ParseError, name, name.Text(), "missing value in %define")
	}
	// Consume the directive line's newline
	p.match(NEWLINE)
	//
	return &Define{name, value}, nil
}

// Parse a "%macro NAME($p1, ...) ... %end" block.  The body is accumulated as
// raw tokens; only nested %macro is rejected here, since macro definitions do
// not nest.
func (p *Parser) parseMacro() (*Macro, *Error) {
	var params []Token
	// Remember the %macro keyword for error reporting
	kw := p.lookahead()
	p.index++
	p.skipInline()
	//
	name, err := p.expect(IDENTIFIER, "expected macro name after %macro")
	if err != nil {
		return nil, err
	}
	//
	p.skipInline()
	//
	if _, err := p.expect(LBRACE, "expected '(' after macro name"); err != nil {
		return nil, err
	}
	//
	p.skipInline()
	// Parse formal parameters (if any)
	for !p.follows(RBRACE) {
		param, err := p.expect(VARIABLE, "expected '$'-prefixed parameter name")
		if err != nil {
			return nil, err
		}
		//
		for _, q := range params {
			if q.Text() == param.Text() {
				return nil, errorAt(ParseError, param, param.Text(), "duplicate parameter name")
			}
		}
		//
		params = append(params, param)
		p.skipInline()
		//
		if !p.match(COMMA) {
			break
		}
		//
		p.skipInline()
	}
	//
	if _, err := p.expect(RBRACE, "expected ')' after macro parameters"); err != nil {
		return nil, err
	}
	// Consume the remainder of the header line
	p.skipInline()
	p.match(NEWLINE)
	// Accumulate raw body tokens up to the matching %end
	var body []Token
	//
	for {
		tok := p.lookahead()
		//
		switch tok.Kind {
		case KEYWORD_END:
			p.index++
			// Consume the remainder of the %end line
			p.skipInline()
			p.match(NEWLINE)
			//
			return &Macro{name, params, trimBody(body)}, nil
		case KEYWORD_MACRO:
			return nil, errorAt(ParseError, tok, name.Text(), "nested %macro definition")
		case END_OF:
			return nil, errorAt(ParseError, kw, name.Text(), "unterminated %macro block")
		default:
			body = append(body, tok)
			p.index++
		}
	}
}

// Parse a "%call NAME(arg1, ...)" directive, including an optional trailing
// semicolon.  Arguments are arbitrary paren-balanced token sequences; nested
// parentheses and commas within them are kept intact.
func (p *Parser) parseCall() (*Call, *Error) {
	var (
		args     [][]Token
		cur      []Token
		sawComma bool
	)
	// Remember the %call keyword for error reporting
	kw := p.lookahead()
	p.index++
	p.skipInline()
	//
	name, err := p.expect(IDENTIFIER, "expected macro name after %call")
	if err != nil {
		return nil, err
	}
	//
	p.skipInline()
	//
	if _, err := p.expect(LBRACE, "expected '(' after macro name"); err != nil {
		return nil, err
	}
	//
	depth := 1
	//
outer:
	for {
		tok := p.lookahead()
		//
		switch {
		case tok.Kind == END_OF:
			return nil, errorAt(ParseError, kw, name.Text(), "unterminated %call argument list")
		case tok.Kind == LBRACE:
			depth++
			//
			cur = append(cur, tok)
			p.index++
		case tok.Kind == RBRACE:
			depth--
			p.index++
			//
			if depth == 0 {
				break outer
			}
			//
			cur = append(cur, tok)
		case tok.Kind == COMMA && depth == 1:
			arg := trimWhitespace(cur)
			if len(arg) == 0 {
				return nil, errorAt(ParseError, tok, name.Text(), "empty macro argument")
			}
			//
			args = append(args, arg)
			cur = nil
			sawComma = true
			p.index++
		default:
			cur = append(cur, tok)
			p.index++
		}
	}
	// Final argument (if any)
	cur = trimWhitespace(cur)
	//
	if len(cur) > 0 {
		args = append(args, cur)
	} else if sawComma {
		return nil, errorAt(ParseError, name, name.Text(), "empty macro argument")
	}
	// Consume an optional trailing semicolon
	p.match(SEMICOLON)
	// Consume the remainder of the line, provided nothing else follows the
	// call on it.  The spliced body supplies its own line breaks.
	mark := p.index
	p.skipInline()
	//
	if !p.match(NEWLINE) {
		p.index = mark
	}
	//
	return &Call{name, args}, nil
}

// parseCallAt parses a %call directive starting at a given position within an
// arbitrary token sequence.  This is used during expansion to resolve calls
// nested within macro bodies.
func parseCallAt(tokens []Token, index int) (*Call, int, *Error) {
	parser := &Parser{tokens, index}
	//
	call, err := parser.parseCall()
	if err != nil {
		return nil, 0, err
	}
	//
	return call, parser.index, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (p *Parser) lookahead() Token {
	if p.index < len(p.tokens) {
		return p.tokens[p.index]
	}
	// Synthesise an end marker just beyond the final token.  This arises when
	// parsing raw token slices (e.g. macro bodies), which carry no END_OF.
	last := p.tokens[len(p.tokens)-1]
	span := source.NewSpan(last.Span.End(), last.Span.End())
	//
	return Token{END_OF, span, last.File}
}

func (p *Parser) expect(kind uint, msg string) (Token, *Error) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		return lookahead, errorAt(ParseError, lookahead, "", msg)
	}
	//
	p.index++
	//
	return lookahead, nil
}

func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) follows(kinds ...uint) bool {
	next := p.lookahead().Kind
	//
	for _, kind := range kinds {
		if next == kind {
			return true
		}
	}
	//
	return false
}

// Skip whitespace and comments within the current line.
func (p *Parser) skipInline() {
	for p.follows(WHITESPACE, COMMENT) {
		p.index++
	}
}

// Trim whitespace, newline and comment tokens from both ends of a token
// sequence.
func trimWhitespace(tokens []Token) []Token {
	first, last := 0, len(tokens)
	//
	for first < last && isBlank(tokens[first]) {
		first++
	}
	//
	for first < last && isBlank(tokens[last-1]) {
		last--
	}
	//
	return tokens[first:last]
}

// Trim leading blanks from a macro body, along with any trailing indentation
// preceding the %end keyword.  The body's final newline is kept, so spliced
// statements retain their line breaks.
func trimBody(body []Token) []Token {
	first, last := 0, len(body)
	//
	for first < last && isBlank(body[first]) {
		first++
	}
	//
	for first < last && body[last-1].Kind == WHITESPACE {
		last--
	}
	//
	return body[first:last]
}

func isBlank(tok Token) bool {
	return tok.Kind == WHITESPACE || tok.Kind == NEWLINE || tok.Kind == COMMENT
}
