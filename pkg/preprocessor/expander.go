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
	"fmt"

	log "github.com/sirupsen/logrus"
)

// expansionFrame is one level of the expansion context: a token sequence
// being worked through, together with the parameter bindings active for it.
// Frames created for macro or constant expansions count toward the depth
// ceiling; frames for pass-through text and spliced arguments do not.
type expansionFrame struct {
	// Token sequence being processed.
	tokens []Token
	// Position within tokens.
	index int
	// Active parameter bindings, keyed by "$"-prefixed parameter name.
	bindings map[string][]Token
	// Whether this frame counts toward the expansion depth.
	counted bool
}

// Expander transforms a directive stream into a flat token sequence with all
// constants and macro calls resolved.  Expansion is deliberately
// non-hygienic: variables which are not formal parameters pass through
// untouched, so writes performed inside a macro body remain visible to the
// enclosing script after the call site.
//
// Nested expansion is driven by an explicit frame stack rather than native
// call recursion, so runaway macros fail with a clean RecursionLimitError
// instead of exhausting the goroutine stack.
type Expander struct {
	symbols  *SymbolTable
	maxDepth uint
	// Expansion context: the stack of currently-active frames.
	stack []expansionFrame
	// Number of stacked frames counting toward the depth ceiling.
	depth uint
	// Accumulated output tokens.
	out []Token
}

// NewExpander constructs an expander against a fully-collected symbol table.
func NewExpander(symbols *SymbolTable, maxDepth uint) *Expander {
	return &Expander{symbols: symbols, maxDepth: maxDepth}
}

// Expand the given directive stream into a flat token sequence.  Definition
// nodes are consumed (they were collected beforehand), not re-emitted.
func (e *Expander) Expand(nodes []Node) ([]Token, *Error) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *Define, *Macro:
			// Consumed during collection
		case *TextRun:
			e.push(expansionFrame{tokens: n.Tokens})
			//
			if err := e.drain(); err != nil {
				return nil, err
			}
		case *Call:
			if err := e.beginCall(n.Name, n.Args, nil); err != nil {
				return nil, err
			}
			//
			if err := e.drain(); err != nil {
				return nil, err
			}
		}
	}
	//
	return e.out, nil
}

// Work through the frame stack until it empties.  Observe that any push may
// reallocate the stack, so the current frame's index is always advanced
// before new frames are pushed.
func (e *Expander) drain() *Error {
	for len(e.stack) > 0 {
		f := &e.stack[len(e.stack)-1]
		// Pop exhausted frames
		if f.index >= len(f.tokens) {
			if f.counted {
				e.depth--
			}
			//
			e.stack = e.stack[:len(e.stack)-1]
			//
			continue
		}
		//
		tok := f.tokens[f.index]
		//
		switch tok.Kind {
		case KEYWORD_CALL:
			call, next, err := parseCallAt(f.tokens, f.index)
			if err != nil {
				return err
			}
			//
			f.index = next
			//
			if err := e.beginCall(call.Name, call.Args, f.bindings); err != nil {
				return err
			}
		case KEYWORD_DEFINE, KEYWORD_MACRO, KEYWORD_END:
			msg := fmt.Sprintf("%s not permitted during expansion", tok.Text())
			return errorAt(ParseError, tok, "", msg)
		case VARIABLE:
			f.index++
			// Splice the bound argument, if this is a formal parameter.  All
			// other variables pass through: they live in the script's single
			// shared namespace.
			if binding, ok := f.bindings[tok.Text()]; ok {
				e.push(expansionFrame{tokens: binding})
			} else {
				e.out = append(e.out, tok)
			}
		case IDENTIFIER:
			f.index++
			// Substitute constants at whole-token granularity.  The spliced
			// value is re-scanned, so chained constants resolve fully.
			if c, ok := e.symbols.Constant(tok.Text()); ok {
				if err := e.checkDepth(tok, tok.Text()); err != nil {
					return err
				}
				//
				e.push(expansionFrame{tokens: c.Value(), counted: true})
			} else {
				e.out = append(e.out, tok)
			}
		default:
			f.index++
			e.out = append(e.out, tok)
		}
	}
	//
	return nil
}

// Begin expanding a call to a given macro, binding each formal parameter to
// its corresponding argument.  Arguments have the caller's own bindings
// applied before binding, so parameters forwarded through nested calls
// resolve to the outermost caller's text.
func (e *Expander) beginCall(name Token, args [][]Token, bindings map[string][]Token) *Error {
	macro, ok := e.symbols.Macro(name.Text())
	//
	if !ok {
		msg := fmt.Sprintf("call to undefined macro %s", name.Text())
		return errorAt(UndefinedMacroError, name, name.Text(), msg)
	}
	//
	if len(args) != macro.Arity() {
		msg := fmt.Sprintf("macro %s expects %d argument(s), found %d",
			name.Text(), macro.Arity(), len(args))
		return errorAt(ArityMismatchError, name, name.Text(), msg)
	}
	//
	if err := e.checkDepth(name, name.Text()); err != nil {
		return err
	}
	//
	bound := make(map[string][]Token, len(args))
	for i, param := range macro.Params() {
		bound[param] = substitute(args[i], bindings)
	}
	//
	if log.IsLevelEnabled(log.DebugLevel) {
		line, col := name.File.LineColumn(name.Span)
		log.Debugf("expanding macro %s (%s:%d:%d)", name.Text(), name.File.Filename(), line, col)
	}
	//
	e.push(expansionFrame{tokens: macro.Body(), bindings: bound, counted: true})
	//
	return nil
}

func (e *Expander) checkDepth(tok Token, name string) *Error {
	if e.depth >= e.maxDepth {
		msg := fmt.Sprintf("expansion of %s exceeds depth limit (%d)", name, e.maxDepth)
		return errorAt(RecursionLimitError, tok, name, msg)
	}
	//
	return nil
}

func (e *Expander) push(f expansionFrame) {
	if f.counted {
		e.depth++
	}
	//
	e.stack = append(e.stack, f)
}

// Apply one level of parameter substitution to an argument token sequence.
func substitute(arg []Token, bindings map[string][]Token) []Token {
	if len(bindings) == 0 {
		return arg
	}
	//
	var out []Token
	//
	for _, tok := range arg {
		if tok.Kind == VARIABLE {
			if binding, ok := bindings[tok.Text()]; ok {
				out = append(out, binding...)
				continue
			}
		}
		//
		out = append(out, tok)
	}
	//
	return out
}
