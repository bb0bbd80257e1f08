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
	log "github.com/sirupsen/logrus"
)

// DefaultMaxDepth is the ceiling on nested macro and constant expansions
// applied when a configuration does not choose its own.
const DefaultMaxDepth uint = 64

// Config determines how a script is preprocessed.
type Config struct {
	// MaxDepth is the ceiling on nested expansions (0 means DefaultMaxDepth).
	MaxDepth uint
	// Defines holds additional NAME=VALUE constant definitions which apply
	// before any found in the script itself.
	Defines []string
}

// Preprocess a script, expanding all its constants and macro calls, and
// return the resulting script text.  Directive definitions are stripped from
// the output; everything else passes through verbatim.
func Preprocess(srcfile *source.File, config Config) (string, *Error) {
	maxDepth := config.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	// First pass: parse the script into a directive stream.
	nodes, err := ParseFile(srcfile)
	if err != nil {
		return "", err
	}
	//
	symbols := NewSymbolTable()
	// Command-line definitions bind before those in the script, so a script
	// definition colliding with one is reported as the duplicate.
	if err := collectDefines(symbols, config.Defines); err != nil {
		return "", err
	}
	//
	if err := collect(symbols, nodes); err != nil {
		return "", err
	}
	// Second pass: expand calls and constants against the full table.
	tokens, err := NewExpander(symbols, maxDepth).Expand(nodes)
	if err != nil {
		return "", err
	}
	//
	return Emit(tokens), nil
}

// Collect all definitions in a directive stream into the symbol table.
func collect(symbols *SymbolTable, nodes []Node) *Error {
	for _, node := range nodes {
		switch n := node.(type) {
		case *Define:
			if err := symbols.DefineConstant(n.Name, n.Value); err != nil {
				return err
			}
		case *Macro:
			if err := symbols.DefineMacro(n.Name, n.Params, n.Body); err != nil {
				return err
			}
			//
			log.Debugf("defined macro %s/%d", n.Name.Text(), len(n.Params))
		}
	}
	//
	return nil
}

// Collect NAME=VALUE constant definitions given outside the script.  Each is
// lexed as a pseudo source file of its own, so tokens arising from it carry
// sensible positions in diagnostics.
func collectDefines(symbols *SymbolTable, defines []string) *Error {
	for _, define := range defines {
		srcfile := source.NewSourceFile("<define>", []byte(define))
		//
		tokens, err := Lex(srcfile)
		if err != nil {
			return err
		}
		//
		name, value, err := splitDefine(tokens)
		if err != nil {
			return err
		}
		//
		if err := symbols.DefineConstant(name, value); err != nil {
			return err
		}
	}
	//
	return nil
}

// Split a lexed NAME=VALUE definition into its name and value tokens.
func splitDefine(tokens []Token) (Token, []Token, *Error) {
	var empty Token
	// Expecting IDENTIFIER EQUALS value...
	if len(tokens) < 1 || tokens[0].Kind != IDENTIFIER {
		return empty, nil, malformedDefine(tokens, 0)
	}
	//
	if len(tokens) < 2 || tokens[1].Kind != EQUALS {
		return empty, nil, malformedDefine(tokens, 1)
	}
	// Strip the trailing END_OF marker, then any padding.
	value := trimWhitespace(tokens[2 : len(tokens)-1])
	//
	if len(value) == 0 {
		return empty, nil, malformedDefine(tokens, 1)
	}
	//
	return tokens[0], value, nil
}

func malformedDefine(tokens []Token, index int) *Error {
	tok := tokens[len(tokens)-1]
	if index < len(tokens) {
		tok = tokens[index]
	}
	//
	return errorAt(ParseError, tok, "", "malformed definition (expected NAME=VALUE)")
}
