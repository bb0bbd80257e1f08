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

import "fmt"

// ConstantDef is a named replacement token sequence, created by %define (or a
// command-line pre-define).  Immutable once created.
type ConstantDef struct {
	name  string
	value []Token
}

// Name returns the constant's name.
func (c *ConstantDef) Name() string {
	return c.name
}

// Value returns the replacement token sequence.
func (c *ConstantDef) Value() []Token {
	return c.value
}

// MacroDef is a named, parameterised template of script text, created when a
// %macro block is fully parsed.  Immutable once created.
type MacroDef struct {
	name string
	// Formal parameter names, including their "$" prefix.
	params []string
	// Raw body tokens.
	body []Token
}

// Name returns the macro's name.
func (m *MacroDef) Name() string {
	return m.name
}

// Params returns the formal parameter names, in declaration order.
func (m *MacroDef) Params() []string {
	return m.params
}

// Arity returns the number of formal parameters.
func (m *MacroDef) Arity() int {
	return len(m.params)
}

// Body returns the raw body token sequence.
func (m *MacroDef) Body() []Token {
	return m.body
}

// SymbolTable accumulates constant and macro definitions during collection
// (pass 1), for lookup during expansion (pass 2).  Constants and macros share
// one case-sensitive namespace, so a macro may not reuse a constant's name.
// A fresh table is constructed for every preprocessing run.
type SymbolTable struct {
	constants map[string]*ConstantDef
	macros    map[string]*MacroDef
}

// NewSymbolTable constructs an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		constants: make(map[string]*ConstantDef),
		macros:    make(map[string]*MacroDef),
	}
}

// DefineConstant registers a new constant, failing if the name is already
// taken.  The name token identifies the offending definition site.
func (s *SymbolTable) DefineConstant(name Token, value []Token) *Error {
	if err := s.checkFresh(name); err != nil {
		return err
	}
	//
	n := name.Text()
	s.constants[n] = &ConstantDef{n, value}
	//
	return nil
}

// DefineMacro registers a new macro, failing if the name is already taken.
func (s *SymbolTable) DefineMacro(name Token, params []Token, body []Token) *Error {
	if err := s.checkFresh(name); err != nil {
		return err
	}
	//
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Text()
	}
	//
	n := name.Text()
	s.macros[n] = &MacroDef{n, names, body}
	//
	return nil
}

// Constant looks up a constant by exact name.
func (s *SymbolTable) Constant(name string) (*ConstantDef, bool) {
	c, ok := s.constants[name]
	return c, ok
}

// Macro looks up a macro by exact name.
func (s *SymbolTable) Macro(name string) (*MacroDef, bool) {
	m, ok := s.macros[name]
	return m, ok
}

func (s *SymbolTable) checkFresh(name Token) *Error {
	n := name.Text()
	//
	_, c := s.constants[n]
	_, m := s.macros[n]
	//
	if c || m {
		msg := fmt.Sprintf("duplicate definition of %s", n)
		return errorAt(DuplicateDefinitionError, name, n, msg)
	}
	//
	return nil
}
