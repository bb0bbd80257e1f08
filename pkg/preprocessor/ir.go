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

// Node is an element of the parsed directive stream: either an opaque run of
// script text, a definition to be collected, or a macro call to be expanded.
type Node interface {
	isNode()
}

// TextRun is a run of ordinary script tokens which passes through the
// preprocessor unchanged, except for constant substitution.
type TextRun struct {
	Tokens []Token
}

// Define records a "%define NAME VALUE" directive.  The value is an arbitrary
// non-empty token sequence running to the end of the directive line.
type Define struct {
	// Name token of the constant being defined.
	Name Token
	// Replacement token sequence.
	Value []Token
}

// Macro records a "%macro NAME($p1, $p2, ...) ... %end" block.  The body is
// kept as raw tokens; nested %call directives within it are resolved during
// expansion, not during parsing.
type Macro struct {
	// Name token of the macro being defined.
	Name Token
	// Formal parameter tokens, in declaration order.
	Params []Token
	// Raw body tokens, excluding the header and %end lines.
	Body []Token
}

// Call records a "%call NAME(arg1, arg2, ...)" directive.  Each argument is
// an arbitrary paren-balanced token sequence, bound textually to the
// corresponding formal parameter.
type Call struct {
	// Name token of the macro being invoked.
	Name Token
	// Argument token groups, in call order.
	Args [][]Token
}

func (n *TextRun) isNode() {}
func (n *Define) isNode()  {}
func (n *Macro) isNode()   {}
func (n *Call) isNode()    {}
