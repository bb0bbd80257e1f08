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
package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineColumn_FirstLine(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("hello world\nsecond line\n"))
	//
	line, col := srcfile.LineColumn(NewSpan(0, 5))
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
	//
	line, col = srcfile.LineColumn(NewSpan(6, 11))
	assert.Equal(t, 1, line)
	assert.Equal(t, 7, col)
}

func TestLineColumn_SecondLine(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("hello world\nsecond line\n"))
	//
	line, col := srcfile.LineColumn(NewSpan(12, 18))
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
	//
	line, col = srcfile.LineColumn(NewSpan(19, 23))
	assert.Equal(t, 2, line)
	assert.Equal(t, 8, col)
}

func TestLineColumn_EndOfFile(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("one\ntwo"))
	// Span starting exactly at the end of the file maps onto the last line.
	line, _ := srcfile.LineColumn(NewSpan(7, 7))
	assert.Equal(t, 2, line)
}

func TestFindFirstEnclosingLine(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("one\ntwo\nthree"))
	//
	l := srcfile.FindFirstEnclosingLine(NewSpan(5, 6))
	assert.Equal(t, 2, l.Number())
	assert.Equal(t, "two", l.String())
	assert.Equal(t, 4, l.Start())
	assert.Equal(t, 3, l.Length())
}

func TestSyntaxError(t *testing.T) {
	srcfile := NewSourceFile("test.bt", []byte("one\ntwo\nthree"))
	err := srcfile.SyntaxError(NewSpan(4, 7), "unexpected token")
	//
	assert.Equal(t, "unexpected token", err.Message())
	assert.Equal(t, "test.bt:2:1: unexpected token", err.Error())
	//
	line := err.FirstEnclosingLine()
	assert.Equal(t, "two", line.String())
}
