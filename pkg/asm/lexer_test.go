/*
Copyright © 2023 Moses Schmiedel

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexString(t *testing.T, data string) []token {
	tokens, errs := lex(t.Name(), strings.NewReader(data))
	require.Empty(t, errs)
	return tokens
}

func TestLexer1(t *testing.T) {
	data := "main:\n    ldc reg0 0x05\n    hlt\n"
	tokens := lexString(t, data)
	require.Len(t, tokens, 5)
	assert.Equal(t, token{tokenKind: tkLabel, text: "main", line: 1}, tokens[0])
	assert.Equal(t, token{tokenKind: tkMnemonic, text: "ldc", line: 2}, tokens[1])
	assert.Equal(t, token{tokenKind: tkRegister, text: "reg0", line: 2}, tokens[2])
	assert.Equal(t, token{tokenKind: tkConstant, text: "0x05", value: 5, line: 2}, tokens[3])
	assert.Equal(t, token{tokenKind: tkMnemonic, text: "hlt", line: 3}, tokens[4])
}

func TestLexer2(t *testing.T) {
	// constants wrap into 16-bit two's complement
	cases := []struct {
		text  string
		value uint16
	}{
		{"0", 0},
		{"173", 173},
		{"0xa7", 0xA7},
		{"0b0011010", 26},
		{"-1", 0xFFFF},
		{"-0x01", 0xFFFF},
		{"-1337", 64199},
		{"-0b10", 0xFFFE},
		{"65535", 0xFFFF},
	}
	for _, c := range cases {
		tokens := lexString(t, "    jr "+c.text+"\n")
		require.Equal(t, tkConstant, tokens[1].kind(), c.text)
		assert.Equal(t, c.value, tokens[1].value, c.text)
		assert.Equal(t, c.text, tokens[1].text)
	}
}

func TestLexer3(t *testing.T) {
	// register marker and bare register spelling lex the same
	tokens := lexString(t, "    mov %reg1 reg2\n")
	assert.Equal(t, token{tokenKind: tkRegister, text: "reg1", line: 1}, tokens[1])
	assert.Equal(t, token{tokenKind: tkRegister, text: "reg2", line: 1}, tokens[2])
}

func TestLexer4(t *testing.T) {
	// comments and blank lines contribute nothing
	data := "    nop ; does nothing\n\n    ; only a comment\n    hlt\n"
	tokens := lexString(t, data)
	require.Len(t, tokens, 2)
	assert.Equal(t, "nop", tokens[0].text)
	assert.Equal(t, "hlt", tokens[1].text)
	assert.Equal(t, 4, tokens[1].line)
}

func TestLexer5(t *testing.T) {
	// a hlt is appended unless the stream already ends in one
	tokens := lexString(t, "    nop\n")
	require.Len(t, tokens, 2)
	assert.Equal(t, token{tokenKind: tkMnemonic, text: "hlt", line: 1}, tokens[1])

	tokens = lexString(t, "    hlt\n")
	require.Len(t, tokens, 1)

	tokens = lexString(t, "")
	require.Len(t, tokens, 1)
	assert.Equal(t, "hlt", tokens[0].text)
}

func TestLexer6(t *testing.T) {
	// labels may be indented and unindented lines are not statements
	tokens := lexString(t, "  loop:\nnot a statement\n    jr loop\n")
	require.Len(t, tokens, 4)
	assert.Equal(t, token{tokenKind: tkLabel, text: "loop", line: 1}, tokens[0])
	assert.Equal(t, token{tokenKind: tkLabel, text: "loop", line: 3}, tokens[2])
}

func TestLexer7(t *testing.T) {
	// booleans
	tokens := lexString(t, "    set32 true\n    set32 false\n")
	assert.Equal(t, token{tokenKind: tkBoolean, text: "true", flag: true, line: 1}, tokens[1])
	assert.Equal(t, token{tokenKind: tkBoolean, text: "false", flag: false, line: 2}, tokens[3])
}

func TestLexer8(t *testing.T) {
	// all bad lines are collected in a single pass
	data := "    mov %re-g reg0\n    add reg0 reg1 $$\n    ldc reg0 0xzz\n"
	_, errs := lex(t.Name(), strings.NewReader(data))
	require.Len(t, errs, 3)

	var regErr *InvalidRegisterError
	require.True(t, errors.As(errs[0], &regErr))
	assert.Equal(t, 1, regErr.Line)
	assert.Equal(t, "%re-g", regErr.Text)

	var identErr *InvalidIdentifierError
	require.True(t, errors.As(errs[1], &identErr))
	assert.Equal(t, "$$", identErr.Text)

	require.True(t, errors.As(errs[2], &identErr))
	assert.Equal(t, "0xzz", identErr.Text)
}

func TestLexer9(t *testing.T) {
	// a command in operand position is rejected
	_, errs := lex(t.Name(), strings.NewReader("    mov reg0 add\n"))
	require.Len(t, errs, 1)

	var cmdErr *CommandInOperandError
	require.True(t, errors.As(errs[0], &cmdErr))
	assert.Equal(t, "add", cmdErr.Command)
	assert.Equal(t, 1, cmdErr.Line)
}

func TestLexer10(t *testing.T) {
	// a read failure aborts immediately
	r := failingReader{}
	_, errs := lex(t.Name(), r)
	require.Len(t, errs, 1)

	var readErr *ReadError
	require.True(t, errors.As(errs[0], &readErr))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}
