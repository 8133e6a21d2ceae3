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

// Package asm translates the assembly language of the 20-bit CPU into
// its binary word stream. The pipeline is strictly sequential: the
// lexer turns source lines into tokens, the parser resolves labels and
// builds the typed IR, and the generator packs each instruction into
// one 20-bit word. Each stage fully consumes its input before the next
// one starts.
package asm

import (
	"bufio"
	"io"
	"os"
)

// Program is the complete result of one assembler run.
type Program struct {
	Source string
	IR     *IR
	Words  []Word
}

// Assemble runs the whole pipeline over one source file.
func Assemble(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return AssembleSource(path, bufio.NewReader(f))
}

// AssembleSource runs the pipeline over an already opened source.
// Lexical errors are collected and returned together as an ErrorList;
// the parser and generator stop at their first error.
func AssembleSource(name string, r io.Reader) (*Program, error) {
	tokens, errs := lex(name, r)
	if len(errs) > 0 {
		return nil, ErrorList(errs)
	}

	ir, err := parse(tokens)
	if err != nil {
		return nil, err
	}

	words, err := generate(ir)
	if err != nil {
		return nil, err
	}

	return &Program{Source: name, IR: ir, Words: words}, nil
}
