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
	"fmt"
	"strings"
)

// Every error carries the source line number and, where it helps, the
// literal offending text, so the caller can report without holding on
// to the source.

// Lexer errors. These are collected per line, not fatal one by one.

// InvalidIdentifierError reports an operand word that is neither a
// register, a numeral, a boolean nor a label name.
type InvalidIdentifierError struct {
	Text string
	Line int
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q at line %d", e.Text, e.Line)
}

// InvalidRegisterError reports a malformed '%' register operand.
type InvalidRegisterError struct {
	Text string
	Line int
}

func (e *InvalidRegisterError) Error() string {
	return fmt.Sprintf("invalid register identifier %q at line %d", e.Text, e.Line)
}

// CommandInOperandError reports a command word in operand position.
type CommandInOperandError struct {
	Command string
	Line    int
}

func (e *CommandInOperandError) Error() string {
	return fmt.Sprintf("found illegal command %q after command at line %d", e.Command, e.Line)
}

// ReadError reports a failure of the underlying line source. Unlike
// the other lexical errors it aborts the lexer immediately.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ErrorList bundles all lexical errors of one run into a single error.
type ErrorList []error

func (el ErrorList) Error() string {
	msgs := make([]string, len(el))
	for i, err := range el {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Parser errors. The first one is fatal.

// ErrEmptyProgram is returned when the parser receives no tokens.
var ErrEmptyProgram = errors.New("no tokens provided to parser")

// UnknownCommandError reports an unrecognized mnemonic.
type UnknownCommandError struct {
	Command string
	Line    int
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q at line %d", e.Command, e.Line)
}

// MissingArgumentError reports a command whose token stream ended
// before all operands were consumed.
type MissingArgumentError struct {
	Command string
	Arg     string
	Line    int
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument %q in command %q at line %d", e.Arg, e.Command, e.Line)
}

// BadArgumentError reports an operand token of the wrong shape, such
// as a register where a jump wanted a constant or label.
type BadArgumentError struct {
	Command string
	Arg     string
	Value   string
	Line    int
}

func (e *BadArgumentError) Error() string {
	return fmt.Sprintf("invalid value %q for argument %q in command %q at line %d",
		e.Value, e.Arg, e.Command, e.Line)
}

// ExpectedFoundError reports a token kind mismatch against an operand
// parser's expectation.
type ExpectedFoundError struct {
	Expected string
	Found    string
	Line     int
}

func (e *ExpectedFoundError) Error() string {
	return fmt.Sprintf("expected %s, found %q at line %d", e.Expected, e.Found, e.Line)
}

// Generator error.

// UndefinedLabelError reports a relative jump to a name that never
// appeared as a label definition.
type UndefinedLabelError struct {
	Label LabelRef
}

func (e *UndefinedLabelError) Error() string {
	return fmt.Sprintf("undefined label %q", string(e.Label))
}
