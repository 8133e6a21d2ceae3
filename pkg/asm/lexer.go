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
	"bufio"
	"io"
	"strconv"
	"strings"
)

// lex turns the source into a flat token sequence. A bad line is
// reported and skipped so that one run collects every lexical error;
// only a read failure on the underlying source aborts immediately.
// On success the sequence always ends in a hlt mnemonic, appended if
// the source did not provide one.
func lex(name string, r io.Reader) ([]token, []error) {
	var tokens []token
	var errs []error

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := lexLine(&tokens, sc.Text(), line); err != nil {
			errs = append(errs, err)
		}
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, &ReadError{Source: name, Err: err})
		return nil, errs
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if n := len(tokens); n == 0 || tokens[n-1].kind() != tkMnemonic || tokens[n-1].text != "hlt" {
		tokens = append(tokens, token{tokenKind: tkMnemonic, text: "hlt", line: line})
	}
	return tokens, nil
}

// lexLine classifies one physical line. A line whose trimmed content
// ends in ':' defines a label. A line with leading whitespace is an
// instruction: mnemonic first, then operand words, with a comment
// stripped from the first ';'. Anything else is skipped.
func lexLine(tokens *[]token, raw string, line int) error {
	stripped := strings.TrimSpace(raw)
	if stripped == "" {
		return nil
	}

	if strings.HasSuffix(stripped, ":") {
		*tokens = append(*tokens, token{tokenKind: tkLabel, text: stripped[:len(stripped)-1], line: line})
		return nil
	}

	if raw[0] != ' ' && raw[0] != '\t' {
		return nil
	}

	if i := strings.IndexByte(stripped, ';'); i >= 0 {
		stripped = strings.TrimSpace(stripped[:i])
	}
	words := strings.Fields(stripped)
	if len(words) == 0 {
		return nil
	}

	*tokens = append(*tokens, token{tokenKind: tkMnemonic, text: words[0], line: line})
	for _, word := range words[1:] {
		tk, err := classifyOperand(word, line)
		if err != nil {
			return err
		}
		*tokens = append(*tokens, tk)
	}
	return nil
}

// classifyOperand maps one operand word to a token. The precedence is
// register marker, boolean, numeral, register spelling, bare label.
// A bare word naming a command is illegal in operand position.
func classifyOperand(word string, line int) (token, error) {
	if word[0] == '%' {
		name := word[1:]
		if name == "" || !isAlphanumeric(name) {
			return token{}, &InvalidRegisterError{Text: word, Line: line}
		}
		return token{tokenKind: tkRegister, text: name, line: line}, nil
	}

	if word == "true" || word == "false" {
		return token{tokenKind: tkBoolean, text: word, flag: word == "true", line: line}, nil
	}

	if value, ok := lexNumeral(word); ok {
		return token{tokenKind: tkConstant, text: word, value: value, line: line}, nil
	}
	if word[0] == '-' || (word[0] >= '0' && word[0] <= '9') {
		// looked numeric but didn't parse
		return token{}, &InvalidIdentifierError{Text: word, Line: line}
	}

	if _, ok := registerFromName(word); ok {
		return token{tokenKind: tkRegister, text: word, line: line}, nil
	}

	if !isAlphanumeric(word) {
		return token{}, &InvalidIdentifierError{Text: word, Line: line}
	}
	if _, ok := mnemonics[word]; ok {
		return token{}, &CommandInOperandError{Command: word, Line: line}
	}
	return token{tokenKind: tkLabel, text: word, line: line}, nil
}

// lexNumeral parses a decimal, 0x-hex or 0b-binary literal with an
// optional leading '-', wrapping the mathematical value into 16-bit
// two's complement ("-0x01" is 0xFFFF).
func lexNumeral(word string) (uint16, bool) {
	s := word
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	base := 10
	switch {
	case strings.HasPrefix(s, "0x"):
		base = 16
		s = s[2:]
	case strings.HasPrefix(s, "0b"):
		base = 2
		s = s[2:]
	}
	if s == "" || s[0] < '0' || s[0] > '9' {
		if base == 10 {
			return 0, false
		}
	}

	value, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, false
	}
	n := uint16(value)
	if negative {
		n = -n
	}
	return n, true
}

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			continue
		}
		return false
	}
	return true
}
