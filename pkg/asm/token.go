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

import "fmt"

// Token kinds
const (
	tkMnemonic = iota
	tkRegister
	tkConstant
	tkBoolean
	tkLabel
)

var kindToString = []string{
	"command",
	"register",
	"constant",
	"boolean",
	"label",
}

// token is one lexed word of the source. text holds the name for
// mnemonics, registers and labels and the original spelling for
// constants and booleans; value and flag hold the parsed payloads.
// Every token remembers the source line it came from.
type token struct {
	tokenKind int
	text      string
	value     uint16 // constant payload, 16-bit two's-complement wrapped
	flag      bool   // boolean payload
	line      int
}

func (t *token) String() string {
	return fmt.Sprintf("{%s %s line %d}", kindToString[t.tokenKind], t.text, t.line)
}

func (t *token) kind() int {
	return t.tokenKind
}
