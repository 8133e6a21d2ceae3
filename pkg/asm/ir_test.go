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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSpellings(t *testing.T) {
	// reg0..reg7 and regA..regH name the same eight registers
	for i := 0; i < 8; i++ {
		digit := fmt.Sprintf("reg%c", '0'+i)
		letter := fmt.Sprintf("reg%c", 'A'+i)

		rd, ok := registerFromName(digit)
		require.True(t, ok, digit)
		rl, ok := registerFromName(letter)
		require.True(t, ok, letter)

		assert.Equal(t, Register(i), rd)
		assert.Equal(t, rd, rl)
	}
}

func TestRegisterBadSpellings(t *testing.T) {
	for _, name := range []string{"", "reg", "reg8", "regI", "rega", "reg00", "r0", "reg-1"} {
		_, ok := registerFromName(name)
		assert.False(t, ok, name)
	}
}

func TestLabelTable(t *testing.T) {
	lt := make(LabelTable)
	ref := lt.ref(LabelDef{Name: "loop", Addr: 7})
	assert.Equal(t, LabelRef("loop"), ref)

	// references are interchangeable by name
	def, ok := lt[LabelRef("loop")]
	require.True(t, ok)
	assert.Equal(t, uint16(7), def.Addr)
}

func TestMnemonicTable(t *testing.T) {
	// every operation is reachable from exactly the documented spelling
	spellings := map[Op]string{
		OpAdd: "add", OpAdd3: "add3", OpAddWithCarry: "addc",
		OpSubtract: "sub", OpSubtractWithCarry: "subc",
		OpIncrement: "inc", OpDecrement: "dec", OpMultiply: "mul",
		OpTest: "tst", OpAnd: "and", OpOr: "or", OpNot: "not",
		OpNegate: "neg", OpXor: "xor", OpXnor: "xnor",
		OpShiftLeft: "shl", OpShiftRight: "shr", OpMove: "mov",
		OpSet32BitMode: "set32", OpLoadConstant: "ldc",
		OpLoadRAM: "ld", OpStoreRAM: "st",
		OpNoop: "nop", OpDebug: "dbg", OpHalt: "hlt",
	}
	for op, name := range spellings {
		spec, ok := mnemonics[name]
		require.True(t, ok, name)
		assert.Equal(t, op, spec.op, name)
	}

	conds := map[string]Cond{
		"jmp": CondTrue, "jz": CondZero, "jnz": CondNotZero, "jc": CondLess, "jo": CondOverflow,
		"jr": CondTrue, "jzr": CondZero, "jnzr": CondNotZero, "jcr": CondLess, "jor": CondOverflow,
	}
	for name, cond := range conds {
		spec, ok := mnemonics[name]
		require.True(t, ok, name)
		assert.Equal(t, cond, spec.cond, name)
	}
}
