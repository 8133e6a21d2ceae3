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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordAluFields(t *testing.T) {
	var w Word
	w = w.withOpcode(0x48).withSrcA(1).withSrcB(2).withSrcC(3).withTarget(4)

	assert.Equal(t, uint8(0x48), w.opcode())
	assert.Equal(t, Register(1), w.srcA())
	assert.Equal(t, Register(2), w.srcB())
	assert.Equal(t, Register(3), w.srcC())
	assert.Equal(t, Register(4), w.target())
	assert.False(t, w.isLoad())
}

func TestWordFieldsDontOverlap(t *testing.T) {
	var w Word
	w = w.withOpcode(0x7F).withSrcA(7).withSrcB(7).withSrcC(7).withTarget(7)
	assert.Equal(t, uint8(0x7F), w.opcode())

	// rewriting one field leaves the others alone
	w = w.withSrcB(0)
	assert.Equal(t, Register(7), w.srcA())
	assert.Equal(t, Register(0), w.srcB())
	assert.Equal(t, Register(7), w.srcC())
	assert.Equal(t, Register(7), w.target())
}

func TestWordLoadRoundTrip(t *testing.T) {
	// encoding then decoding a load recovers (target, constant) exactly
	for reg := 0; reg < 8; reg++ {
		for c := 0; c <= 0xFFFF; c += 251 {
			var w Word
			w = w.withLoadFlag().withLoadTarget(Register(reg)).withConstant16(uint16(c))

			require.True(t, w.isLoad())
			require.Equal(t, Register(reg), w.loadTarget())
			require.Equal(t, uint16(c), w.constant16())
		}
	}
}

func TestWordLoadLayout(t *testing.T) {
	// ldc reg0 0x05: low4 = 5, target = 0, bit 7 set, high12 = 0
	var w Word
	w = w.withLoadFlag().withLoadTarget(0).withConstant16(5)
	assert.Equal(t, Word(0x00085), w)
}

func TestWordConstant12(t *testing.T) {
	var w Word
	w = w.withConstant12(0xFF8)
	assert.Equal(t, uint16(0xFF8), w.constant12())

	// wider values truncate to 12 bits
	w = Word(0).withConstant12(0xFFF8)
	assert.Equal(t, uint16(0xFF8), w.constant12())
}

func TestWordString(t *testing.T) {
	assert.Equal(t, "0007f", Word(0x7F).String())
	assert.Equal(t, "fff4a", Word(0xFFF4A).String())
	assert.Equal(t, "00000", Word(0).String())

	// only the low 20 bits render
	assert.Equal(t, "00085", Word(0xF00085).String())
}
