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

// Word is one 20-bit instruction, bit 0 least significant. Two layouts
// share the word, discriminated by bit 7 of the opcode byte:
//
//	ALU/control (bit 7 = 0):
//	  [0..7] opcode, [8..10] srcA, [11..13] srcB,
//	  [14..16] srcC, [17..19] target
//	Immediate load (bit 7 = 1):
//	  [0..3] constant low 4 bits, [4..6] target,
//	  [8..19] constant high 12 bits
//
// All field offsets live in the accessors below; nothing else in the
// package touches raw bit positions.
type Word uint32

const wordMask = 0xFFFFF

func (w Word) withBits(lo, width uint, value uint32) Word {
	mask := uint32(1)<<width - 1
	return Word(uint32(w)&^(mask<<lo) | (value&mask)<<lo)
}

func (w Word) bits(lo, width uint) uint32 {
	return uint32(w) >> lo & (uint32(1)<<width - 1)
}

// ALU/control format fields.

func (w Word) withOpcode(op uint8) Word  { return w.withBits(0, 8, uint32(op)) }
func (w Word) opcode() uint8             { return uint8(w.bits(0, 8)) }
func (w Word) withSrcA(r Register) Word  { return w.withBits(8, 3, uint32(r)) }
func (w Word) srcA() Register            { return Register(w.bits(8, 3)) }
func (w Word) withSrcB(r Register) Word  { return w.withBits(11, 3, uint32(r)) }
func (w Word) srcB() Register            { return Register(w.bits(11, 3)) }
func (w Word) withSrcC(r Register) Word  { return w.withBits(14, 3, uint32(r)) }
func (w Word) srcC() Register            { return Register(w.bits(14, 3)) }
func (w Word) withTarget(r Register) Word { return w.withBits(17, 3, uint32(r)) }
func (w Word) target() Register          { return Register(w.bits(17, 3)) }

// withConstant12 fills the 12-bit constant field used by relative
// jumps and set32. Wider values are truncated.
func (w Word) withConstant12(c uint16) Word { return w.withBits(8, 12, uint32(c)) }
func (w Word) constant12() uint16           { return uint16(w.bits(8, 12)) }

// Immediate-load format fields. The load flag is bit 7, which no
// ALU/control opcode ever sets.

func (w Word) withLoadFlag() Word { return w.withBits(7, 1, 1) }
func (w Word) isLoad() bool       { return w.bits(7, 1) == 1 }

func (w Word) withLoadTarget(r Register) Word { return w.withBits(4, 3, uint32(r)) }
func (w Word) loadTarget() Register           { return Register(w.bits(4, 3)) }

func (w Word) withConstant16(c uint16) Word {
	return w.withBits(0, 4, uint32(c&0xF)).withBits(8, 12, uint32(c>>4))
}

func (w Word) constant16() uint16 {
	return uint16(w.bits(8, 12)<<4 | w.bits(0, 4))
}

// String renders the word as exactly 5 hex digits, most significant
// nibble first.
func (w Word) String() string {
	return fmt.Sprintf("%05x", uint32(w)&wordMask)
}
