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

import "sort"

// Opcodes of the ALU/control format. None of them set bit 7, which is
// reserved as the immediate-load marker. NOT and Negate intentionally
// share 0x0B: the hardware realizes both the same way and only the
// assembly mnemonic distinguishes them.
var aluOpcode = map[Op]uint8{
	OpAdd:               0x00,
	OpAdd3:              0x01,
	OpAddWithCarry:      0x02,
	OpSubtract:          0x03,
	OpSubtractWithCarry: 0x04,
	OpIncrement:         0x05,
	OpDecrement:         0x06,
	OpMultiply:          0x07,
	OpTest:              0x08,
	OpAnd:               0x09,
	OpOr:                0x0A,
	OpNot:               0x0B,
	OpNegate:            0x0B,
	OpXor:               0x0D,
	OpXnor:              0x0E,
	OpShiftLeft:         0x0F,
	OpShiftRight:        0x10,
	OpMove:              0x48,
	OpSet32BitMode:      0x4A,
	OpStoreRAM:          0x68,
	OpLoadRAM:           0x69,
	OpNoop:              0x6C,
	OpDebug:             0x7E,
	OpHalt:              0x7F,
}

// Jump opcode bases; the condition is added as an offset.
const (
	opcodeJumpAbsolute = 0x50
	opcodeJumpRelative = 0x58
)

// generate emits one word per instruction, visiting labels in
// ascending address order. That order, not token order, is the
// authoritative linearization of the program. Generation is all or
// nothing: an undefined jump label fails the whole run.
func generate(ir *IR) ([]Word, error) {
	labels := make([]LabelDef, 0, len(ir.Blocks))
	for ref := range ir.Blocks {
		labels = append(labels, ir.Labels[ref])
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Addr < labels[j].Addr })

	var words []Word
	for _, def := range labels {
		for i, instr := range ir.Blocks[LabelRef(def.Name)] {
			w, err := encode(instr, def.Addr+uint16(i), ir.Labels)
			if err != nil {
				return nil, err
			}
			words = append(words, w)
		}
	}
	return words, nil
}

// encode packs one instruction into its word. addr is the word address
// the instruction will occupy, needed for relative jump arithmetic.
func encode(instr Instruction, addr uint16, labels LabelTable) (Word, error) {
	var w Word

	switch instr.Op {
	case OpLoadConstant:
		w = w.withLoadFlag().withLoadTarget(instr.Target).withConstant16(instr.Imm)

	case OpJump:
		w = w.withOpcode(opcodeJumpAbsolute + uint8(instr.Cond)).withSrcA(instr.SrcA)

	case OpJumpRelative:
		offset, err := jumpOffset(instr, addr, labels)
		if err != nil {
			return 0, err
		}
		w = w.withOpcode(opcodeJumpRelative + uint8(instr.Cond)).withConstant12(offset)

	case OpSet32BitMode:
		c := uint16(0x00)
		if instr.Enable {
			c = 0xFF
		}
		w = w.withOpcode(aluOpcode[OpSet32BitMode]).withConstant12(c)

	default:
		w = w.withOpcode(aluOpcode[instr.Op]).
			withTarget(instr.Target).
			withSrcA(instr.SrcA).
			withSrcB(instr.SrcB).
			withSrcC(instr.SrcC)
	}
	return w, nil
}

// jumpOffset computes the 12-bit displacement of a relative jump. The
// displacement is relative to the address following the jump itself,
// hence the uniform -1; the subtraction wraps in 16 bits and the
// constant field truncates to 12.
func jumpOffset(instr Instruction, addr uint16, labels LabelTable) (uint16, error) {
	switch instr.Jump {
	case JumpLabel:
		def, ok := labels[instr.Label]
		if !ok {
			return 0, &UndefinedLabelError{Label: instr.Label}
		}
		return def.Addr - (addr + 1), nil
	default:
		return instr.Imm - 1, nil
	}
}
