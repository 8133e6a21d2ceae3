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

// The intermediate representation that couples the parser to the
// generator. The parser owns the IR while building it; the generator
// reads it and never mutates it.

// Register is one of the eight 3-bit register addresses.
type Register uint8

// LabelRef is a name-keyed handle for a label. Two references with the
// same name are interchangeable, so the type wraps only the name; the
// resolved address lives in the LabelTable, never in the key.
type LabelRef string

// LabelDef binds a label name to its resolved word address. It is
// created when the parser first encounters the label line and is
// immutable afterwards.
type LabelDef struct {
	Name string
	Addr uint16
}

// LabelTable maps every defined label to its definition. The parser
// fills it during the single scan; the generator only reads it.
type LabelTable map[LabelRef]LabelDef

func (lt LabelTable) ref(def LabelDef) LabelRef {
	lt[LabelRef(def.Name)] = def
	return LabelRef(def.Name)
}

// Op enumerates every operation the CPU can execute.
type Op uint8

const (
	OpAdd Op = iota
	OpAdd3
	OpAddWithCarry
	OpSubtract
	OpSubtractWithCarry
	OpIncrement
	OpDecrement
	OpMultiply
	OpTest
	OpAnd
	OpOr
	OpNot
	OpNegate
	OpXor
	OpXnor
	OpShiftLeft
	OpShiftRight
	OpMove
	OpSet32BitMode
	OpLoadConstant
	OpLoadRAM
	OpStoreRAM
	OpJump // absolute, register target
	OpJumpRelative
	OpNoop
	OpDebug
	OpHalt
)

// Cond is the condition under which a jump is taken.
type Cond uint8

const (
	CondTrue Cond = iota
	CondZero
	CondNotZero
	CondLess
	CondOverflow
)

// JumpKind discriminates the three jump target forms.
type JumpKind uint8

const (
	JumpNone JumpKind = iota
	JumpRegister
	JumpConstant
	JumpLabel
)

// Instruction is one typed operation. Which fields are meaningful
// depends on Op; the register fields are named after the encoding
// slots they occupy (OpLoadRAM keeps its address register in SrcB,
// OpStoreRAM keeps data in SrcA and address in SrcB).
type Instruction struct {
	Op     Op
	Target Register
	SrcA   Register
	SrcB   Register
	SrcC   Register
	Imm    uint16 // load-immediate value or relative-jump constant
	Enable bool   // set32 operand
	Cond   Cond
	Jump   JumpKind
	Label  LabelRef // relative-jump target when Jump == JumpLabel
}

// IR is the parser's result: the start label, the resolved label
// table, and one ordered instruction list per label.
type IR struct {
	Start  LabelRef
	Labels LabelTable
	Blocks map[LabelRef][]Instruction
}

// Operand shapes for the mnemonic dispatch table.
const (
	shapeNullary    = iota // no operands: hlt, nop, dbg
	shapeUnary             // target + source: mov, not, neg, inc, dec
	shapeBinary            // target + two sources
	shapeTernary           // target + three sources: add3
	shapeStatement2        // two sources, no target: tst
	shapeLoadConst         // ldc: target + 16-bit constant
	shapeLoad              // ld: target + address register
	shapeStore             // st: address register + data register
	shapeJumpAbs           // register target
	shapeJumpRel           // constant or label target
	shapeSet32             // boolean operand
)

type opSpec struct {
	op    Op
	shape int
	cond  Cond
}

// mnemonics drives per-instruction parsing: one entry per surface
// mnemonic, giving the operation and its operand shape. The table is
// the single place where assembly spelling meets the instruction set.
var mnemonics = map[string]opSpec{
	"add":   {OpAdd, shapeBinary, CondTrue},
	"add3":  {OpAdd3, shapeTernary, CondTrue},
	"addc":  {OpAddWithCarry, shapeBinary, CondTrue},
	"sub":   {OpSubtract, shapeBinary, CondTrue},
	"subc":  {OpSubtractWithCarry, shapeBinary, CondTrue},
	"inc":   {OpIncrement, shapeUnary, CondTrue},
	"dec":   {OpDecrement, shapeUnary, CondTrue},
	"mul":   {OpMultiply, shapeBinary, CondTrue},
	"tst":   {OpTest, shapeStatement2, CondTrue},
	"and":   {OpAnd, shapeBinary, CondTrue},
	"or":    {OpOr, shapeBinary, CondTrue},
	"not":   {OpNot, shapeUnary, CondTrue},
	"neg":   {OpNegate, shapeUnary, CondTrue},
	"xor":   {OpXor, shapeBinary, CondTrue},
	"xnor":  {OpXnor, shapeBinary, CondTrue},
	"shl":   {OpShiftLeft, shapeBinary, CondTrue},
	"shr":   {OpShiftRight, shapeBinary, CondTrue},
	"mov":   {OpMove, shapeUnary, CondTrue},
	"ldc":   {OpLoadConstant, shapeLoadConst, CondTrue},
	"ld":    {OpLoadRAM, shapeLoad, CondTrue},
	"st":    {OpStoreRAM, shapeStore, CondTrue},
	"set32": {OpSet32BitMode, shapeSet32, CondTrue},
	"hlt":   {OpHalt, shapeNullary, CondTrue},
	"nop":   {OpNoop, shapeNullary, CondTrue},
	"dbg":   {OpDebug, shapeNullary, CondTrue},

	"jmp": {OpJump, shapeJumpAbs, CondTrue},
	"jz":  {OpJump, shapeJumpAbs, CondZero},
	"jnz": {OpJump, shapeJumpAbs, CondNotZero},
	"jc":  {OpJump, shapeJumpAbs, CondLess},
	"jo":  {OpJump, shapeJumpAbs, CondOverflow},

	"jr":   {OpJumpRelative, shapeJumpRel, CondTrue},
	"jzr":  {OpJumpRelative, shapeJumpRel, CondZero},
	"jnzr": {OpJumpRelative, shapeJumpRel, CondNotZero},
	"jcr":  {OpJumpRelative, shapeJumpRel, CondLess},
	"jor":  {OpJumpRelative, shapeJumpRel, CondOverflow},
}

// registerFromName maps both register spellings to the 3-bit address
// space: reg0..reg7 and regA..regH name the same eight registers.
func registerFromName(name string) (Register, bool) {
	if len(name) != 4 || name[:3] != "reg" {
		return 0, false
	}
	switch c := name[3]; {
	case c >= '0' && c <= '7':
		return Register(c - '0'), true
	case c >= 'A' && c <= 'H':
		return Register(c - 'A'), true
	}
	return 0, false
}
