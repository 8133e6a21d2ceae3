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

// parser walks the token sequence exactly once, left to right.
// The state threaded through the scan is the most recently defined
// label and the number of instructions emitted under it; a new label
// resolves to lastLabel.Addr + that count.
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) next() (*token, bool) {
	if p.pos >= len(p.tokens) {
		return nil, false
	}
	tk := &p.tokens[p.pos]
	p.pos++
	return tk, true
}

// parse builds the IR or fails with the first fatal error. A program
// that does not open with a label gets the synthetic start label
// "main" at address 0.
func parse(tokens []token) (*IR, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyProgram
	}

	p := &parser{tokens: tokens}
	ir := &IR{
		Labels: make(LabelTable),
		Blocks: make(map[LabelRef][]Instruction),
	}

	last := LabelDef{Name: "main", Addr: 0}
	if tokens[0].kind() == tkLabel {
		last = LabelDef{Name: tokens[0].text, Addr: 0}
		p.pos = 1
	}
	ref := ir.Labels.ref(last)
	ir.Start = ref
	ir.Blocks[ref] = nil

	sinceLabel := uint16(0)
	for {
		tk, ok := p.next()
		if !ok {
			return ir, nil
		}

		if tk.kind() == tkLabel {
			last = LabelDef{Name: tk.text, Addr: last.Addr + sinceLabel}
			ref = ir.Labels.ref(last)
			ir.Blocks[ref] = nil
			sinceLabel = 0
			continue
		}

		instr, err := p.parseInstruction(tk)
		if err != nil {
			return nil, err
		}
		ir.Blocks[ref] = append(ir.Blocks[ref], instr)
		sinceLabel++
	}
}

// parseInstruction dispatches on the mnemonic table. Each shape
// consumes exactly the operand tokens it needs.
func (p *parser) parseInstruction(tk *token) (Instruction, error) {
	if tk.kind() != tkMnemonic {
		return Instruction{}, &UnknownCommandError{Command: tk.text, Line: tk.line}
	}
	spec, ok := mnemonics[tk.text]
	if !ok {
		return Instruction{}, &UnknownCommandError{Command: tk.text, Line: tk.line}
	}

	instr := Instruction{Op: spec.op, Cond: spec.cond}
	var err error

	switch spec.shape {
	case shapeNullary:
		// no operands

	case shapeUnary:
		if instr.Target, err = p.register(tk, "TargetRegister"); err != nil {
			return Instruction{}, err
		}
		if instr.SrcA, err = p.register(tk, "SourceRegister"); err != nil {
			return Instruction{}, err
		}

	case shapeBinary:
		if instr.Target, err = p.register(tk, "TargetRegister"); err != nil {
			return Instruction{}, err
		}
		if instr.SrcA, err = p.register(tk, "SourceRegisterA"); err != nil {
			return Instruction{}, err
		}
		if instr.SrcB, err = p.register(tk, "SourceRegisterB"); err != nil {
			return Instruction{}, err
		}

	case shapeTernary:
		if instr.Target, err = p.register(tk, "TargetRegister"); err != nil {
			return Instruction{}, err
		}
		if instr.SrcA, err = p.register(tk, "SourceRegisterA"); err != nil {
			return Instruction{}, err
		}
		if instr.SrcB, err = p.register(tk, "SourceRegisterB"); err != nil {
			return Instruction{}, err
		}
		if instr.SrcC, err = p.register(tk, "SourceRegisterC"); err != nil {
			return Instruction{}, err
		}

	case shapeStatement2:
		if instr.SrcA, err = p.register(tk, "SourceRegisterA"); err != nil {
			return Instruction{}, err
		}
		if instr.SrcB, err = p.register(tk, "SourceRegisterB"); err != nil {
			return Instruction{}, err
		}

	case shapeLoadConst:
		if instr.Target, err = p.register(tk, "TargetRegister"); err != nil {
			return Instruction{}, err
		}
		if instr.Imm, err = p.constant(tk, "Constant16"); err != nil {
			return Instruction{}, err
		}

	case shapeLoad:
		// ld target addressRegister; the address register occupies
		// the SrcB encoding slot
		if instr.Target, err = p.register(tk, "TargetRegister"); err != nil {
			return Instruction{}, err
		}
		if instr.SrcB, err = p.register(tk, "AddressRegister"); err != nil {
			return Instruction{}, err
		}

	case shapeStore:
		// st addressRegister dataRegister; no target field
		if instr.SrcB, err = p.register(tk, "AddressRegister"); err != nil {
			return Instruction{}, err
		}
		if instr.SrcA, err = p.register(tk, "DataRegister"); err != nil {
			return Instruction{}, err
		}

	case shapeJumpAbs:
		operand, ok := p.next()
		if !ok {
			return Instruction{}, &MissingArgumentError{Command: tk.text, Arg: "DestinationRegister", Line: tk.line}
		}
		reg, regErr := registerFromToken(operand)
		if regErr != nil {
			return Instruction{}, &BadArgumentError{
				Command: tk.text, Arg: "DestinationRegister", Value: operand.text, Line: operand.line,
			}
		}
		instr.Jump = JumpRegister
		instr.SrcA = reg

	case shapeJumpRel:
		operand, ok := p.next()
		if !ok {
			return Instruction{}, &MissingArgumentError{Command: tk.text, Arg: "ConstantSigned12 or JumpLabel", Line: tk.line}
		}
		switch operand.kind() {
		case tkConstant:
			instr.Jump = JumpConstant
			instr.Imm = operand.value
		case tkLabel:
			// forward references are fine; the generator resolves
			// the name against the finished label table
			instr.Jump = JumpLabel
			instr.Label = LabelRef(operand.text)
		default:
			return Instruction{}, &BadArgumentError{
				Command: tk.text, Arg: "ConstantSigned12 or JumpLabel", Value: operand.text, Line: operand.line,
			}
		}

	case shapeSet32:
		operand, ok := p.next()
		if !ok {
			return Instruction{}, &MissingArgumentError{Command: tk.text, Arg: "Enable", Line: tk.line}
		}
		if operand.kind() != tkBoolean {
			return Instruction{}, &BadArgumentError{
				Command: tk.text, Arg: "Enable", Value: operand.text, Line: operand.line,
			}
		}
		instr.Enable = operand.flag
	}

	return instr, nil
}

// register consumes the next token as a register operand.
func (p *parser) register(cmd *token, arg string) (Register, error) {
	tk, ok := p.next()
	if !ok {
		return 0, &MissingArgumentError{Command: cmd.text, Arg: arg, Line: cmd.line}
	}
	return registerFromToken(tk)
}

func registerFromToken(tk *token) (Register, error) {
	if tk.kind() != tkRegister {
		return 0, &ExpectedFoundError{Expected: "register operand", Found: tk.text, Line: tk.line}
	}
	reg, ok := registerFromName(tk.text)
	if !ok {
		return 0, &ExpectedFoundError{Expected: "valid register number (0..7 | A..H)", Found: tk.text, Line: tk.line}
	}
	return reg, nil
}

// constant consumes the next token as a 16-bit constant operand.
func (p *parser) constant(cmd *token, arg string) (uint16, error) {
	tk, ok := p.next()
	if !ok {
		return 0, &MissingArgumentError{Command: cmd.text, Arg: arg, Line: cmd.line}
	}
	if tk.kind() != tkConstant {
		return 0, &ExpectedFoundError{Expected: "constant operand", Found: tk.text, Line: tk.line}
	}
	return tk.value, nil
}
