// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

import (
	"fmt"
	"math"
)

// methodHeaderKind is the low two bits of a method body's first byte,
// ECMA-335 §II.25.4.
type methodHeaderKind uint8

const (
	methodHeaderTiny methodHeaderKind = 0x2
	methodHeaderFat  methodHeaderKind = 0x3
)

// MethodBody is a decoded CIL method body: its header fields plus the
// linear instruction stream. Flags holds the low 12 bits of a fat header
// (0x8: more sections follow, 0x10: zero-initialize locals); it is 0 for a
// tiny header.
type MethodBody struct {
	MaxStack     uint16
	CodeSize     uint32
	LocalVarSig  uint32
	Flags        uint16
	Instructions []Instruction
}

// Instruction is one decoded CIL instruction. Opcode carries the full
// static record (name, operand kind, stack behavior, flow control), not
// just its mnemonic, so callers can inspect flow control or stack effect
// without a second lookup.
type Instruction struct {
	Offset  uint32
	Opcode  *OpcodeInfo
	Operand interface{}
}

func (ins Instruction) String() string {
	if ins.Operand == nil {
		return ins.Opcode.Name
	}
	return fmt.Sprintf("%s %v", ins.Opcode.Name, ins.Operand)
}

// switchOperand is the operand of the switch instruction: a jump table of
// branch displacements relative to the instruction immediately following
// the switch.
type switchOperand struct {
	Targets []int32
}

func (s switchOperand) String() string {
	return fmt.Sprintf("%v", s.Targets)
}

// classifyMethodHeader reports the header kind encoded in the low two
// bits of b.
func classifyMethodHeader(b byte) (methodHeaderKind, error) {
	switch methodHeaderKind(b & 0x3) {
	case methodHeaderTiny:
		return methodHeaderTiny, nil
	case methodHeaderFat:
		return methodHeaderFat, nil
	default:
		return 0, ErrInvalidMethodHeader
	}
}

// decodeMethodBodyAt decodes the method body whose header starts at rva,
// ECMA-335 §II.25.4.
func (img *Image) decodeMethodBodyAt(rva uint32) (*MethodBody, error) {
	offset, err := rvaToOffset(img.pe, rva)
	if err != nil {
		return nil, err
	}
	return img.decodeMethodBody(offset)
}

// decodeMethodBody decodes the method body whose header starts at the
// absolute file offset.
func (img *Image) decodeMethodBody(offset uint32) (*MethodBody, error) {
	first, err := img.pe.ReadUint8(offset)
	if err != nil {
		return nil, ErrTruncated
	}

	kind, err := classifyMethodHeader(first)
	if err != nil {
		return nil, err
	}

	var body MethodBody
	var codeStart uint32

	switch kind {
	case methodHeaderTiny:
		body.MaxStack = 8
		body.CodeSize = uint32(first >> 2)
		codeStart = offset + 1

	case methodHeaderFat:
		flagsAndHeaderSize, err := img.pe.ReadUint16(offset)
		if err != nil {
			return nil, ErrTruncated
		}
		headerSizeDwords := flagsAndHeaderSize >> 12
		if headerSizeDwords != 3 {
			return nil, ErrInvalidMethodHeader
		}
		body.Flags = flagsAndHeaderSize & 0x0FFF
		if body.MaxStack, err = img.pe.ReadUint16(offset + 2); err != nil {
			return nil, ErrTruncated
		}
		if body.CodeSize, err = img.pe.ReadUint32(offset + 4); err != nil {
			return nil, ErrTruncated
		}
		if body.LocalVarSig, err = img.pe.ReadUint32(offset + 8); err != nil {
			return nil, ErrTruncated
		}
		codeStart = offset + 12
	}

	instructions, err := img.decodeInstructions(codeStart, body.CodeSize)
	if err != nil {
		return nil, err
	}
	body.Instructions = instructions
	return &body, nil
}

// decodeInstructions decodes the code_size bytes starting at codeStart
// into a linear instruction stream, ECMA-335 §III.
func (img *Image) decodeInstructions(codeStart, codeSize uint32) ([]Instruction, error) {
	pe := img.pe
	end := codeStart + codeSize
	if end < codeStart {
		return nil, ErrTruncated
	}

	var out []Instruction
	cur := codeStart
	for cur < end {
		insOffset := cur - codeStart

		op1, err := pe.ReadUint8(cur)
		if err != nil {
			return nil, ErrTruncated
		}
		cur++

		var info *OpcodeInfo
		var op2 byte
		if op1 == 0xFE {
			op2, err = pe.ReadUint8(cur)
			if err != nil {
				return nil, ErrTruncated
			}
			cur++
			info, _ = lookupOpcode(0xFE, op2)
		} else {
			info, _ = lookupOpcode(0xFF, op1)
		}
		if info == nil {
			return nil, ErrInvalidOpcode
		}

		operand, consumed, err := readOperand(pe, cur, info.Operand)
		if err != nil {
			return nil, err
		}
		cur += consumed

		out = append(out, Instruction{
			Offset:  insOffset,
			Opcode:  info,
			Operand: operand,
		})
	}
	return out, nil
}

// readOperand reads the wire-encoded operand of kind starting at off,
// returning its decoded value (nil for InlineNone) and the number of
// bytes consumed.
func readOperand(pe *File, off uint32, kind OperandKind) (interface{}, uint32, error) {
	switch kind {
	case InlineNone:
		return nil, 0, nil

	case ShortInlineI, ShortInlineVar:
		v, err := pe.ReadUint8(off)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return v, 1, nil

	case ShortInlineBrTarget:
		v, err := pe.ReadUint8(off)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return int32(int8(v)), 1, nil

	case InlineVar:
		v, err := pe.ReadUint16(off)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return v, 2, nil

	case InlineI, InlineBrTarget:
		v, err := pe.ReadUint32(off)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return int32(v), 4, nil

	case ShortInlineR:
		v, err := pe.ReadUint32(off)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return math.Float32frombits(v), 4, nil

	case InlineI8:
		lo, err := pe.ReadUint32(off)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		hi, err := pe.ReadUint32(off + 4)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return int64(uint64(hi)<<32 | uint64(lo)), 8, nil

	case InlineR:
		lo, err := pe.ReadUint32(off)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		hi, err := pe.ReadUint32(off + 4)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return math.Float64frombits(uint64(hi)<<32 | uint64(lo)), 8, nil

	case InlineField, InlineMethod, InlineSig, InlineString, InlineTok, InlineType:
		v, err := pe.ReadUint32(off)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return MetadataToken(v), 4, nil

	case InlineSwitch:
		n, err := pe.ReadUint32(off)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		targets := make([]int32, n)
		consumed := uint32(4)
		for i := uint32(0); i < n; i++ {
			d, err := pe.ReadUint32(off + consumed)
			if err != nil {
				return nil, 0, ErrTruncated
			}
			targets[i] = int32(d)
			consumed += 4
		}
		return switchOperand{Targets: targets}, consumed, nil

	default:
		return nil, 0, ErrInvalidOpcode
	}
}
