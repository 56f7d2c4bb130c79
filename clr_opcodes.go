// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

// OperandKind identifies the wire encoding of a CIL instruction's operand,
// ECMA-335 §VI.C.2.
type OperandKind uint8

const (
	InlineNone OperandKind = iota
	ShortInlineI
	ShortInlineVar
	ShortInlineBrTarget
	InlineVar
	InlineI
	InlineBrTarget
	ShortInlineR
	InlineI8
	InlineR
	InlineField
	InlineMethod
	InlineSig
	InlineString
	InlineTok
	InlineType
	InlineSwitch
)

// StackBehavior describes the shape of an instruction's operand-stack
// effect. It is descriptive only: this decoder does not model stack
// contents, only carries the behavior through for consumers.
type StackBehavior uint8

const (
	Pop0 StackBehavior = iota
	Pop1
	Pop1Pop1
	PopI
	PopIPop1
	PopIPopI
	PopIPopIPopI
	PopIPopI8
	PopIPopR4
	PopIPopR8
	PopRef
	PopRefPopI
	PopRefPopIPopI
	PopRefPopIPopI8
	PopRefPopIPopR4
	PopRefPopIPopR8
	PopRefPopIPopRef
	PopRefPopIPop1
	VarPop
	Push0
	Push1
	Push1Push1
	PushI
	PushI8
	PushR4
	PushR8
	PushRef
	VarPush
)

// FlowControl classifies how an instruction affects the instruction
// pointer.
type FlowControl uint8

const (
	FlowNext FlowControl = iota
	FlowCall
	FlowReturn
	FlowBranch
	FlowCondBranch
	FlowSwitch
	FlowThrow
	FlowBreak
	FlowMeta
)

// OpcodeInfo is the static record describing one CIL opcode.
type OpcodeInfo struct {
	Name    string
	Operand OperandKind
	Pop     StackBehavior
	Push    StackBehavior
	Flow    FlowControl
}

var oneByteOpcodes [256]*OpcodeInfo
var twoByteOpcodes [256]*OpcodeInfo

type opcodeEntry struct {
	op1, op2 byte
	name     string
	operand  OperandKind
	pop      StackBehavior
	push     StackBehavior
	flow     FlowControl
}

// opcodeTable enumerates every assigned (op1, op2) pair, ECMA-335 §III.
// op1 == 0xFF denotes the one-byte space, keyed by op2; op1 == 0xFE
// denotes the two-byte space escaped by a leading 0xFE, keyed by op2.
var opcodeTable = []opcodeEntry{
	{0xFF, 0x00, "nop", InlineNone, Pop0, Push0, FlowNext},
	{0xFF, 0x01, "break", InlineNone, Pop0, Push0, FlowBreak},
	{0xFF, 0x02, "ldarg.0", InlineNone, Pop0, Push1, FlowNext},
	{0xFF, 0x03, "ldarg.1", InlineNone, Pop0, Push1, FlowNext},
	{0xFF, 0x04, "ldarg.2", InlineNone, Pop0, Push1, FlowNext},
	{0xFF, 0x05, "ldarg.3", InlineNone, Pop0, Push1, FlowNext},
	{0xFF, 0x06, "ldloc.0", InlineNone, Pop0, Push1, FlowNext},
	{0xFF, 0x07, "ldloc.1", InlineNone, Pop0, Push1, FlowNext},
	{0xFF, 0x08, "ldloc.2", InlineNone, Pop0, Push1, FlowNext},
	{0xFF, 0x09, "ldloc.3", InlineNone, Pop0, Push1, FlowNext},
	{0xFF, 0x0A, "stloc.0", InlineNone, Pop1, Push0, FlowNext},
	{0xFF, 0x0B, "stloc.1", InlineNone, Pop1, Push0, FlowNext},
	{0xFF, 0x0C, "stloc.2", InlineNone, Pop1, Push0, FlowNext},
	{0xFF, 0x0D, "stloc.3", InlineNone, Pop1, Push0, FlowNext},
	{0xFF, 0x0E, "ldarg.s", ShortInlineVar, Pop0, Push1, FlowNext},
	{0xFF, 0x0F, "ldarga.s", ShortInlineVar, Pop0, PushI, FlowNext},
	{0xFF, 0x10, "starg.s", ShortInlineVar, Pop1, Push0, FlowNext},
	{0xFF, 0x11, "ldloc.s", ShortInlineVar, Pop0, Push1, FlowNext},
	{0xFF, 0x12, "ldloca.s", ShortInlineVar, Pop0, PushI, FlowNext},
	{0xFF, 0x13, "stloc.s", ShortInlineVar, Pop1, Push0, FlowNext},
	{0xFF, 0x14, "ldnull", InlineNone, Pop0, PushRef, FlowNext},
	{0xFF, 0x15, "ldc.i4.m1", InlineNone, Pop0, PushI, FlowNext},
	{0xFF, 0x16, "ldc.i4.0", InlineNone, Pop0, PushI, FlowNext},
	{0xFF, 0x17, "ldc.i4.1", InlineNone, Pop0, PushI, FlowNext},
	{0xFF, 0x18, "ldc.i4.2", InlineNone, Pop0, PushI, FlowNext},
	{0xFF, 0x19, "ldc.i4.3", InlineNone, Pop0, PushI, FlowNext},
	{0xFF, 0x1A, "ldc.i4.4", InlineNone, Pop0, PushI, FlowNext},
	{0xFF, 0x1B, "ldc.i4.5", InlineNone, Pop0, PushI, FlowNext},
	{0xFF, 0x1C, "ldc.i4.6", InlineNone, Pop0, PushI, FlowNext},
	{0xFF, 0x1D, "ldc.i4.7", InlineNone, Pop0, PushI, FlowNext},
	{0xFF, 0x1E, "ldc.i4.8", InlineNone, Pop0, PushI, FlowNext},
	{0xFF, 0x1F, "ldc.i4.s", ShortInlineI, Pop0, PushI, FlowNext},
	{0xFF, 0x20, "ldc.i4", InlineI, Pop0, PushI, FlowNext},
	{0xFF, 0x21, "ldc.i8", InlineI8, Pop0, PushI8, FlowNext},
	{0xFF, 0x22, "ldc.r4", ShortInlineR, Pop0, PushR4, FlowNext},
	{0xFF, 0x23, "ldc.r8", InlineR, Pop0, PushR8, FlowNext},
	{0xFF, 0x25, "dup", InlineNone, Pop1, Push1Push1, FlowNext},
	{0xFF, 0x26, "pop", InlineNone, Pop1, Push0, FlowNext},
	{0xFF, 0x27, "jmp", InlineMethod, Pop0, Push0, FlowCall},
	{0xFF, 0x28, "call", InlineMethod, VarPop, VarPush, FlowCall},
	{0xFF, 0x29, "calli", InlineSig, VarPop, VarPush, FlowCall},
	{0xFF, 0x2A, "ret", InlineNone, VarPop, Push0, FlowReturn},
	{0xFF, 0x2B, "br.s", ShortInlineBrTarget, Pop0, Push0, FlowBranch},
	{0xFF, 0x2C, "brfalse.s", ShortInlineBrTarget, PopI, Push0, FlowCondBranch},
	{0xFF, 0x2D, "brtrue.s", ShortInlineBrTarget, PopI, Push0, FlowCondBranch},
	{0xFF, 0x2E, "beq.s", ShortInlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x2F, "bge.s", ShortInlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x30, "bgt.s", ShortInlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x31, "ble.s", ShortInlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x32, "blt.s", ShortInlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x33, "bne.un.s", ShortInlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x34, "bge.un.s", ShortInlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x35, "bgt.un.s", ShortInlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x36, "ble.un.s", ShortInlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x37, "blt.un.s", ShortInlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x38, "br", InlineBrTarget, Pop0, Push0, FlowBranch},
	{0xFF, 0x39, "brfalse", InlineBrTarget, PopI, Push0, FlowCondBranch},
	{0xFF, 0x3A, "brtrue", InlineBrTarget, PopI, Push0, FlowCondBranch},
	{0xFF, 0x3B, "beq", InlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x3C, "bge", InlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x3D, "bgt", InlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x3E, "ble", InlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x3F, "blt", InlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x40, "bne.un", InlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x41, "bge.un", InlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x42, "bgt.un", InlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x43, "ble.un", InlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x44, "blt.un", InlineBrTarget, Pop1Pop1, Push0, FlowCondBranch},
	{0xFF, 0x45, "switch", InlineSwitch, PopI, Push0, FlowCondBranch},
	{0xFF, 0x46, "ldind.i1", InlineNone, PopI, PushI, FlowNext},
	{0xFF, 0x47, "ldind.u1", InlineNone, PopI, PushI, FlowNext},
	{0xFF, 0x48, "ldind.i2", InlineNone, PopI, PushI, FlowNext},
	{0xFF, 0x49, "ldind.u2", InlineNone, PopI, PushI, FlowNext},
	{0xFF, 0x4A, "ldind.i4", InlineNone, PopI, PushI, FlowNext},
	{0xFF, 0x4B, "ldind.u4", InlineNone, PopI, PushI, FlowNext},
	{0xFF, 0x4C, "ldind.i8", InlineNone, PopI, PushI8, FlowNext},
	{0xFF, 0x4D, "ldind.i", InlineNone, PopI, PushI, FlowNext},
	{0xFF, 0x4E, "ldind.r4", InlineNone, PopI, PushR4, FlowNext},
	{0xFF, 0x4F, "ldind.r8", InlineNone, PopI, PushR8, FlowNext},
	{0xFF, 0x50, "ldind.ref", InlineNone, PopI, PushRef, FlowNext},
	{0xFF, 0x51, "stind.ref", InlineNone, PopIPopI, Push0, FlowNext},
	{0xFF, 0x52, "stind.i1", InlineNone, PopIPopI, Push0, FlowNext},
	{0xFF, 0x53, "stind.i2", InlineNone, PopIPopI, Push0, FlowNext},
	{0xFF, 0x54, "stind.i4", InlineNone, PopIPopI, Push0, FlowNext},
	{0xFF, 0x55, "stind.i8", InlineNone, PopIPopI8, Push0, FlowNext},
	{0xFF, 0x56, "stind.r4", InlineNone, PopIPopR4, Push0, FlowNext},
	{0xFF, 0x57, "stind.r8", InlineNone, PopIPopR8, Push0, FlowNext},
	{0xFF, 0x58, "add", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x59, "sub", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x5A, "mul", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x5B, "div", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x5C, "div.un", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x5D, "rem", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x5E, "rem.un", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x5F, "and", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x60, "or", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x61, "xor", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x62, "shl", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x63, "shr", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x64, "shr.un", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0x65, "neg", InlineNone, Pop1, Push1, FlowNext},
	{0xFF, 0x66, "not", InlineNone, Pop1, Push1, FlowNext},
	{0xFF, 0x67, "conv.i1", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x68, "conv.i2", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x69, "conv.i4", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x6A, "conv.i8", InlineNone, Pop1, PushI8, FlowNext},
	{0xFF, 0x6B, "conv.r4", InlineNone, Pop1, PushR4, FlowNext},
	{0xFF, 0x6C, "conv.r8", InlineNone, Pop1, PushR8, FlowNext},
	{0xFF, 0x6D, "conv.u4", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x6E, "conv.u8", InlineNone, Pop1, PushI8, FlowNext},
	{0xFF, 0x6F, "callvirt", InlineMethod, VarPop, VarPush, FlowCall},
	{0xFF, 0x70, "cpobj", InlineType, PopIPopI, Push0, FlowNext},
	{0xFF, 0x71, "ldobj", InlineType, PopI, Push1, FlowNext},
	{0xFF, 0x72, "ldstr", InlineString, Pop0, PushRef, FlowNext},
	{0xFF, 0x73, "newobj", InlineMethod, VarPop, PushRef, FlowCall},
	{0xFF, 0x74, "castclass", InlineType, PopRef, PushRef, FlowNext},
	{0xFF, 0x75, "isinst", InlineType, PopRef, PushI, FlowNext},
	{0xFF, 0x76, "conv.r.un", InlineNone, Pop1, PushR8, FlowNext},
	{0xFF, 0x79, "unbox", InlineType, PopRef, PushI, FlowNext},
	{0xFF, 0x7A, "throw", InlineNone, PopRef, Push0, FlowThrow},
	{0xFF, 0x7B, "ldfld", InlineField, PopRef, Push1, FlowNext},
	{0xFF, 0x7C, "ldflda", InlineField, PopRef, PushI, FlowNext},
	{0xFF, 0x7D, "stfld", InlineField, PopRefPopI, Push0, FlowNext},
	{0xFF, 0x7E, "ldsfld", InlineField, Pop0, Push1, FlowNext},
	{0xFF, 0x7F, "ldsflda", InlineField, Pop0, PushI, FlowNext},
	{0xFF, 0x80, "stsfld", InlineField, Pop1, Push0, FlowNext},
	{0xFF, 0x81, "stobj", InlineType, PopIPop1, Push0, FlowNext},
	{0xFF, 0x82, "conv.ovf.i1.un", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x83, "conv.ovf.i2.un", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x84, "conv.ovf.i4.un", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x85, "conv.ovf.i8.un", InlineNone, Pop1, PushI8, FlowNext},
	{0xFF, 0x86, "conv.ovf.u1.un", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x87, "conv.ovf.u2.un", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x88, "conv.ovf.u4.un", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x89, "conv.ovf.u8.un", InlineNone, Pop1, PushI8, FlowNext},
	{0xFF, 0x8A, "conv.ovf.i.un", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x8B, "conv.ovf.u.un", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0x8C, "box", InlineType, Pop1, PushRef, FlowNext},
	{0xFF, 0x8D, "newarr", InlineType, PopI, PushRef, FlowNext},
	{0xFF, 0x8E, "ldlen", InlineNone, PopRef, PushI, FlowNext},
	{0xFF, 0x8F, "ldelema", InlineType, PopRefPopI, PushI, FlowNext},
	{0xFF, 0x90, "ldelem.i1", InlineNone, PopRefPopI, PushI, FlowNext},
	{0xFF, 0x91, "ldelem.u1", InlineNone, PopRefPopI, PushI, FlowNext},
	{0xFF, 0x92, "ldelem.i2", InlineNone, PopRefPopI, PushI, FlowNext},
	{0xFF, 0x93, "ldelem.u2", InlineNone, PopRefPopI, PushI, FlowNext},
	{0xFF, 0x94, "ldelem.i4", InlineNone, PopRefPopI, PushI, FlowNext},
	{0xFF, 0x95, "ldelem.u4", InlineNone, PopRefPopI, PushI, FlowNext},
	{0xFF, 0x96, "ldelem.i8", InlineNone, PopRefPopI, PushI8, FlowNext},
	{0xFF, 0x97, "ldelem.i", InlineNone, PopRefPopI, PushI, FlowNext},
	{0xFF, 0x98, "ldelem.r4", InlineNone, PopRefPopI, PushR4, FlowNext},
	{0xFF, 0x99, "ldelem.r8", InlineNone, PopRefPopI, PushR8, FlowNext},
	{0xFF, 0x9A, "ldelem.ref", InlineNone, PopRefPopI, PushRef, FlowNext},
	{0xFF, 0x9B, "stelem.i", InlineNone, PopRefPopIPopI, Push0, FlowNext},
	{0xFF, 0x9C, "stelem.i1", InlineNone, PopRefPopIPopI, Push0, FlowNext},
	{0xFF, 0x9D, "stelem.i2", InlineNone, PopRefPopIPopI, Push0, FlowNext},
	{0xFF, 0x9E, "stelem.i4", InlineNone, PopRefPopIPopI, Push0, FlowNext},
	{0xFF, 0x9F, "stelem.i8", InlineNone, PopRefPopIPopI8, Push0, FlowNext},
	{0xFF, 0xA0, "stelem.r4", InlineNone, PopRefPopIPopR4, Push0, FlowNext},
	{0xFF, 0xA1, "stelem.r8", InlineNone, PopRefPopIPopR8, Push0, FlowNext},
	{0xFF, 0xA2, "stelem.ref", InlineNone, PopRefPopIPopRef, Push0, FlowNext},
	{0xFF, 0xA3, "ldelem", InlineType, PopRefPopI, Push1, FlowNext},
	{0xFF, 0xA4, "stelem", InlineType, PopRefPopIPop1, Push0, FlowNext},
	{0xFF, 0xA5, "unbox.any", InlineType, PopRef, Push1, FlowNext},
	{0xFF, 0xB3, "conv.ovf.i1", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xB4, "conv.ovf.u1", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xB5, "conv.ovf.i2", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xB6, "conv.ovf.u2", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xB7, "conv.ovf.i4", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xB8, "conv.ovf.u4", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xB9, "conv.ovf.i8", InlineNone, Pop1, PushI8, FlowNext},
	{0xFF, 0xBA, "conv.ovf.u8", InlineNone, Pop1, PushI8, FlowNext},
	{0xFF, 0xC2, "refanyval", InlineType, Pop1, PushI, FlowNext},
	{0xFF, 0xC3, "ckfinite", InlineNone, Pop1, PushR8, FlowNext},
	{0xFF, 0xC6, "mkrefany", InlineType, PopI, Push1, FlowNext},
	{0xFF, 0xD0, "ldtoken", InlineTok, Pop0, PushI, FlowNext},
	{0xFF, 0xD1, "conv.u2", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xD2, "conv.u1", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xD3, "conv.i", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xD4, "conv.ovf.i", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xD5, "conv.ovf.u", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xD6, "add.ovf", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0xD7, "add.ovf.un", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0xD8, "mul.ovf", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0xD9, "mul.ovf.un", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0xDA, "sub.ovf", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0xDB, "sub.ovf.un", InlineNone, Pop1Pop1, Push1, FlowNext},
	{0xFF, 0xDC, "endfinally", InlineNone, Pop0, Push0, FlowReturn},
	{0xFF, 0xDD, "leave", InlineBrTarget, Pop0, Push0, FlowBranch},
	{0xFF, 0xDE, "leave.s", ShortInlineBrTarget, Pop0, Push0, FlowBranch},
	{0xFF, 0xDF, "stind.i", InlineNone, PopIPopI, Push0, FlowNext},
	{0xFF, 0xE0, "conv.u", InlineNone, Pop1, PushI, FlowNext},
	{0xFF, 0xF8, "prefix7", InlineNone, Pop0, Push0, FlowMeta},
	{0xFF, 0xF9, "prefix6", InlineNone, Pop0, Push0, FlowMeta},
	{0xFF, 0xFA, "prefix5", InlineNone, Pop0, Push0, FlowMeta},
	{0xFF, 0xFB, "prefix4", InlineNone, Pop0, Push0, FlowMeta},
	{0xFF, 0xFC, "prefix3", InlineNone, Pop0, Push0, FlowMeta},
	{0xFF, 0xFD, "prefix2", InlineNone, Pop0, Push0, FlowMeta},
	{0xFF, 0xFE, "prefix1", InlineNone, Pop0, Push0, FlowMeta},
	{0xFF, 0xFF, "prefixref", InlineNone, Pop0, Push0, FlowMeta},

	{0xFE, 0x00, "arglist", InlineNone, Pop0, PushI, FlowNext},
	{0xFE, 0x01, "ceq", InlineNone, Pop1Pop1, PushI, FlowNext},
	{0xFE, 0x02, "cgt", InlineNone, Pop1Pop1, PushI, FlowNext},
	{0xFE, 0x03, "cgt.un", InlineNone, Pop1Pop1, PushI, FlowNext},
	{0xFE, 0x04, "clt", InlineNone, Pop1Pop1, PushI, FlowNext},
	{0xFE, 0x05, "clt.un", InlineNone, Pop1Pop1, PushI, FlowNext},
	{0xFE, 0x06, "ldftn", InlineMethod, Pop0, PushI, FlowNext},
	{0xFE, 0x07, "ldvirtftn", InlineMethod, PopRef, PushI, FlowNext},
	{0xFE, 0x09, "ldarg", InlineVar, Pop0, Push1, FlowNext},
	{0xFE, 0x0A, "ldarga", InlineVar, Pop0, PushI, FlowNext},
	{0xFE, 0x0B, "starg", InlineVar, Pop1, Push0, FlowNext},
	{0xFE, 0x0C, "ldloc", InlineVar, Pop0, Push1, FlowNext},
	{0xFE, 0x0D, "ldloca", InlineVar, Pop0, PushI, FlowNext},
	{0xFE, 0x0E, "stloc", InlineVar, Pop1, Push0, FlowNext},
	{0xFE, 0x0F, "localloc", InlineNone, PopI, PushI, FlowNext},
	{0xFE, 0x11, "endfilter", InlineNone, PopI, Push0, FlowReturn},
	{0xFE, 0x12, "unaligned.", ShortInlineI, Pop0, Push0, FlowMeta},
	{0xFE, 0x13, "volatile.", InlineNone, Pop0, Push0, FlowMeta},
	{0xFE, 0x14, "tail.", InlineNone, Pop0, Push0, FlowMeta},
	{0xFE, 0x15, "initobj", InlineType, PopI, Push0, FlowNext},
	{0xFE, 0x16, "constrained.", InlineType, Pop0, Push0, FlowMeta},
	{0xFE, 0x17, "cpblk", InlineNone, PopIPopIPopI, Push0, FlowNext},
	{0xFE, 0x18, "initblk", InlineNone, PopIPopIPopI, Push0, FlowNext},
	{0xFE, 0x19, "no.", ShortInlineI, Pop0, Push0, FlowMeta},
	{0xFE, 0x1C, "sizeof", InlineType, Pop0, PushI, FlowNext},
	{0xFE, 0x1D, "refanytype", InlineNone, Pop1, PushI, FlowNext},
	{0xFE, 0x1E, "readonly.", InlineNone, Pop0, Push0, FlowMeta},
}

func init() {
	for i := range opcodeTable {
		e := &opcodeTable[i]
		info := &OpcodeInfo{Name: e.name, Operand: e.operand, Pop: e.pop, Push: e.push, Flow: e.flow}
		switch e.op1 {
		case 0xFF:
			oneByteOpcodes[e.op2] = info
		case 0xFE:
			twoByteOpcodes[e.op2] = info
		}
	}
}

// lookupOpcode resolves a decoded (op1, op2) pair to its static record.
// op1 selects the space: 0xFE for the two-byte space, any other value for
// the one-byte space. op2 is the opcode byte within that space.
func lookupOpcode(op1, op2 byte) (*OpcodeInfo, bool) {
	if op1 == 0xFE {
		info := twoByteOpcodes[op2]
		return info, info != nil
	}
	info := oneByteOpcodes[op2]
	return info, info != nil
}
