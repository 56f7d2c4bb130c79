// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

import (
	"testing"

	mmap "github.com/edsrzf/mmap-go"
)

func newTestFile(data []byte) *File {
	return &File{data: mmap.MMap(data), size: uint32(len(data))}
}

func TestClassifyMethodHeader(t *testing.T) {
	tests := []struct {
		b    byte
		want methodHeaderKind
		ok   bool
	}{
		{0x02, methodHeaderTiny, true},  // code_size=0, tiny tag
		{0x16, methodHeaderTiny, true},  // code_size=5, tiny tag
		{0x13, methodHeaderFat, true},   // fat tag with header-size nibble set later
		{0x00, 0, false},
		{0x01, 0, false},
	}
	for _, tt := range tests {
		got, err := classifyMethodHeader(tt.b)
		if tt.ok && err != nil {
			t.Errorf("classifyMethodHeader(0x%02x) failed: %v", tt.b, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("classifyMethodHeader(0x%02x) = %v, want ErrInvalidMethodHeader", tt.b, got)
		}
		if tt.ok && got != tt.want {
			t.Errorf("classifyMethodHeader(0x%02x) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestLookupOpcode(t *testing.T) {
	info, ok := lookupOpcode(0xFF, 0x00)
	if !ok || info.Name != "nop" {
		t.Fatalf("lookupOpcode(0xFF, 0x00) = (%v, %v), want nop", info, ok)
	}
	info, ok = lookupOpcode(0xFF, 0x2A)
	if !ok || info.Name != "ret" || info.Flow != FlowReturn {
		t.Fatalf("lookupOpcode(0xFF, 0x2A) = (%v, %v), want ret/FlowReturn", info, ok)
	}
	info, ok = lookupOpcode(0xFE, 0x01)
	if !ok || info.Name != "ceq" {
		t.Fatalf("lookupOpcode(0xFE, 0x01) = (%v, %v), want ceq", info, ok)
	}
	if _, ok := lookupOpcode(0xFF, 0xA6); ok {
		t.Fatalf("lookupOpcode(0xFF, 0xA6) should be unassigned")
	}
	if _, ok := lookupOpcode(0xFE, 0x1B); ok {
		t.Fatalf("lookupOpcode(0xFE, 0x1B) should be unassigned")
	}
}

// TestDecodeInstructionsHelloWorld decodes a tiny method body equivalent to
// "ldstr <token>; call <token>; ret", the shape of a minimal
// Console.WriteLine("...") call site.
func TestDecodeInstructionsHelloWorld(t *testing.T) {
	var code []byte
	code = append(code, 0x72)                         // ldstr
	code = append(code, 0x01, 0x00, 0x00, 0x70)        // token 0x70000001
	code = append(code, 0x28)                         // call
	code = append(code, 0x02, 0x00, 0x00, 0x0A)        // token 0x0A000002
	code = append(code, 0x2A)                         // ret

	pe := newTestFile(code)
	img := newImage(pe)

	ins, err := img.decodeInstructions(0, uint32(len(code)))
	if err != nil {
		t.Fatalf("decodeInstructions failed: %v", err)
	}
	if len(ins) != 3 {
		t.Fatalf("got %d instructions, want 3", len(ins))
	}
	if ins[0].Opcode.Name != "ldstr" || ins[0].Offset != 0 {
		t.Errorf("instruction 0 = %+v, want ldstr at offset 0", ins[0])
	}
	tok, ok := ins[0].Operand.(MetadataToken)
	if !ok || tok != MetadataToken(0x70000001) {
		t.Errorf("ldstr operand = %v, want token 0x70000001", ins[0].Operand)
	}
	if ins[1].Opcode.Name != "call" || ins[1].Offset != 5 {
		t.Errorf("instruction 1 = %+v, want call at offset 5", ins[1])
	}
	if ins[2].Opcode.Name != "ret" || ins[2].Offset != 10 {
		t.Errorf("instruction 2 = %+v, want ret at offset 10", ins[2])
	}
	if ins[2].Opcode.Flow != FlowReturn {
		t.Errorf("ret Flow = %v, want FlowReturn", ins[2].Opcode.Flow)
	}
}

func TestDecodeInstructionsSwitch(t *testing.T) {
	var code []byte
	code = append(code, 0x45)             // switch
	code = append(code, 0x02, 0x00, 0x00, 0x00) // N = 2
	code = append(code, 0x05, 0x00, 0x00, 0x00) // target 0
	code = append(code, 0xFF, 0xFF, 0xFF, 0xFF) // target 1 (-1)
	code = append(code, 0x2A)             // ret

	pe := newTestFile(code)
	img := newImage(pe)

	ins, err := img.decodeInstructions(0, uint32(len(code)))
	if err != nil {
		t.Fatalf("decodeInstructions failed: %v", err)
	}
	if len(ins) != 2 {
		t.Fatalf("got %d instructions, want 2", len(ins))
	}
	sw, ok := ins[0].Operand.(switchOperand)
	if !ok || len(sw.Targets) != 2 || sw.Targets[0] != 5 || sw.Targets[1] != -1 {
		t.Fatalf("switch operand = %+v, want targets [5 -1]", ins[0].Operand)
	}
}

func TestDecodeInstructionsInvalidOpcode(t *testing.T) {
	code := []byte{0xA6} // unassigned in the one-byte space
	pe := newTestFile(code)
	img := newImage(pe)

	_, err := img.decodeInstructions(0, uint32(len(code)))
	if err != ErrInvalidOpcode {
		t.Fatalf("decodeInstructions(unassigned opcode) = %v, want ErrInvalidOpcode", err)
	}
}

func TestDecodeMethodBodyTinyHeader(t *testing.T) {
	// Tiny header: code_size=3 packed into the upper 6 bits, tag 0b10.
	codeSize := byte(3)
	header := byte(codeSize<<2) | 0x02
	body := []byte{header, 0x00 /* nop */, 0x00 /* nop */, 0x2A /* ret */}

	pe := newTestFile(body)
	img := newImage(pe)

	mb, err := img.decodeMethodBody(0)
	if err != nil {
		t.Fatalf("decodeMethodBody failed: %v", err)
	}
	if mb.MaxStack != 8 {
		t.Errorf("MaxStack = %d, want 8", mb.MaxStack)
	}
	if mb.CodeSize != 3 {
		t.Errorf("CodeSize = %d, want 3", mb.CodeSize)
	}
	if len(mb.Instructions) != 3 {
		t.Fatalf("got %d instructions, want 3", len(mb.Instructions))
	}
}

func TestDecodeMethodBodyFatHeader(t *testing.T) {
	var body []byte
	body = append(body, 0x03, 0x30) // flags=0x3003->header size nibble 3, tag 0b11
	body = append(body, 0x08, 0x00) // max stack = 8
	body = append(body, 0x01, 0x00, 0x00, 0x00) // code size = 1
	body = append(body, 0x00, 0x00, 0x00, 0x00) // local var sig tok = 0
	body = append(body, 0x2A)                   // ret

	pe := newTestFile(body)
	img := newImage(pe)

	mb, err := img.decodeMethodBody(0)
	if err != nil {
		t.Fatalf("decodeMethodBody failed: %v", err)
	}
	if mb.MaxStack != 8 || mb.CodeSize != 1 {
		t.Errorf("got MaxStack=%d CodeSize=%d, want 8, 1", mb.MaxStack, mb.CodeSize)
	}
	if len(mb.Instructions) != 1 || mb.Instructions[0].Opcode.Name != "ret" {
		t.Fatalf("instructions = %+v, want single ret", mb.Instructions)
	}
}
