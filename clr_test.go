// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

import (
	"encoding/binary"
	"testing"
)

// buildMinimalTablesStream assembles a #~ stream byte buffer holding just
// a single Module row, narrow (2-byte) heap indexes throughout.
func buildMinimalTablesStream(t *testing.T) []byte {
	t.Helper()
	var buf []byte

	buf = append(buf, 0, 0, 0, 0) // Reserved
	buf = append(buf, 2, 0)       // MajorVersion=2, MinorVersion=0
	buf = append(buf, 0)          // HeapSizes: narrow everywhere
	buf = append(buf, 1)          // RID

	maskValid := uint64(1) << uint(Module)
	sorted := uint64(0)
	mv := make([]byte, 8)
	binary.LittleEndian.PutUint64(mv, maskValid)
	buf = append(buf, mv...)
	sb := make([]byte, 8)
	binary.LittleEndian.PutUint64(sb, sorted)
	buf = append(buf, sb...)

	count := make([]byte, 4)
	binary.LittleEndian.PutUint32(count, 1)
	buf = append(buf, count...)

	row := make([]byte, 10)
	binary.LittleEndian.PutUint16(row[0:2], 0)    // Generation
	binary.LittleEndian.PutUint16(row[2:4], 1)    // Name (StringIndex)
	binary.LittleEndian.PutUint16(row[4:6], 1)    // Mvid (GUIDIndex)
	binary.LittleEndian.PutUint16(row[6:8], 0)    // EncID
	binary.LittleEndian.PutUint16(row[8:10], 0)   // EncBaseID
	buf = append(buf, row...)

	return buf
}

func TestParseTablesStreamModuleOnly(t *testing.T) {
	data := buildMinimalTablesStream(t)
	pe := newTestFile(data)
	img := newImage(pe)

	if err := img.parseTablesStream(0, data); err != nil {
		t.Fatalf("parseTablesStream failed: %v", err)
	}

	if got := img.RowCount(Module); got != 1 {
		t.Fatalf("RowCount(Module) = %d, want 1", got)
	}

	mod := img.Module()
	if mod == nil {
		t.Fatal("Module() = nil, want a row")
	}
	if mod.Name != 1 {
		t.Errorf("Module.Name = %d, want 1", mod.Name)
	}
	if mod.Mvid != 1 {
		t.Errorf("Module.Mvid = %d, want 1", mod.Mvid)
	}
}

func TestParseTablesStreamRejectsBadVersion(t *testing.T) {
	data := buildMinimalTablesStream(t)
	data[4] = 1 // MajorVersion=1, not the required 2.0
	pe := newTestFile(data)
	img := newImage(pe)

	if err := img.parseTablesStream(0, data); err != ErrBadVersion {
		t.Fatalf("parseTablesStream(bad version) = %v, want ErrBadVersion", err)
	}
}

func TestParseTablesStreamRejectsMissingModule(t *testing.T) {
	data := buildMinimalTablesStream(t)
	// Clear the Module bit from MaskValid so no table is present at all;
	// the row-count array and row bytes then describe nothing, leaving
	// rowCounts[Module] == 0.
	for i := 8; i < 16; i++ {
		data[i] = 0
	}
	pe := newTestFile(data[:24])
	img := newImage(pe)

	if err := img.parseTablesStream(0, data[:24]); err != ErrCardinalityViolation {
		t.Fatalf("parseTablesStream(no Module row) = %v, want ErrCardinalityViolation", err)
	}
}

func TestMetadataTokenRoundTrip(t *testing.T) {
	tok := NewMetadataToken(TypeDef, 0x123)
	if tok.Table() != TypeDef {
		t.Errorf("Table() = %v, want TypeDef", tok.Table())
	}
	if tok.RID() != 0x123 {
		t.Errorf("RID() = 0x%x, want 0x123", tok.RID())
	}
	if tok.IsNil() || tok.IsUserString() {
		t.Errorf("token %v misclassified", tok)
	}

	us := MetadataToken(uint32(userStringTag)<<24 | 0x05)
	if !us.IsUserString() {
		t.Errorf("UserString token not recognized: %v", us)
	}

	var nilTok MetadataToken
	if !nilTok.IsNil() {
		t.Errorf("zero token should be nil")
	}
}

func TestCodedIndexNil(t *testing.T) {
	var c CodedIndex
	if !c.IsNil() {
		t.Errorf("zero CodedIndex should be nil")
	}
	if c.String() != "null" {
		t.Errorf("String() = %q, want \"null\"", c.String())
	}
}
