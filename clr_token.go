// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

import "fmt"

// StringIndex is an offset into the #Strings heap.
type StringIndex uint32

// UserStringIndex is an offset into the #US heap.
type UserStringIndex uint32

// BlobIndex is an offset into the #Blob heap.
type BlobIndex uint32

// GUIDIndex is a 1-based index into the #GUID heap.
type GUIDIndex uint32

// CodedIndex is a decoded coded-index column: a target table plus a
// 1-based row number within it. RID == 0 denotes a null reference.
type CodedIndex struct {
	Table TableKind
	RID   uint32
}

// IsNil reports whether the coded index denotes "no reference."
func (c CodedIndex) IsNil() bool {
	return c.RID == 0
}

func (c CodedIndex) String() string {
	if c.IsNil() {
		return "null"
	}
	return fmt.Sprintf("%s[0x%x]", c.Table, c.RID)
}

// userStringTag is the high byte of a MetadataToken referencing the #US
// heap rather than a metadata table.
const userStringTag = 0x70

// MetadataToken is a 32-bit packed (table tag, 1-based ordinal) pair, used
// as an operand within bytecode and as the CLI header's entry-point field.
type MetadataToken uint32

// NewMetadataToken packs a table kind and row ordinal into a token.
func NewMetadataToken(kind TableKind, rid uint32) MetadataToken {
	return MetadataToken(uint32(kind)<<24 | (rid & 0x00FFFFFF))
}

// Table returns the token's table tag. It is meaningless when
// IsUserString is true.
func (t MetadataToken) Table() TableKind {
	return TableKind(t >> 24)
}

// RID returns the token's 1-based row ordinal.
func (t MetadataToken) RID() uint32 {
	return uint32(t) & 0x00FFFFFF
}

// IsUserString reports whether the token references the #US heap instead
// of a metadata table.
func (t MetadataToken) IsUserString() bool {
	return byte(t>>24) == userStringTag
}

// IsNil reports whether the token's ordinal is zero.
func (t MetadataToken) IsNil() bool {
	return t.RID() == 0
}

func (t MetadataToken) String() string {
	if t.IsNil() {
		return "nil"
	}
	if t.IsUserString() {
		return fmt.Sprintf("UserString[0x%x]", t.RID())
	}
	return fmt.Sprintf("%s[0x%x]", t.Table(), t.RID())
}
