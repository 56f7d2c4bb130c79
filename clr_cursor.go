// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

// rowCursor is a positioned reader over the table-stream bytes of a
// metadata image, consulting a decodeContext for index widths as it
// sequences a row's columns.
type rowCursor struct {
	pe  *File
	ctx *decodeContext
	off uint32
}

func (c *rowCursor) u8() (uint8, error) {
	v, err := c.pe.ReadUint8(c.off)
	if err != nil {
		return 0, ErrTruncated
	}
	c.off++
	return v, nil
}

func (c *rowCursor) u16() (uint16, error) {
	v, err := c.pe.ReadUint16(c.off)
	if err != nil {
		return 0, ErrTruncated
	}
	c.off += 2
	return v, nil
}

func (c *rowCursor) u32() (uint32, error) {
	v, err := c.pe.ReadUint32(c.off)
	if err != nil {
		return 0, ErrTruncated
	}
	c.off += 4
	return v, nil
}

// wide reads a 2- or 4-byte unsigned value depending on width.
func (c *rowCursor) wide(width uint8) (uint32, error) {
	if width == 2 {
		v, err := c.u16()
		return uint32(v), err
	}
	v, err := c.u32()
	return v, err
}

func (c *rowCursor) stringIdx() (StringIndex, error) {
	v, err := c.wide(c.ctx.stringIndexWidth())
	return StringIndex(v), err
}

func (c *rowCursor) blobIdx() (BlobIndex, error) {
	v, err := c.wide(c.ctx.blobIndexWidth())
	return BlobIndex(v), err
}

func (c *rowCursor) guidIdx() (GUIDIndex, error) {
	v, err := c.wide(c.ctx.guidIndexWidth())
	return GUIDIndex(v), err
}

// simpleIdx reads a 1-based row number into the designated table.
func (c *rowCursor) simpleIdx(target TableKind) (uint32, error) {
	return c.wide(c.ctx.simpleIndexWidth(target))
}

// codedIdx reads a coded index: low tagBits select the candidate table,
// remaining bits are the 1-based row ordinal.
func (c *rowCursor) codedIdx(family *codedIndexFamily) (CodedIndex, error) {
	raw, err := c.wide(c.ctx.codedIndexWidth(family))
	if err != nil {
		return CodedIndex{}, err
	}
	mask := uint32(1)<<family.tagBits - 1
	tag := raw & mask
	rid := raw >> family.tagBits
	if rid == 0 {
		return CodedIndex{Table: invalidTableKind, RID: 0}, nil
	}
	table, ok := family.targetTable(tag)
	if !ok {
		return CodedIndex{}, ErrInvalidCodedIndexTag
	}
	return CodedIndex{Table: table, RID: rid}, nil
}
