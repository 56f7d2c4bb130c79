// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

// heapSizes bit positions within the #~ stream's HeapSizes byte.
const (
	heapSizeStringsWide = 0x01
	heapSizeGUIDWide    = 0x02
	heapSizeBlobWide    = 0x04
)

// decodeContext computes the per-image wire widths of heap indexes, simple
// table indexes, and coded indexes, as specified by the #~ stream's
// HeapSizes byte and the row-count array. The widths are fixed for the
// lifetime of the image.
type decodeContext struct {
	heapSizes byte
	rowCounts [tableKindCount]uint32
}

func newDecodeContext(heapSizes byte, rowCounts [tableKindCount]uint32) *decodeContext {
	return &decodeContext{heapSizes: heapSizes, rowCounts: rowCounts}
}

func (c *decodeContext) rowCount(kind TableKind) uint32 {
	if int(kind) >= len(c.rowCounts) {
		return 0
	}
	return c.rowCounts[kind]
}

// stringIndexWidth returns 4 iff the Strings heap bit is set, else 2.
func (c *decodeContext) stringIndexWidth() uint8 {
	if c.heapSizes&heapSizeStringsWide != 0 {
		return 4
	}
	return 2
}

// guidIndexWidth returns 4 iff the GUID heap bit is set, else 2.
func (c *decodeContext) guidIndexWidth() uint8 {
	if c.heapSizes&heapSizeGUIDWide != 0 {
		return 4
	}
	return 2
}

// blobIndexWidth returns 4 iff the Blob heap bit is set, else 2.
func (c *decodeContext) blobIndexWidth() uint8 {
	if c.heapSizes&heapSizeBlobWide != 0 {
		return 4
	}
	return 2
}

// simpleIndexWidth returns 4 iff the target table's row count is
// >= 2^16, else 2.
func (c *decodeContext) simpleIndexWidth(target TableKind) uint8 {
	if c.rowCount(target) >= 0x10000 {
		return 4
	}
	return 2
}

// codedIndexWidth returns 4 iff any of the family's candidate tables has a
// row count >= 2^(16 - tagBits), else 2.
func (c *decodeContext) codedIndexWidth(family *codedIndexFamily) uint8 {
	threshold := uint32(1) << (16 - family.tagBits)
	for _, t := range family.tables {
		if t == invalidTableKind {
			continue
		}
		if c.rowCount(t) >= threshold {
			return 4
		}
	}
	return 2
}
