// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

import "errors"

// Errors returned while decoding the CLI/.NET metadata of an image. Each is
// fatal to the current load; no partially decoded Image is returned on
// failure.
var (
	// ErrTruncated is returned when a read runs past the end of the image.
	ErrTruncated = errors.New("pe: truncated read while decoding CLI metadata")

	// ErrBadSignature is returned when the metadata root signature is not
	// 0x424A5342 ("BSJB").
	ErrBadSignature = errors.New("pe: bad CLI metadata signature")

	// ErrBadVersion is returned when the #~ stream's major/minor version
	// is not 2.0.
	ErrBadVersion = errors.New("pe: unsupported #~ stream version")

	// ErrRvaUnmapped is returned when an RVA referenced by the CLI header
	// or a method body falls outside every section.
	ErrRvaUnmapped = errors.New("pe: RVA not mapped by any section")

	// ErrInvalidCodedIndexTag is returned when a coded-index column's tag
	// bits select a table outside the family's candidate list.
	ErrInvalidCodedIndexTag = errors.New("pe: coded index tag has no mapped table")

	// ErrInvalidOpcode is returned when a (op1, op2) byte pair in a method
	// body has no entry in the opcode table.
	ErrInvalidOpcode = errors.New("pe: unassigned CIL opcode")

	// ErrInvalidMethodHeader is returned when the low two bits of a method
	// header's first byte are 0b00 or 0b01.
	ErrInvalidMethodHeader = errors.New("pe: invalid method header kind")

	// ErrCardinalityViolation is returned when the Assembly table has more
	// than one row, or the Module table has a row count other than one.
	ErrCardinalityViolation = errors.New("pe: metadata table cardinality violation")

	// ErrUnimplementedTable is returned by the #~ stream parser when a
	// present table has no row decoder, or when a reserved pointer table
	// has rows. The rows of AssemblyOS, AssemblyProcessor, AssemblyRefOS and
	// AssemblyRefProcessor are skipped without this error and are not
	// stored, so row lookups on those tables report no row.
	ErrUnimplementedTable = errors.New("pe: table is recognized but not decoded")

	// ErrMissingHeapEntry is returned by a heap lookup whose offset was
	// never observed during the heap's sequential scan.
	ErrMissingHeapEntry = errors.New("pe: heap offset does not start an entry")

	// ErrNoCLRHeader describes an image that has no CLI header. No decoder
	// in this package returns it: such an image leaves File.CLR nil.
	ErrNoCLRHeader = errors.New("pe: image has no CLI header")
)
