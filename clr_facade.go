// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

import "sync"

// Image is the decoded CLI/.NET metadata of a managed PE file: the CLI
// header, the metadata root, the heap streams, the metadata tables, and
// (once decoded) method bodies. It is the facade component through which
// callers navigate a managed image; pe.File.CLR holds the Image for a
// parsed file with FileInfo.HasCLR set.
type Image struct {
	pe *File

	CLRHeader                  ImageCOR20Header
	MetadataHeader             MetadataHeader
	MetadataStreamHeaders      []MetadataStreamHeader
	MetadataStreams            map[string][]byte
	MetadataTablesStreamHeader MetadataTablesStreamHeader

	ctx *decodeContext

	strings     *heapIndex
	blobs       *heapIndex
	userStrings *heapIndex
	guids       *guidHeap

	tables [tableKindCount][]interface{}

	methodBodiesMu sync.Mutex
	methodBodies   map[uint32]*MethodBody
	methodOnce     map[uint32]*sync.Once
}

func newImage(pe *File) *Image {
	return &Image{
		pe:              pe,
		MetadataStreams: make(map[string][]byte),
		methodBodies:    make(map[uint32]*MethodBody),
		methodOnce:      make(map[uint32]*sync.Once),
	}
}

func (img *Image) opts() *Options {
	return img.pe.opts
}

// RowCount returns the number of rows in kind, or 0 if the table is absent
// or empty.
func (img *Image) RowCount(kind TableKind) uint32 {
	if img.ctx == nil {
		return 0
	}
	return img.ctx.rowCount(kind)
}

// row returns the 1-based row rid of kind, or nil if it is out of range.
func (img *Image) row(kind TableKind, rid uint32) interface{} {
	if int(kind) >= len(img.tables) || rid == 0 {
		return nil
	}
	rows := img.tables[kind]
	if int(rid) > len(rows) {
		return nil
	}
	return rows[rid-1]
}

// Row returns the 1-based row rid of kind as its concrete *XRow type,
// reporting false if the table is unimplemented or the row does not
// exist. Callers that know the table kind should use the typed
// accessors (Module, Assembly, ...); Row exists for generic, table-kind
// driven traversal such as following a CodedIndex of unknown table.
func (img *Image) Row(kind TableKind, rid uint32) (interface{}, bool) {
	if unimplementedTables[kind] {
		return nil, false
	}
	r := img.row(kind, rid)
	return r, r != nil
}

// Module returns the image's single Module row, or nil if metadata was
// never parsed.
func (img *Image) Module() *ModuleRow {
	r := img.row(Module, 1)
	if r == nil {
		return nil
	}
	row := r.(ModuleRow)
	return &row
}

// Assembly returns the image's Assembly row, reporting false for a
// module (non-entrypoint assembly) that defines none.
func (img *Image) Assembly() (*AssemblyRow, bool) {
	r := img.row(Assembly, 1)
	if r == nil {
		return nil, false
	}
	row := r.(AssemblyRow)
	return &row, true
}

// String resolves a #Strings heap index.
func (img *Image) String(idx StringIndex) (string, error) {
	if img.strings == nil {
		return "", ErrMissingHeapEntry
	}
	return img.strings.stringAt(uint32(idx))
}

// Blob resolves a #Blob heap index.
func (img *Image) Blob(idx BlobIndex) ([]byte, error) {
	if img.blobs == nil {
		return nil, ErrMissingHeapEntry
	}
	return img.blobs.blobAt(uint32(idx))
}

// UserString resolves a #US heap index.
func (img *Image) UserString(idx UserStringIndex) (string, error) {
	if img.userStrings == nil {
		return "", ErrMissingHeapEntry
	}
	return img.userStrings.userStringAt(uint32(idx))
}

// GUID resolves a #GUID heap index. A zero or out-of-range index returns
// the zero GUID, matching the convention that GUID index 0 means "none".
func (img *Image) GUID(idx GUIDIndex) [16]byte {
	if img.guids == nil {
		return [16]byte{}
	}
	return img.guids.at(idx)
}

// ResolveToken dereferences a MetadataToken to its row, per component J's
// token type and component H's row lookup.
func (img *Image) ResolveToken(tok MetadataToken) (interface{}, bool) {
	if tok.IsNil() || tok.IsUserString() {
		return nil, false
	}
	return img.Row(tok.Table(), tok.RID())
}

// MethodBody returns the decoded CIL body of MethodDef row rid. In eager
// mode (the default) every body was decoded during parseCLRHeaderDirectory
// and this is a map lookup; in lazy mode the body is decoded on first
// access, guarded by a per-method sync.Once, and memoized.
func (img *Image) MethodBody(rid uint32) (*MethodBody, bool) {
	r := img.row(MethodDef, rid)
	if r == nil {
		return nil, false
	}
	def := r.(MethodDefRow)
	if def.RVA == 0 {
		return nil, false
	}

	if img.opts() != nil && img.opts().EagerMethodBodies {
		img.methodBodiesMu.Lock()
		body, ok := img.methodBodies[rid]
		img.methodBodiesMu.Unlock()
		return body, ok
	}

	img.methodBodiesMu.Lock()
	once, ok := img.methodOnce[rid]
	if !ok {
		once = &sync.Once{}
		img.methodOnce[rid] = once
	}
	img.methodBodiesMu.Unlock()

	once.Do(func() {
		body, err := img.decodeMethodBodyAt(def.RVA)
		if err != nil {
			return
		}
		img.methodBodiesMu.Lock()
		img.methodBodies[rid] = body
		img.methodBodiesMu.Unlock()
	})

	img.methodBodiesMu.Lock()
	body, ok = img.methodBodies[rid]
	img.methodBodiesMu.Unlock()
	return body, ok
}

// decodeAllMethodBodies decodes every MethodDef row's body eagerly,
// skipping abstract/runtime-implemented methods (RVA == 0) and ones
// whose RVA fails to resolve; it intentionally does not fail the overall
// parse when an individual body is malformed, since a single corrupt
// method should not prevent inspection of the rest of the image.
func (img *Image) decodeAllMethodBodies() {
	count := img.RowCount(MethodDef)
	for rid := uint32(1); rid <= count; rid++ {
		r := img.row(MethodDef, rid)
		if r == nil {
			continue
		}
		def := r.(MethodDefRow)
		if def.RVA == 0 {
			continue
		}
		body, err := img.decodeMethodBodyAt(def.RVA)
		if err != nil {
			continue
		}
		img.methodBodies[rid] = body
	}
}
