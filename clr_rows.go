// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

// reservedNeverPopulatedTables are the five table tags ECMA-335 reserves
// for pointer indirection (FieldPtr, MethodPtr, ParamPtr, EventPtr,
// PropertyPtr) but which no conforming image ever populates. Their row
// schema is intentionally unspecified; a nonzero row count here means the
// image is not one this decoder recognizes as conforming.
var reservedNeverPopulatedTables = map[TableKind]bool{
	FieldPtr:    true,
	MethodPtr:   true,
	ParamPtr:    true,
	EventPtr:    true,
	PropertyPtr: true,
}

type rowDecodeFunc func(cur *rowCursor) (interface{}, error)

var rowDecoders = map[TableKind]rowDecodeFunc{
	Module:                 decodeModuleRow,
	TypeRef:                decodeTypeRefRow,
	TypeDef:                decodeTypeDefRow,
	Field:                  decodeFieldRow,
	MethodDef:              decodeMethodDefRow,
	Param:                  decodeParamRow,
	InterfaceImpl:          decodeInterfaceImplRow,
	MemberRef:              decodeMemberRefRow,
	Constant:               decodeConstantRow,
	CustomAttribute:        decodeCustomAttributeRow,
	FieldMarshal:           decodeFieldMarshalRow,
	DeclSecurity:           decodeDeclSecurityRow,
	ClassLayout:            decodeClassLayoutRow,
	FieldLayout:            decodeFieldLayoutRow,
	StandAloneSig:          decodeStandAloneSigRow,
	EventMap:               decodeEventMapRow,
	Event:                  decodeEventRow,
	PropertyMap:            decodePropertyMapRow,
	Property:               decodePropertyRow,
	MethodSemantics:        decodeMethodSemanticsRow,
	MethodImpl:             decodeMethodImplRow,
	ModuleRef:              decodeModuleRefRow,
	TypeSpec:               decodeTypeSpecRow,
	ImplMap:                decodeImplMapRow,
	FieldRVA:                decodeFieldRVARow,
	Assembly:               decodeAssemblyRow,
	AssemblyRef:            decodeAssemblyRefRow,
	FileMD:                 decodeFileRow,
	ExportedType:           decodeExportedTypeRow,
	ManifestResource:       decodeManifestResourceRow,
	NestedClass:            decodeNestedClassRow,
	GenericParam:           decodeGenericParamRow,
	MethodSpec:             decodeMethodSpecRow,
	GenericParamConstraint: decodeGenericParamConstraintRow,
}

func decodeModuleRow(cur *rowCursor) (interface{}, error) {
	var r ModuleRow
	var err error
	if r.Generation, err = cur.u16(); err != nil {
		return nil, err
	}
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.Mvid, err = cur.guidIdx(); err != nil {
		return nil, err
	}
	if r.EncID, err = cur.guidIdx(); err != nil {
		return nil, err
	}
	if r.EncBaseID, err = cur.guidIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeTypeRefRow(cur *rowCursor) (interface{}, error) {
	var r TypeRefRow
	var err error
	if r.ResolutionScope, err = cur.codedIdx(idxResolutionScope); err != nil {
		return nil, err
	}
	if r.TypeName, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.TypeNamespace, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeTypeDefRow(cur *rowCursor) (interface{}, error) {
	var r TypeDefRow
	var flags uint32
	var err error
	if flags, err = cur.u32(); err != nil {
		return nil, err
	}
	r.Flags = TypeAttributes(flags)
	if r.TypeName, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.TypeNamespace, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.Extends, err = cur.codedIdx(idxTypeDefOrRef); err != nil {
		return nil, err
	}
	if r.FieldList, err = cur.simpleIdx(Field); err != nil {
		return nil, err
	}
	if r.MethodList, err = cur.simpleIdx(MethodDef); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeFieldRow(cur *rowCursor) (interface{}, error) {
	var r FieldRow
	var flags uint16
	var err error
	if flags, err = cur.u16(); err != nil {
		return nil, err
	}
	r.Flags = FieldAttributes(flags)
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.Signature, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeMethodDefRow(cur *rowCursor) (interface{}, error) {
	var r MethodDefRow
	var implFlags, flags uint16
	var err error
	if r.RVA, err = cur.u32(); err != nil {
		return nil, err
	}
	if implFlags, err = cur.u16(); err != nil {
		return nil, err
	}
	r.ImplFlags = MethodImplAttributes(implFlags)
	if flags, err = cur.u16(); err != nil {
		return nil, err
	}
	r.Flags = MethodAttributes(flags)
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.Signature, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	if r.ParamList, err = cur.simpleIdx(Param); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeParamRow(cur *rowCursor) (interface{}, error) {
	var r ParamRow
	var flags uint16
	var err error
	if flags, err = cur.u16(); err != nil {
		return nil, err
	}
	r.Flags = ParamAttributes(flags)
	if r.Sequence, err = cur.u16(); err != nil {
		return nil, err
	}
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeInterfaceImplRow(cur *rowCursor) (interface{}, error) {
	var r InterfaceImplRow
	var err error
	if r.Class, err = cur.simpleIdx(TypeDef); err != nil {
		return nil, err
	}
	if r.Interface, err = cur.codedIdx(idxTypeDefOrRef); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeMemberRefRow(cur *rowCursor) (interface{}, error) {
	var r MemberRefRow
	var err error
	if r.Class, err = cur.codedIdx(idxMemberRefParent); err != nil {
		return nil, err
	}
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.Signature, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeConstantRow(cur *rowCursor) (interface{}, error) {
	var r ConstantRow
	var err error
	if r.Type, err = cur.u8(); err != nil {
		return nil, err
	}
	if _, err = cur.u8(); err != nil { // padding byte
		return nil, err
	}
	if r.Parent, err = cur.codedIdx(idxHasConstant); err != nil {
		return nil, err
	}
	if r.Value, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeCustomAttributeRow(cur *rowCursor) (interface{}, error) {
	var r CustomAttributeRow
	var err error
	if r.Parent, err = cur.codedIdx(idxHasCustomAttribute); err != nil {
		return nil, err
	}
	if r.Type, err = cur.codedIdx(idxCustomAttributeType); err != nil {
		return nil, err
	}
	if r.Value, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeFieldMarshalRow(cur *rowCursor) (interface{}, error) {
	var r FieldMarshalRow
	var err error
	if r.Parent, err = cur.codedIdx(idxHasFieldMarshal); err != nil {
		return nil, err
	}
	if r.NativeType, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeDeclSecurityRow(cur *rowCursor) (interface{}, error) {
	var r DeclSecurityRow
	var err error
	if r.Action, err = cur.u16(); err != nil {
		return nil, err
	}
	if r.Parent, err = cur.codedIdx(idxHasDeclSecurity); err != nil {
		return nil, err
	}
	if r.PermissionSet, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeClassLayoutRow(cur *rowCursor) (interface{}, error) {
	var r ClassLayoutRow
	var err error
	if r.PackingSize, err = cur.u16(); err != nil {
		return nil, err
	}
	if r.ClassSize, err = cur.u32(); err != nil {
		return nil, err
	}
	if r.Parent, err = cur.simpleIdx(TypeDef); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeFieldLayoutRow(cur *rowCursor) (interface{}, error) {
	var r FieldLayoutRow
	var err error
	if r.Offset, err = cur.u32(); err != nil {
		return nil, err
	}
	if r.Field, err = cur.simpleIdx(Field); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeStandAloneSigRow(cur *rowCursor) (interface{}, error) {
	var r StandAloneSigRow
	var err error
	if r.Signature, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeEventMapRow(cur *rowCursor) (interface{}, error) {
	var r EventMapRow
	var err error
	if r.Parent, err = cur.simpleIdx(TypeDef); err != nil {
		return nil, err
	}
	if r.EventList, err = cur.simpleIdx(Event); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeEventRow(cur *rowCursor) (interface{}, error) {
	var r EventRow
	var flags uint16
	var err error
	if flags, err = cur.u16(); err != nil {
		return nil, err
	}
	r.EventFlags = EventAttributes(flags)
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.EventType, err = cur.codedIdx(idxTypeDefOrRef); err != nil {
		return nil, err
	}
	return r, nil
}

func decodePropertyMapRow(cur *rowCursor) (interface{}, error) {
	var r PropertyMapRow
	var err error
	if r.Parent, err = cur.simpleIdx(TypeDef); err != nil {
		return nil, err
	}
	if r.PropertyList, err = cur.simpleIdx(Property); err != nil {
		return nil, err
	}
	return r, nil
}

func decodePropertyRow(cur *rowCursor) (interface{}, error) {
	var r PropertyRow
	var flags uint16
	var err error
	if flags, err = cur.u16(); err != nil {
		return nil, err
	}
	r.Flags = PropertyAttributes(flags)
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.Type, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeMethodSemanticsRow(cur *rowCursor) (interface{}, error) {
	var r MethodSemanticsRow
	var sem uint16
	var err error
	if sem, err = cur.u16(); err != nil {
		return nil, err
	}
	r.Semantics = MethodSemanticsAttributes(sem)
	if r.Method, err = cur.simpleIdx(MethodDef); err != nil {
		return nil, err
	}
	if r.Association, err = cur.codedIdx(idxHasSemantics); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeMethodImplRow(cur *rowCursor) (interface{}, error) {
	var r MethodImplRow
	var err error
	if r.Class, err = cur.simpleIdx(TypeDef); err != nil {
		return nil, err
	}
	if r.MethodBody, err = cur.codedIdx(idxMethodDefOrRef); err != nil {
		return nil, err
	}
	if r.MethodDeclaration, err = cur.codedIdx(idxMethodDefOrRef); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeModuleRefRow(cur *rowCursor) (interface{}, error) {
	var r ModuleRefRow
	var err error
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeTypeSpecRow(cur *rowCursor) (interface{}, error) {
	var r TypeSpecRow
	var err error
	if r.Signature, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeImplMapRow(cur *rowCursor) (interface{}, error) {
	var r ImplMapRow
	var flags uint16
	var err error
	if flags, err = cur.u16(); err != nil {
		return nil, err
	}
	r.MappingFlags = PInvokeAttributes(flags)
	if r.MemberForwarded, err = cur.codedIdx(idxMemberForwarded); err != nil {
		return nil, err
	}
	if r.ImportName, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.ImportScope, err = cur.simpleIdx(ModuleRef); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeFieldRVARow(cur *rowCursor) (interface{}, error) {
	var r FieldRVARow
	var err error
	if r.RVA, err = cur.u32(); err != nil {
		return nil, err
	}
	if r.Field, err = cur.simpleIdx(Field); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeAssemblyRow(cur *rowCursor) (interface{}, error) {
	var r AssemblyRow
	var flags uint32
	var err error
	if r.HashAlgID, err = cur.u32(); err != nil {
		return nil, err
	}
	if r.MajorVersion, err = cur.u16(); err != nil {
		return nil, err
	}
	if r.MinorVersion, err = cur.u16(); err != nil {
		return nil, err
	}
	if r.BuildNumber, err = cur.u16(); err != nil {
		return nil, err
	}
	if r.RevisionNumber, err = cur.u16(); err != nil {
		return nil, err
	}
	if flags, err = cur.u32(); err != nil {
		return nil, err
	}
	r.Flags = AssemblyFlags(flags)
	if r.PublicKey, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.Culture, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeAssemblyRefRow(cur *rowCursor) (interface{}, error) {
	var r AssemblyRefRow
	var flags uint32
	var err error
	if r.MajorVersion, err = cur.u16(); err != nil {
		return nil, err
	}
	if r.MinorVersion, err = cur.u16(); err != nil {
		return nil, err
	}
	if r.BuildNumber, err = cur.u16(); err != nil {
		return nil, err
	}
	if r.RevisionNumber, err = cur.u16(); err != nil {
		return nil, err
	}
	if flags, err = cur.u32(); err != nil {
		return nil, err
	}
	r.Flags = AssemblyFlags(flags)
	if r.PublicKeyOrToken, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.Culture, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.HashValue, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeFileRow(cur *rowCursor) (interface{}, error) {
	var r FileRow
	var err error
	if r.Flags, err = cur.u32(); err != nil {
		return nil, err
	}
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.HashValue, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeExportedTypeRow(cur *rowCursor) (interface{}, error) {
	var r ExportedTypeRow
	var flags uint32
	var err error
	if flags, err = cur.u32(); err != nil {
		return nil, err
	}
	r.Flags = TypeAttributes(flags)
	if r.TypeDefID, err = cur.u32(); err != nil {
		return nil, err
	}
	if r.TypeName, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.TypeNamespace, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.Implementation, err = cur.codedIdx(idxImplementation); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeManifestResourceRow(cur *rowCursor) (interface{}, error) {
	var r ManifestResourceRow
	var flags uint32
	var err error
	if r.Offset, err = cur.u32(); err != nil {
		return nil, err
	}
	if flags, err = cur.u32(); err != nil {
		return nil, err
	}
	r.Flags = ManifestResourceAttributes(flags)
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	if r.Implementation, err = cur.codedIdx(idxImplementation); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeNestedClassRow(cur *rowCursor) (interface{}, error) {
	var r NestedClassRow
	var err error
	if r.NestedClass, err = cur.simpleIdx(TypeDef); err != nil {
		return nil, err
	}
	if r.EnclosingClass, err = cur.simpleIdx(TypeDef); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeGenericParamRow(cur *rowCursor) (interface{}, error) {
	var r GenericParamRow
	var flags uint16
	var err error
	if r.Number, err = cur.u16(); err != nil {
		return nil, err
	}
	if flags, err = cur.u16(); err != nil {
		return nil, err
	}
	r.Flags = GenericParamAttributes(flags)
	if r.Owner, err = cur.codedIdx(idxTypeOrMethodDef); err != nil {
		return nil, err
	}
	if r.Name, err = cur.stringIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeMethodSpecRow(cur *rowCursor) (interface{}, error) {
	var r MethodSpecRow
	var err error
	if r.Method, err = cur.codedIdx(idxMethodDefOrRef); err != nil {
		return nil, err
	}
	if r.Instantiation, err = cur.blobIdx(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeGenericParamConstraintRow(cur *rowCursor) (interface{}, error) {
	var r GenericParamConstraintRow
	var err error
	if r.Owner, err = cur.simpleIdx(GenericParam); err != nil {
		return nil, err
	}
	if r.Constraint, err = cur.codedIdx(idxTypeDefOrRef); err != nil {
		return nil, err
	}
	return r, nil
}

// skipUnimplementedRows advances cur past count rows of kind without
// materializing them, using each table's known fixed column schema.
func skipUnimplementedRows(cur *rowCursor, kind TableKind, count uint32) error {
	for i := uint32(0); i < count; i++ {
		var err error
		switch kind {
		case AssemblyProcessor:
			_, err = cur.u32()
		case AssemblyOS:
			if _, err = cur.u32(); err == nil {
				if _, err = cur.u32(); err == nil {
					_, err = cur.u32()
				}
			}
		case AssemblyRefProcessor:
			if _, err = cur.u32(); err == nil {
				_, err = cur.simpleIdx(AssemblyRef)
			}
		case AssemblyRefOS:
			if _, err = cur.u32(); err == nil {
				if _, err = cur.u32(); err == nil {
					if _, err = cur.u32(); err == nil {
						_, err = cur.simpleIdx(AssemblyRef)
					}
				}
			}
		default:
			return ErrUnimplementedTable
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// parseTablesStream decodes the #~ (or #-) stream preamble, row-count
// array, and every table's rows, in ascending tag order. absOffset is the
// stream's absolute file offset; data is the stream's raw bytes, used
// only to bound-check the preamble.
func (img *Image) parseTablesStream(absOffset uint32, data []byte) error {
	if len(data) < 24 {
		return ErrTruncated
	}
	pe := img.pe

	var h MetadataTablesStreamHeader
	var err error
	if h.Reserved, err = pe.ReadUint32(absOffset); err != nil {
		return ErrTruncated
	}
	if h.MajorVersion, err = pe.ReadUint8(absOffset + 4); err != nil {
		return ErrTruncated
	}
	if h.MinorVersion, err = pe.ReadUint8(absOffset + 5); err != nil {
		return ErrTruncated
	}
	if h.Heaps, err = pe.ReadUint8(absOffset + 6); err != nil {
		return ErrTruncated
	}
	if h.RID, err = pe.ReadUint8(absOffset + 7); err != nil {
		return ErrTruncated
	}
	if h.MaskValid, err = pe.ReadUint64(absOffset + 8); err != nil {
		return ErrTruncated
	}
	if h.Sorted, err = pe.ReadUint64(absOffset + 16); err != nil {
		return ErrTruncated
	}
	if h.MajorVersion != 2 || h.MinorVersion != 0 {
		return ErrBadVersion
	}
	img.MetadataTablesStreamHeader = h

	cursor := absOffset + 24
	var rowCounts [tableKindCount]uint32
	for tag := uint(0); tag < 64; tag++ {
		if h.MaskValid&(uint64(1)<<tag) == 0 {
			continue
		}
		n, err := pe.ReadUint32(cursor)
		if err != nil {
			return ErrTruncated
		}
		if tag < uint(tableKindCount) {
			rowCounts[tag] = n
		}
		cursor += 4
	}

	ctx := newDecodeContext(h.Heaps, rowCounts)
	img.ctx = ctx

	if rowCounts[Module] != 1 {
		return ErrCardinalityViolation
	}
	if rowCounts[Assembly] > 1 {
		return ErrCardinalityViolation
	}

	cur := &rowCursor{pe: pe, ctx: ctx, off: cursor}
	for tag := uint(0); tag < uint(tableKindCount); tag++ {
		kind := TableKind(tag)
		if h.MaskValid&(uint64(1)<<tag) == 0 {
			continue
		}
		count := rowCounts[tag]

		if reservedNeverPopulatedTables[kind] {
			if count > 0 {
				return ErrUnimplementedTable
			}
			continue
		}
		if unimplementedTables[kind] {
			if err := skipUnimplementedRows(cur, kind, count); err != nil {
				return err
			}
			continue
		}

		decode, ok := rowDecoders[kind]
		if !ok {
			return ErrUnimplementedTable
		}
		rows := make([]interface{}, count)
		for i := uint32(0); i < count; i++ {
			row, err := decode(cur)
			if err != nil {
				return err
			}
			rows[i] = row
		}
		img.tables[kind] = rows
	}

	return nil
}
