// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

// TableKind identifies one of the metadata tables defined by ECMA-335
// Partition II §22. Its numeric value is the table's tag: the bit index
// within the #~ stream's Valid/Sorted bitvectors, and the high byte of a
// MetadataToken referencing a row in the table.
type TableKind uint8

// Table kinds, in tag order. Five tags in this range are reserved by the
// format but never populated by a conforming image (FieldPtr, MethodPtr,
// ParamPtr, EventPtr, PropertyPtr); they are included so TableKind's
// String method and bounds checks stay total over 0x00-0x2C.
const (
	Module TableKind = iota
	TypeRef
	TypeDef
	FieldPtr
	Field
	MethodPtr
	MethodDef
	ParamPtr
	Param
	InterfaceImpl
	MemberRef
	Constant
	CustomAttribute
	FieldMarshal
	DeclSecurity
	ClassLayout
	FieldLayout
	StandAloneSig
	EventMap
	EventPtr
	Event
	PropertyMap
	PropertyPtr
	Property
	MethodSemantics
	MethodImpl
	ModuleRef
	TypeSpec
	ImplMap
	FieldRVA
	ENCLog
	ENCMap
	Assembly
	AssemblyProcessor
	AssemblyOS
	AssemblyRef
	AssemblyRefProcessor
	AssemblyRefOS
	FileMD
	ExportedType
	ManifestResource
	NestedClass
	GenericParam
	MethodSpec
	GenericParamConstraint
)

// tableKindCount is one past the highest valid TableKind tag.
const tableKindCount = GenericParamConstraint + 1

// invalidTableKind is used as a sentinel "no such candidate" entry in a
// coded-index family's table slice.
const invalidTableKind TableKind = 0xFF

var tableKindNames = [tableKindCount]string{
	Module:                  "Module",
	TypeRef:                 "TypeRef",
	TypeDef:                 "TypeDef",
	FieldPtr:                "FieldPtr",
	Field:                   "Field",
	MethodPtr:               "MethodPtr",
	MethodDef:               "MethodDef",
	ParamPtr:                "ParamPtr",
	Param:                   "Param",
	InterfaceImpl:           "InterfaceImpl",
	MemberRef:               "MemberRef",
	Constant:                "Constant",
	CustomAttribute:         "CustomAttribute",
	FieldMarshal:            "FieldMarshal",
	DeclSecurity:            "DeclSecurity",
	ClassLayout:             "ClassLayout",
	FieldLayout:             "FieldLayout",
	StandAloneSig:           "StandAloneSig",
	EventMap:                "EventMap",
	EventPtr:                "EventPtr",
	Event:                   "Event",
	PropertyMap:             "PropertyMap",
	PropertyPtr:             "PropertyPtr",
	Property:                "Property",
	MethodSemantics:         "MethodSemantics",
	MethodImpl:              "MethodImpl",
	ModuleRef:               "ModuleRef",
	TypeSpec:                "TypeSpec",
	ImplMap:                 "ImplMap",
	FieldRVA:                "FieldRVA",
	ENCLog:                  "ENCLog",
	ENCMap:                  "ENCMap",
	Assembly:                "Assembly",
	AssemblyProcessor:       "AssemblyProcessor",
	AssemblyOS:              "AssemblyOS",
	AssemblyRef:             "AssemblyRef",
	AssemblyRefProcessor:    "AssemblyRefProcessor",
	AssemblyRefOS:           "AssemblyRefOS",
	FileMD:                  "File",
	ExportedType:            "ExportedType",
	ManifestResource:        "ManifestResource",
	NestedClass:             "NestedClass",
	GenericParam:            "GenericParam",
	MethodSpec:              "MethodSpec",
	GenericParamConstraint:  "GenericParamConstraint",
}

// String implements fmt.Stringer.
func (k TableKind) String() string {
	if int(k) < len(tableKindNames) && tableKindNames[k] != "" {
		return tableKindNames[k]
	}
	return "UnknownTable"
}

// unimplementedTables are recognized (their row count is read so the
// table stream cursor stays correctly positioned) but never decoded into
// row structs, per the tables not used by conforming images.
var unimplementedTables = map[TableKind]bool{
	AssemblyProcessor:    true,
	AssemblyOS:           true,
	AssemblyRefProcessor: true,
	AssemblyRefOS:        true,
}

// --- Row schemas -----------------------------------------------------

// ModuleRow is table 0x00.
type ModuleRow struct {
	Generation uint16
	Name       StringIndex
	Mvid       GUIDIndex
	EncID      GUIDIndex
	EncBaseID  GUIDIndex
}

// TypeRefRow is table 0x01.
type TypeRefRow struct {
	ResolutionScope CodedIndex
	TypeName        StringIndex
	TypeNamespace   StringIndex
}

// TypeDefRow is table 0x02.
type TypeDefRow struct {
	Flags         TypeAttributes
	TypeName      StringIndex
	TypeNamespace StringIndex
	Extends       CodedIndex
	FieldList     uint32
	MethodList    uint32
}

// FieldRow is table 0x04.
type FieldRow struct {
	Flags     FieldAttributes
	Name      StringIndex
	Signature BlobIndex
}

// MethodDefRow is table 0x06.
type MethodDefRow struct {
	RVA       uint32
	ImplFlags MethodImplAttributes
	Flags     MethodAttributes
	Name      StringIndex
	Signature BlobIndex
	ParamList uint32
}

// ParamRow is table 0x08.
type ParamRow struct {
	Flags    ParamAttributes
	Sequence uint16
	Name     StringIndex
}

// InterfaceImplRow is table 0x09.
type InterfaceImplRow struct {
	Class     uint32
	Interface CodedIndex
}

// MemberRefRow is table 0x0A.
type MemberRefRow struct {
	Class     CodedIndex
	Name      StringIndex
	Signature BlobIndex
}

// ConstantRow is table 0x0B.
type ConstantRow struct {
	Type   uint8
	Parent CodedIndex
	Value  BlobIndex
}

// CustomAttributeRow is table 0x0C.
type CustomAttributeRow struct {
	Parent CodedIndex
	Type   CodedIndex
	Value  BlobIndex
}

// FieldMarshalRow is table 0x0D.
type FieldMarshalRow struct {
	Parent     CodedIndex
	NativeType BlobIndex
}

// DeclSecurityRow is table 0x0E.
type DeclSecurityRow struct {
	Action        uint16
	Parent        CodedIndex
	PermissionSet BlobIndex
}

// ClassLayoutRow is table 0x0F.
type ClassLayoutRow struct {
	PackingSize uint16
	ClassSize   uint32
	Parent      uint32
}

// FieldLayoutRow is table 0x10.
type FieldLayoutRow struct {
	Offset uint32
	Field  uint32
}

// StandAloneSigRow is table 0x11.
type StandAloneSigRow struct {
	Signature BlobIndex
}

// EventMapRow is table 0x12.
type EventMapRow struct {
	Parent    uint32
	EventList uint32
}

// EventRow is table 0x14.
type EventRow struct {
	EventFlags EventAttributes
	Name       StringIndex
	EventType  CodedIndex
}

// PropertyMapRow is table 0x15.
type PropertyMapRow struct {
	Parent       uint32
	PropertyList uint32
}

// PropertyRow is table 0x17.
type PropertyRow struct {
	Flags     PropertyAttributes
	Name      StringIndex
	Type      BlobIndex
}

// MethodSemanticsRow is table 0x18.
type MethodSemanticsRow struct {
	Semantics   MethodSemanticsAttributes
	Method      uint32
	Association CodedIndex
}

// MethodImplRow is table 0x19.
type MethodImplRow struct {
	Class             uint32
	MethodBody        CodedIndex
	MethodDeclaration CodedIndex
}

// ModuleRefRow is table 0x1A.
type ModuleRefRow struct {
	Name StringIndex
}

// TypeSpecRow is table 0x1B.
type TypeSpecRow struct {
	Signature BlobIndex
}

// ImplMapRow is table 0x1C.
type ImplMapRow struct {
	MappingFlags     PInvokeAttributes
	MemberForwarded  CodedIndex
	ImportName       StringIndex
	ImportScope      uint32
}

// FieldRVARow is table 0x1D.
type FieldRVARow struct {
	RVA   uint32
	Field uint32
}

// AssemblyRow is table 0x20.
type AssemblyRow struct {
	HashAlgID      uint32
	MajorVersion   uint16
	MinorVersion   uint16
	BuildNumber    uint16
	RevisionNumber uint16
	Flags          AssemblyFlags
	PublicKey      BlobIndex
	Name           StringIndex
	Culture        StringIndex
}

// AssemblyRefRow is table 0x23.
type AssemblyRefRow struct {
	MajorVersion     uint16
	MinorVersion     uint16
	BuildNumber      uint16
	RevisionNumber   uint16
	Flags            AssemblyFlags
	PublicKeyOrToken BlobIndex
	Name             StringIndex
	Culture          StringIndex
	HashValue        BlobIndex
}

// FileRow is table 0x26.
type FileRow struct {
	Flags     uint32
	Name      StringIndex
	HashValue BlobIndex
}

// ExportedTypeRow is table 0x27.
type ExportedTypeRow struct {
	Flags          TypeAttributes
	TypeDefID      uint32
	TypeName       StringIndex
	TypeNamespace  StringIndex
	Implementation CodedIndex
}

// ManifestResourceRow is table 0x28.
type ManifestResourceRow struct {
	Offset         uint32
	Flags          ManifestResourceAttributes
	Name           StringIndex
	Implementation CodedIndex
}

// NestedClassRow is table 0x29.
type NestedClassRow struct {
	NestedClass    uint32
	EnclosingClass uint32
}

// GenericParamRow is table 0x2A.
type GenericParamRow struct {
	Number uint16
	Flags  GenericParamAttributes
	Owner  CodedIndex
	Name   StringIndex
}

// MethodSpecRow is table 0x2B.
type MethodSpecRow struct {
	Method        CodedIndex
	Instantiation BlobIndex
}

// GenericParamConstraintRow is table 0x2C.
type GenericParamConstraintRow struct {
	Owner      uint32
	Constraint CodedIndex
}
