// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

// codedIndexFamily is a closed, statically known coded-index family: a tag
// width and an ordered list of candidate tables, indexed by tag value.
// Unused tag slots (e.g. CustomAttributeType's tags 0, 1, 4) hold
// invalidTableKind.
type codedIndexFamily struct {
	name    string
	tagBits uint
	tables  []TableKind
}

// targetTable resolves a tag value to its candidate table, or false if the
// tag has no mapping in this family.
func (f *codedIndexFamily) targetTable(tag uint32) (TableKind, bool) {
	if int(tag) >= len(f.tables) {
		return invalidTableKind, false
	}
	t := f.tables[tag]
	if t == invalidTableKind {
		return invalidTableKind, false
	}
	return t, true
}

// tagOf returns the tag value assigned to kind within this family, or
// false if kind is not a candidate.
func (f *codedIndexFamily) tagOf(kind TableKind) (uint32, bool) {
	for i, t := range f.tables {
		if t == kind {
			return uint32(i), true
		}
	}
	return 0, false
}

// The thirteen coded-index families defined by ECMA-335 §II.24.2.6, with
// tag-bit counts and candidate-table lists per spec.
var (
	idxTypeDefOrRef = &codedIndexFamily{
		name: "TypeDefOrRef", tagBits: 2,
		tables: []TableKind{TypeDef, TypeRef, TypeSpec},
	}
	idxHasConstant = &codedIndexFamily{
		name: "HasConstant", tagBits: 2,
		tables: []TableKind{Field, Param, Property},
	}
	idxHasCustomAttribute = &codedIndexFamily{
		name: "HasCustomAttribute", tagBits: 5,
		tables: []TableKind{
			MethodDef, Field, TypeRef, TypeDef, Param, InterfaceImpl, MemberRef,
			Module, Property, Event, StandAloneSig, ModuleRef, TypeSpec, Assembly,
			AssemblyRef, FileMD, ExportedType, ManifestResource, GenericParam,
			GenericParamConstraint, MethodSpec,
		},
	}
	idxHasFieldMarshal = &codedIndexFamily{
		name: "HasFieldMarshal", tagBits: 1,
		tables: []TableKind{Field, Param},
	}
	idxHasDeclSecurity = &codedIndexFamily{
		name: "HasDeclSecurity", tagBits: 2,
		tables: []TableKind{TypeDef, MethodDef, Assembly},
	}
	idxMemberRefParent = &codedIndexFamily{
		name: "MemberRefParent", tagBits: 3,
		tables: []TableKind{TypeDef, TypeRef, ModuleRef, MethodDef, TypeSpec},
	}
	idxHasSemantics = &codedIndexFamily{
		name: "HasSemantics", tagBits: 1,
		tables: []TableKind{Event, Property},
	}
	idxMethodDefOrRef = &codedIndexFamily{
		name: "MethodDefOrRef", tagBits: 1,
		tables: []TableKind{MethodDef, MemberRef},
	}
	idxMemberForwarded = &codedIndexFamily{
		name: "MemberForwarded", tagBits: 1,
		tables: []TableKind{Field, MethodDef},
	}
	idxImplementation = &codedIndexFamily{
		name: "Implementation", tagBits: 2,
		tables: []TableKind{FileMD, AssemblyRef, ExportedType},
	}
	idxCustomAttributeType = &codedIndexFamily{
		name: "CustomAttributeType", tagBits: 3,
		tables: []TableKind{
			invalidTableKind, invalidTableKind, MethodDef, MemberRef, invalidTableKind,
		},
	}
	idxResolutionScope = &codedIndexFamily{
		name: "ResolutionScope", tagBits: 2,
		tables: []TableKind{Module, ModuleRef, AssemblyRef, TypeRef},
	}
	idxTypeOrMethodDef = &codedIndexFamily{
		name: "TypeOrMethodDef", tagBits: 1,
		tables: []TableKind{TypeDef, MethodDef},
	}
)
