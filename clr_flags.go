// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

// COMImageFlagsType describes the Flags field of the CLI header
// (ImageCOR20Header).
type COMImageFlagsType uint32

// CLI header flags, ECMA-335 §II.25.3.3.1.
const (
	COMImageFlagsILOnly           COMImageFlagsType = 0x00000001
	COMImageFlags32BitRequired    COMImageFlagsType = 0x00000002
	COMImageFlagsILLibrary        COMImageFlagsType = 0x00000004
	COMImageFlagsStrongNameSigned COMImageFlagsType = 0x00000008
	COMImageFlagsNativeEntryPoint COMImageFlagsType = 0x00000010
	COMImageFlagsTrackDebugData   COMImageFlagsType = 0x00010000
	COMImageFlags32BitPreferred   COMImageFlagsType = 0x00020000
)

// String renders the set bits of a COMImageFlagsType.
func (f COMImageFlagsType) String() []string {
	var out []string
	if f&COMImageFlagsILOnly != 0 {
		out = append(out, "ILOnly")
	}
	if f&COMImageFlags32BitRequired != 0 {
		out = append(out, "32BitRequired")
	}
	if f&COMImageFlagsILLibrary != 0 {
		out = append(out, "ILLibrary")
	}
	if f&COMImageFlagsStrongNameSigned != 0 {
		out = append(out, "StrongNameSigned")
	}
	if f&COMImageFlagsNativeEntryPoint != 0 {
		out = append(out, "NativeEntryPoint")
	}
	if f&COMImageFlagsTrackDebugData != 0 {
		out = append(out, "TrackDebugData")
	}
	if f&COMImageFlags32BitPreferred != 0 {
		out = append(out, "32BitPreferred")
	}
	return out
}

// TypeAttributes is the Flags column of TypeDef/ExportedType rows.
type TypeAttributes uint32

// Visibility sub-field of TypeAttributes (low 3 bits).
const (
	TypeAttrNotPublic TypeAttributes = iota
	TypeAttrPublic
	TypeAttrNestedPublic
	TypeAttrNestedPrivate
	TypeAttrNestedFamily
	TypeAttrNestedAssembly
	TypeAttrNestedFamANDAssem
	TypeAttrNestedFamORAssem
)

const typeAttrVisibilityMask TypeAttributes = 0x7

// Layout and semantics bits of TypeAttributes, not exhaustive.
const (
	TypeAttrSequentialLayout TypeAttributes = 0x00000008
	TypeAttrExplicitLayout   TypeAttributes = 0x00000010
	TypeAttrInterface        TypeAttributes = 0x00000020
	TypeAttrAbstract         TypeAttributes = 0x00000080
	TypeAttrSealed           TypeAttributes = 0x00000100
	TypeAttrSpecialName      TypeAttributes = 0x00000400
	TypeAttrImport           TypeAttributes = 0x00001000
	TypeAttrSerializable     TypeAttributes = 0x00002000
)

// Visibility returns the type's nested/public visibility sub-field.
func (f TypeAttributes) Visibility() TypeAttributes {
	return f & typeAttrVisibilityMask
}

// IsInterface reports whether the type is an interface rather than a class.
func (f TypeAttributes) IsInterface() bool {
	return f&TypeAttrInterface != 0
}

// FieldAttributes is the Flags column of Field rows.
type FieldAttributes uint16

// Field accessibility and semantics bits, ECMA-335 §II.23.1.5.
const (
	FieldAttrPrivate             FieldAttributes = 0x0001
	FieldAttrFamANDAssem         FieldAttributes = 0x0002
	FieldAttrAssembly            FieldAttributes = 0x0003
	FieldAttrFamily              FieldAttributes = 0x0004
	FieldAttrFamORAssem          FieldAttributes = 0x0005
	FieldAttrPublic              FieldAttributes = 0x0006
	fieldAttrAccessMask          FieldAttributes = 0x0007
	FieldAttrStatic              FieldAttributes = 0x0010
	FieldAttrInitOnly            FieldAttributes = 0x0020
	FieldAttrLiteral             FieldAttributes = 0x0040
	FieldAttrNotSerialized       FieldAttributes = 0x0080
	FieldAttrSpecialName         FieldAttributes = 0x0200
	FieldAttrPInvokeImpl         FieldAttributes = 0x2000
	FieldAttrRTSpecialName       FieldAttributes = 0x0400
	FieldAttrHasFieldMarshal     FieldAttributes = 0x1000
	FieldAttrHasDefault          FieldAttributes = 0x8000
	FieldAttrHasFieldRVA         FieldAttributes = 0x0100
)

// Access returns the field's accessibility sub-field.
func (f FieldAttributes) Access() FieldAttributes {
	return f & fieldAttrAccessMask
}

// IsStatic reports whether the field is static.
func (f FieldAttributes) IsStatic() bool {
	return f&FieldAttrStatic != 0
}

// MethodAttributes is the Flags column of MethodDef rows.
type MethodAttributes uint16

// Method accessibility and semantics bits, ECMA-335 §II.23.1.10.
const (
	MethodAttrPrivate       MethodAttributes = 0x0001
	MethodAttrFamANDAssem   MethodAttributes = 0x0002
	MethodAttrAssembly      MethodAttributes = 0x0003
	MethodAttrFamily        MethodAttributes = 0x0004
	MethodAttrFamORAssem    MethodAttributes = 0x0005
	MethodAttrPublic        MethodAttributes = 0x0006
	methodAttrAccessMask    MethodAttributes = 0x0007
	MethodAttrStatic        MethodAttributes = 0x0010
	MethodAttrFinal         MethodAttributes = 0x0020
	MethodAttrVirtual       MethodAttributes = 0x0040
	MethodAttrHideBySig     MethodAttributes = 0x0080
	MethodAttrAbstract      MethodAttributes = 0x0400
	MethodAttrSpecialName   MethodAttributes = 0x0800
	MethodAttrPInvokeImpl   MethodAttributes = 0x2000
	MethodAttrRTSpecialName MethodAttributes = 0x1000
)

// IsStatic reports whether the method is static.
func (f MethodAttributes) IsStatic() bool {
	return f&MethodAttrStatic != 0
}

// IsAbstract reports whether the method has no implementation.
func (f MethodAttributes) IsAbstract() bool {
	return f&MethodAttrAbstract != 0
}

// ParamAttributes is the Flags column of Param rows.
type ParamAttributes uint16

const (
	ParamAttrIn       ParamAttributes = 0x0001
	ParamAttrOut      ParamAttributes = 0x0002
	ParamAttrOptional ParamAttributes = 0x0010
	ParamAttrHasDefault ParamAttributes = 0x1000
)

// EventAttributes is the EventFlags column of Event rows.
type EventAttributes uint16

const (
	EventAttrSpecialName   EventAttributes = 0x0200
	EventAttrRTSpecialName EventAttributes = 0x0400
)

// PropertyAttributes is the Flags column of Property rows.
type PropertyAttributes uint16

const (
	PropertyAttrSpecialName   PropertyAttributes = 0x0200
	PropertyAttrRTSpecialName PropertyAttributes = 0x0400
	PropertyAttrHasDefault    PropertyAttributes = 0x1000
)

// MethodImplAttributes is the ImplFlags column of MethodDef rows.
type MethodImplAttributes uint16

const (
	MethodImplCodeTypeMask MethodImplAttributes = 0x0003
	MethodImplIL           MethodImplAttributes = 0x0000
	MethodImplNative       MethodImplAttributes = 0x0001
	MethodImplRuntime      MethodImplAttributes = 0x0003
	MethodImplManaged      MethodImplAttributes = 0x0000
	MethodImplUnmanaged    MethodImplAttributes = 0x0004
	MethodImplForwardRef   MethodImplAttributes = 0x0010
	MethodImplSynchronized MethodImplAttributes = 0x0020
	MethodImplNoInlining   MethodImplAttributes = 0x0008
)

// CodeType returns the IL/Native/OPTIL/Runtime sub-field.
func (f MethodImplAttributes) CodeType() MethodImplAttributes {
	return f & MethodImplCodeTypeMask
}

// MethodSemanticsAttributes is the Semantics column of MethodSemantics rows.
type MethodSemanticsAttributes uint16

const (
	MethodSemanticsSetter   MethodSemanticsAttributes = 0x0001
	MethodSemanticsGetter   MethodSemanticsAttributes = 0x0002
	MethodSemanticsOther    MethodSemanticsAttributes = 0x0004
	MethodSemanticsAddOn    MethodSemanticsAttributes = 0x0008
	MethodSemanticsRemoveOn MethodSemanticsAttributes = 0x0010
	MethodSemanticsFire     MethodSemanticsAttributes = 0x0020
)

// PInvokeAttributes is the MappingFlags column of ImplMap rows.
type PInvokeAttributes uint16

const (
	PInvokeNoMangle         PInvokeAttributes = 0x0001
	PInvokeCharSetAnsi      PInvokeAttributes = 0x0002
	PInvokeCharSetUnicode   PInvokeAttributes = 0x0004
	PInvokeCharSetAuto      PInvokeAttributes = 0x0006
	PInvokeSupportsLastError PInvokeAttributes = 0x0040
	PInvokeCallConvWinapi   PInvokeAttributes = 0x0100
	PInvokeCallConvCdecl    PInvokeAttributes = 0x0200
	PInvokeCallConvStdcall  PInvokeAttributes = 0x0300
	PInvokeCallConvThiscall PInvokeAttributes = 0x0400
	PInvokeCallConvFastcall PInvokeAttributes = 0x0500
)

// AssemblyFlags is the Flags column of Assembly/AssemblyRef rows.
type AssemblyFlags uint32

const (
	AssemblyFlagPublicKey             AssemblyFlags = 0x0001
	AssemblyFlagRetargetable          AssemblyFlags = 0x0100
	AssemblyFlagDisableJITcompileOpt  AssemblyFlags = 0x4000
	AssemblyFlagEnableJITcompileTrack AssemblyFlags = 0x8000
)

// ManifestResourceAttributes is the Flags column of ManifestResource rows.
type ManifestResourceAttributes uint32

const (
	ManifestResourcePublic  ManifestResourceAttributes = 0x0001
	ManifestResourcePrivate ManifestResourceAttributes = 0x0002
)

// GenericParamAttributes is the Flags column of GenericParam rows.
type GenericParamAttributes uint16

const (
	GenericParamVarianceMask      GenericParamAttributes = 0x0003
	GenericParamCovariant         GenericParamAttributes = 0x0001
	GenericParamContravariant     GenericParamAttributes = 0x0002
	GenericParamReferenceTypeConstraint GenericParamAttributes = 0x0004
	GenericParamNotNullableValueTypeConstraint GenericParamAttributes = 0x0008
	GenericParamDefaultConstructorConstraint   GenericParamAttributes = 0x0010
)
