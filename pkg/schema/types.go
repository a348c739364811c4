// Package schema defines the capability-style registry the evaluator mutates:
// packages, their declarations (components, transients, systems, actions,
// enums), composite fields, and system-like capability/association/notify
// state. The registry itself enforces no semantic invariants — the
// evaluator package owns those checks; a statement it rejects part-way can
// leave the effects of setters it already called.
package schema

import "github.com/google/uuid"

// PackageID identifies a declared package.
type PackageID uuid.UUID

// DeclID identifies a component, transient, system, action, or enum. Name
// uniqueness spans all five kinds within a package, so a single id space is
// used and DeclKind distinguishes what a given id actually names.
type DeclID uuid.UUID

// FieldID identifies a field on a composite (component, transient, or action).
type FieldID uuid.UUID

// AssocID identifies a system-like/component-like association.
type AssocID uuid.UUID

// GenID identifies a generates-block on a system-like.
type GenID uuid.UUID

var (
	NilPackageID = PackageID(uuid.Nil)
	NilDeclID    = DeclID(uuid.Nil)
	NilFieldID   = FieldID(uuid.Nil)
	NilAssocID   = AssocID(uuid.Nil)
	NilGenID     = GenID(uuid.Nil)
)

func newPackageID() PackageID { return PackageID(uuid.New()) }
func newDeclID() DeclID       { return DeclID(uuid.New()) }
func newFieldID() FieldID     { return FieldID(uuid.New()) }
func newAssocID() AssocID     { return AssocID(uuid.New()) }
func newGenID() GenID         { return GenID(uuid.New()) }

// DeclKind distinguishes the five declaration kinds that share the DeclID
// namespace.
type DeclKind int

const (
	DeclComponent DeclKind = iota
	DeclTransient
	DeclSystem
	DeclAction
	DeclEnum
)

func (k DeclKind) String() string {
	switch k {
	case DeclComponent:
		return "component"
	case DeclTransient:
		return "transient"
	case DeclSystem:
		return "system"
	case DeclAction:
		return "action"
	case DeclEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// IsComponentLike reports whether k is component or transient.
func (k DeclKind) IsComponentLike() bool {
	return k == DeclComponent || k == DeclTransient
}

// IsSystemLike reports whether k is system or action.
func (k DeclKind) IsSystemLike() bool {
	return k == DeclSystem || k == DeclAction
}

// IsComposite reports whether k owns a field list (component, transient, action).
func (k DeclKind) IsComposite() bool {
	return k == DeclComponent || k == DeclTransient || k == DeclAction
}

// ComponentType is the persistence/update mode of a COMPONENT declaration.
type ComponentType int

const (
	ComponentNone ComponentType = iota
	ComponentStream
	ComponentLazyStream
	ComponentTransientMarker
)

// BuiltinType enumerates primitive field types, including the ENTITY sentinel.
type BuiltinType int

const (
	BuiltinBool BuiltinType = iota
	BuiltinI8
	BuiltinI16
	BuiltinI32
	BuiltinI64
	BuiltinU8
	BuiltinU16
	BuiltinU32
	BuiltinU64
	BuiltinF32
	BuiltinF64
	BuiltinString
	BuiltinEntity
)

// ParseBuiltinType parses the lowercase textual builtin names accepted in source.
func ParseBuiltinType(name string) (BuiltinType, bool) {
	switch name {
	case "bool":
		return BuiltinBool, true
	case "i8":
		return BuiltinI8, true
	case "i16":
		return BuiltinI16, true
	case "i32":
		return BuiltinI32, true
	case "i64":
		return BuiltinI64, true
	case "u8":
		return BuiltinU8, true
	case "u16":
		return BuiltinU16, true
	case "u32":
		return BuiltinU32, true
	case "u64":
		return BuiltinU64, true
	case "f32":
		return BuiltinF32, true
	case "f64":
		return BuiltinF64, true
	case "string":
		return BuiltinString, true
	case "entity":
		return BuiltinEntity, true
	default:
		return 0, false
	}
}

// FieldTypeKind discriminates the three shapes a field's type can take.
type FieldTypeKind int

const (
	FieldTypeBuiltin FieldTypeKind = iota
	FieldTypeEnum
	FieldTypeIndex
)

// FieldIndex references a field owned by a composite elsewhere in the registry.
type FieldIndex struct {
	Composite DeclID
	Field     FieldID
}

// FieldType is the type of a composite field: a builtin (including ENTITY),
// a reference to an enum declaration, or a field-index pointing at another
// composite's field.
type FieldType struct {
	Kind    FieldTypeKind
	Builtin BuiltinType
	Enum    DeclID
	Index   FieldIndex
	// Length is nonzero for array fields; zero means scalar.
	Length int
}

// IsEntityOrIndex reports whether t is builtin-ENTITY or a field-index, the
// only two field type shapes an association field is allowed to have.
func (t FieldType) IsEntityOrIndex() bool {
	if t.Kind == FieldTypeIndex {
		return true
	}
	return t.Kind == FieldTypeBuiltin && t.Builtin == BuiltinEntity
}

// Capability is a per-system-like access mode granted on a component-like.
type Capability int

const (
	CapabilityRead Capability = iota
	CapabilityWrite
	CapabilityReadWrite
	CapabilityExclude
)

// ParseCapability parses the lowercase textual capability names accepted in source.
func ParseCapability(name string) (Capability, bool) {
	switch name {
	case "read":
		return CapabilityRead, true
	case "write":
		return CapabilityWrite, true
	case "read_write":
		return CapabilityReadWrite, true
	case "exclude":
		return CapabilityExclude, true
	default:
		return 0, false
	}
}

// ParallelMode is a system-like's parallel execution preference.
type ParallelMode int

const (
	ParallelAuto ParallelMode = iota
	ParallelPreferred
	ParallelDeny
)

// NotifySetting controls when a system reacts to a component-like's lifecycle events.
type NotifySetting int

const (
	NotifyAlways NotifySetting = iota
	NotifyOnInit
	NotifyOnUpdate
	NotifyOnChange
	NotifyOnRemove
)

// ParseNotifySetting parses the lowercase textual setting names accepted in source.
func ParseNotifySetting(name string) (NotifySetting, bool) {
	switch name {
	case "always":
		return NotifyAlways, true
	case "oninit":
		return NotifyOnInit, true
	case "onupdate":
		return NotifyOnUpdate, true
	case "onchange":
		return NotifyOnChange, true
	case "onremove":
		return NotifyOnRemove, true
	default:
		return 0, false
	}
}

// GenerateRequirement is whether a generates-block constraint component is
// required or merely optional on generated entities.
type GenerateRequirement int

const (
	GenerateRequired GenerateRequirement = iota
	GenerateOptional
)
