// Package ast is the statement model the evaluator consumes: a tagged
// union over every statement kind a parser can produce, plus the ordered
// parameter list every statement carries regardless of kind. Nothing in
// this package parses source text — statements arrive already typed, per
// spec.md §1's "consumed as opaque structured input".
package ast

import "ecsc/pkg/schema"

// Kind tags a Statement with the statement variant it carries.
type Kind int

const (
	NONE Kind = iota
	UNKNOWN
	PACKAGE
	IMPORT
	COMPONENT
	TRANSIENT
	SYSTEM
	ACTION
	ENUM
	ENUM_VALUE
	BUILTIN_TYPE_FIELD
	USER_TYPE_FIELD
	ENTITY_FIELD
	SYSTEM_COMPONENT
	SYSTEM_GENERATES
	SYSTEM_WITH
	ENTITY_CONSTRAINT
	SYSTEM_NOTIFY
	SYSTEM_NOTIFY_COMPONENT
)

func (k Kind) String() string {
	switch k {
	case NONE:
		return "NONE"
	case UNKNOWN:
		return "UNKNOWN"
	case PACKAGE:
		return "PACKAGE"
	case IMPORT:
		return "IMPORT"
	case COMPONENT:
		return "COMPONENT"
	case TRANSIENT:
		return "TRANSIENT"
	case SYSTEM:
		return "SYSTEM"
	case ACTION:
		return "ACTION"
	case ENUM:
		return "ENUM"
	case ENUM_VALUE:
		return "ENUM_VALUE"
	case BUILTIN_TYPE_FIELD:
		return "BUILTIN_TYPE_FIELD"
	case USER_TYPE_FIELD:
		return "USER_TYPE_FIELD"
	case ENTITY_FIELD:
		return "ENTITY_FIELD"
	case SYSTEM_COMPONENT:
		return "SYSTEM_COMPONENT"
	case SYSTEM_GENERATES:
		return "SYSTEM_GENERATES"
	case SYSTEM_WITH:
		return "SYSTEM_WITH"
	case ENTITY_CONSTRAINT:
		return "ENTITY_CONSTRAINT"
	case SYSTEM_NOTIFY:
		return "SYSTEM_NOTIFY"
	case SYSTEM_NOTIFY_COMPONENT:
		return "SYSTEM_NOTIFY_COMPONENT"
	default:
		return "UNKNOWN"
	}
}

// ValueKind discriminates the three parameter value shapes a parser can emit.
type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueBool
	ValueString
)

// Value is a typed parameter value: integer, boolean, or string.
type Value struct {
	Kind ValueKind
	Int  int64
	Bool bool
	Str  string
}

func IntValue(v int64) Value     { return Value{Kind: ValueInt, Int: v} }
func BoolValue(v bool) Value     { return Value{Kind: ValueBool, Bool: v} }
func StringValue(v string) Value { return Value{Kind: ValueString, Str: v} }

// Parameter is one name/value entry in a statement's ordered parameter list.
type Parameter struct {
	Name  string
	Value Value
}

// Statement is the tagged union every evaluator entry point consumes. Only
// the fields relevant to Kind are populated by a well-formed parser; the
// evaluator never reads a field outside the set its dispatcher expects.
type Statement struct {
	Kind       Kind
	Parameters []Parameter

	// PACKAGE, IMPORT, COMPONENT, TRANSIENT, SYSTEM, ACTION, ENUM,
	// ENTITY_CONSTRAINT (component name), SYSTEM_NOTIFY_COMPONENT /
	// SYSTEM_COMPONENT (component-like name), BUILTIN_TYPE_FIELD /
	// ENTITY_FIELD / USER_TYPE_FIELD / ENUM_VALUE (field/value name).
	Name string

	// PACKAGE
	Main bool

	// USER_TYPE_FIELD: the referenced user type name (enum or composite.field).
	TypeName string

	// BUILTIN_TYPE_FIELD
	Builtin schema.BuiltinType

	// BUILTIN_TYPE_FIELD, ENTITY_FIELD, USER_TYPE_FIELD
	Length int

	// ENUM_VALUE
	IntValue int64

	// SYSTEM_COMPONENT
	Capability schema.Capability
	WithFields []string

	// ENTITY_CONSTRAINT
	Required bool

	// SYSTEM_NOTIFY, SYSTEM_NOTIFY_COMPONENT
	Setting string
}
