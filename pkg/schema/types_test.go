package schema

import "testing"

func TestParseBuiltinType(t *testing.T) {
	cases := map[string]BuiltinType{
		"bool":   BuiltinBool,
		"i64":    BuiltinI64,
		"u8":     BuiltinU8,
		"f32":    BuiltinF32,
		"string": BuiltinString,
		"entity": BuiltinEntity,
	}
	for name, want := range cases {
		got, ok := ParseBuiltinType(name)
		if !ok || got != want {
			t.Errorf("ParseBuiltinType(%q) = (%v, %v), want (%v, true)", name, got, ok, want)
		}
	}
	if _, ok := ParseBuiltinType("not_a_type"); ok {
		t.Errorf("ParseBuiltinType(not_a_type) succeeded, want failure")
	}
}

func TestParseCapability(t *testing.T) {
	if got, ok := ParseCapability("read_write"); !ok || got != CapabilityReadWrite {
		t.Errorf("ParseCapability(read_write) = (%v, %v), want (ReadWrite, true)", got, ok)
	}
	if _, ok := ParseCapability("readwrite"); ok {
		t.Errorf("ParseCapability(readwrite) succeeded, want failure (underscore required)")
	}
}

func TestFieldTypeIsEntityOrIndex(t *testing.T) {
	entity := FieldType{Kind: FieldTypeBuiltin, Builtin: BuiltinEntity}
	if !entity.IsEntityOrIndex() {
		t.Errorf("builtin-entity field type should be entity-or-index")
	}
	index := FieldType{Kind: FieldTypeIndex}
	if !index.IsEntityOrIndex() {
		t.Errorf("field-index field type should be entity-or-index")
	}
	str := FieldType{Kind: FieldTypeBuiltin, Builtin: BuiltinString}
	if str.IsEntityOrIndex() {
		t.Errorf("builtin-string field type should not be entity-or-index")
	}
}

func TestDeclKindPredicates(t *testing.T) {
	if !DeclComponent.IsComponentLike() || !DeclTransient.IsComponentLike() {
		t.Errorf("component and transient should be component-like")
	}
	if DeclSystem.IsComponentLike() {
		t.Errorf("system should not be component-like")
	}
	if !DeclSystem.IsSystemLike() || !DeclAction.IsSystemLike() {
		t.Errorf("system and action should be system-like")
	}
	if !DeclComponent.IsComposite() || !DeclTransient.IsComposite() || !DeclAction.IsComposite() {
		t.Errorf("component, transient, and action should be composite")
	}
	if DeclEnum.IsComposite() {
		t.Errorf("enum should not be composite")
	}
}
