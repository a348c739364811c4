package eval

import (
	"ecsc/pkg/ast"
	"ecsc/pkg/schema"
)

var fieldParents = kinds(ast.COMPONENT, ast.TRANSIENT, ast.ACTION)

// resolveFieldParent implements the "permitted inside COMPONENT, TRANSIENT,
// or ACTION" rule shared by every field statement kind (spec.md §4.8).
func (e *Evaluator) resolveFieldParent(pkg schema.PackageID, stack []ast.Statement) (schema.DeclID, error) {
	parent, err := matchContext(stack, fieldParents, false)
	if err != nil {
		return schema.NilDeclID, err
	}
	composite, ok := e.res.resolveComposite(pkg, parent.Name)
	if !ok {
		return schema.NilDeclID, newInvalidContext(parent.Kind)
	}
	return composite, nil
}

func (e *Evaluator) checkFieldNameAvailable(composite schema.DeclID, name string) error {
	if _, ok := e.res.fieldByName(composite, name); ok {
		return newFieldNameAlreadyExists(name)
	}
	return nil
}

// evalBuiltinField implements the builtin half of spec.md §4.8.
func (e *Evaluator) evalBuiltinField(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	composite, err := e.resolveFieldParent(pkg, stack)
	if err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}
	if err := e.checkFieldNameAvailable(composite, stmt.Name); err != nil {
		return err
	}
	e.reg.AddField(composite, schema.FieldType{
		Kind:    schema.FieldTypeBuiltin,
		Builtin: stmt.Builtin,
		Length:  stmt.Length,
	}, stmt.Name)
	return nil
}

// evalEntityField implements the ENTITY half of spec.md §4.8.
func (e *Evaluator) evalEntityField(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	composite, err := e.resolveFieldParent(pkg, stack)
	if err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}
	if err := e.checkFieldNameAvailable(composite, stmt.Name); err != nil {
		return err
	}
	e.reg.AddField(composite, schema.FieldType{
		Kind:    schema.FieldTypeBuiltin,
		Builtin: schema.BuiltinEntity,
		Length:  stmt.Length,
	}, stmt.Name)
	return nil
}

// evalUserTypeField implements spec.md §4.8's user-type field resolution:
// the referenced type name must resolve to exactly one of an enum or a
// composite.field full name.
func (e *Evaluator) evalUserTypeField(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	composite, err := e.resolveFieldParent(pkg, stack)
	if err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}
	if err := e.checkFieldNameAvailable(composite, stmt.Name); err != nil {
		return err
	}

	enumID, enumOK := e.res.resolveEnum(pkg, stmt.TypeName)
	fieldType, fieldOK := e.res.fieldByFullName(pkg, stmt.TypeName)

	switch {
	case enumOK && fieldOK:
		return newAmbiguousFieldType(stmt.TypeName)
	case enumOK:
		e.reg.AddField(composite, schema.FieldType{
			Kind:   schema.FieldTypeEnum,
			Enum:   enumID,
			Length: stmt.Length,
		}, stmt.Name)
		return nil
	case fieldOK:
		fieldType.Length = stmt.Length
		e.reg.AddField(composite, fieldType, stmt.Name)
		return nil
	default:
		return newUnknownFieldType(stmt.TypeName)
	}
}
