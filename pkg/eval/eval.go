// Package eval is the semantic evaluator: it consumes one statement at a
// time, together with the ambient context stack, and mutates a schema.Registry.
// It is stateless between calls beyond that registry mutation, matching
// spec.md §9's "context stack as parameter, not global" design note.
package eval

import (
	"ecsc/pkg/ast"
	"ecsc/pkg/schema"
)

// Evaluator is the single entry point described in spec.md §6.
type Evaluator struct {
	reg schema.Registry
	res *resolver
}

// New constructs an Evaluator bound to reg.
func New(reg schema.Registry) *Evaluator {
	return &Evaluator{reg: reg, res: newResolver(reg)}
}

// EvalPackageStatement handles the PACKAGE file header: it is never routed
// through EvalStatement's dispatch (spec.md §4.4).
func (e *Evaluator) EvalPackageStatement(stmt ast.Statement) schema.PackageID {
	return e.reg.CreatePackage(stmt.Main, stmt.Name)
}

// EvalReset is a no-op hook reserved for future use, per spec.md §6.
func (e *Evaluator) EvalReset() {}

// EvalStatement evaluates stmt under pkg given its nesting context stack
// (outermost first; stmt's parent is stack[len(stack)-1]).
func (e *Evaluator) EvalStatement(pkg schema.PackageID, stack []ast.Statement, stmt ast.Statement) error {
	switch stmt.Kind {
	case ast.IMPORT:
		return e.evalImport(pkg, stack, &stmt)
	case ast.COMPONENT:
		return e.evalComponent(pkg, stack, &stmt)
	case ast.TRANSIENT:
		return e.evalTransient(pkg, stack, &stmt)
	case ast.ENUM:
		return e.evalEnum(pkg, stack, &stmt)
	case ast.ENUM_VALUE:
		return e.evalEnumValue(pkg, stack, &stmt)
	case ast.SYSTEM:
		return e.evalSystem(pkg, stack, &stmt)
	case ast.ACTION:
		return e.evalAction(pkg, stack, &stmt)
	case ast.BUILTIN_TYPE_FIELD:
		return e.evalBuiltinField(pkg, stack, &stmt)
	case ast.ENTITY_FIELD:
		return e.evalEntityField(pkg, stack, &stmt)
	case ast.USER_TYPE_FIELD:
		return e.evalUserTypeField(pkg, stack, &stmt)
	case ast.SYSTEM_COMPONENT:
		return e.evalSystemComponent(pkg, stack, &stmt)
	case ast.SYSTEM_WITH:
		return e.evalSystemWith(pkg, stack, &stmt)
	case ast.SYSTEM_GENERATES:
		return e.evalSystemGenerates(pkg, stack, &stmt)
	case ast.ENTITY_CONSTRAINT:
		return e.evalEntityConstraint(pkg, stack, &stmt)
	case ast.SYSTEM_NOTIFY:
		return e.evalSystemNotify(pkg, stack, &stmt)
	case ast.SYSTEM_NOTIFY_COMPONENT:
		return e.evalSystemNotifyComponent(pkg, stack, &stmt)
	case ast.PACKAGE:
		// PACKAGE is a file header, handled by EvalPackageStatement; reaching
		// the dispatcher with one is a driver bug.
		return newInternal(stmt.Kind)
	default:
		return newInternal(stmt.Kind)
	}
}

// CheckBlockEnd implements spec.md §4.13's end-of-block postcondition hook.
// It follows the in/out error convention: a pre-existing error from the
// block's own statements passes through unchanged, and only a clean block
// is subject to the postcondition check.
func (e *Evaluator) CheckBlockEnd(pkg schema.PackageID, blockHead *ast.Statement, prevErr error) error {
	if prevErr != nil {
		return prevErr
	}
	if blockHead == nil || blockHead.Kind != ast.ACTION {
		return nil
	}
	action, ok := e.res.resolveAction(pkg, blockHead.Name)
	if !ok {
		return nil
	}
	if !schema.HasAnyCapability(e.reg, action) {
		return newNoCapabilities()
	}
	return nil
}
