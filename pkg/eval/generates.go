package eval

import (
	"ecsc/pkg/ast"
	"ecsc/pkg/schema"
)

// evalSystemGenerates implements spec.md §4.11: permitted directly under a
// SYSTEM or ACTION, and at most once per system-like.
func (e *Evaluator) evalSystemGenerates(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	parent, err := matchContext(stack, systemParents, false)
	if err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}
	sysLike, ok := e.res.resolveSystemLike(pkg, parent.Name)
	if !ok {
		return newInvalidContext(parent.Kind)
	}
	if len(e.reg.SystemGeneratesIDs(sysLike)) > 0 {
		return newOnlyOneGeneratesBlockAllowed()
	}
	e.reg.AddSystemGenerates(sysLike)
	return nil
}

// evalEntityConstraint implements spec.md §4.11's per-component constraint
// entries, permitted only inside a SYSTEM_GENERATES block.
func (e *Evaluator) evalEntityConstraint(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	parent, err := matchContext(stack, kinds(ast.SYSTEM_GENERATES), false)
	if err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}
	if len(stack) < 2 {
		return newInvalidContext(parent.Kind)
	}
	grandparent := stack[len(stack)-2]
	sysLike, ok := e.res.resolveSystemLike(pkg, grandparent.Name)
	if !ok {
		return newInvalidContext(grandparent.Kind)
	}
	gens := e.reg.SystemGeneratesIDs(sysLike)
	if len(gens) == 0 {
		return newInvalidContext(parent.Kind)
	}
	gen := gens[len(gens)-1]

	component, ok := e.res.resolveComponent(pkg, stmt.Name)
	if !ok {
		return newUnknownComponentType(stmt.Name)
	}
	if _, exists := e.reg.SystemGeneratesComponents(sysLike, gen)[component]; exists {
		return newGeneratesDuplicateComponentConstraints(stmt.Name)
	}

	req := schema.GenerateOptional
	if stmt.Required {
		req = schema.GenerateRequired
	}
	e.reg.SystemGeneratesSetComponent(sysLike, gen, component, req)
	return nil
}
