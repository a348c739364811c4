package eval

import (
	"ecsc/pkg/ast"
	"ecsc/pkg/schema"
)

func (e *Evaluator) checkNameAvailable(pkg schema.PackageID, name string) error {
	if _, ok := e.res.resolveDeclaration(pkg, name); ok {
		return newDeclarationNameTaken(name)
	}
	return nil
}

// evalImport implements spec.md §4.4: IMPORT is top-level only, takes no
// parameters, and records a dependency on an already-known package.
func (e *Evaluator) evalImport(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	if _, err := matchContext(stack, nil, true); err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}
	for _, dep := range e.reg.ListPackages() {
		if e.reg.PackageName(dep) == stmt.Name {
			e.reg.AddDependency(pkg, dep)
			return nil
		}
	}
	return newUnknownImport(stmt.Name)
}

// evalComponent implements spec.md §4.5's COMPONENT dispatcher.
func (e *Evaluator) evalComponent(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	if _, err := matchContext(stack, nil, true); err != nil {
		return err
	}
	if err := allowParams(stmt, "transient", "stream"); err != nil {
		return err
	}
	if err := e.checkNameAvailable(pkg, stmt.Name); err != nil {
		return err
	}

	transient, hasTransient := paramBool(stmt, "transient")
	var streamType schema.ComponentType
	hasStream := false
	if b, ok := paramBool(stmt, "stream"); ok {
		hasStream = true
		if b {
			streamType = schema.ComponentStream
		} else {
			streamType = schema.ComponentNone
			hasStream = false
		}
	} else if s, ok := paramString(stmt, "stream"); ok {
		hasStream = true
		if s == "lazy" {
			streamType = schema.ComponentLazyStream
		} else {
			return newInvalidParameterValue("stream")
		}
	}

	transientTruthy := hasTransient && transient
	streamTruthy := hasStream
	if transientTruthy && streamTruthy {
		return newInvalidParameterValue("transient")
	}

	id := e.reg.CreateComponent(pkg, stmt.Name)
	switch {
	case streamTruthy:
		e.reg.SetComponentType(id, streamType)
	case transientTruthy:
		e.reg.SetComponentType(id, schema.ComponentTransientMarker)
	default:
		e.reg.SetComponentType(id, schema.ComponentNone)
	}
	return nil
}

// evalTransient implements spec.md §4.5's TRANSIENT dispatcher.
func (e *Evaluator) evalTransient(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	if _, err := matchContext(stack, nil, true); err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}
	if err := e.checkNameAvailable(pkg, stmt.Name); err != nil {
		return err
	}
	e.reg.CreateTransient(pkg, stmt.Name)
	return nil
}

// evalEnum implements spec.md §4.5's ENUM dispatcher.
func (e *Evaluator) evalEnum(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	if _, err := matchContext(stack, nil, true); err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}
	if err := e.checkNameAvailable(pkg, stmt.Name); err != nil {
		return err
	}
	e.reg.CreateEnum(pkg, stmt.Name)
	return nil
}

// evalEnumValue implements spec.md §4.7: permitted only inside ENUM.
func (e *Evaluator) evalEnumValue(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	parent, err := matchContext(stack, kinds(ast.ENUM), false)
	if err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}
	enum, ok := e.res.resolveEnum(pkg, parent.Name)
	if !ok {
		return newInvalidContext(ast.ENUM)
	}
	e.reg.AddEnumValue(enum, stmt.IntValue, stmt.Name)
	return nil
}

var systemParents = kinds(ast.SYSTEM, ast.ACTION)

// evalSystem implements spec.md §4.6's SYSTEM dispatcher: top level or
// nested inside a SYSTEM/ACTION.
func (e *Evaluator) evalSystem(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	parent, err := matchContext(stack, systemParents, true)
	if err != nil {
		return err
	}
	if err := allowParams(stmt, "parallel", "lazy"); err != nil {
		return err
	}
	if err := e.checkNameAvailable(pkg, stmt.Name); err != nil {
		return err
	}
	parallel, err := parseParallelParam(stmt)
	if err != nil {
		return err
	}
	lazy, err := parseLazyParam(stmt)
	if err != nil {
		return err
	}

	id := e.reg.CreateSystem(pkg, stmt.Name)
	if parent != nil {
		parentID, ok := e.res.resolveSystemLike(pkg, parent.Name)
		if !ok {
			return newInvalidContext(parent.Kind)
		}
		e.reg.AddChildSystem(parentID, id)
	}
	if lazy > 0 {
		e.reg.SetSystemLazyIterationRate(id, lazy)
	}
	e.reg.SetSystemParallelExecution(id, parallel)
	return nil
}

// evalAction implements spec.md §4.6's ACTION dispatcher: top level only.
func (e *Evaluator) evalAction(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	if _, err := matchContext(stack, nil, true); err != nil {
		return err
	}
	if err := allowParams(stmt, "parallel"); err != nil {
		return err
	}
	if err := e.checkNameAvailable(pkg, stmt.Name); err != nil {
		return err
	}
	parallel, err := parseParallelParam(stmt)
	if err != nil {
		return err
	}
	id := e.reg.CreateAction(pkg, stmt.Name)
	e.reg.SetSystemParallelExecution(id, parallel)
	return nil
}
