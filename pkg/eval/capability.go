package eval

import (
	"ecsc/pkg/ast"
	"ecsc/pkg/schema"
)

var systemComponentParents = kinds(ast.SYSTEM, ast.ACTION, ast.SYSTEM_COMPONENT, ast.SYSTEM_WITH)

// createAssociation implements the shared system-with logic of spec.md
// §4.10: resolve every named field against componentLike, require each to
// be builtin-ENTITY or a field-index, require a non-empty list, and record
// a new association.
func (e *Evaluator) createAssociation(sysLike, componentLike schema.DeclID, fieldNames []string) (schema.AssocID, error) {
	if len(fieldNames) == 0 {
		return schema.NilAssocID, newUnexpectedStatement(ast.SYSTEM_WITH)
	}
	fieldIDs := make([]schema.FieldID, 0, len(fieldNames))
	for _, name := range fieldNames {
		fid, ok := e.res.fieldByName(componentLike, name)
		if !ok {
			return schema.NilAssocID, newUnknownFieldName(name)
		}
		ft := e.reg.FieldType(componentLike, fid)
		if !ft.IsEntityOrIndex() {
			return schema.NilAssocID, newInvalidAssocFieldType(name)
		}
		fieldIDs = append(fieldIDs, fid)
	}
	assoc := e.reg.AddSystemAssoc(sysLike, componentLike)
	for _, fid := range fieldIDs {
		e.reg.AddSystemAssocField(sysLike, assoc, fid)
	}
	return assoc, nil
}

// findMatchingAssoc implements spec.md §9's documented association lookup
// limitation: comparing a target field-name list (resolved to field ids) to
// every existing association's recorded field list for the given
// component-like, erroring if more than one matches.
func (e *Evaluator) findMatchingAssoc(sysLike, componentLike schema.DeclID, fieldNames []string) (schema.AssocID, error) {
	want := make([]schema.FieldID, 0, len(fieldNames))
	for _, name := range fieldNames {
		fid, ok := e.res.fieldByName(componentLike, name)
		if !ok {
			return schema.NilAssocID, newUnknownFieldName(name)
		}
		want = append(want, fid)
	}
	var matches []schema.AssocID
	for _, aid := range e.reg.SystemAssocIDs(sysLike) {
		if e.reg.SystemAssocComponentID(sysLike, aid) != componentLike {
			continue
		}
		if fieldIDsEqual(e.reg.SystemAssocFields(sysLike, aid), want) {
			matches = append(matches, aid)
		}
	}
	switch len(matches) {
	case 0:
		return schema.NilAssocID, nil
	case 1:
		return matches[0], nil
	default:
		return schema.NilAssocID, newSameFieldsSystemAssociation()
	}
}

func fieldIDsEqual(a, b []schema.FieldID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// locateSystemLikeContext implements spec.md §4.9's parent-kind table: given
// the already-matched parent of a SYSTEM_COMPONENT statement, resolves the
// enclosing system-like and, if the statement is nested under a prior
// association, that association's component-like and field-name list.
func (e *Evaluator) locateSystemLikeContext(pkg schema.PackageID, stack []ast.Statement, parent *ast.Statement) (sysLike, outerComponentLike schema.DeclID, outerWithFields []string, err error) {
	switch parent.Kind {
	case ast.SYSTEM, ast.ACTION:
		sysLike, ok := e.res.resolveSystemLike(pkg, parent.Name)
		if !ok {
			return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(parent.Kind)
		}
		return sysLike, schema.NilDeclID, nil, nil

	case ast.SYSTEM_COMPONENT:
		if len(stack) < 2 {
			return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(parent.Kind)
		}
		gp := stack[len(stack)-2]
		if gp.Kind != ast.SYSTEM && gp.Kind != ast.ACTION {
			return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(parent.Kind)
		}
		sysLike, ok := e.res.resolveSystemLike(pkg, gp.Name)
		if !ok {
			return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(gp.Kind)
		}
		outerComponentLike, ok := e.res.resolveComponentLike(pkg, parent.Name)
		if !ok {
			return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(parent.Kind)
		}
		return sysLike, outerComponentLike, parent.WithFields, nil

	case ast.SYSTEM_WITH:
		if len(stack) < 3 {
			return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(parent.Kind)
		}
		gp := stack[len(stack)-2]
		if gp.Kind != ast.SYSTEM_COMPONENT {
			return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(parent.Kind)
		}
		ggp := stack[len(stack)-3]
		if ggp.Kind != ast.SYSTEM && ggp.Kind != ast.ACTION {
			return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(parent.Kind)
		}
		sysLike, ok := e.res.resolveSystemLike(pkg, ggp.Name)
		if !ok {
			return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(ggp.Kind)
		}
		outerComponentLike, ok := e.res.resolveComponentLike(pkg, gp.Name)
		if !ok {
			return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(gp.Kind)
		}
		return sysLike, outerComponentLike, parent.WithFields, nil

	default:
		return schema.NilDeclID, schema.NilDeclID, nil, newInvalidContext(parent.Kind)
	}
}

// evalSystemComponent implements spec.md §4.9, the capability dispatcher.
func (e *Evaluator) evalSystemComponent(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	parent, err := matchContext(stack, systemComponentParents, false)
	if err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}

	componentLike, ok := e.res.resolveComponentLike(pkg, stmt.Name)
	if !ok {
		return newUnknownComponentLikeType(stmt.Name)
	}

	sysLike, outerComponentLike, outerWithFields, err := e.locateSystemLikeContext(pkg, stack, parent)
	if err != nil {
		return err
	}

	assocID := schema.NilAssocID
	switch parent.Kind {
	case ast.SYSTEM_COMPONENT:
		if len(stmt.WithFields) > 0 {
			return newNestedAssoc()
		}
		if len(outerWithFields) > 0 {
			found, ferr := e.findMatchingAssoc(sysLike, outerComponentLike, outerWithFields)
			if ferr != nil {
				return ferr
			}
			assocID = found
		}
	case ast.SYSTEM_WITH:
		found, ferr := e.findMatchingAssoc(sysLike, outerComponentLike, outerWithFields)
		if ferr != nil {
			return ferr
		}
		assocID = found
	}

	if e.reg.SystemNotifySettingsCount(sysLike) > 0 {
		return newNotifyBeforeSystemComponent()
	}

	if len(stmt.WithFields) > 0 {
		// A with-clause on this statement creates an association for any
		// nested SYSTEM_COMPONENT/SYSTEM_WITH children to look up, but it
		// never redirects this statement's own capability: that placement
		// is decided solely by the switch above.
		if _, aerr := e.createAssociation(sysLike, componentLike, stmt.WithFields); aerr != nil {
			return aerr
		}
	}

	if assocID != schema.NilAssocID {
		if _, exists := e.reg.SystemAssocCapabilities(sysLike, assocID)[componentLike]; exists {
			return newMultipleCapabilitiesSameComponentLike(stmt.Name)
		}
		e.reg.SetSystemAssocCapability(sysLike, assocID, componentLike, stmt.Capability)
		return nil
	}

	if _, exists := e.reg.SystemCapabilities(sysLike)[componentLike]; exists {
		return newMultipleCapabilitiesSameComponentLike(stmt.Name)
	}
	e.reg.SetSystemCapability(sysLike, componentLike, stmt.Capability)
	return nil
}

// evalSystemWith implements the standalone SYSTEM_WITH form of spec.md
// §4.10: permitted only directly under a SYSTEM_COMPONENT statement.
func (e *Evaluator) evalSystemWith(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	parent, err := matchContext(stack, kinds(ast.SYSTEM_COMPONENT), false)
	if err != nil {
		return err
	}
	if err := disallowParams(stmt); err != nil {
		return err
	}
	if len(stack) < 2 {
		return newInvalidContext(parent.Kind)
	}
	gp := stack[len(stack)-2]
	if gp.Kind != ast.SYSTEM && gp.Kind != ast.ACTION {
		return newInvalidContext(parent.Kind)
	}
	sysLike, ok := e.res.resolveSystemLike(pkg, gp.Name)
	if !ok {
		return newInvalidContext(gp.Kind)
	}
	componentLike, ok := e.res.resolveComponentLike(pkg, parent.Name)
	if !ok {
		return newInvalidContext(parent.Kind)
	}
	_, err = e.createAssociation(sysLike, componentLike, stmt.WithFields)
	return err
}
