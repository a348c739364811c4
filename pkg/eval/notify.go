package eval

import (
	"ecsc/pkg/ast"
	"ecsc/pkg/schema"
)

// evalSystemNotify implements spec.md §4.12: permitted directly under a
// SYSTEM or ACTION, at most once. A block-level setting back-applies to
// every component-like in the system-like's system-wide capability map
// (association-scoped capabilities are not touched); an empty setting marks
// the statement as the per-component form, populated by
// evalSystemNotifyComponent children. Either form records a sentinel entry
// under schema.NilDeclID so later statements can detect that a notify
// statement has already been issued for this system-like.
func (e *Evaluator) evalSystemNotify(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
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
	if e.reg.SystemNotifySettingsCount(sysLike) > 0 {
		return newMultipleNotifyStatements()
	}

	if stmt.Setting == "" {
		e.reg.SetSystemNotifyComponentSetting(sysLike, schema.NilDeclID, schema.NotifyOnChange)
		return nil
	}

	setting, ok := schema.ParseNotifySetting(stmt.Setting)
	if !ok {
		return newInvalidNotifySetting(stmt.Setting)
	}
	e.reg.SetSystemNotifyComponentSetting(sysLike, schema.NilDeclID, setting)
	for componentLike := range e.reg.SystemCapabilities(sysLike) {
		e.reg.SetSystemNotifyComponentSetting(sysLike, componentLike, setting)
	}
	return nil
}

// evalSystemNotifyComponent implements spec.md §4.12's per-component form,
// permitted only inside a SYSTEM_NOTIFY block that carries no block-level
// setting of its own.
func (e *Evaluator) evalSystemNotifyComponent(pkg schema.PackageID, stack []ast.Statement, stmt *ast.Statement) error {
	parent, err := matchContext(stack, kinds(ast.SYSTEM_NOTIFY), false)
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
	if parent.Setting != "" {
		return newNotifyBlockAndComponents()
	}

	componentLike, ok := e.res.resolveComponentLike(pkg, stmt.Name)
	if !ok {
		return newUnknownComponentLikeType(stmt.Name)
	}
	if _, exists := e.reg.SystemNotifySettings(sysLike)[componentLike]; exists {
		return newDuplicateNotifyComponent(stmt.Name)
	}

	setting, ok := schema.ParseNotifySetting(stmt.Setting)
	if !ok {
		return newInvalidNotifySetting(stmt.Setting)
	}
	e.reg.SetSystemNotifyComponentSetting(sysLike, componentLike, setting)
	return nil
}
