package eval

import (
	"testing"

	"ecsc/pkg/ast"
	"ecsc/pkg/schema"
)

func newTestEvaluator() (*Evaluator, schema.Registry, schema.PackageID) {
	reg := schema.NewMemoryRegistry()
	pkg := reg.CreatePackage(true, "game")
	return New(reg), reg, pkg
}

func builtinField(name string, t schema.BuiltinType) ast.Statement {
	return ast.Statement{Kind: ast.BUILTIN_TYPE_FIELD, Name: name, Builtin: t}
}

func systemComponent(name string, cap schema.Capability, withFields ...string) ast.Statement {
	return ast.Statement{Kind: ast.SYSTEM_COMPONENT, Name: name, Capability: cap, WithFields: withFields}
}

// Scenario 1: valid component+system.
func TestValidComponentAndSystem(t *testing.T) {
	ev, reg, pkg := newTestEvaluator()

	component := ast.Statement{Kind: ast.COMPONENT, Name: "Position"}
	if err := ev.EvalStatement(pkg, nil, component); err != nil {
		t.Fatalf("component Position: %v", err)
	}
	componentStack := []ast.Statement{component}
	if err := ev.EvalStatement(pkg, componentStack, builtinField("x", schema.BuiltinF32)); err != nil {
		t.Fatalf("field x: %v", err)
	}
	if err := ev.EvalStatement(pkg, componentStack, builtinField("y", schema.BuiltinF32)); err != nil {
		t.Fatalf("field y: %v", err)
	}

	system := ast.Statement{Kind: ast.SYSTEM, Name: "Move"}
	if err := ev.EvalStatement(pkg, nil, system); err != nil {
		t.Fatalf("system Move: %v", err)
	}
	systemStack := []ast.Statement{system}
	if err := ev.EvalStatement(pkg, systemStack, systemComponent("Position", schema.CapabilityReadWrite)); err != nil {
		t.Fatalf("readwrite Position: %v", err)
	}

	components := reg.ComponentIDs(pkg)
	if len(components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(components))
	}
	if len(reg.FieldIDs(components[0])) != 2 {
		t.Fatalf("expected 2 fields on Position, got %d", len(reg.FieldIDs(components[0])))
	}

	systems := reg.SystemIDs(pkg)
	if len(systems) != 1 {
		t.Fatalf("expected 1 system, got %d", len(systems))
	}
	moveID := systems[0]
	caps := reg.SystemCapabilities(moveID)
	if got, ok := caps[components[0]]; !ok || got != schema.CapabilityReadWrite {
		t.Fatalf("Move capabilities = %v, want Position->ReadWrite", caps)
	}
	if got := reg.SystemParallelExecution(moveID); got != schema.ParallelAuto {
		t.Fatalf("Move.parallel = %v, want ParallelAuto", got)
	}
}

// Scenario 2: name collision.
func TestDuplicateComponentNameRejected(t *testing.T) {
	ev, _, pkg := newTestEvaluator()

	first := ast.Statement{Kind: ast.COMPONENT, Name: "A"}
	if err := ev.EvalStatement(pkg, nil, first); err != nil {
		t.Fatalf("first component A: %v", err)
	}
	second := ast.Statement{Kind: ast.COMPONENT, Name: "A"}
	err := ev.EvalStatement(pkg, nil, second)
	assertErrorCode(t, err, ErrDeclarationNameTaken)
}

// Scenario 3: unknown import.
func TestUnknownImportRejected(t *testing.T) {
	ev, _, pkg := newTestEvaluator()
	err := ev.EvalStatement(pkg, nil, ast.Statement{Kind: ast.IMPORT, Name: "NotAPkg"})
	assertErrorCode(t, err, ErrUnknownImport)
}

// Scenario 4: transient stream forbidden.
func TestTransientStreamForbidden(t *testing.T) {
	ev, _, pkg := newTestEvaluator()
	stmt := ast.Statement{
		Kind: ast.COMPONENT,
		Name: "C",
		Parameters: []ast.Parameter{
			{Name: "transient", Value: ast.BoolValue(true)},
			{Name: "stream", Value: ast.BoolValue(true)},
		},
	}
	err := ev.EvalStatement(pkg, nil, stmt)
	assertErrorCode(t, err, ErrInvalidParameterValue)
}

// Scenario 5: association with non-entity field.
func TestAssociationWithNonEntityFieldRejected(t *testing.T) {
	ev, _, pkg := newTestEvaluator()

	component := ast.Statement{Kind: ast.COMPONENT, Name: "C"}
	if err := ev.EvalStatement(pkg, nil, component); err != nil {
		t.Fatalf("component C: %v", err)
	}
	if err := ev.EvalStatement(pkg, []ast.Statement{component}, builtinField("x", schema.BuiltinF32)); err != nil {
		t.Fatalf("field x: %v", err)
	}

	system := ast.Statement{Kind: ast.SYSTEM, Name: "S"}
	if err := ev.EvalStatement(pkg, nil, system); err != nil {
		t.Fatalf("system S: %v", err)
	}
	err := ev.EvalStatement(pkg, []ast.Statement{system}, systemComponent("C", schema.CapabilityReadWrite, "x"))
	assertErrorCode(t, err, ErrInvalidAssocFieldType)
}

// Scenario 6: notify-then-capability ordering, both directions.
func TestNotifyBeforeCapabilityRejectedButReverseSucceeds(t *testing.T) {
	ev, reg, pkg := newTestEvaluator()

	for _, name := range []string{"C", "D"} {
		component := ast.Statement{Kind: ast.COMPONENT, Name: name}
		if err := ev.EvalStatement(pkg, nil, component); err != nil {
			t.Fatalf("component %s: %v", name, err)
		}
	}

	system := ast.Statement{Kind: ast.SYSTEM, Name: "S"}
	if err := ev.EvalStatement(pkg, nil, system); err != nil {
		t.Fatalf("system S: %v", err)
	}
	systemStack := []ast.Statement{system}

	if err := ev.EvalStatement(pkg, systemStack, systemComponent("C", schema.CapabilityReadWrite)); err != nil {
		t.Fatalf("readwrite C: %v", err)
	}
	if err := ev.EvalStatement(pkg, systemStack, ast.Statement{Kind: ast.SYSTEM_NOTIFY, Setting: "always"}); err != nil {
		t.Fatalf("notify always: %v", err)
	}

	err := ev.EvalStatement(pkg, systemStack, systemComponent("D", schema.CapabilityReadWrite))
	assertErrorCode(t, err, ErrNotifyBeforeSystemComponent)

	systems := reg.SystemIDs(pkg)
	cComponent := reg.ComponentIDs(pkg)[0]
	notify := reg.SystemNotifySettings(systems[0])
	if got, ok := notify[cComponent]; !ok || got != schema.NotifyAlways {
		t.Fatalf("notify[C] = (%v, %v), want (Always, true)", got, ok)
	}
}

// Scenario 6, reverse order: notify after capabilities succeeds and
// back-applies the setting to the existing capability set.
func TestNotifyAfterCapabilitiesAppliesToExisting(t *testing.T) {
	ev, reg, pkg := newTestEvaluator()

	component := ast.Statement{Kind: ast.COMPONENT, Name: "C"}
	if err := ev.EvalStatement(pkg, nil, component); err != nil {
		t.Fatalf("component C: %v", err)
	}

	system := ast.Statement{Kind: ast.SYSTEM, Name: "S"}
	if err := ev.EvalStatement(pkg, nil, system); err != nil {
		t.Fatalf("system S: %v", err)
	}
	systemStack := []ast.Statement{system}

	if err := ev.EvalStatement(pkg, systemStack, systemComponent("C", schema.CapabilityReadWrite)); err != nil {
		t.Fatalf("readwrite C: %v", err)
	}
	if err := ev.EvalStatement(pkg, systemStack, ast.Statement{Kind: ast.SYSTEM_NOTIFY, Setting: "always"}); err != nil {
		t.Fatalf("notify always: %v", err)
	}

	systems := reg.SystemIDs(pkg)
	cComponent := reg.ComponentIDs(pkg)[0]
	notify := reg.SystemNotifySettings(systems[0])
	if got, ok := notify[cComponent]; !ok || got != schema.NotifyAlways {
		t.Fatalf("notify[C] = (%v, %v), want (Always, true)", got, ok)
	}
}

// Scenario 7: action without capabilities.
func TestActionWithoutCapabilitiesFailsAtBlockEnd(t *testing.T) {
	ev, _, pkg := newTestEvaluator()
	action := ast.Statement{Kind: ast.ACTION, Name: "A"}
	if err := ev.EvalStatement(pkg, nil, action); err != nil {
		t.Fatalf("action A: %v", err)
	}
	err := ev.CheckBlockEnd(pkg, &action, nil)
	assertErrorCode(t, err, ErrNoCapabilities)
}

// Scenario 8: parallel string.
func TestParallelStringParsesToDeny(t *testing.T) {
	ev, reg, pkg := newTestEvaluator()
	system := ast.Statement{
		Kind: ast.SYSTEM,
		Name: "S",
		Parameters: []ast.Parameter{
			{Name: "parallel", Value: ast.StringValue("deny")},
		},
	}
	if err := ev.EvalStatement(pkg, nil, system); err != nil {
		t.Fatalf("system S: %v", err)
	}
	systems := reg.SystemIDs(pkg)
	if got := reg.SystemParallelExecution(systems[0]); got != schema.ParallelDeny {
		t.Fatalf("S.parallel = %v, want ParallelDeny", got)
	}
}

// A top-level SYSTEM_COMPONENT with its own with-clause creates an
// association for any nested children to use, but its own capability still
// lands in the system-wide capability map, not the new association's map.
func TestSystemComponentOwnWithFieldsStaysSystemWide(t *testing.T) {
	ev, reg, pkg := newTestEvaluator()

	owner := ast.Statement{Kind: ast.COMPONENT, Name: "Owner"}
	if err := ev.EvalStatement(pkg, nil, owner); err != nil {
		t.Fatalf("component Owner: %v", err)
	}
	if err := ev.EvalStatement(pkg, []ast.Statement{owner}, ast.Statement{Kind: ast.ENTITY_FIELD, Name: "target"}); err != nil {
		t.Fatalf("field target: %v", err)
	}

	system := ast.Statement{Kind: ast.SYSTEM, Name: "S"}
	if err := ev.EvalStatement(pkg, nil, system); err != nil {
		t.Fatalf("system S: %v", err)
	}

	err := ev.EvalStatement(pkg, []ast.Statement{system}, systemComponent("Owner", schema.CapabilityReadWrite, "target"))
	if err != nil {
		t.Fatalf("readwrite Owner with target: %v", err)
	}

	systems := reg.SystemIDs(pkg)
	owners := reg.ComponentIDs(pkg)
	caps := reg.SystemCapabilities(systems[0])
	if got, ok := caps[owners[0]]; !ok || got != schema.CapabilityReadWrite {
		t.Fatalf("SystemCapabilities(S) = %v, want Owner->ReadWrite", caps)
	}

	assocs := reg.SystemAssocIDs(systems[0])
	if len(assocs) != 1 {
		t.Fatalf("SystemAssocIDs(S) = %v, want 1 association", assocs)
	}
	if assocCaps := reg.SystemAssocCapabilities(systems[0], assocs[0]); len(assocCaps) != 0 {
		t.Fatalf("SystemAssocCapabilities(S, assoc) = %v, want empty", assocCaps)
	}
}

// A block-level SYSTEM_NOTIFY setting back-applies only to the system-wide
// capability map, never to an association's own capability map.
func TestSystemNotifyBackApplyOnlyToSystemWideCapabilities(t *testing.T) {
	ev, reg, pkg := newTestEvaluator()

	owner := ast.Statement{Kind: ast.COMPONENT, Name: "Owner"}
	if err := ev.EvalStatement(pkg, nil, owner); err != nil {
		t.Fatalf("component Owner: %v", err)
	}
	if err := ev.EvalStatement(pkg, []ast.Statement{owner}, ast.Statement{Kind: ast.ENTITY_FIELD, Name: "target"}); err != nil {
		t.Fatalf("field target: %v", err)
	}
	other := ast.Statement{Kind: ast.COMPONENT, Name: "Other"}
	if err := ev.EvalStatement(pkg, nil, other); err != nil {
		t.Fatalf("component Other: %v", err)
	}

	system := ast.Statement{Kind: ast.SYSTEM, Name: "S"}
	if err := ev.EvalStatement(pkg, nil, system); err != nil {
		t.Fatalf("system S: %v", err)
	}
	systemStack := []ast.Statement{system}

	ownerStmt := systemComponent("Owner", schema.CapabilityReadWrite, "target")
	if err := ev.EvalStatement(pkg, systemStack, ownerStmt); err != nil {
		t.Fatalf("readwrite Owner with target: %v", err)
	}
	ownerStack := []ast.Statement{system, ownerStmt}
	if err := ev.EvalStatement(pkg, ownerStack, systemComponent("Other", schema.CapabilityRead)); err != nil {
		t.Fatalf("nested readonly Other: %v", err)
	}

	if err := ev.EvalStatement(pkg, systemStack, ast.Statement{Kind: ast.SYSTEM_NOTIFY, Setting: "always"}); err != nil {
		t.Fatalf("notify always: %v", err)
	}

	systems := reg.SystemIDs(pkg)
	var ownerID, otherID schema.DeclID
	for _, c := range reg.ComponentIDs(pkg) {
		switch reg.DeclarationName(c) {
		case "Owner":
			ownerID = c
		case "Other":
			otherID = c
		}
	}

	notify := reg.SystemNotifySettings(systems[0])
	if got, ok := notify[ownerID]; !ok || got != schema.NotifyAlways {
		t.Fatalf("notify[Owner] = (%v, %v), want (Always, true)", got, ok)
	}
	if _, ok := notify[otherID]; ok {
		t.Fatalf("notify[Other] = present, want absent: back-apply must not reach association capabilities")
	}
}

func assertErrorCode(t *testing.T, err error, want ErrorCode) {
	t.Helper()
	evalErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error = %v (%T), want *Error with code %s", err, err, want)
	}
	if evalErr.Code != want {
		t.Fatalf("error code = %s, want %s", evalErr.Code, want)
	}
}
