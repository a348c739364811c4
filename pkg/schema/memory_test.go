package schema

import "testing"

func TestCreatePackageAndDependency(t *testing.T) {
	reg := NewMemoryRegistry()
	core := reg.CreatePackage(true, "core")
	ext := reg.CreatePackage(false, "ext")
	reg.AddDependency(core, ext)

	if got := reg.PackageName(core); got != "core" {
		t.Fatalf("PackageName(core) = %q, want core", got)
	}
	if !reg.PackageIsMain(core) {
		t.Fatalf("PackageIsMain(core) = false, want true")
	}
	deps := reg.PackageDependencies(core)
	if len(deps) != 1 || deps[0] != ext {
		t.Fatalf("PackageDependencies(core) = %v, want [%v]", deps, ext)
	}
}

func TestComponentFieldsAndType(t *testing.T) {
	reg := NewMemoryRegistry()
	pkg := reg.CreatePackage(true, "game")
	position := reg.CreateComponent(pkg, "Position")
	reg.SetComponentType(position, ComponentStream)

	x := reg.AddField(position, FieldType{Kind: FieldTypeBuiltin, Builtin: BuiltinF32}, "x")
	y := reg.AddField(position, FieldType{Kind: FieldTypeBuiltin, Builtin: BuiltinF32}, "y")

	if got := reg.ComponentType(position); got != ComponentStream {
		t.Fatalf("ComponentType = %v, want ComponentStream", got)
	}
	fields := reg.FieldIDs(position)
	if len(fields) != 2 || fields[0] != x || fields[1] != y {
		t.Fatalf("FieldIDs = %v, want [%v %v] in insertion order", fields, x, y)
	}
	if got := reg.FieldName(position, y); got != "y" {
		t.Fatalf("FieldName(y) = %q, want y", got)
	}
}

func TestDeclarationListingIsOrderedAndPackageScoped(t *testing.T) {
	reg := NewMemoryRegistry()
	a := reg.CreatePackage(true, "a")
	b := reg.CreatePackage(false, "b")

	c1 := reg.CreateComponent(a, "Health")
	reg.CreateComponent(b, "Shield")
	c3 := reg.CreateComponent(a, "Mana")

	ids := reg.ComponentIDs(a)
	if len(ids) != 2 || ids[0] != c1 || ids[1] != c3 {
		t.Fatalf("ComponentIDs(a) = %v, want [%v %v]", ids, c1, c3)
	}
}

func TestSystemCapabilitiesAndParentChain(t *testing.T) {
	reg := NewMemoryRegistry()
	pkg := reg.CreatePackage(true, "game")
	health := reg.CreateComponent(pkg, "Health")
	parent := reg.CreateSystem(pkg, "Combat")
	child := reg.CreateSystem(pkg, "Damage")
	reg.AddChildSystem(parent, child)

	reg.SetSystemCapability(parent, health, CapabilityReadWrite)

	got, ok := FindCapabilitiesFor(reg, child, health)
	if !ok || got != CapabilityReadWrite {
		t.Fatalf("FindCapabilitiesFor(child, health) = (%v, %v), want (ReadWrite, true)", got, ok)
	}

	if !HasAnyCapability(reg, parent) {
		t.Fatalf("HasAnyCapability(parent) = false, want true")
	}
	if HasAnyCapability(reg, child) {
		t.Fatalf("HasAnyCapability(child) = true, want false (capability only granted on parent)")
	}
}

func TestSystemAssociationsAndNotifySettings(t *testing.T) {
	reg := NewMemoryRegistry()
	pkg := reg.CreatePackage(true, "game")
	owner := reg.CreateComponent(pkg, "Owner")
	target := reg.AddField(owner, FieldType{Kind: FieldTypeBuiltin, Builtin: BuiltinEntity}, "target")

	sys := reg.CreateSystem(pkg, "Aggro")
	assoc := reg.AddSystemAssoc(sys, owner)
	reg.AddSystemAssocField(sys, assoc, target)

	fields := reg.SystemAssocFields(sys, assoc)
	if len(fields) != 1 || fields[0] != target {
		t.Fatalf("SystemAssocFields = %v, want [%v]", fields, target)
	}

	reg.SetSystemNotifyComponentSetting(sys, NilDeclID, NotifyOnChange)
	if got := reg.SystemNotifySettingsCount(sys); got != 1 {
		t.Fatalf("SystemNotifySettingsCount = %d, want 1", got)
	}
}

func TestSystemGenerates(t *testing.T) {
	reg := NewMemoryRegistry()
	pkg := reg.CreatePackage(true, "game")
	sys := reg.CreateSystem(pkg, "Spawner")
	health := reg.CreateComponent(pkg, "Health")

	gen := reg.AddSystemGenerates(sys)
	reg.SystemGeneratesSetComponent(sys, gen, health, GenerateRequired)

	comps := reg.SystemGeneratesComponents(sys, gen)
	if req, ok := comps[health]; !ok || req != GenerateRequired {
		t.Fatalf("SystemGeneratesComponents[health] = (%v, %v), want (Required, true)", req, ok)
	}
}
