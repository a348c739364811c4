package schema

// Registry is the capability-style storage API the evaluator mutates. It is
// deliberately uninvolved in semantic validation — duplicate names,
// conflicting capabilities, and the rest of the invariants in spec.md §3 are
// the evaluator's job. A Registry setter always succeeds against
// well-formed ids. The evaluator runs its checks before its setter calls,
// but a statement rejected by a later check can leave earlier setter calls
// in place (for example an association created before a duplicate
// capability is rejected).
type Registry interface {
	// Packages
	CreatePackage(main bool, name string) PackageID
	AddDependency(pkg, dep PackageID)
	ListPackages() []PackageID
	PackageName(pkg PackageID) string
	PackageDependencies(pkg PackageID) []PackageID
	PackageIsMain(pkg PackageID) bool

	// Declarations
	CreateComponent(pkg PackageID, name string) DeclID
	SetComponentType(comp DeclID, t ComponentType)
	ComponentType(comp DeclID) ComponentType
	CreateTransient(pkg PackageID, name string) DeclID
	CreateSystem(pkg PackageID, name string) DeclID
	CreateAction(pkg PackageID, name string) DeclID
	CreateEnum(pkg PackageID, name string) DeclID
	AddEnumValue(enum DeclID, value int64, name string)
	EnumValues(enum DeclID) []EnumValue

	// Listing and names
	ComponentIDs(pkg PackageID) []DeclID
	TransientIDs(pkg PackageID) []DeclID
	SystemIDs(pkg PackageID) []DeclID
	ActionIDs(pkg PackageID) []DeclID
	EnumIDs(pkg PackageID) []DeclID
	DeclarationIDs(pkg PackageID) []DeclID
	DeclarationName(id DeclID) string
	DeclarationKind(id DeclID) (DeclKind, bool)
	DeclarationPackage(id DeclID) PackageID

	// Composites (component, transient, action)
	FieldIDs(composite DeclID) []FieldID
	FieldName(composite DeclID, field FieldID) string
	AddField(composite DeclID, ftype FieldType, name string) FieldID
	FieldType(composite DeclID, field FieldID) FieldType

	// System-likes (system, action)
	AddChildSystem(parent, child DeclID)
	ParentSystem(system DeclID) (DeclID, bool)
	ChildSystems(parent DeclID) []DeclID
	SetSystemLazyIterationRate(sys DeclID, rate int32)
	SystemLazyIterationRate(sys DeclID) int32
	SetSystemParallelExecution(sys DeclID, mode ParallelMode)
	SystemParallelExecution(sys DeclID) ParallelMode

	SetSystemCapability(sys DeclID, componentLike DeclID, cap Capability)
	SystemCapabilities(sys DeclID) map[DeclID]Capability

	AddSystemAssoc(sys, componentLike DeclID) AssocID
	AddSystemAssocField(sys DeclID, assoc AssocID, field FieldID)
	SystemAssocIDs(sys DeclID) []AssocID
	SystemAssocComponentID(sys DeclID, assoc AssocID) DeclID
	SystemAssocFields(sys DeclID, assoc AssocID) []FieldID
	SystemAssocCapabilities(sys DeclID, assoc AssocID) map[DeclID]Capability
	SetSystemAssocCapability(sys DeclID, assoc AssocID, componentLike DeclID, cap Capability)

	SetSystemNotifyComponentSetting(sys DeclID, componentLike DeclID, setting NotifySetting)
	SystemNotifySettings(sys DeclID) map[DeclID]NotifySetting
	SystemNotifySettingsCount(sys DeclID) int

	AddSystemGenerates(sys DeclID) GenID
	SystemGeneratesIDs(sys DeclID) []GenID
	SystemGeneratesComponents(sys DeclID, gen GenID) map[DeclID]GenerateRequirement
	SystemGeneratesSetComponent(sys DeclID, gen GenID, comp DeclID, req GenerateRequirement)
}

// EnumValue is one (integer value, name) entry owned by an enum declaration.
type EnumValue struct {
	Value int64
	Name  string
}
