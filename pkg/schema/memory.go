package schema

// memoryRegistry is the in-memory, append-only Registry implementation.
// Nothing is ever removed from it within a run, matching spec.md §3's
// "monotonic registry" lifecycle.
type memoryRegistry struct {
	packages     map[PackageID]*packageRecord
	packageOrder []PackageID
	decls        map[DeclID]*declRecord
	declOrder    []DeclID
}

type packageRecord struct {
	id   PackageID
	name string
	main bool
	deps []PackageID
}

type declRecord struct {
	id   DeclID
	pkg  PackageID
	kind DeclKind
	name string

	// COMPONENT
	componentType ComponentType

	// composite (component, transient, action)
	fieldOrder []FieldID
	fields     map[FieldID]*fieldRecord

	// ENUM
	enumValues []EnumValue

	// system-like (system, action)
	parent       DeclID
	hasParent    bool
	children     []DeclID
	lazyRate     int32
	parallel     ParallelMode
	capabilities map[DeclID]Capability

	assocOrder []AssocID
	assocs     map[AssocID]*assocRecord

	notify map[DeclID]NotifySetting

	generatesOrder []GenID
	generates      map[GenID]*genRecord
}

type fieldRecord struct {
	id    FieldID
	name  string
	ftype FieldType
}

type assocRecord struct {
	id            AssocID
	componentLike DeclID
	fieldOrder    []FieldID
	capabilities  map[DeclID]Capability
}

type genRecord struct {
	id         GenID
	components map[DeclID]GenerateRequirement
}

// NewMemoryRegistry constructs an empty, in-memory Registry.
func NewMemoryRegistry() Registry {
	return &memoryRegistry{
		packages: make(map[PackageID]*packageRecord),
		decls:    make(map[DeclID]*declRecord),
	}
}

func (r *memoryRegistry) CreatePackage(main bool, name string) PackageID {
	id := newPackageID()
	r.packages[id] = &packageRecord{id: id, name: name, main: main}
	r.packageOrder = append(r.packageOrder, id)
	return id
}

func (r *memoryRegistry) AddDependency(pkg, dep PackageID) {
	p, ok := r.packages[pkg]
	if !ok {
		return
	}
	p.deps = append(p.deps, dep)
}

func (r *memoryRegistry) ListPackages() []PackageID {
	out := make([]PackageID, len(r.packageOrder))
	copy(out, r.packageOrder)
	return out
}

func (r *memoryRegistry) PackageName(pkg PackageID) string {
	if p, ok := r.packages[pkg]; ok {
		return p.name
	}
	return ""
}

func (r *memoryRegistry) PackageDependencies(pkg PackageID) []PackageID {
	p, ok := r.packages[pkg]
	if !ok {
		return nil
	}
	out := make([]PackageID, len(p.deps))
	copy(out, p.deps)
	return out
}

func (r *memoryRegistry) PackageIsMain(pkg PackageID) bool {
	p, ok := r.packages[pkg]
	return ok && p.main
}

func (r *memoryRegistry) createDecl(pkg PackageID, kind DeclKind, name string) DeclID {
	id := newDeclID()
	r.decls[id] = &declRecord{
		id:     id,
		pkg:    pkg,
		kind:   kind,
		name:   name,
		fields: make(map[FieldID]*fieldRecord),
	}
	r.declOrder = append(r.declOrder, id)
	return id
}

func (r *memoryRegistry) CreateComponent(pkg PackageID, name string) DeclID {
	return r.createDecl(pkg, DeclComponent, name)
}

func (r *memoryRegistry) SetComponentType(comp DeclID, t ComponentType) {
	if d, ok := r.decls[comp]; ok {
		d.componentType = t
	}
}

func (r *memoryRegistry) ComponentType(comp DeclID) ComponentType {
	if d, ok := r.decls[comp]; ok {
		return d.componentType
	}
	return ComponentNone
}

func (r *memoryRegistry) CreateTransient(pkg PackageID, name string) DeclID {
	return r.createDecl(pkg, DeclTransient, name)
}

func (r *memoryRegistry) CreateSystem(pkg PackageID, name string) DeclID {
	id := r.createDecl(pkg, DeclSystem, name)
	r.decls[id].capabilities = make(map[DeclID]Capability)
	r.decls[id].notify = make(map[DeclID]NotifySetting)
	return id
}

func (r *memoryRegistry) CreateAction(pkg PackageID, name string) DeclID {
	id := r.createDecl(pkg, DeclAction, name)
	r.decls[id].capabilities = make(map[DeclID]Capability)
	r.decls[id].notify = make(map[DeclID]NotifySetting)
	return id
}

func (r *memoryRegistry) CreateEnum(pkg PackageID, name string) DeclID {
	return r.createDecl(pkg, DeclEnum, name)
}

func (r *memoryRegistry) AddEnumValue(enum DeclID, value int64, name string) {
	d, ok := r.decls[enum]
	if !ok {
		return
	}
	d.enumValues = append(d.enumValues, EnumValue{Value: value, Name: name})
}

func (r *memoryRegistry) EnumValues(enum DeclID) []EnumValue {
	d, ok := r.decls[enum]
	if !ok {
		return nil
	}
	out := make([]EnumValue, len(d.enumValues))
	copy(out, d.enumValues)
	return out
}

func (r *memoryRegistry) idsOfKind(pkg PackageID, kind DeclKind) []DeclID {
	var out []DeclID
	for _, id := range r.orderedDeclIDs() {
		d := r.decls[id]
		if d.pkg == pkg && d.kind == kind {
			out = append(out, id)
		}
	}
	return out
}

// orderedDeclIDs is used only to keep listings deterministic; creation order
// is tracked implicitly by reusing the map's insertion via a side slice.
func (r *memoryRegistry) orderedDeclIDs() []DeclID {
	if r.declOrder == nil {
		return nil
	}
	return r.declOrder
}

func (r *memoryRegistry) ComponentIDs(pkg PackageID) []DeclID { return r.idsOfKind(pkg, DeclComponent) }
func (r *memoryRegistry) TransientIDs(pkg PackageID) []DeclID { return r.idsOfKind(pkg, DeclTransient) }
func (r *memoryRegistry) SystemIDs(pkg PackageID) []DeclID    { return r.idsOfKind(pkg, DeclSystem) }
func (r *memoryRegistry) ActionIDs(pkg PackageID) []DeclID    { return r.idsOfKind(pkg, DeclAction) }
func (r *memoryRegistry) EnumIDs(pkg PackageID) []DeclID      { return r.idsOfKind(pkg, DeclEnum) }

func (r *memoryRegistry) DeclarationIDs(pkg PackageID) []DeclID {
	var out []DeclID
	for _, id := range r.orderedDeclIDs() {
		if r.decls[id].pkg == pkg {
			out = append(out, id)
		}
	}
	return out
}

func (r *memoryRegistry) DeclarationName(id DeclID) string {
	if d, ok := r.decls[id]; ok {
		return d.name
	}
	return ""
}

func (r *memoryRegistry) DeclarationKind(id DeclID) (DeclKind, bool) {
	d, ok := r.decls[id]
	if !ok {
		return 0, false
	}
	return d.kind, true
}

func (r *memoryRegistry) DeclarationPackage(id DeclID) PackageID {
	if d, ok := r.decls[id]; ok {
		return d.pkg
	}
	return NilPackageID
}

func (r *memoryRegistry) FieldIDs(composite DeclID) []FieldID {
	d, ok := r.decls[composite]
	if !ok {
		return nil
	}
	out := make([]FieldID, len(d.fieldOrder))
	copy(out, d.fieldOrder)
	return out
}

func (r *memoryRegistry) FieldName(composite DeclID, field FieldID) string {
	d, ok := r.decls[composite]
	if !ok {
		return ""
	}
	if f, ok := d.fields[field]; ok {
		return f.name
	}
	return ""
}

func (r *memoryRegistry) AddField(composite DeclID, ftype FieldType, name string) FieldID {
	d, ok := r.decls[composite]
	if !ok {
		return NilFieldID
	}
	id := newFieldID()
	d.fields[id] = &fieldRecord{id: id, name: name, ftype: ftype}
	d.fieldOrder = append(d.fieldOrder, id)
	return id
}

func (r *memoryRegistry) FieldType(composite DeclID, field FieldID) FieldType {
	d, ok := r.decls[composite]
	if !ok {
		return FieldType{}
	}
	if f, ok := d.fields[field]; ok {
		return f.ftype
	}
	return FieldType{}
}

func (r *memoryRegistry) AddChildSystem(parent, child DeclID) {
	p, ok := r.decls[parent]
	if !ok {
		return
	}
	p.children = append(p.children, child)
	if c, ok := r.decls[child]; ok {
		c.parent = parent
		c.hasParent = true
	}
}

func (r *memoryRegistry) ParentSystem(system DeclID) (DeclID, bool) {
	d, ok := r.decls[system]
	if !ok || !d.hasParent {
		return NilDeclID, false
	}
	return d.parent, true
}

func (r *memoryRegistry) ChildSystems(parent DeclID) []DeclID {
	d, ok := r.decls[parent]
	if !ok {
		return nil
	}
	out := make([]DeclID, len(d.children))
	copy(out, d.children)
	return out
}

func (r *memoryRegistry) SetSystemLazyIterationRate(sys DeclID, rate int32) {
	if d, ok := r.decls[sys]; ok {
		d.lazyRate = rate
	}
}

func (r *memoryRegistry) SystemLazyIterationRate(sys DeclID) int32 {
	if d, ok := r.decls[sys]; ok {
		return d.lazyRate
	}
	return 0
}

func (r *memoryRegistry) SetSystemParallelExecution(sys DeclID, mode ParallelMode) {
	if d, ok := r.decls[sys]; ok {
		d.parallel = mode
	}
}

func (r *memoryRegistry) SystemParallelExecution(sys DeclID) ParallelMode {
	if d, ok := r.decls[sys]; ok {
		return d.parallel
	}
	return ParallelAuto
}

func (r *memoryRegistry) SetSystemCapability(sys DeclID, componentLike DeclID, cap Capability) {
	d, ok := r.decls[sys]
	if !ok {
		return
	}
	if d.capabilities == nil {
		d.capabilities = make(map[DeclID]Capability)
	}
	d.capabilities[componentLike] = cap
}

func (r *memoryRegistry) SystemCapabilities(sys DeclID) map[DeclID]Capability {
	d, ok := r.decls[sys]
	if !ok {
		return nil
	}
	out := make(map[DeclID]Capability, len(d.capabilities))
	for k, v := range d.capabilities {
		out[k] = v
	}
	return out
}

func (r *memoryRegistry) AddSystemAssoc(sys, componentLike DeclID) AssocID {
	d, ok := r.decls[sys]
	if !ok {
		return NilAssocID
	}
	id := newAssocID()
	if d.assocs == nil {
		d.assocs = make(map[AssocID]*assocRecord)
	}
	d.assocs[id] = &assocRecord{id: id, componentLike: componentLike, capabilities: make(map[DeclID]Capability)}
	d.assocOrder = append(d.assocOrder, id)
	return id
}

func (r *memoryRegistry) AddSystemAssocField(sys DeclID, assoc AssocID, field FieldID) {
	d, ok := r.decls[sys]
	if !ok {
		return
	}
	a, ok := d.assocs[assoc]
	if !ok {
		return
	}
	a.fieldOrder = append(a.fieldOrder, field)
}

func (r *memoryRegistry) SystemAssocIDs(sys DeclID) []AssocID {
	d, ok := r.decls[sys]
	if !ok {
		return nil
	}
	out := make([]AssocID, len(d.assocOrder))
	copy(out, d.assocOrder)
	return out
}

func (r *memoryRegistry) SystemAssocComponentID(sys DeclID, assoc AssocID) DeclID {
	d, ok := r.decls[sys]
	if !ok {
		return NilDeclID
	}
	if a, ok := d.assocs[assoc]; ok {
		return a.componentLike
	}
	return NilDeclID
}

func (r *memoryRegistry) SystemAssocFields(sys DeclID, assoc AssocID) []FieldID {
	d, ok := r.decls[sys]
	if !ok {
		return nil
	}
	a, ok := d.assocs[assoc]
	if !ok {
		return nil
	}
	out := make([]FieldID, len(a.fieldOrder))
	copy(out, a.fieldOrder)
	return out
}

func (r *memoryRegistry) SystemAssocCapabilities(sys DeclID, assoc AssocID) map[DeclID]Capability {
	d, ok := r.decls[sys]
	if !ok {
		return nil
	}
	a, ok := d.assocs[assoc]
	if !ok {
		return nil
	}
	out := make(map[DeclID]Capability, len(a.capabilities))
	for k, v := range a.capabilities {
		out[k] = v
	}
	return out
}

func (r *memoryRegistry) SetSystemAssocCapability(sys DeclID, assoc AssocID, componentLike DeclID, cap Capability) {
	d, ok := r.decls[sys]
	if !ok {
		return
	}
	a, ok := d.assocs[assoc]
	if !ok {
		return
	}
	if a.capabilities == nil {
		a.capabilities = make(map[DeclID]Capability)
	}
	a.capabilities[componentLike] = cap
}

func (r *memoryRegistry) SetSystemNotifyComponentSetting(sys DeclID, componentLike DeclID, setting NotifySetting) {
	d, ok := r.decls[sys]
	if !ok {
		return
	}
	if d.notify == nil {
		d.notify = make(map[DeclID]NotifySetting)
	}
	d.notify[componentLike] = setting
}

func (r *memoryRegistry) SystemNotifySettings(sys DeclID) map[DeclID]NotifySetting {
	d, ok := r.decls[sys]
	if !ok {
		return nil
	}
	out := make(map[DeclID]NotifySetting, len(d.notify))
	for k, v := range d.notify {
		out[k] = v
	}
	return out
}

func (r *memoryRegistry) SystemNotifySettingsCount(sys DeclID) int {
	d, ok := r.decls[sys]
	if !ok {
		return 0
	}
	return len(d.notify)
}

func (r *memoryRegistry) AddSystemGenerates(sys DeclID) GenID {
	d, ok := r.decls[sys]
	if !ok {
		return NilGenID
	}
	id := newGenID()
	if d.generates == nil {
		d.generates = make(map[GenID]*genRecord)
	}
	d.generates[id] = &genRecord{id: id, components: make(map[DeclID]GenerateRequirement)}
	d.generatesOrder = append(d.generatesOrder, id)
	return id
}

func (r *memoryRegistry) SystemGeneratesIDs(sys DeclID) []GenID {
	d, ok := r.decls[sys]
	if !ok {
		return nil
	}
	out := make([]GenID, len(d.generatesOrder))
	copy(out, d.generatesOrder)
	return out
}

func (r *memoryRegistry) SystemGeneratesComponents(sys DeclID, gen GenID) map[DeclID]GenerateRequirement {
	d, ok := r.decls[sys]
	if !ok {
		return nil
	}
	g, ok := d.generates[gen]
	if !ok {
		return nil
	}
	out := make(map[DeclID]GenerateRequirement, len(g.components))
	for k, v := range g.components {
		out[k] = v
	}
	return out
}

func (r *memoryRegistry) SystemGeneratesSetComponent(sys DeclID, gen GenID, comp DeclID, req GenerateRequirement) {
	d, ok := r.decls[sys]
	if !ok {
		return
	}
	g, ok := d.generates[gen]
	if !ok {
		return
	}
	if g.components == nil {
		g.components = make(map[DeclID]GenerateRequirement)
	}
	g.components[comp] = req
}
