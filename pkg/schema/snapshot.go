package schema

// Snapshot is a JSON-serializable projection of one package's declarations,
// used by the optional sqlite persistence backend to save a loaded
// package's declarations and read them back without re-running the
// evaluator. Nothing rebuilds a Registry from a Snapshot.
type Snapshot struct {
	Package    string               `json:"package"`
	Components []ComponentSnapshot  `json:"components,omitempty"`
	Transients []CompositeSnapshot  `json:"transients,omitempty"`
	Enums      []EnumSnapshot       `json:"enums,omitempty"`
	Systems    []SystemLikeSnapshot `json:"systems,omitempty"`
	Actions    []SystemLikeSnapshot `json:"actions,omitempty"`
}

// ComponentSnapshot is a COMPONENT declaration: its fields plus its stream/
// transient marker.
type ComponentSnapshot struct {
	Name          string          `json:"name"`
	ComponentType string          `json:"component_type"`
	Fields        []FieldSnapshot `json:"fields,omitempty"`
}

// CompositeSnapshot is a composite declaration that carries no extra
// metadata beyond its fields (TRANSIENT, and ACTION's own field list).
type CompositeSnapshot struct {
	Name   string          `json:"name"`
	Fields []FieldSnapshot `json:"fields,omitempty"`
}

// FieldSnapshot is one field on a composite.
type FieldSnapshot struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
	Length int    `json:"length,omitempty"`
}

// EnumSnapshot is an ENUM declaration and its named values.
type EnumSnapshot struct {
	Name   string           `json:"name"`
	Values map[string]int64 `json:"values,omitempty"`
}

// SystemLikeSnapshot is a SYSTEM or ACTION declaration: its capabilities,
// associations, notify settings, and generates constraints.
type SystemLikeSnapshot struct {
	Name         string              `json:"name"`
	Capabilities map[string]string   `json:"capabilities,omitempty"`
	Associations []AssocSnapshot     `json:"associations,omitempty"`
	Notify       map[string]string   `json:"notify,omitempty"`
	Generates    []map[string]string `json:"generates,omitempty"`
}

// AssocSnapshot is one system-like/component-like association.
type AssocSnapshot struct {
	ComponentLike string            `json:"component_like"`
	Fields        []string          `json:"fields"`
	Capabilities  map[string]string `json:"capabilities,omitempty"`
}

// BuildSnapshot projects pkg's declarations out of reg into a Snapshot.
func BuildSnapshot(reg Registry, pkg PackageID) Snapshot {
	snap := Snapshot{Package: reg.PackageName(pkg)}
	for _, id := range reg.ComponentIDs(pkg) {
		snap.Components = append(snap.Components, ComponentSnapshot{
			Name:          reg.DeclarationName(id),
			ComponentType: componentTypeName(reg.ComponentType(id)),
			Fields:        fieldSnapshots(reg, id),
		})
	}
	for _, id := range reg.TransientIDs(pkg) {
		snap.Transients = append(snap.Transients, CompositeSnapshot{
			Name:   reg.DeclarationName(id),
			Fields: fieldSnapshots(reg, id),
		})
	}
	for _, id := range reg.EnumIDs(pkg) {
		values := make(map[string]int64)
		for _, v := range reg.EnumValues(id) {
			values[v.Name] = v.Value
		}
		snap.Enums = append(snap.Enums, EnumSnapshot{Name: reg.DeclarationName(id), Values: values})
	}
	for _, id := range reg.SystemIDs(pkg) {
		snap.Systems = append(snap.Systems, systemLikeSnapshot(reg, id))
	}
	for _, id := range reg.ActionIDs(pkg) {
		snap.Actions = append(snap.Actions, systemLikeSnapshot(reg, id))
	}
	return snap
}

func fieldSnapshots(reg Registry, composite DeclID) []FieldSnapshot {
	var out []FieldSnapshot
	for _, fid := range reg.FieldIDs(composite) {
		ft := reg.FieldType(composite, fid)
		fs := FieldSnapshot{Name: reg.FieldName(composite, fid), Length: ft.Length}
		switch ft.Kind {
		case FieldTypeBuiltin:
			fs.Kind = "builtin"
			fs.Detail = builtinTypeName(ft.Builtin)
		case FieldTypeEnum:
			fs.Kind = "enum"
			fs.Detail = reg.DeclarationName(ft.Enum)
		case FieldTypeIndex:
			fs.Kind = "index"
			fs.Detail = reg.DeclarationName(ft.Index.Composite) + "." + reg.FieldName(ft.Index.Composite, ft.Index.Field)
		}
		out = append(out, fs)
	}
	return out
}

func systemLikeSnapshot(reg Registry, id DeclID) SystemLikeSnapshot {
	snap := SystemLikeSnapshot{Name: reg.DeclarationName(id)}

	caps := make(map[string]string)
	for componentLike, cap := range reg.SystemCapabilities(id) {
		caps[reg.DeclarationName(componentLike)] = capabilityName(cap)
	}
	snap.Capabilities = caps

	for _, assoc := range reg.SystemAssocIDs(id) {
		fields := reg.SystemAssocFields(id, assoc)
		componentLike := reg.SystemAssocComponentID(id, assoc)
		names := make([]string, len(fields))
		for i, fid := range fields {
			names[i] = reg.FieldName(componentLike, fid)
		}
		assocCaps := make(map[string]string)
		for cl, cap := range reg.SystemAssocCapabilities(id, assoc) {
			assocCaps[reg.DeclarationName(cl)] = capabilityName(cap)
		}
		snap.Associations = append(snap.Associations, AssocSnapshot{
			ComponentLike: reg.DeclarationName(componentLike),
			Fields:        names,
			Capabilities:  assocCaps,
		})
	}

	notify := make(map[string]string)
	for componentLike, setting := range reg.SystemNotifySettings(id) {
		if componentLike == NilDeclID {
			continue
		}
		notify[reg.DeclarationName(componentLike)] = notifySettingName(setting)
	}
	snap.Notify = notify

	for _, gen := range reg.SystemGeneratesIDs(id) {
		entry := make(map[string]string)
		for comp, req := range reg.SystemGeneratesComponents(id, gen) {
			entry[reg.DeclarationName(comp)] = generateRequirementName(req)
		}
		snap.Generates = append(snap.Generates, entry)
	}
	return snap
}

func componentTypeName(t ComponentType) string {
	switch t {
	case ComponentStream:
		return "stream"
	case ComponentLazyStream:
		return "lazy_stream"
	case ComponentTransientMarker:
		return "transient"
	default:
		return "none"
	}
}

func builtinTypeName(t BuiltinType) string {
	names := [...]string{"bool", "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64", "string", "entity"}
	if int(t) < 0 || int(t) >= len(names) {
		return "unknown"
	}
	return names[t]
}

func capabilityName(c Capability) string {
	switch c {
	case CapabilityRead:
		return "read"
	case CapabilityWrite:
		return "write"
	case CapabilityReadWrite:
		return "read_write"
	case CapabilityExclude:
		return "exclude"
	default:
		return "unknown"
	}
}

func notifySettingName(s NotifySetting) string {
	switch s {
	case NotifyAlways:
		return "always"
	case NotifyOnInit:
		return "oninit"
	case NotifyOnUpdate:
		return "onupdate"
	case NotifyOnChange:
		return "onchange"
	case NotifyOnRemove:
		return "onremove"
	default:
		return "unknown"
	}
}

func generateRequirementName(r GenerateRequirement) string {
	if r == GenerateRequired {
		return "required"
	}
	return "optional"
}
