package eval

import (
	"strings"

	"ecsc/pkg/schema"
)

// resolver implements spec.md §4.3's name resolution over a Registry: bare
// names resolve against the current package, dotted pkg.Name names resolve
// against the current package (if the alias matches its own name) or a
// dependency package whose name matches the alias.
type resolver struct {
	reg schema.Registry
}

func newResolver(reg schema.Registry) *resolver { return &resolver{reg: reg} }

// lookup resolves name against pkg's own declarations, then (for a
// pkg.Name qualified lookup) the current package itself or a dependency,
// restricting matches to the given predicate over DeclKind.
func (r *resolver) lookup(pkg schema.PackageID, name string, pred func(schema.DeclKind) bool) (schema.DeclID, bool) {
	if id, ok := r.lookupBare(pkg, name, pred); ok {
		return id, ok
	}
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return schema.NilDeclID, false
	}
	alias, rest := name[:idx], name[idx+1:]
	if alias == r.reg.PackageName(pkg) {
		return r.lookupBare(pkg, rest, pred)
	}
	for _, dep := range r.reg.PackageDependencies(pkg) {
		if r.reg.PackageName(dep) == alias {
			if id, ok := r.lookupBare(dep, rest, pred); ok {
				return id, ok
			}
		}
	}
	return schema.NilDeclID, false
}

func (r *resolver) lookupBare(pkg schema.PackageID, name string, pred func(schema.DeclKind) bool) (schema.DeclID, bool) {
	for _, id := range r.reg.DeclarationIDs(pkg) {
		kind, ok := r.reg.DeclarationKind(id)
		if !ok || !pred(kind) {
			continue
		}
		if r.reg.DeclarationName(id) == name {
			return id, true
		}
	}
	return schema.NilDeclID, false
}

func isKind(want schema.DeclKind) func(schema.DeclKind) bool {
	return func(k schema.DeclKind) bool { return k == want }
}

func (r *resolver) resolveDeclaration(pkg schema.PackageID, name string) (schema.DeclID, bool) {
	return r.lookup(pkg, name, func(schema.DeclKind) bool { return true })
}

func (r *resolver) resolveComponent(pkg schema.PackageID, name string) (schema.DeclID, bool) {
	return r.lookup(pkg, name, isKind(schema.DeclComponent))
}

func (r *resolver) resolveTransient(pkg schema.PackageID, name string) (schema.DeclID, bool) {
	return r.lookup(pkg, name, isKind(schema.DeclTransient))
}

func (r *resolver) resolveSystem(pkg schema.PackageID, name string) (schema.DeclID, bool) {
	return r.lookup(pkg, name, isKind(schema.DeclSystem))
}

func (r *resolver) resolveAction(pkg schema.PackageID, name string) (schema.DeclID, bool) {
	return r.lookup(pkg, name, isKind(schema.DeclAction))
}

func (r *resolver) resolveEnum(pkg schema.PackageID, name string) (schema.DeclID, bool) {
	return r.lookup(pkg, name, isKind(schema.DeclEnum))
}

func (r *resolver) resolveComponentLike(pkg schema.PackageID, name string) (schema.DeclID, bool) {
	return r.lookup(pkg, name, schema.DeclKind.IsComponentLike)
}

func (r *resolver) resolveSystemLike(pkg schema.PackageID, name string) (schema.DeclID, bool) {
	return r.lookup(pkg, name, schema.DeclKind.IsSystemLike)
}

func (r *resolver) resolveComposite(pkg schema.PackageID, name string) (schema.DeclID, bool) {
	return r.lookup(pkg, name, schema.DeclKind.IsComposite)
}

// fieldByName implements spec.md §4.3's "field-by-name" lookup.
func (r *resolver) fieldByName(composite schema.DeclID, name string) (schema.FieldID, bool) {
	for _, id := range r.reg.FieldIDs(composite) {
		if r.reg.FieldName(composite, id) == name {
			return id, true
		}
	}
	return schema.NilFieldID, false
}

// fieldByFullName implements spec.md §4.3's "field-by-full-name" lookup:
// split on the last '.', resolve the left side as a composite, then the
// right side as a field on it.
func (r *resolver) fieldByFullName(pkg schema.PackageID, fullName string) (schema.FieldType, bool) {
	idx := strings.LastIndex(fullName, ".")
	if idx < 0 {
		return schema.FieldType{}, false
	}
	compositeName, fieldName := fullName[:idx], fullName[idx+1:]
	composite, ok := r.resolveComposite(pkg, compositeName)
	if !ok {
		return schema.FieldType{}, false
	}
	field, ok := r.fieldByName(composite, fieldName)
	if !ok {
		return schema.FieldType{}, false
	}
	return schema.FieldType{
		Kind:  schema.FieldTypeIndex,
		Index: schema.FieldIndex{Composite: composite, Field: field},
	}, true
}
