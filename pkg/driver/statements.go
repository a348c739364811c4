package driver

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ecsc/pkg/ast"
	"ecsc/pkg/schema"
)

// PackageDoc is the on-disk shape of one package's full statement body: the
// PACKAGE header plus its nested statement tree. A parser upstream of this
// evaluator would produce this shape; here it is read directly off disk as
// YAML, since parsing source text is out of scope.
type PackageDoc struct {
	Name string `yaml:"name"`
	Main bool   `yaml:"main"`
	Body []Node `yaml:"body"`
}

// Node is one statement plus its nested children, the YAML encoding of
// ast.Statement. Only the fields relevant to Kind are expected to be set.
type Node struct {
	Kind       string         `yaml:"kind"`
	Name       string         `yaml:"name"`
	TypeName   string         `yaml:"type_name"`
	Builtin    string         `yaml:"builtin"`
	Length     int            `yaml:"length"`
	IntValue   int64          `yaml:"int_value"`
	Capability string         `yaml:"capability"`
	WithFields []string       `yaml:"with_fields"`
	Required   bool           `yaml:"required"`
	Setting    string         `yaml:"setting"`
	Params     map[string]any `yaml:"params"`
	Children   []Node         `yaml:"children"`
}

var nodeKinds = map[string]ast.Kind{
	"import":                  ast.IMPORT,
	"component":               ast.COMPONENT,
	"transient":               ast.TRANSIENT,
	"system":                  ast.SYSTEM,
	"action":                  ast.ACTION,
	"enum":                    ast.ENUM,
	"enum_value":              ast.ENUM_VALUE,
	"builtin_type_field":      ast.BUILTIN_TYPE_FIELD,
	"user_type_field":         ast.USER_TYPE_FIELD,
	"entity_field":            ast.ENTITY_FIELD,
	"system_component":        ast.SYSTEM_COMPONENT,
	"system_generates":        ast.SYSTEM_GENERATES,
	"system_with":             ast.SYSTEM_WITH,
	"entity_constraint":       ast.ENTITY_CONSTRAINT,
	"system_notify":           ast.SYSTEM_NOTIFY,
	"system_notify_component": ast.SYSTEM_NOTIFY_COMPONENT,
}

// toStatement converts a decoded Node into the ast.Statement the evaluator
// consumes, resolving its string-typed fields (kind, builtin, capability)
// into the schema package's enums.
func (n Node) toStatement() (ast.Statement, error) {
	kind, ok := nodeKinds[n.Kind]
	if !ok {
		return ast.Statement{}, fmt.Errorf("driver: unknown statement kind %q", n.Kind)
	}
	stmt := ast.Statement{
		Kind:       kind,
		Name:       n.Name,
		TypeName:   n.TypeName,
		Length:     n.Length,
		IntValue:   n.IntValue,
		WithFields: n.WithFields,
		Required:   n.Required,
		Setting:    n.Setting,
	}
	if kind == ast.BUILTIN_TYPE_FIELD {
		builtin, ok := schema.ParseBuiltinType(n.Builtin)
		if !ok {
			return ast.Statement{}, fmt.Errorf("driver: unknown builtin type %q", n.Builtin)
		}
		stmt.Builtin = builtin
	}
	if kind == ast.SYSTEM_COMPONENT {
		cap, ok := schema.ParseCapability(n.Capability)
		if !ok {
			return ast.Statement{}, fmt.Errorf("driver: unknown capability %q", n.Capability)
		}
		stmt.Capability = cap
	}
	for name, value := range n.Params {
		param, err := paramValue(name, value)
		if err != nil {
			return ast.Statement{}, err
		}
		stmt.Parameters = append(stmt.Parameters, param)
	}
	return stmt, nil
}

// LoadPackageDoc parses a package's body file (conventionally body.yaml,
// sitting next to its schema.yaml) into a PackageDoc.
func LoadPackageDoc(path string) (*PackageDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: read %s: %w", path, err)
	}
	var doc PackageDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("driver: parse %s: %w", path, err)
	}
	return &doc, nil
}

func paramValue(name string, value any) (ast.Parameter, error) {
	switch v := value.(type) {
	case bool:
		return ast.Parameter{Name: name, Value: ast.BoolValue(v)}, nil
	case int:
		return ast.Parameter{Name: name, Value: ast.IntValue(int64(v))}, nil
	case int64:
		return ast.Parameter{Name: name, Value: ast.IntValue(v)}, nil
	case string:
		return ast.Parameter{Name: name, Value: ast.StringValue(v)}, nil
	default:
		return ast.Parameter{}, fmt.Errorf("driver: parameter %q has unsupported value type %T", name, value)
	}
}
