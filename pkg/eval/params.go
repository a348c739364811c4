package eval

import (
	"ecsc/pkg/ast"
	"ecsc/pkg/schema"
)

// disallowParams implements the "disallow" parameter validator primitive:
// the statement must carry no parameters at all.
func disallowParams(stmt *ast.Statement) error {
	if len(stmt.Parameters) > 0 {
		return newParametersNotAllowed()
	}
	return nil
}

// allowParams implements the "allow(names)" primitive: every parameter on
// the statement must be one of the listed names.
func allowParams(stmt *ast.Statement, names ...string) error {
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	for _, p := range stmt.Parameters {
		if !allowed[p.Name] {
			return newUnknownParameterName(p.Name)
		}
	}
	return nil
}

// paramBool returns the first parameter named name whose value is boolean.
func paramBool(stmt *ast.Statement, name string) (bool, bool) {
	for _, p := range stmt.Parameters {
		if p.Name == name && p.Value.Kind == ast.ValueBool {
			return p.Value.Bool, true
		}
	}
	return false, false
}

// paramInt returns the first parameter named name whose value is an integer.
func paramInt(stmt *ast.Statement, name string) (int64, bool) {
	for _, p := range stmt.Parameters {
		if p.Name == name && p.Value.Kind == ast.ValueInt {
			return p.Value.Int, true
		}
	}
	return 0, false
}

// paramString returns the first parameter named name whose value is a string.
func paramString(stmt *ast.Statement, name string) (string, bool) {
	for _, p := range stmt.Parameters {
		if p.Name == name && p.Value.Kind == ast.ValueString {
			return p.Value.Str, true
		}
	}
	return "", false
}

// parseParallelParam implements spec.md §4.2's "parallel" parameter rule:
// bool true/false maps to preferred/deny, string must be one of
// auto/preferred/deny, and absence defaults to auto.
func parseParallelParam(stmt *ast.Statement) (schema.ParallelMode, error) {
	if b, ok := paramBool(stmt, "parallel"); ok {
		if b {
			return schema.ParallelPreferred, nil
		}
		return schema.ParallelDeny, nil
	}
	if s, ok := paramString(stmt, "parallel"); ok {
		switch s {
		case "auto":
			return schema.ParallelAuto, nil
		case "preferred":
			return schema.ParallelPreferred, nil
		case "deny":
			return schema.ParallelDeny, nil
		default:
			return schema.ParallelAuto, newInvalidParameterValue("parallel")
		}
	}
	return schema.ParallelAuto, nil
}

// parseLazyParam implements spec.md §4.6's "lazy" parameter rule for
// systems: bool true/false maps to 1/0, an integer is used as-is, and
// absence means not lazy (0).
func parseLazyParam(stmt *ast.Statement) (int32, error) {
	if b, ok := paramBool(stmt, "lazy"); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	if i, ok := paramInt(stmt, "lazy"); ok {
		return int32(i), nil
	}
	return 0, nil
}
