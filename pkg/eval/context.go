package eval

import "ecsc/pkg/ast"

// kindSet is an allow-list of parent statement kinds for the context
// matcher below.
type kindSet map[ast.Kind]bool

func kinds(ks ...ast.Kind) kindSet {
	s := make(kindSet, len(ks))
	for _, k := range ks {
		s[k] = true
	}
	return s
}

// matchContext implements spec.md §4.1: given the context stack (outermost
// first, current statement's parent on top) and an allow-list of parent
// kinds, returns the parent statement (nil if the stack is empty and NONE
// is permitted) or an INVALID_CONTEXT error.
func matchContext(stack []ast.Statement, allowed kindSet, allowNone bool) (*ast.Statement, error) {
	if len(stack) == 0 {
		if allowNone {
			return nil, nil
		}
		return nil, newInvalidContext(ast.NONE)
	}
	top := &stack[len(stack)-1]
	if !allowed[top.Kind] {
		return nil, newInvalidContext(top.Kind)
	}
	return top, nil
}
