package driver

import (
	"ecsc/pkg/ast"
	"ecsc/pkg/eval"
	"ecsc/pkg/schema"
)

// WalkBody evaluates a package's full statement tree against ev, in
// document order, honoring nesting via the context stack spec.md's
// evaluator expects as an explicit parameter rather than global state.
func WalkBody(ev *eval.Evaluator, pkg schema.PackageID, nodes []Node) error {
	return walkNodes(ev, pkg, nil, nodes)
}

func walkNodes(ev *eval.Evaluator, pkg schema.PackageID, stack []ast.Statement, nodes []Node) error {
	for _, n := range nodes {
		if err := walkNode(ev, pkg, stack, n); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(ev *eval.Evaluator, pkg schema.PackageID, stack []ast.Statement, n Node) error {
	stmt, err := n.toStatement()
	if err != nil {
		return err
	}

	evalErr := ev.EvalStatement(pkg, stack, stmt)

	var blockErr error
	if evalErr == nil && len(n.Children) > 0 {
		childStack := make([]ast.Statement, len(stack)+1)
		copy(childStack, stack)
		childStack[len(stack)] = stmt
		blockErr = walkNodes(ev, pkg, childStack, n.Children)
	}

	prevErr := evalErr
	if prevErr == nil {
		prevErr = blockErr
	}
	return ev.CheckBlockEnd(pkg, &stmt, prevErr)
}
