package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		walkStmts(n.Stmts, v)

	case *Block:
		walkStmts(n.Stmts, v)

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)

	case *IfElseStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		Walk(n.Else, v)

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *LoopStmt:
		Walk(n.Body, v)

	case *AssignStmt:
		Walk(n.Value, v)

	case *Operation:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *PrintStmt, *Value:
		// leaves
	}
}

func walkStmts(stmts []Stmt, v Visitor) {
	for _, s := range stmts {
		Walk(s, v)
	}
}

// Names returns every identifier the program mentions: assignment targets,
// identifier operands and identifiers printed. Each name appears once, in
// order of first appearance.
func Names(node Node) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	Walk(node, func(n Node) bool {
		switch n := n.(type) {
		case *AssignStmt:
			add(n.Name)
		case *Value:
			if n.IsName() {
				add(n.Lit)
			}
		case *PrintStmt:
			if isIdent(n.Text) {
				add(n.Text)
			}
		}
		return true
	})
	return names
}
