package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		vars := n.Vars
		if vars == nil {
			vars = []string{}
		}
		return map[string]interface{}{
			"type":  "File",
			"pos":   n.pos.String(),
			"vars":  vars,
			"stmts": stmtsJSON(n.Stmts),
		}

	case *Block:
		return map[string]interface{}{
			"type":   "Block",
			"pos":    n.pos.String(),
			"rbrace": n.Rbrace.String(),
			"stmts":  stmtsJSON(n.Stmts),
		}

	case *IfStmt:
		return map[string]interface{}{
			"type": "IfStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"then": toJSON(n.Then),
		}

	case *IfElseStmt:
		return map[string]interface{}{
			"type": "IfElseStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"then": toJSON(n.Then),
			"else": toJSON(n.Else),
		}

	case *WhileStmt:
		return map[string]interface{}{
			"type": "WhileStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"body": toJSON(n.Body),
		}

	case *LoopStmt:
		return map[string]interface{}{
			"type":  "LoopStmt",
			"pos":   n.pos.String(),
			"count": n.Count,
			"body":  toJSON(n.Body),
		}

	case *AssignStmt:
		return map[string]interface{}{
			"type":  "AssignStmt",
			"pos":   n.pos.String(),
			"name":  n.Name,
			"value": toJSON(n.Value),
		}

	case *PrintStmt:
		return map[string]interface{}{
			"type": "PrintStmt",
			"pos":  n.pos.String(),
			"text": n.Text,
		}

	case *Value:
		return map[string]interface{}{
			"type":  "Value",
			"pos":   n.pos.String(),
			"value": n.Lit,
		}

	case *Operation:
		return map[string]interface{}{
			"type": "Operation",
			"pos":  n.pos.String(),
			"op":   n.Op,
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}
	}

	return map[string]interface{}{"type": "unknown"}
}

func stmtsJSON(stmts []Stmt) []interface{} {
	out := make([]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = toJSON(s)
	}
	return out
}
