package lox

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// StatementsToJSON renders a parsed program as a JSON array of tagged AST
// nodes (`{"node": "Print", ...}`), used by `loxi parse --json` and by the
// go-snaps JSON golden test in ast_printer_test.go.
func StatementsToJSON(statements []Stmt) ([]byte, error) {
	nodes := make([]map[string]interface{}, 0, len(statements))
	for _, s := range statements {
		nodes = append(nodes, stmtToMap(s))
	}
	return json.Marshal(nodes)
}

func stmtToMap(s Stmt) map[string]interface{} {
	switch v := s.(type) {
	case *Block:
		return map[string]interface{}{"node": "Block", "id": v.ID.String(), "statements": stmtsToMaps(v.Statements)}
	case *ClassStmt:
		methods := make([]map[string]interface{}, len(v.Methods))
		for i, m := range v.Methods {
			methods[i] = stmtToMap(m)
		}
		return map[string]interface{}{"node": "Class", "id": v.ID.String(), "name": v.Name.Lexeme, "methods": methods}
	case *Expression:
		return map[string]interface{}{"node": "Expression", "id": v.ID.String(), "expr": exprToMap(v.Expression)}
	case *FunctionStmt:
		params := make([]string, len(v.Params))
		for i, p := range v.Params {
			params[i] = p.Lexeme
		}
		return map[string]interface{}{
			"node": "Function", "id": v.ID.String(), "name": v.Name.Lexeme,
			"params": params, "body": stmtsToMaps(v.Body),
		}
	case *IfStmt:
		m := map[string]interface{}{
			"node": "If", "id": v.ID.String(),
			"condition": exprToMap(v.Condition), "then": stmtToMap(v.ThenBranch),
		}
		if v.ElseBranch != nil {
			m["else"] = stmtToMap(v.ElseBranch)
		}
		return m
	case *Print:
		return map[string]interface{}{"node": "Print", "id": v.ID.String(), "expr": exprToMap(v.Expression)}
	case *ReturnStmt:
		m := map[string]interface{}{"node": "Return", "id": v.ID.String()}
		if v.Value != nil {
			m["value"] = exprToMap(v.Value)
		}
		return m
	case *VarStmt:
		m := map[string]interface{}{"node": "Var", "id": v.ID.String(), "name": v.Name.Lexeme}
		if v.Initializer != nil {
			m["initializer"] = exprToMap(v.Initializer)
		}
		return m
	case *WhileStmt:
		return map[string]interface{}{
			"node": "While", "id": v.ID.String(),
			"condition": exprToMap(v.Condition), "body": stmtToMap(v.Body),
		}
	default:
		return map[string]interface{}{"node": "Unknown"}
	}
}

func stmtsToMaps(statements []Stmt) []map[string]interface{} {
	out := make([]map[string]interface{}, len(statements))
	for i, s := range statements {
		out[i] = stmtToMap(s)
	}
	return out
}

func exprToMap(e Expr) map[string]interface{} {
	switch v := e.(type) {
	case *Assign:
		return map[string]interface{}{"node": "Assign", "id": v.ID.String(), "name": v.Name.Lexeme, "value": exprToMap(v.Value)}
	case *Binary:
		return map[string]interface{}{
			"node": "Binary", "id": v.ID.String(), "operator": v.Operator.Lexeme,
			"left": exprToMap(v.Left), "right": exprToMap(v.Right),
		}
	case *Call:
		args := make([]map[string]interface{}, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = exprToMap(a)
		}
		return map[string]interface{}{"node": "Call", "id": v.ID.String(), "callee": exprToMap(v.Callee), "arguments": args}
	case *Get:
		return map[string]interface{}{"node": "Get", "id": v.ID.String(), "name": v.Name.Lexeme, "object": exprToMap(v.Object)}
	case *Grouping:
		return map[string]interface{}{"node": "Grouping", "id": v.ID.String(), "expr": exprToMap(v.Expression)}
	case *Literal:
		return map[string]interface{}{"node": "Literal", "id": v.ID.String(), "value": v.Value}
	case *Logical:
		return map[string]interface{}{
			"node": "Logical", "id": v.ID.String(), "operator": v.Operator.Lexeme,
			"left": exprToMap(v.Left), "right": exprToMap(v.Right),
		}
	case *Set:
		return map[string]interface{}{
			"node": "Set", "id": v.ID.String(), "name": v.Name.Lexeme,
			"object": exprToMap(v.Object), "value": exprToMap(v.Value),
		}
	case *Unary:
		return map[string]interface{}{"node": "Unary", "id": v.ID.String(), "operator": v.Operator.Lexeme, "right": exprToMap(v.Right)}
	case *VarExpr:
		return map[string]interface{}{"node": "Variable", "id": v.ID.String(), "name": v.Name.Lexeme}
	default:
		return map[string]interface{}{"node": "Unknown"}
	}
}

// RedactStringLiterals blanks every Literal node's string "value" field in
// a JSON AST dump, so golden snapshots never pin down whatever string
// content a fixture script happens to declare.
func RedactStringLiterals(docJSON []byte) ([]byte, error) {
	return redactNode(docJSON, gjson.ParseBytes(docJSON), "")
}

func redactNode(doc []byte, value gjson.Result, path string) ([]byte, error) {
	var err error

	switch {
	case value.IsArray(), value.IsObject():
		if value.IsObject() && value.Get("node").String() == "Literal" && value.Get("value").Type == gjson.String {
			return sjson.SetBytes(doc, joinPath(path, "value"), "[redacted]")
		}

		value.ForEach(func(key, v gjson.Result) bool {
			doc, err = redactNode(doc, v, joinPath(path, key.String()))
			return err == nil
		})
	}

	return doc, err
}

func joinPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}
