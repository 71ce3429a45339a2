package syntax

import (
	"testing"
)

func parseSrc(t *testing.T, src string) []Stmt {
	t.Helper()

	toks, err := NewScannerFromSource(src, nil).ScanAll()
	if err != nil {
		t.Fatalf("unexpected scan error: %s", err)
	}

	stmts, err := NewParser(nil, toks).Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}

	return stmts
}

func parseFails(t *testing.T, src string) {
	t.Helper()

	toks, err := NewScannerFromSource(src, nil).ScanAll()
	if err != nil {
		t.Fatalf("unexpected scan error: %s", err)
	}

	if _, err := NewParser(nil, toks).Parse(); err == nil {
		t.Errorf("expected a parse error for `%s`", src)
	}
}

func TestParseExplicitVarDecl(t *testing.T) {
	stmts := parseSrc(t, "let i32 x = 5;")

	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}

	vd, ok := stmts[0].(*VarDecl)
	if !ok {
		t.Fatalf("expected a variable declaration, got %T", stmts[0])
	}

	if vd.TypeName != "i32" || vd.Name != "x" {
		t.Errorf("expected i32 x, got %s %s", vd.TypeName, vd.Name)
	}

	lit, ok := vd.Value.(*IntLit)
	if !ok || lit.Value != 5 {
		t.Errorf("expected integer literal 5, got %v", vd.Value)
	}

	if _, ok := stmts[1].(*NoOp); !ok {
		t.Errorf("expected a trailing no-op, got %T", stmts[1])
	}
}

func TestParseInferredVarDecl(t *testing.T) {
	stmts := parseSrc(t, "let y = 3.5")

	vd := stmts[0].(*VarDecl)
	if vd.TypeName != "" {
		t.Errorf("expected an inferred declaration, got type `%s`", vd.TypeName)
	}

	if _, ok := vd.Value.(*FloatLit); !ok {
		t.Errorf("expected a float literal initializer, got %T", vd.Value)
	}
}

func TestParseImport(t *testing.T) {
	stmts := parseSrc(t, "use console")

	imp, ok := stmts[0].(*Import)
	if !ok || imp.Module != "console" {
		t.Errorf("expected an import of `console`, got %v", stmts[0])
	}
}

func TestParseFuncDef(t *testing.T) {
	stmts := parseSrc(t, "i32 fn add(i32 : a, i32 : b) { return a; }")

	fd, ok := stmts[0].(*FuncDef)
	if !ok {
		t.Fatalf("expected a function definition, got %T", stmts[0])
	}

	if fd.RetTypeName != "i32" || fd.Name != "add" {
		t.Errorf("expected i32 add, got %s %s", fd.RetTypeName, fd.Name)
	}

	if len(fd.Params) != 2 || fd.Params[0].Name != "a" || fd.Params[1].TypeName != "i32" {
		t.Errorf("unexpected parameter list: %v", fd.Params)
	}

	if _, ok := fd.Body[0].(*Return); !ok {
		t.Errorf("expected a return statement in the body, got %T", fd.Body[0])
	}
}

func TestParseFuncKeywordAlias(t *testing.T) {
	// `fn` and `func` are interchangeable; the return type is optional
	stmts := parseSrc(t, "func main() { }")

	fd := stmts[0].(*FuncDef)
	if fd.RetTypeName != "" || fd.Name != "main" || len(fd.Params) != 0 {
		t.Errorf("unexpected function definition: %v", fd)
	}
}

func TestParseCond(t *testing.T) {
	stmts := parseSrc(t, `
		fn f(i32 : a, i32 : b) {
			if (a < b) {
				return 1;
			} elif a > b {
				return 2;
			} else {
				return 3;
			}
		}
	`)

	fd := stmts[0].(*FuncDef)
	cond, ok := fd.Body[0].(*Cond)
	if !ok {
		t.Fatalf("expected a conditional, got %T", fd.Body[0])
	}

	if _, ok := cond.Condition.(*Compare); !ok {
		t.Errorf("expected a comparison condition, got %T", cond.Condition)
	}

	if len(cond.ElifBranches) != 1 {
		t.Errorf("expected 1 elif branch, got %d", len(cond.ElifBranches))
	}

	if cond.ElseBody == nil {
		t.Error("expected an else body")
	}
}

func TestParseCondWithoutElse(t *testing.T) {
	stmts := parseSrc(t, "fn f(bool : b) { if b { return 1; } }")

	cond := stmts[0].(*FuncDef).Body[0].(*Cond)
	if cond.ElseBody != nil {
		t.Error("expected no else body")
	}
}

func TestParseBuiltinCall(t *testing.T) {
	stmts := parseSrc(t, `console.print("total:", x, 5)`)

	bc, ok := stmts[0].(*BuiltinCall)
	if !ok {
		t.Fatalf("expected a builtin call, got %T", stmts[0])
	}

	if bc.Object != "console" || bc.Method != "print" {
		t.Errorf("expected console.print, got %s.%s", bc.Object, bc.Method)
	}

	if len(bc.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(bc.Args))
	}

	if _, ok := bc.Args[0].(*StringLit); !ok {
		t.Errorf("expected a string literal argument, got %T", bc.Args[0])
	}

	if ref, ok := bc.Args[1].(*Ref); !ok || ref.Name != "x" {
		t.Errorf("expected a reference to `x`, got %v", bc.Args[1])
	}
}

func TestParseBuiltinCallRejectsNestedCall(t *testing.T) {
	parseFails(t, "console.print(f(1))")
}

func TestParseComparisonValue(t *testing.T) {
	stmts := parseSrc(t, "let b = x < 10")

	cmp, ok := stmts[0].(*VarDecl).Value.(*Compare)
	if !ok {
		t.Fatalf("expected a comparison initializer")
	}

	if cmp.Op != LT {
		t.Errorf("expected `<`, got %s", tokenKindNames[cmp.Op])
	}
}

func TestParseNestedCallArgs(t *testing.T) {
	// function call arguments are full values, including nested calls
	stmts := parseSrc(t, "let r = add(1, add(2, 3))")

	call := stmts[0].(*VarDecl).Value.(*Call)
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Args))
	}

	inner, ok := call.Args[1].(*Call)
	if !ok || inner.Name != "add" || len(inner.Args) != 2 {
		t.Errorf("expected a nested call with 2 arguments, got %v", call.Args[1])
	}
}

func TestParseReturnCall(t *testing.T) {
	stmts := parseSrc(t, "fn f() { return g(1) }")

	ret := stmts[0].(*FuncDef).Body[0].(*Return)
	if _, ok := ret.Value.(*Call); !ok {
		t.Errorf("expected a call in return position, got %T", ret.Value)
	}
}

func TestParseBareReference(t *testing.T) {
	stmts := parseSrc(t, "x")

	es, ok := stmts[0].(*ExprStmt)
	if !ok {
		t.Fatalf("expected an expression statement, got %T", stmts[0])
	}

	if ref, ok := es.E.(*Ref); !ok || ref.Name != "x" {
		t.Errorf("expected a reference to `x`, got %v", es.E)
	}
}

func TestParseErrors(t *testing.T) {
	parseFails(t, "let = 5")
	parseFails(t, "let i32 = 5")
	parseFails(t, "use")
	parseFails(t, "fn (")
	parseFails(t, "fn f() {")
	parseFails(t, "fn f(i32 a) { }")
	parseFails(t, "let void x = 5")
	parseFails(t, "return")
}
