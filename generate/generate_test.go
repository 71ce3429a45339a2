package generate

import (
	"strings"
	"testing"

	"github.com/LiterallyKirby/Magolor/logging"
	"github.com/LiterallyKirby/Magolor/syntax"

	"github.com/llir/llvm/ir"
)

func lowerSrc(t *testing.T, src string) *ir.Module {
	t.Helper()

	mod, err := lowerSrcErr(src)
	if err != nil {
		t.Fatalf("unexpected lowering error: %s", err)
	}

	return mod
}

func lowerSrcErr(src string) (*ir.Module, error) {
	toks, err := syntax.NewScannerFromSource(src, nil).ScanAll()
	if err != nil {
		return nil, err
	}

	stmts, err := syntax.NewParser(nil, toks).Parse()
	if err != nil {
		return nil, err
	}

	return NewGenerator(nil).Generate(stmts)
}

func findFunc(t *testing.T, mod *ir.Module, name string) *ir.Func {
	t.Helper()

	for _, f := range mod.Funcs {
		if f.Name() == name {
			return f
		}
	}

	t.Fatalf("function `%s` not found in module", name)
	return nil
}

func lowerFails(t *testing.T, src string, kind int) {
	t.Helper()

	_, err := lowerSrcErr(src)
	if err == nil {
		t.Fatalf("expected a lowering error for `%s`", src)
	}

	cm, ok := err.(*logging.CompileMessage)
	if !ok {
		t.Fatalf("expected a compile message, got %T", err)
	}

	if cm.Kind != kind {
		t.Errorf("expected message kind %d, got %d (%s)", kind, cm.Kind, cm.Message)
	}
}

func TestMutualRecursion(t *testing.T) {
	// both signatures are registered before either body is lowered
	lowerSrc(t, `
		fn even(i32 : n) {
			if n == 0 { return 1; }
			return odd(n)
		}

		fn odd(i32 : n) {
			if n == 0 { return 0; }
			return even(n)
		}
	`)
}

func TestDefaultReturn(t *testing.T) {
	mod := lowerSrc(t, "fn f() { }")

	text := mod.String()
	if !strings.Contains(text, "ret i32 0") {
		t.Errorf("expected a default i32 return, got:\n%s", text)
	}
}

func TestDefaultReturnPerType(t *testing.T) {
	mod := lowerSrc(t, `
		i64 fn a() { }
		bool fn b() { }
		string fn c() { }
		void fn d() { }
	`)

	text := mod.String()
	if !strings.Contains(text, "ret i64 0") {
		t.Error("expected a default i64 return")
	}
	if !strings.Contains(text, "ret i1 false") {
		t.Error("expected a default bool return")
	}

	// string-returning functions fall back to the empty string, and `void`
	// defaults to the 32-bit integer type
	if !strings.Contains(text, "ret i8*") {
		t.Error("expected a default string return")
	}
	if !strings.Contains(text, "ret i32 0") {
		t.Error("expected a default i32 return for the void function")
	}
}

func TestCondMergeReachability(t *testing.T) {
	mod := lowerSrc(t, `
		fn f(i32 : a, i32 : b) {
			if a < b {
				let x = 1;
			} elif a > b {
				let y = 2;
			} else {
				let z = 3;
			}
			return 0
		}
	`)

	f := findFunc(t, mod, "f")

	// entry, merge, then body/next pairs for the two tests
	if len(f.Blocks) != 6 {
		t.Fatalf("expected 6 blocks, got %d", len(f.Blocks))
	}

	merge := f.Blocks[1]
	branchesToMerge := 0
	for _, b := range f.Blocks {
		if br, ok := b.Term.(*ir.TermBr); ok && br.Target == merge {
			branchesToMerge++
		}
	}

	// then body, elif body, and else body all end at the same merge point
	if branchesToMerge != 3 {
		t.Errorf("expected 3 branches to the merge block, got %d", branchesToMerge)
	}

	if merge.Term == nil {
		t.Error("expected the merge block to be terminated by the trailing return")
	}
}

func TestCallArgOrder(t *testing.T) {
	mod := lowerSrc(t, `
		fn add(i32 : a, i32 : b) { return a; }
		fn main() { let i32 r = add(1, 2); }
	`)

	if !strings.Contains(mod.String(), "call i32 @add(i32 1, i32 2)") {
		t.Errorf("expected a two argument call in source order, got:\n%s", mod.String())
	}
}

func TestCallCoercesArgs(t *testing.T) {
	mod := lowerSrc(t, `
		fn take(i64 : n) { return 0; }
		fn main() { let r = take(7); }
	`)

	// the 32-bit literal widens to the declared parameter type
	if !strings.Contains(mod.String(), "sext i32 7 to i64") {
		t.Errorf("expected the argument to widen to i64, got:\n%s", mod.String())
	}
}

func TestCallArityMismatch(t *testing.T) {
	lowerFails(t, `
		fn add(i32 : a, i32 : b) { return a; }
		fn main() { let r = add(1); }
	`, logging.LMKUsage)
}

func TestUnknownVariable(t *testing.T) {
	lowerFails(t, "fn f() { return missing }", logging.LMKName)
}

func TestUnknownFunction(t *testing.T) {
	lowerFails(t, "fn f() { return missing(1) }", logging.LMKName)
}

func TestMultipleDefinitions(t *testing.T) {
	lowerFails(t, "fn f() { } fn f() { }", logging.LMKDef)
}

func TestTopLevelStatementRejected(t *testing.T) {
	lowerFails(t, "let x = 5", logging.LMKUsage)
}

func TestStringComparisonRejected(t *testing.T) {
	lowerFails(t, `fn f(string : s) { let b = s < s; }`, logging.LMKTyping)
}

func TestBoolWidening(t *testing.T) {
	// a comparison consumed as an integer value widens explicitly
	mod := lowerSrc(t, "fn f() { let i32 x = 1 < 2; return x; }")

	if !strings.Contains(mod.String(), "zext i1") {
		t.Errorf("expected an explicit zext of the comparison result, got:\n%s", mod.String())
	}
}

func TestComparisonAsBranchCondition(t *testing.T) {
	// a comparison used as a conditional's test is not widened
	mod := lowerSrc(t, "fn f(i32 : a) { if a < 3 { return 1; } return 0 }")

	text := mod.String()
	if !strings.Contains(text, "icmp slt") {
		t.Error("expected a signed comparison")
	}
	if !strings.Contains(text, "br i1") {
		t.Error("expected the truth value to drive the branch directly")
	}
}

func TestPrintLowering(t *testing.T) {
	mod := lowerSrc(t, `
		use console
		fn main() {
			console.print("hi", 5, true)
		}
	`)

	text := mod.String()
	if !strings.Contains(text, "@puts") {
		t.Error("expected calls to the print primitive")
	}
	if !strings.Contains(text, "@sprintf") {
		t.Error("expected numeric arguments to be formatted via sprintf")
	}
	if !strings.Contains(text, "select i1") {
		t.Error("expected boolean arguments to select branchlessly")
	}
}

func TestStringLiteralInterning(t *testing.T) {
	mod := lowerSrc(t, `
		fn main() {
			console.print("hi")
			console.print("hi")
		}
	`)

	if n := strings.Count(mod.String(), `c"hi\00"`); n != 1 {
		t.Errorf("expected one interned copy of the literal, got %d", n)
	}
}

func TestUnknownBuiltinIsIgnored(t *testing.T) {
	// receivers other than console.print parse and lower to nothing
	mod := lowerSrc(t, "fn main() { window.draw(1) }")

	if strings.Contains(mod.String(), "@window") {
		t.Error("expected no lowering for an unknown builtin receiver")
	}
}

func TestLongLiteralRoundTrip(t *testing.T) {
	mod := lowerSrc(t, "fn f() { let x = 9000000000i64; }")

	if !strings.Contains(mod.String(), "9000000000") {
		t.Errorf("expected the 64-bit literal value to be preserved, got:\n%s", mod.String())
	}
}

func TestRebindInPlace(t *testing.T) {
	// declarations rebind in place, and branch-local declarations stay
	// visible after the conditional
	lowerSrc(t, `
		fn f(i32 : a) {
			if a < 1 { let b = 2; }
			let b = 3;
			return b
		}
	`)
}
