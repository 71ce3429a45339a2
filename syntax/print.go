package syntax

import (
	"fmt"
	"strings"
)

// DumpAST renders a parsed statement list as an indented tree for verbose
// compiler output
func DumpAST(stmts []Stmt) string {
	sb := strings.Builder{}
	for _, s := range stmts {
		dumpStmt(&sb, s, 0)
	}

	return sb.String()
}

func dumpStmt(sb *strings.Builder, s Stmt, indent int) {
	pad := strings.Repeat("  ", indent)

	switch v := s.(type) {
	case *Import:
		fmt.Fprintf(sb, "%suse %s\n", pad, v.Module)
	case *VarDecl:
		if v.TypeName == "" {
			fmt.Fprintf(sb, "%slet %s = %s\n", pad, v.Name, dumpExpr(v.Value))
		} else {
			fmt.Fprintf(sb, "%slet %s %s = %s\n", pad, v.TypeName, v.Name, dumpExpr(v.Value))
		}
	case *ExprStmt:
		fmt.Fprintf(sb, "%sexpr %s\n", pad, dumpExpr(v.E))
	case *NoOp:
		// statement separators carry no information
	case *BuiltinCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = dumpExpr(a)
		}

		fmt.Fprintf(sb, "%s%s.%s(%s)\n", pad, v.Object, v.Method, strings.Join(args, ", "))
	case *Return:
		fmt.Fprintf(sb, "%sreturn %s\n", pad, dumpExpr(v.Value))
	case *FuncDef:
		params := make([]string, len(v.Params))
		for i, p := range v.Params {
			params[i] = p.TypeName + " : " + p.Name
		}

		ret := v.RetTypeName
		if ret == "" {
			ret = "i32"
		}

		fmt.Fprintf(sb, "%sfn %s(%s) %s\n", pad, v.Name, strings.Join(params, ", "), ret)
		for _, inner := range v.Body {
			dumpStmt(sb, inner, indent+1)
		}
	case *Cond:
		fmt.Fprintf(sb, "%sif %s\n", pad, dumpExpr(v.Condition))
		for _, inner := range v.Body {
			dumpStmt(sb, inner, indent+1)
		}

		for _, br := range v.ElifBranches {
			fmt.Fprintf(sb, "%selif %s\n", pad, dumpExpr(br.Condition))
			for _, inner := range br.Body {
				dumpStmt(sb, inner, indent+1)
			}
		}

		if v.ElseBody != nil {
			fmt.Fprintf(sb, "%selse\n", pad)
			for _, inner := range v.ElseBody {
				dumpStmt(sb, inner, indent+1)
			}
		}
	}
}

func dumpExpr(e Expr) string {
	switch v := e.(type) {
	case *IntLit:
		return fmt.Sprintf("%d", v.Value)
	case *LongLit:
		return fmt.Sprintf("%di64", v.Value)
	case *FloatLit:
		return fmt.Sprintf("%gf32", v.Value)
	case *DoubleLit:
		return fmt.Sprintf("%gf64", v.Value)
	case *BoolLit:
		return fmt.Sprintf("%t", v.Value)
	case *StringLit:
		return fmt.Sprintf("%q", v.Value)
	case *Ref:
		return v.Name
	case *Call:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = dumpExpr(a)
		}

		return fmt.Sprintf("%s(%s)", v.Name, strings.Join(args, ", "))
	case *Compare:
		return fmt.Sprintf("(%s %s %s)", dumpExpr(v.Left), strings.Trim(tokenKindNames[v.Op], "`"), dumpExpr(v.Right))
	}

	return "<?>"
}
