package generate

import (
	"fmt"

	"github.com/LiterallyKirby/Magolor/logging"
	"github.com/LiterallyKirby/Magolor/syntax"
	"github.com/LiterallyKirby/Magolor/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genExpr lowers an expression onto the given block and returns its runtime
// value together with its scalar type.  Literals produce constants of their
// natural type; variable references load from their bound slots.
func (g *Generator) genExpr(block *ir.Block, e syntax.Expr) (value.Value, typing.Scalar, error) {
	switch v := e.(type) {
	case *syntax.IntLit:
		return constant.NewInt(types.I32, int64(v.Value)), typing.I32, nil
	case *syntax.LongLit:
		return constant.NewInt(types.I64, v.Value), typing.I64, nil
	case *syntax.FloatLit:
		return constant.NewFloat(types.Float, v.Value), typing.F32, nil
	case *syntax.DoubleLit:
		return constant.NewFloat(types.Double, v.Value), typing.F64, nil
	case *syntax.BoolLit:
		return constant.NewBool(v.Value), typing.Bool, nil
	case *syntax.StringLit:
		return g.stringPtr(block, v.Value), typing.Str, nil
	case *syntax.Ref:
		lv, ok := g.lookup(v.Name)
		if !ok {
			return nil, typing.Unknown, logging.NewCompileError(
				g.lctx,
				fmt.Sprintf("undefined variable: `%s`", v.Name),
				logging.LMKName,
				v.Pos,
			)
		}

		return block.NewLoad(llScalarType(lv.typ), lv.slot), lv.typ, nil
	case *syntax.Call:
		return g.genCall(block, v)
	case *syntax.Compare:
		return g.genCompare(block, v)
	}

	return nil, typing.Unknown, logging.NewCompileError(
		g.lctx,
		"unsupported expression",
		logging.LMKUsage,
		e.Position(),
	)
}

// genCall lowers a function call against the global function table: each
// argument is lowered recursively and coerced to the callee's declared
// parameter type, and the call yields the callee's declared return type
func (g *Generator) genCall(block *ir.Block, call *syntax.Call) (value.Value, typing.Scalar, error) {
	sym, ok := g.funcs[call.Name]
	if !ok {
		return nil, typing.Unknown, logging.NewCompileError(
			g.lctx,
			fmt.Sprintf("undefined function: `%s`", call.Name),
			logging.LMKName,
			call.Pos,
		)
	}

	if len(call.Args) != len(sym.params) {
		return nil, typing.Unknown, logging.NewCompileError(
			g.lctx,
			fmt.Sprintf("`%s` expects %d arguments, received %d", call.Name, len(sym.params), len(call.Args)),
			logging.LMKUsage,
			call.Pos,
		)
	}

	args := make([]value.Value, len(call.Args))
	for i, argExpr := range call.Args {
		val, valType, err := g.genExpr(block, argExpr)
		if err != nil {
			return nil, typing.Unknown, err
		}

		val, err = g.coerce(block, val, valType, sym.params[i], argExpr.Position())
		if err != nil {
			return nil, typing.Unknown, err
		}

		args[i] = val
	}

	return block.NewCall(sym.handle, args...), sym.ret, nil
}

// icmpPreds maps comparison operator token kinds to their signed integer
// comparison predicates
var icmpPreds = map[int]enum.IPred{
	syntax.LT:   enum.IPredSLT,
	syntax.GT:   enum.IPredSGT,
	syntax.LTEQ: enum.IPredSLE,
	syntax.GTEQ: enum.IPredSGE,
	syntax.EQ:   enum.IPredEQ,
	syntax.NEQ:  enum.IPredNE,
}

// genCompare lowers a comparison.  Both operands are evaluated in integer
// context -- floats truncate toward zero, booleans zero-extend, strings are
// not convertible -- at the wider of the two operand widths, and a signed
// integer comparison produces a one-bit truth value.
func (g *Generator) genCompare(block *ir.Block, cmp *syntax.Compare) (value.Value, typing.Scalar, error) {
	lhs, lhsType, err := g.genExpr(block, cmp.Left)
	if err != nil {
		return nil, typing.Unknown, err
	}

	rhs, rhsType, err := g.genExpr(block, cmp.Right)
	if err != nil {
		return nil, typing.Unknown, err
	}

	width := typing.I32
	if lhsType == typing.I64 || rhsType == typing.I64 {
		width = typing.I64
	}

	lhs, err = g.toIntContext(block, lhs, lhsType, width, cmp.Left.Position())
	if err != nil {
		return nil, typing.Unknown, err
	}

	rhs, err = g.toIntContext(block, rhs, rhsType, width, cmp.Right.Position())
	if err != nil {
		return nil, typing.Unknown, err
	}

	return block.NewICmp(icmpPreds[cmp.Op], lhs, rhs), typing.Bool, nil
}

// toIntContext converts a value to the ambient integer width of a comparison
func (g *Generator) toIntContext(block *ir.Block, val value.Value, from, width typing.Scalar, pos *logging.TextPosition) (value.Value, error) {
	intType := llScalarType(width)

	switch from {
	case width:
		return val, nil
	case typing.I32:
		// widening to the 64-bit context
		return block.NewSExt(val, intType), nil
	case typing.Bool:
		return block.NewZExt(val, intType), nil
	case typing.F32, typing.F64:
		return block.NewFPToSI(val, intType), nil
	}

	return nil, logging.NewCompileError(
		g.lctx,
		"string values cannot be used as comparison operands",
		logging.LMKTyping,
		pos,
	)
}

// coerce converts a value between scalar types at declaration, argument, and
// return boundaries.  Numeric conversions follow the declared target type
// (widening extends, narrowing truncates); booleans zero-extend into numeric
// targets; strings convert to and from nothing.
func (g *Generator) coerce(block *ir.Block, val value.Value, from, to typing.Scalar, pos *logging.TextPosition) (value.Value, error) {
	if from == to {
		return val, nil
	}

	target := llScalarType(to)

	switch from {
	case typing.I32:
		switch to {
		case typing.I64:
			return block.NewSExt(val, target), nil
		case typing.F32, typing.F64:
			return block.NewSIToFP(val, target), nil
		}
	case typing.I64:
		switch to {
		case typing.I32:
			return block.NewTrunc(val, target), nil
		case typing.F32, typing.F64:
			return block.NewSIToFP(val, target), nil
		}
	case typing.F32:
		switch to {
		case typing.F64:
			return block.NewFPExt(val, target), nil
		case typing.I32, typing.I64:
			return block.NewFPToSI(val, target), nil
		}
	case typing.F64:
		switch to {
		case typing.F32:
			return block.NewFPTrunc(val, target), nil
		case typing.I32, typing.I64:
			return block.NewFPToSI(val, target), nil
		}
	case typing.Bool:
		switch to {
		case typing.I32, typing.I64:
			return block.NewZExt(val, target), nil
		case typing.F32, typing.F64:
			widened := block.NewZExt(val, types.I32)
			return block.NewSIToFP(widened, target), nil
		}
	}

	return nil, logging.NewCompileError(
		g.lctx,
		fmt.Sprintf("cannot convert a value of type %s to %s", from, to),
		logging.LMKTyping,
		pos,
	)
}
