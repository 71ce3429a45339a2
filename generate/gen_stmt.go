package generate

import (
	"github.com/LiterallyKirby/Magolor/logging"
	"github.com/LiterallyKirby/Magolor/syntax"
	"github.com/LiterallyKirby/Magolor/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genStmts lowers a statement list onto the given block and returns the block
// lowering ends on.  Conditionals reposition lowering onto their merge block;
// every other statement appends to the current block.
func (g *Generator) genStmts(block *ir.Block, stmts []syntax.Stmt) (*ir.Block, error) {
	for _, s := range stmts {
		// a return terminates the block immediately; the remaining statements
		// of the body are abandoned
		if block.Term != nil {
			break
		}

		var err error
		switch v := s.(type) {
		case *syntax.VarDecl:
			err = g.genVarDecl(block, v)
		case *syntax.ExprStmt:
			// standalone expressions are evaluated for name-resolution errors
			// and their values discarded
			_, _, err = g.genExpr(block, v.E)
		case *syntax.NoOp:
			// discardable marker
		case *syntax.BuiltinCall:
			err = g.genBuiltinCall(block, v)
		case *syntax.Return:
			err = g.genReturn(block, v)
		case *syntax.Cond:
			block, err = g.genCond(block, v)
		case *syntax.Import:
			err = logging.NewCompileError(
				g.lctx,
				"imports must appear at the top level of a file",
				logging.LMKImport,
				v.Pos,
			)
		case *syntax.FuncDef:
			err = logging.NewCompileError(
				g.lctx,
				"nested function definitions are not supported",
				logging.LMKDef,
				v.Pos,
			)
		}

		if err != nil {
			return nil, err
		}
	}

	return block, nil
}

// genVarDecl lowers a `let` declaration: evaluate the initializer, coerce it
// to the declared type when one was written, allocate a typed slot, and bind
// the name.  Rebinding is in place: a second declaration of the same name
// replaces the first.
func (g *Generator) genVarDecl(block *ir.Block, vd *syntax.VarDecl) error {
	val, valType, err := g.genExpr(block, vd.Value)
	if err != nil {
		return err
	}

	declType := valType
	if vd.TypeName != "" {
		scalar, ok := typing.FromName(vd.TypeName)
		if !ok {
			return logging.NewCompileError(
				g.lctx,
				"unsupported type: `"+vd.TypeName+"`",
				logging.LMKTyping,
				vd.Pos,
			)
		}

		// the declared type overrides the initializer's natural type
		declType = scalar
		val, err = g.coerce(block, val, valType, declType, vd.Pos)
		if err != nil {
			return err
		}
	}

	slot := block.NewAlloca(llScalarType(declType))
	slot.SetName(vd.Name + ".addr")
	block.NewStore(val, slot)
	g.locals[vd.Name] = localVar{slot: slot, typ: declType}
	return nil
}

// genReturn lowers a `return` statement, coercing the returned value to the
// enclosing function's declared return type
func (g *Generator) genReturn(block *ir.Block, ret *syntax.Return) error {
	val, valType, err := g.genExpr(block, ret.Value)
	if err != nil {
		return err
	}

	val, err = g.coerce(block, val, valType, g.enclosingSym.ret, ret.Pos)
	if err != nil {
		return err
	}

	block.NewRet(val)
	return nil
}

// genCond lowers a conditional.  Each branch's test gets a body block and a
// next block chained off the previous test, so failing one condition falls
// through to the next; the final next block doubles as the else body (empty
// when no else was written).  Every body that does not return branches to the
// shared merge block, and lowering resumes there.
func (g *Generator) genCond(block *ir.Block, cond *syntax.Cond) (*ir.Block, error) {
	mergeBlock := g.appendBlock()

	type branch struct {
		cond syntax.Expr
		body []syntax.Stmt
	}

	branches := []branch{{cond.Condition, cond.Body}}
	for _, eb := range cond.ElifBranches {
		branches = append(branches, branch{eb.Condition, eb.Body})
	}

	cur := block
	for _, br := range branches {
		condVal, err := g.genTruthValue(cur, br.cond)
		if err != nil {
			return nil, err
		}

		bodyBlock := g.appendBlock()
		nextBlock := g.appendBlock()
		cur.NewCondBr(condVal, bodyBlock, nextBlock)

		end, err := g.genStmts(bodyBlock, br.body)
		if err != nil {
			return nil, err
		}

		if end.Term == nil {
			end.NewBr(mergeBlock)
		}

		cur = nextBlock
	}

	end, err := g.genStmts(cur, cond.ElseBody)
	if err != nil {
		return nil, err
	}

	if end.Term == nil {
		end.NewBr(mergeBlock)
	}

	return mergeBlock, nil
}

// genTruthValue lowers a conditional's test expression to a one-bit truth
// value: booleans and comparisons are used directly, numerics are tested
// against zero, and strings have no truth value
func (g *Generator) genTruthValue(block *ir.Block, e syntax.Expr) (value.Value, error) {
	val, valType, err := g.genExpr(block, e)
	if err != nil {
		return nil, err
	}

	switch valType {
	case typing.Bool:
		return val, nil
	case typing.I32:
		return block.NewICmp(enum.IPredNE, val, constant.NewInt(types.I32, 0)), nil
	case typing.I64:
		return block.NewICmp(enum.IPredNE, val, constant.NewInt(types.I64, 0)), nil
	case typing.F32:
		return block.NewFCmp(enum.FPredONE, val, constant.NewFloat(types.Float, 0)), nil
	case typing.F64:
		return block.NewFCmp(enum.FPredONE, val, constant.NewFloat(types.Double, 0)), nil
	}

	return nil, logging.NewCompileError(
		g.lctx,
		"condition must be a boolean or numeric value, not a string",
		logging.LMKTyping,
		e.Position(),
	)
}
