package generate

import (
	"fmt"

	"github.com/LiterallyKirby/Magolor/logging"
	"github.com/LiterallyKirby/Magolor/syntax"
	"github.com/LiterallyKirby/Magolor/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// funcSymbol is the registered signature of a source function: its LLVM
// handle, ordered parameter scalars, and return scalar
type funcSymbol struct {
	handle *ir.Func
	params []typing.Scalar
	ret    typing.Scalar
}

// localVar binds a variable name to its typed storage slot
type localVar struct {
	slot value.Value
	typ  typing.Scalar
}

// Generator is responsible for converting the top-level AST into an LLVM
// module.  Each Generator owns all of its tables: nothing is shared between
// compilations, so independent compilations never contend.
type Generator struct {
	// lctx is the log context of the source file being lowered
	lctx *logging.LogContext

	// mod is the LLVM module being generated
	mod *ir.Module

	// funcs is the global function table.  It is fully populated by the
	// signature pass before any body is lowered so that forward references
	// and mutual recursion resolve without declaration ordering.
	funcs map[string]*funcSymbol

	// imports is the ordered list of imported module names
	imports []string

	// enclosingFunc and enclosingSym identify the function whose body is
	// currently being lowered
	enclosingFunc *ir.Func
	enclosingSym  *funcSymbol

	// locals is the flat per-function variable table.  Declarations rebind
	// in place: a branch-local declaration remains visible after its
	// conditional, and redeclaring a name replaces the prior binding.
	locals map[string]localVar

	// puts and sprintf are the external runtime primitives used by the
	// print intrinsic
	puts    *ir.Func
	sprintf *ir.Func

	// strLits interns string literal globals by content
	strLits map[string]*ir.Global

	// globalCounter is used to generate anonymous globals for interned
	// strings
	globalCounter int
}

// NewGenerator creates a generator for one compilation unit, declaring the
// external runtime primitives the print intrinsic depends on
func NewGenerator(lctx *logging.LogContext) *Generator {
	g := &Generator{
		lctx:    lctx,
		mod:     ir.NewModule(),
		funcs:   make(map[string]*funcSymbol),
		strLits: make(map[string]*ir.Global),
	}

	g.declareRuntime()
	return g
}

// Generate runs the two-pass lowering algorithm over the top-level AST and
// returns the completed LLVM module.  Pass one registers every function
// signature; pass two lowers each body against the completed function table.
func (g *Generator) Generate(stmts []syntax.Stmt) (*ir.Module, error) {
	for _, s := range stmts {
		switch v := s.(type) {
		case *syntax.FuncDef:
			if err := g.registerFunc(v); err != nil {
				return nil, err
			}
		case *syntax.Import:
			// imports are metadata only; they produce no IR
			g.imports = append(g.imports, v.Module)
			logging.LogInfo("Import", fmt.Sprintf("importing module `%s`", v.Module))
		case *syntax.NoOp:
			// statement separators are discardable
		default:
			return nil, logging.NewCompileError(
				g.lctx,
				"executable statements must appear inside a function",
				logging.LMKUsage,
				s.Position(),
			)
		}
	}

	for _, s := range stmts {
		if fd, ok := s.(*syntax.FuncDef); ok {
			if err := g.genFunc(fd); err != nil {
				return nil, err
			}
		}
	}

	return g.mod, nil
}

// registerFunc resolves a function definition's signature and adds it to the
// global function table
func (g *Generator) registerFunc(fd *syntax.FuncDef) error {
	if _, ok := g.funcs[fd.Name]; ok {
		return logging.NewCompileError(
			g.lctx,
			fmt.Sprintf("multiple definitions of function `%s`", fd.Name),
			logging.LMKDef,
			fd.Pos,
		)
	}

	var paramScalars []typing.Scalar
	var params []*ir.Param
	for _, p := range fd.Params {
		scalar, ok := typing.FromName(p.TypeName)
		if !ok {
			return logging.NewCompileError(
				g.lctx,
				fmt.Sprintf("unsupported parameter type: `%s`", p.TypeName),
				logging.LMKTyping,
				fd.Pos,
			)
		}

		paramScalars = append(paramScalars, scalar)
		params = append(params, ir.NewParam(p.Name, llScalarType(scalar)))
	}

	// an absent or `void` return type defaults to the 32-bit integer type
	ret := typing.I32
	if fd.RetTypeName != "" && fd.RetTypeName != "void" {
		scalar, ok := typing.FromName(fd.RetTypeName)
		if !ok {
			return logging.NewCompileError(
				g.lctx,
				fmt.Sprintf("unsupported return type: `%s`", fd.RetTypeName),
				logging.LMKTyping,
				fd.Pos,
			)
		}

		ret = scalar
	}

	handle := g.mod.NewFunc(fd.Name, llScalarType(ret), params...)
	g.funcs[fd.Name] = &funcSymbol{handle: handle, params: paramScalars, ret: ret}
	return nil
}

// genFunc lowers one function body.  Parameters are spilled to named storage
// slots in the entry block so they behave like ordinary local variables.
func (g *Generator) genFunc(fd *syntax.FuncDef) error {
	sym := g.funcs[fd.Name]
	g.enclosingFunc = sym.handle
	g.enclosingSym = sym
	g.locals = make(map[string]localVar)

	entry := sym.handle.NewBlock("entry")

	for i, p := range fd.Params {
		slot := entry.NewAlloca(llScalarType(sym.params[i]))
		slot.SetName(p.Name + ".addr")
		entry.NewStore(sym.handle.Params[i], slot)
		g.locals[p.Name] = localVar{slot: slot, typ: sym.params[i]}
	}

	block, err := g.genStmts(entry, fd.Body)
	if err != nil {
		return err
	}

	// a body that falls off its end returns the zero value of the declared
	// return type
	if block.Term == nil {
		g.genDefaultReturn(block, sym.ret)
	}

	return nil
}

// appendBlock adds a new basic block to the current function.  It does *not*
// reposition lowering onto the new block.
func (g *Generator) appendBlock() *ir.Block {
	return g.enclosingFunc.NewBlock(fmt.Sprintf("bb%d", len(g.enclosingFunc.Blocks)))
}

// lookup finds a local variable's binding
func (g *Generator) lookup(name string) (localVar, bool) {
	lv, ok := g.locals[name]
	return lv, ok
}
