package generate

import (
	"fmt"

	"github.com/LiterallyKirby/Magolor/syntax"
	"github.com/LiterallyKirby/Magolor/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// printBufferLen is the byte length of the stack buffer numeric print
// arguments are formatted into
const printBufferLen = 32

// declareRuntime declares the external C primitives the print intrinsic
// lowers onto: `puts` as the single-string print primitive and `sprintf` for
// numeric value-to-text conversion
func (g *Generator) declareRuntime() {
	g.puts = g.mod.NewFunc("puts", types.I32, ir.NewParam("s", types.I8Ptr))
	g.sprintf = g.mod.NewFunc("sprintf", types.I32,
		ir.NewParam("buf", types.I8Ptr),
		ir.NewParam("format", types.I8Ptr),
	)
	g.sprintf.Sig.Variadic = true
}

// genBuiltinCall lowers a built-in call statement.  `console.print` is the
// only built-in with lowering semantics; all other receivers and methods
// lower to nothing.
func (g *Generator) genBuiltinCall(block *ir.Block, call *syntax.BuiltinCall) error {
	if call.Object != "console" || call.Method != "print" {
		return nil
	}

	for _, argExpr := range call.Args {
		val, valType, err := g.genExpr(block, argExpr)
		if err != nil {
			return err
		}

		g.genPrintArg(block, val, valType)
	}

	return nil
}

// genPrintArg prints a single argument, dispatching on its scalar type:
// strings pass their pointer straight to the print primitive, booleans select
// between two fixed string constants without branching, and numerics are
// formatted into a stack buffer first
func (g *Generator) genPrintArg(block *ir.Block, val value.Value, valType typing.Scalar) {
	switch valType {
	case typing.Str:
		block.NewCall(g.puts, val)
	case typing.Bool:
		sel := block.NewSelect(val, g.stringPtr(block, "true"), g.stringPtr(block, "false"))
		block.NewCall(g.puts, sel)
	default:
		buf := block.NewAlloca(types.NewArray(printBufferLen, types.I8))
		bufPtr := block.NewBitCast(buf, types.I8Ptr)

		// C variadic promotion: single-precision floats widen to double
		// before being passed to sprintf
		if valType == typing.F32 {
			val = block.NewFPExt(val, types.Double)
		}

		block.NewCall(g.sprintf, bufPtr, g.stringPtr(block, valType.FormatSpec()), val)
		block.NewCall(g.puts, bufPtr)
	}
}

// internString returns the interned global for a string's bytes, creating and
// NUL-terminating it on first use
func (g *Generator) internString(s string) *ir.Global {
	if glob, ok := g.strLits[s]; ok {
		return glob
	}

	glob := g.mod.NewGlobalDef(
		fmt.Sprintf("__strlit.%d", g.globalCounter),
		constant.NewCharArrayFromString(s+"\x00"),
	)
	g.globalCounter++
	g.strLits[s] = glob
	return glob
}

// stringPtr produces the byte-pointer value of an interned string
func (g *Generator) stringPtr(block *ir.Block, s string) value.Value {
	return block.NewBitCast(g.internString(s), types.I8Ptr)
}
