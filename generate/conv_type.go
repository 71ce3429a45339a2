package generate

import (
	"github.com/LiterallyKirby/Magolor/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// llScalarType converts a scalar type tag into its LLVM type.  Strings are
// raw byte pointers; booleans are a real one-bit type, widened explicitly
// wherever an integer is required.
func llScalarType(s typing.Scalar) types.Type {
	switch s {
	case typing.I64:
		return types.I64
	case typing.F32:
		return types.Float
	case typing.F64:
		return types.Double
	case typing.Bool:
		return types.I1
	case typing.Str:
		return types.I8Ptr
	}

	return types.I32
}

// genDefaultReturn terminates a block with the zero value of the given return
// scalar: 0 for numerics, false for booleans, and the empty string for
// string-returning functions
func (g *Generator) genDefaultReturn(block *ir.Block, ret typing.Scalar) {
	switch ret {
	case typing.I64:
		block.NewRet(constant.NewInt(types.I64, 0))
	case typing.F32:
		block.NewRet(constant.NewFloat(types.Float, 0))
	case typing.F64:
		block.NewRet(constant.NewFloat(types.Double, 0))
	case typing.Bool:
		block.NewRet(constant.NewBool(false))
	case typing.Str:
		block.NewRet(g.stringPtr(block, ""))
	default:
		block.NewRet(constant.NewInt(types.I32, 0))
	}
}
