package syntax

import (
	"github.com/LiterallyKirby/Magolor/logging"
)

// Stmt represents a single statement node of the Abstract Syntax Tree (AST)
type Stmt interface {
	// Position should span the entire statement (meaningfully)
	Position() *logging.TextPosition
}

// Import is a `use <module>` statement.  Imports are resolved entirely at
// lowering time as metadata and produce no IR.
type Import struct {
	Module string
	Pos    *logging.TextPosition
}

// VarDecl is a `let` declaration.  TypeName is empty when the declared type
// must be inferred from the initializer during lowering.
type VarDecl struct {
	TypeName string
	Name     string
	Value    Expr
	Pos      *logging.TextPosition
}

// ExprStmt is a standalone expression in statement position: a literal or a
// bare variable reference
type ExprStmt struct {
	E   Expr
	Pos *logging.TextPosition
}

// NoOp is an explicit statement separator (`;`) retained in the AST
type NoOp struct {
	Pos *logging.TextPosition
}

// BuiltinCall is an `<object>.<method>(args...)` statement.  Only
// `console.print` is meaningful downstream; other receivers parse but lower
// to nothing.
type BuiltinCall struct {
	Object string
	Method string
	Args   []Expr
	Pos    *logging.TextPosition
}

// Return is a `return <value>` statement
type Return struct {
	Value Expr
	Pos   *logging.TextPosition
}

// Param is a single `<type> : <name>` function parameter
type Param struct {
	TypeName string
	Name     string
}

// FuncDef is a function definition.  RetTypeName is empty when no return type
// was written; the lowering engine defaults it to the 32-bit integer type.
type FuncDef struct {
	Name        string
	Params      []Param
	RetTypeName string
	Body        []Stmt
	Pos         *logging.TextPosition
}

// ElifBranch is one `elif <condition> { <body> }` clause of a conditional
type ElifBranch struct {
	Condition Expr
	Body      []Stmt
}

// Cond is an `if` statement with zero or more elif branches and an optional
// else body (nil when absent)
type Cond struct {
	Condition    Expr
	Body         []Stmt
	ElifBranches []ElifBranch
	ElseBody     []Stmt
	Pos          *logging.TextPosition
}

func (n *Import) Position() *logging.TextPosition      { return n.Pos }
func (n *VarDecl) Position() *logging.TextPosition     { return n.Pos }
func (n *ExprStmt) Position() *logging.TextPosition    { return n.Pos }
func (n *NoOp) Position() *logging.TextPosition        { return n.Pos }
func (n *BuiltinCall) Position() *logging.TextPosition { return n.Pos }
func (n *Return) Position() *logging.TextPosition      { return n.Pos }
func (n *FuncDef) Position() *logging.TextPosition     { return n.Pos }
func (n *Cond) Position() *logging.TextPosition        { return n.Pos }

// -----------------------------------------------------------------------------

// Expr represents a value expression: a literal, a variable reference, a
// function call, or a comparison of two operands
type Expr interface {
	Position() *logging.TextPosition
}

// IntLit is a 32-bit integer literal
type IntLit struct {
	Value int32
	Pos   *logging.TextPosition
}

// LongLit is a 64-bit integer literal (written with the `i64` suffix)
type LongLit struct {
	Value int64
	Pos   *logging.TextPosition
}

// FloatLit is a 32-bit float literal (explicit `f32` suffix or the dotted
// default)
type FloatLit struct {
	Value float64
	Pos   *logging.TextPosition
}

// DoubleLit is a 64-bit float literal (written with the `f64` suffix)
type DoubleLit struct {
	Value float64
	Pos   *logging.TextPosition
}

// BoolLit is a `true` or `false` literal
type BoolLit struct {
	Value bool
	Pos   *logging.TextPosition
}

// StringLit is a quoted string literal
type StringLit struct {
	Value string
	Pos   *logging.TextPosition
}

// Ref is a reference to a variable by name
type Ref struct {
	Name string
	Pos  *logging.TextPosition
}

// Call is a function call with its arguments in source order
type Call struct {
	Name string
	Args []Expr
	Pos  *logging.TextPosition
}

// Compare is one of the six binary comparisons.  Op is the comparison
// operator's token kind (LT, GT, LTEQ, GTEQ, EQ, NEQ).  Comparisons do not
// chain and there are no boolean combinators.
type Compare struct {
	Op    int
	Left  Expr
	Right Expr
	Pos   *logging.TextPosition
}

func (e *IntLit) Position() *logging.TextPosition    { return e.Pos }
func (e *LongLit) Position() *logging.TextPosition   { return e.Pos }
func (e *FloatLit) Position() *logging.TextPosition  { return e.Pos }
func (e *DoubleLit) Position() *logging.TextPosition { return e.Pos }
func (e *BoolLit) Position() *logging.TextPosition   { return e.Pos }
func (e *StringLit) Position() *logging.TextPosition { return e.Pos }
func (e *Ref) Position() *logging.TextPosition       { return e.Pos }
func (e *Call) Position() *logging.TextPosition      { return e.Pos }
func (e *Compare) Position() *logging.TextPosition   { return e.Pos }
