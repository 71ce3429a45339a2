package syntax

import (
	"fmt"
	"strconv"

	"github.com/LiterallyKirby/Magolor/logging"
)

// Parser produces a list of top-level statements from a token sequence.  It
// maintains a single forward-only cursor and never backtracks across
// statement boundaries.
type Parser struct {
	lctx *logging.LogContext
	toks []*Token
	pos  int
}

// NewParser creates a parser over a scanned token sequence.  The sequence is
// expected to end with an EOF token (as produced by `Scanner.ScanAll`).
func NewParser(lctx *logging.LogContext, toks []*Token) *Parser {
	return &Parser{lctx: lctx, toks: toks}
}

// Parse consumes the whole token sequence and returns the ordered list of
// top-level statements.  It stops at the first malformed statement and
// returns a structured syntax error identifying the offending token.
func (p *Parser) Parse() ([]Stmt, error) {
	var stmts []Stmt

	for p.cur().Kind != EOF {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, s)
	}

	return stmts, nil
}

// -----------------------------------------------------------------------------

// cur returns the token under the cursor.  Walking off the end of the token
// slice yields the trailing EOF token.
func (p *Parser) cur() *Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.pos]
}

// peek returns the token one past the cursor without advancing
func (p *Parser) peek() *Token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.pos+1]
}

// consume returns the current token and advances the cursor
func (p *Parser) consume() *Token {
	tok := p.cur()
	p.pos++
	return tok
}

// expect consumes and returns the current token if it has the given kind and
// produces a syntax error naming the expected continuation otherwise
func (p *Parser) expect(kind int) (*Token, error) {
	if p.cur().Kind != kind {
		return nil, p.errExpected(tokenKindNames[kind])
	}

	return p.consume(), nil
}

// errExpected builds the standard expected-vs-found syntax error at the
// current token
func (p *Parser) errExpected(expected string) error {
	tok := p.cur()
	found := tokenKindNames[tok.Kind]
	if tok.Kind == IDENTIFIER {
		found = fmt.Sprintf("`%s`", tok.Value)
	}

	return logging.NewCompileError(
		p.lctx,
		fmt.Sprintf("expected %s, found %s", expected, found),
		logging.LMKSyntax,
		TextPositionOfToken(tok),
	)
}

// -----------------------------------------------------------------------------

// parseStmt dispatches on the current token's kind to the appropriate
// statement form
func (p *Parser) parseStmt() (Stmt, error) {
	tok := p.cur()

	switch tok.Kind {
	case LET:
		return p.parseVarDecl()
	case USE:
		return p.parseImport()
	case SEMICOLON:
		p.consume()
		return &NoOp{Pos: TextPositionOfToken(tok)}, nil
	case IF:
		return p.parseCond()
	case RETURN:
		return p.parseReturn()
	case FN:
		return p.parseFuncDef()
	case IDENTIFIER:
		if p.peek().Kind == DOT {
			return p.parseBuiltinCall()
		}

		// a bare identifier not followed by `.` is a variable reference in
		// statement position
		p.consume()
		return &ExprStmt{E: &Ref{Name: tok.Value, Pos: TextPositionOfToken(tok)}, Pos: TextPositionOfToken(tok)}, nil
	case INTLIT, LONGLIT, FLOATLIT, DOUBLELIT, BOOLLIT, STRINGLIT:
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}

		return &ExprStmt{E: lit, Pos: TextPositionOfToken(tok)}, nil
	}

	// a leading return-type keyword followed by a function keyword also begins
	// a function definition
	if IsTypeKeyword(tok.Kind) && p.peek().Kind == FN {
		return p.parseFuncDef()
	}

	return nil, p.errExpected("a statement")
}

// parseImport parses `use <module>`
func (p *Parser) parseImport() (Stmt, error) {
	use := p.consume()

	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	return &Import{Module: name.Value, Pos: TextPositionOfToken(use)}, nil
}

// parseVarDecl parses both declaration forms: `let <type> <name> = <value>`
// and `let <name> = <value>` (type inferred during lowering)
func (p *Parser) parseVarDecl() (Stmt, error) {
	let := p.consume()

	typeName := ""
	if IsTypeKeyword(p.cur().Kind) {
		if p.cur().Kind == VOID {
			return nil, p.errExpected("a value type")
		}

		typeName = p.consume().Value
	}

	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &VarDecl{
		TypeName: typeName,
		Name:     name.Value,
		Value:    value,
		Pos:      TextPositionOfToken(let),
	}, nil
}

// parseReturn parses `return <value>`.  The returned value may be a literal,
// a variable reference, or a function call; comparisons are only reachable
// through the general value parser used by declarations and arguments.
func (p *Parser) parseReturn() (Stmt, error) {
	ret := p.consume()

	value, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	return &Return{Value: value, Pos: TextPositionOfToken(ret)}, nil
}

// parseBuiltinCall parses `<object>.<method>(<args>)`.  Arguments are
// restricted to literals and bare variable references; nested calls and
// comparisons are rejected here, not during lowering.
func (p *Parser) parseBuiltinCall() (Stmt, error) {
	object := p.consume()
	p.consume() // dot, guaranteed by caller

	method, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	var args []Expr
	for p.cur().Kind != RPAREN {
		tok := p.cur()

		var arg Expr
		switch tok.Kind {
		case IDENTIFIER:
			if p.peek().Kind == LPAREN {
				return nil, logging.NewCompileError(
					p.lctx,
					"nested calls are not supported as builtin call arguments",
					logging.LMKSyntax,
					TextPositionOfToken(tok),
				)
			}

			p.consume()
			arg = &Ref{Name: tok.Value, Pos: TextPositionOfToken(tok)}
		case INTLIT, LONGLIT, FLOATLIT, DOUBLELIT, BOOLLIT, STRINGLIT:
			arg, err = p.parseLiteral()
			if err != nil {
				return nil, err
			}
		default:
			return nil, p.errExpected("a literal or variable argument")
		}

		args = append(args, arg)

		if p.cur().Kind != COMMA {
			break
		}

		p.consume()
	}

	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	return &BuiltinCall{
		Object: object.Value,
		Method: method.Value,
		Args:   args,
		Pos:    TextPositionOfToken(object),
	}, nil
}

// parseFuncDef parses a function definition: an optional leading return-type
// keyword, the function keyword, the name, a parenthesized `<type> : <name>`
// parameter list, and a brace-delimited body
func (p *Parser) parseFuncDef() (Stmt, error) {
	lead := p.cur()

	retTypeName := ""
	if IsTypeKeyword(lead.Kind) {
		retTypeName = p.consume().Value
	}

	if _, err := p.expect(FN); err != nil {
		return nil, err
	}

	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	var params []Param
	for p.cur().Kind != RPAREN {
		if !IsTypeKeyword(p.cur().Kind) {
			return nil, p.errExpected("a parameter type")
		}
		typeTok := p.consume()

		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}

		pname, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}

		params = append(params, Param{TypeName: typeTok.Value, Name: pname.Value})

		if p.cur().Kind != COMMA {
			break
		}

		p.consume()
	}

	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &FuncDef{
		Name:        name.Value,
		Params:      params,
		RetTypeName: retTypeName,
		Body:        body,
		Pos:         TextPositionOfToken(lead),
	}, nil
}

// parseCond parses `if <condition> { <body> }` with any number of elif
// clauses and an optional else body
func (p *Parser) parseCond() (Stmt, error) {
	ifTok := p.consume()

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	stmt := &Cond{Condition: cond, Body: body, Pos: TextPositionOfToken(ifTok)}

	for p.cur().Kind == ELIF {
		p.consume()

		elifCond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}

		elifBody, err := p.parseBody()
		if err != nil {
			return nil, err
		}

		stmt.ElifBranches = append(stmt.ElifBranches, ElifBranch{Condition: elifCond, Body: elifBody})
	}

	if p.cur().Kind == ELSE {
		p.consume()

		elseBody, err := p.parseBody()
		if err != nil {
			return nil, err
		}

		// a conditional with an empty else body still records its presence
		if elseBody == nil {
			elseBody = []Stmt{}
		}
		stmt.ElseBody = elseBody
	}

	return stmt, nil
}

// parseCondition parses a conditional's test expression with an optional
// enclosing parenthesis pair
func (p *Parser) parseCondition() (Expr, error) {
	if p.cur().Kind == LPAREN {
		p.consume()

		cond, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}

		return cond, nil
	}

	return p.parseValue()
}

// parseBody parses a brace-delimited statement list.  The body's extent is
// found by brace-depth counting: the depth starts at 1 on the opening brace
// and the body ends when it returns to 0; a body whose depth never returns to
// 0 is a hard parse failure.
func (p *Parser) parseBody() ([]Stmt, error) {
	lbrace, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}

	depth := 1
	end := -1
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case LBRACE:
			depth++
		case RBRACE:
			depth--
		}

		if depth == 0 {
			end = i
			break
		}
	}

	if end == -1 {
		return nil, logging.NewCompileError(
			p.lctx,
			"unterminated block: missing closing `}`",
			logging.LMKSyntax,
			TextPositionOfToken(lbrace),
		)
	}

	var stmts []Stmt
	for p.pos < end {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, s)
	}

	// consume the closing brace
	p.pos = end + 1

	return stmts, nil
}

// -----------------------------------------------------------------------------

// parseValue is the general value parser shared by declarations, conditions,
// and call arguments: one operand optionally followed by a single comparison
// operator and a second operand.  Comparisons do not chain.
func (p *Parser) parseValue() (Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	if IsComparisonOp(p.cur().Kind) {
		op := p.consume()

		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}

		return &Compare{Op: op.Kind, Left: left, Right: right, Pos: TextPositionOfToken(op)}, nil
	}

	return left, nil
}

// parseOperand parses a literal, a variable reference, or a function call
// (whose arguments may themselves be any value, including nested calls)
func (p *Parser) parseOperand() (Expr, error) {
	tok := p.cur()

	switch tok.Kind {
	case IDENTIFIER:
		if p.peek().Kind == LPAREN {
			return p.parseCall()
		}

		p.consume()
		return &Ref{Name: tok.Value, Pos: TextPositionOfToken(tok)}, nil
	case INTLIT, LONGLIT, FLOATLIT, DOUBLELIT, BOOLLIT, STRINGLIT:
		return p.parseLiteral()
	}

	return nil, p.errExpected("a value")
}

// parseCall parses `<name>(<args>)` where each argument is a full value
func (p *Parser) parseCall() (Expr, error) {
	name := p.consume()
	p.consume() // lparen, guaranteed by caller

	var args []Expr
	for p.cur().Kind != RPAREN {
		arg, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.cur().Kind != COMMA {
			break
		}

		p.consume()
	}

	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	return &Call{Name: name.Value, Args: args, Pos: TextPositionOfToken(name)}, nil
}

// parseLiteral converts the current literal token into its expression node,
// preserving the literal's value exactly
func (p *Parser) parseLiteral() (Expr, error) {
	tok := p.consume()
	pos := TextPositionOfToken(tok)

	switch tok.Kind {
	case INTLIT:
		v, err := strconv.ParseInt(tok.Value, 10, 32)
		if err != nil {
			return nil, p.errLiteralRange(tok)
		}

		return &IntLit{Value: int32(v), Pos: pos}, nil
	case LONGLIT:
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errLiteralRange(tok)
		}

		return &LongLit{Value: v, Pos: pos}, nil
	case FLOATLIT:
		v, err := strconv.ParseFloat(tok.Value, 32)
		if err != nil {
			return nil, p.errLiteralRange(tok)
		}

		return &FloatLit{Value: v, Pos: pos}, nil
	case DOUBLELIT:
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errLiteralRange(tok)
		}

		return &DoubleLit{Value: v, Pos: pos}, nil
	case BOOLLIT:
		return &BoolLit{Value: tok.Value == "true", Pos: pos}, nil
	case STRINGLIT:
		return &StringLit{Value: tok.Value, Pos: pos}, nil
	}

	return nil, p.errExpected("a literal")
}

func (p *Parser) errLiteralRange(tok *Token) error {
	return logging.NewCompileError(
		p.lctx,
		fmt.Sprintf("literal `%s` out of range for its type", tok.Value),
		logging.LMKToken,
		TextPositionOfToken(tok),
	)
}
