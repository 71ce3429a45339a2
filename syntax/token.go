package syntax

import "github.com/LiterallyKirby/Magolor/logging"

// Token represents a token read in by the scanner
type Token struct {
	Kind  int
	Value string

	// Line is line number starting at 1
	Line int

	// StartCol is the column count immediately before the token's first
	// character, counting tabs as four columns.  The scanner records it as
	// the token begins; deriving it from Col and the value length would drift
	// whenever the token follows a tab.
	StartCol int

	// Col is the column number at the end of the token, counting tabs as four
	// columns
	Col int
}

// The various kinds of tokens supported by the scanner
const (
	// variables
	LET = iota

	// imports
	USE

	// control flow
	IF
	ELIF
	ELSE

	// function definitions and terminators
	FN
	RETURN

	// type keywords
	I32
	I64
	F32
	F64
	STRING
	BOOL
	VOID

	// comparison operators
	LT
	GT
	LTEQ
	GTEQ
	EQ
	NEQ

	// assignment
	ASSIGN

	// punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COMMA
	SEMICOLON
	COLON
	DOT

	// literals (and identifiers)
	IDENTIFIER
	STRINGLIT
	INTLIT
	LONGLIT  // 64-bit integer literal (explicit `i64` suffix)
	FLOATLIT // 32-bit float literal (explicit `f32` suffix or dotted default)
	DOUBLELIT
	BOOLLIT

	// used in parsing algorithm
	EOF
)

// token patterns (matching strings) for keywords.  `fn` and `func` are
// interchangeable function keywords.
var keywordPatterns = map[string]int{
	"let":    LET,
	"use":    USE,
	"if":     IF,
	"elif":   ELIF,
	"else":   ELSE,
	"fn":     FN,
	"func":   FN,
	"return": RETURN,
	"i32":    I32,
	"i64":    I64,
	"f32":    F32,
	"f64":    F64,
	"string": STRING,
	"bool":   BOOL,
	"void":   VOID,
}

// token patterns for symbolic items - longest match wins
var symbolPatterns = map[string]int{
	"<":  LT,
	">":  GT,
	"<=": LTEQ,
	">=": GTEQ,
	"==": EQ,
	"!=": NEQ,
	"=":  ASSIGN,
	"(":  LPAREN,
	")":  RPAREN,
	"{":  LBRACE,
	"}":  RBRACE,
	",":  COMMA,
	";":  SEMICOLON,
	":":  COLON,
	".":  DOT,
}

// tokenKindNames maps token kinds to a human readable name for error messages
var tokenKindNames = map[int]string{
	LET:        "`let`",
	USE:        "`use`",
	IF:         "`if`",
	ELIF:       "`elif`",
	ELSE:       "`else`",
	FN:         "`fn`",
	RETURN:     "`return`",
	I32:        "`i32`",
	I64:        "`i64`",
	F32:        "`f32`",
	F64:        "`f64`",
	STRING:     "`string`",
	BOOL:       "`bool`",
	VOID:       "`void`",
	LT:         "`<`",
	GT:         "`>`",
	LTEQ:       "`<=`",
	GTEQ:       "`>=`",
	EQ:         "`==`",
	NEQ:        "`!=`",
	ASSIGN:     "`=`",
	LPAREN:     "`(`",
	RPAREN:     "`)`",
	LBRACE:     "`{`",
	RBRACE:     "`}`",
	COMMA:      "`,`",
	SEMICOLON:  "`;`",
	COLON:      "`:`",
	DOT:        "`.`",
	IDENTIFIER: "identifier",
	STRINGLIT:  "string literal",
	INTLIT:     "integer literal",
	LONGLIT:    "integer literal",
	FLOATLIT:   "float literal",
	DOUBLELIT:  "float literal",
	BOOLLIT:    "boolean literal",
	EOF:        "end of file",
}

// IsTypeKeyword returns whether a token kind is one of the type keywords that
// may begin a typed declaration or a function definition's return type
func IsTypeKeyword(kind int) bool {
	switch kind {
	case I32, I64, F32, F64, STRING, BOOL, VOID:
		return true
	}

	return false
}

// IsComparisonOp returns whether a token kind is a comparison operator
func IsComparisonOp(kind int) bool {
	switch kind {
	case LT, GT, LTEQ, GTEQ, EQ, NEQ:
		return true
	}

	return false
}

// TextPositionOfToken takes in a token and returns its text position
func TextPositionOfToken(tok *Token) *logging.TextPosition {
	return &logging.TextPosition{StartLn: tok.Line, StartCol: tok.StartCol, EndLn: tok.Line, EndCol: tok.Col}
}
