package syntax

import (
	"testing"
)

func scanAll(t *testing.T, src string) []*Token {
	t.Helper()

	toks, err := NewScannerFromSource(src, nil).ScanAll()
	if err != nil {
		t.Fatalf("unexpected scan error: %s", err)
	}

	return toks
}

func assertTok(t *testing.T, tok *Token, kind int, value string) {
	t.Helper()

	if tok.Kind != kind {
		t.Errorf("expected kind %s, got %s (`%s`)", tokenKindNames[kind], tokenKindNames[tok.Kind], tok.Value)
	}
	if tok.Value != value {
		t.Errorf("expected value `%s`, got `%s`", value, tok.Value)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "let use fn func return if elif else foo _if")

	expected := []struct {
		kind  int
		value string
	}{
		{LET, "let"},
		{USE, "use"},
		{FN, "fn"},
		{FN, "func"},
		{RETURN, "return"},
		{IF, "if"},
		{ELIF, "elif"},
		{ELSE, "else"},
		{IDENTIFIER, "foo"},
		// keyword matching is whole-word, so `_if` is a plain identifier
		{IDENTIFIER, "_if"},
		{EOF, ""},
	}

	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}

	for i, exp := range expected {
		assertTok(t, toks[i], exp.kind, exp.value)
	}
}

func TestScanTypeKeywords(t *testing.T) {
	// the type keywords carry digits and must still tokenize as keywords
	toks := scanAll(t, "i32 i64 f32 f64 string bool void")

	kinds := []int{I32, I64, F32, F64, STRING, BOOL, VOID, EOF}
	if len(toks) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d", len(kinds), len(toks))
	}

	for i, kind := range kinds {
		if toks[i].Kind != kind {
			t.Errorf("token %d: expected kind %s, got %s (`%s`)", i, tokenKindNames[kind], tokenKindNames[toks[i].Kind], toks[i].Value)
		}
	}

	// but a type keyword followed by identifier characters is an identifier
	toks = scanAll(t, "i32x f64_")
	assertTok(t, toks[0], IDENTIFIER, "i32x")
	assertTok(t, toks[1], IDENTIFIER, "f64_")
}

func TestScanNumberLiterals(t *testing.T) {
	toks := scanAll(t, "5 42i64 3.14 2.5f32 2.5f64")

	assertTok(t, toks[0], INTLIT, "5")
	assertTok(t, toks[1], LONGLIT, "42")
	assertTok(t, toks[2], FLOATLIT, "3.14")
	assertTok(t, toks[3], FLOATLIT, "2.5")
	assertTok(t, toks[4], DOUBLELIT, "2.5")
}

func TestScanSuffixBoundary(t *testing.T) {
	// a suffix followed by identifier characters is not a suffix
	toks := scanAll(t, "42i64x")

	assertTok(t, toks[0], INTLIT, "42")
	assertTok(t, toks[1], IDENTIFIER, "i64x")
}

func TestScanTrailingDot(t *testing.T) {
	// a dot not followed by a digit belongs to the next token
	toks := scanAll(t, "7.x")

	assertTok(t, toks[0], INTLIT, "7")
	assertTok(t, toks[1], DOT, ".")
	assertTok(t, toks[2], IDENTIFIER, "x")
}

func TestScanSymbols(t *testing.T) {
	toks := scanAll(t, "<= >= == != < > = ( ) { } , ; : .")

	kinds := []int{LTEQ, GTEQ, EQ, NEQ, LT, GT, ASSIGN, LPAREN, RPAREN, LBRACE, RBRACE, COMMA, SEMICOLON, COLON, DOT, EOF}
	if len(toks) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d", len(kinds), len(toks))
	}

	for i, kind := range kinds {
		if toks[i].Kind != kind {
			t.Errorf("token %d: expected kind %s, got %s", i, tokenKindNames[kind], tokenKindNames[toks[i].Kind])
		}
	}
}

func TestScanNotEqual(t *testing.T) {
	toks := scanAll(t, "x != y")

	assertTok(t, toks[0], IDENTIFIER, "x")
	assertTok(t, toks[1], NEQ, "!=")
	assertTok(t, toks[2], IDENTIFIER, "y")

	// `!` only exists as part of `!=`
	if _, err := NewScannerFromSource("x ! y", nil).ScanAll(); err == nil {
		t.Error("expected an error for a bare `!`")
	}
}

func TestScanBooleanLiterals(t *testing.T) {
	toks := scanAll(t, "true false trueish")

	assertTok(t, toks[0], BOOLLIT, "true")
	assertTok(t, toks[1], BOOLLIT, "false")
	assertTok(t, toks[2], IDENTIFIER, "trueish")
}

func TestScanStringLiteral(t *testing.T) {
	toks := scanAll(t, `let s = "hello world"`)

	assertTok(t, toks[3], STRINGLIT, "hello world")
}

func TestScanUnterminatedString(t *testing.T) {
	if _, err := NewScannerFromSource(`"oops`, nil).ScanAll(); err == nil {
		t.Error("expected an error for an unterminated string")
	}

	// strings may not span lines
	if _, err := NewScannerFromSource("\"oops\nmore\"", nil).ScanAll(); err == nil {
		t.Error("expected an error for a string spanning lines")
	}
}

func TestScanLineComments(t *testing.T) {
	toks := scanAll(t, "let // this is ignored\nuse")

	assertTok(t, toks[0], LET, "let")
	assertTok(t, toks[1], USE, "use")
	assertTok(t, toks[2], EOF, "")
}

func TestScanUnrecognizedCharacter(t *testing.T) {
	// unrecognized input is reported, never silently dropped
	if _, err := NewScannerFromSource("let x = @", nil).ScanAll(); err == nil {
		t.Error("expected an error for an unrecognized character")
	}
}

func TestScanTokenPositions(t *testing.T) {
	toks := scanAll(t, "let x\n  = 5")

	if toks[0].Line != 1 || toks[1].Line != 1 {
		t.Errorf("expected tokens on line 1, got lines %d and %d", toks[0].Line, toks[1].Line)
	}

	if toks[2].Line != 2 || toks[3].Line != 2 {
		t.Errorf("expected tokens on line 2, got lines %d and %d", toks[2].Line, toks[3].Line)
	}

	pos := TextPositionOfToken(toks[1])
	if pos.StartCol != 4 || pos.EndCol != 5 {
		t.Errorf("expected `x` to span columns 4-5, got %d-%d", pos.StartCol, pos.EndCol)
	}
}

func TestScanTokenPositionsRecordedAtStart(t *testing.T) {
	// start columns are recorded as the token begins, never derived from the
	// value length: a suffixed literal's value excludes its stripped suffix
	toks := scanAll(t, "42i64")

	pos := TextPositionOfToken(toks[0])
	if pos.StartCol != 0 || pos.EndCol != 5 {
		t.Errorf("expected the literal to span columns 0-5, got %d-%d", pos.StartCol, pos.EndCol)
	}

	// likewise a tab inside a string literal displays as four columns but
	// occupies one byte of the value
	toks = scanAll(t, "\"a\tb\"")

	pos = TextPositionOfToken(toks[0])
	if pos.StartCol != 1 || pos.EndCol != 7 {
		t.Errorf("expected the literal body to span columns 1-7, got %d-%d", pos.StartCol, pos.EndCol)
	}
}
