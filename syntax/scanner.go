package syntax

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/LiterallyKirby/Magolor/logging"
)

// NewScanner creates a scanner for the given file
func NewScanner(fpath string, lctx *logging.LogContext) (*Scanner, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, &logging.ConfigError{Kind: "File", Message: "error opening file: " + err.Error()}
	}

	return &Scanner{fh: f, file: bufio.NewReader(f), fpath: fpath, line: 1, lctx: lctx}, nil
}

// NewScannerFromSource creates a scanner reading directly from a source text
// buffer (used for in-memory compilation and testing)
func NewScannerFromSource(src string, lctx *logging.LogContext) *Scanner {
	return &Scanner{file: bufio.NewReader(strings.NewReader(src)), line: 1, lctx: lctx}
}

// IsLetter tests if a rune is an ASCII letter
func IsLetter(r rune) bool {
	return r > '`' && r < '{' || r > '@' && r < '['
}

// IsDigit tests if a rune is an ASCII digit
func IsDigit(r rune) bool {
	return r > '/' && r < ':'
}

// Scanner works like an io.Reader for a source buffer (outputting tokens)
type Scanner struct {
	lctx *logging.LogContext

	fh    *os.File
	file  *bufio.Reader
	fpath string

	line int
	col  int

	// startCol is the column count immediately before the first character of
	// the token currently being built; it is what makes caret positioning
	// correct in the presence of tabs
	startCol int

	tokBuilder strings.Builder

	curr rune
}

// ScanAll reads every token from the stream, appending a final EOF token.  It
// stops and returns the first scan error it encounters.
func (s *Scanner) ScanAll() ([]*Token, error) {
	var toks []*Token
	for {
		tok, err := s.ReadToken()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

// ReadToken reads a single token from the stream.  At the end of input it
// yields an EOF token; any malformed or unrecognized input produces an error
// identifying the offending span.
func (s *Scanner) ReadToken() (*Token, error) {
	for s.readNext() {
		var tok *Token
		malformed := false

		switch s.curr {
		// consume and discard all whitespace (and other non-meaningful
		// characters eg. BOM, form-feeds)
		case ' ', '\t', '\n', '\r', '\f', '\v', 65279:
			// line counting handled in readNext
			s.tokBuilder.Reset()
			continue
		// handle string literals; no escape-sequence processing
		case '"':
			// trim off leading `"`
			s.tokBuilder.Reset()
			tok, malformed = s.readStringLiteral()
		case '/':
			if ahead, more := s.peek(); more && ahead == '/' {
				s.skipLineComment()
				s.tokBuilder.Reset()
				continue
			}

			malformed = true
		default:
			if IsLetter(s.curr) || s.curr == '_' {
				tok = s.readWord()
			} else if IsDigit(s.curr) {
				tok = s.readNumberLiteral()
			} else if s.curr == '!' {
				// `!` only occurs as the head of `!=`; there is no bare
				// negation operator
				if ahead, more := s.peek(); more && ahead == '=' {
					s.readNext()
					tok = s.getToken(NEQ)
				} else {
					malformed = true
				}
			} else if kind, ok := symbolPatterns[string(s.curr)]; ok {
				// all compound tokens begin with valid single tokens so the
				// check above will match the start of any symbolic token

				// keep reading as long as our lookahead extends the match
				for ahead, more := s.peek(); more; ahead, more = s.peek() {
					if skind, ok := symbolPatterns[s.tokBuilder.String()+string(ahead)]; ok {
						kind = skind
						s.readNext()
					} else {
						break
					}
				}

				tok = s.getToken(kind)
			} else {
				// any other character is unrecognized input which must be
				// reported, never silently dropped
				malformed = true
			}
		}

		if malformed {
			span := s.tokBuilder.String()
			s.tokBuilder.Reset()
			return nil, logging.NewCompileError(
				s.lctx,
				fmt.Sprintf("unrecognized or malformed token: `%s`", span),
				logging.LMKToken,
				&logging.TextPosition{StartLn: s.line, StartCol: s.startCol, EndLn: s.line, EndCol: s.col},
			)
		}

		s.tokBuilder.Reset()
		return tok, nil
	}

	return s.makeToken(EOF, ""), nil
}

// Context returns the scanner's log context
func (s *Scanner) Context() *logging.LogContext {
	return s.lctx
}

// Close closes the open file handle the scanner is processing, if any
func (s *Scanner) Close() error {
	if s.fh != nil {
		return s.fh.Close()
	}

	return nil
}

// create a token at the current position from the provided data
func (s *Scanner) makeToken(kind int, value string) *Token {
	start := s.startCol
	if value == "" {
		// zero-width tokens (EOF, the empty string literal) begin where they
		// end
		start = s.col
	}

	return &Token{Kind: kind, Value: value, Line: s.line, StartCol: start, Col: s.col}
}

// collect the contents of the token builder into a string and create a token
// at the current position with the provided kind and token string as its value
func (s *Scanner) getToken(kind int) *Token {
	return s.makeToken(kind, s.tokBuilder.String())
}

// reads a rune from the stream into the token builder and returns whether or
// not there are more runes to be read (true = no EOF, false = EOF)
func (s *Scanner) readNext() bool {
	r, _, err := s.file.ReadRune()
	if err != nil {
		if err != io.EOF {
			logging.LogConfigError("File", fmt.Sprintf("error reading %s: %s", s.fpath, err.Error()))
		}

		return false
	}

	// do line and column counting after the newline has been processed (so as
	// to avoid positioning errors)
	if s.curr == '\n' {
		s.line++
		s.col = 0
	}

	// the first rune of a token fixes its start column before the column
	// counter moves past it
	if s.tokBuilder.Len() == 0 {
		s.startCol = s.col
	}

	s.tokBuilder.WriteRune(r)
	s.curr = r

	if r == '\t' {
		// tabs count as four columns for display purposes
		s.col += 4
	} else {
		s.col++
	}

	return true
}

// same behavior as readNext but doesn't populate the token builder; used for
// comments and stripped literal suffixes
func (s *Scanner) skipNext() bool {
	r, _, err := s.file.ReadRune()
	if err != nil {
		return false
	}

	if s.curr == '\n' {
		s.line++
		s.col = 0
	}

	s.curr = r
	s.col++
	return true
}

// peek a rune ahead on the scanner (used to find token boundaries)
func (s *Scanner) peek() (rune, bool) {
	r, _, err := s.file.ReadRune()
	if err != nil {
		return 0, false
	}

	s.file.UnreadRune()
	return r, true
}

// peekBytes looks at most n bytes ahead without consuming them.  Literal
// suffixes are plain ASCII so byte-level lookahead suffices.
func (s *Scanner) peekBytes(n int) []byte {
	b, _ := s.file.Peek(n)
	return b
}

// reads an identifier, keyword, or boolean literal from the input stream
func (s *Scanner) readWord() *Token {
	for {
		c, more := s.peek()
		if !more || !IsLetter(c) && !IsDigit(c) && c != '_' {
			break
		}

		s.readNext()
	}

	tokValue := s.tokBuilder.String()

	// `true`/`false` are tokenized as boolean literals before the generic
	// keyword and identifier rules apply
	if tokValue == "true" || tokValue == "false" {
		return s.makeToken(BOOLLIT, tokValue)
	}

	// keyword matching is whole-word: the type keywords carry digits (`i32`,
	// `f64`, ...) so partial words like `trueish` or `_if` fall through to
	// identifiers naturally
	if kind, ok := keywordPatterns[tokValue]; ok {
		return s.makeToken(kind, tokValue)
	}

	return s.makeToken(IDENTIFIER, tokValue)
}

// read in a numeric literal, resolving the width suffix if one is present.
// Disambiguation: a dotted numeral followed by `f32`/`f64` takes that float
// width with the suffix stripped; a dotted numeral with no suffix defaults to
// the 32-bit float kind; a run of digits followed by `i64` takes the 64-bit
// integer kind with the suffix stripped; bare digits default to 32-bit.
func (s *Scanner) readNumberLiteral() *Token {
	isFloat := false

	for {
		ahead, more := s.peek()
		if !more {
			break
		}

		if IsDigit(ahead) {
			s.readNext()
			continue
		}

		// only consume a dot when a fraction actually follows it; a trailing
		// `.` belongs to the next token
		if ahead == '.' && !isFloat {
			b := s.peekBytes(2)
			if len(b) == 2 && IsDigit(rune(b[1])) {
				isFloat = true
				s.readNext()
				continue
			}
		}

		break
	}

	if isFloat {
		if s.matchSuffix("f64") {
			return s.getToken(DOUBLELIT)
		}

		// explicit `f32` and the suffixless default share a kind: both are
		// 32-bit floats
		s.matchSuffix("f32")
		return s.getToken(FLOATLIT)
	}

	if s.matchSuffix("i64") {
		return s.getToken(LONGLIT)
	}

	return s.getToken(INTLIT)
}

// matchSuffix consumes the given literal suffix if it is next in the stream
// and ends at a token boundary.  The suffix is stripped: it never enters the
// token builder.
func (s *Scanner) matchSuffix(suffix string) bool {
	b := s.peekBytes(len(suffix) + 1)
	if len(b) < len(suffix) || string(b[:len(suffix)]) != suffix {
		return false
	}

	// a letter, digit, or underscore directly after would make this an
	// identifier boundary violation, not a suffix
	if len(b) > len(suffix) {
		next := rune(b[len(suffix)])
		if IsLetter(next) || IsDigit(next) || next == '_' {
			return false
		}
	}

	for range suffix {
		s.skipNext()
	}

	return true
}

// read in a string literal -- assuming the leading `"` has been dropped
func (s *Scanner) readStringLiteral() (*Token, bool) {
	// use a lookahead pattern to avoid reading the closing quote
	for next, ok := s.peek(); ok; next, ok = s.peek() {
		switch next {
		case '"':
			// we don't want the closing quote in the token value, so we make
			// our string token and then skip it (so the column is right)
			tok := s.getToken(STRINGLIT)
			s.skipNext()
			return tok, false
		case '\n':
			// strings may not span lines
			return nil, true
		default:
			s.readNext()
		}
	}

	// no closing quote before the end of input: unterminated strings are a
	// scan failure, never silently accepted
	return nil, true
}

func (s *Scanner) skipLineComment() {
	for s.skipNext() && s.curr != '\n' {
	}
}
