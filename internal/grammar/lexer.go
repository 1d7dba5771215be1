package grammar

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// TokKind classifies a lexical token.
type TokKind int

const (
	TEOF TokKind = iota
	TIdent
	TInt
	TFloat
	TString
	TOp
	TPunct
	TComment
	TLet
	TIf
	TElif
	TElse
	TReturn
	TTrue
	TFalse
)

// Token is a single lexeme with its source span.
type Token struct {
	Kind TokKind
	Text string
	Pos  Pos
	Off  int
	End  int
	// Space reports whether whitespace or a comment preceded the token.
	Space bool
}

// Lexer splits Blue Arch source into tokens.
type Lexer struct {
	r   *bufio.Reader
	src strings.Builder
	Err error

	line int
	col  int
	off  int
	eof  bool

	peeked bool
	peek   lexRune

	sawSpace bool
}

type lexRune struct {
	r        rune
	line     int
	col      int
	off      int
	size     int
	nextLine int
	nextCol  int
	err      error
}

func NewLexer(rd io.Reader) *Lexer {
	return &Lexer{r: bufio.NewReader(rd), line: 1}
}

// Source returns the text consumed so far.
func (lx *Lexer) Source() string {
	return lx.src.String()
}

// All tokenizes the remaining input. The final token is always TEOF.
func (lx *Lexer) All() ([]Token, error) {
	var out []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == TEOF {
			return out, nil
		}
	}
}

// Next returns the next token.
func (lx *Lexer) Next() (Token, error) {
	if lx.Err != nil {
		return Token{}, lx.Err
	}
	for {
		r, line, col, off, err := lx.readRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				lx.Err = err
				return Token{}, err
			}
			return lx.emit(TEOF, "", Pos{Line: line, Col: col + 1}, lx.off), nil
		}
		pos := Pos{Line: line, Col: col}

		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			lx.sawSpace = true
			continue
		case r == '/' && lx.consumeIf('/'):
			text := "//" + lx.readLineTail()
			return lx.emit(TComment, text, pos, off), nil
		case r == '/' && lx.consumeIf('*'):
			body, ok := lx.readBlockComment()
			if !ok {
				return Token{}, lx.fail(pos, "*/", "end of input")
			}
			return lx.emit(TComment, "/*"+body+"*/", pos, off), nil
		case r == '"':
			text, ok := lx.readQuoted()
			if !ok {
				return Token{}, lx.fail(pos, `closing '"'`, "end of input")
			}
			return lx.emit(TString, text, pos, off), nil
		case r == '=' || r == '!' || r == '<' || r == '>':
			if lx.consumeIf('=') {
				return lx.emit(TOp, string(r)+"=", pos, off), nil
			}
			switch r {
			case '=':
				return lx.emit(TPunct, "=", pos, off), nil
			case '!':
				return Token{}, lx.fail(pos, "'!='", "'!'")
			}
			return lx.emit(TOp, string(r), pos, off), nil
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '%':
			return lx.emit(TOp, string(r), pos, off), nil
		case r == '(' || r == ')' || r == '{' || r == '}' || r == ';' || r == ':':
			return lx.emit(TPunct, string(r), pos, off), nil
		case isDigit(r):
			text, kind := lx.readNumber(r)
			return lx.emit(kind, text, pos, off), nil
		case isIdentStart(r):
			word := lx.readIdentTail(r)
			return lx.emit(keywordKind(word), word, pos, off), nil
		default:
			return Token{}, lx.fail(pos, "token", quoteRune(r))
		}
	}
}

func (lx *Lexer) emit(kind TokKind, text string, pos Pos, off int) Token {
	tok := Token{Kind: kind, Text: text, Pos: pos, Off: off, End: lx.off, Space: lx.sawSpace}
	lx.sawSpace = kind == TComment
	return tok
}

func (lx *Lexer) fail(pos Pos, expected, found string) error {
	if lx.Err != nil {
		return lx.Err
	}
	err := &Error{Pos: pos, Expected: []string{expected}, Found: found}
	lx.Err = err
	return err
}

func keywordKind(word string) TokKind {
	switch word {
	case "let":
		return TLet
	case "if":
		return TIf
	case "elif":
		return TElif
	case "else":
		return TElse
	case "return":
		return TReturn
	case "true":
		return TTrue
	case "false":
		return TFalse
	default:
		return TIdent
	}
}

// readNumber reads digits with at most one fractional part. A dot not
// followed by a digit is left for the next token.
func (lx *Lexer) readNumber(first rune) (string, TokKind) {
	var b strings.Builder
	b.WriteRune(first)
	lx.readDigits(&b)
	r, _, _, _, err := lx.peekRune()
	if err != nil || r != '.' {
		return b.String(), TInt
	}
	next, err := lx.r.Peek(1)
	if err != nil || len(next) == 0 || !isDigit(rune(next[0])) {
		return b.String(), TInt
	}
	_, _, _, _, _ = lx.readRune()
	b.WriteRune('.')
	lx.readDigits(&b)
	return b.String(), TFloat
}

func (lx *Lexer) readDigits(b *strings.Builder) {
	for {
		r, _, _, _, err := lx.peekRune()
		if err != nil || !isDigit(r) {
			return
		}
		r, _, _, _, _ = lx.readRune()
		b.WriteRune(r)
	}
}

func (lx *Lexer) readIdentTail(first rune) string {
	var b strings.Builder
	b.WriteRune(first)
	for {
		r, _, _, _, err := lx.peekRune()
		if err != nil {
			break
		}
		if !isIdentRune(r) {
			break
		}
		r, _, _, _, _ = lx.readRune()
		b.WriteRune(r)
	}
	return b.String()
}

func (lx *Lexer) readLineTail() string {
	var b strings.Builder
	for {
		r, _, _, _, err := lx.peekRune()
		if err != nil || r == '\n' {
			return b.String()
		}
		r, _, _, _, _ = lx.readRune()
		b.WriteRune(r)
	}
}

func (lx *Lexer) readBlockComment() (string, bool) {
	var b strings.Builder
	for {
		r, _, _, _, err := lx.readRune()
		if err != nil {
			return "", false
		}
		if r == '*' && lx.consumeIf('/') {
			return b.String(), true
		}
		b.WriteRune(r)
	}
}

// readQuoted returns the literal including both quotes, escapes untouched.
func (lx *Lexer) readQuoted() (string, bool) {
	var b strings.Builder
	b.WriteRune('"')
	for {
		r, _, _, _, err := lx.readRune()
		if err != nil {
			return "", false
		}
		b.WriteRune(r)
		switch r {
		case '\\':
			esc, _, _, _, err := lx.readRune()
			if err != nil {
				return "", false
			}
			b.WriteRune(esc)
		case '"':
			return b.String(), true
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r == '_':
		return true
	default:
		return false
	}
}

func isIdentRune(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}

func (lx *Lexer) consumeIf(want rune) bool {
	r, _, _, _, err := lx.peekRune()
	if err != nil {
		return false
	}
	if r != want {
		return false
	}
	_, _, _, _, _ = lx.readRune()
	return true
}

func (lx *Lexer) readRune() (rune, int, int, int, error) {
	var pr lexRune
	if lx.peeked {
		pr = lx.peek
		lx.peeked = false
	} else {
		pr = lx.readRawRune()
	}
	lx.line = pr.nextLine
	lx.col = pr.nextCol
	if pr.err == nil {
		lx.off += pr.size
		lx.src.WriteRune(pr.r)
	} else if !errors.Is(pr.err, io.EOF) {
		lx.Err = pr.err
	}
	return pr.r, pr.line, pr.col, pr.off, pr.err
}

func (lx *Lexer) peekRune() (rune, int, int, int, error) {
	if lx.peeked {
		return lx.peek.r, lx.peek.line, lx.peek.col, lx.peek.off, lx.peek.err
	}
	lx.peek = lx.readRawRune()
	lx.peeked = true
	return lx.peek.r, lx.peek.line, lx.peek.col, lx.peek.off, lx.peek.err
}

func (lx *Lexer) readRawRune() lexRune {
	r, size, err := lx.r.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			lx.eof = true
		}
		return lexRune{r: 0, err: err, line: lx.line, col: lx.col, off: lx.off, nextLine: lx.line, nextCol: lx.col}
	}
	line := lx.line
	col := lx.col + 1
	if r == utf8.RuneError && size == 1 {
		err := &Error{Pos: Pos{Line: line, Col: col}, Expected: []string{"UTF-8 text"}, Found: "invalid byte"}
		return lexRune{err: err, line: line, col: col, off: lx.off, nextLine: line, nextCol: lx.col}
	}
	nextLine := line
	nextCol := col
	if r == '\n' {
		nextLine = line + 1
		nextCol = 0
	}
	return lexRune{r: r, line: line, col: col, off: lx.off, size: size, nextLine: nextLine, nextCol: nextCol}
}

// EOF reports whether the lexer has reached end of input.
func (lx *Lexer) EOF() bool {
	return lx.eof
}
