package grammar

import (
	"errors"
	"strings"
	"testing"
)

type tokPair struct {
	kind TokKind
	text string
}

func lexPairs(t *testing.T, input string) []tokPair {
	t.Helper()
	toks, err := NewLexer(strings.NewReader(input)).All()
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	var out []tokPair
	for _, tok := range toks {
		out = append(out, tokPair{kind: tok.Kind, text: tok.Text})
	}
	return out
}

func assertTokens(t *testing.T, input string, want []tokPair) {
	t.Helper()
	got := lexPairs(t, input)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %d (%v), want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d mismatch: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerOperators(t *testing.T) {
	assertTokens(t, "a>=b==c!=d<=e<f>g", []tokPair{
		{TIdent, "a"}, {TOp, ">="}, {TIdent, "b"}, {TOp, "=="}, {TIdent, "c"},
		{TOp, "!="}, {TIdent, "d"}, {TOp, "<="}, {TIdent, "e"}, {TOp, "<"},
		{TIdent, "f"}, {TOp, ">"}, {TIdent, "g"}, {TEOF, ""},
	})
}

func TestLexerAssign(t *testing.T) {
	assertTokens(t, "let x: int = 1 % 2;\n", []tokPair{
		{TLet, "let"}, {TIdent, "x"}, {TPunct, ":"}, {TIdent, "int"}, {TPunct, "="},
		{TInt, "1"}, {TOp, "%"}, {TInt, "2"}, {TPunct, ";"}, {TEOF, ""},
	})
}

func TestLexerNumbers(t *testing.T) {
	assertTokens(t, "12 3.25 007", []tokPair{
		{TInt, "12"}, {TFloat, "3.25"}, {TInt, "007"}, {TEOF, ""},
	})
}

func TestLexerKeywords(t *testing.T) {
	assertTokens(t, "if elif else return true false lettuce", []tokPair{
		{TIf, "if"}, {TElif, "elif"}, {TElse, "else"}, {TReturn, "return"},
		{TTrue, "true"}, {TFalse, "false"}, {TIdent, "lettuce"}, {TEOF, ""},
	})
}

func TestLexerString(t *testing.T) {
	assertTokens(t, `"a \"b\" c" x`, []tokPair{
		{TString, `"a \"b\" c"`}, {TIdent, "x"}, {TEOF, ""},
	})
}

func TestLexerComments(t *testing.T) {
	assertTokens(t, "a // line\n/* block\n */ b", []tokPair{
		{TIdent, "a"}, {TComment, "// line"}, {TComment, "/* block\n */"}, {TIdent, "b"}, {TEOF, ""},
	})
}

func TestLexerPositions(t *testing.T) {
	toks, err := NewLexer(strings.NewReader("a\n  bc")).All()
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	if toks[1].Pos != (Pos{Line: 2, Col: 3}) {
		t.Fatalf("unexpected position: %+v", toks[1].Pos)
	}
	if toks[1].Off != 4 || toks[1].End != 6 {
		t.Fatalf("unexpected offsets: %d..%d", toks[1].Off, toks[1].End)
	}
	if !toks[1].Space {
		t.Fatalf("expected Space before second token")
	}
}

func TestLexerErrors(t *testing.T) {
	for _, input := range []string{`"open`, "/* open", "a ! b", "a @ b", "4.x"} {
		_, err := NewLexer(strings.NewReader(input)).All()
		var gerr *Error
		if !errors.As(err, &gerr) {
			t.Fatalf("%q: expected *Error, got %v", input, err)
		}
	}
}

func TestLexerInvalidUTF8(t *testing.T) {
	cases := []struct {
		input string
		pos   Pos
	}{
		{"\"\xff\"", Pos{Line: 1, Col: 2}},
		{"let s = \"\xff\"; let abc = 1", Pos{Line: 1, Col: 10}},
		{"ab\xff", Pos{Line: 1, Col: 3}},
		{"// \xff", Pos{Line: 1, Col: 4}},
		{"/* \xff */", Pos{Line: 1, Col: 4}},
		{"x\n\xff", Pos{Line: 2, Col: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			_, err := NewLexer(strings.NewReader(tc.input)).All()
			var gerr *Error
			if !errors.As(err, &gerr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if gerr.Found != "invalid byte" || gerr.Pos != tc.pos {
				t.Fatalf("expected invalid byte at %+v, got %v", tc.pos, err)
			}
		})
	}
}

func TestLexerOffsetsFollowMultibyteText(t *testing.T) {
	lx := NewLexer(strings.NewReader("let s = \"é✓\"; abcdef + 1"))
	toks, err := lx.All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src := lx.Source()
	for _, tok := range toks {
		if got := src[tok.Off:tok.End]; got != tok.Text {
			t.Fatalf("token %q spans %q", tok.Text, got)
		}
	}
}
