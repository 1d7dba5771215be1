package compile

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"hare/internal/parse"
)

func compileSource(t *testing.T, src string) []ByteCode {
	t.Helper()
	prog, err := parse.ParseProgram(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	code, err := Compile(prog)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	return code
}

func assertCode(t *testing.T, got, want []ByteCode) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected code:\n got:\n%s\nwant:\n%s", Dump(got), Dump(want))
	}
}

func TestCompileAdd(t *testing.T) {
	assertCode(t, compileSource(t, "1 + 2;"), []ByteCode{
		New(Push, "1"), New(Push, "2"), New(Add),
	})
}

func TestCompilePrecedence(t *testing.T) {
	assertCode(t, compileSource(t, "1 + 2 * 3;"), []ByteCode{
		New(Push, "1"), New(Push, "2"), New(Push, "3"), New(Mul), New(Add),
	})
}

func TestCompileOperators(t *testing.T) {
	cases := []struct {
		src string
		op  OpCode
	}{
		{"a + b", Add}, {"a - b", Sub}, {"a * b", Mul}, {"a / b", Div}, {"a % b", Mod},
		{"a == b", Eq}, {"a != b", Neq}, {"a > b", Gt}, {"a >= b", Gte}, {"a < b", Lt}, {"a <= b", Lte},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assertCode(t, compileSource(t, tc.src), []ByteCode{
				New(LoadName, "a"), New(LoadName, "b"), New(tc.op),
			})
		})
	}
}

func TestCompileLeftFold(t *testing.T) {
	assertCode(t, compileSource(t, "10 - 4 - 3"), []ByteCode{
		New(Push, "10"), New(Push, "4"), New(Sub), New(Push, "3"), New(Sub),
	})
}

func TestCompileDegenerateExpr(t *testing.T) {
	code, err := Compile(parse.Wrap(parse.I("x")))
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	assertCode(t, code, []ByteCode{New(LoadName, "x")})
}

func TestCompileAssign(t *testing.T) {
	assertCode(t, compileSource(t, "let a: int = 1 + b; a = a * 2"), []ByteCode{
		New(Push, "1"), New(LoadName, "b"), New(Add), New(StoreName, "a", "int"),
		New(LoadName, "a"), New(Push, "2"), New(Mul), New(StoreName, "a"),
	})
}

func TestCompileBlock(t *testing.T) {
	assertCode(t, compileSource(t, "{ let a = 1 { return a } }"), []ByteCode{
		New(MakeSection, "00000000"),
		New(Push, "1"), New(StoreName, "a"),
		New(MakeSection, "00000001"),
		New(LoadName, "a"), New(Return),
		New(EndMakeSection),
		New(Jump, "00000001"),
		New(Return),
		New(EndMakeSection),
		New(Jump, "00000000"),
	})
}

func TestCompileEmptyBlock(t *testing.T) {
	assertCode(t, compileSource(t, "{}"), []ByteCode{
		New(MakeSection, "00000000"), New(Return), New(EndMakeSection), New(Jump, "00000000"),
	})
}

func TestCompileIfChain(t *testing.T) {
	src := "if a > 1 { return 1 } elif a < 0 { return 2 } else { return 3 }"
	assertCode(t, compileSource(t, src), []ByteCode{
		New(MakeSection, "00000000"), New(Push, "1"), New(Return), New(EndMakeSection),
		New(MakeSection, "00000001"), New(Push, "2"), New(Return), New(EndMakeSection),
		New(MakeSection, "00000002"), New(Push, "3"), New(Return), New(EndMakeSection),
		New(MakeSection, "00000003"),
		New(LoadName, "a"), New(Push, "1"), New(Gt), New(JumpIf, "00000000"),
		New(LoadName, "a"), New(Push, "0"), New(Lt), New(JumpIf, "00000001"),
		New(Jump, "00000002"),
		New(Return),
		New(EndMakeSection),
		New(Jump, "00000003"),
	})
}

func TestCompileIfWithoutElse(t *testing.T) {
	assertCode(t, compileSource(t, "if ok { x = 1 }"), []ByteCode{
		New(MakeSection, "00000000"), New(Push, "1"), New(StoreName, "x"), New(Return), New(EndMakeSection),
		New(MakeSection, "00000001"),
		New(LoadName, "ok"), New(JumpIf, "00000000"),
		New(Return),
		New(EndMakeSection),
		New(Jump, "00000001"),
	})
}

func TestCompileSectionNamesAreDeterministic(t *testing.T) {
	src := "if a { {} } else { {} }"
	first := compileSource(t, src)
	second := compileSource(t, src)
	assertCode(t, first, second)
	seen := map[string]bool{}
	for _, ins := range first {
		if ins.Op != MakeSection {
			continue
		}
		if seen[ins.Args[0]] {
			t.Fatalf("section %s defined twice", ins.Args[0])
		}
		seen[ins.Args[0]] = true
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(seen))
	}
}

func TestCompileSharedCompilerKeepsCounting(t *testing.T) {
	c := NewCompiler()
	for _, want := range []string{"00000000", "00000001"} {
		code, err := c.Compile(&parse.Block{})
		if err != nil {
			t.Fatalf("Compile returned error: %v", err)
		}
		if code[0].Args[0] != want {
			t.Fatalf("expected section %s, got %s", want, code[0].Args[0])
		}
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name string
		n    parse.Node
	}{
		{name: "missing_right", n: &parse.Expr{Left: parse.C("1"), Op: parse.OpAdd}},
		{name: "nested_missing_right", n: &parse.Program{Nodes: []parse.Node{
			parse.C("1"),
			&parse.Assign{Ident: parse.I("a"), Value: &parse.Expr{Left: parse.C("1"), Op: parse.OpMul}},
		}}},
		{name: "nil", n: nil},
		{name: "empty", n: &parse.Empty{}},
		{name: "elif", n: &parse.Elif{Cond: parse.Wrap(parse.I("a")), Block: &parse.Block{}}},
		{name: "else", n: &parse.Else{Block: &parse.Block{}}},
		{name: "assign_target", n: &parse.Assign{Ident: parse.C("1"), Value: parse.Wrap(parse.C("2"))}},
		{name: "if_body", n: &parse.If{Cond: parse.Wrap(parse.I("a")), Then: parse.C("1")}},
		{name: "if_elif", n: &parse.If{Cond: parse.Wrap(parse.I("a")), Then: &parse.Block{}, Elifs: []parse.Node{&parse.Block{}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, err := Compile(tc.n)
			var cerr *CompileError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *CompileError, got %v", err)
			}
			if code != nil {
				t.Fatalf("expected no code on error, got %v", code)
			}
		})
	}
}

func TestDump(t *testing.T) {
	got := Dump(compileSource(t, `{ let s = "hi" }`))
	want := strings.Join([]string{
		`MakeSection "00000000"`,
		`    Push "\"hi\""`,
		`    StoreName "s"`,
		`    Return`,
		`EndMakeSection`,
		`Jump "00000000"`,
	}, "\n") + "\n"
	if got != want {
		t.Fatalf("unexpected dump:\n%s", got)
	}
}

func TestCompileFloatConstant(t *testing.T) {
	got := compileSource(t, "2.0 / 4 + 1.5")
	want := []ByteCode{
		New(Push, "2", "float"),
		New(Push, "4"),
		New(Div),
		New(Push, "1.5", "float"),
		New(Add),
	}
	assertCode(t, got, want)
}
