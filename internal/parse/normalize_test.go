package parse

import "testing"

func sampleTrees() []Node {
	return []Node{
		&Assign{Ident: I("a"), Value: C("1")},
		&Assign{Ident: I("a"), Type: I("int"), Value: E(C("1"), OpAdd, I("b"))},
		&SetValue{Ident: I("a"), Value: I("b")},
		&ReturnBlock{Value: C("1")},
		&If{
			Cond: I("x"),
			Then: &Block{Nodes: []Node{&Assign{Ident: I("y"), Value: I("x")}}},
			Elifs: []Node{
				&Elif{Cond: C("true"), Block: &Block{}},
			},
			Else: &Else{Block: &Block{Nodes: []Node{&ReturnBlock{Value: C("2")}}}},
		},
		&Program{Nodes: []Node{
			&Block{Nodes: []Node{&If{Cond: E(I("a"), OpLt, C("3")), Then: &Block{}}}},
			E(E(C("1"), OpMul, C("2")), OpMod, C("3")),
		}},
		C("7"),
		F("2"),
		I("q"),
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, tree := range sampleTrees() {
		once := Normalize(tree)
		twice := Normalize(once)
		if !Equal(once, twice) {
			t.Fatalf("normalize not idempotent for %s:\n once %#v\ntwice %#v", Format(tree), once, twice)
		}
	}
}

func TestNormalizeWrapsValueSlots(t *testing.T) {
	for _, tree := range sampleTrees() {
		checkValueSlots(t, Normalize(tree))
	}
}

func checkValueSlots(t *testing.T, n Node) {
	t.Helper()
	switch n := n.(type) {
	case *Assign:
		if n.Value.Kind() != KExpr {
			t.Fatalf("assign value is %s, want Expr", n.Value.Kind())
		}
	case *If:
		if n.Cond.Kind() != KExpr {
			t.Fatalf("if condition is %s, want Expr", n.Cond.Kind())
		}
	case *Elif:
		if n.Cond.Kind() != KExpr {
			t.Fatalf("elif condition is %s, want Expr", n.Cond.Kind())
		}
	}
	for _, child := range Children(n) {
		checkValueSlots(t, child)
	}
}

func TestNormalizeLeavesOtherSlots(t *testing.T) {
	got := Normalize(&SetValue{Ident: I("a"), Value: C("1")})
	if !Equal(got, &SetValue{Ident: I("a"), Value: C("1")}) {
		t.Fatalf("set value should not be wrapped: %#v", got)
	}
	got = Normalize(&ReturnBlock{Value: I("r")})
	if !Equal(got, &ReturnBlock{Value: I("r")}) {
		t.Fatalf("return value should not be wrapped: %#v", got)
	}
}

func TestNormalizeDoesNotAlias(t *testing.T) {
	in := &Assign{Ident: I("a"), Value: E(C("1"), OpAdd, C("2"))}
	out := Normalize(in).(*Assign)
	out.Value.(*Expr).Left.(*Constant).Text = "9"
	if in.Value.(*Expr).Left.(*Constant).Text != "1" {
		t.Fatalf("normalized tree shares nodes with its input")
	}
}

func TestNormalizeKeepsFloatConstants(t *testing.T) {
	got := Normalize(&Assign{Ident: I("a"), Value: F("2")})
	want := &Assign{Ident: I("a"), Value: Wrap(F("2"))}
	if !Equal(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}
