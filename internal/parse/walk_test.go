package parse

import (
	"reflect"
	"testing"
)

func TestKindsPreorder(t *testing.T) {
	n := mustParseOne(t, "let a: int = b + 1")
	got := KindsPreorder(n)
	want := []Kind{KAssign, KIdentifier, KIdentifier, KExpr, KIdentifier, KConstant}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected kinds: %v", got)
	}
}

func TestFindFirstKind(t *testing.T) {
	n := mustParseOne(t, "if a { b = 1 } else { return 2 }")
	found := FindFirstKind(n, KReturnBlock)
	if found == nil || Format(found) != "return 2;" {
		t.Fatalf("unexpected node: %v", found)
	}
	if FindFirstKind(n, KAssign) != nil {
		t.Fatalf("expected no assign")
	}
}
