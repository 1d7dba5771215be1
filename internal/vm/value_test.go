package vm

import "testing"

func TestParseLiteral(t *testing.T) {
	cases := []struct {
		text string
		want Value
	}{
		{"7", Int(7)},
		{"-3", Int(-3)},
		{"1.5", Float(1.5)},
		{"true", Bool(true)},
		{"false", Bool(false)},
		{`"a\tb"`, Str("a\tb")},
		{`"\q"`, Str(`\q`)},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, ok := ParseLiteral(tc.text)
			if !ok {
				t.Fatalf("ParseLiteral(%q) failed", tc.text)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
	for _, bad := range []string{"", "1x", "123456789012345678901234567890", `"open`} {
		if v, ok := ParseLiteral(bad); ok {
			t.Fatalf("ParseLiteral(%q) = %v, expected failure", bad, v)
		}
	}
}

func TestValueString(t *testing.T) {
	cases := map[string]Value{
		"42":   Int(42),
		"0.5":  Float(0.5),
		"true": Bool(true),
		`"hi"`: Str("hi"),
	}
	for want, v := range cases {
		if got := v.String(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestEnvStoreUpdatesNearestBinding(t *testing.T) {
	global := NewEnv(nil)
	global.Set("a", Int(1))
	child := NewEnv(global)
	child.Store("a", Int(2))
	child.Store("b", Int(3))
	if v, _ := global.Get("a"); v != Int(2) {
		t.Fatalf("expected global a=2, got %v", v)
	}
	if _, ok := global.Get("b"); ok {
		t.Fatalf("expected b to stay local")
	}
	if v, ok := child.Get("b"); !ok || v != Int(3) {
		t.Fatalf("expected child b=3, got %v", v)
	}
}
