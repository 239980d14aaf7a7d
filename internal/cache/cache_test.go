package cache

import (
	"testing"

	"shadereval/internal/composite"
	"shadereval/internal/literal"
	"shadereval/internal/parser"
	"shadereval/internal/values"
)

func TestKeyIsStableAndSensitiveToInputs(t *testing.T) {
	k1 := Key("-3 + 5", "")
	k2 := Key("-3 + 5", "")
	if k1 != k2 {
		t.Error("Key should be deterministic for identical inputs")
	}
	if Key("-3 + 5", "x=1") == k1 {
		t.Error("Key should change when the environment fingerprint changes")
	}
	if Key("1 + 1", "") == k1 {
		t.Error("Key should change when the source changes")
	}
}

func TestOpenCreatesSchemaAndRoundTripsAConstEntry(t *testing.T) {
	c, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	key := Key("-3 + 5", "")
	if _, ok, err := c.Lookup(key); err != nil || ok {
		t.Fatalf("expected a cache miss before any Store, got ok=%v err=%v", ok, err)
	}

	v := composite.FromBase(values.ScalarValue(values.I32Elem(2)))
	if err := c.StoreConst(key, "-3 + 5", v); err != nil {
		t.Fatalf("StoreConst: %v", err)
	}

	entry, ok, err := c.Lookup(key)
	if err != nil || !ok {
		t.Fatalf("expected a cache hit after Store, got ok=%v err=%v", ok, err)
	}
	if !entry.IsConst {
		t.Error("stored entry should report IsConst")
	}
}

func TestPrintExprRoundTripsParsedSource(t *testing.T) {
	expr, err := parser.Parse("1 + 2 * 3")
	if err != nil {
		t.Fatal(err)
	}
	got := literal.Print(expr)
	want := "(1 + (2 * 3))"
	if got != want {
		t.Errorf("literal.Print = %q, want %q", got, want)
	}
}
