package typing

import "testing"

func TestFromName(t *testing.T) {
	cases := map[string]Scalar{
		"i32":    I32,
		"i64":    I64,
		"f32":    F32,
		"f64":    F64,
		"bool":   Bool,
		"string": Str,
	}

	for name, scalar := range cases {
		got, ok := FromName(name)
		if !ok || got != scalar {
			t.Errorf("FromName(%q) = %v, %v", name, got, ok)
		}

		if got.String() != name {
			t.Errorf("expected %v.String() = %q, got %q", got, name, got.String())
		}
	}

	if _, ok := FromName("void"); ok {
		t.Error("`void` is not a value type")
	}

	if _, ok := FromName("u8"); ok {
		t.Error("expected unknown type names to be rejected")
	}
}

func TestScalarPredicates(t *testing.T) {
	for _, s := range []Scalar{I32, I64, F32, F64} {
		if !s.IsNumeric() {
			t.Errorf("expected %v to be numeric", s)
		}
	}

	if !I64.IsInteger() || F32.IsInteger() {
		t.Error("integer predicate mismatch")
	}

	if !F64.IsFloat() || Bool.IsFloat() {
		t.Error("float predicate mismatch")
	}

	if Bool.IsNumeric() || Str.IsNumeric() {
		t.Error("bool and string are not numeric")
	}
}

func TestFormatSpecs(t *testing.T) {
	cases := map[Scalar]string{
		I32:  "%d",
		I64:  "%lld",
		F32:  "%.2f",
		F64:  "%.2lf",
		Bool: "",
		Str:  "",
	}

	for scalar, spec := range cases {
		if got := scalar.FormatSpec(); got != spec {
			t.Errorf("expected %v format spec %q, got %q", scalar, spec, got)
		}
	}
}
