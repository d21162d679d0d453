package coerce

import (
	"testing"
)

// coerceJSON decodes input, coerces it, and returns the serialized result.
func coerceJSON(t *testing.T, input string) string {
	t.Helper()
	v, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode(%q) error: %v", input, err)
	}
	out, err := Coerce(v).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	return string(out)
}

func TestCoerce_LeavesBecomeStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{`null`, `""`},
		{`"x"`, `"x"`},
		{`1`, `"1"`},
		{`1e3`, `"1e3"`},
		{`true`, `"true"`},
		{`false`, `"false"`},
		{`{"a":1,"b":null,"c":[true,"x"]}`, `{"a":"1","b":"","c":["true","x"]}`},
		{`[null,0,""]`, `["","0",""]`},
		{`{"outer":{"inner":{"deep":3.14}}}`, `{"outer":{"inner":{"deep":"3.14"}}}`},
	}
	for _, tt := range tests {
		if got := coerceJSON(t, tt.input); got != tt.want {
			t.Errorf("coerce(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestCoerce_PreservesShape(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"z":[1,2,3],"a":{"y":null,"b":true}}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	out := Coerce(v)

	if len(out.Members) != 2 || out.Members[0].Key != "z" || out.Members[1].Key != "a" {
		t.Fatalf("object key order changed: %+v", out.Members)
	}
	if len(out.Members[0].Value.Elems) != 3 {
		t.Errorf("array length changed: %d, want 3", len(out.Members[0].Value.Elems))
	}
	inner := out.Members[1].Value
	if len(inner.Members) != 2 || inner.Members[0].Key != "y" || inner.Members[1].Key != "b" {
		t.Errorf("nested key order changed: %+v", inner.Members)
	}
}

func TestCoerce_EveryLeafIsString(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"a":[null,1,true,"s",{"b":2.5,"c":[false]}]}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	assertStringLeaves(t, Coerce(v))
}

func assertStringLeaves(t *testing.T, v Value) {
	t.Helper()
	switch v.Kind {
	case String:
	case Array:
		for _, elem := range v.Elems {
			assertStringLeaves(t, elem)
		}
	case Object:
		for _, m := range v.Members {
			assertStringLeaves(t, m.Value)
		}
	default:
		t.Errorf("non-string leaf survived coercion: kind %d", v.Kind)
	}
}

func TestCoerce_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"a":1,"b":null,"c":[true,"x"]}`,
		`[[[]]]`,
		`null`,
		`{"nested":{"deep":[1,2,{"deeper":null}]}}`,
	}
	for _, input := range inputs {
		v, err := Decode([]byte(input))
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		once, err := Coerce(v).MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON error: %v", err)
		}
		twice, err := Coerce(Coerce(v)).MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON error: %v", err)
		}
		if string(once) != string(twice) {
			t.Errorf("coerce not idempotent on %s: %s vs %s", input, once, twice)
		}
	}
}
