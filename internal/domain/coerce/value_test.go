package coerce

import (
	"testing"
)

// roundTrip decodes and re-encodes input, failing the test on any error.
func roundTrip(t *testing.T, input string) string {
	t.Helper()
	v, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode(%q) error: %v", input, err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	return string(out)
}

func TestDecode_PreservesKeyOrder(t *testing.T) {
	t.Parallel()

	input := `{"zebra":1,"alpha":2,"mike":3}`
	if got := roundTrip(t, input); got != input {
		t.Errorf("round trip = %s, want %s", got, input)
	}
}

func TestDecode_PreservesNumberLiterals(t *testing.T) {
	t.Parallel()

	for _, input := range []string{`1e3`, `0.5000`, `-0`, `123456789012345678901234567890`} {
		if got := roundTrip(t, input); got != input {
			t.Errorf("round trip = %s, want %s", got, input)
		}
	}
}

func TestDecode_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		kind  Kind
	}{
		{`null`, Null},
		{`"hi"`, String},
		{`42`, Number},
		{`true`, Bool},
		{`[]`, Array},
		{`{}`, Object},
	}
	for _, tt := range tests {
		v, err := Decode([]byte(tt.input))
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", tt.input, err)
		}
		if v.Kind != tt.kind {
			t.Errorf("Decode(%q).Kind = %d, want %d", tt.input, v.Kind, tt.kind)
		}
	}
}

func TestDecode_EmptyInputIsEmptyObject(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "\n\t"} {
		v, err := Decode([]byte(input))
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", input, err)
		}
		if v.Kind != Object || len(v.Members) != 0 {
			t.Errorf("Decode(%q) = %+v, want empty object", input, v)
		}
	}
}

func TestDecode_RejectsMalformedInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{`{`, `{"a":}`, `[1,`, `"unterminated`, `{"a":1} extra`, `1 2`} {
		if _, err := Decode([]byte(input)); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", input)
		}
	}
}

func TestDecode_NestedStructures(t *testing.T) {
	t.Parallel()

	input := `{"a":{"b":[{"c":null},"x",[1,true]]},"d":"y"}`
	if got := roundTrip(t, input); got != input {
		t.Errorf("round trip = %s, want %s", got, input)
	}
}

func TestMarshalJSON_EscapesStrings(t *testing.T) {
	t.Parallel()

	input := `{"ke\"y":"va\"lue\n"}`
	v, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	// Re-decode to prove the output is valid JSON with the same content.
	v2, err := Decode(out)
	if err != nil {
		t.Fatalf("re-Decode error: %v", err)
	}
	if v2.Members[0].Key != v.Members[0].Key || v2.Members[0].Value.Str != v.Members[0].Value.Str {
		t.Errorf("escaping lost content: %q vs %q", v2.Members[0].Value.Str, v.Members[0].Value.Str)
	}
}
