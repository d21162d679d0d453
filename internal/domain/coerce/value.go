// Package coerce normalizes arbitrary JSON value trees into string-leaf form.
//
// The gateway forwards request bodies to handlers that assume string-only
// leaves. Values are modeled as a tagged union rather than interface{} maps
// so that object key order and number literals survive a decode/encode
// round trip.
package coerce

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Kind identifies the JSON type a Value holds.
type Kind int

const (
	Null Kind = iota
	String
	Number
	Bool
	Array
	Object
)

// Member is a single object member. Objects are stored as ordered member
// slices, not maps, so insertion order is preserved exactly.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value tree.
type Value struct {
	Kind    Kind
	Str     string   // set when Kind == String
	Num     string   // literal as it appeared in the input, set when Kind == Number
	B       bool     // set when Kind == Bool
	Elems   []Value  // set when Kind == Array
	Members []Member // set when Kind == Object
}

// ErrTrailingData is returned by Decode when input continues after the first
// complete JSON value.
var ErrTrailingData = errors.New("trailing data after JSON value")

// Decode parses data into a Value. Empty input decodes to an empty object,
// matching the behavior of JSON body parsers that treat a missing body as {}.
func Decode(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{Kind: Object}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	// Reject payloads with more than one top-level value.
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, ErrTrailingData
	}
	return v, nil
}

// decodeValue reads one complete JSON value from the token stream.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Value{Kind: Null}, nil
	case string:
		return Value{Kind: String, Str: t}, nil
	case json.Number:
		return Value{Kind: Number, Num: t.String()}, nil
	case bool:
		return Value{Kind: Bool, B: t}, nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	v := Value{Kind: Object}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		member, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Members = append(v.Members, Member{Key: key, Value: member})
	}
	// Consume closing '}'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	v := Value{Kind: Array}
	for dec.More() {
		elem, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Elems = append(v.Elems, elem)
	}
	// Consume closing ']'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// MarshalJSON serializes the tree, preserving object member order and
// number literals.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.Kind {
	case Null:
		buf.WriteString("null")
	case String:
		return encodeString(buf, v.Str)
	case Number:
		buf.WriteString(v.Num)
	case Bool:
		if v.B {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Array:
		buf.WriteByte('[')
		for i, elem := range v.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := elem.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("invalid value kind %d", v.Kind)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
