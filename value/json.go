package value

import (
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/restkit/jsonapi/internal/engine"
)

// FromJSON decodes JSON text into a Value, preserving object member order
// and validating every object key. The first invalid key aborts the whole
// conversion.
func FromJSON(data []byte) (Value, error) {
	return decodeJSON(engine.NewBytes(data))
}

// FromJSONReader decodes a Value from an io.Reader of JSON text.
func FromJSONReader(r io.Reader) (Value, error) {
	return decodeJSON(engine.NewReader(r))
}

func decodeJSON(src engine.Source) (Value, error) {
	tok, err := src.NextToken()
	if err != nil {
		return Value{}, err
	}
	return decodeValue(src, tok)
}

func decodeValue(src engine.Source, tok engine.Token) (Value, error) {
	switch tok.Kind {
	case engine.KindBeginObject:
		return decodeObject(src)
	case engine.KindBeginArray:
		return decodeArray(src)
	case engine.KindString:
		return String(tok.String), nil
	case engine.KindNumber:
		return Number(json.Number(tok.Number)), nil
	case engine.KindBool:
		return Bool(tok.Bool), nil
	case engine.KindNull:
		return Null(), nil
	default:
		return Value{}, io.ErrUnexpectedEOF
	}
}

func decodeObject(src engine.Source) (Value, error) {
	var m Map[Value]
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == engine.KindEndObject {
			return Object(m), nil
		}
		if tok.Kind != engine.KindKey {
			return Value{}, io.ErrUnexpectedEOF
		}
		key, err := ParseKey(tok.String)
		if err != nil {
			return Value{}, err
		}
		vt, err := src.NextToken()
		if err != nil {
			return Value{}, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return Value{}, err
		}
		m.Set(key, v)
	}
}

func decodeArray(src engine.Source) (Value, error) {
	items := []Value{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == engine.KindEndArray {
			return Array(items...), nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}

// MarshalJSON renders the value as compact JSON, emitting object members in
// insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil)
}

// UnmarshalJSON decodes JSON text, validating object keys.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := FromJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) appendJSON(dst []byte) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...), nil
	case KindBool:
		return strconv.AppendBool(dst, v.b), nil
	case KindNumber:
		if v.num == "" {
			return append(dst, '0'), nil
		}
		return append(dst, v.num...), nil
	case KindString:
		quoted, err := json.Marshal(v.str)
		if err != nil {
			return nil, err
		}
		return append(dst, quoted...), nil
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = item.appendJSON(dst)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case KindObject:
		dst = append(dst, '{')
		var outerErr error
		first := true
		v.obj.Each(func(k Key, item Value) bool {
			if !first {
				dst = append(dst, ',')
			}
			first = false
			quoted, err := json.Marshal(k.String())
			if err != nil {
				outerErr = err
				return false
			}
			dst = append(dst, quoted...)
			dst = append(dst, ':')
			dst, err = item.appendJSON(dst)
			if err != nil {
				outerErr = err
				return false
			}
			return true
		})
		if outerErr != nil {
			return nil, outerErr
		}
		return append(dst, '}'), nil
	default:
		return nil, fmt.Errorf("value: invalid kind %d", v.kind)
	}
}
