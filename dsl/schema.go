// Package dsl provides builders for both directions of the resource model:
// schemas that inflate flattened documents into plain values, and resource
// definitions that deflate application values into documents.
package dsl

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/restkit/jsonapi"
	"github.com/restkit/jsonapi/value"
)

// FieldDecoder turns one produced field into a value. Implementations are
// composed into object schemas via Object().Field.
type FieldDecoder interface {
	decodeField(ctx context.Context, path string, f jsonapi.Field) (any, error)
}

type fieldDecoderFunc func(ctx context.Context, path string, f jsonapi.Field) (any, error)

func (fn fieldDecoderFunc) decodeField(ctx context.Context, path string, f jsonapi.Field) (any, error) {
	return fn(ctx, path, f)
}

func invalid(path, msg string) jsonapi.Issues {
	return jsonapi.Issues{{Path: path, Code: jsonapi.CodeInvalidType, Message: msg}}
}

// String decodes a string field: the resource type, id, or a string
// attribute.
func String() FieldDecoder {
	return fieldDecoderFunc(func(_ context.Context, path string, f jsonapi.Field) (any, error) {
		switch f.Kind {
		case jsonapi.FieldString:
			return f.Str, nil
		case jsonapi.FieldValue:
			s, ok := f.Value.String()
			if !ok {
				return nil, invalid(path, "expected a string")
			}
			return s, nil
		default:
			return nil, invalid(path, "expected a string")
		}
	})
}

// Bool decodes a boolean attribute.
func Bool() FieldDecoder {
	return fieldDecoderFunc(func(_ context.Context, path string, f jsonapi.Field) (any, error) {
		if f.Kind == jsonapi.FieldValue {
			if b, ok := f.Value.Bool(); ok {
				return b, nil
			}
		}
		return nil, invalid(path, "expected a boolean")
	})
}

// Int64 decodes an integer attribute. Numbers with a fractional part fail.
func Int64() FieldDecoder {
	return fieldDecoderFunc(func(_ context.Context, path string, f jsonapi.Field) (any, error) {
		if f.Kind == jsonapi.FieldValue {
			if n, ok := f.Value.Number(); ok {
				i, err := n.Int64()
				if err != nil {
					return nil, invalid(path, "expected an integer")
				}
				return i, nil
			}
		}
		return nil, invalid(path, "expected an integer")
	})
}

// Float64 decodes a numeric attribute.
func Float64() FieldDecoder {
	return fieldDecoderFunc(func(_ context.Context, path string, f jsonapi.Field) (any, error) {
		if f.Kind == jsonapi.FieldValue {
			if n, ok := f.Value.Number(); ok {
				fl, err := n.Float64()
				if err != nil {
					return nil, invalid(path, "expected a number")
				}
				return fl, nil
			}
		}
		return nil, invalid(path, "expected a number")
	})
}

// Number decodes a numeric attribute without converting it, preserving the
// exact lexical form.
func Number() FieldDecoder {
	return fieldDecoderFunc(func(_ context.Context, path string, f jsonapi.Field) (any, error) {
		if f.Kind == jsonapi.FieldValue {
			if n, ok := f.Value.Number(); ok {
				return json.Number(n), nil
			}
		}
		return nil, invalid(path, "expected a number")
	})
}

// Raw decodes any attribute as a generic value, nulls included.
func Raw() FieldDecoder {
	return fieldDecoderFunc(func(_ context.Context, path string, f jsonapi.Field) (any, error) {
		switch f.Kind {
		case jsonapi.FieldValue:
			return f.Value, nil
		case jsonapi.FieldString:
			return value.String(f.Str), nil
		case jsonapi.FieldNull:
			return value.Null(), nil
		default:
			return nil, invalid(path, "expected an attribute value")
		}
	})
}

// One decodes a to-one relationship by inflating its target with s. An
// explicit null linkage yields a nil pointer. Targets missing from the
// included set surface as stub cursors, so s must cope with a resource that
// produces only type and id (or bypass fields via Cursor.ID).
func One[T any](s jsonapi.Schema[T]) FieldDecoder {
	return fieldDecoderFunc(func(ctx context.Context, path string, f jsonapi.Field) (any, error) {
		switch f.Kind {
		case jsonapi.FieldNull:
			return (*T)(nil), nil
		case jsonapi.FieldOne:
			v, err := jsonapi.InflateWith(ctx, s, f.One)
			if err != nil {
				return nil, err
			}
			return &v, nil
		default:
			return nil, invalid(path, "expected a to-one relationship")
		}
	})
}

// Many decodes a to-many relationship by inflating every linked target with
// s. The sequence is drained exactly: its declared length is the result
// length.
func Many[T any](s jsonapi.Schema[T]) FieldDecoder {
	return fieldDecoderFunc(func(ctx context.Context, path string, f jsonapi.Field) (any, error) {
		if f.Kind != jsonapi.FieldMany {
			return nil, invalid(path, "expected a to-many relationship")
		}
		out := make([]T, 0, f.Many.Len())
		for {
			cur, ok := f.Many.Next()
			if !ok {
				break
			}
			v, err := jsonapi.InflateWith(ctx, s, cur)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// Ref decodes a to-one relationship as the target's bare id string. A null
// linkage yields the empty string.
func Ref() FieldDecoder {
	return fieldDecoderFunc(func(_ context.Context, path string, f jsonapi.Field) (any, error) {
		switch f.Kind {
		case jsonapi.FieldNull:
			return "", nil
		case jsonapi.FieldOne:
			return f.One.ID()
		default:
			return nil, invalid(path, "expected a to-one relationship")
		}
	})
}

// RefMany decodes a to-many relationship as the targets' bare id strings.
func RefMany() FieldDecoder {
	return fieldDecoderFunc(func(_ context.Context, path string, f jsonapi.Field) (any, error) {
		if f.Kind != jsonapi.FieldMany {
			return nil, invalid(path, "expected a to-many relationship")
		}
		out := make([]string, 0, f.Many.Len())
		for {
			cur, ok := f.Many.Next()
			if !ok {
				break
			}
			id, err := cur.ID()
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}
		return out, nil
	})
}

// ID is a schema that reads a resource as its bare id string, bypassing the
// field protocol entirely. It is the usual target schema for relationships
// that were not included.
func ID() jsonapi.Schema[string] {
	return jsonapi.SchemaFunc[string](func(_ context.Context, cur *jsonapi.Cursor) (string, error) {
		return cur.ID()
	})
}

type unknownPolicy int

const (
	unknownIgnore unknownPolicy = iota
	unknownStrict
)

// ObjectBuilder assembles an object schema field by field.
type ObjectBuilder struct {
	fields   map[string]FieldDecoder
	required []string
	unknown  unknownPolicy
	err      error
}

// Object starts a new object schema. Type and id are always consumed and
// stored under "type" and "id"; declared fields cover attributes and
// relationships.
func Object() *ObjectBuilder {
	return &ObjectBuilder{fields: map[string]FieldDecoder{}}
}

// Field declares a decoder for the named attribute or relationship. The name
// is normalized the same way document keys are.
func (b *ObjectBuilder) Field(name string, d FieldDecoder) *ObjectBuilder {
	if b.err != nil {
		return b
	}
	k, err := value.ParseKey(name)
	if err != nil {
		b.err = err
		return b
	}
	b.fields[k.String()] = d
	return b
}

// Require marks fields whose absence from the resource is an error.
func (b *ObjectBuilder) Require(names ...string) *ObjectBuilder {
	if b.err != nil {
		return b
	}
	for _, name := range names {
		k, err := value.ParseKey(name)
		if err != nil {
			b.err = err
			return b
		}
		b.required = append(b.required, k.String())
	}
	return b
}

// UnknownStrict makes fields without a declared decoder an error.
func (b *ObjectBuilder) UnknownStrict() *ObjectBuilder {
	b.unknown = unknownStrict
	return b
}

// UnknownIgnore consumes and drops fields without a declared decoder. This is
// the default.
func (b *ObjectBuilder) UnknownIgnore() *ObjectBuilder {
	b.unknown = unknownIgnore
	return b
}

// Build returns the object schema or the first error recorded by the builder.
func (b *ObjectBuilder) Build() (jsonapi.Schema[map[string]any], error) {
	if b.err != nil {
		return nil, b.err
	}
	s := &objectSchema{
		fields:   make(map[string]FieldDecoder, len(b.fields)),
		required: append([]string(nil), b.required...),
		unknown:  b.unknown,
	}
	for n, d := range b.fields {
		s.fields[n] = d
	}
	return s, nil
}

// MustBuild is Build for known-good literals; it panics on error.
func (b *ObjectBuilder) MustBuild() jsonapi.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

type objectSchema struct {
	fields   map[string]FieldDecoder
	required []string
	unknown  unknownPolicy
}

func (s *objectSchema) Inflate(ctx context.Context, cur *jsonapi.Cursor) (map[string]any, error) {
	out := map[string]any{}
	for {
		key, ok, err := cur.NextField()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		name := key.String()
		f, err := cur.Field()
		if err != nil {
			return nil, err
		}
		path := cur.Path() + "/" + name
		if name == "type" || name == "id" {
			out[name] = f.Str
			continue
		}
		d, declared := s.fields[name]
		if !declared {
			if s.unknown == unknownStrict {
				return nil, jsonapi.Issues{{Path: path, Code: jsonapi.CodeUnknownKey,
					Message: fmt.Sprintf("unknown field %q", name)}}
			}
			drain(f)
			continue
		}
		v, err := d.decodeField(ctx, path, f)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	for _, name := range s.required {
		if _, ok := out[name]; !ok {
			return nil, jsonapi.Issues{{Path: cur.Path() + "/" + name, Code: jsonapi.CodeMissingValue,
				Message: fmt.Sprintf("required field %q is missing", name)}}
		}
	}
	return out, nil
}

// drain exhausts a dropped to-many field so its sequence cannot leak
// half-consumed.
func drain(f jsonapi.Field) {
	if f.Kind != jsonapi.FieldMany {
		return
	}
	for {
		if _, ok := f.Many.Next(); !ok {
			return
		}
	}
}
