package jsonapi

import (
	"context"
	"io"

	"github.com/restkit/jsonapi/value"
)

// primaryCursor opens a cursor over the given primary datum, resolving
// relationship targets against included.
func primaryCursor[T PrimaryData](item T, included *Set) *Cursor {
	switch t := any(item).(type) {
	case Identifier:
		return IdentifierCursor(t, included)
	case Object:
		return ObjectCursor(t, included)
	case NewObject:
		return NewObjectCursor(t, included)
	default:
		// unreachable: PrimaryData is a closed type set
		panic("jsonapi: unknown primary data type")
	}
}

// documentIssues converts a document's error objects into Issues.
func documentIssues[T PrimaryData](d *Document[T]) Issues {
	iss := make(Issues, 0, len(d.Errors))
	for _, e := range d.Errors {
		msg := e.Title
		if e.Detail != "" {
			if msg != "" {
				msg += ": "
			}
			msg += e.Detail
		}
		path := ""
		if e.Source != nil {
			path = e.Source.Pointer
		}
		code := e.Code
		if code == "" {
			code = CodeDocumentError
		}
		iss = append(iss, Issue{Path: path, Code: code, Message: msg})
	}
	return iss
}

// FromDoc inflates a document's single primary resource with the schema.
// An error document surfaces its error objects as Issues; a null member or a
// collection is a shape mismatch.
func FromDoc[T PrimaryData, U any](ctx context.Context, d *Document[T], s Schema[U]) (U, error) {
	var zero U
	if d.IsErr() {
		return zero, documentIssues(d)
	}
	if d.Data.IsCollection() {
		return zero, issueAt("/data", CodeInvalidType, "expected a single resource, got a collection")
	}
	item, ok := d.Data.Get()
	if !ok {
		return zero, issueAt("/data", CodeMissingValue, "primary data is null")
	}
	return InflateWith(ctx, s, primaryCursor(item, &d.Included))
}

// FromDocMany inflates each resource of a document's primary collection with
// the schema. Singular documents are a shape mismatch.
func FromDocMany[T PrimaryData, U any](ctx context.Context, d *Document[T], s Schema[U]) ([]U, error) {
	if d.IsErr() {
		return nil, documentIssues(d)
	}
	if !d.Data.IsCollection() {
		return nil, issueAt("/data", CodeInvalidType, "expected a collection, got a single resource")
	}
	items := d.Data.Items()
	out := make([]U, 0, len(items))
	for _, item := range items {
		v, err := InflateWith(ctx, s, primaryCursor(item, &d.Included))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FromBytes decodes a document of full resource objects and inflates its
// single primary resource.
func FromBytes[U any](ctx context.Context, data []byte, s Schema[U]) (U, error) {
	var doc Document[Object]
	if err := doc.UnmarshalJSON(data); err != nil {
		var zero U
		return zero, err
	}
	return FromDoc(ctx, &doc, s)
}

// FromBytesMany decodes a document of full resource objects and inflates its
// primary collection.
func FromBytesMany[U any](ctx context.Context, data []byte, s Schema[U]) ([]U, error) {
	var doc Document[Object]
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return FromDocMany(ctx, &doc, s)
}

// FromString is FromBytes for a string payload.
func FromString[U any](ctx context.Context, data string, s Schema[U]) (U, error) {
	return FromBytes(ctx, []byte(data), s)
}

// FromReader reads the whole payload from r and inflates its single primary
// resource.
func FromReader[U any](ctx context.Context, r io.Reader, s Schema[U]) (U, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		var zero U
		return zero, toIssues(err, CodeParseError)
	}
	return FromBytes(ctx, data, s)
}

// FromValue interprets a generic value as a document of full resource objects
// and inflates its single primary resource. This is the entry point for
// payloads arriving in non-JSON encodings, e.g. value.FromYAML.
func FromValue[U any](ctx context.Context, v value.Value, s Schema[U]) (U, error) {
	doc, err := DocFromValue[Object](v)
	if err != nil {
		var zero U
		return zero, err
	}
	return FromDoc(ctx, doc, s)
}

// ToBytes renders the document as compact JSON.
func ToBytes[T PrimaryData](d *Document[T]) ([]byte, error) {
	return d.MarshalJSON()
}

// ToBytesPretty renders the document as indented JSON.
func ToBytesPretty[T PrimaryData](d *Document[T]) ([]byte, error) {
	return d.MarshalIndent("", "  ")
}

// ToString renders the document as a compact JSON string.
func ToString[T PrimaryData](d *Document[T]) (string, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToStringPretty renders the document as an indented JSON string.
func ToStringPretty[T PrimaryData](d *Document[T]) (string, error) {
	data, err := d.MarshalIndent("", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToWriter renders the document as compact JSON to w.
func ToWriter[T PrimaryData](d *Document[T], w io.Writer) error {
	data, err := d.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ToWriterPretty renders the document as indented JSON to w.
func ToWriterPretty[T PrimaryData](d *Document[T], w io.Writer) error {
	data, err := d.MarshalIndent("", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
