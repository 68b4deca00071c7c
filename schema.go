package jsonapi

import (
	"context"
	"fmt"
)

// Schema reconstructs a nested value of type T from a resource cursor. The
// schema drives the pull: it decides how many and which fields it needs, and
// the cursor supplies them lazily.
//
// Implementations must consume every field the cursor produces (type, id,
// each attribute, each represented relationship) unless they bypass the
// field machinery entirely via Cursor.ID. InflateWith enforces this.
type Schema[T any] interface {
	Inflate(ctx context.Context, cur *Cursor) (T, error)
}

// SchemaFunc adapts a function to a Schema.
type SchemaFunc[T any] func(ctx context.Context, cur *Cursor) (T, error)

func (f SchemaFunc[T]) Inflate(ctx context.Context, cur *Cursor) (T, error) {
	return f(ctx, cur)
}

// InflateWith runs a schema against a cursor and enforces the
// exact-consumption invariant: once the field protocol is engaged, stopping
// before every produced field was consumed is a structural mismatch.
func InflateWith[T any](ctx context.Context, s Schema[T], cur *Cursor) (T, error) {
	v, err := s.Inflate(ctx, cur)
	if err != nil {
		var zero T
		return zero, err
	}
	if cur.Entered() && cur.Remaining() > 0 {
		var zero T
		return zero, issueAt(cur.Path(), CodeInvalidLength,
			fmt.Sprintf("schema consumed fewer fields than produced: %d remaining", cur.Remaining()))
	}
	if !cur.seqDrained() {
		var zero T
		return zero, issueAt(cur.Path(), CodeInvalidLength,
			"relationship sequence not pulled to its declared length")
	}
	return v, nil
}
