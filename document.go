package jsonapi

import "github.com/restkit/jsonapi/value"

// PrimaryData constrains the types that may appear as a document's primary
// data.
type PrimaryData interface {
	Identifier | Object | NewObject
}

// Data is the primary data of a document or the linkage of a relationship:
// either a single, possibly absent member, or a collection. The distinction
// is structural and decides the wire shape (object/null versus array).
//
// T is any rather than PrimaryData only because Go rejects the constraint
// cycle PrimaryData -> Object -> Relationship -> Data -> PrimaryData; every
// constructor and consumer still requires PrimaryData.
type Data[T any] struct {
	collection bool
	items      []T
	member     *T
}

// Member returns singular data holding v.
func Member[T PrimaryData](v T) Data[T] {
	return Data[T]{member: &v}
}

// NullMember returns singular data with no member (an explicit null).
func NullMember[T PrimaryData]() Data[T] {
	return Data[T]{}
}

// Collection returns plural data holding the given items. An empty
// collection is valid and distinct from a null member.
func Collection[T PrimaryData](items ...T) Data[T] {
	if items == nil {
		items = []T{}
	}
	return Data[T]{collection: true, items: items}
}

// IsCollection reports whether the data is plural.
func (d Data[T]) IsCollection() bool { return d.collection }

// Get returns the singular member; ok is false when the member is null or
// the data is a collection.
func (d Data[T]) Get() (T, bool) {
	if d.collection || d.member == nil {
		var zero T
		return zero, false
	}
	return *d.member, true
}

// Items returns the collection items; nil for singular data.
func (d Data[T]) Items() []T {
	if !d.collection {
		return nil
	}
	return d.items
}

// Document is a complete interchange payload: either primary data with its
// included side-table, or a list of error objects. Use IsOK/IsErr before
// reading primary data.
type Document[T PrimaryData] struct {
	Data     Data[T]
	Included Set
	Info     Info
	Links    value.Map[Link]
	Meta     value.Map[value.Value]
	Errors   []ErrorObject
}

// IsOK reports whether the document carries primary data rather than errors.
func (d *Document[T]) IsOK() bool { return len(d.Errors) == 0 }

// IsErr reports whether the document carries one or more error objects.
func (d *Document[T]) IsErr() bool { return len(d.Errors) > 0 }

// ErrDocument builds an error document from the given error objects.
func ErrDocument[T PrimaryData](errs ...ErrorObject) *Document[T] {
	return &Document[T]{Errors: errs}
}
