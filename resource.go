package jsonapi

import (
	"context"

	"github.com/restkit/jsonapi/query"
	"github.com/restkit/jsonapi/value"
)

// Resource is the capability the deflate engine consumes: anything that can
// name itself and render itself as an identifier or a full resource object.
// Implementations usually come from dsl.Resource definitions rather than
// being written by hand.
//
// ToObject implementations are responsible for honoring the executor's
// sparse fieldsets and for descending into included relationships via Fork;
// the ctx is threaded through the whole walk and is where cancellation and
// request-scoped values live.
type Resource interface {
	Kind() value.Key
	ID() string
	ToIdentifier(ctx context.Context, exec *Executor) (Identifier, error)
	ToObject(ctx context.Context, exec *Executor) (Object, error)
}

// ToDoc renders a single resource as a document of full objects. The
// object's links and meta are hoisted to the document level.
func ToDoc(ctx context.Context, r Resource, q *query.Query) (*Document[Object], error) {
	doc := &Document[Object]{}
	exec := NewExecutor(q, &doc.Included)
	obj, err := r.ToObject(ctx, exec)
	if err != nil {
		return nil, toIssues(err, CodeResolveError)
	}
	doc.Links = obj.Links
	doc.Meta = obj.Meta
	obj.Links = value.Map[Link]{}
	obj.Meta = value.Map[value.Value]{}
	doc.Data = Member(obj)
	return doc, nil
}

// ToDocMany renders a homogeneous collection as a document of full objects.
// Each item is walked independently; all items share one included set.
func ToDocMany[R Resource](ctx context.Context, rs []R, q *query.Query) (*Document[Object], error) {
	doc := &Document[Object]{}
	exec := NewExecutor(q, &doc.Included)
	items := make([]Object, 0, len(rs))
	for _, r := range rs {
		obj, err := r.ToObject(ctx, exec)
		if err != nil {
			return nil, toIssues(err, CodeResolveError)
		}
		items = append(items, obj)
	}
	doc.Data = Collection(items...)
	return doc, nil
}

// ToIdentifierDoc renders a single resource as an identifier-only document.
// The identifier's meta is hoisted to the document level.
func ToIdentifierDoc(ctx context.Context, r Resource, q *query.Query) (*Document[Identifier], error) {
	doc := &Document[Identifier]{}
	exec := NewExecutor(q, &doc.Included)
	ident, err := r.ToIdentifier(ctx, exec)
	if err != nil {
		return nil, toIssues(err, CodeResolveError)
	}
	doc.Meta = ident.Meta
	ident.Meta = value.Map[value.Value]{}
	doc.Data = Member(ident)
	return doc, nil
}

// ToIdentifierDocMany renders a homogeneous collection as an identifier-only
// document.
func ToIdentifierDocMany[R Resource](ctx context.Context, rs []R, q *query.Query) (*Document[Identifier], error) {
	doc := &Document[Identifier]{}
	exec := NewExecutor(q, &doc.Included)
	items := make([]Identifier, 0, len(rs))
	for _, r := range rs {
		ident, err := r.ToIdentifier(ctx, exec)
		if err != nil {
			return nil, toIssues(err, CodeResolveError)
		}
		items = append(items, ident)
	}
	doc.Data = Collection(items...)
	return doc, nil
}

// NullDoc returns a document whose primary data is an explicit null member,
// the rendering of an absent optional resource.
func NullDoc[T PrimaryData]() *Document[T] {
	return &Document[T]{Data: NullMember[T]()}
}
