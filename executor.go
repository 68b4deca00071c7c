package jsonapi

import (
	"github.com/restkit/jsonapi/query"
	"github.com/restkit/jsonapi/value"
)

// Executor carries the state of one deflate walk: the current relationship
// path, the query being applied, and a handle to the document's shared
// included set.
//
// The included set has a single mutable owner. Forking creates a child
// executor for a relationship key; the child borrows the same set, so only
// one executor is operated on at a time. This makes the recursive
// implementation of included resources and sparse fieldsets a plain
// depth-first walk with no locking.
type Executor struct {
	query *query.Query
	path  value.Path
	incl  *Set
}

// NewExecutor returns a root executor writing into included.
func NewExecutor(q *query.Query, included *Set) *Executor {
	return &Executor{query: q, incl: included}
}

// Fork creates the child executor for descending into the relationship named
// by key. The child shares the included set and extends the path.
func (e *Executor) Fork(key value.Key) *Executor {
	return &Executor{
		query: e.query,
		path:  e.path.Join(key),
		incl:  e.incl,
	}
}

// FieldVisible reports whether the named member of kind survives the query's
// sparse fieldset: true when no fieldset is declared for kind.
func (e *Executor) FieldVisible(kind value.Key, name string) bool {
	return e.query.FieldVisible(kind, name)
}

// IncludesKey reports whether the query expands the relationship key under
// the current path.
func (e *Executor) IncludesKey(key value.Key) bool {
	return e.query.Includes(e.path.Join(key))
}

// Included reports whether the query expands the current path itself. The
// root path is never included.
func (e *Executor) Included() bool {
	if len(e.path) == 0 {
		return false
	}
	return e.query.Includes(e.path)
}

// Include inserts the object into the shared included set, deduplicating by
// identity. It returns true if the identity was not present before.
func (e *Executor) Include(o Object) bool {
	return e.incl.Insert(o)
}

// Path returns the current relationship path (root = empty).
func (e *Executor) Path() value.Path { return e.path }
