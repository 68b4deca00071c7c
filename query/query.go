// Package query models the parsed request parameters consumed by the deflate
// engine: per-type sparse fieldsets and the set of relationship paths to
// expand. Parsing query strings into this structure is out of scope; a
// programmatic builder is provided instead.
package query

import "github.com/restkit/jsonapi/value"

// Fieldset is the allow-list of member names rendered for one resource type.
type Fieldset map[string]struct{}

// Contains reports whether the member name is allowed.
func (f Fieldset) Contains(name string) bool {
	_, ok := f[name]
	return ok
}

// Query is consumed read-only by the deflate engine. A nil *Query means no
// filtering: every field is rendered and nothing is included.
type Query struct {
	fields  map[value.Key]Fieldset
	include map[string]struct{}
}

// Fieldset returns the allow-list declared for kind; ok is false when no
// fieldset was declared (default allow-all).
func (q *Query) Fieldset(kind value.Key) (Fieldset, bool) {
	if q == nil {
		return nil, false
	}
	f, ok := q.fields[kind]
	return f, ok
}

// FieldVisible reports whether the named member of kind should be rendered:
// true when no fieldset is declared for kind, otherwise membership.
func (q *Query) FieldVisible(kind value.Key, name string) bool {
	f, ok := q.Fieldset(kind)
	if !ok {
		return true
	}
	return f.Contains(name)
}

// Includes reports whether the relationship path should be fully expanded.
func (q *Query) Includes(p value.Path) bool {
	if q == nil {
		return false
	}
	_, ok := q.include[p.String()]
	return ok
}

// Builder assembles a Query.
type Builder struct {
	q   Query
	err error
}

// New returns an empty query builder.
func New() *Builder {
	return &Builder{q: Query{
		fields:  map[value.Key]Fieldset{},
		include: map[string]struct{}{},
	}}
}

// Fields declares the sparse fieldset for a resource type. Declaring an
// empty list suppresses every attribute and relationship of that type.
func (b *Builder) Fields(kind string, names ...string) *Builder {
	if b.err != nil {
		return b
	}
	k, err := value.ParseKey(kind)
	if err != nil {
		b.err = err
		return b
	}
	f, ok := b.q.fields[k]
	if !ok {
		f = Fieldset{}
		b.q.fields[k] = f
	}
	for _, n := range names {
		f[n] = struct{}{}
	}
	return b
}

// Include adds dotted relationship paths to expand. Every prefix of an
// included path is implied; callers list only the leaves they need.
func (b *Builder) Include(paths ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, raw := range paths {
		p, err := value.ParsePath(raw)
		if err != nil {
			b.err = err
			return b
		}
		// Register every prefix so that nested expansion renders the
		// intermediate resources too.
		for i := 1; i <= len(p); i++ {
			b.q.include[p[:i].String()] = struct{}{}
		}
	}
	return b
}

// Build returns the query or the first error recorded by the builder.
func (b *Builder) Build() (*Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &b.q, nil
}

// MustBuild is Build for known-good literals; it panics on error.
func (b *Builder) MustBuild() *Query {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}
