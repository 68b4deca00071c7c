package dsl

import (
	"context"

	"github.com/restkit/jsonapi"
	"github.com/restkit/jsonapi/value"
)

type attrDef[T any] struct {
	key value.Key
	fn  func(T) any
}

type relDef[T any] struct {
	key  value.Key
	one  func(T) jsonapi.Resource
	many func(T) []jsonapi.Resource
}

type linkDef[T any] struct {
	key value.Key
	fn  func(T) string
}

type metaDef[T any] struct {
	key value.Key
	fn  func(T) any
}

// ResourceDef describes how values of type T render as resources: their
// type, id, and the accessors for every attribute, relationship, link, and
// meta member. Bind pairs a definition with one value.
type ResourceDef[T any] struct {
	kind  value.Key
	id    func(T) string
	attrs []attrDef[T]
	rels  []relDef[T]
	links []linkDef[T]
	metas []metaDef[T]
}

// ResourceBuilder assembles a ResourceDef.
type ResourceBuilder[T any] struct {
	def ResourceDef[T]
	err error
}

// Resource starts a resource definition for the given type name.
func Resource[T any](kind string) *ResourceBuilder[T] {
	b := &ResourceBuilder[T]{}
	k, err := value.ParseKey(kind)
	if err != nil {
		b.err = err
		return b
	}
	b.def.kind = k
	return b
}

func (b *ResourceBuilder[T]) key(name string) (value.Key, bool) {
	if b.err != nil {
		return value.Key{}, false
	}
	k, err := value.ParseKey(name)
	if err != nil {
		b.err = err
		return value.Key{}, false
	}
	return k, true
}

// ID declares the accessor for the resource id.
func (b *ResourceBuilder[T]) ID(fn func(T) string) *ResourceBuilder[T] {
	b.def.id = fn
	return b
}

// Attr declares an attribute. The accessor's result is converted to a
// generic value when the resource is rendered.
func (b *ResourceBuilder[T]) Attr(name string, fn func(T) any) *ResourceBuilder[T] {
	if k, ok := b.key(name); ok {
		b.def.attrs = append(b.def.attrs, attrDef[T]{key: k, fn: fn})
	}
	return b
}

// HasOne declares a to-one relationship. A nil result means the relationship
// is not represented in the payload at all.
func (b *ResourceBuilder[T]) HasOne(name string, fn func(T) jsonapi.Resource) *ResourceBuilder[T] {
	if k, ok := b.key(name); ok {
		b.def.rels = append(b.def.rels, relDef[T]{key: k, one: fn})
	}
	return b
}

// HasMany declares a to-many relationship. A nil slice means the
// relationship is not represented; an empty slice renders an empty
// collection.
func (b *ResourceBuilder[T]) HasMany(name string, fn func(T) []jsonapi.Resource) *ResourceBuilder[T] {
	if k, ok := b.key(name); ok {
		b.def.rels = append(b.def.rels, relDef[T]{key: k, many: fn})
	}
	return b
}

// Link declares a link member. The accessor's result is validated when the
// resource is rendered.
func (b *ResourceBuilder[T]) Link(name string, fn func(T) string) *ResourceBuilder[T] {
	if k, ok := b.key(name); ok {
		b.def.links = append(b.def.links, linkDef[T]{key: k, fn: fn})
	}
	return b
}

// Meta declares a meta member.
func (b *ResourceBuilder[T]) Meta(name string, fn func(T) any) *ResourceBuilder[T] {
	if k, ok := b.key(name); ok {
		b.def.metas = append(b.def.metas, metaDef[T]{key: k, fn: fn})
	}
	return b
}

// Build returns the definition or the first error recorded by the builder.
func (b *ResourceBuilder[T]) Build() (*ResourceDef[T], error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.def.id == nil {
		return nil, jsonapi.Issues{{Code: jsonapi.CodeMissingID,
			Message: "resource definition has no id accessor"}}
	}
	def := b.def
	return &def, nil
}

// MustBuild is Build for known-good literals; it panics on error.
func (b *ResourceBuilder[T]) MustBuild() *ResourceDef[T] {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// Bind pairs the definition with a value, yielding a renderable resource.
func (d *ResourceDef[T]) Bind(v T) jsonapi.Resource {
	return bound[T]{def: d, v: v}
}

// BindAll binds every value of a slice.
func (d *ResourceDef[T]) BindAll(vs []T) []jsonapi.Resource {
	out := make([]jsonapi.Resource, 0, len(vs))
	for _, v := range vs {
		out = append(out, d.Bind(v))
	}
	return out
}

type bound[T any] struct {
	def *ResourceDef[T]
	v   T
}

func (b bound[T]) Kind() value.Key { return b.def.kind }

func (b bound[T]) ID() string { return b.def.id(b.v) }

func (b bound[T]) ToIdentifier(ctx context.Context, exec *jsonapi.Executor) (jsonapi.Identifier, error) {
	ident := jsonapi.Identifier{Kind: b.def.kind, ID: b.def.id(b.v)}
	meta, err := b.metaMap()
	if err != nil {
		return jsonapi.Identifier{}, err
	}
	ident.Meta = meta
	return ident, nil
}

func (b bound[T]) ToObject(ctx context.Context, exec *jsonapi.Executor) (jsonapi.Object, error) {
	d := b.def
	o := jsonapi.Object{Kind: d.kind, ID: d.id(b.v)}
	for _, a := range d.attrs {
		if !exec.FieldVisible(d.kind, a.key.String()) {
			continue
		}
		av, err := value.ToValue(a.fn(b.v))
		if err != nil {
			return jsonapi.Object{}, err
		}
		o.Attributes.Set(a.key, av)
	}
	for _, r := range d.rels {
		if !exec.FieldVisible(d.kind, r.key.String()) {
			continue
		}
		rel, err := b.resolveRel(ctx, exec, r)
		if err != nil {
			return jsonapi.Object{}, err
		}
		o.Relationships.Set(r.key, rel)
	}
	for _, l := range d.links {
		link, err := jsonapi.ParseLink(l.fn(b.v))
		if err != nil {
			return jsonapi.Object{}, err
		}
		o.Links.Set(l.key, link)
	}
	meta, err := b.metaMap()
	if err != nil {
		return jsonapi.Object{}, err
	}
	o.Meta = meta
	return o, nil
}

func (b bound[T]) metaMap() (value.Map[value.Value], error) {
	var m value.Map[value.Value]
	for _, md := range b.def.metas {
		mv, err := value.ToValue(md.fn(b.v))
		if err != nil {
			return value.Map[value.Value]{}, err
		}
		m.Set(md.key, mv)
	}
	return m, nil
}

// resolveRel renders one relationship. Targets under an included path are
// rendered in full and inserted into the shared included set; their linkage
// identifiers carry the rendered object's meta. Targets outside included
// paths render as identifiers only.
func (b bound[T]) resolveRel(ctx context.Context, exec *jsonapi.Executor, r relDef[T]) (jsonapi.Relationship, error) {
	child := exec.Fork(r.key)
	include := exec.IncludesKey(r.key)
	if r.one != nil {
		related := r.one(b.v)
		if related == nil {
			return jsonapi.Relationship{}, nil
		}
		ident, err := b.resolveTarget(ctx, child, related, include)
		if err != nil {
			return jsonapi.Relationship{}, err
		}
		return jsonapi.ToOne(ident), nil
	}
	items := r.many(b.v)
	if items == nil {
		return jsonapi.Relationship{}, nil
	}
	idents := make([]jsonapi.Identifier, 0, len(items))
	for _, related := range items {
		ident, err := b.resolveTarget(ctx, child, related, include)
		if err != nil {
			return jsonapi.Relationship{}, err
		}
		idents = append(idents, ident)
	}
	return jsonapi.ToMany(idents...), nil
}

func (b bound[T]) resolveTarget(ctx context.Context, child *jsonapi.Executor, related jsonapi.Resource, include bool) (jsonapi.Identifier, error) {
	if include {
		full, err := related.ToObject(ctx, child)
		if err != nil {
			return jsonapi.Identifier{}, err
		}
		child.Include(full)
		return full.Identifier(), nil
	}
	return related.ToIdentifier(ctx, child)
}
