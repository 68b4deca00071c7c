package jsonapi

import "github.com/restkit/jsonapi/value"

// Object is a fully-rendered resource: its identifier plus attributes,
// relationships, links, and meta. Objects share Identifier's identity
// semantics: two objects are the same resource iff kind and id match.
type Object struct {
	Kind          value.Key
	ID            string
	Attributes    value.Map[value.Value]
	Relationships value.Map[Relationship]
	Links         value.Map[Link]
	Meta          value.Map[value.Value]
}

// NewObjectOf returns an empty resource object for the given identity.
func NewObjectOf(kind value.Key, id string) Object {
	return Object{Kind: kind, ID: id}
}

// Identifier projects the object to its identifier. Meta is carried over,
// matching how relationship linkage is rendered from included objects.
func (o Object) Identifier() Identifier {
	return Identifier{Kind: o.Kind, ID: o.ID, Meta: o.Meta}
}

func (o Object) identity() identity { return identity{kind: o.Kind, id: o.ID} }

// NewObject is a resource object whose id may be absent, used in
// client-generated-id creation flows. Otherwise identical to Object.
type NewObject struct {
	Kind          value.Key
	ID            string // empty means absent
	Attributes    value.Map[value.Value]
	Relationships value.Map[Relationship]
	Links         value.Map[Link]
	Meta          value.Map[value.Value]
}
