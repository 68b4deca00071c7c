package jsonapi

import "github.com/restkit/jsonapi/value"

// Relationship links a resource to related resources. A nil Data member
// means the relationship is not represented in this payload, which is
// distinct from an explicit null member or an empty collection.
type Relationship struct {
	Data  *Data[Identifier]
	Links value.Map[Link]
	Meta  value.Map[value.Value]
}

// ToOne returns a relationship holding a single identifier.
func ToOne(ident Identifier) Relationship {
	d := Member(ident)
	return Relationship{Data: &d}
}

// ToOneNull returns a relationship with an explicit null member.
func ToOneNull() Relationship {
	d := NullMember[Identifier]()
	return Relationship{Data: &d}
}

// ToMany returns a relationship holding a collection of identifiers.
func ToMany(idents ...Identifier) Relationship {
	d := Collection(idents...)
	return Relationship{Data: &d}
}
