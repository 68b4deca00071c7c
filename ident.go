package jsonapi

import "github.com/restkit/jsonapi/value"

// Identifier identifies an individual resource by its (type, id) pair.
// Equality and deduplication use only Kind and ID; Meta is carried along but
// never takes part in identity.
type Identifier struct {
	Kind value.Key
	ID   string
	Meta value.Map[value.Value]
}

// NewIdentifier returns an identifier with no meta information.
func NewIdentifier(kind value.Key, id string) Identifier {
	return Identifier{Kind: kind, ID: id}
}

// EqualIdentity reports whether two identifiers name the same resource.
func (i Identifier) EqualIdentity(other Identifier) bool {
	return i.Kind == other.Kind && i.ID == other.ID
}

func (i Identifier) identity() identity { return identity{kind: i.Kind, id: i.ID} }

// identity is the (kind, id) pair used for set membership and graph lookup.
type identity struct {
	kind value.Key
	id   string
}
