package jsonapi

import (
	"fmt"

	"github.com/restkit/jsonapi/value"
)

// cursorState tracks the fixed production order of a resource's fields:
// type, id, each attribute, then each relationship whose data is present.
type cursorState int

const (
	stateKind cursorState = iota
	stateID
	stateAttributes
	stateRelationships
	stateDone
)

type pendingField int

const (
	pendingNone pendingField = iota
	pendingKind
	pendingID
	pendingAttribute
	pendingRelationship
)

// Cursor walks one resource of a flattened document, producing its fields on
// demand. A schema drives the walk by alternating NextField and Field calls;
// the cursor counts what was consumed so the engine can enforce that nothing
// produced is silently dropped.
//
// Cursors for relationship targets resolve against the document's included
// set: a target that was never included degrades to a stub exposing only
// type and id.
type Cursor struct {
	kind     value.Key
	id       string
	hasID    bool
	attrs    value.Map[value.Value]
	attrKeys []value.Key
	rels     value.Map[Relationship]
	relKeys  []value.Key // only relationships with represented data
	included *Set
	path     string

	state    cursorState
	i        int
	pending  pendingField
	key      value.Key
	consumed int
	entered  bool
	openSeq  *Seq
}

// ObjectCursor returns a cursor over a fully-rendered resource object.
func ObjectCursor(o Object, included *Set) *Cursor {
	return newObjectCursor(o, included, "")
}

// IdentifierCursor returns a cursor over a bare identifier: a stub producing
// only type and id. This is the fallback for relationship targets missing
// from the included set.
func IdentifierCursor(ident Identifier, included *Set) *Cursor {
	return newIdentifierCursor(ident, included, "")
}

// NewObjectCursor returns a cursor over a client-generated resource object;
// the id field is produced only when present.
func NewObjectCursor(o NewObject, included *Set) *Cursor {
	c := &Cursor{
		kind:     o.Kind,
		id:       o.ID,
		hasID:    o.ID != "",
		attrs:    o.Attributes,
		rels:     o.Relationships,
		included: included,
	}
	c.snapshot()
	return c
}

func newObjectCursor(o Object, included *Set, path string) *Cursor {
	c := &Cursor{
		kind:     o.Kind,
		id:       o.ID,
		hasID:    true,
		attrs:    o.Attributes,
		rels:     o.Relationships,
		included: included,
		path:     path,
	}
	c.snapshot()
	return c
}

func newIdentifierCursor(ident Identifier, included *Set, path string) *Cursor {
	return &Cursor{
		kind:     ident.Kind,
		id:       ident.ID,
		hasID:    true,
		included: included,
		path:     path,
	}
}

// lookupCursor resolves an identifier against the included set, falling back
// to a stub cursor when the resource was referenced but never included.
func lookupCursor(ident Identifier, included *Set, path string) *Cursor {
	if included != nil {
		if o, ok := included.Get(ident); ok {
			return newObjectCursor(o, included, path)
		}
	}
	return newIdentifierCursor(ident, included, path)
}

func (c *Cursor) snapshot() {
	c.attrKeys = c.attrs.Keys()
	for _, k := range c.rels.Keys() {
		r, _ := c.rels.Get(k)
		if r.Data != nil {
			c.relKeys = append(c.relKeys, k)
		}
	}
}

// Kind returns the resource type without consuming any field.
func (c *Cursor) Kind() value.Key { return c.kind }

// ID returns the resource id directly, bypassing the field machinery. This
// serves bare-string targets, e.g. a relationship decoded as just its id.
// An absent id (client-generated objects) is an error.
func (c *Cursor) ID() (string, error) {
	if !c.hasID {
		return "", issueAt(c.path, CodeMissingID, "resource has no id")
	}
	return c.id, nil
}

// Path returns the JSON-pointer-style location of this cursor within the
// inflate walk, for error reporting.
func (c *Cursor) Path() string { return c.path }

// total is the number of fields this cursor produces.
func (c *Cursor) total() int {
	n := 1 + len(c.attrKeys) + len(c.relKeys)
	if c.hasID {
		n++
	}
	return n
}

// Remaining returns the number of produced fields not yet consumed.
func (c *Cursor) Remaining() int { return c.total() - c.consumed }

// Entered reports whether the schema engaged the field protocol.
func (c *Cursor) Entered() bool { return c.entered }

// NextField advances to the next field and returns its name; ok is false
// once every field has been produced. The previous field's value must have
// been read first.
func (c *Cursor) NextField() (value.Key, bool, error) {
	if c.pending != pendingNone {
		return value.Key{}, false, issueAt(c.path, CodeParseError, "field value not consumed")
	}
	if !c.seqDrained() {
		return value.Key{}, false, issueAt(c.path, CodeInvalidLength,
			fmt.Sprintf("relationship sequence has %d items left", c.openSeq.Remaining()))
	}
	c.openSeq = nil
	c.entered = true
	switch c.state {
	case stateKind:
		c.pending = pendingKind
		c.key = keyType
		return keyType, true, nil
	case stateID:
		c.pending = pendingID
		c.key = keyID
		return keyID, true, nil
	case stateAttributes:
		if c.i < len(c.attrKeys) {
			c.key = c.attrKeys[c.i]
			c.pending = pendingAttribute
			return c.key, true, nil
		}
		c.state = stateRelationships
		c.i = 0
		return c.NextField()
	case stateRelationships:
		if c.i < len(c.relKeys) {
			c.key = c.relKeys[c.i]
			c.pending = pendingRelationship
			return c.key, true, nil
		}
		c.state = stateDone
		return value.Key{}, false, nil
	default:
		return value.Key{}, false, nil
	}
}

// FieldKind tags the shape of a produced field value.
type FieldKind int

const (
	// FieldString is a plain string: the resource type or id.
	FieldString FieldKind = iota
	// FieldValue is an attribute value.
	FieldValue
	// FieldNull is a to-one relationship with an explicit null member.
	FieldNull
	// FieldOne is a to-one relationship resolved to a child cursor.
	FieldOne
	// FieldMany is a to-many relationship resolved to a cursor sequence.
	FieldMany
)

// Field is the value of the field most recently named by NextField.
type Field struct {
	Kind  FieldKind
	Str   string
	Value value.Value
	One   *Cursor
	Many  *Seq
}

// Field returns the value for the pending field and marks it consumed.
func (c *Cursor) Field() (Field, error) {
	switch c.pending {
	case pendingKind:
		c.advanceFromKind()
		return c.take(Field{Kind: FieldString, Str: c.kind.String()}), nil
	case pendingID:
		c.state = stateAttributes
		c.i = 0
		return c.take(Field{Kind: FieldString, Str: c.id}), nil
	case pendingAttribute:
		v, ok := c.attrs.Get(c.key)
		if !ok {
			return Field{}, issueAt(c.fieldPath(), CodeMissingValue, "attribute value is missing")
		}
		c.i++
		return c.take(Field{Kind: FieldValue, Value: v}), nil
	case pendingRelationship:
		r, ok := c.rels.Get(c.key)
		if !ok || r.Data == nil {
			return Field{}, issueAt(c.fieldPath(), CodeMissingValue, "relationship value is missing")
		}
		f, err := c.resolveRelationship(*r.Data)
		if err != nil {
			return Field{}, err
		}
		c.i++
		return c.take(f), nil
	default:
		return Field{}, issueAt(c.path, CodeParseError, "no field pending")
	}
}

func (c *Cursor) advanceFromKind() {
	if c.hasID {
		c.state = stateID
	} else {
		c.state = stateAttributes
		c.i = 0
	}
}

func (c *Cursor) take(f Field) Field {
	c.pending = pendingNone
	c.consumed++
	if f.Kind == FieldMany {
		c.openSeq = f.Many
	}
	return f
}

// seqDrained reports whether the most recently produced to-many sequence was
// pulled to its declared length.
func (c *Cursor) seqDrained() bool {
	return c.openSeq == nil || c.openSeq.Remaining() == 0
}

func (c *Cursor) fieldPath() string {
	return c.path + "/" + c.key.String()
}

func (c *Cursor) resolveRelationship(d Data[Identifier]) (Field, error) {
	if d.IsCollection() {
		return Field{Kind: FieldMany, Many: &Seq{
			ids:      d.Items(),
			included: c.included,
			path:     c.fieldPath(),
		}}, nil
	}
	ident, ok := d.Get()
	if !ok {
		return Field{Kind: FieldNull}, nil
	}
	return Field{Kind: FieldOne, One: lookupCursor(ident, c.included, c.fieldPath())}, nil
}

// Seq is a finite, non-restartable sequence of resolved relationship
// cursors. Its declared length equals the number of linkage entries; a
// consumer must pull exactly that many items.
type Seq struct {
	ids      []Identifier
	included *Set
	path     string
	i        int
}

// Len returns the declared number of items.
func (s *Seq) Len() int { return len(s.ids) }

// Remaining returns the number of items not yet pulled.
func (s *Seq) Remaining() int { return len(s.ids) - s.i }

// Next resolves and returns the next item; ok is false once exhausted.
func (s *Seq) Next() (*Cursor, bool) {
	if s.i >= len(s.ids) {
		return nil, false
	}
	ident := s.ids[s.i]
	cur := lookupCursor(ident, s.included, fmt.Sprintf("%s/%d", s.path, s.i))
	s.i++
	return cur, true
}
