package jsonapi

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/restkit/jsonapi/value"
)

// Member names fixed by the wire format.
var (
	keyType          = value.MustKey("type")
	keyID            = value.MustKey("id")
	keyAttributes    = value.MustKey("attributes")
	keyRelationships = value.MustKey("relationships")
	keyLinks         = value.MustKey("links")
	keyMeta          = value.MustKey("meta")
	keyData          = value.MustKey("data")
	keyIncluded      = value.MustKey("included")
	keyJSONAPI       = value.MustKey("jsonapi")
	keyErrors        = value.MustKey("errors")
	keyVersion       = value.MustKey("version")
	keyHRef          = value.MustKey("href")
	keyStatus        = value.MustKey("status")
	keyCode          = value.MustKey("code")
	keyTitle         = value.MustKey("title")
	keyDetail        = value.MustKey("detail")
	keySource        = value.MustKey("source")
	keyPointer       = value.MustKey("pointer")
	keyParameter     = value.MustKey("parameter")
)

// MarshalJSON renders the document in its flattened wire form.
func (d *Document[T]) MarshalJSON() ([]byte, error) {
	v, err := d.ToValue()
	if err != nil {
		return nil, err
	}
	return v.MarshalJSON()
}

// MarshalIndent renders the document as pretty-printed JSON.
func (d *Document[T]) MarshalIndent(prefix, indent string) ([]byte, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the flattened wire form.
func (d *Document[T]) UnmarshalJSON(data []byte) error {
	v, err := value.FromJSON(data)
	if err != nil {
		return toIssues(err, CodeParseError)
	}
	doc, err := DocFromValue[T](v)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// ToValue converts the document to its generic-value wire representation.
func (d *Document[T]) ToValue() (value.Value, error) {
	var m value.Map[value.Value]
	if d.IsErr() {
		items := make([]value.Value, 0, len(d.Errors))
		for _, e := range d.Errors {
			items = append(items, errorObjectToValue(e))
		}
		m.Set(keyErrors, value.Array(items...))
	} else {
		dv, err := dataToValue(d.Data)
		if err != nil {
			return value.Value{}, err
		}
		m.Set(keyData, dv)
		if !d.Included.IsEmpty() {
			items := make([]value.Value, 0, d.Included.Len())
			d.Included.Each(func(o Object) bool {
				items = append(items, objectToValue(o))
				return true
			})
			m.Set(keyIncluded, value.Array(items...))
		}
	}
	if !d.Info.IsEmpty() {
		m.Set(keyJSONAPI, infoToValue(d.Info))
	}
	if !d.Links.IsEmpty() {
		m.Set(keyLinks, linksToValue(d.Links))
	}
	if !d.Meta.IsEmpty() {
		m.Set(keyMeta, value.Object(d.Meta))
	}
	return value.Object(m), nil
}

// DocFromValue interprets a generic value as a document with primary data T.
func DocFromValue[T PrimaryData](v value.Value) (*Document[T], error) {
	m, ok := v.Obj()
	if !ok {
		return nil, issueAt("", CodeInvalidType, "document must be an object")
	}
	doc := &Document[T]{}
	if ev, ok := m.Get(keyErrors); ok {
		items, ok := ev.Items()
		if !ok {
			return nil, issueAt("/errors", CodeInvalidType, "errors must be an array")
		}
		for i, item := range items {
			e, err := errorObjectFromValue(item, fmt.Sprintf("/errors/%d", i))
			if err != nil {
				return nil, err
			}
			doc.Errors = append(doc.Errors, e)
		}
	} else {
		dv, ok := m.Get(keyData)
		if !ok {
			return nil, issueAt("", CodeMissingValue, "document must have a data or errors member")
		}
		data, err := dataFromValue[T](dv, "/data")
		if err != nil {
			return nil, err
		}
		doc.Data = data
		if iv, ok := m.Get(keyIncluded); ok {
			items, ok := iv.Items()
			if !ok {
				return nil, issueAt("/included", CodeInvalidType, "included must be an array")
			}
			for i, item := range items {
				o, err := objectFromValue(item, fmt.Sprintf("/included/%d", i))
				if err != nil {
					return nil, err
				}
				doc.Included.Insert(o)
			}
		}
	}
	if jv, ok := m.Get(keyJSONAPI); ok {
		info, err := infoFromValue(jv, "/jsonapi")
		if err != nil {
			return nil, err
		}
		doc.Info = info
	}
	if lv, ok := m.Get(keyLinks); ok {
		links, err := linksFromValue(lv, "/links")
		if err != nil {
			return nil, err
		}
		doc.Links = links
	}
	if mv, ok := m.Get(keyMeta); ok {
		meta, err := metaFromValue(mv, "/meta")
		if err != nil {
			return nil, err
		}
		doc.Meta = meta
	}
	return doc, nil
}

// ---- primary data ----

func dataToValue[T PrimaryData](d Data[T]) (value.Value, error) {
	if d.IsCollection() {
		items := make([]value.Value, 0, len(d.Items()))
		for _, item := range d.Items() {
			items = append(items, primaryToValue(item))
		}
		return value.Array(items...), nil
	}
	member, ok := d.Get()
	if !ok {
		return value.Null(), nil
	}
	return primaryToValue(member), nil
}

func dataFromValue[T PrimaryData](v value.Value, path string) (Data[T], error) {
	switch v.Kind() {
	case value.KindNull:
		return NullMember[T](), nil
	case value.KindArray:
		items, _ := v.Items()
		parsed := make([]T, 0, len(items))
		for i, item := range items {
			p, err := primaryFromValue[T](item, fmt.Sprintf("%s/%d", path, i))
			if err != nil {
				return Data[T]{}, err
			}
			parsed = append(parsed, p)
		}
		return Collection(parsed...), nil
	case value.KindObject:
		p, err := primaryFromValue[T](v, path)
		if err != nil {
			return Data[T]{}, err
		}
		return Member(p), nil
	default:
		return Data[T]{}, issueAt(path, CodeInvalidType, "data must be an object, array, or null")
	}
}

func primaryToValue[T PrimaryData](item T) value.Value {
	switch t := any(item).(type) {
	case Identifier:
		return identifierToValue(t)
	case Object:
		return objectToValue(t)
	case NewObject:
		return newObjectToValue(t)
	default:
		return value.Null()
	}
}

func primaryFromValue[T PrimaryData](v value.Value, path string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case Identifier:
		ident, err := identifierFromValue(v, path)
		if err != nil {
			return zero, err
		}
		return any(ident).(T), nil
	case Object:
		o, err := objectFromValue(v, path)
		if err != nil {
			return zero, err
		}
		return any(o).(T), nil
	case NewObject:
		o, err := newObjectFromValue(v, path)
		if err != nil {
			return zero, err
		}
		return any(o).(T), nil
	default:
		return zero, issueAt(path, CodeInvalidType, "unsupported primary data type")
	}
}

// ---- resource objects and identifiers ----

func identifierToValue(i Identifier) value.Value {
	var m value.Map[value.Value]
	m.Set(keyType, value.String(i.Kind.String()))
	m.Set(keyID, value.String(i.ID))
	if !i.Meta.IsEmpty() {
		m.Set(keyMeta, value.Object(i.Meta))
	}
	return value.Object(m)
}

func identifierFromValue(v value.Value, path string) (Identifier, error) {
	m, ok := v.Obj()
	if !ok {
		return Identifier{}, issueAt(path, CodeInvalidType, "resource identifier must be an object")
	}
	kind, err := kindFromMap(&m, path)
	if err != nil {
		return Identifier{}, err
	}
	id, err := requiredString(&m, keyID, path)
	if err != nil {
		return Identifier{}, err
	}
	ident := Identifier{Kind: kind, ID: id}
	if mv, ok := m.Get(keyMeta); ok {
		meta, err := metaFromValue(mv, path+"/meta")
		if err != nil {
			return Identifier{}, err
		}
		ident.Meta = meta
	}
	return ident, nil
}

func objectToValue(o Object) value.Value {
	var m value.Map[value.Value]
	m.Set(keyType, value.String(o.Kind.String()))
	m.Set(keyID, value.String(o.ID))
	objectBodyToValue(&m, o.Attributes, o.Relationships, o.Links, o.Meta)
	return value.Object(m)
}

func newObjectToValue(o NewObject) value.Value {
	var m value.Map[value.Value]
	m.Set(keyType, value.String(o.Kind.String()))
	if o.ID != "" {
		m.Set(keyID, value.String(o.ID))
	}
	objectBodyToValue(&m, o.Attributes, o.Relationships, o.Links, o.Meta)
	return value.Object(m)
}

func objectBodyToValue(
	m *value.Map[value.Value],
	attrs value.Map[value.Value],
	rels value.Map[Relationship],
	links value.Map[Link],
	meta value.Map[value.Value],
) {
	if !attrs.IsEmpty() {
		m.Set(keyAttributes, value.Object(attrs))
	}
	if !rels.IsEmpty() {
		var rm value.Map[value.Value]
		rels.Each(func(k value.Key, r Relationship) bool {
			rm.Set(k, relationshipToValue(r))
			return true
		})
		m.Set(keyRelationships, value.Object(rm))
	}
	if !links.IsEmpty() {
		m.Set(keyLinks, linksToValue(links))
	}
	if !meta.IsEmpty() {
		m.Set(keyMeta, value.Object(meta))
	}
}

func objectFromValue(v value.Value, path string) (Object, error) {
	m, ok := v.Obj()
	if !ok {
		return Object{}, issueAt(path, CodeInvalidType, "resource object must be an object")
	}
	kind, err := kindFromMap(&m, path)
	if err != nil {
		return Object{}, err
	}
	id, err := requiredString(&m, keyID, path)
	if err != nil {
		return Object{}, err
	}
	o := Object{Kind: kind, ID: id}
	if err := objectBodyFromValue(&m, path, &o.Attributes, &o.Relationships, &o.Links, &o.Meta); err != nil {
		return Object{}, err
	}
	return o, nil
}

func newObjectFromValue(v value.Value, path string) (NewObject, error) {
	m, ok := v.Obj()
	if !ok {
		return NewObject{}, issueAt(path, CodeInvalidType, "resource object must be an object")
	}
	kind, err := kindFromMap(&m, path)
	if err != nil {
		return NewObject{}, err
	}
	o := NewObject{Kind: kind}
	if idv, ok := m.Get(keyID); ok {
		id, ok := idv.String()
		if !ok {
			return NewObject{}, issueAt(path+"/id", CodeInvalidType, "id must be a string")
		}
		o.ID = id
	}
	if err := objectBodyFromValue(&m, path, &o.Attributes, &o.Relationships, &o.Links, &o.Meta); err != nil {
		return NewObject{}, err
	}
	return o, nil
}

func objectBodyFromValue(
	m *value.Map[value.Value],
	path string,
	attrs *value.Map[value.Value],
	rels *value.Map[Relationship],
	links *value.Map[Link],
	meta *value.Map[value.Value],
) error {
	if av, ok := m.Get(keyAttributes); ok {
		parsed, err := metaFromValue(av, path+"/attributes")
		if err != nil {
			return err
		}
		*attrs = parsed
	}
	if rv, ok := m.Get(keyRelationships); ok {
		rm, ok := rv.Obj()
		if !ok {
			return issueAt(path+"/relationships", CodeInvalidType, "relationships must be an object")
		}
		var outerErr error
		rm.Each(func(k value.Key, item value.Value) bool {
			r, err := relationshipFromValue(item, path+"/relationships/"+k.String())
			if err != nil {
				outerErr = err
				return false
			}
			rels.Set(k, r)
			return true
		})
		if outerErr != nil {
			return outerErr
		}
	}
	if lv, ok := m.Get(keyLinks); ok {
		parsed, err := linksFromValue(lv, path+"/links")
		if err != nil {
			return err
		}
		*links = parsed
	}
	if mv, ok := m.Get(keyMeta); ok {
		parsed, err := metaFromValue(mv, path+"/meta")
		if err != nil {
			return err
		}
		*meta = parsed
	}
	return nil
}

// ---- relationships ----

func relationshipToValue(r Relationship) value.Value {
	var m value.Map[value.Value]
	if r.Data != nil {
		dv, _ := dataToValue(*r.Data)
		m.Set(keyData, dv)
	}
	if !r.Links.IsEmpty() {
		m.Set(keyLinks, linksToValue(r.Links))
	}
	if !r.Meta.IsEmpty() {
		m.Set(keyMeta, value.Object(r.Meta))
	}
	return value.Object(m)
}

func relationshipFromValue(v value.Value, path string) (Relationship, error) {
	m, ok := v.Obj()
	if !ok {
		return Relationship{}, issueAt(path, CodeInvalidType, "relationship must be an object")
	}
	r := Relationship{}
	if dv, ok := m.Get(keyData); ok {
		data, err := dataFromValue[Identifier](dv, path+"/data")
		if err != nil {
			return Relationship{}, err
		}
		r.Data = &data
	}
	if lv, ok := m.Get(keyLinks); ok {
		links, err := linksFromValue(lv, path+"/links")
		if err != nil {
			return Relationship{}, err
		}
		r.Links = links
	}
	if mv, ok := m.Get(keyMeta); ok {
		meta, err := metaFromValue(mv, path+"/meta")
		if err != nil {
			return Relationship{}, err
		}
		r.Meta = meta
	}
	return r, nil
}

// ---- links, meta, info, errors ----

func linksToValue(links value.Map[Link]) value.Value {
	var m value.Map[value.Value]
	links.Each(func(k value.Key, l Link) bool {
		if l.Meta.IsEmpty() {
			m.Set(k, value.String(l.HRef))
		} else {
			var lm value.Map[value.Value]
			lm.Set(keyHRef, value.String(l.HRef))
			lm.Set(keyMeta, value.Object(l.Meta))
			m.Set(k, value.Object(lm))
		}
		return true
	})
	return value.Object(m)
}

func linksFromValue(v value.Value, path string) (value.Map[Link], error) {
	var links value.Map[Link]
	m, ok := v.Obj()
	if !ok {
		return links, issueAt(path, CodeInvalidType, "links must be an object")
	}
	var outerErr error
	m.Each(func(k value.Key, item value.Value) bool {
		switch item.Kind() {
		case value.KindString:
			href, _ := item.String()
			links.Set(k, Link{HRef: href})
		case value.KindObject:
			lm, _ := item.Obj()
			l := Link{}
			if hv, ok := lm.Get(keyHRef); ok {
				href, ok := hv.String()
				if !ok {
					outerErr = issueAt(path+"/"+k.String(), CodeInvalidType, "href must be a string")
					return false
				}
				l.HRef = href
			}
			if mv, ok := lm.Get(keyMeta); ok {
				meta, err := metaFromValue(mv, path+"/"+k.String()+"/meta")
				if err != nil {
					outerErr = err
					return false
				}
				l.Meta = meta
			}
			links.Set(k, l)
		default:
			outerErr = issueAt(path+"/"+k.String(), CodeInvalidType, "link must be a string or object")
			return false
		}
		return true
	})
	return links, outerErr
}

func metaFromValue(v value.Value, path string) (value.Map[value.Value], error) {
	m, ok := v.Obj()
	if !ok {
		return value.Map[value.Value]{}, issueAt(path, CodeInvalidType, "expected an object")
	}
	return m, nil
}

func infoToValue(i Info) value.Value {
	var m value.Map[value.Value]
	if i.Version != "" {
		m.Set(keyVersion, value.String(string(i.Version)))
	}
	if !i.Meta.IsEmpty() {
		m.Set(keyMeta, value.Object(i.Meta))
	}
	return value.Object(m)
}

func infoFromValue(v value.Value, path string) (Info, error) {
	m, ok := v.Obj()
	if !ok {
		return Info{}, issueAt(path, CodeInvalidType, "jsonapi must be an object")
	}
	info := Info{}
	if vv, ok := m.Get(keyVersion); ok {
		version, ok := vv.String()
		if !ok {
			return Info{}, issueAt(path+"/version", CodeInvalidType, "version must be a string")
		}
		info.Version = Version(version)
	}
	if mv, ok := m.Get(keyMeta); ok {
		meta, err := metaFromValue(mv, path+"/meta")
		if err != nil {
			return Info{}, err
		}
		info.Meta = meta
	}
	return info, nil
}

func errorObjectToValue(e ErrorObject) value.Value {
	var m value.Map[value.Value]
	setIfNotEmpty := func(k value.Key, s string) {
		if s != "" {
			m.Set(k, value.String(s))
		}
	}
	setIfNotEmpty(keyID, e.ID)
	if !e.Links.IsEmpty() {
		m.Set(keyLinks, linksToValue(e.Links))
	}
	setIfNotEmpty(keyStatus, e.Status)
	setIfNotEmpty(keyCode, e.Code)
	setIfNotEmpty(keyTitle, e.Title)
	setIfNotEmpty(keyDetail, e.Detail)
	if e.Source != nil {
		var sm value.Map[value.Value]
		if e.Source.Pointer != "" {
			sm.Set(keyPointer, value.String(e.Source.Pointer))
		}
		if e.Source.Parameter != "" {
			sm.Set(keyParameter, value.String(e.Source.Parameter))
		}
		m.Set(keySource, value.Object(sm))
	}
	if !e.Meta.IsEmpty() {
		m.Set(keyMeta, value.Object(e.Meta))
	}
	return value.Object(m)
}

func errorObjectFromValue(v value.Value, path string) (ErrorObject, error) {
	m, ok := v.Obj()
	if !ok {
		return ErrorObject{}, issueAt(path, CodeInvalidType, "error object must be an object")
	}
	e := ErrorObject{}
	get := func(k value.Key) string {
		if sv, ok := m.Get(k); ok {
			if s, ok := sv.String(); ok {
				return s
			}
		}
		return ""
	}
	e.ID = get(keyID)
	e.Status = get(keyStatus)
	e.Code = get(keyCode)
	e.Title = get(keyTitle)
	e.Detail = get(keyDetail)
	if sv, ok := m.Get(keySource); ok {
		sm, ok := sv.Obj()
		if !ok {
			return ErrorObject{}, issueAt(path+"/source", CodeInvalidType, "source must be an object")
		}
		src := &ErrorSource{}
		if pv, ok := sm.Get(keyPointer); ok {
			src.Pointer, _ = pv.String()
		}
		if pv, ok := sm.Get(keyParameter); ok {
			src.Parameter, _ = pv.String()
		}
		e.Source = src
	}
	if lv, ok := m.Get(keyLinks); ok {
		links, err := linksFromValue(lv, path+"/links")
		if err != nil {
			return ErrorObject{}, err
		}
		e.Links = links
	}
	if mv, ok := m.Get(keyMeta); ok {
		meta, err := metaFromValue(mv, path+"/meta")
		if err != nil {
			return ErrorObject{}, err
		}
		e.Meta = meta
	}
	return e, nil
}

func kindFromMap(m *value.Map[value.Value], path string) (value.Key, error) {
	tv, ok := m.Get(keyType)
	if !ok {
		return value.Key{}, issueAt(path+"/type", CodeMissingValue, "resource must have a type")
	}
	raw, ok := tv.String()
	if !ok {
		return value.Key{}, issueAt(path+"/type", CodeInvalidType, "type must be a string")
	}
	kind, err := value.ParseKey(raw)
	if err != nil {
		return value.Key{}, Issues{{Path: path + "/type", Code: CodeInvalidKey, Message: err.Error(), Cause: err}}
	}
	return kind, nil
}

func requiredString(m *value.Map[value.Value], k value.Key, path string) (string, error) {
	v, ok := m.Get(k)
	if !ok {
		return "", issueAt(path+"/"+k.String(), CodeMissingValue, k.String()+" is required")
	}
	s, ok := v.String()
	if !ok {
		return "", issueAt(path+"/"+k.String(), CodeInvalidType, k.String()+" must be a string")
	}
	return s, nil
}
