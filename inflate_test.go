package jsonapi_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/restkit/jsonapi"
	"github.com/restkit/jsonapi/value"
)

type person struct {
	ID   string
	Name string
}

type article struct {
	ID         string
	Title      string
	Author     person
	CommentIDs []string
}

var personSchema = jsonapi.SchemaFunc[person](func(ctx context.Context, cur *jsonapi.Cursor) (person, error) {
	var p person
	for {
		key, ok, err := cur.NextField()
		if err != nil {
			return p, err
		}
		if !ok {
			return p, nil
		}
		f, err := cur.Field()
		if err != nil {
			return p, err
		}
		switch key.String() {
		case "id":
			p.ID = f.Str
		case "name":
			p.Name, _ = f.Value.String()
		}
	}
})

var articleSchema = jsonapi.SchemaFunc[article](func(ctx context.Context, cur *jsonapi.Cursor) (article, error) {
	var a article
	for {
		key, ok, err := cur.NextField()
		if err != nil {
			return a, err
		}
		if !ok {
			return a, nil
		}
		f, err := cur.Field()
		if err != nil {
			return a, err
		}
		switch key.String() {
		case "id":
			a.ID = f.Str
		case "title":
			a.Title, _ = f.Value.String()
		case "author":
			p, err := jsonapi.InflateWith(ctx, personSchema, f.One)
			if err != nil {
				return a, err
			}
			a.Author = p
		case "comments":
			for {
				c, ok := f.Many.Next()
				if !ok {
					break
				}
				id, err := c.ID()
				if err != nil {
					return a, err
				}
				a.CommentIDs = append(a.CommentIDs, id)
			}
		}
	}
})

func articleDoc() *jsonapi.Document[jsonapi.Object] {
	a := jsonapi.NewObjectOf(value.MustKey("articles"), "1")
	a.Attributes.Set(value.MustKey("title"), value.String("Rails is Omakase"))
	a.Relationships.Set(value.MustKey("author"),
		jsonapi.ToOne(jsonapi.NewIdentifier(value.MustKey("people"), "9")))
	a.Relationships.Set(value.MustKey("comments"), jsonapi.ToMany(
		jsonapi.NewIdentifier(value.MustKey("comments"), "5"),
		jsonapi.NewIdentifier(value.MustKey("comments"), "12"),
	))

	p := jsonapi.NewObjectOf(value.MustKey("people"), "9")
	p.Attributes.Set(value.MustKey("name"), value.String("DHH"))

	doc := &jsonapi.Document[jsonapi.Object]{Data: jsonapi.Member(a)}
	doc.Included.Insert(p)
	return doc
}

// The author is included so its cursor exposes the full object; the comments
// were never included and degrade to stubs answering only type and id.
func TestInflate_GraphResolution(t *testing.T) {
	ctx := context.Background()
	doc := articleDoc()
	item, _ := doc.Data.Get()

	got, err := jsonapi.InflateWith(ctx, articleSchema, jsonapi.ObjectCursor(item, &doc.Included))
	if err != nil {
		t.Fatalf("InflateWith: %v", err)
	}
	want := article{
		ID:         "1",
		Title:      "Rails is Omakase",
		Author:     person{ID: "9", Name: "DHH"},
		CommentIDs: []string{"5", "12"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("inflated article mismatch (-want +got):\n%s", diff)
	}
}

func TestInflate_StubProducesOnlyTypeAndID(t *testing.T) {
	var included jsonapi.Set
	cur := jsonapi.IdentifierCursor(jsonapi.NewIdentifier(value.MustKey("comments"), "5"), &included)

	var fields []string
	for {
		key, ok, err := cur.NextField()
		if err != nil {
			t.Fatalf("NextField: %v", err)
		}
		if !ok {
			break
		}
		f, err := cur.Field()
		if err != nil {
			t.Fatalf("Field: %v", err)
		}
		fields = append(fields, key.String()+"="+f.Str)
	}
	if len(fields) != 2 || fields[0] != "type=comments" || fields[1] != "id=5" {
		t.Fatalf("stub fields = %v", fields)
	}
	if cur.Remaining() != 0 {
		t.Fatalf("Remaining() = %d", cur.Remaining())
	}
}

// Stopping before every produced field is consumed is a structural mismatch.
func TestInflate_ExactConsumption(t *testing.T) {
	ctx := context.Background()
	doc := articleDoc()
	item, _ := doc.Data.Get()

	lazy := jsonapi.SchemaFunc[string](func(_ context.Context, cur *jsonapi.Cursor) (string, error) {
		if _, _, err := cur.NextField(); err != nil {
			return "", err
		}
		f, err := cur.Field()
		if err != nil {
			return "", err
		}
		return f.Str, nil
	})
	_, err := jsonapi.InflateWith(ctx, lazy, jsonapi.ObjectCursor(item, &doc.Included))
	iss, ok := jsonapi.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != jsonapi.CodeInvalidLength {
		t.Fatalf("expected invalid_length, got %v", err)
	}
}

// A to-many sequence must be pulled to its declared length.
func TestInflate_SequenceExactConsumption(t *testing.T) {
	ctx := context.Background()
	doc := articleDoc()
	item, _ := doc.Data.Get()

	oneOfTwo := jsonapi.SchemaFunc[struct{}](func(ctx context.Context, cur *jsonapi.Cursor) (struct{}, error) {
		for {
			key, ok, err := cur.NextField()
			if err != nil {
				return struct{}{}, err
			}
			if !ok {
				return struct{}{}, nil
			}
			f, err := cur.Field()
			if err != nil {
				return struct{}{}, err
			}
			if key.String() == "comments" {
				f.Many.Next() // pulls one of two
			}
		}
	})
	_, err := jsonapi.InflateWith(ctx, oneOfTwo, jsonapi.ObjectCursor(item, &doc.Included))
	iss, ok := jsonapi.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != jsonapi.CodeInvalidLength {
		t.Fatalf("expected invalid_length, got %v", err)
	}
}

// Cursor.ID bypasses the field protocol entirely, so exact consumption does
// not apply.
func TestInflate_IDBypass(t *testing.T) {
	ctx := context.Background()
	doc := articleDoc()
	item, _ := doc.Data.Get()

	idOnly := jsonapi.SchemaFunc[string](func(_ context.Context, cur *jsonapi.Cursor) (string, error) {
		return cur.ID()
	})
	id, err := jsonapi.InflateWith(ctx, idOnly, jsonapi.ObjectCursor(item, &doc.Included))
	if err != nil {
		t.Fatalf("InflateWith: %v", err)
	}
	if id != "1" {
		t.Fatalf("id = %q", id)
	}
}

func TestInflate_ProtocolMisuse(t *testing.T) {
	doc := articleDoc()
	item, _ := doc.Data.Get()
	cur := jsonapi.ObjectCursor(item, &doc.Included)

	if _, _, err := cur.NextField(); err != nil {
		t.Fatalf("NextField: %v", err)
	}
	_, _, err := cur.NextField() // value not consumed
	iss, ok := jsonapi.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != jsonapi.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
}
