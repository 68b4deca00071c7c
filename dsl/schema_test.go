package dsl_test

import (
	"context"
	"testing"

	"github.com/restkit/jsonapi"
	"github.com/restkit/jsonapi/dsl"
)

func fixtureDoc(t *testing.T) *jsonapi.Document[jsonapi.Object] {
	t.Helper()
	payload := `{
	  "data": {
	    "type": "articles",
	    "id": "1",
	    "attributes": {"title": "Rails is Omakase", "wordCount": 400, "draft": false},
	    "relationships": {
	      "author": {"data": {"type": "people", "id": "9"}},
	      "comments": {"data": [
	        {"type": "comments", "id": "5"},
	        {"type": "comments", "id": "12"}
	      ]}
	    }
	  },
	  "included": [
	    {"type": "people", "id": "9", "attributes": {"name": "DHH"}}
	  ]
	}`
	var doc jsonapi.Document[jsonapi.Object]
	if err := doc.UnmarshalJSON([]byte(payload)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	return &doc
}

func TestObjectSchema_Inflate(t *testing.T) {
	ctx := context.Background()

	person := dsl.Object().
		Field("name", dsl.String()).
		MustBuild()
	article := dsl.Object().
		Field("title", dsl.String()).
		Field("wordCount", dsl.Int64()).
		Field("draft", dsl.Bool()).
		Field("author", dsl.One(person)).
		Field("comments", dsl.Many(dsl.ID())).
		Require("title").
		UnknownStrict().
		MustBuild()

	got, err := jsonapi.FromDoc(ctx, fixtureDoc(t), article)
	if err != nil {
		t.Fatalf("FromDoc: %v", err)
	}
	if got["type"] != "articles" || got["id"] != "1" {
		t.Fatalf("identity = %v/%v", got["type"], got["id"])
	}
	if got["title"] != "Rails is Omakase" {
		t.Fatalf("title = %v", got["title"])
	}
	if got["word-count"] != int64(400) {
		t.Fatalf("word-count = %v (%T)", got["word-count"], got["word-count"])
	}
	if got["draft"] != false {
		t.Fatalf("draft = %v", got["draft"])
	}

	author, ok := got["author"].(*map[string]any)
	if !ok || author == nil {
		t.Fatalf("author = %#v", got["author"])
	}
	if (*author)["name"] != "DHH" {
		t.Fatalf("author name = %v", (*author)["name"])
	}

	comments, ok := got["comments"].([]string)
	if !ok || len(comments) != 2 || comments[0] != "5" || comments[1] != "12" {
		t.Fatalf("comments = %#v", got["comments"])
	}
}

func TestObjectSchema_UnknownStrict(t *testing.T) {
	ctx := context.Background()
	schema := dsl.Object().
		Field("title", dsl.String()).
		UnknownStrict().
		MustBuild()

	_, err := jsonapi.FromDoc(ctx, fixtureDoc(t), schema)
	iss, ok := jsonapi.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != jsonapi.CodeUnknownKey {
		t.Fatalf("expected unknown_key, got %v", err)
	}
}

// With the default ignore policy, undeclared fields are consumed and
// dropped; exact consumption still holds.
func TestObjectSchema_UnknownIgnore(t *testing.T) {
	ctx := context.Background()
	schema := dsl.Object().
		Field("title", dsl.String()).
		MustBuild()

	got, err := jsonapi.FromDoc(ctx, fixtureDoc(t), schema)
	if err != nil {
		t.Fatalf("FromDoc: %v", err)
	}
	if got["title"] != "Rails is Omakase" {
		t.Fatalf("title = %v", got["title"])
	}
	if _, ok := got["draft"]; ok {
		t.Fatalf("draft should have been dropped")
	}
}

func TestObjectSchema_RequireMissing(t *testing.T) {
	ctx := context.Background()
	schema := dsl.Object().
		Field("subtitle", dsl.String()).
		Require("subtitle").
		MustBuild()

	_, err := jsonapi.FromDoc(ctx, fixtureDoc(t), schema)
	iss, ok := jsonapi.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != jsonapi.CodeMissingValue {
		t.Fatalf("expected missing_value, got %v", err)
	}
}

func TestObjectSchema_TypeMismatch(t *testing.T) {
	ctx := context.Background()
	schema := dsl.Object().
		Field("title", dsl.Int64()).
		MustBuild()

	_, err := jsonapi.FromDoc(ctx, fixtureDoc(t), schema)
	iss, ok := jsonapi.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != jsonapi.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

// Ref reads a to-one relationship as its bare id; null linkage reads as the
// empty string.
func TestRef(t *testing.T) {
	ctx := context.Background()
	schema := dsl.Object().
		Field("author", dsl.Ref()).
		Field("comments", dsl.RefMany()).
		MustBuild()

	got, err := jsonapi.FromDoc(ctx, fixtureDoc(t), schema)
	if err != nil {
		t.Fatalf("FromDoc: %v", err)
	}
	if got["author"] != "9" {
		t.Fatalf("author = %v", got["author"])
	}
	ids, ok := got["comments"].([]string)
	if !ok || len(ids) != 2 {
		t.Fatalf("comments = %#v", got["comments"])
	}

	// null linkage
	var doc jsonapi.Document[jsonapi.Object]
	payload := `{"data":{"type":"articles","id":"1",` +
		`"relationships":{"author":{"data":null}}}}`
	if err := doc.UnmarshalJSON([]byte(payload)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	nullable := dsl.Object().Field("author", dsl.Ref()).MustBuild()
	got, err = jsonapi.FromDoc(ctx, &doc, nullable)
	if err != nil {
		t.Fatalf("FromDoc: %v", err)
	}
	if got["author"] != "" {
		t.Fatalf("null linkage should read as empty id, got %v", got["author"])
	}
}

// One with a null linkage yields a typed nil pointer.
func TestOne_NullLinkage(t *testing.T) {
	ctx := context.Background()
	var doc jsonapi.Document[jsonapi.Object]
	payload := `{"data":{"type":"articles","id":"1",` +
		`"relationships":{"author":{"data":null}}}}`
	if err := doc.UnmarshalJSON([]byte(payload)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	schema := dsl.Object().
		Field("author", dsl.One(dsl.ID())).
		MustBuild()
	got, err := jsonapi.FromDoc(ctx, &doc, schema)
	if err != nil {
		t.Fatalf("FromDoc: %v", err)
	}
	p, ok := got["author"].(*string)
	if !ok {
		t.Fatalf("author = %#v", got["author"])
	}
	if p != nil {
		t.Fatalf("expected nil pointer for null linkage, got %v", *p)
	}
}

func TestObjectBuilder_InvalidFieldName(t *testing.T) {
	if _, err := dsl.Object().Field("a.b", dsl.String()).Build(); err == nil {
		t.Fatalf("expected error for reserved character in field name")
	}
}

func TestResourceBuilder_RequiresID(t *testing.T) {
	if _, err := dsl.Resource[string]("things").Build(); err == nil {
		t.Fatalf("expected error for missing id accessor")
	}
}

// Numbers keep their lexical form through Number and convert through
// Float64.
func TestNumericDecoders(t *testing.T) {
	ctx := context.Background()
	var doc jsonapi.Document[jsonapi.Object]
	payload := `{"data":{"type":"readings","id":"1",` +
		`"attributes":{"exact":1.50,"approx":2.5}}}`
	if err := doc.UnmarshalJSON([]byte(payload)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	schema := dsl.Object().
		Field("exact", dsl.Number()).
		Field("approx", dsl.Float64()).
		MustBuild()
	got, err := jsonapi.FromDoc(ctx, &doc, schema)
	if err != nil {
		t.Fatalf("FromDoc: %v", err)
	}
	if n, ok := got["exact"].(interface{ String() string }); !ok || n.String() != "1.50" {
		t.Fatalf("exact = %#v", got["exact"])
	}
	if got["approx"] != 2.5 {
		t.Fatalf("approx = %v", got["approx"])
	}
}
