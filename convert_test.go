package jsonapi_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/restkit/jsonapi"
	"github.com/restkit/jsonapi/dsl"
	"github.com/restkit/jsonapi/query"
	"github.com/restkit/jsonapi/value"
)

// Deflate an object graph to wire bytes, then inflate it back through a
// schema; the round trip must preserve the graph within the requested query.
func TestConvert_EndToEnd(t *testing.T) {
	ctx := context.Background()
	q := query.New().Include("author").MustBuild()

	doc, err := jsonapi.ToDoc(ctx, articleDef.Bind(sampleArticle()), q)
	if err != nil {
		t.Fatalf("ToDoc: %v", err)
	}
	data, err := jsonapi.ToBytes(doc)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}

	personSchema := dsl.Object().Field("name", dsl.String()).MustBuild()
	articleSchema := dsl.Object().
		Field("title", dsl.String()).
		Field("body", dsl.String()).
		Field("author", dsl.One(personSchema)).
		Field("comments", dsl.RefMany()).
		Require("title").
		MustBuild()

	got, err := jsonapi.FromBytes(ctx, data, articleSchema)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got["title"] != "Rails is Omakase" {
		t.Fatalf("title = %v", got["title"])
	}
	author := got["author"].(*map[string]any)
	if (*author)["name"] != "DHH" {
		t.Fatalf("author = %#v", *author)
	}
	ids := got["comments"].([]string)
	if len(ids) != 2 || ids[0] != "5" || ids[1] != "12" {
		t.Fatalf("comments = %v", ids)
	}
}

func TestConvert_ShapeMismatch(t *testing.T) {
	ctx := context.Background()
	schema := dsl.Object().MustBuild()

	many := &jsonapi.Document[jsonapi.Object]{Data: jsonapi.Collection[jsonapi.Object]()}
	if _, err := jsonapi.FromDoc(ctx, many, schema); err == nil {
		t.Fatalf("single inflate over a collection should fail")
	}

	single := jsonapi.NullDoc[jsonapi.Object]()
	if _, err := jsonapi.FromDocMany(ctx, single, schema); err == nil {
		t.Fatalf("collection inflate over singular data should fail")
	}
	if _, err := jsonapi.FromDoc(ctx, single, schema); err == nil {
		t.Fatalf("single inflate over null data should fail")
	}
}

func TestConvert_Many(t *testing.T) {
	ctx := context.Background()
	a := sampleArticle()
	b := sampleArticle()
	b.ID = "2"
	b.Title = "XML is forever"

	doc, err := jsonapi.ToDocMany(ctx, []jsonapi.Resource{articleDef.Bind(a), articleDef.Bind(b)}, nil)
	if err != nil {
		t.Fatalf("ToDocMany: %v", err)
	}
	data, err := jsonapi.ToBytes(doc)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}

	schema := dsl.Object().Field("title", dsl.String()).MustBuild()
	got, err := jsonapi.FromBytesMany(ctx, data, schema)
	if err != nil {
		t.Fatalf("FromBytesMany: %v", err)
	}
	if len(got) != 2 || got[0]["title"] != "Rails is Omakase" || got[1]["title"] != "XML is forever" {
		t.Fatalf("inflated collection = %v", got)
	}
}

// An error document surfaces its error objects as Issues.
func TestConvert_ErrorDocument(t *testing.T) {
	ctx := context.Background()
	doc := jsonapi.ErrDocument[jsonapi.Object](jsonapi.ErrorObject{
		Code:   "not_found",
		Title:  "article not found",
		Source: &jsonapi.ErrorSource{Pointer: "/data"},
	})
	schema := dsl.Object().MustBuild()
	_, err := jsonapi.FromDoc(ctx, doc, schema)
	iss, ok := jsonapi.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != "not_found" || iss[0].Path != "/data" {
		t.Fatalf("issue = %+v", iss[0])
	}
}

func TestConvert_Reader(t *testing.T) {
	ctx := context.Background()
	payload := `{"data":{"type":"articles","id":"1","attributes":{"title":"x"}}}`
	schema := dsl.Object().Field("title", dsl.String()).MustBuild()
	got, err := jsonapi.FromReader(ctx, strings.NewReader(payload), schema)
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if got["title"] != "x" {
		t.Fatalf("title = %v", got["title"])
	}
}

// Payloads arriving as YAML decode through the generic value model.
func TestConvert_FromValueYAML(t *testing.T) {
	ctx := context.Background()
	src := []byte(`
data:
  type: articles
  id: "1"
  attributes:
    title: Rails is Omakase
`)
	v, err := value.FromYAML(src)
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	schema := dsl.Object().Field("title", dsl.String()).MustBuild()
	got, err := jsonapi.FromValue(ctx, v, schema)
	if err != nil {
		t.Fatalf("FromValue: %v", err)
	}
	if got["title"] != "Rails is Omakase" {
		t.Fatalf("title = %v", got["title"])
	}
}

func TestConvert_WriterAndPretty(t *testing.T) {
	doc := jsonapi.NullDoc[jsonapi.Object]()

	var buf bytes.Buffer
	if err := jsonapi.ToWriter(doc, &buf); err != nil {
		t.Fatalf("ToWriter: %v", err)
	}
	if buf.String() != `{"data":null}` {
		t.Fatalf("ToWriter = %s", buf.String())
	}

	pretty, err := jsonapi.ToBytesPretty(doc)
	if err != nil {
		t.Fatalf("ToBytesPretty: %v", err)
	}
	if !bytes.Contains(pretty, []byte("\n")) {
		t.Fatalf("pretty output should be indented: %s", pretty)
	}

	s, err := jsonapi.ToString(doc)
	if err != nil || s != `{"data":null}` {
		t.Fatalf("ToString = %q, %v", s, err)
	}
}
