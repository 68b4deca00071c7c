package value_test

import (
	"testing"

	"github.com/restkit/jsonapi/value"
)

func TestFromYAML(t *testing.T) {
	src := []byte(`
zebra: 1
appleCount: two
nested:
  flag: true
  nothing: null
items:
  - 1.5
  - x
`)
	v, err := value.FromYAML(src)
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"zebra":1,"apple-count":"two","nested":{"flag":true,"nothing":null},"items":[1.5,"x"]}`
	if string(out) != want {
		t.Fatalf("FromYAML = %s, want %s", out, want)
	}
}

func TestFromYAML_Empty(t *testing.T) {
	v, err := value.FromYAML(nil)
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	if !v.IsNull() {
		t.Fatalf("expected null for empty input, got %v", v)
	}
}

func TestFromYAML_RejectsInvalidKeys(t *testing.T) {
	if _, err := value.FromYAML([]byte("a.b: 1\n")); err == nil {
		t.Fatalf("expected error for reserved character in mapping key")
	}
}
