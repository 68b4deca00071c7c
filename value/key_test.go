package value_test

import (
	"errors"
	"testing"

	"github.com/restkit/jsonapi/value"
)

// TestParseKey_Normalization covers camelCase, underscore, and space
// separated input collapsing to kebab-case.
func TestParseKey_Normalization(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"title", "title"},
		{"someFieldName", "some-field-name"},
		{"some_field_name", "some-field-name"},
		{"some field name", "some-field-name"},
		{"some-field-name", "some-field-name"},
		{"a--b", "a-b"},
		{"a_-_b", "a-b"},
		{"a_B", "a-b"},
		{"Title", "title"},
		{"HTTPCode", "h-t-t-p-code"},
		{"x1", "x1"},
	}
	for _, c := range cases {
		k, err := value.ParseKey(c.in)
		if err != nil {
			t.Fatalf("ParseKey(%q): unexpected err: %v", c.in, err)
		}
		if got := k.String(); got != c.want {
			t.Fatalf("ParseKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseKey_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"-abc",
		"_abc",
		" abc",
		"abc-",
		"abc_",
		"abc ",
		"a.b",
		"a/b",
		"a,b",
		"a:b",
		"a@b",
		"a[b",
		"a{b",
		"a!b",
		"a\x00b",
	} {
		if _, err := value.ParseKey(in); err == nil {
			t.Fatalf("ParseKey(%q): expected error", in)
		} else {
			var ke *value.KeyError
			if !errors.As(err, &ke) {
				t.Fatalf("ParseKey(%q): expected KeyError, got %T", in, err)
			}
		}
	}
}

// Normalized forms are the unit of equality: distinct spellings of the same
// name compare equal as keys.
func TestKey_Equality(t *testing.T) {
	a := value.MustKey("someField")
	b := value.MustKey("some_field")
	if a != b {
		t.Fatalf("expected %q == %q", a, b)
	}
}

func TestKey_TextRoundTrip(t *testing.T) {
	k := value.MustKey("someField")
	text, err := k.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back value.Key
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if back != k {
		t.Fatalf("round trip changed key: %q != %q", back, k)
	}
	if err := back.UnmarshalText([]byte("not.valid")); err == nil {
		t.Fatalf("expected error for reserved character")
	}
}
