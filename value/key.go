package value

import (
	"fmt"
)

// KeyError reports a member name that could not be normalized.
type KeyError struct {
	Raw    string
	Reason string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("value: could not parse key %q: %s", e.Raw, e.Reason)
}

// Key is a validated member name. Parsing normalizes camelCase, space and
// underscore separated input to kebab-case; two keys are equal iff their
// normalized forms are equal. The zero Key is invalid.
type Key struct {
	name string
}

// ParseKey normalizes source into a Key. It rejects empty names, names that
// start or end with a separator, and names containing reserved characters.
func ParseKey(source string) (Key, error) {
	if source == "" {
		return Key{}, &KeyError{Raw: source, Reason: "cannot be blank"}
	}

	runes := []rune(source)
	dest := make([]rune, 0, len(runes)+8)

	for i, r := range runes {
		switch {
		case reservedKeyRune(r):
			return Key{}, &KeyError{Raw: source, Reason: fmt.Sprintf("reserved %q", r)}
		case r == '_' || r == '-' || r == ' ':
			if len(dest) == 0 {
				return Key{}, &KeyError{Raw: source, Reason: fmt.Sprintf("cannot start with %q", r)}
			}
			if i == len(runes)-1 {
				return Key{}, &KeyError{Raw: source, Reason: fmt.Sprintf("cannot end with %q", r)}
			}
			// Collapse runs of separators; an upcoming uppercase rune emits
			// its own separator.
			next := runes[i+1]
			if next == '-' || next == '_' || next == ' ' || (next >= 'A' && next <= 'Z') {
				continue
			}
			dest = append(dest, '-')
		case r >= 'A' && r <= 'Z':
			if n := len(dest); n > 0 && dest[n-1] != '-' {
				dest = append(dest, '-')
			}
			dest = append(dest, r+('a'-'A'))
		default:
			dest = append(dest, r)
		}
	}

	return Key{name: string(dest)}, nil
}

// MustKey is ParseKey for known-good literals; it panics on invalid input.
func MustKey(source string) Key {
	k, err := ParseKey(source)
	if err != nil {
		panic(err)
	}
	return k
}

// String returns the normalized member name.
func (k Key) String() string { return k.name }

// IsZero reports whether the key is the invalid zero value.
func (k Key) IsZero() bool { return k.name == "" }

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) { return []byte(k.name), nil }

// UnmarshalText implements encoding.TextUnmarshaler, validating the input.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// reservedKeyRune reports whether r may never appear in a member name.
func reservedKeyRune(r rune) bool {
	switch {
	case r <= 0x1f:
		return true
	case r >= 0x21 && r <= 0x29: // ! " # $ % & ' ( )
		return true
	case r >= 0x2a && r <= 0x2c: // * + ,
		return true
	case r == '.' || r == '/':
		return true
	case r >= 0x3a && r <= 0x40: // : ; < = > ? @
		return true
	case r >= 0x5b && r <= 0x5e: // [ \ ] ^
		return true
	case r == 0x60: // `
		return true
	case r >= 0x7b && r <= 0x7f: // { | } ~ DEL
		return true
	}
	return false
}
