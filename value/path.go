package value

import "strings"

// Path is an ordered sequence of keys locating a relationship in the
// resource graph. Paths are immutable; Join copies.
type Path []Key

// ParsePath parses a dot separated sequence of member names, validating
// each segment as a Key.
func ParsePath(source string) (Path, error) {
	segments := strings.Split(source, ".")
	p := make(Path, 0, len(segments))
	for _, s := range segments {
		k, err := ParseKey(s)
		if err != nil {
			return nil, err
		}
		p = append(p, k)
	}
	return p, nil
}

// MustPath is ParsePath for known-good literals; it panics on invalid input.
func MustPath(source string) Path {
	p, err := ParsePath(source)
	if err != nil {
		panic(err)
	}
	return p
}

// Join returns a new path with key appended. The receiver is not modified.
func (p Path) Join(key Key) Path {
	joined := make(Path, len(p)+1)
	copy(joined, p)
	joined[len(p)] = key
	return joined
}

// Equal reports structural equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the path in dotted form.
func (p Path) String() string {
	var b strings.Builder
	for i, k := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(k.String())
	}
	return b.String()
}
