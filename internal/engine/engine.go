// Package engine provides the low-level JSON token plumbing shared by the
// value conversions: a pull-based token source backed by goccy/go-json.
package engine

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"
)

// Kind enumerates token kinds produced by a Source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token is a single token from the input stream.
type Token struct {
	Kind   Kind
	String string // key and string tokens
	Number string // numbers kept as decimal text
	Bool   bool
}

// Source yields tokens until io.EOF.
type Source interface {
	NextToken() (Token, error)
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader as a token Source.
func NewReader(r io.Reader) Source {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice as a token Source.
func NewBytes(b []byte) Source { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return Token{Kind: KindBeginObject}, nil
		case '}':
			s.pop()
			s.afterValue()
			return Token{Kind: KindEndObject}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return Token{Kind: KindBeginArray}, nil
		case ']':
			s.pop()
			s.afterValue()
			return Token{Kind: KindEndArray}, nil
		}
		return Token{}, io.ErrUnexpectedEOF
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return Token{Kind: KindKey, String: v}, nil
			}
		}
		s.afterValue()
		return Token{Kind: KindString, String: v}, nil
	case j.Number:
		s.afterValue()
		return Token{Kind: KindNumber, Number: string(v)}, nil
	case bool:
		s.afterValue()
		return Token{Kind: KindBool, Bool: v}, nil
	case nil:
		s.afterValue()
		return Token{Kind: KindNull}, nil
	default:
		return Token{}, io.ErrUnexpectedEOF
	}
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

// afterValue restores key expectation once an object member value completes.
func (s *source) afterValue() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
