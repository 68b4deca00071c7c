package jsonapi

import "github.com/restkit/jsonapi/value"

// Version names a revision of the interchange format.
type Version string

const (
	Version1  Version = "1.0"
	Version11 Version = "1.1"
)

// Info describes the implementation of the format a document was created
// with, serialized as the document's jsonapi member when non-empty.
type Info struct {
	Version Version
	Meta    value.Map[value.Value]
}

// IsEmpty reports whether the info carries nothing worth serializing.
func (i Info) IsEmpty() bool { return i.Version == "" && i.Meta.IsEmpty() }
