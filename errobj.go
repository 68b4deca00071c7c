package jsonapi

import "github.com/restkit/jsonapi/value"

// ErrorObject is an application-level error carried in a document's errors
// member. It is a valid wire shape, not an engine defect.
type ErrorObject struct {
	ID     string
	Status string
	Code   string
	Title  string
	Detail string
	Source *ErrorSource
	Links  value.Map[Link]
	Meta   value.Map[value.Value]
}

// ErrorSource locates the part of the request that caused an error.
type ErrorSource struct {
	Pointer   string
	Parameter string
}
