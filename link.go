package jsonapi

import (
	"net/url"

	"github.com/restkit/jsonapi/value"
)

// Link is a validated link target with optional meta information. On the
// wire a link with no meta serializes as a bare string.
type Link struct {
	HRef string
	Meta value.Map[value.Value]
}

// ParseLink validates the target and returns a Link. The target must be an
// absolute URL or an absolute-path reference.
func ParseLink(target string) (Link, error) {
	if target == "" {
		return Link{}, issueAt("", CodeInvalidLink, "link target cannot be blank")
	}
	if _, err := url.Parse(target); err != nil {
		return Link{}, Issues{{Code: CodeInvalidLink, Message: err.Error(), Cause: err}}
	}
	return Link{HRef: target}, nil
}
