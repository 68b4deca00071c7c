package jsonapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/restkit/jsonapi/i18n"
	"github.com/restkit/jsonapi/value"
)

// Issue codes (exported consts for IDE completion and stable matching).
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidKey    = "invalid_key"
	CodeInvalidLength = "invalid_length"
	CodeMissingValue  = "missing_value"
	CodeMissingID     = "missing_id"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidLink   = "invalid_link"
	CodeParseError    = "parse_error"
	CodeResolveError  = "resolve_error"
	CodeDocumentError = "document_error"
)

// Issue is a single typed failure, located by a JSON-pointer-style path.
type Issue struct {
	Path    string
	Code    string
	Message string
	Cause   error
}

func (i Issue) Unwrap() error { return i.Cause }

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Path != "" {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		} else {
			b.WriteString(it.Code)
		}
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Localized renders one display line per issue, resolving the code through
// the current i18n translator.
func (iss Issues) Localized() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		line := i18n.T(it.Code, nil)
		if it.Path != "" {
			line += " at " + it.Path
		}
		if it.Message != "" {
			line += ": " + it.Message
		}
		out = append(out, line)
	}
	return out
}

// AsIssues extracts Issues from an error, converting known typed errors from
// the value package on the way.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var ke *value.KeyError
	if errors.As(err, &ke) {
		return Issues{{Code: CodeInvalidKey, Message: ke.Error(), Cause: ke}}, true
	}
	return nil, false
}

// toIssues coerces any error into Issues, defaulting to code.
func toIssues(err error, code string) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Code: code, Message: err.Error(), Cause: err}}
}

func issueAt(path, code, msg string) Issues {
	return Issues{{Path: path, Code: code, Message: msg}}
}
