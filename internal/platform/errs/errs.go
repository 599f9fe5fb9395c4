package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes application errors for HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the request was malformed (HTTP 400).
	InvalidInput
	// InvalidPlan indicates a plan failed the top-level shape check (HTTP 400).
	InvalidPlan
	// MissingSection indicates a required section is absent (HTTP 422).
	MissingSection
	// DuplicateSection indicates a required section appears more than once (HTTP 422).
	DuplicateSection
	// VariantOutOfRange indicates a section variant outside its registry range (HTTP 422).
	VariantOutOfRange
	// InvalidProps indicates section content failed its registry validator (HTTP 422).
	InvalidProps
	// HandlerNotFound indicates no presentation handler is registered for a section variant (HTTP 500).
	HandlerNotFound
	// Unreachable indicates the remote synthesis service could not be reached (HTTP 502).
	Unreachable
	// Timeout indicates an upstream took too long to respond (HTTP 504).
	Timeout
	// UpstreamFailed indicates the remote synthesis service reported a failure (HTTP 502).
	UpstreamFailed
)

var kindNames = map[Kind]string{
	Unknown:           "unknown",
	InvalidInput:      "invalid input",
	InvalidPlan:       "invalid plan",
	MissingSection:    "missing section",
	DuplicateSection:  "duplicate section",
	VariantOutOfRange: "variant out of range",
	InvalidProps:      "invalid props",
	HandlerNotFound:   "handler not found",
	Unreachable:       "unreachable",
	Timeout:           "timeout",
	UpstreamFailed:    "upstream failed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// AppError carries a category, the offending section and field when there is
// one, a user message, and the original cause.
type AppError struct {
	Kind           Kind
	Section        string
	Field          string
	UpstreamStatus int // HTTP status code returned by the remote synthesis service
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	var b strings.Builder
	if e.Section != "" {
		b.WriteString("section ")
		b.WriteString(e.Section)
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any *AppError target of the same Kind, so callers can write
// errors.Is(err, &errs.AppError{Kind: errs.MissingSection}).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *AppError in err's chain, or Unknown.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}
