package router

import (
	"fmt"
	"strings"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/schema"
)

// Error codes carried by PatternError and build errors. The full text for
// each code is registered in internal/errors.
const (
	codeInvalidPattern  = "E100"
	codeCatchAllNotLast = "E101"
	codeDuplicateName   = "E102"
	codeEmptyName       = "E103"
	codeInvalidName     = "E104"

	codeConflictingTypes = "E121"
	codeNoHandler        = "E122"
	codeUnknownRoute     = "E123"
	codeMissingParam     = "E124"

	codeDeferredQuery = "E141"
)

// PatternError reports a malformed route pattern.
type PatternError struct {
	// Pattern is the path passed to Compile.
	Pattern string

	// Segment is the offending component.
	Segment string

	// Code is the stable error code (E100-E104).
	Code string

	// Reason describes what is wrong with the segment.
	Reason string
}

func newPatternError(pattern, segment, code, reason string) *PatternError {
	return &PatternError{Pattern: pattern, Segment: segment, Code: code, Reason: reason}
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("router: invalid pattern %q: %s", e.Pattern, e.Reason)
}

// Unwrap exposes the coded error so callers can format it with its
// registered detail and documentation link.
func (e *PatternError) Unwrap() error {
	return errors.New(e.Code).WithPattern(e.Pattern).WithDetail(e.Reason)
}

// BuildError aggregates every problem found while building a router.
// When Build returns it, no routes were installed.
type BuildError struct {
	Errors []error
}

func (e *BuildError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "router: build failed"
	case 1:
		return "router: build failed: " + e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "router: build failed with %d errors:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap returns the individual errors for errors.Is/As.
func (e *BuildError) Unwrap() []error {
	return e.Errors
}

// RouteDefError ties a build problem to the route name it was found on.
type RouteDefError struct {
	Name string
	Err  error
}

func (e *RouteDefError) Error() string {
	return fmt.Sprintf("route %q: %s", e.Name, e.Err.Error())
}

func (e *RouteDefError) Unwrap() error {
	return e.Err
}

// QueryErrorMessage is the aggregated message of every QueryError.
const QueryErrorMessage = "Invalid query parameters"

// QueryError is attached to the request context when the route's query
// schema rejects the query. Message never carries individual issues.
type QueryError struct {
	Message string

	// Issues are the schema's findings, kept for logging and diagnostics.
	Issues []schema.Issue
}

func (e *QueryError) Error() string {
	return e.Message
}

// ContractViolation is the panic value raised when a query schema returns a
// deferred outcome. Resolve is synchronous end to end and never recovers it.
type ContractViolation struct {
	Route  string
	Path   string
	Reason string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("router: contract violation on route %q (%s): %s", e.Route, e.Path, e.Reason)
}

// Unwrap exposes the coded error.
func (e *ContractViolation) Unwrap() error {
	return errors.New(codeDeferredQuery).WithLocation("", e.Route).WithDetail(e.Reason)
}
