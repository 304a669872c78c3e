package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryPattern Category = "pattern"
	CategoryBuild   Category = "build"
	CategoryQuery   Category = "query"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// Location represents where a route was declared (a manifest file or entry).
type Location struct {
	File  string
	Route string
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Route != "" {
		return fmt.Sprintf("%s#%s", l.File, l.Route)
	}
	return l.File
}

// RouteError is a structured error with a stable code, suggestions, and documentation.
type RouteError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (pattern, build, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Pattern is the offending route pattern, if any.
	Pattern string

	// Location is where the route was declared.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is a snippet showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RouteError) Error() string {
	msg := e.Message
	if e.Pattern != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Pattern)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RouteError) Unwrap() error {
	return e.Wrapped
}

// WithPattern records the offending pattern.
func (e *RouteError) WithPattern(pattern string) *RouteError {
	e.Pattern = pattern
	return e
}

// WithLocation records where the route was declared.
func (e *RouteError) WithLocation(file, route string) *RouteError {
	e.Location = &Location{File: file, Route: route}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RouteError) WithSuggestion(s string) *RouteError {
	e.Suggestion = s
	return e
}

// WithExample adds an example to the error.
func (e *RouteError) WithExample(ex string) *RouteError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RouteError) WithDetail(d string) *RouteError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *RouteError) Wrap(err error) *RouteError {
	e.Wrapped = err
	return e
}

// New creates a RouteError from a registered error code.
func New(code string) *RouteError {
	template, ok := registry[code]
	if !ok {
		return &RouteError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RouteError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new RouteError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RouteError {
	return &RouteError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RouteError.
func FromError(err error, code string) *RouteError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RouteError); ok {
		return re
	}
	return New(code).Wrap(err)
}
