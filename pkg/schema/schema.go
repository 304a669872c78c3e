package schema

import (
	"net/url"
	"strings"
)

// Schema validates a raw query value synchronously.
type Schema interface {
	Validate(raw any) Outcome
}

// Func adapts a function to the Schema interface.
type Func func(raw any) Outcome

// Validate implements Schema.
func (f Func) Validate(raw any) Outcome {
	return f(raw)
}

// Issue is a single validation problem.
type Issue struct {
	// Message is the human-readable description.
	Message string `json:"message"`

	// Path locates the offending value (e.g., ["page"]). Empty for the root.
	Path []string `json:"path,omitempty"`
}

// String renders the issue as "path: message".
func (i Issue) String() string {
	if len(i.Path) == 0 {
		return i.Message
	}
	return strings.Join(i.Path, ".") + ": " + i.Message
}

// Outcome is the result of a validation: exactly one of Value or Issues.
type Outcome struct {
	// Value is the normalized output. Meaningful only when Issues is empty.
	Value any

	// Issues lists validation problems in the order they were found.
	Issues []Issue

	deferred func() Outcome
}

// Valid returns a successful outcome carrying v.
func Valid(v any) Outcome {
	return Outcome{Value: v}
}

// Invalid returns a failed outcome. Calling it without issues still yields a
// failed outcome with a generic issue.
func Invalid(issues ...Issue) Outcome {
	if len(issues) == 0 {
		issues = []Issue{{Message: "invalid value"}}
	}
	return Outcome{Issues: issues}
}

// Defer returns an outcome that is only known once fn runs. It models a
// schema that validates asynchronously.
func Defer(fn func() Outcome) Outcome {
	return Outcome{deferred: fn}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.deferred == nil && len(o.Issues) == 0
}

// IsDeferred reports whether the outcome has not been computed yet.
func (o Outcome) IsDeferred() bool {
	return o.deferred != nil
}

// Await computes a deferred outcome. Settled outcomes are returned as-is.
func (o Outcome) Await() Outcome {
	for o.deferred != nil {
		o = o.deferred()
	}
	return o
}

// Messages returns the issue messages in order.
func (o Outcome) Messages() []string {
	if len(o.Issues) == 0 {
		return nil
	}
	msgs := make([]string, len(o.Issues))
	for i, issue := range o.Issues {
		msgs[i] = issue.String()
	}
	return msgs
}

// Flatten converts a raw query into a map where single-valued keys hold a
// string and repeated keys hold a []string. It accepts url.Values,
// map[string][]string, map[string]string and map[string]any. A nil or
// unsupported raw value yields an empty map.
func Flatten(raw any) map[string]any {
	out := make(map[string]any)
	switch q := raw.(type) {
	case url.Values:
		flattenValues(q, out)
	case map[string][]string:
		flattenValues(q, out)
	case map[string]string:
		for k, v := range q {
			out[k] = v
		}
	case map[string]any:
		for k, v := range q {
			out[k] = v
		}
	}
	return out
}

func flattenValues(q map[string][]string, out map[string]any) {
	for k, vs := range q {
		switch len(vs) {
		case 0:
			out[k] = ""
		case 1:
			out[k] = vs[0]
		default:
			cp := make([]string, len(vs))
			copy(cp, vs)
			out[k] = cp
		}
	}
}
